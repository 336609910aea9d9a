//
// Tencent is pleased to support the open source community by making trpc-treqa-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-treqa-go is licensed under the Apache License Version 2.0.
//
//

package model

import "context"

// Info describes a model.
type Info struct {
	Name string
}

// Model is a text generation backend. Implementations must be safe for
// concurrent use.
type Model interface {
	// GenerateContent runs one chat completion and returns the full response.
	GenerateContent(ctx context.Context, request *Request) (*Response, error)
	// Info returns basic information about the model.
	Info() Info
}
