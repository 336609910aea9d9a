//
// Tencent is pleased to support the open source community by making trpc-treqa-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-treqa-go is licensed under the Apache License Version 2.0.
//
//

package gemini

import (
	"context"

	"google.golang.org/genai"
)

// Client is the subset of *genai.Client used by Model.
type Client interface {
	Models() Models
}

// Models is the subset of *genai.Models used by Model.
type Models interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content,
		config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

type clientWrapper struct {
	client *genai.Client
}

func (c *clientWrapper) Models() Models {
	return c.client.Models
}
