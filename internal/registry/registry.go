//
// Tencent is pleased to support the open source community by making trpc-treqa-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-treqa-go is licensed under the Apache License Version 2.0.
//
//

// Package registry provides a name keyed, concurrency safe registry used
// by every pluggable component family.
package registry

import (
	"fmt"
	"os"
	"sort"
	"sync"
)

// Registry maps names to values of one kind.
type Registry[T any] struct {
	kind  string
	mu    sync.RWMutex
	items map[string]T
}

// New returns an empty registry. kind names the family in errors.
func New[T any](kind string) *Registry[T] {
	return &Registry[T]{kind: kind, items: make(map[string]T)}
}

// Register adds or replaces name.
func (r *Registry[T]) Register(name string, v T) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[name] = v
}

// Get returns the value for name. Unknown names wrap os.ErrNotExist.
func (r *Registry[T]) Get(name string) (T, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.items[name]
	if !ok {
		var zero T
		return zero, fmt.Errorf("%s %q: %w", r.kind, name, os.ErrNotExist)
	}
	return v, nil
}

// Names returns the registered names in sorted order.
func (r *Registry[T]) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.items))
	for name := range r.items {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
