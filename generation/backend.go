//
// Tencent is pleased to support the open source community by making trpc-treqa-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-treqa-go is licensed under the Apache License Version 2.0.
//
//

package generation

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/panjf2000/ants/v2"

	"trpc.group/trpc-go/trpc-treqa-go/log"
	"trpc.group/trpc-go/trpc-treqa-go/model"
)

// ModelBackend completes chats on a model.Model with bounded parallelism.
type ModelBackend struct {
	model model.Model
	opts  backendOptions
}

// NewModelBackend creates a Backend on m.
func NewModelBackend(m model.Model, opts ...BackendOption) *ModelBackend {
	o := defaultBackendOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &ModelBackend{model: m, opts: o}
}

type completeParam struct {
	idx     int
	ctx     context.Context
	chat    Chat
	backend *ModelBackend
	outputs []string
	errs    []error
	wg      *sync.WaitGroup
}

func (p *completeParam) reset() {
	p.idx = 0
	p.ctx = nil
	p.chat = nil
	p.backend = nil
	p.outputs = nil
	p.errs = nil
	p.wg = nil
}

var completeParamPool = &sync.Pool{
	New: func() any { return new(completeParam) },
}

func newCompletePool(size int) (*ants.PoolWithFunc, error) {
	if size <= 0 {
		return nil, errors.New("pool size must be greater than 0")
	}
	pool, err := ants.NewPoolWithFunc(size, func(args any) {
		param, ok := args.(*completeParam)
		if !ok {
			panic("completion pool args type error")
		}
		wg := param.wg
		defer func() {
			wg.Done()
			param.reset()
			completeParamPool.Put(param)
		}()
		param.outputs[param.idx], param.errs[param.idx] = param.backend.completeOne(param.ctx, param.chat)
	})
	if err != nil {
		return nil, fmt.Errorf("create completion pool: %w", err)
	}
	return pool, nil
}

// Complete implements Backend. Every chat is attempted; failures are
// returned together.
func (b *ModelBackend) Complete(ctx context.Context, chats []Chat) ([]string, error) {
	if len(chats) == 0 {
		return []string{}, nil
	}
	pool, err := newCompletePool(min(b.opts.parallelism, len(chats)))
	if err != nil {
		return nil, err
	}
	defer pool.Release()

	outputs := make([]string, len(chats))
	errs := make([]error, len(chats))
	var wg sync.WaitGroup
	for i, chat := range chats {
		param := completeParamPool.Get().(*completeParam)
		param.idx = i
		param.ctx = ctx
		param.chat = chat
		param.backend = b
		param.outputs = outputs
		param.errs = errs
		param.wg = &wg
		wg.Add(1)
		if err := pool.Invoke(param); err != nil {
			wg.Done()
			param.reset()
			completeParamPool.Put(param)
			errs[i] = fmt.Errorf("submit: %w", err)
		}
	}
	wg.Wait()

	var merr *multierror.Error
	for i, err := range errs {
		if err != nil {
			merr = multierror.Append(merr, fmt.Errorf("chat %d: %w", i, err))
		}
	}
	if err := merr.ErrorOrNil(); err != nil {
		return nil, err
	}
	return outputs, nil
}

// completeOne retries transport failures and truncated responses. When
// every attempt is truncated the last partial output is kept.
func (b *ModelBackend) completeOne(ctx context.Context, chat Chat) (string, error) {
	req := &model.Request{
		Messages:         chat,
		GenerationConfig: b.opts.config,
	}
	var (
		lastErr       error
		lastTruncated *model.Response
	)
	for attempt := 0; attempt <= b.opts.maxRetries; attempt++ {
		if attempt > 0 {
			if err := sleep(ctx, time.Duration(attempt)*b.opts.retryBackoff); err != nil {
				return "", err
			}
		}
		resp, err := b.model.GenerateContent(ctx, req)
		if err == nil && resp != nil && resp.Error != nil {
			err = fmt.Errorf("%s: %s", resp.Error.Type, resp.Error.Message)
		}
		if err != nil {
			if ctx.Err() != nil {
				return "", ctx.Err()
			}
			lastErr = err
			log.Debugf("%s attempt %d failed: %v", b.model.Info().Name, attempt+1, err)
			continue
		}
		if !resp.Truncated() {
			return resp.Content(), nil
		}
		lastErr = nil
		lastTruncated = resp
		log.Debugf("%s attempt %d truncated", b.model.Info().Name, attempt+1)
	}
	if lastTruncated != nil && lastErr == nil {
		log.Warnf("%s: output still truncated after %d attempts", b.model.Info().Name, b.opts.maxRetries+1)
		return lastTruncated.Content(), nil
	}
	return "", lastErr
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
