//
// Tencent is pleased to support the open source community by making trpc-treqa-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-treqa-go is licensed under the Apache License Version 2.0.
//
//

// Package server exposes the demo pipeline over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"trpc.group/trpc-go/trpc-treqa-go/demo"
	"trpc.group/trpc-go/trpc-treqa-go/generation"
	"trpc.group/trpc-go/trpc-treqa-go/log"
)

// RunFunc evaluates one request. It defaults to demo.Run.
type RunFunc func(ctx context.Context, gen generation.Generator, source, reference string,
	candidates []string) (*demo.Result, error)

// Server serves POST /evaluate and GET /healthz.
type Server struct {
	gen     generation.Generator
	router  *mux.Router
	run     RunFunc
	origins []string
	timeout time.Duration
}

// Option configures the Server instance.
type Option func(*Server)

// WithAllowedOrigins restricts CORS to origins. All origins are allowed by
// default.
func WithAllowedOrigins(origins ...string) Option {
	return func(s *Server) { s.origins = origins }
}

// WithTimeout bounds each evaluation. Zero means no bound.
func WithTimeout(d time.Duration) Option {
	return func(s *Server) { s.timeout = d }
}

// WithRunFunc replaces the evaluation pipeline.
func WithRunFunc(f RunFunc) Option {
	return func(s *Server) {
		if f != nil {
			s.run = f
		}
	}
}

// New creates a Server answering with gen.
func New(gen generation.Generator, opts ...Option) *Server {
	s := &Server{
		gen:     gen,
		router:  mux.NewRouter(),
		run:     demo.Run,
		origins: []string{"*"},
	}
	for _, opt := range opts {
		opt(s)
	}
	c := cors.New(cors.Options{
		AllowedOrigins: s.origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"*"},
		ExposedHeaders: []string{"Content-Length", "Content-Type"},
	})
	s.router.Use(c.Handler)
	s.router.HandleFunc("/evaluate", s.handleEvaluate).Methods(http.MethodPost, http.MethodOptions)
	s.router.HandleFunc("/healthz", s.handleHealthz).Methods(http.MethodGet)
	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

// evaluateRequest is the body of POST /evaluate.
type evaluateRequest struct {
	Source     string   `json:"source"`
	Reference  string   `json:"reference"`
	Candidates []string `json:"candidates"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleEvaluate(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()
	var req evaluateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if req.Source == "" || req.Reference == "" || len(req.Candidates) == 0 {
		s.writeError(w, http.StatusBadRequest, demo.ErrMissingInput.Error())
		return
	}
	ctx := r.Context()
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}
	log.Infof("evaluate: %d candidates", len(req.Candidates))
	res, err := s.run(ctx, s.gen, req.Source, req.Reference, req.Candidates)
	if err != nil {
		status := http.StatusInternalServerError
		switch {
		case errors.Is(err, demo.ErrMissingInput):
			status = http.StatusBadRequest
		case errors.Is(err, context.DeadlineExceeded):
			status = http.StatusGatewayTimeout
		}
		log.Errorf("evaluate: %v", err)
		s.writeError(w, status, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, errorResponse{Error: msg})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
