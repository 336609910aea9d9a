//
// Tencent is pleased to support the open source community by making trpc-treqa-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-treqa-go is licensed under the Apache License Version 2.0.
//
//

package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trpc.group/trpc-go/trpc-treqa-go/answermatching"
	"trpc.group/trpc-go/trpc-treqa-go/demo"
	"trpc.group/trpc-go/trpc-treqa-go/generation"
)

func fakeRun(_ context.Context, _ generation.Generator, source, reference string, candidates []string) (*demo.Result, error) {
	res := &demo.Result{
		ID:               "id-1",
		Questions:        []string{"q?"},
		ReferenceAnswers: []string{reference},
	}
	for _, c := range candidates {
		res.CandidateAnswers = append(res.CandidateAnswers, []string{c})
		res.Scores = append(res.Scores, []answermatching.Rating{answermatching.Rate(100, 50)})
	}
	return res, nil
}

func post(t *testing.T, h http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/evaluate", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestEvaluate(t *testing.T) {
	s := New(nil, WithRunFunc(fakeRun))
	rec := post(t, s.Handler(), `{"source":"s","reference":"r","candidates":["c1","c2"]}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var got demo.Result
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "id-1", got.ID)
	assert.Equal(t, [][]string{{"c1"}, {"c2"}}, got.CandidateAnswers)
	assert.Equal(t, "high-score", got.Scores[1][0].Class)
}

func TestEvaluateBadRequest(t *testing.T) {
	s := New(nil, WithRunFunc(fakeRun))
	tests := []struct {
		name string
		body string
	}{
		{"not json", `{`},
		{"no source", `{"reference":"r","candidates":["c"]}`},
		{"no reference", `{"source":"s","candidates":["c"]}`},
		{"no candidates", `{"source":"s","reference":"r","candidates":[]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := post(t, s.Handler(), tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			var body errorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.NotEmpty(t, body.Error)
		})
	}
}

func TestEvaluateRunErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"internal", errors.New("backend down"), http.StatusInternalServerError},
		{"timeout", context.DeadlineExceeded, http.StatusGatewayTimeout},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(nil, WithTimeout(time.Second), WithRunFunc(
				func(context.Context, generation.Generator, string, string, []string) (*demo.Result, error) {
					return nil, tt.err
				}))
			rec := post(t, s.Handler(), `{"source":"s","reference":"r","candidates":["c"]}`)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestEvaluateWithGenerator(t *testing.T) {
	gen := generation.GeneratorFunc(func(_ context.Context, chats []generation.Chat, _ bool) ([]string, error) {
		out := make([]string, len(chats))
		for i := range out {
			out[i] = "Q: Who?\nA: Ann"
		}
		return out, nil
	})
	srv := httptest.NewServer(New(gen).Handler())
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/evaluate", "application/json",
		strings.NewReader(`{"source":"s","reference":"r","candidates":["c"]}`))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var got demo.Result
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.Equal(t, []string{"Who?"}, got.Questions)
	assert.NotEmpty(t, got.ID)
}

func TestHealthzAndCORS(t *testing.T) {
	h := New(nil).Handler()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("Origin", "http://example.com")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/evaluate", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
