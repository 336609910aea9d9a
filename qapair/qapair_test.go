//
// Tencent is pleased to support the open source community by making trpc-treqa-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-treqa-go is licensed under the Apache License Version 2.0.
//
//

package qapair

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSet(t *testing.T) {
	s := NewSet()
	assert.True(t, s.Add(Pair{"Who?", "Bob"}))
	assert.True(t, s.Add(Pair{"Where?", "Paris"}))
	assert.False(t, s.Add(Pair{"Who?", "Bob"}))
	assert.True(t, s.Add(Pair{"Who?", "Alice"}))

	assert.Equal(t, 3, s.Len())
	assert.Equal(t, []Pair{{"Who?", "Bob"}, {"Where?", "Paris"}, {"Who?", "Alice"}}, s.Pairs())
	assert.Equal(t, []string{"Who?", "Where?", "Who?"}, Questions(s.Pairs()))
	assert.Equal(t, []string{"Bob", "Paris", "Alice"}, Answers(s.Pairs()))
}

// errAny marks cases where any error will do.
var errAny = errors.New("any error")

func TestReadJSONL(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    [][]Pair
		wantErr error
	}{
		{
			name: "arrays",
			in:   `[["Who?", "Bob"], ["Where?", "Paris"]]` + "\n" + `[]` + "\n",
			want: [][]Pair{{{"Who?", "Bob"}, {"Where?", "Paris"}}, {}},
		},
		{
			name: "objects and trailing blank line",
			in:   `[{"question": "Who?", "answer": "Bob"}]` + "\n\n",
			want: [][]Pair{{{"Who?", "Bob"}}},
		},
		{
			name: "several trailing blank lines",
			in:   "[]\n[]\n\n  \n",
			want: [][]Pair{{}, {}},
		},
		{name: "blank line between documents", in: "[]\n\n[]\n", wantErr: ErrBlankLine},
		{name: "empty question", in: `[["", "Paris"]]`, wantErr: ErrEmptyField},
		{name: "blank answer", in: `[{"question": "Who?", "answer": "  "}]`, wantErr: ErrEmptyField},
		{name: "wrong arity", in: `[["only question"]]`, wantErr: errAny},
		{name: "missing answer", in: `[{"question": "Who?"}]`, wantErr: errAny},
		{name: "not json", in: `nope`, wantErr: errAny},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ReadJSONL(strings.NewReader(tt.in))
			if tt.wantErr != nil {
				assert.Error(t, err)
				if tt.wantErr != errAny {
					assert.ErrorIs(t, err, tt.wantErr)
				}
				return
			}
			require.NoError(t, err)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ReadJSONL mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestWriteJSONL(t *testing.T) {
	docs := [][]Pair{{{"Is x < y?", "yes"}}, nil}
	var buf bytes.Buffer
	require.NoError(t, WriteJSONL(&buf, docs))
	assert.Equal(t, `[{"question":"Is x < y?","answer":"yes"}]`+"\n[]\n", buf.String())

	back, err := ReadJSONL(&buf)
	require.NoError(t, err)
	assert.Equal(t, [][]Pair{{{"Is x < y?", "yes"}}, {}}, back)
}

func TestReadLines(t *testing.T) {
	got, err := ReadLines(strings.NewReader("a b \r\n\nlast"))
	require.NoError(t, err)
	assert.Equal(t, []string{"a b ", "", "last"}, got)
}
