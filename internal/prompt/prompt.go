//
// Tencent is pleased to support the open source community by making trpc-treqa-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-treqa-go is licensed under the Apache License Version 2.0.
//
//

// Package prompt fills "{name}" placeholders in prompt templates and looks
// templates up by name.
package prompt

import (
	"fmt"
	"sort"
	"strings"
)

// Format replaces every {key} in tmpl with vars[key]. "{{" and "}}" emit
// literal braces. Placeholders without a value are kept verbatim.
func Format(tmpl string, vars map[string]string) string {
	var b strings.Builder
	b.Grow(len(tmpl))
	for i := 0; i < len(tmpl); {
		c := tmpl[i]
		switch {
		case c == '{' && i+1 < len(tmpl) && tmpl[i+1] == '{':
			b.WriteByte('{')
			i += 2
		case c == '}' && i+1 < len(tmpl) && tmpl[i+1] == '}':
			b.WriteByte('}')
			i += 2
		case c == '{':
			end := strings.IndexByte(tmpl[i+1:], '}')
			if end < 0 {
				b.WriteString(tmpl[i:])
				return b.String()
			}
			key := tmpl[i+1 : i+1+end]
			if v, ok := vars[key]; ok {
				b.WriteString(v)
			} else {
				b.WriteString(tmpl[i : i+2+end])
			}
			i += end + 2
		default:
			b.WriteByte(c)
			i++
		}
	}
	return b.String()
}

// Set is a named family of templates.
type Set struct {
	family    string
	templates map[string]string
}

// NewSet creates a template family.
func NewSet(family string, templates map[string]string) Set {
	return Set{family: family, templates: templates}
}

// Get returns the template called name.
func (s Set) Get(name string) (string, error) {
	t, ok := s.templates[name]
	if !ok {
		return "", fmt.Errorf("unknown %s template %q (available: %s)",
			s.family, name, strings.Join(s.Names(), ", "))
	}
	return t, nil
}

// Has reports whether name exists in the family.
func (s Set) Has(name string) bool {
	_, ok := s.templates[name]
	return ok
}

// Names lists the templates in sorted order.
func (s Set) Names() []string {
	names := make([]string, 0, len(s.templates))
	for n := range s.templates {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
