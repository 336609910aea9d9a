//
// Tencent is pleased to support the open source community by making trpc-treqa-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-treqa-go is licensed under the Apache License Version 2.0.
//
//

package telemetry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
)

func TestSignalEndpoint(t *testing.T) {
	tests := []struct {
		name     string
		signal   string
		generic  string
		protocol string
		want     string
	}{
		{"signal wins", "trace:4317", "generic:4317", ProtocolGRPC, "trace:4317"},
		{"generic fallback", "", "generic:4317", ProtocolGRPC, "generic:4317"},
		{"grpc default", "", "", ProtocolGRPC, "localhost:4317"},
		{"http default", "", "", ProtocolHTTP, "localhost:4318"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("OTEL_EXPORTER_OTLP_TRACES_ENDPOINT", tt.signal)
			t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", tt.generic)
			assert.Equal(t, tt.want, SignalEndpoint("OTEL_EXPORTER_OTLP_TRACES_ENDPOINT", tt.protocol))
		})
	}
}

func TestBuildResource(t *testing.T) {
	t.Setenv("OTEL_SERVICE_NAME", "env-service")
	t.Setenv("OTEL_RESOURCE_ATTRIBUTES", "team=ai,env=staging")

	cfg := DefaultResourceConfig()
	cfg.Attributes = []attribute.KeyValue{attribute.String("team", "mt")}
	res, err := BuildResource(t.Context(), cfg)
	require.NoError(t, err)

	got := map[string]string{}
	for iter := res.Iter(); iter.Next(); {
		kv := iter.Attribute()
		got[string(kv.Key)] = kv.Value.Emit()
	}
	assert.Equal(t, "env-service", got[string(semconv.ServiceNameKey)])
	assert.Equal(t, ServiceNamespace, got[string(semconv.ServiceNamespaceKey)])
	assert.Equal(t, "staging", got["env"])
	assert.Equal(t, "mt", got["team"])
}
