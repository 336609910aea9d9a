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
	"context"
	"os"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
)

// ResourceConfig names the service an exporter reports as.
type ResourceConfig struct {
	ServiceName      string
	ServiceNamespace string
	ServiceVersion   string
	Attributes       []attribute.KeyValue
}

// DefaultResourceConfig reports as the treqa service.
func DefaultResourceConfig() ResourceConfig {
	return ResourceConfig{
		ServiceName:      ServiceName,
		ServiceNamespace: ServiceNamespace,
		ServiceVersion:   ServiceVersion,
	}
}

// BuildResource merges cfg with OTEL_SERVICE_NAME and
// OTEL_RESOURCE_ATTRIBUTES. The environment wins over cfg for the service
// fields; cfg.Attributes win over the environment.
func BuildResource(ctx context.Context, cfg ResourceConfig) (*resource.Resource, error) {
	opts := []resource.Option{
		resource.WithAttributes(
			semconv.ServiceNamespace(cfg.ServiceNamespace),
			semconv.ServiceName(cfg.ServiceName),
			semconv.ServiceVersion(cfg.ServiceVersion),
		),
		resource.WithFromEnv(),
		resource.WithTelemetrySDK(),
	}
	if len(cfg.Attributes) > 0 {
		opts = append(opts, resource.WithAttributes(cfg.Attributes...))
	}
	return resource.New(ctx, opts...)
}

// SignalEndpoint resolves an exporter endpoint: the signal specific
// variable first, then OTEL_EXPORTER_OTLP_ENDPOINT, then the protocol
// default.
func SignalEndpoint(signalEnv, protocol string) string {
	if ep := os.Getenv(signalEnv); ep != "" {
		return ep
	}
	if ep := os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"); ep != "" {
		return ep
	}
	if protocol == ProtocolHTTP {
		return "localhost:4318"
	}
	return "localhost:4317"
}
