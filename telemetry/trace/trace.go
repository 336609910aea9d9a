//
// Tencent is pleased to support the open source community by making trpc-treqa-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-treqa-go is licensed under the Apache License Version 2.0.
//
//

// Package trace exports treqa pipeline spans over OTLP.
package trace

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"

	itelemetry "trpc.group/trpc-go/trpc-treqa-go/internal/telemetry"
)

const tracesEndpointEnv = "OTEL_EXPORTER_OTLP_TRACES_ENDPOINT"

// Tracer is used by every treqa stage. It follows the global provider
// until Start installs an exporting one.
var Tracer trace.Tracer = otel.Tracer(itelemetry.InstrumentName)

// Start installs an OTLP exporting tracer provider and returns its
// shutdown function.
func Start(ctx context.Context, opts ...Option) (clean func() error, err error) {
	o := &options{
		protocol: itelemetry.ProtocolGRPC,
		resource: itelemetry.DefaultResourceConfig(),
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.endpoint == "" {
		o.endpoint = tracesEndpoint(o.protocol)
	}

	res, err := itelemetry.BuildResource(ctx, o.resource)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	var exporter sdktrace.SpanExporter
	switch o.protocol {
	case itelemetry.ProtocolHTTP:
		exporter, err = newHTTPExporter(ctx, o)
	default:
		exporter, err = newGRPCExporter(ctx, o)
	}
	if err != nil {
		return nil, err
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tp)
	Tracer = tp.Tracer(itelemetry.InstrumentName)
	return func() error {
		return tp.Shutdown(context.Background())
	}, nil
}

func newHTTPExporter(ctx context.Context, o *options) (sdktrace.SpanExporter, error) {
	httpOpts := []otlptracehttp.Option{
		otlptracehttp.WithEndpoint(o.endpoint),
		otlptracehttp.WithInsecure(),
	}
	if o.endpointURL != "" {
		endpoint, urlPath, err := parseEndpointURL(o.endpointURL)
		if err != nil {
			return nil, err
		}
		httpOpts = append(httpOpts,
			otlptracehttp.WithEndpoint(endpoint),
			otlptracehttp.WithURLPath(urlPath))
	}
	if len(o.headers) > 0 {
		httpOpts = append(httpOpts, otlptracehttp.WithHeaders(o.headers))
	}
	exp, err := otlptracehttp.New(ctx, httpOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP trace exporter: %w", err)
	}
	return exp, nil
}

func newGRPCExporter(ctx context.Context, o *options) (sdktrace.SpanExporter, error) {
	grpcOpts := []otlptracegrpc.Option{
		otlptracegrpc.WithEndpoint(o.endpoint),
		otlptracegrpc.WithInsecure(),
	}
	if o.endpointURL != "" {
		grpcOpts = append(grpcOpts, otlptracegrpc.WithEndpointURL(o.endpointURL))
	}
	if len(o.headers) > 0 {
		grpcOpts = append(grpcOpts, otlptracegrpc.WithHeaders(o.headers))
	}
	exp, err := otlptracegrpc.New(ctx, grpcOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create gRPC trace exporter: %w", err)
	}
	return exp, nil
}

func tracesEndpoint(protocol string) string {
	return itelemetry.SignalEndpoint(tracesEndpointEnv, protocol)
}

// parseEndpointURL splits a collector URL into host:port and path. The
// scheme is optional.
func parseEndpointURL(raw string) (endpoint, urlPath string, err error) {
	s := raw
	if !strings.Contains(s, "://") {
		s = "http://" + s
	}
	u, err := url.Parse(s)
	if err != nil {
		return "", "", fmt.Errorf("parse endpoint url %q: %w", raw, err)
	}
	if u.Host == "" {
		return "", "", fmt.Errorf("endpoint url %q has no host", raw)
	}
	urlPath = u.Path
	if urlPath == "" {
		urlPath = "/"
	}
	return u.Host, urlPath, nil
}

// Option configures Start.
type Option func(*options)

type options struct {
	endpoint    string
	endpointURL string
	protocol    string
	headers     map[string]string
	resource    itelemetry.ResourceConfig
}

// WithEndpoint sets the collector host:port.
func WithEndpoint(endpoint string) Option {
	return func(o *options) { o.endpoint = endpoint }
}

// WithEndpointURL sets a full collector URL. It overrides WithEndpoint.
func WithEndpointURL(endpointURL string) Option {
	return func(o *options) { o.endpointURL = endpointURL }
}

// WithProtocol selects "grpc" (default) or "http".
func WithProtocol(protocol string) Option {
	return func(o *options) { o.protocol = protocol }
}

// WithHeaders adds headers to every export request.
func WithHeaders(headers map[string]string) Option {
	return func(o *options) { o.headers = headers }
}

// WithServiceName overrides the service.name resource attribute.
func WithServiceName(name string) Option {
	return func(o *options) { o.resource.ServiceName = name }
}

// WithResourceAttributes appends custom resource attributes.
func WithResourceAttributes(attrs ...attribute.KeyValue) Option {
	return func(o *options) { o.resource.Attributes = append(o.resource.Attributes, attrs...) }
}
