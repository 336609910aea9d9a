//
// Tencent is pleased to support the open source community by making trpc-treqa-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-treqa-go is licensed under the Apache License Version 2.0.
//
//

// Package metric exports treqa pipeline counters over OTLP.
package metric

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"

	itelemetry "trpc.group/trpc-go/trpc-treqa-go/internal/telemetry"
)

const metricsEndpointEnv = "OTEL_EXPORTER_OTLP_METRICS_ENDPOINT"

// InitMeterProvider installs mp globally and rebuilds the treqa counters on
// it.
func InitMeterProvider(mp metric.MeterProvider) error {
	if err := itelemetry.InitInstruments(mp); err != nil {
		return err
	}
	otel.SetMeterProvider(mp)
	return nil
}

// GetMeterProvider returns the provider the counters were built on.
func GetMeterProvider() metric.MeterProvider {
	return itelemetry.MeterProvider
}

// NewMeterProvider creates a meter provider exporting to an OTLP collector.
// Without WithEndpoint the endpoint comes from
// OTEL_EXPORTER_OTLP_METRICS_ENDPOINT, then OTEL_EXPORTER_OTLP_ENDPOINT.
func NewMeterProvider(ctx context.Context, opts ...Option) (*sdkmetric.MeterProvider, error) {
	o := &options{
		resource: itelemetry.DefaultResourceConfig(),
		protocol: itelemetry.ProtocolGRPC,
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.endpoint == "" {
		o.endpoint = itelemetry.SignalEndpoint(metricsEndpointEnv, o.protocol)
	}

	res, err := itelemetry.BuildResource(ctx, o.resource)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	var reader sdkmetric.Reader
	switch o.protocol {
	case itelemetry.ProtocolHTTP:
		reader, err = httpReader(ctx, o.endpoint)
	case itelemetry.ProtocolGRPC:
		reader, err = grpcReader(ctx, o.endpoint)
	default:
		return nil, fmt.Errorf("unsupported metrics protocol %q", o.protocol)
	}
	if err != nil {
		return nil, err
	}
	return newProvider(reader, res), nil
}

func newProvider(reader sdkmetric.Reader, res *resource.Resource) *sdkmetric.MeterProvider {
	return sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(reader),
		sdkmetric.WithResource(res),
	)
}

func httpReader(ctx context.Context, endpoint string) (sdkmetric.Reader, error) {
	exp, err := otlpmetrichttp.New(ctx,
		otlpmetrichttp.WithEndpoint(endpoint),
		otlpmetrichttp.WithInsecure())
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP metrics exporter: %w", err)
	}
	return sdkmetric.NewPeriodicReader(exp), nil
}

func grpcReader(ctx context.Context, endpoint string) (sdkmetric.Reader, error) {
	conn, err := itelemetry.NewGRPCConn(endpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to create metrics connection: %w", err)
	}
	exp, err := otlpmetricgrpc.New(ctx, otlpmetricgrpc.WithGRPCConn(conn))
	if err != nil {
		return nil, fmt.Errorf("failed to create metrics exporter: %w", err)
	}
	return sdkmetric.NewPeriodicReader(exp), nil
}

// Option configures NewMeterProvider.
type Option func(*options)

type options struct {
	endpoint string
	protocol string
	resource itelemetry.ResourceConfig
}

// WithEndpoint sets the collector host:port. It overrides the environment.
func WithEndpoint(endpoint string) Option {
	return func(o *options) { o.endpoint = endpoint }
}

// WithProtocol selects "grpc" (default) or "http".
func WithProtocol(protocol string) Option {
	return func(o *options) { o.protocol = protocol }
}

// WithServiceName overrides the service.name resource attribute.
func WithServiceName(name string) Option {
	return func(o *options) { o.resource.ServiceName = name }
}

// WithResourceAttributes appends custom resource attributes.
func WithResourceAttributes(attrs ...attribute.KeyValue) Option {
	return func(o *options) { o.resource.Attributes = append(o.resource.Attributes, attrs...) }
}
