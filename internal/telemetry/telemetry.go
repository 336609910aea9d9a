//
// Tencent is pleased to support the open source community by making trpc-treqa-go available.
//
// Copyright (C) 2025 Tencent.  All rights reserved.
//
// trpc-treqa-go is licensed under the Apache License Version 2.0.
//
//

// Package telemetry holds the instrument handles and constants shared by
// the treqa trace and metric packages.
package telemetry

import (
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

// Resource defaults.
const (
	ServiceName      = "treqa"
	ServiceVersion   = "v0.1.0"
	ServiceNamespace = "trpc-go-treqa"
	InstrumentName   = "trpc.treqa.go"
)

// OTLP exporter protocols.
const (
	ProtocolGRPC = "grpc"
	ProtocolHTTP = "http"
)

// Span names for the pipeline stages.
const (
	SpanGenerate         = "treqa.generate"
	SpanQuestions        = "treqa.questions"
	SpanPredictedAnswers = "treqa.predicted_answers"
	SpanReferenceAnswers = "treqa.reference_answers"
	SpanMatch            = "treqa.match"
	SpanAggregate        = "treqa.aggregate"
)

// Span and metric attribute keys.
const (
	KeyChats       = attribute.Key("treqa.generation.chats")
	KeyUniqueChats = attribute.Key("treqa.generation.unique_chats")
	KeyDedup       = attribute.Key("treqa.generation.dedup")
	KeyDocuments   = attribute.Key("treqa.documents")
	KeyQuestions   = attribute.Key("treqa.questions")
	KeyScorer      = attribute.Key("treqa.scorer")
	KeySkipReason  = attribute.Key("treqa.parser.reason")
	KeyFallback    = attribute.Key("treqa.scorer.fallback")
)

// Metric names.
const (
	MetricGenerationRequests   = "treqa.generation.requests"
	MetricGenerationDispatched = "treqa.generation.dispatched"
	MetricParserSkipped        = "treqa.parser.skipped"
	MetricScorerFallbacks      = "treqa.scorer.fallbacks"
)

// Instruments. They are no-ops until InitInstruments runs with a real
// provider.
var (
	MeterProvider        metric.MeterProvider = noop.NewMeterProvider()
	GenerationRequests   metric.Int64Counter
	GenerationDispatched metric.Int64Counter
	ParserSkipped        metric.Int64Counter
	ScorerFallbacks      metric.Int64Counter
)

func init() {
	if err := InitInstruments(MeterProvider); err != nil {
		panic(err)
	}
}

// InitInstruments creates every treqa instrument from mp.
func InitInstruments(mp metric.MeterProvider) error {
	meter := mp.Meter(InstrumentName)
	var err error
	if GenerationRequests, err = meter.Int64Counter(MetricGenerationRequests,
		metric.WithDescription("Chats requested from the generation layer"),
		metric.WithUnit("1")); err != nil {
		return fmt.Errorf("create %s: %w", MetricGenerationRequests, err)
	}
	if GenerationDispatched, err = meter.Int64Counter(MetricGenerationDispatched,
		metric.WithDescription("Chats actually sent to the backend after deduplication"),
		metric.WithUnit("1")); err != nil {
		return fmt.Errorf("create %s: %w", MetricGenerationDispatched, err)
	}
	if ParserSkipped, err = meter.Int64Counter(MetricParserSkipped,
		metric.WithDescription("Generated QA blocks rejected by the output parser"),
		metric.WithUnit("1")); err != nil {
		return fmt.Errorf("create %s: %w", MetricParserSkipped, err)
	}
	if ScorerFallbacks, err = meter.Int64Counter(MetricScorerFallbacks,
		metric.WithDescription("Documents scored with the fallback policy"),
		metric.WithUnit("1")); err != nil {
		return fmt.Errorf("create %s: %w", MetricScorerFallbacks, err)
	}
	MeterProvider = mp
	return nil
}

// NewGRPCConn opens an insecure gRPC connection to an OpenTelemetry
// collector.
func NewGRPCConn(endpoint string) (*grpc.ClientConn, error) {
	conn, err := grpc.NewClient(endpoint, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, fmt.Errorf("failed to create gRPC connection to collector: %w", err)
	}
	return conn, nil
}
