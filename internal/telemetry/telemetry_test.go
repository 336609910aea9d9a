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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

// TestInitInstruments records through a manual reader and reads the sums
// back.
func TestInitInstruments(t *testing.T) {
	old := MeterProvider
	t.Cleanup(func() { require.NoError(t, InitInstruments(old)) })

	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	require.NoError(t, InitInstruments(mp))

	ctx := context.Background()
	GenerationRequests.Add(ctx, 4)
	GenerationDispatched.Add(ctx, 2)

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(ctx, &rm))
	require.Len(t, rm.ScopeMetrics, 1)

	got := map[string]int64{}
	for _, m := range rm.ScopeMetrics[0].Metrics {
		if sum, ok := m.Data.(metricdata.Sum[int64]); ok {
			for _, dp := range sum.DataPoints {
				got[m.Name] += dp.Value
			}
		}
	}
	assert.Equal(t, int64(4), got[MetricGenerationRequests])
	assert.Equal(t, int64(2), got[MetricGenerationDispatched])
}

// TestNewGRPCConn does not dial eagerly.
func TestNewGRPCConn(t *testing.T) {
	conn, err := NewGRPCConn("localhost:4317")
	require.NoError(t, err)
	assert.NoError(t, conn.Close())
}
