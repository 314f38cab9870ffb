// Copyright (c) 2025 Uber Technologies, Inc.
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

package observability

import (
	"time"

	"go.uber.org/net/metrics"
	"go.uber.org/net/metrics/bucket"
	"go.uber.org/zap"
)

// Latency buckets for histograms.
var _bucketsMs = bucket.NewRPCLatency()

// An edge is the set of metrics for one method and call shape.
type edge struct {
	calls            *metrics.Counter
	successes        *metrics.Counter
	failures         *metrics.CounterVector
	successLatencies *metrics.Histogram
	failureLatencies *metrics.Histogram
}

func newEdge(logger *zap.Logger, meter *metrics.Scope, tags metrics.Tags) *edge {
	calls, err := meter.Counter(metrics.Spec{
		Name:      "calls",
		Help:      "Total number of calls.",
		ConstTags: tags,
	})
	if err != nil {
		logger.Error("Failed to create calls counter.", zap.Error(err))
	}
	successes, err := meter.Counter(metrics.Spec{
		Name:      "successes",
		Help:      "Number of calls that finished with an OK status.",
		ConstTags: tags,
	})
	if err != nil {
		logger.Error("Failed to create successes counter.", zap.Error(err))
	}
	failures, err := meter.CounterVector(metrics.Spec{
		Name:      "failures",
		Help:      "Number of calls that finished with a non-OK status.",
		ConstTags: tags,
		VarTags:   []string{"code"},
	})
	if err != nil {
		logger.Error("Failed to create failures vector.", zap.Error(err))
	}
	successLatencies, err := meter.Histogram(metrics.HistogramSpec{
		Spec: metrics.Spec{
			Name:      "success_latency_ms",
			Help:      "Latency distribution of successful calls.",
			ConstTags: tags,
		},
		Unit:    time.Millisecond,
		Buckets: _bucketsMs,
	})
	if err != nil {
		logger.Error("Failed to create success latency distribution.", zap.Error(err))
	}
	failureLatencies, err := meter.Histogram(metrics.HistogramSpec{
		Spec: metrics.Spec{
			Name:      "failure_latency_ms",
			Help:      "Latency distribution of failed calls.",
			ConstTags: tags,
		},
		Unit:    time.Millisecond,
		Buckets: _bucketsMs,
	})
	if err != nil {
		logger.Error("Failed to create failure latency distribution.", zap.Error(err))
	}

	return &edge{
		calls:            calls,
		successes:        successes,
		failures:         failures,
		successLatencies: successLatencies,
		failureLatencies: failureLatencies,
	}
}
