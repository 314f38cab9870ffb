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

package callstub

import (
	"time"

	"github.com/opentracing/opentracing-go"
	"go.uber.org/callstub/api/call"
	"go.uber.org/callstub/internal/clock"
	"go.uber.org/net/metrics"
	"go.uber.org/zap"
)

// StubOption customizes a ClientStub.
type StubOption func(*stubOptions)

type stubOptions struct {
	channelArgs     map[string]string
	channel         call.Channel
	logger          *zap.Logger
	tracer          opentracing.Tracer
	meter           *metrics.Scope
	defaultTimeout  time.Duration
	clock           clock.Clock
	channelOverride bool
}

// ChannelArgs passes arguments to the gRPC channel the stub dials. They are
// ignored when a channel override is given.
func ChannelArgs(args map[string]string) StubOption {
	return func(o *stubOptions) {
		o.channelArgs = args
	}
}

// ChannelOverride makes the stub use ch instead of dialing its own channel.
// The stub does not close ch.
func ChannelOverride(ch call.Channel) StubOption {
	return func(o *stubOptions) {
		o.channel = ch
		o.channelOverride = true
	}
}

// Logger sets the logger for the stub and its calls.
func Logger(logger *zap.Logger) StubOption {
	return func(o *stubOptions) {
		o.logger = logger
	}
}

// Tracer sets the tracer calls report spans to. Defaults to
// opentracing.GlobalTracer().
func Tracer(tracer opentracing.Tracer) StubOption {
	return func(o *stubOptions) {
		o.tracer = tracer
	}
}

// Meter sets the scope under which per-method call metrics are kept.
func Meter(meter *metrics.Scope) StubOption {
	return func(o *stubOptions) {
		o.meter = meter
	}
}

// DefaultTimeout bounds every call made through the stub. Calls with an
// earlier deadline keep it. Zero means no bound.
func DefaultTimeout(d time.Duration) StubOption {
	return func(o *stubOptions) {
		o.defaultTimeout = d
	}
}

func withClock(clk clock.Clock) StubOption {
	return func(o *stubOptions) {
		o.clock = clk
	}
}
