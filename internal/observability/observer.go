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

// Package observability records logs, metrics and a trace span for every
// call a client stub makes.
package observability

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/opentracing/opentracing-go"
	"go.uber.org/net/metrics"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var _timeNow = time.Now // for tests

// RPCType names the shape of a call.
type RPCType string

// The four call shapes.
const (
	Unary           RPCType = "unary"
	ClientStreaming RPCType = "client_streaming"
	ServerStreaming RPCType = "server_streaming"
	BidiStreaming   RPCType = "bidi_streaming"
)

// Config configures an Observer.
type Config struct {
	// Logger defaults to a no-op logger.
	Logger *zap.Logger

	// Scope defaults to a scope nobody reads.
	Scope *metrics.Scope

	// Tracer defaults to the global tracer.
	Tracer opentracing.Tracer

	// Target is added to every metric and span. Defaults to "unknown".
	Target string
}

// Observer hands out per-call instrumentation.
type Observer struct {
	logger *zap.Logger
	scope  *metrics.Scope
	tracer opentracing.Tracer
	target string

	edgesMu sync.RWMutex
	edges   map[edgeKey]*edge
}

// New builds an Observer.
func New(cfg Config) *Observer {
	o := &Observer{
		logger: cfg.Logger,
		scope:  cfg.Scope,
		tracer: cfg.Tracer,
		target: cfg.Target,
		edges:  make(map[edgeKey]*edge),
	}
	if o.logger == nil {
		o.logger = zap.NewNop()
	}
	if o.scope == nil {
		o.scope = metrics.New().Scope()
	}
	if o.tracer == nil {
		o.tracer = opentracing.GlobalTracer()
	}
	if o.target == "" {
		o.target = "unknown"
	}
	return o
}

// Logger returns the observer's logger.
func (o *Observer) Logger() *zap.Logger {
	return o.logger
}

// Begin starts instrumenting a call. The returned context carries the
// call's span.
func (o *Observer) Begin(ctx context.Context, method string, rpcType RPCType) (context.Context, *Call) {
	e := o.getOrCreateEdge(method, rpcType)
	e.calls.Inc()

	id := uuid.New().String()

	var parent opentracing.SpanContext
	if ps := opentracing.SpanFromContext(ctx); ps != nil {
		parent = ps.Context()
	}
	span := o.tracer.StartSpan(
		method,
		opentracing.ChildOf(parent),
		opentracing.StartTime(_timeNow()),
		opentracing.Tags{
			"span.kind": "client",
			"component": "callstub",
			"rpc.type":  string(rpcType),
			"target":    o.target,
			"call.id":   id,
		},
	)

	c := &Call{
		edge:    e,
		id:      id,
		method:  method,
		rpcType: rpcType,
		span:    span,
		started: _timeNow(),
		logger:  o.logger.With(zap.String("method", method), zap.String("callID", id)),
	}
	return opentracing.ContextWithSpan(ctx, span), c
}

type edgeKey struct {
	method  string
	rpcType RPCType
}

func (o *Observer) getOrCreateEdge(method string, rpcType RPCType) *edge {
	key := edgeKey{method: method, rpcType: rpcType}

	o.edgesMu.RLock()
	e := o.edges[key]
	o.edgesMu.RUnlock()
	if e != nil {
		return e
	}

	o.edgesMu.Lock()
	defer o.edgesMu.Unlock()
	if e, ok := o.edges[key]; ok {
		return e
	}
	e = newEdge(o.logger, o.scope, metrics.Tags{
		"target":    o.target,
		"procedure": method,
		"rpc_type":  string(rpcType),
	})
	o.edges[key] = e
	return e
}

func levelFor(success bool) zapcore.Level {
	if success {
		return zapcore.DebugLevel
	}
	return zapcore.ErrorLevel
}
