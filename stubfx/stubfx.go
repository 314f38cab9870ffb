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

// Package stubfx provides a client stub to an Fx application.
//
// The application supplies a stubconfig.Config. A logger, tracer, metrics
// scope and channel are used when present. The stub is closed when the
// application stops.
package stubfx

import (
	"context"

	"github.com/opentracing/opentracing-go"
	"go.uber.org/callstub"
	"go.uber.org/callstub/api/call"
	"go.uber.org/callstub/stubconfig"
	"go.uber.org/fx"
	"go.uber.org/net/metrics"
	"go.uber.org/zap"
)

// Module provides a *callstub.ClientStub.
var Module = fx.Options(
	fx.Provide(NewClientStub),
)

// Params defines the dependencies of this module.
type Params struct {
	fx.In

	Lifecycle fx.Lifecycle
	Config    stubconfig.Config
	Logger    *zap.Logger        `optional:"true"`
	Tracer    opentracing.Tracer `optional:"true"`
	Meter     *metrics.Scope     `optional:"true"`
	Channel   call.Channel       `optional:"true"`
}

// Result defines the values produced by this module.
type Result struct {
	fx.Out

	Stub *callstub.ClientStub
}

// NewClientStub builds a stub from configuration and closes it on stop.
func NewClientStub(p Params) (Result, error) {
	var opts []callstub.StubOption
	if p.Logger != nil {
		opts = append(opts, callstub.Logger(p.Logger.Named("callstub")))
	}
	if p.Tracer != nil {
		opts = append(opts, callstub.Tracer(p.Tracer))
	}
	if p.Meter != nil {
		opts = append(opts, callstub.Meter(p.Meter))
	}
	if p.Channel != nil {
		opts = append(opts, callstub.ChannelOverride(p.Channel))
	}

	stub, err := p.Config.Build(opts...)
	if err != nil {
		return Result{}, err
	}
	p.Lifecycle.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return stub.Close()
		},
	})
	return Result{Stub: stub}, nil
}
