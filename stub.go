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
	"context"
	"reflect"
	"time"

	"go.uber.org/callstub/activecall"
	"go.uber.org/callstub/api/call"
	"go.uber.org/callstub/callerrors"
	"go.uber.org/callstub/credentials"
	"go.uber.org/callstub/encoding"
	"go.uber.org/callstub/internal/clock"
	"go.uber.org/callstub/internal/observability"
	grpctransport "go.uber.org/callstub/transport/grpc"
	"go.uber.org/zap"
)

// ClientStub makes calls to a single target.
//
// A ClientStub is safe for concurrent use. Calls made through it share
// nothing but the channel.
type ClientStub struct {
	target         string
	channel        call.Channel
	ownsChannel    bool
	creds          credentials.CallCredentials
	observer       *observability.Observer
	logger         *zap.Logger
	defaultTimeout time.Duration
	clock          clock.Clock
}

// NewClientStub builds a stub for target.
//
// creds secure the channel. Use credentials.Insecure() for a plaintext
// channel. Call credentials composed into creds run on every call.
//
// Unless a ChannelOverride is given, the stub dials a gRPC channel and
// closes it on Close.
func NewClientStub(target string, creds credentials.ChannelCredentials, opts ...StubOption) (*ClientStub, error) {
	if isNil(creds) {
		return nil, &callerrors.ConstructionError{
			Message: "invalid credentials: expected channel credentials or credentials.Insecure()",
		}
	}

	o := stubOptions{clock: clock.NewReal()}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = zap.NewNop()
	}
	logger := o.logger.With(zap.String("target", target))

	s := &ClientStub{
		target:         target,
		channel:        o.channel,
		creds:          creds.CallCredentials(),
		logger:         logger,
		defaultTimeout: o.defaultTimeout,
		clock:          o.clock,
	}

	if o.channelOverride {
		if isNil(o.channel) {
			return nil, &callerrors.ConstructionError{Message: "invalid channel override: channel is nil"}
		}
	} else {
		ch, err := grpctransport.NewChannel(target,
			grpctransport.Credentials(creds),
			grpctransport.ChannelArgs(o.channelArgs),
			grpctransport.Logger(logger),
		)
		if err != nil {
			return nil, &callerrors.ConstructionError{Message: "cannot create channel to " + target, Cause: err}
		}
		s.channel = ch
		s.ownsChannel = true
	}

	s.observer = observability.New(observability.Config{
		Logger: logger,
		Scope:  o.meter,
		Tracer: o.tracer,
		Target: target,
	})
	logger.Debug("Client stub ready.", zap.Bool("channelOverride", o.channelOverride))
	return s, nil
}

// Target returns the target the stub was built for.
func (s *ClientStub) Target() string {
	return s.target
}

// Close closes the channel the stub dialed. A channel given with
// ChannelOverride is left open.
func (s *ClientStub) Close() error {
	if !s.ownsChannel {
		return nil
	}
	s.logger.Debug("Closing client stub.")
	return s.channel.Close()
}

func (s *ClientStub) start(
	ctx context.Context,
	method string,
	rpcType observability.RPCType,
	marshal encoding.Marshaler,
	unmarshal encoding.Unmarshaler,
	opts []CallOption,
) (*activecall.ActiveCall, error) {
	o, err := newCallOptions(opts)
	if err != nil {
		return nil, err
	}

	ctx, obs := s.observer.Begin(ctx, method, rpcType)
	c, err := s.channel.NewCall(ctx, &call.Request{
		Method:   method,
		Deadline: s.deadline(ctx, o.deadline),
	})
	if err != nil {
		obs.End(callerrors.FromError(err))
		return nil, err
	}

	callOpts := []activecall.Option{
		activecall.WithMetadata(o.md),
		activecall.WithLogger(obs.Logger()),
		activecall.WithObserver(obs),
	}
	if creds := credentials.Compose(s.creds, o.creds); creds != nil {
		callOpts = append(callOpts, activecall.WithCredentials(creds, credentials.AuthInfo{
			Method: method,
			Target: s.target,
		}))
	}
	return activecall.New(c, marshal, unmarshal, callOpts...), nil
}

// deadline picks the earliest of the call's own deadline, the context's and
// the stub's default timeout. The zero time means none applies.
func (s *ClientStub) deadline(ctx context.Context, d time.Time) time.Time {
	if ctxDeadline, ok := ctx.Deadline(); ok {
		d = earliest(d, ctxDeadline)
	}
	if s.defaultTimeout > 0 {
		d = earliest(d, s.clock.Now().Add(s.defaultTimeout))
	}
	return d
}

func earliest(a, b time.Time) time.Time {
	if a.IsZero() || (!b.IsZero() && b.Before(a)) {
		return b
	}
	return a
}

// isNil also catches typed nils stored in an interface.
func isNil(v interface{}) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Chan, reflect.Func, reflect.Interface, reflect.Slice:
		return rv.IsNil()
	}
	return false
}
