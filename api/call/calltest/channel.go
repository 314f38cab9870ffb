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

package calltest

import (
	"context"
	"sync"

	"go.uber.org/atomic"
	"go.uber.org/callstub/api/call"
	"go.uber.org/callstub/callerrors"
	"go.uber.org/callstub/internal/clock"
)

// ChannelOption customizes a Channel.
type ChannelOption func(*Channel)

// ChannelClock sets the clock used for call deadlines.
func ChannelClock(clk clock.Clock) ChannelOption {
	return func(ch *Channel) {
		ch.clock = clk
	}
}

// Channel is an in-memory call.Channel. Every call it creates is handed to
// Accept as a ServerCall.
type Channel struct {
	target string
	clock  clock.Clock

	once     sync.Once
	incoming chan *ServerCall
	closed   chan struct{}

	callCount atomic.Int64
}

var _ call.Channel = (*Channel)(nil)

// NewChannel builds an in-memory channel for the given target.
func NewChannel(target string, opts ...ChannelOption) *Channel {
	ch := &Channel{
		target:   target,
		clock:    clock.NewReal(),
		incoming: make(chan *ServerCall, _queueSize),
		closed:   make(chan struct{}),
	}
	for _, opt := range opts {
		opt(ch)
	}
	return ch
}

// NewCall implements call.Channel.
func (ch *Channel) NewCall(ctx context.Context, req *call.Request) (call.Call, error) {
	select {
	case <-ch.closed:
		return nil, callerrors.Newf(callerrors.CodeUnavailable, "channel to %q is closed", ch.target)
	default:
	}

	p := newPipe("calltest:" + ch.target)
	server := &ServerCall{p: p, method: req.Method, deadline: req.Deadline}
	select {
	case ch.incoming <- server:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	ch.callCount.Inc()

	return call.New(ctx, clientStream{p: p}, call.WithDeadline(req.Deadline), call.WithClock(ch.clock)), nil
}

// Accept waits for the next call made on the channel.
func (ch *Channel) Accept(ctx context.Context) (*ServerCall, error) {
	select {
	case s := <-ch.incoming:
		return s, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Calls returns the number of calls created so far.
func (ch *Channel) Calls() int {
	return int(ch.callCount.Load())
}

// Target implements call.Channel.
func (ch *Channel) Target() string {
	return ch.target
}

// Close implements call.Channel.
func (ch *Channel) Close() error {
	ch.once.Do(func() { close(ch.closed) })
	return nil
}
