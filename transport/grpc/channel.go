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

package grpc

import (
	"context"
	"sync"

	"go.uber.org/atomic"
	"go.uber.org/callstub/api/call"
	"go.uber.org/callstub/callerrors"
	"go.uber.org/zap"
	"google.golang.org/grpc"
)

var _ call.Channel = (*Channel)(nil)

// Channel is a call.Channel backed by a grpc.ClientConn.
type Channel struct {
	target string
	conn   *grpc.ClientConn
	logger *zap.Logger

	closed    atomic.Bool
	closeOnce sync.Once
	closeErr  error
}

// NewChannel dials target. Dialing does not wait for the connection to be
// established; calls made before it is up wait for it.
func NewChannel(target string, opts ...ChannelOption) (*Channel, error) {
	o := newChannelOptions(opts)
	dialOptions, err := o.grpcDialOptions()
	if err != nil {
		return nil, err
	}
	conn, err := grpc.Dial(target, dialOptions...)
	if err != nil {
		return nil, err
	}
	return &Channel{
		target: target,
		conn:   conn,
		logger: o.logger.With(zap.String("target", target)),
	}, nil
}

// NewCall implements call.Channel.
func (c *Channel) NewCall(ctx context.Context, req *call.Request) (call.Call, error) {
	if c.closed.Load() {
		return nil, callerrors.Newf(callerrors.CodeUnavailable, "channel to %q is closed", c.target)
	}

	streamCtx, cancel := context.WithCancel(ctx)
	if !req.Deadline.IsZero() {
		// The server learns about the deadline through the grpc-timeout
		// header. Expiry is still driven by the call.
		streamCtx, cancel = withDeadline(streamCtx, cancel, req)
	}
	s := newStream(streamCtx, cancel, c.conn, req.Method, c.target, c.logger)
	return call.New(ctx, s, call.WithDeadline(req.Deadline)), nil
}

func withDeadline(ctx context.Context, cancel context.CancelFunc, req *call.Request) (context.Context, context.CancelFunc) {
	ctx, cancelDeadline := context.WithDeadline(ctx, req.Deadline)
	return ctx, func() {
		cancelDeadline()
		cancel()
	}
}

// Target implements call.Channel.
func (c *Channel) Target() string {
	return c.target
}

// Close implements call.Channel. Calls in flight are cancelled by the
// connection.
func (c *Channel) Close() error {
	c.closeOnce.Do(func() {
		c.closed.Store(true)
		c.closeErr = c.conn.Close()
	})
	return c.closeErr
}
