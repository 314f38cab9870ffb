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
	"io"
	"sync"

	"go.uber.org/callstub/api/call"
	"go.uber.org/callstub/callerrors"
	"go.uber.org/callstub/metadata"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	grpcmetadata "google.golang.org/grpc/metadata"
	"google.golang.org/grpc/peer"
)

var _bidiStream = &grpc.StreamDesc{
	StreamName:    "callstub",
	ClientStreams: true,
	ServerStreams: true,
}

var _ call.Stream = (*stream)(nil)

// stream adapts a grpc.ClientStream to call.Stream. The gRPC stream is only
// opened when the client's headers are sent, since gRPC sends them as part
// of opening it.
type stream struct {
	ctx    context.Context
	cancel context.CancelFunc
	conn   *grpc.ClientConn
	method string
	target string
	logger *zap.Logger

	readyOnce sync.Once
	ready     chan struct{}
	cs        grpc.ClientStream
	readyErr  error

	mu     sync.Mutex
	status *callerrors.Status
}

func newStream(ctx context.Context, cancel context.CancelFunc, conn *grpc.ClientConn, method, target string, logger *zap.Logger) *stream {
	return &stream{
		ctx:    ctx,
		cancel: cancel,
		conn:   conn,
		method: method,
		target: target,
		logger: logger,
		ready:  make(chan struct{}),
	}
}

func (s *stream) markReady(cs grpc.ClientStream, err error) {
	s.readyOnce.Do(func() {
		s.cs = cs
		s.readyErr = err
		close(s.ready)
	})
}

func (s *stream) waitReady(ctx context.Context) error {
	select {
	case <-s.ready:
		return s.readyErr
	default:
	}
	select {
	case <-s.ready:
		return s.readyErr
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *stream) SendHeaders(_ context.Context, md metadata.MD) error {
	ctx := grpcmetadata.NewOutgoingContext(s.ctx, toGRPCMetadata(md))
	cs, err := s.conn.NewStream(ctx, _bidiStream, s.method)
	if err != nil {
		s.logger.Debug("Failed to open stream.", zap.String("method", s.method), zap.Error(err))
	}
	s.markReady(cs, err)
	return toCallError(err)
}

func (s *stream) SendMessage(ctx context.Context, msg []byte, flags uint32) error {
	if err := s.waitReady(ctx); err != nil {
		return toCallError(err)
	}
	if flags != 0 {
		s.logger.Debug("gRPC does not support per-message write flags.", zap.Uint32("flags", flags))
	}
	// io.EOF means the server already ended the call; the status says how.
	return toCallError(s.cs.SendMsg(&msg))
}

func (s *stream) CloseSend(ctx context.Context) error {
	if err := s.waitReady(ctx); err != nil {
		return toCallError(err)
	}
	return toCallError(s.cs.CloseSend())
}

func (s *stream) Headers(ctx context.Context) (metadata.MD, error) {
	if err := s.waitReady(ctx); err != nil {
		return metadata.MD{}, toCallError(err)
	}
	md, err := s.cs.Header()
	if err != nil {
		return metadata.MD{}, toCallError(err)
	}
	return fromGRPCMetadata(md), nil
}

func (s *stream) RecvMessage(ctx context.Context) ([]byte, error) {
	if err := s.waitReady(ctx); err != nil {
		s.finish(err, nil)
		return nil, toCallError(err)
	}
	var msg []byte
	if err := s.cs.RecvMsg(&msg); err != nil {
		st := s.finish(err, s.cs.Trailer())
		if st.OK() {
			return nil, io.EOF
		}
		return nil, st.Err()
	}
	return msg, nil
}

func (s *stream) Status(ctx context.Context) *callerrors.Status {
	if st := s.finished(); st != nil {
		return st
	}
	if err := s.waitReady(ctx); err != nil {
		return s.finish(err, nil)
	}
	for {
		var discard []byte
		if err := s.cs.RecvMsg(&discard); err != nil {
			return s.finish(err, s.cs.Trailer())
		}
	}
}

func (s *stream) finished() *callerrors.Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status.Clone()
}

// finish records the status the stream ended with. The first status wins.
func (s *stream) finish(err error, trailer grpcmetadata.MD) *callerrors.Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status == nil {
		s.status = toStatus(err, trailer)
		s.cancel()
	}
	return s.status.Clone()
}

func (s *stream) Cancel() {
	s.cancel()
	s.markReady(nil, context.Canceled)
}

func (s *stream) Peer() string {
	select {
	case <-s.ready:
	default:
		return s.target
	}
	if s.cs == nil {
		return s.target
	}
	if p, ok := peer.FromContext(s.cs.Context()); ok && p.Addr != nil {
		return p.Addr.String()
	}
	return s.target
}
