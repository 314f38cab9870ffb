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

	"go.uber.org/callstub/activecall"
	"go.uber.org/callstub/encoding"
	"go.uber.org/callstub/internal/observability"
)

// RequestResponse sends req and returns the single response.
func (s *ClientStub) RequestResponse(
	ctx context.Context,
	method string,
	req interface{},
	marshal encoding.Marshaler,
	unmarshal encoding.Unmarshaler,
	opts ...CallOption,
) (interface{}, error) {
	a, err := s.start(ctx, method, observability.Unary, marshal, unmarshal, opts)
	if err != nil {
		return nil, err
	}
	return a.RequestResponse(ctx, req)
}

// ClientStreamer sends every request from reqs and returns the single
// response.
func (s *ClientStub) ClientStreamer(
	ctx context.Context,
	method string,
	reqs activecall.Requests,
	marshal encoding.Marshaler,
	unmarshal encoding.Unmarshaler,
	opts ...CallOption,
) (interface{}, error) {
	a, err := s.start(ctx, method, observability.ClientStreaming, marshal, unmarshal, opts)
	if err != nil {
		return nil, err
	}
	return a.ClientStreamer(ctx, reqs)
}

// ServerStreamer sends req and returns the stream of responses.
func (s *ClientStub) ServerStreamer(
	ctx context.Context,
	method string,
	req interface{},
	marshal encoding.Marshaler,
	unmarshal encoding.Unmarshaler,
	opts ...CallOption,
) (*activecall.ResponseStream, error) {
	a, err := s.start(ctx, method, observability.ServerStreaming, marshal, unmarshal, opts)
	if err != nil {
		return nil, err
	}
	return a.ServerStreamer(ctx, req)
}

// BidiStreamer sends requests from reqs in the background and returns the
// stream of responses. Reading responses does not wait for the requests.
func (s *ClientStub) BidiStreamer(
	ctx context.Context,
	method string,
	reqs activecall.Requests,
	marshal encoding.Marshaler,
	unmarshal encoding.Unmarshaler,
	opts ...CallOption,
) (*activecall.ResponseStream, error) {
	a, err := s.start(ctx, method, observability.BidiStreaming, marshal, unmarshal, opts)
	if err != nil {
		return nil, err
	}
	return a.BidiStreamer(ctx, reqs)
}

// RequestResponseOp is RequestResponse, returned unstarted.
//
// ctx bounds the life of the call, not only its execution. The call is
// created and observed right away, so an operation that is never executed
// must be cancelled to finish it. The same holds for every ...Op method.
func (s *ClientStub) RequestResponseOp(
	ctx context.Context,
	method string,
	req interface{},
	marshal encoding.Marshaler,
	unmarshal encoding.Unmarshaler,
	opts ...CallOption,
) (*activecall.UnaryOperation, error) {
	a, err := s.start(ctx, method, observability.Unary, marshal, unmarshal, opts)
	if err != nil {
		return nil, err
	}
	return activecall.NewRequestResponseOperation(a, req), nil
}

// ClientStreamerOp is ClientStreamer, returned unstarted.
func (s *ClientStub) ClientStreamerOp(
	ctx context.Context,
	method string,
	reqs activecall.Requests,
	marshal encoding.Marshaler,
	unmarshal encoding.Unmarshaler,
	opts ...CallOption,
) (*activecall.UnaryOperation, error) {
	a, err := s.start(ctx, method, observability.ClientStreaming, marshal, unmarshal, opts)
	if err != nil {
		return nil, err
	}
	return activecall.NewClientStreamerOperation(a, reqs), nil
}

// ServerStreamerOp is ServerStreamer, returned unstarted.
func (s *ClientStub) ServerStreamerOp(
	ctx context.Context,
	method string,
	req interface{},
	marshal encoding.Marshaler,
	unmarshal encoding.Unmarshaler,
	opts ...CallOption,
) (*activecall.StreamOperation, error) {
	a, err := s.start(ctx, method, observability.ServerStreaming, marshal, unmarshal, opts)
	if err != nil {
		return nil, err
	}
	return activecall.NewServerStreamerOperation(a, req), nil
}

// BidiStreamerOp is BidiStreamer, returned unstarted.
func (s *ClientStub) BidiStreamerOp(
	ctx context.Context,
	method string,
	reqs activecall.Requests,
	marshal encoding.Marshaler,
	unmarshal encoding.Unmarshaler,
	opts ...CallOption,
) (*activecall.StreamOperation, error) {
	a, err := s.start(ctx, method, observability.BidiStreaming, marshal, unmarshal, opts)
	if err != nil {
		return nil, err
	}
	return activecall.NewBidiStreamerOperation(a, reqs), nil
}
