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

package activecall

import (
	"context"
	"io"
	"sync"
)

// ResponseStream yields the responses of a streaming call.
//
// Recv returns io.EOF once every response has been read and the call
// finished with an OK status. A non-OK status is returned as a
// *callerrors.BadStatusError instead. Once Recv has returned an error it
// keeps returning it.
type ResponseStream struct {
	a *ActiveCall

	mu  sync.Mutex
	err error
}

func newResponseStream(a *ActiveCall) *ResponseStream {
	return &ResponseStream{a: a}
}

// Recv returns the next response.
func (s *ResponseStream) Recv(ctx context.Context) (interface{}, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.err != nil {
		return nil, s.err
	}

	resp, ok, err := s.a.RemoteRead(ctx)
	switch {
	case err != nil:
		// The call has been cancelled; collect its status so it finishes.
		_ = s.a.ReceiveAndCheckStatus(ctx)
		s.err = err
		return nil, err
	case ok:
		return resp, nil
	}

	if err := s.a.ReceiveAndCheckStatus(ctx); err != nil {
		s.err = err
		return nil, err
	}
	s.err = io.EOF
	return nil, io.EOF
}

// All reads every remaining response. It returns the responses read before
// any error.
func (s *ResponseStream) All(ctx context.Context) ([]interface{}, error) {
	var out []interface{}
	for {
		resp, err := s.Recv(ctx)
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return out, err
		}
		out = append(out, resp)
	}
}

// Call returns the ActiveCall the stream reads from.
func (s *ResponseStream) Call() *ActiveCall {
	return s.a
}
