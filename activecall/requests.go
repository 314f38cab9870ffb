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

import "context"

// Requests is a source of request messages for a streaming call.
type Requests interface {
	// Next returns the next request. ok is false once there are no more.
	Next(ctx context.Context) (req interface{}, ok bool, err error)
}

// RequestsFunc adapts a function into Requests.
type RequestsFunc func(ctx context.Context) (interface{}, bool, error)

// Next implements Requests.
func (f RequestsFunc) Next(ctx context.Context) (interface{}, bool, error) {
	return f(ctx)
}

// FromSlice returns Requests that yields the given requests in order.
func FromSlice(reqs ...interface{}) Requests {
	return &sliceRequests{reqs: reqs}
}

type sliceRequests struct {
	reqs []interface{}
}

func (s *sliceRequests) Next(context.Context) (interface{}, bool, error) {
	if len(s.reqs) == 0 {
		return nil, false, nil
	}
	req := s.reqs[0]
	s.reqs = s.reqs[1:]
	return req, true, nil
}

// FromChannel returns Requests that yields values received from ch until it
// is closed.
func FromChannel(ch <-chan interface{}) Requests {
	return RequestsFunc(func(ctx context.Context) (interface{}, bool, error) {
		select {
		case req, ok := <-ch:
			return req, ok, nil
		case <-ctx.Done():
			return nil, false, ctx.Err()
		}
	})
}
