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
	"io"
	"sync"

	"go.uber.org/callstub/callerrors"
	"go.uber.org/callstub/metadata"
)

const _queueSize = 64

type message struct {
	data  []byte
	flags uint32
}

// pipe is the state shared by the client and server ends of one in-memory
// call.
type pipe struct {
	peer string

	clientHeadersOnce sync.Once
	clientHeadersSent chan struct{}
	clientMD          metadata.MD

	c2s        chan message
	closeOnce  sync.Once
	halfClosed chan struct{}

	serverHeadersOnce sync.Once
	serverHeadersSent chan struct{}
	serverMD          metadata.MD

	s2c chan []byte

	finishOnce sync.Once
	finished   chan struct{}
	status     *callerrors.Status

	cancelOnce sync.Once
	cancelled  chan struct{}
}

func newPipe(peer string) *pipe {
	return &pipe{
		peer:              peer,
		clientHeadersSent: make(chan struct{}),
		c2s:               make(chan message, _queueSize),
		halfClosed:        make(chan struct{}),
		serverHeadersSent: make(chan struct{}),
		s2c:               make(chan []byte, _queueSize),
		finished:          make(chan struct{}),
		cancelled:         make(chan struct{}),
	}
}

var errCancelled = callerrors.Newf(callerrors.CodeCancelled, "Cancelled")

// clientStream is the call.Stream end of a pipe.
type clientStream struct {
	p *pipe
}

func (s clientStream) SendHeaders(ctx context.Context, md metadata.MD) error {
	p := s.p
	p.clientHeadersOnce.Do(func() {
		p.clientMD = md.Clone()
		close(p.clientHeadersSent)
	})
	return nil
}

func (s clientStream) SendMessage(ctx context.Context, msg []byte, flags uint32) error {
	p := s.p
	select {
	case <-p.finished:
		return io.EOF
	case <-p.cancelled:
		return errCancelled
	case <-p.halfClosed:
		return callerrors.InternalErrorf("send after half-close")
	default:
	}

	select {
	case p.c2s <- message{data: append([]byte(nil), msg...), flags: flags}:
		return nil
	case <-p.finished:
		return io.EOF
	case <-p.cancelled:
		return errCancelled
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s clientStream) CloseSend(ctx context.Context) error {
	s.p.closeOnce.Do(func() { close(s.p.halfClosed) })
	return nil
}

func (s clientStream) Headers(ctx context.Context) (metadata.MD, error) {
	p := s.p
	select {
	case <-p.serverHeadersSent:
		return p.serverMD.Clone(), nil
	case <-p.cancelled:
		return metadata.MD{}, errCancelled
	case <-ctx.Done():
		return metadata.MD{}, ctx.Err()
	}
}

func (s clientStream) RecvMessage(ctx context.Context) ([]byte, error) {
	p := s.p
	select {
	case msg := <-p.s2c:
		return msg, nil
	case <-p.finished:
		// Messages sent before the status are still delivered.
		select {
		case msg := <-p.s2c:
			return msg, nil
		default:
		}
		if err := p.status.Err(); err != nil {
			return nil, err
		}
		return nil, io.EOF
	case <-p.cancelled:
		return nil, errCancelled
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (s clientStream) Status(ctx context.Context) *callerrors.Status {
	p := s.p
	select {
	case <-p.finished:
		return p.status.Clone()
	case <-p.cancelled:
		return callerrors.NewStatus(callerrors.CodeCancelled, "Cancelled", metadata.MD{})
	case <-ctx.Done():
		return callerrors.FromError(ctx.Err())
	}
}

func (s clientStream) Cancel() {
	s.p.cancelOnce.Do(func() { close(s.p.cancelled) })
}

func (s clientStream) Peer() string {
	return s.p.peer
}
