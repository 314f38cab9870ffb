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
	"time"

	"go.uber.org/callstub/callerrors"
	"go.uber.org/callstub/metadata"
)

// ServerCall is the server end of an in-memory call. Tests use it to play
// the part of the remote service.
type ServerCall struct {
	p        *pipe
	method   string
	deadline time.Time

	mu    sync.Mutex
	flags []uint32
}

// Method returns the method the client called.
func (s *ServerCall) Method() string {
	return s.method
}

// Deadline returns the deadline the client set, or the zero time.
func (s *ServerCall) Deadline() time.Time {
	return s.deadline
}

// Metadata waits for the client's initial metadata.
func (s *ServerCall) Metadata(ctx context.Context) (metadata.MD, error) {
	select {
	case <-s.p.clientHeadersSent:
		return s.p.clientMD.Clone(), nil
	case <-s.p.cancelled:
		return metadata.MD{}, errCancelled
	case <-ctx.Done():
		return metadata.MD{}, ctx.Err()
	}
}

// SendInitialMetadata sends the server's initial metadata. Only the first
// call has an effect; RemoteSend and SendStatus send empty initial metadata
// if none was sent.
func (s *ServerCall) SendInitialMetadata(md metadata.MD) {
	s.p.serverHeadersOnce.Do(func() {
		s.p.serverMD = md.Clone()
		close(s.p.serverHeadersSent)
	})
}

// RemoteRead returns the next message from the client. ok is false once the
// client has half-closed and every message has been read.
func (s *ServerCall) RemoteRead(ctx context.Context) (msg []byte, ok bool, err error) {
	select {
	case m := <-s.p.c2s:
		return s.record(m), true, nil
	case <-s.p.halfClosed:
		select {
		case m := <-s.p.c2s:
			return s.record(m), true, nil
		default:
			return nil, false, nil
		}
	case <-s.p.cancelled:
		return nil, false, errCancelled
	case <-ctx.Done():
		return nil, false, ctx.Err()
	}
}

func (s *ServerCall) record(m message) []byte {
	s.mu.Lock()
	s.flags = append(s.flags, m.flags)
	s.mu.Unlock()
	return m.data
}

// WriteFlags returns the write flags of every message read so far.
func (s *ServerCall) WriteFlags() []uint32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]uint32(nil), s.flags...)
}

// RemoteSend sends a message to the client.
func (s *ServerCall) RemoteSend(ctx context.Context, msg []byte) error {
	s.SendInitialMetadata(metadata.MD{})
	select {
	case <-s.p.finished:
		return callerrors.InternalErrorf("send after status")
	default:
	}
	select {
	case s.p.s2c <- append([]byte(nil), msg...):
		return nil
	case <-s.p.cancelled:
		return errCancelled
	case <-ctx.Done():
		return ctx.Err()
	}
}

// SendStatus finishes the call. Only the first call has an effect.
func (s *ServerCall) SendStatus(code callerrors.Code, details string, trailing metadata.MD) {
	s.SendInitialMetadata(metadata.MD{})
	s.p.finishOnce.Do(func() {
		s.p.status = callerrors.NewStatus(code, details, trailing)
		close(s.p.finished)
	})
}

// Cancelled is closed when the client cancels the call.
func (s *ServerCall) Cancelled() <-chan struct{} {
	return s.p.cancelled
}
