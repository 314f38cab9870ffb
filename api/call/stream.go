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

package call

import (
	"context"

	"go.uber.org/callstub/callerrors"
	"go.uber.org/callstub/metadata"
)

// Stream is the synchronous primitive a transport implements for one call.
//
// Every method blocks until its operation completes or ctx is done. Send
// methods are called from one goroutine at a time and so are receive
// methods, but a send and a receive may run concurrently.
type Stream interface {
	// SendHeaders sends the client's initial metadata. It is called before
	// any other send.
	SendHeaders(ctx context.Context, md metadata.MD) error

	// SendMessage sends one message.
	SendMessage(ctx context.Context, msg []byte, flags uint32) error

	// CloseSend half-closes the stream.
	CloseSend(ctx context.Context) error

	// Headers returns the server's initial metadata.
	Headers(ctx context.Context) (metadata.MD, error)

	// RecvMessage returns the next message. It returns io.EOF once the
	// server has finished sending, or another error if the call failed.
	RecvMessage(ctx context.Context) ([]byte, error)

	// Status waits for the call to finish and returns its status, including
	// trailing metadata. Messages not yet received are discarded.
	Status(ctx context.Context) *callerrors.Status

	// Cancel aborts the stream. Blocked operations return promptly.
	Cancel()

	// Peer returns the address of the remote end, or "".
	Peer() string
}
