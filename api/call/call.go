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
	"time"

	"go.uber.org/callstub/callerrors"
)

// Call is a handle to one RPC invocation.
type Call interface {
	// StartBatch submits a batch of operations. The returned channel yields
	// exactly one Result once every operation in the batch has completed.
	StartBatch(Batch) <-chan Result

	// Cancel terminates the call with CodeCancelled. It is a no-op once the
	// call's status has been received.
	Cancel()

	// CancelWithStatus terminates the call with the given status. It is a
	// no-op once the call's status has been received.
	CancelWithStatus(code callerrors.Code, details string)

	// Done is closed once the call has ended: it was cancelled, its
	// deadline passed or its status was received. Work done on behalf of
	// the call, such as producing requests, should stop then.
	Done() <-chan struct{}

	// Deadline returns the call's deadline. ok is false if the call has
	// none.
	Deadline() (deadline time.Time, ok bool)

	// Peer returns the address of the remote end, or "" if unknown.
	Peer() string
}

// Request describes a call to be created by a Channel.
type Request struct {
	// Method is the fully qualified method name, e.g. "/pkg.Service/Method".
	Method string

	// Deadline is the absolute deadline of the call. The zero value means
	// the call has no deadline.
	Deadline time.Time
}

// Channel creates calls to a single target.
type Channel interface {
	// NewCall creates a call. Cancelling ctx cancels the call.
	NewCall(ctx context.Context, req *Request) (Call, error)

	// Target returns the address calls are made to.
	Target() string

	// Close releases the channel's resources. Calls in flight fail.
	Close() error
}
