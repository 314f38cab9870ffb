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
	"sync"
	"time"

	"go.uber.org/callstub/callerrors"
	"go.uber.org/callstub/metadata"
)

type opState int

const (
	opUnstarted opState = iota
	opStarted
	opExecuting
)

func (s opState) String() string {
	switch s {
	case opUnstarted:
		return "unstarted"
	case opStarted:
		return "started"
	default:
		return "executing"
	}
}

// Operation is a deferred view of a call. It is created unstarted; the
// caller may start it, execute it, wait for it and cancel it.
//
// Once the call has finished its status and metadata stay readable, and
// Wait, Cancel and SetWriteFlag keep working, but it cannot be started or
// executed again.
type Operation struct {
	a *ActiveCall

	mu    sync.Mutex
	state opState
}

// StartCall sends the call's initial metadata. It fails with a
// *callerrors.CallStateError if the operation was already started or has
// finished.
func (o *Operation) StartCall(ctx context.Context) error {
	o.mu.Lock()
	switch {
	case o.finished():
		o.mu.Unlock()
		return &callerrors.CallStateError{Op: "start call", State: "finished"}
	case o.state != opUnstarted:
		state := o.state
		o.mu.Unlock()
		return &callerrors.CallStateError{Op: "start call", State: state.String()}
	}
	o.state = opStarted
	o.mu.Unlock()

	return o.a.SendInitialMetadata(ctx)
}

// beginExecute moves the operation to executing. It fails with a
// *callerrors.CallError if it was already executed or has finished.
func (o *Operation) beginExecute() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.state == opExecuting || o.finished() {
		return &callerrors.CallError{Op: "execute", Message: "call is no longer usable"}
	}
	o.state = opExecuting
	return nil
}

func (o *Operation) finished() bool {
	select {
	case <-o.a.Done():
		return true
	default:
		return false
	}
}

// Wait blocks until the call has finished. It returns immediately if the
// operation was never executed.
func (o *Operation) Wait() {
	o.mu.Lock()
	state := o.state
	o.mu.Unlock()
	if state != opExecuting {
		return
	}
	<-o.a.Done()
}

// Cancel cancels the call. It does nothing once the call has finished.
//
// An operation cancelled before it was executed is finished right away,
// which releases everything the call holds. Operations that are abandoned
// unexecuted should be cancelled.
func (o *Operation) Cancel() {
	o.a.Cancel()

	o.mu.Lock()
	executing := o.state == opExecuting
	o.mu.Unlock()
	if !executing {
		// A cancelled call reports its status promptly.
		o.a.drain(context.Background())
	}
}

// Status returns the final status, or nil if the call has not finished.
func (o *Operation) Status() *callerrors.Status {
	return o.a.Status()
}

// Metadata returns the server's initial metadata.
func (o *Operation) Metadata() metadata.MD {
	return o.a.Metadata()
}

// TrailingMetadata returns the metadata that came with the final status.
func (o *Operation) TrailingMetadata() metadata.MD {
	return o.a.TrailingMetadata()
}

// Cancelled reports whether the call was cancelled.
func (o *Operation) Cancelled() bool {
	return o.a.Cancelled()
}

// Deadline returns the call's deadline. ok is false if it has none.
func (o *Operation) Deadline() (deadline time.Time, ok bool) {
	return o.a.Deadline()
}

// WriteFlag returns the write flag, zero if unset.
func (o *Operation) WriteFlag() uint32 {
	return o.a.WriteFlag()
}

// SetWriteFlag sets the flags applied to messages sent from now on.
func (o *Operation) SetWriteFlag(flag uint32) {
	o.a.SetWriteFlag(flag)
}

// Peer returns the address of the server, or "".
func (o *Operation) Peer() string {
	return o.a.Peer()
}

// UnaryOperation is the deferred form of a call with a single response.
type UnaryOperation struct {
	Operation

	run func(context.Context, *ActiveCall) (interface{}, error)
}

// NewRequestResponseOperation returns an unstarted operation that sends req
// when executed.
func NewRequestResponseOperation(a *ActiveCall, req interface{}) *UnaryOperation {
	return &UnaryOperation{
		Operation: Operation{a: a},
		run: func(ctx context.Context, a *ActiveCall) (interface{}, error) {
			return a.RequestResponse(ctx, req)
		},
	}
}

// NewClientStreamerOperation returns an unstarted operation that sends reqs
// when executed.
func NewClientStreamerOperation(a *ActiveCall, reqs Requests) *UnaryOperation {
	return &UnaryOperation{
		Operation: Operation{a: a},
		run: func(ctx context.Context, a *ActiveCall) (interface{}, error) {
			return a.ClientStreamer(ctx, reqs)
		},
	}
}

// Execute runs the call, starting it if needed, and returns its response.
func (o *UnaryOperation) Execute(ctx context.Context) (interface{}, error) {
	if err := o.beginExecute(); err != nil {
		return nil, err
	}
	return o.run(ctx, o.a)
}

// StreamOperation is the deferred form of a call with a stream of
// responses.
type StreamOperation struct {
	Operation

	run func(context.Context, *ActiveCall) (*ResponseStream, error)
}

// NewServerStreamerOperation returns an unstarted operation that sends req
// when executed.
func NewServerStreamerOperation(a *ActiveCall, req interface{}) *StreamOperation {
	return &StreamOperation{
		Operation: Operation{a: a},
		run: func(ctx context.Context, a *ActiveCall) (*ResponseStream, error) {
			return a.ServerStreamer(ctx, req)
		},
	}
}

// NewBidiStreamerOperation returns an unstarted operation that sends reqs
// when executed.
func NewBidiStreamerOperation(a *ActiveCall, reqs Requests) *StreamOperation {
	return &StreamOperation{
		Operation: Operation{a: a},
		run: func(ctx context.Context, a *ActiveCall) (*ResponseStream, error) {
			return a.BidiStreamer(ctx, reqs)
		},
	}
}

// Execute runs the call, starting it if needed, and returns the stream of
// responses.
func (o *StreamOperation) Execute(ctx context.Context) (*ResponseStream, error) {
	if err := o.beginExecute(); err != nil {
		return nil, err
	}
	return o.run(ctx, o.a)
}
