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

	"go.uber.org/atomic"
	"go.uber.org/callstub/api/call"
	"go.uber.org/callstub/callerrors"
	"go.uber.org/callstub/credentials"
	"go.uber.org/callstub/encoding"
	"go.uber.org/callstub/metadata"
	"go.uber.org/zap"
)

// Observer is told about the final status of a call.
type Observer interface {
	End(*callerrors.Status)
}

type nopObserver struct{}

func (nopObserver) End(*callerrors.Status) {}

// Option customizes an ActiveCall.
type Option func(*ActiveCall)

// WithMetadata sets the metadata sent to the server at the start of the
// call.
func WithMetadata(md metadata.MD) Option {
	return func(a *ActiveCall) {
		a.md = md.Clone()
	}
}

// WithCredentials sets the credentials evaluated when the call's metadata is
// sent. Their output is added after the call's own metadata.
func WithCredentials(creds credentials.CallCredentials, info credentials.AuthInfo) Option {
	return func(a *ActiveCall) {
		a.creds = creds
		a.authInfo = info
	}
}

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(a *ActiveCall) {
		a.logger = logger
	}
}

// WithObserver sets the observer notified when the call finishes.
func WithObserver(o Observer) Option {
	return func(a *ActiveCall) {
		a.observer = o
	}
}

// ActiveCall is the client side of one RPC.
//
// Sends are serialized with each other and receives are serialized with
// each other, but a send and a receive may run concurrently.
type ActiveCall struct {
	call      call.Call
	marshal   encoding.Marshaler
	unmarshal encoding.Unmarshaler
	md        metadata.MD
	creds     credentials.CallCredentials
	authInfo  credentials.AuthInfo
	logger    *zap.Logger
	observer  Observer

	writeFlag atomic.Uint32

	sendMu       sync.Mutex
	metadataSent bool
	metadataErr  error
	halfClosed   bool

	recvMu           sync.Mutex
	metadataReceived bool
	readErr          error

	mu              sync.Mutex
	initialMD       metadata.MD
	status          *callerrors.Status
	cancelRequested bool
	done            chan struct{}
}

// New builds an ActiveCall on top of c.
func New(c call.Call, marshal encoding.Marshaler, unmarshal encoding.Unmarshaler, opts ...Option) *ActiveCall {
	a := &ActiveCall{
		call:      c,
		marshal:   marshal,
		unmarshal: unmarshal,
		logger:    zap.NewNop(),
		observer:  nopObserver{},
		done:      make(chan struct{}),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// SendInitialMetadata evaluates the call's credentials and sends the
// resulting metadata to the server. Only the first call has an effect.
//
// If the credentials fail the call is terminated with CodeUnauthenticated
// and that status is returned as an error.
func (a *ActiveCall) SendInitialMetadata(ctx context.Context) error {
	a.sendMu.Lock()
	defer a.sendMu.Unlock()
	return a.sendInitialMetadataLocked(ctx)
}

func (a *ActiveCall) sendInitialMetadataLocked(ctx context.Context) error {
	if a.metadataSent {
		return a.metadataErr
	}
	a.metadataSent = true

	md := a.md
	if a.creds != nil {
		extra, err := credentials.Invoke(ctx, a.creds, a.authInfo)
		if err != nil {
			st := callerrors.FromError(err)
			a.logger.Warn("Call credentials failed.", zap.String("code", st.Code.String()), zap.Error(err))
			a.call.CancelWithStatus(st.Code, st.Details)
			a.metadataErr = err
			return err
		}
		md = md.Merge(extra)
	}

	res := a.await(ctx, a.call.StartBatch(call.Batch{SendInitialMetadata: &md}))
	a.metadataErr = res.Err
	return res.Err
}

// RemoteSend marshals req and sends it, sending the initial metadata first
// if needed. The current write flag is applied to the message.
func (a *ActiveCall) RemoteSend(ctx context.Context, req interface{}) error {
	return unwrapLocal(a.remoteSend(ctx, req))
}

func (a *ActiveCall) remoteSend(ctx context.Context, req interface{}) error {
	a.sendMu.Lock()
	defer a.sendMu.Unlock()

	if err := a.sendInitialMetadataLocked(ctx); err != nil {
		return err
	}
	if a.halfClosed {
		return &callerrors.CallStateError{Op: "send", State: "half-closed"}
	}

	data, err := a.marshal(req)
	if err != nil {
		a.call.CancelWithStatus(callerrors.CodeInternal, "failed to marshal request: "+err.Error())
		return &localError{err: err}
	}

	res := a.await(ctx, a.call.StartBatch(call.Batch{
		SendMessage: &call.Message{Data: data, Flags: a.writeFlag.Load()},
	}))
	return res.Err
}

// WritesDone half-closes the call, sending the initial metadata first if
// needed. Only the first call has an effect.
func (a *ActiveCall) WritesDone(ctx context.Context) error {
	a.sendMu.Lock()
	defer a.sendMu.Unlock()

	if err := a.sendInitialMetadataLocked(ctx); err != nil {
		return err
	}
	if a.halfClosed {
		return nil
	}
	a.halfClosed = true
	res := a.await(ctx, a.call.StartBatch(call.Batch{SendCloseFromClient: true}))
	return res.Err
}

// RemoteRead receives and unmarshals the next response. ok is false once
// the server has finished sending; the reason is reported by
// ReceiveAndCheckStatus.
//
// If unmarshalling fails the call is cancelled and the unmarshaller's error
// is returned, now and on every later read.
func (a *ActiveCall) RemoteRead(ctx context.Context) (resp interface{}, ok bool, err error) {
	a.recvMu.Lock()
	defer a.recvMu.Unlock()

	if a.readErr != nil {
		return nil, false, a.readErr
	}

	res := a.recv(ctx, call.Batch{RecvMessage: true})
	if res.EndOfStream {
		return nil, false, nil
	}

	resp, err = a.unmarshal(res.Message)
	if err != nil {
		a.readErr = err
		a.logger.Debug("Failed to unmarshal response.", zap.Error(err))
		a.call.CancelWithStatus(callerrors.CodeInternal, "failed to unmarshal response: "+err.Error())
		return nil, false, err
	}
	return resp, true, nil
}

// recv runs a receive batch, asking for the server's initial metadata the
// first time. recvMu must be held.
func (a *ActiveCall) recv(ctx context.Context, b call.Batch) call.Result {
	if !a.metadataReceived {
		b.RecvInitialMetadata = true
	}
	res := a.await(ctx, a.call.StartBatch(b))
	if b.RecvInitialMetadata {
		a.metadataReceived = true
		a.mu.Lock()
		a.initialMD = res.InitialMetadata.Clone()
		a.mu.Unlock()
	}
	return res
}

// ReceiveAndCheckStatus waits for the call's final status and returns it as
// an error if it is not OK.
func (a *ActiveCall) ReceiveAndCheckStatus(ctx context.Context) error {
	a.recvMu.Lock()
	defer a.recvMu.Unlock()
	return a.receiveStatusLocked(ctx).Err()
}

func (a *ActiveCall) receiveStatusLocked(ctx context.Context) *callerrors.Status {
	if st := a.Status(); st != nil {
		return st
	}
	res := a.recv(ctx, call.Batch{RecvStatus: true})
	st := res.Status
	if st == nil {
		st = callerrors.NewStatus(callerrors.CodeUnknown, "call finished without a status", metadata.MD{})
	}
	return a.finish(st)
}

// finish records the final status. The first status wins.
func (a *ActiveCall) finish(st *callerrors.Status) *callerrors.Status {
	a.mu.Lock()
	first := a.status == nil
	if first {
		a.status = st.Clone()
		close(a.done)
	}
	final := a.status.Clone()
	a.mu.Unlock()

	if first {
		a.observer.End(final)
	}
	return final
}

// await waits for a batch. If ctx ends first the call is cancelled with the
// matching status and the batch is still waited for; a cancelled call
// completes its batches promptly.
func (a *ActiveCall) await(ctx context.Context, results <-chan call.Result) call.Result {
	select {
	case res := <-results:
		return res
	case <-ctx.Done():
		a.cancelFromContext(ctx)
		return <-results
	}
}

// cancelFromContext cancels the call with the status matching ctx's error,
// if ctx has ended.
func (a *ActiveCall) cancelFromContext(ctx context.Context) {
	if err := ctx.Err(); err != nil {
		st := callerrors.FromError(err)
		a.call.CancelWithStatus(st.Code, st.Details)
	}
}

// bound returns a context that ends when ctx does or when the call ends,
// whichever comes first.
func (a *ActiveCall) bound(ctx context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(ctx)
	done := a.call.Done()
	go func() {
		select {
		case <-done:
			cancel()
		case <-ctx.Done():
		}
	}()
	return ctx, cancel
}

// Cancel terminates the call with CodeCancelled. It does nothing once the
// call has finished.
func (a *ActiveCall) Cancel() {
	if a.markCancelled() {
		a.call.Cancel()
	}
}

// CancelWithStatus terminates the call with the given status. It does
// nothing once the call has finished.
func (a *ActiveCall) CancelWithStatus(code callerrors.Code, details string) {
	if a.markCancelled() {
		a.call.CancelWithStatus(code, details)
	}
}

func (a *ActiveCall) markCancelled() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.status != nil {
		return false
	}
	a.cancelRequested = true
	return true
}

// Cancelled reports whether the call was cancelled before it finished,
// either through Cancel or because its status is CodeCancelled.
func (a *ActiveCall) Cancelled() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.cancelRequested || (a.status != nil && a.status.Code == callerrors.CodeCancelled)
}

// Status returns the final status, or nil if the call has not finished.
func (a *ActiveCall) Status() *callerrors.Status {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.status.Clone()
}

// Metadata returns the server's initial metadata. It is empty until the
// first response or the status has been received.
func (a *ActiveCall) Metadata() metadata.MD {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.initialMD.Clone()
}

// TrailingMetadata returns the metadata that came with the final status.
func (a *ActiveCall) TrailingMetadata() metadata.MD {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.status == nil {
		return metadata.MD{}
	}
	return a.status.Metadata.Clone()
}

// Deadline returns the call's deadline. ok is false if it has none.
func (a *ActiveCall) Deadline() (deadline time.Time, ok bool) {
	return a.call.Deadline()
}

// Peer returns the address of the server, or "" if it is not known.
func (a *ActiveCall) Peer() string {
	return a.call.Peer()
}

// WriteFlag returns the flags applied to messages sent from now on. Zero
// means none are set.
func (a *ActiveCall) WriteFlag() uint32 {
	return a.writeFlag.Load()
}

// SetWriteFlag sets the flags applied to messages sent from now on.
func (a *ActiveCall) SetWriteFlag(flag uint32) {
	a.writeFlag.Store(flag)
}

// Done is closed once the call's final status has been received.
func (a *ActiveCall) Done() <-chan struct{} {
	return a.done
}

// localError marks a failure raised on this side of the call, such as a
// marshalling error, which is reported to the caller as is.
type localError struct {
	err error
}

func (e *localError) Error() string { return e.err.Error() }

func unwrapLocal(err error) error {
	if l, ok := err.(*localError); ok {
		return l.err
	}
	return err
}
