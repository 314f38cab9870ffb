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

	"go.uber.org/callstub/api/call"
	"go.uber.org/callstub/callerrors"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// RequestResponse sends req, half-closes and returns the single response.
// The status is checked before the response is unmarshalled.
func (a *ActiveCall) RequestResponse(ctx context.Context, req interface{}) (interface{}, error) {
	return a.unary(ctx, FromSlice(req))
}

// ClientStreamer sends every request from reqs, half-closes and returns the
// single response.
func (a *ActiveCall) ClientStreamer(ctx context.Context, reqs Requests) (interface{}, error) {
	return a.unary(ctx, reqs)
}

// ServerStreamer sends req, half-closes and returns the stream of
// responses.
func (a *ActiveCall) ServerStreamer(ctx context.Context, req interface{}) (*ResponseStream, error) {
	if err := a.writeAll(ctx, FromSlice(req)); err != nil {
		if local, ok := err.(*localError); ok {
			a.drain(ctx)
			return nil, local.err
		}
		a.logger.Debug("Send failed, the status will say why.", zap.Error(err))
	}
	return newResponseStream(a), nil
}

// BidiStreamer sends requests from reqs on a separate goroutine while the
// caller reads responses from the returned stream. The writer half-closes
// once reqs is exhausted. A failure to send stops the writer; the stream
// then reports the call's status.
func (a *ActiveCall) BidiStreamer(ctx context.Context, reqs Requests) (*ResponseStream, error) {
	if err := a.SendInitialMetadata(ctx); err != nil {
		a.logger.Debug("Failed to send initial metadata, the status will say why.", zap.Error(err))
		return newResponseStream(a), nil
	}
	go a.writeBidi(ctx, reqs)
	return newResponseStream(a), nil
}

func (a *ActiveCall) writeBidi(ctx context.Context, reqs Requests) {
	if err := a.writeAll(ctx, reqs); err != nil {
		a.logger.Debug("Bidi writer stopped.", zap.Error(unwrapLocal(err)))
	}
}

func (a *ActiveCall) unary(ctx context.Context, reqs Requests) (interface{}, error) {
	if err := a.writeAll(ctx, reqs); err != nil {
		if local, ok := err.(*localError); ok {
			a.drain(ctx)
			return nil, local.err
		}
		a.logger.Debug("Send failed, the status will say why.", zap.Error(err))
	}

	a.recvMu.Lock()
	res := a.recv(ctx, call.Batch{RecvMessage: true})
	st := a.receiveStatusLocked(ctx)
	a.recvMu.Unlock()

	if err := st.Err(); err != nil {
		return nil, err
	}
	if res.EndOfStream {
		return nil, callerrors.InternalErrorf("call finished with an OK status but no response")
	}
	return a.unmarshal(res.Message)
}

// writeAll sends the initial metadata, every request from reqs and then
// half-closes.
//
// reqs is read with a context that also ends with the call, so a source
// that blocks cannot outlive the call.
func (a *ActiveCall) writeAll(ctx context.Context, reqs Requests) error {
	callCtx, cancel := a.bound(ctx)
	defer cancel()

	if err := a.SendInitialMetadata(callCtx); err != nil {
		return err
	}
	for {
		req, ok, err := reqs.Next(callCtx)
		if err != nil {
			if callCtx.Err() != nil {
				// The call or ctx ended first. The status says why.
				a.cancelFromContext(ctx)
				return err
			}
			a.CancelWithStatus(callerrors.CodeCancelled, "failed to get the next request: "+err.Error())
			return &localError{err: err}
		}
		if !ok {
			break
		}
		if err := a.remoteSend(callCtx, req); err != nil {
			if _, local := err.(*localError); local {
				return err
			}
			return multierr.Append(err, a.WritesDone(callCtx))
		}
	}
	return a.WritesDone(callCtx)
}

// drain waits for the status of a call that has been aborted locally.
func (a *ActiveCall) drain(ctx context.Context) {
	a.recvMu.Lock()
	defer a.recvMu.Unlock()
	st := a.receiveStatusLocked(ctx)
	a.logger.Debug("Call aborted.", zap.String("code", st.Code.String()))
}
