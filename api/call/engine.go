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
	"sync"
	"time"

	"go.uber.org/atomic"
	"go.uber.org/callstub/callerrors"
	"go.uber.org/callstub/internal/clock"
	"go.uber.org/callstub/metadata"
)

// Option customizes a call created with New.
type Option func(*StreamCall)

// WithDeadline sets the absolute deadline of the call. When it passes the
// call is cancelled with CodeDeadlineExceeded. The zero time means no
// deadline.
func WithDeadline(deadline time.Time) Option {
	return func(c *StreamCall) {
		c.deadline = deadline
	}
}

// WithClock sets the clock used for the deadline timer.
func WithClock(clk clock.Clock) Option {
	return func(c *StreamCall) {
		c.clock = clk
	}
}

// StreamCall is a Call backed by a Stream.
//
// Batches run on two lanes. A batch that contains any send operation runs on
// the send lane; every other batch runs on the receive lane. Batches on one
// lane complete in the order they were submitted, so a reader and a writer
// can make progress independently.
type StreamCall struct {
	stream   Stream
	deadline time.Time
	clock    clock.Clock

	parent context.Context
	ctx    context.Context
	cancel context.CancelFunc

	sendLane lane
	recvLane lane

	mu           sync.Mutex
	cancelStatus *callerrors.Status
	status       *callerrors.Status
	timer        clock.Timer

	finished atomic.Bool
	done     chan struct{}
}

var _ Call = (*StreamCall)(nil)

// New builds a Call on top of stream. Cancelling ctx cancels the call.
func New(ctx context.Context, stream Stream, opts ...Option) *StreamCall {
	c := &StreamCall{
		stream: stream,
		clock:  clock.NewReal(),
		parent: ctx,
		done:   make(chan struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.ctx, c.cancel = context.WithCancel(ctx)

	if !c.deadline.IsZero() {
		timer := c.clock.AfterFunc(c.deadline.Sub(c.clock.Now()), func() {
			c.CancelWithStatus(callerrors.CodeDeadlineExceeded, "Deadline Exceeded")
		})
		c.mu.Lock()
		c.timer = timer
		c.mu.Unlock()
	}

	if ctx.Done() != nil {
		go c.watchContext()
	}
	return c
}

func (c *StreamCall) watchContext() {
	select {
	case <-c.done:
	case <-c.parent.Done():
		st := callerrors.FromError(c.parent.Err())
		c.CancelWithStatus(st.Code, st.Details)
	}
}

// StartBatch implements Call.
func (c *StreamCall) StartBatch(b Batch) <-chan Result {
	out := make(chan Result, 1)
	if b.Empty() {
		out <- Result{}
		return out
	}

	l := &c.recvLane
	if b.HasSend() {
		l = &c.sendLane
	}
	l.submit(func() { out <- c.run(b) })
	return out
}

func (c *StreamCall) run(b Batch) Result {
	var res Result

	if b.SendInitialMetadata != nil {
		if err := c.stream.SendHeaders(c.ctx, *b.SendInitialMetadata); err != nil {
			res.Err = err
			return res
		}
	}
	if b.SendMessage != nil {
		if err := c.stream.SendMessage(c.ctx, b.SendMessage.Data, b.SendMessage.Flags); err != nil {
			res.Err = err
			return res
		}
	}
	if b.SendCloseFromClient {
		if err := c.stream.CloseSend(c.ctx); err != nil {
			res.Err = err
			return res
		}
	}

	if b.RecvInitialMetadata {
		// A failure here ends the call; the status says why.
		md, err := c.stream.Headers(c.ctx)
		if err != nil {
			md = metadata.MD{}
		}
		res.InitialMetadata = md.Clone()
	}
	if b.RecvMessage {
		// io.EOF is a clean end; any other error is reported by the status.
		msg, err := c.stream.RecvMessage(c.ctx)
		if err != nil {
			res.EndOfStream = true
		} else {
			res.Message = msg
		}
	}
	if b.RecvStatus {
		res.Status = c.receiveStatus()
	}
	return res
}

func (c *StreamCall) receiveStatus() *callerrors.Status {
	c.mu.Lock()
	if c.status != nil {
		st := c.status.Clone()
		c.mu.Unlock()
		return st
	}
	c.mu.Unlock()

	st := c.stream.Status(c.ctx)
	if st == nil {
		st = callerrors.NewStatus(callerrors.CodeUnknown, "stream finished without a status", metadata.MD{})
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.status == nil {
		if c.cancelStatus != nil {
			// Keep whatever trailers the server managed to send.
			st = callerrors.NewStatus(c.cancelStatus.Code, c.cancelStatus.Details, st.Metadata)
		} else if err := c.parent.Err(); err != nil && !st.OK() {
			from := callerrors.FromError(err)
			st = callerrors.NewStatus(from.Code, from.Details, st.Metadata)
		}
		c.status = st.Clone()
		c.finishLocked()
	}
	return c.status.Clone()
}

func (c *StreamCall) finishLocked() {
	if c.finished.Swap(true) {
		return
	}
	if c.timer != nil {
		c.timer.Stop()
	}
	close(c.done)
	c.cancel()
}

// Cancel implements Call.
func (c *StreamCall) Cancel() {
	c.CancelWithStatus(callerrors.CodeCancelled, "Cancelled")
}

// CancelWithStatus implements Call.
func (c *StreamCall) CancelWithStatus(code callerrors.Code, details string) {
	c.mu.Lock()
	if c.status != nil || c.cancelStatus != nil {
		c.mu.Unlock()
		return
	}
	c.cancelStatus = &callerrors.Status{Code: code, Details: details}
	c.mu.Unlock()

	c.cancel()
	c.stream.Cancel()
}

// Done implements Call.
func (c *StreamCall) Done() <-chan struct{} {
	return c.ctx.Done()
}

// Deadline implements Call.
func (c *StreamCall) Deadline() (time.Time, bool) {
	return c.deadline, !c.deadline.IsZero()
}

// Peer implements Call.
func (c *StreamCall) Peer() string {
	return c.stream.Peer()
}

// Finished reports whether the call's status has been received.
func (c *StreamCall) Finished() bool {
	return c.finished.Load()
}

// lane runs submitted functions one at a time in submission order. A
// goroutine is only alive while work is pending.
type lane struct {
	mu      sync.Mutex
	pending []func()
	running bool
}

func (l *lane) submit(f func()) {
	l.mu.Lock()
	l.pending = append(l.pending, f)
	if l.running {
		l.mu.Unlock()
		return
	}
	l.running = true
	l.mu.Unlock()
	go l.drain()
}

func (l *lane) drain() {
	for {
		l.mu.Lock()
		if len(l.pending) == 0 {
			l.running = false
			l.mu.Unlock()
			return
		}
		f := l.pending[0]
		l.pending[0] = nil
		l.pending = l.pending[1:]
		l.mu.Unlock()
		f()
	}
}
