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

package observability

import (
	"time"

	"github.com/opentracing/opentracing-go"
	"go.uber.org/atomic"
	"go.uber.org/callstub/callerrors"
	"go.uber.org/zap"
)

const (
	_successfulOutbound = "Made outbound call."
	_errorOutbound      = "Error making outbound call."
)

// Call is the instrumentation of a single call.
type Call struct {
	edge    *edge
	id      string
	method  string
	rpcType RPCType
	span    opentracing.Span
	started time.Time
	logger  *zap.Logger

	ended atomic.Bool
}

// ID returns the unique ID of the call.
func (c *Call) ID() string {
	return c.id
}

// Logger returns a logger tagged with the call's method and ID.
func (c *Call) Logger() *zap.Logger {
	return c.logger
}

// Span returns the call's span.
func (c *Call) Span() opentracing.Span {
	return c.span
}

// End records the final status of the call. A nil status is treated as OK.
// Only the first End has an effect.
func (c *Call) End(status *callerrors.Status) {
	if c.ended.Swap(true) {
		return
	}
	if status == nil {
		status = &callerrors.Status{Code: callerrors.CodeOK}
	}
	elapsed := _timeNow().Sub(c.started)
	c.endLogs(elapsed, status)
	c.endStats(elapsed, status)
	c.endSpan(status)
}

func (c *Call) endLogs(elapsed time.Duration, status *callerrors.Status) {
	msg := _successfulOutbound
	if !status.OK() {
		msg = _errorOutbound
	}
	ce := c.logger.Check(levelFor(status.OK()), msg)
	if ce == nil {
		return
	}

	fields := []zap.Field{
		zap.String("rpcType", string(c.rpcType)),
		zap.Duration("latency", elapsed),
		zap.Bool("successful", status.OK()),
	}
	if !status.OK() {
		fields = append(fields,
			zap.String("code", status.Code.String()),
			zap.String("details", status.Details),
		)
	}
	ce.Write(fields...)
}

func (c *Call) endStats(elapsed time.Duration, status *callerrors.Status) {
	if status.OK() {
		c.edge.successes.Inc()
		c.edge.successLatencies.Observe(elapsed)
		return
	}
	c.edge.failureLatencies.Observe(elapsed)
	if counter, err := c.edge.failures.Get("code", status.Code.String()); err != nil {
		c.logger.Error("Failed to get failures counter.", zap.Error(err))
	} else {
		counter.Inc()
	}
}

func (c *Call) endSpan(status *callerrors.Status) {
	if !status.OK() {
		c.span.SetTag("error", true)
		c.span.LogEvent(status.String())
	}
	c.span.SetTag("rpc.code", status.Code.String())
	c.span.FinishWithOptions(opentracing.FinishOptions{FinishTime: _timeNow()})
}
