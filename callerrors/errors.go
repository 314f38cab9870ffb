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

package callerrors

import (
	"bytes"
	"errors"
	"fmt"

	"go.uber.org/callstub/metadata"
)

// BadStatusError is returned when a call finishes with a status other than
// CodeOK. It is surfaced where the caller consumes the result: the return
// value of a unary call, or the iteration point of a response stream.
type BadStatusError struct {
	status *Status
}

// Newf returns a new BadStatusError.
//
// The Code should never be CodeOK, if it is, this will return nil.
func Newf(code Code, format string, args ...interface{}) *BadStatusError {
	if code == CodeOK {
		return nil
	}
	details := format
	if len(args) > 0 {
		details = fmt.Sprintf(format, args...)
	}
	return &BadStatusError{status: &Status{Code: code, Details: details}}
}

// Code returns the status code.
func (e *BadStatusError) Code() Code {
	if e == nil {
		return CodeOK
	}
	return e.status.Code
}

// Details returns the status details.
func (e *BadStatusError) Details() string {
	if e == nil {
		return ""
	}
	return e.status.Details
}

// Metadata returns the trailing metadata that came with the status.
func (e *BadStatusError) Metadata() metadata.MD {
	if e == nil {
		return metadata.MD{}
	}
	return e.status.Metadata.Clone()
}

// Status returns a copy of the status carried by the error.
func (e *BadStatusError) Status() *Status {
	if e == nil {
		return nil
	}
	return e.status.Clone()
}

// Error implements the error interface.
func (e *BadStatusError) Error() string {
	buffer := bytes.NewBuffer(nil)
	_, _ = buffer.WriteString(`code:`)
	_, _ = buffer.WriteString(e.status.Code.String())
	if e.status.Details != "" {
		_, _ = buffer.WriteString(` details:`)
		_, _ = buffer.WriteString(e.status.Details)
	}
	return buffer.String()
}

// IsBadStatus reports whether err is, or wraps, a *BadStatusError.
func IsBadStatus(err error) bool {
	var bse *BadStatusError
	return errors.As(err, &bse)
}

// IsUnauthenticated reports whether err is a bad status with
// CodeUnauthenticated, as produced by a failing credentials plugin.
func IsUnauthenticated(err error) bool {
	return IsBadStatus(err) && FromError(err).Code == CodeUnauthenticated
}

// IsCancelled reports whether err is a bad status with CodeCancelled.
func IsCancelled(err error) bool {
	return IsBadStatus(err) && FromError(err).Code == CodeCancelled
}

// IsDeadlineExceeded reports whether err is a bad status with
// CodeDeadlineExceeded.
func IsDeadlineExceeded(err error) bool {
	return IsBadStatus(err) && FromError(err).Code == CodeDeadlineExceeded
}

// UnauthenticatedErrorf returns a new BadStatusError with code
// CodeUnauthenticated by calling Newf(CodeUnauthenticated, format, args...).
func UnauthenticatedErrorf(format string, args ...interface{}) error {
	return Newf(CodeUnauthenticated, format, args...)
}

// InternalErrorf returns a new BadStatusError with code CodeInternal by
// calling Newf(CodeInternal, format, args...).
func InternalErrorf(format string, args ...interface{}) error {
	return Newf(CodeInternal, format, args...)
}

// ConstructionError is returned when a client stub cannot be built from
// the arguments it was given.
type ConstructionError struct {
	Message string
	Cause   error
}

func (e *ConstructionError) Error() string {
	if e.Cause == nil {
		return "cannot construct client stub: " + e.Message
	}
	return "cannot construct client stub: " + e.Message + ": " + e.Cause.Error()
}

// Unwrap returns the underlying cause, if any.
func (e *ConstructionError) Unwrap() error {
	return e.Cause
}

// CallStateError is returned when an operation is driven through its
// lifecycle out of order, for example started twice.
//
// It signals a programming error; it is never the result of a network
// condition and must not be retried.
type CallStateError struct {
	Op    string
	State string
}

func (e *CallStateError) Error() string {
	return fmt.Sprintf("cannot %s: operation is %s", e.Op, e.State)
}

// CallError is returned when an operation whose call is no longer usable is
// executed again.
type CallError struct {
	Op      string
	Message string
}

func (e *CallError) Error() string {
	return fmt.Sprintf("call error on %s: %s", e.Op, e.Message)
}

// IsCallStateError reports whether err is, or wraps, a *CallStateError.
func IsCallStateError(err error) bool {
	var cse *CallStateError
	return errors.As(err, &cse)
}

// IsCallError reports whether err is, or wraps, a *CallError.
func IsCallError(err error) bool {
	var ce *CallError
	return errors.As(err, &ce)
}
