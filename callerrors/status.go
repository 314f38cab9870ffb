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
	"context"
	"errors"

	"go.uber.org/callstub/metadata"
)

// Status is the terminal result of a call.
//
// A Status received from a transport is a snapshot: it is copied out when
// the call finishes and never changes afterwards.
type Status struct {
	Code     Code
	Details  string
	Metadata metadata.MD
}

// NewStatus builds a Status. The metadata is copied.
func NewStatus(code Code, details string, md metadata.MD) *Status {
	return &Status{Code: code, Details: details, Metadata: md.Clone()}
}

// OK reports whether the status denotes success.
func (s *Status) OK() bool {
	return s == nil || s.Code == CodeOK
}

// Err returns a *BadStatusError for a non-OK status and nil otherwise.
func (s *Status) Err() error {
	if s.OK() {
		return nil
	}
	return &BadStatusError{status: s.Clone()}
}

// Clone returns a deep copy of the status.
func (s *Status) Clone() *Status {
	if s == nil {
		return nil
	}
	return &Status{Code: s.Code, Details: s.Details, Metadata: s.Metadata.Clone()}
}

// String implements fmt.Stringer.
func (s *Status) String() string {
	if s == nil {
		return "code:ok"
	}
	buffer := bytes.NewBuffer(nil)
	_, _ = buffer.WriteString(`code:`)
	_, _ = buffer.WriteString(s.Code.String())
	if s.Details != "" {
		_, _ = buffer.WriteString(` details:`)
		_, _ = buffer.WriteString(s.Details)
	}
	return buffer.String()
}

// FromError returns the Status for the provided error.
//
// If the error:
//  - is nil, return nil
//  - is or wraps a *BadStatusError, return its Status
//  - is context.Canceled or context.DeadlineExceeded, return the matching code
// Otherwise, return a Status with CodeUnknown and the error's message.
func FromError(err error) *Status {
	if err == nil {
		return nil
	}
	var bse *BadStatusError
	if errors.As(err, &bse) {
		return bse.Status()
	}
	switch {
	case errors.Is(err, context.Canceled):
		return &Status{Code: CodeCancelled, Details: err.Error()}
	case errors.Is(err, context.DeadlineExceeded):
		return &Status{Code: CodeDeadlineExceeded, Details: err.Error()}
	}
	return &Status{Code: CodeUnknown, Details: err.Error()}
}
