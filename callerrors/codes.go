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
	"fmt"
	"strconv"
	"strings"
)

// Code is the outcome of a call. The values match gRPC status codes.
//
// https://godoc.org/google.golang.org/grpc/codes#Code
type Code int

const (
	// CodeOK means the call succeeded.
	CodeOK Code = 0

	// CodeCancelled means the call was cancelled, typically by the caller.
	CodeCancelled Code = 1

	// CodeUnknown means the failure could not be classified.
	CodeUnknown Code = 2

	// CodeInvalidArgument means the client sent an argument that is invalid
	// regardless of the state of the system.
	CodeInvalidArgument Code = 3

	// CodeDeadlineExceeded means the deadline expired before the call
	// completed.
	CodeDeadlineExceeded Code = 4

	// CodeNotFound means a requested entity was not found.
	CodeNotFound Code = 5

	// CodeAlreadyExists means the entity the client tried to create exists.
	CodeAlreadyExists Code = 6

	// CodePermissionDenied means the caller is identified but not allowed.
	CodePermissionDenied Code = 7

	// CodeResourceExhausted means a quota or other resource ran out.
	CodeResourceExhausted Code = 8

	// CodeFailedPrecondition means the system is not in a state required
	// for the call.
	CodeFailedPrecondition Code = 9

	// CodeAborted means the call was aborted, usually because of a
	// concurrency conflict.
	CodeAborted Code = 10

	// CodeOutOfRange means the call went past the valid range.
	CodeOutOfRange Code = 11

	// CodeUnimplemented means the method is not implemented by the peer.
	CodeUnimplemented Code = 12

	// CodeInternal means an invariant of the peer or the transport broke.
	CodeInternal Code = 13

	// CodeUnavailable means the peer is unavailable, usually transiently.
	CodeUnavailable Code = 14

	// CodeDataLoss means unrecoverable data loss or corruption.
	CodeDataLoss Code = 15

	// CodeUnauthenticated means the call lacks valid credentials.
	CodeUnauthenticated Code = 16
)

var (
	_codeToString = map[Code]string{
		CodeOK:                 "ok",
		CodeCancelled:          "cancelled",
		CodeUnknown:            "unknown",
		CodeInvalidArgument:    "invalid-argument",
		CodeDeadlineExceeded:   "deadline-exceeded",
		CodeNotFound:           "not-found",
		CodeAlreadyExists:      "already-exists",
		CodePermissionDenied:   "permission-denied",
		CodeResourceExhausted:  "resource-exhausted",
		CodeFailedPrecondition: "failed-precondition",
		CodeAborted:            "aborted",
		CodeOutOfRange:         "out-of-range",
		CodeUnimplemented:      "unimplemented",
		CodeInternal:           "internal",
		CodeUnavailable:        "unavailable",
		CodeDataLoss:           "data-loss",
		CodeUnauthenticated:    "unauthenticated",
	}
	_stringToCode = make(map[string]Code, len(_codeToString))
)

func init() {
	for c, s := range _codeToString {
		_stringToCode[s] = c
	}
}

// String returns the string representation of the Code.
func (c Code) String() string {
	if s, ok := _codeToString[c]; ok {
		return s
	}
	return strconv.Itoa(int(c))
}

// MarshalText implements encoding.TextMarshaler.
func (c Code) MarshalText() ([]byte, error) {
	if s, ok := _codeToString[c]; ok {
		return []byte(s), nil
	}
	return nil, fmt.Errorf("unknown code: %d", int(c))
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Code) UnmarshalText(text []byte) error {
	code, ok := _stringToCode[strings.ToLower(string(text))]
	if !ok {
		return fmt.Errorf("unknown code string: %s", string(text))
	}
	*c = code
	return nil
}
