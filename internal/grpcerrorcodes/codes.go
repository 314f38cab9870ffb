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

// Package grpcerrorcodes converts between gRPC codes and callerrors codes.
package grpcerrorcodes

import (
	"go.uber.org/callstub/callerrors"
	"google.golang.org/grpc/codes"
)

var (
	_toGRPC = map[callerrors.Code]codes.Code{
		callerrors.CodeOK:                 codes.OK,
		callerrors.CodeCancelled:          codes.Canceled,
		callerrors.CodeUnknown:            codes.Unknown,
		callerrors.CodeInvalidArgument:    codes.InvalidArgument,
		callerrors.CodeDeadlineExceeded:   codes.DeadlineExceeded,
		callerrors.CodeNotFound:           codes.NotFound,
		callerrors.CodeAlreadyExists:      codes.AlreadyExists,
		callerrors.CodePermissionDenied:   codes.PermissionDenied,
		callerrors.CodeResourceExhausted:  codes.ResourceExhausted,
		callerrors.CodeFailedPrecondition: codes.FailedPrecondition,
		callerrors.CodeAborted:            codes.Aborted,
		callerrors.CodeOutOfRange:         codes.OutOfRange,
		callerrors.CodeUnimplemented:      codes.Unimplemented,
		callerrors.CodeInternal:           codes.Internal,
		callerrors.CodeUnavailable:        codes.Unavailable,
		callerrors.CodeDataLoss:           codes.DataLoss,
		callerrors.CodeUnauthenticated:    codes.Unauthenticated,
	}

	_fromGRPC = make(map[codes.Code]callerrors.Code, len(_toGRPC))
)

func init() {
	for c, g := range _toGRPC {
		_fromGRPC[g] = c
	}
}

// ToGRPC returns the gRPC code for c, or codes.Unknown.
func ToGRPC(c callerrors.Code) codes.Code {
	if g, ok := _toGRPC[c]; ok {
		return g
	}
	return codes.Unknown
}

// FromGRPC returns the code for a gRPC code, or CodeUnknown.
func FromGRPC(g codes.Code) callerrors.Code {
	if c, ok := _fromGRPC[g]; ok {
		return c
	}
	return callerrors.CodeUnknown
}
