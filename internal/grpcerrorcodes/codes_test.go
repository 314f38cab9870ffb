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

package grpcerrorcodes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/callstub/callerrors"
	"google.golang.org/grpc/codes"
)

func TestRoundTrip(t *testing.T) {
	for c := callerrors.CodeOK; c <= callerrors.CodeUnauthenticated; c++ {
		assert.Equal(t, c, FromGRPC(ToGRPC(c)), c.String())
		assert.Equal(t, int(c), int(ToGRPC(c)), "codes share numbering")
	}
}

func TestUnknown(t *testing.T) {
	assert.Equal(t, codes.Unknown, ToGRPC(callerrors.Code(99)))
	assert.Equal(t, callerrors.CodeUnknown, FromGRPC(codes.Code(99)))
}
