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

package grpc

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/callstub/callerrors"
	"go.uber.org/callstub/metadata"
	"google.golang.org/grpc/codes"
	grpcmetadata "google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

func TestToStatus(t *testing.T) {
	trailer := grpcmetadata.Pairs("b", "2", "a", "1")

	tests := []struct {
		desc        string
		give        error
		wantCode    callerrors.Code
		wantDetails string
	}{
		{desc: "end of stream", give: io.EOF, wantCode: callerrors.CodeOK},
		{
			desc:        "grpc status",
			give:        status.Error(codes.PermissionDenied, "go away"),
			wantCode:    callerrors.CodePermissionDenied,
			wantDetails: "go away",
		},
		{
			desc:        "call status",
			give:        callerrors.Newf(callerrors.CodeAborted, "stop"),
			wantCode:    callerrors.CodeAborted,
			wantDetails: "stop",
		},
		{
			desc:        "context",
			give:        context.Canceled,
			wantCode:    callerrors.CodeCancelled,
			wantDetails: "context canceled",
		},
		{
			desc:        "anything else",
			give:        errors.New("great sadness"),
			wantCode:    callerrors.CodeUnknown,
			wantDetails: "great sadness",
		},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			st := toStatus(tt.give, trailer)
			assert.Equal(t, tt.wantCode, st.Code)
			assert.Equal(t, tt.wantDetails, st.Details)
			assert.Equal(t, []string{"a", "b"}, st.Metadata.Keys())
		})
	}
}

func TestToCallError(t *testing.T) {
	assert.NoError(t, toCallError(nil))
	assert.Equal(t, io.EOF, toCallError(io.EOF))

	err := toCallError(status.Error(codes.Unavailable, "down"))
	require.Error(t, err)
	assert.Equal(t, callerrors.CodeUnavailable, callerrors.FromError(err).Code)
}

func TestMetadataConversion(t *testing.T) {
	md := metadata.Pairs("k1", "v1", "k1", "v2", "k2", "v3")
	assert.True(t, md.Equal(fromGRPCMetadata(toGRPCMetadata(md))))
}

func TestBytesCodec(t *testing.T) {
	c := bytesCodec{}
	b, err := c.Marshal([]byte("foo"))
	require.NoError(t, err)
	assert.Equal(t, []byte("foo"), b)

	_, err = c.Marshal("foo")
	assert.Error(t, err)

	var out []byte
	require.NoError(t, c.Unmarshal([]byte("bar"), &out))
	assert.Equal(t, []byte("bar"), out)
	assert.Error(t, c.Unmarshal([]byte("bar"), out))
	assert.Equal(t, "raw", c.String())
}
