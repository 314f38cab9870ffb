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
	"io"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/callstub/activecall"
	"go.uber.org/callstub/api/call"
	"go.uber.org/callstub/callerrors"
	"go.uber.org/callstub/encoding/raw"
	"go.uber.org/callstub/internal/testtime"
	"go.uber.org/callstub/metadata"
	"go.uber.org/multierr"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	grpcmetadata "google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

const (
	_echoMethod = "/test.Echo/Echo"
	_failMethod = "/test.Echo/Fail"
)

// echo answers every message with itself. Headers sent by the client come
// back as initial metadata with an "echo-" prefix.
func echo(_ interface{}, ss grpc.ServerStream) error {
	method, _ := grpc.MethodFromServerStream(ss)
	md, _ := grpcmetadata.FromIncomingContext(ss.Context())

	out := grpcmetadata.MD{}
	for _, k := range []string{"k1", "k2"} {
		if vs := md.Get(k); len(vs) > 0 {
			out.Set("echo-"+k, vs...)
		}
	}
	if err := ss.SendHeader(out); err != nil {
		return err
	}
	ss.SetTrailer(grpcmetadata.Pairs("tk", "tv"))

	if method == _failMethod {
		return status.Error(codes.InvalidArgument, "NOK")
	}
	for {
		var msg []byte
		if err := ss.RecvMsg(&msg); err == io.EOF {
			return nil
		} else if err != nil {
			return err
		}
		if err := ss.SendMsg(&msg); err != nil {
			return err
		}
	}
}

func newTestChannel(t *testing.T, opts ...ChannelOption) (*Channel, func()) {
	lis, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	server := grpc.NewServer(
		grpc.CustomCodec(bytesCodec{}),
		grpc.UnknownServiceHandler(echo),
	)
	go func() { _ = server.Serve(lis) }()

	ch, err := NewChannel(lis.Addr().String(), opts...)
	require.NoError(t, err)
	return ch, func() {
		assert.NoError(t, ch.Close())
		server.Stop()
	}
}

func assertHas(t *testing.T, md metadata.MD, k, want string) {
	got, ok := md.Get(k)
	if assert.True(t, ok, "missing %q in %v", k, md) {
		assert.Equal(t, want, got)
	}
}

func newActiveCall(t *testing.T, ctx context.Context, ch *Channel, method string, opts ...activecall.Option) *activecall.ActiveCall {
	c, err := ch.NewCall(ctx, &call.Request{Method: method})
	require.NoError(t, err)
	return activecall.New(c, raw.Marshal, raw.UnmarshalString, opts...)
}

func TestRequestResponse(t *testing.T) {
	ctx, cancel := testtime.Context()
	defer cancel()

	ch, stop := newTestChannel(t)
	defer stop()
	a := newActiveCall(t, ctx, ch, _echoMethod,
		activecall.WithMetadata(metadata.Pairs("k1", "v1", "k2", "v2")))

	resp, err := a.RequestResponse(ctx, "hello")
	require.NoError(t, err)
	assert.Equal(t, "hello", resp)

	assertHas(t, a.Metadata(), "echo-k1", "v1")
	assertHas(t, a.Metadata(), "echo-k2", "v2")
	assertHas(t, a.TrailingMetadata(), "tk", "tv")
	assert.Equal(t, callerrors.CodeOK, a.Status().Code)
	assert.NotEmpty(t, a.Peer())
}

func TestBidiStreamer(t *testing.T) {
	ctx, cancel := testtime.Context()
	defer cancel()

	ch, stop := newTestChannel(t)
	defer stop()
	a := newActiveCall(t, ctx, ch, _echoMethod)

	stream, err := a.BidiStreamer(ctx, activecall.FromSlice("a", "b", "c"))
	require.NoError(t, err)
	got, err := stream.All(ctx)
	require.NoError(t, err)
	assert.Equal(t, []interface{}{"a", "b", "c"}, got)
}

func TestCompression(t *testing.T) {
	for _, name := range []string{"gzip", "snappy", "identity"} {
		t.Run(name, func(t *testing.T) {
			ctx, cancel := testtime.Context()
			defer cancel()

			ch, stop := newTestChannel(t, ChannelArgs(map[string]string{
				ArgDefaultCompression: name,
			}))
			defer stop()
			a := newActiveCall(t, ctx, ch, _echoMethod)

			stream, err := a.BidiStreamer(ctx, activecall.FromSlice("squash", "me"))
			require.NoError(t, err)
			got, err := stream.All(ctx)
			require.NoError(t, err)
			assert.Equal(t, []interface{}{"squash", "me"}, got)
		})
	}
}

func TestBadStatus(t *testing.T) {
	ctx, cancel := testtime.Context()
	defer cancel()

	ch, stop := newTestChannel(t)
	defer stop()
	a := newActiveCall(t, ctx, ch, _failMethod)

	_, err := a.RequestResponse(ctx, "hello")
	require.Error(t, err)
	st := callerrors.FromError(err)
	assert.Equal(t, callerrors.CodeInvalidArgument, st.Code)
	assert.Equal(t, "NOK", st.Details)
	assertHas(t, a.TrailingMetadata(), "tk", "tv")
}

func TestCancelBeforeHeaders(t *testing.T) {
	ctx, cancel := testtime.Context()
	defer cancel()

	ch, stop := newTestChannel(t)
	defer stop()
	a := newActiveCall(t, ctx, ch, _echoMethod)
	a.Cancel()

	err := a.ReceiveAndCheckStatus(ctx)
	assert.True(t, callerrors.IsCancelled(err))
}

func TestClosedChannel(t *testing.T) {
	ch, stop := newTestChannel(t)
	defer stop()
	require.NoError(t, ch.Close())
	require.NoError(t, ch.Close(), "close is idempotent")

	_, err := ch.NewCall(context.Background(), &call.Request{Method: _echoMethod})
	assert.Equal(t, callerrors.CodeUnavailable, callerrors.FromError(err).Code)
}

func TestChannelArgs(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		o := newChannelOptions([]ChannelOption{ChannelArgs(map[string]string{
			ArgPrimaryUserAgent:      "my-app/1.0",
			ArgMaxReceiveMessageSize: "1024",
			ArgMaxSendMessageSize:    "2048",
			"grpc.something_else":    "ignored",
		})})
		opts, err := o.grpcDialOptions()
		require.NoError(t, err)
		assert.Len(t, opts, 3)
	})

	t.Run("every bad argument is reported", func(t *testing.T) {
		o := newChannelOptions([]ChannelOption{ChannelArgs(map[string]string{
			ArgMaxReceiveMessageSize: "lots",
			ArgMaxSendMessageSize:    "-1",
			ArgDefaultCompression:    "lz4",
		})})
		_, err := o.grpcDialOptions()
		require.Error(t, err)
		assert.Len(t, multierr.Errors(err), 3)
	})

	t.Run("server name override needs TLS", func(t *testing.T) {
		o := newChannelOptions([]ChannelOption{ChannelArgs(map[string]string{
			ArgSSLTargetNameOverride: "foo.test.google.fr",
		})})
		_, err := o.grpcDialOptions()
		assert.NoError(t, err)
	})
}
