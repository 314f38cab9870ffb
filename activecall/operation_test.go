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
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/callstub/api/call"
	"go.uber.org/callstub/api/call/calltest"
	"go.uber.org/callstub/callerrors"
	"go.uber.org/callstub/encoding/raw"
	"go.uber.org/callstub/internal/clock"
	"go.uber.org/callstub/internal/testtime"
	"go.uber.org/callstub/metadata"
)

func TestUnaryOperation(t *testing.T) {
	ctx, cancel := testtime.Context()
	defer cancel()

	ch := calltest.NewChannel("localhost:0")
	script := calltest.Script{
		InitialMetadata:  metadata.Pairs("sk", "sv"),
		TrailingMetadata: metadata.Pairs("tk", "tv"),
	}
	wait := serve(t, func() error {
		return calltest.ServeRequestResponse(ctx, ch, "a_msg", "a_reply", script)
	})

	op := NewRequestResponseOperation(newActiveCall(t, ctx, ch, nil), "a_msg")
	require.NoError(t, op.StartCall(ctx))

	err := op.StartCall(ctx)
	assert.True(t, callerrors.IsCallStateError(err), "second start")

	resp, err := op.Execute(ctx)
	require.NoError(t, err)
	assert.Equal(t, "a_reply", resp)
	wait()
	op.Wait()

	t.Run("after finish", func(t *testing.T) {
		_, err := op.Execute(ctx)
		assert.True(t, callerrors.IsCallError(err))
		assert.Contains(t, err.Error(), "call is no longer usable")

		assert.True(t, callerrors.IsCallStateError(op.StartCall(ctx)))

		op.Cancel()
		op.SetWriteFlag(2)
		op.Wait()

		assert.Equal(t, callerrors.CodeOK, op.Status().Code)
		assert.Equal(t, "OK", op.Status().Details)
		assert.True(t, script.InitialMetadata.Equal(op.Metadata()))
		assert.True(t, script.TrailingMetadata.Equal(op.TrailingMetadata()))
		assert.False(t, op.Cancelled())
		assert.Equal(t, uint32(2), op.WriteFlag())
		assert.Equal(t, "calltest:localhost:0", op.Peer())
	})
}

func TestClientStreamerOperation(t *testing.T) {
	ctx, cancel := testtime.Context()
	defer cancel()

	ch := calltest.NewChannel("localhost:0")
	wait := serve(t, func() error {
		return calltest.ServeClientStreamer(ctx, ch, _sentMsgs, "a_reply", calltest.Script{Code: callerrors.CodeInternal})
	})

	op := NewClientStreamerOperation(newActiveCall(t, ctx, ch, nil), requests(_sentMsgs))
	_, err := op.Execute(ctx)
	wait()

	assert.Equal(t, callerrors.CodeInternal, callerrors.FromError(err).Code)
	assert.Equal(t, "NOK", op.Status().Details)
}

func TestStreamOperations(t *testing.T) {
	t.Run("server streamer", func(t *testing.T) {
		ctx, cancel := testtime.Context()
		defer cancel()

		ch := calltest.NewChannel("localhost:0")
		wait := serve(t, func() error {
			return calltest.ServeServerStreamer(ctx, ch, "a_msg", _replies, calltest.Script{})
		})

		op := NewServerStreamerOperation(newActiveCall(t, ctx, ch, nil), "a_msg")
		stream, err := op.Execute(ctx)
		require.NoError(t, err)

		_, err = op.Execute(ctx)
		assert.True(t, callerrors.IsCallError(err), "already executing")

		got, err := stream.All(ctx)
		require.NoError(t, err)
		assert.Equal(t, _replies, asStrings(got))
		op.Wait()
		wait()
	})

	t.Run("bidi streamer", func(t *testing.T) {
		ctx, cancel := testtime.Context()
		defer cancel()

		ch := calltest.NewChannel("localhost:0")
		wait := serve(t, func() error {
			return calltest.ServeBidiPingPong(ctx, ch, _sentMsgs, true, calltest.Script{})
		})

		op := NewBidiStreamerOperation(newActiveCall(t, ctx, ch, nil), requests(_sentMsgs))
		require.NoError(t, op.StartCall(ctx))
		stream, err := op.Execute(ctx)
		require.NoError(t, err)

		got, err := stream.All(ctx)
		require.NoError(t, err)
		assert.Equal(t, _sentMsgs, asStrings(got))
		assert.Equal(t, op.Operation.a, stream.Call())
		wait()
	})
}

func TestOperationWaitWithoutExecute(t *testing.T) {
	ctx, cancel := testtime.Context()
	defer cancel()

	ch := calltest.NewChannel("localhost:0")
	op := NewRequestResponseOperation(newActiveCall(t, ctx, ch, nil), "a_msg")

	done := make(chan struct{})
	go func() {
		op.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(testtime.Timeout):
		t.Fatal("Wait blocked on an operation that never executed")
	}
	assert.Nil(t, op.Status())
}

func TestOperationCancel(t *testing.T) {
	ctx, cancel := testtime.Context()
	defer cancel()

	ch := calltest.NewChannel("localhost:0")
	op := NewServerStreamerOperation(newActiveCall(t, ctx, ch, nil), "a_msg")
	stream, err := op.Execute(ctx)
	require.NoError(t, err)

	op.Cancel()
	_, err = stream.Recv(ctx)
	assert.True(t, callerrors.IsCancelled(err))
	op.Wait()
	assert.True(t, op.Cancelled())
	assert.Equal(t, callerrors.CodeCancelled, op.Status().Code)
}

func TestOperationDeadline(t *testing.T) {
	ctx, cancel := testtime.Context()
	defer cancel()

	clk := clock.NewFake()
	ch := calltest.NewChannel("localhost:0", calltest.ChannelClock(clk))
	deadline := clk.Now().Add(time.Second)

	c, err := ch.NewCall(ctx, &call.Request{Method: _method, Deadline: deadline})
	require.NoError(t, err)
	op := NewRequestResponseOperation(New(c, raw.Marshal, raw.UnmarshalString), "a_msg")

	got, ok := op.Deadline()
	assert.True(t, ok)
	assert.Equal(t, deadline, got)

	server, err := ch.Accept(ctx)
	require.NoError(t, err)

	result := make(chan error, 1)
	go func() {
		_, err := op.Execute(ctx)
		result <- err
	}()

	// The server never answers; only the deadline ends the call.
	_, _, err = server.RemoteRead(ctx)
	require.NoError(t, err)
	clk.Add(time.Second)

	select {
	case err := <-result:
		assert.True(t, callerrors.IsDeadlineExceeded(err))
		assert.Equal(t, "Deadline Exceeded", op.Status().Details)
	case <-time.After(testtime.Timeout):
		t.Fatal("deadline did not end the call")
	}
	assert.False(t, op.Cancelled())
}
