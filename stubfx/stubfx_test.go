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

package stubfx

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/callstub"
	"go.uber.org/callstub/api/call"
	"go.uber.org/callstub/api/call/calltest"
	"go.uber.org/callstub/encoding/raw"
	"go.uber.org/callstub/internal/testtime"
	"go.uber.org/callstub/stubconfig"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"
	"go.uber.org/zap"
)

func TestNewClientStub(t *testing.T) {
	lc := fxtest.NewLifecycle(t)
	res, err := NewClientStub(Params{
		Lifecycle: lc,
		Config:    stubconfig.Config{Target: "127.0.0.1:1", Insecure: true},
		Logger:    zap.NewNop(),
	})
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:1", res.Stub.Target())

	lc.RequireStart()
	lc.RequireStop()
}

func TestNewClientStubInvalidConfig(t *testing.T) {
	_, err := NewClientStub(Params{
		Lifecycle: fxtest.NewLifecycle(t),
		Config: stubconfig.Config{
			Target: "foo",
			TLS:    &stubconfig.TLS{CAFile: "/does/not/exist.pem"},
		},
	})
	assert.Error(t, err)
}

func TestModule(t *testing.T) {
	ctx, cancel := testtime.Context()
	defer cancel()

	ch := calltest.NewChannel("localhost:0")
	var stub *callstub.ClientStub
	app := fxtest.New(t,
		Module,
		fx.Provide(
			func() stubconfig.Config {
				return stubconfig.Config{Target: "localhost:0", Insecure: true}
			},
			func() call.Channel { return ch },
		),
		fx.Populate(&stub),
	)
	app.RequireStart()
	defer app.RequireStop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- calltest.ServeRequestResponse(ctx, ch, "a_msg", "a_reply", calltest.Script{})
	}()
	resp, err := stub.RequestResponse(ctx, "/test.Service/Method", "a_msg", raw.Marshal, raw.UnmarshalString)
	require.NoError(t, err)
	require.NoError(t, <-errCh)
	assert.Equal(t, "a_reply", resp)
}

func TestModuleStopLeavesChannelOverrideOpen(t *testing.T) {
	ch := calltest.NewChannel("localhost:0")
	app := fxtest.New(t,
		Module,
		fx.Provide(
			func() stubconfig.Config {
				return stubconfig.Config{Target: "localhost:0", Insecure: true}
			},
			func() call.Channel { return ch },
		),
		fx.Invoke(func(*callstub.ClientStub) {}),
	)
	app.RequireStart()
	app.RequireStop()

	_, err := ch.NewCall(context.Background(), &call.Request{Method: "/test.Service/Method"})
	assert.NoError(t, err)
}
