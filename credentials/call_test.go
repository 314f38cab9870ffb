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

package credentials

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/callstub/callerrors"
	"go.uber.org/callstub/metadata"
)

type staticPerRPC map[string]string

func (s staticPerRPC) GetRequestMetadata(ctx context.Context, uri ...string) (map[string]string, error) {
	return s, nil
}

func (staticPerRPC) RequireTransportSecurity() bool { return false }

func TestInvoke(t *testing.T) {
	info := AuthInfo{Method: "/test.Service/Method", Target: "localhost:1234"}

	tests := []struct {
		desc        string
		creds       CallCredentials
		want        map[string][]string
		wantDetails string
	}{
		{
			desc: "nil credentials",
			want: map[string][]string{},
		},
		{
			desc: "plugin metadata",
			creds: PluginFunc(func(ctx context.Context, info AuthInfo) (map[string]interface{}, error) {
				return map[string]interface{}{"k1": "updated-v1", "method": info.Method}, nil
			}),
			want: map[string][]string{"k1": {"updated-v1"}, "method": {"/test.Service/Method"}},
		},
		{
			desc: "plugin error",
			creds: PluginFunc(func(context.Context, AuthInfo) (map[string]interface{}, error) {
				return nil, errors.New("Failed to get metadata")
			}),
			wantDetails: "Getting metadata from plugin failed with error: Failed to get metadata",
		},
		{
			desc: "plugin panic",
			creds: PluginFunc(func(context.Context, AuthInfo) (map[string]interface{}, error) {
				panic("Failed to get metadata")
			}),
			wantDetails: "Getting metadata from plugin failed with error: Failed to get metadata",
		},
		{
			desc: "plugin returns invalid metadata",
			creds: PluginFunc(func(context.Context, AuthInfo) (map[string]interface{}, error) {
				return map[string]interface{}{"k": 1}, nil
			}),
			wantDetails: "header values must be of type string or array",
		},
		{
			desc:  "per-RPC credentials",
			creds: FromPerRPCCredentials(staticPerRPC{"authorization": "Bearer token"}),
			want:  map[string][]string{"authorization": {"Bearer token"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			md, err := Invoke(context.Background(), tt.creds, info)
			if tt.wantDetails != "" {
				require.Error(t, err)
				assert.True(t, callerrors.IsUnauthenticated(err))
				assert.Contains(t, callerrors.FromError(err).Details, tt.wantDetails)
				assert.Equal(t, 0, md.Len())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, md.Map())
		})
	}
}

func TestCompose(t *testing.T) {
	first := PluginFunc(func(context.Context, AuthInfo) (map[string]interface{}, error) {
		return map[string]interface{}{"k": "channel"}, nil
	})
	second := PluginFunc(func(context.Context, AuthInfo) (map[string]interface{}, error) {
		return map[string]interface{}{"k": "call", "other": "x"}, nil
	})

	assert.Nil(t, Compose())
	assert.Nil(t, Compose(nil, nil))

	md, err := Invoke(context.Background(), Compose(nil, first, Compose(second)), AuthInfo{})
	require.NoError(t, err)
	assert.Equal(t, []string{"channel", "call"}, md.Values("k"))
	assert.Equal(t, []string{"k", "other"}, md.Keys())

	failing := PluginFunc(func(context.Context, AuthInfo) (map[string]interface{}, error) {
		return nil, errors.New("nope")
	})
	_, err = Invoke(context.Background(), Compose(first, failing), AuthInfo{})
	assert.True(t, callerrors.IsUnauthenticated(err))
}

func TestPluginFuncSeesContext(t *testing.T) {
	type key struct{}
	ctx := context.WithValue(context.Background(), key{}, "value")
	creds := PluginFunc(func(ctx context.Context, _ AuthInfo) (map[string]interface{}, error) {
		return map[string]interface{}{"ctx": ctx.Value(key{}).(string)}, nil
	})
	md, err := creds.GetRequestMetadata(ctx, AuthInfo{})
	require.NoError(t, err)
	assert.True(t, metadata.Pairs("ctx", "value").Equal(md))
}
