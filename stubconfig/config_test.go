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

package stubconfig

import (
	"errors"
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/callstub/callerrors"
	"go.uber.org/callstub/credentials"
	"go.uber.org/callstub/internal/testcerts"
)

func writeCerts(t *testing.T) (dir string, cleanup func()) {
	dir, err := ioutil.TempDir("", "stubconfig")
	require.NoError(t, err)

	certPEM, keyPEM, err := testcerts.SelfSigned()
	require.NoError(t, err)
	require.NoError(t, ioutil.WriteFile(filepath.Join(dir, "ca.pem"), certPEM, 0600))
	require.NoError(t, ioutil.WriteFile(filepath.Join(dir, "client.pem"), certPEM, 0600))
	require.NoError(t, ioutil.WriteFile(filepath.Join(dir, "client.key"), keyPEM, 0600))
	return dir, func() { _ = os.RemoveAll(dir) }
}

func TestLoadYAML(t *testing.T) {
	tests := []struct {
		desc    string
		give    string
		want    Config
		wantErr []string
	}{
		{
			desc: "insecure",
			give: `
target: 127.0.0.1:8080
insecure: true
channelArgs:
  grpc.primary_user_agent: my-app
defaultTimeout: 1.5s
`,
			want: Config{
				Target:         "127.0.0.1:8080",
				Insecure:       true,
				ChannelArgs:    map[string]string{"grpc.primary_user_agent": "my-app"},
				DefaultTimeout: Duration(1500 * time.Millisecond),
			},
		},
		{
			desc: "tls with system roots",
			give: `
target: example.com:443
tls: {}
`,
			want: Config{Target: "example.com:443", TLS: &TLS{}},
		},
		{
			desc: "tls with client certificate",
			give: `
target: example.com:443
tls:
  caFile: ca.pem
  certFile: client.pem
  keyFile: client.key
`,
			want: Config{
				Target: "example.com:443",
				TLS:    &TLS{CAFile: "ca.pem", CertFile: "client.pem", KeyFile: "client.key"},
			},
		},
		{
			desc:    "missing target",
			give:    "insecure: true",
			wantErr: []string{"target is required"},
		},
		{
			desc:    "no credentials",
			give:    "target: foo",
			wantErr: []string{"exactly one of insecure and tls must be set"},
		},
		{
			desc: "both credentials",
			give: `
target: foo
insecure: true
tls: {}
`,
			wantErr: []string{"exactly one of insecure and tls must be set"},
		},
		{
			desc: "certificate without key",
			give: `
target: foo
tls:
  certFile: client.pem
`,
			wantErr: []string{"certFile and keyFile must be given together"},
		},
		{
			desc: "bad duration",
			give: `
target: foo
insecure: true
defaultTimeout: soon
`,
			wantErr: []string{"could not decode duration"},
		},
		{
			desc: "negative duration",
			give: `
target: foo
insecure: true
defaultTimeout: -1s
`,
			wantErr: []string{"is negative"},
		},
		{
			desc: "unknown key",
			give: `
target: foo
insecure: true
retries: 3
`,
			wantErr: []string{"invalid keys", "retries"},
		},
		{
			desc:    "not yaml",
			give:    "target: [",
			wantErr: []string{"yaml"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			cfg, err := LoadYAML(strings.NewReader(tt.give))
			if len(tt.wantErr) > 0 {
				require.Error(t, err)
				for _, msg := range tt.wantErr {
					assert.Contains(t, err.Error(), msg)
				}
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, cfg)
		})
	}
}

func TestCredentials(t *testing.T) {
	dir, cleanup := writeCerts(t)
	defer cleanup()

	t.Run("insecure", func(t *testing.T) {
		creds, err := Config{Target: "foo", Insecure: true}.Credentials()
		require.NoError(t, err)
		assert.True(t, credentials.IsInsecure(creds))
	})

	t.Run("tls", func(t *testing.T) {
		creds, err := Config{Target: "foo", TLS: &TLS{
			CAFile:   filepath.Join(dir, "ca.pem"),
			CertFile: filepath.Join(dir, "client.pem"),
			KeyFile:  filepath.Join(dir, "client.key"),
		}}.Credentials()
		require.NoError(t, err)
		assert.False(t, credentials.IsInsecure(creds))
		assert.NotNil(t, creds.TransportCredentials())
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Config{Target: "foo", TLS: &TLS{CAFile: filepath.Join(dir, "nope.pem")}}.Credentials()
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("not a certificate", func(t *testing.T) {
		_, err := Config{Target: "foo", TLS: &TLS{CAFile: filepath.Join(dir, "client.key")}}.Credentials()
		assert.Error(t, err)
	})
}

func TestBuild(t *testing.T) {
	t.Run("insecure", func(t *testing.T) {
		cfg, err := LoadYAML(strings.NewReader(`
target: 127.0.0.1:1
insecure: true
defaultTimeout: 1s
`))
		require.NoError(t, err)

		stub, err := cfg.Build()
		require.NoError(t, err)
		assert.Equal(t, "127.0.0.1:1", stub.Target())
		assert.NoError(t, stub.Close())
	})

	t.Run("tls with server name override", func(t *testing.T) {
		dir, cleanup := writeCerts(t)
		defer cleanup()

		cfg, err := LoadYAML(strings.NewReader(fmt.Sprintf(`
target: 127.0.0.1:1
tls:
  caFile: %s
channelArgs:
  grpc.ssl_target_name_override: %s
`, filepath.Join(dir, "ca.pem"), testcerts.ServerName)))
		require.NoError(t, err)

		stub, err := cfg.Build()
		require.NoError(t, err)
		assert.NoError(t, stub.Close())
	})

	t.Run("unreadable credentials", func(t *testing.T) {
		cfg := Config{Target: "foo", TLS: &TLS{CAFile: "/does/not/exist.pem"}}
		_, err := cfg.Build()
		var cerr *callerrors.ConstructionError
		require.True(t, errors.As(err, &cerr))
		assert.True(t, os.IsNotExist(cerr.Cause))
	})
}
