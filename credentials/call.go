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
	"fmt"

	"go.uber.org/callstub/callerrors"
	"go.uber.org/callstub/metadata"
	grpccredentials "google.golang.org/grpc/credentials"
)

// AuthInfo describes the call that credentials are being produced for.
type AuthInfo struct {
	// Method is the fully qualified method name, e.g. "/pkg.Service/Method".
	Method string

	// Target is the address the stub was created for.
	Target string
}

// CallCredentials produce metadata that is attached to a single call.
type CallCredentials interface {
	GetRequestMetadata(ctx context.Context, info AuthInfo) (metadata.MD, error)
}

// PluginFunc adapts a function returning raw metadata into CallCredentials.
//
// The returned map is validated the same way caller metadata is: values must
// be strings or arrays of strings.
type PluginFunc func(ctx context.Context, info AuthInfo) (map[string]interface{}, error)

// GetRequestMetadata implements CallCredentials.
func (f PluginFunc) GetRequestMetadata(ctx context.Context, info AuthInfo) (metadata.MD, error) {
	raw, err := f(ctx, info)
	if err != nil {
		return metadata.MD{}, err
	}
	return metadata.Validate(raw)
}

// FromPerRPCCredentials adapts gRPC per-RPC credentials (OAuth tokens, JWT
// access, etc.) into CallCredentials. The target is passed as the request
// URI.
func FromPerRPCCredentials(creds grpccredentials.PerRPCCredentials) CallCredentials {
	return perRPC{creds: creds}
}

type perRPC struct {
	creds grpccredentials.PerRPCCredentials
}

func (p perRPC) GetRequestMetadata(ctx context.Context, info AuthInfo) (metadata.MD, error) {
	m, err := p.creds.GetRequestMetadata(ctx, info.Target)
	if err != nil {
		return metadata.MD{}, err
	}
	raw := make(map[string]interface{}, len(m))
	for k, v := range m {
		raw[k] = v
	}
	return metadata.Validate(raw)
}

// Compose combines CallCredentials into one. They run in the given order and
// their outputs are merged, later entries after earlier ones. Nil entries
// are skipped.
func Compose(creds ...CallCredentials) CallCredentials {
	var cs composed
	for _, c := range creds {
		switch c := c.(type) {
		case nil:
		case composed:
			cs = append(cs, c...)
		default:
			cs = append(cs, c)
		}
	}
	switch len(cs) {
	case 0:
		return nil
	case 1:
		return cs[0]
	}
	return cs
}

type composed []CallCredentials

func (cs composed) GetRequestMetadata(ctx context.Context, info AuthInfo) (metadata.MD, error) {
	var md metadata.MD
	for _, c := range cs {
		out, err := c.GetRequestMetadata(ctx, info)
		if err != nil {
			return metadata.MD{}, err
		}
		md = md.Merge(out)
	}
	return md, nil
}

// Invoke runs the given credentials for a call.
//
// Nil credentials produce empty metadata. If the credentials fail, either by
// returning an error or by panicking, Invoke returns a BadStatusError with
// CodeUnauthenticated whose details carry the failure message.
func Invoke(ctx context.Context, creds CallCredentials, info AuthInfo) (md metadata.MD, err error) {
	if creds == nil {
		return metadata.MD{}, nil
	}

	defer func() {
		if r := recover(); r != nil {
			md, err = metadata.MD{}, pluginError(fmt.Sprint(r))
		}
	}()

	md, err = creds.GetRequestMetadata(ctx, info)
	if err != nil {
		return metadata.MD{}, pluginError(err.Error())
	}
	return md, nil
}

func pluginError(msg string) error {
	return callerrors.UnauthenticatedErrorf("Getting metadata from plugin failed with error: %s", msg)
}
