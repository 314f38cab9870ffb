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
	"fmt"

	"go.uber.org/callstub/compressor"
	grpccompressor "go.uber.org/callstub/compressor/grpc"
	gzipcompressor "go.uber.org/callstub/compressor/gzip"
	snappycompressor "go.uber.org/callstub/compressor/snappy"
	"google.golang.org/grpc"
	"google.golang.org/grpc/encoding"
)

// identity disables compression.
const identity = "identity"

func init() {
	for _, c := range []compressor.Compressor{
		gzipcompressor.New(),
		snappycompressor.Compressor{},
	} {
		encoding.RegisterCompressor(grpccompressor.New(c))
	}
}

// compressionOption returns the call option selecting the named
// compressor, or nil when compression is disabled.
func compressionOption(name string) (grpc.CallOption, error) {
	if name == "" || name == identity {
		return nil, nil
	}
	if encoding.GetCompressor(name) == nil {
		return nil, fmt.Errorf("channel argument %q names unknown compressor %q", ArgDefaultCompression, name)
	}
	return grpc.UseCompressor(name), nil
}
