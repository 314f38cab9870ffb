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

// Package grpccompressor adapts compressors to gRPC.
//
// gRPC does not close the readers it gets from a compressor. The adapter
// closes them once they return io.EOF so pooled readers are reused.
package grpccompressor

import (
	"io"

	"go.uber.org/callstub/compressor"
	"google.golang.org/grpc/encoding"
)

// Compressor is a gRPC compressor backed by a compressor.Compressor.
type Compressor struct {
	compressor compressor.Compressor
}

var _ encoding.Compressor = (*Compressor)(nil)

// New adapts c to gRPC.
func New(c compressor.Compressor) *Compressor {
	return &Compressor{compressor: c}
}

// Name returns the name of the underlying compressor.
func (c *Compressor) Name() string {
	return c.compressor.Name()
}

// Compress wraps w with a compressing writer.
func (c *Compressor) Compress(w io.Writer) (io.WriteCloser, error) {
	return c.compressor.Compress(w)
}

// Decompress wraps r with a decompressing reader.
func (c *Compressor) Decompress(r io.Reader) (io.Reader, error) {
	dr, err := c.compressor.Decompress(r)
	if err != nil {
		return nil, err
	}
	return &reader{reader: dr}, nil
}

type reader struct {
	reader io.ReadCloser
	closed bool
}

func (r *reader) Read(buf []byte) (int, error) {
	n, err := r.reader.Read(buf)
	if err == io.EOF && !r.closed {
		r.closed = true
		_ = r.reader.Close()
	}
	return n, err
}
