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

// Package gzipcompressor provides gzip message compression.
package gzipcompressor

import (
	"compress/gzip"
	"io"
	"sync"

	"go.uber.org/callstub/compressor"
)

// Name is the name gzip is known by on the wire.
const Name = "gzip"

// Option customizes a Compressor.
type Option func(*Compressor)

// Level sets the compression level, one of the compress/gzip levels.
func Level(level int) Option {
	return func(c *Compressor) {
		c.level = level
	}
}

// Compressor is gzip compression with pooled readers and writers.
type Compressor struct {
	level         int
	compressors   sync.Pool
	decompressors sync.Pool
}

var _ compressor.Compressor = (*Compressor)(nil)

// New builds a gzip Compressor.
func New(opts ...Option) *Compressor {
	c := &Compressor{level: gzip.DefaultCompression}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Name is gzip.
func (*Compressor) Name() string {
	return Name
}

// Compress returns a writer that gzips into w.
func (c *Compressor) Compress(w io.Writer) (io.WriteCloser, error) {
	if cw, ok := c.compressors.Get().(*writer); ok {
		cw.writer.Reset(w)
		return cw, nil
	}

	gw, err := gzip.NewWriterLevel(w, c.level)
	if err != nil {
		return nil, err
	}
	return &writer{writer: gw, pool: &c.compressors}, nil
}

type writer struct {
	writer *gzip.Writer
	pool   *sync.Pool
}

func (w *writer) Write(buf []byte) (int, error) {
	return w.writer.Write(buf)
}

func (w *writer) Close() error {
	defer w.pool.Put(w)
	return w.writer.Close()
}

// Decompress returns a reader that gunzips r.
func (c *Compressor) Decompress(r io.Reader) (io.ReadCloser, error) {
	if dr, ok := c.decompressors.Get().(*reader); ok {
		if err := dr.reader.Reset(r); err != nil {
			c.decompressors.Put(dr)
			return nil, err
		}
		return dr, nil
	}

	gr, err := gzip.NewReader(r)
	if err != nil {
		return nil, err
	}
	return &reader{reader: gr, pool: &c.decompressors}, nil
}

type reader struct {
	reader *gzip.Reader
	pool   *sync.Pool
}

func (r *reader) Read(buf []byte) (int, error) {
	return r.reader.Read(buf)
}

func (r *reader) Close() error {
	r.pool.Put(r)
	return nil
}

