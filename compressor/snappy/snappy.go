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

// Package snappycompressor provides snappy message compression.
package snappycompressor

import (
	"io"
	"io/ioutil"

	"github.com/golang/snappy"
	"go.uber.org/callstub/compressor"
)

// Name is the name snappy is known by on the wire.
const Name = "snappy"

// Compressor is snappy stream compression.
type Compressor struct{}

var _ compressor.Compressor = Compressor{}

// Name is snappy.
func (Compressor) Name() string {
	return Name
}

// Compress returns a buffered snappy writer into w.
func (Compressor) Compress(w io.Writer) (io.WriteCloser, error) {
	return snappy.NewBufferedWriter(w), nil
}

// Decompress returns a snappy reader over r.
func (Compressor) Decompress(r io.Reader) (io.ReadCloser, error) {
	return ioutil.NopCloser(snappy.NewReader(r)), nil
}
