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

// Package raw provides marshalers for calls whose messages are plain strings
// or byte slices.
package raw

import (
	"go.uber.org/callstub/encoding"
)

// Marshal accepts a string or a []byte.
func Marshal(v interface{}) ([]byte, error) {
	switch v := v.(type) {
	case []byte:
		return v, nil
	case string:
		return []byte(v), nil
	}
	return nil, encoding.TypeError{Want: "string or []byte", Got: v}
}

// UnmarshalString returns the response as a string.
func UnmarshalString(b []byte) (interface{}, error) {
	return string(b), nil
}

// UnmarshalBytes returns a copy of the response bytes.
func UnmarshalBytes(b []byte) (interface{}, error) {
	return append([]byte(nil), b...), nil
}

var (
	_ encoding.Marshaler   = Marshal
	_ encoding.Unmarshaler = UnmarshalString
	_ encoding.Unmarshaler = UnmarshalBytes
)
