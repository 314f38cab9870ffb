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

// Package encoding defines how request and response messages are turned into
// bytes and back.
//
// The call machinery never inspects messages. Every call is given a
// Marshaler for its requests and an Unmarshaler for its responses; the raw,
// json and protobuf subpackages provide ready-made ones.
package encoding

import "fmt"

// Marshaler serializes a request message.
type Marshaler func(interface{}) ([]byte, error)

// Unmarshaler deserializes a response message.
type Unmarshaler func([]byte) (interface{}, error)

// Identity returns the bytes it is given unchanged. It is the Marshaler and
// Unmarshaler pair for calls that deal in []byte directly.
func Identity() (Marshaler, Unmarshaler) {
	return func(v interface{}) ([]byte, error) {
			b, ok := v.([]byte)
			if !ok {
				return nil, TypeError{Want: "[]byte", Got: v}
			}
			return b, nil
		}, func(b []byte) (interface{}, error) {
			return b, nil
		}
}

// TypeError is returned by a Marshaler when it is given a message of a type
// it cannot serialize.
type TypeError struct {
	Want string
	Got  interface{}
}

func (e TypeError) Error() string {
	return fmt.Sprintf("expected message of type %s, got %T", e.Want, e.Got)
}
