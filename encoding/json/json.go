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

// Package json provides marshalers for calls whose messages are JSON
// documents.
package json

import (
	"bytes"
	"encoding/json"
	"reflect"

	"go.uber.org/callstub/encoding"
)

// Marshal serializes v with encoding/json.
func Marshal(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// Unmarshaler returns an Unmarshaler that decodes responses into fresh
// values of the same type as prototype. A pointer prototype yields pointers;
// anything else yields values.
//
//	unmarshal := json.Unmarshaler(&GetValueResponse{})
func Unmarshaler(prototype interface{}) encoding.Unmarshaler {
	t := reflect.TypeOf(prototype)
	isPtr := t != nil && t.Kind() == reflect.Ptr
	if isPtr {
		t = t.Elem()
	}
	return func(b []byte) (interface{}, error) {
		if t == nil {
			var v interface{}
			if err := json.Unmarshal(b, &v); err != nil {
				return nil, err
			}
			return v, nil
		}
		v := reflect.New(t)
		if err := json.Unmarshal(b, v.Interface()); err != nil {
			return nil, err
		}
		if isPtr {
			return v.Interface(), nil
		}
		return v.Elem().Interface(), nil
	}
}
