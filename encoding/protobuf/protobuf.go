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

// Package protobuf provides marshalers for calls whose messages are protocol
// buffers, in either the binary or the JSON wire format.
package protobuf

import (
	"bytes"
	"sync"

	"github.com/gogo/protobuf/jsonpb"
	"github.com/gogo/protobuf/proto"
	"go.uber.org/callstub/encoding"
)

var _bufferPool = sync.Pool{
	New: func() interface{} {
		return proto.NewBuffer(make([]byte, 1024))
	},
}

func getBuffer() *proto.Buffer {
	buf := _bufferPool.Get().(*proto.Buffer)
	buf.Reset()
	return buf
}

func putBuffer(buf *proto.Buffer) {
	_bufferPool.Put(buf)
}

// Marshal serializes a proto.Message in the binary format.
func Marshal(v interface{}) ([]byte, error) {
	message, ok := v.(proto.Message)
	if !ok {
		return nil, encoding.TypeError{Want: "proto.Message", Got: v}
	}
	buf := getBuffer()
	defer putBuffer(buf)
	if err := buf.Marshal(message); err != nil {
		return nil, err
	}
	return append([]byte(nil), buf.Bytes()...), nil
}

// Unmarshaler returns an Unmarshaler that decodes binary responses into
// messages built by newMessage.
func Unmarshaler(newMessage func() proto.Message) encoding.Unmarshaler {
	return func(b []byte) (interface{}, error) {
		message := newMessage()
		if len(b) == 0 {
			return message, nil
		}
		if err := proto.Unmarshal(b, message); err != nil {
			return nil, err
		}
		return message, nil
	}
}

// JSONMarshaler returns a Marshaler that serializes messages with the
// protobuf JSON mapping. anyResolver may be nil.
func JSONMarshaler(anyResolver jsonpb.AnyResolver) encoding.Marshaler {
	m := &jsonpb.Marshaler{AnyResolver: anyResolver}
	return func(v interface{}) ([]byte, error) {
		message, ok := v.(proto.Message)
		if !ok {
			return nil, encoding.TypeError{Want: "proto.Message", Got: v}
		}
		var buf bytes.Buffer
		if err := m.Marshal(&buf, message); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}
}

// JSONUnmarshaler returns an Unmarshaler for the protobuf JSON mapping.
// Unknown fields are ignored.
func JSONUnmarshaler(newMessage func() proto.Message, anyResolver jsonpb.AnyResolver) encoding.Unmarshaler {
	u := &jsonpb.Unmarshaler{AnyResolver: anyResolver, AllowUnknownFields: true}
	return func(b []byte) (interface{}, error) {
		message := newMessage()
		if len(b) == 0 {
			return message, nil
		}
		if err := u.Unmarshal(bytes.NewReader(b), message); err != nil {
			return nil, err
		}
		return message, nil
	}
}
