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

package protobuf

import (
	"testing"

	"github.com/gogo/protobuf/proto"
	"github.com/gogo/protobuf/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStringValue() proto.Message { return &types.StringValue{} }

func TestBinary(t *testing.T) {
	b, err := Marshal(&types.StringValue{Value: "reply_1"})
	require.NoError(t, err)

	v, err := Unmarshaler(newStringValue)(b)
	require.NoError(t, err)
	assert.Equal(t, "reply_1", v.(*types.StringValue).Value)

	v, err = Unmarshaler(newStringValue)(nil)
	require.NoError(t, err)
	assert.Equal(t, "", v.(*types.StringValue).Value)

	_, err = Marshal("not a message")
	assert.Error(t, err)

	_, err = Unmarshaler(newStringValue)([]byte{0xff, 0xff})
	assert.Error(t, err)
}

func TestJSON(t *testing.T) {
	b, err := JSONMarshaler(nil)(&types.StringValue{Value: "hi"})
	require.NoError(t, err)
	assert.Equal(t, `"hi"`, string(b))

	v, err := JSONUnmarshaler(newStringValue, nil)(b)
	require.NoError(t, err)
	assert.Equal(t, "hi", v.(*types.StringValue).Value)

	_, err = JSONMarshaler(nil)(42)
	assert.Error(t, err)

	_, err = JSONUnmarshaler(newStringValue, nil)([]byte("{"))
	assert.Error(t, err)
}
