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

package metadata

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMDZeroValue(t *testing.T) {
	var md MD
	assert.Equal(t, 0, md.Len())
	_, ok := md.Get("foo")
	assert.False(t, ok)
	assert.Empty(t, md.Keys())
	assert.Equal(t, "{}", md.String())
}

func TestMDCaseInsensitiveLookup(t *testing.T) {
	md := Pairs("Foo-Bar", "baz", "k2", "v2")
	v, ok := md.Get("foo-bar")
	assert.True(t, ok)
	assert.Equal(t, "baz", v)
	assert.Equal(t, []string{"Foo-Bar", "k2"}, md.Keys(), "keys keep the case they were given in")

	md.Append("FOO-BAR", "qux")
	assert.Equal(t, []string{"baz", "qux"}, md.Values("foo-bar"))
	assert.Equal(t, 2, md.Len())
}

func TestMDMergeAndClone(t *testing.T) {
	a := Pairs("k1", "v1")
	b := Pairs("k2", "v2", "k1", "v3")
	merged := a.Merge(b)

	assert.Equal(t, []string{"k1", "k2"}, merged.Keys())
	assert.Equal(t, []string{"v1", "v3"}, merged.Values("k1"))
	assert.Equal(t, []string{"v1"}, a.Values("k1"), "merge must not modify the receiver")

	c := merged.Clone()
	c.Append("k2", "extra")
	assert.Equal(t, []string{"v2"}, merged.Values("k2"))
}

func TestMDEqual(t *testing.T) {
	assert.True(t, Pairs("a", "1", "b", "2").Equal(Pairs("B", "2", "A", "1")))
	assert.False(t, Pairs("a", "1").Equal(Pairs("a", "2")))
	assert.False(t, Pairs("a", "1").Equal(Pairs("b", "1")))
	assert.False(t, Pairs("a", "1").Equal(Pairs("a", "1", "b", "2")))
	assert.True(t, MD{}.Equal(MD{}))
}

func TestFromMapAndMap(t *testing.T) {
	md := FromMap(map[string][]string{"b": {"2"}, "a": {"1", "11"}})
	assert.Equal(t, []string{"a", "b"}, md.Keys())
	assert.Equal(t, map[string][]string{"a": {"1", "11"}, "b": {"2"}}, md.Map())
	assert.Equal(t, "{a:[1 11], b:2}", md.String())
}

func TestPairsOdd(t *testing.T) {
	assert.Panics(t, func() { Pairs("lonely") })
}

func TestValidate(t *testing.T) {
	tests := []struct {
		desc    string
		give    map[string]interface{}
		want    map[string][]string
		wantErr bool
	}{
		{
			desc: "empty",
			give: nil,
			want: map[string][]string{},
		},
		{
			desc: "strings",
			give: map[string]interface{}{"k1": "v1", "k2": "v2"},
			want: map[string][]string{"k1": {"v1"}, "k2": {"v2"}},
		},
		{
			desc: "string slice",
			give: map[string]interface{}{"k1": []string{"a", "b"}},
			want: map[string][]string{"k1": {"a", "b"}},
		},
		{
			desc: "interface slice of strings",
			give: map[string]interface{}{"k1": []interface{}{"a", "b"}},
			want: map[string][]string{"k1": {"a", "b"}},
		},
		{
			desc:    "integer",
			give:    map[string]interface{}{"k1": "v1", "k2": "v2", "k3": 3},
			wantErr: true,
		},
		{
			desc:    "interface slice with a non-string",
			give:    map[string]interface{}{"k1": []interface{}{"a", 1}},
			wantErr: true,
		},
		{
			desc:    "nil value",
			give:    map[string]interface{}{"k1": nil},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			md, err := Validate(tt.give)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, IsValidationError(err))
				assert.Contains(t, err.Error(), "header values must be of type string or array")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, md.Map())
		})
	}
}

func TestValidateOrderIsDeterministic(t *testing.T) {
	md, err := Validate(map[string]interface{}{"zeta": "z", "alpha": "a", "mid": "m"})
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha", "mid", "zeta"}, md.Keys())
}
