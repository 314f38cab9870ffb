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

// Package metadata holds the headers exchanged on a call.
//
// An MD keeps entries in the order they were added. Keys are stored as
// given and compared case-insensitively.
package metadata

import (
	"fmt"
	"sort"
	"strings"
)

// CanonicalizeKey canonicalizes the given header key for lookups.
func CanonicalizeKey(k string) string {
	return strings.ToLower(k)
}

// MD is an ordered mapping from header keys to one or more string values.
//
// The zero value is an empty MD ready to use.
type MD struct {
	entries []entry
}

type entry struct {
	key    string
	values []string
}

// Pairs builds an MD out of alternating keys and values.
//
//	md := metadata.Pairs("k1", "v1", "k2", "v2")
//
// Pairs panics if it is given an odd number of arguments.
func Pairs(kv ...string) MD {
	if len(kv)%2 == 1 {
		panic(fmt.Sprintf("metadata: Pairs got an odd number of arguments: %d", len(kv)))
	}
	var md MD
	for i := 0; i < len(kv); i += 2 {
		md.Append(kv[i], kv[i+1])
	}
	return md
}

// FromMap builds an MD from a map. Keys are added in sorted order.
func FromMap(m map[string][]string) MD {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	md := MD{entries: make([]entry, 0, len(keys))}
	for _, k := range keys {
		md.Append(k, m[k]...)
	}
	return md
}

// Append adds values for the given key. Values for a key that is already
// present are added after the existing ones.
func (md *MD) Append(k string, vs ...string) {
	if i := md.index(k); i >= 0 {
		md.entries[i].values = append(md.entries[i].values, vs...)
		return
	}
	md.entries = append(md.entries, entry{key: k, values: append([]string(nil), vs...)})
}

// Get returns the first value stored for the given key.
func (md MD) Get(k string) (string, bool) {
	i := md.index(k)
	if i < 0 || len(md.entries[i].values) == 0 {
		return "", false
	}
	return md.entries[i].values[0], true
}

// Values returns all values stored for the given key. The returned slice
// MUST NOT be changed.
func (md MD) Values(k string) []string {
	if i := md.index(k); i >= 0 {
		return md.entries[i].values
	}
	return nil
}

// Keys returns the keys in insertion order, as they were given.
func (md MD) Keys() []string {
	keys := make([]string, len(md.entries))
	for i, e := range md.entries {
		keys[i] = e.key
	}
	return keys
}

// Len returns the number of distinct keys.
func (md MD) Len() int {
	return len(md.entries)
}

// Merge returns a new MD containing the entries of md followed by the
// entries of other.
func (md MD) Merge(other MD) MD {
	out := md.Clone()
	for _, e := range other.entries {
		out.Append(e.key, e.values...)
	}
	return out
}

// Clone returns a deep copy of md.
func (md MD) Clone() MD {
	if len(md.entries) == 0 {
		return MD{}
	}
	out := MD{entries: make([]entry, len(md.entries))}
	for i, e := range md.entries {
		out.entries[i] = entry{key: e.key, values: append([]string(nil), e.values...)}
	}
	return out
}

// Map returns the contents of md as a map keyed by the original keys.
func (md MD) Map() map[string][]string {
	m := make(map[string][]string, len(md.entries))
	for _, e := range md.entries {
		m[e.key] = append([]string(nil), e.values...)
	}
	return m
}

// Equal reports whether md and other hold the same values for the same
// keys, ignoring key case and entry order.
func (md MD) Equal(other MD) bool {
	if md.Len() != other.Len() {
		return false
	}
	for _, e := range md.entries {
		ov := other.Values(e.key)
		if len(ov) != len(e.values) || (other.index(e.key) < 0) {
			return false
		}
		for i := range ov {
			if ov[i] != e.values[i] {
				return false
			}
		}
	}
	return true
}

// String implements fmt.Stringer.
func (md MD) String() string {
	var b strings.Builder
	b.WriteByte('{')
	for i, e := range md.entries {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(e.key)
		b.WriteByte(':')
		if len(e.values) == 1 {
			b.WriteString(e.values[0])
		} else {
			fmt.Fprint(&b, e.values)
		}
	}
	b.WriteByte('}')
	return b.String()
}

func (md MD) index(k string) int {
	ck := CanonicalizeKey(k)
	for i, e := range md.entries {
		if CanonicalizeKey(e.key) == ck {
			return i
		}
	}
	return -1
}
