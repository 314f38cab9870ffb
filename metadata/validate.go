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
	"errors"
	"fmt"
	"sort"
)

// ValidationError is returned when caller-supplied metadata holds a value
// that is neither a string nor an array of strings.
type ValidationError struct {
	Key   string
	Value interface{}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("header values must be of type string or array: key %q has value %v of type %T", e.Key, e.Value, e.Value)
}

// IsValidationError reports whether err is, or wraps, a ValidationError.
func IsValidationError(err error) bool {
	var verr *ValidationError
	return errors.As(err, &verr)
}

// Validate checks raw caller metadata and converts it into an MD.
//
// Every value must be a string, a []string, or a []interface{} made up
// entirely of strings. Keys are not case-converted or deduplicated. They are
// added in sorted order so that the same input always yields the same MD.
func Validate(raw map[string]interface{}) (MD, error) {
	if len(raw) == 0 {
		return MD{}, nil
	}

	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	md := MD{entries: make([]entry, 0, len(keys))}
	for _, k := range keys {
		switch v := raw[k].(type) {
		case string:
			md.Append(k, v)
		case []string:
			md.Append(k, v...)
		case []interface{}:
			values := make([]string, 0, len(v))
			for _, item := range v {
				s, ok := item.(string)
				if !ok {
					return MD{}, &ValidationError{Key: k, Value: raw[k]}
				}
				values = append(values, s)
			}
			md.Append(k, values...)
		default:
			return MD{}, &ValidationError{Key: k, Value: raw[k]}
		}
	}
	return md, nil
}
