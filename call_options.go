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

package callstub

import (
	"time"

	"go.uber.org/callstub/credentials"
	"go.uber.org/callstub/metadata"
)

// CallOption customizes a single call.
type CallOption struct{ apply func(*callOptions) }

type callOptions struct {
	md       metadata.MD
	creds    credentials.CallCredentials
	deadline time.Time
	err      error
}

func newCallOptions(opts []CallOption) (callOptions, error) {
	var o callOptions
	for _, opt := range opts {
		opt.apply(&o)
	}
	return o, o.err
}

// WithMetadata adds metadata to the call. Every value must be a string or
// an array of strings; anything else fails the call with a
// *metadata.ValidationError before it is made.
func WithMetadata(md map[string]interface{}) CallOption {
	return CallOption{func(o *callOptions) {
		validated, err := metadata.Validate(md)
		if err != nil {
			if o.err == nil {
				o.err = err
			}
			return
		}
		o.md = o.md.Merge(validated)
	}}
}

// WithCredentials adds call credentials. They run after any call
// credentials carried by the stub's channel credentials.
func WithCredentials(creds credentials.CallCredentials) CallOption {
	return CallOption{func(o *callOptions) {
		o.creds = credentials.Compose(o.creds, creds)
	}}
}

// WithDeadline sets the absolute deadline of the call. The earliest of
// this, the context's deadline and the stub's default timeout wins.
func WithDeadline(deadline time.Time) CallOption {
	return CallOption{func(o *callOptions) { o.deadline = deadline }}
}
