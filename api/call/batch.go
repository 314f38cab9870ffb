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

package call

import (
	"go.uber.org/callstub/callerrors"
	"go.uber.org/callstub/metadata"
)

// Message is an outgoing message along with its write flags.
type Message struct {
	Data  []byte
	Flags uint32
}

// Batch is a set of operations submitted to a Call together.
//
// Send operations run first, in field order, followed by receive operations.
type Batch struct {
	// SendInitialMetadata sends the client's initial metadata when non-nil.
	SendInitialMetadata *metadata.MD

	// SendMessage sends one message when non-nil.
	SendMessage *Message

	// SendCloseFromClient half-closes the call.
	SendCloseFromClient bool

	// RecvInitialMetadata waits for the server's initial metadata.
	RecvInitialMetadata bool

	// RecvMessage waits for the next message from the server.
	RecvMessage bool

	// RecvStatus waits for the call's final status.
	RecvStatus bool
}

// HasSend reports whether the batch contains any send operation.
func (b Batch) HasSend() bool {
	return b.SendInitialMetadata != nil || b.SendMessage != nil || b.SendCloseFromClient
}

// Empty reports whether the batch contains no operations.
func (b Batch) Empty() bool {
	return !b.HasSend() && !b.RecvInitialMetadata && !b.RecvMessage && !b.RecvStatus
}

// Result is the completion of a Batch.
type Result struct {
	// InitialMetadata holds the server's initial metadata if it was
	// requested. It is empty if the call ended before any arrived.
	InitialMetadata metadata.MD

	// Message holds the received message if one was requested and
	// EndOfStream is false.
	Message []byte

	// EndOfStream is set when a message was requested but the server will
	// send no more, either because it finished or because the call failed.
	// The reason is reported by the status.
	EndOfStream bool

	// Status holds the final status if it was requested.
	Status *callerrors.Status

	// Err is set if a send operation failed. Receive operations in the same
	// batch are not run.
	Err error
}
