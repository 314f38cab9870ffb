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

// Package grpc implements call.Channel on top of a gRPC client connection.
//
// Usage
//
// Build a channel for a target and hand it to a client stub.
//
//   ch, err := grpc.NewChannel("127.0.0.1:8080",
//     grpc.Credentials(credentials.Insecure()),
//   )
//   if err != nil {
//     return err
//   }
//   defer ch.Close()
//
//   stub, err := callstub.NewClientStub("127.0.0.1:8080", credentials.Insecure(),
//     callstub.ChannelOverride(ch),
//   )
//
// Messages are passed through unchanged: the stub's marshalers produce the
// bytes that go on the wire.
//
// Channel arguments
//
// The following channel arguments are understood. Unknown arguments are
// ignored.
//
//   grpc.ssl_target_name_override   server name used to verify TLS certificates
//   grpc.primary_user_agent         prepended to the user agent
//   grpc.max_receive_message_length largest message the client accepts
//   grpc.max_send_message_length    largest message the client sends
//   grpc.default_compression_algorithm gzip, snappy or identity
package grpc
