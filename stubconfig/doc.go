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

// Package stubconfig builds client stubs from configuration.
//
// A configuration names the target and how to secure the channel to it:
//
//   target: 127.0.0.1:8080
//   tls:
//     caFile: /etc/ssl/ca.pem
//     certFile: /etc/ssl/client.pem
//     keyFile: /etc/ssl/client.key
//   channelArgs:
//     grpc.ssl_target_name_override: foo.test.google.fr
//   defaultTimeout: 5s
//
// Exactly one of insecure: true or a tls block must be given. Within the
// tls block caFile may be left out to use the system roots, and certFile and
// keyFile must be given together.
//
// Unknown keys are rejected.
package stubconfig
