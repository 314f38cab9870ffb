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

// Package callstub makes client calls on an RPC channel.
//
// A ClientStub is bound to one target. It offers the four call shapes:
//
//   RequestResponse  one request, one response
//   ClientStreamer   many requests, one response
//   ServerStreamer   one request, many responses
//   BidiStreamer     many requests, many responses
//
// Messages are opaque to the stub. Every call takes a marshaler for
// requests and an unmarshaler for responses; see the encoding packages for
// ready-made pairs.
//
//   stub, err := callstub.NewClientStub("127.0.0.1:8080", credentials.Insecure())
//   if err != nil {
//     return err
//   }
//   defer stub.Close()
//
//   resp, err := stub.RequestResponse(ctx, "/echo.Echo/Echo", "hello",
//     raw.Marshal, raw.UnmarshalString,
//     callstub.WithMetadata(map[string]interface{}{"k1": "v1"}),
//   )
//
// Each shape also has an Op variant that returns the call without running
// it. The caller can then start it, execute it, inspect its metadata and
// status, or cancel it.
//
// Failures are reported with the types in the callerrors package. A call
// that ended with a non-OK status returns a *callerrors.BadStatusError.
package callstub
