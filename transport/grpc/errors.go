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

package grpc

import (
	"io"
	"sort"

	"github.com/gogo/status"
	"go.uber.org/callstub/callerrors"
	"go.uber.org/callstub/internal/grpcerrorcodes"
	"go.uber.org/callstub/metadata"
	grpcmetadata "google.golang.org/grpc/metadata"
)

// toStatus converts the error that ended a gRPC stream into a call status.
// io.EOF means the server finished with OK.
func toStatus(err error, trailer grpcmetadata.MD) *callerrors.Status {
	md := fromGRPCMetadata(trailer)
	if err == nil || err == io.EOF {
		return callerrors.NewStatus(callerrors.CodeOK, "", md)
	}
	if callerrors.IsBadStatus(err) {
		st := callerrors.FromError(err)
		return callerrors.NewStatus(st.Code, st.Details, md)
	}
	s, ok := status.FromError(err)
	if !ok {
		st := callerrors.FromError(err)
		return callerrors.NewStatus(st.Code, st.Details, md)
	}
	return callerrors.NewStatus(grpcerrorcodes.FromGRPC(s.Code()), s.Message(), md)
}

// toCallError converts an error from a gRPC stream operation so that it
// carries a call status code.
func toCallError(err error) error {
	if err == nil || err == io.EOF {
		return err
	}
	st := toStatus(err, nil)
	if st.OK() {
		return nil
	}
	return callerrors.Newf(st.Code, "%s", st.Details)
}

func toGRPCMetadata(md metadata.MD) grpcmetadata.MD {
	out := grpcmetadata.MD{}
	for _, k := range md.Keys() {
		out.Append(k, md.Values(k)...)
	}
	return out
}

func fromGRPCMetadata(md grpcmetadata.MD) metadata.MD {
	keys := make([]string, 0, len(md))
	for k := range md {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var out metadata.MD
	for _, k := range keys {
		out.Append(k, md[k]...)
	}
	return out
}
