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

package calltest

import (
	"context"
	"fmt"

	"go.uber.org/callstub/callerrors"
	"go.uber.org/callstub/metadata"
)

// Script describes how a scripted server answers a call.
type Script struct {
	// WantMetadata lists metadata the client must have sent.
	WantMetadata map[string]string

	// InitialMetadata is sent as soon as the call is accepted.
	InitialMetadata metadata.MD

	// TrailingMetadata is sent with the status.
	TrailingMetadata metadata.MD

	// Code is the final status. Details are "OK" for CodeOK and "NOK"
	// otherwise.
	Code callerrors.Code
}

func (s Script) details() string {
	if s.Code == callerrors.CodeOK {
		return "OK"
	}
	return "NOK"
}

func (s Script) begin(ctx context.Context, server *ServerCall) error {
	server.SendInitialMetadata(s.InitialMetadata)
	return s.checkMetadata(ctx, server)
}

func (s Script) checkMetadata(ctx context.Context, server *ServerCall) error {
	if len(s.WantMetadata) == 0 {
		return nil
	}
	md, err := server.Metadata(ctx)
	if err != nil {
		return err
	}
	for k, want := range s.WantMetadata {
		if got, ok := md.Get(k); !ok || got != want {
			return fmt.Errorf("metadata %q: want %q, got %q", k, want, got)
		}
	}
	return nil
}

func (s Script) finish(server *ServerCall) {
	server.SendStatus(s.Code, s.details(), s.TrailingMetadata)
}

func expectRead(ctx context.Context, server *ServerCall, want string) error {
	got, ok, err := server.RemoteRead(ctx)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("want request %q, client half-closed", want)
	}
	if string(got) != want {
		return fmt.Errorf("want request %q, got %q", want, got)
	}
	return nil
}

// ServeRequestResponse accepts one call, checks that it carries want and
// answers with reply.
func ServeRequestResponse(ctx context.Context, ch *Channel, want, reply string, s Script) error {
	return serve(ctx, ch, []string{want}, []string{reply}, s)
}

// ServeClientStreamer accepts one call, checks that it carries every
// request in want and answers with reply.
func ServeClientStreamer(ctx context.Context, ch *Channel, want []string, reply string, s Script) error {
	return serve(ctx, ch, want, []string{reply}, s)
}

// ServeServerStreamer accepts one call, checks that it carries want and
// answers with every reply.
func ServeServerStreamer(ctx context.Context, ch *Channel, want string, replies []string, s Script) error {
	return serve(ctx, ch, []string{want}, replies, s)
}

// ServeBidiInputsFirst accepts one call, reads every request in want and
// only then sends every reply.
func ServeBidiInputsFirst(ctx context.Context, ch *Channel, want, replies []string, s Script) error {
	return serve(ctx, ch, want, replies, s)
}

func serve(ctx context.Context, ch *Channel, want, replies []string, s Script) error {
	server, err := ch.Accept(ctx)
	if err != nil {
		return err
	}
	if err := s.begin(ctx, server); err != nil {
		return err
	}
	for _, w := range want {
		if err := expectRead(ctx, server, w); err != nil {
			return err
		}
	}
	for _, r := range replies {
		if err := server.RemoteSend(ctx, []byte(r)); err != nil {
			return err
		}
	}
	s.finish(server)
	return nil
}

// ServeBidiPingPong accepts one call and echoes every request in want. If
// clientStarts is false the server sends each message before reading the
// client's copy of it.
func ServeBidiPingPong(ctx context.Context, ch *Channel, want []string, clientStarts bool, s Script) error {
	server, err := ch.Accept(ctx)
	if err != nil {
		return err
	}
	if err := s.begin(ctx, server); err != nil {
		return err
	}
	for _, w := range want {
		if clientStarts {
			if err := expectRead(ctx, server, w); err != nil {
				return err
			}
			if err := server.RemoteSend(ctx, []byte(w)); err != nil {
				return err
			}
			continue
		}
		if err := server.RemoteSend(ctx, []byte(w)); err != nil {
			return err
		}
		if err := expectRead(ctx, server, w); err != nil {
			return err
		}
	}
	s.finish(server)
	return nil
}
