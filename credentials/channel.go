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

package credentials

import (
	"crypto/tls"
	"crypto/x509"
	"errors"

	grpccredentials "google.golang.org/grpc/credentials"
)

// ChannelCredentials secure the connection a client stub talks over.
//
// Values are obtained from Insecure, NewSSL, FromTransportCredentials or
// Composite; the interface cannot be implemented outside this package.
type ChannelCredentials interface {
	// TransportCredentials returns the gRPC transport credentials, or nil
	// for a plaintext connection.
	TransportCredentials() grpccredentials.TransportCredentials

	// CallCredentials returns credentials that run on every call made over
	// the channel, or nil.
	CallCredentials() CallCredentials

	channelCredentials()
}

type channelCreds struct {
	transport grpccredentials.TransportCredentials
	call      CallCredentials
}

func (c *channelCreds) TransportCredentials() grpccredentials.TransportCredentials { return c.transport }
func (c *channelCreds) CallCredentials() CallCredentials                           { return c.call }
func (c *channelCreds) channelCredentials()                                        {}

// Insecure returns credentials for a plaintext connection.
func Insecure() ChannelCredentials {
	return &channelCreds{}
}

// IsInsecure reports whether creds describe a plaintext connection.
func IsInsecure(creds ChannelCredentials) bool {
	return creds != nil && creds.TransportCredentials() == nil
}

// NewSSL builds TLS channel credentials from PEM encoded material.
//
// A nil rootPEM uses the system roots. The private key and certificate chain
// are used for client authentication and must be given together or not at
// all.
func NewSSL(rootPEM, privateKeyPEM, certChainPEM []byte) (ChannelCredentials, error) {
	cfg := &tls.Config{}

	if rootPEM != nil {
		pool := x509.NewCertPool()
		if !pool.AppendCertsFromPEM(rootPEM) {
			return nil, errors.New("no root certificates could be parsed from the given PEM")
		}
		cfg.RootCAs = pool
	}

	switch {
	case (privateKeyPEM == nil) != (certChainPEM == nil):
		return nil, errors.New("private key and certificate chain must be given together")
	case privateKeyPEM != nil:
		cert, err := tls.X509KeyPair(certChainPEM, privateKeyPEM)
		if err != nil {
			return nil, err
		}
		cfg.Certificates = []tls.Certificate{cert}
	}

	return &channelCreds{transport: grpccredentials.NewTLS(cfg)}, nil
}

// FromTransportCredentials wraps existing gRPC transport credentials. A nil
// argument yields nil.
func FromTransportCredentials(creds grpccredentials.TransportCredentials) ChannelCredentials {
	if creds == nil {
		return nil
	}
	return &channelCreds{transport: creds}
}

// Composite attaches call credentials to channel credentials. The call
// credentials run on every call, before any credentials given for the call
// itself.
func Composite(channel ChannelCredentials, call CallCredentials) ChannelCredentials {
	if channel == nil {
		return nil
	}
	return &channelCreds{
		transport: channel.TransportCredentials(),
		call:      Compose(channel.CallCredentials(), call),
	}
}
