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
	"fmt"
	"strconv"

	"go.uber.org/callstub/credentials"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"google.golang.org/grpc"
)

// UserAgent is the user agent sent with every call.
const UserAgent = "callstub-go"

// Channel arguments understood by NewChannel.
const (
	ArgSSLTargetNameOverride = "grpc.ssl_target_name_override"
	ArgPrimaryUserAgent      = "grpc.primary_user_agent"
	ArgMaxReceiveMessageSize = "grpc.max_receive_message_length"
	ArgMaxSendMessageSize    = "grpc.max_send_message_length"
	ArgDefaultCompression    = "grpc.default_compression_algorithm"
)

// ChannelOption customizes a Channel.
type ChannelOption func(*channelOptions)

type channelOptions struct {
	creds       credentials.ChannelCredentials
	args        map[string]string
	logger      *zap.Logger
	dialOptions []grpc.DialOption
}

func newChannelOptions(opts []ChannelOption) channelOptions {
	o := channelOptions{
		creds:  credentials.Insecure(),
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Credentials sets the credentials used to secure the connection. Call
// credentials carried by creds are not applied by the channel; the stub
// attaches them to each call. Defaults to credentials.Insecure().
func Credentials(creds credentials.ChannelCredentials) ChannelOption {
	return func(o *channelOptions) {
		if creds != nil {
			o.creds = creds
		}
	}
}

// ChannelArgs sets channel arguments, keyed by their gRPC names.
func ChannelArgs(args map[string]string) ChannelOption {
	return func(o *channelOptions) {
		o.args = args
	}
}

// Logger sets the logger for the channel.
func Logger(logger *zap.Logger) ChannelOption {
	return func(o *channelOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// DialOptions adds raw grpc.DialOptions, applied after everything else.
func DialOptions(opts ...grpc.DialOption) ChannelOption {
	return func(o *channelOptions) {
		o.dialOptions = append(o.dialOptions, opts...)
	}
}

// grpcDialOptions turns the channel options into grpc.DialOptions. Every
// malformed argument is reported, not only the first.
func (o channelOptions) grpcDialOptions() ([]grpc.DialOption, error) {
	userAgent := UserAgent
	var callOptions []grpc.CallOption
	callOptions = append(callOptions, grpc.ForceCodec(bytesCodec{}))

	transportCreds := o.creds.TransportCredentials()
	var err error
	for k, v := range o.args {
		switch k {
		case ArgSSLTargetNameOverride:
			if transportCreds == nil {
				o.logger.Debug("Ignoring server name override on an insecure channel.")
				continue
			}
			transportCreds = transportCreds.Clone()
			err = multierr.Append(err, transportCreds.OverrideServerName(v))
		case ArgPrimaryUserAgent:
			userAgent = v + " " + userAgent
		case ArgMaxReceiveMessageSize:
			n, perr := parseSize(k, v)
			err = multierr.Append(err, perr)
			callOptions = append(callOptions, grpc.MaxCallRecvMsgSize(n))
		case ArgMaxSendMessageSize:
			n, perr := parseSize(k, v)
			err = multierr.Append(err, perr)
			callOptions = append(callOptions, grpc.MaxCallSendMsgSize(n))
		case ArgDefaultCompression:
			opt, cerr := compressionOption(v)
			err = multierr.Append(err, cerr)
			if opt != nil {
				callOptions = append(callOptions, opt)
			}
		default:
			o.logger.Debug("Ignoring unknown channel argument.", zap.String("arg", k))
		}
	}
	if err != nil {
		return nil, err
	}

	dialOptions := []grpc.DialOption{
		grpc.WithUserAgent(userAgent),
		grpc.WithDefaultCallOptions(callOptions...),
	}
	if transportCreds == nil {
		dialOptions = append(dialOptions, grpc.WithInsecure())
	} else {
		dialOptions = append(dialOptions, grpc.WithTransportCredentials(transportCreds))
	}
	return append(dialOptions, o.dialOptions...), nil
}

func parseSize(arg, v string) (int, error) {
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("channel argument %q must be a positive integer, got %q", arg, v)
	}
	return n, nil
}
