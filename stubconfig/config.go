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

package stubconfig

import (
	"errors"
	"fmt"
	"io"
	"io/ioutil"
	"time"

	"github.com/uber-go/mapdecode"
	"go.uber.org/callstub"
	"go.uber.org/callstub/callerrors"
	"go.uber.org/callstub/credentials"
	"gopkg.in/yaml.v2"
)

const _tagName = "config"

// Config describes a client stub.
type Config struct {
	Target         string            `config:"target"`
	Insecure       bool              `config:"insecure"`
	TLS            *TLS              `config:"tls"`
	ChannelArgs    map[string]string `config:"channelArgs"`
	DefaultTimeout Duration          `config:"defaultTimeout"`
}

// TLS names the files holding TLS material.
type TLS struct {
	CAFile   string `config:"caFile"`
	CertFile string `config:"certFile"`
	KeyFile  string `config:"keyFile"`
}

// Decode implements mapdecode.Decoder.
func (t *TLS) Decode(into mapdecode.Into) error {
	type plain TLS
	var p plain
	if err := into(&p); err != nil {
		return fmt.Errorf("could not decode tls block: %v", err)
	}
	if (p.CertFile == "") != (p.KeyFile == "") {
		return errors.New("could not decode tls block: certFile and keyFile must be given together")
	}
	*t = TLS(p)
	return nil
}

// Duration is a time.Duration written as a string like "1.5s".
type Duration time.Duration

// Decode implements mapdecode.Decoder.
func (d *Duration) Decode(into mapdecode.Into) error {
	var s string
	if err := into(&s); err != nil {
		return fmt.Errorf("could not decode duration: %v", err)
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("could not decode duration: %v", err)
	}
	if v < 0 {
		return fmt.Errorf("could not decode duration: %q is negative", s)
	}
	*d = Duration(v)
	return nil
}

// LoadYAML reads a Config from YAML.
func LoadYAML(r io.Reader) (Config, error) {
	b, err := ioutil.ReadAll(r)
	if err != nil {
		return Config{}, err
	}

	var data map[string]interface{}
	if err := yaml.Unmarshal(b, &data); err != nil {
		return Config{}, err
	}
	return Load(data)
}

// Load reads a Config from a map[string]interface{} or
// map[interface{}]interface{}.
func Load(data interface{}) (Config, error) {
	var cfg Config
	if err := mapdecode.Decode(&cfg, data, mapdecode.TagName(_tagName)); err != nil {
		return Config{}, err
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.Target == "" {
		return errors.New("target is required")
	}
	if c.Insecure == (c.TLS != nil) {
		return errors.New("exactly one of insecure and tls must be set")
	}
	return nil
}

// Credentials loads the channel credentials the Config describes.
func (c Config) Credentials() (credentials.ChannelCredentials, error) {
	if c.Insecure {
		return credentials.Insecure(), nil
	}
	if c.TLS == nil {
		return nil, errors.New("no credentials configured")
	}

	var root, key, chain []byte
	var err error
	if c.TLS.CAFile != "" {
		if root, err = ioutil.ReadFile(c.TLS.CAFile); err != nil {
			return nil, err
		}
	}
	if c.TLS.CertFile != "" {
		if chain, err = ioutil.ReadFile(c.TLS.CertFile); err != nil {
			return nil, err
		}
		if key, err = ioutil.ReadFile(c.TLS.KeyFile); err != nil {
			return nil, err
		}
	}
	return credentials.NewSSL(root, key, chain)
}

// Build builds a ClientStub. opts are applied after the configured ones.
func (c Config) Build(opts ...callstub.StubOption) (*callstub.ClientStub, error) {
	creds, err := c.Credentials()
	if err != nil {
		return nil, &callerrors.ConstructionError{Message: "invalid credentials", Cause: err}
	}
	stubOpts := []callstub.StubOption{
		callstub.ChannelArgs(c.ChannelArgs),
		callstub.DefaultTimeout(time.Duration(c.DefaultTimeout)),
	}
	return callstub.NewClientStub(c.Target, creds, append(stubOpts, opts...)...)
}
