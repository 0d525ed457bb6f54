/*
 * MIT License
 *
 * Copyright (c) 2025 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

// Package client is the client runtime surface: one paced command
// sender and one gated state receiver talking to a single game server.
//
// Send stamps, remembers and emits one command datagram, sleeping up to
// the configured pace net of the time elapsed since the previous Send.
// Recv polls the endpoint without blocking; when a state passes the
// session and ordering gates, the commands its missing report asks for
// are retransmitted from the send cache before the state payload is
// returned. Retransmission faults are logged and do not fail the Recv.
package client

import (
	"fmt"
	"net"

	libval "github.com/go-playground/validator/v10"
	libdur "github.com/nabbar/golib/duration"
	liberr "github.com/nabbar/golib/errors"
	liblog "github.com/nabbar/golib/logger"

	libeng "github.com/nabbar/gamelib/engine"
	libpkt "github.com/nabbar/gamelib/packet"
	sckclt "github.com/nabbar/gamelib/socket/client"
)

// Config carries the client settings.
type Config struct {
	// LocalPort is the local port to bind on 127.0.0.1.
	LocalPort int `mapstructure:"local_port" json:"local_port" yaml:"local_port" validate:"gte=0,lte=65535"`

	// Server is the game server address, e.g. "127.0.0.1:2222".
	Server string `mapstructure:"server" json:"server" yaml:"server" validate:"required"`

	// Pace is the minimum interval between two sends. Zero means
	// engine.DefaultPace.
	Pace libdur.Duration `mapstructure:"pace" json:"pace" yaml:"pace"`
}

// Validate checks the config consistency.
func (c *Config) Validate() liberr.Error {
	err := ErrorValidatorError.Error(nil)

	if er := libval.New().Struct(c); er != nil {
		if e, ok := er.(*libval.InvalidValidationError); ok {
			err.Add(e)
		}

		for _, e := range er.(libval.ValidationErrors) {
			//nolint goerr113
			err.Add(fmt.Errorf("config field '%s' is not validated by constraint '%s'", e.StructNamespace(), e.ActualTag()))
		}
	}

	if err.HasParent() {
		return err
	}

	return nil
}

// Client is the user facing client socket.
// It is driven by a single caller and is not safe for concurrent use.
type Client interface {
	// Send emits one command to the server and returns the number of
	// bytes written. It may sleep up to the configured pace.
	Send(cmd []byte) (int, liberr.Error)

	// Recv returns the next accepted state payload, or
	// socket.ErrorWouldBlock when no datagram is queued. Out-of-order
	// states reject with sequence.ErrorNotOrdered.
	Recv() ([]byte, liberr.Error)

	// Local returns the bound local address.
	Local() net.Addr

	// Remote returns the server address.
	Remote() net.Addr

	// Close releases the endpoint.
	Close() liberr.Error
}

// New binds the local endpoint, connects it to the server and returns
// a ready Client with a fresh session key.
func New(cfg Config, log liblog.FuncLog) (Client, liberr.Error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s, err := sckclt.New(cfg.LocalPort, cfg.Server)

	if err != nil {
		return nil, err
	}

	return &clt{
		sck: s,
		eng: libeng.NewClient(libpkt.NewKey(), cfg.Pace.Time()),
		log: log,
	}, nil
}
