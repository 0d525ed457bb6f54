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

// Package server runs the fixed cadence loop hosting a game.Game: drain
// the datagram endpoint, feed the per-peer reliability engines, hand the
// released command batches to the application, and broadcast its
// snapshot to every registered peer on each tick.
//
// The loop is single threaded and owns all per-peer state; hooks are
// called from the loop goroutine and need no locking on their side.
// Within one peer, delivered command ids strictly increase with no gap
// and broadcast ids strictly increase; there is no ordering across
// peers.
package server

import (
	"context"
	"fmt"
	"net"
	"time"

	libval "github.com/go-playground/validator/v10"
	libatm "github.com/nabbar/golib/atomic"
	libdur "github.com/nabbar/golib/duration"
	liberr "github.com/nabbar/golib/errors"
	liblog "github.com/nabbar/golib/logger"
	"github.com/prometheus/client_golang/prometheus"

	libgam "github.com/nabbar/gamelib/game"
)

// DefaultTick is the broadcast cadence used when the config leaves it zero.
const DefaultTick = 30 * time.Millisecond

// Config carries the server loop settings.
type Config struct {
	// Address is the local bind address of the datagram endpoint,
	// e.g. "127.0.0.1:2222" or ":2222".
	Address string `mapstructure:"address" json:"address" yaml:"address" validate:"required"`

	// Tick is the broadcast period. Zero means DefaultTick.
	Tick libdur.Duration `mapstructure:"tick" json:"tick" yaml:"tick"`

	// Metrics optionally registers the loop counters onto the given
	// prometheus registerer.
	Metrics prometheus.Registerer `mapstructure:"-" json:"-" yaml:"-"`
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

// Server hosts one application behind one datagram endpoint.
type Server interface {
	// Run binds the endpoint and blocks driving the loop until the
	// context is done or a hook returns false.
	Run(ctx context.Context) liberr.Error

	// IsRunning reports whether the loop is currently driving.
	IsRunning() bool

	// Local returns the bound address of the last Run, or nil before
	// the first Run.
	Local() net.Addr
}

// New returns a Server hosting the given application.
func New(g libgam.Game, cfg Config, log liblog.FuncLog) (Server, liberr.Error) {
	if g == nil {
		return nil, ErrorParamEmpty.Error(nil)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &gsv{
		cfg: cfg,
		gam: g,
		log: log,
		prm: newMetrics(cfg.Metrics),
		run: libatm.NewValue[bool](),
		adr: libatm.NewValue[net.Addr](),
	}, nil
}
