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

package server

import (
	"context"
	"net"
	"time"

	libatm "github.com/nabbar/golib/atomic"
	liberr "github.com/nabbar/golib/errors"
	liblog "github.com/nabbar/golib/logger"

	libeng "github.com/nabbar/gamelib/engine"
	libgam "github.com/nabbar/gamelib/game"
	libpkt "github.com/nabbar/gamelib/packet"
	libsck "github.com/nabbar/gamelib/socket"
	scksrv "github.com/nabbar/gamelib/socket/server"
)

// loopIdle bounds the spin between two loop iterations when nothing is
// queued, so an idle server does not burn a core.
const loopIdle = time.Millisecond

type peer struct {
	adr net.Addr
	eng libeng.Server
}

type gsv struct {
	cfg Config
	gam libgam.Game
	log liblog.FuncLog
	prm *metrics
	run libatm.Value[bool]
	adr libatm.Value[net.Addr]

	key libpkt.Key
	sck scksrv.Server
	reg map[string]*peer
}

func (o *gsv) logger(ctx context.Context) liblog.Logger {
	if o.log != nil {
		if l := o.log(); l != nil {
			return l
		}
	}

	return liblog.New(ctx)
}

func (o *gsv) Run(ctx context.Context) liberr.Error {
	s, err := scksrv.New(o.cfg.Address)

	if err != nil {
		return err
	}

	o.sck = s
	o.key = libpkt.NewKey()
	o.reg = make(map[string]*peer)

	o.adr.Store(s.Local())
	o.run.Store(true)

	defer func() {
		o.run.Store(false)

		if e := s.Close(); e != nil {
			o.logger(ctx).Error("closing game server endpoint", e)
		}
	}()

	tick := DefaultTick

	if d := o.cfg.Tick.Time(); d > 0 {
		tick = d
	}

	var (
		lastCmd  = time.Now()
		lastDraw = time.Now()
	)

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		if !o.recvPass(ctx, &lastCmd) {
			return nil
		}

		if time.Since(lastDraw) >= tick {
			d := time.Since(lastDraw)
			lastDraw = time.Now()

			if !o.broadcast(ctx, d) {
				return nil
			}
		}

		time.Sleep(loopIdle)
	}
}

// recvPass drains every queued datagram. It returns false when a hook
// asked the loop to stop.
func (o *gsv) recvPass(ctx context.Context, lastCmd *time.Time) bool {
	for {
		p, a, err := o.sck.RecvFrom()

		if libsck.IsWouldBlock(err) {
			return true
		} else if err != nil {
			if err.HasCode(libsck.ErrorNotProtocol) {
				o.prm.dropped("protocol")
				continue
			}

			o.logger(ctx).Error("receiving datagram", err)

			// leave the drain so the loop context stays responsive
			return o.gam.OnEvent(libgam.Event{Kind: libgam.KindRecv, Addr: a, Err: err})
		}

		o.prm.received()

		cmd, err := libpkt.DecodeCommand(p)

		if err != nil {
			o.prm.dropped("malformed")
			o.logger(ctx).Debug("dropping malformed datagram", err)
			continue
		}

		if !o.gam.Allow(a) {
			if _, ok := o.reg[a.String()]; ok {
				delete(o.reg, a.String())
				o.prm.peers(len(o.reg))
				o.logger(ctx).Info("removing rejected client", nil)
			}

			o.prm.dropped("admission")
			continue
		}

		pe, ok := o.reg[a.String()]

		if !ok {
			pe = &peer{
				adr: a,
				eng: libeng.NewServer(o.key),
			}

			o.reg[a.String()] = pe
			o.prm.peers(len(o.reg))
		}

		batch, err := pe.eng.Recv(cmd)

		if err != nil {
			// duplicate, too old or bad protocol fields: local recoverable
			o.prm.dropped("ordering")
			o.logger(ctx).Debug("dropping not ordered command", err)
			continue
		}

		if len(batch) > 0 {
			d := time.Since(*lastCmd)
			*lastCmd = time.Now()

			o.prm.released(len(batch))

			if !o.gam.OnCommands(d, batch, a) {
				return false
			}
		}
	}
}

// broadcast produces the snapshot of this tick and fans it out to every
// registered peer. It returns false when a hook asked the loop to stop.
func (o *gsv) broadcast(ctx context.Context, delta time.Duration) bool {
	st := o.gam.Draw(delta)

	if len(st) < 1 {
		return true
	}

	o.lifecycle(ctx)

	for _, pe := range o.reg {
		buf, err := pe.eng.Send(st).Encode()

		if err == nil {
			if _, e := o.sck.SendTo(pe.adr, buf); e != nil {
				err = e
			}
		}

		if err != nil {
			o.logger(ctx).Error("broadcasting state", err)

			if !o.gam.OnEvent(libgam.Event{Kind: libgam.KindSend, Addr: pe.adr, Err: err}) {
				return false
			}

			continue
		}

		o.prm.broadcast()
	}

	return true
}

// lifecycle polls the optional add and remove hooks of the application.
func (o *gsv) lifecycle(ctx context.Context) {
	lc, ok := o.gam.(libgam.Lifecycle)

	if !ok {
		return
	}

	if a := lc.AddClient(); a != nil {
		if _, ok = o.reg[a.String()]; !ok {
			o.reg[a.String()] = &peer{
				adr: a,
				eng: libeng.NewServer(o.key),
			}

			o.prm.peers(len(o.reg))
			o.logger(ctx).Info("registering client", nil)
		}
	}

	if a := lc.RemoveClient(); a != nil {
		if _, ok = o.reg[a.String()]; ok {
			delete(o.reg, a.String())
			o.prm.peers(len(o.reg))
			o.logger(ctx).Info("removing client", nil)
		}
	}
}

func (o *gsv) IsRunning() bool {
	return o.run.Load()
}

func (o *gsv) Local() net.Addr {
	return o.adr.Load()
}
