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

package client

import (
	"context"
	"net"

	liberr "github.com/nabbar/golib/errors"
	liblog "github.com/nabbar/golib/logger"

	libeng "github.com/nabbar/gamelib/engine"
	libpkt "github.com/nabbar/gamelib/packet"
	sckclt "github.com/nabbar/gamelib/socket/client"
)

type clt struct {
	sck sckclt.Client
	eng libeng.Client
	log liblog.FuncLog
}

func (o *clt) logger() liblog.Logger {
	if o.log != nil {
		if l := o.log(); l != nil {
			return l
		}
	}

	return liblog.New(context.Background())
}

func (o *clt) Send(cmd []byte) (int, liberr.Error) {
	buf, err := o.eng.Send(cmd).Encode()

	if err != nil {
		return 0, err
	}

	return o.sck.Send(buf)
}

func (o *clt) Recv() ([]byte, liberr.Error) {
	p, err := o.sck.Recv()

	if err != nil {
		return nil, err
	}

	st, err := libpkt.DecodeState(p)

	if err != nil {
		return nil, err
	}

	data, resend, err := o.eng.Recv(st)

	if err != nil {
		return nil, err
	}

	o.resend(resend)

	return data, nil
}

// resend retransmits the cached commands the server reported missing.
// A retransmission fault never fails the receive: it is logged and the
// command will be requested again on the next state.
func (o *clt) resend(cmds []*libpkt.Command) {
	for _, c := range cmds {
		buf, err := c.Encode()

		if err == nil {
			if _, e := o.sck.Send(buf); e != nil {
				err = e
			}
		}

		if err != nil {
			o.logger().Error("resending lost command", err)
		}
	}
}

func (o *clt) Local() net.Addr {
	return o.sck.Local()
}

func (o *clt) Remote() net.Addr {
	return o.sck.Remote()
}

func (o *clt) Close() liberr.Error {
	return o.sck.Close()
}
