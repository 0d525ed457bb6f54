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
	"net"
	"time"

	liberr "github.com/nabbar/golib/errors"

	libpkt "github.com/nabbar/gamelib/packet"
	libsck "github.com/nabbar/gamelib/socket"
)

type clt struct {
	c *net.UDPConn
	b []byte
}

func (o *clt) Send(p []byte) (int, liberr.Error) {
	if len(p) > libpkt.MaxDatagram {
		return 0, libsck.ErrorTooLarge.Error(nil)
	}

	n, e := o.c.Write(p)

	if e != nil {
		return n, libsck.ErrorWrite.Error(e)
	}

	return n, nil
}

func (o *clt) Recv() ([]byte, liberr.Error) {
	_ = o.c.SetReadDeadline(time.Now().Add(libsck.Deadline))

	n, e := o.c.Read(o.b)

	if e != nil {
		return nil, libsck.RecvError(e)
	}

	if err := libsck.CheckDatagram(o.b[:n]); err != nil {
		return nil, err
	}

	p := make([]byte, n)
	copy(p, o.b[:n])

	return p, nil
}

func (o *clt) Local() net.Addr {
	return o.c.LocalAddr()
}

func (o *clt) Remote() net.Addr {
	return o.c.RemoteAddr()
}

func (o *clt) Close() liberr.Error {
	if e := o.c.Close(); e != nil {
		return libsck.ErrorClose.Error(e)
	}

	return nil
}
