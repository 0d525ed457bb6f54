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

// Package server implements the server datagram endpoint: bound to a
// local port and talking to many clients through RecvFrom and SendTo.
package server

import (
	"net"

	liberr "github.com/nabbar/golib/errors"

	libpkt "github.com/nabbar/gamelib/packet"
	libsck "github.com/nabbar/gamelib/socket"
)

// Server is the unconnected, non-blocking server endpoint.
// It is driven by the single tick loop and is not safe for concurrent use.
type Server interface {
	// RecvFrom returns the next queued datagram as an independent copy
	// with its source address, or socket.ErrorWouldBlock when none is
	// queued. Datagrams not opening with the protocol id byte are
	// rejected with socket.ErrorNotProtocol.
	RecvFrom() ([]byte, net.Addr, liberr.Error)

	// SendTo writes one datagram to the given client address.
	SendTo(addr net.Addr, p []byte) (int, liberr.Error)

	// Local returns the bound local address.
	Local() net.Addr

	// Close releases the endpoint.
	Close() liberr.Error
}

// New binds the given local address, e.g. "127.0.0.1:2222" or ":2222".
func New(bindAddress string) (Server, liberr.Error) {
	if len(bindAddress) < 1 {
		return nil, libsck.ErrorParamEmpty.Error(nil)
	}

	a, e := net.ResolveUDPAddr("udp", bindAddress)

	if e != nil {
		return nil, libsck.ErrorBadAddress.Error(e)
	}

	c, e := net.ListenUDP("udp", a)

	if e != nil {
		return nil, libsck.ErrorBind.Error(e)
	}

	return &srv{
		c: c,
		b: make([]byte, libpkt.MaxDatagram),
	}, nil
}
