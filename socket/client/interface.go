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

// Package client implements the client datagram endpoint: bound to a
// local port and connected to exactly one server, so every Send goes to
// that server and only its datagrams are received.
package client

import (
	"net"
	"strconv"

	liberr "github.com/nabbar/golib/errors"

	libpkt "github.com/nabbar/gamelib/packet"
	libsck "github.com/nabbar/gamelib/socket"
)

// Client is the connected, non-blocking client endpoint.
// It is driven by a single caller and is not safe for concurrent use.
type Client interface {
	// Send writes one datagram to the connected server.
	Send(p []byte) (int, liberr.Error)

	// Recv returns the next queued datagram as an independent copy, or
	// socket.ErrorWouldBlock when none is queued. Datagrams not opening
	// with the protocol id byte are rejected with socket.ErrorNotProtocol.
	Recv() ([]byte, liberr.Error)

	// Local returns the bound local address.
	Local() net.Addr

	// Remote returns the connected server address.
	Remote() net.Addr

	// Close releases the endpoint.
	Close() liberr.Error
}

// New binds 127.0.0.1:localPort and connects it to the server address.
func New(localPort int, serverAddr string) (Client, liberr.Error) {
	if len(serverAddr) < 1 {
		return nil, libsck.ErrorParamEmpty.Error(nil)
	}

	l, e := net.ResolveUDPAddr("udp", net.JoinHostPort("127.0.0.1", strconv.Itoa(localPort)))

	if e != nil {
		return nil, libsck.ErrorBadAddress.Error(e)
	}

	r, e := net.ResolveUDPAddr("udp", serverAddr)

	if e != nil {
		return nil, libsck.ErrorBadAddress.Error(e)
	}

	c, e := net.DialUDP("udp", l, r)

	if e != nil {
		return nil, libsck.ErrorBind.Error(e)
	}

	return &clt{
		c: c,
		b: make([]byte, libpkt.MaxDatagram),
	}, nil
}
