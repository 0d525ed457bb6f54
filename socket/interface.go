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

// Package socket holds what the UDP endpoint variants share: the error
// codes of the datagram layer and the mapping of transport conditions
// onto them.
//
// Both variants are non-blocking: an empty receive queue surfaces
// ErrorWouldBlock, which is a normal condition for a caller polling at
// tick rate, not a fault. Each endpoint owns one receive buffer of
// packet.MaxDatagram bytes, reused across calls; payloads returned to
// the caller are independent copies sized to the actual datagram.
//
// See the client and server sub-packages for the two endpoint variants.
package socket

import (
	"errors"
	"net"
	"os"
	"time"

	liberr "github.com/nabbar/golib/errors"

	libpkt "github.com/nabbar/gamelib/packet"
)

// Deadline is the read deadline applied before every receive call: a
// queued datagram is returned at once, an empty queue surfaces
// ErrorWouldBlock after waiting at most Deadline.
var Deadline = time.Millisecond

// IsWouldBlock reports whether the error only means that no datagram
// was queued.
func IsWouldBlock(err liberr.Error) bool {
	return err != nil && err.HasCode(ErrorWouldBlock)
}

// RecvError maps a transport receive error onto the datagram layer codes.
func RecvError(err error) liberr.Error {
	var n net.Error

	if errors.As(err, &n) && n.Timeout() {
		return ErrorWouldBlock.Error(nil)
	} else if errors.Is(err, os.ErrDeadlineExceeded) {
		return ErrorWouldBlock.Error(nil)
	}

	return ErrorRead.Error(err)
}

// CheckDatagram validates one received datagram before it is handed to
// the codec: it must be non empty and open with the protocol id byte.
func CheckDatagram(p []byte) liberr.Error {
	if len(p) < 1 || p[0] != libpkt.ProtocolID {
		return ErrorNotProtocol.Error(nil)
	}

	return nil
}
