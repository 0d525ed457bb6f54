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

// Package sequence provides the monotonic packet id source and the
// receive-side id gate used on state packets by a game client.
package sequence

import liberr "github.com/nabbar/golib/errors"

// MaxBreak is the id gap beyond which two peers are considered
// desynchronised. A jump larger than MaxBreak on the receive side is
// read as a new stream (session restart or long stall), not as
// reordering.
const MaxBreak uint32 = 32

// Generator emits the peer-local monotonic packet ids 1, 2, 3, ...
// It wraps modulo 2^32, which is not expected within one session.
type Generator interface {
	// Next returns the next id to stamp on an outbound packet.
	Next() uint32
}

// Filter gates inbound state ids: only a strictly increasing id, or an
// id breaking away by more than MaxBreak (resynchronisation), passes.
type Filter interface {
	// Accept validates the id and, when valid, records it as the new
	// last seen id. An out-of-order id is rejected with ErrorNotOrdered.
	Accept(id uint32) liberr.Error

	// Last returns the last accepted id.
	Last() uint32

	// Reset returns the filter to its initial state (no id seen).
	Reset()
}

// NewGenerator returns a Generator whose first emitted id is start.
func NewGenerator(start uint32) Generator {
	return &gen{
		i: start,
	}
}

// NewFilter returns a Filter that has seen no id yet.
func NewFilter() Filter {
	return &flt{
		l: 0,
	}
}
