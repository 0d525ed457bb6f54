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

// Package game defines the contract between the server tick loop and
// the user supplied application: the application consumes the in-order
// command batches of each client and produces the snapshot broadcast on
// every tick.
//
// See the server and client sub-packages for the two runtime surfaces.
package game

import (
	"net"
	"time"

	liberr "github.com/nabbar/golib/errors"
)

// Game is implemented by the application hosted in the server loop.
// All hooks are called from the single loop goroutine.
type Game interface {
	// OnCommands is called exactly when a non empty in-order batch of
	// command payloads is released for one client. The delta is the
	// time elapsed since the previous call. Returning false stops the
	// server loop.
	OnCommands(delta time.Duration, commands [][]byte, from net.Addr) bool

	// Draw is called on each tick with the time elapsed since the
	// previous tick and returns the snapshot to broadcast. An empty
	// result skips the broadcast for this tick.
	Draw(delta time.Duration) []byte

	// Allow is consulted for each received datagram before any engine
	// use. Returning false drops the datagram and removes any engine
	// registered for that source address.
	Allow(from net.Addr) bool

	// OnEvent receives the transport faults of the loop. Returning
	// false stops the server loop.
	OnEvent(evt Event) bool
}

// Lifecycle is optionally implemented by the application to register or
// remove clients explicitly. Both hooks are polled on each tick that
// broadcasts, just before the broadcast; a tick whose Draw result is
// empty does not poll them. A nil address means nothing to do.
type Lifecycle interface {
	AddClient() net.Addr
	RemoveClient() net.Addr
}

// Kind qualifies the origin of an Event.
type Kind uint8

const (
	// KindRecv is a fault of the receive path.
	KindRecv Kind = iota

	// KindSend is a fault of the per-peer broadcast path.
	KindSend
)

// Event is a transport fault surfaced to the application.
type Event struct {
	Kind Kind
	Addr net.Addr
	Err  liberr.Error
}
