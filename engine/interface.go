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

// Package engine composes the packet codec, the sequence source, the
// send cache, the arranger and the session key into the two reliability
// roles of the protocol.
//
// The client role stamps and remembers outbound commands and, on each
// received state, turns the piggybacked missing report into the list of
// cached commands to retransmit. The server role feeds received
// commands of one peer into its arranger and releases in-order batches,
// stamping every outbound state with the current missing report.
//
// The four inbound checks (protocol id, protocol version, session key,
// id ordering) are linear and inline in the Recv paths. A session key
// mismatch is not an error: the engine adopts the new key and resets
// its per-peer state, which is the soft reconnection of the protocol.
//
// Engines are exclusively owned, one per peer, and not safe for
// concurrent use.
package engine

import (
	"time"

	liberr "github.com/nabbar/golib/errors"

	libarr "github.com/nabbar/gamelib/arrange"
	libcch "github.com/nabbar/gamelib/cache"
	libpkt "github.com/nabbar/gamelib/packet"
	libsqn "github.com/nabbar/gamelib/sequence"
)

// DefaultPace is the minimum interval between two client command sends.
const DefaultPace = 30 * time.Millisecond

// Client is the client side reliability role.
type Client interface {
	// Send stamps the payload into the next Command, remembers it in
	// the send cache and applies the send pacing sleep. The pacing
	// sleep lasts at most the configured pace, net of the time already
	// elapsed since the previous Send.
	Send(cmd []byte) *libpkt.Command

	// Recv validates one received state. It returns the state payload
	// and the cached commands the server reported missing, for the
	// caller to retransmit. Bad protocol fields reject with
	// ErrorBadProtocol or ErrorBadVersion; an out-of-order state id
	// rejects with sequence.ErrorNotOrdered.
	Recv(st *libpkt.State) ([]byte, []*libpkt.Command, liberr.Error)

	// Key returns the session key of this endpoint.
	Key() libpkt.Key
}

// Server is the per-peer server side reliability role.
type Server interface {
	// Recv validates one received command, feeds it to the arranger
	// and returns the payloads of the contiguous released batch, in
	// order. An empty batch is normal while a gap is open.
	Recv(cmd *libpkt.Command) ([][]byte, liberr.Error)

	// Send stamps the snapshot payload into the next State, carrying
	// the current missing report of this peer.
	Send(state []byte) *libpkt.State

	// Key returns the session key of this endpoint.
	Key() libpkt.Key
}

// NewClient returns a Client role using the given endpoint session key.
// A pace of 0 falls back to DefaultPace.
func NewClient(key libpkt.Key, pace time.Duration) Client {
	if pace <= 0 {
		pace = DefaultPace
	}

	return &cli{
		key: key,
		exp: key,
		gen: libsqn.NewGenerator(1),
		flt: libsqn.NewFilter(),
		cch: libcch.New(libcch.DefaultMax),
		tmr: newSleepTimer(pace),
	}
}

// NewServer returns a Server role for one peer, stamping the given
// endpoint session key on every outbound state.
func NewServer(key libpkt.Key) Server {
	return &srv{
		key: key,
		gen: libsqn.NewGenerator(1),
		arr: libarr.New(),
	}
}
