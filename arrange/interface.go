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

// Package arrange is the server-side reliability core: it accepts the
// commands of one peer in any arrival order and releases them to the
// application as contiguous, strictly increasing, at-most-once batches.
//
// Arrival is tolerated within a bounded window. A command jumping more
// than sequence.MaxBreak ids ahead of the last received one means the
// peer stream desynchronised (restart or long loss burst): the arranger
// drops its buffers and restarts the release point just before the jump.
// Duplicates within the recent window and commands too far in the past
// are rejected as not ordered.
//
// The arranger also computes the missing report piggybacked on every
// state packet: the last received id plus a 32-bit bitmap of the
// preceding ids that have not been seen yet. The 32-wide bitmap is
// sufficient because the desynchronisation threshold is 32 as well.
package arrange

import (
	liberr "github.com/nabbar/golib/errors"

	libpkt "github.com/nabbar/gamelib/packet"
	libsqn "github.com/nabbar/gamelib/sequence"
)

const (
	// MaxSaved bounds the number of commands waiting for a gap to close.
	MaxSaved = int(4 * libsqn.MaxBreak)

	// MaxReceived bounds the deduplication window of recently seen ids.
	MaxReceived = MaxSaved
)

// Arranger reorders the command stream of a single peer.
// It is owned by one engine and is not safe for concurrent use.
type Arranger interface {
	// Add accepts one received command into the pending window.
	// Duplicate or too-old commands are rejected with ErrorNotOrdered.
	Add(cmd *libpkt.Command) liberr.Error

	// Arrange removes and returns the contiguous prefix of pending
	// commands following the last released id, in id order.
	Arrange() []*libpkt.Command

	// Missing returns the current missing report. A zero report means
	// nothing to request.
	Missing() libpkt.MissingReport

	// Last returns the highest id received so far.
	Last() uint32

	// Reset drops all state, returning the arranger to its initial
	// empty window. Used on session key mismatch.
	Reset()
}

// New returns an empty Arranger.
func New() Arranger {
	a := &arn{}
	a.Reset()

	return a
}
