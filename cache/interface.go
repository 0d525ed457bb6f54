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

// Package cache stores the commands a client has already sent, keyed by
// their sequence id, so that they can be served again when the server
// reports them missing.
//
// The store is insertion ordered and ring bounded: when it grows past its
// capacity, the oldest half is discarded in one compaction. Commands are
// immutable once cached. The cache is client-local; a server never caches
// its snapshots (state is idempotent by snapshot and not retransmitted).
package cache

import libpkt "github.com/nabbar/gamelib/packet"

// DefaultMax is the capacity used by New when no other bound is wanted.
const DefaultMax = 200

// Cache is the client-side send cache of recently emitted commands.
type Cache interface {
	// Add appends the command to the cache, then compacts it when it
	// exceeds its capacity.
	Add(cmd *libpkt.Command)

	// Get returns the cached command with the given id, or nil.
	Get(id uint32) *libpkt.Command

	// GetAll returns the cached commands for the given ids, preserving
	// the request order and silently dropping the ids not found.
	GetAll(ids []uint32) []*libpkt.Command

	// Len returns the number of cached commands.
	Len() int

	// Flush discards all cached commands.
	Flush()
}

// New returns an empty Cache bounded to max commands.
// A max lower than 2 falls back to DefaultMax.
func New(max int) Cache {
	if max < 2 {
		max = DefaultMax
	}

	return &crn{
		m: max,
		i: make(map[uint32]*libpkt.Command, max),
	}
}
