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

package packet

import "time"

const (
	// ProtocolID is the first byte of every datagram of this protocol.
	ProtocolID uint8 = 8

	// Version is the protocol version. Peers only talk to equal versions.
	Version uint8 = 1

	// MaxDatagram is the maximum size in bytes of one encoded packet.
	MaxDatagram = 64000
)

// Key is the opaque session tag stamped on every outbound packet.
// It is a wall clock sample taken once per endpoint and is only ever
// compared for equality: a peer observing a different key knows the
// remote endpoint restarted and resets its per-peer state.
type Key struct {
	Sec  uint64
	Nsec uint64
}

// NewKey samples the wall clock to build the session key of a new endpoint.
func NewKey() Key {
	n := time.Now()

	return Key{
		Sec:  uint64(n.Unix()),
		Nsec: uint64(n.Nanosecond()),
	}
}

// IsZero reports whether the key has never been set.
func (k Key) IsZero() bool {
	return k.Sec == 0 && k.Nsec == 0
}

// Header is the fixed prologue shared by both packet shapes.
// Constructors leave it zero: the reliability engine stamps the
// protocol fields, the id and the session key on its send path.
type Header struct {
	Proto   uint8
	Version uint8
	ID      uint32
	Key     Key
}

// Command carries one client input payload.
type Command struct {
	Header
	Data []byte
}

// State carries one server snapshot with the piggybacked missing report.
type State struct {
	Header
	Report MissingReport
	Data   []byte
}

// MissingReport is the NACK piggybacked on every state packet. Bit j of
// Bitmap (0 <= j < 32) is set when the positive id LastReceived-1-j has
// not been seen by the server. The zero value means nothing to report.
type MissingReport struct {
	LastReceived uint32
	Bitmap       uint32
}

// NewCommand wraps a payload into a Command with a zero header.
func NewCommand(data []byte) *Command {
	return &Command{
		Data: data,
	}
}

// NewState wraps a payload into a State with a zero header and report.
func NewState(data []byte) *State {
	return &State{
		Data: data,
	}
}

// IsZero reports whether the report carries no information.
func (m MissingReport) IsZero() bool {
	return m.LastReceived == 0 && m.Bitmap == 0
}

// IDs expands the report into the concrete command ids flagged as missing,
// most recent first. Only positive ids are produced.
func (m MissingReport) IDs() []uint32 {
	var res []uint32

	for j := uint32(0); j < 32; j++ {
		if m.LastReceived < j+2 {
			break
		}

		if m.Bitmap&(1<<j) != 0 {
			res = append(res, m.LastReceived-1-j)
		}
	}

	return res
}
