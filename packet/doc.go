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

// Package packet defines the two datagram shapes exchanged between a game
// client and a game server, and their binary wire codec.
//
// Every datagram is exactly one encoded packet. Both shapes share a fixed
// prologue (Header): protocol id, protocol version, a peer-local monotonic
// id, and the sender's session key. A Command carries one client input
// payload; a State carries one server snapshot plus a MissingReport, the
// piggybacked NACK of recently missing command ids.
//
// The wire layout is fixed and little-endian:
//
//	protocol_id  u8
//	version      u8
//	id           u32
//	key.sec      u64
//	key.nsec     u64
//	command only: len u64, payload bytes
//	state only:   last_received u32, bitmap u32, len u64, payload bytes
//
// Encoded packets never exceed MaxDatagram bytes; the encoder rejects
// oversize payloads so that no datagram can require fragmentation.
//
// Example usage:
//
//	import libpkt "github.com/nabbar/gamelib/packet"
//
//	cmd := libpkt.NewCommand([]byte("move north"))
//	buf, err := cmd.Encode()
//	// send buf as one datagram...
//
//	cmd, err = libpkt.DecodeCommand(buf)
package packet
