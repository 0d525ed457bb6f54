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

import (
	"encoding/binary"

	liberr "github.com/nabbar/golib/errors"
)

// The decoder fills the header as found on the wire: a bad protocol id or
// version is not a decode failure, the engine rejects those packets.

func decodeHeader(p []byte) (Header, int, liberr.Error) {
	if len(p) < sizeHeader {
		return Header{}, 0, ErrorPacketTruncated.Error(nil)
	}

	h := Header{
		Proto:   p[0],
		Version: p[1],
		ID:      binary.LittleEndian.Uint32(p[2:]),
		Key: Key{
			Sec:  binary.LittleEndian.Uint64(p[6:]),
			Nsec: binary.LittleEndian.Uint64(p[14:]),
		},
	}

	return h, sizeHeader, nil
}

func decodePayload(p []byte, n int) ([]byte, liberr.Error) {
	if len(p) < n+sizeLen {
		return nil, ErrorPacketTruncated.Error(nil)
	}

	l := binary.LittleEndian.Uint64(p[n:])
	n += sizeLen

	if l > MaxDatagram {
		return nil, ErrorPacketTooLarge.Error(nil)
	} else if uint64(len(p)-n) < l {
		return nil, ErrorPacketTruncated.Error(nil)
	}

	d := make([]byte, int(l))
	copy(d, p[n:])

	return d, nil
}

// DecodeCommand parses one datagram as a Command.
func DecodeCommand(p []byte) (*Command, liberr.Error) {
	h, n, err := decodeHeader(p)

	if err != nil {
		return nil, err
	}

	d, err := decodePayload(p, n)

	if err != nil {
		return nil, err
	}

	return &Command{
		Header: h,
		Data:   d,
	}, nil
}

// DecodeState parses one datagram as a State.
func DecodeState(p []byte) (*State, liberr.Error) {
	h, n, err := decodeHeader(p)

	if err != nil {
		return nil, err
	}

	if len(p) < n+sizeReport {
		return nil, ErrorPacketTruncated.Error(nil)
	}

	r := MissingReport{
		LastReceived: binary.LittleEndian.Uint32(p[n:]),
		Bitmap:       binary.LittleEndian.Uint32(p[n+4:]),
	}

	d, err := decodePayload(p, n+sizeReport)

	if err != nil {
		return nil, err
	}

	return &State{
		Header: h,
		Report: r,
		Data:   d,
	}, nil
}
