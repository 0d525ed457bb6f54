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

const (
	sizeHeader = 1 + 1 + 4 + 8 + 8
	sizeLen    = 8
	sizeReport = 4 + 4
)

func (h Header) encode(p []byte) int {
	p[0] = h.Proto
	p[1] = h.Version
	binary.LittleEndian.PutUint32(p[2:], h.ID)
	binary.LittleEndian.PutUint64(p[6:], h.Key.Sec)
	binary.LittleEndian.PutUint64(p[14:], h.Key.Nsec)

	return sizeHeader
}

// Encode serializes the command into one datagram buffer.
func (o *Command) Encode() ([]byte, liberr.Error) {
	if o == nil {
		return nil, ErrorParamEmpty.Error(nil)
	}

	sz := sizeHeader + sizeLen + len(o.Data)

	if sz > MaxDatagram {
		return nil, ErrorPacketTooLarge.Error(nil)
	}

	buf := make([]byte, sz)
	n := o.Header.encode(buf)

	binary.LittleEndian.PutUint64(buf[n:], uint64(len(o.Data)))
	copy(buf[n+sizeLen:], o.Data)

	return buf, nil
}

// Encode serializes the state into one datagram buffer.
func (o *State) Encode() ([]byte, liberr.Error) {
	if o == nil {
		return nil, ErrorParamEmpty.Error(nil)
	}

	sz := sizeHeader + sizeReport + sizeLen + len(o.Data)

	if sz > MaxDatagram {
		return nil, ErrorPacketTooLarge.Error(nil)
	}

	buf := make([]byte, sz)
	n := o.Header.encode(buf)

	binary.LittleEndian.PutUint32(buf[n:], o.Report.LastReceived)
	binary.LittleEndian.PutUint32(buf[n+4:], o.Report.Bitmap)
	n += sizeReport

	binary.LittleEndian.PutUint64(buf[n:], uint64(len(o.Data)))
	copy(buf[n+sizeLen:], o.Data)

	return buf, nil
}
