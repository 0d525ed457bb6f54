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

package engine

import (
	liberr "github.com/nabbar/golib/errors"

	libarr "github.com/nabbar/gamelib/arrange"
	libpkt "github.com/nabbar/gamelib/packet"
	libsqn "github.com/nabbar/gamelib/sequence"
)

type srv struct {
	key libpkt.Key
	exp libpkt.Key
	gen libsqn.Generator
	arr libarr.Arranger
}

func (o *srv) Recv(cmd *libpkt.Command) ([][]byte, liberr.Error) {
	if cmd == nil {
		return nil, ErrorParamEmpty.Error(nil)
	}

	if cmd.Proto != libpkt.ProtocolID {
		return nil, ErrorBadProtocol.Error(nil)
	} else if cmd.Header.Version != libpkt.Version {
		return nil, ErrorBadVersion.Error(nil)
	}

	if cmd.Header.Key != o.exp {
		o.exp = cmd.Header.Key
		o.arr.Reset()
	}

	if err := o.arr.Add(cmd); err != nil {
		return nil, err
	}

	var res [][]byte

	for _, c := range o.arr.Arrange() {
		res = append(res, c.Data)
	}

	return res, nil
}

func (o *srv) Send(state []byte) *libpkt.State {
	s := libpkt.NewState(state)

	s.Proto = libpkt.ProtocolID
	s.Header.Version = libpkt.Version
	s.ID = o.gen.Next()
	s.Header.Key = o.key
	s.Report = o.arr.Missing()

	return s
}

func (o *srv) Key() libpkt.Key {
	return o.key
}
