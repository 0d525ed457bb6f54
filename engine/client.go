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

	libcch "github.com/nabbar/gamelib/cache"
	libpkt "github.com/nabbar/gamelib/packet"
	libsqn "github.com/nabbar/gamelib/sequence"
)

type cli struct {
	key libpkt.Key
	exp libpkt.Key
	gen libsqn.Generator
	flt libsqn.Filter
	cch libcch.Cache
	tmr *sleepTimer
}

func (o *cli) Send(cmd []byte) *libpkt.Command {
	c := libpkt.NewCommand(cmd)

	c.Proto = libpkt.ProtocolID
	c.Header.Version = libpkt.Version
	c.ID = o.gen.Next()
	c.Header.Key = o.key

	o.cch.Add(c)
	o.tmr.Sleep()

	return c
}

func (o *cli) Recv(st *libpkt.State) ([]byte, []*libpkt.Command, liberr.Error) {
	if st == nil {
		return nil, nil, ErrorParamEmpty.Error(nil)
	}

	if st.Proto != libpkt.ProtocolID {
		return nil, nil, ErrorBadProtocol.Error(nil)
	} else if st.Header.Version != libpkt.Version {
		return nil, nil, ErrorBadVersion.Error(nil)
	}

	if st.Header.Key != o.exp {
		o.exp = st.Header.Key
		o.flt.Reset()
	}

	if err := o.flt.Accept(st.ID); err != nil {
		return nil, nil, err
	}

	return st.Data, o.cch.GetAll(st.Report.IDs()), nil
}

func (o *cli) Key() libpkt.Key {
	return o.key
}
