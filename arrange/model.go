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

package arrange

import (
	"sort"

	"github.com/bits-and-blooms/bitset"
	liberr "github.com/nabbar/golib/errors"

	libpkt "github.com/nabbar/gamelib/packet"
	libsqn "github.com/nabbar/gamelib/sequence"
)

type arn struct {
	lastReleased uint32
	lastReceived uint32
	pending      map[uint32]*libpkt.Command
	recentQ      []uint32
	recentS      map[uint32]struct{}
}

func (o *arn) Add(cmd *libpkt.Command) liberr.Error {
	if cmd == nil {
		return ErrorParamEmpty.Error(nil)
	}

	id := cmd.ID

	// a jump beyond the window means the stream desynchronised
	if id > o.lastReceived+libsqn.MaxBreak {
		o.pending = make(map[uint32]*libpkt.Command, MaxSaved)
		o.recentQ = nil
		o.recentS = make(map[uint32]struct{}, MaxReceived)
		o.lastReleased = id - 1
	}

	o.dropOverflow()

	if _, dup := o.recentS[id]; dup {
		return ErrorNotOrdered.Error(nil)
	} else if id+libsqn.MaxBreak < o.lastReceived {
		return ErrorNotOrdered.Error(nil)
	}

	o.pending[id] = cmd
	o.recentQ = append(o.recentQ, id)
	o.recentS[id] = struct{}{}

	if id > o.lastReceived {
		o.lastReceived = id
	}

	return nil
}

// dropOverflow enforces the pending and recent window bounds by
// discarding the lower half of each when it overflows.
func (o *arn) dropOverflow() {
	if len(o.pending) > MaxSaved {
		ids := make([]uint32, 0, len(o.pending))

		for id := range o.pending {
			ids = append(ids, id)
		}

		sort.Slice(ids, func(i, j int) bool {
			return ids[i] < ids[j]
		})

		for _, id := range ids[:MaxSaved/2] {
			delete(o.pending, id)
		}

		o.lastReleased = ids[MaxSaved/2] - 1
	}

	if len(o.recentQ) > MaxReceived {
		d := o.recentQ[:MaxReceived/2]

		for _, id := range d {
			delete(o.recentS, id)
		}

		q := make([]uint32, len(o.recentQ)-MaxReceived/2)
		copy(q, o.recentQ[MaxReceived/2:])
		o.recentQ = q
	}
}

func (o *arn) Arrange() []*libpkt.Command {
	var res []*libpkt.Command

	i := o.lastReleased + 1

	for {
		c, ok := o.pending[i]

		if !ok {
			break
		}

		delete(o.pending, i)
		res = append(res, c)
		o.lastReleased = i
		i++
	}

	return res
}

func (o *arn) Missing() libpkt.MissingReport {
	if o.lastReceived == 0 {
		return libpkt.MissingReport{}
	}

	b := bitset.New(uint(libsqn.MaxBreak))

	for j := uint32(0); j < libsqn.MaxBreak; j++ {
		if o.lastReceived < j+2 {
			break
		}

		id := o.lastReceived - 1 - j

		if id <= o.lastReleased {
			break
		}

		if _, ok := o.pending[id]; !ok {
			b.Set(uint(j))
		}
	}

	var w uint32

	if s := b.Bytes(); len(s) > 0 {
		w = uint32(s[0])
	}

	return libpkt.MissingReport{
		LastReceived: o.lastReceived,
		Bitmap:       w,
	}
}

func (o *arn) Last() uint32 {
	return o.lastReceived
}

func (o *arn) Reset() {
	o.lastReleased = 0
	o.lastReceived = 0
	o.pending = make(map[uint32]*libpkt.Command, MaxSaved)
	o.recentQ = nil
	o.recentS = make(map[uint32]struct{}, MaxReceived)
}
