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

package cache

import libpkt "github.com/nabbar/gamelib/packet"

type crn struct {
	m int
	q []uint32
	i map[uint32]*libpkt.Command
}

func (o *crn) Add(cmd *libpkt.Command) {
	if cmd == nil {
		return
	}

	if _, ok := o.i[cmd.ID]; !ok {
		o.q = append(o.q, cmd.ID)
	}

	o.i[cmd.ID] = cmd

	if len(o.q) > o.m {
		o.compact()
	}
}

// compact keeps the newest half of the capacity, in insertion order.
func (o *crn) compact() {
	k := o.m / 2
	d := o.q[:len(o.q)-k]

	for _, id := range d {
		delete(o.i, id)
	}

	q := make([]uint32, k)
	copy(q, o.q[len(o.q)-k:])
	o.q = q
}

func (o *crn) Get(id uint32) *libpkt.Command {
	return o.i[id]
}

func (o *crn) GetAll(ids []uint32) []*libpkt.Command {
	var res []*libpkt.Command

	for _, id := range ids {
		if c, ok := o.i[id]; ok {
			res = append(res, c)
		}
	}

	return res
}

func (o *crn) Len() int {
	return len(o.q)
}

func (o *crn) Flush() {
	o.q = nil
	o.i = make(map[uint32]*libpkt.Command, o.m)
}
