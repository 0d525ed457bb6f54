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

package arrange_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	libarr "github.com/nabbar/gamelib/arrange"
	libpkt "github.com/nabbar/gamelib/packet"
	libsqn "github.com/nabbar/gamelib/sequence"
)

func command(id uint32) *libpkt.Command {
	c := libpkt.NewCommand([]byte{byte(id)})
	c.ID = id

	return c
}

func ids(cmds []*libpkt.Command) []uint32 {
	var res []uint32

	for _, c := range cmds {
		res = append(res, c.ID)
	}

	return res
}

var _ = Describe("Arranger", func() {
	var a libarr.Arranger

	BeforeEach(func() {
		a = libarr.New()
	})

	Describe("In order stream", func() {
		It("should release each command as it arrives", func() {
			for i := uint32(1); i <= 3; i++ {
				Expect(a.Add(command(i))).To(Succeed())
				Expect(ids(a.Arrange())).To(Equal([]uint32{i}))
			}
		})

		It("should report nothing while the stream is contiguous", func() {
			Expect(a.Add(command(1))).To(Succeed())
			a.Arrange()

			Expect(a.Missing().Bitmap).To(Equal(uint32(0)))
			Expect(a.Missing().LastReceived).To(Equal(uint32(1)))
		})
	})

	Describe("Reordered stream", func() {
		It("should hold a batch until the gap closes", func() {
			Expect(a.Add(command(2))).To(Succeed())
			Expect(a.Add(command(3))).To(Succeed())
			Expect(a.Arrange()).To(BeEmpty())

			Expect(a.Add(command(1))).To(Succeed())
			Expect(ids(a.Arrange())).To(Equal([]uint32{1, 2, 3}))
		})

		It("should release the remainder once the lost command is resent", func() {
			Expect(a.Add(command(1))).To(Succeed())
			Expect(ids(a.Arrange())).To(Equal([]uint32{1}))

			Expect(a.Add(command(3))).To(Succeed())
			Expect(a.Arrange()).To(BeEmpty())

			m := a.Missing()
			Expect(m.LastReceived).To(Equal(uint32(3)))
			Expect(m.Bitmap).To(Equal(uint32(0b01)))

			Expect(a.Add(command(2))).To(Succeed())
			Expect(ids(a.Arrange())).To(Equal([]uint32{2, 3}))
		})

		It("should never release a duplicate", func() {
			Expect(a.Add(command(1))).To(Succeed())
			Expect(ids(a.Arrange())).To(Equal([]uint32{1}))

			err := a.Add(command(1))
			Expect(err).To(HaveOccurred())
			Expect(err.HasCode(libarr.ErrorNotOrdered)).To(BeTrue())
			Expect(a.Arrange()).To(BeEmpty())
		})
	})

	Describe("Missing report", func() {
		It("should flag only the ids still absent", func() {
			Expect(a.Add(command(1))).To(Succeed())
			Expect(a.Add(command(4))).To(Succeed())
			Expect(a.Add(command(6))).To(Succeed())
			a.Arrange()

			m := a.Missing()
			Expect(m.LastReceived).To(Equal(uint32(6)))
			// ids 5, 3 and 2 are absent, 4 is pending
			Expect(m.Bitmap).To(Equal(uint32(0b1101)))
		})

		It("should be empty on a fresh arranger", func() {
			Expect(a.Missing().IsZero()).To(BeTrue())
		})
	})

	Describe("Window boundaries", func() {
		It("should reject an id too far in the past", func() {
			Expect(a.Add(command(libsqn.MaxBreak + 2))).To(Succeed())

			err := a.Add(command(1))
			Expect(err).To(HaveOccurred())
			Expect(err.HasCode(libarr.ErrorNotOrdered)).To(BeTrue())
		})

		It("should resynchronise on a jump beyond the window", func() {
			Expect(a.Add(command(1))).To(Succeed())
			Expect(ids(a.Arrange())).To(Equal([]uint32{1}))

			jump := uint32(1 + libsqn.MaxBreak + 1)
			Expect(a.Add(command(jump))).To(Succeed())
			Expect(ids(a.Arrange())).To(Equal([]uint32{jump}))
		})

		It("should drop the oldest half of an overflowing window", func() {
			// id 1 never arrives, so the pending window only grows
			for id := uint32(2); id <= 131; id++ {
				Expect(a.Add(command(id))).To(Succeed())
			}

			// the overflow drop moved the release point past the gap
			res := ids(a.Arrange())
			Expect(res).To(HaveLen(66))
			Expect(res[0]).To(Equal(uint32(66)))
			Expect(res[len(res)-1]).To(Equal(uint32(131)))
		})
	})

	Describe("Session reset", func() {
		It("should start a fresh window", func() {
			Expect(a.Add(command(5))).To(Succeed())

			a.Reset()

			Expect(a.Last()).To(Equal(uint32(0)))
			Expect(a.Missing().IsZero()).To(BeTrue())
			Expect(a.Add(command(1))).To(Succeed())
			Expect(ids(a.Arrange())).To(Equal([]uint32{1}))
		})
	})
})
