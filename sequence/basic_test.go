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

package sequence_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	libsqn "github.com/nabbar/gamelib/sequence"
)

var _ = Describe("Sequence", func() {
	Describe("Generator", func() {
		It("should emit consecutive ids from its start", func() {
			g := libsqn.NewGenerator(1)

			Expect(g.Next()).To(Equal(uint32(1)))
			Expect(g.Next()).To(Equal(uint32(2)))
			Expect(g.Next()).To(Equal(uint32(3)))
		})

		It("should wrap modulo 2^32", func() {
			g := libsqn.NewGenerator(^uint32(0))

			Expect(g.Next()).To(Equal(^uint32(0)))
			Expect(g.Next()).To(Equal(uint32(0)))
		})
	})

	Describe("Filter", func() {
		var f libsqn.Filter

		BeforeEach(func() {
			f = libsqn.NewFilter()
		})

		It("should accept a strictly increasing stream", func() {
			Expect(f.Accept(1)).To(Succeed())
			Expect(f.Accept(2)).To(Succeed())
			Expect(f.Accept(3)).To(Succeed())
			Expect(f.Last()).To(Equal(uint32(3)))
		})

		It("should reject an already seen id", func() {
			Expect(f.Accept(3)).To(Succeed())

			err := f.Accept(3)
			Expect(err).To(HaveOccurred())
			Expect(err.HasCode(libsqn.ErrorNotOrdered)).To(BeTrue())
			Expect(f.Last()).To(Equal(uint32(3)))
		})

		It("should reject a late id within the window", func() {
			Expect(f.Accept(10)).To(Succeed())
			Expect(f.Accept(8)).ToNot(Succeed())
		})

		It("should resynchronise beyond the break window", func() {
			Expect(f.Accept(100)).To(Succeed())
			Expect(f.Accept(2)).To(Succeed())
			Expect(f.Last()).To(Equal(uint32(2)))
		})

		It("should restart from zero after a reset", func() {
			Expect(f.Accept(50)).To(Succeed())

			f.Reset()

			Expect(f.Last()).To(Equal(uint32(0)))
			Expect(f.Accept(1)).To(Succeed())
		})
	})
})
