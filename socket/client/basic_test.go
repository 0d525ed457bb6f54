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

package client_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	libpkt "github.com/nabbar/gamelib/packet"
	libsck "github.com/nabbar/gamelib/socket"
	sckclt "github.com/nabbar/gamelib/socket/client"
	scksrv "github.com/nabbar/gamelib/socket/server"
)

var _ = Describe("Datagram Endpoint Client", func() {
	var (
		srv scksrv.Server
		clt sckclt.Client
	)

	BeforeEach(func() {
		var err error

		srv, err = scksrv.New("127.0.0.1:0")
		Expect(err).ToNot(HaveOccurred())

		clt, err = sckclt.New(0, srv.Local().String())
		Expect(err).ToNot(HaveOccurred())
	})

	AfterEach(func() {
		if clt != nil {
			Expect(clt.Close()).To(Succeed())
		}
		if srv != nil {
			Expect(srv.Close()).To(Succeed())
		}
	})

	Describe("Creation", func() {
		It("should reject an empty server address", func() {
			c, err := sckclt.New(0, "")
			Expect(err).To(HaveOccurred())
			Expect(c).To(BeNil())
		})

		It("should reject a malformed server address", func() {
			c, err := sckclt.New(0, "no-port-here")
			Expect(err).To(HaveOccurred())
			Expect(c).To(BeNil())
		})

		It("should bind a loopback local address", func() {
			Expect(clt.Local().String()).To(HavePrefix("127.0.0.1:"))
			Expect(clt.Remote().String()).To(Equal(srv.Local().String()))
		})
	})

	Describe("Exchange", func() {
		It("should surface would block on an empty queue", func() {
			_, err := clt.Recv()
			Expect(err).To(HaveOccurred())
			Expect(libsck.IsWouldBlock(err)).To(BeTrue())
		})

		It("should reject an oversize send", func() {
			_, err := clt.Send(make([]byte, libpkt.MaxDatagram+1))
			Expect(err).To(HaveOccurred())
			Expect(err.HasCode(libsck.ErrorTooLarge)).To(BeTrue())
		})

		It("should receive what the server sends back", func() {
			out := []byte{libpkt.ProtocolID, 'p', 'i', 'n', 'g'}

			n, err := clt.Send(out)
			Expect(err).ToNot(HaveOccurred())
			Expect(n).To(Equal(len(out)))

			Eventually(func() bool {
				p, a, e := srv.RecvFrom()

				if e != nil {
					return false
				}

				_, e = srv.SendTo(a, p)

				return e == nil
			}, time.Second, time.Millisecond).Should(BeTrue())

			Eventually(func() []byte {
				p, e := clt.Recv()

				if e != nil {
					return nil
				}

				return p
			}, time.Second, time.Millisecond).Should(Equal(out))
		})
	})
})
