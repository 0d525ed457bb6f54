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

package server_test

import (
	"context"
	"net"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	libdur "github.com/nabbar/golib/duration"

	gamclt "github.com/nabbar/gamelib/game/client"
	gamsrv "github.com/nabbar/gamelib/game/server"
	libpkt "github.com/nabbar/gamelib/packet"
	sckclt "github.com/nabbar/gamelib/socket/client"
)

func newGameClient(server string) gamclt.Client {
	c, err := gamclt.New(gamclt.Config{
		LocalPort: 0,
		Server:    server,
		Pace:      libdur.ParseDuration(time.Millisecond),
	}, nil)
	Expect(err).ToNot(HaveOccurred())

	return c
}

var _ = Describe("Game Server Integration", func() {
	var (
		g      *testGame
		srv    gamsrv.Server
		cancel context.CancelFunc
		done   chan struct{}
		cl     gamclt.Client
	)

	BeforeEach(func() {
		g = newTestGame()
		srv, cancel, done = startServer(g)
		cl = newGameClient(srv.Local().String())
	})

	AfterEach(func() {
		if cl != nil {
			Expect(cl.Close()).To(Succeed())
		}

		stopServer(cancel, done)
	})

	Describe("Command delivery", func() {
		It("should hand the commands to the application in send order", func() {
			for _, p := range [][]byte{{'a'}, {'b'}, {'c'}} {
				_, err := cl.Send(p)
				Expect(err).ToNot(HaveOccurred())
			}

			Eventually(g.commands, waitFor, pollEach).Should(Equal([][]byte{{'a'}, {'b'}, {'c'}}))
		})

		It("should stop the loop when the command hook returns false", func() {
			g.cnt.Store(false)

			_, err := cl.Send([]byte{'x'})
			Expect(err).ToNot(HaveOccurred())

			Eventually(done, waitFor, pollEach).Should(BeClosed())
			Eventually(srv.IsRunning, waitFor, pollEach).Should(BeFalse())
		})
	})

	Describe("Broadcast", func() {
		It("should deliver the snapshot to a registered client", func() {
			_, err := cl.Send([]byte("hello"))
			Expect(err).ToNot(HaveOccurred())

			g.setDraw([]byte("pong"))

			Eventually(func() []byte {
				p, e := cl.Recv()

				if e != nil {
					return nil
				}

				return p
			}, waitFor, pollEach).Should(Equal([]byte("pong")))
		})
	})

	Describe("Admission", func() {
		It("should ignore a rejected client entirely", func() {
			g.alw.Store(false)

			for i := 0; i < 5; i++ {
				_, err := cl.Send([]byte{'z'})
				Expect(err).ToNot(HaveOccurred())
			}

			Consistently(g.commands, 100*time.Millisecond, pollEach).Should(BeEmpty())
		})

		It("should remove a known client once rejected", func() {
			_, err := cl.Send([]byte{'1'})
			Expect(err).ToNot(HaveOccurred())

			Eventually(g.commands, waitFor, pollEach).Should(HaveLen(1))

			g.alw.Store(false)

			_, err = cl.Send([]byte{'2'})
			Expect(err).ToNot(HaveOccurred())

			Consistently(g.commands, 100*time.Millisecond, pollEach).Should(HaveLen(1))
		})
	})
})

var _ = Describe("Game Server Lifecycle Hooks", func() {
	It("should broadcast to a client registered by the add hook", func() {
		g := &lifecycleGame{testGame: newTestGame()}
		srv, cancel, done := startServer(g)

		defer stopServer(cancel, done)

		// a bare endpoint that never sends: only the add hook can
		// register it
		sck, err := sckclt.New(0, srv.Local().String())
		Expect(err).ToNot(HaveOccurred())

		defer func() {
			Expect(sck.Close()).To(Succeed())
		}()

		a, e := net.ResolveUDPAddr("udp", sck.Local().String())
		Expect(e).ToNot(HaveOccurred())

		g.add.Store(a)
		g.setDraw([]byte("state"))

		Eventually(func() bool {
			p, e := sck.Recv()

			return e == nil && len(p) > 0 && p[0] == libpkt.ProtocolID
		}, waitFor, pollEach).Should(BeTrue())

		// once removed, the endpoint stops receiving states; leave a
		// few ticks for the hook to be polled, then drain what was
		// already in flight
		g.rem.Store(a)
		time.Sleep(10 * testTick)

		for {
			if _, e := sck.Recv(); e != nil {
				break
			}
		}

		Consistently(func() bool {
			_, e := sck.Recv()

			return e != nil
		}, 100*time.Millisecond, pollEach).Should(BeTrue())
	})
})
