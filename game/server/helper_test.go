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
	"sync"
	"sync/atomic"
	"time"

	. "github.com/onsi/gomega"

	libdur "github.com/nabbar/golib/duration"

	libgam "github.com/nabbar/gamelib/game"
	gamsrv "github.com/nabbar/gamelib/game/server"
)

const (
	testTick = 5 * time.Millisecond
	waitFor  = 2 * time.Second
	pollEach = time.Millisecond
)

// testGame records every hook call and lets each test drive the hook
// results from the test goroutine.
type testGame struct {
	mu   sync.Mutex
	cmd  [][]byte
	evt  []libgam.Event
	alw  atomic.Bool
	cnt  atomic.Bool
	drw  atomic.Value
}

func newTestGame() *testGame {
	g := &testGame{}
	g.alw.Store(true)
	g.cnt.Store(true)

	return g
}

func (g *testGame) OnCommands(_ time.Duration, commands [][]byte, _ net.Addr) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	for _, c := range commands {
		d := make([]byte, len(c))
		copy(d, c)
		g.cmd = append(g.cmd, d)
	}

	return g.cnt.Load()
}

func (g *testGame) Draw(_ time.Duration) []byte {
	if v := g.drw.Load(); v != nil {
		return v.([]byte)
	}

	return nil
}

func (g *testGame) Allow(_ net.Addr) bool {
	return g.alw.Load()
}

func (g *testGame) OnEvent(evt libgam.Event) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.evt = append(g.evt, evt)

	return true
}

func (g *testGame) commands() [][]byte {
	g.mu.Lock()
	defer g.mu.Unlock()

	res := make([][]byte, len(g.cmd))
	copy(res, g.cmd)

	return res
}

func (g *testGame) setDraw(p []byte) {
	g.drw.Store(p)
}

// lifecycleGame wraps a testGame with the optional add and remove hooks.
// Each stored address is handed to the loop exactly once.
type lifecycleGame struct {
	*testGame
	add atomic.Pointer[net.UDPAddr]
	rem atomic.Pointer[net.UDPAddr]
}

func (g *lifecycleGame) AddClient() net.Addr {
	if a := g.add.Swap(nil); a != nil {
		return a
	}

	return nil
}

func (g *lifecycleGame) RemoveClient() net.Addr {
	if a := g.rem.Swap(nil); a != nil {
		return a
	}

	return nil
}

// startServer runs the loop in its own goroutine and waits for it to be
// driving. It returns the stop function and the done channel of Run.
func startServer(g libgam.Game) (gamsrv.Server, context.CancelFunc, chan struct{}) {
	srv, err := gamsrv.New(g, gamsrv.Config{
		Address: "127.0.0.1:0",
		Tick:    libdur.ParseDuration(testTick),
	}, nil)
	Expect(err).ToNot(HaveOccurred())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	go func() {
		defer close(done)
		_ = srv.Run(ctx)
	}()

	Eventually(srv.IsRunning, waitFor, pollEach).Should(BeTrue())

	return srv, cancel, done
}

func stopServer(cancel context.CancelFunc, done chan struct{}) {
	cancel()
	Eventually(done, waitFor, pollEach).Should(BeClosed())
}
