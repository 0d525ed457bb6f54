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

package server

import "github.com/prometheus/client_golang/prometheus"

// metrics holds the loop counters. They are always collected; they are
// only exposed when a registerer is given in the config.
type metrics struct {
	rcv prometheus.Counter
	drp *prometheus.CounterVec
	rel prometheus.Counter
	brd prometheus.Counter
	prs prometheus.Gauge
}

func newMetrics(reg prometheus.Registerer) *metrics {
	m := &metrics{
		rcv: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "gamelib_server_datagrams_received_total",
			Help: "Datagrams read from the server endpoint.",
		}),
		drp: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gamelib_server_datagrams_dropped_total",
			Help: "Datagrams dropped before reaching the application.",
		}, []string{"reason"}),
		rel: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "gamelib_server_commands_released_total",
			Help: "Commands released in order to the application.",
		}),
		brd: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "gamelib_server_states_broadcast_total",
			Help: "State packets sent to registered peers.",
		}),
		prs: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "gamelib_server_peers",
			Help: "Currently registered peers.",
		}),
	}

	if reg != nil {
		reg.MustRegister(m.rcv, m.drp, m.rel, m.brd, m.prs)
	}

	return m
}

func (m *metrics) received() {
	m.rcv.Inc()
}

func (m *metrics) dropped(reason string) {
	m.drp.WithLabelValues(reason).Inc()
}

func (m *metrics) released(n int) {
	m.rel.Add(float64(n))
}

func (m *metrics) broadcast() {
	m.brd.Inc()
}

func (m *metrics) peers(n int) {
	m.prs.Set(float64(n))
}
