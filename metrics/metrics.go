// Copyright 2026 The replica-ledger Authors
// This file is part of the replica-ledger library.
//
// The replica-ledger library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The replica-ledger library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the replica-ledger library. If not, see <http://www.gnu.org/licenses/>.

// Package metrics exposes the node's Prometheus gauges, counters, and
// histograms.
package metrics

import (
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ground-x/replica-ledger/log"
)

var logger = log.NewModuleLogger(log.Metrics)

var (
	ChainHeight = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "replica_chain_height",
		Help: "Number of committed blocks in the local chain.",
	})

	PoolSize = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "replica_pool_size",
		Help: "Number of transactions currently pending in the pool.",
	})

	BlocksCommitted = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "replica_blocks_committed_total",
		Help: "Total number of blocks committed by the consensus engine.",
	})

	PeersConnected = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "replica_peers_connected",
		Help: "Number of peer clients currently counted toward the consensus barrier.",
	})

	ConsensusRoundDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "replica_consensus_round_duration_seconds",
		Help:    "Wall-clock time spent running the f+1 rounds for one chain height, whether or not a block was committed.",
		Buckets: prometheus.DefBuckets,
	})

	TransactionsRejected = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "replica_transactions_rejected_total",
		Help: "Transactions rejected by validation, labeled by error kind.",
	}, []string{"reason"})
)

func init() {
	prometheus.MustRegister(
		ChainHeight,
		PoolSize,
		BlocksCommitted,
		PeersConnected,
		ConsensusRoundDuration,
		TransactionsRejected,
	)
}

// Serve starts the /metrics HTTP endpoint on the given port. A port of 0
// disables metrics entirely.
func Serve(port int) {
	if port == 0 {
		return
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	addr := fmt.Sprintf(":%d", port)
	go func() {
		if err := http.ListenAndServe(addr, mux); err != nil {
			logger.Errorw("metrics server exited", "addr", addr, "err", err)
		}
	}()
	logger.Infow("serving prometheus metrics", "addr", addr)
}
