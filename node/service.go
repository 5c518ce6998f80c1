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
//
// This file is derived from node/service.go.
// Modified for the replica-ledger development.

// Package node wires the Ledger, Consensus engine, and PeerServer into a
// single long-lived process.
package node

import (
	"github.com/ground-x/replica-ledger/consensus"
	"github.com/ground-x/replica-ledger/ledger"
	rlog "github.com/ground-x/replica-ledger/log"
	"github.com/ground-x/replica-ledger/metrics"
	"github.com/ground-x/replica-ledger/transport"
)

var logger = rlog.NewModuleLogger(rlog.Node)

// Node is a long-lived process composed of the four cooperating
// components: Ledger, Validator, PeerServer, and Consensus engine.
type Node struct {
	config    Config
	Ledger    *ledger.Ledger
	Consensus *consensus.Engine
	Server    *PeerServer
}

// New builds a Node from cfg: a fresh Ledger (seeded with genesis), a
// Consensus engine over cfg.Peers, and a PeerServer bound to
// cfg.Host:cfg.Port.
func New(cfg Config) (*Node, error) {
	l := ledger.New()
	framer := transport.LengthPrefixed{}
	engine := consensus.New(l, cfg.Peers, framer)

	server, err := NewPeerServer(cfg.Host, cfg.Port, l, engine, framer)
	if err != nil {
		return nil, err
	}

	return &Node{config: cfg, Ledger: l, Consensus: engine, Server: server}, nil
}

// Run starts the peer server in the background and then drives the
// consensus engine's main loop on the calling goroutine.
func (n *Node) Run() error {
	metrics.Serve(n.config.MetricsPort)

	go func() {
		logger.Infow("peer server listening", "addr", n.Server.Addr().String())
		if err := n.Server.Serve(); err != nil {
			logger.Errorw("peer server stopped", "err", err)
		}
	}()

	n.Consensus.Run()
	return nil
}
