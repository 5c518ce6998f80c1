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

package consensus

import (
	"encoding/json"
	"net"
	"time"

	"go.uber.org/zap"

	"github.com/ground-x/replica-ledger/ledger"
	"github.com/ground-x/replica-ledger/metrics"
	"github.com/ground-x/replica-ledger/params"
	"github.com/ground-x/replica-ledger/protocol"
)

// runPeerClient owns a single persistent outbound connection to one peer,
// for the lifetime of that peer's participation in the barrier.
// consecFailures survives across reconnects and is reset to zero by every
// successful round; two consecutive failures with no successful round in
// between retire the peer.
func (e *Engine) runPeerClient(idx int, addr string) {
	plog := logger.With("peer", addr)

	firstConnection := true
	consecFailures := 0

	for firstConnection || consecFailures < params.MaxConsecutiveFailures {
		conn, err := net.Dial("tcp", addr)
		if err != nil {
			if !firstConnection {
				consecFailures++
			} else {
				time.Sleep(params.ReconnectBackoff)
			}
			continue
		}

		if firstConnection {
			e.armBarrier()
			firstConnection = false
			metrics.PeersConnected.Inc()
			plog.Infow("connected to peer")
		}

		e.serveConnection(idx, conn, plog, &consecFailures)
		conn.Close()
	}

	plog.Warnw("peer permanently removed from consensus barrier")
	e.retirePeer()
}

// armBarrier increments the startup barrier exactly once, the instant a
// peer client's connection succeeds for the first time.
func (e *Engine) armBarrier() {
	e.barrierMu.Lock()
	e.responses++
	e.barrierCond.Broadcast()
	e.barrierMu.Unlock()
}

// retirePeer permanently shrinks the barrier threshold after two
// consecutive failures on an established connection.
func (e *Engine) retirePeer() {
	e.barrierMu.Lock()
	e.nodeCount--
	e.barrierCond.Broadcast()
	e.barrierMu.Unlock()
	metrics.PeersConnected.Dec()
}

// serveConnection runs the client's round loop over one established
// connection until a single send/receive failure, at which point it
// increments *consecFailures and returns so the caller can reconnect.
// Every successful round resets *consecFailures to zero.
func (e *Engine) serveConnection(idx int, conn net.Conn, plog *zap.SugaredLogger, consecFailures *int) {
	for {
		e.roundMu.Lock()
		for e.clientFlag[idx] {
			e.roundCond.Wait()
		}
		e.roundMu.Unlock()

		e.consMu.Lock()
		idxToQuery := e.currentIdx
		e.consMu.Unlock()

		if err := e.exchangeRound(idx, conn, idxToQuery); err != nil {
			plog.Errorw("values round failed", "err", err)
			*consecFailures++
			return
		}
		*consecFailures = 0
	}
}

// exchangeRound sends one {"type":"values","payload":idx} request,
// receives the framed reply, and merges the resulting blocks into
// consensusSet.
func (e *Engine) exchangeRound(idx int, conn net.Conn, height int64) error {
	req, err := protocol.ValuesRequest(height)
	if err != nil {
		return err
	}

	conn.SetDeadline(time.Now().Add(params.PeerReadTimeout))
	if err := e.framer.SendPrefixed(conn, req); err != nil {
		return err
	}
	raw, err := e.framer.RecvPrefixed(conn)
	if err != nil {
		return err
	}

	var blocks []ledger.Block
	if err := json.Unmarshal(raw, &blocks); err != nil {
		return err
	}

	e.consMu.Lock()
	for _, b := range blocks {
		e.consensusSet[b.CurrentHash] = b
	}
	e.consMu.Unlock()

	e.roundMu.Lock()
	e.clientFlag[idx] = true
	e.roundMu.Unlock()

	e.barrierMu.Lock()
	e.responses++
	e.barrierCond.Broadcast()
	e.barrierMu.Unlock()
	return nil
}
