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

// Package consensus implements a round-based agreement algorithm: for
// each chain height, query all peers for f+1 rounds, union their
// proposed blocks, and deterministically commit the winner.
package consensus

import (
	"sync"
	"time"

	"github.com/ground-x/replica-ledger/ledger"
	rlog "github.com/ground-x/replica-ledger/log"
	"github.com/ground-x/replica-ledger/metrics"
	"github.com/ground-x/replica-ledger/transport"
)

var logger = rlog.NewModuleLogger(rlog.Consensus)

// Engine drives the consensus algorithm for one node. Lock order is
// always consensus lock before ledger lock, never the reverse.
type Engine struct {
	ledger *ledger.Ledger
	framer transport.Framer
	peers  []string

	// barrier guards responses/nodeCount, the round-completion
	// barrier every peer client and the engine wait on.
	barrierMu   sync.Mutex
	barrierCond *sync.Cond
	responses   int
	nodeCount   int
	f           int

	// round guards clientFlag, broadcast by the engine to release all
	// peer clients simultaneously at the start of a round.
	roundMu    sync.Mutex
	roundCond  *sync.Cond
	clientFlag []bool

	// cons guards consensusSet, currentIdx, and consensusTodo. Signalled
	// when a transaction is admitted or a block request introduces a
	// fresh proposal.
	consMu        sync.Mutex
	consCond      *sync.Cond
	consensusSet  map[string]ledger.Block
	currentIdx    int64
	consensusTodo int64
}

// New builds an Engine over ledger for the given static peer address
// list. f = node_count / 2 is computed once at construction.
func New(l *ledger.Ledger, peers []string, framer transport.Framer) *Engine {
	e := &Engine{
		ledger:       l,
		framer:       framer,
		peers:        peers,
		nodeCount:    len(peers),
		f:            len(peers) / 2,
		clientFlag:   make([]bool, len(peers)),
		consensusSet: make(map[string]ledger.Block),
	}
	for i := range e.clientFlag {
		e.clientFlag[i] = true
	}
	e.barrierCond = sync.NewCond(&e.barrierMu)
	e.roundCond = sync.NewCond(&e.roundMu)
	e.consCond = sync.NewCond(&e.consMu)
	return e
}

// Notify wakes the engine's round phase after a new transaction has been
// admitted to the pool.
func (e *Engine) Notify() {
	e.consMu.Lock()
	e.consCond.Broadcast()
	e.consMu.Unlock()
}

// Run starts one peer client per address, waits for the startup barrier,
// then loops the round phase forever. It never returns in normal
// operation.
func (e *Engine) Run() {
	for i, addr := range e.peers {
		go e.runPeerClient(i, addr)
	}
	e.awaitBarrier()
	logger.Infow("all peers connected at least once")

	for {
		e.roundLoop()
	}
}

func (e *Engine) awaitBarrier() {
	e.barrierMu.Lock()
	defer e.barrierMu.Unlock()
	for e.responses < e.nodeCount {
		e.barrierCond.Wait()
	}
}

// roundLoop runs one height's worth of consensus: wait for work, propose
// a local block, run f+1 rounds, and commit the winner if any.
func (e *Engine) roundLoop() {
	e.consMu.Lock()
	for e.ledger.PoolSize() == 0 && e.consensusTodo <= e.ledger.Length() {
		e.consCond.Wait()
	}
	e.currentIdx = e.ledger.Length()

	if len(e.consensusSet) == 0 && e.ledger.PoolSize() != 0 {
		block := e.ledger.ProposeBlock()
		e.consensusSet[block.CurrentHash] = block
		logger.Infow("created a block proposal", "hash", block.CurrentHash, "index", block.Index)
	}
	if e.ledger.Length() > e.consensusTodo {
		e.consensusTodo = e.ledger.Length()
	}
	e.consMu.Unlock()

	start := time.Now()
	rounds := e.f + 1
	for r := 0; r < rounds; r++ {
		e.runRound()
	}
	metrics.ConsensusRoundDuration.Observe(time.Since(start).Seconds())

	e.consMu.Lock()
	winner, ok := selectWinner(e.consensusSet)
	e.consensusSet = make(map[string]ledger.Block)
	e.consMu.Unlock()

	if !ok {
		return
	}
	if err := e.ledger.AddBlock(winner); err != nil {
		logger.Errorw("failed to commit winning block", "hash", winner.CurrentHash, "err", err)
	}
}

// runRound resets the barrier, releases every peer client simultaneously,
// and waits for all of them to report back.
func (e *Engine) runRound() {
	e.barrierMu.Lock()
	e.responses = 0
	e.barrierMu.Unlock()

	e.roundMu.Lock()
	for i := range e.clientFlag {
		e.clientFlag[i] = false
	}
	e.roundCond.Broadcast()
	e.roundMu.Unlock()

	e.awaitBarrier()
}

// selectWinner picks the block with the lexicographically smallest
// current_hash among those with a non-empty transaction list. It
// returns ok=false if no eligible block exists.
func selectWinner(set map[string]ledger.Block) (ledger.Block, bool) {
	var (
		winner ledger.Block
		found  bool
	)
	for hash, block := range set {
		if len(block.Transactions) == 0 {
			continue
		}
		if !found || hash < winner.CurrentHash {
			winner = block
			found = true
		}
	}
	return winner, found
}

// HandleBlockRequest answers a peer's request for block(s) at idx,
// executed under the consensus lock.
func (e *Engine) HandleBlockRequest(idx int64) []ledger.Block {
	e.consMu.Lock()
	defer e.consMu.Unlock()

	if idx > e.consensusTodo {
		e.consensusTodo = idx
	}

	length := e.ledger.Length()
	switch {
	case idx < length:
		return []ledger.Block{e.ledger.GetBlock(idx)}

	case idx == length:
		if e.currentIdx < idx {
			block := e.ledger.ProposeBlock()
			e.consensusSet[block.CurrentHash] = block
			e.consCond.Broadcast()
			return []ledger.Block{block}
		}
		out := make([]ledger.Block, 0, len(e.consensusSet))
		for _, b := range e.consensusSet {
			out = append(out, b)
		}
		return out

	default:
		return []ledger.Block{}
	}
}
