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

// Package ledger holds the in-memory blockchain, transaction pool, and
// nonce map, plus the transaction validator that guards admission into
// the pool.
package ledger

import (
	"sync"

	lru "github.com/hashicorp/golang-lru"

	"github.com/ground-x/replica-ledger/common"
	rlog "github.com/ground-x/replica-ledger/log"
	"github.com/ground-x/replica-ledger/metrics"
	"github.com/ground-x/replica-ledger/params"
)

var logger = rlog.NewModuleLogger(rlog.Ledger)

// Ledger holds the committed chain, the pending pool, and the per-sender
// nonce map behind a single mutex. Every method acquires the mutex at
// entry and releases it before returning; it is never held across I/O.
type Ledger struct {
	mu    sync.Mutex
	chain []Block
	pool  []Transaction
	nonce map[string]int64

	// recentBlocks is an additive by-hash cache of committed blocks,
	// filled with genesis and on every AddBlock; nothing reads it, and
	// block lookup is always by index.
	recentBlocks *lru.Cache
}

// New returns a Ledger seeded with a genesis block whose previous_hash is
// all zeros and whose transaction list is empty.
func New() *Ledger {
	cache, err := lru.New(params.RecentBlockCacheSize)
	if err != nil {
		// Only returns an error for a non-positive size, which is a
		// compile-time constant here.
		panic(err)
	}
	l := &Ledger{
		nonce:        make(map[string]int64),
		recentBlocks: cache,
	}
	genesis := Block{
		Index:        0,
		Transactions: []Transaction{},
		PreviousHash: common.ZeroHash64,
	}
	genesis.CurrentHash = hashBlock(genesis)
	l.chain = append(l.chain, genesis)
	l.recentBlocks.Add(genesis.CurrentHash, genesis)
	metrics.ChainHeight.Set(1)
	return l
}

func hashBlock(b Block) string {
	payload, err := common.CanonicalJSON(b.hashPayload())
	if err != nil {
		// hashPayload is built entirely from JSON-marshalable types
		// (strings, ints, and maps of them); this cannot fail.
		panic(err)
	}
	return common.SHA256Hex(payload)
}

// ProposeBlock snapshots the current pool, chains it off the last
// committed block, and returns the resulting Block without mutating the
// chain or the pool. The hash is computed while still holding the lock
// so the snapshot and the hash always agree.
func (l *Ledger) ProposeBlock() Block {
	l.mu.Lock()
	defer l.mu.Unlock()

	txns := make([]Transaction, len(l.pool))
	copy(txns, l.pool)

	block := Block{
		Index:        int64(len(l.chain)),
		Transactions: txns,
		PreviousHash: l.chain[len(l.chain)-1].CurrentHash,
	}
	block.CurrentHash = hashBlock(block)
	return block
}

// AddBlock commits block: for each sender appearing in block's
// transactions it computes the max nonce used, drops from the pool every
// transaction whose (sender, nonce) is now subsumed, raises the nonce map
// element-wise to those maxes, and appends the block. Relative order of
// surviving pool entries is preserved.
//
// AddBlock rejects a block whose Index or PreviousHash does not match
// the next chain position, so a malformed or stale proposal can never
// silently corrupt the committed chain.
func (l *Ledger) AddBlock(block Block) error {
	maxNonce := make(map[string]int64, len(block.Transactions))
	for _, txn := range block.Transactions {
		if m, ok := maxNonce[txn.Sender]; !ok || txn.Nonce > m {
			maxNonce[txn.Sender] = txn.Nonce
		}
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	wantIndex := int64(len(l.chain))
	if block.Index != wantIndex {
		return errBlockIndexMismatch(block.Index, wantIndex)
	}
	if block.PreviousHash != l.chain[len(l.chain)-1].CurrentHash {
		return errPreviousHashMismatch(block.PreviousHash, l.chain[len(l.chain)-1].CurrentHash)
	}

	survivors := l.pool[:0:0]
	for _, txn := range l.pool {
		if m, ok := maxNonce[txn.Sender]; ok && txn.Nonce <= m {
			continue
		}
		survivors = append(survivors, txn)
	}
	l.pool = survivors

	for sender, n := range maxNonce {
		if cur, ok := l.nonce[sender]; !ok || n > cur {
			l.nonce[sender] = n
		}
	}

	l.chain = append(l.chain, block)
	l.recentBlocks.Add(block.CurrentHash, block)

	metrics.ChainHeight.Set(float64(len(l.chain)))
	metrics.PoolSize.Set(float64(len(l.pool)))
	metrics.BlocksCommitted.Inc()
	logger.Infow("appended to the blockchain", "hash", block.CurrentHash, "index", block.Index)
	return nil
}

// AddTransaction parses and validates raw, appending it to the pool and
// raising the nonce map on success.
func (l *Ledger) AddTransaction(raw string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	txn, err := validate(raw, l.nonce)
	if err != nil {
		kind, _ := KindOf(err)
		logger.Infow("rejected invalid transaction", "field", fieldName(kind), "raw", raw)
		metrics.TransactionsRejected.WithLabelValues(string(kind)).Inc()
		return false
	}

	l.pool = append(l.pool, txn)
	l.nonce[txn.Sender] = txn.Nonce
	metrics.PoolSize.Set(float64(len(l.pool)))
	logger.Infow("stored transaction in the transaction pool", "signature", txn.Signature)
	return true
}

func fieldName(kind ErrorKind) string {
	switch kind {
	case InvalidJSON:
		return "format"
	case InvalidSender:
		return "sender"
	case InvalidMessage:
		return "message"
	case InvalidNonce:
		return "nonce"
	case InvalidSignature:
		return "signature"
	default:
		return "unknown"
	}
}

// LastBlock returns the most recently committed block.
func (l *Ledger) LastBlock() Block {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.chain[len(l.chain)-1]
}

// GetBlock returns the committed block at index i. An out-of-range index
// is a programmer error and panics rather than returning an error.
func (l *Ledger) GetBlock(i int64) Block {
	l.mu.Lock()
	defer l.mu.Unlock()
	if i < 0 || i >= int64(len(l.chain)) {
		logger.Errorw("block index out-of-bounds", "index", i, "length", len(l.chain))
		panic(ErrBlockIndexOutOfRange)
	}
	return l.chain[i]
}

// Length returns the number of committed blocks, genesis included.
func (l *Ledger) Length() int64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return int64(len(l.chain))
}

// PoolSize returns the number of transactions currently pending.
func (l *Ledger) PoolSize() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.pool)
}
