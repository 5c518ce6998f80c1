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

package ledger

import (
	"encoding/hex"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/ed25519"

	"github.com/ground-x/replica-ledger/common"
)

func signedRaw(t *testing.T, priv ed25519.PrivateKey, sender, message string, nonce int64) string {
	t.Helper()
	payload, err := common.CanonicalJSON(map[string]interface{}{
		"sender":  sender,
		"message": message,
		"nonce":   nonce,
	})
	assert.NoError(t, err)
	sig := ed25519.Sign(priv, payload)
	raw, err := json.Marshal(map[string]interface{}{
		"sender":    sender,
		"message":   message,
		"nonce":     nonce,
		"signature": hex.EncodeToString(sig),
	})
	assert.NoError(t, err)
	return string(raw)
}

func TestLedger_GenesisBlock(t *testing.T) {
	l := New()
	assert.EqualValues(t, 1, l.Length())
	genesis := l.LastBlock()
	assert.EqualValues(t, 0, genesis.Index)
	assert.Equal(t, common.ZeroHash64, genesis.PreviousHash)
	assert.Empty(t, genesis.Transactions)
}

func TestLedger_AddTransaction_ValidAndDuplicate(t *testing.T) {
	l := New()
	pub, priv, _ := ed25519.GenerateKey(nil)
	sender := hex.EncodeToString(pub)

	raw := signedRaw(t, priv, sender, "test_normal_function", 0)
	assert.True(t, l.AddTransaction(raw))
	assert.Equal(t, 1, l.PoolSize())

	dup := signedRaw(t, priv, sender, "test_duplicate", 0)
	assert.False(t, l.AddTransaction(dup))
	assert.Equal(t, 1, l.PoolSize())
}

func TestLedger_ProposeBlock_DoesNotMutate(t *testing.T) {
	l := New()
	pub, priv, _ := ed25519.GenerateKey(nil)
	sender := hex.EncodeToString(pub)
	l.AddTransaction(signedRaw(t, priv, sender, "hello", 0))

	block := l.ProposeBlock()
	assert.EqualValues(t, 1, block.Index)
	assert.Len(t, block.Transactions, 1)
	assert.EqualValues(t, 1, l.Length())
	assert.Equal(t, 1, l.PoolSize())
}

func TestLedger_AddBlock_DropsSubsumedPoolEntries(t *testing.T) {
	l := New()
	pub, priv, _ := ed25519.GenerateKey(nil)
	sender := hex.EncodeToString(pub)

	l.AddTransaction(signedRaw(t, priv, sender, "a", 0))
	l.AddTransaction(signedRaw(t, priv, sender, "b", 1))

	block := l.ProposeBlock() // snapshots both pending txns
	err := l.AddBlock(block)
	assert.NoError(t, err)
	assert.Equal(t, 0, l.PoolSize())
	assert.EqualValues(t, 2, l.Length())

	// A transaction at or below the committed nonce must still be rejected.
	replay := signedRaw(t, priv, sender, "replay", 1)
	assert.False(t, l.AddTransaction(replay))
}

func TestLedger_AddBlock_PreservesSurvivingOrder(t *testing.T) {
	l := New()
	pubA, privA, _ := ed25519.GenerateKey(nil)
	pubB, privB, _ := ed25519.GenerateKey(nil)
	senderA := hex.EncodeToString(pubA)
	senderB := hex.EncodeToString(pubB)

	l.AddTransaction(signedRaw(t, privA, senderA, "a0", 0))
	l.AddTransaction(signedRaw(t, privB, senderB, "b0", 0))
	l.AddTransaction(signedRaw(t, privB, senderB, "b1", 1))

	// Commit only A's transaction by hand-building a block.
	block := Block{
		Index:        l.Length(),
		Transactions: []Transaction{{Sender: senderA, Message: "a0", Nonce: 0}},
		PreviousHash: l.LastBlock().CurrentHash,
	}
	block.CurrentHash = hashBlock(block)
	assert.NoError(t, l.AddBlock(block))

	assert.Equal(t, 2, l.PoolSize())
	assert.Equal(t, "b0", l.pool[0].Message)
	assert.Equal(t, "b1", l.pool[1].Message)
}

func TestLedger_AddBlock_RejectsIndexMismatch(t *testing.T) {
	l := New()
	bad := Block{Index: 5, Transactions: []Transaction{}, PreviousHash: l.LastBlock().CurrentHash}
	bad.CurrentHash = hashBlock(bad)
	assert.Error(t, l.AddBlock(bad))
}

func TestLedger_GetBlock_OutOfRangePanics(t *testing.T) {
	l := New()
	assert.Panics(t, func() {
		l.GetBlock(99)
	})
}

func TestLedger_HashDeterminism(t *testing.T) {
	b1 := Block{Index: 0, Transactions: []Transaction{}, PreviousHash: common.ZeroHash64}
	b2 := Block{Index: 0, Transactions: []Transaction{}, PreviousHash: common.ZeroHash64}
	assert.Equal(t, hashBlock(b1), hashBlock(b2))
}
