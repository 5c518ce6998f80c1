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
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/ed25519"

	"github.com/ground-x/replica-ledger/common"
)

// signedTxnJSON builds a valid raw transaction string signed by priv.
func signedTxnJSON(t *testing.T, priv ed25519.PrivateKey, sender, message string, nonce int64) string {
	t.Helper()
	payload, err := common.CanonicalJSON(map[string]interface{}{
		"sender":  sender,
		"message": message,
		"nonce":   nonce,
	})
	if err != nil {
		t.Fatalf("canonical json: %v", err)
	}
	sig := ed25519.Sign(priv, payload)
	raw, err := json.Marshal(map[string]interface{}{
		"sender":    sender,
		"message":   message,
		"nonce":     nonce,
		"signature": hex.EncodeToString(sig),
	})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return string(raw)
}

func TestValidate_SingleValidTransaction(t *testing.T) {
	pub, priv, err := ed25519.GenerateKey(nil)
	assert.NoError(t, err)
	sender := hex.EncodeToString(pub)

	raw := signedTxnJSON(t, priv, sender, "test_normal_function", 0)
	txn, err := validate(raw, map[string]int64{})
	assert.NoError(t, err)
	assert.Equal(t, sender, txn.Sender)
	assert.Equal(t, int64(0), txn.Nonce)
}

func TestValidate_DuplicateNonceRejected(t *testing.T) {
	pub, priv, err := ed25519.GenerateKey(nil)
	assert.NoError(t, err)
	sender := hex.EncodeToString(pub)

	raw := signedTxnJSON(t, priv, sender, "test_second_transaction", 0)
	_, err = validate(raw, map[string]int64{sender: 0})
	kind, ok := KindOf(err)
	assert.True(t, ok)
	assert.Equal(t, InvalidNonce, kind)
}

func TestValidate_BadSender(t *testing.T) {
	_, priv, _ := ed25519.GenerateKey(nil)
	raw := signedTxnJSON(t, priv, "aabbcc", "test_bad_sender", 0)
	_, err := validate(raw, map[string]int64{})
	kind, _ := KindOf(err)
	assert.Equal(t, InvalidSender, kind)
}

func TestValidate_BadNonceType(t *testing.T) {
	pub, _, _ := ed25519.GenerateKey(nil)
	sender := hex.EncodeToString(pub)
	raw := fmt.Sprintf(`{"sender":%q,"message":"test_bad_nonce","nonce":"abc","signature":"aabbcc"}`, sender)
	_, err := validate(raw, map[string]int64{})
	kind, _ := KindOf(err)
	assert.Equal(t, InvalidNonce, kind)
}

func TestValidate_BadSignature(t *testing.T) {
	pub, _, _ := ed25519.GenerateKey(nil)
	sender := hex.EncodeToString(pub)
	raw := fmt.Sprintf(`{"sender":%q,"message":"test_bad_signature","nonce":0,"signature":"aabbcc"}`, sender)
	_, err := validate(raw, map[string]int64{})
	kind, _ := KindOf(err)
	assert.Equal(t, InvalidSignature, kind)
}

func TestValidate_InvalidJSON(t *testing.T) {
	_, err := validate("not json", map[string]int64{})
	kind, _ := KindOf(err)
	assert.Equal(t, InvalidJSON, kind)
}

func TestValidate_EmptyMessage(t *testing.T) {
	pub, priv, _ := ed25519.GenerateKey(nil)
	sender := hex.EncodeToString(pub)
	raw := signedTxnJSON(t, priv, sender, "", 0)
	_, err := validate(raw, map[string]int64{})
	kind, _ := KindOf(err)
	assert.Equal(t, InvalidMessage, kind)
}

func TestValidate_IncreasingNonceSameSender(t *testing.T) {
	pub, priv, _ := ed25519.GenerateKey(nil)
	sender := hex.EncodeToString(pub)
	nonceMap := map[string]int64{}

	raw1 := signedTxnJSON(t, priv, sender, "first", 0)
	txn1, err := validate(raw1, nonceMap)
	assert.NoError(t, err)
	nonceMap[txn1.Sender] = txn1.Nonce

	raw2 := signedTxnJSON(t, priv, sender, "second", 1)
	_, err = validate(raw2, nonceMap)
	assert.NoError(t, err)
}
