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
	"io"
	"strings"

	"golang.org/x/crypto/ed25519"

	"github.com/ground-x/replica-ledger/common"
)

// rawTransaction mirrors the wire shape of a transaction payload before
// any field has been checked for type or range.
type rawTransaction struct {
	Sender    interface{} `json:"sender"`
	Message   interface{} `json:"message"`
	Nonce     interface{} `json:"nonce"`
	Signature interface{} `json:"signature"`
}

// validate runs five ordered checks against raw — JSON shape, sender hex
// format, non-empty message, strictly increasing nonce, and Ed25519
// signature — consulting nonceMap for per-sender replay protection. It
// never mutates nonceMap on failure; on success the caller
// (Ledger.AddTransaction) is responsible for raising the map entry under
// the ledger lock.
func validate(raw string, nonceMap map[string]int64) (Transaction, error) {
	dec := json.NewDecoder(strings.NewReader(raw))
	dec.UseNumber()

	var rt rawTransaction
	if err := dec.Decode(&rt); err != nil {
		return Transaction{}, newValidationError(InvalidJSON, raw)
	}
	// Reject non-object JSON and anything after the object. Strings,
	// numbers and arrays already fail Decode with a type error; a bare
	// null decodes into the zero value without one, hence the first-byte
	// check.
	if !strings.HasPrefix(strings.TrimSpace(raw), "{") {
		return Transaction{}, newValidationError(InvalidJSON, raw)
	}
	if _, err := dec.Token(); err != io.EOF {
		return Transaction{}, newValidationError(InvalidJSON, raw)
	}

	sender, ok := rt.Sender.(string)
	if !ok || !common.ValidSender(sender) {
		return Transaction{}, newValidationError(InvalidSender, raw)
	}

	message, ok := rt.Message.(string)
	if !ok || message == "" {
		return Transaction{}, newValidationError(InvalidMessage, raw)
	}

	nonceNum, ok := rt.Nonce.(json.Number)
	if !ok {
		return Transaction{}, newValidationError(InvalidNonce, raw)
	}
	nonce, err := nonceNum.Int64()
	if err != nil {
		return Transaction{}, newValidationError(InvalidNonce, raw)
	}
	highest, seen := nonceMap[sender]
	if !seen {
		highest = -1
	}
	if nonce <= highest {
		return Transaction{}, newValidationError(InvalidNonce, raw)
	}

	sigStr, ok := rt.Signature.(string)
	if !ok {
		return Transaction{}, newValidationError(InvalidSignature, raw)
	}
	sigBytes, err := hex.DecodeString(sigStr)
	if err != nil {
		return Transaction{}, newValidationError(InvalidSignature, raw)
	}
	pubBytes, err := hex.DecodeString(sender)
	if err != nil || len(pubBytes) != ed25519.PublicKeySize {
		return Transaction{}, newValidationError(InvalidSignature, raw)
	}

	txn := Transaction{Sender: sender, Message: message, Nonce: nonce, Signature: sigStr}
	payload, err := common.CanonicalJSON(txn.signaturePayload())
	if err != nil {
		return Transaction{}, newValidationError(InvalidSignature, raw)
	}
	if !ed25519.Verify(ed25519.PublicKey(pubBytes), payload, sigBytes) {
		return Transaction{}, newValidationError(InvalidSignature, raw)
	}

	return txn, nil
}
