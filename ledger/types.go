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

// Transaction is an immutable client-submitted record. Sender is 64 lower
// or upper hex characters encoding a 32-byte Ed25519 public key; Signature
// is the hex encoding of the Ed25519 signature over the canonical bytes of
// {sender, message, nonce}.
type Transaction struct {
	Sender    string `json:"sender"`
	Message   string `json:"message"`
	Nonce     int64  `json:"nonce"`
	Signature string `json:"signature"`
}

// signaturePayload returns the canonical {sender, message, nonce} map
// used both to produce and to verify Signature.
func (t Transaction) signaturePayload() map[string]interface{} {
	return map[string]interface{}{
		"sender":  t.Sender,
		"message": t.Message,
		"nonce":   t.Nonce,
	}
}

// Block is an immutable, appendable unit of commitment.
type Block struct {
	Index        int64         `json:"index"`
	Transactions []Transaction `json:"transactions"`
	PreviousHash string        `json:"previous_hash"`
	CurrentHash  string        `json:"current_hash"`
}

// hashPayload returns the canonical {index, transactions, previous_hash}
// map hashed to produce CurrentHash. Each transaction is projected to a
// map as well, so its keys are sorted in the canonical bytes too.
func (b Block) hashPayload() map[string]interface{} {
	txns := make([]map[string]interface{}, 0, len(b.Transactions))
	for _, t := range b.Transactions {
		m := t.signaturePayload()
		m["signature"] = t.Signature
		txns = append(txns, m)
	}
	return map[string]interface{}{
		"index":         b.Index,
		"transactions":  txns,
		"previous_hash": b.PreviousHash,
	}
}
