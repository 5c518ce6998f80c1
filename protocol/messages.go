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

// Package protocol defines the peer-request envelope shared by the peer
// server and the consensus engine's peer clients.
package protocol

import "encoding/json"

const (
	TypeTransaction = "transaction"
	TypeValues      = "values"
)

// Envelope is the outer {"type": ..., "payload": ...} frame every inbound
// message is decoded into.
type Envelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// TransactionResponse is the reply to a "transaction" request.
type TransactionResponse struct {
	Response bool `json:"response"`
}

// ValuesRequest builds the {"type":"values","payload":idx} frame a peer
// client sends once per round.
func ValuesRequest(idx int64) ([]byte, error) {
	return json.Marshal(struct {
		Type    string `json:"type"`
		Payload int64  `json:"payload"`
	}{Type: TypeValues, Payload: idx})
}

// DecodeEnvelope parses raw as an Envelope, returning ok=false (rather
// than an error) for anything that is not a well-formed
// {"type": "transaction"|"values", "payload": ...} object — the peer
// server logs and continues on a malformed frame instead of failing.
func DecodeEnvelope(raw []byte) (Envelope, bool) {
	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return Envelope{}, false
	}
	if env.Type != TypeTransaction && env.Type != TypeValues {
		return Envelope{}, false
	}
	if env.Payload == nil {
		return Envelope{}, false
	}
	return env, true
}
