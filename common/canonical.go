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

package common

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"regexp"
	"strings"
)

// ZeroHash64 is the previous_hash of the genesis block.
var ZeroHash64 = strings.Repeat("0", 64)

var senderRe = regexp.MustCompile(`^[a-fA-F0-9]{64}$`)

// ValidSender reports whether s is exactly 64 hex characters.
func ValidSender(s string) bool {
	return senderRe.MatchString(s)
}

// CanonicalJSON marshals v into compact JSON with object keys sorted
// lexicographically, the form both block hashing and signature
// verification sign over. encoding/json already sorts map keys; for
// struct values callers must pass a map (ordered at marshal time) or
// rely on a type whose field order already matches, so every canonical
// payload in this repository is built from a map[string]interface{}.
func CanonicalJSON(v interface{}) ([]byte, error) {
	return json.Marshal(v)
}

// SHA256Hex returns the lowercase hex SHA-256 digest of b.
func SHA256Hex(b []byte) string {
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}
