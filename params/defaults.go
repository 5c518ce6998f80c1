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

// Package params holds the node's tunable defaults.
package params

import "time"

const (
	// DefaultHost is the listen interface for the peer server.
	DefaultHost = "0.0.0.0"

	// ReconnectBackoff is how long a peer client waits between failed
	// initial-connection attempts.
	ReconnectBackoff = 2 * time.Second

	// PeerReadTimeout bounds a single values round trip on an established
	// peer connection.
	PeerReadTimeout = 5 * time.Second

	// MaxConsecutiveFailures is the number of consecutive failures (a
	// failed reconnect or a failed values round) after a peer's first
	// successful connection before the peer client retires permanently
	// and shrinks the consensus barrier.
	MaxConsecutiveFailures = 2

	// LengthPrefixWidth is the width, in bytes, of the big-endian frame
	// length header that precedes every message on the wire.
	LengthPrefixWidth = 4

	// RecentBlockCacheSize bounds the ledger's by-hash lookup cache.
	RecentBlockCacheSize = 256
)
