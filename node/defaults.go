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
//
// This file is derived from node/defaults.go.
// Modified for the replica-ledger development.

package node

import (
	"github.com/ground-x/replica-ledger/params"
)

// Config holds the settings a Node is built from: which port to listen
// on, which peers to dial, and whether to expose Prometheus metrics.
type Config struct {
	Host        string
	Port        int
	Peers       []string
	MetricsPort int
}

// DefaultConfig contains reasonable defaults; callers fill in Port and
// Peers from the CLI.
var DefaultConfig = Config{
	Host:        params.DefaultHost,
	MetricsPort: 0,
}
