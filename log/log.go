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

// Package log provides the module-scoped logger used throughout this
// repository.
package log

import (
	"os"
	"sync"

	"go.uber.org/zap"
)

// Module names, one per long-lived component.
const (
	Ledger    = "ledger"
	Validator = "validator"
	Consensus = "consensus"
	PeerConn  = "peerclient"
	Server    = "peerserver"
	Node      = "node"
	CLI       = "cmd"
	Metrics   = "metrics"
)

var (
	base     *zap.Logger
	baseOnce sync.Once
)

func rootLogger() *zap.Logger {
	baseOnce.Do(func() {
		cfg := zap.NewDevelopmentConfig()
		cfg.OutputPaths = []string{"stdout"}
		l, err := cfg.Build(zap.AddCallerSkip(1))
		if err != nil {
			// Logger construction only fails on bad config; this config is
			// static, so fall back to a no-op rather than panic at import time.
			l = zap.NewNop()
			_ = err
		}
		base = l
	})
	return base
}

// NewModuleLogger returns a *zap.SugaredLogger tagged with the given module
// name.
func NewModuleLogger(module string) *zap.SugaredLogger {
	return rootLogger().Sugar().With("module", module)
}

// SetDebug replaces the root logger with a debug-level development
// logger writing to stderr; called once from cmd/replicanode when --debug
// is passed. Loggers already returned by NewModuleLogger, which includes
// every package-level module logger, keep the logger they were built
// from, and that logger already logs at debug level.
func SetDebug(debug bool) {
	if !debug {
		return
	}
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	l, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		os.Stderr.WriteString("log: failed to rebuild logger: " + err.Error() + "\n")
		return
	}
	base = l
}
