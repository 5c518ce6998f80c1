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
// This file is derived from cmd/kcn/main.go.
// Modified for the replica-ledger development.

// Command replicanode runs one peer of the replicated ledger.
package main

import (
	"fmt"
	"os"

	"gopkg.in/urfave/cli.v1"

	"github.com/ground-x/replica-ledger/common"
	rlog "github.com/ground-x/replica-ledger/log"
	"github.com/ground-x/replica-ledger/node"
)

var logger = rlog.NewModuleLogger(rlog.CLI)

var (
	portFlag = cli.IntFlag{
		Name:  "port",
		Usage: "TCP port the peer server listens on",
	}
	nodeFileFlag = cli.StringFlag{
		Name:  "nodefile",
		Usage: "Path to a newline-delimited host:port peer list, excluding self",
	}
	dataDirFlag = cli.StringFlag{
		Name:  "datadir",
		Usage: "Data directory (accepted for flag-surface parity; this node keeps no persistent state)",
	}
	metricsPortFlag = cli.IntFlag{
		Name:  "metrics-port",
		Usage: "Port to serve Prometheus /metrics on; 0 disables metrics",
		Value: 0,
	}
	debugFlag = cli.BoolFlag{
		Name:  "debug",
		Usage: "Rebuild the root logger at debug level (package-level module loggers keep their startup logger)",
	}
)

func main() {
	app := cli.NewApp()
	app.Name = "replicanode"
	app.Usage = "run one peer of the replicated ledger"
	app.Flags = []cli.Flag{portFlag, nodeFileFlag, dataDirFlag, metricsPortFlag, debugFlag}
	app.Action = run

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx *cli.Context) error {
	rlog.SetDebug(ctx.Bool(debugFlag.Name))

	port := ctx.Int(portFlag.Name)
	if port == 0 {
		return cli.NewExitError("missing required flag --port", 1)
	}
	nodeFile := ctx.String(nodeFileFlag.Name)
	if nodeFile == "" {
		return cli.NewExitError("missing required flag --nodefile", 1)
	}

	peers, err := common.ReadNodeList(nodeFile)
	if err != nil {
		return cli.NewExitError(err.Error(), 1)
	}

	cfg := node.DefaultConfig
	cfg.Port = port
	cfg.Peers = peers
	cfg.MetricsPort = ctx.Int(metricsPortFlag.Name)

	n, err := node.New(cfg)
	if err != nil {
		return cli.NewExitError(err.Error(), 1)
	}

	logger.Infow("starting node", "port", port, "peers", len(peers))
	return n.Run()
}
