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
// This file is derived from original_source/node_tester.py.
// Modified for the replica-ledger development.

// Command replicatester drives one of five canned transaction scenarios
// against a set of running nodes, mirroring node_tester.py.
package main

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/crypto/ed25519"
	"gopkg.in/urfave/cli.v1"

	"github.com/ground-x/replica-ledger/common"
	"github.com/ground-x/replica-ledger/transport"
)

var (
	portsFlag = cli.StringFlag{
		Name:  "ports",
		Usage: "comma-separated list of node ports on localhost",
	}
	testFlag = cli.IntFlag{
		Name:  "test",
		Usage: "scenario to run, 1-5",
	}
)

func main() {
	app := cli.NewApp()
	app.Name = "replicatester"
	app.Usage = "submit one of the five canned test transactions to one or more nodes"
	app.Flags = []cli.Flag{portsFlag, testFlag}
	app.Action = run

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx *cli.Context) error {
	testNum := ctx.Int(testFlag.Name)
	if testNum < 1 || testNum > 5 {
		return cli.NewExitError("--test must be 1-5", 1)
	}
	portsRaw := ctx.String(portsFlag.Name)
	if portsRaw == "" {
		return cli.NewExitError("missing required flag --ports", 1)
	}

	var addrs []string
	for _, p := range strings.Split(portsRaw, ",") {
		if _, err := strconv.Atoi(strings.TrimSpace(p)); err != nil {
			return cli.NewExitError(fmt.Sprintf("bad port %q: %v", p, err), 1)
		}
		addrs = append(addrs, "localhost:"+strings.TrimSpace(p))
	}

	txn, err := buildScenario(testNum)
	if err != nil {
		return cli.NewExitError(err.Error(), 1)
	}
	fmt.Printf("transaction: %s\n", txn)

	var conns []net.Conn
	for _, addr := range addrs {
		conn, err := net.DialTimeout("tcp", addr, 5*time.Second)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to connect to %s: %v\n", addr, err)
			continue
		}
		fmt.Printf("connected to %s\n", addr)
		conns = append(conns, conn)
	}

	for _, conn := range conns {
		fmt.Printf("sending to %s\n", conn.RemoteAddr())
		if err := transport.SendPrefixed(conn, []byte(txn)); err != nil {
			fmt.Fprintf(os.Stderr, "failed to send to %s: %v\n", conn.RemoteAddr(), err)
		}
	}

	for _, conn := range conns {
		conn.SetReadDeadline(time.Now().Add(5 * time.Second))
		raw, err := transport.RecvPrefixed(conn)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to receive from %s: %v\n", conn.RemoteAddr(), err)
			continue
		}
		fmt.Printf("received from %s: %s\n", conn.RemoteAddr(), string(raw))
		conn.Close()
	}
	return nil
}

// buildScenario reproduces node_tester.py's five canned transactions.
func buildScenario(n int) (string, error) {
	pub, priv, err := ed25519.GenerateKey(nil)
	if err != nil {
		return "", err
	}
	sender := hex.EncodeToString(pub)
	fmt.Printf("using private key %s\n", hex.EncodeToString(priv.Seed()))

	type fields struct {
		sender    string
		message   string
		nonce     interface{}
		signature string
	}

	var f fields
	switch n {
	case 1:
		f = fields{sender: sender, message: "test_normal_function", nonce: int64(0)}
	case 2:
		f = fields{sender: sender, message: "test_second_transaction", nonce: int64(0)}
	case 3:
		f = fields{sender: "aabbcc", message: "test_bad_sender", nonce: int64(0)}
	case 4:
		f = fields{sender: sender, message: "test_bad_nonce", nonce: "abc"}
	case 5:
		f = fields{sender: sender, message: "test_bad_signature", nonce: int64(0), signature: "aabbcc"}
	default:
		return "", fmt.Errorf("unknown test scenario %d", n)
	}

	if f.signature == "" {
		sig, err := signTransaction(priv, f.sender, f.message, f.nonce)
		if err != nil {
			return "", err
		}
		f.signature = sig
	}

	payload := map[string]interface{}{
		"sender":    f.sender,
		"message":   f.message,
		"nonce":     f.nonce,
		"signature": f.signature,
	}
	envelope := map[string]interface{}{"type": "transaction", "payload": payload}
	out, err := json.Marshal(envelope)
	return string(out), err
}

func signTransaction(priv ed25519.PrivateKey, sender, message string, nonce interface{}) (string, error) {
	payload, err := common.CanonicalJSON(map[string]interface{}{
		"sender":  sender,
		"message": message,
		"nonce":   nonce,
	})
	if err != nil {
		return "", err
	}
	sig := ed25519.Sign(priv, payload)
	return hex.EncodeToString(sig), nil
}
