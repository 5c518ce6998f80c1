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

package node

import (
	"encoding/json"
	"fmt"
	"net"

	"github.com/ground-x/replica-ledger/consensus"
	"github.com/ground-x/replica-ledger/ledger"
	rlog "github.com/ground-x/replica-ledger/log"
	"github.com/ground-x/replica-ledger/protocol"
	"github.com/ground-x/replica-ledger/transport"
)

var serverLogger = rlog.NewModuleLogger(rlog.Server)

// PeerServer accepts inbound framed connections from peers and external
// clients, one worker goroutine per connection, for the connection's
// lifetime.
type PeerServer struct {
	ledger    *ledger.Ledger
	consensus *consensus.Engine
	framer    transport.Framer
	listener  net.Listener
}

// NewPeerServer binds a TCP listener at host:port. Binding happens here
// so callers can observe a failure before Serve is called in a goroutine.
func NewPeerServer(host string, port int, l *ledger.Ledger, engine *consensus.Engine, framer transport.Framer) (*PeerServer, error) {
	ln, err := net.Listen("tcp", fmt.Sprintf("%s:%d", host, port))
	if err != nil {
		return nil, err
	}
	return &PeerServer{ledger: l, consensus: engine, framer: framer, listener: ln}, nil
}

// Addr returns the listener's bound address.
func (s *PeerServer) Addr() net.Addr {
	return s.listener.Addr()
}

// Serve accepts connections until the listener is closed.
func (s *PeerServer) Serve() error {
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			return err
		}
		go s.handleConn(conn)
	}
}

// Close stops accepting new connections.
func (s *PeerServer) Close() error {
	return s.listener.Close()
}

func (s *PeerServer) handleConn(conn net.Conn) {
	defer conn.Close()
	peerAddr := conn.RemoteAddr().String()
	serverLogger.Infow("accepted a connection", "peer", peerAddr)

	for {
		raw, err := s.framer.RecvPrefixed(conn)
		if err != nil {
			serverLogger.Infow("connection closed", "peer", peerAddr, "err", err)
			return
		}

		env, ok := protocol.DecodeEnvelope(raw)
		if !ok {
			serverLogger.Infow("received an invalid message", "peer", peerAddr, "raw", string(raw))
			continue
		}

		switch env.Type {
		case protocol.TypeTransaction:
			s.handleTransaction(conn, peerAddr, env.Payload)
		case protocol.TypeValues:
			s.handleValues(conn, peerAddr, env.Payload)
		}
	}
}

func (s *PeerServer) handleTransaction(conn net.Conn, peerAddr string, payload json.RawMessage) {
	serverLogger.Infow("received a transaction", "peer", peerAddr)

	accepted := s.ledger.AddTransaction(string(payload))
	if accepted {
		s.consensus.Notify()
	}

	resp, err := json.Marshal(protocol.TransactionResponse{Response: accepted})
	if err != nil {
		serverLogger.Errorw("failed to encode transaction response", "err", err)
		return
	}
	if err := s.framer.SendPrefixed(conn, resp); err != nil {
		serverLogger.Infow("failed to send transaction response", "peer", peerAddr, "err", err)
	}
}

func (s *PeerServer) handleValues(conn net.Conn, peerAddr string, payload json.RawMessage) {
	var idx int64
	if err := json.Unmarshal(payload, &idx); err != nil {
		serverLogger.Infow("received a malformed block request", "peer", peerAddr, "err", err)
		return
	}
	serverLogger.Infow("received a block request", "peer", peerAddr, "index", idx)

	blocks := s.consensus.HandleBlockRequest(idx)
	out, err := json.Marshal(blocks)
	if err != nil {
		serverLogger.Errorw("failed to encode block response", "err", err)
		return
	}
	if err := s.framer.SendPrefixed(conn, out); err != nil {
		serverLogger.Infow("failed to send block response", "peer", peerAddr, "err", err)
	}
}
