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

// Package transport implements length-prefixed message framing: every
// message on every connection is prefixed by a fixed-width, big-endian
// unsigned length header.
package transport

import (
	"encoding/binary"
	"io"

	"github.com/pkg/errors"

	"github.com/ground-x/replica-ledger/params"
)

// Framer sends and receives length-prefixed byte payloads. Any
// implementation must agree on endianness and header width with its
// peer, or all communication is corrupted.
type Framer interface {
	SendPrefixed(w io.Writer, payload []byte) error
	RecvPrefixed(r io.Reader) ([]byte, error)
}

// LengthPrefixed is the concrete Framer used by every connection in this
// repository: a 4-byte big-endian uint32 length header followed by the
// UTF-8 JSON payload.
type LengthPrefixed struct{}

var _ Framer = LengthPrefixed{}

// SendPrefixed writes the big-endian length header for payload followed
// by payload itself.
func (LengthPrefixed) SendPrefixed(w io.Writer, payload []byte) error {
	var header [params.LengthPrefixWidth]byte
	binary.BigEndian.PutUint32(header[:], uint32(len(payload)))
	if _, err := w.Write(header[:]); err != nil {
		return errors.Wrap(err, "write frame header")
	}
	if _, err := w.Write(payload); err != nil {
		return errors.Wrap(err, "write frame payload")
	}
	return nil
}

// RecvPrefixed reads a length header followed by exactly that many bytes
// of payload.
func (LengthPrefixed) RecvPrefixed(r io.Reader) ([]byte, error) {
	var header [params.LengthPrefixWidth]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		return nil, errors.Wrap(err, "read frame header")
	}
	n := binary.BigEndian.Uint32(header[:])
	payload := make([]byte, n)
	if _, err := io.ReadFull(r, payload); err != nil {
		return nil, errors.Wrap(err, "read frame payload")
	}
	return payload, nil
}

// SendPrefixed and RecvPrefixed are free functions over the default
// LengthPrefixed framer, for callers that don't need to swap the framer
// implementation.
func SendPrefixed(w io.Writer, payload []byte) error {
	return LengthPrefixed{}.SendPrefixed(w, payload)
}

func RecvPrefixed(r io.Reader) ([]byte, error) {
	return LengthPrefixed{}.RecvPrefixed(r)
}
