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

package transport

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLengthPrefixed_RoundTrip(t *testing.T) {
	var buf bytes.Buffer
	payload := []byte(`{"type":"transaction","payload":{}}`)

	assert.NoError(t, SendPrefixed(&buf, payload))
	got, err := RecvPrefixed(&buf)
	assert.NoError(t, err)
	assert.Equal(t, payload, got)
}

func TestLengthPrefixed_EmptyPayload(t *testing.T) {
	var buf bytes.Buffer
	assert.NoError(t, SendPrefixed(&buf, []byte{}))
	got, err := RecvPrefixed(&buf)
	assert.NoError(t, err)
	assert.Empty(t, got)
}

func TestLengthPrefixed_HeaderWidth(t *testing.T) {
	var buf bytes.Buffer
	assert.NoError(t, SendPrefixed(&buf, []byte("abc")))
	assert.Equal(t, 4+3, buf.Len())
}

func TestLengthPrefixed_TruncatedHeaderErrors(t *testing.T) {
	buf := bytes.NewBuffer([]byte{0, 0, 1})
	_, err := RecvPrefixed(buf)
	assert.Error(t, err)
}

func TestLengthPrefixed_TruncatedPayloadErrors(t *testing.T) {
	var buf bytes.Buffer
	assert.NoError(t, SendPrefixed(&buf, []byte("hello world")))
	truncated := bytes.NewBuffer(buf.Bytes()[:6])
	_, err := RecvPrefixed(truncated)
	assert.Error(t, err)
}

func TestLengthPrefixed_MultipleMessagesOnOneStream(t *testing.T) {
	var buf bytes.Buffer
	assert.NoError(t, SendPrefixed(&buf, []byte("first")))
	assert.NoError(t, SendPrefixed(&buf, []byte("second")))

	first, err := RecvPrefixed(&buf)
	assert.NoError(t, err)
	assert.Equal(t, "first", string(first))

	second, err := RecvPrefixed(&buf)
	assert.NoError(t, err)
	assert.Equal(t, "second", string(second))
}
