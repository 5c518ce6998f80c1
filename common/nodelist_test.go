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
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempNodeList(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "nodes.txt")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0644))
	return path
}

func TestReadNodeList_SkipsBlankLinesAndComments(t *testing.T) {
	path := writeTempNodeList(t, "# comment\n\n127.0.0.1:9001\n127.0.0.1:9002\n")
	addrs, err := ReadNodeList(path)
	assert.NoError(t, err)
	assert.Equal(t, []string{"127.0.0.1:9001", "127.0.0.1:9002"}, addrs)
}

func TestReadNodeList_MalformedEntry(t *testing.T) {
	path := writeTempNodeList(t, "not-a-host-port\n")
	_, err := ReadNodeList(path)
	assert.Error(t, err)
}

func TestReadNodeList_MissingFile(t *testing.T) {
	_, err := ReadNodeList(filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)
}

func TestValidSender(t *testing.T) {
	assert.True(t, ValidSender("2d711642b726b04401627ca9fbac32f5c8530fb1903cc4db02258717921a4881"))
	assert.False(t, ValidSender("short"))
	assert.False(t, ValidSender(""))
}
