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
	"bufio"
	"os"
	"strings"

	"github.com/pkg/errors"
)

// ReadNodeList parses a newline-delimited "host:port" peer list file,
// one peer per line, excluding self. Blank lines and "#"-prefixed
// comments are skipped.
func ReadNodeList(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open node list %q", path)
	}
	defer f.Close()

	var addrs []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if !strings.Contains(line, ":") {
			return nil, errors.Errorf("node list %q: malformed entry %q, expected host:port", path, line)
		}
		addrs = append(addrs, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrapf(err, "read node list %q", path)
	}
	return addrs, nil
}
