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

package ledger

import "github.com/pkg/errors"

// ErrorKind identifies which of the validator's five ordered checks
// failed.
type ErrorKind string

const (
	InvalidJSON      ErrorKind = "INVALID_JSON"
	InvalidSender    ErrorKind = "INVALID_SENDER"
	InvalidMessage   ErrorKind = "INVALID_MESSAGE"
	InvalidNonce     ErrorKind = "INVALID_NONCE"
	InvalidSignature ErrorKind = "INVALID_SIGNATURE"
)

// ValidationError wraps one of the five error kinds above with the
// transaction text that failed, for logging. On the wire it always
// collapses to {"response": false}.
type ValidationError struct {
	Kind ErrorKind
	raw  string
}

func (e *ValidationError) Error() string {
	return string(e.Kind)
}

func newValidationError(kind ErrorKind, raw string) error {
	return errors.WithStack(&ValidationError{Kind: kind, raw: raw})
}

// KindOf extracts the ErrorKind from an error produced by the validator,
// if any.
func KindOf(err error) (ErrorKind, bool) {
	var ve *ValidationError
	if e, ok := errors.Cause(err).(*ValidationError); ok {
		ve = e
		return ve.Kind, true
	}
	return "", false
}

// ErrBlockIndexOutOfRange is raised by GetBlock on a programmer error: a
// request for a height that was never committed. This is a fail-loudly
// condition, not a recoverable one.
var ErrBlockIndexOutOfRange = errors.New("block index out-of-bounds")

func errBlockIndexMismatch(got, want int64) error {
	return errors.Errorf("add_block: index %d does not match chain length %d", got, want)
}

func errPreviousHashMismatch(got, want string) error {
	return errors.Errorf("add_block: previous_hash %q does not match last committed hash %q", got, want)
}
