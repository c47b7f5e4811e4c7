// Copyright (c) 2025 Sonic Operations Ltd
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at soniclabs.com/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package board

import (
	"errors"

	"github.com/0xsoniclabs/bulletin/common"
)

var (
	// ErrNotFound is reported when an operation references an unknown hash.
	ErrNotFound = errors.New("hash not found")
	// ErrInvalidOperation is reported when censoring a branch or a root.
	ErrInvalidOperation = errors.New("invalid operation")
	// ErrMalformedTransaction is reported for a transaction referencing a
	// missing child or introducing a duplicate hash. A rejected transaction
	// leaves the board untouched.
	ErrMalformedTransaction = errors.New("malformed transaction")
	// ErrInternal marks a broken board invariant, e.g. a stored child
	// reference resolving to a missing record.
	ErrInternal = errors.New("internal board error")
	// ErrRecordTooLarge is reported when a record exceeds the limits of the
	// binary record encoding.
	ErrRecordTooLarge = errors.New("record too large")
	// ErrCorruptRecord is reported when a persisted record can not be decoded.
	ErrCorruptRecord = errors.New("corrupt record encoding")
	// ErrInvalidEncoding is reported when the text form of a hash is invalid.
	ErrInvalidEncoding = common.ErrInvalidEncoding
)
