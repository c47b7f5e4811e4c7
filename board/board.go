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

//go:generate mockgen -source board.go -destination board_mocks.go -package board

import "github.com/0xsoniclabs/bulletin/common"

// Board is the storage contract of a hash-chained bulletin board. Leaves,
// branches and roots are recorded under their content hash; each node gets a
// parent at most once and records are never removed.
//
// Implementations must be safe for concurrent use. Mutations are mutually
// exclusive with each other and with all reads, so no reader observes a
// partially applied transaction.
type Board interface {
	// ListPublishedRoots returns all published roots, oldest first.
	ListPublishedRoots() ([]common.Hash, error)

	// MostRecentPublishedRoot returns the head of the board, or nil if no
	// root has been published yet.
	MostRecentPublishedRoot() (*common.Hash, error)

	// ListOrphans returns all leaves and branches without a parent, sorted by
	// hash. Roots are never included.
	ListOrphans() ([]common.Hash, error)

	// GetRecord returns a copy of the record of the given hash, or nil if the
	// hash is unknown.
	GetRecord(hash common.Hash) (*Record, error)

	// Commit applies all entries of the transaction atomically. If any entry
	// is malformed, ErrMalformedTransaction is reported and nothing changes.
	Commit(tx *Transaction) error

	// CensorLeaf removes the payload of a leaf while keeping its timestamp,
	// its hash and all links. Censoring a censored leaf is a no-op. Unknown
	// hashes yield ErrNotFound, branches and roots ErrInvalidOperation.
	CensorLeaf(hash common.Hash) error

	// Flush writes buffered data to persistent storage.
	Flush() error

	// Close flushes and releases all resources held by the board.
	Close() error
}
