// Copyright (c) 2025 Sonic Operations Ltd
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at soniclabs.com/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package memory

import (
	"fmt"
	"slices"
	"sync"

	"github.com/0xsoniclabs/bulletin/board"
	"github.com/0xsoniclabs/bulletin/common"
)

const initCapacity = 1_000

// Board is an in-memory implementation of board.Board. All data is lost when
// the board is closed.
type Board struct {
	records   map[common.Hash]*board.Record
	published []common.Hash
	mutex     sync.RWMutex
}

// NewBoard creates a new, empty in-memory board.
func NewBoard() *Board {
	return &Board{
		records: make(map[common.Hash]*board.Record, initCapacity),
	}
}

// NewBoardFromParameters is the board.Factory of the in-memory variant.
// The directory parameter is ignored.
func NewBoardFromParameters(board.Parameters) (board.Board, error) {
	return NewBoard(), nil
}

func (b *Board) ListPublishedRoots() ([]common.Hash, error) {
	b.mutex.RLock()
	defer b.mutex.RUnlock()
	return slices.Clone(b.published), nil
}

func (b *Board) MostRecentPublishedRoot() (*common.Hash, error) {
	b.mutex.RLock()
	defer b.mutex.RUnlock()
	if len(b.published) == 0 {
		return nil, nil
	}
	res := b.published[len(b.published)-1]
	return &res, nil
}

func (b *Board) ListOrphans() ([]common.Hash, error) {
	b.mutex.RLock()
	defer b.mutex.RUnlock()
	res := []common.Hash{}
	for hash, record := range b.records {
		if record.IsOrphan() {
			res = append(res, hash)
		}
	}
	slices.SortFunc(res, func(a, b common.Hash) int {
		return a.Compare(&b)
	})
	return res, nil
}

func (b *Board) GetRecord(hash common.Hash) (*board.Record, error) {
	b.mutex.RLock()
	defer b.mutex.RUnlock()
	return b.records[hash].Clone(), nil
}

func (b *Board) Commit(tx *board.Transaction) error {
	b.mutex.Lock()
	defer b.mutex.Unlock()

	plan, err := tx.Validate(func(hash common.Hash) (*board.Record, error) {
		return b.records[hash], nil
	})
	if err != nil {
		return err
	}

	// From here on nothing can fail, the plan is applied as a whole.
	for child, parent := range plan.Adoptions {
		p := parent
		b.records[child].Parent = &p
	}
	for hash, record := range plan.NewRecords() {
		b.records[hash] = record
	}
	b.published = append(b.published, plan.Roots...)
	return nil
}

func (b *Board) CensorLeaf(hash common.Hash) error {
	b.mutex.Lock()
	defer b.mutex.Unlock()
	record, found := b.records[hash]
	if !found {
		return fmt.Errorf("%w: %v", board.ErrNotFound, hash)
	}
	leaf, ok := record.Source.(board.Leaf)
	if !ok {
		return fmt.Errorf("%w: can only censor leaves, %v is a %v", board.ErrInvalidOperation, hash, record.Kind())
	}
	leaf.Data = nil
	record.Source = leaf
	return nil
}

// Size returns the number of records on the board.
func (b *Board) Size() int {
	b.mutex.RLock()
	defer b.mutex.RUnlock()
	return len(b.records)
}

// Flush does nothing.
func (b *Board) Flush() error {
	return nil
}

// Close does nothing.
func (b *Board) Close() error {
	return nil
}
