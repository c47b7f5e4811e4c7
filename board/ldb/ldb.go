// Copyright (c) 2025 Sonic Operations Ltd
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at soniclabs.com/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package ldb

import (
	"encoding/binary"
	"errors"
	"fmt"
	"sync"

	"github.com/0xsoniclabs/bulletin/board"
	"github.com/0xsoniclabs/bulletin/common"
	"github.com/golang/snappy"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/opt"
	"github.com/syndtr/goleveldb/leveldb/util"
)

// Board is a LevelDB backed implementation of board.Board. A transaction is
// written as a single LevelDB batch, so it is applied atomically on disk.
type Board struct {
	db        *leveldb.DB
	rootCount uint64
	mutex     sync.RWMutex
}

var writeOptions = &opt.WriteOptions{Sync: true}

// Open opens or creates a LevelDB board in the given directory.
func Open(directory string) (*Board, error) {
	db, err := leveldb.OpenFile(directory, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open LevelDB board in %s: %w", directory, err)
	}
	count, err := readRootCount(db)
	if err != nil {
		return nil, errors.Join(err, db.Close())
	}
	return &Board{db: db, rootCount: count}, nil
}

// NewBoardFromParameters is the board.Factory of the LevelDB variant.
func NewBoardFromParameters(params board.Parameters) (board.Board, error) {
	if params.Directory == "" {
		return nil, fmt.Errorf("LevelDB board requires a directory")
	}
	return Open(params.Directory)
}

func readRootCount(db *leveldb.DB) (uint64, error) {
	data, err := db.Get(rootCountKey, nil)
	if errors.Is(err, leveldb.ErrNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	if len(data) != seqSize {
		return 0, fmt.Errorf("%w: invalid root counter of %d bytes", board.ErrCorruptRecord, len(data))
	}
	return binary.BigEndian.Uint64(data), nil
}

func (b *Board) ListPublishedRoots() ([]common.Hash, error) {
	b.mutex.RLock()
	defer b.mutex.RUnlock()
	res := make([]common.Hash, 0, b.rootCount)
	iter := b.db.NewIterator(util.BytesPrefix([]byte{byte(RootTable)}), nil)
	defer iter.Release()
	for iter.Next() {
		hash, err := common.HashFromBytes(iter.Value())
		if err != nil {
			return nil, fmt.Errorf("%w: %v", board.ErrCorruptRecord, err)
		}
		res = append(res, hash)
	}
	return res, iter.Error()
}

func (b *Board) MostRecentPublishedRoot() (*common.Hash, error) {
	b.mutex.RLock()
	defer b.mutex.RUnlock()
	if b.rootCount == 0 {
		return nil, nil
	}
	key := newSeqKey(RootTable, b.rootCount-1)
	data, err := b.db.Get(key[:], nil)
	if err != nil {
		return nil, err
	}
	hash, err := common.HashFromBytes(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", board.ErrCorruptRecord, err)
	}
	return &hash, nil
}

func (b *Board) ListOrphans() ([]common.Hash, error) {
	b.mutex.RLock()
	defer b.mutex.RUnlock()
	res := []common.Hash{}
	iter := b.db.NewIterator(util.BytesPrefix([]byte{byte(OrphanTable)}), nil)
	defer iter.Release()
	for iter.Next() {
		var key hashKey
		if len(iter.Key()) != len(key) {
			return nil, fmt.Errorf("%w: invalid orphan key of %d bytes", board.ErrCorruptRecord, len(iter.Key()))
		}
		copy(key[:], iter.Key())
		res = append(res, key.hash())
	}
	return res, iter.Error()
}

func (b *Board) GetRecord(hash common.Hash) (*board.Record, error) {
	b.mutex.RLock()
	defer b.mutex.RUnlock()
	return b.getRecord(hash)
}

func (b *Board) getRecord(hash common.Hash) (*board.Record, error) {
	key := newHashKey(RecordTable, hash)
	data, err := b.db.Get(key[:], nil)
	if errors.Is(err, leveldb.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	decoded, err := snappy.Decode(nil, data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", board.ErrCorruptRecord, err)
	}
	return board.DecodeRecord(decoded)
}

func putRecord(batch *leveldb.Batch, hash common.Hash, record *board.Record) error {
	data, err := board.EncodeRecord(record)
	if err != nil {
		return err
	}
	key := newHashKey(RecordTable, hash)
	batch.Put(key[:], snappy.Encode(nil, data))
	return nil
}

func (b *Board) Commit(tx *board.Transaction) error {
	b.mutex.Lock()
	defer b.mutex.Unlock()

	plan, err := tx.Validate(b.getRecord)
	if err != nil {
		return err
	}
	if len(plan.Inserts) == 0 {
		return nil
	}

	batch := new(leveldb.Batch)
	for child, parent := range plan.Adoptions {
		record, err := b.getRecord(child)
		if err != nil {
			return err
		}
		if record == nil {
			return fmt.Errorf("%w: adopted child %v vanished", board.ErrInternal, child)
		}
		p := parent
		record.Parent = &p
		if err := putRecord(batch, child, record); err != nil {
			return err
		}
		orphanKey := newHashKey(OrphanTable, child)
		batch.Delete(orphanKey[:])
	}
	for hash, record := range plan.NewRecords() {
		if err := putRecord(batch, hash, record); err != nil {
			return err
		}
		if record.IsOrphan() {
			orphanKey := newHashKey(OrphanTable, hash)
			batch.Put(orphanKey[:], nil)
		}
	}
	count := b.rootCount
	for _, root := range plan.Roots {
		key := newSeqKey(RootTable, count)
		batch.Put(key[:], root.ToBytes())
		count++
	}
	if count != b.rootCount {
		batch.Put(rootCountKey, binary.BigEndian.AppendUint64(nil, count))
	}

	if err := b.db.Write(batch, writeOptions); err != nil {
		return fmt.Errorf("failed to write transaction: %w", err)
	}
	b.rootCount = count
	return nil
}

func (b *Board) CensorLeaf(hash common.Hash) error {
	b.mutex.Lock()
	defer b.mutex.Unlock()
	record, err := b.getRecord(hash)
	if err != nil {
		return err
	}
	if record == nil {
		return fmt.Errorf("%w: %v", board.ErrNotFound, hash)
	}
	leaf, ok := record.Source.(board.Leaf)
	if !ok {
		return fmt.Errorf("%w: can only censor leaves, %v is a %v", board.ErrInvalidOperation, hash, record.Kind())
	}
	if leaf.Censored() {
		return nil
	}
	leaf.Data = nil
	record.Source = leaf

	batch := new(leveldb.Batch)
	if err := putRecord(batch, hash, record); err != nil {
		return err
	}
	return b.db.Write(batch, writeOptions)
}

// Flush does nothing, all writes are synced when committed.
func (b *Board) Flush() error {
	return nil
}

func (b *Board) Close() error {
	b.mutex.Lock()
	defer b.mutex.Unlock()
	return b.db.Close()
}
