// Copyright (c) 2025 Sonic Operations Ltd
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at soniclabs.com/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package bbolt

import (
	"encoding/binary"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/0xsoniclabs/bulletin/board"
	"github.com/0xsoniclabs/bulletin/common"
	bolt "go.etcd.io/bbolt"
)

const fileName = "board.bolt"

var (
	recordBucket = []byte("records")
	orphanBucket = []byte("orphans")
	rootBucket   = []byte("roots")

	orphanMarker = []byte{1}
)

// Board is a bbolt backed implementation of board.Board. Reads run in
// read-only bolt transactions and observe a consistent snapshot; every
// commit is a single read-write bolt transaction.
type Board struct {
	db *bolt.DB
}

// Open opens or creates a bbolt board in the given directory.
func Open(directory string) (*Board, error) {
	if err := os.MkdirAll(directory, 0o700); err != nil {
		return nil, fmt.Errorf("failed to create directory for bbolt board: %w", err)
	}
	db, err := bolt.Open(filepath.Join(directory, fileName), 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bbolt board in %s: %w", directory, err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		for _, name := range [][]byte{recordBucket, orphanBucket, rootBucket} {
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, errors.Join(fmt.Errorf("failed to initialize bbolt board: %w", err), db.Close())
	}
	return &Board{db: db}, nil
}

// NewBoardFromParameters is the board.Factory of the bbolt variant.
func NewBoardFromParameters(params board.Parameters) (board.Board, error) {
	if params.Directory == "" {
		return nil, fmt.Errorf("bbolt board requires a directory")
	}
	return Open(params.Directory)
}

func (b *Board) ListPublishedRoots() ([]common.Hash, error) {
	res := []common.Hash{}
	err := b.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(rootBucket).ForEach(func(_, value []byte) error {
			hash, err := toHash(value)
			if err != nil {
				return err
			}
			res = append(res, hash)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (b *Board) MostRecentPublishedRoot() (*common.Hash, error) {
	var res *common.Hash
	err := b.db.View(func(tx *bolt.Tx) error {
		_, value := tx.Bucket(rootBucket).Cursor().Last()
		if value == nil {
			return nil
		}
		hash, err := toHash(value)
		if err != nil {
			return err
		}
		res = &hash
		return nil
	})
	return res, err
}

func (b *Board) ListOrphans() ([]common.Hash, error) {
	res := []common.Hash{}
	err := b.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(orphanBucket).ForEach(func(key, _ []byte) error {
			hash, err := toHash(key)
			if err != nil {
				return err
			}
			res = append(res, hash)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (b *Board) GetRecord(hash common.Hash) (*board.Record, error) {
	var res *board.Record
	err := b.db.View(func(tx *bolt.Tx) error {
		record, err := getRecord(tx, hash)
		res = record
		return err
	})
	return res, err
}

// getRecord decodes the record of the given hash. The result does not refer
// to memory owned by the transaction.
func getRecord(tx *bolt.Tx, hash common.Hash) (*board.Record, error) {
	data := tx.Bucket(recordBucket).Get(hash[:])
	if data == nil {
		return nil, nil
	}
	return board.DecodeRecord(data)
}

func putRecord(tx *bolt.Tx, hash common.Hash, record *board.Record) error {
	data, err := board.EncodeRecord(record)
	if err != nil {
		return err
	}
	return tx.Bucket(recordBucket).Put(hash[:], data)
}

func (b *Board) Commit(transaction *board.Transaction) error {
	return b.db.Update(func(tx *bolt.Tx) error {
		plan, err := transaction.Validate(func(hash common.Hash) (*board.Record, error) {
			return getRecord(tx, hash)
		})
		if err != nil {
			return err
		}

		orphans := tx.Bucket(orphanBucket)
		for child, parent := range plan.Adoptions {
			record, err := getRecord(tx, child)
			if err != nil {
				return err
			}
			if record == nil {
				return fmt.Errorf("%w: adopted child %v vanished", board.ErrInternal, child)
			}
			p := parent
			record.Parent = &p
			if err := putRecord(tx, child, record); err != nil {
				return err
			}
			if err := orphans.Delete(child[:]); err != nil {
				return err
			}
		}
		for hash, record := range plan.NewRecords() {
			if err := putRecord(tx, hash, record); err != nil {
				return err
			}
			if record.IsOrphan() {
				if err := orphans.Put(hash[:], orphanMarker); err != nil {
					return err
				}
			}
		}
		roots := tx.Bucket(rootBucket)
		for _, root := range plan.Roots {
			seq, err := roots.NextSequence()
			if err != nil {
				return err
			}
			if err := roots.Put(binary.BigEndian.AppendUint64(nil, seq), root.ToBytes()); err != nil {
				return err
			}
		}
		return nil
	})
}

func (b *Board) CensorLeaf(hash common.Hash) error {
	return b.db.Update(func(tx *bolt.Tx) error {
		record, err := getRecord(tx, hash)
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
		return putRecord(tx, hash, record)
	})
}

func (b *Board) Flush() error {
	return b.db.Sync()
}

func (b *Board) Close() error {
	return b.db.Close()
}

func toHash(data []byte) (common.Hash, error) {
	hash, err := common.HashFromBytes(data)
	if err != nil {
		return common.Hash{}, fmt.Errorf("%w: %v", board.ErrCorruptRecord, err)
	}
	return hash, nil
}
