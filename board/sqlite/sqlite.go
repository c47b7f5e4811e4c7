// Copyright (c) 2025 Sonic Operations Ltd
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at soniclabs.com/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/0xsoniclabs/bulletin/board"
	"github.com/0xsoniclabs/bulletin/common"
	_ "github.com/mattn/go-sqlite3"
)

const (
	fileName = "board.sqlite"

	createNodesTable  = `CREATE TABLE IF NOT EXISTS nodes (hash BLOB PRIMARY KEY, kind INTEGER NOT NULL, parent BLOB, record BLOB NOT NULL)`
	createOrphanIndex = `CREATE INDEX IF NOT EXISTS orphans ON nodes (hash) WHERE parent IS NULL`
	createRootsTable  = `CREATE TABLE IF NOT EXISTS roots (seq INTEGER PRIMARY KEY AUTOINCREMENT, hash BLOB NOT NULL)`
	insertNode        = `INSERT INTO nodes (hash, kind, parent, record) VALUES (?, ?, ?, ?)`
	getNode           = `SELECT parent, record FROM nodes WHERE hash = ?`
	setParent         = `UPDATE nodes SET parent = ? WHERE hash = ? AND parent IS NULL`
	setRecord         = `UPDATE nodes SET record = ? WHERE hash = ?`
	listOrphans       = `SELECT hash FROM nodes WHERE parent IS NULL AND kind != ? ORDER BY hash`
	insertRoot        = `INSERT INTO roots (hash) VALUES (?)`
	listRoots         = `SELECT hash FROM roots ORDER BY seq`
	getMostRecentRoot = `SELECT hash FROM roots ORDER BY seq DESC LIMIT 1`
)

// Board is a SQLite backed implementation of board.Board. Every transaction
// is applied within a single SQL transaction.
type Board struct {
	db    *sql.DB
	mutex sync.RWMutex
}

// Open opens or creates a SQLite board in the given directory.
func Open(directory string) (*Board, error) {
	if err := os.MkdirAll(directory, 0o700); err != nil {
		return nil, fmt.Errorf("failed to create directory for SQLite board: %w", err)
	}
	db, err := sql.Open("sqlite3", filepath.Join(directory, fileName))
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite board: %w", err)
	}
	db.SetMaxOpenConns(1)
	for _, stmt := range []string{createNodesTable, createOrphanIndex, createRootsTable} {
		if _, err := db.Exec(stmt); err != nil {
			return nil, errors.Join(fmt.Errorf("failed to initialize SQLite board: %w", err), db.Close())
		}
	}
	return &Board{db: db}, nil
}

// NewBoardFromParameters is the board.Factory of the SQLite variant.
func NewBoardFromParameters(params board.Parameters) (board.Board, error) {
	if params.Directory == "" {
		return nil, fmt.Errorf("SQLite board requires a directory")
	}
	return Open(params.Directory)
}

// querier is the subset of operations shared by sql.DB and sql.Tx.
type querier interface {
	Query(query string, args ...any) (*sql.Rows, error)
	QueryRow(query string, args ...any) *sql.Row
}

func (b *Board) ListPublishedRoots() ([]common.Hash, error) {
	b.mutex.RLock()
	defer b.mutex.RUnlock()
	return queryHashes(b.db, listRoots)
}

func (b *Board) MostRecentPublishedRoot() (*common.Hash, error) {
	b.mutex.RLock()
	defer b.mutex.RUnlock()
	var data []byte
	err := b.db.QueryRow(getMostRecentRoot).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	hash, err := toHash(data)
	if err != nil {
		return nil, err
	}
	return &hash, nil
}

func (b *Board) ListOrphans() ([]common.Hash, error) {
	b.mutex.RLock()
	defer b.mutex.RUnlock()
	return queryHashes(b.db, listOrphans, int(board.KindRoot))
}

func (b *Board) GetRecord(hash common.Hash) (*board.Record, error) {
	b.mutex.RLock()
	defer b.mutex.RUnlock()
	return getRecord(b.db, hash)
}

func getRecord(q querier, hash common.Hash) (*board.Record, error) {
	var parent, data []byte
	err := q.QueryRow(getNode, hash[:]).Scan(&parent, &data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	record, err := board.DecodeRecord(data)
	if err != nil {
		return nil, err
	}
	if parent != nil {
		hash, err := toHash(parent)
		if err != nil {
			return nil, err
		}
		record.Parent = &hash
	}
	return record, nil
}

// encodeSource encodes a record without its parent; the parent is kept in a
// separate column.
func encodeSource(source board.Source) ([]byte, error) {
	return board.EncodeRecord(&board.Record{Source: source})
}

func (b *Board) Commit(tx *board.Transaction) (err error) {
	b.mutex.Lock()
	defer b.mutex.Unlock()

	sqlTx, err := b.db.Begin()
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			err = errors.Join(err, sqlTx.Rollback())
		}
	}()

	plan, err := tx.Validate(func(hash common.Hash) (*board.Record, error) {
		return getRecord(sqlTx, hash)
	})
	if err != nil {
		return err
	}

	for _, entry := range plan.Inserts {
		data, err := encodeSource(entry.Source)
		if err != nil {
			return err
		}
		if _, err := sqlTx.Exec(insertNode, entry.Hash[:], int(entry.Source.Kind()), nil, data); err != nil {
			return fmt.Errorf("failed to insert %v: %w", entry.Hash, err)
		}
		for _, child := range board.Children(entry.Source) {
			res, err := sqlTx.Exec(setParent, entry.Hash[:], child[:])
			if err != nil {
				return fmt.Errorf("failed to set parent of %v: %w", child, err)
			}
			if n, err := res.RowsAffected(); err != nil || n != 1 {
				return errors.Join(fmt.Errorf("%w: parent of %v not updated", board.ErrInternal, child), err)
			}
		}
		if entry.Source.Kind() == board.KindRoot {
			if _, err := sqlTx.Exec(insertRoot, entry.Hash[:]); err != nil {
				return fmt.Errorf("failed to publish root %v: %w", entry.Hash, err)
			}
		}
	}
	return sqlTx.Commit()
}

func (b *Board) CensorLeaf(hash common.Hash) error {
	b.mutex.Lock()
	defer b.mutex.Unlock()
	record, err := getRecord(b.db, hash)
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
	data, err := encodeSource(leaf)
	if err != nil {
		return err
	}
	_, err = b.db.Exec(setRecord, data, hash[:])
	return err
}

// Flush does nothing, SQLite persists every committed transaction.
func (b *Board) Flush() error {
	return nil
}

func (b *Board) Close() error {
	b.mutex.Lock()
	defer b.mutex.Unlock()
	return b.db.Close()
}

func queryHashes(q querier, query string, args ...any) ([]common.Hash, error) {
	rows, err := q.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	res := []common.Hash{}
	for rows.Next() {
		var data []byte
		if err := rows.Scan(&data); err != nil {
			return nil, err
		}
		hash, err := toHash(data)
		if err != nil {
			return nil, err
		}
		res = append(res, hash)
	}
	return res, rows.Err()
}

func toHash(data []byte) (common.Hash, error) {
	hash, err := common.HashFromBytes(data)
	if err != nil {
		return common.Hash{}, fmt.Errorf("%w: %v", board.ErrCorruptRecord, err)
	}
	return hash, nil
}
