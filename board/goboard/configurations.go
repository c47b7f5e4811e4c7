// Copyright (c) 2025 Sonic Operations Ltd
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at soniclabs.com/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

// Package goboard registers the Go board implementations with the board
// package. Import it for its side effect:
//
//	import _ "github.com/0xsoniclabs/bulletin/board/goboard"
package goboard

import (
	"github.com/0xsoniclabs/bulletin/board"
	"github.com/0xsoniclabs/bulletin/board/bbolt"
	"github.com/0xsoniclabs/bulletin/board/ldb"
	"github.com/0xsoniclabs/bulletin/board/memory"
	"github.com/0xsoniclabs/bulletin/board/sqlite"
)

// configurations contains the board variants implemented in Go.
var configurations = map[board.Variant]board.Factory{
	board.VariantMemory:  memory.NewBoardFromParameters,
	board.VariantLevelDb: ldb.NewBoardFromParameters,
	board.VariantSqlite:  sqlite.NewBoardFromParameters,
	board.VariantBbolt:   bbolt.NewBoardFromParameters,
}

func init() {
	for variant, factory := range configurations {
		board.RegisterBoardFactory(variant, factory)
	}
}
