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
	"context"
	"encoding/json"
	"io"

	"github.com/0xsoniclabs/bulletin/common"
)

// ExportedRecord is the JSON form of a record produced by Export. Hashes are
// rendered in their hexadecimal form.
type ExportedRecord struct {
	Hash      common.Hash   `json:"hash"`
	Kind      string        `json:"kind"`
	Parent    *common.Hash  `json:"parent,omitempty"`
	Timestamp *uint64       `json:"timestamp,omitempty"`
	Data      []byte        `json:"data,omitempty"`
	Censored  bool          `json:"censored,omitempty"`
	Left      *common.Hash  `json:"left,omitempty"`
	Right     *common.Hash  `json:"right,omitempty"`
	Children  []common.Hash `json:"children,omitempty"`
	Metadata  []byte        `json:"metadata,omitempty"`
}

// NewExportedRecord converts a record into its exported form.
func NewExportedRecord(hash common.Hash, record *Record) ExportedRecord {
	res := ExportedRecord{
		Hash:   hash,
		Kind:   record.Kind().String(),
		Parent: record.Parent,
	}
	switch source := record.Source.(type) {
	case Leaf:
		timestamp := source.Timestamp
		res.Timestamp = &timestamp
		res.Data = source.Data
		res.Censored = source.Censored()
	case Branch:
		res.Left, res.Right = &source.Left, &source.Right
	case Root:
		res.Children = source.Children
		res.Metadata = source.Metadata
	}
	return res
}

// Export writes every record reachable from the published roots and the
// orphans of the board as one JSON object per line. Parents are written
// before their children. The structural checks of Verify are applied while
// exporting.
func Export(ctx context.Context, b Board, out io.Writer) error {
	roots, err := b.ListPublishedRoots()
	if err != nil {
		return err
	}
	orphans, err := b.ListOrphans()
	if err != nil {
		return err
	}
	encoder := json.NewEncoder(out)
	return walk(b, roots, orphans, func(hash common.Hash, record *Record) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		return encoder.Encode(NewExportedRecord(hash, record))
	})
}
