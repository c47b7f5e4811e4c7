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
	"fmt"
	"slices"

	"github.com/0xsoniclabs/bulletin/common"
)

// Verify checks the structural invariants of a board using its public
// interface only. Starting from every published root and every orphan, all
// reachable records are visited and it is checked that
//   - every referenced child exists,
//   - every child points back to the node referencing it,
//   - orphans have no parent and are not roots,
//   - published roots are root records.
//
// Violations are reported as errors wrapping ErrInternal. The board may be
// modified concurrently; orphans adopted after they were listed are still
// visited as if they were top level nodes.
func Verify(b Board) error {
	roots, err := b.ListPublishedRoots()
	if err != nil {
		return err
	}
	orphans, err := b.ListOrphans()
	if err != nil {
		return err
	}

	return walk(b, roots, orphans, func(common.Hash, *Record) error { return nil })
}

// walk visits every record reachable from the given roots and orphans exactly
// once, checking the structural invariants on the way. Records are visited
// parents first.
func walk(b Board, roots, orphans []common.Hash, visit func(common.Hash, *Record) error) error {
	seen := map[common.Hash]struct{}{}

	var visitTree func(hash common.Hash, parent *common.Hash) error
	visitTree = func(hash common.Hash, parent *common.Hash) error {
		if _, found := seen[hash]; found {
			return fmt.Errorf("%w: %v reachable twice", ErrInternal, hash)
		}
		seen[hash] = struct{}{}

		record, err := b.GetRecord(hash)
		if err != nil {
			return err
		}
		if record == nil {
			if parent == nil {
				return fmt.Errorf("%w: listed hash %v has no record", ErrInternal, hash)
			}
			return fmt.Errorf("%w: child %v of %v has no record", ErrInternal, hash, *parent)
		}
		if record.Source == nil {
			return fmt.Errorf("%w: record of %v has no source", ErrInternal, hash)
		}
		if parent != nil {
			if record.Parent == nil || *record.Parent != *parent {
				return fmt.Errorf("%w: child %v of %v does not link back to its parent", ErrInternal, hash, *parent)
			}
		}
		if err := visit(hash, record); err != nil {
			return err
		}
		for _, child := range record.Source.children() {
			if err := visitTree(child, &hash); err != nil {
				return err
			}
		}
		return nil
	}

	for _, root := range roots {
		record, err := b.GetRecord(root)
		if err != nil {
			return err
		}
		if record != nil && record.Source != nil && record.Kind() != KindRoot {
			return fmt.Errorf("%w: published root %v is a %v", ErrInternal, root, record.Kind())
		}
		if err := visitTree(root, nil); err != nil {
			return err
		}
	}
	for _, orphan := range orphans {
		record, err := b.GetRecord(orphan)
		if err != nil {
			return err
		}
		if record != nil && record.Source != nil && !record.IsOrphan() {
			adopted, err := adoptedBy(b, orphan, record)
			if err != nil {
				return err
			}
			if !adopted {
				return fmt.Errorf("%w: listed orphan %v is not an orphan", ErrInternal, orphan)
			}
		}
		if err := visitTree(orphan, nil); err != nil {
			return err
		}
	}
	return nil
}

// adoptedBy reports whether the parent of the given record lists it as a
// child. Orphans may legitimately be adopted by a commit running after the
// orphans were listed.
func adoptedBy(b Board, hash common.Hash, record *Record) (bool, error) {
	if record.Parent == nil || record.Kind() == KindRoot {
		return false, nil
	}
	parent, err := b.GetRecord(*record.Parent)
	if err != nil || parent == nil || parent.Source == nil {
		return false, err
	}
	return slices.Contains(parent.Source.children(), hash), nil
}
