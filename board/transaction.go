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

	"github.com/0xsoniclabs/bulletin/common"
)

// Entry is a single new hash pending to be committed.
type Entry struct {
	Hash   common.Hash
	Source Source
}

// Transaction is an ordered batch of new hashes to be committed atomically.
// Entries may refer to hashes introduced by earlier entries of the same
// transaction, but never to later ones.
type Transaction struct {
	Entries []Entry
}

// Add appends an entry to the transaction.
func (t *Transaction) Add(hash common.Hash, source Source) *Transaction {
	t.Entries = append(t.Entries, Entry{Hash: hash, Source: source})
	return t
}

func (t *Transaction) AddLeaf(hash common.Hash, timestamp uint64, data []byte) *Transaction {
	return t.Add(hash, Leaf{Timestamp: timestamp, Data: data})
}

func (t *Transaction) AddBranch(hash, left, right common.Hash) *Transaction {
	return t.Add(hash, Branch{Left: left, Right: right})
}

func (t *Transaction) AddRoot(hash common.Hash, metadata []byte, children ...common.Hash) *Transaction {
	return t.Add(hash, Root{Children: children, Metadata: metadata})
}

// Len returns the number of pending entries.
func (t *Transaction) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Entries)
}

// Lookup is the read access to already stored records a transaction is
// checked against.
type Lookup func(common.Hash) (*Record, error)

// Plan is the validated effect of a transaction: the records to insert and
// the parent links to set on existing records. Backends apply a plan in one
// atomic step.
type Plan struct {
	// Inserts lists the new records in transaction order.
	Inserts []Entry
	// Adoptions maps already stored children to the hash of their new parent.
	Adoptions map[common.Hash]common.Hash
	// Roots lists the new published roots in transaction order.
	Roots []common.Hash
}

// Validate checks the transaction against the stored state provided by lookup
// and produces the plan to apply. Any violation is reported as an error
// wrapping ErrMalformedTransaction; errors of lookup are forwarded.
func (t *Transaction) Validate(lookup Lookup) (*Plan, error) {
	plan := &Plan{Adoptions: map[common.Hash]common.Hash{}}
	if t == nil {
		return plan, nil
	}

	type pendingNode struct {
		kind    Kind
		adopted bool
	}
	pending := make(map[common.Hash]*pendingNode, len(t.Entries))

	for i, entry := range t.Entries {
		source := normalizeSource(entry.Source)
		if source == nil {
			return nil, fmt.Errorf("%w: entry %d (%v) has no valid source", ErrMalformedTransaction, i, entry.Hash)
		}
		if _, found := pending[entry.Hash]; found {
			return nil, fmt.Errorf("%w: entry %d duplicates hash %v of the same transaction", ErrMalformedTransaction, i, entry.Hash)
		}
		existing, err := lookup(entry.Hash)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, fmt.Errorf("%w: entry %d re-introduces stored hash %v", ErrMalformedTransaction, i, entry.Hash)
		}

		children := source.children()
		seen := make(map[common.Hash]struct{}, len(children))
		for _, child := range children {
			if _, dup := seen[child]; dup {
				return nil, fmt.Errorf("%w: entry %d (%v) names child %v twice", ErrMalformedTransaction, i, entry.Hash, child)
			}
			seen[child] = struct{}{}

			if node, found := pending[child]; found {
				if node.kind == KindRoot {
					return nil, fmt.Errorf("%w: entry %d (%v) adopts root %v", ErrMalformedTransaction, i, entry.Hash, child)
				}
				if node.adopted {
					return nil, fmt.Errorf("%w: entry %d (%v) adopts %v which already has a parent", ErrMalformedTransaction, i, entry.Hash, child)
				}
				node.adopted = true
				continue
			}
			if _, found := plan.Adoptions[child]; found {
				return nil, fmt.Errorf("%w: entry %d (%v) adopts %v which already has a parent", ErrMalformedTransaction, i, entry.Hash, child)
			}
			record, err := lookup(child)
			if err != nil {
				return nil, err
			}
			if record == nil {
				return nil, fmt.Errorf("%w: entry %d (%v) references unknown child %v", ErrMalformedTransaction, i, entry.Hash, child)
			}
			if record.Kind() == KindRoot {
				return nil, fmt.Errorf("%w: entry %d (%v) adopts root %v", ErrMalformedTransaction, i, entry.Hash, child)
			}
			if record.Parent != nil {
				return nil, fmt.Errorf("%w: entry %d (%v) adopts %v which already has parent %v", ErrMalformedTransaction, i, entry.Hash, child, *record.Parent)
			}
			plan.Adoptions[child] = entry.Hash
		}

		pending[entry.Hash] = &pendingNode{kind: source.Kind()}
		plan.Inserts = append(plan.Inserts, Entry{Hash: entry.Hash, Source: source.clone()})
		if source.Kind() == KindRoot {
			plan.Roots = append(plan.Roots, entry.Hash)
		}
	}
	return plan, nil
}

// normalizeSource converts pointers to sources into values. Nil sources,
// including typed nil pointers, yield nil.
func normalizeSource(source Source) Source {
	switch s := source.(type) {
	case Leaf, Branch, Root:
		return s
	case *Leaf:
		if s != nil {
			return *s
		}
	case *Branch:
		if s != nil {
			return *s
		}
	case *Root:
		if s != nil {
			return *s
		}
	}
	return nil
}

// NewRecords resolves the records inserted by the plan, including the parent
// links set by later entries of the same transaction.
func (p *Plan) NewRecords() map[common.Hash]*Record {
	res := make(map[common.Hash]*Record, len(p.Inserts))
	for _, entry := range p.Inserts {
		res[entry.Hash] = &Record{Source: entry.Source}
	}
	for _, entry := range p.Inserts {
		for _, child := range entry.Source.children() {
			if record, found := res[child]; found {
				parent := entry.Hash
				record.Parent = &parent
			}
		}
	}
	return res
}
