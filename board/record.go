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
	"bytes"
	"fmt"
	"slices"

	"github.com/0xsoniclabs/bulletin/common"
)

// Kind identifies which type of source produced a hash.
type Kind byte

const (
	KindLeaf   Kind = 1
	KindBranch Kind = 2
	KindRoot   Kind = 3
)

func (k Kind) String() string {
	switch k {
	case KindLeaf:
		return "leaf"
	case KindBranch:
		return "branch"
	case KindRoot:
		return "root"
	}
	return fmt.Sprintf("unknown(%d)", byte(k))
}

// Source describes what produced a hash. It is implemented by Leaf, Branch
// and Root only.
type Source interface {
	Kind() Kind
	// children lists the hashes this source adopts as its children.
	children() []common.Hash
	clone() Source
}

// Leaf is a data item published on the board. A nil Data field marks a
// censored leaf; an empty, non-nil slice is a present but empty payload.
type Leaf struct {
	Timestamp uint64
	Data      []byte
}

func (Leaf) Kind() Kind              { return KindLeaf }
func (Leaf) children() []common.Hash { return nil }
func (l Leaf) clone() Source         { return Leaf{Timestamp: l.Timestamp, Data: cloneBytes(l.Data)} }

// Censored reports whether the payload of the leaf has been removed.
func (l Leaf) Censored() bool { return l.Data == nil }

// Branch combines two existing nodes.
type Branch struct {
	Left  common.Hash
	Right common.Hash
}

func (Branch) Kind() Kind                { return KindBranch }
func (b Branch) children() []common.Hash { return []common.Hash{b.Left, b.Right} }
func (b Branch) clone() Source           { return b }

// Root is a published checkpoint. Children lists the nodes finalized by the
// checkpoint, Metadata is an opaque blob owned by whoever builds roots.
type Root struct {
	Children []common.Hash
	Metadata []byte
}

func (Root) Kind() Kind                { return KindRoot }
func (r Root) children() []common.Hash { return r.Children }
func (r Root) clone() Source {
	return Root{Children: slices.Clone(r.Children), Metadata: cloneBytes(r.Metadata)}
}

// Children lists the hashes the given source adopts as children.
func Children(source Source) []common.Hash {
	source = normalizeSource(source)
	if source == nil {
		return nil
	}
	return slices.Clone(source.children())
}

// Record is the information stored for each hash on the board.
type Record struct {
	Source Source
	// Parent is nil until a later branch or root adopts this node.
	Parent *common.Hash
}

// Clone produces a deep copy of the record.
func (r *Record) Clone() *Record {
	if r == nil {
		return nil
	}
	res := &Record{}
	if r.Source != nil {
		res.Source = r.Source.clone()
	}
	if r.Parent != nil {
		parent := *r.Parent
		res.Parent = &parent
	}
	return res
}

// Kind returns the kind of the record's source.
func (r *Record) Kind() Kind {
	return r.Source.Kind()
}

// IsOrphan reports whether the record is a leaf or branch still awaiting a
// parent. Roots are never orphans.
func (r *Record) IsOrphan() bool {
	return r.Parent == nil && r.Source.Kind() != KindRoot
}

// Equal compares two records by value.
func (r *Record) Equal(other *Record) bool {
	if r == nil || other == nil {
		return r == other
	}
	if (r.Parent == nil) != (other.Parent == nil) {
		return false
	}
	if r.Parent != nil && *r.Parent != *other.Parent {
		return false
	}
	return sourcesEqual(r.Source, other.Source)
}

func sourcesEqual(a, b Source) bool {
	switch a := a.(type) {
	case Leaf:
		b, ok := b.(Leaf)
		return ok && a.Timestamp == b.Timestamp &&
			(a.Data == nil) == (b.Data == nil) && bytes.Equal(a.Data, b.Data)
	case Branch:
		b, ok := b.(Branch)
		return ok && a == b
	case Root:
		b, ok := b.(Root)
		return ok && slices.Equal(a.Children, b.Children) && bytes.Equal(a.Metadata, b.Metadata)
	}
	return a == nil && b == nil
}

func cloneBytes(data []byte) []byte {
	if data == nil {
		return nil
	}
	return append([]byte{}, data...)
}
