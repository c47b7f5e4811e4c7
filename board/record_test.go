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
	"testing"

	"github.com/0xsoniclabs/bulletin/common"
	"github.com/stretchr/testify/require"
)

func TestKind_String(t *testing.T) {
	require.Equal(t, "leaf", KindLeaf.String())
	require.Equal(t, "branch", KindBranch.String())
	require.Equal(t, "root", KindRoot.String())
	require.Equal(t, "unknown(7)", Kind(7).String())
}

func TestSources_ReportTheirKind(t *testing.T) {
	require.Equal(t, KindLeaf, Leaf{}.Kind())
	require.Equal(t, KindBranch, Branch{}.Kind())
	require.Equal(t, KindRoot, Root{}.Kind())
}

func TestLeaf_Censored_DistinguishesMissingFromEmptyPayload(t *testing.T) {
	require.True(t, Leaf{}.Censored())
	require.False(t, Leaf{Data: []byte{}}.Censored())
	require.False(t, Leaf{Data: []byte{1}}.Censored())
}

func TestChildren_ListsReferencedHashes(t *testing.T) {
	a, b, c := common.Hash{1}, common.Hash{2}, common.Hash{3}
	require.Empty(t, Children(nil))
	require.Empty(t, Children((*Branch)(nil)))
	require.Equal(t, []common.Hash{a, b}, Children(&Branch{Left: a, Right: b}))
	require.Empty(t, Children(Leaf{Data: []byte{1}}))
	require.Equal(t, []common.Hash{a, b}, Children(Branch{Left: a, Right: b}))
	require.Equal(t, []common.Hash{a, b, c}, Children(Root{Children: []common.Hash{a, b, c}}))

	root := Root{Children: []common.Hash{a}}
	Children(root)[0] = c
	require.Equal(t, a, root.Children[0])
}

func TestRecord_IsOrphan(t *testing.T) {
	parent := common.Hash{9}
	tests := []struct {
		record *Record
		orphan bool
	}{
		{&Record{Source: Leaf{}}, true},
		{&Record{Source: Branch{}}, true},
		{&Record{Source: Root{}}, false},
		{&Record{Source: Leaf{}, Parent: &parent}, false},
		{&Record{Source: Branch{}, Parent: &parent}, false},
	}
	for _, test := range tests {
		require.Equal(t, test.orphan, test.record.IsOrphan(), "%v", test.record)
	}
}

func TestRecord_Clone_ProducesIndependentCopy(t *testing.T) {
	require := require.New(t)
	parent := common.Hash{1}
	leaf := &Record{Source: Leaf{Timestamp: 5, Data: []byte{1, 2}}, Parent: &parent}
	root := &Record{Source: Root{Children: []common.Hash{{2}}, Metadata: []byte{3}}}

	leafCopy := leaf.Clone()
	rootCopy := root.Clone()
	require.True(leaf.Equal(leafCopy))
	require.True(root.Equal(rootCopy))

	leafCopy.Source.(Leaf).Data[0] = 7
	*leafCopy.Parent = common.Hash{8}
	rootCopy.Source.(Root).Children[0] = common.Hash{9}
	rootCopy.Source.(Root).Metadata[0] = 9

	require.Equal([]byte{1, 2}, leaf.Source.(Leaf).Data)
	require.Equal(common.Hash{1}, *leaf.Parent)
	require.Equal(common.Hash{2}, root.Source.(Root).Children[0])
	require.Equal([]byte{3}, root.Source.(Root).Metadata)

	var nilRecord *Record
	require.Nil(nilRecord.Clone())
}

func TestRecord_Clone_KeepsCensoredLeafCensored(t *testing.T) {
	record := &Record{Source: Leaf{Timestamp: 1}}
	require.True(t, record.Clone().Source.(Leaf).Censored())
}

func TestRecord_Equal(t *testing.T) {
	p1, p2 := common.Hash{1}, common.Hash{2}
	tests := map[string]struct {
		a, b  *Record
		equal bool
	}{
		"both nil":            {nil, nil, true},
		"one nil":             {&Record{Source: Leaf{}}, nil, false},
		"same leaf":           {&Record{Source: Leaf{Data: []byte{1}}}, &Record{Source: Leaf{Data: []byte{1}}}, true},
		"different data":      {&Record{Source: Leaf{Data: []byte{1}}}, &Record{Source: Leaf{Data: []byte{2}}}, false},
		"censored vs empty":   {&Record{Source: Leaf{}}, &Record{Source: Leaf{Data: []byte{}}}, false},
		"different timestamp": {&Record{Source: Leaf{Timestamp: 1}}, &Record{Source: Leaf{Timestamp: 2}}, false},
		"parent vs none":      {&Record{Source: Leaf{}, Parent: &p1}, &Record{Source: Leaf{}}, false},
		"different parents":   {&Record{Source: Leaf{}, Parent: &p1}, &Record{Source: Leaf{}, Parent: &p2}, false},
		"same parents":        {&Record{Source: Leaf{}, Parent: &p1}, &Record{Source: Leaf{}, Parent: &p1}, true},
		"same branch":         {&Record{Source: Branch{Left: p1, Right: p2}}, &Record{Source: Branch{Left: p1, Right: p2}}, true},
		"swapped branch":      {&Record{Source: Branch{Left: p1, Right: p2}}, &Record{Source: Branch{Left: p2, Right: p1}}, false},
		"leaf vs branch":      {&Record{Source: Leaf{}}, &Record{Source: Branch{}}, false},
		"same root":           {&Record{Source: Root{Children: []common.Hash{p1}}}, &Record{Source: Root{Children: []common.Hash{p1}}}, true},
		"different metadata":  {&Record{Source: Root{Metadata: []byte{1}}}, &Record{Source: Root{Metadata: []byte{2}}}, false},
	}
	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			require.Equal(t, test.equal, test.a.Equal(test.b))
			require.Equal(t, test.equal, test.b.Equal(test.a))
		})
	}
}
