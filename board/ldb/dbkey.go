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

	"github.com/0xsoniclabs/bulletin/common"
)

// TableSpace divides the LevelDB key space into separate tables.
type TableSpace byte

const (
	// RecordTable maps hashes to their snappy compressed encoded records.
	RecordTable TableSpace = 'r'
	// OrphanTable holds an empty value for every leaf and branch without parent.
	OrphanTable TableSpace = 'o'
	// RootTable maps the big-endian sequence number of a published root to its hash.
	RootTable TableSpace = 'p'
	// MetaTable holds board wide counters.
	MetaTable TableSpace = 'm'
)

const seqSize = 8

// hashKey is a table space prefixed hash.
type hashKey [1 + common.HashSize]byte

func newHashKey(table TableSpace, hash common.Hash) hashKey {
	var k hashKey
	k[0] = byte(table)
	copy(k[1:], hash[:])
	return k
}

func (k *hashKey) hash() common.Hash {
	var res common.Hash
	copy(res[:], k[1:])
	return res
}

// seqKey is a table space prefixed sequence number.
type seqKey [1 + seqSize]byte

func newSeqKey(table TableSpace, seq uint64) seqKey {
	var k seqKey
	k[0] = byte(table)
	binary.BigEndian.PutUint64(k[1:], seq)
	return k
}

var rootCountKey = []byte{byte(MetaTable), 'r', 'o', 'o', 't', 's'}
