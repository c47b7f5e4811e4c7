// Copyright (c) 2025 Sonic Operations Ltd
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at soniclabs.com/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package main

import (
	"encoding/binary"

	"github.com/0xsoniclabs/bulletin/board"
	"github.com/0xsoniclabs/bulletin/common"
)

// The tool derives SHA-256 content hashes from a kind tag followed by the
// content of the node, so that nodes of different kinds never share a hash.

func leafHash(timestamp uint64, data []byte) common.Hash {
	return common.Sha256(
		[]byte{byte(board.KindLeaf)},
		binary.BigEndian.AppendUint64(nil, timestamp),
		data,
	)
}

func branchHash(left, right common.Hash) common.Hash {
	return common.Sha256([]byte{byte(board.KindBranch)}, left[:], right[:])
}

// rootHash includes the position of the root in the published sequence, so
// equal checkpoints published at different times stay distinct.
func rootHash(position uint64, children []common.Hash, metadata []byte) common.Hash {
	parts := make([][]byte, 0, len(children)+4)
	parts = append(parts, []byte{byte(board.KindRoot)})
	parts = append(parts, binary.BigEndian.AppendUint64(nil, position))
	parts = append(parts, binary.BigEndian.AppendUint32(nil, uint32(len(children))))
	for _, child := range children {
		child := child
		parts = append(parts, child[:])
	}
	parts = append(parts, metadata)
	return common.Sha256(parts...)
}
