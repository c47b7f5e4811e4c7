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
	"encoding/binary"
	"fmt"
	"math"

	"github.com/0xsoniclabs/bulletin/common"
)

// The binary record format shared by persistent backends:
//
//	kind      1 byte
//	parent    1 byte flag, followed by 32 bytes if the flag is 1
//	leaf:     timestamp uint64, data flag byte, [length uint32, data]
//	branch:   left 32 bytes, right 32 bytes
//	root:     count uint32, count*32 bytes children, length uint32, metadata
//
// All integers are big-endian.

// maxFieldLength is the largest payload, metadata or child list length that
// fits the uint32 length prefixes of the format.
var maxFieldLength uint64 = math.MaxUint32

// EncodeRecord serializes a record into its binary form. Fields exceeding the
// length limits of the format are rejected with ErrRecordTooLarge.
func EncodeRecord(record *Record) ([]byte, error) {
	if record == nil {
		return nil, fmt.Errorf("can not encode record without source")
	}
	source := normalizeSource(record.Source)
	if source == nil {
		return nil, fmt.Errorf("can not encode record without source")
	}
	res := make([]byte, 0, 2+common.HashSize+64)
	res = append(res, byte(source.Kind()))
	if record.Parent == nil {
		res = append(res, 0)
	} else {
		res = append(res, 1)
		res = append(res, record.Parent[:]...)
	}

	var err error
	switch source := source.(type) {
	case Leaf:
		res = binary.BigEndian.AppendUint64(res, source.Timestamp)
		if source.Data == nil {
			res = append(res, 0)
		} else {
			res = append(res, 1)
			if res, err = appendLength(res, len(source.Data), "leaf data"); err != nil {
				return nil, err
			}
			res = append(res, source.Data...)
		}
	case Branch:
		res = append(res, source.Left[:]...)
		res = append(res, source.Right[:]...)
	case Root:
		if res, err = appendLength(res, len(source.Children), "root children"); err != nil {
			return nil, err
		}
		for _, child := range source.Children {
			res = append(res, child[:]...)
		}
		if res, err = appendLength(res, len(source.Metadata), "root metadata"); err != nil {
			return nil, err
		}
		res = append(res, source.Metadata...)
	default:
		return nil, fmt.Errorf("unsupported source type %T", source)
	}
	return res, nil
}

func appendLength(res []byte, length int, field string) ([]byte, error) {
	if uint64(length) > maxFieldLength {
		return nil, fmt.Errorf("%w: %s of length %d exceeds %d", ErrRecordTooLarge, field, length, maxFieldLength)
	}
	return binary.BigEndian.AppendUint32(res, uint32(length)), nil
}

// DecodeRecord parses the binary form produced by EncodeRecord.
func DecodeRecord(data []byte) (*Record, error) {
	r := reader{data: data}
	kind := Kind(r.byte())
	res := &Record{}
	if r.byte() == 1 {
		parent := r.hash()
		res.Parent = &parent
	}

	switch kind {
	case KindLeaf:
		leaf := Leaf{Timestamp: r.uint64()}
		if r.byte() == 1 {
			leaf.Data = append([]byte{}, r.bytes(int(r.uint32()))...)
		}
		res.Source = leaf
	case KindBranch:
		res.Source = Branch{Left: r.hash(), Right: r.hash()}
	case KindRoot:
		count := int(r.uint32())
		if count > len(data)/common.HashSize {
			return nil, fmt.Errorf("%w: root with %d children in %d bytes", ErrCorruptRecord, count, len(data))
		}
		root := Root{Children: make([]common.Hash, 0, count)}
		for i := 0; i < count; i++ {
			root.Children = append(root.Children, r.hash())
		}
		root.Metadata = append([]byte{}, r.bytes(int(r.uint32()))...)
		res.Source = root
	default:
		return nil, fmt.Errorf("%w: unknown kind %v", ErrCorruptRecord, kind)
	}

	if r.err != nil {
		return nil, r.err
	}
	if len(r.data) != 0 {
		return nil, fmt.Errorf("%w: %d trailing bytes", ErrCorruptRecord, len(r.data))
	}
	return res, nil
}

// reader consumes a byte slice, recording the first underflow.
type reader struct {
	data []byte
	err  error
}

func (r *reader) bytes(n int) []byte {
	if r.err != nil {
		return nil
	}
	if n < 0 || n > len(r.data) {
		r.err = fmt.Errorf("%w: need %d bytes, have %d", ErrCorruptRecord, n, len(r.data))
		r.data = nil
		return nil
	}
	res := r.data[:n]
	r.data = r.data[n:]
	return res
}

func (r *reader) byte() byte {
	if b := r.bytes(1); b != nil {
		return b[0]
	}
	return 0
}

func (r *reader) uint32() uint32 {
	if b := r.bytes(4); b != nil {
		return binary.BigEndian.Uint32(b)
	}
	return 0
}

func (r *reader) uint64() uint64 {
	if b := r.bytes(8); b != nil {
		return binary.BigEndian.Uint64(b)
	}
	return 0
}

func (r *reader) hash() common.Hash {
	var res common.Hash
	copy(res[:], r.bytes(common.HashSize))
	return res
}
