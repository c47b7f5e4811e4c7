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
	"math"
	"strconv"
	"testing"

	"github.com/0xsoniclabs/bulletin/common"
	"github.com/stretchr/testify/require"
)

func exampleRecords() map[string]*Record {
	parent := common.Hash{0xAA}
	return map[string]*Record{
		"leaf":            {Source: Leaf{Timestamp: 12, Data: []byte("hello")}},
		"leaf with empty": {Source: Leaf{Timestamp: 13, Data: []byte{}}},
		"censored leaf":   {Source: Leaf{Timestamp: 14}, Parent: &parent},
		"branch":          {Source: Branch{Left: common.Hash{1}, Right: common.Hash{2}}, Parent: &parent},
		"empty root":      {Source: Root{Children: []common.Hash{}, Metadata: []byte{}}},
		"root":            {Source: Root{Children: []common.Hash{{3}, {4}, {5}}, Metadata: []byte("signature")}},
	}
}

func TestEncoding_DecodeRestoresEncodedRecord(t *testing.T) {
	for name, record := range exampleRecords() {
		t.Run(name, func(t *testing.T) {
			data, err := EncodeRecord(record)
			require.NoError(t, err)
			restored, err := DecodeRecord(data)
			require.NoError(t, err)
			require.True(t, record.Equal(restored), "got %v, wanted %v", restored, record)
		})
	}
}

func TestEncoding_CensoredAndEmptyPayloadsAreDistinct(t *testing.T) {
	censored, err := EncodeRecord(&Record{Source: Leaf{Timestamp: 1}})
	require.NoError(t, err)
	empty, err := EncodeRecord(&Record{Source: Leaf{Timestamp: 1, Data: []byte{}}})
	require.NoError(t, err)
	require.NotEqual(t, censored, empty)

	record, err := DecodeRecord(empty)
	require.NoError(t, err)
	require.NotNil(t, record.Source.(Leaf).Data)
}

func TestEncoding_RecordsWithoutSourceCanNotBeEncoded(t *testing.T) {
	_, err := EncodeRecord(nil)
	require.Error(t, err)
	_, err = EncodeRecord(&Record{})
	require.Error(t, err)
}

func TestEncoding_TruncatedDataIsDetected(t *testing.T) {
	for name, record := range exampleRecords() {
		t.Run(name, func(t *testing.T) {
			data, err := EncodeRecord(record)
			require.NoError(t, err)
			for i := 0; i < len(data); i++ {
				_, err := DecodeRecord(data[:i])
				require.ErrorIs(t, err, ErrCorruptRecord, "prefix of length %d", i)
			}
		})
	}
}

func TestEncoding_TrailingDataIsDetected(t *testing.T) {
	data, err := EncodeRecord(&Record{Source: Branch{}})
	require.NoError(t, err)
	_, err = DecodeRecord(append(data, 0))
	require.ErrorIs(t, err, ErrCorruptRecord)
}

func TestEncoding_UnknownKindIsDetected(t *testing.T) {
	_, err := DecodeRecord([]byte{7, 0})
	require.ErrorIs(t, err, ErrCorruptRecord)
}

func TestEncoding_ExcessiveChildCountIsDetected(t *testing.T) {
	_, err := DecodeRecord([]byte{byte(KindRoot), 0, 0xFF, 0xFF, 0xFF, 0xFF})
	require.ErrorIs(t, err, ErrCorruptRecord)
}

func TestEncoding_OversizedFieldsAreRejected(t *testing.T) {
	defer func(limit uint64) { maxFieldLength = limit }(maxFieldLength)
	maxFieldLength = 4

	tests := map[string]*Record{
		"leaf data":     {Source: Leaf{Data: []byte("12345")}},
		"root children": {Source: Root{Children: make([]common.Hash, 5)}},
		"root metadata": {Source: Root{Metadata: []byte("12345")}},
	}
	for name, record := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := EncodeRecord(record)
			require.ErrorIs(t, err, ErrRecordTooLarge)
		})
	}

	_, err := EncodeRecord(&Record{Source: Leaf{Data: []byte("1234")}})
	require.NoError(t, err)
}

func TestEncoding_LengthPrefixLimitIsUint32(t *testing.T) {
	if strconv.IntSize < 64 {
		t.Skip("lengths beyond uint32 can not be represented")
	}
	require.Equal(t, uint64(math.MaxUint32), maxFieldLength)

	tooLong := uint64(math.MaxUint32) + 1
	_, err := appendLength(nil, int(tooLong), "data")
	require.ErrorIs(t, err, ErrRecordTooLarge)

	res, err := appendLength(nil, math.MaxUint32, "data")
	require.NoError(t, err)
	require.Equal(t, []byte{0xFF, 0xFF, 0xFF, 0xFF}, res)
}

func TestEncoding_PointerSourcesAreEncodedAsValues(t *testing.T) {
	data, err := EncodeRecord(&Record{Source: &Branch{Left: common.Hash{1}}})
	require.NoError(t, err)
	record, err := DecodeRecord(data)
	require.NoError(t, err)
	require.Equal(t, Branch{Left: common.Hash{1}}, record.Source)

	_, err = EncodeRecord(&Record{Source: (*Leaf)(nil)})
	require.Error(t, err)
}
