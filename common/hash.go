// Copyright (c) 2025 Sonic Operations Ltd
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at soniclabs.com/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package common

import (
	"bytes"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/minio/sha256-simd"
	"golang.org/x/crypto/sha3"
)

// HashSize is the number of bytes of a content hash.
const HashSize = 32

// ErrInvalidEncoding is reported when a text form can not be decoded into a Hash.
var ErrInvalidEncoding = errors.New("invalid hash encoding")

// Hash is the content hash identifying a node on the board. It is a plain
// value type: it may be compared with == and used as a map key.
type Hash [HashSize]byte

// HashFromString parses the 64 character hexadecimal form of a hash.
func HashFromString(s string) (Hash, error) {
	var res Hash
	if len(s) != 2*HashSize {
		return res, fmt.Errorf("%w: expected %d characters, got %d", ErrInvalidEncoding, 2*HashSize, len(s))
	}
	if _, err := hex.Decode(res[:], []byte(s)); err != nil {
		return Hash{}, fmt.Errorf("%w: %v", ErrInvalidEncoding, err)
	}
	return res, nil
}

// HashFromBytes converts a byte slice into a hash. The slice must contain
// exactly HashSize bytes.
func HashFromBytes(data []byte) (Hash, error) {
	var res Hash
	if len(data) != HashSize {
		return res, fmt.Errorf("%w: expected %d bytes, got %d", ErrInvalidEncoding, HashSize, len(data))
	}
	copy(res[:], data)
	return res, nil
}

// String produces the canonical lowercase hexadecimal form of the hash.
func (h Hash) String() string {
	return hex.EncodeToString(h[:])
}

// ToBytes returns a copy of the raw hash bytes.
func (h Hash) ToBytes() []byte {
	return bytes.Clone(h[:])
}

// Compare orders hashes by their byte values.
func (h *Hash) Compare(other *Hash) int {
	return bytes.Compare(h[:], other[:])
}

func (h Hash) MarshalText() ([]byte, error) {
	return []byte(h.String()), nil
}

func (h *Hash) UnmarshalText(text []byte) error {
	res, err := HashFromString(string(text))
	if err != nil {
		return err
	}
	*h = res
	return nil
}

// Keccak256 computes the Keccak256 digest of the concatenation of the given
// byte slices.
func Keccak256(data ...[]byte) Hash {
	hasher := sha3.NewLegacyKeccak256()
	for _, d := range data {
		hasher.Write(d)
	}
	var res Hash
	hasher.Sum(res[:0])
	return res
}

// Sha256 computes the SHA-256 digest of the concatenation of the given byte
// slices. The hex form of the result matches the output of sha256sum.
func Sha256(data ...[]byte) Hash {
	hasher := sha256.New()
	for _, d := range data {
		hasher.Write(d)
	}
	var res Hash
	hasher.Sum(res[:0])
	return res
}
