// Copyright (c) 2025 Sonic Operations Ltd
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at soniclabs.com/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package goboard

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/0xsoniclabs/bulletin/board"
	"github.com/stretchr/testify/require"
)

func TestConfigurations_AllVariantsAreRegistered(t *testing.T) {
	require.Equal(t,
		[]board.Variant{board.VariantBbolt, board.VariantLevelDb, board.VariantMemory, board.VariantSqlite},
		board.GetAllVariants(),
	)
}

func TestConfigurations_EachVariantCanBeOpenedAndClosed(t *testing.T) {
	for _, variant := range board.GetAllVariants() {
		t.Run(string(variant), func(t *testing.T) {
			b, err := board.NewBoard(board.Parameters{
				Variant:   variant,
				Directory: t.TempDir(),
			})
			require.NoError(t, err)
			roots, err := b.ListPublishedRoots()
			require.NoError(t, err)
			require.Empty(t, roots)
			require.NoError(t, b.Close())
		})
	}
}

func TestConfigurations_PersistentVariantsRequireDirectory(t *testing.T) {
	for _, variant := range []board.Variant{board.VariantBbolt, board.VariantLevelDb, board.VariantSqlite} {
		_, err := board.NewBoard(board.Parameters{Variant: variant})
		require.Error(t, err, "variant %s", variant)
	}
}

func TestConfigurations_UnknownVariantIsRejected(t *testing.T) {
	_, err := board.NewBoard(board.Parameters{Variant: "cpp-memory"})
	require.ErrorIs(t, err, board.ErrUnsupportedVariant)
}

func TestConfigurations_ParametersFromYamlOpenBoard(t *testing.T) {
	dir := t.TempDir()
	config := filepath.Join(dir, "board.yaml")
	content := "variant: ldb\ndirectory: " + filepath.Join(dir, "data") + "\n"
	require.NoError(t, os.WriteFile(config, []byte(content), 0o600))

	params, err := board.ReadParameters(config)
	require.NoError(t, err)
	require.Equal(t, board.VariantLevelDb, params.Variant)

	b, err := board.NewBoard(params)
	require.NoError(t, err)
	require.NoError(t, b.Close())
}
