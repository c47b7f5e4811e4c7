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
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestConfigurations_RegisteredFactoryIsUsedByNewBoard(t *testing.T) {
	ctrl := gomock.NewController(t)
	mock := NewMockBoard(ctrl)
	variant := Variant("test-registered")
	params := Parameters{Variant: variant, Directory: "somewhere"}

	RegisterBoardFactory(variant, func(p Parameters) (Board, error) {
		require.Equal(t, params, p)
		return mock, nil
	})
	require.Contains(t, GetAllVariants(), variant)

	board, err := NewBoard(params)
	require.NoError(t, err)
	require.Same(t, mock, board)
}

func TestConfigurations_FactoryErrorsAreForwarded(t *testing.T) {
	issue := errors.New("injected")
	variant := Variant("test-failing")
	RegisterBoardFactory(variant, func(Parameters) (Board, error) {
		return nil, issue
	})
	_, err := NewBoard(Parameters{Variant: variant})
	require.ErrorIs(t, err, issue)
}

func TestConfigurations_DuplicateRegistrationPanics(t *testing.T) {
	variant := Variant("test-duplicate")
	factory := func(Parameters) (Board, error) { return nil, nil }
	RegisterBoardFactory(variant, factory)
	require.Panics(t, func() {
		RegisterBoardFactory(variant, factory)
	})
}

func TestConfigurations_UnknownVariantIsReported(t *testing.T) {
	_, err := NewBoard(Parameters{Variant: "unknown"})
	require.ErrorIs(t, err, ErrUnsupportedVariant)
}

func TestReadParameters_ParsesYaml(t *testing.T) {
	path := filepath.Join(t.TempDir(), "board.yaml")
	require.NoError(t, os.WriteFile(path, []byte("variant: sqlite\ndirectory: /tmp/board\n"), 0o600))

	params, err := ReadParameters(path)
	require.NoError(t, err)
	require.Equal(t, Parameters{Variant: VariantSqlite, Directory: "/tmp/board"}, params)
}

func TestReadParameters_DefaultsToMemoryVariant(t *testing.T) {
	path := filepath.Join(t.TempDir(), "board.yaml")
	require.NoError(t, os.WriteFile(path, []byte("directory: data\n"), 0o600))

	params, err := ReadParameters(path)
	require.NoError(t, err)
	require.Equal(t, VariantMemory, params.Variant)
}

func TestReadParameters_ReportsErrors(t *testing.T) {
	dir := t.TempDir()
	_, err := ReadParameters(filepath.Join(dir, "missing.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)

	path := filepath.Join(dir, "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte("variant: [ldb\n"), 0o600))
	_, err = ReadParameters(path)
	require.Error(t, err)
}
