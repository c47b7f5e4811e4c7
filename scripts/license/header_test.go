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
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCommentHeader_PrefixesAllLines(t *testing.T) {
	header := commentHeader("first\n\nsecond\n")
	require.Equal(t, "// first\n//\n// second\n", header)
}

func TestCollectFiles_SkipsHiddenAndUnderscoreDirectories(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.go", "go.mod", "notes.txt", "sub/b.go", "_skip/c.go", ".hidden/d.go"} {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o700))
		require.NoError(t, os.WriteFile(path, []byte("package x\n"), 0o600))
	}

	files, err := collectFiles(dir)
	require.NoError(t, err)
	require.ElementsMatch(t, []string{
		filepath.Join(dir, "a.go"),
		filepath.Join(dir, "go.mod"),
		filepath.Join(dir, "sub", "b.go"),
	}, files)
}

func TestAddHeader_AddsMissingHeader(t *testing.T) {
	file := filepath.Join(t.TempDir(), "x.go")
	require.NoError(t, os.WriteFile(file, []byte("package x\n"), 0o600))
	header := commentHeader(licenseText)

	ok, err := hasHeader(file, header)
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, addHeader(file, header))
	ok, err = hasHeader(file, header)
	require.NoError(t, err)
	require.True(t, ok)

	content, err := os.ReadFile(file)
	require.NoError(t, err)
	require.True(t, strings.HasSuffix(string(content), "\n\npackage x\n"))
}

func TestAddHeader_ReplacesOutdatedHeader(t *testing.T) {
	file := filepath.Join(t.TempDir(), "x.go")
	old := "// Copyright (c) 2024 Sonic Operations Ltd\n// old terms\n\npackage x\n"
	require.NoError(t, os.WriteFile(file, []byte(old), 0o600))
	header := commentHeader(licenseText)

	require.NoError(t, addHeader(file, header))
	content, err := os.ReadFile(file)
	require.NoError(t, err)
	require.Equal(t, header+"\npackage x\n", string(content))
}

func TestRepository_AllFilesCarryLicenseHeader(t *testing.T) {
	root := filepath.Join("..", "..")
	files, err := collectFiles(root)
	require.NoError(t, err)
	require.NotEmpty(t, files)

	header := commentHeader(licenseText)
	for _, file := range files {
		ok, err := hasHeader(file, header)
		require.NoError(t, err)
		require.True(t, ok, "missing license header in %s", file)
	}
}

func TestHasHeader_RequiresEmptyLineAfterHeader(t *testing.T) {
	file := filepath.Join(t.TempDir(), "x.go")
	header := commentHeader(licenseText)
	require.NoError(t, os.WriteFile(file, []byte(header+"package x\n\nimport \"fmt\"\n"), 0o600))

	ok, err := hasHeader(file, header)
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, addHeader(file, header))
	content, err := os.ReadFile(file)
	require.NoError(t, err)
	require.Equal(t, header+"\npackage x\n\nimport \"fmt\"\n", string(content))

	ok, err = hasHeader(file, header)
	require.NoError(t, err)
	require.True(t, ok)
}
