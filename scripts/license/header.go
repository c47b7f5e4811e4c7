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
	"bufio"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// collectFiles lists all Go sources and go.mod files below dir. Directories
// starting with '.' or '_' are skipped, as the Go tool does.
func collectFiles(dir string) ([]string, error) {
	var res []string
	err := filepath.WalkDir(dir, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		name := entry.Name()
		if entry.IsDir() {
			if path != dir && (strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_")) {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasSuffix(name, ".go") || name == "go.mod" {
			res = append(res, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", dir, err)
	}
	return res, nil
}

// commentHeader turns the license text into a block of line comments.
func commentHeader(text string) string {
	var b strings.Builder
	scanner := bufio.NewScanner(strings.NewReader(text))
	for scanner.Scan() {
		if line := scanner.Text(); line == "" {
			b.WriteString("//\n")
		} else {
			b.WriteString("// " + line + "\n")
		}
	}
	return b.String()
}

// hasHeader reports whether the file starts with the header followed by an
// empty line.
func hasHeader(file, header string) (bool, error) {
	content, err := os.ReadFile(file)
	if err != nil {
		return false, fmt.Errorf("failed to read %s: %w", file, err)
	}
	return strings.HasPrefix(string(content), header+"\n"), nil
}

// addHeader puts the header in front of the file, replacing an outdated
// Sonic Operations header if there is one.
func addHeader(file, header string) error {
	info, err := os.Stat(file)
	if err != nil {
		return err
	}
	content, err := os.ReadFile(file)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", file, err)
	}
	body := string(content)
	if rest, found := strings.CutPrefix(body, header); found {
		body = strings.TrimLeft(rest, "\n")
	} else if strings.HasPrefix(body, "// Copyright") && strings.Contains(firstLine(body), "Sonic Operations Ltd") {
		if end := strings.Index(body, "\n\n"); end >= 0 {
			body = body[end+2:]
		}
	}
	return os.WriteFile(file, []byte(header+"\n"+body), info.Mode().Perm())
}

func firstLine(text string) string {
	if i := strings.IndexByte(text, '\n'); i >= 0 {
		return text[:i]
	}
	return text
}
