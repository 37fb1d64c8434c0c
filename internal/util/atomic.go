// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package util

import (
	"fmt"
	"os"
	"path/filepath"
)

// WriteFileAtomic writes data to path through a synced temp file in the same
// directory followed by a rename, so readers see either the old file or the
// new one. Missing parent directories are created with dirPerm.
func WriteFileAtomic(path string, data []byte, filePerm, dirPerm os.FileMode) (err error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to resolve path: %w", err)
	}

	dir := filepath.Dir(abs)
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return fmt.Errorf("failed to create parent directory: %w", err)
	}

	f, err := os.CreateTemp(dir, ".tacnet-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmp := f.Name()
	defer func() {
		if err != nil {
			f.Close()
			os.Remove(tmp)
		}
	}()

	if _, err = f.Write(data); err != nil {
		return fmt.Errorf("failed to write data: %w", err)
	}
	if err = f.Sync(); err != nil {
		return fmt.Errorf("failed to sync data to disk: %w", err)
	}
	if err = f.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	// CreateTemp always uses 0600.
	if err = os.Chmod(tmp, filePerm); err != nil {
		return fmt.Errorf("failed to set file permissions: %w", err)
	}
	if err = os.Rename(tmp, abs); err != nil {
		return fmt.Errorf("failed to rename temp file: %w", err)
	}
	return nil
}
