// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package file

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 🚫 AccessError is returned when a file cannot be read or written
type AccessError struct {
	Op   string // read, write, stat or backup
	Path string
	Err  error
}

func (e *AccessError) Error() string {
	return e.Op + " " + e.Path + ": " + e.Err.Error()
}

func (e *AccessError) Unwrap() error {
	return e.Err
}

// 🔍 IsAccessError reports whether err is or wraps an *AccessError
func IsAccessError(err error) bool {
	var accessErr *AccessError
	return errors.As(err, &accessErr)
}

func accessError(op, path string, err error) error {
	return errors.WithStack(&AccessError{Op: op, Path: path, Err: err})
}

// 💾 Manager handles all file system operations
type Manager struct {
	baseDir string // Base directory for relative paths
}

// 🏭 NewManager creates a new file manager
func NewManager(baseDir string) *Manager {
	return &Manager{
		baseDir: filepath.Clean(baseDir),
	}
}

// 🔒 Path resolves path against the base directory
func (m *Manager) Path(path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(m.baseDir, path)
}

// 📁 BaseDir returns the directory relative paths resolve against
func (m *Manager) BaseDir() string {
	return m.baseDir
}

// 📖 ReadFile reads the whole file at path
func (m *Manager) ReadFile(ctx context.Context, path string) ([]byte, error) {
	absPath := m.Path(path)
	zerolog.Ctx(ctx).Debug().Str("path", absPath).Msg("reading file")

	content, err := os.ReadFile(absPath)
	if err != nil {
		return nil, accessError("read", absPath, err)
	}
	return content, nil
}

// 🔍 Exists reports whether path exists. Only stat failures other than
// not-exist are errors.
func (m *Manager) Exists(ctx context.Context, path string) (bool, error) {
	_, err := os.Stat(m.Path(path))
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, accessError("stat", m.Path(path), err)
}

// ✍️ WriteFileAtomic replaces the file at path with content.
// The content goes to a temp file in the same directory which is then renamed
// over the target, so the target is either the old or the new content.
// An existing file keeps its permissions. Symlinks are followed and the file
// they point to is rewritten; the link itself stays.
func (m *Manager) WriteFileAtomic(ctx context.Context, path string, content []byte) (err error) {
	absPath, err := resolveLinks(m.Path(path))
	if err != nil {
		return accessError("stat", m.Path(path), err)
	}
	logger := zerolog.Ctx(ctx)

	mode := os.FileMode(0644)
	if info, statErr := os.Stat(absPath); statErr == nil {
		mode = info.Mode().Perm()
	} else if !os.IsNotExist(statErr) {
		return accessError("stat", absPath, statErr)
	}

	tmp, err := os.CreateTemp(filepath.Dir(absPath), "."+filepath.Base(absPath)+".*.tmp")
	if err != nil {
		return accessError("write", absPath, err)
	}
	tmpPath := tmp.Name()

	defer func() {
		if err != nil {
			tmp.Close()
			if rmErr := os.Remove(tmpPath); rmErr != nil && !os.IsNotExist(rmErr) {
				logger.Warn().Err(rmErr).Str("path", tmpPath).Msg("removing temp file")
			}
		}
	}()

	if _, err = tmp.Write(content); err != nil {
		return accessError("write", absPath, err)
	}
	if err = tmp.Sync(); err != nil {
		return accessError("write", absPath, err)
	}
	if err = tmp.Chmod(mode); err != nil {
		return accessError("write", absPath, err)
	}
	if err = tmp.Close(); err != nil {
		return accessError("write", absPath, err)
	}

	// Rename temp file to target (atomic operation)
	if err = os.Rename(tmpPath, absPath); err != nil {
		return accessError("write", absPath, err)
	}

	logger.Debug().Str("path", absPath).Int("bytes", len(content)).Msg("wrote file")
	return nil
}

// resolveLinks follows symlinks in path. A path that does not exist yet is
// returned unchanged.
func resolveLinks(path string) (string, error) {
	resolved, err := filepath.EvalSymlinks(path)
	if err == nil {
		return resolved, nil
	}
	if os.IsNotExist(err) {
		return path, nil
	}
	return "", err
}

// 🗄️ BackupFile copies the file to path + ".bak" and returns the backup path
func (m *Manager) BackupFile(ctx context.Context, path string) (string, error) {
	absPath := m.Path(path)
	backupPath := absPath + ".bak"

	if err := copyFile(absPath, backupPath); err != nil {
		return "", accessError("backup", absPath, err)
	}

	zerolog.Ctx(ctx).Debug().Str("path", absPath).Str("backup", backupPath).Msg("backed up file")
	return backupPath, nil
}

// copyFile copies src to dst, keeping the source permissions
func copyFile(src, dst string) error {
	source, err := os.Open(src)
	if err != nil {
		return errors.Errorf("opening source file: %w", err)
	}
	defer source.Close()

	info, err := source.Stat()
	if err != nil {
		return errors.Errorf("reading source file info: %w", err)
	}

	destination, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return errors.Errorf("creating destination file: %w", err)
	}
	defer destination.Close()

	if _, err := io.Copy(destination, source); err != nil {
		return errors.Errorf("copying file: %w", err)
	}

	return destination.Close()
}
