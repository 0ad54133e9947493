//go:build !windows

// SPDX-License-Identifier: Apache-2.0

package fsx

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/joomcode/errorx"
	"github.com/stretchr/testify/require"
)

func TestUnixManager_PathExists(t *testing.T) {
	req := require.New(t)
	m := NewManager()

	dir := t.TempDir()
	fi, exists, err := m.PathExists(dir)
	req.NoError(err)
	req.True(exists)
	req.True(fi.IsDir())

	_, exists, err = m.PathExists(filepath.Join(dir, "nope"))
	req.NoError(err)
	req.False(exists)
}

func TestUnixManager_CreateDirectory(t *testing.T) {
	req := require.New(t)
	m := NewManager()

	dir := t.TempDir()

	// recursive creation
	nested := filepath.Join(dir, "a", "b", "c")
	req.NoError(m.CreateDirectory(nested, true))
	req.True(m.IsDirectory(nested))

	// existing directory is a no-op
	req.NoError(m.CreateDirectory(nested, true))

	// non-recursive with a missing parent fails
	err := m.CreateDirectory(filepath.Join(dir, "x", "y"), false)
	req.Error(err)
	req.True(errorx.IsOfType(err, FileNotFoundError))

	// existing file in place of directory fails
	f := filepath.Join(dir, "file")
	req.NoError(os.WriteFile(f, []byte("x"), 0644))
	err = m.CreateDirectory(f, true)
	req.Error(err)
	req.True(errorx.IsOfType(err, FileTypeError))
}

func TestUnixManager_CopyFile(t *testing.T) {
	req := require.New(t)
	m := NewManager()

	dir := t.TempDir()
	src := filepath.Join(dir, "src.txt")
	req.NoError(os.WriteFile(src, []byte("payload"), 0644))

	// copy to a new file
	dst := filepath.Join(dir, "dst.txt")
	req.NoError(m.CopyFile(src, dst, false))
	b, err := os.ReadFile(dst)
	req.NoError(err)
	req.Equal("payload", string(b))

	// overwrite disabled
	err = m.CopyFile(src, dst, false)
	req.Error(err)
	req.True(errorx.IsOfType(err, FileAlreadyExistsError))

	// overwrite enabled
	req.NoError(os.WriteFile(src, []byte("updated"), 0644))
	req.NoError(m.CopyFile(src, dst, true))
	b, err = os.ReadFile(dst)
	req.NoError(err)
	req.Equal("updated", string(b))

	// copy into a directory keeps the source name
	sub := filepath.Join(dir, "sub")
	req.NoError(os.Mkdir(sub, 0755))
	req.NoError(m.CopyFile(src, sub, false))
	req.True(m.IsRegularFile(filepath.Join(sub, "src.txt")))

	// missing source
	err = m.CopyFile(filepath.Join(dir, "missing"), dst, true)
	req.Error(err)
	req.True(errorx.IsOfType(err, FileNotFoundError))
}

func TestUnixManager_ReadWriteFile(t *testing.T) {
	req := require.New(t)
	m := NewManager()

	dir := t.TempDir()
	p := filepath.Join(dir, "state.json")

	req.NoError(m.WriteFile(p, []byte(`{"k":"v"}`)))

	b, err := m.ReadFile(p, 1024)
	req.NoError(err)
	req.Equal(`{"k":"v"}`, string(b))

	// file too large
	_, err = m.ReadFile(p, 2)
	req.Error(err)

	// disabled size check
	b, err = m.ReadFile(p, -1)
	req.NoError(err)
	req.NotEmpty(b)

	// missing file
	_, err = m.ReadFile(filepath.Join(dir, "missing"), 1024)
	req.Error(err)
	req.True(errorx.IsOfType(err, FileNotFoundError))
}

func TestUnixManager_RemoveAll(t *testing.T) {
	req := require.New(t)
	m := NewManager()

	dir := t.TempDir()
	nested := filepath.Join(dir, "a", "b")
	req.NoError(m.CreateDirectory(nested, true))

	req.NoError(m.RemoveAll(filepath.Join(dir, "a")))
	req.False(m.IsDirectory(nested))

	// removing a non-existent path is fine
	req.NoError(m.RemoveAll(filepath.Join(dir, "a")))
}
