package vos

import (
	"errors"
	"io/fs"
	"path"
	"syscall"

	"github.com/spf13/afero"
)

// MemOS is a VOS with an in-memory environment and an afero backed
// filesystem that only exists to resolve directory changes.
type MemOS struct {
	*MapEnv
	VIO

	fs  afero.Fs
	dir string

	// GetwdErr, if non-nil, is returned by every call to Getwd.
	GetwdErr error
}

var _ VOS = (*MemOS)(nil)

// NewMemOS creates a MemOS rooted at "/" over the given filesystem. A nil fs
// gets a fresh afero.MemMapFs.
func NewMemOS(vfs afero.Fs, vio VIO) *MemOS {
	if vfs == nil {
		vfs = afero.NewMemMapFs()
	}
	if vio == nil {
		vio = NewNullIO()
	}

	return &MemOS{
		MapEnv: NewMapEnv(),
		VIO:    vio,
		fs:     vfs,
		dir:    "/",
	}
}

// Fs returns the backing filesystem.
func (m *MemOS) Fs() afero.Fs {
	return m.fs
}

// Getwd implements VOS.Getwd.
func (m *MemOS) Getwd() (string, error) {
	if m.GetwdErr != nil {
		return "", m.GetwdErr
	}
	return m.dir, nil
}

// Chdir implements VOS.Chdir.
func (m *MemOS) Chdir(dir string) error {
	if dir == "" {
		return &fs.PathError{Op: "chdir", Path: dir, Err: syscall.ENOENT}
	}

	resolved := dir
	if !path.IsAbs(resolved) {
		resolved = path.Join(m.dir, resolved)
	}
	resolved = path.Clean(resolved)

	stat, err := m.fs.Stat(resolved)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return &fs.PathError{Op: "chdir", Path: dir, Err: syscall.ENOENT}
	case err != nil:
		return &fs.PathError{Op: "chdir", Path: dir, Err: err}
	case !stat.IsDir():
		return &fs.PathError{Op: "chdir", Path: dir, Err: syscall.ENOTDIR}
	default:
		m.dir = resolved
		return nil
	}
}
