package fs

import (
	i_fs "io/fs"
	"os"
)

// FS is an interface abstracting the file system operations used to load scripts
// and configuration. This allows for testable code by mocking the file system.
type FS interface {
	Stat(name string) (i_fs.FileInfo, error)
	ReadFile(name string) ([]byte, error)
}

// osFS implements FS using the underlying os package. This is the default
// implementation used for real file system operations.
type osFS struct{}

// NewOSFS creates a new osFS instance.
func NewOSFS() FS {
	return &osFS{}
}

func (f *osFS) Stat(name string) (i_fs.FileInfo, error) {
	return os.Stat(name)
}

func (f *osFS) ReadFile(name string) ([]byte, error) {
	return os.ReadFile(name)
}

// ioFS adapts an io/fs.FS, such as testing/fstest.MapFS or embed.FS.
type ioFS struct {
	fsys i_fs.FS
}

// FromIOFS wraps fsys. Names are slash-separated and unrooted, as io/fs requires.
func FromIOFS(fsys i_fs.FS) FS {
	return &ioFS{fsys: fsys}
}

func (f *ioFS) Stat(name string) (i_fs.FileInfo, error) {
	return i_fs.Stat(f.fsys, name)
}

func (f *ioFS) ReadFile(name string) ([]byte, error) {
	return i_fs.ReadFile(f.fsys, name)
}
