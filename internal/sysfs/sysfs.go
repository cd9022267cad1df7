// Package sysfs provides best-effort access to the kernel's sysfs tree.
// Every read either succeeds or reports absence; nothing here returns an
// error, since sensor nodes routinely vanish between listing and reading.
package sysfs

import (
	"iter"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// DefaultRoot is where sysfs is mounted on Linux.
const DefaultRoot = "/sys"

// readdirBatch is how many directory entries are fetched per call.
const readdirBatch = 32

// FS is a sysfs tree rooted at a directory of an afero filesystem.
type FS struct {
	fs   afero.Fs
	root string
}

// New returns an FS rooted at root on fs.
func New(fs afero.Fs, root string) *FS {
	return &FS{fs: fs, root: root}
}

// NewOS returns an FS over the real filesystem. An empty root means DefaultRoot.
func NewOS(root string) *FS {
	if root == "" {
		root = DefaultRoot
	}
	return New(afero.NewOsFs(), root)
}

// Root returns the directory the tree is rooted at.
func (f *FS) Root() string {
	return f.root
}

func (f *FS) path(elem []string) string {
	return filepath.Join(append([]string{f.root}, elem...)...)
}

// Read returns the trimmed contents of the file at elem under the root.
// ok is false if the file is missing, unreadable or empty.
func (f *FS) Read(elem ...string) (string, bool) {
	b, err := afero.ReadFile(f.fs, f.path(elem))
	if err != nil || len(b) == 0 {
		return "", false
	}
	return strings.TrimSpace(string(b)), true
}

// Children lazily yields the names of the entries in the directory at elem.
// A missing or unreadable directory yields nothing. Entries are not
// stat'ed, so symlinks are passed through as plain names.
func (f *FS) Children(elem ...string) iter.Seq[string] {
	dir := f.path(elem)
	return func(yield func(string) bool) {
		d, err := f.fs.Open(dir)
		if err != nil {
			return
		}
		defer d.Close()

		for {
			names, err := d.Readdirnames(readdirBatch)
			for _, name := range names {
				if !yield(name) {
					return
				}
			}
			if err != nil || len(names) == 0 {
				return
			}
		}
	}
}
