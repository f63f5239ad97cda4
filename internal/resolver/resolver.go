// Package resolver finds and reads markup documents
package resolver

import (
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/cockroachdb/errors"
)

type File struct {
	Path string
	Code []byte
}

func New(fsys fs.FS) *Resolver {
	return &Resolver{fsys}
}

type Resolver struct {
	fsys fs.FS
}

// Read a document by its path from the root
func (r *Resolver) Read(docPath string) (*File, error) {
	relPath := path.Clean(docPath)
	code, err := fs.ReadFile(r.fsys, relPath)
	if err != nil {
		return nil, errors.Wrapf(err, "resolver: unable to read %s", relPath)
	}
	return &File{
		Path: relPath,
		Code: code,
	}, nil
}

// Documents lists the files under dir with one of the extensions in sorted
// order. Directories named in skip aren't descended into.
func (r *Resolver) Documents(dir string, extensions []string, skip ...string) ([]string, error) {
	dir = path.Clean(dir)
	skipped := map[string]bool{}
	for _, s := range skip {
		if s != "" {
			skipped[path.Clean(s)] = true
		}
	}
	var paths []string
	err := fs.WalkDir(r.fsys, dir, func(p string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() {
			if p != dir && (skipped[p] || strings.HasPrefix(entry.Name(), ".")) {
				return fs.SkipDir
			}
			return nil
		}
		for _, ext := range extensions {
			if path.Ext(p) == ext {
				paths = append(paths, p)
				break
			}
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "resolver: unable to list documents in %q", dir)
	}
	sort.Strings(paths)
	return paths, nil
}
