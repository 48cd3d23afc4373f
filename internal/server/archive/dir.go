package archive

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/dmitrijs2005/seedstock/internal/filex"
)

// DirArchive writes uploads below a local directory.
type DirArchive struct {
	dir string
	now func() time.Time
}

func NewDirArchive(dir string) *DirArchive {
	return &DirArchive{dir: dir, now: time.Now}
}

func (a *DirArchive) Put(ctx context.Context, name string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	key := NewKey(a.now(), name)
	target := filepath.Join(a.dir, filepath.FromSlash(key))

	if _, err := filex.EnsureDir(filepath.Dir(target)); err != nil {
		return "", fmt.Errorf("create archive dir: %w", err)
	}
	if err := filex.WriteFileAtomic(target, data, 0o640); err != nil {
		return "", fmt.Errorf("write archive file: %w", err)
	}

	return key, nil
}
