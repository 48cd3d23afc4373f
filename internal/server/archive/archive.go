// Package archive keeps a copy of every raw CSV upload so an import can be
// audited or replayed later.
package archive

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/dmitrijs2005/seedstock/internal/server/config"
	"github.com/google/uuid"
)

const (
	BackendNone = ""
	BackendDir  = "dir"
	BackendS3   = "s3"
)

// Archive stores an uploaded file and returns the key it was stored under.
type Archive interface {
	Put(ctx context.Context, name string, data []byte) (string, error)
}

// NewKey returns a unique key of the form uploads/yyyy/m/d/<uuid><ext>,
// keeping the extension of the uploaded file name.
func NewKey(now time.Time, name string) string {
	ext := strings.ToLower(path.Ext(name))
	return fmt.Sprintf("uploads/%d/%d/%d/%v%s", now.Year(), now.Month(), now.Day(), uuid.New(), ext)
}

// New builds the archive selected by cfg.ArchiveBackend.
func New(ctx context.Context, cfg *config.Config) (Archive, error) {
	switch cfg.ArchiveBackend {
	case BackendNone:
		return Discard{}, nil
	case BackendDir:
		return NewDirArchive(cfg.ArchiveDir), nil
	case BackendS3:
		return NewS3Archive(ctx, cfg)
	default:
		return nil, fmt.Errorf("unknown archive backend %q", cfg.ArchiveBackend)
	}
}

// Discard drops uploads.
type Discard struct{}

func (Discard) Put(ctx context.Context, name string, data []byte) (string, error) {
	return "", nil
}
