package store

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/natefinch/atomic"

	"github.com/anirbanjana883/question-traker/models"
)

const filePerms = 0o644

// FileGateway keeps the document in a single JSON file on disk.
type FileGateway struct {
	path string
}

func NewFileGateway(path string) *FileGateway {
	return &FileGateway{path: path}
}

func (g *FileGateway) Path() string {
	return g.path
}

func (g *FileGateway) Load(ctx context.Context) (*models.Document, error) {
	data, err := os.ReadFile(g.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNoDocument
		}
		return nil, fmt.Errorf("read %s: %w", g.path, err)
	}
	return decodeDocument(data)
}

// Save writes to a temporary file in the same directory and renames it over
// the target.
func (g *FileGateway) Save(ctx context.Context, doc *models.Document) error {
	data, err := encodeDocument(doc)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(g.path), 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	if err := atomic.WriteFile(g.path, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("write %s: %w", g.path, err)
	}

	// atomic.WriteFile creates the temp file with 0600
	if err := os.Chmod(g.path, filePerms); err != nil {
		return fmt.Errorf("chmod %s: %w", g.path, err)
	}
	return nil
}
