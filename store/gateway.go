package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/anirbanjana883/question-traker/models"
)

// Gateway loads and saves the whole document. Implementations must never
// leave a half-written document visible to a concurrent reader.
type Gateway interface {
	Load(ctx context.Context) (*models.Document, error)
	Save(ctx context.Context, doc *models.Document) error
}

func encodeDocument(doc *models.Document) ([]byte, error) {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal sheet: %w", err)
	}
	return append(data, '\n'), nil
}

func decodeDocument(data []byte) (*models.Document, error) {
	var doc models.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptDocument, err)
	}
	if doc.Sheet.ID == "" {
		return nil, fmt.Errorf("%w: missing sheet id", ErrCorruptDocument)
	}
	doc.Normalize()
	return &doc, nil
}
