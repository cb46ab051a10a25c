package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/anirbanjana883/question-traker/models"
)

const snapshotKey = "sheet"

// GormGateway stores the serialized document as one row of sheet_snapshots.
// The table must already be migrated (see config.OpenDatabase).
type GormGateway struct {
	db *gorm.DB
}

func NewGormGateway(db *gorm.DB) *GormGateway {
	return &GormGateway{db: db}
}

func (g *GormGateway) Load(ctx context.Context) (*models.Document, error) {
	var snap models.SheetSnapshot
	err := g.db.WithContext(ctx).Where("id = ?", snapshotKey).First(&snap).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoDocument
		}
		return nil, fmt.Errorf("load snapshot: %w", err)
	}
	return decodeDocument([]byte(snap.Body))
}

// Save upserts the single row inside one statement, so readers see either
// the previous body or the new one.
func (g *GormGateway) Save(ctx context.Context, doc *models.Document) error {
	data, err := encodeDocument(doc)
	if err != nil {
		return err
	}

	snap := models.SheetSnapshot{
		ID:   snapshotKey,
		Body: string(data),
	}
	if err := g.db.WithContext(ctx).Save(&snap).Error; err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}
