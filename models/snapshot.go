package models

import "time"

// SheetSnapshot holds the serialized Document as a single row.
type SheetSnapshot struct {
	ID        string `gorm:"primaryKey;size:64"`
	Body      string `gorm:"type:text;not null"`
	UpdatedAt time.Time
}
