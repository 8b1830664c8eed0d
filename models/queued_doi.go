package models

import (
	"time"
)

// QueuedDOI ist ein vorgemerkter Identifier, der beim nächsten geplanten
// Lauf importiert wird.
type QueuedDOI struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`

	DOI        string     `json:"doi" gorm:"uniqueIndex;not null"`
	Imported   bool       `json:"imported" gorm:"index"`
	ImportedAt *time.Time `json:"imported_at,omitempty"`
}

func (QueuedDOI) TableName() string {
	return "queued_dois"
}
