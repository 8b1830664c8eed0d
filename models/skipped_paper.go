package models

import (
	"time"
)

// SkippedPaper ist ein Datensatz, der in einem Lauf nicht in den Graphen
// aufgenommen wurde, samt Begründung.
type SkippedPaper struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`

	RunID  uint   `json:"run_id" gorm:"index"`
	DOI    string `json:"doi,omitempty"`
	Reason string `json:"reason"`
}

func (SkippedPaper) TableName() string {
	return "skipped_papers"
}
