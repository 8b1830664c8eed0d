package models

import (
	"time"
)

// Terminal- und Laufzustände eines Importlaufs.
const (
	RunStatusRunning   = "running"
	RunStatusSucceeded = "succeeded"
	RunStatusEmpty     = "empty"
	RunStatusFailed    = "failed"
)

// Auslöser eines Importlaufs.
const (
	RunSourceAPI  = "api"
	RunSourceCron = "cron"
)

// ImportRun protokolliert einen Importlauf von der Anfrage bis zum
// Endzustand.
type ImportRun struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Source string `json:"source" gorm:"index"`
	Status string `json:"status" gorm:"index"`

	// Zähler entlang der Pipeline: angefragt -> geliefert -> verbaut
	Requested   int `json:"requested"`
	Retrieved   int `json:"retrieved"`
	Processed   int `json:"processed"`
	Skipped     int `json:"skipped"`
	TripleCount int `json:"triple_count"`

	FallbackFile string `json:"fallback_file,omitempty"`
	Error        string `json:"error,omitempty" gorm:"type:text"`
}

func (ImportRun) TableName() string {
	return "import_runs"
}
