package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SubmitterSession tracks one submitter identity, keyed by the exact
// (name, mobile) pair. Rows are created on first entry and touched on every
// return visit; the application never deletes them. Duplicate rows for the
// same identity are possible under concurrent first entries and are tolerated:
// resolution always picks the most recently active row.
type SubmitterSession struct {
	ID              string    `gorm:"type:varchar(64);primaryKey"                              json:"id"`
	SubmitterName   string    `gorm:"type:varchar(100);not null;index:idx_submitter_identity" json:"submitterName"`
	SubmitterMobile string    `gorm:"type:varchar(20);not null;index:idx_submitter_identity"  json:"submitterMobile"`
	CreatedAt       time.Time `json:"createdAt"`
	LastActiveAt    time.Time `gorm:"index" json:"lastActiveAt"`
}

func (s *SubmitterSession) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		uuidString, _ := uuid.NewV7()
		s.ID = uuidString.String()
	}
	return nil
}

// Transient reports whether the session only exists in memory, i.e. it was
// produced by the fallback path and was never written to the store.
func (s *SubmitterSession) Transient() bool {
	return s.ID == ""
}

type SessionOutcome string

const (
	// SessionRefreshed: an existing session row was found and its
	// last-active-at was touched (or the touch failed and the found row was
	// returned unchanged).
	SessionRefreshed SessionOutcome = "refreshed"
	// SessionCreated: no row existed and a new one was inserted.
	SessionCreated SessionOutcome = "created"
	// SessionFallback: the store was unavailable or rejected the write; the
	// session is transient and carries only the given name and mobile.
	SessionFallback SessionOutcome = "fallback"
)

// ResolvedSession is the always-successful result of session resolution.
// Callers treat every outcome as usable for continuing the workflow; the tag
// exists so degradation stays observable.
type ResolvedSession struct {
	Session SubmitterSession `json:"session"`
	Outcome SessionOutcome   `json:"outcome"`
}
