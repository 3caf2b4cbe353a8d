package model

import (
	"hotel/shared/timezone"
	"time"
)

// Metadata holds the lifecycle stamps shared by every entity. UpdatedAt stays nil until the first update.
type Metadata struct {
	CreatedAt time.Time  `db:"created_at"`
	UpdatedAt *time.Time `db:"updated_at"`
}

func NewMetadata() Metadata {
	return Metadata{
		CreatedAt: timezone.Stamp(),
	}
}

// Touch stamps UpdatedAt with the current time.
func (m *Metadata) Touch() {
	now := timezone.Stamp()
	m.UpdatedAt = &now
}
