package dto

import (
	"hotel/shared/model"
	"hotel/shared/timezone"
	"time"
)

type Metadata struct {
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`
}

func (m *Metadata) FromModel(model model.Metadata) {
	m.CreatedAt = timezone.ToAppTime(model.CreatedAt)
	m.UpdatedAt = nil

	if model.UpdatedAt != nil {
		updatedAt := timezone.ToAppTime(*model.UpdatedAt)
		m.UpdatedAt = &updatedAt
	}
}
