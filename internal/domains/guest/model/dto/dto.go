package dto

import (
	"hotel/internal/domains/guest/model"
	gDto "hotel/shared/dto"
	gModel "hotel/shared/model"

	"github.com/google/uuid"
)

// GuestRequest is the body of both create and update. Email is stored as given.
type GuestRequest struct {
	FirstName string  `json:"first_name" validate:"required,max=255" example:"Jane"`
	LastName  string  `json:"last_name"  validate:"required,max=255" example:"Doe"`
	Email     string  `json:"email"      validate:"required,max=255" example:"jane@example.com"`
	Phone     *string `json:"phone"      validate:"omitempty,max=255" example:"+1 555 0100"`
}

func (g *GuestRequest) ToModel() model.Guest {
	return model.Guest{
		ID:        uuid.NewString(),
		FirstName: g.FirstName,
		LastName:  g.LastName,
		Email:     g.Email,
		Phone:     g.Phone,
		Metadata:  gModel.NewMetadata(),
	}
}

// Apply copies the mutable fields onto current, keeping its id and creation stamp.
func (g *GuestRequest) Apply(current model.Guest) model.Guest {
	current.FirstName = g.FirstName
	current.LastName = g.LastName
	current.Email = g.Email
	current.Phone = g.Phone

	return current
}

type GuestResponse struct {
	ID        string  `json:"id"         example:"550e8400-e29b-41d4-a716-446655440000"`
	FirstName string  `json:"first_name" example:"Jane"`
	LastName  string  `json:"last_name"  example:"Doe"`
	Email     string  `json:"email"      example:"jane@example.com"`
	Phone     *string `json:"phone"      example:"+1 555 0100"`
	gDto.Metadata
}

func (g *GuestResponse) FromModel(model model.Guest) {
	g.ID = model.ID
	g.FirstName = model.FirstName
	g.LastName = model.LastName
	g.Email = model.Email
	g.Phone = model.Phone
	g.Metadata.FromModel(model.Metadata)
}

func FromModels(models []model.Guest) []GuestResponse {
	res := make([]GuestResponse, len(models))
	for i, mod := range models {
		res[i].FromModel(mod)
	}

	return res
}
