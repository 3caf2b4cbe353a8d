package dto

import (
	"hotel/internal/domains/hotel/model"
	gDto "hotel/shared/dto"
	gModel "hotel/shared/model"

	"github.com/google/uuid"
)

// HotelRequest is the body of both create and update; update replaces every field.
type HotelRequest struct {
	Name        string  `json:"name"        validate:"required,max=255" example:"Grand Hotel"`
	Address     string  `json:"address"     validate:"required"         example:"123 Main Street"`
	Rating      float64 `json:"rating"      validate:"omitempty"        example:"4.5"`
	Description *string `json:"description" validate:"omitempty"        example:"Luxury hotel in city center"`
}

func (h *HotelRequest) ToModel() model.Hotel {
	return model.Hotel{
		ID:          uuid.NewString(),
		Name:        h.Name,
		Address:     h.Address,
		Rating:      h.Rating,
		Description: h.Description,
		Metadata:    gModel.NewMetadata(),
	}
}

// Apply copies the mutable fields onto current, keeping its id and creation stamp.
func (h *HotelRequest) Apply(current model.Hotel) model.Hotel {
	current.Name = h.Name
	current.Address = h.Address
	current.Rating = h.Rating
	current.Description = h.Description

	return current
}

type HotelResponse struct {
	ID          string  `json:"id"          example:"550e8400-e29b-41d4-a716-446655440000"`
	Name        string  `json:"name"        example:"Grand Hotel"`
	Address     string  `json:"address"     example:"123 Main Street"`
	Rating      float64 `json:"rating"      example:"4.5"`
	Description *string `json:"description" example:"Luxury hotel in city center"`
	gDto.Metadata
}

func (h *HotelResponse) FromModel(model model.Hotel) {
	h.ID = model.ID
	h.Name = model.Name
	h.Address = model.Address
	h.Rating = model.Rating
	h.Description = model.Description
	h.Metadata.FromModel(model.Metadata)
}

func FromModels(models []model.Hotel) []HotelResponse {
	res := make([]HotelResponse, len(models))
	for i, mod := range models {
		res[i].FromModel(mod)
	}

	return res
}
