package dto

import (
	"hotel/internal/domains/room/model"
	gDto "hotel/shared/dto"
	gModel "hotel/shared/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RoomRequest is the body of both create and update; update replaces every field.
type RoomRequest struct {
	HotelID       string          `json:"hotel_id"        validate:"required,uuid"     example:"123e4567-e89b-12d3-a456-426614174000"`
	RoomNumber    string          `json:"room_number"     validate:"required,max=255"  example:"101"`
	RoomType      string          `json:"room_type"       validate:"required,max=255"  example:"Deluxe"`
	PricePerNight decimal.Decimal `json:"price_per_night" validate:"required,dnonneg"  example:"199.99"      swaggertype:"string"`
	IsAvailable   *bool           `json:"is_available"    validate:"required"          example:"true"`
}

func (r *RoomRequest) ToModel() model.Room {
	return model.Room{
		ID:            uuid.NewString(),
		HotelID:       r.HotelID,
		RoomNumber:    r.RoomNumber,
		RoomType:      r.RoomType,
		PricePerNight: r.PricePerNight,
		IsAvailable:   r.available(),
		Metadata:      gModel.NewMetadata(),
	}
}

// Apply copies the mutable fields onto current, keeping its id and creation stamp.
func (r *RoomRequest) Apply(current model.Room) model.Room {
	current.HotelID = r.HotelID
	current.RoomNumber = r.RoomNumber
	current.RoomType = r.RoomType
	current.PricePerNight = r.PricePerNight
	current.IsAvailable = r.available()

	return current
}

func (r *RoomRequest) available() bool {
	return r.IsAvailable != nil && *r.IsAvailable
}

type RoomResponse struct {
	ID            string          `json:"id"              example:"123e4567-e89b-12d3-a456-426614174000"`
	HotelID       string          `json:"hotel_id"        example:"123e4567-e89b-12d3-a456-426614174000"`
	RoomNumber    string          `json:"room_number"     example:"101"`
	RoomType      string          `json:"room_type"       example:"Deluxe"`
	PricePerNight decimal.Decimal `json:"price_per_night" example:"199.99"                              swaggertype:"string"`
	IsAvailable   bool            `json:"is_available"    example:"true"`
	gDto.Metadata
}

func (r *RoomResponse) FromModel(model model.Room) {
	r.ID = model.ID
	r.HotelID = model.HotelID
	r.RoomNumber = model.RoomNumber
	r.RoomType = model.RoomType
	r.PricePerNight = model.PricePerNight
	r.IsAvailable = model.IsAvailable
	r.Metadata.FromModel(model.Metadata)
}

func FromModels(models []model.Room) []RoomResponse {
	res := make([]RoomResponse, len(models))
	for i, mod := range models {
		res[i].FromModel(mod)
	}

	return res
}
