package dto

import (
	"hotel/internal/domains/booking/model"
	gDto "hotel/shared/dto"
	gModel "hotel/shared/model"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BookingRequest is the body of both create and update; update replaces every field.
// Check-out may precede check-in.
type BookingRequest struct {
	RoomID       string          `json:"room_id"        validate:"required,uuid"                                           example:"550e8400-e29b-41d4-a716-446655440000"`
	GuestID      string          `json:"guest_id"       validate:"required,uuid"                                           example:"550e8400-e29b-41d4-a716-446655440000"`
	CheckInDate  time.Time       `json:"check_in_date"  validate:"required"                                                example:"2024-01-10T14:00:00+00:00"`
	CheckOutDate time.Time       `json:"check_out_date" validate:"required"                                                example:"2024-01-15T11:00:00+00:00"`
	TotalPrice   decimal.Decimal `json:"total_price"    validate:"required,dnonneg"                                        example:"199.99"                               swaggertype:"string"`
	Status       model.Status    `json:"status"         validate:"omitempty,oneof=pending confirmed cancelled completed" example:"pending"                              enums:"pending,confirmed,cancelled,completed"`
}

func (b *BookingRequest) ToModel() model.Booking {
	return model.Booking{
		ID:           uuid.NewString(),
		RoomID:       b.RoomID,
		GuestID:      b.GuestID,
		CheckInDate:  b.CheckInDate,
		CheckOutDate: b.CheckOutDate,
		TotalPrice:   b.TotalPrice,
		Status:       b.status(),
		Metadata:     gModel.NewMetadata(),
	}
}

// Apply copies the mutable fields onto current, keeping its id and creation stamp.
func (b *BookingRequest) Apply(current model.Booking) model.Booking {
	current.RoomID = b.RoomID
	current.GuestID = b.GuestID
	current.CheckInDate = b.CheckInDate
	current.CheckOutDate = b.CheckOutDate
	current.TotalPrice = b.TotalPrice
	current.Status = b.status()

	return current
}

func (b *BookingRequest) status() model.Status {
	if b.Status == "" {
		return model.StatusPending
	}

	return b.Status
}

type BookingResponse struct {
	ID           string          `json:"id"             example:"550e8400-e29b-41d4-a716-446655440000"`
	RoomID       string          `json:"room_id"        example:"550e8400-e29b-41d4-a716-446655440000"`
	GuestID      string          `json:"guest_id"       example:"550e8400-e29b-41d4-a716-446655440000"`
	CheckInDate  time.Time       `json:"check_in_date"  example:"2024-01-10T14:00:00+00:00"`
	CheckOutDate time.Time       `json:"check_out_date" example:"2024-01-15T11:00:00+00:00"`
	TotalPrice   decimal.Decimal `json:"total_price"    example:"199.99"                               swaggertype:"string"`
	Status       model.Status    `json:"status"         example:"confirmed"`
	gDto.Metadata
}

func (b *BookingResponse) FromModel(model model.Booking) {
	b.ID = model.ID
	b.RoomID = model.RoomID
	b.GuestID = model.GuestID
	b.CheckInDate = model.CheckInDate
	b.CheckOutDate = model.CheckOutDate
	b.TotalPrice = model.TotalPrice
	b.Status = model.Status
	b.Metadata.FromModel(model.Metadata)
}

func FromModels(models []model.Booking) []BookingResponse {
	res := make([]BookingResponse, len(models))
	for i, mod := range models {
		res[i].FromModel(mod)
	}

	return res
}

const (
	EventCreated = "booking.created"
	EventUpdated = "booking.updated"
	EventDeleted = "booking.deleted"
)

// BookingEvent is published after a booking is written. Booking is empty for deletions.
type BookingEvent struct {
	Type       string           `json:"type"`
	ID         string           `json:"id"`
	Booking    *BookingResponse `json:"booking,omitempty"`
	OccurredAt time.Time        `json:"occurred_at"`
}
