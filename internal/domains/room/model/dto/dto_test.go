package dto_test

import (
	"testing"

	"hotel/internal/domains/room/model"
	"hotel/internal/domains/room/model/dto"
	gModel "hotel/shared/model"
	"hotel/shared/timezone"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestRoomRequest_ToModel(t *testing.T) {
	available := true
	req := dto.RoomRequest{
		HotelID:       "550e8400-e29b-41d4-a716-446655440000",
		RoomNumber:    "101",
		RoomType:      "Deluxe",
		PricePerNight: decimal.RequireFromString("199.99"),
		IsAvailable:   &available,
	}

	room := req.ToModel()

	assert.NotEmpty(t, room.ID, "expected ID to be generated")
	assert.Equal(t, req.HotelID, room.HotelID)
	assert.Equal(t, "101", room.RoomNumber)
	assert.True(t, room.PricePerNight.Equal(decimal.RequireFromString("199.99")))
	assert.True(t, room.IsAvailable)
	assert.False(t, room.CreatedAt.IsZero(), "expected CreatedAt to be set")
	assert.Nil(t, room.UpdatedAt)
}

func TestRoomRequest_Apply(t *testing.T) {
	createdAt := timezone.Now()
	current := model.Room{
		ID:          "room-1",
		HotelID:     "hotel-1",
		RoomNumber:  "101",
		RoomType:    "Single",
		IsAvailable: true,
		Metadata:    gModel.Metadata{CreatedAt: createdAt},
	}

	req := dto.RoomRequest{HotelID: "hotel-2", RoomNumber: "202", RoomType: "Suite", PricePerNight: decimal.NewFromInt(300)}

	updated := req.Apply(current)

	assert.Equal(t, "room-1", updated.ID)
	assert.Equal(t, "hotel-2", updated.HotelID)
	assert.Equal(t, "Suite", updated.RoomType)
	assert.False(t, updated.IsAvailable, "omitted availability replaces the stored value")
	assert.True(t, updated.CreatedAt.Equal(createdAt))
}

func TestRoomResponse_FromModel(t *testing.T) {
	now := timezone.Now()
	room := model.Room{
		ID:            "room-1",
		HotelID:       "hotel-1",
		RoomNumber:    "101",
		RoomType:      "Deluxe",
		PricePerNight: decimal.RequireFromString("99.50"),
		IsAvailable:   true,
		Metadata:      gModel.Metadata{CreatedAt: now},
	}

	var response dto.RoomResponse
	response.FromModel(room)

	assert.Equal(t, room.ID, response.ID)
	assert.Equal(t, room.HotelID, response.HotelID)
	assert.Equal(t, "99.5", response.PricePerNight.String())
	assert.True(t, response.IsAvailable)
	assert.True(t, response.CreatedAt.Equal(now))
	assert.Nil(t, response.UpdatedAt)

	assert.Len(t, dto.FromModels([]model.Room{room, room}), 2)
	assert.Empty(t, dto.FromModels(nil))
}
