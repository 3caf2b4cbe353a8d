package validator_test

import (
	"hotel/shared/failure"
	"hotel/shared/validator"
	"net/http"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type roomRequest struct {
	HotelID     string          `json:"hotel_id"     validate:"required,uuid"`
	RoomNumber  string          `json:"room_number"  validate:"required"`
	Price       decimal.Decimal `json:"price"        validate:"required,dnonneg"`
	IsAvailable *bool           `json:"is_available" validate:"required"`
	Status      string          `json:"status"       validate:"omitempty,oneof=pending confirmed"`
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		message string
	}{
		{
			name: "valid body",
			body: `{"hotel_id":"550e8400-e29b-41d4-a716-446655440000","room_number":"101","price":"120.50","is_available":false}`,
		},
		{
			name:    "malformed json",
			body:    `{"hotel_id":`,
			message: "failed to decode request body",
		},
		{
			name:    "missing room number",
			body:    `{"hotel_id":"550e8400-e29b-41d4-a716-446655440000","price":"1","is_available":true}`,
			message: "room_number is required",
		},
		{
			name:    "hotel id is not a uuid",
			body:    `{"hotel_id":"abc","room_number":"101","price":"1","is_available":true}`,
			message: "hotel_id must be a valid UUID",
		},
		{
			name:    "missing price",
			body:    `{"hotel_id":"550e8400-e29b-41d4-a716-446655440000","room_number":"101","is_available":true}`,
			message: "price is required",
		},
		{
			name:    "negative price",
			body:    `{"hotel_id":"550e8400-e29b-41d4-a716-446655440000","room_number":"101","price":"-3","is_available":true}`,
			message: "price must not be negative",
		},
		{
			name:    "availability absent",
			body:    `{"hotel_id":"550e8400-e29b-41d4-a716-446655440000","room_number":"101","price":"1"}`,
			message: "is_available is required",
		},
		{
			name:    "unknown status",
			body:    `{"hotel_id":"550e8400-e29b-41d4-a716-446655440000","room_number":"101","price":"1","is_available":true,"status":"lost"}`,
			message: "status must be one of pending confirmed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := roomRequest{}
			err := validator.Validate(strings.NewReader(tt.body), &req)

			if tt.message == "" {
				require.NoError(t, err)

				return
			}

			require.Error(t, err)
			assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
			assert.Contains(t, err.Error(), tt.message)
		})
	}
}

func TestValidate_ZeroPriceIsAccepted(t *testing.T) {
	req := roomRequest{}
	body := `{"hotel_id":"550e8400-e29b-41d4-a716-446655440000","room_number":"101","price":"0","is_available":true}`

	require.NoError(t, validator.Validate(strings.NewReader(body), &req))
	assert.True(t, req.Price.IsZero())
}

func TestValidateVar(t *testing.T) {
	assert.NoError(t, validator.ValidateVar("550e8400-e29b-41d4-a716-446655440000", "uuid"))

	err := validator.ValidateVar("nope", "uuid")
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
}
