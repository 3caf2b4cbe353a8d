package room_test

import (
	"context"
	"encoding/json"
	"hotel/config"
	"hotel/infras/kafka"
	otelMocks "hotel/infras/otel/mocks"
	bookingMocks "hotel/internal/domains/booking/mocks"
	bookingModel "hotel/internal/domains/booking/model"
	bookingService "hotel/internal/domains/booking/service"
	referenceMocks "hotel/internal/domains/reference/mocks"
	reference "hotel/internal/domains/reference/service"
	roomMocks "hotel/internal/domains/room/mocks"
	roomModel "hotel/internal/domains/room/model"
	roomService "hotel/internal/domains/room/service"
	handler "hotel/internal/handlers/room"
	"hotel/shared/cache"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const (
	hotelID = "550e8400-e29b-41d4-a716-446655440000"
	roomID  = "7c9e6679-7425-40de-944b-e07fc1f90ae7"
)

type fixture struct {
	router    http.Handler
	rooms     *roomMocks.MockRoom
	bookings  *bookingMocks.MockBooking
	reference *referenceMocks.MockReference
}

func setup(t *testing.T) fixture {
	t.Helper()

	ctrl := gomock.NewController(t)
	otl := otelMocks.NewOtel()
	cfg := &config.Config{}
	noCache := cache.NewRedisCache(nil, cfg, otl)

	f := fixture{
		rooms:     roomMocks.NewMockRoom(ctrl),
		bookings:  bookingMocks.NewMockBooking(ctrl),
		reference: referenceMocks.NewMockReference(ctrl),
	}

	h := handler.New(
		roomService.New(f.rooms, f.reference, cfg, noCache, otl),
		bookingService.New(f.bookings, f.reference, cfg, noCache, kafka.New(cfg), otl),
		otl,
	)

	router := chi.NewRouter()
	router.Route("/v1", h.Router)
	f.router = router

	return f
}

func serve(t *testing.T, router http.Handler, method, target, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(method, target, strings.NewReader(body)))

	payload := map[string]any{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload), rec.Body.String())

	return rec, payload
}

func TestHandler_ListRooms(t *testing.T) {
	tests := []struct {
		name          string
		query         string
		expectedWhere string
		expectedArgs  map[string]any
	}{
		{
			name:          "available only",
			query:         "?is_available=true",
			expectedWhere: "(rooms.is_available = :is_available)",
			expectedArgs:  map[string]any{"is_available": true},
		},
		{
			name:          "unavailable only",
			query:         "?is_available=false",
			expectedWhere: "(rooms.is_available = :is_available)",
			expectedArgs:  map[string]any{"is_available": false},
		},
		{
			name:          "malformed value is ignored",
			query:         "?is_available=maybe",
			expectedWhere: "",
			expectedArgs:  map[string]any{},
		},
		{
			name:          "no filter",
			query:         "",
			expectedWhere: "",
			expectedArgs:  map[string]any{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := setup(t)

			f.rooms.EXPECT().
				GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, _ gDto.QueryParams, filter gDto.FilterGroup) ([]roomModel.Room, error) {
					where, args := filter.GetWhereClause()
					assert.Equal(t, tt.expectedWhere, where)
					assert.Equal(t, tt.expectedArgs, args)

					return []roomModel.Room{}, nil
				})

			rec, payload := serve(t, f.router, http.MethodGet, "/v1/rooms"+tt.query, "")

			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, []any{}, payload["data"])
		})
	}
}

func TestHandler_CreateRoom(t *testing.T) {
	body := `{"hotel_id":"` + hotelID + `","room_number":"101","room_type":"Deluxe","price_per_night":"199.99","is_available":true}`

	t.Run("created", func(t *testing.T) {
		f := setup(t)

		f.reference.EXPECT().Require(gomock.Any(), reference.KindHotel, hotelID).Return(nil)
		f.rooms.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)

		rec, payload := serve(t, f.router, http.MethodPost, "/v1/rooms", body)

		assert.Equal(t, http.StatusCreated, rec.Code)

		data, ok := payload["data"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "199.99", data["price_per_night"])
		assert.Equal(t, true, data["is_available"])
	})

	t.Run("unknown hotel", func(t *testing.T) {
		f := setup(t)

		f.reference.EXPECT().
			Require(gomock.Any(), reference.KindHotel, hotelID).
			Return(failure.NewParentNotFound("hotel", hotelID))

		rec, payload := serve(t, f.router, http.MethodPost, "/v1/rooms", body)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "hotel not found with id: "+hotelID, payload["error"])
	})

	t.Run("negative price", func(t *testing.T) {
		f := setup(t)

		rec, _ := serve(t, f.router, http.MethodPost, "/v1/rooms", strings.Replace(body, "199.99", "-1", 1))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestHandler_ListRoomBookings(t *testing.T) {
	t.Run("bookings of the room", func(t *testing.T) {
		f := setup(t)

		f.bookings.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ gDto.QueryParams, filter gDto.FilterGroup) ([]bookingModel.Booking, error) {
				where, args := filter.GetWhereClause()
				assert.Equal(t, "(bookings.room_id = :room_id)", where)
				assert.Equal(t, roomID, args["room_id"])

				return []bookingModel.Booking{{
					ID:         "a3bb189e-8bf9-3888-9912-ace4e6543002",
					RoomID:     roomID,
					TotalPrice: decimal.RequireFromString("250.00"),
					Status:     bookingModel.StatusConfirmed,
				}}, nil
			})

		rec, payload := serve(t, f.router, http.MethodGet, "/v1/rooms/"+roomID+"/bookings", "")

		assert.Equal(t, http.StatusOK, rec.Code)

		bookings, ok := payload["data"].([]any)
		require.True(t, ok)
		require.Len(t, bookings, 1)
		assert.Equal(t, "confirmed", bookings[0].(map[string]any)["status"])
	})

	t.Run("malformed id is an empty list", func(t *testing.T) {
		f := setup(t)

		rec, payload := serve(t, f.router, http.MethodGet, "/v1/rooms/101/bookings", "")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, []any{}, payload["data"])
	})
}
