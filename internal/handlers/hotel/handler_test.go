package hotel_test

import (
	"context"
	"encoding/json"
	"errors"
	"hotel/config"
	otelMocks "hotel/infras/otel/mocks"
	hotelMocks "hotel/internal/domains/hotel/mocks"
	hotelModel "hotel/internal/domains/hotel/model"
	hotelService "hotel/internal/domains/hotel/service"
	referenceMocks "hotel/internal/domains/reference/mocks"
	reference "hotel/internal/domains/reference/service"
	roomMocks "hotel/internal/domains/room/mocks"
	roomModel "hotel/internal/domains/room/model"
	roomService "hotel/internal/domains/room/service"
	handler "hotel/internal/handlers/hotel"
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

const hotelID = "550e8400-e29b-41d4-a716-446655440000"

type fixture struct {
	router    http.Handler
	hotels    *hotelMocks.MockHotel
	rooms     *roomMocks.MockRoom
	reference *referenceMocks.MockReference
}

func setup(t *testing.T) fixture {
	t.Helper()

	ctrl := gomock.NewController(t)
	otl := otelMocks.NewOtel()
	cfg := &config.Config{}
	noCache := cache.NewRedisCache(nil, cfg, otl)

	f := fixture{
		hotels:    hotelMocks.NewMockHotel(ctrl),
		rooms:     roomMocks.NewMockRoom(ctrl),
		reference: referenceMocks.NewMockReference(ctrl),
	}

	h := handler.New(
		hotelService.New(f.hotels, cfg, noCache, otl),
		roomService.New(f.rooms, f.reference, cfg, noCache, otl),
		otl,
	)

	router := chi.NewRouter()
	router.Route("/v1", h.Router)
	f.router = router

	return f
}

func serve(t *testing.T, router http.Handler, method, target, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	payload := map[string]any{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload), rec.Body.String())

	return rec, payload
}

func TestHandler_CreateHotel(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		f := setup(t)

		f.hotels.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)

		rec, payload := serve(t, f.router, http.MethodPost, "/v1/hotels", `{"name":"Grand Hotel","address":"123 Main Street","rating":4.5}`)

		assert.Equal(t, http.StatusCreated, rec.Code)

		data, ok := payload["data"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "Grand Hotel", data["name"])
		assert.NotEmpty(t, data["id"])
		assert.NotEmpty(t, data["created_at"])
		assert.Nil(t, data["updated_at"])
	})

	t.Run("missing address", func(t *testing.T) {
		f := setup(t)

		rec, payload := serve(t, f.router, http.MethodPost, "/v1/hotels", `{"name":"Grand Hotel"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, payload["error"], "address")
	})

	t.Run("malformed body", func(t *testing.T) {
		f := setup(t)

		rec, _ := serve(t, f.router, http.MethodPost, "/v1/hotels", `{"name":`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestHandler_GetHotel(t *testing.T) {
	t.Run("unknown id", func(t *testing.T) {
		f := setup(t)

		f.hotels.EXPECT().Get(gomock.Any(), gomock.Any()).Return(hotelModel.Hotel{}, nil)

		rec, payload := serve(t, f.router, http.MethodGet, "/v1/hotels/"+hotelID, "")

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "hotel not found", payload["error"])
	})

	t.Run("malformed id is not found", func(t *testing.T) {
		f := setup(t)

		rec, _ := serve(t, f.router, http.MethodGet, "/v1/hotels/42", "")

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("store failure", func(t *testing.T) {
		f := setup(t)

		f.hotels.EXPECT().Get(gomock.Any(), gomock.Any()).Return(hotelModel.Hotel{}, errors.New("connection refused"))

		rec, _ := serve(t, f.router, http.MethodGet, "/v1/hotels/"+hotelID, "")

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}

func TestHandler_UpdateHotel(t *testing.T) {
	f := setup(t)

	f.hotels.EXPECT().Get(gomock.Any(), gomock.Any()).Return(hotelModel.Hotel{}, nil)

	rec, _ := serve(t, f.router, http.MethodPut, "/v1/hotels/"+hotelID, `{"name":"Grand Hotel","address":"123 Main Street"}`)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandler_DeleteHotel(t *testing.T) {
	tests := []struct {
		name     string
		affected int64
		err      error
		expected int
	}{
		{name: "deleted", affected: 1, expected: http.StatusOK},
		{name: "unknown id", affected: 0, expected: http.StatusNotFound},
		{name: "still owns rooms", err: failure.ConflictWithCause("hotel is still referenced", errors.New("fk")), expected: http.StatusConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := setup(t)

			f.hotels.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(tt.affected, tt.err)

			rec, _ := serve(t, f.router, http.MethodDelete, "/v1/hotels/"+hotelID, "")

			assert.Equal(t, tt.expected, rec.Code)
		})
	}
}

func TestHandler_ListHotels(t *testing.T) {
	f := setup(t)

	f.hotels.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, params gDto.QueryParams, filter gDto.FilterGroup) ([]hotelModel.Hotel, error) {
			where, args := filter.GetWhereClause()
			assert.Equal(t, "(LOWER(hotels.name) LIKE LOWER(:name))", where)
			assert.Equal(t, "%grand%", args["name"])
			assert.Equal(t, 2, params.Page)

			return []hotelModel.Hotel{}, nil
		})

	rec, payload := serve(t, f.router, http.MethodGet, "/v1/hotels?name=grand&page=2&limit=5", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []any{}, payload["data"])
}

func TestHandler_ListHotelRooms(t *testing.T) {
	t.Run("unknown hotel is a bad reference", func(t *testing.T) {
		f := setup(t)

		f.reference.EXPECT().
			Require(gomock.Any(), reference.KindHotel, hotelID).
			Return(failure.NewParentNotFound("hotel", hotelID))

		rec, payload := serve(t, f.router, http.MethodGet, "/v1/hotels/"+hotelID+"/rooms", "")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "hotel not found with id: "+hotelID, payload["error"])
	})

	t.Run("prices keep two decimals", func(t *testing.T) {
		f := setup(t)

		f.reference.EXPECT().Require(gomock.Any(), reference.KindHotel, hotelID).Return(nil)
		f.rooms.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]roomModel.Room{{
			ID:            "7c9e6679-7425-40de-944b-e07fc1f90ae7",
			HotelID:       hotelID,
			RoomNumber:    "101",
			RoomType:      "Deluxe",
			PricePerNight: decimal.RequireFromString("199.99"),
			IsAvailable:   true,
		}}, nil)

		rec, payload := serve(t, f.router, http.MethodGet, "/v1/hotels/"+hotelID+"/rooms", "")

		assert.Equal(t, http.StatusOK, rec.Code)

		rooms, ok := payload["data"].([]any)
		require.True(t, ok)
		require.Len(t, rooms, 1)
		assert.Equal(t, "199.99", rooms[0].(map[string]any)["price_per_night"])
	})
}
