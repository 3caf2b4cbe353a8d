package guest_test

import (
	"context"
	"encoding/json"
	"errors"
	"hotel/config"
	"hotel/infras/kafka"
	otelMocks "hotel/infras/otel/mocks"
	bookingMocks "hotel/internal/domains/booking/mocks"
	bookingModel "hotel/internal/domains/booking/model"
	bookingService "hotel/internal/domains/booking/service"
	guestMocks "hotel/internal/domains/guest/mocks"
	guestModel "hotel/internal/domains/guest/model"
	guestService "hotel/internal/domains/guest/service"
	referenceMocks "hotel/internal/domains/reference/mocks"
	handler "hotel/internal/handlers/guest"
	"hotel/shared/cache"
	gDto "hotel/shared/dto"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const guestID = "b6c1d1c2-9a4e-4d55-a1f0-0d9f2b7f1c11"

type fixture struct {
	router   http.Handler
	guests   *guestMocks.MockGuest
	bookings *bookingMocks.MockBooking
}

func setup(t *testing.T) fixture {
	t.Helper()

	ctrl := gomock.NewController(t)
	otl := otelMocks.NewOtel()
	cfg := &config.Config{}
	noCache := cache.NewRedisCache(nil, cfg, otl)

	f := fixture{
		guests:   guestMocks.NewMockGuest(ctrl),
		bookings: bookingMocks.NewMockBooking(ctrl),
	}

	h := handler.New(
		guestService.New(f.guests, cfg, noCache, otl),
		bookingService.New(f.bookings, referenceMocks.NewMockReference(ctrl), cfg, noCache, kafka.New(cfg), otl),
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

func TestHandler_ListGuestBookings(t *testing.T) {
	t.Run("malformed id is an empty list", func(t *testing.T) {
		f := setup(t)

		rec, payload := serve(t, f.router, http.MethodGet, "/v1/guests/not-a-uuid/bookings", "")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, []any{}, payload["data"])
	})

	t.Run("unknown guest is an empty list", func(t *testing.T) {
		f := setup(t)

		f.bookings.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ gDto.QueryParams, filter gDto.FilterGroup) ([]bookingModel.Booking, error) {
				where, args := filter.GetWhereClause()
				assert.Equal(t, "(bookings.guest_id = :guest_id)", where)
				assert.Equal(t, guestID, args["guest_id"])

				return []bookingModel.Booking{}, nil
			})

		rec, payload := serve(t, f.router, http.MethodGet, "/v1/guests/"+guestID+"/bookings", "")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, []any{}, payload["data"])
	})

	t.Run("store failure", func(t *testing.T) {
		f := setup(t)

		f.bookings.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("connection refused"))

		rec, _ := serve(t, f.router, http.MethodGet, "/v1/guests/"+guestID+"/bookings", "")

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}

func TestHandler_CreateGuest(t *testing.T) {
	t.Run("phone is optional", func(t *testing.T) {
		f := setup(t)

		f.guests.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)

		rec, payload := serve(t, f.router, http.MethodPost, "/v1/guests", `{"first_name":"Ada","last_name":"Lovelace","email":"ada@example.com"}`)

		assert.Equal(t, http.StatusCreated, rec.Code)

		data, ok := payload["data"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "Ada", data["first_name"])
		assert.Nil(t, data["phone"])
	})

	t.Run("missing email", func(t *testing.T) {
		f := setup(t)

		rec, payload := serve(t, f.router, http.MethodPost, "/v1/guests", `{"first_name":"Ada","last_name":"Lovelace"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, payload["error"], "email")
	})
}

func TestHandler_GetGuest(t *testing.T) {
	f := setup(t)

	f.guests.EXPECT().Get(gomock.Any(), gomock.Any()).Return(guestModel.Guest{}, nil)

	rec, payload := serve(t, f.router, http.MethodGet, "/v1/guests/"+guestID, "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "guest not found", payload["error"])
}
