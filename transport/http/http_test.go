package http_test

import (
	"bytes"
	"encoding/json"
	"hotel/config"
	"hotel/infras/kafka"
	otelMocks "hotel/infras/otel/mocks"
	bookingRepository "hotel/internal/domains/booking/repository"
	bookingService "hotel/internal/domains/booking/service"
	guestRepository "hotel/internal/domains/guest/repository"
	guestService "hotel/internal/domains/guest/service"
	hotelRepository "hotel/internal/domains/hotel/repository"
	hotelService "hotel/internal/domains/hotel/service"
	referenceService "hotel/internal/domains/reference/service"
	roomRepository "hotel/internal/domains/room/repository"
	roomService "hotel/internal/domains/room/service"
	bookingHandler "hotel/internal/handlers/booking"
	guestHandler "hotel/internal/handlers/guest"
	hotelHandler "hotel/internal/handlers/hotel"
	roomHandler "hotel/internal/handlers/room"
	"hotel/internal/testutil"
	"hotel/shared/cache"
	transport "hotel/transport/http"
	"hotel/transport/http/middleware"
	"hotel/transport/http/router"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const apiKey = "secret"

type client struct {
	t       *testing.T
	handler http.Handler
}

func (c client) do(method, target string, body any) (int, map[string]any) {
	c.t.Helper()

	var reader bytes.Buffer
	if body != nil {
		require.NoError(c.t, json.NewEncoder(&reader).Encode(body))
	}

	req := httptest.NewRequest(method, target, &reader)
	req.Header.Set("X-API-Key", apiKey)

	rec := httptest.NewRecorder()
	c.handler.ServeHTTP(rec, req)

	payload := map[string]any{}
	require.NoError(c.t, json.Unmarshal(rec.Body.Bytes(), &payload), rec.Body.String())

	return rec.Code, payload
}

func (c client) data(method, target string, body any, expected int) map[string]any {
	c.t.Helper()

	code, payload := c.do(method, target, body)
	require.Equal(c.t, expected, code, payload)

	data, ok := payload["data"].(map[string]any)
	require.True(c.t, ok)

	return data
}

func (c client) list(target string) []any {
	c.t.Helper()

	code, payload := c.do(http.MethodGet, target, nil)
	require.Equal(c.t, http.StatusOK, code, payload)

	data, ok := payload["data"].([]any)
	require.True(c.t, ok)

	return data
}

func newServer(t *testing.T) client {
	t.Helper()

	conn := testutil.Postgres(t)
	otl := otelMocks.NewOtel()

	cfg := &config.Config{}
	cfg.App.APIKey = apiKey

	noCache := cache.NewRedisCache(nil, cfg, otl)
	events := kafka.New(cfg)

	hotels := hotelRepository.New(conn, otl)
	rooms := roomRepository.New(conn, otl)
	guests := guestRepository.New(conn, otl)
	bookings := bookingRepository.New(conn, otl)
	reference := referenceService.New(hotels, rooms, guests, otl)

	hotelSvc := hotelService.New(hotels, cfg, noCache, otl)
	roomSvc := roomService.New(rooms, reference, cfg, noCache, otl)
	guestSvc := guestService.New(guests, cfg, noCache, otl)
	bookingSvc := bookingService.New(bookings, reference, cfg, noCache, events, otl)

	routes := router.New(router.DomainHandlers{
		Hotel:   hotelHandler.New(hotelSvc, roomSvc, otl),
		Room:    roomHandler.New(roomSvc, bookingSvc, otl),
		Guest:   guestHandler.New(guestSvc, bookingSvc, otl),
		Booking: bookingHandler.New(bookingSvc, otl),
	}, middleware.NewAuthMiddleware(otl, cfg))

	server := transport.New(cfg, routes, middleware.NewAppMiddleware(otl, cfg, cache.NewCounter(nil, otl)), otl, events)

	return client{t: t, handler: server.Handler()}
}

func TestServer_BookingLifecycle(t *testing.T) {
	c := newServer(t)

	hotel := c.data(http.MethodPost, "/v1/hotels", map[string]any{
		"name": "Grand Hotel", "address": "123 Main Street", "rating": 4.5,
	}, http.StatusCreated)
	hotelID := hotel["id"].(string)

	fetched := c.data(http.MethodGet, "/v1/hotels/"+hotelID, nil, http.StatusOK)
	assert.Equal(t, "Grand Hotel", fetched["name"])
	assert.Nil(t, fetched["updated_at"])

	assert.Empty(t, c.list("/v1/hotels/"+hotelID+"/rooms"))

	room := c.data(http.MethodPost, "/v1/rooms", map[string]any{
		"hotel_id": hotelID, "room_number": "101", "room_type": "Deluxe",
		"price_per_night": "199.99", "is_available": true,
	}, http.StatusCreated)
	roomID := room["id"].(string)

	guest := c.data(http.MethodPost, "/v1/guests", map[string]any{
		"first_name": "Jane", "last_name": "Doe", "email": "jane@example.com",
	}, http.StatusCreated)
	guestID := guest["id"].(string)

	booking := c.data(http.MethodPost, "/v1/bookings", map[string]any{
		"room_id": roomID, "guest_id": guestID,
		"check_in_date": "2024-01-10T14:00:00Z", "check_out_date": "2024-01-15T11:00:00Z",
		"total_price": "999.95", "status": "pending",
	}, http.StatusCreated)

	roomBookings := c.list("/v1/rooms/" + roomID + "/bookings")
	require.Len(t, roomBookings, 1)
	assert.Equal(t, booking["id"], roomBookings[0].(map[string]any)["id"])

	code, _ := c.do(http.MethodDelete, "/v1/hotels/"+hotelID, nil)
	assert.Equal(t, http.StatusConflict, code, "a hotel with rooms is kept")

	kept := c.data(http.MethodGet, "/v1/rooms/"+roomID, nil, http.StatusOK)
	assert.Equal(t, "199.99", kept["price_per_night"])
	assert.Equal(t, hotelID, kept["hotel_id"])
}

func TestServer_ParentChecks(t *testing.T) {
	c := newServer(t)

	const missing = "00000000-0000-4000-8000-000000000000"

	code, payload := c.do(http.MethodPost, "/v1/rooms", map[string]any{
		"hotel_id": missing, "room_number": "101", "room_type": "Deluxe",
		"price_per_night": "80.00", "is_available": true,
	})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "hotel not found with id: "+missing, payload["error"])
	assert.Empty(t, c.list("/v1/rooms"))

	code, _ = c.do(http.MethodGet, "/v1/hotels/"+missing+"/rooms", nil)
	assert.Equal(t, http.StatusBadRequest, code)

	assert.Empty(t, c.list("/v1/guests/"+missing+"/bookings"))
	assert.Empty(t, c.list("/v1/rooms/not-a-uuid/bookings"))
}

func TestServer_UpdateAndDelete(t *testing.T) {
	c := newServer(t)

	guest := c.data(http.MethodPost, "/v1/guests", map[string]any{
		"first_name": "Jane", "last_name": "Doe", "email": "jane@example.com", "phone": "+1 555 0100",
	}, http.StatusCreated)
	guestID := guest["id"].(string)

	updated := c.data(http.MethodPut, "/v1/guests/"+guestID, map[string]any{
		"first_name": "Janet", "last_name": "Doe", "email": "janet@example.com",
	}, http.StatusOK)
	assert.Equal(t, "Janet", updated["first_name"])
	assert.Nil(t, updated["phone"])
	assert.NotNil(t, updated["updated_at"])

	stored := c.data(http.MethodGet, "/v1/guests/"+guestID, nil, http.StatusOK)
	assert.Equal(t, updated["updated_at"], stored["updated_at"])

	code, _ := c.do(http.MethodDelete, "/v1/guests/"+guestID, nil)
	assert.Equal(t, http.StatusOK, code)

	code, _ = c.do(http.MethodDelete, "/v1/guests/"+guestID, nil)
	assert.Equal(t, http.StatusNotFound, code)

	code, _ = c.do(http.MethodGet, "/v1/guests/"+guestID, nil)
	assert.Equal(t, http.StatusNotFound, code)
}
