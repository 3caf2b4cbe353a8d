package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"hotel/config"
	otelMocks "hotel/infras/otel/mocks"
	referenceMocks "hotel/internal/domains/reference/mocks"
	reference "hotel/internal/domains/reference/service"
	"hotel/internal/domains/room/mocks"
	"hotel/internal/domains/room/model"
	"hotel/internal/domains/room/model/dto"
	"hotel/internal/domains/room/service"
	cacheMocks "hotel/shared/cache/mocks"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"
	gModel "hotel/shared/model"
)

const (
	hotelID = "123e4567-e89b-12d3-a456-426614174000"
	roomID  = "550e8400-e29b-41d4-a716-446655440000"
)

var errStore = errors.New("connection refused")

type fixture struct {
	svc       service.Room
	repo      *mocks.MockRoom
	reference *referenceMocks.MockReference
	cache     *cacheMocks.MockRedisCache
}

func setup(t *testing.T) fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	f := fixture{
		repo:      mocks.NewMockRoom(ctrl),
		reference: referenceMocks.NewMockReference(ctrl),
		cache:     cacheMocks.NewMockRedisCache(ctrl),
	}
	f.svc = service.New(f.repo, f.reference, &config.Config{}, f.cache, otelMocks.NewOtel())

	return f
}

func available(b bool) *bool {
	return &b
}

func roomRequest() dto.RoomRequest {
	return dto.RoomRequest{
		HotelID:       hotelID,
		RoomNumber:    "101",
		RoomType:      "Deluxe",
		PricePerNight: decimal.RequireFromString("199.99"),
		IsAvailable:   available(true),
	}
}

func storedRoom() model.Room {
	return model.Room{
		ID:            roomID,
		HotelID:       hotelID,
		RoomNumber:    "101",
		RoomType:      "Deluxe",
		PricePerNight: decimal.RequireFromString("199.99"),
		IsAvailable:   true,
		Metadata:      gModel.Metadata{CreatedAt: time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC)},
	}
}

func TestRoomService_Create(t *testing.T) {
	t.Run("hotel exists", func(t *testing.T) {
		f := setup(t)

		gomock.InOrder(
			f.reference.EXPECT().Require(gomock.Any(), reference.KindHotel, hotelID).Return(nil),
			f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil),
		)

		res, err := f.svc.Create(context.Background(), roomRequest())

		require.NoError(t, err)
		assert.NotEmpty(t, res.ID)
		assert.Equal(t, hotelID, res.HotelID)
		assert.Equal(t, "199.99", res.PricePerNight.String())
		assert.True(t, res.IsAvailable)
		assert.Nil(t, res.UpdatedAt)
	})

	t.Run("missing hotel fails without writing", func(t *testing.T) {
		f := setup(t)

		f.reference.EXPECT().
			Require(gomock.Any(), reference.KindHotel, hotelID).
			Return(failure.NewParentNotFound("hotel", hotelID))

		_, err := f.svc.Create(context.Background(), roomRequest())

		parent, ok := failure.IsParentNotFound(err)
		require.True(t, ok)
		assert.Equal(t, "hotel", parent.Kind)
		assert.Equal(t, hotelID, parent.ID)
	})

	t.Run("reference check failure", func(t *testing.T) {
		f := setup(t)

		f.reference.EXPECT().Require(gomock.Any(), gomock.Any(), gomock.Any()).Return(errStore)

		_, err := f.svc.Create(context.Background(), roomRequest())

		assert.ErrorIs(t, err, errStore)
		_, ok := failure.IsParentNotFound(err)
		assert.False(t, ok)
	})
}

func TestRoomService_Update(t *testing.T) {
	t.Run("re-checks the hotel even when unchanged", func(t *testing.T) {
		f := setup(t)

		req := roomRequest()
		req.PricePerNight = decimal.RequireFromString("149.50")
		req.IsAvailable = available(false)

		gomock.InOrder(
			f.reference.EXPECT().Require(gomock.Any(), reference.KindHotel, hotelID).Return(nil),
			f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(storedRoom(), nil),
			f.repo.EXPECT().
				Update(gomock.Any(), gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) (int64, error) {
					price, ok := fields[model.FieldPricePerNight].(decimal.Decimal)
					require.True(t, ok)
					assert.True(t, price.Equal(decimal.RequireFromString("149.5")))
					assert.Equal(t, false, fields[model.FieldIsAvailable])
					assert.Equal(t, hotelID, fields[model.FieldHotelID])

					return 1, nil
				}),
			f.cache.EXPECT().Delete(gomock.Any(), "room:get:"+roomID).Return(nil),
		)

		res, err := f.svc.Update(context.Background(), roomID, req)

		require.NoError(t, err)
		require.NotNil(t, res)
		assert.False(t, res.IsAvailable)
		assert.NotNil(t, res.UpdatedAt)
	})

	t.Run("missing hotel is reported before looking up the room", func(t *testing.T) {
		f := setup(t)

		f.reference.EXPECT().
			Require(gomock.Any(), reference.KindHotel, hotelID).
			Return(failure.NewParentNotFound("hotel", hotelID))

		res, err := f.svc.Update(context.Background(), roomID, roomRequest())

		assert.Nil(t, res)
		_, ok := failure.IsParentNotFound(err)
		assert.True(t, ok)
	})

	t.Run("unknown room", func(t *testing.T) {
		f := setup(t)

		f.reference.EXPECT().Require(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Room{}, nil)

		res, err := f.svc.Update(context.Background(), roomID, roomRequest())

		assert.NoError(t, err)
		assert.Nil(t, res)
	})
}

func TestRoomService_ListByHotel(t *testing.T) {
	t.Run("hotel without rooms gives an empty list", func(t *testing.T) {
		f := setup(t)

		f.reference.EXPECT().Require(gomock.Any(), reference.KindHotel, hotelID).Return(nil)
		f.repo.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ gDto.QueryParams, filter gDto.FilterGroup) ([]model.Room, error) {
				where, args := filter.GetWhereClause()
				assert.Equal(t, "(rooms.hotel_id = :hotel_id)", where)
				assert.Equal(t, hotelID, args["hotel_id"])

				return []model.Room{}, nil
			})

		res, err := f.svc.ListByHotel(context.Background(), hotelID, gDto.QueryParams{})

		require.NoError(t, err)
		assert.NotNil(t, res)
		assert.Empty(t, res)
	})

	t.Run("unknown hotel fails", func(t *testing.T) {
		f := setup(t)

		f.reference.EXPECT().
			Require(gomock.Any(), reference.KindHotel, "nope").
			Return(failure.NewParentNotFound("hotel", "nope"))

		res, err := f.svc.ListByHotel(context.Background(), "nope", gDto.QueryParams{})

		assert.Nil(t, res)
		parent, ok := failure.IsParentNotFound(err)
		require.True(t, ok)
		assert.Equal(t, "nope", parent.ID)
	})

	t.Run("rooms of the hotel", func(t *testing.T) {
		f := setup(t)

		f.reference.EXPECT().Require(gomock.Any(), reference.KindHotel, hotelID).Return(nil)
		f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]model.Room{storedRoom()}, nil)

		res, err := f.svc.ListByHotel(context.Background(), hotelID, gDto.QueryParams{})

		require.NoError(t, err)
		require.Len(t, res, 1)
		assert.Equal(t, roomID, res[0].ID)
	})
}

func TestRoomService_GetAndDelete(t *testing.T) {
	t.Run("get", func(t *testing.T) {
		f := setup(t)

		f.cache.EXPECT().Get(gomock.Any(), "room:get:"+roomID, gomock.Any()).Return(errors.New("miss"))
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(storedRoom(), nil)
		f.cache.EXPECT().Save(gomock.Any(), "room:get:"+roomID, gomock.Any(), gomock.Any()).Return(nil)

		res, err := f.svc.Get(context.Background(), roomID)

		require.NoError(t, err)
		require.NotNil(t, res)
		assert.Equal(t, "199.99", res.PricePerNight.StringFixed(2))
	})

	t.Run("delete unknown", func(t *testing.T) {
		f := setup(t)

		f.repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(int64(0), nil)
		f.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)

		deleted, err := f.svc.Delete(context.Background(), roomID)

		require.NoError(t, err)
		assert.False(t, deleted)
	})

	t.Run("delete still referenced by bookings", func(t *testing.T) {
		f := setup(t)

		conflict := failure.ConflictWithCause("room is still referenced or references a missing row", errStore)
		f.repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(int64(0), conflict)

		deleted, err := f.svc.Delete(context.Background(), roomID)

		assert.False(t, deleted)
		assert.Equal(t, 409, failure.GetCode(err))
	})
}
