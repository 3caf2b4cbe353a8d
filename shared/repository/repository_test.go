package repository_test

import (
	"context"
	otelMocks "hotel/infras/otel/mocks"
	"hotel/internal/testutil"
	"hotel/shared/dto"
	"hotel/shared/failure"
	"hotel/shared/model"
	"hotel/shared/repository"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type hotelRow struct {
	ID          string  `db:"id"`
	Name        string  `db:"name"`
	Address     string  `db:"address"`
	Rating      float64 `db:"rating"`
	Description *string `db:"description"`
	model.Metadata
}

type roomRow struct {
	ID            string  `db:"id"`
	HotelID       string  `db:"hotel_id"`
	RoomNumber    string  `db:"room_number"`
	RoomType      string  `db:"room_type"`
	PricePerNight float64 `db:"price_per_night"`
	IsAvailable   bool    `db:"is_available"`
	model.Metadata
}

func byID(table, id string) dto.FilterGroup {
	return dto.FilterGroup{}.Add(dto.Filter{Field: "id", Table: table, Operator: dto.FilterOperatorEq, Value: id})
}

func TestRepository_Postgres(t *testing.T) {
	conn := testutil.Postgres(t)
	otl := otelMocks.NewOtel()
	ctx := context.Background()

	hotels := repository.NewRepository[hotelRow]("hotel", "hotels", "id", conn, otl)
	rooms := repository.NewRepository[roomRow]("room", "rooms", "id", conn, otl)

	grand := hotelRow{ID: uuid.NewString(), Name: "Grand", Address: "1 Main St", Rating: 4.5, Metadata: model.NewMetadata()}
	plaza := hotelRow{ID: uuid.NewString(), Name: "Plaza", Address: "2 Side St", Rating: 3.0, Metadata: model.NewMetadata()}

	require.NoError(t, hotels.Insert(ctx, grand))
	require.NoError(t, hotels.Insert(ctx, plaza))

	t.Run("get", func(t *testing.T) {
		got, err := hotels.Get(ctx, byID("hotels", grand.ID))
		require.NoError(t, err)
		assert.Equal(t, grand.Name, got.Name)
		assert.Nil(t, got.Description)
		assert.Nil(t, got.UpdatedAt)

		missing, err := hotels.Get(ctx, byID("hotels", uuid.NewString()))
		require.NoError(t, err)
		assert.Empty(t, missing.ID)
	})

	t.Run("exist", func(t *testing.T) {
		exist, err := hotels.Exist(ctx, byID("hotels", plaza.ID))
		require.NoError(t, err)
		assert.True(t, exist)

		exist, err = hotels.Exist(ctx, byID("hotels", uuid.NewString()))
		require.NoError(t, err)
		assert.False(t, exist)
	})

	t.Run("get all with sort and limit", func(t *testing.T) {
		all, err := hotels.GetAll(ctx, dto.QueryParams{SortBy: "rating", SortDir: dto.SortDirDesc, Limit: 1}, dto.FilterGroup{})
		require.NoError(t, err)
		require.Len(t, all, 1)
		assert.Equal(t, grand.ID, all[0].ID)

		filtered, err := hotels.GetAll(ctx, dto.QueryParams{}, dto.FilterGroup{}.Add(
			dto.Filter{Field: "name", Table: "hotels", Operator: dto.FilterOperatorLike, Value: "PLA"},
		))
		require.NoError(t, err)
		require.Len(t, filtered, 1)
		assert.Equal(t, plaza.ID, filtered[0].ID)
	})

	t.Run("update", func(t *testing.T) {
		affected, err := hotels.Update(ctx, map[string]any{"name": "Grand Palace", "rating": 5.0}, byID("hotels", grand.ID))
		require.NoError(t, err)
		assert.EqualValues(t, 1, affected)

		got, err := hotels.Get(ctx, byID("hotels", grand.ID))
		require.NoError(t, err)
		assert.Equal(t, "Grand Palace", got.Name)
		assert.InDelta(t, 5.0, got.Rating, 0.0001)

		affected, err = hotels.Update(ctx, map[string]any{"name": "Nowhere"}, byID("hotels", uuid.NewString()))
		require.NoError(t, err)
		assert.Zero(t, affected)
	})

	t.Run("missing filter is rejected", func(t *testing.T) {
		_, err := hotels.Delete(ctx, dto.FilterGroup{})
		require.Error(t, err)
	})

	t.Run("referenced parent cannot be deleted", func(t *testing.T) {
		room := roomRow{
			ID:            uuid.NewString(),
			HotelID:       plaza.ID,
			RoomNumber:    "101",
			RoomType:      "Deluxe",
			PricePerNight: 120.5,
			IsAvailable:   true,
			Metadata:      model.NewMetadata(),
		}
		require.NoError(t, rooms.Insert(ctx, room))

		_, err := hotels.Delete(ctx, byID("hotels", plaza.ID))
		require.Error(t, err)
		assert.Equal(t, http.StatusConflict, failure.GetCode(err))

		exist, err := rooms.Exist(ctx, byID("rooms", room.ID))
		require.NoError(t, err)
		assert.True(t, exist)
	})

	t.Run("orphan insert is a conflict", func(t *testing.T) {
		orphan := roomRow{ID: uuid.NewString(), HotelID: uuid.NewString(), RoomNumber: "1", RoomType: "Single", Metadata: model.NewMetadata()}

		err := rooms.Insert(ctx, orphan)
		require.Error(t, err)
		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	})

	t.Run("delete", func(t *testing.T) {
		affected, err := hotels.Delete(ctx, byID("hotels", grand.ID))
		require.NoError(t, err)
		assert.EqualValues(t, 1, affected)

		affected, err = hotels.Delete(ctx, byID("hotels", grand.ID))
		require.NoError(t, err)
		assert.Zero(t, affected)
	})
}
