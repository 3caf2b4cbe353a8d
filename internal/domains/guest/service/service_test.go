package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"hotel/config"
	otelMocks "hotel/infras/otel/mocks"
	"hotel/internal/domains/guest/mocks"
	"hotel/internal/domains/guest/model"
	"hotel/internal/domains/guest/model/dto"
	"hotel/internal/domains/guest/service"
	cacheMocks "hotel/shared/cache/mocks"
	gDto "hotel/shared/dto"
	gModel "hotel/shared/model"
)

const guestID = "b6c1d1c2-9a4e-4d55-a1f0-0d9f2b7f1c11"

func setup(t *testing.T) (service.Guest, *mocks.MockGuest, *cacheMocks.MockRedisCache) {
	t.Helper()

	ctrl := gomock.NewController(t)
	mockRepo := mocks.NewMockGuest(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)

	return service.New(mockRepo, &config.Config{}, mockCache, otelMocks.NewOtel()), mockRepo, mockCache
}

func storedGuest() model.Guest {
	phone := "+1 555 0100"

	return model.Guest{
		ID:        guestID,
		FirstName: "Jane",
		LastName:  "Doe",
		Email:     "jane@example.com",
		Phone:     &phone,
		Metadata:  gModel.Metadata{CreatedAt: time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC)},
	}
}

func TestGuestService_Create(t *testing.T) {
	svc, mockRepo, _ := setup(t)

	mockRepo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)

	// email format is not checked
	res, err := svc.Create(context.Background(), dto.GuestRequest{FirstName: "Jane", LastName: "Doe", Email: "not an email"})

	require.NoError(t, err)
	assert.NotEmpty(t, res.ID)
	assert.Equal(t, "not an email", res.Email)
	assert.Nil(t, res.Phone)
	assert.Nil(t, res.UpdatedAt)
}

func TestGuestService_Get(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(repo *mocks.MockGuest, cache *cacheMocks.MockRedisCache)
		wantNil   bool
		wantErr   bool
	}{
		{
			name: "found",
			setupMock: func(repo *mocks.MockGuest, cache *cacheMocks.MockRedisCache) {
				cache.EXPECT().Get(gomock.Any(), "guest:get:"+guestID, gomock.Any()).Return(errors.New("miss"))
				repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(storedGuest(), nil)
				cache.EXPECT().Save(gomock.Any(), "guest:get:"+guestID, gomock.Any(), gomock.Any()).Return(nil)
			},
		},
		{
			name: "absent",
			setupMock: func(repo *mocks.MockGuest, cache *cacheMocks.MockRedisCache) {
				cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("miss"))
				repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Guest{}, nil)
			},
			wantNil: true,
		},
		{
			name: "store failure",
			setupMock: func(repo *mocks.MockGuest, cache *cacheMocks.MockRedisCache) {
				cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("miss"))
				repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Guest{}, errors.New("connection refused"))
			},
			wantNil: true,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, mockRepo, mockCache := setup(t)
			tt.setupMock(mockRepo, mockCache)

			res, err := svc.Get(context.Background(), guestID)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}

			if tt.wantNil {
				assert.Nil(t, res)
			} else {
				require.NotNil(t, res)
				assert.Equal(t, "Jane", res.FirstName)
			}
		})
	}
}

func TestGuestService_Update(t *testing.T) {
	t.Run("clearing the phone writes null", func(t *testing.T) {
		svc, mockRepo, mockCache := setup(t)

		mockRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(storedGuest(), nil)
		mockRepo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) (int64, error) {
				assert.Contains(t, fields, model.FieldPhone)
				assert.Nil(t, fields[model.FieldPhone])

				return 1, nil
			})
		mockCache.EXPECT().Delete(gomock.Any(), "guest:get:"+guestID).Return(nil)

		res, err := svc.Update(context.Background(), guestID, dto.GuestRequest{FirstName: "Janet", LastName: "Doe", Email: "janet@example.com"})

		require.NoError(t, err)
		require.NotNil(t, res)
		assert.Equal(t, "Janet", res.FirstName)
		assert.Nil(t, res.Phone)
	})

	t.Run("unknown id", func(t *testing.T) {
		svc, mockRepo, _ := setup(t)

		mockRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Guest{}, nil)

		res, err := svc.Update(context.Background(), guestID, dto.GuestRequest{FirstName: "x", LastName: "y", Email: "z"})

		assert.NoError(t, err)
		assert.Nil(t, res)
	})
}

func TestGuestService_Delete(t *testing.T) {
	svc, mockRepo, mockCache := setup(t)

	mockRepo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(int64(1), nil)
	mockCache.EXPECT().Delete(gomock.Any(), "guest:get:"+guestID).Return(nil)

	deleted, err := svc.Delete(context.Background(), guestID)

	require.NoError(t, err)
	assert.True(t, deleted)
}

func TestGuestService_List(t *testing.T) {
	svc, mockRepo, _ := setup(t)

	mockRepo.EXPECT().
		GetAll(gomock.Any(), gDto.QueryParams{Page: 1, Limit: 5, SortBy: model.FieldLastName, SortDir: gDto.SortDirAsc}, gomock.Any()).
		Return([]model.Guest{storedGuest()}, nil)

	res, err := svc.List(context.Background(), gDto.QueryParams{Page: 1, Limit: 5, SortBy: model.FieldLastName}, gDto.FilterGroup{})

	require.NoError(t, err)
	require.Len(t, res, 1)
	assert.Equal(t, guestID, res[0].ID)
}
