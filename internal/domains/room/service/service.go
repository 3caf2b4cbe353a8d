package service

import (
	"context"
	"fmt"
	"hotel/config"
	"hotel/infras/otel"
	reference "hotel/internal/domains/reference/service"
	"hotel/internal/domains/room/model"
	"hotel/internal/domains/room/model/dto"
	"hotel/internal/domains/room/repository"
	"hotel/shared"
	"hotel/shared/cache"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	cacheGetRoom = "room:get"
)

var SortableFields = []string{model.FieldRoomNumber, model.FieldRoomType, model.FieldPricePerNight, constant.FieldCreatedAt}

type Room interface {
	List(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) ([]dto.RoomResponse, error)
	// ListByHotel fails with *failure.ParentNotFound when the hotel does not exist.
	ListByHotel(ctx context.Context, hotelID string, params gDto.QueryParams) ([]dto.RoomResponse, error)
	// Get returns nil when no room has id.
	Get(ctx context.Context, id string) (*dto.RoomResponse, error)
	// Create fails with *failure.ParentNotFound when req.HotelID does not resolve.
	Create(ctx context.Context, req dto.RoomRequest) (dto.RoomResponse, error)
	// Update checks req.HotelID first, then returns nil when no room has id.
	Update(ctx context.Context, id string, req dto.RoomRequest) (*dto.RoomResponse, error)
	Delete(ctx context.Context, id string) (bool, error)
}

type serviceImpl struct {
	repo      repository.Room
	reference reference.Reference
	cfg       *config.Config
	cache     cache.RedisCache
	otel      otel.Otel
}

func New(repo repository.Room, reference reference.Reference, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Room {
	return &serviceImpl{
		repo:      repo,
		reference: reference,
		cfg:       cfg,
		cache:     cache,
		otel:      otel,
	}
}

func (s *serviceImpl) List(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (res []dto.RoomResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".room.List")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	params.RestrictSort(SortableFields...)

	models, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get rooms")

		return nil, fmt.Errorf("failed to get rooms: %w", err)
	}

	return dto.FromModels(models), nil
}

func (s *serviceImpl) ListByHotel(ctx context.Context, hotelID string, params gDto.QueryParams) (res []dto.RoomResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".room.ListByHotel")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = s.reference.Require(ctx, reference.KindHotel, hotelID); err != nil {
		return nil, err //nolint:wrapcheck
	}

	params.RestrictSort(SortableFields...)

	filter := gDto.FilterGroup{}.Add(gDto.Filter{
		Field:    model.FieldHotelID,
		Table:    model.TableName,
		Operator: gDto.FilterOperatorEq,
		Value:    hotelID,
	})

	models, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Str("hotelID", hotelID).Msg("failed to get rooms by hotel")

		return nil, fmt.Errorf("failed to get rooms by hotel: %w", err)
	}

	return dto.FromModels(models), nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res *dto.RoomResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".room.Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if uuid.Validate(id) != nil {
		return nil, nil
	}

	cacheKey := shared.BuildCacheKey(cacheGetRoom, id)

	cached := dto.RoomResponse{}
	if cacheErr := s.cache.Get(ctx, cacheKey, &cached); cacheErr == nil {
		log.Debug().Str("cacheKey", cacheKey).Msg("cache hit for room")

		return &cached, nil
	}

	room, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Str("id", id).Msg("failed to get room")

		return nil, fmt.Errorf("failed to get room: %w", err)
	}

	if room.ID == constant.Empty {
		return nil, nil
	}

	res = &dto.RoomResponse{}
	res.FromModel(room)

	if err := s.cache.Save(ctx, cacheKey, *res, s.cfg.Cache.TTL); err != nil {
		log.Error().Err(err).Msg("failed to save room to cache")
	}

	return res, nil
}

func (s *serviceImpl) Create(ctx context.Context, req dto.RoomRequest) (res dto.RoomResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".room.Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = s.reference.Require(ctx, reference.KindHotel, req.HotelID); err != nil {
		return res, err //nolint:wrapcheck
	}

	room := req.ToModel()

	if err = s.repo.Insert(ctx, room); err != nil {
		log.Error().Err(err).Msg("failed to create room")

		return res, fmt.Errorf("failed to create room: %w", err)
	}

	res.FromModel(room)

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, id string, req dto.RoomRequest) (res *dto.RoomResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".room.Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = s.reference.Require(ctx, reference.KindHotel, req.HotelID); err != nil {
		return nil, err //nolint:wrapcheck
	}

	if uuid.Validate(id) != nil {
		return nil, nil
	}

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	current, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Str("id", id).Msg("failed to get room")

		return nil, fmt.Errorf("failed to get room: %w", err)
	}

	if current.ID == constant.Empty {
		return nil, nil
	}

	room := req.Apply(current)
	room.Touch()

	affected, err := s.repo.Update(ctx, shared.ReplaceFields(room, *room.UpdatedAt, model.FieldID), filter)
	if err != nil {
		log.Error().Err(err).Str("id", id).Msg("failed to update room")

		return nil, fmt.Errorf("failed to update room: %w", err)
	}

	s.evict(ctx, id)

	if affected == 0 {
		return nil, nil
	}

	res = &dto.RoomResponse{}
	res.FromModel(room)

	return res, nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (deleted bool, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".room.Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if uuid.Validate(id) != nil {
		return false, nil
	}

	affected, err := s.repo.Delete(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Str("id", id).Msg("failed to delete room")

		return false, fmt.Errorf("failed to delete room: %w", err)
	}

	s.evict(ctx, id)

	return affected > 0, nil
}

func (s *serviceImpl) evict(ctx context.Context, id string) {
	if err := s.cache.Delete(ctx, shared.BuildCacheKey(cacheGetRoom, id)); err != nil {
		log.Error().Err(err).Str("id", id).Msg("failed to delete room from cache")
	}
}
