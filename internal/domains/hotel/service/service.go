package service

import (
	"context"
	"fmt"
	"hotel/config"
	"hotel/infras/otel"
	"hotel/internal/domains/hotel/model"
	"hotel/internal/domains/hotel/model/dto"
	"hotel/internal/domains/hotel/repository"
	"hotel/shared"
	"hotel/shared/cache"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	cacheGetHotel = "hotel:get"
)

var SortableFields = []string{model.FieldName, model.FieldRating, constant.FieldCreatedAt}

type Hotel interface {
	List(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) ([]dto.HotelResponse, error)
	// Get returns nil when no hotel has id.
	Get(ctx context.Context, id string) (*dto.HotelResponse, error)
	Create(ctx context.Context, req dto.HotelRequest) (dto.HotelResponse, error)
	// Update replaces every field of the hotel and returns nil when no hotel has id.
	Update(ctx context.Context, id string, req dto.HotelRequest) (*dto.HotelResponse, error)
	// Delete reports whether a row was removed.
	Delete(ctx context.Context, id string) (bool, error)
}

type serviceImpl struct {
	repo  repository.Hotel
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
}

func New(repo repository.Hotel, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Hotel {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
	}
}

func (s *serviceImpl) List(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (res []dto.HotelResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".hotel.List")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	params.RestrictSort(SortableFields...)

	models, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get hotels")

		return nil, fmt.Errorf("failed to get hotels: %w", err)
	}

	return dto.FromModels(models), nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res *dto.HotelResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".hotel.Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if uuid.Validate(id) != nil {
		return nil, nil
	}

	cacheKey := shared.BuildCacheKey(cacheGetHotel, id)

	cached := dto.HotelResponse{}
	if cacheErr := s.cache.Get(ctx, cacheKey, &cached); cacheErr == nil {
		log.Debug().Str("cacheKey", cacheKey).Msg("cache hit for hotel")

		return &cached, nil
	}

	hotel, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Str("id", id).Msg("failed to get hotel")

		return nil, fmt.Errorf("failed to get hotel: %w", err)
	}

	if hotel.ID == constant.Empty {
		return nil, nil
	}

	res = &dto.HotelResponse{}
	res.FromModel(hotel)

	if err := s.cache.Save(ctx, cacheKey, *res, s.cfg.Cache.TTL); err != nil {
		log.Error().Err(err).Msg("failed to save hotel to cache")
	}

	return res, nil
}

func (s *serviceImpl) Create(ctx context.Context, req dto.HotelRequest) (res dto.HotelResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".hotel.Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	hotel := req.ToModel()

	if err = s.repo.Insert(ctx, hotel); err != nil {
		log.Error().Err(err).Msg("failed to create hotel")

		return res, fmt.Errorf("failed to create hotel: %w", err)
	}

	res.FromModel(hotel)

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, id string, req dto.HotelRequest) (res *dto.HotelResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".hotel.Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if uuid.Validate(id) != nil {
		return nil, nil
	}

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	current, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Str("id", id).Msg("failed to get hotel")

		return nil, fmt.Errorf("failed to get hotel: %w", err)
	}

	if current.ID == constant.Empty {
		return nil, nil
	}

	hotel := req.Apply(current)
	hotel.Touch()

	affected, err := s.repo.Update(ctx, shared.ReplaceFields(hotel, *hotel.UpdatedAt, model.FieldID), filter)
	if err != nil {
		log.Error().Err(err).Str("id", id).Msg("failed to update hotel")

		return nil, fmt.Errorf("failed to update hotel: %w", err)
	}

	s.evict(ctx, id)

	if affected == 0 {
		return nil, nil
	}

	res = &dto.HotelResponse{}
	res.FromModel(hotel)

	return res, nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (deleted bool, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".hotel.Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if uuid.Validate(id) != nil {
		return false, nil
	}

	affected, err := s.repo.Delete(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Str("id", id).Msg("failed to delete hotel")

		return false, fmt.Errorf("failed to delete hotel: %w", err)
	}

	s.evict(ctx, id)

	return affected > 0, nil
}

func (s *serviceImpl) evict(ctx context.Context, id string) {
	if err := s.cache.Delete(ctx, shared.BuildCacheKey(cacheGetHotel, id)); err != nil {
		log.Error().Err(err).Str("id", id).Msg("failed to delete hotel from cache")
	}
}
