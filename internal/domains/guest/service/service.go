package service

import (
	"context"
	"fmt"
	"hotel/config"
	"hotel/infras/otel"
	"hotel/internal/domains/guest/model"
	"hotel/internal/domains/guest/model/dto"
	"hotel/internal/domains/guest/repository"
	"hotel/shared"
	"hotel/shared/cache"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	cacheGetGuest = "guest:get"
)

var SortableFields = []string{model.FieldFirstName, model.FieldLastName, model.FieldEmail, constant.FieldCreatedAt}

type Guest interface {
	List(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) ([]dto.GuestResponse, error)
	// Get returns nil when no guest has id.
	Get(ctx context.Context, id string) (*dto.GuestResponse, error)
	Create(ctx context.Context, req dto.GuestRequest) (dto.GuestResponse, error)
	// Update replaces every field of the guest and returns nil when no guest has id.
	Update(ctx context.Context, id string, req dto.GuestRequest) (*dto.GuestResponse, error)
	// Delete reports whether a row was removed.
	Delete(ctx context.Context, id string) (bool, error)
}

type serviceImpl struct {
	repo  repository.Guest
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
}

func New(repo repository.Guest, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Guest {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
	}
}

func (s *serviceImpl) List(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (res []dto.GuestResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".guest.List")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	params.RestrictSort(SortableFields...)

	models, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get guests")

		return nil, fmt.Errorf("failed to get guests: %w", err)
	}

	return dto.FromModels(models), nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res *dto.GuestResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".guest.Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if uuid.Validate(id) != nil {
		return nil, nil
	}

	cacheKey := shared.BuildCacheKey(cacheGetGuest, id)

	cached := dto.GuestResponse{}
	if cacheErr := s.cache.Get(ctx, cacheKey, &cached); cacheErr == nil {
		log.Debug().Str("cacheKey", cacheKey).Msg("cache hit for guest")

		return &cached, nil
	}

	guest, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Str("id", id).Msg("failed to get guest")

		return nil, fmt.Errorf("failed to get guest: %w", err)
	}

	if guest.ID == constant.Empty {
		return nil, nil
	}

	res = &dto.GuestResponse{}
	res.FromModel(guest)

	if err := s.cache.Save(ctx, cacheKey, *res, s.cfg.Cache.TTL); err != nil {
		log.Error().Err(err).Msg("failed to save guest to cache")
	}

	return res, nil
}

func (s *serviceImpl) Create(ctx context.Context, req dto.GuestRequest) (res dto.GuestResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".guest.Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	guest := req.ToModel()

	if err = s.repo.Insert(ctx, guest); err != nil {
		log.Error().Err(err).Msg("failed to create guest")

		return res, fmt.Errorf("failed to create guest: %w", err)
	}

	res.FromModel(guest)

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, id string, req dto.GuestRequest) (res *dto.GuestResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".guest.Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if uuid.Validate(id) != nil {
		return nil, nil
	}

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	current, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Str("id", id).Msg("failed to get guest")

		return nil, fmt.Errorf("failed to get guest: %w", err)
	}

	if current.ID == constant.Empty {
		return nil, nil
	}

	guest := req.Apply(current)
	guest.Touch()

	affected, err := s.repo.Update(ctx, shared.ReplaceFields(guest, *guest.UpdatedAt, model.FieldID), filter)
	if err != nil {
		log.Error().Err(err).Str("id", id).Msg("failed to update guest")

		return nil, fmt.Errorf("failed to update guest: %w", err)
	}

	s.evict(ctx, id)

	if affected == 0 {
		return nil, nil
	}

	res = &dto.GuestResponse{}
	res.FromModel(guest)

	return res, nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (deleted bool, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".guest.Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if uuid.Validate(id) != nil {
		return false, nil
	}

	affected, err := s.repo.Delete(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Str("id", id).Msg("failed to delete guest")

		return false, fmt.Errorf("failed to delete guest: %w", err)
	}

	s.evict(ctx, id)

	return affected > 0, nil
}

func (s *serviceImpl) evict(ctx context.Context, id string) {
	if err := s.cache.Delete(ctx, shared.BuildCacheKey(cacheGetGuest, id)); err != nil {
		log.Error().Err(err).Str("id", id).Msg("failed to delete guest from cache")
	}
}
