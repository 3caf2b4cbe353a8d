package service

import (
	"context"
	"fmt"
	"hotel/config"
	"hotel/infras/kafka"
	"hotel/infras/otel"
	"hotel/internal/domains/booking/model"
	"hotel/internal/domains/booking/model/dto"
	"hotel/internal/domains/booking/repository"
	reference "hotel/internal/domains/reference/service"
	"hotel/shared"
	"hotel/shared/cache"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/timezone"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	cacheGetBooking = "booking:get"

	defaultBookingTopic = "hotel.bookings"
)

var SortableFields = []string{model.FieldCheckInDate, model.FieldCheckOutDate, model.FieldTotalPrice, model.FieldStatus, constant.FieldCreatedAt}

type Booking interface {
	List(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) ([]dto.BookingResponse, error)
	// ListByGuest does not check that the guest exists; an unknown guest yields an empty list.
	ListByGuest(ctx context.Context, guestID string, params gDto.QueryParams) ([]dto.BookingResponse, error)
	// ListByRoom does not check that the room exists; an unknown room yields an empty list.
	ListByRoom(ctx context.Context, roomID string, params gDto.QueryParams) ([]dto.BookingResponse, error)
	// Get returns nil when no booking has id.
	Get(ctx context.Context, id string) (*dto.BookingResponse, error)
	// Create fails with *failure.ParentNotFound naming the room or guest that does not resolve.
	Create(ctx context.Context, req dto.BookingRequest) (dto.BookingResponse, error)
	// Update replaces every field without re-checking room and guest. It returns nil when no booking has id.
	Update(ctx context.Context, id string, req dto.BookingRequest) (*dto.BookingResponse, error)
	Delete(ctx context.Context, id string) (bool, error)
}

type serviceImpl struct {
	repo      repository.Booking
	reference reference.Reference
	cfg       *config.Config
	cache     cache.RedisCache
	events    kafka.Client
	otel      otel.Otel
}

func New(repo repository.Booking, reference reference.Reference, cfg *config.Config, cache cache.RedisCache, events kafka.Client, otel otel.Otel) Booking {
	return &serviceImpl{
		repo:      repo,
		reference: reference,
		cfg:       cfg,
		cache:     cache,
		events:    events,
		otel:      otel,
	}
}

func (s *serviceImpl) List(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (res []dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.List")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	params.RestrictSort(SortableFields...)

	models, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return nil, fmt.Errorf("failed to get bookings: %w", err)
	}

	return dto.FromModels(models), nil
}

func (s *serviceImpl) ListByGuest(ctx context.Context, guestID string, params gDto.QueryParams) (res []dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.ListByGuest")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	return s.listBy(ctx, model.FieldGuestID, guestID, params)
}

func (s *serviceImpl) ListByRoom(ctx context.Context, roomID string, params gDto.QueryParams) (res []dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.ListByRoom")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	return s.listBy(ctx, model.FieldRoomID, roomID, params)
}

func (s *serviceImpl) listBy(ctx context.Context, field, id string, params gDto.QueryParams) ([]dto.BookingResponse, error) {
	// a malformed id cannot match any row
	if uuid.Validate(id) != nil {
		return []dto.BookingResponse{}, nil
	}

	params.RestrictSort(SortableFields...)

	filter := gDto.FilterGroup{}.Add(gDto.Filter{
		Field:    field,
		Table:    model.TableName,
		Operator: gDto.FilterOperatorEq,
		Value:    id,
	})

	models, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Str(field, id).Msg("failed to get bookings")

		return nil, fmt.Errorf("failed to get bookings by %s: %w", field, err)
	}

	return dto.FromModels(models), nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res *dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if uuid.Validate(id) != nil {
		return nil, nil
	}

	cacheKey := shared.BuildCacheKey(cacheGetBooking, id)

	cached := dto.BookingResponse{}
	if cacheErr := s.cache.Get(ctx, cacheKey, &cached); cacheErr == nil {
		log.Debug().Str("cacheKey", cacheKey).Msg("cache hit for booking")

		return &cached, nil
	}

	booking, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Str("id", id).Msg("failed to get booking")

		return nil, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return nil, nil
	}

	res = &dto.BookingResponse{}
	res.FromModel(booking)

	if err := s.cache.Save(ctx, cacheKey, *res, s.cfg.Cache.TTL); err != nil {
		log.Error().Err(err).Msg("failed to save booking to cache")
	}

	return res, nil
}

func (s *serviceImpl) Create(ctx context.Context, req dto.BookingRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = s.reference.Require(ctx, reference.KindRoom, req.RoomID); err != nil {
		return res, err //nolint:wrapcheck
	}

	if err = s.reference.Require(ctx, reference.KindGuest, req.GuestID); err != nil {
		return res, err //nolint:wrapcheck
	}

	booking := req.ToModel()

	if err = s.repo.Insert(ctx, booking); err != nil {
		log.Error().Err(err).Msg("failed to create booking")

		return res, fmt.Errorf("failed to create booking: %w", err)
	}

	res.FromModel(booking)

	s.publish(ctx, dto.EventCreated, booking.ID, &res)

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, id string, req dto.BookingRequest) (res *dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if uuid.Validate(id) != nil {
		return nil, nil
	}

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	current, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Str("id", id).Msg("failed to get booking")

		return nil, fmt.Errorf("failed to get booking: %w", err)
	}

	if current.ID == constant.Empty {
		return nil, nil
	}

	booking := req.Apply(current)
	booking.Touch()

	affected, err := s.repo.Update(ctx, shared.ReplaceFields(booking, *booking.UpdatedAt, model.FieldID), filter)
	if err != nil {
		log.Error().Err(err).Str("id", id).Msg("failed to update booking")

		return nil, fmt.Errorf("failed to update booking: %w", err)
	}

	s.evict(ctx, id)

	if affected == 0 {
		return nil, nil
	}

	res = &dto.BookingResponse{}
	res.FromModel(booking)

	s.publish(ctx, dto.EventUpdated, id, res)

	return res, nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (deleted bool, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if uuid.Validate(id) != nil {
		return false, nil
	}

	affected, err := s.repo.Delete(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Str("id", id).Msg("failed to delete booking")

		return false, fmt.Errorf("failed to delete booking: %w", err)
	}

	s.evict(ctx, id)

	if affected == 0 {
		return false, nil
	}

	s.publish(ctx, dto.EventDeleted, id, nil)

	return true, nil
}

func (s *serviceImpl) evict(ctx context.Context, id string) {
	if err := s.cache.Delete(ctx, shared.BuildCacheKey(cacheGetBooking, id)); err != nil {
		log.Error().Err(err).Str("id", id).Msg("failed to delete booking from cache")
	}
}

// publish is best effort: the booking is already stored, so a broker failure is only logged.
func (s *serviceImpl) publish(ctx context.Context, eventType, id string, booking *dto.BookingResponse) {
	topic := s.cfg.Kafka.Topics.Booking
	if topic == "" {
		topic = defaultBookingTopic
	}

	event := dto.BookingEvent{
		Type:       eventType,
		ID:         id,
		Booking:    booking,
		OccurredAt: timezone.Now(),
	}

	if err := s.events.SendMessages(ctx, topic, kafka.Message{Key: id, Value: event}); err != nil {
		log.Error().Err(err).Str("id", id).Str("type", eventType).Msg("failed to publish booking event")
	}
}
