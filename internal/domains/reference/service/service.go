package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"hotel/infras/otel"
	guestModel "hotel/internal/domains/guest/model"
	guestRepo "hotel/internal/domains/guest/repository"
	hotelModel "hotel/internal/domains/hotel/model"
	hotelRepo "hotel/internal/domains/hotel/repository"
	roomModel "hotel/internal/domains/room/model"
	roomRepo "hotel/internal/domains/room/repository"
	"hotel/shared"
	"hotel/shared/constant"
	"hotel/shared/failure"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Kind names an entity that other entities may reference.
type Kind string

const (
	KindHotel Kind = hotelModel.EntityName
	KindRoom  Kind = roomModel.EntityName
	KindGuest Kind = guestModel.EntityName
)

// Reference confirms that a foreign key resolves before a dependent write. It always reads the
// store, never the cache.
type Reference interface {
	// Exists reports whether a kind row with id is currently stored. Ids that are not UUIDs never exist.
	Exists(ctx context.Context, kind Kind, id string) (bool, error)
	// Require is Exists that fails with *failure.ParentNotFound when the row is missing.
	Require(ctx context.Context, kind Kind, id string) error
}

type serviceImpl struct {
	hotels hotelRepo.Hotel
	rooms  roomRepo.Room
	guests guestRepo.Guest
	otel   otel.Otel
}

func New(hotels hotelRepo.Hotel, rooms roomRepo.Room, guests guestRepo.Guest, otel otel.Otel) Reference {
	return &serviceImpl{
		hotels: hotels,
		rooms:  rooms,
		guests: guests,
		otel:   otel,
	}
}

func (s *serviceImpl) Exists(ctx context.Context, kind Kind, id string) (exist bool, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".reference.Exists")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttributes(map[string]any{"kind": string(kind), "id": id})

	if uuid.Validate(id) != nil {
		return false, nil
	}

	switch kind {
	case KindHotel:
		exist, err = s.hotels.Exist(ctx, shared.FilterByID(id, hotelModel.FieldID, hotelModel.TableName))
	case KindRoom:
		exist, err = s.rooms.Exist(ctx, shared.FilterByID(id, roomModel.FieldID, roomModel.TableName))
	case KindGuest:
		exist, err = s.guests.Exist(ctx, shared.FilterByID(id, guestModel.FieldID, guestModel.TableName))
	default:
		return false, fmt.Errorf("unknown reference kind %q", kind)
	}

	if err != nil {
		log.Error().Err(err).Str("kind", string(kind)).Str("id", id).Msg("failed to check reference")

		return false, fmt.Errorf("failed to check %s existence: %w", kind, err)
	}

	return exist, nil
}

func (s *serviceImpl) Require(ctx context.Context, kind Kind, id string) error {
	exist, err := s.Exists(ctx, kind, id)
	if err != nil {
		return err
	}

	if !exist {
		log.Debug().Str("kind", string(kind)).Str("id", id).Msg("reference not found")

		return failure.NewParentNotFound(string(kind), id)
	}

	return nil
}
