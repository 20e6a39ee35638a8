package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"stayhub/infras/otel"
	propertyModel "stayhub/internal/domains/property/model"
	propertyRepo "stayhub/internal/domains/property/repository"
	roomModel "stayhub/internal/domains/room/model"
	roomRepo "stayhub/internal/domains/room/repository"
	"stayhub/internal/domains/unit/model"
	"stayhub/shared"
	"stayhub/shared/constant"
	"stayhub/shared/failure"
)

// Resolver loads the unit a booking or override points at.
type Resolver interface {
	Resolve(ctx context.Context, unitType model.Type, id string) (model.Unit, error)
}

type resolverImpl struct {
	propertyRepo propertyRepo.Property
	roomRepo     roomRepo.Room
	otel         otel.Otel
}

func New(propertyRepo propertyRepo.Property, roomRepo roomRepo.Room, otel otel.Otel) Resolver {
	return &resolverImpl{
		propertyRepo: propertyRepo,
		roomRepo:     roomRepo,
		otel:         otel,
	}
}

func (s *resolverImpl) Resolve(ctx context.Context, unitType model.Type, id string) (res model.Unit, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Resolve")
	defer scope.End()
	defer scope.TraceIfError(err)

	switch unitType {
	case model.TypeProperty:
		property, err := s.propertyRepo.Get(ctx, shared.FilterByID(id, propertyModel.FieldID, propertyModel.TableName))
		if err != nil {
			log.Error().Err(err).Str("id", id).Msg("failed to get property")

			return res, fmt.Errorf("failed to get property: %w", err)
		}

		if property.ID == constant.Empty {
			return res, failure.NotFound("property not found") // nolint:wrapcheck
		}

		return model.Unit{
			Type:     model.TypeProperty,
			ID:       property.ID,
			Name:     property.Name,
			Price:    property.UnitPrice(),
			Currency: property.Currency,
			Active:   property.Active,
		}, nil
	case model.TypeRoom:
		room, err := s.roomRepo.Get(ctx, shared.FilterByID(id, roomModel.FieldID, roomModel.TableName))
		if err != nil {
			log.Error().Err(err).Str("id", id).Msg("failed to get room")

			return res, fmt.Errorf("failed to get room: %w", err)
		}

		if room.ID == constant.Empty {
			return res, failure.NotFound("room not found") // nolint:wrapcheck
		}

		return model.Unit{
			Type:     model.TypeRoom,
			ID:       room.ID,
			Name:     room.Name,
			Price:    room.UnitPrice(),
			Currency: room.Currency,
			Active:   room.Active,
		}, nil
	default:
		return res, failure.BadRequestFromString(fmt.Sprintf("unit_type must be one of %s %s", model.TypeProperty, model.TypeRoom)) // nolint:wrapcheck
	}
}
