package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"stayhub/infras/otel"
	"stayhub/infras/postgres"
	"stayhub/internal/domains/booking/model"
	"stayhub/internal/reservation"
	"stayhub/shared/constant"
	gDto "stayhub/shared/dto"
	"stayhub/shared/logger"
	gRepo "stayhub/shared/repository"
)

const queryActiveByUnit = `SELECT id, booking_number, unit_type, unit_id, check_in, check_out, status
FROM bookings
WHERE unit_type = $1 AND unit_id = $2 AND status = ANY($3)
ORDER BY check_in`

type Booking interface {
	Insert(ctx context.Context, model model.Booking) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Booking, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Booking, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	UpdateTx(ctx context.Context, sqltx *sqlx.Tx, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
	// GetActiveByUnit returns the pending and confirmed bookings of a unit ordered by check-in.
	GetActiveByUnit(ctx context.Context, unitType, unitID string) ([]model.Booking, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Booking]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Booking {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Booking](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

func (r *repositoryImpl) GetActiveByUnit(ctx context.Context, unitType, unitID string) ([]model.Booking, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.GetActiveByUnit")
	defer scope.End()

	scope.SetAttribute(constant.OtelQueryAttributeKey, queryActiveByUnit)

	statuses := pq.Array([]string{string(reservation.StatusPending), string(reservation.StatusConfirmed)})

	var bookings []model.Booking

	if err := r.db.Read.SelectContext(ctx, &bookings, queryActiveByUnit, unitType, unitID, statuses); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return nil, fmt.Errorf("failed to get active bookings: %w", err)
	}

	return bookings, nil
}
