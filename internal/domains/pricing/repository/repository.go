package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"
	"time"

	"stayhub/infras/otel"
	"stayhub/infras/postgres"
	"stayhub/internal/domains/pricing/model"
	"stayhub/internal/reservation"
	"stayhub/shared/constant"
	gDto "stayhub/shared/dto"
	gRepo "stayhub/shared/repository"
)

type Pricing interface {
	Insert(ctx context.Context, model model.Override) error
	InsertBulk(ctx context.Context, models []model.Override) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Override, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Override, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
	// GetByUnitAndRange returns the overrides of a unit for the nights of [from, to).
	GetByUnitAndRange(ctx context.Context, unitType, unitID string, from, to time.Time) ([]model.Override, error)
	// GetByUnitAndMonth returns the overrides of a unit for a YYYY-MM month.
	GetByUnitAndMonth(ctx context.Context, unitType, unitID, month string) ([]model.Override, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Override]
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Pricing {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Override](model.EntityName, model.TableName, model.FieldID, db, otel),
		otel:       otel,
	}
}

func (r *repositoryImpl) GetByUnitAndRange(ctx context.Context, unitType, unitID string, from, to time.Time) ([]model.Override, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".pricing.GetByUnitAndRange")
	defer scope.End()

	from = reservation.Day(from)
	last := reservation.Day(to).AddDate(0, 0, -1)

	if last.Before(from) {
		return nil, reservation.ErrInvalidRange
	}

	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: model.FieldUnitType, Operator: gDto.FilterOperatorEq, Value: unitType, Table: model.TableName},
			gDto.Filter{Field: model.FieldUnitID, Operator: gDto.FilterOperatorEq, Value: unitID, Table: model.TableName},
			gDto.Filter{
				ArgName:  "date_from",
				Field:    model.FieldDate,
				Operator: gDto.FilterOperatorGreaterEq,
				Value:    from,
				Table:    model.TableName,
			},
			gDto.Filter{
				ArgName:  "date_to",
				Field:    model.FieldDate,
				Operator: gDto.FilterOperatorLessEq,
				Value:    last,
				Table:    model.TableName,
			},
		},
	}

	params := gDto.QueryParams{SortBy: model.FieldDate, SortDir: gDto.SortDirAsc}

	overrides, err := r.GetAll(ctx, params, filter)
	if err != nil {
		scope.TraceError(err)

		return nil, fmt.Errorf("failed to get overrides for %s %s: %w", unitType, unitID, err)
	}

	return overrides, nil
}

func (r *repositoryImpl) GetByUnitAndMonth(ctx context.Context, unitType, unitID, month string) ([]model.Override, error) {
	start, err := time.Parse(constant.MonthOnly, month)
	if err != nil {
		return nil, fmt.Errorf("invalid month %q: %w", month, err)
	}

	return r.GetByUnitAndRange(ctx, unitType, unitID, start, start.AddDate(0, 1, 0))
}
