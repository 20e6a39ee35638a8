package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"stayhub/infras/otel"
	"stayhub/infras/postgres"
	"stayhub/internal/domains/partner/model"
	gDto "stayhub/shared/dto"
	gRepo "stayhub/shared/repository"
)

type Partner interface {
	Insert(ctx context.Context, model model.Partner) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Partner, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Partner, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Partner]
}

func New(db *postgres.Connection, otel otel.Otel) Partner {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Partner](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}
