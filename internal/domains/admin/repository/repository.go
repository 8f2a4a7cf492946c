package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"hotel/infras/otel"
	"hotel/infras/postgres"
	"hotel/internal/domains/admin/model"
	gDto "hotel/shared/dto"
	gRepo "hotel/shared/repository"
)

type Admin interface {
	Insert(ctx context.Context, model model.Admin) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Admin, error)
	Update(ctx context.Context, mod map[string]any, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Admin]
}

func New(db *postgres.Connection, otel otel.Otel) Admin {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Admin](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}
