package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"hotel/infras/otel"
	"hotel/infras/postgres"
	"hotel/internal/domains/roomtype/model"
	gDto "hotel/shared/dto"
	gRepo "hotel/shared/repository"

	"github.com/jmoiron/sqlx"
)

type RoomType interface {
	Insert(ctx context.Context, model model.RoomType) error
	InsertBulkTx(ctx context.Context, sqltx *sqlx.Tx, models []model.RoomType) error
	DeleteAllTx(ctx context.Context, sqltx *sqlx.Tx) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.RoomType, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.RoomType, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.RoomType]
}

func New(db *postgres.Connection, otel otel.Otel) RoomType {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.RoomType](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}
