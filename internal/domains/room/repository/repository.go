package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"

	"hotel/infras/otel"
	"hotel/infras/postgres"
	"hotel/internal/domains/room/model"
	roomTypeModel "hotel/internal/domains/roomtype/model"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	gRepo "hotel/shared/repository"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
)

type Room interface {
	Insert(ctx context.Context, model model.Room) error
	InsertBulkTx(ctx context.Context, sqltx *sqlx.Tx, models []model.Room) error
	DeleteAllTx(ctx context.Context, sqltx *sqlx.Tx) error
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	GetDetail(ctx context.Context, id string) (model.RoomDetail, error)
	ListDetails(ctx context.Context) ([]model.RoomDetail, error)
	ListDetailsByType(ctx context.Context, typeKey string) ([]model.RoomDetail, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Room]
	details gRepo.Repository[model.RoomDetail]
}

func New(db *postgres.Connection, otel otel.Otel) Room {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Room](model.EntityName, model.TableName, model.FieldID, db, otel),
		details:    gRepo.NewRepository[model.RoomDetail](model.EntityName+"_detail", model.TableName, model.FieldID, db, otel),
	}
}

func (r *repositoryImpl) GetDetail(ctx context.Context, id string) (model.RoomDetail, error) {
	rooms, err := r.details.Find(ctx, r.details.Select().Where(sq.Eq{qualified(model.FieldID): id}).Limit(1))
	if err != nil {
		return model.RoomDetail{}, fmt.Errorf("failed to get room detail: %w", err)
	}

	if len(rooms) == 0 {
		return model.RoomDetail{}, nil
	}

	return rooms[0], nil
}

func (r *repositoryImpl) ListDetails(ctx context.Context) ([]model.RoomDetail, error) {
	return r.details.Find(ctx, r.details.Select().OrderBy(qualified(model.FieldRoomNumber)+" "+gDto.SortDirAsc))
}

func (r *repositoryImpl) ListDetailsByType(ctx context.Context, typeKey string) ([]model.RoomDetail, error) {
	return r.details.Find(ctx, r.details.Select().
		Where(sq.Eq{roomTypeModel.TableName + "." + roomTypeModel.FieldTypeKey: typeKey}).
		OrderBy(qualified(model.FieldRoomNumber)+" "+gDto.SortDirAsc))
}

func qualified(field string) string {
	return model.TableName + constant.Dot + field
}
