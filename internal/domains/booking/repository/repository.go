package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"time"

	"hotel/infras/otel"
	"hotel/infras/postgres"
	"hotel/internal/domains/booking/model"
	roomTypeModel "hotel/internal/domains/roomtype/model"
	"hotel/shared/calendar"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	gRepo "hotel/shared/repository"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
)

type Booking interface {
	InsertTx(ctx context.Context, sqltx *sqlx.Tx, model model.Booking) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Booking, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Delete(ctx context.Context, filter gDto.FilterGroup) (int64, error)
	DeleteAllTx(ctx context.Context, sqltx *sqlx.Tx) error
	FindOverlappingTx(ctx context.Context, sqltx *sqlx.Tx, roomID string, start, end time.Time) ([]model.Booking, error)
	FindOverlapping(ctx context.Context, start, end time.Time) ([]model.Booking, error)
	ListDetails(ctx context.Context, params gDto.QueryParams) ([]model.BookingDetail, error)
	ListDetailsByType(ctx context.Context, typeKey string) ([]model.BookingDetail, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Booking]
	details gRepo.Repository[model.BookingDetail]
}

func New(db *postgres.Connection, otel otel.Otel) Booking {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Booking](model.EntityName, model.TableName, model.FieldID, db, otel),
		details:    gRepo.NewRepository[model.BookingDetail](model.EntityName+"_detail", model.TableName, model.FieldID, db, otel),
	}
}

// Overlapping matches bookings whose [start_date, end_date) shares a night with [start, end).
// Dates are bound as YYYY-MM-DD keys so the session timezone never shifts them.
func Overlapping(start, end time.Time) sq.And {
	return sq.And{
		sq.Expr(qualified(model.FieldStartDate)+" < ?::date", calendar.Key(end)),
		sq.Expr(qualified(model.FieldEndDate)+" > ?::date", calendar.Key(start)),
	}
}

func (r *repositoryImpl) FindOverlappingTx(ctx context.Context, sqltx *sqlx.Tx, roomID string, start, end time.Time) ([]model.Booking, error) {
	return r.FindTx(ctx, sqltx, r.Select().
		Where(sq.Eq{qualified(model.FieldRoomID): roomID}).
		Where(Overlapping(start, end)))
}

func (r *repositoryImpl) FindOverlapping(ctx context.Context, start, end time.Time) ([]model.Booking, error) {
	return r.Find(ctx, r.Select().Where(Overlapping(start, end)))
}

// ListDetails orders by params.SortBy, which callers must have passed through QueryParams.Sortable.
// A zero Limit returns every row.
func (r *repositoryImpl) ListDetails(ctx context.Context, params gDto.QueryParams) ([]model.BookingDetail, error) {
	builder := r.details.Select()

	if params.SortBy != constant.Empty {
		builder = builder.OrderBy(params.SortBy + " " + params.SortDir)
	}

	if params.Limit > 0 {
		page := max(params.Page, 1)
		builder = builder.Limit(uint64(params.Limit)).Offset(uint64((page - 1) * params.Limit))
	}

	return r.details.Find(ctx, builder)
}

func (r *repositoryImpl) ListDetailsByType(ctx context.Context, typeKey string) ([]model.BookingDetail, error) {
	return r.details.Find(ctx, r.details.Select().
		Where(sq.Eq{roomTypeModel.TableName + constant.Dot + roomTypeModel.FieldTypeKey: typeKey}))
}

func qualified(field string) string {
	return model.TableName + constant.Dot + field
}
