package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"hotel/config"
	kafkaMocks "hotel/infras/kafka/mocks"
	"hotel/infras/metrics"
	"hotel/infras/otel/mocks"
	"hotel/infras/postgres"
	pgMocks "hotel/infras/postgres/mocks"
	bookingMocks "hotel/internal/domains/booking/mocks"
	"hotel/internal/domains/booking/model"
	"hotel/internal/domains/booking/model/dto"
	"hotel/internal/domains/booking/service"
	roomMocks "hotel/internal/domains/room/mocks"
	roomModel "hotel/internal/domains/room/model"
	cacheMocks "hotel/shared/cache/mocks"
	"hotel/shared/calendar"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"
)

const roomA = "3f1d4a52-8c1e-4f0b-9a57-0d6c1e2b7a11"

type fixture struct {
	repo       *bookingMocks.MockBooking
	roomRepo   *roomMocks.MockRoom
	transactor *pgMocks.MockTransactor
	cache      *cacheMocks.MockRedisCache
	kafka      *kafkaMocks.MockClient
	svc        service.Booking
}

func newFixture(t *testing.T) fixture {
	ctrl := gomock.NewController(t)

	f := fixture{
		repo:       bookingMocks.NewMockBooking(ctrl),
		roomRepo:   roomMocks.NewMockRoom(ctrl),
		transactor: pgMocks.NewMockTransactor(ctrl),
		cache:      cacheMocks.NewMockRedisCache(ctrl),
		kafka:      kafkaMocks.NewMockClient(ctrl),
	}

	cfg := &config.Config{}
	f.svc = service.New(f.repo, f.roomRepo, f.transactor, cfg, f.cache, mocks.NewOtel(), metrics.New(cfg), f.kafka)

	return f
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func price(v float64) *float64 {
	return &v
}

// runTx executes the transaction body directly, as a committed transaction would.
func runTx(ctx context.Context, fn postgres.TxFunc) error {
	return fn(ctx, nil)
}

// existingOn answers FindOverlappingTx from a fixed set of bookings using the half-open rule.
func existingOn(existing ...model.Booking) func(context.Context, *sqlx.Tx, string, time.Time, time.Time) ([]model.Booking, error) {
	return func(_ context.Context, _ *sqlx.Tx, roomID string, start, end time.Time) ([]model.Booking, error) {
		var res []model.Booking

		for _, b := range existing {
			if b.RoomID == roomID && calendar.Overlaps(b.StartDate, b.EndDate, start, end) {
				res = append(res, b)
			}
		}

		return res, nil
	}
}

func roomDetail() roomModel.RoomDetail {
	return roomModel.RoomDetail{
		Room:      roomModel.Room{ID: roomA, RoomNumber: "101", RoomTypeID: "rt-1"},
		TypeKey:   "roomType1",
		TypePrice: 450,
	}
}

func TestParseStay(t *testing.T) {
	tests := []struct {
		name  string
		start string
		end   string
		want  error
	}{
		{name: "valid", start: "2024-07-10", end: "2024-07-12"},
		{name: "iso instants", start: "2024-07-10T00:00:00.000Z", end: "2024-07-12T00:00:00.000Z"},
		{name: "malformed start", start: "10/07/2024", end: "2024-07-12", want: service.ErrInvalidDateFormat},
		{name: "malformed end", start: "2024-07-10", end: "2024-13-40", want: service.ErrInvalidDateFormat},
		{name: "same day", start: "2024-07-10", end: "2024-07-10", want: service.ErrInvalidDateRange},
		{name: "reversed", start: "2024-07-12", end: "2024-07-10", want: service.ErrInvalidDateRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := service.ParseStay(tt.start, tt.end)
			if tt.want == nil {
				assert.NoError(t, err)

				return
			}

			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestBookingService_Create(t *testing.T) {
	existing := model.Booking{ID: "b-existing", RoomID: roomA, StartDate: date(2024, 7, 11), EndDate: date(2024, 7, 14)}

	tests := []struct {
		name      string
		req       dto.CreateBookingRequest
		setupMock func(f fixture)
		wantCode  int
	}{
		{
			name: "overlapping night is rejected",
			req:  dto.CreateBookingRequest{RoomID: roomA, StartDate: "2024-07-10", EndDate: "2024-07-12", TotalPrice: price(900), Currency: "USD"},
			setupMock: func(f fixture) {
				f.roomRepo.EXPECT().GetDetail(gomock.Any(), roomA).Return(roomDetail(), nil)
				f.transactor.EXPECT().DoSerializable(gomock.Any(), gomock.Any()).DoAndReturn(runTx)
				f.repo.EXPECT().FindOverlappingTx(gomock.Any(), gomock.Any(), roomA, date(2024, 7, 10), date(2024, 7, 12)).
					DoAndReturn(existingOn(existing))
			},
			wantCode: http.StatusConflict,
		},
		{
			name: "check out on the next arrival day succeeds",
			req:  dto.CreateBookingRequest{RoomID: roomA, StartDate: "2024-07-10", EndDate: "2024-07-11", TotalPrice: price(450), Currency: "EUR"},
			setupMock: func(f fixture) {
				f.roomRepo.EXPECT().GetDetail(gomock.Any(), roomA).Return(roomDetail(), nil)
				f.transactor.EXPECT().DoSerializable(gomock.Any(), gomock.Any()).DoAndReturn(runTx)
				f.repo.EXPECT().FindOverlappingTx(gomock.Any(), gomock.Any(), roomA, gomock.Any(), gomock.Any()).
					DoAndReturn(existingOn(existing))
				f.repo.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
				f.cache.EXPECT().Save(gomock.Any(), constant.CacheKeyAvailabilityGeneration, gomock.Any(), 0).Return(nil)
				f.cache.EXPECT().Clear(gomock.Any(), "booking:*").Return(nil)
				f.cache.EXPECT().Clear(gomock.Any(), "availability:*").Return(nil)
				f.kafka.EXPECT().SendMessages(gomock.Any(), "hotel.bookings", gomock.Any()).Return(nil).AnyTimes()
			},
		},
		{
			name: "exclusion constraint maps to conflict",
			req:  dto.CreateBookingRequest{RoomID: roomA, StartDate: "2024-07-01", EndDate: "2024-07-03", TotalPrice: price(900), Currency: "USD"},
			setupMock: func(f fixture) {
				f.roomRepo.EXPECT().GetDetail(gomock.Any(), roomA).Return(roomDetail(), nil)
				f.transactor.EXPECT().DoSerializable(gomock.Any(), gomock.Any()).DoAndReturn(runTx)
				f.repo.EXPECT().FindOverlappingTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)
				f.repo.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(&pq.Error{Code: "23P01"})
			},
			wantCode: http.StatusConflict,
		},
		{
			name: "exhausted serialization retries map to conflict",
			req:  dto.CreateBookingRequest{RoomID: roomA, StartDate: "2024-07-01", EndDate: "2024-07-03", TotalPrice: price(900), Currency: "USD"},
			setupMock: func(f fixture) {
				f.roomRepo.EXPECT().GetDetail(gomock.Any(), roomA).Return(roomDetail(), nil)
				f.transactor.EXPECT().DoSerializable(gomock.Any(), gomock.Any()).Return(&pq.Error{Code: "40001"})
			},
			wantCode: http.StatusConflict,
		},
		{
			name:      "end before start",
			req:       dto.CreateBookingRequest{RoomID: roomA, StartDate: "2024-07-12", EndDate: "2024-07-10", TotalPrice: price(1), Currency: "USD"},
			setupMock: func(fixture) {},
			wantCode:  http.StatusBadRequest,
		},
		{
			name:      "malformed date",
			req:       dto.CreateBookingRequest{RoomID: roomA, StartDate: "tomorrow", EndDate: "2024-07-10", TotalPrice: price(1), Currency: "USD"},
			setupMock: func(fixture) {},
			wantCode:  http.StatusBadRequest,
		},
		{
			name: "unknown room",
			req:  dto.CreateBookingRequest{RoomID: roomA, StartDate: "2024-07-10", EndDate: "2024-07-12", TotalPrice: price(1), Currency: "USD"},
			setupMock: func(f fixture) {
				f.roomRepo.EXPECT().GetDetail(gomock.Any(), roomA).Return(roomModel.RoomDetail{}, nil)
			},
			wantCode: http.StatusNotFound,
		},
		{
			name: "room removed during the transaction",
			req:  dto.CreateBookingRequest{RoomID: roomA, StartDate: "2024-07-10", EndDate: "2024-07-12", TotalPrice: price(1), Currency: "USD"},
			setupMock: func(f fixture) {
				f.roomRepo.EXPECT().GetDetail(gomock.Any(), roomA).Return(roomDetail(), nil)
				f.transactor.EXPECT().DoSerializable(gomock.Any(), gomock.Any()).Return(&pq.Error{Code: "23503"})
			},
			wantCode: http.StatusNotFound,
		},
		{
			name: "store failure",
			req:  dto.CreateBookingRequest{RoomID: roomA, StartDate: "2024-07-10", EndDate: "2024-07-12", TotalPrice: price(1), Currency: "USD"},
			setupMock: func(f fixture) {
				f.roomRepo.EXPECT().GetDetail(gomock.Any(), roomA).Return(roomDetail(), nil)
				f.transactor.EXPECT().DoSerializable(gomock.Any(), gomock.Any()).Return(errors.New("connection reset"))
			},
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			res, err := f.svc.Create(context.Background(), tt.req)
			if tt.wantCode != 0 {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
			assert.NotEmpty(t, res.ID)
			assert.Equal(t, tt.req.StartDate, res.StartDate)
			assert.Equal(t, tt.req.EndDate, res.EndDate)
			assert.Equal(t, tt.req.Currency, res.Currency)
			assert.NotNil(t, res.Room)
			assert.Equal(t, "101", res.Room.RoomNumber)
			assert.Equal(t, "roomType1", res.Room.RoomType.TypeKey)
		})
	}
}

func TestBookingService_CreateKeepsCalendarDay(t *testing.T) {
	f := newFixture(t)

	var inserted model.Booking

	f.roomRepo.EXPECT().GetDetail(gomock.Any(), roomA).Return(roomDetail(), nil)
	f.transactor.EXPECT().DoSerializable(gomock.Any(), gomock.Any()).DoAndReturn(runTx)
	f.repo.EXPECT().FindOverlappingTx(gomock.Any(), gomock.Any(), roomA, date(2024, 12, 31), date(2025, 1, 2)).Return(nil, nil)
	f.repo.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ *sqlx.Tx, b model.Booking) error {
			inserted = b

			return nil
		})
	f.cache.EXPECT().Save(gomock.Any(), constant.CacheKeyAvailabilityGeneration, gomock.Any(), 0).Return(nil)
	f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).Times(2)
	f.kafka.EXPECT().SendMessages(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	guest := "Lina"
	_, err := f.svc.Create(context.Background(), dto.CreateBookingRequest{
		RoomID:     roomA,
		StartDate:  "2024-12-31T23:30:00-05:00",
		EndDate:    "2025-01-02",
		TotalPrice: price(900),
		Currency:   "SYP",
		GuestName:  &guest,
	})

	assert.NoError(t, err)
	assert.Equal(t, date(2024, 12, 31), inserted.StartDate)
	assert.Equal(t, date(2025, 1, 2), inserted.EndDate)
	assert.Equal(t, "SYP", inserted.Currency)
	assert.Equal(t, &guest, inserted.GuestName)
	assert.Equal(t, "guest", inserted.CreatedBy)
}

func TestBookingService_List(t *testing.T) {
	details := []model.BookingDetail{{
		Booking:    model.Booking{ID: "b1", RoomID: roomA, StartDate: date(2024, 6, 1), EndDate: date(2024, 6, 5), TotalPrice: 1800, Currency: "USD"},
		RoomNumber: "101",
		TypeKey:    "roomType1",
	}}

	tests := []struct {
		name      string
		params    gDto.QueryParams
		setupMock func(f fixture)
		wantLen   int
		wantErr   bool
	}{
		{
			name:   "newest first by default",
			params: gDto.QueryParams{},
			setupMock: func(f fixture) {
				f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("redis: nil"))
				f.repo.EXPECT().ListDetails(gomock.Any(), gDto.QueryParams{SortBy: "bookings.created_at", SortDir: "DESC"}).Return(details, nil)
				f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
			},
			wantLen: 1,
		},
		{
			name:   "unknown sort column falls back",
			params: gDto.QueryParams{SortBy: "1; DROP TABLE bookings", SortDir: "ASC", Page: 2, Limit: 5},
			setupMock: func(f fixture) {
				f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("redis: nil"))
				f.repo.EXPECT().ListDetails(gomock.Any(), gDto.QueryParams{SortBy: "bookings.created_at", SortDir: "DESC", Page: 2, Limit: 5}).Return(nil, nil)
				f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
			},
			wantLen: 0,
		},
		{
			name:   "sort by start date",
			params: gDto.QueryParams{SortBy: "startDate", SortDir: "ASC"},
			setupMock: func(f fixture) {
				f.cache.EXPECT().Get(gomock.Any(), "booking:gets:page=0:limit=0:sort=bookings.start_date:ASC", gomock.Any()).Return(errors.New("redis: nil"))
				f.repo.EXPECT().ListDetails(gomock.Any(), gDto.QueryParams{SortBy: "bookings.start_date", SortDir: "ASC"}).Return(details, nil)
				f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
			},
			wantLen: 1,
		},
		{
			name:   "repository error",
			params: gDto.QueryParams{},
			setupMock: func(f fixture) {
				f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("redis: nil"))
				f.repo.EXPECT().ListDetails(gomock.Any(), gomock.Any()).Return(nil, errors.New("db down"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			res, err := f.svc.List(context.Background(), tt.params)
			if tt.wantErr {
				assert.Error(t, err)

				return
			}

			assert.NoError(t, err)
			assert.Len(t, res, tt.wantLen)
		})
	}
}

func TestBookingService_Delete(t *testing.T) {
	const id = "9a0c6a3e-2f43-4b8e-8f55-5d3f0c1c2e77"

	booking := model.Booking{ID: id, RoomID: roomA, StartDate: date(2024, 6, 1), EndDate: date(2024, 6, 5)}

	tests := []struct {
		name      string
		id        string
		setupMock func(f fixture)
		wantCode  int
	}{
		{
			name: "deleted",
			id:   id,
			setupMock: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(booking, nil)
				f.repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(int64(1), nil)
				f.cache.EXPECT().Save(gomock.Any(), constant.CacheKeyAvailabilityGeneration, gomock.Any(), 0).Return(nil)
				f.cache.EXPECT().Clear(gomock.Any(), "booking:*").Return(nil)
				f.cache.EXPECT().Clear(gomock.Any(), "availability:*").Return(nil)
				f.kafka.EXPECT().SendMessages(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
			},
		},
		{
			name:      "malformed id",
			id:        "42",
			setupMock: func(fixture) {},
			wantCode:  http.StatusBadRequest,
		},
		{
			name: "missing booking",
			id:   id,
			setupMock: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Booking{}, nil)
			},
			wantCode: http.StatusNotFound,
		},
		{
			name: "removed concurrently",
			id:   id,
			setupMock: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(booking, nil)
				f.repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(int64(0), nil)
			},
			wantCode: http.StatusNotFound,
		},
		{
			name: "store failure",
			id:   id,
			setupMock: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(booking, nil)
				f.repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(int64(0), errors.New("db down"))
			},
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			err := f.svc.Delete(context.Background(), tt.id)
			if tt.wantCode != 0 {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
		})
	}
}
