package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"hotel/config"
	"hotel/infras/otel/mocks"
	"hotel/internal/domains/availability/model/dto"
	"hotel/internal/domains/availability/service"
	bookingMocks "hotel/internal/domains/booking/mocks"
	bookingModel "hotel/internal/domains/booking/model"
	roomMocks "hotel/internal/domains/room/mocks"
	roomModel "hotel/internal/domains/room/model"
	roomTypeMocks "hotel/internal/domains/roomtype/mocks"
	roomTypeModel "hotel/internal/domains/roomtype/model"
	cacheMocks "hotel/shared/cache/mocks"
	"hotel/shared/constant"
	"hotel/shared/failure"
)

type fixture struct {
	roomTypeRepo *roomTypeMocks.MockRoomType
	roomRepo     *roomMocks.MockRoom
	bookingRepo  *bookingMocks.MockBooking
	cache        *cacheMocks.MockRedisCache
	svc          service.Availability
}

func newFixture(t *testing.T) fixture {
	ctrl := gomock.NewController(t)

	f := fixture{
		roomTypeRepo: roomTypeMocks.NewMockRoomType(ctrl),
		roomRepo:     roomMocks.NewMockRoom(ctrl),
		bookingRepo:  bookingMocks.NewMockBooking(ctrl),
		cache:        cacheMocks.NewMockRedisCache(ctrl),
	}
	f.svc = service.New(f.roomTypeRepo, f.roomRepo, f.bookingRepo, &config.Config{}, f.cache, mocks.NewOtel())

	f.cache.EXPECT().Get(gomock.Any(), constant.CacheKeyAvailabilityGeneration, gomock.Any()).
		DoAndReturn(setGeneration("g1")).AnyTimes()

	return f
}

func setGeneration(token string) func(context.Context, string, any) error {
	return func(_ context.Context, _ string, value any) error {
		*(value.(*string)) = token

		return nil
	}
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func detail(id, number, typeKey string) roomModel.RoomDetail {
	return roomModel.RoomDetail{
		Room:    roomModel.Room{ID: id, RoomNumber: number, RoomTypeID: "rt-" + typeKey},
		TypeKey: typeKey,
	}
}

func bookingDetail(roomID string, start, end time.Time) bookingModel.BookingDetail {
	return bookingModel.BookingDetail{Booking: bookingModel.Booking{ID: "b-" + roomID, RoomID: roomID, StartDate: start, EndDate: end}}
}

func TestParseRange(t *testing.T) {
	tests := []struct {
		name    string
		req     dto.AvailabilityRequest
		want    error
		wantDay string
	}{
		{name: "missing both", want: service.ErrMissingDates},
		{name: "missing start", req: dto.AvailabilityRequest{EndDate: "2024-06-02"}, want: service.ErrMissingDates},
		{name: "missing end", req: dto.AvailabilityRequest{StartDate: "2024-06-02"}, want: service.ErrMissingDates},
		{name: "malformed", req: dto.AvailabilityRequest{StartDate: "june", EndDate: "2024-06-02"}, want: service.ErrInvalidDateFormat},
		{name: "equal", req: dto.AvailabilityRequest{StartDate: "2024-06-02", EndDate: "2024-06-02"}, want: service.ErrInvalidDateRange},
		{name: "reversed", req: dto.AvailabilityRequest{StartDate: "2024-06-03", EndDate: "2024-06-02"}, want: service.ErrInvalidDateRange},
		{name: "iso instants", req: dto.AvailabilityRequest{StartDate: "2024-06-01T00:00:00.000Z", EndDate: "2024-06-03T00:00:00.000Z"}, wantDay: "2024-06-01"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, _, err := service.ParseRange(tt.req)
			if tt.want != nil {
				assert.ErrorIs(t, err, tt.want)
				assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.wantDay, start.Format("2006-01-02"))
		})
	}
}

func TestAvailabilityService_RangeAvailability(t *testing.T) {
	f := newFixture(t)

	rooms := []roomModel.RoomDetail{
		detail("A", "101", "deluxe"),
		detail("B", "102", "deluxe"),
		detail("S", "201", "suite"),
	}

	f.roomTypeRepo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]roomTypeModel.RoomType{
		{ID: "rt-deluxe", TypeKey: "deluxe"},
		{ID: "rt-penthouse", TypeKey: "penthouse"},
		{ID: "rt-suite", TypeKey: "suite"},
	}, nil)
	f.roomRepo.EXPECT().ListDetails(gomock.Any()).Return(rooms, nil)
	f.bookingRepo.EXPECT().FindOverlapping(gomock.Any(), date(2024, 6, 3), date(2024, 6, 5)).Return([]bookingModel.Booking{
		{ID: "b1", RoomID: "A", StartDate: date(2024, 6, 1), EndDate: date(2024, 6, 5)},
	}, nil)

	res, err := f.svc.RangeAvailability(context.Background(), dto.AvailabilityRequest{StartDate: "2024-06-03", EndDate: "2024-06-05"})
	assert.NoError(t, err)

	assert.Equal(t, 2, res.Availability["deluxe"].Total)
	assert.Equal(t, 1, res.Availability["deluxe"].Available)
	assert.Equal(t, "B", res.Availability["deluxe"].Rooms[0].ID)
	assert.Equal(t, 1, res.Availability["suite"].Available)
	assert.Equal(t, 0, res.Availability["penthouse"].Total)
	assert.Empty(t, res.Availability["penthouse"].Rooms)

	assert.Equal(t, []string{"A"}, res.BookedRoomIDs)
	assert.Len(t, res.AllAvailableRooms, 2)
	assert.Equal(t, "B", res.AllAvailableRooms[0].ID)
	assert.Equal(t, "S", res.AllAvailableRooms[1].ID)
}

func TestAvailabilityService_RangeAvailabilityErrors(t *testing.T) {
	tests := []struct {
		name      string
		req       dto.AvailabilityRequest
		setupMock func(f fixture)
		wantCode  int
	}{
		{
			name:      "bad range never reaches the store",
			req:       dto.AvailabilityRequest{StartDate: "2024-06-05", EndDate: "2024-06-03"},
			setupMock: func(fixture) {},
			wantCode:  http.StatusBadRequest,
		},
		{
			name: "room types failure",
			req:  dto.AvailabilityRequest{StartDate: "2024-06-03", EndDate: "2024-06-05"},
			setupMock: func(f fixture) {
				f.roomTypeRepo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("db down"))
			},
			wantCode: http.StatusInternalServerError,
		},
		{
			name: "bookings failure",
			req:  dto.AvailabilityRequest{StartDate: "2024-06-03", EndDate: "2024-06-05"},
			setupMock: func(f fixture) {
				f.roomTypeRepo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)
				f.roomRepo.EXPECT().ListDetails(gomock.Any()).Return(nil, nil)
				f.bookingRepo.EXPECT().FindOverlapping(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("db down"))
			},
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			_, err := f.svc.RangeAvailability(context.Background(), tt.req)
			assert.Error(t, err)
			assert.Equal(t, tt.wantCode, failure.GetCode(err))
		})
	}
}

func TestAvailabilityService_BookedDatesByType(t *testing.T) {
	cacheMiss := errors.New("redis: nil")

	tests := []struct {
		name      string
		typeKey   string
		setupMock func(f fixture)
		want      []string
		wantCode  int
	}{
		{
			name:      "missing type key",
			typeKey:   "",
			setupMock: func(fixture) {},
			wantCode:  http.StatusBadRequest,
		},
		{
			name:    "unknown type",
			typeKey: "penthouse",
			setupMock: func(f fixture) {
				f.cache.EXPECT().Get(gomock.Any(), "availability:booked-dates:g1:penthouse", gomock.Any()).Return(cacheMiss)
				f.roomTypeRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(roomTypeModel.RoomType{}, nil)
			},
			wantCode: http.StatusNotFound,
		},
		{
			name:    "type without rooms",
			typeKey: "suite",
			setupMock: func(f fixture) {
				f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(cacheMiss)
				f.roomTypeRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(roomTypeModel.RoomType{ID: "rt-suite", TypeKey: "suite"}, nil)
				f.roomRepo.EXPECT().ListDetailsByType(gomock.Any(), "suite").Return([]roomModel.RoomDetail{}, nil)
			},
			want: []string{},
		},
		{
			name:    "deluxe with two rooms",
			typeKey: "deluxe",
			setupMock: func(f fixture) {
				f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(cacheMiss)
				f.roomTypeRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(roomTypeModel.RoomType{ID: "rt-deluxe", TypeKey: "deluxe"}, nil)
				f.roomRepo.EXPECT().ListDetailsByType(gomock.Any(), "deluxe").Return([]roomModel.RoomDetail{
					detail("A", "101", "deluxe"),
					detail("B", "102", "deluxe"),
				}, nil)
				f.bookingRepo.EXPECT().ListDetailsByType(gomock.Any(), "deluxe").Return([]bookingModel.BookingDetail{
					bookingDetail("A", date(2024, 6, 1), date(2024, 6, 5)),
					bookingDetail("B", date(2024, 6, 3), date(2024, 6, 7)),
				}, nil)
				f.cache.EXPECT().Save(gomock.Any(), "availability:booked-dates:g1:deluxe", gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
			},
			want: []string{"2024-06-03", "2024-06-04"},
		},
		{
			name:    "cache hit",
			typeKey: "deluxe",
			setupMock: func(f fixture) {
				f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ string, value any) error {
						*(value.(*[]string)) = []string{"2024-06-03"}

						return nil
					})
			},
			want: []string{"2024-06-03"},
		},
		{
			name:    "bookings failure",
			typeKey: "deluxe",
			setupMock: func(f fixture) {
				f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(cacheMiss)
				f.roomTypeRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(roomTypeModel.RoomType{ID: "rt-deluxe"}, nil)
				f.roomRepo.EXPECT().ListDetailsByType(gomock.Any(), gomock.Any()).Return([]roomModel.RoomDetail{detail("A", "101", "deluxe")}, nil)
				f.bookingRepo.EXPECT().ListDetailsByType(gomock.Any(), gomock.Any()).Return(nil, errors.New("db down"))
			},
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			res, err := f.svc.BookedDatesByType(context.Background(), tt.typeKey)
			if tt.wantCode != 0 {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.want, res)
		})
	}
}

func TestAvailabilityService_FullyBookedDates(t *testing.T) {
	rooms := []roomModel.RoomDetail{detail("A", "101", "deluxe"), detail("S", "201", "suite")}

	tests := []struct {
		name      string
		setupMock func(f fixture)
		want      []string
		wantErr   bool
	}{
		{
			name: "every type full",
			setupMock: func(f fixture) {
				f.cache.EXPECT().Get(gomock.Any(), service.CacheFullyBookedDates+":g1", gomock.Any()).Return(errors.New("redis: nil"))
				f.roomRepo.EXPECT().ListDetails(gomock.Any()).Return(rooms, nil)
				f.bookingRepo.EXPECT().ListDetails(gomock.Any(), gomock.Any()).Return([]bookingModel.BookingDetail{
					bookingDetail("A", date(2024, 6, 1), date(2024, 6, 4)),
					bookingDetail("S", date(2024, 6, 2), date(2024, 6, 6)),
				}, nil)
				f.cache.EXPECT().Save(gomock.Any(), service.CacheFullyBookedDates+":g1", gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
			},
			want: []string{"2024-06-02", "2024-06-03"},
		},
		{
			name: "no rooms",
			setupMock: func(f fixture) {
				f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("redis: nil"))
				f.roomRepo.EXPECT().ListDetails(gomock.Any()).Return(nil, nil)
				f.bookingRepo.EXPECT().ListDetails(gomock.Any(), gomock.Any()).Return(nil, nil)
				f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
			},
			want: []string{},
		},
		{
			name: "cache hit",
			setupMock: func(f fixture) {
				f.cache.EXPECT().Get(gomock.Any(), service.CacheFullyBookedDates+":g1", gomock.Any()).Return(nil)
			},
			want: nil,
		},
		{
			name: "rooms failure",
			setupMock: func(f fixture) {
				f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("redis: nil"))
				f.roomRepo.EXPECT().ListDetails(gomock.Any()).Return(nil, errors.New("db down"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			res, err := f.svc.FullyBookedDates(context.Background())
			if tt.wantErr {
				assert.Error(t, err)

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.want, res)
		})
	}
}

func TestAvailabilityService_FullyBookedDates_SavesUnderReadGeneration(t *testing.T) {
	ctrl := gomock.NewController(t)

	roomRepo := roomMocks.NewMockRoom(ctrl)
	bookingRepo := bookingMocks.NewMockBooking(ctrl)
	redisCache := cacheMocks.NewMockRedisCache(ctrl)
	svc := service.New(roomTypeMocks.NewMockRoomType(ctrl), roomRepo, bookingRepo, &config.Config{}, redisCache, mocks.NewOtel())

	saved := make(chan string, 1)

	// The result is stored under the generation read before bookings were loaded.
	gomock.InOrder(
		redisCache.EXPECT().Get(gomock.Any(), constant.CacheKeyAvailabilityGeneration, gomock.Any()).DoAndReturn(setGeneration("g1")),
		redisCache.EXPECT().Get(gomock.Any(), service.CacheFullyBookedDates+":g1", gomock.Any()).Return(errors.New("redis: nil")),
	)
	roomRepo.EXPECT().ListDetails(gomock.Any()).Return([]roomModel.RoomDetail{detail("A", "101", "deluxe")}, nil)
	bookingRepo.EXPECT().ListDetails(gomock.Any(), gomock.Any()).Return(nil, nil)
	redisCache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, key string, _ any, _ int) error {
			saved <- key

			return nil
		})

	_, err := svc.FullyBookedDates(context.Background())
	assert.NoError(t, err)

	select {
	case key := <-saved:
		assert.Equal(t, "availability:fully-booked:g1", key)
	case <-time.After(time.Second):
		t.Fatal("result was not cached")
	}

	// A booking write rotated the generation; the g1 entry is never read again.
	gomock.InOrder(
		redisCache.EXPECT().Get(gomock.Any(), constant.CacheKeyAvailabilityGeneration, gomock.Any()).DoAndReturn(setGeneration("g2")),
		redisCache.EXPECT().Get(gomock.Any(), "availability:fully-booked:g2", gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, value any) error {
				*(value.(*[]string)) = []string{"2024-06-03"}

				return nil
			}),
	)

	res, err := svc.FullyBookedDates(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, []string{"2024-06-03"}, res)
}
