package service

import (
	"context"
	"fmt"
	"time"

	"hotel/config"
	"hotel/infras/otel"
	"hotel/internal/domains/availability/engine"
	"hotel/internal/domains/availability/model/dto"
	bookingModel "hotel/internal/domains/booking/model"
	bookingRepo "hotel/internal/domains/booking/repository"
	roomRepo "hotel/internal/domains/room/repository"
	roomTypeModel "hotel/internal/domains/roomtype/model"
	roomTypeRepo "hotel/internal/domains/roomtype/repository"
	"hotel/shared"
	"hotel/shared/cache"
	"hotel/shared/calendar"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"
	"hotel/shared/validator"

	"github.com/rs/zerolog/log"
)

const (
	CacheFullyBookedDates = constant.CachePrefixAvailability + ":fully-booked"
	CacheBookedDates      = constant.CachePrefixAvailability + ":booked-dates"
)

var (
	ErrMissingDates      = failure.BadRequestFromString("startDate and endDate are required")
	ErrInvalidDateFormat = failure.BadRequestFromString("invalid date format")
	ErrInvalidDateRange  = failure.BadRequestFromString("endDate must be after startDate")
	ErrMissingTypeKey    = failure.BadRequestFromString("typeKey is required")
	ErrRoomTypeNotFound  = failure.NotFound("room type not found")

	roomTypeOrdering = gDto.QueryParams{SortBy: roomTypeModel.TableName + constant.Dot + roomTypeModel.FieldTypeKey, SortDir: gDto.SortDirAsc}
)

type Availability interface {
	RangeAvailability(ctx context.Context, req dto.AvailabilityRequest) (dto.RangeAvailabilityResponse, error)
	BookedDatesByType(ctx context.Context, typeKey string) ([]string, error)
	FullyBookedDates(ctx context.Context) ([]string, error)
}

type serviceImpl struct {
	roomTypeRepo roomTypeRepo.RoomType
	roomRepo     roomRepo.Room
	bookingRepo  bookingRepo.Booking
	cfg          *config.Config
	cache        cache.RedisCache
	otel         otel.Otel
}

func New(
	roomTypeRepo roomTypeRepo.RoomType,
	roomRepo roomRepo.Room,
	bookingRepo bookingRepo.Booking,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Availability {
	return &serviceImpl{
		roomTypeRepo: roomTypeRepo,
		roomRepo:     roomRepo,
		bookingRepo:  bookingRepo,
		cfg:          cfg,
		cache:        cache,
		otel:         otel,
	}
}

// ParseRange reads a [start, end) request as calendar days.
func ParseRange(req dto.AvailabilityRequest) (start, end time.Time, err error) {
	if validator.ValidateStruct(&req) != nil {
		return start, end, ErrMissingDates
	}

	if start, err = calendar.Parse(req.StartDate); err != nil {
		return start, end, ErrInvalidDateFormat
	}

	if end, err = calendar.Parse(req.EndDate); err != nil {
		return start, end, ErrInvalidDateFormat
	}

	if !start.Before(end) {
		return start, end, ErrInvalidDateRange
	}

	return start, end, nil
}

func (s *serviceImpl) RangeAvailability(ctx context.Context, req dto.AvailabilityRequest) (res dto.RangeAvailabilityResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".availability.RangeAvailability")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	start, end, err := ParseRange(req)
	if err != nil {
		return res, err
	}

	scope.SetStay(constant.Empty, start, end)

	roomTypes, err := s.roomTypeRepo.GetAll(ctx, roomTypeOrdering, gDto.FilterGroup{})
	if err != nil {
		log.Error().Err(err).Msg("failed to get room types")

		return res, fmt.Errorf("failed to get room types: %w", err)
	}

	rooms, err := s.roomRepo.ListDetails(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to get rooms")

		return res, fmt.Errorf("failed to get rooms: %w", err)
	}

	bookings, err := s.bookingRepo.FindOverlapping(ctx, start, end)
	if err != nil {
		log.Error().Err(err).Msg("failed to get overlapping bookings")

		return res, fmt.Errorf("failed to get overlapping bookings: %w", err)
	}

	typeKeys := make([]string, len(roomTypes))
	for i, roomType := range roomTypes {
		typeKeys[i] = roomType.TypeKey
	}

	stays := toStays(bookings)

	res.FromEngine(
		engine.RangeAvailability(typeKeys, rooms, stays, start, end),
		rooms,
		engine.OccupiedRooms(stays, start, end),
	)

	log.Debug().
		Str("startDate", calendar.Key(start)).
		Str("endDate", calendar.Key(end)).
		Int("bookedRooms", len(res.BookedRoomIDs)).
		Msg("computed range availability")

	return res, nil
}

func (s *serviceImpl) BookedDatesByType(ctx context.Context, typeKey string) (res []string, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".availability.BookedDatesByType")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if typeKey == constant.Empty {
		return nil, ErrMissingTypeKey
	}

	cacheKey := shared.BuildCacheKey(CacheBookedDates, s.generation(ctx), typeKey)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Debug().Str("cacheKey", cacheKey).Msg("cache hit for booked dates")

		return res, nil
	}

	roomType, err := s.roomTypeRepo.Get(ctx, shared.FilterBy(roomTypeModel.FieldTypeKey, typeKey, roomTypeModel.TableName))
	if err != nil {
		log.Error().Err(err).Str("typeKey", typeKey).Msg("failed to get room type")

		return nil, fmt.Errorf("failed to get room type: %w", err)
	}

	if roomType.ID == constant.Empty {
		return nil, ErrRoomTypeNotFound
	}

	rooms, err := s.roomRepo.ListDetailsByType(ctx, typeKey)
	if err != nil {
		log.Error().Err(err).Str("typeKey", typeKey).Msg("failed to get rooms of type")

		return nil, fmt.Errorf("failed to get rooms of type: %w", err)
	}

	if len(rooms) == 0 {
		return []string{}, nil
	}

	bookings, err := s.bookingRepo.ListDetailsByType(ctx, typeKey)
	if err != nil {
		log.Error().Err(err).Str("typeKey", typeKey).Msg("failed to get bookings of type")

		return nil, fmt.Errorf("failed to get bookings of type: %w", err)
	}

	res = engine.FullyBookedDatesForType(detailStays(bookings), len(rooms))

	s.saveAsync(ctx, cacheKey, res)

	return res, nil
}

func (s *serviceImpl) FullyBookedDates(ctx context.Context) (res []string, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".availability.FullyBookedDates")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(CacheFullyBookedDates, s.generation(ctx))

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Debug().Str("cacheKey", cacheKey).Msg("cache hit for fully booked dates")

		return res, nil
	}

	rooms, err := s.roomRepo.ListDetails(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to get rooms")

		return nil, fmt.Errorf("failed to get rooms: %w", err)
	}

	bookings, err := s.bookingRepo.ListDetails(ctx, gDto.QueryParams{})
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return nil, fmt.Errorf("failed to get bookings: %w", err)
	}

	res = engine.FullyBookedDatesAllTypes(rooms, detailStays(bookings))

	s.saveAsync(ctx, cacheKey, res)

	return res, nil
}

// generation must be read before any booking is loaded.
func (s *serviceImpl) generation(ctx context.Context) string {
	return shared.Generation(ctx, s.cache, constant.CacheKeyAvailabilityGeneration)
}

func (s *serviceImpl) saveAsync(ctx context.Context, key string, value []string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, key, value, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Str("cacheKey", key).Msg("failed to save availability to cache")
		}
	}()
}

func toStays(bookings []bookingModel.Booking) []engine.Stay {
	stays := make([]engine.Stay, len(bookings))
	for i, b := range bookings {
		stays[i] = engine.Stay{RoomID: b.RoomID, Start: b.StartDate, End: b.EndDate}
	}

	return stays
}

func detailStays(bookings []bookingModel.BookingDetail) []engine.Stay {
	stays := make([]engine.Stay, len(bookings))
	for i, b := range bookings {
		stays[i] = engine.Stay{RoomID: b.RoomID, Start: b.StartDate, End: b.EndDate}
	}

	return stays
}
