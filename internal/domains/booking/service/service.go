package service

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"time"

	"hotel/config"
	"hotel/infras/kafka"
	"hotel/infras/metrics"
	"hotel/infras/otel"
	"hotel/infras/postgres"
	"hotel/internal/domains/booking/model"
	"hotel/internal/domains/booking/model/dto"
	"hotel/internal/domains/booking/repository"
	roomRepo "hotel/internal/domains/room/repository"
	"hotel/shared"
	"hotel/shared/cache"
	"hotel/shared/calendar"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"
	"hotel/shared/timezone"
	"hotel/shared/validator"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

const (
	CacheGetAllBooking = constant.CachePrefixBooking + ":gets"

	defaultBookingTopic = "hotel.bookings"
)

var (
	ErrInvalidDateFormat = failure.BadRequestFromString("invalid date format")
	ErrInvalidDateRange  = failure.BadRequestFromString("endDate must be after startDate")
	ErrInvalidBookingID  = failure.BadRequestFromString("invalid booking id")
	ErrRoomNotFound      = failure.NotFound("room not found")
	ErrBookingNotFound   = failure.NotFound("booking not found")
	ErrRoomUnavailable   = failure.Conflict("room is not available for the selected dates")

	sortableColumns = map[string]string{
		"createdAt":  model.TableName + constant.Dot + constant.FieldCreatedAt,
		"startDate":  model.TableName + constant.Dot + model.FieldStartDate,
		"endDate":    model.TableName + constant.Dot + model.FieldEndDate,
		"totalPrice": model.TableName + constant.Dot + model.FieldTotalPrice,
	}
)

type Booking interface {
	Create(ctx context.Context, req dto.CreateBookingRequest) (dto.BookingResponse, error)
	List(ctx context.Context, params gDto.QueryParams) ([]dto.BookingResponse, error)
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo       repository.Booking
	roomRepo   roomRepo.Room
	transactor postgres.Transactor
	cfg        *config.Config
	cache      cache.RedisCache
	otel       otel.Otel
	metrics    metrics.Metrics
	kafka      kafka.Client
}

func New(
	repo repository.Booking,
	roomRepo roomRepo.Room,
	transactor postgres.Transactor,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
	metrics metrics.Metrics,
	kafka kafka.Client,
) Booking {
	return &serviceImpl{
		repo:       repo,
		roomRepo:   roomRepo,
		transactor: transactor,
		cfg:        cfg,
		cache:      cache,
		otel:       otel,
		metrics:    metrics,
		kafka:      kafka,
	}
}

// ParseStay reads the check-in and check-out days of a request.
func ParseStay(startDate, endDate string) (start, end time.Time, err error) {
	if start, err = calendar.Parse(startDate); err != nil {
		return start, end, ErrInvalidDateFormat
	}

	if end, err = calendar.Parse(endDate); err != nil {
		return start, end, ErrInvalidDateFormat
	}

	if !start.Before(end) {
		return start, end, ErrInvalidDateRange
	}

	return start, end, nil
}

// Create books a room for [startDate, endDate). The overlap check and the insert share one
// serializable transaction, and the bookings exclusion constraint backs it up.
func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBookingRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	start, end, err := ParseStay(req.StartDate, req.EndDate)
	if err != nil {
		return res, err
	}

	scope.SetStay(req.RoomID, start, end)

	room, err := s.roomRepo.GetDetail(ctx, req.RoomID)
	if err != nil {
		log.Error().Err(err).Str("roomId", req.RoomID).Msg("failed to get room")

		return res, fmt.Errorf("failed to get room: %w", err)
	}

	if room.ID == constant.Empty {
		return res, ErrRoomNotFound
	}

	user := actor(ctx)
	booking := req.ToModel(user, start, end)

	err = s.transactor.DoSerializable(ctx, func(ctx context.Context, tx *sqlx.Tx) error {
		overlapping, err := s.repo.FindOverlappingTx(ctx, tx, booking.RoomID, start, end)
		if err != nil {
			return fmt.Errorf("failed to check overlapping bookings: %w", err)
		}

		if len(overlapping) > 0 {
			return ErrRoomUnavailable
		}

		return s.repo.InsertTx(ctx, tx, booking)
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrRoomUnavailable),
			postgres.ErrorCode(err) == constant.PqErrorCodeExclusionViolation,
			postgres.ErrorCode(err) == constant.PqErrorCodeSerializationFailure:
			s.metrics.BookingConflict()

			log.Info().
				Str("roomId", booking.RoomID).
				Str("startDate", calendar.Key(start)).
				Str("endDate", calendar.Key(end)).
				Msg("booking rejected, room unavailable")

			return res, ErrRoomUnavailable
		case postgres.ErrorCode(err) == constant.PqErrorCodeFkViolation:
			return res, ErrRoomNotFound
		}

		log.Error().Err(err).Msg("failed to create booking")

		return res, fmt.Errorf("failed to create booking: %w", err)
	}

	s.metrics.BookingCreated(booking.Currency)
	s.invalidate(ctx)
	s.publish(ctx, model.EventBookingCreated, booking, user)

	res.FromModel(booking)
	res.WithRoom(room)

	return res, nil
}

func (s *serviceImpl) List(ctx context.Context, params gDto.QueryParams) (res []dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.List")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	params.Sortable(sortableColumns, model.TableName+constant.Dot+constant.FieldCreatedAt, gDto.SortDirDesc)

	cacheKey := shared.BuildCacheKeyWithQuery(CacheGetAllBooking, params)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Debug().Str("cacheKey", cacheKey).Msg("cache hit for bookings")

		return res, nil
	}

	bookings, err := s.repo.ListDetails(ctx, params)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return nil, fmt.Errorf("failed to get bookings: %w", err)
	}

	res = dto.FromDetails(bookings)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save bookings to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if validator.ValidateVar(id, "required,uuid") != nil {
		return ErrInvalidBookingID
	}

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	booking, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Str("bookingId", id).Msg("failed to get booking")

		return fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return ErrBookingNotFound
	}

	scope.SetStay(booking.RoomID, booking.StartDate, booking.EndDate)

	deleted, err := s.repo.Delete(ctx, filter)
	if err != nil {
		log.Error().Err(err).Str("bookingId", id).Msg("failed to delete booking")

		return fmt.Errorf("failed to delete booking: %w", err)
	}

	if deleted == 0 {
		return ErrBookingNotFound
	}

	s.metrics.BookingDeleted()
	s.invalidate(ctx)
	s.publish(ctx, model.EventBookingDeleted, booking, actor(ctx))

	return nil
}

// invalidate runs before the response so the next availability read sees the change. Rotating the
// generation first retires entries that reads in flight may still save.
func (s *serviceImpl) invalidate(ctx context.Context) {
	shared.RotateGeneration(context.WithoutCancel(ctx), s.cache, constant.CacheKeyAvailabilityGeneration)
	shared.InvalidateCaches(context.WithoutCancel(ctx), s.cache,
		constant.CachePrefixBooking+":*",
		constant.CachePrefixAvailability+":*",
	)
}

func (s *serviceImpl) publish(ctx context.Context, eventType string, booking model.Booking, user string) {
	topic := cmp.Or(s.cfg.Kafka.Topics.Booking, defaultBookingTopic)
	event := model.NewEvent(eventType, booking, user, timezone.Now())

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.kafka.SendMessages(c, topic, kafka.Message{Key: booking.RoomID, Value: event}); err != nil {
			log.Error().Err(err).Str("event", eventType).Str("bookingId", booking.ID).Msg("failed to publish booking event")
		}
	}()
}

func actor(ctx context.Context) string {
	if user, ok := ctx.Value(constant.ContextKeyUserID).(string); ok && user != constant.Empty {
		return user
	}

	return constant.ContextGuest
}
