package service

import (
	"context"
	"fmt"

	"hotel/infras/otel"
	bookingRepo "hotel/internal/domains/booking/repository"
	roomRepo "hotel/internal/domains/room/repository"
	"hotel/internal/domains/statistics/model"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/timezone"

	"github.com/rs/zerolog/log"
)

type Statistics interface {
	Get(ctx context.Context) (model.Statistics, error)
}

type serviceImpl struct {
	bookingRepo bookingRepo.Booking
	roomRepo    roomRepo.Room
	otel        otel.Otel
}

func New(bookingRepo bookingRepo.Booking, roomRepo roomRepo.Room, otel otel.Otel) Statistics {
	return &serviceImpl{
		bookingRepo: bookingRepo,
		roomRepo:    roomRepo,
		otel:        otel,
	}
}

func (s *serviceImpl) Get(ctx context.Context) (res model.Statistics, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".statistics.Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	bookings, err := s.bookingRepo.ListDetails(ctx, gDto.QueryParams{})
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	totalRooms, err := s.roomRepo.Count(ctx, gDto.FilterGroup{})
	if err != nil {
		log.Error().Err(err).Msg("failed to count rooms")

		return res, fmt.Errorf("failed to count rooms: %w", err)
	}

	return model.Compute(bookings, totalRooms, timezone.Now()), nil
}
