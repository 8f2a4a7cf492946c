package service

import (
	"context"
	"fmt"

	"hotel/config"
	"hotel/infras/otel"
	"hotel/infras/postgres"
	"hotel/internal/domains/room/model"
	"hotel/internal/domains/room/model/dto"
	"hotel/internal/domains/room/repository"
	roomTypeModel "hotel/internal/domains/roomtype/model"
	roomTypeRepo "hotel/internal/domains/roomtype/repository"
	"hotel/shared"
	"hotel/shared/cache"
	"hotel/shared/constant"
	"hotel/shared/failure"
	"hotel/shared/validator"

	"github.com/rs/zerolog/log"
)

const (
	CacheGetAllRoom = constant.CachePrefixRoom + ":gets"
)

var (
	ErrInvalidRoomID       = failure.BadRequestFromString("invalid room id")
	ErrRoomNotFound        = failure.NotFound("room not found")
	ErrRoomTypeNotFound    = failure.NotFound("room type not found")
	ErrDuplicateRoomNumber = failure.Conflict("room number already exists")
)

type Room interface {
	List(ctx context.Context) ([]dto.RoomResponse, error)
	Get(ctx context.Context, id string) (model.RoomDetail, error)
	Create(ctx context.Context, req dto.CreateRoomRequest) (dto.RoomResponse, error)
}

type serviceImpl struct {
	repo         repository.Room
	roomTypeRepo roomTypeRepo.RoomType
	cfg          *config.Config
	cache        cache.RedisCache
	otel         otel.Otel
}

func New(repo repository.Room, roomTypeRepo roomTypeRepo.RoomType, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Room {
	return &serviceImpl{
		repo:         repo,
		roomTypeRepo: roomTypeRepo,
		cfg:          cfg,
		cache:        cache,
		otel:         otel,
	}
}

func (s *serviceImpl) List(ctx context.Context) (res []dto.RoomResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".room.List")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = s.cache.Get(ctx, CacheGetAllRoom, &res); err == nil {
		log.Debug().Str("cacheKey", CacheGetAllRoom).Msg("cache hit for rooms")

		return res, nil
	}

	rooms, err := s.repo.ListDetails(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to get rooms")

		return nil, fmt.Errorf("failed to get rooms: %w", err)
	}

	res = dto.FromDetails(rooms)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, CacheGetAllRoom, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save rooms to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res model.RoomDetail, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".room.Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if validator.ValidateVar(id, "required,uuid") != nil {
		return res, ErrInvalidRoomID
	}

	res, err = s.repo.GetDetail(ctx, id)
	if err != nil {
		log.Error().Err(err).Str("roomId", id).Msg("failed to get room")

		return res, fmt.Errorf("failed to get room: %w", err)
	}

	if res.ID == constant.Empty {
		return res, ErrRoomNotFound
	}

	return res, nil
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateRoomRequest) (res dto.RoomResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".room.Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	if user == constant.Empty {
		user = constant.ContextSystem
	}

	typeExists, err := s.roomTypeRepo.Exist(ctx, shared.FilterByID(req.RoomTypeID, roomTypeModel.FieldID, roomTypeModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if room type exists")

		return res, fmt.Errorf("failed to check if room type exists: %w", err)
	}

	if !typeExists {
		return res, ErrRoomTypeNotFound
	}

	numberTaken, err := s.repo.Exist(ctx, shared.FilterBy(model.FieldRoomNumber, req.RoomNumber, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check room number")

		return res, fmt.Errorf("failed to check room number: %w", err)
	}

	if numberTaken {
		return res, ErrDuplicateRoomNumber
	}

	room := req.ToModel(user)

	if err = s.repo.Insert(ctx, room); err != nil {
		if postgres.ErrorCode(err) == constant.PqErrorCodeUniqueViolation {
			return res, ErrDuplicateRoomNumber
		}

		log.Error().Err(err).Msg("failed to create room")

		return res, fmt.Errorf("failed to create room: %w", err)
	}

	shared.RotateGeneration(context.WithoutCancel(ctx), s.cache, constant.CacheKeyAvailabilityGeneration)
	shared.InvalidateCaches(context.WithoutCancel(ctx), s.cache,
		constant.CachePrefixRoom+":*",
		constant.CachePrefixAvailability+":*",
	)

	res.FromModel(room)

	return res, nil
}
