package service

import (
	"context"
	"fmt"

	"hotel/config"
	"hotel/infras/otel"
	"hotel/infras/postgres"
	"hotel/internal/domains/roomtype/model"
	"hotel/internal/domains/roomtype/model/dto"
	"hotel/internal/domains/roomtype/repository"
	"hotel/shared"
	"hotel/shared/cache"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"

	"github.com/rs/zerolog/log"
)

const (
	CacheGetAllRoomType = constant.CachePrefixRoomType + ":gets"
)

var (
	ErrRoomTypeNotFound  = failure.NotFound("room type not found")
	ErrDuplicateTypeKey  = failure.Conflict("room type key already exists")
	ErrMissingTypeKey    = failure.BadRequestFromString("typeKey is required")
	roomTypeListOrdering = gDto.QueryParams{SortBy: model.TableName + "." + model.FieldTypeKey, SortDir: gDto.SortDirAsc}
)

type RoomType interface {
	List(ctx context.Context) ([]dto.RoomTypeResponse, error)
	GetByTypeKey(ctx context.Context, typeKey string) (model.RoomType, error)
	Create(ctx context.Context, req dto.CreateRoomTypeRequest) (dto.RoomTypeResponse, error)
}

type serviceImpl struct {
	repo  repository.RoomType
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
}

func New(repo repository.RoomType, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) RoomType {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
	}
}

func (s *serviceImpl) List(ctx context.Context) (res []dto.RoomTypeResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".roomtype.List")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = s.cache.Get(ctx, CacheGetAllRoomType, &res); err == nil {
		log.Debug().Str("cacheKey", CacheGetAllRoomType).Msg("cache hit for room types")

		return res, nil
	}

	models, err := s.repo.GetAll(ctx, roomTypeListOrdering, gDto.FilterGroup{})
	if err != nil {
		log.Error().Err(err).Msg("failed to get room types")

		return nil, fmt.Errorf("failed to get room types: %w", err)
	}

	res = dto.FromModels(models)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, CacheGetAllRoomType, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save room types to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) GetByTypeKey(ctx context.Context, typeKey string) (res model.RoomType, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".roomtype.GetByTypeKey")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if typeKey == constant.Empty {
		return res, ErrMissingTypeKey
	}

	res, err = s.repo.Get(ctx, shared.FilterBy(model.FieldTypeKey, typeKey, model.TableName))
	if err != nil {
		log.Error().Err(err).Str("typeKey", typeKey).Msg("failed to get room type")

		return res, fmt.Errorf("failed to get room type: %w", err)
	}

	if res.ID == constant.Empty {
		return res, ErrRoomTypeNotFound
	}

	return res, nil
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateRoomTypeRequest) (res dto.RoomTypeResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".roomtype.Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	if user == constant.Empty {
		user = constant.ContextSystem
	}

	exist, err := s.repo.Exist(ctx, shared.FilterBy(model.FieldTypeKey, req.TypeKey, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if room type exists")

		return res, fmt.Errorf("failed to check if room type exists: %w", err)
	}

	if exist {
		return res, ErrDuplicateTypeKey
	}

	roomType := req.ToModel(user)

	if err = s.repo.Insert(ctx, roomType); err != nil {
		if postgres.ErrorCode(err) == constant.PqErrorCodeUniqueViolation {
			return res, ErrDuplicateTypeKey
		}

		log.Error().Err(err).Msg("failed to create room type")

		return res, fmt.Errorf("failed to create room type: %w", err)
	}

	shared.InvalidateCaches(context.WithoutCancel(ctx), s.cache, CacheGetAllRoomType+"*")

	res.FromModel(roomType)

	return res, nil
}
