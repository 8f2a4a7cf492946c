package service

import (
	"context"
	"time"

	"hotel/config"
	"hotel/infras/otel"
	"hotel/infras/postgres"
	adminDto "hotel/internal/domains/admin/model/dto"
	adminService "hotel/internal/domains/admin/service"
	bookingRepo "hotel/internal/domains/booking/repository"
	roomModel "hotel/internal/domains/room/model"
	roomRepo "hotel/internal/domains/room/repository"
	roomTypeModel "hotel/internal/domains/roomtype/model"
	roomTypeRepo "hotel/internal/domains/roomtype/repository"
	"hotel/shared"
	"hotel/shared/cache"
	"hotel/shared/constant"
	gModel "hotel/shared/model"
	"hotel/shared/timezone"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

type catalogEntry struct {
	roomType    roomTypeModel.RoomType
	roomNumbers []string
}

var catalog = []catalogEntry{
	{
		roomType: roomTypeModel.RoomType{
			TypeKey: "roomType1", DescKey: "roomType1Desc", Price: 450, Size: 40, Guests: 2, Beds: "1",
			Image:    "/images/rooms/deluxe-room.jpg",
			Features: []string{"Wi-Fi", "TV", "Minibar", "AC", "Sea View", "Balcony"},
		},
		roomNumbers: []string{"101", "102"},
	},
	{
		roomType: roomTypeModel.RoomType{
			TypeKey: "roomType2", DescKey: "roomType2Desc", Price: 650, Size: 55, Guests: 2, Beds: "1",
			Image:    "/images/rooms/luxury-suite.jpg",
			Features: []string{"Wi-Fi", "TV", "Kitchen", "Living Room", "Balcony", "Jacuzzi"},
		},
		roomNumbers: []string{"201", "202"},
	},
	{
		roomType: roomTypeModel.RoomType{
			TypeKey: "roomType3", DescKey: "roomType3Desc", Price: 950, Size: 80, Guests: 4, Beds: "2",
			Image:    "/images/rooms/presidential-suite.jpg",
			Features: []string{"Wi-Fi", "TV", "Kitchen", "Living Room", "Balcony", "Dining Area", "Private Pool"},
		},
		roomNumbers: []string{"301", "302"},
	},
	{
		roomType: roomTypeModel.RoomType{
			TypeKey: "roomType4", DescKey: "roomType4Desc", Price: 750, Size: 60, Guests: 4, Beds: "2",
			Image:    "/images/rooms/family-room.jpg",
			Features: []string{"Wi-Fi", "TV", "Extra Beds", "Seating Area", "AC", "Family Friendly"},
		},
		roomNumbers: []string{"401", "402"},
	},
	{
		roomType: roomTypeModel.RoomType{
			TypeKey: "roomType5", DescKey: "roomType5Desc", Price: 1200, Size: 100, Guests: 2, Beds: "1",
			Image:    "/images/rooms/honeymoon-suite.jpg",
			Features: []string{"Wi-Fi", "TV", "Jacuzzi", "Romantic Setup", "Balcony", "Minibar", "Private Terrace"},
		},
		roomNumbers: []string{"501", "502"},
	},
}

type Seed interface {
	Run(ctx context.Context) error
}

type serviceImpl struct {
	roomTypeRepo roomTypeRepo.RoomType
	roomRepo     roomRepo.Room
	bookingRepo  bookingRepo.Booking
	transactor   postgres.Transactor
	admin        adminService.Admin
	cfg          *config.Config
	cache        cache.RedisCache
	otel         otel.Otel
}

func New(
	roomTypeRepo roomTypeRepo.RoomType,
	roomRepo roomRepo.Room,
	bookingRepo bookingRepo.Booking,
	transactor postgres.Transactor,
	admin adminService.Admin,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Seed {
	return &serviceImpl{
		roomTypeRepo: roomTypeRepo,
		roomRepo:     roomRepo,
		bookingRepo:  bookingRepo,
		transactor:   transactor,
		admin:        admin,
		cfg:          cfg,
		cache:        cache,
		otel:         otel,
	}
}

// Run replaces bookings and the room catalog with the default hotel in one transaction, then
// makes sure the configured admin account can log in.
func (s *serviceImpl) Run(ctx context.Context) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".seed.Run")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	roomTypes, rooms := defaultCatalog(timezone.Now())

	err = s.transactor.DoSerializable(ctx, func(ctx context.Context, tx *sqlx.Tx) error {
		if err := s.bookingRepo.DeleteAllTx(ctx, tx); err != nil {
			return errors.Wrap(err, "clearing bookings")
		}

		if err := s.roomRepo.DeleteAllTx(ctx, tx); err != nil {
			return errors.Wrap(err, "clearing rooms")
		}

		if err := s.roomTypeRepo.DeleteAllTx(ctx, tx); err != nil {
			return errors.Wrap(err, "clearing room types")
		}

		if err := s.roomTypeRepo.InsertBulkTx(ctx, tx, roomTypes); err != nil {
			return errors.Wrap(err, "inserting room types")
		}

		if err := s.roomRepo.InsertBulkTx(ctx, tx, rooms); err != nil {
			return errors.Wrap(err, "inserting rooms")
		}

		return nil
	})
	if err != nil {
		return err
	}

	shared.RotateGeneration(context.WithoutCancel(ctx), s.cache, constant.CacheKeyAvailabilityGeneration)
	shared.InvalidateCaches(context.WithoutCancel(ctx), s.cache,
		constant.CachePrefixRoomType+":*",
		constant.CachePrefixRoom+":*",
		constant.CachePrefixBooking+":*",
		constant.CachePrefixAvailability+":*",
	)

	log.Info().Int("roomTypes", len(roomTypes)).Int("rooms", len(rooms)).Msg("Seeded room catalog")

	if s.cfg.Admin.Email == constant.Empty {
		log.Warn().Msg("ADMIN_EMAIL not set, skipping admin account")

		return nil
	}

	err = s.admin.EnsureAccount(ctx, adminDto.CreateAdminRequest{
		Email:    s.cfg.Admin.Email,
		Password: s.cfg.Admin.Password,
	})
	if err != nil {
		return err
	}

	log.Info().Str("email", s.cfg.Admin.Email).Msg("Admin account ready")

	return nil
}

func defaultCatalog(now time.Time) ([]roomTypeModel.RoomType, []roomModel.Room) {
	metadata := gModel.NewMetadata(constant.ContextSystem, now)

	roomTypes := make([]roomTypeModel.RoomType, 0, len(catalog))
	rooms := make([]roomModel.Room, 0, len(catalog)*2)

	for _, entry := range catalog {
		roomType := entry.roomType
		roomType.ID = uuid.NewString()
		roomType.Metadata = metadata

		roomTypes = append(roomTypes, roomType)

		for _, number := range entry.roomNumbers {
			rooms = append(rooms, roomModel.Room{
				ID:         uuid.NewString(),
				RoomTypeID: roomType.ID,
				RoomNumber: number,
				Metadata:   metadata,
			})
		}
	}

	return roomTypes, rooms
}
