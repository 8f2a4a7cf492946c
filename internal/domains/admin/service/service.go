package service

import (
	"context"
	"fmt"

	"hotel/infras/otel"
	"hotel/internal/domains/admin/model"
	"hotel/internal/domains/admin/model/dto"
	"hotel/internal/domains/admin/repository"
	"hotel/shared"
	"hotel/shared/constant"
	"hotel/shared/failure"
	"hotel/shared/password"
	"hotel/shared/timezone"
	"hotel/shared/validator"

	"github.com/rs/zerolog/log"
)

var (
	ErrAdminNotFound = failure.NotFound("admin not found")
)

type Admin interface {
	Profile(ctx context.Context, id string) (dto.AdminResponse, error)
	EnsureAccount(ctx context.Context, req dto.CreateAdminRequest) error
}

type serviceImpl struct {
	repo repository.Admin
	otel otel.Otel
}

func New(repo repository.Admin, otel otel.Otel) Admin {
	return &serviceImpl{
		repo: repo,
		otel: otel,
	}
}

func (s *serviceImpl) Profile(ctx context.Context, id string) (res dto.AdminResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".admin.Profile")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	admin, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Str("adminId", id).Msg("failed to get admin")

		return res, fmt.Errorf("failed to get admin: %w", err)
	}

	if admin.ID == constant.Empty {
		return res, ErrAdminNotFound
	}

	res.FromModel(admin)

	return res, nil
}

// EnsureAccount creates the admin, or resets the password and reactivates it when the email exists.
func (s *serviceImpl) EnsureAccount(ctx context.Context, req dto.CreateAdminRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".admin.EnsureAccount")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = validator.ValidateStruct(&req); err != nil {
		return err
	}

	hashed, err := password.Hash(req.Password)
	if err != nil {
		log.Error().Err(err).Msg("failed to hash password")

		return fmt.Errorf("failed to hash password: %w", err)
	}

	filter := shared.FilterBy(model.FieldEmail, req.Email, model.TableName)

	existing, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get admin")

		return fmt.Errorf("failed to get admin: %w", err)
	}

	if existing.ID == constant.Empty {
		if err = s.repo.Insert(ctx, req.ToModel(constant.ContextSystem, hashed)); err != nil {
			log.Error().Err(err).Msg("failed to create admin")

			return fmt.Errorf("failed to create admin: %w", err)
		}

		log.Info().Str("email", req.Email).Msg("admin account created")

		return nil
	}

	fields := map[string]any{
		model.FieldPassword:      hashed,
		model.FieldActive:        true,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: constant.ContextSystem,
	}

	if err = s.repo.Update(ctx, fields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update admin")

		return fmt.Errorf("failed to update admin: %w", err)
	}

	log.Info().Str("email", req.Email).Msg("admin account updated")

	return nil
}
