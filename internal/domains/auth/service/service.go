package service

import (
	"context"
	"errors"
	"fmt"

	"hotel/infras/jwt"
	"hotel/infras/otel"
	adminModel "hotel/internal/domains/admin/model"
	adminRepo "hotel/internal/domains/admin/repository"
	"hotel/internal/domains/auth/model/dto"
	"hotel/shared"
	"hotel/shared/constant"
	"hotel/shared/failure"
	"hotel/shared/password"
	"hotel/shared/timezone"

	"github.com/rs/zerolog/log"
)

var (
	ErrInvalidCredentials  = failure.Unauthorized("invalid email or password")
	ErrInvalidRefreshToken = failure.Unauthorized("invalid refresh token")
	ErrAccountDeactivated  = failure.Forbidden("admin account is deactivated")
	ErrWrongPassword       = failure.BadRequestFromString("current password is incorrect")
	ErrAdminNotFound       = failure.NotFound("admin not found")
)

type Auth interface {
	Login(ctx context.Context, req dto.LoginRequest) (dto.TokenResponse, error)
	RefreshToken(ctx context.Context, req dto.RefreshTokenRequest) (dto.TokenResponse, error)
	ChangePassword(ctx context.Context, req dto.ChangePasswordRequest, adminID string) error
}

type serviceImpl struct {
	adminRepo  adminRepo.Admin
	otel       otel.Otel
	jwtService jwt.JWT
}

func New(adminRepo adminRepo.Admin, otel otel.Otel, jwt jwt.JWT) Auth {
	return &serviceImpl{
		adminRepo:  adminRepo,
		otel:       otel,
		jwtService: jwt,
	}
}

func (s *serviceImpl) Login(ctx context.Context, req dto.LoginRequest) (res dto.TokenResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".auth.Login")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	filter := shared.FilterBy(adminModel.FieldEmail, req.Email, adminModel.TableName)

	admin, err := s.adminRepo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get admin")

		return res, fmt.Errorf("failed to get admin: %w", err)
	}

	if admin.ID == constant.Empty {
		log.Warn().Str("email", req.Email).Msg("login attempt with unknown email")

		return res, ErrInvalidCredentials
	}

	if err = password.Verify(req.Password, admin.Password); err != nil {
		if !errors.Is(err, password.ErrInvalidPassword) {
			log.Error().Err(err).Str("adminId", admin.ID).Msg("failed to verify password")
		}

		log.Warn().Str("email", req.Email).Msg("login attempt with wrong password")

		return res, ErrInvalidCredentials
	}

	if !admin.Active {
		return res, ErrAccountDeactivated
	}

	tokenPair, err := s.jwtService.GenerateTokenPair(ctx, admin.ID, admin.Email, admin.Level)
	if err != nil {
		log.Error().Err(err).Msg("failed to generate tokens")

		return res, fmt.Errorf("failed to generate tokens: %w", err)
	}

	now := timezone.Now()
	fields := map[string]any{
		adminModel.FieldLastLogin: now,
		constant.FieldModifiedAt:  now,
		constant.FieldModifiedBy:  admin.ID,
	}

	if err = s.adminRepo.Update(ctx, fields, filter); err != nil {
		log.Warn().Err(err).Str("adminId", admin.ID).Msg("failed to update last login")
	}

	res.FromTokenPair(tokenPair)

	return res, nil
}

func (s *serviceImpl) RefreshToken(ctx context.Context, req dto.RefreshTokenRequest) (res dto.TokenResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".auth.RefreshToken")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	tokenPair, err := s.jwtService.RefreshTokens(ctx, req.RefreshToken)
	if err != nil {
		log.Warn().Err(err).Msg("failed to refresh tokens")

		return res, ErrInvalidRefreshToken
	}

	res.FromTokenPair(tokenPair)

	return res, nil
}

func (s *serviceImpl) ChangePassword(ctx context.Context, req dto.ChangePasswordRequest, adminID string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".auth.ChangePassword")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	filter := shared.FilterByID(adminID, adminModel.FieldID, adminModel.TableName)

	admin, err := s.adminRepo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get admin")

		return fmt.Errorf("failed to get admin: %w", err)
	}

	if admin.ID == constant.Empty {
		return ErrAdminNotFound
	}

	if err = password.Verify(req.CurrentPassword, admin.Password); err != nil {
		return ErrWrongPassword
	}

	hashed, err := password.Hash(req.NewPassword)
	if err != nil {
		log.Error().Err(err).Msg("failed to hash new password")

		return fmt.Errorf("failed to hash new password: %w", err)
	}

	fields := map[string]any{
		adminModel.FieldPassword: hashed,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: adminID,
	}

	if err = s.adminRepo.Update(ctx, fields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update password")

		return fmt.Errorf("failed to update password: %w", err)
	}

	return nil
}
