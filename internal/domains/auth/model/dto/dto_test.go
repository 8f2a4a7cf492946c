package dto_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"hotel/infras/jwt"
	"hotel/internal/domains/auth/model/dto"
	"hotel/shared/validator"
)

func TestTokenResponse_FromTokenPair(t *testing.T) {
	tokenPair := &jwt.TokenPair{
		AccessToken:  "test-access-token",
		RefreshToken: "test-refresh-token",
		TokenType:    "Bearer",
		ExpiresIn:    900,
	}

	var response dto.TokenResponse
	response.FromTokenPair(tokenPair)

	assert.Equal(t, tokenPair.AccessToken, response.AccessToken)
	assert.Equal(t, tokenPair.RefreshToken, response.RefreshToken)
	assert.Equal(t, "Bearer", response.TokenType)
	assert.Equal(t, int64(900), response.ExpiresIn)
}

func TestLoginRequest_Validation(t *testing.T) {
	tests := []struct {
		name    string
		req     dto.LoginRequest
		wantMsg string
	}{
		{name: "valid", req: dto.LoginRequest{Email: "admin@hotel.test", Password: "secret"}},
		{name: "missing email", req: dto.LoginRequest{Password: "secret"}, wantMsg: "email is required"},
		{name: "malformed email", req: dto.LoginRequest{Email: "admin", Password: "secret"}, wantMsg: "email must be a valid email address"},
		{name: "missing password", req: dto.LoginRequest{Email: "admin@hotel.test"}, wantMsg: "password is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateStruct(&tt.req)
			if tt.wantMsg == "" {
				assert.NoError(t, err)

				return
			}

			assert.EqualError(t, err, tt.wantMsg)
		})
	}
}

func TestChangePasswordRequest_Validation(t *testing.T) {
	short := dto.ChangePasswordRequest{CurrentPassword: "old-password", NewPassword: "short"}
	assert.EqualError(t, validator.ValidateStruct(&short), "newPassword must be greater than or equal to 8")

	valid := dto.ChangePasswordRequest{CurrentPassword: "old-password", NewPassword: "new-password"}
	assert.NoError(t, validator.ValidateStruct(&valid))
}
