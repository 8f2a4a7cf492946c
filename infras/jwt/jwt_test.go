package jwt_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotel/config"
	"hotel/infras/jwt"
	"hotel/infras/otel/mocks"
)

func newService() jwt.JWT {
	cfg := &config.Config{}
	cfg.App.Name = "hotel"
	cfg.JWT.AccessSecret = "access-secret"
	cfg.JWT.RefreshSecret = "refresh-secret"
	cfg.JWT.AccessExpireMin = 15
	cfg.JWT.RefreshExpireMin = 60

	return jwt.New(cfg, mocks.NewOtel())
}

func TestGenerateAndValidate(t *testing.T) {
	ctx := context.Background()
	service := newService()

	pair, err := service.GenerateTokenPair(ctx, "admin-1", "admin@hotel.test", "admin")
	require.NoError(t, err)
	assert.Equal(t, "Bearer", pair.TokenType)
	assert.Equal(t, int64(900), pair.ExpiresIn)

	claims, err := service.ValidateToken(ctx, pair.AccessToken, jwt.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "admin-1", claims.AdminID)
	assert.Equal(t, "admin@hotel.test", claims.Email)
	assert.Equal(t, "admin", claims.Role)
	assert.Equal(t, "hotel", claims.Issuer)

	_, err = service.ValidateToken(ctx, pair.AccessToken, jwt.RefreshToken)
	assert.ErrorIs(t, err, jwt.ErrInvalidToken)

	_, err = service.ValidateToken(ctx, "not.a.token", jwt.AccessToken)
	assert.ErrorIs(t, err, jwt.ErrInvalidToken)
}

func TestRefreshTokens(t *testing.T) {
	ctx := context.Background()
	service := newService()

	pair, err := service.GenerateTokenPair(ctx, "admin-1", "admin@hotel.test", "admin")
	require.NoError(t, err)

	refreshed, err := service.RefreshTokens(ctx, pair.RefreshToken)
	require.NoError(t, err)

	claims, err := service.ValidateToken(ctx, refreshed.AccessToken, jwt.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "admin-1", claims.AdminID)

	_, err = service.RefreshTokens(ctx, pair.AccessToken)
	assert.Error(t, err)
}

func TestExtractTokenFromHeader(t *testing.T) {
	tests := []struct {
		name    string
		header  string
		want    string
		wantErr error
	}{
		{name: "bearer", header: "Bearer abc.def.ghi", want: "abc.def.ghi"},
		{name: "missing", header: "", wantErr: jwt.ErrMissingHeader},
		{name: "basic scheme", header: "Basic dXNlcjpwYXNz", wantErr: jwt.ErrInvalidHeader},
		{name: "empty token", header: "Bearer ", wantErr: jwt.ErrInvalidHeader},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := jwt.ExtractTokenFromHeader(tt.header)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
