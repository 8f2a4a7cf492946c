package middleware_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"hotel/config"
	"hotel/infras/jwt"
	jwtMocks "hotel/infras/jwt/mocks"
	"hotel/infras/otel/mocks"
	"hotel/permissions"
	"hotel/shared/constant"
	"hotel/transport/http/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestAuthRole_AdminRoutes(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockJWT := jwtMocks.NewMockJWT(ctrl)
	authRole := middleware.NewAuthRoleMiddleware(mockJWT, mocks.NewOtel(), permissions.Get(), &config.Config{})

	router := chi.NewRouter()
	router.Route("/v1/admin", func(r chi.Router) {
		r.Use(authRole.Auth, authRole.RBAC)
		r.Get("/statistics", func(w http.ResponseWriter, r *http.Request) {
			adminID, _ := r.Context().Value(constant.ContextKeyUserID).(string)
			assert.Equal(t, "admin-1", adminID)

			w.WriteHeader(http.StatusOK)
		})
		r.Get("/unlisted", func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusOK)
		})
	})

	tests := []struct {
		name      string
		target    string
		header    string
		setupMock func()
		wantCode  int
	}{
		{
			name:      "missing header",
			target:    "/v1/admin/statistics",
			setupMock: func() {},
			wantCode:  http.StatusUnauthorized,
		},
		{
			name:      "not a bearer token",
			target:    "/v1/admin/statistics",
			header:    "Basic abc",
			setupMock: func() {},
			wantCode:  http.StatusUnauthorized,
		},
		{
			name:   "expired token",
			target: "/v1/admin/statistics",
			header: "Bearer expired",
			setupMock: func() {
				mockJWT.EXPECT().ValidateToken(gomock.Any(), "expired", jwt.AccessToken).Return(nil, jwt.ErrExpiredToken)
			},
			wantCode: http.StatusUnauthorized,
		},
		{
			name:   "admin allowed",
			target: "/v1/admin/statistics",
			header: "Bearer good",
			setupMock: func() {
				mockJWT.EXPECT().ValidateToken(gomock.Any(), "good", jwt.AccessToken).
					Return(&jwt.Claims{AdminID: "admin-1", Email: "admin@hotel.test", Role: constant.RoleAdmin}, nil)
			},
			wantCode: http.StatusOK,
		},
		{
			name:   "staff forbidden",
			target: "/v1/admin/statistics",
			header: "Bearer staff",
			setupMock: func() {
				mockJWT.EXPECT().ValidateToken(gomock.Any(), "staff", jwt.AccessToken).
					Return(&jwt.Claims{AdminID: "staff-1", Email: "staff@hotel.test", Role: constant.RoleStaff}, nil)
			},
			wantCode: http.StatusForbidden,
		},
		{
			name:   "endpoint without permissions entry",
			target: "/v1/admin/unlisted",
			header: "Bearer good",
			setupMock: func() {
				mockJWT.EXPECT().ValidateToken(gomock.Any(), "good", jwt.AccessToken).
					Return(&jwt.Claims{AdminID: "admin-1", Email: "admin@hotel.test", Role: constant.RoleAdmin}, nil)
			},
			wantCode: http.StatusForbidden,
		},
		{
			name:   "claims without subject",
			target: "/v1/admin/statistics",
			header: "Bearer empty",
			setupMock: func() {
				mockJWT.EXPECT().ValidateToken(gomock.Any(), "empty", jwt.AccessToken).
					Return(&jwt.Claims{Role: constant.RoleAdmin}, nil)
			},
			wantCode: http.StatusUnauthorized,
		},
		{
			name:   "unexpected validation error",
			target: "/v1/admin/statistics",
			header: "Bearer broken",
			setupMock: func() {
				mockJWT.EXPECT().ValidateToken(gomock.Any(), "broken", jwt.AccessToken).Return(nil, errors.New("boom"))
			},
			wantCode: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			req := httptest.NewRequest(http.MethodGet, tt.target, nil)
			if tt.header != "" {
				req.Header.Set(constant.RequestHeaderAuthorization, tt.header)
			}

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantCode, rec.Code)
		})
	}
}
