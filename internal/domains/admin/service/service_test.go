package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"hotel/infras/otel/mocks"
	adminMocks "hotel/internal/domains/admin/mocks"
	"hotel/internal/domains/admin/model"
	"hotel/internal/domains/admin/model/dto"
	"hotel/internal/domains/admin/service"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"
	"hotel/shared/password"
)

func TestAdminService_Profile(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := adminMocks.NewMockAdmin(ctrl)
	svc := service.New(mockRepo, mocks.NewOtel())

	lastLogin := time.Date(2024, 6, 1, 9, 30, 0, 0, time.UTC)

	tests := []struct {
		name      string
		setupMock func()
		wantCode  int
	}{
		{
			name: "found",
			setupMock: func() {
				mockRepo.EXPECT().Get(gomock.Any(), gomock.Any()).
					Return(model.Admin{ID: "admin-1", Email: "admin@hotel.test", Level: "admin", Active: true, LastLogin: &lastLogin}, nil)
			},
		},
		{
			name: "missing",
			setupMock: func() {
				mockRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Admin{}, nil)
			},
			wantCode: http.StatusNotFound,
		},
		{
			name: "store failure",
			setupMock: func() {
				mockRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Admin{}, errors.New("db down"))
			},
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			res, err := svc.Profile(context.Background(), "admin-1")
			if tt.wantCode != 0 {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, "admin@hotel.test", res.Email)
			assert.NotNil(t, res.LastLogin)
		})
	}
}

func TestAdminService_EnsureAccount(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := adminMocks.NewMockAdmin(ctrl)
	svc := service.New(mockRepo, mocks.NewOtel())

	req := dto.CreateAdminRequest{Email: "admin@hotel.test", Password: "correct-horse"}

	tests := []struct {
		name      string
		req       dto.CreateAdminRequest
		setupMock func()
		wantCode  int
	}{
		{
			name: "creates missing admin with a hashed password",
			req:  req,
			setupMock: func() {
				mockRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Admin{}, nil)
				mockRepo.EXPECT().Insert(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, admin model.Admin) error {
					assert.Equal(t, "admin@hotel.test", admin.Email)
					assert.Equal(t, "admin", admin.Level)
					assert.True(t, admin.Active)
					assert.NoError(t, password.Verify("correct-horse", admin.Password))

					return nil
				})
			},
		},
		{
			name: "updates existing admin",
			req:  req,
			setupMock: func() {
				mockRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Admin{ID: "admin-1"}, nil)
				mockRepo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
						assert.Equal(t, true, fields[model.FieldActive])
						assert.NoError(t, password.Verify("correct-horse", fields[model.FieldPassword].(string)))

						return nil
					})
			},
		},
		{
			name:      "invalid email",
			req:       dto.CreateAdminRequest{Email: "admin", Password: "correct-horse"},
			setupMock: func() {},
			wantCode:  http.StatusBadRequest,
		},
		{
			name:      "short password",
			req:       dto.CreateAdminRequest{Email: "admin@hotel.test", Password: "short"},
			setupMock: func() {},
			wantCode:  http.StatusBadRequest,
		},
		{
			name: "insert failure",
			req:  req,
			setupMock: func() {
				mockRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Admin{}, nil)
				mockRepo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(errors.New("db down"))
			},
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			err := svc.EnsureAccount(context.Background(), tt.req)
			if tt.wantCode != 0 {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
		})
	}
}
