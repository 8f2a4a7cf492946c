package dto

import (
	"hotel/internal/domains/admin/model"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	gModel "hotel/shared/model"
	"hotel/shared/timezone"

	"github.com/google/uuid"
)

type CreateAdminRequest struct {
	Email    string `json:"email"    validate:"required,email,max=100"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

func (c *CreateAdminRequest) ToModel(user, hashedPassword string) model.Admin {
	return model.Admin{
		ID:       uuid.NewString(),
		Email:    c.Email,
		Password: hashedPassword,
		Level:    constant.RoleAdmin,
		Active:   true,
		Metadata: gModel.NewMetadata(user, timezone.Now()),
	}
}

type AdminResponse struct {
	ID        string  `json:"id"`
	Email     string  `json:"email"`
	Level     string  `json:"level"`
	Active    bool    `json:"active"`
	LastLogin *string `json:"lastLogin,omitempty"`
	gDto.Metadata
}

func (r *AdminResponse) FromModel(m model.Admin) {
	r.ID = m.ID
	r.Email = m.Email
	r.Level = m.Level
	r.Active = m.Active
	r.Metadata.FromModel(m.Metadata)

	if m.LastLogin != nil {
		lastLogin := timezone.Format(*m.LastLogin, constant.DateFormat)
		r.LastLogin = &lastLogin
	}
}
