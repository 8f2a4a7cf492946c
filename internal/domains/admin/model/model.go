package model

import (
	"time"

	"hotel/shared/model"
)

const (
	TableName  = "admins"
	EntityName = "admin"

	FieldID        = "id"
	FieldEmail     = "email"
	FieldPassword  = "password"
	FieldLevel     = "level"
	FieldActive    = "active"
	FieldLastLogin = "last_login"
)

type Admin struct {
	ID        string     `db:"id"`
	Email     string     `db:"email"`
	Password  string     `db:"password"`
	Level     string     `db:"level"`
	Active    bool       `db:"active"`
	LastLogin *time.Time `db:"last_login"`
	model.Metadata
}
