package model

import (
	"time"

	"stayhub/shared/model"
)

const (
	TableName  = "users"
	EntityName = "user"

	FieldID         = "id"
	FieldEmail      = "email"
	FieldPassword   = "password"
	FieldRole       = "role"
	FieldFullName   = "full_name"
	FieldPhone      = "phone"
	FieldIsVerified = "is_verified"
	FieldLastLogin  = "last_login"
	FieldActive     = "active"

	CacheGet    = "user:get"
	CacheGetAll = "user:gets"
	CacheCount  = "user:count"
)

// User is an account able to sign in. Guests hold the "user" role, staff hold "admin" or "superadmin".
type User struct {
	ID         string     `db:"id"`
	Email      string     `db:"email"`
	Password   string     `db:"password"`
	Role       string     `db:"role"`
	FullName   *string    `db:"full_name"`
	Phone      *string    `db:"phone"`
	IsVerified bool       `db:"is_verified"`
	LastLogin  *time.Time `db:"last_login"`
	Active     bool       `db:"active"`
	model.Metadata
}

func (u User) Exists() bool {
	return u.ID != ""
}
