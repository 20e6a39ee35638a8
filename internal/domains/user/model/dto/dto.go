package dto

import (
	"strings"

	"github.com/google/uuid"

	"stayhub/internal/domains/user/model"
	"stayhub/shared"
	"stayhub/shared/constant"
	gDto "stayhub/shared/dto"
	gModel "stayhub/shared/model"
	"stayhub/shared/timezone"
)

type CreateUserRequest struct {
	Email      string  `json:"email"                 validate:"required,email,max=255"`
	Password   string  `json:"password"              validate:"required,min=8,max=72"`
	Role       string  `json:"role"                  validate:"omitempty,oneof=superadmin admin user"`
	FullName   *string `json:"full_name,omitempty"   validate:"omitempty,max=150"`
	Phone      *string `json:"phone,omitempty"       validate:"omitempty,e164"`
	IsVerified *bool   `json:"is_verified,omitempty"`
}

func (r *CreateUserRequest) ToModel(createdBy, hashedPassword string) model.User {
	role := r.Role
	if role == constant.Empty {
		role = constant.RoleUser
	}

	verified := false
	if r.IsVerified != nil {
		verified = *r.IsVerified
	}

	now := timezone.Now()

	return model.User{
		ID:         uuid.NewString(),
		Email:      NormalizeEmail(r.Email),
		Password:   hashedPassword,
		Role:       role,
		FullName:   r.FullName,
		Phone:      r.Phone,
		IsVerified: verified,
		Active:     true,
		Metadata: gModel.NewMetadata(createdBy, now),
	}
}

// NormalizeEmail lowercases and trims an address so lookups are case insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

type UserResponse struct {
	ID         string  `json:"id"`
	Email      string  `json:"email"`
	Role       string  `json:"role"`
	FullName   *string `json:"full_name,omitempty"`
	Phone      *string `json:"phone,omitempty"`
	IsVerified bool    `json:"is_verified"`
	LastLogin  *string `json:"last_login,omitempty"`
	Active     bool    `json:"active"`
	gDto.Metadata
}

func (r *UserResponse) FromModel(m model.User) {
	r.ID = m.ID
	r.Email = m.Email
	r.Role = m.Role
	r.FullName = m.FullName
	r.Phone = m.Phone
	r.IsVerified = m.IsVerified
	r.Active = m.Active

	if m.LastLogin != nil {
		lastLogin := m.LastLogin.Format(constant.DateFormat)
		r.LastLogin = &lastLogin
	}

	r.Metadata.FromModel(m.Metadata)
}

type UpdateUserRequest struct {
	Role       *string `db:"role"        json:"role,omitempty"        validate:"omitempty,oneof=superadmin admin user"`
	FullName   *string `db:"full_name"   json:"full_name,omitempty"   validate:"omitempty,max=150"`
	Phone      *string `db:"phone"       json:"phone,omitempty"       validate:"omitempty,e164"`
	IsVerified *bool   `db:"is_verified" json:"is_verified,omitempty"`
	Active     *bool   `db:"active"      json:"active,omitempty"`
}

func (r UpdateUserRequest) Empty() bool {
	return r == UpdateUserRequest{}
}

// UpdateProfileRequest is what a signed-in user may change about themselves.
type UpdateProfileRequest struct {
	FullName *string `db:"full_name" json:"full_name,omitempty" validate:"omitempty,max=150"`
	Phone    *string `db:"phone"     json:"phone,omitempty"     validate:"omitempty,e164"`
}

func (r UpdateProfileRequest) Empty() bool {
	return r == UpdateProfileRequest{}
}

type GetUsersResponse struct {
	Users     []UserResponse `json:"users"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetUsersResponse) FromModels(models []model.User, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Users = make([]UserResponse, len(models))
	for i, m := range models {
		r.Users[i].FromModel(m)
	}
}
