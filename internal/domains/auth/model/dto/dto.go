package dto

import (
	"time"

	"github.com/google/uuid"

	"stayhub/infras/jwt"
	userModel "stayhub/internal/domains/user/model"
	userDto "stayhub/internal/domains/user/model/dto"
	"stayhub/shared/constant"
	gModel "stayhub/shared/model"
	"stayhub/shared/timezone"
)

type RegisterRequest struct {
	Email    string  `json:"email"               validate:"required,email,max=255"`
	Password string  `json:"password"            validate:"required,min=8,max=72"`
	FullName *string `json:"full_name,omitempty" validate:"omitempty,max=150"`
	Phone    *string `json:"phone,omitempty"     validate:"omitempty,e164"`
}

// ToUserModel builds a guest account. Self-registered users are their own creator.
func (r *RegisterRequest) ToUserModel(hashedPassword string) userModel.User {
	id := uuid.NewString()
	now := timezone.Now()

	return userModel.User{
		ID:       id,
		Email:    userDto.NormalizeEmail(r.Email),
		Password: hashedPassword,
		Role:     constant.RoleUser,
		FullName: r.FullName,
		Phone:    r.Phone,
		Active:   true,
		Metadata: gModel.NewMetadata(id, now),
	}
}

type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password"     validate:"required,min=8,max=72,nefield=CurrentPassword"`
}

// UpdateLastLoginRequest records a sign in. Password is only set when the
// stored hash is upgraded to the current cost.
type UpdateLastLoginRequest struct {
	LastLogin time.Time `db:"last_login"`
	Password  string    `db:"password"`
}

type UpdatePasswordRequest struct {
	Password string `db:"password"`
}

type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
}

func (r *TokenResponse) FromTokenPair(pair jwt.TokenPair) {
	r.AccessToken = pair.AccessToken
	r.RefreshToken = pair.RefreshToken
	r.TokenType = pair.TokenType
	r.ExpiresIn = pair.ExpiresIn
}

type LoginResponse struct {
	TokenResponse
	User userDto.UserResponse `json:"user"`
}
