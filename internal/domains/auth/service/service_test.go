package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"

	"stayhub/config"
	"stayhub/infras/jwt"
	jwtMocks "stayhub/infras/jwt/mocks"
	"stayhub/infras/otel/mocks"
	"stayhub/internal/domains/auth/model/dto"
	"stayhub/internal/domains/auth/service"
	userMocks "stayhub/internal/domains/user/mocks"
	userModel "stayhub/internal/domains/user/model"
	cacheMocks "stayhub/shared/cache/mocks"
	"stayhub/shared/constant"
	"stayhub/shared/failure"
	"stayhub/shared/password"
)

type fixture struct {
	users *userMocks.MockUser
	jwt   *jwtMocks.MockJWT
	svc   service.Auth
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	users := userMocks.NewMockUser(ctrl)
	signer := jwtMocks.NewMockJWT(ctrl)
	cache := cacheMocks.NewMockRedisCache(ctrl)

	cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	return fixture{
		users: users,
		jwt:   signer,
		svc:   service.New(users, &config.Config{}, cache, mocks.NewOtel(), signer),
	}
}

func guest(t *testing.T, plain string) userModel.User {
	t.Helper()

	hashed, err := password.Hash(plain)
	require.NoError(t, err)

	return userModel.User{
		ID:       "user-1",
		Email:    "guest@example.com",
		Password: hashed,
		Role:     constant.RoleUser,
		Active:   true,
	}
}

var pair = jwt.TokenPair{AccessToken: "access-token", RefreshToken: "refresh-token", TokenType: "Bearer", ExpiresIn: 900}

func TestAuthService_Register(t *testing.T) {
	req := dto.RegisterRequest{Email: "Guest@Example.com", Password: "password123"}

	tests := []struct {
		name      string
		setupMock func(f fixture)
		wantCode  int
	}{
		{
			name: "successful registration",
			setupMock: func(f fixture) {
				f.users.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
				f.users.EXPECT().Insert(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, user userModel.User) error {
					assert.Equal(t, "guest@example.com", user.Email)
					assert.Equal(t, constant.RoleUser, user.Role)
					assert.NoError(t, password.Verify("password123", user.Password))

					return nil
				})
			},
		},
		{
			name: "email taken",
			setupMock: func(f fixture) {
				f.users.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
			},
			wantCode: 409,
		},
		{
			name: "concurrent registration hits the unique index",
			setupMock: func(f fixture) {
				f.users.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
				f.users.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(&pq.Error{Code: "23505"})
			},
			wantCode: 409,
		},
		{
			name: "repository error",
			setupMock: func(f fixture) {
				f.users.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, errors.New("database error"))
			},
			wantCode: 500,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			err := f.svc.Register(context.Background(), req)

			time.Sleep(10 * time.Millisecond)

			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	user := guest(t, "password123")

	inactive := user
	inactive.Active = false

	weakHash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)

	legacy := user
	legacy.Password = string(weakHash)

	tests := []struct {
		name      string
		req       dto.LoginRequest
		setupMock func(f fixture)
		wantCode  int
	}{
		{
			name: "successful login",
			req:  dto.LoginRequest{Email: "GUEST@example.com", Password: "password123"},
			setupMock: func(f fixture) {
				f.users.EXPECT().Get(gomock.Any(), gomock.Any()).Return(user, nil)
				f.jwt.EXPECT().Issue(jwt.Subject{UserID: user.ID, Email: user.Email, Role: user.Role}).Return(pair, nil)
				f.users.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, fields map[string]any, _ any) error {
					assert.Contains(t, fields, userModel.FieldLastLogin)
					assert.NotContains(t, fields, userModel.FieldPassword)
					assert.Equal(t, user.ID, fields[constant.FieldModifiedBy])

					return nil
				})
			},
		},
		{
			name: "weak hash is upgraded on sign in",
			req:  dto.LoginRequest{Email: "guest@example.com", Password: "password123"},
			setupMock: func(f fixture) {
				f.users.EXPECT().Get(gomock.Any(), gomock.Any()).Return(legacy, nil)
				f.jwt.EXPECT().Issue(gomock.Any()).Return(pair, nil)
				f.users.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, fields map[string]any, _ any) error {
					hashed, ok := fields[userModel.FieldPassword].(string)
					require.True(t, ok)
					assert.False(t, password.NeedsRehash(hashed))
					assert.NoError(t, password.Verify("password123", hashed))

					return nil
				})
			},
		},
		{
			name: "last login failure does not block sign in",
			req:  dto.LoginRequest{Email: "guest@example.com", Password: "password123"},
			setupMock: func(f fixture) {
				f.users.EXPECT().Get(gomock.Any(), gomock.Any()).Return(user, nil)
				f.jwt.EXPECT().Issue(gomock.Any()).Return(pair, nil)
				f.users.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("database error"))
			},
		},
		{
			name: "unknown email",
			req:  dto.LoginRequest{Email: "nobody@example.com", Password: "password123"},
			setupMock: func(f fixture) {
				f.users.EXPECT().Get(gomock.Any(), gomock.Any()).Return(userModel.User{}, nil)
			},
			wantCode: 400,
		},
		{
			name: "wrong password",
			req:  dto.LoginRequest{Email: "guest@example.com", Password: "wrong-password"},
			setupMock: func(f fixture) {
				f.users.EXPECT().Get(gomock.Any(), gomock.Any()).Return(user, nil)
			},
			wantCode: 400,
		},
		{
			name: "deactivated account",
			req:  dto.LoginRequest{Email: "guest@example.com", Password: "password123"},
			setupMock: func(f fixture) {
				f.users.EXPECT().Get(gomock.Any(), gomock.Any()).Return(inactive, nil)
			},
			wantCode: 403,
		},
		{
			name: "repository error",
			req:  dto.LoginRequest{Email: "guest@example.com", Password: "password123"},
			setupMock: func(f fixture) {
				f.users.EXPECT().Get(gomock.Any(), gomock.Any()).Return(userModel.User{}, errors.New("database error"))
			},
			wantCode: 500,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			res, err := f.svc.Login(context.Background(), tt.req)

			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, pair.AccessToken, res.AccessToken)
			assert.Equal(t, pair.RefreshToken, res.RefreshToken)
			assert.Equal(t, "Bearer", res.TokenType)
			assert.Equal(t, user.ID, res.User.ID)
		})
	}
}

func TestAuthService_RefreshToken(t *testing.T) {
	user := guest(t, "password123")
	user.Role = constant.RoleAdmin

	claims := jwt.Claims{Email: user.Email, Kind: jwt.RefreshToken}
	claims.Subject = user.ID

	tests := []struct {
		name      string
		setupMock func(f fixture)
		wantCode  int
	}{
		{
			name: "issues a pair with the current role",
			setupMock: func(f fixture) {
				f.jwt.EXPECT().Validate("refresh-token", jwt.RefreshToken).Return(claims, nil)
				f.users.EXPECT().Get(gomock.Any(), gomock.Any()).Return(user, nil)
				f.jwt.EXPECT().Issue(jwt.Subject{UserID: user.ID, Email: user.Email, Role: constant.RoleAdmin}).Return(pair, nil)
			},
		},
		{
			name: "invalid token",
			setupMock: func(f fixture) {
				f.jwt.EXPECT().Validate("refresh-token", jwt.RefreshToken).Return(jwt.Claims{}, jwt.ErrExpiredToken)
			},
			wantCode: 401,
		},
		{
			name: "user no longer exists",
			setupMock: func(f fixture) {
				f.jwt.EXPECT().Validate("refresh-token", jwt.RefreshToken).Return(claims, nil)
				f.users.EXPECT().Get(gomock.Any(), gomock.Any()).Return(userModel.User{}, nil)
			},
			wantCode: 401,
		},
		{
			name: "repository error",
			setupMock: func(f fixture) {
				f.jwt.EXPECT().Validate("refresh-token", jwt.RefreshToken).Return(claims, nil)
				f.users.EXPECT().Get(gomock.Any(), gomock.Any()).Return(userModel.User{}, errors.New("database error"))
			},
			wantCode: 500,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			res, err := f.svc.RefreshToken(context.Background(), dto.RefreshTokenRequest{RefreshToken: "refresh-token"})

			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, pair.AccessToken, res.AccessToken)
		})
	}
}

func TestAuthService_ChangePassword(t *testing.T) {
	user := guest(t, "password123")
	signedIn := context.WithValue(context.Background(), constant.ContextKeyUserID, user.ID)

	tests := []struct {
		name      string
		ctx       context.Context
		req       dto.ChangePasswordRequest
		setupMock func(f fixture)
		wantCode  int
	}{
		{
			name: "successful change",
			ctx:  signedIn,
			req:  dto.ChangePasswordRequest{CurrentPassword: "password123", NewPassword: "password456"},
			setupMock: func(f fixture) {
				f.users.EXPECT().Get(gomock.Any(), gomock.Any()).Return(user, nil)
				f.users.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, fields map[string]any, _ any) error {
					hashed, ok := fields[userModel.FieldPassword].(string)
					require.True(t, ok)
					assert.NoError(t, password.Verify("password456", hashed))

					return nil
				})
			},
		},
		{
			name:      "anonymous caller",
			ctx:       context.Background(),
			req:       dto.ChangePasswordRequest{CurrentPassword: "password123", NewPassword: "password456"},
			setupMock: func(fixture) {},
			wantCode:  401,
		},
		{
			name: "wrong current password",
			ctx:  signedIn,
			req:  dto.ChangePasswordRequest{CurrentPassword: "nope-nope", NewPassword: "password456"},
			setupMock: func(f fixture) {
				f.users.EXPECT().Get(gomock.Any(), gomock.Any()).Return(user, nil)
			},
			wantCode: 400,
		},
		{
			name: "user not found",
			ctx:  signedIn,
			req:  dto.ChangePasswordRequest{CurrentPassword: "password123", NewPassword: "password456"},
			setupMock: func(f fixture) {
				f.users.EXPECT().Get(gomock.Any(), gomock.Any()).Return(userModel.User{}, nil)
			},
			wantCode: 404,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			err := f.svc.ChangePassword(tt.ctx, tt.req)

			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
		})
	}
}
