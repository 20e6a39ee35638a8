package jwt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stayhub/config"
	"stayhub/infras/jwt"
)

func newSigner(accessMin int) jwt.JWT {
	cfg := &config.Config{}
	cfg.App.Name = "stayhub"
	cfg.JWT.AccessSecret = "access-secret"
	cfg.JWT.RefreshSecret = "refresh-secret"
	cfg.JWT.AccessExpireMin = accessMin
	cfg.JWT.RefreshExpireMin = 60

	return jwt.New(cfg)
}

func TestJWT_IssueAndValidate(t *testing.T) {
	signer := newSigner(15)

	pair, err := signer.Issue(jwt.Subject{UserID: "user-1", Email: "guest@example.com", Role: "user"})
	require.NoError(t, err)

	assert.Equal(t, "Bearer", pair.TokenType)
	assert.Equal(t, int64(900), pair.ExpiresIn)
	assert.NotEqual(t, pair.AccessToken, pair.RefreshToken)

	claims, err := signer.Validate(pair.AccessToken, jwt.AccessToken)
	require.NoError(t, err)

	assert.Equal(t, "user-1", claims.UserID())
	assert.Equal(t, "guest@example.com", claims.Email)
	assert.Equal(t, "user", claims.Role)
	assert.NotEmpty(t, claims.TokenID())

	refresh, err := signer.Validate(pair.RefreshToken, jwt.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, jwt.RefreshToken, refresh.Kind)
}

func TestJWT_Validate_Rejected(t *testing.T) {
	signer := newSigner(15)

	pair, err := signer.Issue(jwt.Subject{UserID: "user-1", Email: "guest@example.com", Role: "user"})
	require.NoError(t, err)

	expired, err := newSigner(-5).Issue(jwt.Subject{UserID: "user-1", Email: "guest@example.com"})
	require.NoError(t, err)

	otherCfg := &config.Config{}
	otherCfg.App.Name = "stayhub"
	otherCfg.JWT.AccessSecret = "another-secret"
	otherCfg.JWT.RefreshSecret = "another-refresh-secret"
	otherCfg.JWT.AccessExpireMin = 15

	forged, err := jwt.New(otherCfg).Issue(jwt.Subject{UserID: "user-1", Email: "guest@example.com"})
	require.NoError(t, err)

	tests := []struct {
		name    string
		token   string
		kind    jwt.Kind
		wantErr error
	}{
		{name: "refresh token used as access", token: pair.RefreshToken, kind: jwt.AccessToken, wantErr: jwt.ErrInvalidToken},
		{name: "access token used as refresh", token: pair.AccessToken, kind: jwt.RefreshToken, wantErr: jwt.ErrInvalidToken},
		{name: "expired", token: expired.AccessToken, kind: jwt.AccessToken, wantErr: jwt.ErrExpiredToken},
		{name: "foreign secret", token: forged.AccessToken, kind: jwt.AccessToken, wantErr: jwt.ErrInvalidToken},
		{name: "garbage", token: "not-a-token", kind: jwt.AccessToken, wantErr: jwt.ErrInvalidToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := signer.Validate(tt.token, tt.kind)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestFromHeader(t *testing.T) {
	token, err := jwt.FromHeader("Bearer abc.def.ghi")
	require.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", token)

	for _, header := range []string{"", "Bearer ", "Basic abc", "bearer abc"} {
		_, err := jwt.FromHeader(header)
		assert.ErrorIs(t, err, jwt.ErrMissingBearer, header)
	}
}
