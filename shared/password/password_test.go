package password_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"stayhub/shared/password"
)

func TestHash(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{name: "regular password", input: "password123"},
		{name: "unicode", input: "كلمة-سر-آمنة"},
		{name: "exactly the limit", input: strings.Repeat("a", password.MaxLength)},
		{name: "empty", input: "", wantErr: password.ErrEmptyPassword},
		{name: "too long", input: strings.Repeat("a", password.MaxLength+1), wantErr: password.ErrPasswordTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hashed, err := password.Hash(tt.input)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, hashed)

				return
			}

			require.NoError(t, err)
			assert.NotEqual(t, tt.input, hashed)
			assert.NoError(t, password.Verify(tt.input, hashed))
		})
	}
}

func TestHash_Salted(t *testing.T) {
	first, err := password.Hash("password123")
	require.NoError(t, err)

	second, err := password.Hash("password123")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestVerify(t *testing.T) {
	hashed, err := password.Hash("password123")
	require.NoError(t, err)

	tests := []struct {
		name     string
		password string
		hash     string
		wantErr  error
		wantAny  bool
	}{
		{name: "match", password: "password123", hash: hashed},
		{name: "mismatch", password: "password124", hash: hashed, wantErr: password.ErrInvalidPassword},
		{name: "case matters", password: "PASSWORD123", hash: hashed, wantErr: password.ErrInvalidPassword},
		{name: "empty password", password: "", hash: hashed, wantErr: password.ErrInvalidPassword},
		{name: "empty hash", password: "password123", hash: "", wantErr: password.ErrInvalidPassword},
		{name: "not a bcrypt hash", password: "password123", hash: "plain-text", wantAny: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := password.Verify(tt.password, tt.hash)

			switch {
			case tt.wantAny:
				assert.Error(t, err)
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
			default:
				assert.NoError(t, err)
			}
		})
	}
}

func TestNeedsRehash(t *testing.T) {
	weak, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)

	current, err := password.Hash("password123")
	require.NoError(t, err)

	assert.True(t, password.NeedsRehash(string(weak)))
	assert.False(t, password.NeedsRehash(current))
	assert.False(t, password.NeedsRehash("not-a-hash"))
}
