package permissions_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stayhub/permissions"
)

func TestGet_EmbeddedFile(t *testing.T) {
	data := permissions.Get()
	require.NotNil(t, data)

	assert.True(t, data.FindPermissions("/v1/auth/login", "POST").Skip)
	assert.True(t, data.FindPermissions("/v1/properties/", "GET").Skip)
	assert.True(t, data.FindPermissions("/v1/payments/callback", "POST").Skip)

	for _, path := range []string{"/v1/bookings/{id}/confirm", "/v1/bookings/{id}/cancel"} {
		transition := data.FindPermissions(path, "POST")
		assert.False(t, transition.Skip, path)
		assert.ElementsMatch(t, []string{"superadmin", "admin"}, transition.Permissions, path)
	}

	mine := data.FindPermissions("/v1/bookings/mybookings", "get")
	assert.False(t, mine.Skip)
	assert.Empty(t, mine.Permissions)
}

func TestFindPermissions(t *testing.T) {
	data, err := permissions.Parse([]byte(`{"endpoints":[{"method":"GET","path":"/v1/rooms/","skip":true},{"method":"DELETE","path":"/v1/rooms/{id}","permissions":["admin"]}]}`))
	require.NoError(t, err)

	assert.True(t, data.FindPermissions("/v1/rooms", "GET").Skip)
	assert.Equal(t, []string{"admin"}, data.FindPermissions("/v1/rooms/{id}/", "DELETE").Permissions)
	assert.Equal(t, permissions.Permission{}, data.FindPermissions("/v1/rooms/{id}", "PATCH"))

	_, err = permissions.Parse([]byte(`{`))
	assert.Error(t, err)
}
