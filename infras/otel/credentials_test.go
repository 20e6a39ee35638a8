package otel

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTransportCredentials(t *testing.T) {
	assert.Equal(t, "insecure", transportCredentials(true).Info().SecurityProtocol)
	assert.Equal(t, "tls", transportCredentials(false).Info().SecurityProtocol)
}
