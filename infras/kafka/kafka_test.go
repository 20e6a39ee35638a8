package kafka_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stayhub/config"
	"stayhub/infras/kafka"
	"stayhub/infras/otel/mocks"
)

func TestMessage_ToKafkaMessage(t *testing.T) {
	message := kafka.NewMessage("LP123456", "booking.created", map[string]string{"booking_number": "LP123456"})

	msg, err := message.ToKafkaMessage()
	require.NoError(t, err)

	assert.Equal(t, []byte("LP123456"), msg.Key)
	require.Len(t, msg.Headers, 1)
	assert.Equal(t, "booking.created", string(msg.Headers[0].Value))

	var event struct {
		Type string            `json:"type"`
		Data map[string]string `json:"data"`
	}
	require.NoError(t, json.Unmarshal(msg.Value, &event))

	assert.Equal(t, "booking.created", event.Type)
	assert.Equal(t, "LP123456", event.Data["booking_number"])
}

func TestNew_DisabledPublisherIsNoop(t *testing.T) {
	publisher := kafka.New(&config.Config{}, mocks.NewOtel())

	err := publisher.Publish(context.Background(), "stayhub.booking", kafka.NewMessage("k", "booking.created", nil))
	assert.NoError(t, err)
	assert.NoError(t, publisher.Close())
}
