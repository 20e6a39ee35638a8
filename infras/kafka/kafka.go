package kafka

//go:generate go run go.uber.org/mock/mockgen -source=./kafka.go -destination=./mocks/kafka_mock.go -package=mocks

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	kafkaGo "github.com/segmentio/kafka-go"
	"github.com/segmentio/kafka-go/sasl"
	"github.com/segmentio/kafka-go/sasl/plain"

	"stayhub/config"
	"stayhub/infras/otel"
	"stayhub/shared/constant"
	"stayhub/shared/timezone"
)

const (
	headerEventType = "event-type"
	writeTimeout    = 10 * time.Second
)

// Event is the envelope every domain event is published in.
type Event struct {
	Type       string    `json:"type"`
	OccurredAt time.Time `json:"occurred_at"`
	Data       any       `json:"data"`
}

type Message struct {
	Key   string
	Event Event
}

func NewMessage(key, eventType string, data any) Message {
	return Message{
		Key: key,
		Event: Event{
			Type:       eventType,
			OccurredAt: timezone.Now(),
			Data:       data,
		},
	}
}

func (m *Message) ToKafkaMessage() (kafkaGo.Message, error) {
	value, err := json.Marshal(m.Event)
	if err != nil {
		log.Error().Err(err).Str("event", m.Event.Type).Msg("Failed to marshal event to JSON")

		return kafkaGo.Message{}, fmt.Errorf("failed to marshal event to JSON: %w", err)
	}

	return kafkaGo.Message{
		Key:     []byte(m.Key),
		Value:   value,
		Headers: []kafkaGo.Header{{Key: headerEventType, Value: []byte(m.Event.Type)}},
	}, nil
}

type Publisher interface {
	Publish(ctx context.Context, topic string, messages ...Message) error
	Close() error
}

type publisherImpl struct {
	config    *config.Config
	otel      otel.Otel
	transport *kafkaGo.Transport

	mu      sync.Mutex
	writers map[string]*kafkaGo.Writer
}

// New returns a kafka-backed publisher, or a publisher that only logs when kafka is disabled.
func New(config *config.Config, otel otel.Otel) Publisher {
	if !config.Kafka.Enable || len(config.Kafka.Brokers) == 0 {
		log.Warn().Msg("Kafka disabled, domain events will only be logged")

		return &logPublisher{}
	}

	var mechanism sasl.Mechanism
	if config.Kafka.SASL.Username != constant.Empty {
		mechanism = plain.Mechanism{
			Username: config.Kafka.SASL.Username,
			Password: config.Kafka.SASL.Password,
		}
	}

	log.Info().Strs("brokers", config.Kafka.Brokers).Msg("Kafka publisher initialized")

	return &publisherImpl{
		config:    config,
		otel:      otel,
		transport: &kafkaGo.Transport{SASL: mechanism},
		writers:   map[string]*kafkaGo.Writer{},
	}
}

func (k *publisherImpl) writer(topic string) *kafkaGo.Writer {
	k.mu.Lock()
	defer k.mu.Unlock()

	if w, ok := k.writers[topic]; ok {
		return w
	}

	w := &kafkaGo.Writer{
		Addr:                   kafkaGo.TCP(k.config.Kafka.Brokers...),
		Topic:                  topic,
		Transport:              k.transport,
		Balancer:               &kafkaGo.Hash{},
		AllowAutoTopicCreation: true,
		RequiredAcks:           kafkaGo.RequireOne,
		WriteTimeout:           writeTimeout,
	}
	k.writers[topic] = w

	return w
}

func (k *publisherImpl) Publish(ctx context.Context, topic string, messages ...Message) (err error) {
	ctx, scope := k.otel.NewScope(ctx, constant.OtelKafkaScopeName, constant.OtelKafkaScopeName+".Publish")
	defer scope.End()
	defer scope.TraceIfError(err)

	scope.SetAttributes(map[string]any{
		"messaging.destination": topic,
		"messaging.batch_size":  len(messages),
	})

	msgs := make([]kafkaGo.Message, 0, len(messages))

	for _, message := range messages {
		msg, err := message.ToKafkaMessage()
		if err != nil {
			return err
		}

		msgs = append(msgs, msg)
	}

	if err = k.writer(topic).WriteMessages(ctx, msgs...); err != nil {
		log.Error().Err(err).Str("topic", topic).Msg("Failed to send message to Kafka.")

		return fmt.Errorf("failed to send message to Kafka: %w", err)
	}

	log.Info().Str("topic", topic).Int("count", len(msgs)).Msg("Sent message successfully.")

	return nil
}

func (k *publisherImpl) Close() error {
	k.mu.Lock()
	defer k.mu.Unlock()

	for topic, w := range k.writers {
		if err := w.Close(); err != nil {
			log.Error().Err(err).Str("topic", topic).Msg("Failed to close Kafka writer.")
		}
	}

	k.writers = map[string]*kafkaGo.Writer{}

	return nil
}

type logPublisher struct{}

func (l *logPublisher) Publish(_ context.Context, topic string, messages ...Message) error {
	for _, message := range messages {
		log.Debug().Str("topic", topic).Str("key", message.Key).Str("event", message.Event.Type).Msg("event not published, kafka disabled")
	}

	return nil
}

func (l *logPublisher) Close() error {
	return nil
}
