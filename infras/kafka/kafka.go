package kafka

//go:generate go run go.uber.org/mock/mockgen -source=./kafka.go -destination=./mocks/kafka_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"hotelbook/config"
	"time"

	"github.com/rs/zerolog/log"
	kafkaGo "github.com/segmentio/kafka-go"
	"github.com/segmentio/kafka-go/sasl/plain"
)

const (
	dialTimeout  = 10 * time.Second
	writeTimeout = 10 * time.Second
	retryBackoff = time.Second
)

type Client interface {
	SendMessages(ctx context.Context, topic string, messages ...Message) (err error)
	Consume(ctx context.Context, consumerGroup, topic string, handler func(message kafkaGo.Message))
	Close() error
}

type kafkaClientImpl struct {
	brokers      []string
	defaultGroup string
	dialer       *kafkaGo.Dialer
	writer       *kafkaGo.Writer
}

// New returns a broker-backed client, or one that drops every message when Kafka is disabled.
func New(cfg *config.Config) Client {
	settings := cfg.Kafka

	if !settings.Enable || len(settings.Brokers) == 0 {
		log.Warn().Msg("kafka disabled, reservation events will not be published")

		return disabledClient{}
	}

	dialer := &kafkaGo.Dialer{Timeout: dialTimeout, DualStack: true}
	transport := &kafkaGo.Transport{DialTimeout: dialTimeout}

	if settings.SASL.Username != "" {
		mechanism := plain.Mechanism{Username: settings.SASL.Username, Password: settings.SASL.Password}

		dialer.SASLMechanism = mechanism
		transport.SASL = mechanism
	}

	log.Info().Strs("brokers", settings.Brokers).Msg("kafka client initialized")

	return &kafkaClientImpl{
		brokers:      settings.Brokers,
		defaultGroup: settings.ConsumerGroup,
		dialer:       dialer,
		writer: &kafkaGo.Writer{
			Addr:                   kafkaGo.TCP(settings.Brokers...),
			Transport:              transport,
			Balancer:               &kafkaGo.Hash{},
			RequiredAcks:           kafkaGo.RequireAll,
			WriteTimeout:           writeTimeout,
			AllowAutoTopicCreation: true,
		},
	}
}

func (k *kafkaClientImpl) SendMessages(ctx context.Context, topic string, messages ...Message) error {
	batch := make([]kafkaGo.Message, len(messages))

	for i := range messages {
		msg, err := messages[i].ToKafkaMessage(topic)
		if err != nil {
			return err
		}

		batch[i] = msg
	}

	if err := k.writer.WriteMessages(ctx, batch...); err != nil {
		log.Error().Err(err).Str("topic", topic).Int("count", len(batch)).Msg("failed to publish messages")

		return fmt.Errorf("failed to publish to %s: %w", topic, err)
	}

	log.Debug().Str("topic", topic).Int("count", len(batch)).Msg("published messages")

	return nil
}

// Consume blocks until ctx is done. Messages are handled one at a time in partition order, and a
// handler panic is logged without stopping the consumer.
func (k *kafkaClientImpl) Consume(ctx context.Context, consumerGroup, topic string, handler func(message kafkaGo.Message)) {
	if topic == "" {
		log.Error().Msg("cannot consume without a topic")

		return
	}

	if consumerGroup == "" {
		consumerGroup = k.defaultGroup
	}

	reader := kafkaGo.NewReader(kafkaGo.ReaderConfig{
		Brokers:     k.brokers,
		Topic:       topic,
		GroupID:     consumerGroup,
		Dialer:      k.dialer,
		StartOffset: kafkaGo.LastOffset,
	})

	defer func() {
		if err := reader.Close(); err != nil {
			log.Error().Err(err).Str("topic", topic).Msg("failed to close kafka reader")
		}
	}()

	logger := log.With().Str("topic", topic).Str("group", consumerGroup).Logger()

	for {
		msg, err := reader.ReadMessage(ctx)

		switch {
		case ctx.Err() != nil || errors.Is(err, context.Canceled):
			logger.Info().Msg("consumer stopped")

			return
		case err != nil:
			logger.Error().Err(err).Msg("failed to read message")

			select {
			case <-ctx.Done():
			case <-time.After(retryBackoff):
			}

			continue
		}

		logger.Debug().Str("key", string(msg.Key)).Int64("offset", msg.Offset).Msg("received message")

		handle(handler, msg)
	}
}

func handle(handler func(message kafkaGo.Message), msg kafkaGo.Message) {
	defer func() {
		if recovered := recover(); recovered != nil {
			log.Error().Interface("panic", recovered).Str("topic", msg.Topic).Int64("offset", msg.Offset).Msg("message handler panicked")
		}
	}()

	handler(msg)
}

func (k *kafkaClientImpl) Close() error {
	if err := k.writer.Close(); err != nil {
		return fmt.Errorf("failed to close kafka writer: %w", err)
	}

	return nil
}

type disabledClient struct{}

func (disabledClient) SendMessages(_ context.Context, topic string, messages ...Message) error {
	log.Debug().Str("topic", topic).Int("count", len(messages)).Msg("kafka disabled, dropping messages")

	return nil
}

func (disabledClient) Consume(ctx context.Context, _, _ string, _ func(message kafkaGo.Message)) {
	<-ctx.Done()
}

func (disabledClient) Close() error {
	return nil
}
