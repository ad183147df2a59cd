// Package event consumes the reservation event stream.
package event

import (
	"context"
	"hotelbook/config"
	"hotelbook/infras/kafka"
	"hotelbook/infras/otel"
	"hotelbook/internal/domains/reservation/model"
	"hotelbook/internal/domains/reservation/model/dto"
	"hotelbook/internal/domains/reservation/service"
	"hotelbook/shared"
	"hotelbook/shared/cache"
	"hotelbook/shared/constant"

	"github.com/rs/zerolog/log"
	kafkaGo "github.com/segmentio/kafka-go"
)

const consumerGroupSuffix = ".availability"

// Listener drops cached availability answers of a room whenever a reservation event for it
// arrives, so instances that did not serve the write stop answering from stale entries.
type Listener struct {
	kafka kafka.Client
	cache cache.RedisCache
	cfg   *config.Config
	otel  otel.Otel
}

func NewListener(kafka kafka.Client, cache cache.RedisCache, cfg *config.Config, otel otel.Otel) *Listener {
	return &Listener{
		kafka: kafka,
		cache: cache,
		cfg:   cfg,
		otel:  otel,
	}
}

// Run blocks until ctx is done.
func (l *Listener) Run(ctx context.Context) {
	topic := l.cfg.Booking.EventTopic

	log.Info().Str("topic", topic).Msg("Listening for reservation events")

	l.kafka.Consume(ctx, l.cfg.Kafka.ConsumerGroup+consumerGroupSuffix, topic, func(msg kafkaGo.Message) {
		l.Handle(context.WithoutCancel(ctx), msg)
	})
}

// Handle processes a single event. Unknown events are ignored.
func (l *Listener) Handle(ctx context.Context, msg kafkaGo.Message) {
	ctx, scope := l.otel.NewScope(ctx, constant.OtelEventScopeName, constant.OtelEventScopeName+".reservation.Handle")
	defer scope.End()

	event := kafka.EventOf(msg)
	scope.SetAttribute("event", event)

	switch event {
	case model.EventCreated, model.EventCancelled:
	default:
		log.Debug().Str("event", event).Msg("ignoring reservation event")

		return
	}

	reservation, err := kafka.DecodeKafkaMessage[dto.ReservationResponse](msg)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("event", event).Str("key", string(msg.Key)).Msg("failed to decode reservation event")

		return
	}

	roomID := reservation.RoomID
	if roomID == constant.Empty {
		roomID = string(msg.Key)
	}

	shared.InvalidateCaches(ctx, l.cache, service.AvailabilityCacheKey(roomID))

	log.Info().
		Str("event", event).
		Str("reservationID", reservation.ID).
		Str("roomID", roomID).
		Msg("reservation event applied")
}
