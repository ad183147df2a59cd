package kafka

import (
	"encoding/json"
	"fmt"

	kafkaGo "github.com/segmentio/kafka-go"
)

const HeaderEvent = "event"

// Message is an event to publish. Key picks the partition, so events sharing a key keep their
// order. Value is encoded as JSON.
type Message struct {
	Key   string
	Event string
	Value any
}

func (m *Message) ToKafkaMessage(topic string) (kafkaGo.Message, error) {
	value, err := json.Marshal(m.Value)
	if err != nil {
		return kafkaGo.Message{}, fmt.Errorf("failed to encode %q message: %w", m.Event, err)
	}

	msg := kafkaGo.Message{Topic: topic, Key: []byte(m.Key), Value: value}

	if m.Event != "" {
		msg.Headers = append(msg.Headers, kafkaGo.Header{Key: HeaderEvent, Value: []byte(m.Event)})
	}

	return msg, nil
}

// EventOf returns the event header of a consumed message, or "" when it has none.
func EventOf(msg kafkaGo.Message) string {
	for _, header := range msg.Headers {
		if header.Key == HeaderEvent {
			return string(header.Value)
		}
	}

	return ""
}

func DecodeKafkaMessage[T any](msg kafkaGo.Message) (T, error) {
	var value T

	if err := json.Unmarshal(msg.Value, &value); err != nil {
		return value, fmt.Errorf("failed to decode message %s/%d@%d: %w", msg.Topic, msg.Partition, msg.Offset, err)
	}

	return value, nil
}
