package kafka

import (
	"testing"

	kafkaGo "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
)

func TestHandleRecoversFromPanic(t *testing.T) {
	var handled []int64

	handler := func(msg kafkaGo.Message) {
		if msg.Offset == 1 {
			panic("bad payload")
		}

		handled = append(handled, msg.Offset)
	}

	for offset := range int64(3) {
		assert.NotPanics(t, func() { handle(handler, kafkaGo.Message{Topic: "hotelbook.reservations", Offset: offset}) })
	}

	assert.Equal(t, []int64{0, 2}, handled)
}
