package di

import (
	"hotelbook/infras/kafka"
	"hotelbook/infras/otel"
	"hotelbook/internal/domains/reservation/event"
	"hotelbook/transport/http"
)

// App is the assembled service: the HTTP server plus the background parts main has to run and close.
type App struct {
	HTTP     *http.HTTP
	Listener *event.Listener
	Otel     otel.Otel
	Kafka    kafka.Client
}
