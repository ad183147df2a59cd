// Package handler is the serverless entrypoint; it serves the same router as cmd/app without owning the process.
package handler

import (
	"hotelbook/config"
	"hotelbook/di"
	"hotelbook/shared/logger"
	"net/http"
	"sync"
)

var (
	app  *di.App
	once sync.Once
)

func Handler(w http.ResponseWriter, r *http.Request) {
	once.Do(func() {
		logger.InitLogger()
		logger.Configure(config.Get())

		app = di.InitializeApp()
	})

	r.RequestURI = r.URL.String()

	app.HTTP.ServeHTTP(w, r)
}
