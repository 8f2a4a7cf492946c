package handler

import (
	"net/http"
	"sync"

	"hotel/config"
	"hotel/di"
	"hotel/shared/logger"
)

var (
	once   sync.Once
	routes http.Handler
)

// Handler is the serverless entrypoint. The dependency graph is built once per warm instance.
func Handler(w http.ResponseWriter, r *http.Request) {
	r.RequestURI = r.URL.String()

	once.Do(func() {
		cfg := config.Get()

		logger.InitLogger()

		logger.SetLogLevel(cfg)

		routes = di.InitializeService().Handler()
	})

	routes.ServeHTTP(w, r)
}
