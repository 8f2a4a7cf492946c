package health

import (
	"context"
	"net/http"
	"time"

	"hotel/infras/postgres"
	"hotel/transport/http/response"

	goRedis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const probeTimeout = 2 * time.Second

// Probe reports whether a dependency is reachable.
type Probe func(ctx context.Context) error

type Handler struct {
	probes map[string]Probe
}

func New(conn *postgres.Connection, client *goRedis.Client) Handler {
	return NewWithProbes(map[string]Probe{
		"postgres": func(ctx context.Context) error { return conn.Write.PingContext(ctx) },
		"redis":    func(ctx context.Context) error { return client.Ping(ctx).Err() },
	})
}

func NewWithProbes(probes map[string]Probe) Handler {
	return Handler{probes: probes}
}

// Check answers the load balancer probe.
// @Summary Health check
// @Tags Health
// @Produce json
// @Success 200 {object} response.Message
// @Failure 503 {object} response.Message
// @Router /health [get]
func (handler *Handler) Check(writer http.ResponseWriter, request *http.Request) {
	ctx, cancel := context.WithTimeout(request.Context(), probeTimeout)
	defer cancel()

	for name, probe := range handler.probes {
		if err := probe(ctx); err != nil {
			log.Error().Err(err).Str("dependency", name).Msg("health probe failed")

			response.WithUnhealthy(writer)

			return
		}
	}

	response.WithMessage(writer, http.StatusOK, "OK")
}
