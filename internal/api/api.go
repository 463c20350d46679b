package api

import (
	"encoding/json"
	"net/http"

	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/sdsobservatory/weatherlink-exporter/internal/application"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

type API interface {
	Router() http.Handler
}

type api struct {
	log zerolog.Logger
	app application.Application
	r   chi.Router
}

func New(log zerolog.Logger, app application.Application) API {
	a := &api{
		log: log,
		app: app,
		r:   chi.NewRouter(),
	}

	a.r.Get("/health", a.health)
	a.r.Get("/raw", a.raw)
	a.r.Get("/weather", a.weather)

	return a
}

func (a *api) Router() http.Handler {
	return otelhttp.NewHandler(a.r, "weatherlink-exporter")
}

func (a *api) health(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

func (a *api) raw(w http.ResponseWriter, r *http.Request) {
	ctx := logging.NewContextWithLogger(r.Context(), a.log)

	data, err := a.app.Raw(ctx)
	if err != nil {
		a.log.Error().Err(err).Msg("failed to retrieve raw weather data")
		w.WriteHeader(http.StatusBadGateway)
		return
	}

	a.writeJSON(w, data)
}

func (a *api) weather(w http.ResponseWriter, r *http.Request) {
	ctx := logging.NewContextWithLogger(r.Context(), a.log)

	reading, err := a.app.Weather(ctx)
	if err != nil {
		a.log.Error().Err(err).Msg("failed to retrieve weather data")
		w.WriteHeader(http.StatusBadGateway)
		return
	}

	a.writeJSON(w, reading)
}

func (a *api) writeJSON(w http.ResponseWriter, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		a.log.Error().Err(err).Msg("failed to marshal response body")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}
