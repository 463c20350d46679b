package main

import (
	"context"
	"flag"
	"net/http"
	"strconv"

	"github.com/diwise/context-broker/pkg/ngsild/client"
	"github.com/diwise/service-chassis/pkg/infrastructure/buildinfo"
	"github.com/diwise/service-chassis/pkg/infrastructure/env"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/sdsobservatory/weatherlink-exporter/internal/api"
	"github.com/sdsobservatory/weatherlink-exporter/internal/application"
	"github.com/sdsobservatory/weatherlink-exporter/internal/broker"
	"github.com/sdsobservatory/weatherlink-exporter/internal/metrics"
	"github.com/sdsobservatory/weatherlink-exporter/internal/weatherlink"
)

const serviceName string = "weatherlink-exporter"

var metricsPath string

func main() {
	flag.StringVar(&metricsPath, "metrics-path", "/metrics", "path where the prometheus metrics are exposed")
	flag.Parse()

	serviceVersion := buildinfo.SourceVersion()
	_, log, cleanup := o11y.Init(context.Background(), serviceName, serviceVersion)
	defer cleanup()

	weatherLinkURL := env.GetVariableOrDie(log, "WEATHERLINK_URL", "url to weatherlink current conditions")
	servicePort := env.GetVariableOrDefault(log, "SERVICE_PORT", "8080")
	metricsPort := env.GetVariableOrDefault(log, "METRICS_PORT", "9100")

	app := application.New(weatherlink.NewClient(weatherLinkURL))

	publisher := metrics.NewPublisher(app, prometheus.NewRegistry())

	if ctxBrokerURL := env.GetVariableOrDefault(log, "CONTEXT_BROKER_URL", ""); ctxBrokerURL != "" {
		ctxBroker := client.NewContextBrokerClient(ctxBrokerURL, client.Debug("true"))
		station := stationFromEnvironment(log)
		publisher.Subscribe(broker.Observer(broker.NewForwarder(ctxBroker, station)))
		log.Info().Msgf("forwarding readings for station %s to %s", station.ID, ctxBrokerURL)
	}

	metricsMux := http.NewServeMux()
	metricsMux.Handle(metricsPath, publisher.Handler(log))

	errs := make(chan error, 2)

	go func() {
		log.Info().Msgf("serving metrics on port %s%s", metricsPort, metricsPath)
		errs <- http.ListenAndServe(":"+metricsPort, metricsMux)
	}()

	go func() {
		log.Info().Msgf("starting to listen for connections on port %s", servicePort)
		errs <- http.ListenAndServe(":"+servicePort, api.New(log, app).Router())
	}()

	err := <-errs
	log.Fatal().Err(err).Msg("http server stopped")
}

func stationFromEnvironment(log zerolog.Logger) broker.Station {
	station := broker.Station{
		ID:   env.GetVariableOrDefault(log, "STATION_ID", "weatherlink"),
		Name: env.GetVariableOrDefault(log, "STATION_NAME", ""),
	}

	lat, latErr := strconv.ParseFloat(env.GetVariableOrDefault(log, "STATION_LATITUDE", ""), 64)
	lon, lonErr := strconv.ParseFloat(env.GetVariableOrDefault(log, "STATION_LONGITUDE", ""), 64)
	if latErr == nil && lonErr == nil {
		station.Latitude = &lat
		station.Longitude = &lon
	}

	return station
}
