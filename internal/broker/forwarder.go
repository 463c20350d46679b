package broker

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/diwise/context-broker/pkg/datamodels/fiware"
	"github.com/diwise/context-broker/pkg/ngsild/client"
	ngsierrors "github.com/diwise/context-broker/pkg/ngsild/errors"
	"github.com/diwise/context-broker/pkg/ngsild/types/entities"
	"github.com/diwise/context-broker/pkg/ngsild/types/entities/decorators"
	"github.com/diwise/context-broker/pkg/ngsild/types/properties"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/sdsobservatory/weatherlink-exporter/internal/application"
)

type Station struct {
	ID        string
	Name      string
	Latitude  *float64
	Longitude *float64
}

type Forwarder interface {
	Forward(ctx context.Context, reading application.NormalizedReading) error
}

type forwarder struct {
	cb      client.ContextBrokerClient
	station Station
}

func NewForwarder(cb client.ContextBrokerClient, station Station) Forwarder {
	return &forwarder{
		cb:      cb,
		station: station,
	}
}

// Forward merges the reading into the station's WeatherObserved entity and
// creates the entity if the broker does not know it yet.
func (f forwarder) Forward(ctx context.Context, reading application.NormalizedReading) error {
	log := logging.GetFromContext(ctx)

	entityID := fiware.WeatherObservedIDPrefix + f.station.ID

	attributes := createWeatherObservedAttributes(reading)

	fragment, err := entities.NewFragment(attributes...)
	if err != nil {
		return fmt.Errorf("failed to create entity fragment: %w", err)
	}

	headers := map[string][]string{"Content-Type": {"application/ld+json"}}

	log.Info().Msgf("merging entity %s", entityID)
	_, err = f.cb.MergeEntity(ctx, entityID, fragment, headers)
	if err == nil {
		return nil
	}

	if !errors.Is(err, ngsierrors.ErrNotFound) {
		log.Error().Err(err).Msg("failed to merge entity")
		return err
	}

	log.Info().Msgf("entity with id %s not found, attempting create", entityID)

	if f.station.Latitude != nil && f.station.Longitude != nil {
		attributes = append(attributes, decorators.Location(*f.station.Latitude, *f.station.Longitude))
	}
	if f.station.Name != "" {
		attributes = append(attributes, decorators.Name(f.station.Name))
	}

	entity, err := entities.New(entityID, fiware.WeatherObservedTypeName, attributes...)
	if err != nil {
		log.Error().Err(err).Msg("failed to construct new entity")
		return err
	}

	_, err = f.cb.CreateEntity(ctx, entity, headers)
	if err != nil {
		log.Error().Err(err).Msg("failed to create entity")
		return err
	}

	return nil
}

// Observer adapts a forwarder to a collection cycle callback. Failures are
// logged and never reach the caller.
func Observer(f Forwarder) func(context.Context, application.NormalizedReading) {
	return func(ctx context.Context, reading application.NormalizedReading) {
		if err := f.Forward(ctx, reading); err != nil {
			log := logging.GetFromContext(ctx)
			log.Error().Err(err).Msg("failed to forward reading to context broker")
		}
	}
}

func createWeatherObservedAttributes(reading application.NormalizedReading) []entities.EntityDecoratorFunc {
	utcTime := reading.TimeStampUTC.UTC().Format(time.RFC3339)

	attributes := make([]entities.EntityDecoratorFunc, 0, 7)

	number := func(name string, value float64, convert func(float64) float64) {
		if value == application.Sentinel {
			return
		}
		attributes = append(attributes, decorators.Number(name, convert(value), properties.ObservedAt(utcTime)))
	}

	same := func(v float64) float64 { return v }

	number("temperature", reading.TemperatureC, same)
	number("windSpeed", reading.WindSpeedKph, func(kph float64) float64 { return kph / 3.6 })
	number("windDirection", reading.WindDirection, same)
	number("relativeHumidity", reading.Humidity, func(pct float64) float64 { return pct / 100 })
	number("atmosphericPressure", reading.RelativePressureMbar, same)
	number("dewPoint", reading.DewPointC, same)

	return append(attributes, decorators.DateTime("dateObserved", utcTime))
}
