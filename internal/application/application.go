package application

import (
	"context"
	"fmt"
	"time"

	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/sdsobservatory/weatherlink-exporter/internal/weatherlink"
)

//go:generate moq -rm -out application_mock.go . Application

type Application interface {
	Raw(ctx context.Context) (*weatherlink.RawReadingSet, error)
	Weather(ctx context.Context) (NormalizedReading, error)
}

type app struct {
	wl weatherlink.Client
}

func New(wl weatherlink.Client) Application {
	return &app{
		wl: wl,
	}
}

func (a app) Raw(ctx context.Context) (*weatherlink.RawReadingSet, error) {
	data, err := a.wl.Fetch(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch weatherlink data: %w", err)
	}

	return data, nil
}

func (a app) Weather(ctx context.Context) (NormalizedReading, error) {
	data, err := a.Raw(ctx)
	if err != nil {
		return NormalizedReading{}, err
	}

	reading := Normalize(data)

	log := logging.GetFromContext(ctx)
	log.Debug().Msgf("normalized reading observed at %s", reading.TimeStampUTC.Format(time.RFC3339))

	return reading, nil
}

type conversion struct {
	sensor  string
	convert func(float64) float64
	field   func(*NormalizedReading) *float64
}

var conversions = []conversion{
	{"Wind Speed", MphToKph, func(r *NormalizedReading) *float64 { return &r.WindSpeedKph }},
	{"Wind Direction", identity, func(r *NormalizedReading) *float64 { return &r.WindDirection }},
	{"Hum", identity, func(r *NormalizedReading) *float64 { return &r.Humidity }},
	{"Temp", FahrenheitToCelsius, func(r *NormalizedReading) *float64 { return &r.TemperatureC }},
	{"Wet Bulb", FahrenheitToCelsius, func(r *NormalizedReading) *float64 { return &r.WetBulbC }},
	{"Dew Point", FahrenheitToCelsius, func(r *NormalizedReading) *float64 { return &r.DewPointC }},
	{"Barometer", InHgToMbar, func(r *NormalizedReading) *float64 { return &r.RelativePressureMbar }},
	{"Absolute Pressure", InHgToMbar, func(r *NormalizedReading) *float64 { return &r.AbsolutePressureMbar }},
}

// Normalize converts a raw reading set into metric units. Sensors that are
// absent from the set are reported as Sentinel.
func Normalize(data *weatherlink.RawReadingSet) NormalizedReading {
	reading := NormalizedReading{
		TimeStampUTC: data.LastReceivedUTC(),
	}

	idx := data.Index()

	for _, c := range conversions {
		value := Sentinel
		if r, ok := idx[c.sensor]; ok {
			value = c.convert(r.Value)
		}
		*c.field(&reading) = value
	}

	return reading
}
