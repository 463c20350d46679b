package metrics

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	dto "github.com/prometheus/client_model/go"
	"github.com/rs/zerolog"
	"github.com/sdsobservatory/weatherlink-exporter/internal/application"
)

// Observer is notified with every reading that was successfully published.
type Observer func(ctx context.Context, reading application.NormalizedReading)

type Publisher struct {
	app      application.Application
	registry *prometheus.Registry

	windSpeed     prometheus.Gauge
	windDirection prometheus.Gauge
	humidity      prometheus.Gauge
	temperature   prometheus.Gauge
	wetBulb       prometheus.Gauge
	dewPoint      prometheus.Gauge
	relPressure   prometheus.Gauge
	absPressure   prometheus.Gauge
	failures      prometheus.Counter

	// mu keeps a gather from observing a partially applied update.
	mu sync.RWMutex

	obsMu     sync.Mutex
	observers []Observer
	dispatch  sync.Once
	pending   chan notification
}

type notification struct {
	log     zerolog.Logger
	reading application.NormalizedReading
}

func NewPublisher(app application.Application, registry *prometheus.Registry) *Publisher {
	gauge := func(name, help string) prometheus.Gauge {
		return prometheus.NewGauge(prometheus.GaugeOpts{Name: name, Help: help})
	}

	p := &Publisher{
		app:           app,
		registry:      registry,
		windSpeed:     gauge("wl_wind_speed", "Wind speed in km/h"),
		windDirection: gauge("wl_wind_direction", "Wind direction in degrees azimuth"),
		humidity:      gauge("wl_humidity", "Relative humidity 0 to 100 percent"),
		temperature:   gauge("wl_temperature", "Air temperature in degrees C"),
		wetBulb:       gauge("wl_wet_bulb", "Wet bulb temperature in degrees C"),
		dewPoint:      gauge("wl_dew_point", "Dew point temperature in degrees C"),
		relPressure:   gauge("wl_rel_pressure", "Relative pressure in mbar"),
		absPressure:   gauge("wl_abs_pressure", "Absolute pressure in mbar"),
		pending:       make(chan notification, 1),
		failures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "wl_collection_failures_total",
			Help: "Total number of collection cycles that failed to fetch weather data",
		}),
	}

	registry.MustRegister(
		p.windSpeed, p.windDirection, p.humidity, p.temperature,
		p.wetBulb, p.dewPoint, p.relPressure, p.absPressure,
		p.failures,
	)

	return p
}

// Subscribe registers an observer. Observers run on a background goroutine,
// one reading at a time, with a context that is detached from the scrape.
// If the observers fall behind, only the latest reading is kept.
func (p *Publisher) Subscribe(o Observer) {
	p.obsMu.Lock()
	p.observers = append(p.observers, o)
	p.obsMu.Unlock()

	p.dispatch.Do(func() {
		go p.notifyObservers()
	})
}

func (p *Publisher) notifyObservers() {
	for n := range p.pending {
		ctx := logging.NewContextWithLogger(context.Background(), n.log)

		p.obsMu.Lock()
		observers := append([]Observer(nil), p.observers...)
		p.obsMu.Unlock()

		for _, o := range observers {
			o(ctx, n.reading)
		}
	}
}

func (p *Publisher) enqueue(n notification) {
	for {
		select {
		case p.pending <- n:
			return
		default:
		}

		select {
		case stale := <-p.pending:
			n.log.Debug().Msgf("observers busy, replacing reading observed at %s", stale.reading.TimeStampUTC.Format(time.RFC3339))
		default:
		}
	}
}

// Refresh fetches a new reading and sets all gauges from it. On failure no
// gauge is touched and the previous values stay exposed.
func (p *Publisher) Refresh(ctx context.Context) error {
	log := logging.GetFromContext(ctx)

	reading, err := p.app.Weather(ctx)
	if err != nil {
		p.failures.Inc()
		log.Error().Err(err).Msg("collection cycle failed, keeping previous gauge values")
		return err
	}

	p.mu.Lock()
	p.windSpeed.Set(reading.WindSpeedKph)
	p.windDirection.Set(reading.WindDirection)
	p.humidity.Set(reading.Humidity)
	p.temperature.Set(reading.TemperatureC)
	p.wetBulb.Set(reading.WetBulbC)
	p.dewPoint.Set(reading.DewPointC)
	p.relPressure.Set(reading.RelativePressureMbar)
	p.absPressure.Set(reading.AbsolutePressureMbar)
	p.mu.Unlock()

	p.obsMu.Lock()
	subscribed := len(p.observers) > 0
	p.obsMu.Unlock()

	if subscribed {
		p.enqueue(notification{log: log, reading: reading})
	}

	return nil
}

// Gather implements prometheus.Gatherer.
func (p *Publisher) Gather() ([]*dto.MetricFamily, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return p.registry.Gather()
}

// Handler refreshes the gauges before every scrape. A failed refresh still
// serves the previous values.
func (p *Publisher) Handler(log zerolog.Logger) http.Handler {
	scrape := promhttp.HandlerFor(p, promhttp.HandlerOpts{
		ErrorHandling: promhttp.ContinueOnError,
	})

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := logging.NewContextWithLogger(r.Context(), log)
		_ = p.Refresh(ctx)
		scrape.ServeHTTP(w, r)
	})
}
