package application

import "time"

// Sentinel replaces any field whose sensor is missing from the upstream set.
const Sentinel float64 = 9999

type NormalizedReading struct {
	TimeStampUTC         time.Time `json:"timeStampUtc"`
	WindDirection        float64   `json:"windDirection"`
	WindSpeedKph         float64   `json:"windSpeedKph"`
	Humidity             float64   `json:"humidity"`
	TemperatureC         float64   `json:"temperatureC"`
	WetBulbC             float64   `json:"wetBulbC"`
	DewPointC            float64   `json:"dewPointC"`
	RelativePressureMbar float64   `json:"relativePressureMbar"`
	AbsolutePressureMbar float64   `json:"absolutePressureMbar"`
}
