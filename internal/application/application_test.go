package application

import (
	"context"
	"encoding/json"
	"math"
	"net/http"
	"testing"
	"time"

	testhttp "github.com/diwise/service-chassis/pkg/test/http"
	"github.com/diwise/service-chassis/pkg/test/http/response"
	"github.com/matryer/is"
	"github.com/sdsobservatory/weatherlink-exporter/internal/weatherlink"
)

func TestGetCurrentWeather(t *testing.T) {
	is, app := testSetup(t, http.StatusOK, testData)

	reading, err := app.Weather(context.Background())
	is.NoErr(err)

	is.True(reading.TimeStampUTC.Equal(time.Date(2023, 1, 13, 15, 40, 0, 0, time.UTC)))
	is.True(almostEqual(reading.WindSpeedKph, 16.0934, 1e-9))
	is.Equal(reading.WindDirection, 62.0)
	is.Equal(reading.Humidity, 87.0)
	is.Equal(reading.TemperatureC, 0.0)
	is.True(almostEqual(reading.WetBulbC, -1.0, 1e-9))
	is.True(almostEqual(reading.DewPointC, -5.0, 1e-9))
	is.True(almostEqual(reading.RelativePressureMbar, 1013.25, 0.05))
	is.True(almostEqual(reading.AbsolutePressureMbar, 29.5*33.8639, 1e-9))
}

func TestRawReturnsUpstreamSetUnchanged(t *testing.T) {
	is, app := testSetup(t, http.StatusOK, testData)

	data, err := app.Raw(context.Background())
	is.NoErr(err)
	is.Equal(data.OwnerName, "sdsobservatory")
	is.Equal(len(data.CurrConditionValues), 8)
}

func TestWeatherFailsWhenUpstreamFails(t *testing.T) {
	is, app := testSetup(t, http.StatusInternalServerError, "")

	_, err := app.Weather(context.Background())
	is.True(err != nil)
}

func TestNormalizeWithoutReadingsUsesSentinels(t *testing.T) {
	is := is.New(t)

	reading := Normalize(&weatherlink.RawReadingSet{LastReceived: 1673624400000})

	is.True(reading.TimeStampUTC.Equal(time.UnixMilli(1673624400000)))
	for _, v := range []float64{
		reading.WindDirection, reading.WindSpeedKph, reading.Humidity, reading.TemperatureC,
		reading.WetBulbC, reading.DewPointC, reading.RelativePressureMbar, reading.AbsolutePressureMbar,
	} {
		is.Equal(v, Sentinel)
	}
}

func TestNormalizeMissingSensorDoesNotAffectOthers(t *testing.T) {
	is := is.New(t)

	for _, c := range conversions {
		set := fullSet()
		kept := set.CurrConditionValues[:0]
		for _, r := range set.CurrConditionValues {
			if r.SensorDataName != c.sensor {
				kept = append(kept, r)
			}
		}
		set.CurrConditionValues = kept

		reading := Normalize(set)

		for _, other := range conversions {
			got := *other.field(&reading)
			if other.sensor == c.sensor {
				is.Equal(got, Sentinel) // missing sensor
			} else {
				is.Equal(got, other.convert(50)) // present sensor
			}
		}
	}
}

func TestNormalizeUsesFirstReadingWithMatchingName(t *testing.T) {
	is := is.New(t)

	reading := Normalize(&weatherlink.RawReadingSet{
		CurrConditionValues: []weatherlink.RawReading{
			{SensorDataName: "Temp", Value: 212},
			{SensorDataName: "Temp", Value: 32},
		},
	})

	is.True(almostEqual(reading.TemperatureC, 100, 1e-9))
}

func TestConversions(t *testing.T) {
	is := is.New(t)

	is.True(almostEqual(MphToKph(10), 16.0934, 1e-9))
	is.Equal(FahrenheitToCelsius(32), 0.0)
	is.True(almostEqual(FahrenheitToCelsius(-40), -40, 1e-9))
	is.True(almostEqual(InHgToMbar(29.92), 1013.25, 0.05))
	is.Equal(identity(271.5), 271.5)
}

func TestNormalizedReadingJSONRoundTrip(t *testing.T) {
	is := is.New(t)

	reading := Normalize(fullSet())

	b, err := json.Marshal(reading)
	is.NoErr(err)

	var decoded NormalizedReading
	is.NoErr(json.Unmarshal(b, &decoded))

	is.True(decoded.TimeStampUTC.Equal(reading.TimeStampUTC))
	decoded.TimeStampUTC = reading.TimeStampUTC
	is.Equal(decoded, reading)
}

func almostEqual(a, b, tolerance float64) bool {
	return math.Abs(a-b) <= tolerance
}

func fullSet() *weatherlink.RawReadingSet {
	set := &weatherlink.RawReadingSet{OwnerName: "test", LastReceived: 1673624400000}
	for _, c := range conversions {
		set.CurrConditionValues = append(set.CurrConditionValues, weatherlink.RawReading{SensorDataName: c.sensor, Value: 50})
	}
	return set
}

func testSetup(t *testing.T, code int, body string) (*is.I, Application) {
	is := is.New(t)

	service := testhttp.NewMockServiceThat(
		testhttp.Expects(is),
		testhttp.Returns(response.Code(code), response.Body([]byte(body))),
	)

	return is, New(weatherlink.NewClient(service.URL()))
}

const testData string = `{
	"ownerName": "sdsobservatory",
	"lastReceived": 1673624400000,
	"currConditionValues": [
		{"sensorDataTypeId": 12, "sensorDataName": "Wind Speed", "displayName": "Wind Speed", "reportedValue": 10, "value": 10.0, "convertedValue": "10", "depthLabel": null, "category": "Wind", "assocSensorDataTypeId": null, "sortOrder": 1, "unitLabel": "mph"},
		{"sensorDataTypeId": 13, "sensorDataName": "Wind Direction", "displayName": "Wind Direction", "reportedValue": 62, "value": 62.0, "convertedValue": "ENE", "depthLabel": null, "category": "Wind", "assocSensorDataTypeId": null, "sortOrder": 2, "unitLabel": "°"},
		{"sensorDataTypeId": 8, "sensorDataName": "Hum", "displayName": "Hum", "reportedValue": 87, "value": 87.0, "convertedValue": "87", "depthLabel": null, "category": "Humidity", "assocSensorDataTypeId": null, "sortOrder": 3, "unitLabel": "%"},
		{"sensorDataTypeId": 7, "sensorDataName": "Temp", "displayName": "Temp", "reportedValue": 320, "value": 32.0, "convertedValue": "32.0", "depthLabel": null, "category": "Temperature", "assocSensorDataTypeId": null, "sortOrder": 4, "unitLabel": "°F"},
		{"sensorDataTypeId": 9, "sensorDataName": "Wet Bulb", "displayName": "Wet Bulb", "reportedValue": 302, "value": 30.2, "convertedValue": "30.2", "depthLabel": null, "category": "Temperature", "assocSensorDataTypeId": null, "sortOrder": 5, "unitLabel": "°F"},
		{"sensorDataTypeId": 10, "sensorDataName": "Dew Point", "displayName": "Dew Point", "reportedValue": 230, "value": 23.0, "convertedValue": "23.0", "depthLabel": null, "category": "Temperature", "assocSensorDataTypeId": null, "sortOrder": 6, "unitLabel": "°F"},
		{"sensorDataTypeId": 21, "sensorDataName": "Barometer", "displayName": "Barometer", "reportedValue": 29920, "value": 29.92, "convertedValue": "29.92", "depthLabel": null, "category": "Barometer", "assocSensorDataTypeId": null, "sortOrder": 7, "unitLabel": "in Hg"},
		{"sensorDataTypeId": 22, "sensorDataName": "Absolute Pressure", "displayName": "Absolute Pressure", "reportedValue": 29500, "value": 29.5, "convertedValue": "29.50", "depthLabel": null, "category": "Barometer", "assocSensorDataTypeId": null, "sortOrder": 8, "unitLabel": "in Hg"}
	]
}`
