package application

const (
	kphPerMph   float64 = 1.60934
	mbarPerInHg float64 = 33.8639
)

func MphToKph(mph float64) float64 {
	return mph * kphPerMph
}

func FahrenheitToCelsius(f float64) float64 {
	return (f - 32) * 5.0 / 9.0
}

func InHgToMbar(inHg float64) float64 {
	return inHg * mbarPerInHg
}

func identity(v float64) float64 {
	return v
}
