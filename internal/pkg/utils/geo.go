package utils

// MilesToMeters - OTP принимает maxWalkDistance в метрах, конфиг задан в милях
const MilesToMeters = 1609.34

// ValidateCoordinates проверяет валидность координат
func ValidateCoordinates(lat, lon float64) bool {
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}
