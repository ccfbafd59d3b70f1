package weather

// DescribeCondition translates a WMO weather interpretation code into a short
// human label. Total over the full code domain; unmapped codes read "Variable".
func DescribeCondition(code int) string {
	switch {
	case code == 0:
		return "Clear Sky"
	case code >= 1 && code <= 3:
		return "Partly Cloudy"
	case code >= 45 && code <= 48:
		return "Foggy"
	case code >= 51 && code <= 55:
		return "Drizzle"
	case code >= 61 && code <= 65:
		return "Rain"
	case code >= 71 && code <= 77:
		return "Snow"
	case code >= 80 && code <= 82:
		return "Rain Showers"
	case code >= 95:
		return "Thunderstorm"
	default:
		return "Variable"
	}
}
