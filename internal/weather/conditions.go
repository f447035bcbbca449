package weather

// wmoDescriptions maps WMO weather interpretation codes (used by Open-Meteo).
var wmoDescriptions = map[int]string{
	0:  "Clear sky",
	1:  "Mainly clear",
	2:  "Partly cloudy",
	3:  "Overcast",
	45: "Fog",
	48: "Depositing rime fog",
	51: "Light drizzle",
	53: "Moderate drizzle",
	55: "Dense drizzle",
	56: "Light freezing drizzle",
	57: "Dense freezing drizzle",
	61: "Slight rain",
	63: "Moderate rain",
	65: "Heavy rain",
	66: "Light freezing rain",
	67: "Heavy freezing rain",
	71: "Slight snow fall",
	73: "Moderate snow fall",
	75: "Heavy snow fall",
	77: "Snow grains",
	80: "Slight rain showers",
	81: "Moderate rain showers",
	82: "Violent rain showers",
	85: "Slight snow showers",
	86: "Heavy snow showers",
	95: "Thunderstorm",
	96: "Thunderstorm with slight hail",
	99: "Thunderstorm with heavy hail",
}

// owmDescriptions maps OpenWeatherMap condition ids.
var owmDescriptions = map[int]string{
	200: "Thunderstorm with light rain",
	201: "Thunderstorm with rain",
	202: "Thunderstorm with heavy rain",
	210: "Light thunderstorm",
	211: "Thunderstorm",
	212: "Heavy thunderstorm",
	221: "Ragged thunderstorm",
	230: "Thunderstorm with light drizzle",
	231: "Thunderstorm with drizzle",
	232: "Thunderstorm with heavy drizzle",
	300: "Light intensity drizzle",
	301: "Drizzle",
	302: "Heavy intensity drizzle",
	310: "Light intensity drizzle rain",
	311: "Drizzle rain",
	312: "Heavy intensity drizzle rain",
	313: "Shower rain and drizzle",
	314: "Heavy shower rain and drizzle",
	321: "Shower drizzle",
	500: "Light rain",
	501: "Moderate rain",
	502: "Heavy intensity rain",
	503: "Very heavy rain",
	504: "Extreme rain",
	511: "Freezing rain",
	520: "Light intensity shower rain",
	521: "Shower rain",
	522: "Heavy intensity shower rain",
	531: "Ragged shower rain",
	600: "Light snow",
	601: "Snow",
	602: "Heavy snow",
	611: "Sleet",
	612: "Light shower sleet",
	613: "Shower sleet",
	615: "Light rain and snow",
	616: "Rain and snow",
	620: "Light shower snow",
	621: "Shower snow",
	622: "Heavy shower snow",
	701: "Mist",
	711: "Smoke",
	721: "Haze",
	731: "Sand/dust whirls",
	741: "Fog",
	751: "Sand",
	761: "Dust",
	762: "Volcanic ash",
	771: "Squalls",
	781: "Tornado",
	800: "Clear sky",
	801: "Few clouds",
	802: "Scattered clouds",
	803: "Broken clouds",
	804: "Overcast clouds",
}

// DescribeWMO returns the description for a WMO code, or "Unknown".
func DescribeWMO(code int) string {
	return describe(wmoDescriptions, code)
}

// DescribeOpenWeather returns the description for an OpenWeatherMap id, or "Unknown".
func DescribeOpenWeather(code int) string {
	return describe(owmDescriptions, code)
}

func describe(table map[int]string, code int) string {
	if d, ok := table[code]; ok {
		return d
	}
	return UnknownDescription
}

// ClassifyWMO maps a WMO code onto a Condition.
func ClassifyWMO(code int) Condition {
	if _, ok := wmoDescriptions[code]; !ok {
		return ConditionUnknown
	}
	switch {
	case code == 0:
		return ConditionClear
	case code >= 1 && code <= 3:
		return ConditionCloudy
	case code == 45 || code == 48:
		return ConditionFog
	case (code >= 51 && code <= 67) || (code >= 80 && code <= 82):
		return ConditionRain
	case (code >= 71 && code <= 77) || code == 85 || code == 86:
		return ConditionSnow
	case code >= 95:
		return ConditionStorm
	default:
		return ConditionUnknown
	}
}

// ClassifyOpenWeather maps an OpenWeatherMap id onto a Condition.
func ClassifyOpenWeather(code int) Condition {
	if _, ok := owmDescriptions[code]; !ok {
		return ConditionUnknown
	}
	switch {
	case code >= 200 && code < 300:
		return ConditionStorm
	case code >= 300 && code < 600:
		return ConditionRain
	case code >= 600 && code < 700:
		return ConditionSnow
	case code == 741:
		return ConditionFog
	case code >= 700 && code < 800:
		return ConditionMist
	case code == 800:
		return ConditionClear
	case code > 800:
		return ConditionCloudy
	default:
		return ConditionUnknown
	}
}
