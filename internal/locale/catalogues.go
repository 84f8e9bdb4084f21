package locale

var catalogues = map[string]*Catalog{
	German: {
		Lang:     German,
		weekdays: [7]string{"Sonntag", "Montag", "Dienstag", "Mittwoch", "Donnerstag", "Freitag", "Samstag"},
		weather: map[int]string{
			0:  "Klar",
			1:  "Überwiegend klar",
			2:  "Teilweise bewölkt",
			3:  "Bewölkt",
			45: "Nebel",
			48: "Nebel mit Reif",
			51: "Leichter Nieselregen",
			53: "Mäßiger Nieselregen",
			55: "Starker Nieselregen",
			56: "Gefrierender Nieselregen (leicht)",
			57: "Gefrierender Nieselregen (stark)",
			61: "Leichter Regen",
			63: "Mäßiger Regen",
			65: "Starker Regen",
			66: "Gefrierender Regen (leicht)",
			67: "Gefrierender Regen (stark)",
			71: "Leichter Schneefall",
			73: "Mäßiger Schneefall",
			75: "Starker Schneefall",
			77: "Schneegriesel",
			80: "Leichte Regenschauer",
			81: "Mäßige Regenschauer",
			82: "Starke Regenschauer",
			85: "Leichte Schneeschauer",
			86: "Starke Schneeschauer",
			95: "Gewitter",
			96: "Gewitter mit leichtem Hagel",
			99: "Gewitter mit starkem Hagel",
		},
		msg: map[Key]string{
			KeyError:             "Fehler",
			KeyWeatherFor:        "Wetter für",
			KeyCondition:         "Wetterlage",
			KeyTemperature:       "Temperatur",
			KeyPrecipitation:     "Niederschlag",
			KeyWindMax:           "Wind (max)",
			KeyUnknown:           "Unbekannt",
			KeyTo:                "bis",
			KeyTimeoutLocation:   "Zeitüberschreitung bei der Ortssuche.",
			KeyTimeoutPostalCode: "Zeitüberschreitung bei der PLZ-Suche.",
			KeyTimeoutWeather:    "Zeitüberschreitung bei der Wetter-Anfrage.",
			KeyNoConnection:      "Keine Verbindung zum Server.",
			KeyAPIError:          "API-Fehler",
			KeyInvalidResponse:   "Ungültige Server-Antwort.",
			KeyLocationNotFound:  "Ort '%s' nicht gefunden.",
			KeyPlzNotFound:       "PLZ '%s' nicht gefunden.",
			KeyAmbiguousName:     "'%s' ist nicht eindeutig. Bitte PLZ verwenden:",
			KeyAmbiguousPlz:      "PLZ '%s' existiert in mehreren Ländern: %s",
			KeyUsePlz:            "weather --plz <PLZ>  oder  weather <Ort> --land <CODE>",
			KeyUseCountry:        "Bitte mit --land eingrenzen, z.B.: weather --plz %s --land DE",
			KeyMissingCoords:     "Koordinaten fehlen.",
			KeyIncompleteData:    "Unvollständige Wetterdaten.",
			KeyNotePlzUsed:       "Hinweis: Ortsname '%s' wird ignoriert, verwende PLZ.",
			KeyDesc:              "Wettervorhersage für einen Ort",
			KeyExample:           "weather Berlin\n  weather --plz 10115\n  weather --plz 1010 --land AT --tage 3 --json",
			KeyHelpPlz:           "Postleitzahl",
			KeyHelpCountry:       "Ländercode (DE, AT, CH, ...)",
			KeyHelpDays:          "Vorhersagetage 1-16",
			KeyHelpJSON:          "JSON-Ausgabe",
			KeyHelpLang:          "Sprache: de oder en",
			KeyHelpConfig:        "Pfad zur Konfigurationsdatei (Standard: ./config.yaml)",
		},
	},
	English: {
		Lang:     English,
		weekdays: [7]string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"},
		weather: map[int]string{
			0:  "Clear",
			1:  "Mostly clear",
			2:  "Partly cloudy",
			3:  "Cloudy",
			45: "Fog",
			48: "Freezing fog",
			51: "Light drizzle",
			53: "Moderate drizzle",
			55: "Heavy drizzle",
			56: "Light freezing drizzle",
			57: "Heavy freezing drizzle",
			61: "Light rain",
			63: "Moderate rain",
			65: "Heavy rain",
			66: "Light freezing rain",
			67: "Heavy freezing rain",
			71: "Light snowfall",
			73: "Moderate snowfall",
			75: "Heavy snowfall",
			77: "Snow grains",
			80: "Light rain showers",
			81: "Moderate rain showers",
			82: "Heavy rain showers",
			85: "Light snow showers",
			86: "Heavy snow showers",
			95: "Thunderstorm",
			96: "Thunderstorm with light hail",
			99: "Thunderstorm with heavy hail",
		},
		msg: map[Key]string{
			KeyError:             "Error",
			KeyWeatherFor:        "Weather for",
			KeyCondition:         "Condition",
			KeyTemperature:       "Temperature",
			KeyPrecipitation:     "Precipitation",
			KeyWindMax:           "Wind (max)",
			KeyUnknown:           "Unknown",
			KeyTo:                "to",
			KeyTimeoutLocation:   "Location search timed out.",
			KeyTimeoutPostalCode: "Postal code search timed out.",
			KeyTimeoutWeather:    "Weather request timed out.",
			KeyNoConnection:      "No connection to server.",
			KeyAPIError:          "API error",
			KeyInvalidResponse:   "Invalid server response.",
			KeyLocationNotFound:  "Location '%s' not found.",
			KeyPlzNotFound:       "Postal code '%s' not found.",
			KeyAmbiguousName:     "'%s' is ambiguous. Please use postal code:",
			KeyAmbiguousPlz:      "Postal code '%s' exists in multiple countries: %s",
			KeyUsePlz:            "weather --plz <postal_code>  or  weather <location> --country <CODE>",
			KeyUseCountry:        "Please specify country, e.g.: weather --plz %s --country DE",
			KeyMissingCoords:     "Coordinates missing.",
			KeyIncompleteData:    "Incomplete weather data.",
			KeyNotePlzUsed:       "Note: Location '%s' ignored, using postal code.",
			KeyDesc:              "Weather forecast for a location",
			KeyExample:           "weather Berlin\n  weather --plz 10115\n  weather --plz 1010 --country AT --days 3 --json",
			KeyHelpPlz:           "Postal code",
			KeyHelpCountry:       "Country code (DE, AT, CH, ...)",
			KeyHelpDays:          "Forecast days 1-16",
			KeyHelpJSON:          "JSON output",
			KeyHelpLang:          "Language: de or en",
			KeyHelpConfig:        "path to configuration file (default: ./config.yaml)",
		},
	},
}
