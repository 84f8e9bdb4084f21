package present

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vzahanych/weather-cli/internal/forecast"
	"github.com/vzahanych/weather-cli/internal/locale"
)

func sampleResult() *forecast.Result {
	return &forecast.Result{
		Timezone: "Europe/Berlin",
		Days: []forecast.Day{
			{
				Date:             "2026-10-19",
				WeatherCode:      61,
				TemperatureMin:   6.14,
				TemperatureMax:   14.2,
				PrecipitationSum: 2.4,
				WindSpeedMax:     23.75,
				Hourly: []forecast.Hour{
					{Time: "2026-10-19T00:00", Temperature: 7.3, Precipitation: 0, WeatherCode: 3},
					{Time: "2026-10-19T01:00", Temperature: -1.25, Precipitation: 0.4, WeatherCode: 61},
				},
			},
			{
				Date:           "2026-10-20",
				WeatherCode:    42,
				TemperatureMin: 5,
				TemperatureMax: 11,
				Hourly:         []forecast.Hour{},
			},
		},
	}
}

func TestText_English(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Text(&buf, "Frankfurt am Main, Germany", sampleResult(), locale.Get(locale.English)))

	want := strings.Join([]string{
		"Weather for Frankfurt am Main, Germany",
		strings.Repeat("=", 50),
		"",
		"19.10.2026 (Monday)",
		strings.Repeat("-", 50),
		"Condition      Light rain",
		"Temperature    6.1°C to 14.2°C",
		"Precipitation  2.4 mm",
		"Wind (max)     23.8 km/h",
		"",
		"  00:00    7.3°C  Cloudy",
		"  01:00   -1.2°C  Light rain, 0.4mm",
		"",
		"",
		"20.10.2026 (Tuesday)",
		strings.Repeat("-", 50),
		"Condition      Code 42",
		"Temperature    5.0°C to 11.0°C",
		"Precipitation  0.0 mm",
		"Wind (max)     0.0 km/h",
		"",
	}, "\n") + "\n"

	assert.Equal(t, want, buf.String())
}

func TestText_German(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Text(&buf, "10115 Berlin, Deutschland", sampleResult(), locale.Get(locale.German)))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "Wetter für 10115 Berlin, Deutschland\n"))
	assert.Contains(t, out, "19.10.2026 (Montag)")
	assert.Contains(t, out, "Wetterlage     Leichter Regen")
	assert.Contains(t, out, "Temperatur     6.1°C bis 14.2°C")
	assert.Contains(t, out, "Niederschlag   2.4 mm")
}

func TestText_UnparseableTimes(t *testing.T) {
	result := &forecast.Result{Days: []forecast.Day{{
		Date:   "",
		Hourly: []forecast.Hour{{Time: "soon"}},
	}}}

	var buf bytes.Buffer
	require.NoError(t, Text(&buf, "X", result, locale.Get(locale.English)))

	assert.Contains(t, buf.String(), "\nUnknown\n")
	assert.Contains(t, buf.String(), "  ??:??")
}

func TestJSON_MirrorsText(t *testing.T) {
	result := sampleResult()
	cat := locale.Get(locale.German)

	var jsonBuf, textBuf bytes.Buffer
	require.NoError(t, JSON(&jsonBuf, "Zürich, Schweiz", result, cat))
	require.NoError(t, Text(&textBuf, "Zürich, Schweiz", result, cat))

	assert.Contains(t, jsonBuf.String(), `"location": "Zürich, Schweiz"`, "non-ASCII stays unescaped")

	var doc Document
	require.NoError(t, json.Unmarshal(jsonBuf.Bytes(), &doc))

	assert.Equal(t, *NewDocument("Zürich, Schweiz", result, cat), doc)
	require.Len(t, doc.Days, len(result.Days))

	text := textBuf.String()
	for i, day := range doc.Days {
		assert.Equal(t, result.Days[i].Date, day.Date)
		assert.Contains(t, text, day.WeatherDescription)
		assert.Contains(t, text, fmt.Sprintf("%.1f°C bis %.1f°C", day.TemperatureMin, day.TemperatureMax))
		assert.Contains(t, text, fmt.Sprintf("%.1f mm", day.PrecipitationSum))
		assert.Contains(t, text, fmt.Sprintf("%.1f km/h", day.WindSpeedMax))
		assert.Len(t, day.Hourly, len(result.Days[i].Hourly))
		for _, h := range day.Hourly {
			assert.Contains(t, text, fmt.Sprintf("%5.1f°C  %s", h.Temperature, h.WeatherDescription))
		}
	}
}

func TestJSON_EmptyHourlyIsArray(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, JSON(&buf, "X", sampleResult(), locale.Get(locale.English)))
	assert.Contains(t, buf.String(), `"hourly": []`)
}
