// Package present renders a forecast as localized text or as JSON.
package present

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/vzahanych/weather-cli/internal/forecast"
	"github.com/vzahanych/weather-cli/internal/locale"
)

const (
	ruleWidth  = 50
	labelWidth = 14

	dateLayout = "2006-01-02"
	hourLayout = "2006-01-02T15:04"
)

// Document is the JSON shape of a forecast. Text output shows the same
// values.
type Document struct {
	Location string        `json:"location"`
	Days     []DayDocument `json:"days"`
}

type DayDocument struct {
	Date               string         `json:"date"`
	WeatherCode        int            `json:"weather_code"`
	WeatherDescription string         `json:"weather_description"`
	TemperatureMin     float64        `json:"temperature_min"`
	TemperatureMax     float64        `json:"temperature_max"`
	PrecipitationSum   float64        `json:"precipitation_sum"`
	WindSpeedMax       float64        `json:"wind_speed_max"`
	Hourly             []HourDocument `json:"hourly"`
}

type HourDocument struct {
	Time               string  `json:"time"`
	Temperature        float64 `json:"temperature"`
	Precipitation      float64 `json:"precipitation"`
	WeatherCode        int     `json:"weather_code"`
	WeatherDescription string  `json:"weather_description"`
}

func NewDocument(location string, result *forecast.Result, cat *locale.Catalog) *Document {
	doc := &Document{
		Location: location,
		Days:     make([]DayDocument, 0, len(result.Days)),
	}

	for _, d := range result.Days {
		day := DayDocument{
			Date:               d.Date,
			WeatherCode:        d.WeatherCode,
			WeatherDescription: cat.WeatherDescription(d.WeatherCode),
			TemperatureMin:     d.TemperatureMin,
			TemperatureMax:     d.TemperatureMax,
			PrecipitationSum:   d.PrecipitationSum,
			WindSpeedMax:       d.WindSpeedMax,
			Hourly:             make([]HourDocument, 0, len(d.Hourly)),
		}
		for _, h := range d.Hourly {
			day.Hourly = append(day.Hourly, HourDocument{
				Time:               h.Time,
				Temperature:        h.Temperature,
				Precipitation:      h.Precipitation,
				WeatherCode:        h.WeatherCode,
				WeatherDescription: cat.WeatherDescription(h.WeatherCode),
			})
		}
		doc.Days = append(doc.Days, day)
	}

	return doc
}

// JSON writes the indented document with non-ASCII text left unescaped.
func JSON(w io.Writer, location string, result *forecast.Result, cat *locale.Catalog) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(NewDocument(location, result, cat))
}

// Text writes the human readable forecast, one block per day followed
// by its hourly lines.
func Text(w io.Writer, location string, result *forecast.Result, cat *locale.Catalog) error {
	lines := []string{
		cat.T(locale.KeyWeatherFor) + " " + location,
		strings.Repeat("=", ruleWidth),
	}

	for i, d := range result.Days {
		if i > 0 {
			lines = append(lines, "")
		}

		lines = append(lines,
			"",
			formatDate(d.Date, cat),
			strings.Repeat("-", ruleWidth),
			label(cat, locale.KeyCondition)+cat.WeatherDescription(d.WeatherCode),
			label(cat, locale.KeyTemperature)+fmt.Sprintf("%.1f°C %s %.1f°C", d.TemperatureMin, cat.T(locale.KeyTo), d.TemperatureMax),
			label(cat, locale.KeyPrecipitation)+fmt.Sprintf("%.1f mm", d.PrecipitationSum),
			label(cat, locale.KeyWindMax)+fmt.Sprintf("%.1f km/h", d.WindSpeedMax),
			"",
		)

		for _, h := range d.Hourly {
			line := fmt.Sprintf("  %s  %5.1f°C  %s", formatHour(h.Time), h.Temperature, cat.WeatherDescription(h.WeatherCode))
			if h.Precipitation > 0 {
				line += fmt.Sprintf(", %.1fmm", h.Precipitation)
			}
			lines = append(lines, line)
		}
	}

	_, err := io.WriteString(w, strings.Join(lines, "\n")+"\n")
	return err
}

func label(cat *locale.Catalog, key locale.Key) string {
	return fmt.Sprintf("%-*s ", labelWidth, cat.T(key))
}

func formatDate(raw string, cat *locale.Catalog) string {
	t, err := time.Parse(dateLayout, raw)
	if err != nil {
		if raw == "" {
			return cat.T(locale.KeyUnknown)
		}
		return raw
	}
	return fmt.Sprintf("%s (%s)", t.Format("02.01.2006"), cat.Weekday(t.Weekday()))
}

func formatHour(raw string) string {
	t, err := time.Parse(hourLayout, raw)
	if err != nil {
		return "??:??"
	}
	return t.Format("15:04")
}
