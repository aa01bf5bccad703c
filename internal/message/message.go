// Package message assembles the morning greeting from the results of the
// individual pipeline stages. It is the only place where failed stages are
// turned into fallback wording.
package message

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/edgard/morningbot/internal/anniversary"
	"github.com/edgard/morningbot/internal/config"
	"github.com/edgard/morningbot/internal/quotes"
	"github.com/edgard/morningbot/internal/weather"
)

// Input holds everything the greeting is built from.
type Input struct {
	Roster  []anniversary.Countdown
	Weather weather.Result
	Quote   quotes.Result
	Texts   config.GreetingTexts
}

// Text returns the full multi-line greeting.
func Text(in Input) string {
	t := in.Texts
	lines := make([]string, 0, len(t.Opening)+len(in.Roster)+len(t.Closing)+8)

	lines = append(lines, t.Opening...)
	lines = append(lines, "", t.QuotePrefix+FormatQuote(in.Quote, t))
	lines = append(lines, "", t.RosterHeader)
	for _, c := range in.Roster {
		lines = append(lines, fmt.Sprintf(t.RosterLineFormat, c.Name, c.Days))
	}
	lines = append(lines, "", t.WeatherPrefix+FormatWeather(in.Weather, t))
	lines = append(lines, "")
	lines = append(lines, t.Closing...)

	return strings.Join(lines, "\n")
}

// Caption returns the greeting cut to the caption limit of t, or to
// config.CaptionLimit when that is unset.
func Caption(in Input) string {
	limit := in.Texts.CaptionLimit
	if limit <= 0 {
		limit = config.CaptionLimit
	}
	return Truncate(Text(in), limit)
}

// FormatQuote renders the quote, or the fallback matching the reason it is missing.
func FormatQuote(res quotes.Result, t config.GreetingTexts) string {
	switch {
	case res.OK():
		return res.Quote
	case errors.Is(res.Err, quotes.ErrNoQuotes):
		return t.QuotesEmpty
	default:
		return fmt.Sprintf(t.QuoteLostFormat, res.Err)
	}
}

// FormatWeather renders a weather report such as "ясно, 15°C", or the failure
// note when the fetch did not succeed.
func FormatWeather(res weather.Result, t config.GreetingTexts) string {
	if !res.OK() {
		return fmt.Sprintf(t.WeatherFailedFormat, res.Err)
	}
	return fmt.Sprintf(t.WeatherFormat, res.Report.Description, res.Report.TempC)
}

// Truncate cuts s to at most n characters, counted in runes.
func Truncate(s string, n int) string {
	if n < 0 {
		n = 0
	}
	if utf8.RuneCountInString(s) <= n {
		return s
	}

	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}
