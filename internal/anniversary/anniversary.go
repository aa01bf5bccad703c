// Package anniversary counts the days left until the next yearly occurrence of a date.
package anniversary

import (
	"time"

	"github.com/edgard/morningbot/internal/config"
)

// Countdown is the number of days until a person's next birthday.
type Countdown struct {
	Name string
	Days int
}

// DaysUntil returns the days from today until the next occurrence of ref's month
// and day, 0 when today is that day. Only the calendar dates of both values matter;
// ref's year is ignored. A February 29 reference falls on February 28 in common years.
func DaysUntil(ref, today time.Time) int {
	start := civilDate(today.Year(), today.Month(), today.Day())

	next := occurrence(ref, start.Year())
	if next.Before(start) {
		next = occurrence(ref, start.Year()+1)
	}

	return int(next.Sub(start).Hours() / 24)
}

// Roster computes the countdown for every person, preserving roster order.
func Roster(people []config.Person, today time.Time) []Countdown {
	out := make([]Countdown, 0, len(people))
	for _, p := range people {
		out = append(out, Countdown{Name: p.Name, Days: DaysUntil(p.Birth, today)})
	}
	return out
}

func occurrence(ref time.Time, year int) time.Time {
	day := ref.Day()
	if ref.Month() == time.February && day == 29 && !isLeap(year) {
		day = 28
	}
	return civilDate(year, ref.Month(), day)
}

func civilDate(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func isLeap(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}
