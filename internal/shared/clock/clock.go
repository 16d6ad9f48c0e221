// Package clock pins "today" and "this week" to an explicit reporting
// timezone instead of the process timezone.
package clock

import (
	"fmt"
	"time"
	_ "time/tzdata"
)

type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// System is the wall clock.
var System Clock = systemClock{}

// Fixed always returns the same instant; used by tests.
type Fixed time.Time

func (f Fixed) Now() time.Time { return time.Time(f) }

// Calendar resolves day boundaries in a fixed location.
type Calendar struct {
	clock Clock
	loc   *time.Location
}

func NewCalendar(c Clock, loc *time.Location) Calendar {
	if c == nil {
		c = System
	}
	if loc == nil {
		loc = time.Local
	}
	return Calendar{clock: c, loc: loc}
}

// LoadCalendar builds a wall-clock calendar for an IANA zone name.
func LoadCalendar(zone string) (Calendar, error) {
	loc, err := time.LoadLocation(zone)
	if err != nil {
		return Calendar{}, fmt.Errorf("load reporting timezone %q: %w", zone, err)
	}
	return NewCalendar(System, loc), nil
}

func (c Calendar) Location() *time.Location { return c.loc }

// Now returns the current instant expressed in the reporting location.
func (c Calendar) Now() time.Time {
	return c.clock.Now().In(c.loc)
}

// StartOfDay returns local midnight of the day containing t.
func (c Calendar) StartOfDay(t time.Time) time.Time {
	t = t.In(c.loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, c.loc)
}

// DayBounds returns [midnight, next midnight) of the day containing t.
func (c Calendar) DayBounds(t time.Time) (time.Time, time.Time) {
	start := c.StartOfDay(t)
	return start, start.AddDate(0, 0, 1)
}

// Today returns the bounds of the current day.
func (c Calendar) Today() (time.Time, time.Time) {
	return c.DayBounds(c.Now())
}
