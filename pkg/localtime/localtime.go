// Package localtime is the single timezone conversion boundary of the
// service. Appointments are stored as UTC instants; every business rule is
// evaluated in one fixed organizational timezone. The availability engine
// works with values produced here and never loads locations itself.
package localtime

import (
	"fmt"
	"time"

	"github.com/hubtracker/scheduling-service/pkg/types"
)

// Converter converts between UTC instants and organizational-local
// calendar dates / wall-clock times.
type Converter struct {
	loc *time.Location
}

// NewConverter loads the organizational timezone by IANA name.
func NewConverter(name string) (*Converter, error) {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", name, err)
	}
	return &Converter{loc: loc}, nil
}

// Location returns the organizational timezone.
func (c *Converter) Location() *time.Location {
	return c.loc
}

// ToUTC combines a local calendar date with a local wall-clock time and
// returns the corresponding UTC instant.
func (c *Converter) ToUTC(date time.Time, t types.TimeString) (time.Time, error) {
	minutes, err := t.Minutes()
	if err != nil {
		return time.Time{}, err
	}
	local := time.Date(date.Year(), date.Month(), date.Day(), minutes/60, minutes%60, 0, 0, c.loc)
	return local.UTC(), nil
}

// FromUTC splits a UTC instant into its local calendar date (midnight,
// organizational zone) and local wall-clock time.
func (c *Converter) FromUTC(instant time.Time) (time.Time, types.TimeString) {
	local := instant.In(c.loc)
	date := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, c.loc)
	return date, types.NewTimeString(local)
}

// LocalDate returns the local calendar date (midnight, organizational
// zone) the instant falls on.
func (c *Converter) LocalDate(instant time.Time) time.Time {
	date, _ := c.FromUTC(instant)
	return date
}

// In shifts an instant into the organizational timezone.
func (c *Converter) In(instant time.Time) time.Time {
	return instant.In(c.loc)
}
