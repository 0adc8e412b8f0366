// Package expiry derives the time-relative status of moderation records.
package expiry

import (
	"time"

	"github.com/robalyx/modlog/internal/types"
)

// State is the derived status of a record at a given instant.
type State int

const (
	// Permanent means the record has no expiry instant.
	Permanent State = iota
	// Expired means the expiry instant is at or before the evaluation instant.
	Expired
	// Active means the expiry instant is still in the future.
	Active
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case Permanent:
		return "permanent"
	case Expired:
		return "expired"
	case Active:
		return "active"
	default:
		return "unknown"
	}
}

// MarshalText encodes the state by name.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Unit is a component of a remaining duration.
type Unit int

const (
	Days Unit = iota
	Hours
	Minutes
	Seconds
)

// Part is one displayed component of a remaining duration.
type Part struct {
	Unit  Unit
	Value int64
}

// Result is the evaluated remaining time of a record.
// The breakdown fields are only meaningful when State is Active.
type Result struct {
	State   State `json:"state"`
	Days    int64 `json:"days"`
	Hours   int64 `json:"hours"`
	Minutes int64 `json:"minutes"`
	Seconds int64 `json:"seconds"`
}

// Remaining evaluates a record against a clock sample. It runs on every tick for
// every visible record, so it returns a plain value and never touches the record.
func Remaining(rec types.Record, now time.Time) Result {
	if rec.ExpiresAt == nil {
		return Result{State: Permanent}
	}

	return Until(*rec.ExpiresAt, now)
}

// Until evaluates an expiry instant against a clock sample.
func Until(expiresAt, now time.Time) Result {
	delta := expiresAt.Sub(now).Milliseconds()
	if delta <= 0 {
		return Result{State: Expired}
	}

	s := delta / 1000
	d := s / 86400
	s -= d * 86400
	h := s / 3600
	s -= h * 3600
	m := s / 60
	s -= m * 60

	return Result{State: Active, Days: d, Hours: h, Minutes: m, Seconds: s}
}

// Parts returns the components to display, largest first: non-zero days,
// hours, and minutes, then seconds unconditionally. It is empty unless Active.
func (r Result) Parts() []Part {
	if r.State != Active {
		return nil
	}

	parts := make([]Part, 0, 4)
	if r.Days != 0 {
		parts = append(parts, Part{Unit: Days, Value: r.Days})
	}

	if r.Hours != 0 {
		parts = append(parts, Part{Unit: Hours, Value: r.Hours})
	}

	if r.Minutes != 0 {
		parts = append(parts, Part{Unit: Minutes, Value: r.Minutes})
	}

	return append(parts, Part{Unit: Seconds, Value: r.Seconds})
}

// Duration returns the remaining time as a duration with second precision.
func (r Result) Duration() time.Duration {
	if r.State != Active {
		return 0
	}

	return time.Duration(r.Days)*24*time.Hour +
		time.Duration(r.Hours)*time.Hour +
		time.Duration(r.Minutes)*time.Minute +
		time.Duration(r.Seconds)*time.Second
}
