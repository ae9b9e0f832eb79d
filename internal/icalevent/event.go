// Package icalevent defines the data model the expansion engine consumes:
// parsed iCalendar events, their zone/date-only metadata, and the
// occurrence instances the engine produces.
package icalevent

import (
	"time"

	"github.com/arlobridge/calx/internal/tzresolve"
)

// DateType declares whole-day vs. timed semantics for an event, mirroring
// iCalendar's VALUE=DATE / VALUE=DATE-TIME distinction.
type DateType string

const (
	DateTypeDate     DateType = "date"
	DateTypeDateTime DateType = "date-time"
)

// TimedValue carries an instant plus the metadata needed to recover its
// original wall-clock representation: the zone it was expressed in (nil if
// none was ever resolved — treat as UTC) and whether it denotes a calendar
// date rather than a specific moment.
//
// This replaces the "non-enumerable fields bolted onto a mutable date
// object" pattern the data model started from: TimedValue is an immutable
// record, and every clone the engine performs copies it by value.
type TimedValue struct {
	Instant  time.Time
	Zone     *tzresolve.Zone
	DateOnly bool
}

// WithInstant returns a copy of tv with a new Instant, preserving Zone and
// DateOnly — the engine's standard way of deriving a candidate's emitted
// start from a base event's metadata.
func (tv TimedValue) WithInstant(t time.Time) TimedValue {
	tv.Instant = t
	return tv
}

// Event is a single parsed iCalendar event: a base occurrence plus an
// optional recurrence rule, exclusions, and per-occurrence overrides.
// Override events share this same shape (minus RRule, by convention: an
// override's RRule is always nil).
type Event struct {
	UID     string
	Summary string

	Start TimedValue
	End   *TimedValue // nil if absent

	Duration *time.Duration

	DateType DateType

	RRule Rule // nil for non-recurring events

	// ExDate maps canonical YYYY-MM-DD keys (and/or UTC ISO timestamps,
	// per the dual-key lookup rule) to a marker value.
	ExDate map[string]struct{}

	// Recurrences maps canonical keys to override events. Override values
	// never have RRule set.
	Recurrences map[string]*Event
}

// Rule is the Recurrence Rule Iterator collaborator contract: given an
// inclusive window, return every base instant the rule generates within
// it, ascending, already capped by the rule's own COUNT/UNTIL. The engine
// treats implementations as opaque.
type Rule interface {
	Between(from, to time.Time) []time.Time
}

// IsExcluded reports whether any of the given keys appears in ExDate —
// the dual-key fallback that correlates EXDATE entries with
// RRULE-generated instants across a UTC calendar-day boundary.
func (e *Event) IsExcluded(keys ...string) bool {
	for _, k := range keys {
		if _, ok := e.ExDate[k]; ok {
			return true
		}
	}
	return false
}

// Override looks up a per-occurrence override by any of the given
// candidate keys, returning the first match.
func (e *Event) Override(keys ...string) (*Event, bool) {
	for _, k := range keys {
		if ov, ok := e.Recurrences[k]; ok {
			return ov, true
		}
	}
	return nil, false
}

// EffectiveDuration returns the event's own duration, preferring an
// explicit Duration, then End-Start, then (for whole-day events) 24h, then
// zero. Used for the ongoing-window widening and for an override whose End
// is absent; a non-override instance's End is derived separately.
func (e *Event) EffectiveDuration() time.Duration {
	switch {
	case e.Duration != nil:
		return *e.Duration
	case e.End != nil:
		return e.End.Instant.Sub(e.Start.Instant)
	case e.DateType == DateTypeDate || e.Start.DateOnly:
		return 24 * time.Hour
	default:
		return 0
	}
}

// Instance is a single concrete occurrence produced by Expand.
type Instance struct {
	Start TimedValue
	End   TimedValue

	Summary string

	// IsFullDay is derived strictly from DateType == date OR Start.DateOnly.
	IsFullDay bool

	// IsRecurring is true iff the source event had an RRule.
	IsRecurring bool

	// IsOverride is true iff this instance came from Recurrences[key].
	IsOverride bool

	// Event references the effective event record: the override if one
	// applied, otherwise the base event.
	Event *Event
}
