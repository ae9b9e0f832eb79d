// Package tzresolve normalizes heterogeneous TZID strings — IANA names,
// Windows display labels, and fixed-offset labels — to a canonical Zone
// descriptor.
package tzresolve

import "fmt"

// Zone is a tagged variant describing a resolved time zone. Exactly one of
// IANA, FixedOffsetMinutes, or Unresolved is populated.
type Zone struct {
	// IANA holds a canonical IANA zone name (e.g. "America/Los_Angeles").
	IANA string
	// FixedOffsetMinutes holds a signed offset from UTC, in [-840, 840].
	FixedOffsetMinutes *int
	// Unresolved holds the original TZID string when resolution failed.
	// Consumers must treat this case as UTC.
	Unresolved *string
}

// IsIANA reports whether the zone resolved to a named IANA zone.
func (z Zone) IsIANA() bool { return z.IANA != "" }

// IsFixedOffset reports whether the zone resolved to a fixed UTC offset.
func (z Zone) IsFixedOffset() bool { return z.FixedOffsetMinutes != nil }

// IsUnresolved reports whether the zone could not be resolved at all.
func (z Zone) IsUnresolved() bool { return z.Unresolved != nil }

// String renders the zone the way it should be recorded as TimedValue
// metadata: the IANA name, a "+HH:MM" label for fixed offsets, or the
// original unresolved string.
func (z Zone) String() string {
	switch {
	case z.IsIANA():
		return z.IANA
	case z.IsFixedOffset():
		return formatOffsetLabel(*z.FixedOffsetMinutes)
	case z.IsUnresolved():
		return *z.Unresolved
	default:
		return "UTC"
	}
}

func formatOffsetLabel(minutes int) string {
	sign := "+"
	if minutes < 0 {
		sign = "-"
		minutes = -minutes
	}
	return fmt.Sprintf("%s%02d:%02d", sign, minutes/60, minutes%60)
}

func fixedOffset(minutes int) Zone {
	m := minutes
	return Zone{FixedOffsetMinutes: &m}
}

func unresolved(original string) Zone {
	o := original
	return Zone{Unresolved: &o}
}

func iana(name string) Zone {
	return Zone{IANA: name}
}

// UTC is the IANA "UTC" zone descriptor.
var UTC = iana("UTC")
