// Package walltime converts local wall-clock calendar fields to UTC
// instants (and back), with defined DST gap/fold disambiguation.
package walltime

import (
	"fmt"
	"time"

	"github.com/arlobridge/calx/internal/tzresolve"
)

// Fields are the local wall-clock calendar fields iCalendar properties
// carry: year, month, day, hour, minute, second.
type Fields struct {
	Year                        int
	Month                       time.Month
	Day, Hour, Minute, Second   int
}

// ParseFields accepts both compact ("YYYYMMDDTHHmmss", seconds optional)
// and extended ("YYYY-MM-DDTHH:mm:ss") textual forms. ok is false when the
// shape matches neither form; the caller decides whether that means "no
// instant" or a hard failure.
func ParseFields(s string) (f Fields, ok bool) {
	if f, ok = parseCompact(s); ok {
		return f, true
	}
	return parseExtended(s)
}

func parseCompact(s string) (Fields, bool) {
	// YYYYMMDDTHHmmss or YYYYMMDDTHHmm or YYYYMMDD
	if len(s) < 8 {
		return Fields{}, false
	}
	year, ok := atoi(s[0:4])
	if !ok {
		return Fields{}, false
	}
	month, ok := atoi(s[4:6])
	if !ok || month < 1 || month > 12 {
		return Fields{}, false
	}
	day, ok := atoi(s[6:8])
	if !ok || day < 1 || day > 31 {
		return Fields{}, false
	}

	f := Fields{Year: year, Month: time.Month(month), Day: day}

	if len(s) == 8 {
		return f, true
	}
	if len(s) < 9 || (s[8] != 'T' && s[8] != 't') {
		return Fields{}, false
	}
	rest := s[9:]
	rest = trimZ(rest)
	switch len(rest) {
	case 4:
		h, ok1 := atoi(rest[0:2])
		m, ok2 := atoi(rest[2:4])
		if !ok1 || !ok2 {
			return Fields{}, false
		}
		f.Hour, f.Minute = h, m
	case 6:
		h, ok1 := atoi(rest[0:2])
		m, ok2 := atoi(rest[2:4])
		sec, ok3 := atoi(rest[4:6])
		if !ok1 || !ok2 || !ok3 {
			return Fields{}, false
		}
		f.Hour, f.Minute, f.Second = h, m, sec
	default:
		return Fields{}, false
	}
	return f, true
}

func parseExtended(s string) (Fields, bool) {
	s = trimZ(s)
	layouts := []string{"2006-01-02T15:04:05", "2006-01-02T15:04"}
	for _, layout := range layouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return Fields{
				Year: t.Year(), Month: t.Month(), Day: t.Day(),
				Hour: t.Hour(), Minute: t.Minute(), Second: t.Second(),
			}, true
		}
	}
	return Fields{}, false
}

func trimZ(s string) string {
	if len(s) > 0 && (s[len(s)-1] == 'Z' || s[len(s)-1] == 'z') {
		return s[:len(s)-1]
	}
	return s
}

func atoi(s string) (int, bool) {
	n := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, false
		}
		n = n*10 + int(r-'0')
	}
	return n, true
}

// ToInstant converts local wall-clock fields in zone to the UTC instant
// they denote.
//
// For an IANA zone: if the wall time falls in a DST gap (no such instant
// exists), it is read with the pre-transition offset, landing the gap's
// width later (02:30 in a 02:00->03:00 gap resolves to 03:30). If it falls
// in a DST fold (the wall time occurs twice), the second, post-transition
// occurrence is returned. time.Date itself picks the first occurrence of a
// fold, so ToInstant detects folds explicitly and corrects for them.
//
// For a FixedOffset zone: utc = wall_as_UTC - offset.
func ToInstant(f Fields, zone tzresolve.Zone) (time.Time, error) {
	switch {
	case zone.IsIANA():
		loc, err := time.LoadLocation(zone.IANA)
		if err != nil {
			return time.Time{}, fmt.Errorf("walltime: load location %q: %w", zone.IANA, err)
		}
		return toInstantIn(f, loc), nil
	case zone.IsFixedOffset():
		wallUTC := time.Date(f.Year, f.Month, f.Day, f.Hour, f.Minute, f.Second, 0, time.UTC)
		return wallUTC.Add(-time.Duration(*zone.FixedOffsetMinutes) * time.Minute), nil
	default:
		return time.Date(f.Year, f.Month, f.Day, f.Hour, f.Minute, f.Second, 0, time.UTC), nil
	}
}

// toInstantIn resolves a wall time within loc, correcting time.Date's
// default fold behavior (first occurrence) to the second occurrence. For a
// nonexistent wall time time.Date does not reliably pick the later side
// (in America/Los_Angeles it lands before the gap), so gaps are detected
// and resolved with the pre-transition offset.
func toInstantIn(f Fields, loc *time.Location) time.Time {
	t := time.Date(f.Year, f.Month, f.Day, f.Hour, f.Minute, f.Second, 0, loc)

	// Bracket the day with same-wall-clock lookups 24h on either side. If
	// the zone's offset differs between them, a transition falls close to
	// this date and t might be ambiguous.
	before := time.Date(f.Year, f.Month, f.Day-1, f.Hour, f.Minute, f.Second, 0, loc)
	after := time.Date(f.Year, f.Month, f.Day+1, f.Hour, f.Minute, f.Second, 0, loc)
	_, beforeOffset := before.Zone()
	_, afterOffset := after.Zone()

	if beforeOffset == afterOffset {
		return t // no nearby transition: unambiguous
	}

	if t.Year() != f.Year || t.Month() != f.Month || t.Day() != f.Day ||
		t.Hour() != f.Hour || t.Minute() != f.Minute || t.Second() != f.Second {
		// No instant in loc shows these fields: f falls in a gap.
		wall := time.Date(f.Year, f.Month, f.Day, f.Hour, f.Minute, f.Second, 0, time.UTC)
		return wall.Add(-time.Duration(beforeOffset) * time.Second).In(loc)
	}

	_, tOffset := t.Zone()
	if tOffset != beforeOffset || tOffset == afterOffset {
		return t // t already resolved to the post-transition side, or isn't implicated
	}

	// t landed on the pre-transition (first) occurrence of a fold; shift
	// to the post-transition (second) occurrence.
	candidate := t.Add(time.Duration(beforeOffset-afterOffset) * time.Second)
	if candidate.Year() == f.Year && candidate.Month() == f.Month && candidate.Day() == f.Day &&
		candidate.Hour() == f.Hour && candidate.Minute() == f.Minute && candidate.Second() == f.Second {
		return candidate
	}
	return t
}

// FormatForRRule produces the local wall-clock representation of t in zone
// as "YYYYMMDDTHHmmss", the anchor form the Recurrence Rule Iterator
// expects when handed a DTSTART.
func FormatForRRule(t time.Time, zone tzresolve.Zone) string {
	switch {
	case zone.IsIANA():
		if loc, err := time.LoadLocation(zone.IANA); err == nil {
			return t.In(loc).Format("20060102T150405")
		}
	case zone.IsFixedOffset():
		return t.Add(time.Duration(*zone.FixedOffsetMinutes) * time.Minute).Format("20060102T150405")
	}
	return t.UTC().Format("20060102T150405")
}
