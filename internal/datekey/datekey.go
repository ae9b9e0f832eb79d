// Package datekey derives the canonical YYYY-MM-DD key used to correlate
// RRULE-generated instants with EXDATE entries and RECURRENCE-ID overrides.
//
// This is the most bug-prone function in the system: the priority order
// below exists specifically so that an Exchange server emitting
// TZID=W. Europe Standard Time:20260226T000000 is recognized as the
// calendar day Feb 26, not Feb 25 (what naively converting to UTC would
// yield).
package datekey

import (
	"fmt"
	"time"

	"github.com/arlobridge/calx/internal/icalevent"
)

// KeyOf computes the canonical key, in priority order:
//  1. If DateOnly, use the instant's own calendar fields verbatim — no
//     zone conversion, so the date identity survives any machine's
//     local zone.
//  2. Else if a zone resolved, convert to that zone's calendar.
//  3. Else use the UTC calendar.
func KeyOf(tv icalevent.TimedValue) string {
	switch {
	case tv.DateOnly:
		return format(tv.Instant.Year(), tv.Instant.Month(), tv.Instant.Day())
	case tv.Zone != nil && tv.Zone.IsIANA():
		loc, err := time.LoadLocation(tv.Zone.IANA)
		if err != nil {
			return format(tv.Instant.UTC().Date())
		}
		return format(tv.Instant.In(loc).Date())
	case tv.Zone != nil && tv.Zone.IsFixedOffset():
		shifted := tv.Instant.Add(time.Duration(*tv.Zone.FixedOffsetMinutes) * time.Minute).UTC()
		return format(shifted.Date())
	default:
		return format(tv.Instant.UTC().Date())
	}
}

func format(year int, month time.Month, day int) string {
	return fmt.Sprintf("%04d-%02d-%02d", year, int(month), day)
}

// LookupKeys returns both the canonical key and the instant's UTC
// ISO-8601 timestamp, the dual-key form the Expansion Engine must probe
// EXDATE/override maps with: a weekly 4pm Los Angeles occurrence, once the
// PDT->PST switch has happened, crosses into the next UTC calendar day, so
// an EXDATE recorded against the instant's own ISO form must still match.
func LookupKeys(tv icalevent.TimedValue) []string {
	return []string{KeyOf(tv), tv.Instant.UTC().Format("2006-01-02T15:04:05.000Z")}
}
