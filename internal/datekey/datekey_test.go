package datekey

import (
	"testing"
	"time"

	"github.com/arlobridge/calx/internal/icalevent"
	"github.com/arlobridge/calx/internal/tzresolve"
)

func TestKeyOfDateOnly(t *testing.T) {
	tv := icalevent.TimedValue{
		Instant:  time.Date(2026, time.February, 26, 0, 0, 0, 0, time.UTC),
		DateOnly: true,
	}
	if got, want := KeyOf(tv), "2026-02-26"; got != want {
		t.Errorf("KeyOf(date-only) = %q, want %q", got, want)
	}
}

func TestKeyOfZonedCrossesUTCBoundary(t *testing.T) {
	// Exchange server: TZID=W. Europe Standard Time:20260226T000000 denotes
	// Feb 26 in CET, which is Feb 25 23:00 UTC.
	zone := tzresolve.Resolve("W. Europe Standard Time")
	tv := icalevent.TimedValue{
		Instant: time.Date(2026, time.February, 25, 23, 0, 0, 0, time.UTC),
		Zone:    &zone,
	}
	if got, want := KeyOf(tv), "2026-02-26"; got != want {
		t.Errorf("KeyOf(zoned) = %q, want %q (Exchange CET midnight, not UTC's Feb 25)", got, want)
	}
}

func TestKeyOfFixedOffset(t *testing.T) {
	minutes := -480
	zone := tzresolve.Zone{FixedOffsetMinutes: &minutes}
	tv := icalevent.TimedValue{
		Instant: time.Date(2026, time.January, 1, 2, 0, 0, 0, time.UTC), // 18:00 previous day at -08:00
		Zone:    &zone,
	}
	if got, want := KeyOf(tv), "2025-12-31"; got != want {
		t.Errorf("KeyOf(fixed offset) = %q, want %q", got, want)
	}
}

func TestKeyOfNoZoneUsesUTC(t *testing.T) {
	tv := icalevent.TimedValue{Instant: time.Date(2026, time.June, 1, 12, 0, 0, 0, time.UTC)}
	if got, want := KeyOf(tv), "2026-06-01"; got != want {
		t.Errorf("KeyOf(no zone) = %q, want %q", got, want)
	}
}

func TestKeyOfIdempotent(t *testing.T) {
	// Applying KeyOf to an instant constructed at the key's own midnight
	// must return the same key.
	tv := icalevent.TimedValue{
		Instant:  time.Date(2026, time.March, 3, 0, 0, 0, 0, time.UTC),
		DateOnly: true,
	}
	key := KeyOf(tv)
	reconstructed, err := time.Parse("2006-01-02", key)
	if err != nil {
		t.Fatalf("parse key: %v", err)
	}
	tv2 := icalevent.TimedValue{Instant: reconstructed, DateOnly: true}
	if got := KeyOf(tv2); got != key {
		t.Errorf("KeyOf not idempotent: %q != %q", got, key)
	}
}

func TestLookupKeysIncludesISOForm(t *testing.T) {
	// PST EXDATE crossing UTC midnight: a 16:00 America/Los_Angeles
	// occurrence after the fall-back transition lands on the next UTC day.
	zone := tzresolve.Resolve("America/Los_Angeles")
	tv := icalevent.TimedValue{
		Instant: time.Date(2023, time.November, 9, 0, 0, 0, 0, time.UTC), // 2023-11-08 16:00 PST
		Zone:    &zone,
	}
	keys := LookupKeys(tv)
	if len(keys) != 2 {
		t.Fatalf("LookupKeys returned %d keys, want 2", len(keys))
	}
	if keys[0] != "2023-11-08" {
		t.Errorf("LookupKeys[0] = %q, want local calendar key 2023-11-08", keys[0])
	}
	if keys[1] != "2023-11-09T00:00:00.000Z" {
		t.Errorf("LookupKeys[1] = %q, want UTC ISO form", keys[1])
	}
}
