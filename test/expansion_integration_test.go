package test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/arlobridge/calx/internal/expand"
	"github.com/arlobridge/calx/internal/feed"
	"github.com/arlobridge/calx/internal/icalevent"
	"github.com/arlobridge/calx/internal/icalload"
)

// These tests drive the full fetch -> parse -> expand pipeline against
// fixtures served over HTTP, covering the timezone cases that only show up
// with real wire-format input: a whole-day EXDATE carried with an Exchange
// Windows TZID, a timed EXDATE whose occurrence crosses UTC midnight after
// a DST transition, and a whole-day override moved via an Exchange-TZID
// RECURRENCE-ID.

const wholeDayExdateCETICS = `BEGIN:VCALENDAR
VERSION:2.0
PRODID:-//calx//integration//EN
BEGIN:VEVENT
UID:holiday-cet@calx
DTSTAMP:20260101T000000Z
DTSTART;VALUE=DATE:20260216
RRULE:FREQ=DAILY;UNTIL=20260222T230000Z
EXDATE;TZID=W. Europe Standard Time:20260218T000000
SUMMARY:Winter break
END:VEVENT
END:VCALENDAR
`

const weeklyExdatePSTICS = `BEGIN:VCALENDAR
VERSION:2.0
PRODID:-//calx//integration//EN
BEGIN:VEVENT
UID:weekly-la@calx
DTSTAMP:20231001T000000Z
DTSTART;TZID=America/Los_Angeles:20231025T160000
RRULE:FREQ=WEEKLY
EXDATE;TZID=America/Los_Angeles:20231108T160000
SUMMARY:Weekly sync
END:VEVENT
END:VCALENDAR
`

const movedWholeDayOverrideICS = `BEGIN:VCALENDAR
VERSION:2.0
PRODID:-//calx//integration//EN
BEGIN:VEVENT
UID:standup-cet@calx
DTSTAMP:20260101T000000Z
DTSTART;VALUE=DATE:20260219
RRULE:FREQ=WEEKLY;BYDAY=TU,TH
SUMMARY:Standup
END:VEVENT
BEGIN:VEVENT
UID:standup-cet@calx
DTSTAMP:20260101T000000Z
RECURRENCE-ID;TZID=W. Europe Standard Time:20260226T000000
DTSTART;VALUE=DATE:20260227
SUMMARY:Standup (moved)
END:VEVENT
END:VCALENDAR
`

// fetchAndExpand pulls a served feed through the whole pipeline.
func fetchAndExpand(t *testing.T, cs *CalendarServer, feedName string, from, to time.Time) []icalevent.Instance {
	t.Helper()

	data, err := feed.Fetch(context.Background(), cs.GetFeedURL(feedName))
	if err != nil {
		t.Fatalf("feed.Fetch: %v", err)
	}

	events, err := icalload.Load(bytes.NewReader(data), nil)
	if err != nil {
		t.Fatalf("icalload.Load: %v", err)
	}

	var instances []icalevent.Instance
	for _, event := range events {
		got, err := expand.Expand(event, expand.Request{From: from, To: to})
		if err != nil {
			t.Fatalf("expand.Expand(%q): %v", event.UID, err)
		}
		instances = append(instances, got...)
	}
	return instances
}

func TestIntegration_WholeDayExdateCET(t *testing.T) {
	cs := NewCalendarServer(t)
	defer cs.Close()
	cs.SetRawCalendarForFeed("holidays", wholeDayExdateCETICS)

	instances := fetchAndExpand(t, cs, "holidays",
		time.Date(2026, time.February, 15, 0, 0, 0, 0, time.UTC),
		time.Date(2026, time.February, 23, 0, 0, 0, 0, time.UTC))

	days := map[string]bool{}
	for _, inst := range instances {
		days[inst.Start.Instant.Format("2006-01-02")] = true
		if !inst.IsFullDay {
			t.Errorf("instance %v: IsFullDay = false, want true", inst.Start.Instant)
		}
	}

	if days["2026-02-18"] {
		t.Error("instance on excluded date 2026-02-18 was emitted")
	}
	if !days["2026-02-17"] {
		t.Error("expected an instance on 2026-02-17")
	}
}

func TestIntegration_ExdateCrossingUTCMidnightPST(t *testing.T) {
	cs := NewCalendarServer(t)
	defer cs.Close()
	cs.SetRawCalendarForFeed("weekly", weeklyExdatePSTICS)

	instances := fetchAndExpand(t, cs, "weekly",
		time.Date(2023, time.October, 20, 0, 0, 0, 0, time.UTC),
		time.Date(2023, time.November, 20, 0, 0, 0, 0, time.UTC))

	excluded := time.Date(2023, time.November, 9, 0, 0, 0, 0, time.UTC) // 16:00 PST on Nov 8
	for _, inst := range instances {
		if inst.Start.Instant.UTC().Equal(excluded) {
			t.Errorf("excluded occurrence at %v was emitted", excluded)
		}
	}

	wantPresent := []time.Time{
		time.Date(2023, time.October, 25, 23, 0, 0, 0, time.UTC), // 16:00 PDT
		time.Date(2023, time.November, 16, 0, 0, 0, 0, time.UTC), // 16:00 PST on Nov 15
	}
	for _, want := range wantPresent {
		found := false
		for _, inst := range instances {
			if inst.Start.Instant.UTC().Equal(want) {
				found = true
			}
		}
		if !found {
			t.Errorf("expected occurrence at %v, not found among %d instances", want, len(instances))
		}
	}
}

func TestIntegration_MovedWholeDayOverride(t *testing.T) {
	cs := NewCalendarServer(t)
	defer cs.Close()
	cs.SetRawCalendarForFeed("standup", movedWholeDayOverrideICS)

	instances := fetchAndExpand(t, cs, "standup",
		time.Date(2026, time.February, 19, 0, 0, 0, 0, time.UTC),
		time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC))

	var feb26Count, feb27Overrides int
	for _, inst := range instances {
		switch inst.Start.Instant.Format("2006-01-02") {
		case "2026-02-26":
			feb26Count++
		case "2026-02-27":
			if !inst.IsOverride {
				t.Error("2026-02-27 instance should have IsOverride=true")
			}
			if !inst.IsFullDay {
				t.Error("2026-02-27 instance should have IsFullDay=true")
			}
			if inst.Summary != "Standup (moved)" {
				t.Errorf("2026-02-27 summary = %q, want %q", inst.Summary, "Standup (moved)")
			}
			feb27Overrides++
		}
	}

	if feb26Count != 0 {
		t.Errorf("got %d instance(s) on 2026-02-26, want 0 (occurrence was moved)", feb26Count)
	}
	if feb27Overrides != 1 {
		t.Errorf("got %d override instance(s) on 2026-02-27, want exactly 1", feb27Overrides)
	}
}
