package icalload

import (
	"strings"
	"testing"
)

const simpleEventICS = `BEGIN:VCALENDAR
VERSION:2.0
PRODID:-//calx//test//EN
BEGIN:VEVENT
UID:simple-1@calx
DTSTAMP:20260101T000000Z
DTSTART:20260301T090000Z
DTEND:20260301T100000Z
SUMMARY:Standup
END:VEVENT
END:VCALENDAR
`

func TestLoadSimpleEvent(t *testing.T) {
	events, err := Load(strings.NewReader(simpleEventICS), nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("got %d events, want 1", len(events))
	}
	event := events[0]
	if event.UID != "simple-1@calx" {
		t.Errorf("UID = %q, want simple-1@calx", event.UID)
	}
	if event.Summary != "Standup" {
		t.Errorf("Summary = %q, want Standup", event.Summary)
	}
	if event.Start.Instant.Hour() != 9 {
		t.Errorf("Start hour = %d, want 9", event.Start.Instant.Hour())
	}
	if event.End == nil || event.End.Instant.Hour() != 10 {
		t.Error("End hour should be 10")
	}
}

const recurringWithExdateICS = `BEGIN:VCALENDAR
VERSION:2.0
PRODID:-//calx//test//EN
BEGIN:VEVENT
UID:recurring-1@calx
DTSTAMP:20260101T000000Z
DTSTART;VALUE=DATE:20260216
RRULE:FREQ=DAILY;UNTIL=20260222T230000Z
EXDATE;TZID=W. Europe Standard Time:20260218T000000
SUMMARY:Holiday
END:VEVENT
END:VCALENDAR
`

func TestLoadRecurringWithExdate(t *testing.T) {
	events, err := Load(strings.NewReader(recurringWithExdateICS), nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("got %d events, want 1", len(events))
	}
	event := events[0]
	if event.RRule == nil {
		t.Fatal("expected RRule to be set")
	}
	if !event.Start.DateOnly {
		t.Error("expected whole-day DTSTART to set DateOnly")
	}
	if len(event.ExDate) == 0 {
		t.Error("expected EXDATE to populate at least one key")
	}
	if _, ok := event.ExDate["2026-02-18"]; !ok {
		t.Errorf("expected ExDate to contain key 2026-02-18, got %v", event.ExDate)
	}
}

const overrideICS = `BEGIN:VCALENDAR
VERSION:2.0
PRODID:-//calx//test//EN
BEGIN:VEVENT
UID:base-1@calx
DTSTAMP:20260101T000000Z
DTSTART;VALUE=DATE:20260219
RRULE:FREQ=WEEKLY;BYDAY=TU,TH
SUMMARY:Standup
END:VEVENT
BEGIN:VEVENT
UID:base-1@calx
DTSTAMP:20260101T000000Z
RECURRENCE-ID;TZID=W. Europe Standard Time:20260226T000000
DTSTART;VALUE=DATE:20260227
SUMMARY:Standup (moved)
END:VEVENT
END:VCALENDAR
`

func TestLoadOverrideAttachesToBase(t *testing.T) {
	events, err := Load(strings.NewReader(overrideICS), nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("got %d base events, want 1 (override should not appear standalone)", len(events))
	}
	base := events[0]
	override, ok := base.Override("2026-02-26")
	if !ok {
		t.Fatal("expected override keyed by 2026-02-26")
	}
	if override.Summary != "Standup (moved)" {
		t.Errorf("override summary = %q, want %q", override.Summary, "Standup (moved)")
	}
}
