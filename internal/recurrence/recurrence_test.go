package recurrence

import (
	"testing"
	"time"
)

func TestParseRRuleWeekly(t *testing.T) {
	dtstart := time.Date(2026, time.January, 5, 9, 0, 0, 0, time.UTC) // Monday
	rule, err := ParseRRule("FREQ=WEEKLY;BYDAY=MO,WE,FR;COUNT=6", dtstart)
	if err != nil {
		t.Fatalf("ParseRRule: %v", err)
	}
	got := rule.Between(dtstart, dtstart.AddDate(0, 0, 14))
	if len(got) == 0 {
		t.Fatal("Between returned no occurrences")
	}
	for _, occ := range got {
		switch occ.Weekday() {
		case time.Monday, time.Wednesday, time.Friday:
		default:
			t.Errorf("occurrence %v fell on unexpected weekday %v", occ, occ.Weekday())
		}
	}
}

func TestParseRRuleRespectsCount(t *testing.T) {
	dtstart := time.Date(2026, time.March, 1, 8, 0, 0, 0, time.UTC)
	rule, err := ParseRRule("FREQ=DAILY;COUNT=3", dtstart)
	if err != nil {
		t.Fatalf("ParseRRule: %v", err)
	}
	all := rule.All()
	if len(all) != 3 {
		t.Errorf("All() returned %d occurrences, want 3", len(all))
	}
}

func TestParseRRuleInvalidReturnsError(t *testing.T) {
	if _, err := ParseRRule("FREQ=NOTAFREQ", time.Now().UTC()); err == nil {
		t.Error("ParseRRule(invalid) = nil error, want non-nil")
	}
}

func TestBetweenBoundedByUntil(t *testing.T) {
	dtstart := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	rule, err := ParseRRule("FREQ=DAILY;UNTIL=20260105T000000Z", dtstart)
	if err != nil {
		t.Fatalf("ParseRRule: %v", err)
	}
	got := rule.Between(dtstart, dtstart.AddDate(1, 0, 0))
	if len(got) == 0 {
		t.Fatal("expected occurrences before UNTIL")
	}
	last := got[len(got)-1]
	cutoff := time.Date(2026, time.January, 5, 0, 0, 0, 0, time.UTC)
	if last.After(cutoff) {
		t.Errorf("last occurrence %v is after UNTIL %v", last, cutoff)
	}
}
