// Package recurrence adapts github.com/teambition/rrule-go to the
// icalevent.Rule collaborator contract the expansion engine depends on.
package recurrence

import (
	"fmt"
	"time"

	"github.com/teambition/rrule-go"

	"github.com/arlobridge/calx/internal/icalevent"
)

// RRuleAdapter wraps an rrule.RRule so it satisfies icalevent.Rule.
type RRuleAdapter struct {
	rule *rrule.RRule
}

var _ icalevent.Rule = (*RRuleAdapter)(nil)

// ParseRRule parses an RRULE value ("FREQ=WEEKLY;BYDAY=MO,WE,FR;COUNT=10")
// anchored to dtstart, the wall-clock instant the rule's recurrence set is
// computed relative to.
func ParseRRule(value string, dtstart time.Time) (*RRuleAdapter, error) {
	r, err := rrule.StrToRRule(value)
	if err != nil {
		return nil, fmt.Errorf("recurrence: parse RRULE %q: %w", value, err)
	}
	r.DTStart(dtstart)
	return &RRuleAdapter{rule: r}, nil
}

// Between returns every occurrence in [from, to], inclusive on both ends,
// already bounded by the rule's own COUNT/UNTIL. rrule-go's Between takes an
// inc flag for whether the boundary instants themselves count; the
// expansion engine's window-widening already produces from/to values where
// inclusive is always the right choice.
func (a *RRuleAdapter) Between(from, to time.Time) []time.Time {
	return a.rule.Between(from, to, true)
}

// All returns every occurrence the rule generates, for rules bounded by
// COUNT or UNTIL. Unbounded rules (bare FREQ with neither) return a large
// but finite slice capped by rrule-go's own default iteration limit.
func (a *RRuleAdapter) All() []time.Time {
	return a.rule.All()
}

// String renders the rule back to its RRULE text form.
func (a *RRuleAdapter) String() string {
	return a.rule.String()
}
