// Package expand implements the expansion engine: it turns a parsed event
// (possibly recurring, possibly carrying exclusions and overrides) into the
// concrete occurrence instances falling within a requested window.
package expand

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/arlobridge/calx/internal/datekey"
	"github.com/arlobridge/calx/internal/icalevent"
)

// ErrInvalidArgument is returned when from or to is not a usable instant.
var ErrInvalidArgument = errors.New("expand: invalid argument")

// ErrRange is returned when from is after to.
var ErrRange = errors.New("expand: from is after to")

// Request bounds an expansion and tunes its optional behaviors. The bool
// options are pointer-typed so the zero value (nil) can be distinguished
// from an explicit false, letting Expand apply its documented defaults.
type Request struct {
	From, To time.Time

	// ExcludeExdates defaults to true.
	ExcludeExdates *bool
	// IncludeOverrides defaults to true.
	IncludeOverrides *bool
	// ExpandOngoing defaults to false.
	ExpandOngoing *bool
}

func boolOr(p *bool, def bool) bool {
	if p == nil {
		return def
	}
	return *p
}

func (r Request) excludeExdates() bool   { return boolOr(r.ExcludeExdates, true) }
func (r Request) includeOverrides() bool { return boolOr(r.IncludeOverrides, true) }
func (r Request) expandOngoing() bool    { return boolOr(r.ExpandOngoing, false) }

// Expand produces every occurrence instance of event falling within
// req.From/req.To, applying EXDATE exclusion and RECURRENCE-ID override
// substitution per the configured options.
func Expand(event *icalevent.Event, req Request) ([]icalevent.Instance, error) {
	if req.From.IsZero() || req.To.IsZero() {
		return nil, fmt.Errorf("%w: from/to must be valid instants", ErrInvalidArgument)
	}
	if req.From.After(req.To) {
		return nil, fmt.Errorf("%w: from %v is after to %v", ErrRange, req.From, req.To)
	}

	candidates := candidateInstants(event, req)

	instances := make([]icalevent.Instance, 0, len(candidates))
	for _, c := range candidates {
		start := event.Start.WithInstant(c)
		keys := datekey.LookupKeys(start)

		if req.excludeExdates() && event.IsExcluded(keys...) {
			continue
		}

		effective := event
		isOverride := false
		if req.includeOverrides() {
			if ov, ok := event.Override(keys...); ok {
				effective = ov
				isOverride = true
				start = ov.Start
			}
		}

		end := deriveEnd(event, effective, isOverride, start)

		if !windowIncludes(req, start.Instant, end.Instant) {
			continue
		}

		instances = append(instances, icalevent.Instance{
			Start:       start,
			End:         end,
			Summary:     effective.Summary,
			IsFullDay:   effective.DateType == icalevent.DateTypeDate || start.DateOnly,
			IsRecurring: event.RRule != nil,
			IsOverride:  isOverride,
			Event:       effective,
		})
	}

	sort.SliceStable(instances, func(i, j int) bool {
		return instances[i].Start.Instant.Before(instances[j].Start.Instant)
	})

	return instances, nil
}

// candidateInstants generates every base instant to consider. When
// ExpandOngoing is set, it widens the window backward so that occurrences
// that started before From but end within it are still discovered; a
// non-ongoing expansion can never need instances starting before From, so
// the rule is queried with the unwidened window in that case.
func candidateInstants(event *icalevent.Event, req Request) []time.Time {
	if event.RRule == nil {
		return []time.Time{event.Start.Instant}
	}

	if !req.expandOngoing() {
		return event.RRule.Between(req.From, req.To)
	}

	widenBy := clampDuration(24 * time.Hour)
	if d := clampDuration(event.EffectiveDuration()); d > widenBy {
		widenBy = d
	}

	from := req.From.Add(-widenBy)
	return event.RRule.Between(from, req.To)
}

// deriveEnd computes an instance's end. Precedence: override's own end,
// then event.duration, then event.end offset, then whole-day 24h, then
// start itself.
func deriveEnd(base, effective *icalevent.Event, isOverride bool, start icalevent.TimedValue) icalevent.TimedValue {
	if isOverride && effective.End != nil {
		return *effective.End
	}
	if isOverride {
		// Override present but without its own End inherits the base
		// event's duration, anchored at the override's start.
		return start.WithInstant(start.Instant.Add(base.EffectiveDuration()))
	}

	switch {
	case base.Duration != nil:
		return start.WithInstant(start.Instant.Add(*base.Duration))
	case base.End != nil:
		return start.WithInstant(start.Instant.Add(base.End.Instant.Sub(base.Start.Instant)))
	case start.DateOnly:
		return start.WithInstant(start.Instant.Add(24 * time.Hour))
	default:
		return start
	}
}

func windowIncludes(req Request, start, end time.Time) bool {
	if !req.expandOngoing() {
		return !start.Before(req.From) && !start.After(req.To)
	}
	return !start.After(req.To) && !end.Before(req.From)
}

// clampDuration guards against pathological RRULE base durations: a
// negative one (e.g. a malformed event whose end precedes its start) falls
// back to 24h, and one longer than a year becomes math.MaxInt64/2 (about
// 146 years), so the rule is effectively queried from its beginning.
func clampDuration(d time.Duration) time.Duration {
	if d < 0 {
		return 24 * time.Hour
	}
	if d > 365*24*time.Hour {
		return time.Duration(math.MaxInt64 / 2)
	}
	return d
}
