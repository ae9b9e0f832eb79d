// Package icalload parses an .ics document into icalevent.Event values,
// resolving each property's TZID through tzresolve and each date/time
// literal through walltime.
package icalload

import (
	"fmt"
	"io"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"

	"github.com/arlobridge/calx/internal/datekey"
	"github.com/arlobridge/calx/internal/icalevent"
	"github.com/arlobridge/calx/internal/recurrence"
	"github.com/arlobridge/calx/internal/tzresolve"
	"github.com/arlobridge/calx/internal/walltime"
)

// Logger receives non-fatal diagnostics encountered while loading. A nil
// Logger is valid; diagnostics are then discarded.
type Logger interface {
	Warnf(format string, args ...any)
}

// Load parses r as an iCalendar document and returns every VEVENT as an
// icalevent.Event, with RECURRENCE-ID overrides folded into their base
// event's Recurrences map.
func Load(r io.Reader, logger Logger) ([]*icalevent.Event, error) {
	cal, err := ics.ParseCalendar(r)
	if err != nil {
		return nil, fmt.Errorf("icalload: parse calendar: %w", err)
	}

	var bases []*icalevent.Event
	byUID := map[string]*icalevent.Event{}
	var overrides []*ics.VEvent

	for _, component := range cal.Components {
		vevent, ok := component.(*ics.VEvent)
		if !ok {
			continue
		}
		if recurrenceIDProp(vevent) != nil {
			overrides = append(overrides, vevent)
			continue
		}
		event, err := convertEvent(vevent, logger)
		if err != nil {
			warn(logger, "skipping event: %v", err)
			continue
		}
		bases = append(bases, event)
		byUID[event.UID] = event
	}

	for _, vevent := range overrides {
		override, err := convertEvent(vevent, logger)
		if err != nil {
			warn(logger, "skipping override: %v", err)
			continue
		}
		base, ok := byUID[override.UID]
		if !ok {
			warn(logger, "override for unknown UID %q dropped", override.UID)
			continue
		}

		recurrenceID, err := convertTimedProperty(recurrenceIDProp(vevent), logger)
		if err != nil {
			warn(logger, "override for UID %q has unparsable RECURRENCE-ID: %v", override.UID, err)
			continue
		}
		key := datekey.KeyOf(recurrenceID)
		if base.Recurrences == nil {
			base.Recurrences = map[string]*icalevent.Event{}
		}
		base.Recurrences[key] = override
	}

	return bases, nil
}

func recurrenceIDProp(vevent *ics.VEvent) *ics.IANAProperty {
	return vevent.GetProperty(ics.ComponentPropertyRecurrenceId)
}

func convertEvent(vevent *ics.VEvent, logger Logger) (*icalevent.Event, error) {
	uidProp := vevent.GetProperty(ics.ComponentPropertyUniqueId)
	uid := ""
	if uidProp != nil {
		uid = uidProp.Value
	}

	summary := ""
	if p := vevent.GetProperty(ics.ComponentPropertySummary); p != nil {
		summary = p.Value
	}

	dtstartProp := vevent.GetProperty(ics.ComponentPropertyDtStart)
	if dtstartProp == nil {
		return nil, fmt.Errorf("event %q has no DTSTART", uid)
	}
	start, err := convertTimedProperty(dtstartProp, logger)
	if err != nil {
		return nil, fmt.Errorf("event %q: DTSTART: %w", uid, err)
	}

	event := &icalevent.Event{
		UID:      uid,
		Summary:  summary,
		Start:    start,
		DateType: dateType(dtstartProp),
	}

	if dtendProp := vevent.GetProperty(ics.ComponentPropertyDtEnd); dtendProp != nil {
		end, err := convertTimedProperty(dtendProp, logger)
		if err != nil {
			warn(logger, "event %q: DTEND: %v", uid, err)
		} else {
			event.End = &end
		}
	}

	if durationProp := vevent.GetProperty(ics.ComponentPropertyDuration); durationProp != nil {
		if d, err := time.ParseDuration(isoDurationToGo(durationProp.Value)); err == nil {
			event.Duration = &d
		}
	}

	if rruleProp := vevent.GetProperty(ics.ComponentPropertyRrule); rruleProp != nil {
		rule, err := recurrence.ParseRRule(rruleProp.Value, start.Instant)
		if err != nil {
			warn(logger, "event %q: %v", uid, err)
		} else {
			event.RRule = rule
		}
	}

	event.ExDate = map[string]struct{}{}
	for _, prop := range vevent.Properties {
		if prop.IANAToken != string(ics.ComponentPropertyExdate) {
			continue
		}
		for _, value := range strings.Split(prop.Value, ",") {
			tv, err := convertTimed(value, tzidOf(&prop), logger)
			if err != nil {
				warn(logger, "event %q: EXDATE %q: %v", uid, value, err)
				continue
			}
			for _, k := range datekey.LookupKeys(tv) {
				event.ExDate[k] = struct{}{}
			}
		}
	}

	return event, nil
}

func dateType(prop *ics.IANAProperty) icalevent.DateType {
	if prop.ICalParameters != nil {
		if v, ok := prop.ICalParameters["VALUE"]; ok && len(v) > 0 && strings.EqualFold(v[0], "DATE") {
			return icalevent.DateTypeDate
		}
	}
	return icalevent.DateTypeDateTime
}

func tzidOf(prop *ics.IANAProperty) string {
	if prop.ICalParameters == nil {
		return ""
	}
	if v, ok := prop.ICalParameters["TZID"]; ok && len(v) > 0 {
		return v[0]
	}
	return ""
}

// convertTimedProperty resolves a DTSTART/DTEND/RECURRENCE-ID style property
// into a TimedValue, respecting its TZID parameter and VALUE=DATE flag.
func convertTimedProperty(prop *ics.IANAProperty, logger Logger) (icalevent.TimedValue, error) {
	if prop == nil {
		return icalevent.TimedValue{}, fmt.Errorf("nil property")
	}
	return convertTimed(prop.Value, tzidOf(prop), logger)
}

func convertTimed(value, tzid string, logger Logger) (icalevent.TimedValue, error) {
	value = strings.TrimSpace(value)
	dateOnly := len(value) == 8 // YYYYMMDD with no time component

	fields, ok := walltime.ParseFields(value)
	if !ok {
		return icalevent.TimedValue{}, fmt.Errorf("unparsable date/time value %q", value)
	}

	if strings.HasSuffix(value, "Z") || strings.HasSuffix(value, "z") {
		return icalevent.TimedValue{
			Instant:  time.Date(fields.Year, fields.Month, fields.Day, fields.Hour, fields.Minute, fields.Second, 0, time.UTC),
			DateOnly: dateOnly,
		}, nil
	}

	if dateOnly {
		return icalevent.TimedValue{
			Instant:  time.Date(fields.Year, fields.Month, fields.Day, 0, 0, 0, 0, time.UTC),
			DateOnly: true,
		}, nil
	}

	var zone *tzresolve.Zone
	var instant time.Time
	if tzid != "" {
		resolved := tzresolve.Resolve(tzid)
		zone = &resolved
		t, err := walltime.ToInstant(fields, resolved)
		if err != nil {
			return icalevent.TimedValue{}, err
		}
		instant = t
	} else {
		instant = time.Date(fields.Year, fields.Month, fields.Day, fields.Hour, fields.Minute, fields.Second, 0, time.UTC)
	}

	return icalevent.TimedValue{Instant: instant, Zone: zone}, nil
}

// isoDurationToGo converts a subset of ISO-8601 durations ("PT1H30M",
// "P1D") to Go's time.ParseDuration syntax, sufficient for the DURATION
// forms iCalendar producers emit.
func isoDurationToGo(iso string) string {
	iso = strings.TrimPrefix(iso, "P")
	days := ""
	rest := iso
	if idx := strings.Index(iso, "T"); idx >= 0 {
		datePart := iso[:idx]
		rest = iso[idx+1:]
		if strings.HasSuffix(datePart, "D") {
			days = strings.TrimSuffix(datePart, "D")
		}
	} else if strings.HasSuffix(iso, "D") {
		days = strings.TrimSuffix(iso, "D")
		rest = ""
	}

	var b strings.Builder
	if days != "" {
		fmt.Fprintf(&b, "%sh", daysToHours(days))
	}
	for _, pair := range []struct{ suffix, unit string }{{"H", "h"}, {"M", "m"}, {"S", "s"}} {
		if strings.Contains(rest, pair.suffix) {
			idx := strings.Index(rest, pair.suffix)
			b.WriteString(rest[:idx])
			b.WriteString(pair.unit)
			rest = rest[idx+1:]
		}
	}
	if b.Len() == 0 {
		return "0s"
	}
	return b.String()
}

func daysToHours(days string) string {
	n := 0
	for _, r := range days {
		if r < '0' || r > '9' {
			return "0"
		}
		n = n*10 + int(r-'0')
	}
	return fmt.Sprintf("%d", n*24)
}

func warn(logger Logger, format string, args ...any) {
	if logger != nil {
		logger.Warnf(format, args...)
	}
}
