package steps

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Capture conversion helpers. Handlers receive every capture group as a
// string; these accessors convert them to common types with forgiving,
// human-oriented formats (EU dates first, truthy/falsy words for booleans).

var (
	timeLayouts = []string{
		"15:04:05.000",
		"15:04:05",
		"15:04",
		"3:04:05pm",
		"3:04:05PM",
		"3:04pm",
		"3:04PM",
		"3:04 pm",
		"3:04 PM",
	}

	dateLayouts = []string{
		// EU formats (DD/MM/YYYY) first
		"02/01/2006",
		"02-01-2006",
		"02.01.2006",
		"2/1/2006",
		// ISO formats
		"2006-01-02",
		"2006/01/02",
		// Written formats
		"2 Jan 2006",
		"2 January 2006",
		"Jan 2, 2006",
		"January 2, 2006",
	}

	tzOffsetRegex = regexp.MustCompile(`^([+-])(\d{2}):?(\d{2})$`)
)

// Capture returns the capture group at index, or "" when out of range.
func (m StepMatch) Capture(index int) string {
	if index < 0 || index >= len(m.Captures) {
		return ""
	}
	return m.Captures[index]
}

// Int converts the capture group at index to an int.
func (m StepMatch) Int(index int) (int, error) {
	return strconv.Atoi(m.Capture(index))
}

// Int64 converts the capture group at index to an int64.
func (m StepMatch) Int64(index int) (int64, error) {
	return strconv.ParseInt(m.Capture(index), 10, 64)
}

// Float converts the capture group at index to a float64.
func (m StepMatch) Float(index int) (float64, error) {
	return strconv.ParseFloat(m.Capture(index), 64)
}

// Bool converts the capture group at index to a bool. Truthy values: true,
// yes, on, enabled, 1. Falsy values: false, no, off, disabled, 0.
// Comparisons are case-insensitive.
func (m StepMatch) Bool(index int) (bool, error) {
	switch strings.ToLower(m.Capture(index)) {
	case "true", "yes", "on", "enabled", "1":
		return true, nil
	case "false", "no", "off", "disabled", "0":
		return false, nil
	}
	return false, fmt.Errorf("cannot parse %q as bool", m.Capture(index))
}

// Time converts the capture group at index to a time.Time, trying datetime,
// date-only and time-only forms in that order.
func (m StepMatch) Time(index int) (time.Time, error) {
	value := strings.TrimSpace(m.Capture(index))

	if t, err := parseDateTime(value); err == nil {
		return t, nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, value, time.Local); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.Local), nil
		}
	}
	text, loc := splitTimezone(value)
	for _, layout := range timeLayouts {
		if t, err := time.ParseInLocation(layout, text, loc); err == nil {
			return time.Date(1, 1, 1, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), loc), nil
		}
	}
	return time.Time{}, fmt.Errorf("cannot parse %q as time", value)
}

// Timezone converts the capture group at index to a *time.Location.
// Supported forms: Z, UTC, +05:30, -0800, Europe/London.
func (m StepMatch) Timezone(index int) (*time.Location, error) {
	return parseTimezone(m.Capture(index))
}

func parseTimezone(s string) (*time.Location, error) {
	s = strings.TrimSpace(s)

	if s == "Z" || s == "UTC" {
		return time.UTC, nil
	}
	if groups := tzOffsetRegex.FindStringSubmatch(s); groups != nil {
		sign := 1
		if groups[1] == "-" {
			sign = -1
		}
		hours, _ := strconv.Atoi(groups[2])
		minutes, _ := strconv.Atoi(groups[3])
		return time.FixedZone(s, sign*(hours*3600+minutes*60)), nil
	}
	loc, err := time.LoadLocation(s)
	if err != nil {
		return nil, fmt.Errorf("unknown timezone %q: %w", s, err)
	}
	return loc, nil
}

// splitTimezone strips a trailing timezone token from a time or datetime
// string and returns the remainder together with the parsed location. When
// no timezone is present the local zone is used.
func splitTimezone(s string) (string, *time.Location) {
	s = strings.TrimSpace(s)

	if strings.HasSuffix(s, "Z") {
		return strings.TrimSuffix(s, "Z"), time.UTC
	}
	if strings.HasSuffix(s, "UTC") {
		return strings.TrimSpace(strings.TrimSuffix(s, "UTC")), time.UTC
	}
	if space := strings.LastIndexByte(s, ' '); space >= 0 {
		if loc, err := parseTimezone(s[space+1:]); err == nil {
			return strings.TrimSpace(s[:space]), loc
		}
	}
	// Offset directly attached, e.g. 14:30+05:30.
	for i := len(s) - 1; i > 0; i-- {
		if s[i] == '+' || s[i] == '-' {
			if loc, err := parseTimezone(s[i:]); err == nil {
				return s[:i], loc
			}
			break
		}
	}
	return s, time.Local
}

func parseDateTime(s string) (time.Time, error) {
	text, loc := splitTimezone(s)
	text = strings.TrimSpace(text)

	var datePart, timePart string
	if idx := strings.IndexByte(text, 'T'); idx >= 0 {
		datePart, timePart = text[:idx], text[idx+1:]
	} else {
		// Find the space separating date from time; the date itself may
		// contain spaces ("2 Jan 2006").
		for i := len(text) - 1; i >= 0; i-- {
			if text[i] == ' ' && strings.Contains(text[i+1:], ":") {
				datePart, timePart = text[:i], text[i+1:]
				break
			}
		}
	}
	if datePart == "" || timePart == "" {
		return time.Time{}, fmt.Errorf("cannot parse %q as datetime", s)
	}

	var day time.Time
	var err error
	for _, layout := range dateLayouts {
		if day, err = time.ParseInLocation(layout, datePart, loc); err == nil {
			break
		}
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("cannot parse date part %q of %q", datePart, s)
	}

	var clock time.Time
	for _, layout := range timeLayouts {
		if clock, err = time.ParseInLocation(layout, timePart, loc); err == nil {
			break
		}
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("cannot parse time part %q of %q", timePart, s)
	}

	return time.Date(day.Year(), day.Month(), day.Day(),
		clock.Hour(), clock.Minute(), clock.Second(), clock.Nanosecond(), loc), nil
}
