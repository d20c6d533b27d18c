package habit

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// DateLayout is the form of milestone target dates and calendar keys.
const DateLayout = "2006-01-02"

// Time is a timestamp that also reads the zone-less ISO-8601 form older
// documents were written with. Zone-less values are taken as time.Local.
type Time struct {
	time.Time
}

func At(t time.Time) Time { return Time{Time: t} }

// Ptr returns a pointer to a Time holding t.
func Ptr(t time.Time) *Time {
	v := At(t)
	return &v
}

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	DateLayout,
}

// ParseTime accepts RFC 3339, zone-less ISO-8601 and bare dates.
func ParseTime(s string) (time.Time, error) {
	for _, layout := range timeLayouts {
		var (
			t   time.Time
			err error
		)
		if layout == time.RFC3339Nano {
			t, err = time.Parse(layout, s)
		} else {
			t, err = time.ParseInLocation(layout, s, time.Local)
		}
		if err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized time %q", s)
}

func (t Time) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.Time.Format(time.RFC3339Nano))
}

func (t *Time) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		t.Time = time.Time{}
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if s == "" {
		t.Time = time.Time{}
		return nil
	}
	parsed, err := ParseTime(s)
	if err != nil {
		return err
	}
	t.Time = parsed
	return nil
}

func (t *Time) clone() *Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}

// Midnight returns the start of t's calendar day in loc.
func Midnight(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// SameDay compares the calendar dates of a and b as seen in loc.
func SameDay(a, b time.Time, loc *time.Location) bool {
	return DateKey(a, loc) == DateKey(b, loc)
}

// DateKey formats t's calendar date in loc as YYYY-MM-DD.
func DateKey(t time.Time, loc *time.Location) string {
	return Midnight(t, loc).Format(DateLayout)
}

// DaysBetween counts whole calendar days from a to b in loc. DST shifts do
// not affect the result.
func DaysBetween(a, b time.Time, loc *time.Location) int {
	ay, am, ad := Midnight(a, loc).Date()
	by, bm, bd := Midnight(b, loc).Date()
	ua := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	ub := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int(ub.Sub(ua).Hours() / 24)
}

// ParseDate reads a YYYY-MM-DD target date into midnight in loc. Longer
// timestamps are accepted and truncated to their date part.
func ParseDate(s string, loc *time.Location) (time.Time, bool) {
	if loc == nil {
		loc = time.UTC
	}
	if len(s) > len(DateLayout) {
		s = s[:len(DateLayout)]
	}
	t, err := time.ParseInLocation(DateLayout, s, loc)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
