// file: internals/helpers/dbtime/tod.go
package dbtime

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Tod is a wall-clock time of day (date and zone dropped).
type Tod struct{ time.Time }

// Parse accepts "HH:MM" or "HH:MM:SS".
func Parse(s string) (Tod, error) {
	var tt Tod
	return tt, tt.parse(s)
}

func (t *Tod) parse(s string) error {
	s = strings.TrimSpace(s)
	if len(s) == 5 { // "HH:MM"
		s += ":00"
	}
	tt, err := time.Parse("15:04:05", s)
	if err != nil {
		return fmt.Errorf("tod: invalid clock %q", s)
	}
	t.Time = tt
	return nil
}

// Minutes since midnight.
func (t Tod) Minutes() int {
	return t.Hour()*60 + t.Minute()
}

// HHMM renders the short form stored in template snapshots.
func (t Tod) HHMM() string {
	return t.Format("15:04")
}

// NormalizeClock parses and re-renders as "HH:MM". Nil and blank stay nil.
func NormalizeClock(p *string) (*string, error) {
	if p == nil || strings.TrimSpace(*p) == "" {
		return nil, nil
	}
	t, err := Parse(*p)
	if err != nil {
		return nil, err
	}
	s := t.HHMM()
	return &s, nil
}

// WorkedMinutes returns end-start-break for optional clock pairs.
// A missing clock means a non-working day: 0. An end before start wraps past midnight.
func WorkedMinutes(start, end *string, breakMinutes int) int {
	if start == nil || end == nil {
		return 0
	}
	st, err1 := Parse(*start)
	et, err2 := Parse(*end)
	if err1 != nil || err2 != nil {
		return 0
	}
	d := et.Minutes() - st.Minutes()
	if d < 0 {
		d += 24 * 60
	}
	d -= breakMinutes
	if d < 0 {
		return 0
	}
	return d
}

// Scan: time.Time or string ("HH:MM[:SS]")
func (t *Tod) Scan(v any) error {
	switch x := v.(type) {
	case time.Time:
		t.Time = x
		return nil
	case []byte:
		return t.parse(string(x))
	case string:
		return t.parse(x)
	case nil:
		t.Time = time.Time{}
		return nil
	default:
		return fmt.Errorf("tod: unsupported Scan type %T", v)
	}
}

// Value sends "HH:MM:SS" so Postgres TIME accepts it.
func (t Tod) Value() (driver.Value, error) {
	if t.Time.IsZero() {
		return "00:00:00", nil
	}
	return t.Format("15:04:05"), nil
}

func (t Tod) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.HHMM())
}

func (t *Tod) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	return t.parse(s)
}
