// file: internals/helpers/dbtime/time_helper.go
package dbtime

import (
	"os"
	"strings"
	"sync"
	"time"
)

const DefaultTimezone = "Europe/Istanbul"

var (
	locOnce sync.Once
	appLoc  *time.Location
)

// AppLocation resolves APP_TIMEZONE once; falls back to Europe/Istanbul, then UTC+3.
func AppLocation() *time.Location {
	locOnce.Do(func() {
		name := strings.TrimSpace(os.Getenv("APP_TIMEZONE"))
		if name == "" {
			name = DefaultTimezone
		}
		loc, err := time.LoadLocation(name)
		if err != nil {
			loc = time.FixedZone(DefaultTimezone, 3*3600)
		}
		appLoc = loc
	})
	return appLoc
}

// ParseDate parses "YYYY-MM-DD" as a UTC midnight date.
func ParseDate(s string) (time.Time, error) {
	return time.Parse("2006-01-02", strings.TrimSpace(s))
}

// InclusiveDays counts calendar days from start to end, both included.
func InclusiveDays(start, end time.Time) int {
	s := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	e := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, time.UTC)
	return int(e.Sub(s).Hours()/24) + 1
}

// Weekday labels in Turkish, indexed by time.Weekday.
var weekdayTR = [...]string{"Pazar", "Pazartesi", "Salı", "Çarşamba", "Perşembe", "Cuma", "Cumartesi"}

func WeekdayTR(d time.Weekday) string {
	return weekdayTR[d]
}
