package mseed

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// NSTime is a time in nanoseconds since 1970-01-01T00:00:00Z.  Leap seconds are not counted.
type NSTime int64

// Sentinel NSTime values that never represent an instant.
const (
	NSTErr   NSTime = -2145916800000000000
	NSTUnset NSTime = -2145916799999999999
)

// NSTModulus is the number of nanoseconds in a second.
const NSTModulus = int64(time.Second)

const isoFormat = "2006-01-02T15:04:05.000000000Z"

var (
	minTime = time.Unix(0, math.MinInt64).UTC()
	maxTime = time.Unix(0, math.MaxInt64).UTC()
)

// Calendar is a decoded NSTime.
type Calendar struct {
	Year       int
	YDay       int // day of the year [1,366]
	Month      time.Month
	Day        int
	Hour       int
	Minute     int
	Second     int // [0,59], leap seconds are not represented
	Nanosecond int
}

// Calendar converts n into calendar fields.
func (n NSTime) Calendar() (Calendar, error) {
	if n == NSTErr || n == NSTUnset {
		return Calendar{}, newError(GenericError, "time value is not set: %d", int64(n))
	}

	t := n.Time()

	return Calendar{
		Year:       t.Year(),
		YDay:       t.YearDay(),
		Month:      t.Month(),
		Day:        t.Day(),
		Hour:       t.Hour(),
		Minute:     t.Minute(),
		Second:     t.Second(),
		Nanosecond: t.Nanosecond(),
	}, nil
}

// Time returns n as a UTC time.Time.
func (n NSTime) Time() time.Time {
	return time.Unix(0, int64(n)).UTC()
}

// FromTime returns t as an NSTime.
func FromTime(t time.Time) NSTime {
	return NSTime(t.UnixNano())
}

// FromCalendar returns the NSTime for ordinal date and time fields.
// A second of 60 is accepted and rolls into the next minute.
func FromCalendar(year, yday, hour, min, sec, nsec int) (NSTime, error) {
	switch {
	case yday < 1 || yday > 366:
		return NSTErr, newError(GenericError, "day-of-year out of range: %d", yday)
	case yday == 366 && !isLeap(year):
		return NSTErr, newError(GenericError, "day-of-year 366 in non leap year %d", year)
	case hour < 0 || hour > 23:
		return NSTErr, newError(GenericError, "hour out of range: %d", hour)
	case min < 0 || min > 59:
		return NSTErr, newError(GenericError, "minute out of range: %d", min)
	case sec < 0 || sec > 60:
		return NSTErr, newError(GenericError, "second out of range: %d", sec)
	case nsec < 0 || nsec > 999999999:
		return NSTErr, newError(GenericError, "nanosecond out of range: %d", nsec)
	}

	t := time.Date(year, time.January, 1, hour, min, sec, nsec, time.UTC).AddDate(0, 0, yday-1)

	return fromBounded(t)
}

// FromMonthDay returns the NSTime for calendar date and time fields.
func FromMonthDay(year int, month time.Month, day, hour, min, sec, nsec int) (NSTime, error) {
	if month < time.January || month > time.December {
		return NSTErr, newError(GenericError, "month out of range: %d", month)
	}

	d := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	if day < 1 || day > d.AddDate(0, 1, -1).Day() {
		return NSTErr, newError(GenericError, "day of month out of range: %d", day)
	}

	return FromCalendar(year, time.Date(year, month, day, 0, 0, 0, 0, time.UTC).YearDay(), hour, min, sec, nsec)
}

func fromBounded(t time.Time) (NSTime, error) {
	if t.Before(minTime) || t.After(maxTime) {
		return NSTErr, newError(GenericError, "time not representable in nanoseconds: %s", t.Format(time.RFC3339))
	}
	return FromTime(t), nil
}

// SEEDOrdinal returns n in the form YYYY,DDD,HH:MM:SS.nnnnnnnnn.
func (n NSTime) SEEDOrdinal() (string, error) {
	c, err := n.Calendar()
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("%04d,%03d,%02d:%02d:%02d.%09d", c.Year, c.YDay, c.Hour, c.Minute, c.Second, c.Nanosecond), nil
}

// ISO returns n in the form YYYY-MM-DDTHH:MM:SS.nnnnnnnnnZ.
func (n NSTime) ISO() (string, error) {
	if n == NSTErr || n == NSTUnset {
		return "", newError(GenericError, "time value is not set: %d", int64(n))
	}
	return n.Time().Format(isoFormat), nil
}

func (n NSTime) String() string {
	s, err := n.SEEDOrdinal()
	if err != nil {
		return "invalid"
	}
	return s
}

// MarshalText encodes n as an ISO 8601 time.
func (n NSTime) MarshalText() ([]byte, error) {
	s, err := n.ISO()
	if err != nil {
		return nil, err
	}
	return []byte(s), nil
}

// UnmarshalText decodes any time ParseTime accepts.
func (n *NSTime) UnmarshalText(text []byte) error {
	t, err := ParseTime(string(text))
	if err != nil {
		return err
	}
	*n = t
	return nil
}

// ParseTime parses either a SEED ordinal time (YYYY,DDD[,HH:MM:SS[.fffffffff]])
// or an ISO 8601 UTC time (YYYY-MM-DD[THH:MM:SS[.fffffffff][Z]]).
func ParseTime(s string) (NSTime, error) {
	s = strings.TrimSpace(s)

	if strings.Contains(s, ",") {
		return parseOrdinal(s)
	}

	if len(s) == len(time.DateOnly) {
		t, err := time.Parse(time.DateOnly, s)
		if err != nil {
			return NSTErr, newError(GenericError, "invalid time string: %s - %s", s, err.Error())
		}
		return fromBounded(t)
	}

	if !strings.HasSuffix(s, "Z") {
		s += "Z"
	}

	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return NSTErr, newError(GenericError, "invalid time string: %s - %s", s, err.Error())
	}

	return fromBounded(t)
}

func parseOrdinal(s string) (NSTime, error) {
	p := strings.SplitN(s, ",", 3)
	if len(p) < 2 {
		return NSTErr, newError(GenericError, "invalid ordinal time string: %s", s)
	}

	var f [6]int // year, yday, hour, minute, second, nanosecond
	var err error

	if f[0], err = strconv.Atoi(p[0]); err != nil {
		return NSTErr, newError(GenericError, "invalid year in %s: %s", s, err.Error())
	}
	if f[1], err = strconv.Atoi(p[1]); err != nil {
		return NSTErr, newError(GenericError, "invalid day-of-year in %s: %s", s, err.Error())
	}

	if len(p) == 3 {
		hms := p[2]
		if i := strings.IndexByte(hms, '.'); i >= 0 {
			frac := hms[i+1:]
			hms = hms[:i]
			if len(frac) == 0 || len(frac) > 9 {
				return NSTErr, newError(GenericError, "invalid fractional seconds in %s", s)
			}
			if f[5], err = strconv.Atoi(frac + strings.Repeat("0", 9-len(frac))); err != nil {
				return NSTErr, newError(GenericError, "invalid fractional seconds in %s: %s", s, err.Error())
			}
		}

		for i, v := range strings.Split(hms, ":") {
			if i > 2 {
				return NSTErr, newError(GenericError, "invalid time of day in %s", s)
			}
			if f[2+i], err = strconv.Atoi(v); err != nil {
				return NSTErr, newError(GenericError, "invalid time of day in %s: %s", s, err.Error())
			}
		}
	}

	return FromCalendar(f[0], f[1], f[2], f[3], f[4], f[5])
}

func isLeap(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}
