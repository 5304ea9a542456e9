package models

import (
	"errors"
	"strings"
	"time"
)

var ErrBadDate = errors.New("bad date")

var monthAbbrevs = [12]string{"jan", "feb", "mar", "apr", "may", "jun", "jul", "aug", "sep", "oct", "nov", "dec"}

// RecordTime is the broken-down wall clock time of a record. Times are compared as if they were UTC,
// matching the untranslated timestamps written by servers.
type RecordTime struct {
	Year   int
	Month  int
	Day    int
	Hour   int
	Minute int
	Second int
}

// ParseRecordTime reads the fixed offsets of a CLF timestamp such as [10/Jan/2024:00:00:00 -0000].
// Hours above 23 are folded to 0, a defect of some servers that log 24:xx.
func ParseRecordTime(datetime string) (RecordTime, error) {
	if len(datetime) < 21 {
		return RecordTime{}, ErrBadDate
	}
	rt := RecordTime{
		Day:    leadingInt(datetime[1:]),
		Year:   leadingInt(datetime[8:]),
		Hour:   leadingInt(datetime[13:]),
		Minute: leadingInt(datetime[16:]),
		Second: leadingInt(datetime[19:]),
	}
	name := strings.ToLower(datetime[4:7])
	for i, m := range monthAbbrevs {
		if m == name {
			rt.Month = i + 1
			break
		}
	}
	if rt.Hour > 23 {
		rt.Hour = 0
	}
	if rt.Month == 0 || rt.Minute > 59 || rt.Second > 60 || rt.Year < 1990 || rt.Day < 1 || rt.Day > 31 {
		return RecordTime{}, ErrBadDate
	}
	return rt, nil
}

// Stamp returns seconds since 1970-01-01 treating the fields as UTC.
func (rt RecordTime) Stamp() int64 {
	return time.Date(rt.Year, time.Month(rt.Month), rt.Day, rt.Hour, rt.Minute, rt.Second, 0, time.UTC).Unix()
}

// SameMonth reports whether both times fall in the same calendar month.
func (rt RecordTime) SameMonth(other RecordTime) bool {
	return rt.Year == other.Year && rt.Month == other.Month
}

// MonthIndex numbers months consecutively so that differences count elapsed months.
func MonthIndex(month, year int) int {
	return year*12 + month
}

// leadingInt parses an optional sign and the leading decimal digits of s, ignoring leading blanks.
// It returns 0 when no digits are present.
func leadingInt(s string) int {
	i := 0
	for i < len(s) && (s[i] == ' ' || s[i] == '\t') {
		i++
	}
	neg := false
	if i < len(s) && (s[i] == '-' || s[i] == '+') {
		neg = s[i] == '-'
		i++
	}
	n := 0
	for ; i < len(s) && s[i] >= '0' && s[i] <= '9'; i++ {
		n = n*10 + int(s[i]-'0')
		if n > 1<<50 {
			break
		}
	}
	if neg {
		return -n
	}
	return n
}

// LeadingInt is the exported form of the digit scanner shared by the parsers.
func LeadingInt(s string) int {
	return leadingInt(s)
}

// LeadingUint parses the leading decimal digits of s as an unsigned 64 bit value.
func LeadingUint(s string) uint64 {
	var n uint64
	for i := 0; i < len(s) && s[i] >= '0' && s[i] <= '9'; i++ {
		n = n*10 + uint64(s[i]-'0')
	}
	return n
}
