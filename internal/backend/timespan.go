package backend

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"farmwatch/internal/jobs"
)

// maxTimeSpanDays is the day count of the backend's maximum duration value
// (10675199.02:48:05.4775807), which it reports while no estimate exists.
const maxTimeSpanDays = 10675199

const maxDurationDays = int64(math.MaxInt64 / int64(24*time.Hour))

// ParseTimeSpan decodes the backend duration format [-][d.]hh:mm:ss[.fffffff].
//
// The '.' character is ambiguous: it separates days from hours and seconds
// from the fractional part. A '.' whose trailing fragment contains ':' is a
// day separator and is kept; a trailing all-digit fragment is sub-second
// precision and is dropped. The maximum value, or any day count that
// overflows time.Duration, decodes as the unknown sentinel. Anything else that
// does not parse yields an invalid estimate carrying the reason.
func ParseTimeSpan(raw string) jobs.Remaining {
	value := strings.TrimSpace(raw)
	if value == "" {
		return jobs.InvalidRemaining(errors.New("empty remaining time"))
	}

	negative := strings.HasPrefix(value, "-")
	value = strings.TrimPrefix(value, "-")

	if idx := strings.LastIndex(value, "."); idx >= 0 && !strings.Contains(value[idx+1:], ":") {
		if !allDigits(value[idx+1:]) {
			return jobs.InvalidRemaining(fmt.Errorf("remaining time %q: bad fractional seconds", raw))
		}
		value = value[:idx]
	}

	var days int64
	if idx := strings.Index(value, "."); idx >= 0 {
		parsed, err := strconv.ParseInt(value[:idx], 10, 64)
		if errors.Is(err, strconv.ErrRange) && allDigits(value[:idx]) {
			return jobs.UnknownRemaining()
		}
		if err != nil || parsed < 0 {
			return jobs.InvalidRemaining(fmt.Errorf("remaining time %q: bad day count", raw))
		}
		days = parsed
		value = value[idx+1:]
	}
	if days >= maxTimeSpanDays || days >= maxDurationDays {
		return jobs.UnknownRemaining()
	}

	parts := strings.Split(value, ":")
	if len(parts) != 3 {
		return jobs.InvalidRemaining(fmt.Errorf("remaining time %q: want hh:mm:ss", raw))
	}
	limits := [3]int{23, 59, 59}
	var fields [3]int
	for i, part := range parts {
		if !allDigits(part) {
			return jobs.InvalidRemaining(fmt.Errorf("remaining time %q: bad clock field %q", raw, part))
		}
		n, err := strconv.Atoi(part)
		if err != nil || n > limits[i] {
			return jobs.InvalidRemaining(fmt.Errorf("remaining time %q: clock field %q out of range", raw, part))
		}
		fields[i] = n
	}

	d := time.Duration(days)*24*time.Hour +
		time.Duration(fields[0])*time.Hour +
		time.Duration(fields[1])*time.Minute +
		time.Duration(fields[2])*time.Second
	if negative {
		d = -d
	}
	return jobs.KnownRemaining(d)
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
