package notify

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ClockTime is an hour/minute pair on a 24-hour clock. Windows built from
// clock times are not date-aware, so a window may wrap past midnight.
type ClockTime struct {
	Hour   int
	Minute int
}

func (t ClockTime) Valid() bool {
	return t.Hour >= 0 && t.Hour <= 23 && t.Minute >= 0 && t.Minute <= 59
}

// String renders the wire form "HH:MM".
func (t ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// Format12h converts to 12-hour form with an AM/PM suffix. Hour 0 displays
// as 12 AM and hour 12 as 12 PM. An invalid time renders as the empty
// string so composition can proceed without an ETA clause.
func (t ClockTime) Format12h() string {
	if !t.Valid() {
		return ""
	}
	suffix := "AM"
	if t.Hour >= 12 {
		suffix = "PM"
	}
	h12 := ((t.Hour + 11) % 12) + 1
	return fmt.Sprintf("%d:%02d %s", h12, t.Minute, suffix)
}

// ParseClock parses "HH:MM". It reports ok=false for malformed input
// instead of returning an error; display paths degrade to an empty string.
func ParseClock(s string) (ClockTime, bool) {
	parts := strings.SplitN(strings.TrimSpace(s), ":", 2)
	if len(parts) != 2 {
		return ClockTime{}, false
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return ClockTime{}, false
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil {
		return ClockTime{}, false
	}
	t := ClockTime{Hour: h, Minute: m}
	if !t.Valid() {
		return ClockTime{}, false
	}
	return t, true
}

// Format12hString parses and formats in one step; malformed input yields "".
func Format12hString(hhmm string) string {
	t, ok := ParseClock(hhmm)
	if !ok {
		return ""
	}
	return t.Format12h()
}

// TimeWindow is the ETA window communicated to customers. Either both ends
// are set or both are nil; the resolver never produces a half-filled window.
type TimeWindow struct {
	Start *ClockTime
	End   *ClockTime
}

func (w TimeWindow) Empty() bool {
	return w.Start == nil || w.End == nil
}

// DisplayRange renders e.g. "10:05 AM–11:05 AM", or "" for an empty window.
func (w TimeWindow) DisplayRange() string {
	if w.Empty() {
		return ""
	}
	return w.Start.Format12h() + "–" + w.End.Format12h()
}

// RoundToNext5 rounds t forward to the next multiple of 5 minutes, zeroing
// seconds. A time already on a 5-minute boundary is unchanged, so applying
// the rounding twice equals applying it once.
func RoundToNext5(t time.Time) time.Time {
	t = t.Truncate(time.Minute)
	delta := (5 - t.Minute()%5) % 5
	return t.Add(time.Duration(delta) * time.Minute)
}
