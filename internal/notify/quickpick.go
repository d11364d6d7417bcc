package notify

import (
	"fmt"
	"time"
)

// Quick pick kinds, matching the chips in the operator UI.
const (
	PickPlus30m   = "plus_30m"
	PickPlus1h    = "plus_1h"
	PickPlus2h    = "plus_2h"
	PickSlot14_16 = "slot_14_16"
	PickSlot16_18 = "slot_16_18"
	PickSlot22_01 = "slot_22_01"
	PickClear     = "clear"
)

var relativeOffsets = map[string]time.Duration{
	PickPlus30m: 30 * time.Minute,
	PickPlus1h:  time.Hour,
	PickPlus2h:  2 * time.Hour,
}

// Fixed slots are literal clock times and bypass rounding. slot_22_01
// crosses midnight on purpose.
var fixedSlots = map[string][2]ClockTime{
	PickSlot14_16: {{Hour: 14}, {Hour: 16}},
	PickSlot16_18: {{Hour: 16}, {Hour: 18}},
	PickSlot22_01: {{Hour: 22}, {Hour: 1}},
}

// ResolveQuickPick turns a quick pick into a TimeWindow. Relative picks
// start at now rounded to the next 5-minute boundary; clear yields the
// empty window ("no ETA" downstream).
func ResolveQuickPick(kind string, now time.Time) (TimeWindow, error) {
	if offset, ok := relativeOffsets[kind]; ok {
		from := RoundToNext5(now)
		to := from.Add(offset)
		start := ClockTime{Hour: from.Hour(), Minute: from.Minute()}
		end := ClockTime{Hour: to.Hour(), Minute: to.Minute()}
		return TimeWindow{Start: &start, End: &end}, nil
	}
	if slot, ok := fixedSlots[kind]; ok {
		start, end := slot[0], slot[1]
		return TimeWindow{Start: &start, End: &end}, nil
	}
	if kind == PickClear {
		return TimeWindow{}, nil
	}
	return TimeWindow{}, fmt.Errorf("unknown quick pick %q", kind)
}
