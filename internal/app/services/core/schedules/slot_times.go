package schedules

import (
	"jadwalin-service/internal/pkg/jsontypes"
)

// GenerateSlotTimes returns every hour boundary t with start <= t < end,
// ascending, stepping exactly one hour from start. An empty result is the
// caller's signal that the range is invalid (start >= end), not an error of
// the generator. Arithmetic runs on zone-less wall clocks, so DST transitions
// and server locale never change the output.
func GenerateSlotTimes(start, end jsontypes.WallClock) []jsontypes.WallClock {
	var slotTimes []jsontypes.WallClock
	for t := start; t.Before(end); t = t.AddHours(1) {
		slotTimes = append(slotTimes, t)
	}
	return slotTimes
}
