package game

import (
	"sort"

	"github.com/shopspring/decimal"
)

// minAverageableLaps is the floor below which a turn has no meaningful
// average. Callers must treat the nil result as "no average", never zero.
const minAverageableLaps = 3

// TurnAverage derives a turn's representative time from its valid laps.
// Laps are sorted ascending; a 5-lap turn under the best-4-of-5 policy
// drops its single slowest lap before averaging. The result is rounded
// half-up to the nearest millisecond.
func TurnAverage(lapTimes []int64, lapsPerTurn int, useBest4Of5 bool) *int64 {
	if len(lapTimes) < minAverageableLaps {
		return nil
	}

	times := append([]int64(nil), lapTimes...)
	sort.Slice(times, func(i, j int) bool { return times[i] < times[j] })

	if lapsPerTurn == 5 && useBest4Of5 && len(times) == 5 {
		times = times[:4]
	}

	var sum int64
	for _, t := range times {
		sum += t
	}

	avg := decimal.NewFromInt(sum).
		DivRound(decimal.NewFromInt(int64(len(times))), 0).
		IntPart()
	return &avg
}
