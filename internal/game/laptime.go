package game

import (
	"fmt"
	"strconv"
)

// LapEntry is one lap as typed at the track: free-form minute, second and
// millisecond fields. Empty or unparseable fields read as zero.
type LapEntry struct {
	Min string `json:"min"`
	Sec string `json:"sec"`
	Ms  string `json:"ms"`
}

// Milliseconds converts the entry to a total millisecond duration
func (e LapEntry) Milliseconds() int64 {
	return fieldValue(e.Min)*60000 + fieldValue(e.Sec)*1000 + fieldValue(e.Ms)
}

func fieldValue(s string) int64 {
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil || v < 0 {
		return 0
	}
	return v
}

// FormatTime renders milliseconds as m:ss.mmm for logs and notifications
func FormatTime(ms int64) string {
	totalSeconds := ms / 1000
	return fmt.Sprintf("%d:%02d.%03d", totalSeconds/60, totalSeconds%60, ms%1000)
}

// NormalizeLaps converts raw lap entries to millisecond times, keeping only
// valid laps (strictly positive after conversion). The number of valid laps
// must match lapsPerTurn exactly; anything else is a validation error and
// the caller's state stays untouched.
func NormalizeLaps(entries []LapEntry, lapsPerTurn int) ([]int64, error) {
	times := make([]int64, 0, len(entries))
	for _, entry := range entries {
		if ms := entry.Milliseconds(); ms > 0 {
			times = append(times, ms)
		}
	}
	if len(times) != lapsPerTurn {
		return nil, NewValidationError("lapTimes", "expected %d valid lap times, got %d", lapsPerTurn, len(times))
	}
	return times, nil
}

// ValidateRawLaps applies the same lap-count rule to times that are already
// in milliseconds, for callers that bypass the minute/second/ms form.
func ValidateRawLaps(times []int64, lapsPerTurn int) ([]int64, error) {
	valid := make([]int64, 0, len(times))
	for _, t := range times {
		if t > 0 {
			valid = append(valid, t)
		}
	}
	if len(valid) != lapsPerTurn {
		return nil, NewValidationError("lapTimes", "expected %d valid lap times, got %d", lapsPerTurn, len(valid))
	}
	return valid, nil
}
