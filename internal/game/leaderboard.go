package game

import "sort"

// NightlyLeaderboard returns the fastest individual laps of the night in
// ascending order, at most limit entries (no limit when limit <= 0). Ties
// keep recording order.
func NightlyLeaderboard(state *State, limit int) []LapLogEntry {
	entries := append([]LapLogEntry(nil), state.LapTimesLog...)
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].Time < entries[j].Time })
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries
}
