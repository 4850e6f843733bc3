package game

import (
	"github.com/google/uuid"
)

// TurnResult is one player's outcome for one turn. AverageTime is nil when
// the turn had fewer than three valid laps. TurnScore is written exactly
// once, when the turn closes.
type TurnResult struct {
	PlayerID    uuid.UUID `json:"playerId"`
	LapTimes    []int64   `json:"lapTimes"`
	AverageTime *int64    `json:"averageTime"`
	TurnScore   int       `json:"turnScore"`
}

// BestLap returns the fastest lap of the turn, or 0 for an empty turn
func (tr *TurnResult) BestLap() int64 {
	var best int64
	for _, t := range tr.LapTimes {
		if best == 0 || t < best {
			best = t
		}
	}
	return best
}

// CircuitResult accumulates the turns driven on one circuit. turns[i] holds
// that turn's per-player results in submission order; a turn with fewer
// entries than configured players is still in progress.
type CircuitResult struct {
	CircuitID uuid.UUID      `json:"circuitId"`
	Turns     [][]TurnResult `json:"turns"`
}

// PlayerStats holds a player's running totals for the active game
type PlayerStats struct {
	TotalScore   int `json:"totalScore"`
	BestLaps     int `json:"bestLaps"`
	BestAverages int `json:"bestAverages"`
}

// LapLogEntry records a single lap for the nightly leaderboard
type LapLogEntry struct {
	PlayerID    uuid.UUID `json:"playerId"`
	CircuitName string    `json:"circuitName"`
	Turn        int       `json:"turn"`
	Lap         int       `json:"lap"`
	Time        int64     `json:"time"`
}

// State is the aggregate game state. Transitions never mutate a State in
// place; each one clones the prior value and returns the clone, so callers
// can apply a new state optimistically and fall back to the old one if the
// save fails.
//
// SessionBestLap and SessionBestAverage are nil until the first time is
// recorded and only ever decrease afterwards.
type State struct {
	Settings            Settings                    `json:"settings"`
	PlayerOrder         []uuid.UUID                 `json:"playerOrder"`
	CurrentCircuitIndex int                         `json:"currentCircuitIndex"`
	CurrentTurn         int                         `json:"currentTurn"`
	CurrentPlayerIndex  int                         `json:"currentPlayerIndex"`
	CircuitResults      []CircuitResult             `json:"circuitResults"`
	PlayerStats         map[uuid.UUID]*PlayerStats  `json:"playerStats"`
	SessionBestLap      *int64                      `json:"sessionBestLap"`
	SessionBestAverage  *int64                      `json:"sessionBestAverage"`
	LapTimesLog         []LapLogEntry               `json:"lapTimesLog"`
}

// NewState builds the initial state for a night: counters zeroed, stats
// empty, session bests unset, players racing in setup order.
func NewState(settings Settings) *State {
	stats := make(map[uuid.UUID]*PlayerStats, len(settings.Players))
	for _, p := range settings.Players {
		stats[p.ID] = &PlayerStats{}
	}

	results := make([]CircuitResult, len(settings.Circuits))
	for i, c := range settings.Circuits {
		results[i] = CircuitResult{CircuitID: c.ID}
	}

	return &State{
		Settings:            settings,
		PlayerOrder:         settings.PlayerIDs(),
		CurrentCircuitIndex: 0,
		CurrentTurn:         1,
		CurrentPlayerIndex:  0,
		CircuitResults:      results,
		PlayerStats:         stats,
	}
}

// Finished reports whether the game has reached its sole terminal condition
func (s *State) Finished() bool {
	return s.CurrentCircuitIndex >= len(s.Settings.Circuits)
}

// CurrentPlayerID returns the id of the player expected to race next
func (s *State) CurrentPlayerID() uuid.UUID {
	return s.PlayerOrder[s.CurrentPlayerIndex]
}

// CircuitComplete reports whether the circuit at index has every configured
// turn fully recorded. Completion is judged from filled turn counts, not the
// turn counter, so a partially submitted turn never reads as complete.
func (s *State) CircuitComplete(index int) bool {
	if index < 0 || index >= len(s.CircuitResults) {
		return false
	}
	turns := s.CircuitResults[index].Turns
	if len(turns) != s.Settings.TurnsPerCircuit {
		return false
	}
	last := turns[len(turns)-1]
	return len(last) == len(s.Settings.Players)
}

// Clone returns a deep copy of the state. Settings are shared: they are
// immutable for the lifetime of a game.
func (s *State) Clone() *State {
	clone := &State{
		Settings:            s.Settings,
		PlayerOrder:         append([]uuid.UUID(nil), s.PlayerOrder...),
		CurrentCircuitIndex: s.CurrentCircuitIndex,
		CurrentTurn:         s.CurrentTurn,
		CurrentPlayerIndex:  s.CurrentPlayerIndex,
		SessionBestLap:      cloneInt64(s.SessionBestLap),
		SessionBestAverage:  cloneInt64(s.SessionBestAverage),
		LapTimesLog:         append([]LapLogEntry(nil), s.LapTimesLog...),
	}

	clone.CircuitResults = make([]CircuitResult, len(s.CircuitResults))
	for i, cr := range s.CircuitResults {
		turns := make([][]TurnResult, len(cr.Turns))
		for j, turn := range cr.Turns {
			copied := make([]TurnResult, len(turn))
			for k, tr := range turn {
				copied[k] = TurnResult{
					PlayerID:    tr.PlayerID,
					LapTimes:    append([]int64(nil), tr.LapTimes...),
					AverageTime: cloneInt64(tr.AverageTime),
					TurnScore:   tr.TurnScore,
				}
			}
			turns[j] = copied
		}
		clone.CircuitResults[i] = CircuitResult{CircuitID: cr.CircuitID, Turns: turns}
	}

	clone.PlayerStats = make(map[uuid.UUID]*PlayerStats, len(s.PlayerStats))
	for id, stats := range s.PlayerStats {
		copied := *stats
		clone.PlayerStats[id] = &copied
	}

	return clone
}

func cloneInt64(v *int64) *int64 {
	if v == nil {
		return nil
	}
	copied := *v
	return &copied
}
