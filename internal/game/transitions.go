package game

import (
	"github.com/google/uuid"
)

// SubmitTurn records one player's laps and advances the state machine. The
// prior state is never mutated: validation failures return it untouched,
// success returns a new state. When the submitting player is the last of
// the turn, the turn closes — scoring runs, totals accumulate and the
// player order is re-sorted by standings.
func SubmitTurn(prior *State, playerID uuid.UUID, entries []LapEntry) (*State, error) {
	if prior.Finished() {
		return nil, ErrGameFinished
	}
	if prior.CircuitComplete(prior.CurrentCircuitIndex) {
		return nil, ErrCircuitComplete
	}
	if _, ok := prior.PlayerStats[playerID]; !ok {
		return nil, ErrUnknownPlayer
	}
	if prior.CurrentPlayerID() != playerID {
		return nil, NewValidationError("playerId", "it is not this player's turn")
	}

	lapTimes, err := NormalizeLaps(entries, prior.Settings.LapsPerTurn)
	if err != nil {
		return nil, err
	}

	return applyTurn(prior, playerID, lapTimes)
}

// SubmitTurnTimes is SubmitTurn for laps already expressed in milliseconds
func SubmitTurnTimes(prior *State, playerID uuid.UUID, lapTimes []int64) (*State, error) {
	if prior.Finished() {
		return nil, ErrGameFinished
	}
	if prior.CircuitComplete(prior.CurrentCircuitIndex) {
		return nil, ErrCircuitComplete
	}
	if _, ok := prior.PlayerStats[playerID]; !ok {
		return nil, ErrUnknownPlayer
	}
	if prior.CurrentPlayerID() != playerID {
		return nil, NewValidationError("playerId", "it is not this player's turn")
	}

	valid, err := ValidateRawLaps(lapTimes, prior.Settings.LapsPerTurn)
	if err != nil {
		return nil, err
	}

	return applyTurn(prior, playerID, valid)
}

func applyTurn(prior *State, playerID uuid.UUID, lapTimes []int64) (*State, error) {
	state := prior.Clone()

	for _, t := range lapTimes {
		state.SessionBestLap = lowerOf(state.SessionBestLap, t)
	}

	average := TurnAverage(lapTimes, state.Settings.LapsPerTurn, state.Settings.UseBest4Of5Laps)
	if average != nil {
		state.SessionBestAverage = lowerOf(state.SessionBestAverage, *average)
	}

	circuit := &state.CircuitResults[state.CurrentCircuitIndex]
	for len(circuit.Turns) < state.CurrentTurn {
		circuit.Turns = append(circuit.Turns, nil)
	}
	turn := &circuit.Turns[state.CurrentTurn-1]
	*turn = append(*turn, TurnResult{
		PlayerID:    playerID,
		LapTimes:    lapTimes,
		AverageTime: average,
	})

	circuitName := state.Settings.Circuits[state.CurrentCircuitIndex].Name
	for i, t := range lapTimes {
		state.LapTimesLog = append(state.LapTimesLog, LapLogEntry{
			PlayerID:    playerID,
			CircuitName: circuitName,
			Turn:        state.CurrentTurn,
			Lap:         i + 1,
			Time:        t,
		})
	}

	if state.CurrentPlayerIndex == len(state.Settings.Players)-1 {
		if err := state.closeTurn(); err != nil {
			return nil, err
		}
	} else {
		state.CurrentPlayerIndex++
	}

	return state, nil
}

// AdvanceCircuit closes a completed circuit into the next one: circuit index
// up, turn counter back to one, first racer by current standings. Advancing
// past the last circuit finishes the game. Calling it on a finished game is
// a no-op returning the prior state.
func AdvanceCircuit(prior *State) (*State, error) {
	if prior.Finished() {
		return prior, nil
	}
	if !prior.CircuitComplete(prior.CurrentCircuitIndex) {
		return nil, ErrTurnIncomplete
	}

	state := prior.Clone()
	state.CurrentCircuitIndex++
	state.CurrentTurn = 1
	state.CurrentPlayerIndex = 0
	state.reorderByStandings()
	return state, nil
}

// EndGame moves the state to its terminal condition. The transition is
// one-way and idempotent: a finished game comes back unchanged.
func EndGame(prior *State) *State {
	if prior.Finished() {
		return prior
	}
	state := prior.Clone()
	state.CurrentCircuitIndex = len(state.Settings.Circuits)
	return state
}

// lowerOf folds a candidate into a monotonically non-increasing best value,
// where nil means no value recorded yet
func lowerOf(best *int64, candidate int64) *int64 {
	if candidate <= 0 {
		return best
	}
	if best == nil || candidate < *best {
		return &candidate
	}
	return best
}
