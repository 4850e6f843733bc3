package game

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/yourusername/race-night/internal/models"
)

// Test fixtures shared by the engine tests.

func testPlayers(n int) []models.Player {
	players := make([]models.Player, n)
	for i := range players {
		players[i] = models.Player{ID: uuid.New(), Name: fmt.Sprintf("Player %d", i+1)}
	}
	return players
}

func testCircuits(n int) []models.Circuit {
	circuits := make([]models.Circuit, n)
	for i := range circuits {
		circuits[i] = models.Circuit{ID: uuid.New(), Name: fmt.Sprintf("Circuit %d", i+1)}
	}
	return circuits
}

func testSettings(players, circuits int) Settings {
	return Settings{
		Players:          testPlayers(players),
		Circuits:         testCircuits(circuits),
		LapsPerTurn:      3,
		TurnsPerCircuit:  1,
		ScoringMethod:    ScoringMethodAverage,
		AwardBestTimeFor: BonusScopeTurn,
	}
}

func rawEntries(times ...int64) []LapEntry {
	entries := make([]LapEntry, len(times))
	for i, t := range times {
		entries[i] = LapEntry{Ms: fmt.Sprintf("%d", t)}
	}
	return entries
}

func mustSubmit(state *State, playerID uuid.UUID, times ...int64) *State {
	next, err := SubmitTurnTimes(state, playerID, times)
	if err != nil {
		panic(fmt.Sprintf("unexpected submit error: %v", err))
	}
	return next
}
