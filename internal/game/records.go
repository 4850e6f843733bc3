package game

import (
	"time"

	"github.com/google/uuid"
	"github.com/yourusername/race-night/internal/models"
)

// RecordUpdate describes a broken all-time circuit record. Each field is set
// at most once per check pass: the minimum over all candidate times is
// compared once against the stored minimum.
type RecordUpdate struct {
	CircuitID       uuid.UUID  `json:"circuitId"`
	CircuitName     string     `json:"circuitName"`
	NewBestLap      *int64     `json:"newBestLap"`
	LapHolderID     *uuid.UUID `json:"lapHolderId"`
	NewBestAverage  *int64     `json:"newBestAverage"`
	AverageHolderID *uuid.UUID `json:"averageHolderId"`
	At              time.Time  `json:"at"`
}

// HasUpdates reports whether any record actually fell
func (u *RecordUpdate) HasUpdates() bool {
	return u.NewBestLap != nil || u.NewBestAverage != nil
}

// CheckRecords compares candidate session minima against a circuit's stored
// records. A candidate only counts when it is strictly better than the
// stored best, or when no best exists yet; equal times leave the record and
// its date untouched. Returns nil when nothing fell.
func CheckRecords(circuit *models.Circuit, candidateLapMin, candidateAverageMin *int64, now time.Time) *RecordUpdate {
	update := &RecordUpdate{CircuitID: circuit.ID, CircuitName: circuit.Name, At: now}

	if candidateLapMin != nil && beatsRecord(*candidateLapMin, circuit.HistoricalBestLap) {
		update.NewBestLap = candidateLapMin
	}
	if candidateAverageMin != nil && beatsRecord(*candidateAverageMin, circuit.HistoricalBestAverage) {
		update.NewBestAverage = candidateAverageMin
	}

	if !update.HasUpdates() {
		return nil
	}
	return update
}

func beatsRecord(candidate int64, stored *int64) bool {
	if candidate <= 0 {
		return false
	}
	return stored == nil || candidate < *stored
}

// ComputeRecordUpdates scans a game's full lap log and per-turn averages and
// returns the record updates the night has earned so far, one per circuit at
// most. The holder of a fallen record is the first player found achieving
// exactly the new minimum.
func ComputeRecordUpdates(state *State, circuits []*models.Circuit, now time.Time) []RecordUpdate {
	if len(state.LapTimesLog) == 0 {
		return nil
	}

	var updates []RecordUpdate
	for _, circuit := range circuits {
		lapMin, lapHolder := bestLoggedLap(state, circuit.Name)
		avgMin, avgHolder := bestRecordedAverage(state, circuit.Name)

		update := CheckRecords(circuit, lapMin, avgMin, now)
		if update == nil {
			continue
		}
		if update.NewBestLap != nil {
			update.LapHolderID = lapHolder
		}
		if update.NewBestAverage != nil {
			update.AverageHolderID = avgHolder
		}
		updates = append(updates, *update)
	}
	return updates
}

// bestLoggedLap returns the fastest lap recorded for a circuit this game and
// the first player who drove it
func bestLoggedLap(state *State, circuitName string) (*int64, *uuid.UUID) {
	var best *int64
	var holder *uuid.UUID
	for i := range state.LapTimesLog {
		entry := &state.LapTimesLog[i]
		if entry.CircuitName != circuitName || entry.Time <= 0 {
			continue
		}
		if best == nil || entry.Time < *best {
			best = &entry.Time
			holder = &entry.PlayerID
		}
	}
	return best, holder
}

// bestRecordedAverage returns the best turn average recorded for a circuit
// this game and the first player who achieved it
func bestRecordedAverage(state *State, circuitName string) (*int64, *uuid.UUID) {
	var best *int64
	var holder *uuid.UUID
	for i, cr := range state.CircuitResults {
		if i >= len(state.Settings.Circuits) || state.Settings.Circuits[i].Name != circuitName {
			continue
		}
		for _, turn := range cr.Turns {
			for j := range turn {
				tr := &turn[j]
				if tr.AverageTime == nil || *tr.AverageTime <= 0 {
					continue
				}
				if best == nil || *tr.AverageTime < *best {
					best = tr.AverageTime
					holder = &tr.PlayerID
				}
			}
		}
	}
	return best, holder
}

// SessionMinima returns this game's best lap and best average for one
// circuit, for the single-circuit record check endpoint
func SessionMinima(state *State, circuitName string) (lapMin, averageMin *int64) {
	lapMin, _ = bestLoggedLap(state, circuitName)
	averageMin, _ = bestRecordedAverage(state, circuitName)
	return lapMin, averageMin
}
