package game

import (
	"sort"

	"github.com/google/uuid"
)

// basePoints converts a rank within a pass to base points: 3-2-1, then zero
func basePoints(rank int) int {
	switch rank {
	case 0:
		return 3
	case 1:
		return 2
	case 2:
		return 1
	default:
		return 0
	}
}

// scoreTurn converts a completed turn into per-player point awards. One or
// two ranking passes run depending on the scoring method; within a pass,
// equal times keep their submission order (stable sort, no further
// tie-break). The multiplier, when configured, scales the base points of
// the matching pass only.
func scoreTurn(settings *Settings, turnResults []TurnResult) map[uuid.UUID]int {
	points := make(map[uuid.UUID]int, len(turnResults))
	for _, tr := range turnResults {
		points[tr.PlayerID] = 0
	}

	if settings.ScoringMethod == ScoringMethodAverage || settings.ScoringMethod == ScoringMethodBoth {
		ranked := append([]TurnResult(nil), turnResults...)
		sort.SliceStable(ranked, func(i, j int) bool {
			return lessAverage(ranked[i].AverageTime, ranked[j].AverageTime)
		})
		factor := settings.multiplierFor(ScoringMethodAverage)
		for rank, tr := range ranked {
			points[tr.PlayerID] += basePoints(rank) * factor
		}
	}

	if settings.ScoringMethod == ScoringMethodLap || settings.ScoringMethod == ScoringMethodBoth {
		type lapBest struct {
			playerID uuid.UUID
			best     int64
		}
		ranked := make([]lapBest, len(turnResults))
		for i, tr := range turnResults {
			ranked[i] = lapBest{playerID: tr.PlayerID, best: tr.BestLap()}
		}
		sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].best < ranked[j].best })
		factor := settings.multiplierFor(ScoringMethodLap)
		for rank, lb := range ranked {
			points[lb.playerID] += basePoints(rank) * factor
		}
	}

	return points
}

// lessAverage orders averages ascending with absent averages last
func lessAverage(a, b *int64) bool {
	if a == nil {
		return false
	}
	if b == nil {
		return true
	}
	return *a < *b
}

// closeTurn finalizes the current turn on a freshly cloned state: rank-based
// scores, bonus points, running totals, and the standings-based reorder of
// playerOrder. Must only be called once every player has a result.
func (s *State) closeTurn() error {
	turnResults := s.CircuitResults[s.CurrentCircuitIndex].Turns[s.CurrentTurn-1]
	if len(turnResults) != len(s.Settings.Players) {
		return ErrTurnIncomplete
	}

	points := scoreTurn(&s.Settings, turnResults)
	for i := range turnResults {
		tr := &turnResults[i]
		tr.TurnScore = points[tr.PlayerID]
		s.PlayerStats[tr.PlayerID].TotalScore += tr.TurnScore
	}

	s.awardBonuses(turnResults)

	s.CurrentPlayerIndex = 0
	s.CurrentTurn++
	s.reorderByStandings()
	return nil
}

// awardBonuses is the single authoritative bonus-evaluation pass. Turn-scope
// bonuses go to the holders of the turn's best lap and best average;
// circuit-scope bonuses are granted by the turn close that completes the
// circuit. The first achiever of the exact minimum, in submission order,
// takes a tied bonus. Bonuses feed totalScore but never turnScore, so they
// cannot double count with the rank-based award.
func (s *State) awardBonuses(turnResults []TurnResult) {
	if s.Settings.awardsBonusFor(BonusScopeTurn) {
		if holder, ok := bestLapHolder(turnResults); ok {
			s.grantLapBonus(holder)
		}
		if holder, ok := bestAverageHolder(turnResults); ok {
			s.grantAverageBonus(holder)
		}
	}

	if s.Settings.awardsBonusFor(BonusScopeCircuit) && s.CircuitComplete(s.CurrentCircuitIndex) {
		var all []TurnResult
		for _, turn := range s.CircuitResults[s.CurrentCircuitIndex].Turns {
			all = append(all, turn...)
		}
		if holder, ok := bestLapHolder(all); ok {
			s.grantLapBonus(holder)
		}
		if holder, ok := bestAverageHolder(all); ok {
			s.grantAverageBonus(holder)
		}
	}
}

func (s *State) grantLapBonus(playerID uuid.UUID) {
	if s.Settings.PointsForBestLap <= 0 {
		return
	}
	stats := s.PlayerStats[playerID]
	stats.TotalScore += s.Settings.PointsForBestLap
	stats.BestLaps++
}

func (s *State) grantAverageBonus(playerID uuid.UUID) {
	if s.Settings.PointsForBestAverage <= 0 {
		return
	}
	stats := s.PlayerStats[playerID]
	stats.TotalScore += s.Settings.PointsForBestAverage
	stats.BestAverages++
}

// bestLapHolder finds the first player achieving the minimum lap time
func bestLapHolder(results []TurnResult) (uuid.UUID, bool) {
	var holder uuid.UUID
	var best int64
	found := false
	for _, tr := range results {
		lap := tr.BestLap()
		if lap <= 0 {
			continue
		}
		if !found || lap < best {
			holder = tr.PlayerID
			best = lap
			found = true
		}
	}
	return holder, found
}

// bestAverageHolder finds the first player achieving the minimum average
func bestAverageHolder(results []TurnResult) (uuid.UUID, bool) {
	var holder uuid.UUID
	var best int64
	found := false
	for _, tr := range results {
		if tr.AverageTime == nil {
			continue
		}
		if !found || *tr.AverageTime < best {
			holder = tr.PlayerID
			best = *tr.AverageTime
			found = true
		}
	}
	return holder, found
}

// reorderByStandings re-sorts playerOrder descending by total score. The
// sort is stable over the prior order, so tied players keep their relative
// positions.
func (s *State) reorderByStandings() {
	sort.SliceStable(s.PlayerOrder, func(i, j int) bool {
		return s.PlayerStats[s.PlayerOrder[i]].TotalScore > s.PlayerStats[s.PlayerOrder[j]].TotalScore
	})
}

// CircuitStandings aggregates turn scores per player for a single circuit,
// sorted descending. Used for the circuit-complete presentation.
func (s *State) CircuitStandings(index int) []PlayerScore {
	if index < 0 || index >= len(s.CircuitResults) {
		return nil
	}
	totals := make(map[uuid.UUID]int)
	for _, turn := range s.CircuitResults[index].Turns {
		for _, tr := range turn {
			totals[tr.PlayerID] += tr.TurnScore
		}
	}

	standings := make([]PlayerScore, 0, len(totals))
	for _, id := range s.PlayerOrder {
		if score, ok := totals[id]; ok {
			standings = append(standings, PlayerScore{PlayerID: id, Score: score})
		}
	}
	sort.SliceStable(standings, func(i, j int) bool { return standings[i].Score > standings[j].Score })
	return standings
}

// PlayerScore pairs a player with an aggregated score
type PlayerScore struct {
	PlayerID uuid.UUID `json:"playerId"`
	Score    int       `json:"score"`
}
