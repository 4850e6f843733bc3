package game

import (
	"github.com/google/uuid"
	"github.com/yourusername/race-night/internal/models"
)

// ScoringMethod selects which ranking passes run when a turn closes
type ScoringMethod string

// Scoring methods
const (
	ScoringMethodAverage ScoringMethod = "average"
	ScoringMethodLap     ScoringMethod = "lap"
	ScoringMethodBoth    ScoringMethod = "both"
)

// BonusScope controls when best-lap/best-average bonus points are awarded
type BonusScope string

// Bonus scopes
const (
	BonusScopeTurn    BonusScope = "turn"
	BonusScopeCircuit BonusScope = "circuit"
	BonusScopeBoth    BonusScope = "both"
)

// ScoringMultiplier boosts the base points of one ranking pass. It is only
// meaningful when the scoring method is "both".
type ScoringMultiplier struct {
	AppliesTo ScoringMethod `json:"appliesTo" validate:"oneof=average lap"`
	Factor    int           `json:"factor" validate:"gt=0"`
}

// Settings is the immutable configuration of one championship night
type Settings struct {
	Players              []models.Player    `json:"players" validate:"required,min=1"`
	Circuits             []models.Circuit   `json:"circuits" validate:"required,min=1"`
	LapsPerTurn          int                `json:"lapsPerTurn" validate:"oneof=3 5"`
	TurnsPerCircuit      int                `json:"turnsPerCircuit" validate:"min=1,max=10"`
	ScoringMethod        ScoringMethod      `json:"scoringMethod" validate:"oneof=average lap both"`
	ScoringMultiplier    *ScoringMultiplier `json:"scoringMultiplier"`
	PointsForBestLap     int                `json:"pointsForBestLap" validate:"min=0,max=5"`
	PointsForBestAverage int                `json:"pointsForBestAverage" validate:"min=0,max=5"`
	AwardBestTimeFor     BonusScope         `json:"awardBestTimeFor" validate:"oneof=turn circuit both"`
	UseBest4Of5Laps      bool               `json:"useBest4Of5Laps"`
}

// PlayerIDs returns the configured player ids in setup order
func (s *Settings) PlayerIDs() []uuid.UUID {
	ids := make([]uuid.UUID, len(s.Players))
	for i, p := range s.Players {
		ids[i] = p.ID
	}
	return ids
}

// multiplierFor returns the factor applied to a ranking pass. Multipliers
// only take effect when both passes run, so a lone pass always returns 1.
func (s *Settings) multiplierFor(pass ScoringMethod) int {
	if s.ScoringMethod != ScoringMethodBoth {
		return 1
	}
	if s.ScoringMultiplier == nil || s.ScoringMultiplier.AppliesTo != pass {
		return 1
	}
	return s.ScoringMultiplier.Factor
}

// awardsBonusFor reports whether bonus points are granted at the given scope
func (s *Settings) awardsBonusFor(scope BonusScope) bool {
	return s.AwardBestTimeFor == scope || s.AwardBestTimeFor == BonusScopeBoth
}
