package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/race-night/internal/config"
	"github.com/yourusername/race-night/internal/game"
	"github.com/yourusername/race-night/internal/logger"
	"github.com/yourusername/race-night/internal/metrics"
	"github.com/yourusername/race-night/internal/models"
	"github.com/yourusername/race-night/internal/repository"
)

// GameService orchestrates the scoring engine against persistence. Engine
// transitions are copy-on-write: the new state is saved first and only then
// reported back, so a failed save leaves the stored game untouched.
type GameService struct {
	games      repository.GameRepository
	circuits   repository.CircuitRepository
	notifier   *RecordNotifier
	validate   *validator.Validate
	gameConfig *config.GameConfig
	logger     *logrus.Logger
	gameLog    *logger.GameLogger
}

// NewGameService creates a game service.
func NewGameService(
	games repository.GameRepository,
	circuits repository.CircuitRepository,
	notifier *RecordNotifier,
	gameConfig *config.GameConfig,
	log *logrus.Logger,
) *GameService {
	return &GameService{
		games:      games,
		circuits:   circuits,
		notifier:   notifier,
		validate:   validator.New(),
		gameConfig: gameConfig,
		logger:     log,
		gameLog:    logger.NewGameLogger(log),
	}
}

// CreateGame starts a new championship night. Any game still active is
// archived first so at most one game is ever live.
func (s *GameService) CreateGame(ctx context.Context, settings game.Settings) (*models.Game, *game.State, error) {
	if err := s.validate.Struct(&settings); err != nil {
		return nil, nil, fmt.Errorf("invalid game settings: %w", err)
	}
	if len(settings.Players) > s.gameConfig.MaxPlayers {
		return nil, nil, game.NewValidationError("players", fmt.Sprintf("at most %d players per night", s.gameConfig.MaxPlayers))
	}
	if len(settings.Circuits) > s.gameConfig.MaxCircuits {
		return nil, nil, game.NewValidationError("circuits", fmt.Sprintf("at most %d circuits per night", s.gameConfig.MaxCircuits))
	}

	archived, err := s.games.CompleteActiveGames(ctx)
	if err != nil {
		return nil, nil, err
	}
	if archived > 0 {
		s.logger.WithField("archived", archived).Info("Archived previously active games")
	}

	state := game.NewState(settings)
	snapshot, err := json.Marshal(state)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to encode game state: %w", err)
	}

	record := &models.Game{
		ID:     uuid.New(),
		State:  snapshot,
		Status: models.GameStatusActive,
	}
	if err := s.games.Create(ctx, record); err != nil {
		return nil, nil, err
	}

	metrics.RecordGameCreated()
	s.gameLog.LogGameCreated(
		record.ID.String(),
		len(settings.Players),
		len(settings.Circuits),
		settings.TurnsPerCircuit,
		string(settings.ScoringMethod),
	)
	return record, state, nil
}

// ActiveGame returns the live game and its decoded state.
func (s *GameService) ActiveGame(ctx context.Context) (*models.Game, *game.State, error) {
	record, err := s.games.GetActive(ctx)
	if err != nil {
		return nil, nil, err
	}

	state := &game.State{}
	if err := json.Unmarshal(record.State, state); err != nil {
		return nil, nil, fmt.Errorf("failed to decode game state: %w", err)
	}
	return record, state, nil
}

// SubmitTurn records the current player's laps against the active game.
func (s *GameService) SubmitTurn(ctx context.Context, playerID uuid.UUID, entries []game.LapEntry) (*game.State, error) {
	record, state, err := s.ActiveGame(ctx)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	next, err := game.SubmitTurn(state, playerID, entries)
	if err != nil {
		metrics.RecordTurnRejected()
		return nil, err
	}

	if err := s.saveState(ctx, record.ID, next); err != nil {
		return nil, err
	}

	metrics.RecordTurnSubmitted(time.Since(start).Seconds())
	for _, entry := range next.LapTimesLog[len(state.LapTimesLog):] {
		metrics.RecordLapTime(entry.Time)
	}

	turnIndex := state.CurrentTurn
	var average *int64
	circuit := next.CircuitResults[state.CurrentCircuitIndex]
	if turnIndex-1 < len(circuit.Turns) {
		turn := circuit.Turns[turnIndex-1]
		if len(turn) > 0 {
			average = turn[len(turn)-1].AverageTime
		}
	}
	s.gameLog.LogTurnSubmitted(record.ID.String(), playerID.String(), state.CurrentCircuitIndex, turnIndex, average)

	s.applyRecordUpdates(ctx, next)
	return next, nil
}

// AdvanceCircuit moves the active game to its next circuit. Advancing past
// the last circuit completes the game.
func (s *GameService) AdvanceCircuit(ctx context.Context) (*game.State, error) {
	record, state, err := s.ActiveGame(ctx)
	if err != nil {
		return nil, err
	}

	next, err := game.AdvanceCircuit(state)
	if err != nil {
		return nil, err
	}
	if next == state {
		return state, nil
	}

	if err := s.saveState(ctx, record.ID, next); err != nil {
		return nil, err
	}

	if next.Finished() {
		if err := s.completeGame(ctx, record.ID, next); err != nil {
			return nil, err
		}
	} else {
		s.gameLog.LogCircuitAdvanced(
			record.ID.String(),
			state.CurrentCircuitIndex,
			next.CurrentCircuitIndex,
			next.PlayerOrder[0].String(),
		)
	}
	return next, nil
}

// EndGame finishes the active game early. The stored snapshot keeps every
// result recorded so far.
func (s *GameService) EndGame(ctx context.Context) (*game.State, error) {
	record, state, err := s.ActiveGame(ctx)
	if err != nil {
		return nil, err
	}

	next := game.EndGame(state)
	if next != state {
		if err := s.saveState(ctx, record.ID, next); err != nil {
			return nil, err
		}
	}

	if err := s.completeGame(ctx, record.ID, next); err != nil {
		return nil, err
	}
	return next, nil
}

// History returns finished games, newest first.
func (s *GameService) History(ctx context.Context, limit int) ([]*models.Game, error) {
	return s.games.ListCompleted(ctx, limit)
}

// Leaderboard returns the fastest laps of the active game.
func (s *GameService) Leaderboard(ctx context.Context) ([]game.LapLogEntry, error) {
	_, state, err := s.ActiveGame(ctx)
	if err != nil {
		return nil, err
	}
	return game.NightlyLeaderboard(state, s.gameConfig.LeaderboardSize), nil
}

// CircuitStandings returns per-player scores for the circuit currently being
// raced, for the circuit-complete presentation between circuits.
func (s *GameService) CircuitStandings(ctx context.Context) ([]game.PlayerScore, error) {
	_, state, err := s.ActiveGame(ctx)
	if err != nil {
		return nil, err
	}

	index := state.CurrentCircuitIndex
	if index >= len(state.Settings.Circuits) {
		index = len(state.Settings.Circuits) - 1
	}
	return state.CircuitStandings(index), nil
}

// CheckCircuitRecords compares the active game's session minima for one
// circuit against the stored records, without persisting anything.
func (s *GameService) CheckCircuitRecords(ctx context.Context, circuitID uuid.UUID) (*game.RecordUpdate, error) {
	circuit, err := s.circuits.GetByID(ctx, circuitID)
	if err != nil {
		return nil, err
	}

	_, state, err := s.ActiveGame(ctx)
	if err != nil {
		return nil, err
	}

	lapMin, averageMin := game.SessionMinima(state, circuit.Name)
	return game.CheckRecords(circuit, lapMin, averageMin, time.Now().UTC()), nil
}

// AuditRecords re-runs the persisting record pass over the active game so a
// record missed by a failed write during play still lands. The guarded
// repository updates make repeat passes safe: an already-stored record is
// not re-applied or re-announced.
func (s *GameService) AuditRecords(ctx context.Context) error {
	_, state, err := s.ActiveGame(ctx)
	if err != nil {
		return err
	}
	s.applyRecordUpdates(ctx, state)
	return nil
}

func (s *GameService) saveState(ctx context.Context, id uuid.UUID, state *game.State) error {
	snapshot, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to encode game state: %w", err)
	}
	return s.games.UpdateState(ctx, id, snapshot)
}

func (s *GameService) completeGame(ctx context.Context, id uuid.UUID, state *game.State) error {
	if err := s.games.SetStatus(ctx, id, models.GameStatusCompleted); err != nil {
		return err
	}

	s.applyRecordUpdates(ctx, state)
	metrics.RecordGameCompleted()

	winner := state.PlayerOrder[0]
	s.gameLog.LogGameCompleted(
		id.String(),
		winner.String(),
		state.PlayerStats[winner].TotalScore,
		state.CurrentCircuitIndex,
	)
	return nil
}

// applyRecordUpdates persists and announces fallen records. Failures are
// logged and swallowed: record keeping must never wedge the night.
func (s *GameService) applyRecordUpdates(ctx context.Context, state *game.State) {
	circuits, err := s.circuits.List(ctx)
	if err != nil {
		s.logger.WithError(err).Warn("Record check skipped: failed to list circuits")
		return
	}

	updates := game.ComputeRecordUpdates(state, circuits, time.Now().UTC())
	for _, update := range updates {
		if update.NewBestLap != nil && update.LapHolderID != nil {
			if err := s.circuits.UpdateLapRecord(ctx, update.CircuitID, *update.NewBestLap, *update.LapHolderID, update.At); err != nil {
				s.logger.WithError(err).WithField("circuit", update.CircuitName).Warn("Failed to persist lap record")
			} else {
				metrics.RecordRecordBroken("lap")
				s.gameLog.LogRecordBroken(update.CircuitID.String(), update.CircuitName, "lap", *update.NewBestLap, update.LapHolderID.String(), update.At)
			}
		}
		if update.NewBestAverage != nil && update.AverageHolderID != nil {
			if err := s.circuits.UpdateAverageRecord(ctx, update.CircuitID, *update.NewBestAverage, *update.AverageHolderID, update.At); err != nil {
				s.logger.WithError(err).WithField("circuit", update.CircuitName).Warn("Failed to persist average record")
			} else {
				metrics.RecordRecordBroken("average")
				s.gameLog.LogRecordBroken(update.CircuitID.String(), update.CircuitName, "average", *update.NewBestAverage, update.AverageHolderID.String(), update.At)
			}
		}

		if err := s.notifier.Announce(ctx, update); err != nil {
			s.logger.WithError(err).WithField("circuit", update.CircuitName).Warn("Record announcement failed")
		}
	}
}
