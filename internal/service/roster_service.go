package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	cache "github.com/patrickmn/go-cache"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/race-night/internal/game"
	"github.com/yourusername/race-night/internal/metrics"
	"github.com/yourusername/race-night/internal/models"
	"github.com/yourusername/race-night/internal/repository"
)

const (
	playersCacheKey  = "players"
	circuitsCacheKey = "circuits"
)

// RosterService manages the driver roster and circuit catalogue. List reads
// go through a short-lived cache; every write invalidates it.
type RosterService struct {
	players  repository.PlayerRepository
	circuits repository.CircuitRepository
	games    repository.GameRepository
	cache    *cache.Cache
	validate *validator.Validate
	logger   *logrus.Logger
}

// NewRosterService creates a roster service with the given cache TTL.
func NewRosterService(
	players repository.PlayerRepository,
	circuits repository.CircuitRepository,
	games repository.GameRepository,
	cacheTTL time.Duration,
	logger *logrus.Logger,
) *RosterService {
	return &RosterService{
		players:  players,
		circuits: circuits,
		games:    games,
		cache:    cache.New(cacheTTL, cacheTTL*2),
		validate: validator.New(),
		logger:   logger,
	}
}

// CreatePlayer adds a driver to the roster
func (s *RosterService) CreatePlayer(ctx context.Context, name string, avatarURL *string) (*models.Player, error) {
	player := &models.Player{
		ID:        uuid.New(),
		Name:      name,
		AvatarURL: avatarURL,
	}

	if err := s.validate.StructPartial(player, "ID", "Name"); err != nil {
		return nil, fmt.Errorf("invalid player: %w", err)
	}

	if err := s.players.Create(ctx, player); err != nil {
		return nil, err
	}

	s.cache.Delete(playersCacheKey)
	s.logger.WithField("player_id", player.ID).Info("Player created")
	return player, nil
}

// GetPlayer retrieves one player
func (s *RosterService) GetPlayer(ctx context.Context, id uuid.UUID) (*models.Player, error) {
	return s.players.GetByID(ctx, id)
}

// ListPlayers returns the roster, served from cache when fresh
func (s *RosterService) ListPlayers(ctx context.Context) ([]*models.Player, error) {
	if cached, found := s.cache.Get(playersCacheKey); found {
		if players, ok := cached.([]*models.Player); ok {
			return players, nil
		}
	}

	players, err := s.players.List(ctx)
	if err != nil {
		return nil, err
	}

	s.cache.SetDefault(playersCacheKey, players)
	metrics.UpdateRosterSize(float64(len(players)))
	return players, nil
}

// UpdatePlayer renames a driver or swaps their avatar
func (s *RosterService) UpdatePlayer(ctx context.Context, player *models.Player) error {
	if err := s.validate.StructPartial(player, "ID", "Name"); err != nil {
		return fmt.Errorf("invalid player: %w", err)
	}

	if err := s.players.Update(ctx, player); err != nil {
		return err
	}

	s.cache.Delete(playersCacheKey)
	return nil
}

// DeletePlayer removes a driver from the roster. Players racing in the
// active game cannot be removed mid-night.
func (s *RosterService) DeletePlayer(ctx context.Context, id uuid.UUID) error {
	inUse, err := s.playerInActiveGame(ctx, id)
	if err != nil {
		return err
	}
	if inUse {
		return models.ErrPlayerInUse
	}

	if err := s.players.Delete(ctx, id); err != nil {
		return err
	}

	s.cache.Delete(playersCacheKey)
	s.logger.WithField("player_id", id).Info("Player deleted")
	return nil
}

// CreateCircuit adds a circuit to the catalogue
func (s *RosterService) CreateCircuit(ctx context.Context, name, imageURL string) (*models.Circuit, error) {
	circuit := &models.Circuit{
		ID:       uuid.New(),
		Name:     name,
		ImageURL: imageURL,
	}

	if err := s.validate.StructPartial(circuit, "ID", "Name", "ImageURL"); err != nil {
		return nil, fmt.Errorf("invalid circuit: %w", err)
	}

	if err := s.circuits.Create(ctx, circuit); err != nil {
		return nil, err
	}

	s.cache.Delete(circuitsCacheKey)
	s.logger.WithField("circuit_id", circuit.ID).Info("Circuit created")
	return circuit, nil
}

// GetCircuit retrieves one circuit with its records
func (s *RosterService) GetCircuit(ctx context.Context, id uuid.UUID) (*models.Circuit, error) {
	return s.circuits.GetByID(ctx, id)
}

// ListCircuits returns the catalogue, served from cache when fresh
func (s *RosterService) ListCircuits(ctx context.Context) ([]*models.Circuit, error) {
	if cached, found := s.cache.Get(circuitsCacheKey); found {
		if circuits, ok := cached.([]*models.Circuit); ok {
			return circuits, nil
		}
	}

	circuits, err := s.circuits.List(ctx)
	if err != nil {
		return nil, err
	}

	s.cache.SetDefault(circuitsCacheKey, circuits)
	metrics.UpdateCircuitCount(float64(len(circuits)))
	return circuits, nil
}

// UpdateCircuit renames a circuit or swaps its image. Records are not
// writable through this path; they belong to the record tracker.
func (s *RosterService) UpdateCircuit(ctx context.Context, circuit *models.Circuit) error {
	if err := s.validate.StructPartial(circuit, "ID", "Name", "ImageURL"); err != nil {
		return fmt.Errorf("invalid circuit: %w", err)
	}

	if err := s.circuits.Update(ctx, circuit); err != nil {
		return err
	}

	s.cache.Delete(circuitsCacheKey)
	return nil
}

// DeleteCircuit removes a circuit. Circuits raced in the active game cannot
// be removed mid-night.
func (s *RosterService) DeleteCircuit(ctx context.Context, id uuid.UUID) error {
	inUse, err := s.circuitInActiveGame(ctx, id)
	if err != nil {
		return err
	}
	if inUse {
		return models.ErrCircuitInUse
	}

	if err := s.circuits.Delete(ctx, id); err != nil {
		return err
	}

	s.cache.Delete(circuitsCacheKey)
	s.logger.WithField("circuit_id", id).Info("Circuit deleted")
	return nil
}

// InvalidateCache drops both cached lists
func (s *RosterService) InvalidateCache() {
	s.cache.Delete(playersCacheKey)
	s.cache.Delete(circuitsCacheKey)
}

func (s *RosterService) playerInActiveGame(ctx context.Context, id uuid.UUID) (bool, error) {
	state, err := s.activeState(ctx)
	if err != nil || state == nil {
		return false, err
	}
	for _, p := range state.Settings.Players {
		if p.ID == id {
			return true, nil
		}
	}
	return false, nil
}

func (s *RosterService) circuitInActiveGame(ctx context.Context, id uuid.UUID) (bool, error) {
	state, err := s.activeState(ctx)
	if err != nil || state == nil {
		return false, err
	}
	for _, c := range state.Settings.Circuits {
		if c.ID == id {
			return true, nil
		}
	}
	return false, nil
}

func (s *RosterService) activeState(ctx context.Context) (*game.State, error) {
	active, err := s.games.GetActive(ctx)
	if err != nil {
		if errors.Is(err, models.ErrNoActiveGame) {
			return nil, nil
		}
		return nil, err
	}

	state := &game.State{}
	if err := json.Unmarshal(active.State, state); err != nil {
		return nil, fmt.Errorf("failed to decode game state: %w", err)
	}
	return state, nil
}
