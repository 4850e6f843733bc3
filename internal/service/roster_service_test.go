package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/yourusername/race-night/internal/models"
)

type fakePlayerRepo struct {
	players   map[uuid.UUID]*models.Player
	listCalls int
}

func newFakePlayerRepo() *fakePlayerRepo {
	return &fakePlayerRepo{players: make(map[uuid.UUID]*models.Player)}
}

func (f *fakePlayerRepo) Create(ctx context.Context, p *models.Player) error {
	for _, existing := range f.players {
		if existing.Name == p.Name {
			return models.ErrDuplicateKey
		}
	}
	now := time.Now()
	p.CreatedAt, p.UpdatedAt = now, now
	stored := *p
	f.players[p.ID] = &stored
	return nil
}

func (f *fakePlayerRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Player, error) {
	p, ok := f.players[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	copied := *p
	return &copied, nil
}

func (f *fakePlayerRepo) List(ctx context.Context) ([]*models.Player, error) {
	f.listCalls++
	var out []*models.Player
	for _, p := range f.players {
		copied := *p
		out = append(out, &copied)
	}
	return out, nil
}

func (f *fakePlayerRepo) Update(ctx context.Context, p *models.Player) error {
	if _, ok := f.players[p.ID]; !ok {
		return models.ErrNotFound
	}
	stored := *p
	f.players[p.ID] = &stored
	return nil
}

func (f *fakePlayerRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := f.players[id]; !ok {
		return models.ErrNotFound
	}
	delete(f.players, id)
	return nil
}

func newTestRosterService() (*RosterService, *fakePlayerRepo, *fakeCircuitRepo, *fakeGameRepo) {
	playerRepo := newFakePlayerRepo()
	circuitRepo := newFakeCircuitRepo()
	gameRepo := newFakeGameRepo()
	svc := NewRosterService(playerRepo, circuitRepo, gameRepo, 5*time.Minute, quietLogger())
	return svc, playerRepo, circuitRepo, gameRepo
}

func TestCreatePlayerValidatesName(t *testing.T) {
	svc, _, _, _ := newTestRosterService()

	if _, err := svc.CreatePlayer(context.Background(), "", nil); err == nil {
		t.Fatal("expected validation error for empty name")
	}

	player, err := svc.CreatePlayer(context.Background(), "Ayrton", nil)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if player.ID == uuid.Nil {
		t.Fatal("expected generated player id")
	}
}

func TestCreatePlayerRejectsDuplicateName(t *testing.T) {
	svc, _, _, _ := newTestRosterService()
	ctx := context.Background()

	if _, err := svc.CreatePlayer(ctx, "Ayrton", nil); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if _, err := svc.CreatePlayer(ctx, "Ayrton", nil); !errors.Is(err, models.ErrDuplicateKey) {
		t.Fatalf("expected ErrDuplicateKey, got %v", err)
	}
}

func TestListPlayersServedFromCache(t *testing.T) {
	svc, playerRepo, _, _ := newTestRosterService()
	ctx := context.Background()

	if _, err := svc.CreatePlayer(ctx, "Ayrton", nil); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if _, err := svc.ListPlayers(ctx); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if _, err := svc.ListPlayers(ctx); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if playerRepo.listCalls != 1 {
		t.Fatalf("expected one repository hit, got %d", playerRepo.listCalls)
	}

	// A write invalidates the cache.
	if _, err := svc.CreatePlayer(ctx, "Michael", nil); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if _, err := svc.ListPlayers(ctx); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if playerRepo.listCalls != 2 {
		t.Fatalf("expected cache invalidation after write, got %d hits", playerRepo.listCalls)
	}
}

func TestDeletePlayerRefusedWhileRacing(t *testing.T) {
	svc, playerRepo, circuitRepo, gameRepo := newTestRosterService()
	ctx := context.Background()

	player, err := svc.CreatePlayer(ctx, "Ayrton", nil)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	circuit := &models.Circuit{ID: uuid.New(), Name: "Monza"}
	circuitRepo.circuits[circuit.ID] = circuit

	settings := nightSettings(1, []*models.Circuit{circuit})
	settings.Players[0] = *player
	snapshot, _ := json.Marshal(map[string]interface{}{"settings": settings})
	gameRepo.games[uuid.New()] = &models.Game{
		ID:     uuid.New(),
		State:  snapshot,
		Status: models.GameStatusActive,
	}

	if err := svc.DeletePlayer(ctx, player.ID); !errors.Is(err, models.ErrPlayerInUse) {
		t.Fatalf("expected ErrPlayerInUse, got %v", err)
	}
	if _, ok := playerRepo.players[player.ID]; !ok {
		t.Fatal("player must survive a refused delete")
	}
}

func TestDeleteCircuitRefusedWhileRacing(t *testing.T) {
	svc, _, circuitRepo, gameRepo := newTestRosterService()
	ctx := context.Background()

	circuit, err := svc.CreateCircuit(ctx, "Monza", "")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	settings := nightSettings(1, []*models.Circuit{circuit})
	snapshot, _ := json.Marshal(map[string]interface{}{"settings": settings})
	gameRepo.games[uuid.New()] = &models.Game{
		ID:     uuid.New(),
		State:  snapshot,
		Status: models.GameStatusActive,
	}

	if err := svc.DeleteCircuit(ctx, circuit.ID); !errors.Is(err, models.ErrCircuitInUse) {
		t.Fatalf("expected ErrCircuitInUse, got %v", err)
	}
	if _, ok := circuitRepo.circuits[circuit.ID]; !ok {
		t.Fatal("circuit must survive a refused delete")
	}
}

func TestDeletePlayerAllowedWithoutActiveGame(t *testing.T) {
	svc, playerRepo, _, _ := newTestRosterService()
	ctx := context.Background()

	player, err := svc.CreatePlayer(ctx, "Ayrton", nil)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if err := svc.DeletePlayer(ctx, player.ID); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if _, ok := playerRepo.players[player.ID]; ok {
		t.Fatal("expected player removed")
	}
}
