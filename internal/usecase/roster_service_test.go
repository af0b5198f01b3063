package usecase

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/realbreda/clubsite/internal/domain/player"
	"github.com/realbreda/clubsite/internal/domain/playerstats"
	"github.com/realbreda/clubsite/internal/domain/user"
	"github.com/realbreda/clubsite/internal/platform/logging"
)

type fakePlayerRepo struct {
	players   []player.Player
	listErr   error
	blockList bool
}

func (f *fakePlayerRepo) ListByJerseyNumber(ctx context.Context) ([]player.Player, error) {
	if f.blockList {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]player.Player(nil), f.players...), nil
}

func (f *fakePlayerRepo) GetByID(_ context.Context, playerID string) (player.Player, bool, error) {
	for _, p := range f.players {
		if p.ID == playerID {
			return p, true, nil
		}
	}
	return player.Player{}, false, nil
}

type fakeStatsRepo struct {
	mu          sync.Mutex
	rows        map[string]playerstats.Row
	listErr     error
	upsertErr   error
	upsertCalls int
	bothCalls   int
}

func newFakeStatsRepo() *fakeStatsRepo {
	return &fakeStatsRepo{rows: make(map[string]playerstats.Row)}
}

func (f *fakeStatsRepo) key(playerID string, league playerstats.League) string {
	return playerID + "/" + string(league)
}

func (f *fakeStatsRepo) ListAll(context.Context) ([]playerstats.Row, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]playerstats.Row, 0, len(f.rows))
	for _, row := range f.rows {
		out = append(out, row)
	}
	return out, nil
}

func (f *fakeStatsRepo) Upsert(_ context.Context, row playerstats.Row) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.upsertCalls++
	if f.upsertErr != nil {
		return f.upsertErr
	}
	f.rows[f.key(row.PlayerID, row.League)] = row
	return nil
}

func (f *fakeStatsRepo) UpsertBoth(_ context.Context, playerID string, eafc, competitive playerstats.StatLine) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.bothCalls++
	if f.upsertErr != nil {
		return f.upsertErr
	}
	f.rows[f.key(playerID, playerstats.LeagueEAFC)] = playerstats.Row{PlayerID: playerID, League: playerstats.LeagueEAFC, Line: eafc}
	f.rows[f.key(playerID, playerstats.LeagueCompetitive)] = playerstats.Row{PlayerID: playerID, League: playerstats.LeagueCompetitive, Line: competitive}
	return nil
}

func testSquad() []player.Player {
	return []player.Player{
		{ID: "p-1", Name: "Mika", Position: player.PositionForward, JerseyNumber: 9},
		{ID: "p-2", Name: "Daan", Position: player.PositionGoalkeeper, JerseyNumber: 1},
	}
}

func adminProfile() *user.Profile {
	return &user.Profile{ID: "u-admin", Username: "admin", Role: user.RoleAdmin}
}

func TestRosterService_FetchAll_SortsByJerseyAndDefaultsStats(t *testing.T) {
	svc := NewRosterService(&fakePlayerRepo{players: testSquad()}, newFakeStatsRepo(), logging.NewNop())

	entries, err := svc.FetchAll(context.Background())
	if err != nil {
		t.Fatalf("fetch all: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Player.ID != "p-2" || entries[1].Player.ID != "p-1" {
		t.Fatalf("expected jersey ordering [p-2 p-1], got [%s %s]", entries[0].Player.ID, entries[1].Player.ID)
	}
	for _, entry := range entries {
		if entry.Stats.EAFC != (playerstats.StatLine{}) || entry.Stats.Competitive != (playerstats.StatLine{}) {
			t.Fatalf("expected zero-valued stats for %s", entry.Player.ID)
		}
	}
}

func TestRosterService_FetchAll_EmptyRosterIsNotAnError(t *testing.T) {
	svc := NewRosterService(&fakePlayerRepo{}, newFakeStatsRepo(), logging.NewNop())

	entries, err := svc.FetchAll(context.Background())
	if err != nil {
		t.Fatalf("fetch all: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected empty roster, got %d entries", len(entries))
	}
}

func TestRosterService_FetchAll_IsIdempotent(t *testing.T) {
	statsRepo := newFakeStatsRepo()
	statsRepo.rows[statsRepo.key("p-1", playerstats.LeagueEAFC)] = playerstats.Row{
		PlayerID: "p-1",
		League:   playerstats.LeagueEAFC,
		Line:     playerstats.StatLine{Appearances: 4, Goals: 2, Rating: 7.5},
	}
	svc := NewRosterService(&fakePlayerRepo{players: testSquad()}, statsRepo, logging.NewNop())

	first, err := svc.FetchAll(context.Background())
	if err != nil {
		t.Fatalf("first fetch: %v", err)
	}
	second, err := svc.FetchAll(context.Background())
	if err != nil {
		t.Fatalf("second fetch: %v", err)
	}
	if len(first) != len(second) {
		t.Fatalf("expected equal lengths, got %d and %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("entry %d differs between fetches", i)
		}
	}
}

func TestRosterService_FetchAll_TimeoutClassified(t *testing.T) {
	svc := NewRosterService(&fakePlayerRepo{blockList: true}, newFakeStatsRepo(), logging.NewNop())
	svc.fetchTimeout = 60 * time.Millisecond

	startedAt := time.Now()
	_, err := svc.FetchAll(context.Background())
	elapsed := time.Since(startedAt)

	if !errors.Is(err, ErrTimeout) {
		t.Fatalf("expected ErrTimeout, got %v", err)
	}
	if elapsed < svc.fetchTimeout {
		t.Fatalf("timeout fired after %v, before the %v deadline", elapsed, svc.fetchTimeout)
	}
}

func TestRosterService_FetchAll_ConnectivityClassified(t *testing.T) {
	repo := &fakePlayerRepo{listErr: &net.OpError{Op: "dial", Err: errors.New("connection refused")}}
	svc := NewRosterService(repo, newFakeStatsRepo(), logging.NewNop())

	_, err := svc.FetchAll(context.Background())
	if !errors.Is(err, ErrDependencyUnavailable) {
		t.Fatalf("expected ErrDependencyUnavailable, got %v", err)
	}
}

func TestRosterService_FetchAll_OtherErrorsPassThrough(t *testing.T) {
	repo := &fakePlayerRepo{listErr: fmt.Errorf("row level security violation")}
	svc := NewRosterService(repo, newFakeStatsRepo(), logging.NewNop())

	_, err := svc.FetchAll(context.Background())
	if err == nil {
		t.Fatalf("expected error")
	}
	if errors.Is(err, ErrTimeout) || errors.Is(err, ErrDependencyUnavailable) {
		t.Fatalf("expected raw error, got classified %v", err)
	}
	if !strings.Contains(err.Error(), "row level security violation") {
		t.Fatalf("expected backend message to pass through, got %v", err)
	}
}

func TestRosterService_FetchAll_StatsFailureDegradesToZero(t *testing.T) {
	statsRepo := newFakeStatsRepo()
	statsRepo.listErr = fmt.Errorf("stats table unavailable")
	svc := NewRosterService(&fakePlayerRepo{players: testSquad()}, statsRepo, logging.NewNop())

	entries, err := svc.FetchAll(context.Background())
	if err != nil {
		t.Fatalf("fetch all: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	for _, entry := range entries {
		if entry.Stats.EAFC != (playerstats.StatLine{}) {
			t.Fatalf("expected zero-valued stats for %s", entry.Player.ID)
		}
	}
}

func TestRosterService_Snapshot_RetainedOnFetchFailure(t *testing.T) {
	repo := &fakePlayerRepo{players: testSquad()}
	svc := NewRosterService(repo, newFakeStatsRepo(), logging.NewNop())

	if _, err := svc.FetchAll(context.Background()); err != nil {
		t.Fatalf("first fetch: %v", err)
	}

	repo.listErr = fmt.Errorf("backend down")
	if _, err := svc.FetchAll(context.Background()); err == nil {
		t.Fatalf("expected fetch failure")
	}

	snapshot := svc.Snapshot()
	if len(snapshot) != 2 {
		t.Fatalf("expected retained snapshot of 2 entries, got %d", len(snapshot))
	}
}

func TestRosterService_UpdateStatistics_RoundTrip(t *testing.T) {
	statsRepo := newFakeStatsRepo()
	svc := NewRosterService(&fakePlayerRepo{players: testSquad()}, statsRepo, logging.NewNop())

	line := playerstats.StatLine{Appearances: 10, Goals: 5, Assists: 3, Rating: 8.1}
	entries, err := svc.UpdateStatistics(context.Background(), adminProfile(), "p-1", playerstats.LeagueEAFC, line)
	if err != nil {
		t.Fatalf("update statistics: %v", err)
	}

	var updated *RosterEntry
	for i := range entries {
		if entries[i].Player.ID == "p-1" {
			updated = &entries[i]
		}
	}
	if updated == nil {
		t.Fatalf("player p-1 missing from refreshed roster")
	}
	if updated.Stats.EAFC.Goals != 5 {
		t.Fatalf("expected eafc goals 5 after round trip, got %d", updated.Stats.EAFC.Goals)
	}
}

func TestRosterService_UpdateStatistics_PermissionDenied(t *testing.T) {
	statsRepo := newFakeStatsRepo()
	svc := NewRosterService(&fakePlayerRepo{players: testSquad()}, statsRepo, logging.NewNop())

	cases := []struct {
		name  string
		actor *user.Profile
	}{
		{name: "anonymous", actor: nil},
		{name: "standard role", actor: &user.Profile{ID: "u-1", Role: user.RoleStandard}},
		{name: "owner of another player", actor: &user.Profile{ID: "u-2", Role: user.RoleOwner, OwnedPlayerID: "p-2"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.UpdateStatistics(context.Background(), tc.actor, "p-1", playerstats.LeagueEAFC, playerstats.StatLine{Goals: 1})
			if !errors.Is(err, ErrUnauthorized) {
				t.Fatalf("expected ErrUnauthorized, got %v", err)
			}
		})
	}
	if statsRepo.upsertCalls != 0 {
		t.Fatalf("expected no upserts for denied actors, got %d", statsRepo.upsertCalls)
	}
}

func TestRosterService_UpdateStatistics_OwnerEditsOwnPlayer(t *testing.T) {
	statsRepo := newFakeStatsRepo()
	svc := NewRosterService(&fakePlayerRepo{players: testSquad()}, statsRepo, logging.NewNop())

	owner := &user.Profile{ID: "u-2", Role: user.RoleOwner, OwnedPlayerID: "p-2"}
	if _, err := svc.UpdateStatistics(context.Background(), owner, "p-2", playerstats.LeagueCompetitive, playerstats.StatLine{Goals: 2}); err != nil {
		t.Fatalf("owner edit of own player: %v", err)
	}
	if statsRepo.upsertCalls != 1 {
		t.Fatalf("expected one upsert, got %d", statsRepo.upsertCalls)
	}
}

func TestRosterService_UpdateStatistics_UnknownPlayer(t *testing.T) {
	svc := NewRosterService(&fakePlayerRepo{players: testSquad()}, newFakeStatsRepo(), logging.NewNop())

	_, err := svc.UpdateStatistics(context.Background(), adminProfile(), "p-404", playerstats.LeagueEAFC, playerstats.StatLine{})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRosterService_UpdateStatistics_RejectsInvalidLine(t *testing.T) {
	svc := NewRosterService(&fakePlayerRepo{players: testSquad()}, newFakeStatsRepo(), logging.NewNop())

	_, err := svc.UpdateStatistics(context.Background(), adminProfile(), "p-1", playerstats.LeagueEAFC, playerstats.StatLine{Goals: -1})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestRosterService_UpdateStatistics_RefreshFailureServesSnapshot(t *testing.T) {
	repo := &fakePlayerRepo{players: testSquad()}
	statsRepo := newFakeStatsRepo()
	svc := NewRosterService(repo, statsRepo, logging.NewNop())

	if _, err := svc.FetchAll(context.Background()); err != nil {
		t.Fatalf("seed fetch: %v", err)
	}

	repo.listErr = fmt.Errorf("backend down")
	entries, err := svc.UpdateStatistics(context.Background(), adminProfile(), "p-1", playerstats.LeagueEAFC, playerstats.StatLine{Goals: 3})
	if err != nil {
		t.Fatalf("expected snapshot fallback, got %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected retained snapshot of 2 entries, got %d", len(entries))
	}
	if statsRepo.upsertCalls != 1 {
		t.Fatalf("expected the write to land before refresh, got %d upserts", statsRepo.upsertCalls)
	}
}

// Two sequential single-league updates can partially succeed; the first write
// stays applied when the second fails. UpdateAllStatistics exists to close
// this window.
func TestRosterService_UpdateStatistics_SequentialCallsCanPartiallySucceed(t *testing.T) {
	statsRepo := newFakeStatsRepo()
	svc := NewRosterService(&fakePlayerRepo{players: testSquad()}, statsRepo, logging.NewNop())

	if _, err := svc.UpdateStatistics(context.Background(), adminProfile(), "p-1", playerstats.LeagueEAFC, playerstats.StatLine{Goals: 4}); err != nil {
		t.Fatalf("first update: %v", err)
	}

	statsRepo.upsertErr = fmt.Errorf("backend down")
	if _, err := svc.UpdateStatistics(context.Background(), adminProfile(), "p-1", playerstats.LeagueCompetitive, playerstats.StatLine{Goals: 1}); err == nil {
		t.Fatalf("expected second update to fail")
	}

	row, ok := statsRepo.rows[statsRepo.key("p-1", playerstats.LeagueEAFC)]
	if !ok || row.Line.Goals != 4 {
		t.Fatalf("expected first write to remain applied, got %+v (ok=%t)", row, ok)
	}
	if _, ok := statsRepo.rows[statsRepo.key("p-1", playerstats.LeagueCompetitive)]; ok {
		t.Fatalf("expected second write to be absent")
	}
}

func TestRosterService_UpdateAllStatistics_AtomicWrite(t *testing.T) {
	statsRepo := newFakeStatsRepo()
	svc := NewRosterService(&fakePlayerRepo{players: testSquad()}, statsRepo, logging.NewNop())

	eafc := playerstats.StatLine{Appearances: 12, Goals: 7, Rating: 7.9}
	competitive := playerstats.StatLine{Appearances: 6, Goals: 2, Rating: 6.8}
	entries, err := svc.UpdateAllStatistics(context.Background(), adminProfile(), "p-1", eafc, competitive)
	if err != nil {
		t.Fatalf("update all statistics: %v", err)
	}
	if statsRepo.bothCalls != 1 {
		t.Fatalf("expected one combined upsert, got %d", statsRepo.bothCalls)
	}

	for _, entry := range entries {
		if entry.Player.ID != "p-1" {
			continue
		}
		if entry.Stats.EAFC.Goals != 7 || entry.Stats.Competitive.Goals != 2 {
			t.Fatalf("unexpected stats after combined update: %+v", entry.Stats)
		}
		return
	}
	t.Fatalf("player p-1 missing from refreshed roster")
}

func TestRosterService_Get(t *testing.T) {
	svc := NewRosterService(&fakePlayerRepo{players: testSquad()}, newFakeStatsRepo(), logging.NewNop())

	entry, err := svc.Get(context.Background(), "p-2")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if entry.Player.Name != "Daan" {
		t.Fatalf("unexpected player: %+v", entry.Player)
	}

	if _, err := svc.Get(context.Background(), "p-404"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
