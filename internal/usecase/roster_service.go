package usecase

import (
	"context"
	"errors"
	"fmt"
	"net"
	"sort"
	"sync"
	"syscall"
	"time"

	"github.com/realbreda/clubsite/internal/domain/player"
	"github.com/realbreda/clubsite/internal/domain/playerstats"
	"github.com/realbreda/clubsite/internal/domain/user"
	"github.com/realbreda/clubsite/internal/platform/logging"
)

// DefaultFetchTimeout bounds every roster-facing backend call.
const DefaultFetchTimeout = 10 * time.Second

// RosterEntry is one squad member joined with their per-league statistics.
type RosterEntry struct {
	Player player.Player
	Stats  playerstats.PlayerStats
}

// RosterService loads the squad roster, joins it with statistics rows and
// applies role-gated stat edits.
type RosterService struct {
	playerRepo   player.Repository
	statsRepo    playerstats.Repository
	logger       *logging.Logger
	fetchTimeout time.Duration
	now          func() time.Time

	mu       sync.RWMutex
	snapshot []RosterEntry
}

func NewRosterService(playerRepo player.Repository, statsRepo playerstats.Repository, logger *logging.Logger) *RosterService {
	if logger == nil {
		logger = logging.Default()
	}
	return &RosterService{
		playerRepo:   playerRepo,
		statsRepo:    statsRepo,
		logger:       logger,
		fetchTimeout: DefaultFetchTimeout,
		now:          time.Now,
	}
}

// SetFetchTimeout overrides the per-fetch deadline. Non-positive values keep
// the current timeout.
func (s *RosterService) SetFetchTimeout(timeout time.Duration) {
	if timeout <= 0 {
		return
	}
	s.fetchTimeout = timeout
}

// FetchAll returns the full roster ordered by jersey number. Player rows are
// mandatory; statistics rows are best effort and degrade to zero-valued lines
// when their fetch fails. On success the result replaces the retained
// snapshot, on failure the previous snapshot stays available via Snapshot.
func (s *RosterService) FetchAll(ctx context.Context) ([]RosterEntry, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.FetchAll")
	defer span.End()

	ctx, cancel := context.WithTimeout(ctx, s.fetchTimeout)
	defer cancel()

	players, err := s.playerRepo.ListByJerseyNumber(ctx)
	if err != nil {
		return nil, classifyBackendError("list players", err)
	}
	if len(players) == 0 {
		s.storeSnapshot([]RosterEntry{})
		return []RosterEntry{}, nil
	}

	statsByPlayer := make(map[string]playerstats.PlayerStats, len(players))
	rows, err := s.statsRepo.ListAll(ctx)
	if err != nil {
		s.logger.WarnContext(ctx, "stats fetch failed, serving roster with zero-valued statistics", "error", err)
	} else {
		for _, row := range rows {
			stats := statsByPlayer[row.PlayerID]
			switch row.League {
			case playerstats.LeagueEAFC:
				stats.EAFC = row.Line
			case playerstats.LeagueCompetitive:
				stats.Competitive = row.Line
			}
			statsByPlayer[row.PlayerID] = stats
		}
	}

	entries := make([]RosterEntry, 0, len(players))
	for _, p := range players {
		entries = append(entries, RosterEntry{
			Player: p,
			Stats:  statsByPlayer[p.ID],
		})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Player.JerseyNumber < entries[j].Player.JerseyNumber
	})

	s.storeSnapshot(entries)
	return entries, nil
}

// Snapshot returns the roster from the most recent successful FetchAll.
func (s *RosterService) Snapshot() []RosterEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.snapshot == nil {
		return nil
	}
	out := make([]RosterEntry, len(s.snapshot))
	copy(out, s.snapshot)
	return out
}

// Get returns a single roster entry by player ID.
func (s *RosterService) Get(ctx context.Context, playerID string) (RosterEntry, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.Get")
	defer span.End()

	if playerID == "" {
		return RosterEntry{}, fmt.Errorf("%w: player id is required", ErrInvalidInput)
	}

	entries, err := s.FetchAll(ctx)
	if err != nil {
		return RosterEntry{}, err
	}
	for _, entry := range entries {
		if entry.Player.ID == playerID {
			return entry, nil
		}
	}
	return RosterEntry{}, fmt.Errorf("%w: player %s", ErrNotFound, playerID)
}

// UpdateStatistics upserts one league's stat line for a player and refreshes
// the roster. A refresh failure after a successful write is logged and the
// retained snapshot is returned instead.
func (s *RosterService) UpdateStatistics(ctx context.Context, actor *user.Profile, playerID string, league playerstats.League, line playerstats.StatLine) ([]RosterEntry, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.UpdateStatistics")
	defer span.End()

	row := playerstats.Row{
		PlayerID:  playerID,
		League:    league,
		Line:      line,
		UpdatedAt: s.now().UTC(),
	}
	if err := row.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := s.authorizeEdit(ctx, actor, playerID); err != nil {
		return nil, err
	}

	if err := s.statsRepo.Upsert(ctx, row); err != nil {
		return nil, classifyBackendError("upsert player stats", err)
	}

	return s.refreshAfterWrite(ctx, playerID)
}

// UpdateAllStatistics writes both league stat lines for a player in a single
// atomic upsert, then refreshes the roster.
func (s *RosterService) UpdateAllStatistics(ctx context.Context, actor *user.Profile, playerID string, eafc, competitive playerstats.StatLine) ([]RosterEntry, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.UpdateAllStatistics")
	defer span.End()

	if playerID == "" {
		return nil, fmt.Errorf("%w: player id is required", ErrInvalidInput)
	}
	if err := eafc.Validate(); err != nil {
		return nil, fmt.Errorf("%w: eafc stats: %v", ErrInvalidInput, err)
	}
	if err := competitive.Validate(); err != nil {
		return nil, fmt.Errorf("%w: competitive stats: %v", ErrInvalidInput, err)
	}
	if err := s.authorizeEdit(ctx, actor, playerID); err != nil {
		return nil, err
	}

	if err := s.statsRepo.UpsertBoth(ctx, playerID, eafc, competitive); err != nil {
		return nil, classifyBackendError("upsert player stats", err)
	}

	return s.refreshAfterWrite(ctx, playerID)
}

func (s *RosterService) authorizeEdit(ctx context.Context, actor *user.Profile, playerID string) error {
	if actor == nil || !actor.CanEditPlayer(playerID) {
		return fmt.Errorf("%w: not allowed to edit player %s", ErrUnauthorized, playerID)
	}

	_, found, err := s.playerRepo.GetByID(ctx, playerID)
	if err != nil {
		return classifyBackendError("get player", err)
	}
	if !found {
		return fmt.Errorf("%w: player %s", ErrNotFound, playerID)
	}
	return nil
}

func (s *RosterService) refreshAfterWrite(ctx context.Context, playerID string) ([]RosterEntry, error) {
	entries, err := s.FetchAll(ctx)
	if err != nil {
		s.logger.WarnContext(ctx, "roster refresh after stat update failed, serving retained snapshot",
			"player_id", playerID,
			"error", err,
		)
		return s.Snapshot(), nil
	}
	return entries, nil
}

func (s *RosterService) storeSnapshot(entries []RosterEntry) {
	copied := make([]RosterEntry, len(entries))
	copy(copied, entries)

	s.mu.Lock()
	s.snapshot = copied
	s.mu.Unlock()
}

// classifyBackendError folds transport-level failures into the shared
// sentinel taxonomy so callers can present a stable user-facing message.
func classifyBackendError(op string, err error) error {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%w: connection timeout, please check your internet connection and try again", ErrTimeout)
	case isConnectivityError(err):
		return fmt.Errorf("%w: unable to connect to the database, please try again later", ErrDependencyUnavailable)
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}

func isConnectivityError(err error) bool {
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	return errors.Is(err, syscall.ECONNREFUSED) || errors.Is(err, syscall.ECONNRESET)
}
