package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/realbreda/clubsite/internal/domain/player"
	"github.com/realbreda/clubsite/internal/domain/playerstats"
)

type staticRoster struct {
	entries []RosterEntry
	err     error
}

func (s *staticRoster) FetchAll(context.Context) ([]RosterEntry, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.entries, nil
}

func rosterWithGoals() []RosterEntry {
	return []RosterEntry{
		{
			Player: player.Player{ID: "p-1", Name: "Daan", JerseyNumber: 1, Position: player.PositionGoalkeeper},
			Stats: playerstats.PlayerStats{
				EAFC:        playerstats.StatLine{Goals: 3, Assists: 1, Appearances: 10, Rating: 7.0},
				Competitive: playerstats.StatLine{Goals: 1, Assists: 4, Appearances: 5, Rating: 6.0},
			},
		},
		{
			Player: player.Player{ID: "p-2", Name: "Mika", JerseyNumber: 9, Position: player.PositionForward},
			Stats: playerstats.PlayerStats{
				EAFC:        playerstats.StatLine{Goals: 5, Assists: 1, Appearances: 12, Rating: 8.0},
				Competitive: playerstats.StatLine{Goals: 0, Assists: 2, Appearances: 6, Rating: 7.0},
			},
		},
	}
}

func TestStatsService_TeamTotals(t *testing.T) {
	svc := NewStatsService(&staticRoster{entries: rosterWithGoals()})

	totals, err := svc.TeamTotals(context.Background())
	if err != nil {
		t.Fatalf("team totals: %v", err)
	}
	if totals.Players != 2 {
		t.Fatalf("expected 2 players, got %d", totals.Players)
	}
	if totals.EAFC.Goals != 8 || totals.Competitive.Goals != 1 {
		t.Fatalf("unexpected per-league goals: eafc=%d competitive=%d", totals.EAFC.Goals, totals.Competitive.Goals)
	}
	if totals.Combined.Goals != 9 {
		t.Fatalf("expected combined goals 9, got %d", totals.Combined.Goals)
	}
	if totals.Combined.Assists != 8 {
		t.Fatalf("expected combined assists 8, got %d", totals.Combined.Assists)
	}
	if totals.EAFC.Rating != 7.5 {
		t.Fatalf("expected eafc average rating 7.5, got %v", totals.EAFC.Rating)
	}
}

func TestStatsService_TeamTotals_EmptyRoster(t *testing.T) {
	svc := NewStatsService(&staticRoster{})

	totals, err := svc.TeamTotals(context.Background())
	if err != nil {
		t.Fatalf("team totals: %v", err)
	}
	if totals.Players != 0 || totals.Combined.Goals != 0 {
		t.Fatalf("expected zero totals, got %+v", totals)
	}
}

func TestStatsService_Leaderboard_SortsDescending(t *testing.T) {
	svc := NewStatsService(&staticRoster{entries: rosterWithGoals()})

	rows, err := svc.Leaderboard(context.Background(), playerstats.LeagueEAFC, SortByGoals, 0)
	if err != nil {
		t.Fatalf("leaderboard: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0].Entry.Player.ID != "p-2" || rows[0].Value != 5 || rows[0].Rank != 1 {
		t.Fatalf("unexpected first row: %+v", rows[0])
	}
	if rows[1].Entry.Player.ID != "p-1" || rows[1].Rank != 2 {
		t.Fatalf("unexpected second row: %+v", rows[1])
	}
}

func TestStatsService_Leaderboard_TieKeepsInputOrder(t *testing.T) {
	entries := rosterWithGoals()
	entries[0].Stats.EAFC.Goals = 5
	svc := NewStatsService(&staticRoster{entries: entries})

	rows, err := svc.Leaderboard(context.Background(), playerstats.LeagueEAFC, SortByGoals, 0)
	if err != nil {
		t.Fatalf("leaderboard: %v", err)
	}
	if rows[0].Entry.Player.ID != "p-1" {
		t.Fatalf("expected first occurrence to win the tie, got %s", rows[0].Entry.Player.ID)
	}
}

func TestStatsService_Leaderboard_Limit(t *testing.T) {
	svc := NewStatsService(&staticRoster{entries: rosterWithGoals()})

	rows, err := svc.Leaderboard(context.Background(), playerstats.LeagueCompetitive, SortByAssists, 1)
	if err != nil {
		t.Fatalf("leaderboard: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	if rows[0].Entry.Player.ID != "p-1" {
		t.Fatalf("expected p-1 to lead competitive assists, got %s", rows[0].Entry.Player.ID)
	}
}

func TestStatsService_Leaderboard_RejectsUnknownLeague(t *testing.T) {
	svc := NewStatsService(&staticRoster{entries: rosterWithGoals()})

	if _, err := svc.Leaderboard(context.Background(), "premier", SortByGoals, 0); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestStatsService_Leaderboard_PropagatesRosterError(t *testing.T) {
	svc := NewStatsService(&staticRoster{err: fmt.Errorf("backend down")})

	if _, err := svc.Leaderboard(context.Background(), playerstats.LeagueEAFC, SortByGoals, 0); err == nil {
		t.Fatalf("expected roster error to propagate")
	}
}

func TestParseSortKey(t *testing.T) {
	cases := []struct {
		raw     string
		want    SortKey
		wantErr bool
	}{
		{raw: "", want: SortByGoals},
		{raw: "goals", want: SortByGoals},
		{raw: " Rating ", want: SortByRating},
		{raw: "motm_awards", want: SortByMOTMAwards},
		{raw: "wins", wantErr: true},
	}
	for _, tc := range cases {
		got, err := ParseSortKey(tc.raw)
		if tc.wantErr {
			if !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("ParseSortKey(%q): expected ErrInvalidInput, got %v", tc.raw, err)
			}
			continue
		}
		if err != nil {
			t.Fatalf("ParseSortKey(%q): %v", tc.raw, err)
		}
		if got != tc.want {
			t.Fatalf("ParseSortKey(%q) = %q, want %q", tc.raw, got, tc.want)
		}
	}
}

func TestStatsService_TopPerformers(t *testing.T) {
	svc := NewStatsService(&staticRoster{entries: rosterWithGoals()})

	top, err := svc.TopPerformers(context.Background())
	if err != nil {
		t.Fatalf("top performers: %v", err)
	}
	if top.TopScorer == nil || top.TopScorer.Player.ID != "p-2" {
		t.Fatalf("expected p-2 as top scorer, got %+v", top.TopScorer)
	}
	if top.TopAssister == nil || top.TopAssister.Player.ID != "p-1" {
		t.Fatalf("expected p-1 as top assister, got %+v", top.TopAssister)
	}
}

func TestStatsService_TopPerformers_EmptyRoster(t *testing.T) {
	svc := NewStatsService(&staticRoster{})

	top, err := svc.TopPerformers(context.Background())
	if err != nil {
		t.Fatalf("top performers: %v", err)
	}
	if top.TopScorer != nil || top.TopAssister != nil {
		t.Fatalf("expected nil performers for empty roster, got %+v", top)
	}
}
