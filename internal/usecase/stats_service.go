package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/realbreda/clubsite/internal/domain/playerstats"
)

// SortKey selects the statistic a leaderboard is ranked by.
type SortKey string

const (
	SortByGoals       SortKey = "goals"
	SortByAssists     SortKey = "assists"
	SortByAppearances SortKey = "appearances"
	SortByCleanSheets SortKey = "clean_sheets"
	SortByMOTMAwards  SortKey = "motm_awards"
	SortByRating      SortKey = "rating"
)

// ParseSortKey normalizes a request-supplied sort key, defaulting to goals.
func ParseSortKey(raw string) (SortKey, error) {
	key := SortKey(strings.ToLower(strings.TrimSpace(raw)))
	if key == "" {
		return SortByGoals, nil
	}
	switch key {
	case SortByGoals, SortByAssists, SortByAppearances, SortByCleanSheets, SortByMOTMAwards, SortByRating:
		return key, nil
	}
	return "", fmt.Errorf("%w: unknown sort key %q", ErrInvalidInput, raw)
}

func statValue(line playerstats.StatLine, key SortKey) float64 {
	switch key {
	case SortByAssists:
		return float64(line.Assists)
	case SortByAppearances:
		return float64(line.Appearances)
	case SortByCleanSheets:
		return float64(line.CleanSheets)
	case SortByMOTMAwards:
		return float64(line.MOTMAwards)
	case SortByRating:
		return line.Rating
	default:
		return float64(line.Goals)
	}
}

// TeamTotals aggregates one statistic set across the whole squad.
type TeamTotals struct {
	Players     int
	EAFC        playerstats.StatLine
	Competitive playerstats.StatLine
	Combined    playerstats.StatLine
}

// LeaderboardRow is one ranked squad member.
type LeaderboardRow struct {
	Rank  int
	Entry RosterEntry
	Value float64
}

// TopPerformers names the combined-league leaders shown on the home page.
type TopPerformers struct {
	TopScorer   *RosterEntry
	TopAssister *RosterEntry
}

type rosterProvider interface {
	FetchAll(ctx context.Context) ([]RosterEntry, error)
}

// StatsService derives leaderboards and team totals from the roster.
type StatsService struct {
	roster rosterProvider
}

func NewStatsService(roster rosterProvider) *StatsService {
	return &StatsService{roster: roster}
}

// TeamTotals sums every statistic across all players, per league and combined.
// Rating is averaged over players rather than summed.
func (s *StatsService) TeamTotals(ctx context.Context) (TeamTotals, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StatsService.TeamTotals")
	defer span.End()

	entries, err := s.roster.FetchAll(ctx)
	if err != nil {
		return TeamTotals{}, err
	}

	totals := TeamTotals{Players: len(entries)}
	for _, entry := range entries {
		addLine(&totals.EAFC, entry.Stats.EAFC)
		addLine(&totals.Competitive, entry.Stats.Competitive)
	}
	totals.Combined = playerstats.StatLine{
		Appearances: totals.EAFC.Appearances + totals.Competitive.Appearances,
		Goals:       totals.EAFC.Goals + totals.Competitive.Goals,
		Assists:     totals.EAFC.Assists + totals.Competitive.Assists,
		CleanSheets: totals.EAFC.CleanSheets + totals.Competitive.CleanSheets,
		MOTMAwards:  totals.EAFC.MOTMAwards + totals.Competitive.MOTMAwards,
	}
	if len(entries) > 0 {
		totals.EAFC.Rating = totals.EAFC.Rating / float64(len(entries))
		totals.Competitive.Rating = totals.Competitive.Rating / float64(len(entries))
		totals.Combined.Rating = (totals.EAFC.Rating + totals.Competitive.Rating) / 2
	}
	return totals, nil
}

func addLine(dst *playerstats.StatLine, src playerstats.StatLine) {
	dst.Appearances += src.Appearances
	dst.Goals += src.Goals
	dst.Assists += src.Assists
	dst.CleanSheets += src.CleanSheets
	dst.MOTMAwards += src.MOTMAwards
	dst.Rating += src.Rating
}

// Leaderboard ranks the squad within one league by the given key, descending.
// Ties keep roster order, so the first occurrence wins. A limit of 0 returns
// every player.
func (s *StatsService) Leaderboard(ctx context.Context, league playerstats.League, key SortKey, limit int) ([]LeaderboardRow, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StatsService.Leaderboard")
	defer span.End()

	if _, ok := playerstats.AllLeagues[league]; !ok {
		return nil, fmt.Errorf("%w: unknown league %q", ErrInvalidInput, league)
	}
	if _, err := ParseSortKey(string(key)); err != nil {
		return nil, err
	}

	entries, err := s.roster.FetchAll(ctx)
	if err != nil {
		return nil, err
	}

	rows := make([]LeaderboardRow, 0, len(entries))
	for _, entry := range entries {
		line := entry.Stats.ByLeague(league)
		rows = append(rows, LeaderboardRow{Entry: entry, Value: statValue(line, key)})
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Value > rows[j].Value
	})

	if limit > 0 && limit < len(rows) {
		rows = rows[:limit]
	}
	for i := range rows {
		rows[i].Rank = i + 1
	}
	return rows, nil
}

// TopPerformers returns the combined-league leading scorer and assister.
// With an empty roster both are nil.
func (s *StatsService) TopPerformers(ctx context.Context) (TopPerformers, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StatsService.TopPerformers")
	defer span.End()

	entries, err := s.roster.FetchAll(ctx)
	if err != nil {
		return TopPerformers{}, err
	}
	if len(entries) == 0 {
		return TopPerformers{}, nil
	}

	top := TopPerformers{}
	bestGoals, bestAssists := -1, -1
	for i := range entries {
		entry := entries[i]
		goals := entry.Stats.EAFC.Goals + entry.Stats.Competitive.Goals
		assists := entry.Stats.EAFC.Assists + entry.Stats.Competitive.Assists
		if goals > bestGoals {
			bestGoals = goals
			top.TopScorer = &entries[i]
		}
		if assists > bestAssists {
			bestAssists = assists
			top.TopAssister = &entries[i]
		}
	}
	return top, nil
}
