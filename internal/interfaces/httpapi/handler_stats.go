package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/realbreda/clubsite/internal/domain/playerstats"
	"github.com/realbreda/clubsite/internal/usecase"
)

func (h *Handler) GetTeamTotals(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTeamTotals")
	defer span.End()

	totals, err := h.statsService.TeamTotals(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "team totals failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, teamTotalsDTO{
		Players:     totals.Players,
		EAFC:        statLineToDTO(totals.EAFC),
		Competitive: statLineToDTO(totals.Competitive),
		Combined:    statLineToDTO(totals.Combined),
	})
}

func (h *Handler) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetLeaderboard")
	defer span.End()

	league := playerstats.LeagueEAFC
	if raw := strings.TrimSpace(r.URL.Query().Get("league")); raw != "" {
		parsed, err := parseLeague(raw)
		if err != nil {
			writeError(ctx, w, err)
			return
		}
		league = parsed
	}

	key, err := usecase.ParseSortKey(r.URL.Query().Get("sort"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	limit := 0
	if raw := strings.TrimSpace(r.URL.Query().Get("limit")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			writeError(ctx, w, fmt.Errorf("%w: limit must be a non-negative integer", usecase.ErrInvalidInput))
			return
		}
		limit = parsed
	}

	rows, err := h.statsService.Leaderboard(ctx, league, key, limit)
	if err != nil {
		h.logger.WarnContext(ctx, "leaderboard failed", "league", league, "sort", key, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]leaderboardRowDTO, 0, len(rows))
	for _, row := range rows {
		items = append(items, leaderboardRowDTO{
			Rank:         row.Rank,
			PlayerID:     row.Entry.Player.ID,
			Name:         row.Entry.Player.Name,
			Position:     string(row.Entry.Player.Position),
			JerseyNumber: row.Entry.Player.JerseyNumber,
			Value:        row.Value,
		})
	}

	writeSuccess(ctx, w, http.StatusOK, leaderboardDTO{
		League: string(league),
		Sort:   string(key),
		Rows:   items,
	})
}

func (h *Handler) GetTopPerformers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTopPerformers")
	defer span.End()

	top, err := h.statsService.TopPerformers(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "top performers failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, topPerformersDTO{
		TopScorer:   topPerformerToDTO(ctx, top.TopScorer),
		TopAssister: topPerformerToDTO(ctx, top.TopAssister),
	})
}

type teamTotalsDTO struct {
	Players     int         `json:"players"`
	EAFC        statLineDTO `json:"eafc"`
	Competitive statLineDTO `json:"competitive"`
	Combined    statLineDTO `json:"combined"`
}

type leaderboardDTO struct {
	League string              `json:"league"`
	Sort   string              `json:"sort"`
	Rows   []leaderboardRowDTO `json:"rows"`
}

type leaderboardRowDTO struct {
	Rank         int     `json:"rank"`
	PlayerID     string  `json:"playerId"`
	Name         string  `json:"name"`
	Position     string  `json:"position"`
	JerseyNumber int     `json:"jerseyNumber"`
	Value        float64 `json:"value"`
}

type topPerformersDTO struct {
	TopScorer   *topPerformerDTO `json:"topScorer"`
	TopAssister *topPerformerDTO `json:"topAssister"`
}

type topPerformerDTO struct {
	PlayerID string `json:"playerId"`
	Name     string `json:"name"`
	Goals    int    `json:"goals"`
	Assists  int    `json:"assists"`
}

func topPerformerToDTO(ctx context.Context, entry *usecase.RosterEntry) *topPerformerDTO {
	ctx, span := startSpan(ctx, "httpapi.topPerformerToDTO")
	defer span.End()

	if entry == nil {
		return nil
	}
	return &topPerformerDTO{
		PlayerID: entry.Player.ID,
		Name:     entry.Player.Name,
		Goals:    entry.Stats.EAFC.Goals + entry.Stats.Competitive.Goals,
		Assists:  entry.Stats.EAFC.Assists + entry.Stats.Competitive.Assists,
	}
}
