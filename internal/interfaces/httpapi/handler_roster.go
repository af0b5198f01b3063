package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/realbreda/clubsite/internal/domain/playerstats"
	"github.com/realbreda/clubsite/internal/domain/user"
	"github.com/realbreda/clubsite/internal/usecase"
)

func (h *Handler) GetRoster(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetRoster")
	defer span.End()

	entries, err := h.rosterService.FetchAll(ctx)
	if err != nil {
		// A retained snapshot keeps the squad page renderable through a
		// backend blip, but the classified error still goes out with it so
		// clients can show the failure and a retry action.
		if snapshot := h.rosterService.Snapshot(); len(snapshot) > 0 {
			h.logger.WarnContext(ctx, "fetch roster failed, attaching retained snapshot", "error", err)
			writeErrorWithData(ctx, w, err, h.rosterToDTO(ctx, snapshot))
			return
		}
		h.logger.WarnContext(ctx, "fetch roster failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, h.rosterToDTO(ctx, entries))
}

func (h *Handler) GetRosterPlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetRosterPlayer")
	defer span.End()

	playerID := strings.TrimSpace(r.PathValue("playerID"))
	entry, err := h.rosterService.Get(ctx, playerID)
	if err != nil {
		h.logger.WarnContext(ctx, "get roster player failed", "player_id", playerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	actor := actorProfile(ctx)
	canEdit := actor != nil && actor.CanEditPlayer(entry.Player.ID)
	writeSuccess(ctx, w, http.StatusOK, rosterEntryToDTO(ctx, entry, canEdit))
}

func (h *Handler) UpdatePlayerStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdatePlayerStats")
	defer span.End()

	playerID := strings.TrimSpace(r.PathValue("playerID"))
	league, err := parseLeague(r.PathValue("league"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req statLineRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	entries, err := h.rosterService.UpdateStatistics(ctx, actorProfile(ctx), playerID, league, req.toStatLine())
	if err != nil {
		h.logger.WarnContext(ctx, "update player stats failed", "player_id", playerID, "league", league, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, h.rosterToDTO(ctx, entries))
}

func (h *Handler) UpdateAllPlayerStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateAllPlayerStats")
	defer span.End()

	playerID := strings.TrimSpace(r.PathValue("playerID"))
	var req updateAllStatsRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	entries, err := h.rosterService.UpdateAllStatistics(ctx, actorProfile(ctx), playerID, req.EAFC.toStatLine(), req.Competitive.toStatLine())
	if err != nil {
		h.logger.WarnContext(ctx, "update all player stats failed", "player_id", playerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, h.rosterToDTO(ctx, entries))
}

func (h *Handler) rosterToDTO(ctx context.Context, entries []usecase.RosterEntry) []rosterEntryDTO {
	ctx, span := startSpan(ctx, "httpapi.Handler.rosterToDTO")
	defer span.End()

	actor := actorProfile(ctx)
	items := make([]rosterEntryDTO, 0, len(entries))
	for _, entry := range entries {
		canEdit := actor != nil && actor.CanEditPlayer(entry.Player.ID)
		items = append(items, rosterEntryToDTO(ctx, entry, canEdit))
	}
	return items
}

func actorProfile(ctx context.Context) *user.Profile {
	identity, ok := identityFromContext(ctx)
	if !ok {
		return nil
	}
	return identity.Profile
}

func parseLeague(raw string) (playerstats.League, error) {
	league := playerstats.League(strings.ToLower(strings.TrimSpace(raw)))
	if _, ok := playerstats.AllLeagues[league]; !ok {
		return "", fmt.Errorf("%w: unknown league %q", usecase.ErrInvalidInput, raw)
	}
	return league, nil
}

type statLineRequest struct {
	Appearances int     `json:"appearances" validate:"gte=0"`
	Goals       int     `json:"goals" validate:"gte=0"`
	Assists     int     `json:"assists" validate:"gte=0"`
	CleanSheets int     `json:"cleanSheets" validate:"gte=0"`
	MOTMAwards  int     `json:"motmAwards" validate:"gte=0"`
	Rating      float64 `json:"rating" validate:"gte=0,lte=10"`
}

func (r statLineRequest) toStatLine() playerstats.StatLine {
	return playerstats.StatLine{
		Appearances: r.Appearances,
		Goals:       r.Goals,
		Assists:     r.Assists,
		CleanSheets: r.CleanSheets,
		MOTMAwards:  r.MOTMAwards,
		Rating:      r.Rating,
	}
}

type updateAllStatsRequest struct {
	EAFC        statLineRequest `json:"eafc"`
	Competitive statLineRequest `json:"competitive"`
}
