package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"
	"github.com/realbreda/clubsite/internal/domain/playerstats"
	"github.com/realbreda/clubsite/internal/platform/logging"
	"github.com/realbreda/clubsite/internal/usecase"
)

type Handler struct {
	rosterService  *usecase.RosterService
	statsService   *usecase.StatsService
	sessionService *usecase.SessionService
	logger         *logging.Logger
	validator      *validator.Validate
}

func NewHandler(
	rosterService *usecase.RosterService,
	statsService *usecase.StatsService,
	sessionService *usecase.SessionService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		rosterService:  rosterService,
		statsService:   statsService,
		sessionService: sessionService,
		logger:         logger,
		validator:      validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) decodeRequest(ctx context.Context, r *http.Request, out any) error {
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(out); err != nil {
		return fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}

	return h.validateRequest(ctx, out)
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

type statLineDTO struct {
	Appearances int     `json:"appearances"`
	Goals       int     `json:"goals"`
	Assists     int     `json:"assists"`
	CleanSheets int     `json:"cleanSheets"`
	MOTMAwards  int     `json:"motmAwards"`
	Rating      float64 `json:"rating"`
}

type rosterEntryDTO struct {
	ID              string      `json:"id"`
	Name            string      `json:"name"`
	Position        string      `json:"position"`
	JerseyNumber    int         `json:"jerseyNumber"`
	ProfileImageURL string      `json:"profileImageUrl,omitempty"`
	OwnerID         string      `json:"ownerId,omitempty"`
	EAFC            statLineDTO `json:"eafc"`
	Competitive     statLineDTO `json:"competitive"`
	CanEdit         bool        `json:"canEdit"`
	CreatedAtUTC    string      `json:"createdAtUtc"`
}

func statLineToDTO(line playerstats.StatLine) statLineDTO {
	return statLineDTO{
		Appearances: line.Appearances,
		Goals:       line.Goals,
		Assists:     line.Assists,
		CleanSheets: line.CleanSheets,
		MOTMAwards:  line.MOTMAwards,
		Rating:      line.Rating,
	}
}

func rosterEntryToDTO(ctx context.Context, entry usecase.RosterEntry, canEdit bool) rosterEntryDTO {
	ctx, span := startSpan(ctx, "httpapi.rosterEntryToDTO")
	defer span.End()

	return rosterEntryDTO{
		ID:              entry.Player.ID,
		Name:            entry.Player.Name,
		Position:        string(entry.Player.Position),
		JerseyNumber:    entry.Player.JerseyNumber,
		ProfileImageURL: entry.Player.ProfileImage,
		OwnerID:         entry.Player.OwnerID,
		EAFC:            statLineToDTO(entry.Stats.EAFC),
		Competitive:     statLineToDTO(entry.Stats.Competitive),
		CanEdit:         canEdit,
		CreatedAtUTC:    entry.Player.CreatedAt.UTC().Format(time.RFC3339),
	}
}
