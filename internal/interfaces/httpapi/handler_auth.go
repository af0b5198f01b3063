package httpapi

import (
	"context"
	"fmt"
	"net/http"

	"github.com/realbreda/clubsite/internal/usecase"
)

func (h *Handler) SignUp(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SignUp")
	defer span.End()

	var req signUpRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.sessionService.SignUp(ctx, req.Email, req.Password, req.Username)
	if err != nil {
		h.logger.WarnContext(ctx, "signup failed", "email", req.Email, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, authResultToDTO(ctx, result))
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Login")
	defer span.End()

	var req loginRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.sessionService.Login(ctx, req.Email, req.Password)
	if err != nil {
		h.logger.WarnContext(ctx, "login failed", "email", req.Email, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, authResultToDTO(ctx, result))
}

// Logout accepts the bearer token directly instead of going through
// RequireAuth so an already expired session can still be signed out.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Logout")
	defer span.End()

	token, err := bearerToken(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	if err := h.sessionService.Logout(ctx, token); err != nil {
		h.logger.WarnContext(ctx, "logout failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "signed out"})
}

func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Me")
	defer span.End()

	identity, ok := identityFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: identity is missing from request context", usecase.ErrUnauthorized))
		return
	}

	dto := identityDTO{
		UserID: identity.Session.UserID,
		Email:  identity.Session.Email,
	}
	if identity.Profile != nil {
		dto.Username = identity.Profile.Username
		dto.Role = string(identity.Profile.Role)
		dto.OwnedPlayerID = identity.Profile.OwnedPlayerID
	}

	writeSuccess(ctx, w, http.StatusOK, dto)
}

type signUpRequest struct {
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=6"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=Password"`
	Username        string `json:"username" validate:"required,min=3,max=24"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type authResultDTO struct {
	OK          bool   `json:"ok"`
	Message     string `json:"message,omitempty"`
	AccessToken string `json:"accessToken,omitempty"`
	UserID      string `json:"userId,omitempty"`
	Email       string `json:"email,omitempty"`
}

type identityDTO struct {
	UserID        string `json:"userId"`
	Email         string `json:"email"`
	Username      string `json:"username,omitempty"`
	Role          string `json:"role,omitempty"`
	OwnedPlayerID string `json:"ownedPlayerId,omitempty"`
}

func authResultToDTO(ctx context.Context, result usecase.AuthResult) authResultDTO {
	ctx, span := startSpan(ctx, "httpapi.authResultToDTO")
	defer span.End()

	dto := authResultDTO{
		OK:      result.OK,
		Message: result.Message,
	}
	if result.OK {
		dto.AccessToken = result.Session.AccessToken
		dto.UserID = result.Session.UserID
		dto.Email = result.Session.Email
	}
	return dto
}
