package httpapi

import (
	"net/http"

	"github.com/realbreda/clubsite/internal/platform/logging"
)

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerPublicRoutes(mux *http.ServeMux, handler *Handler, resolver SessionResolver, logger *logging.Logger) {
	// Roster reads stay public; an identity only toggles the edit affordance.
	mux.Handle("GET /v1/roster", MaybeAuth(resolver, logger, http.HandlerFunc(handler.GetRoster)))
	mux.Handle("GET /v1/roster/{playerID}", MaybeAuth(resolver, logger, http.HandlerFunc(handler.GetRosterPlayer)))

	mux.HandleFunc("GET /v1/stats/totals", handler.GetTeamTotals)
	mux.HandleFunc("GET /v1/stats/leaderboard", handler.GetLeaderboard)
	mux.HandleFunc("GET /v1/stats/top-performers", handler.GetTopPerformers)

	mux.HandleFunc("POST /v1/auth/signup", handler.SignUp)
	mux.HandleFunc("POST /v1/auth/login", handler.Login)
	mux.HandleFunc("POST /v1/auth/logout", handler.Logout)
}

func registerAuthorizedRoutes(mux *http.ServeMux, handler *Handler, resolver SessionResolver) {
	mux.Handle("GET /v1/auth/me", RequireAuth(resolver, http.HandlerFunc(handler.Me)))
	mux.Handle("PUT /v1/roster/{playerID}/stats", RequireAuth(resolver, http.HandlerFunc(handler.UpdateAllPlayerStats)))
	mux.Handle("PUT /v1/roster/{playerID}/stats/{league}", RequireAuth(resolver, http.HandlerFunc(handler.UpdatePlayerStats)))
}
