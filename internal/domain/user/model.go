package user

import "time"

// Role gates stat editing. It is authoritative; the UI affordance alone is
// never trusted.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleOwner    Role = "owner"
	RoleStandard Role = "user"
)

var AllRoles = map[Role]struct{}{
	RoleAdmin:    {},
	RoleOwner:    {},
	RoleStandard: {},
}

// Profile is a resolved user row from the users table.
type Profile struct {
	ID            string
	Username      string
	DiscordID     string
	Role          Role
	OwnedPlayerID string
	CreatedAt     time.Time
}

// CanEditPlayer reports whether this profile may mutate the given player's
// statistics. Admins may edit anyone; owners only the player they own.
func (p Profile) CanEditPlayer(playerID string) bool {
	if playerID == "" {
		return false
	}

	switch p.Role {
	case RoleAdmin:
		return true
	case RoleOwner:
		return p.OwnedPlayerID != "" && p.OwnedPlayerID == playerID
	default:
		return false
	}
}

// Session is an authenticated session issued by the hosted auth service.
// A valid session does not guarantee a profile row exists yet.
type Session struct {
	AccessToken string
	UserID      string
	Email       string
}
