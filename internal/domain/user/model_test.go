package user

import "testing"

func TestProfileCanEditPlayer(t *testing.T) {
	cases := []struct {
		name     string
		profile  Profile
		playerID string
		want     bool
	}{
		{"admin edits anyone", Profile{Role: RoleAdmin}, "p1", true},
		{"owner edits owned player", Profile{Role: RoleOwner, OwnedPlayerID: "p1"}, "p1", true},
		{"owner cannot edit other player", Profile{Role: RoleOwner, OwnedPlayerID: "p1"}, "p2", false},
		{"owner without owned player", Profile{Role: RoleOwner}, "p1", false},
		{"standard user never edits", Profile{Role: RoleStandard, OwnedPlayerID: "p1"}, "p1", false},
		{"empty target", Profile{Role: RoleAdmin}, "", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.profile.CanEditPlayer(tc.playerID); got != tc.want {
				t.Fatalf("CanEditPlayer(%q) = %v, want %v", tc.playerID, got, tc.want)
			}
		})
	}
}
