package memory

import (
	"time"

	"github.com/realbreda/clubsite/internal/domain/player"
	"github.com/realbreda/clubsite/internal/domain/playerstats"
	"github.com/realbreda/clubsite/internal/domain/user"
)

var seedCreatedAt = time.Date(2025, 8, 1, 12, 0, 0, 0, time.UTC)

func SeedPlayers() []player.Player {
	return []player.Player{
		{ID: "pl-001", Name: "Daan van Dijk", Position: player.PositionGoalkeeper, JerseyNumber: 1, OwnerID: "usr-002", CreatedAt: seedCreatedAt},
		{ID: "pl-002", Name: "Thijs Verhoeven", Position: player.PositionDefender, JerseyNumber: 4, OwnerID: "usr-003", CreatedAt: seedCreatedAt},
		{ID: "pl-003", Name: "Ruben Smit", Position: player.PositionDefender, JerseyNumber: 5, CreatedAt: seedCreatedAt},
		{ID: "pl-004", Name: "Lars Bakker", Position: player.PositionMidfielder, JerseyNumber: 8, CreatedAt: seedCreatedAt},
		{ID: "pl-005", Name: "Mika de Groot", Position: player.PositionForward, JerseyNumber: 9, OwnerID: "usr-004", CreatedAt: seedCreatedAt},
		{ID: "pl-006", Name: "Sven Janssen", Position: player.PositionMidfielder, JerseyNumber: 10, CreatedAt: seedCreatedAt},
		{ID: "pl-007", Name: "Niels Visser", Position: player.PositionForward, JerseyNumber: 11, CreatedAt: seedCreatedAt},
	}
}

func SeedUsers() []user.Profile {
	return []user.Profile{
		{ID: "usr-001", Username: "beheer", DiscordID: "beheer#0001", Role: user.RoleAdmin, CreatedAt: seedCreatedAt},
		{ID: "usr-002", Username: "daan", DiscordID: "daan#1931", Role: user.RoleOwner, OwnedPlayerID: "pl-001", CreatedAt: seedCreatedAt},
		{ID: "usr-003", Username: "thijs", DiscordID: "thijs#0404", Role: user.RoleOwner, OwnedPlayerID: "pl-002", CreatedAt: seedCreatedAt},
		{ID: "usr-004", Username: "mika", DiscordID: "mika#0909", Role: user.RoleOwner, OwnedPlayerID: "pl-005", CreatedAt: seedCreatedAt},
		{ID: "usr-005", Username: "supporter", Role: user.RoleStandard, CreatedAt: seedCreatedAt},
	}
}

func SeedPlayerStats() []playerstats.Row {
	return []playerstats.Row{
		{PlayerID: "pl-001", League: playerstats.LeagueEAFC, Line: playerstats.StatLine{Appearances: 14, CleanSheets: 6, MOTMAwards: 2, Rating: 7.4}, UpdatedAt: seedCreatedAt},
		{PlayerID: "pl-001", League: playerstats.LeagueCompetitive, Line: playerstats.StatLine{Appearances: 8, CleanSheets: 3, MOTMAwards: 1, Rating: 7.1}, UpdatedAt: seedCreatedAt},
		{PlayerID: "pl-002", League: playerstats.LeagueEAFC, Line: playerstats.StatLine{Appearances: 13, Goals: 1, Assists: 2, CleanSheets: 5, Rating: 7.0}, UpdatedAt: seedCreatedAt},
		{PlayerID: "pl-004", League: playerstats.LeagueEAFC, Line: playerstats.StatLine{Appearances: 12, Goals: 4, Assists: 6, MOTMAwards: 1, Rating: 7.6}, UpdatedAt: seedCreatedAt},
		{PlayerID: "pl-005", League: playerstats.LeagueEAFC, Line: playerstats.StatLine{Appearances: 14, Goals: 11, Assists: 3, MOTMAwards: 4, Rating: 8.2}, UpdatedAt: seedCreatedAt},
		{PlayerID: "pl-005", League: playerstats.LeagueCompetitive, Line: playerstats.StatLine{Appearances: 7, Goals: 5, Assists: 1, MOTMAwards: 2, Rating: 7.9}, UpdatedAt: seedCreatedAt},
		{PlayerID: "pl-006", League: playerstats.LeagueEAFC, Line: playerstats.StatLine{Appearances: 14, Goals: 6, Assists: 9, MOTMAwards: 3, Rating: 7.8}, UpdatedAt: seedCreatedAt},
		{PlayerID: "pl-007", League: playerstats.LeagueCompetitive, Line: playerstats.StatLine{Appearances: 9, Goals: 4, Assists: 2, Rating: 7.2}, UpdatedAt: seedCreatedAt},
	}
}
