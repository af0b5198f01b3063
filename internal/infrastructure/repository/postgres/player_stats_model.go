package postgres

import (
	"strconv"
	"time"

	"github.com/realbreda/clubsite/internal/domain/playerstats"
)

type playerStatsTableModel struct {
	PlayerID    string    `db:"player_id"`
	League      string    `db:"league"`
	Appearances int       `db:"appearances"`
	Goals       int       `db:"goals"`
	Assists     int       `db:"assists"`
	CleanSheets int       `db:"clean_sheets"`
	MOTMAwards  int       `db:"motm_awards"`
	Rating      string    `db:"rating"`
	UpdatedAt   time.Time `db:"updated_at"`
}

func (m playerStatsTableModel) toDomain() playerstats.Row {
	return playerstats.Row{
		PlayerID: m.PlayerID,
		League:   playerstats.League(m.League),
		Line: playerstats.StatLine{
			Appearances: m.Appearances,
			Goals:       m.Goals,
			Assists:     m.Assists,
			CleanSheets: m.CleanSheets,
			MOTMAwards:  m.MOTMAwards,
			Rating:      playerstats.ParseRating(m.Rating),
		},
		UpdatedAt: m.UpdatedAt,
	}
}

type playerStatsInsertModel struct {
	PlayerID    string    `db:"player_id"`
	League      string    `db:"league"`
	Appearances int       `db:"appearances"`
	Goals       int       `db:"goals"`
	Assists     int       `db:"assists"`
	CleanSheets int       `db:"clean_sheets"`
	MOTMAwards  int       `db:"motm_awards"`
	Rating      string    `db:"rating"`
	UpdatedAt   time.Time `db:"updated_at"`
}

func newPlayerStatsInsertModel(playerID string, league playerstats.League, line playerstats.StatLine, updatedAt time.Time) playerStatsInsertModel {
	return playerStatsInsertModel{
		PlayerID:    playerID,
		League:      string(league),
		Appearances: line.Appearances,
		Goals:       line.Goals,
		Assists:     line.Assists,
		CleanSheets: line.CleanSheets,
		MOTMAwards:  line.MOTMAwards,
		Rating:      strconv.FormatFloat(line.Rating, 'f', 2, 64),
		UpdatedAt:   updatedAt,
	}
}
