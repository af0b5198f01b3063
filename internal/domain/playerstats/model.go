package playerstats

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// League is one of the two statistic namespaces tracked per player.
type League string

const (
	LeagueEAFC        League = "eafc"
	LeagueCompetitive League = "competitive"
)

var AllLeagues = map[League]struct{}{
	LeagueEAFC:        {},
	LeagueCompetitive: {},
}

// StatLine holds one league's counters for one player. A missing row is
// rendered as the zero value.
type StatLine struct {
	Appearances int
	Goals       int
	Assists     int
	CleanSheets int
	MOTMAwards  int
	Rating      float64
}

func (l StatLine) Validate() error {
	if l.Appearances < 0 || l.Goals < 0 || l.Assists < 0 || l.CleanSheets < 0 || l.MOTMAwards < 0 {
		return fmt.Errorf("stat counters must not be negative")
	}
	if l.Rating < 0 || l.Rating > 10 {
		return fmt.Errorf("rating must be within [0, 10]")
	}

	return nil
}

// Row is a persisted statistics record keyed by (player, league).
type Row struct {
	PlayerID  string
	League    League
	Line      StatLine
	UpdatedAt time.Time
}

func (r Row) Validate() error {
	if r.PlayerID == "" {
		return fmt.Errorf("player id is required")
	}
	if _, ok := AllLeagues[r.League]; !ok {
		return fmt.Errorf("invalid league: %s", r.League)
	}

	return r.Line.Validate()
}

// PlayerStats groups both league lines for one player.
type PlayerStats struct {
	EAFC        StatLine
	Competitive StatLine
}

func (s PlayerStats) ByLeague(league League) StatLine {
	if league == LeagueCompetitive {
		return s.Competitive
	}
	return s.EAFC
}

// ParseRating converts a numeric column scanned as text into a rating,
// defaulting to zero when the value is absent or malformed.
func ParseRating(raw string) float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0
	}

	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0
	}

	return value
}
