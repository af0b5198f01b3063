package player

import (
	"fmt"
	"time"
)

// Position represents the football position categories shown on the squad page.
type Position string

const (
	PositionGoalkeeper Position = "GK"
	PositionDefender   Position = "DEF"
	PositionMidfielder Position = "MID"
	PositionForward    Position = "FWD"
)

var AllPositions = map[Position]struct{}{
	PositionGoalkeeper: {},
	PositionDefender:   {},
	PositionMidfielder: {},
	PositionForward:    {},
}

// Player is a roster member of the club.
type Player struct {
	ID           string
	Name         string
	Position     Position
	JerseyNumber int
	ProfileImage string
	OwnerID      string
	CreatedAt    time.Time
}

func (p Player) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("player id is required")
	}
	if p.Name == "" {
		return fmt.Errorf("player name is required")
	}
	if _, ok := AllPositions[p.Position]; !ok {
		return fmt.Errorf("invalid player position: %s", p.Position)
	}
	if p.JerseyNumber < 0 {
		return fmt.Errorf("player jersey number must not be negative")
	}

	return nil
}
