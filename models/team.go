package models

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Team is a registry entry. Points is the cumulative standing.
type Team struct {
	ID        int       `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Color     string    `json:"color" db:"color"`
	Points    int       `json:"points" db:"points"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

const DefaultTeamColor = "#4caf50"

var ErrInvalidTeam = errors.New("invalid team")

func NewTeam(name, color string) (Team, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Team{}, fmt.Errorf("%w: team name is required", ErrInvalidTeam)
	}
	color = strings.TrimSpace(color)
	if color == "" {
		color = DefaultTeamColor
	}
	return Team{Name: name, Color: color}, nil
}
