package models

import "time"

// Standing is one row of the cumulative rankings.
type Standing struct {
	Rank        int       `json:"rank"`
	Team        string    `json:"team"`
	Color       string    `json:"color"`
	Points      int       `json:"points"`
	GamesPlayed int       `json:"games_played"`
	Wins        int       `json:"wins"`
	Draws       int       `json:"draws"`
	Losses      int       `json:"losses"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Progress is the share of the maximum possible points (3 per match) as a
// percentage, used by the report's progress bars.
func (s Standing) Progress() float64 {
	games := s.GamesPlayed
	if games == 0 {
		games = 1
	}
	pct := float64(s.Points) / float64(games*3) * 100
	if pct > 100 {
		return 100
	}
	return pct
}
