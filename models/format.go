package models

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ScoringMode selects how cumulative standings are computed.
type ScoringMode string

const (
	// ScoringBracket awards placement points per sport (3/2/1/0).
	ScoringBracket ScoringMode = "bracket"
	// ScoringRoundRobin awards 3 per win and 1 per draw to each side.
	ScoringRoundRobin ScoringMode = "round_robin"
	// ScoringPlayers is round robin credited to each player of a pair.
	ScoringPlayers ScoringMode = "players"
)

func ParseScoringMode(s string) (ScoringMode, error) {
	switch mode := ScoringMode(strings.ToLower(strings.TrimSpace(s))); mode {
	case ScoringBracket, ScoringRoundRobin, ScoringPlayers:
		return mode, nil
	case "":
		return ScoringBracket, nil
	}
	return "", fmt.Errorf("unknown scoring mode %q", s)
}

// RoundRobinSettings defines specific settings for a round-robin schedule.
type RoundRobinSettings struct {
	NumberOfRounds int `json:"number_of_rounds"` // 1 for single round-robin, 2 for double
}

// ParseRoundRobinSettings falls back to a single round on empty or invalid input.
func ParseRoundRobinSettings(raw string) RoundRobinSettings {
	settings := RoundRobinSettings{NumberOfRounds: 1}
	if strings.TrimSpace(raw) == "" {
		return settings
	}
	var parsed RoundRobinSettings
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return settings
	}
	if parsed.NumberOfRounds == 1 || parsed.NumberOfRounds == 2 {
		settings.NumberOfRounds = parsed.NumberOfRounds
	}
	return settings
}
