package models

import "strings"

const pairSeparator = " & "

// PairName returns the participant name used for a two-player side.
func PairName(player1, player2 string) string {
	return strings.TrimSpace(player1) + pairSeparator + strings.TrimSpace(player2)
}

// SplitPair returns the players of a pair participant, or the name itself
// for a single team.
func SplitPair(participant string) []string {
	parts := strings.Split(participant, pairSeparator)
	players := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			players = append(players, p)
		}
	}
	return players
}
