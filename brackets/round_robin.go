package brackets

import (
	"context"
	"fmt"

	"github.com/Dosada05/tournament-results/models"
)

type RoundRobinGenerator struct {
	settings models.RoundRobinSettings
}

func NewRoundRobinGenerator(settings models.RoundRobinSettings) PairingGenerator {
	if settings.NumberOfRounds != 2 {
		settings.NumberOfRounds = 1
	}
	return &RoundRobinGenerator{settings: settings}
}

func (g *RoundRobinGenerator) GetName() string {
	return "RoundRobin"
}

// Generate creates pairings for a round-robin schedule.
// For a single round-robin, each participant plays every other participant once.
// For a double round-robin, they play each other twice with sides swapped.
// GamesPerParticipant is ignored: it is always (n-1) per leg.
func (g *RoundRobinGenerator) Generate(ctx context.Context, params GenerateScheduleParams) (models.PairingSet, error) {
	participants := params.Participants
	if err := validateParticipants(participants); err != nil {
		return nil, err
	}
	if len(participants) < 2 {
		return nil, fmt.Errorf("%w: round robin needs at least 2 participants, got %d", ErrInvalidScheduleParams, len(participants))
	}

	n := len(participants)
	firstLeg := make(models.PairingSet, 0, n*(n-1)/2)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			firstLeg = append(firstLeg, models.Pairing{A: participants[i], B: participants[j]})
		}
	}
	if g.settings.NumberOfRounds == 1 {
		return firstLeg, nil
	}

	// Second leg follows the whole first leg so the same pair never plays back to back.
	set := make(models.PairingSet, 0, 2*len(firstLeg))
	set = append(set, firstLeg...)
	for _, p := range firstLeg {
		set = append(set, models.Pairing{A: p.B, B: p.A})
	}
	return set, nil
}
