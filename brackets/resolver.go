package brackets

import (
	"fmt"

	"github.com/Dosada05/tournament-results/models"
)

// Resolver derives a 1st-4th placement from one sport's finished bracket
// matches and converts it into points.
type Resolver struct {
	award models.PointsAward
}

func NewResolver(award models.PointsAward) *Resolver {
	if award == nil {
		award = models.DefaultPointsAward
	}
	return &Resolver{award: award}
}

// Resolve expects the matches of a single sport. ok is false while the bracket
// is incomplete: fewer than two finished semifinals, or no finished final or
// third-place match. Incomplete is a normal state, not an error.
func (r *Resolver) Resolve(matches []models.Match) (models.Placement, bool, error) {
	var semis, finals, thirds []models.Match
	for _, m := range matches {
		if !m.IsFinished() {
			continue
		}
		switch m.Stage {
		case models.StageSemifinal:
			semis = append(semis, m)
		case models.StageFinal:
			finals = append(finals, m)
		case models.StageThirdPlace:
			thirds = append(thirds, m)
		}
	}

	if len(semis) < 2 || len(finals) < 1 || len(thirds) < 1 {
		return models.Placement{}, false, nil
	}

	placement := models.Placement{
		Sport:            finals[0].Sport,
		SemifinalWinners: make([]string, 0, 2),
		SemifinalLosers:  make([]string, 0, 2),
	}
	for _, m := range semis[:2] {
		winner, loser, err := decide(m)
		if err != nil {
			return models.Placement{}, false, err
		}
		placement.SemifinalWinners = append(placement.SemifinalWinners, winner)
		placement.SemifinalLosers = append(placement.SemifinalLosers, loser)
	}

	var err error
	if placement.First, placement.Second, err = decide(finals[0]); err != nil {
		return models.Placement{}, false, err
	}
	if placement.Third, placement.Fourth, err = decide(thirds[0]); err != nil {
		return models.Placement{}, false, err
	}

	if len(placement.Ranks()) != 4 {
		return models.Placement{}, false, fmt.Errorf("%w: sport %q places the same participant twice (%s, %s, %s, %s)",
			ErrInconsistentBracket, placement.Sport, placement.First, placement.Second, placement.Third, placement.Fourth)
	}
	return placement, true, nil
}

// ResolveSport filters matches by sport before resolving.
func (r *Resolver) ResolveSport(sport string, matches []models.Match) (models.Placement, bool, error) {
	sportMatches := make([]models.Match, 0, 4)
	for _, m := range matches {
		if m.Sport == sport {
			sportMatches = append(sportMatches, m)
		}
	}
	return r.Resolve(sportMatches)
}

func (r *Resolver) PointDeltas(placement models.Placement) map[string]int {
	return placement.Deltas(r.award)
}

func decide(m models.Match) (winner, loser string, err error) {
	winner, ok := m.Winner()
	if !ok {
		return "", "", fmt.Errorf("%w: %s %s match %s vs %s ended %d-%d",
			ErrAmbiguousResult, m.Sport, m.Stage, m.ParticipantA, m.ParticipantB, m.ScoreA, m.ScoreB)
	}
	loser, _ = m.Loser()
	return winner, loser, nil
}
