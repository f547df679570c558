package brackets

import (
	"context"
	"fmt"
	"strings"

	"github.com/Dosada05/tournament-results/models"
)

// BracketMatch is one slot of a generated bracket. Slots whose participants
// depend on earlier results carry source match UIDs instead of names.
type BracketMatch struct {
	UID   string
	Stage models.BracketStage
	Sport string

	ParticipantA string
	ParticipantB string

	SourceMatchAUID *string
	SourceMatchBUID *string
	// TakesLosers is set for the third-place slot, which is fed by the
	// semifinal losers rather than the winners.
	TakesLosers bool

	IsPlaceholder bool
}

const bracketSize = 4

// SingleEliminationGenerator seeds four participants into the two semifinals
// of a sport (1 vs 4, 2 vs 3) and lays out the final and third-place slots.
type SingleEliminationGenerator struct{}

func NewSingleEliminationGenerator() BracketGenerator {
	return &SingleEliminationGenerator{}
}

func (g *SingleEliminationGenerator) GetName() string {
	return "SingleElimination"
}

func (g *SingleEliminationGenerator) GenerateBracket(ctx context.Context, params GenerateBracketParams) ([]*BracketMatch, error) {
	sport := strings.TrimSpace(params.Sport)
	if sport == "" {
		return nil, fmt.Errorf("%w: sport is required", ErrInvalidBracketParams)
	}
	seeds := params.Participants
	if len(seeds) != bracketSize {
		return nil, fmt.Errorf("%w: a bracket needs exactly %d participants, got %d", ErrInvalidBracketParams, bracketSize, len(seeds))
	}
	if err := validateParticipants(seeds); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBracketParams, err)
	}

	semi1 := &BracketMatch{UID: "SF1", Stage: models.StageSemifinal, Sport: sport, ParticipantA: seeds[0], ParticipantB: seeds[3]}
	semi2 := &BracketMatch{UID: "SF2", Stage: models.StageSemifinal, Sport: sport, ParticipantA: seeds[1], ParticipantB: seeds[2]}

	final := &BracketMatch{
		UID:             "F",
		Stage:           models.StageFinal,
		Sport:           sport,
		SourceMatchAUID: &semi1.UID,
		SourceMatchBUID: &semi2.UID,
		IsPlaceholder:   true,
	}
	third := &BracketMatch{
		UID:             "TP",
		Stage:           models.StageThirdPlace,
		Sport:           sport,
		SourceMatchAUID: &semi1.UID,
		SourceMatchBUID: &semi2.UID,
		TakesLosers:     true,
		IsPlaceholder:   true,
	}

	return []*BracketMatch{semi1, semi2, final, third}, nil
}

// Advance fills the placeholder slots from the finished semifinals. It
// returns the final and third-place matches ready to be scheduled; ok is false
// while either semifinal is unfinished.
func Advance(bracket []*BracketMatch, semifinals []models.Match) (final, third models.Match, ok bool, err error) {
	finished := make([]models.Match, 0, 2)
	for _, m := range semifinals {
		if m.Stage == models.StageSemifinal && m.IsFinished() {
			finished = append(finished, m)
		}
	}
	if len(finished) < 2 {
		return models.Match{}, models.Match{}, false, nil
	}

	results := make(map[string][2]string, 2)
	for _, bm := range bracket {
		if bm.Stage != models.StageSemifinal {
			continue
		}
		m, found := findSemifinal(finished, bm)
		if !found {
			return models.Match{}, models.Match{}, false, fmt.Errorf("%w: semifinal %s (%s vs %s) has no finished result",
				ErrInconsistentBracket, bm.UID, bm.ParticipantA, bm.ParticipantB)
		}
		winner, loser, err := decide(m)
		if err != nil {
			return models.Match{}, models.Match{}, false, err
		}
		results[bm.UID] = [2]string{winner, loser}
	}

	for _, bm := range bracket {
		if !bm.IsPlaceholder || bm.SourceMatchAUID == nil || bm.SourceMatchBUID == nil {
			continue
		}
		side := 0
		if bm.TakesLosers {
			side = 1
		}
		a, b := results[*bm.SourceMatchAUID][side], results[*bm.SourceMatchBUID][side]
		m, buildErr := models.NewMatch(a, b, bm.Sport, bm.Stage)
		if buildErr != nil {
			return models.Match{}, models.Match{}, false, fmt.Errorf("%w: %v", ErrInconsistentBracket, buildErr)
		}
		switch bm.Stage {
		case models.StageFinal:
			final = m
		case models.StageThirdPlace:
			third = m
		}
	}
	return final, third, true, nil
}

// BracketFromSemifinals rebuilds the bracket layout from stored semifinals.
func BracketFromSemifinals(ctx context.Context, sport string, semifinals []models.Match) ([]*BracketMatch, error) {
	semis := make([]models.Match, 0, 2)
	for _, m := range semifinals {
		if m.Stage == models.StageSemifinal {
			semis = append(semis, m)
		}
	}
	if len(semis) != 2 {
		return nil, fmt.Errorf("%w: sport %q has %d semifinals, want 2", ErrInvalidBracketParams, sport, len(semis))
	}
	// SF1 holds seeds 1 and 4, SF2 seeds 2 and 3.
	return NewSingleEliminationGenerator().GenerateBracket(ctx, GenerateBracketParams{
		Sport: sport,
		Participants: []string{
			semis[0].ParticipantA, semis[1].ParticipantA, semis[1].ParticipantB, semis[0].ParticipantB,
		},
	})
}

func findSemifinal(finished []models.Match, bm *BracketMatch) (models.Match, bool) {
	for _, m := range finished {
		if (m.ParticipantA == bm.ParticipantA && m.ParticipantB == bm.ParticipantB) ||
			(m.ParticipantA == bm.ParticipantB && m.ParticipantB == bm.ParticipantA) {
			return m, true
		}
	}
	return models.Match{}, false
}
