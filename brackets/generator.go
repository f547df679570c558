package brackets

import (
	"context"
	"errors"

	"github.com/Dosada05/tournament-results/models"
)

var (
	ErrInfeasibleSchedule    = errors.New("infeasible schedule")
	ErrInvalidScheduleParams = errors.New("invalid schedule parameters")
	ErrAmbiguousResult       = errors.New("ambiguous bracket result")
	ErrInconsistentBracket   = errors.New("inconsistent bracket")
	ErrInvalidBracketParams  = errors.New("invalid bracket parameters")
)

type GenerateScheduleParams struct {
	Participants        []string
	GamesPerParticipant int
}

// PairingGenerator produces the pairings for a schedule.
type PairingGenerator interface {
	Generate(ctx context.Context, params GenerateScheduleParams) (models.PairingSet, error)

	GetName() string
}

type GenerateBracketParams struct {
	Sport        string
	Participants []string
}

type BracketGenerator interface {
	GenerateBracket(ctx context.Context, params GenerateBracketParams) ([]*BracketMatch, error)

	GetName() string
}
