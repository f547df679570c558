package brackets

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/Dosada05/tournament-results/models"
)

// BalancedGenerator assigns every participant exactly GamesPerParticipant
// distinct opponents.
//
// It is a greedy heuristic, not a complete constraint solver: candidate pairs
// are shuffled and accepted while both sides still need games, with no
// backtracking. A scan can therefore fail even when a valid schedule exists.
// WithMaxAttempts lets callers re-shuffle and rescan; by default a single
// attempt is made.
// MaxBalancedParticipants bounds the candidate pair list Generate builds up
// front (n(n-1)/2 pairs).
const MaxBalancedParticipants = 1000

type BalancedGenerator struct {
	rng         *rand.Rand
	maxAttempts int
}

type BalancedOption func(*BalancedGenerator)

// WithSeed makes the output reproducible.
func WithSeed(seed int64) BalancedOption {
	return func(g *BalancedGenerator) {
		g.rng = rand.New(rand.NewSource(seed))
	}
}

func WithRand(rng *rand.Rand) BalancedOption {
	return func(g *BalancedGenerator) {
		if rng != nil {
			g.rng = rng
		}
	}
}

func WithMaxAttempts(n int) BalancedOption {
	return func(g *BalancedGenerator) {
		if n > 0 {
			g.maxAttempts = n
		}
	}
}

func NewBalancedGenerator(opts ...BalancedOption) *BalancedGenerator {
	g := &BalancedGenerator{
		rng:         rand.New(rand.NewSource(time.Now().UnixNano())),
		maxAttempts: 1,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

func (g *BalancedGenerator) GetName() string {
	return "Balanced"
}

// ParticipantNames returns Team1..TeamN for count-only schedules.
func ParticipantNames(n int) []string {
	if n <= 0 {
		return []string{}
	}
	names := make([]string, n)
	for i := range names {
		names[i] = fmt.Sprintf("Team%d", i+1)
	}
	return names
}

// Generate returns a randomized pairing set in which every participant plays
// exactly params.GamesPerParticipant games, or ErrInfeasibleSchedule.
func (g *BalancedGenerator) Generate(ctx context.Context, params GenerateScheduleParams) (models.PairingSet, error) {
	participants := params.Participants
	n, k := len(participants), params.GamesPerParticipant

	if n > MaxBalancedParticipants {
		return nil, fmt.Errorf("%w: %d participants, limit %d", ErrInvalidScheduleParams, n, MaxBalancedParticipants)
	}
	if err := validateParticipants(participants); err != nil {
		return nil, err
	}
	if k < 0 {
		return nil, fmt.Errorf("%w: games per participant must not be negative, got %d", ErrInvalidScheduleParams, k)
	}
	if k >= n && !(k == 0 && n == 0) {
		return nil, fmt.Errorf("%w: each participant must play fewer games (%d) than the number of participants (%d)", ErrInfeasibleSchedule, k, n)
	}
	if k == 0 {
		return models.PairingSet{}, nil
	}

	candidates := make([]models.Pairing, 0, n*(n-1)/2)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			candidates = append(candidates, models.Pairing{A: participants[i], B: participants[j]})
		}
	}

	for attempt := 1; attempt <= g.maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		g.rng.Shuffle(len(candidates), func(i, j int) {
			candidates[i], candidates[j] = candidates[j], candidates[i]
		})
		if set, ok := scanBalanced(candidates, participants, k); ok {
			return set, nil
		}
	}

	return nil, fmt.Errorf("%w: could not give each of %d participants exactly %d games after %d attempt(s)",
		ErrInfeasibleSchedule, n, k, g.maxAttempts)
}

// scanBalanced runs one greedy pass over the shuffled candidates and reports
// whether every participant ended with exactly k games.
func scanBalanced(candidates []models.Pairing, participants []string, k int) (models.PairingSet, bool) {
	counts := make(map[string]int, len(participants))
	for _, p := range participants {
		counts[p] = 0
	}
	pending := len(participants)
	set := make(models.PairingSet, 0, len(participants)*k/2)

	for _, c := range candidates {
		if pending == 0 {
			break
		}
		if counts[c.A] >= k || counts[c.B] >= k {
			continue
		}
		set = append(set, c)
		for _, p := range []string{c.A, c.B} {
			counts[p]++
			if counts[p] == k {
				pending--
			}
		}
	}

	for _, c := range counts {
		if c != k {
			return nil, false
		}
	}
	return set, true
}

func validateParticipants(participants []string) error {
	seen := make(map[string]bool, len(participants))
	for _, p := range participants {
		if strings.TrimSpace(p) == "" {
			return fmt.Errorf("%w: participant name must not be empty", ErrInvalidScheduleParams)
		}
		if seen[p] {
			return fmt.Errorf("%w: duplicate participant %q", ErrInvalidScheduleParams, p)
		}
		seen[p] = true
	}
	return nil
}
