package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Dosada05/tournament-results/brackets"
	"github.com/Dosada05/tournament-results/models"
	"github.com/Dosada05/tournament-results/repositories"
)

const (
	FormatBalanced   = "balanced"
	FormatRoundRobin = "round_robin"

	maxImportedMatches      = 1000
	maxScheduleParticipants = brackets.MaxBalancedParticipants
)

type ScheduleService interface {
	GenerateSchedule(ctx context.Context, input GenerateScheduleInput) (*ScheduleResult, error)
}

// GenerateScheduleInput selects participants in order of precedence: explicit
// names, a count (Team1..TeamN), or the registered teams.
type GenerateScheduleInput struct {
	Participants        []string `json:"participants,omitempty"`
	Teams               int      `json:"teams,omitempty"`
	GamesPerParticipant int      `json:"games_per_participant"`
	Format              string   `json:"format,omitempty"`
	Seed                *int64   `json:"seed,omitempty"`
	// Import stores the pairings as scheduled matches of Sport.
	Import bool   `json:"import,omitempty"`
	Sport  string `json:"sport,omitempty"`
}

type ScheduleResult struct {
	Generator string            `json:"generator"`
	Pairings  models.PairingSet `json:"pairings"`
	Matches   []models.Match    `json:"matches,omitempty"`
}

type scheduleService struct {
	teamRepo    repositories.TeamRepository
	matchRepo   repositories.MatchRepository
	maxAttempts int
	roundRobin  models.RoundRobinSettings
	logger      *slog.Logger
}

func NewScheduleService(
	teamRepo repositories.TeamRepository,
	matchRepo repositories.MatchRepository,
	maxAttempts int,
	roundRobin models.RoundRobinSettings,
	logger *slog.Logger,
) ScheduleService {
	return &scheduleService{
		teamRepo:    teamRepo,
		matchRepo:   matchRepo,
		maxAttempts: maxAttempts,
		roundRobin:  roundRobin,
		logger:      logger,
	}
}

func (s *scheduleService) generator(format string, seed *int64) (brackets.PairingGenerator, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", FormatBalanced:
		opts := []brackets.BalancedOption{brackets.WithMaxAttempts(s.maxAttempts)}
		if seed != nil {
			opts = append(opts, brackets.WithSeed(*seed))
		}
		return brackets.NewBalancedGenerator(opts...), nil
	case FormatRoundRobin:
		return brackets.NewRoundRobinGenerator(s.roundRobin), nil
	}
	return nil, fmt.Errorf("%w: unknown schedule format %q", ErrValidationFailed, format)
}

func (s *scheduleService) participants(ctx context.Context, input GenerateScheduleInput) ([]string, error) {
	if len(input.Participants) > maxScheduleParticipants || input.Teams > maxScheduleParticipants {
		return nil, fmt.Errorf("%w: at most %d participants", brackets.ErrInvalidScheduleParams, maxScheduleParticipants)
	}
	if len(input.Participants) > 0 {
		names := make([]string, len(input.Participants))
		for i, p := range input.Participants {
			names[i] = strings.TrimSpace(p)
		}
		return names, nil
	}
	if input.Teams > 0 {
		return brackets.ParticipantNames(input.Teams), nil
	}
	teams, err := s.teamRepo.List(ctx)
	if err != nil {
		return nil, handleRepositoryError(err, "load teams")
	}
	names := make([]string, 0, len(teams))
	for _, t := range teams {
		names = append(names, t.Name)
	}
	return names, nil
}

func (s *scheduleService) GenerateSchedule(ctx context.Context, input GenerateScheduleInput) (*ScheduleResult, error) {
	if input.Import && strings.TrimSpace(input.Sport) == "" {
		return nil, ErrSportRequired
	}
	gen, err := s.generator(input.Format, input.Seed)
	if err != nil {
		return nil, err
	}
	participants, err := s.participants(ctx, input)
	if err != nil {
		return nil, err
	}

	pairings, err := gen.Generate(ctx, brackets.GenerateScheduleParams{
		Participants:        participants,
		GamesPerParticipant: input.GamesPerParticipant,
	})
	if err != nil {
		s.logger.InfoContext(ctx, "schedule generation failed",
			slog.String("generator", gen.GetName()),
			slog.Int("participants", len(participants)),
			slog.Int("games_per_participant", input.GamesPerParticipant),
			slog.Any("error", err),
		)
		return nil, err
	}

	result := &ScheduleResult{Generator: gen.GetName(), Pairings: pairings}
	if !input.Import {
		return result, nil
	}
	if len(pairings) > maxImportedMatches {
		return nil, fmt.Errorf("%w: %d matches, limit %d", ErrScheduleImportSize, len(pairings), maxImportedMatches)
	}

	matches := make([]models.Match, 0, len(pairings))
	for _, p := range pairings {
		m, err := models.NewMatch(p.A, p.B, input.Sport, models.StageNone)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrValidationFailed, err)
		}
		matches = append(matches, m)
	}
	if err := s.matchRepo.BatchCreate(ctx, nil, matchPointers(matches)); err != nil {
		if errors.Is(err, repositories.ErrMatchInvalidScore) {
			return nil, ErrNegativeScore
		}
		return nil, handleRepositoryError(err, "import schedule")
	}
	result.Matches = matches
	s.logger.InfoContext(ctx, "schedule imported",
		slog.String("sport", input.Sport),
		slog.Int("matches", len(matches)),
	)
	return result, nil
}
