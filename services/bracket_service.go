package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Dosada05/tournament-results/brackets"
	"github.com/Dosada05/tournament-results/models"
	"github.com/Dosada05/tournament-results/repositories"
)

type BracketService interface {
	// SeedBracket creates the two semifinals of a sport from four seeds
	// (1 vs 4, 2 vs 3).
	SeedBracket(ctx context.Context, sport string, seeds []string) ([]models.Match, error)
	// AdvanceBracket creates the final and third-place matches once both
	// semifinals are finished.
	AdvanceBracket(ctx context.Context, sport string) ([]models.Match, error)
	GetPlacement(ctx context.Context, sport string) (*PlacementResult, error)
}

type PlacementResult struct {
	Sport     string            `json:"sport"`
	Complete  bool              `json:"complete"`
	Placement *models.Placement `json:"placement,omitempty"`
	Points    map[string]int    `json:"points,omitempty"`
}

type bracketService struct {
	matchRepo   repositories.MatchRepository
	generator   brackets.BracketGenerator
	resolver    *brackets.Resolver
	broadcaster Broadcaster
	logger      *slog.Logger
}

func NewBracketService(
	matchRepo repositories.MatchRepository,
	generator brackets.BracketGenerator,
	resolver *brackets.Resolver,
	broadcaster Broadcaster,
	logger *slog.Logger,
) BracketService {
	return &bracketService{
		matchRepo:   matchRepo,
		generator:   generator,
		resolver:    resolver,
		broadcaster: broadcaster,
		logger:      logger,
	}
}

func (s *bracketService) sportMatches(ctx context.Context, sport string) ([]models.Match, error) {
	sport = strings.TrimSpace(sport)
	if sport == "" {
		return nil, ErrSportRequired
	}
	matches, err := s.matchRepo.List(ctx, models.MatchFilter{Sport: &sport})
	if err != nil {
		return nil, handleRepositoryError(err, "load sport matches")
	}
	return matches, nil
}

func countStages(matches []models.Match) map[models.BracketStage]int {
	counts := make(map[models.BracketStage]int, 4)
	for _, m := range matches {
		counts[m.Stage]++
	}
	return counts
}

func (s *bracketService) SeedBracket(ctx context.Context, sport string, seeds []string) ([]models.Match, error) {
	existing, err := s.sportMatches(ctx, sport)
	if err != nil {
		return nil, err
	}
	if countStages(existing)[models.StageSemifinal] > 0 {
		return nil, fmt.Errorf("%w: %s", ErrBracketExists, sport)
	}

	layout, err := s.generator.GenerateBracket(ctx, brackets.GenerateBracketParams{Sport: sport, Participants: seeds})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidationFailed, err)
	}

	semis := make([]models.Match, 0, 2)
	for _, bm := range layout {
		if bm.IsPlaceholder {
			continue
		}
		m, err := models.NewMatch(bm.ParticipantA, bm.ParticipantB, bm.Sport, bm.Stage)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrValidationFailed, err)
		}
		semis = append(semis, m)
	}
	if err := s.matchRepo.BatchCreate(ctx, nil, matchPointers(semis)); err != nil {
		return nil, handleRepositoryError(err, "create semifinals")
	}

	s.logger.InfoContext(ctx, "bracket seeded", slog.String("sport", sport), slog.Any("seeds", seeds))
	broadcast(s.broadcaster, brackets.MessageBracketUpdated, semis)
	return semis, nil
}

func (s *bracketService) AdvanceBracket(ctx context.Context, sport string) ([]models.Match, error) {
	matches, err := s.sportMatches(ctx, sport)
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrSportNotFound, sport)
	}
	stages := countStages(matches)
	if stages[models.StageFinal] > 0 || stages[models.StageThirdPlace] > 0 {
		return nil, fmt.Errorf("%w: %s", ErrBracketAdvanced, sport)
	}

	layout, err := brackets.BracketFromSemifinals(ctx, sport, matches)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidationFailed, err)
	}
	final, third, ok, err := brackets.Advance(layout, matches)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrBracketNotReady, sport)
	}

	created := []models.Match{final, third}
	if err := s.matchRepo.BatchCreate(ctx, nil, matchPointers(created)); err != nil {
		return nil, handleRepositoryError(err, "create final matches")
	}

	s.logger.InfoContext(ctx, "bracket advanced",
		slog.String("sport", sport),
		slog.String("final", final.ParticipantA+" vs "+final.ParticipantB),
		slog.String("third_place", third.ParticipantA+" vs "+third.ParticipantB),
	)
	broadcast(s.broadcaster, brackets.MessageBracketUpdated, created)
	return created, nil
}

func (s *bracketService) GetPlacement(ctx context.Context, sport string) (*PlacementResult, error) {
	matches, err := s.sportMatches(ctx, sport)
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrSportNotFound, sport)
	}

	placement, complete, err := s.resolver.Resolve(matches)
	if err != nil {
		return nil, err
	}
	result := &PlacementResult{Sport: strings.TrimSpace(sport), Complete: complete}
	if complete {
		result.Placement = &placement
		result.Points = s.resolver.PointDeltas(placement)
	}
	return result, nil
}
