package services

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/Dosada05/tournament-results/brackets"
	"github.com/Dosada05/tournament-results/models"
	"github.com/Dosada05/tournament-results/repositories"
)

const sportLoadConcurrency = 4

type SportService interface {
	ListSports(ctx context.Context) ([]models.SportSummary, error)
}

type sportService struct {
	matchRepo repositories.MatchRepository
	resolver  *brackets.Resolver
	logger    *slog.Logger
}

func NewSportService(matchRepo repositories.MatchRepository, resolver *brackets.Resolver, logger *slog.Logger) SportService {
	return &sportService{matchRepo: matchRepo, resolver: resolver, logger: logger}
}

func (s *sportService) ListSports(ctx context.Context) ([]models.SportSummary, error) {
	sports, err := s.matchRepo.ListSports(ctx)
	if err != nil {
		return nil, handleRepositoryError(err, "list sports")
	}

	summaries := make([]models.SportSummary, len(sports))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(sportLoadConcurrency)
	for i, sport := range sports {
		i, sport := i, sport
		g.Go(func() error {
			matches, err := s.matchRepo.List(gctx, models.MatchFilter{Sport: &sport})
			if err != nil {
				return handleRepositoryError(err, "load sport matches")
			}
			summaries[i] = s.summarize(gctx, sport, matches)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return summaries, nil
}

func (s *sportService) summarize(ctx context.Context, sport string, matches []models.Match) models.SportSummary {
	summary := models.SportSummary{Name: sport, Matches: len(matches)}
	for _, m := range matches {
		if m.IsFinished() {
			summary.Finished++
		}
	}
	_, complete, err := s.resolver.Resolve(matches)
	if err != nil {
		s.logger.WarnContext(ctx, "bracket cannot be resolved", slog.String("sport", sport), slog.Any("error", err))
	}
	summary.BracketComplete = complete && err == nil
	return summary
}
