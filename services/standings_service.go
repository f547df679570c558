package services

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Dosada05/tournament-results/brackets"
	"github.com/Dosada05/tournament-results/models"
	"github.com/Dosada05/tournament-results/repositories"
)

type StandingsService interface {
	Current(ctx context.Context) ([]models.Standing, error)
	// Rebuild recomputes every total from zero and persists them atomically.
	// Running it twice on the same matches yields the same totals.
	Rebuild(ctx context.Context) (*RebuildResult, error)
}

type RebuildResult struct {
	Standings  []models.Standing  `json:"standings"`
	Placements []models.Placement `json:"placements,omitempty"`
	ReportURL  string             `json:"report_url,omitempty"`
	// PublishError is set when totals were saved but publishing failed.
	PublishError string `json:"publish_error,omitempty"`
}

type standingsService struct {
	teamRepo    repositories.TeamRepository
	matchRepo   repositories.MatchRepository
	resolver    *brackets.Resolver
	mode        models.ScoringMode
	reports     ReportService
	broadcaster Broadcaster
	notifier    Notifier
	logger      *slog.Logger
	now         func() time.Time
}

// NewStandingsService wires the rebuild pipeline. notifier may be nil.
func NewStandingsService(
	teamRepo repositories.TeamRepository,
	matchRepo repositories.MatchRepository,
	resolver *brackets.Resolver,
	mode models.ScoringMode,
	reports ReportService,
	broadcaster Broadcaster,
	notifier Notifier,
	logger *slog.Logger,
) StandingsService {
	return &standingsService{
		teamRepo:    teamRepo,
		matchRepo:   matchRepo,
		resolver:    resolver,
		mode:        mode,
		reports:     reports,
		broadcaster: broadcaster,
		notifier:    notifier,
		logger:      logger,
		now:         time.Now,
	}
}

func (s *standingsService) load(ctx context.Context) ([]models.Team, []models.Match, error) {
	var (
		teams   []*models.Team
		matches []models.Match
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		teams, err = s.teamRepo.List(gctx)
		return handleRepositoryError(err, "load teams")
	})
	g.Go(func() error {
		var err error
		matches, err = s.matchRepo.List(gctx, models.MatchFilter{})
		return handleRepositoryError(err, "load matches")
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return dereferenceTeams(teams), matches, nil
}

func (s *standingsService) Current(ctx context.Context) ([]models.Standing, error) {
	teams, matches, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return BuildStandings(teams, matches, s.mode), nil
}

func (s *standingsService) Rebuild(ctx context.Context) (*RebuildResult, error) {
	teams, matches, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	deltas, placements, err := ComputeDeltas(s.mode, s.resolver, matches)
	if err != nil {
		s.logger.WarnContext(ctx, "standings rebuild aborted", slog.String("mode", string(s.mode)), slog.Any("error", err))
		return nil, err
	}

	registry := ApplyDeltas(ResetPoints(teams), deltas)
	totals := make(map[string]int, len(registry))
	for _, team := range registry {
		totals[team.Name] = team.Points
	}
	if err := s.teamRepo.ReplacePoints(ctx, totals); err != nil {
		return nil, handleRepositoryError(err, "persist totals")
	}

	standings := BuildStandings(registry, matches, s.mode)
	result := &RebuildResult{Standings: standings, Placements: placements}
	s.logger.InfoContext(ctx, "standings rebuilt",
		slog.String("mode", string(s.mode)),
		slog.Int("teams", len(registry)),
		slog.Int("matches", len(matches)),
		slog.Int("resolved_sports", len(placements)),
	)

	// Итоги уже сохранены; ошибки публикации не откатывают их.
	report, err := RenderReport(NewReportData(s.mode, standings, matches, placements, s.now()))
	if err == nil && s.reports != nil {
		result.ReportURL, err = s.reports.Publish(ctx, report)
	}
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to publish report", slog.Any("error", err))
		result.PublishError = err.Error()
	}

	broadcast(s.broadcaster, brackets.MessageStandingsUpdated, standings)

	if s.notifier != nil {
		if err := s.notifier.NotifyStandings(ctx, standings, result.ReportURL); err != nil {
			s.logger.WarnContext(ctx, "failed to queue standings notification", slog.Any("error", err))
		}
	}
	return result, nil
}
