package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Dosada05/tournament-results/brackets"
	"github.com/Dosada05/tournament-results/models"
	"github.com/Dosada05/tournament-results/repositories"
	"github.com/Dosada05/tournament-results/storage"
)

type ReportService interface {
	// Build renders the report from the stored totals and matches.
	Build(ctx context.Context) (string, error)
	// Publish uploads content to every configured target and returns the
	// location of the first successful upload.
	Publish(ctx context.Context, content string) (string, error)
}

type reportService struct {
	teamRepo  repositories.TeamRepository
	matchRepo repositories.MatchRepository
	resolver  *brackets.Resolver
	mode      models.ScoringMode
	reportKey string
	uploaders []storage.FileUploader
	logger    *slog.Logger
	now       func() time.Time
}

func NewReportService(
	teamRepo repositories.TeamRepository,
	matchRepo repositories.MatchRepository,
	resolver *brackets.Resolver,
	mode models.ScoringMode,
	reportKey string,
	uploaders []storage.FileUploader,
	logger *slog.Logger,
) ReportService {
	return &reportService{
		teamRepo:  teamRepo,
		matchRepo: matchRepo,
		resolver:  resolver,
		mode:      mode,
		reportKey: reportKey,
		uploaders: uploaders,
		logger:    logger,
		now:       time.Now,
	}
}

func (s *reportService) Build(ctx context.Context) (string, error) {
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
		return "", err
	}

	var placements []models.Placement
	if s.mode == models.ScoringBracket {
		placements = s.resolveAll(ctx, matches)
	}
	standings := BuildStandings(dereferenceTeams(teams), matches, s.mode)
	return RenderReport(NewReportData(s.mode, standings, matches, placements, s.now()))
}

// resolveAll resolves each sport on its own; a sport with an ambiguous or
// inconsistent bracket is shown as in progress.
func (s *reportService) resolveAll(ctx context.Context, matches []models.Match) []models.Placement {
	groups := GroupBySport(matches)
	placements := make([]models.Placement, 0, len(groups))
	for _, sport := range sortedSports(groups) {
		placement, complete, err := s.resolver.Resolve(groups[sport])
		if err != nil {
			s.logger.WarnContext(ctx, "bracket cannot be resolved", slog.String("sport", sport), slog.Any("error", err))
			continue
		}
		if complete {
			placements = append(placements, placement)
		}
	}
	return placements
}

func (s *reportService) Publish(ctx context.Context, content string) (string, error) {
	var (
		location string
		errs     []error
	)
	for _, uploader := range s.uploaders {
		result, err := uploader.Upload(ctx, s.reportKey, storage.MarkdownContentType, strings.NewReader(content))
		if err != nil {
			errs = append(errs, err)
			continue
		}
		s.logger.InfoContext(ctx, "report published", slog.String("key", result.Key), slog.String("location", result.Location))
		if location == "" {
			location = result.Location
		}
	}
	if len(errs) > 0 {
		return location, fmt.Errorf("publish report: %w", errors.Join(errs...))
	}
	return location, nil
}
