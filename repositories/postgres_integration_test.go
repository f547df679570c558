//go:build integration

package repositories

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dosada05/tournament-results/db"
	"github.com/Dosada05/tournament-results/models"
)

// TEST_DATABASE_URL points at a disposable database; tables are truncated.
func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set, skipping postgres tests")
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	conn, err := db.Connect(dsn, 5*time.Second, logger)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	require.NoError(t, db.RunMigrations(dsn, "../db/migrations", logger))
	_, err = conn.Exec("TRUNCATE TABLE matches, teams RESTART IDENTITY CASCADE")
	require.NoError(t, err)
	return conn
}

func TestPostgresTeamRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewPostgresTeamRepository(openTestDB(t))

	owls := &models.Team{Name: "Owls", Color: models.DefaultTeamColor}
	require.NoError(t, repo.Create(ctx, owls))
	assert.NotZero(t, owls.ID)
	require.NoError(t, repo.Create(ctx, &models.Team{Name: "Foxes", Color: "#ff8800"}))
	assert.ErrorIs(t, repo.Create(ctx, &models.Team{Name: "Owls", Color: "#000"}), ErrTeamNameConflict)

	require.NoError(t, repo.ReplacePoints(ctx, map[string]int{"Owls": 5}))
	teams, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, teams, 2)
	assert.Equal(t, "Owls", teams[0].Name)
	assert.Equal(t, 5, teams[0].Points)

	assert.ErrorIs(t, repo.ReplacePoints(ctx, map[string]int{"Owls": 1, "Ghosts": 2}), ErrTeamNotFound)
	got, err := repo.GetByName(ctx, "Owls")
	require.NoError(t, err)
	assert.Equal(t, 5, got.Points, "failed replacement must roll back")

	_, err = repo.GetByName(ctx, "Bears")
	assert.ErrorIs(t, err, ErrTeamNotFound)
}

func TestPostgresMatchRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewPostgresMatchRepository(openTestDB(t))

	batch := []*models.Match{
		{ParticipantA: "A", ParticipantB: "B", Sport: "Darts", Stage: models.StageSemifinal, Status: models.StatusScheduled},
		{ParticipantA: "C", ParticipantB: "D", Sport: "Chess", Stage: models.StageNone, Status: models.StatusScheduled},
	}
	require.NoError(t, repo.BatchCreate(ctx, nil, batch))
	assert.NotZero(t, batch[1].ID)

	sports, err := repo.ListSports(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Chess", "Darts"}, sports)

	require.NoError(t, repo.UpdateScore(ctx, batch[0].ID, 2, 1))
	m, err := repo.GetByID(ctx, batch[0].ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusFinished, m.Status)

	assert.ErrorIs(t, repo.UpdateScore(ctx, batch[0].ID, -1, 0), ErrMatchInvalidScore)
	assert.ErrorIs(t, repo.UpdateStatus(ctx, 9999, models.StatusOngoing), ErrMatchNotFound)

	darts := "Darts"
	finished := models.StatusFinished
	filtered, err := repo.List(ctx, models.MatchFilter{Sport: &darts, Status: &finished})
	require.NoError(t, err)
	assert.Len(t, filtered, 1)

	// One bad row rolls back the whole batch.
	bad := []*models.Match{
		{ParticipantA: "E", ParticipantB: "F", Sport: "Chess", Stage: models.StageNone, Status: models.StatusScheduled},
		{ParticipantA: "G", ParticipantB: "H", Sport: "Chess", Stage: models.StageNone, Status: models.StatusScheduled, ScoreA: -3},
	}
	assert.ErrorIs(t, repo.BatchCreate(ctx, nil, bad), ErrMatchInvalidScore)
	all, err := repo.List(ctx, models.MatchFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
