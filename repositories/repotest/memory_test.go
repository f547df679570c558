package repotest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dosada05/tournament-results/models"
	"github.com/Dosada05/tournament-results/repositories"
)

func TestMemoryTeams(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryStore().Teams()

	owls := &models.Team{Name: "Owls"}
	require.NoError(t, repo.Create(ctx, owls))
	assert.NotZero(t, owls.ID)
	assert.False(t, owls.CreatedAt.IsZero())
	require.NoError(t, repo.Create(ctx, &models.Team{Name: "Foxes"}))
	assert.ErrorIs(t, repo.Create(ctx, &models.Team{Name: "Owls"}), repositories.ErrTeamNameConflict)

	got, err := repo.GetByName(ctx, "Owls")
	require.NoError(t, err)
	assert.Equal(t, owls.ID, got.ID)
	_, err = repo.GetByName(ctx, "Bears")
	assert.ErrorIs(t, err, repositories.ErrTeamNotFound)

	require.NoError(t, repo.ReplacePoints(ctx, map[string]int{"Owls": 4}))
	teams, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, teams, 2)
	assert.Equal(t, "Owls", teams[0].Name)
	assert.Equal(t, 4, teams[0].Points)

	// Teams missing from the totals drop back to zero.
	require.NoError(t, repo.ReplacePoints(ctx, map[string]int{"Foxes": 1}))
	teams, err = repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Foxes", teams[0].Name)
	assert.Equal(t, 0, teams[1].Points)

	// An unknown name rejects the whole replacement.
	assert.ErrorIs(t, repo.ReplacePoints(ctx, map[string]int{"Owls": 9, "Ghosts": 1}), repositories.ErrTeamNotFound)
	got, err = repo.GetByName(ctx, "Owls")
	require.NoError(t, err)
	assert.Equal(t, 0, got.Points)
}

func TestMemoryMatches(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	repo := store.Matches()

	batch := []*models.Match{
		{ParticipantA: "A", ParticipantB: "B", Sport: "Darts", Stage: models.StageSemifinal, Status: models.StatusScheduled},
		{ParticipantA: "C", ParticipantB: "D", Sport: "Chess", Stage: models.StageNone, Status: models.StatusScheduled},
	}
	require.NoError(t, repo.BatchCreate(ctx, nil, batch))
	assert.Equal(t, 1, batch[0].ID)
	assert.Equal(t, 2, batch[1].ID)

	sports, err := repo.ListSports(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Chess", "Darts"}, sports)

	require.NoError(t, repo.UpdateScore(ctx, 1, 3, 2))
	m, err := repo.GetByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, models.StatusFinished, m.Status)
	assert.Equal(t, 3, m.ScoreA)

	assert.ErrorIs(t, repo.UpdateScore(ctx, 1, -1, 0), repositories.ErrMatchInvalidScore)
	assert.ErrorIs(t, repo.UpdateScore(ctx, 99, 1, 0), repositories.ErrMatchNotFound)
	assert.ErrorIs(t, repo.UpdateStatus(ctx, 99, models.StatusOngoing), repositories.ErrMatchNotFound)
	_, err = repo.GetByID(ctx, 99)
	assert.ErrorIs(t, err, repositories.ErrMatchNotFound)

	finished := models.StatusFinished
	darts := "Darts"
	filtered, err := repo.List(ctx, models.MatchFilter{Sport: &darts, Status: &finished})
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, "A", filtered[0].ParticipantA)

	semi := models.StageSemifinal
	filtered, err = repo.List(ctx, models.MatchFilter{Stage: &semi})
	require.NoError(t, err)
	assert.Len(t, filtered, 1)

	bad := []*models.Match{{ParticipantA: "E", ParticipantB: "F", Sport: "Chess", ScoreA: -1}}
	assert.ErrorIs(t, repo.BatchCreate(ctx, nil, bad), repositories.ErrMatchInvalidScore)
	all, err := repo.List(ctx, models.MatchFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestMemoryStore_FailOn(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	boom := assert.AnError
	store.FailOn["CreateMatch"] = boom
	store.FailOn["ListTeams"] = boom

	assert.ErrorIs(t, store.Matches().Create(ctx, nil, &models.Match{}), boom)
	_, err := store.Teams().List(ctx)
	assert.ErrorIs(t, err, boom)

	delete(store.FailOn, "ListTeams")
	_, err = store.Teams().List(ctx)
	assert.NoError(t, err)
}
