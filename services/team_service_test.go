package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dosada05/tournament-results/models"
	"github.com/Dosada05/tournament-results/repositories/repotest"
)

func TestTeamService(t *testing.T) {
	ctx := context.Background()
	store := repotest.NewMemoryStore()
	svc := NewTeamService(store.Teams(), testLogger())

	team, err := svc.CreateTeam(ctx, CreateTeamInput{Name: " Owls "})
	require.NoError(t, err)
	assert.Equal(t, "Owls", team.Name)
	assert.Equal(t, models.DefaultTeamColor, team.Color)
	assert.NotZero(t, team.ID)

	_, err = svc.CreateTeam(ctx, CreateTeamInput{Name: "Owls", Color: "#000"})
	assert.ErrorIs(t, err, ErrTeamNameConflict)

	_, err = svc.CreateTeam(ctx, CreateTeamInput{Name: "  "})
	assert.ErrorIs(t, err, ErrTeamNameRequired)

	_, err = svc.CreateTeam(ctx, CreateTeamInput{Name: "Foxes", Color: "#ff8800"})
	require.NoError(t, err)

	teams, err := svc.ListTeams(ctx)
	require.NoError(t, err)
	require.Len(t, teams, 2)
	assert.Equal(t, "Foxes", teams[0].Name)

	got, err := svc.GetTeam(ctx, "Foxes")
	require.NoError(t, err)
	assert.Equal(t, "#ff8800", got.Color)

	_, err = svc.GetTeam(ctx, "Bears")
	assert.ErrorIs(t, err, ErrTeamNotFound)

	store.FailOn["ListTeams"] = errStoreDown
	_, err = svc.ListTeams(ctx)
	assert.ErrorIs(t, err, errStoreDown)
}
