package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/westosha-tf/team-portal/internal/constants"
	"github.com/westosha-tf/team-portal/internal/models"
	"github.com/westosha-tf/team-portal/internal/repository"
)

func TestRoleService_ResolveRole(t *testing.T) {
	db := setupTestDB(t)
	profiles := repository.NewProfileRepository(db)
	svc := NewRoleService(profiles, testLogger)
	ctx := context.Background()

	require.NoError(t, profiles.Save(ctx, &models.Profile{UserID: "coach-1", Role: models.RoleCoach}))
	require.NoError(t, profiles.Save(ctx, &models.Profile{UserID: "blank-1", Role: ""}))

	role, ok := svc.ResolveRole(ctx, "coach-1")
	assert.True(t, ok)
	assert.Equal(t, models.RoleCoach, role)

	_, ok = svc.ResolveRole(ctx, "blank-1")
	assert.False(t, ok)

	_, ok = svc.ResolveRole(ctx, "nobody")
	assert.False(t, ok)
}

func TestRoleService_Authorize(t *testing.T) {
	db := setupTestDB(t)
	profiles := repository.NewProfileRepository(db)
	svc := NewRoleService(profiles, testLogger)
	ctx := context.Background()

	require.NoError(t, profiles.Save(ctx, &models.Profile{UserID: "athlete-1", Role: models.RoleAthlete}))
	athlete := &models.User{ID: "athlete-1"}

	tests := []struct {
		name     string
		user     *models.User
		required models.Role
		want     Decision
	}{
		{"no user", nil, models.RoleCoach, Decision{Outcome: Unauthenticated}},
		{"no profile", &models.User{ID: "ghost"}, models.RoleAthlete, Decision{Outcome: Unauthenticated}},
		{"wrong role", athlete, models.RoleCoach, Decision{Outcome: WrongRole, Role: models.RoleAthlete}},
		{"matching role", athlete, models.RoleAthlete, Decision{Outcome: Authorized, Role: models.RoleAthlete}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, svc.Authorize(ctx, tt.user, tt.required))
		})
	}
}

func TestLandingPath(t *testing.T) {
	assert.Equal(t, constants.PathCoachHome, LandingPath(models.RoleCoach))
	assert.Equal(t, constants.PathAthleteHome, LandingPath(models.RoleAthlete))
	assert.Equal(t, constants.PathLogin, LandingPath(""))
}
