package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/westosha-tf/team-portal/internal/constants"
	"github.com/westosha-tf/team-portal/internal/models"
	"github.com/westosha-tf/team-portal/internal/repository"
)

func TestReflectionService_Draft(t *testing.T) {
	svc := NewReflectionService(nil, NewTextSanitizer(), time.UTC)
	svc.now = fixedClock(time.Date(2026, 3, 12, 20, 30, 0, 0, time.UTC))

	draft := svc.Draft()
	assert.Equal(t, time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC), draft.Date)
	assert.Equal(t, constants.DefaultRating, draft.Effort)
	assert.Equal(t, constants.DefaultRating, draft.Energy)
}

func TestReflectionService_DraftUsesTeamDay(t *testing.T) {
	loc := chicago(t)
	svc := NewReflectionService(nil, NewTextSanitizer(), loc)
	svc.now = fixedClock(time.Date(2026, 3, 12, 20, 30, 0, 0, loc))

	assert.Equal(t, time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC), svc.Draft().Date)
}

func TestReflectionService_SubmitDefaultsToTeamDay(t *testing.T) {
	db := setupTestDB(t)
	loc := chicago(t)
	svc := NewReflectionService(repository.NewReflectionRepository(db), NewTextSanitizer(), loc)
	svc.now = fixedClock(time.Date(2026, 3, 12, 20, 30, 0, 0, loc))

	ref, err := svc.Submit(context.Background(), SubmitReflectionInput{
		AthleteID: "athlete-1", WorkoutSummary: "Easy 5k", Effort: 4, Energy: 7,
	})
	require.NoError(t, err)
	assert.Equal(t, "2026-03-12", ref.Date.UTC().Format("2006-01-02"))
}

func TestReflectionService_SubmitOncePerDay(t *testing.T) {
	db := setupTestDB(t)
	svc := NewReflectionService(repository.NewReflectionRepository(db), NewTextSanitizer(), time.UTC)
	ctx := context.Background()

	input := SubmitReflectionInput{
		AthleteID:      "athlete-1",
		Date:           "2026-03-12",
		WorkoutSummary: "6x200 at race pace",
		Effort:         8,
		Energy:         6,
	}
	_, err := svc.Submit(ctx, input)
	require.NoError(t, err)

	input.WorkoutSummary = "second try"
	_, err = svc.Submit(ctx, input)
	assert.ErrorIs(t, err, ErrReflectionAlreadySubmitted)

	history, err := svc.History(ctx, "athlete-1")
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "6x200 at race pace", history[0].WorkoutSummary)
}

func TestReflectionService_ConcurrentSubmitsKeepOne(t *testing.T) {
	db := setupTestDB(t)
	svc := NewReflectionService(repository.NewReflectionRepository(db), NewTextSanitizer(), time.UTC)
	ctx := context.Background()

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
	)
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Submit(ctx, SubmitReflectionInput{
				AthleteID: "athlete-1", Date: "2026-03-12", WorkoutSummary: "tempo", Effort: 5, Energy: 5,
			})
			if err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
			} else {
				assert.ErrorIs(t, err, ErrReflectionAlreadySubmitted)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, succeeded)
}

func TestReflectionService_Validation(t *testing.T) {
	db := setupTestDB(t)
	svc := NewReflectionService(repository.NewReflectionRepository(db), NewTextSanitizer(), time.UTC)
	ctx := context.Background()

	_, err := svc.Submit(ctx, SubmitReflectionInput{AthleteID: "a", WorkoutSummary: "   ", Effort: 7, Energy: 7})
	assert.ErrorIs(t, err, ErrWorkoutSummaryRequired)

	_, err = svc.Submit(ctx, SubmitReflectionInput{AthleteID: "a", WorkoutSummary: "easy run", Effort: 11, Energy: 7})
	assert.ErrorIs(t, err, ErrInvalidRating)

	_, err = svc.Submit(ctx, SubmitReflectionInput{AthleteID: "a", WorkoutSummary: "easy run", Effort: 7, Energy: 0})
	assert.ErrorIs(t, err, ErrInvalidRating)

	_, err = svc.Submit(ctx, SubmitReflectionInput{AthleteID: "a", Date: "12/03/2026", WorkoutSummary: "easy run", Effort: 7, Energy: 7})
	assert.ErrorIs(t, err, ErrInvalidReflectionDate)
}

func TestReflectionService_CoachList(t *testing.T) {
	db := setupTestDB(t)
	svc := NewReflectionService(repository.NewReflectionRepository(db), NewTextSanitizer(), time.UTC)
	ctx := context.Background()

	require.NoError(t, repository.NewProfileRepository(db).Save(ctx, &models.Profile{
		UserID: "athlete-1", Role: models.RoleAthlete, FirstName: strPtr("Sam"), LastName: strPtr("Lee"),
	}))

	for _, tc := range []struct{ athlete, date string }{
		{"athlete-1", "2026-03-10"},
		{"athlete-1", "2026-03-11"},
		{"athlete-2", "2026-03-11"},
	} {
		_, err := svc.Submit(ctx, SubmitReflectionInput{AthleteID: tc.athlete, Date: tc.date, WorkoutSummary: "work", Effort: 7, Energy: 7})
		require.NoError(t, err)
	}

	all, err := svc.List(ctx, ListReflectionsInput{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, 11, all[0].Date.Day())

	athleteID := "athlete-1"
	mine, err := svc.List(ctx, ListReflectionsInput{AthleteID: &athleteID})
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, "Sam Lee", models.AthleteName(mine[0].Athlete, mine[0].AthleteID))

	day := time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC)
	onDay, err := svc.List(ctx, ListReflectionsInput{Date: &day})
	require.NoError(t, err)
	assert.Len(t, onDay, 2)

	got, err := svc.Get(ctx, mine[0].ID)
	require.NoError(t, err)
	assert.Equal(t, mine[0].ID, got.ID)

	_, err = svc.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrReflectionNotFound)
}
