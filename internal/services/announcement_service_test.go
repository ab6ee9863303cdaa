package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/westosha-tf/team-portal/internal/repository"
)

func TestAnnouncementService_OrderingAndPin(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAnnouncementService(repository.NewAnnouncementRepository(db), NewTextSanitizer())
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	titles := []string{"oldest", "middle", "newest"}
	ids := make(map[string]string)
	for i, title := range titles {
		svc.now = fixedClock(base.Add(time.Duration(i) * time.Hour))
		a, err := svc.Create(ctx, CreateAnnouncementInput{Title: title, Body: "body", CreatedBy: "coach-1"})
		require.NoError(t, err)
		ids[title] = a.ID
	}

	list, err := svc.List(ctx, 50)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "newest", list[0].Title)

	require.NoError(t, svc.SetPinned(ctx, ids["oldest"], true))

	list, err = svc.List(ctx, 50)
	require.NoError(t, err)
	assert.Equal(t, []string{"oldest", "newest", "middle"}, []string{list[0].Title, list[1].Title, list[2].Title})

	// pinning twice is not an error
	require.NoError(t, svc.SetPinned(ctx, ids["oldest"], true))

	latest, err := svc.Latest(ctx)
	require.NoError(t, err)
	assert.Equal(t, "oldest", latest.Title)

	limited, err := svc.List(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}

func TestAnnouncementService_Validation(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAnnouncementService(repository.NewAnnouncementRepository(db), NewTextSanitizer())
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateAnnouncementInput{Title: "  ", Body: "body"})
	assert.ErrorIs(t, err, ErrTitleRequired)

	_, err = svc.Create(ctx, CreateAnnouncementInput{Title: "Meet moved", Body: "<b></b>"})
	assert.ErrorIs(t, err, ErrBodyRequired)

	a, err := svc.Create(ctx, CreateAnnouncementInput{Title: "Bus <script>x</script>at 6", Body: "Bring spikes & water"})
	require.NoError(t, err)
	assert.NotContains(t, a.Title, "<script>")
	assert.Equal(t, "Bring spikes & water", a.Body)
}

func TestAnnouncementService_MissingIDs(t *testing.T) {
	db := setupTestDB(t)
	svc := NewAnnouncementService(repository.NewAnnouncementRepository(db), NewTextSanitizer())
	ctx := context.Background()

	assert.ErrorIs(t, svc.SetPinned(ctx, "missing", true), ErrAnnouncementNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, "missing"), ErrAnnouncementNotFound)

	latest, err := svc.Latest(ctx)
	require.NoError(t, err)
	assert.Nil(t, latest)
}
