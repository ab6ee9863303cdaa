package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/westosha-tf/team-portal/internal/repository"
)

func TestCalendarService_Feed(t *testing.T) {
	db := setupTestDB(t)
	schedule := NewScheduleService(repository.NewScheduleRepository(db), NewTextSanitizer(), time.UTC)
	svc := NewCalendarService(schedule, time.UTC)
	ctx := context.Background()

	_, err := schedule.Create(ctx, ScheduleEventInput{
		Date: "2026-03-12", StartTime: "15:30", Type: "meet", Title: "Invite Meet", Location: strPtr("Central HS"),
	})
	require.NoError(t, err)
	_, err = schedule.Create(ctx, ScheduleEventInput{Date: "2026-03-13", Type: "practice", Title: "Recovery"})
	require.NoError(t, err)

	feed, err := svc.Feed(ctx)
	require.NoError(t, err)

	assert.Equal(t, 2, strings.Count(feed, "BEGIN:VEVENT"))
	assert.Contains(t, feed, "SUMMARY:MEET: Invite Meet")
	assert.Contains(t, feed, "LOCATION:Central HS")
	assert.Contains(t, feed, "DTSTART:20260312T153000Z")
	assert.Contains(t, feed, "DTEND:20260312T213000Z")
	assert.Contains(t, feed, "SUMMARY:Recovery")
	assert.Contains(t, feed, "20260313")
}
