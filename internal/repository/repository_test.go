package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/westosha-tf/team-portal/internal/database"
	"github.com/westosha-tf/team-portal/internal/models"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	require.NoError(t, db.AutoMigrate(database.Models()...))
	return db
}

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db, mock
}

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestDocumentRepository_CreateSurfacesDriverError(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewDocumentRepository(db)

	insertErr := errors.New("connection reset by peer")
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `documents`").WillReturnError(insertErr)
	mock.ExpectRollback()

	err := repo.Create(context.Background(), &models.Document{
		Title:    "Physical",
		Category: "Athletic Forms",
		FilePath: "coach_uploads/abc.pdf",
		FileName: "physical.pdf",
	})
	require.ErrorIs(t, err, insertErr)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDocumentRepository_SoftDeleteMissingRow(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewDocumentRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `documents` SET `deleted_at`").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	err := repo.SoftDelete(context.Background(), "missing")
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDocumentRepository_SoftDeleteLifecycle(t *testing.T) {
	db := setupTestDB(t)
	repo := NewDocumentRepository(db)
	ctx := context.Background()

	doc := &models.Document{Title: "Handbook", Category: "Handbooks", FilePath: "coach_uploads/h.pdf", FileName: "h.pdf"}
	require.NoError(t, repo.Create(ctx, doc))

	require.NoError(t, repo.SoftDelete(ctx, doc.ID))

	docs, err := repo.List(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, docs)

	_, err = repo.FindByFilePath(ctx, doc.FilePath)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	deleted, err := repo.ListSoftDeleted(ctx)
	require.NoError(t, err)
	require.Len(t, deleted, 1)
	assert.Equal(t, doc.ID, deleted[0].ID)

	require.NoError(t, repo.HardDelete(ctx, doc.ID))
	deleted, err = repo.ListSoftDeleted(ctx)
	require.NoError(t, err)
	assert.Empty(t, deleted)
}

func TestDocumentRepository_Orphans(t *testing.T) {
	db := setupTestDB(t)
	repo := NewDocumentRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.RecordOrphan(ctx, "coach_uploads/a.pdf", "insert failed"))
	require.NoError(t, repo.RecordOrphan(ctx, "coach_uploads/a.pdf", "insert failed again"))

	orphans, err := repo.ListOrphans(ctx)
	require.NoError(t, err)
	require.Len(t, orphans, 1)
	assert.Equal(t, "insert failed", orphans[0].Reason)

	require.NoError(t, repo.DeleteOrphan(ctx, "coach_uploads/a.pdf"))
	orphans, err = repo.ListOrphans(ctx)
	require.NoError(t, err)
	assert.Empty(t, orphans)
}

func TestAttendanceRepository_UpsertKeepsOneRowPerDay(t *testing.T) {
	db := setupTestDB(t)
	repo := NewAttendanceRepository(db)
	ctx := context.Background()

	first := &models.AttendanceRecord{AthleteID: "athlete-1", Date: day("2026-03-10"), Status: models.AttendanceLate}
	require.NoError(t, repo.Upsert(ctx, first))

	note := "made it"
	second := &models.AttendanceRecord{AthleteID: "athlete-1", Date: day("2026-03-10"), Status: models.AttendancePresent, Note: &note}
	require.NoError(t, repo.Upsert(ctx, second))

	rec, err := repo.FindByAthleteAndDate(ctx, "athlete-1", day("2026-03-10"))
	require.NoError(t, err)
	assert.Equal(t, models.AttendancePresent, rec.Status)
	require.NotNil(t, rec.Note)
	assert.Equal(t, "made it", *rec.Note)

	records, err := repo.List(ctx, AttendanceFilter{})
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestReflectionRepository_CreateIfAbsent(t *testing.T) {
	db := setupTestDB(t)
	repo := NewReflectionRepository(db)
	ctx := context.Background()

	created, err := repo.CreateIfAbsent(ctx, &models.Reflection{
		AthleteID: "athlete-1", Date: day("2026-03-10"), WorkoutSummary: "hills", Effort: 8, Energy: 6,
	})
	require.NoError(t, err)
	assert.True(t, created)

	created, err = repo.CreateIfAbsent(ctx, &models.Reflection{
		AthleteID: "athlete-1", Date: day("2026-03-10"), WorkoutSummary: "again", Effort: 5, Energy: 5,
	})
	require.NoError(t, err)
	assert.False(t, created)

	created, err = repo.CreateIfAbsent(ctx, &models.Reflection{
		AthleteID: "athlete-1", Date: day("2026-03-11"), WorkoutSummary: "easy", Effort: 3, Energy: 8,
	})
	require.NoError(t, err)
	assert.True(t, created)
}
