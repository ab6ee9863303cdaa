package repository

import (
	"context"
	"time"

	"github.com/westosha-tf/team-portal/internal/models"
)

// UserRepository defines the interface for account data access
type UserRepository interface {
	// CreateWithProfile inserts a user and its profile atomically
	CreateWithProfile(ctx context.Context, user *models.User, profile *models.Profile) error

	// FindByID finds a user by ID
	FindByID(ctx context.Context, id string) (*models.User, error)

	// FindByEmail finds a user by email, case-insensitively
	FindByEmail(ctx context.Context, email string) (*models.User, error)
}

// ProfileRepository defines the interface for profile data access
type ProfileRepository interface {
	// FindByUserID performs the single keyed lookup used for role resolution
	FindByUserID(ctx context.Context, userID string) (*models.Profile, error)

	// Save creates or replaces a profile
	Save(ctx context.Context, profile *models.Profile) error
}

// AnnouncementRepository defines the interface for announcement data access
type AnnouncementRepository interface {
	// List returns announcements pinned first, then newest first
	List(ctx context.Context, limit int) ([]models.Announcement, error)

	Create(ctx context.Context, a *models.Announcement) error

	// SetPinned patches only the pinned flag
	SetPinned(ctx context.Context, id string, pinned bool) error

	Delete(ctx context.Context, id string) error
}

// ScheduleRepository defines the interface for schedule event data access
type ScheduleRepository interface {
	// List returns events ordered by date then start time
	List(ctx context.Context) ([]models.ScheduleEvent, error)

	// NextOnOrAfter returns the first event on or after day
	NextOnOrAfter(ctx context.Context, day time.Time) (*models.ScheduleEvent, error)

	FindByID(ctx context.Context, id string) (*models.ScheduleEvent, error)
	Create(ctx context.Context, e *models.ScheduleEvent) error
	Update(ctx context.Context, e *models.ScheduleEvent) error
	Delete(ctx context.Context, id string) error
}

// AttendanceFilter holds filtering options for the coach attendance list
type AttendanceFilter struct {
	Date *time.Time
}

// AttendanceRepository defines the interface for attendance data access
type AttendanceRepository interface {
	// Upsert inserts the record or overwrites status and note for the same athlete and date
	Upsert(ctx context.Context, rec *models.AttendanceRecord) error

	FindByAthleteAndDate(ctx context.Context, athleteID string, day time.Time) (*models.AttendanceRecord, error)

	// List returns records newest first with the athlete profile preloaded
	List(ctx context.Context, filter AttendanceFilter) ([]models.AttendanceRecord, error)
}

// ReflectionFilter holds filtering options for listing reflections
type ReflectionFilter struct {
	AthleteID *string
	Date      *time.Time
	Limit     int
}

// ReflectionRepository defines the interface for reflection data access
type ReflectionRepository interface {
	// CreateIfAbsent inserts r unless the athlete already has one for that date.
	// It reports whether a row was written.
	CreateIfAbsent(ctx context.Context, r *models.Reflection) (bool, error)

	// List returns reflections newest first with the athlete profile preloaded
	List(ctx context.Context, filter ReflectionFilter) ([]models.Reflection, error)

	FindByID(ctx context.Context, id string) (*models.Reflection, error)
}

// DocumentRepository defines the interface for document metadata access
type DocumentRepository interface {
	Create(ctx context.Context, doc *models.Document) error

	// List returns live documents, required first then newest first
	List(ctx context.Context, category *string) ([]models.Document, error)

	FindByID(ctx context.Context, id string) (*models.Document, error)

	// FindByFilePath finds the live document that owns an object key
	FindByFilePath(ctx context.Context, key string) (*models.Document, error)

	// SoftDelete hides the document from every list
	SoftDelete(ctx context.Context, id string) error

	// HardDelete removes the row, including soft-deleted ones
	HardDelete(ctx context.Context, id string) error

	// ListSoftDeleted returns rows whose object removal is still pending
	ListSoftDeleted(ctx context.Context) ([]models.Document, error)

	RecordOrphan(ctx context.Context, key, reason string) error
	ListOrphans(ctx context.Context) ([]models.OrphanObject, error)
	DeleteOrphan(ctx context.Context, key string) error
}
