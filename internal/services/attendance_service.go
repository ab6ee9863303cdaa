package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/westosha-tf/team-portal/internal/models"
	"github.com/westosha-tf/team-portal/internal/repository"
	"github.com/westosha-tf/team-portal/internal/utils"
	"gorm.io/gorm"
)

var ErrInvalidAttendanceStatus = errors.New("status must be present, late, absent or injured")

// AttendanceService handles daily check-ins
type AttendanceService struct {
	repo      repository.AttendanceRepository
	sanitizer *TextSanitizer
	loc       *time.Location
	now       func() time.Time
}

// NewAttendanceService creates a new AttendanceService. Days are taken in loc.
func NewAttendanceService(repo repository.AttendanceRepository, sanitizer *TextSanitizer, loc *time.Location) *AttendanceService {
	return &AttendanceService{
		repo:      repo,
		sanitizer: sanitizer,
		loc:       loc,
		now:       time.Now,
	}
}

// Today is the team-local calendar day check-ins are recorded against,
// stored as UTC midnight.
func (s *AttendanceService) Today() time.Time {
	return utils.DayIn(s.now(), s.loc)
}

// CheckInInput represents an athlete's attendance submission
type CheckInInput struct {
	AthleteID string
	Status    string
	Note      *string
}

// CheckIn records today's status for the athlete. Repeated calls on the same
// day overwrite status and note; there is never more than one record.
func (s *AttendanceService) CheckIn(ctx context.Context, input CheckInInput) (*models.AttendanceRecord, error) {
	status := models.AttendanceStatus(input.Status)
	if !status.Valid() {
		return nil, ErrInvalidAttendanceStatus
	}

	rec := &models.AttendanceRecord{
		AthleteID: input.AthleteID,
		Date:      s.Today(),
		Status:    status,
		Note:      s.sanitizer.CleanOptional(input.Note),
	}
	if err := s.repo.Upsert(ctx, rec); err != nil {
		return nil, fmt.Errorf("failed to save attendance: %w", err)
	}

	saved, err := s.repo.FindByAthleteAndDate(ctx, input.AthleteID, rec.Date)
	if err != nil {
		return nil, fmt.Errorf("failed to reload attendance: %w", err)
	}
	return saved, nil
}

// TodayFor returns the athlete's record for today, or nil when not checked in.
func (s *AttendanceService) TodayFor(ctx context.Context, athleteID string) (*models.AttendanceRecord, error) {
	rec, err := s.repo.FindByAthleteAndDate(ctx, athleteID, s.Today())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load attendance: %w", err)
	}
	return rec, nil
}

// List returns all records newest first, optionally for a single day.
func (s *AttendanceService) List(ctx context.Context, day *time.Time) ([]models.AttendanceRecord, error) {
	records, err := s.repo.List(ctx, repository.AttendanceFilter{Date: day})
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}
	return records, nil
}
