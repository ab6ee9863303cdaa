package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/westosha-tf/team-portal/internal/constants"
	"github.com/westosha-tf/team-portal/internal/models"
	"github.com/westosha-tf/team-portal/internal/repository"
	"github.com/westosha-tf/team-portal/internal/utils"
	"gorm.io/gorm"
)

var (
	ErrReflectionNotFound         = errors.New("reflection not found")
	ErrReflectionAlreadySubmitted = errors.New("reflection already submitted for this date")
	ErrWorkoutSummaryRequired     = errors.New("workout summary is required")
	ErrInvalidRating              = errors.New("effort and energy must be between 1 and 10")
	ErrInvalidReflectionDate      = errors.New("date must be YYYY-MM-DD")
)

// ReflectionService handles daily training reflections
type ReflectionService struct {
	repo      repository.ReflectionRepository
	sanitizer *TextSanitizer
	loc       *time.Location
	now       func() time.Time
}

// NewReflectionService creates a new ReflectionService. Days are taken in loc.
func NewReflectionService(repo repository.ReflectionRepository, sanitizer *TextSanitizer, loc *time.Location) *ReflectionService {
	return &ReflectionService{
		repo:      repo,
		sanitizer: sanitizer,
		loc:       loc,
		now:       time.Now,
	}
}

// ReflectionDraft holds the defaults for a new reflection form.
type ReflectionDraft struct {
	Date   time.Time
	Effort int
	Energy int
}

func (s *ReflectionService) Draft() ReflectionDraft {
	return ReflectionDraft{
		Date:   s.today(),
		Effort: constants.DefaultRating,
		Energy: constants.DefaultRating,
	}
}

// SubmitReflectionInput represents an athlete's reflection form
type SubmitReflectionInput struct {
	AthleteID      string
	Date           string
	WorkoutSummary string
	Effort         int
	Energy         int
}

// Submit stores the reflection unless one already exists for that athlete
// and date, in which case ErrReflectionAlreadySubmitted is returned.
func (s *ReflectionService) Submit(ctx context.Context, input SubmitReflectionInput) (*models.Reflection, error) {
	summary := s.sanitizer.Clean(input.WorkoutSummary)
	if summary == "" {
		return nil, ErrWorkoutSummaryRequired
	}
	if !validRating(input.Effort) || !validRating(input.Energy) {
		return nil, ErrInvalidRating
	}

	date := s.today()
	if input.Date != "" {
		parsed, err := utils.ParseDate(input.Date)
		if err != nil {
			return nil, ErrInvalidReflectionDate
		}
		date = parsed
	}

	reflection := &models.Reflection{
		AthleteID:      input.AthleteID,
		Date:           date,
		WorkoutSummary: summary,
		Effort:         input.Effort,
		Energy:         input.Energy,
	}
	created, err := s.repo.CreateIfAbsent(ctx, reflection)
	if err != nil {
		return nil, fmt.Errorf("failed to save reflection: %w", err)
	}
	if !created {
		return nil, ErrReflectionAlreadySubmitted
	}
	return reflection, nil
}

// History returns one athlete's reflections, newest first.
func (s *ReflectionService) History(ctx context.Context, athleteID string) ([]models.Reflection, error) {
	reflections, err := s.repo.List(ctx, repository.ReflectionFilter{AthleteID: &athleteID})
	if err != nil {
		return nil, fmt.Errorf("failed to list reflections: %w", err)
	}
	return reflections, nil
}

// ListReflectionsInput holds the coach view filters
type ListReflectionsInput struct {
	AthleteID *string
	Date      *time.Time
}

// List returns the most recent reflections across the team.
func (s *ReflectionService) List(ctx context.Context, input ListReflectionsInput) ([]models.Reflection, error) {
	reflections, err := s.repo.List(ctx, repository.ReflectionFilter{
		AthleteID: input.AthleteID,
		Date:      input.Date,
		Limit:     constants.CoachReflectionLimit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list reflections: %w", err)
	}
	return reflections, nil
}

func (s *ReflectionService) Get(ctx context.Context, id string) (*models.Reflection, error) {
	reflection, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReflectionNotFound
		}
		return nil, fmt.Errorf("failed to load reflection: %w", err)
	}
	return reflection, nil
}

func validRating(v int) bool {
	return v >= constants.MinRating && v <= constants.MaxRating
}

// today is the team-local calendar day, stored as UTC midnight.
func (s *ReflectionService) today() time.Time {
	return utils.DayIn(s.now(), s.loc)
}
