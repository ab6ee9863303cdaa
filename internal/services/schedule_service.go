package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/westosha-tf/team-portal/internal/models"
	"github.com/westosha-tf/team-portal/internal/repository"
	"github.com/westosha-tf/team-portal/internal/utils"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	ErrEventNotFound     = errors.New("schedule event not found")
	ErrInvalidEventType  = errors.New("type must be practice or meet")
	ErrInvalidEventDate  = errors.New("date must be YYYY-MM-DD")
	ErrInvalidEventStart = errors.New("start time must be HH:MM")
)

// ScheduleService handles schedule event business logic
type ScheduleService struct {
	repo      repository.ScheduleRepository
	sanitizer *TextSanitizer
	loc       *time.Location
	now       func() time.Time
}

// NewScheduleService creates a new ScheduleService. Days are taken in loc.
func NewScheduleService(repo repository.ScheduleRepository, sanitizer *TextSanitizer, loc *time.Location) *ScheduleService {
	return &ScheduleService{
		repo:      repo,
		sanitizer: sanitizer,
		loc:       loc,
		now:       time.Now,
	}
}

// ScheduleEventInput is the form payload for creating or editing an event.
// Blank optional fields are stored as NULL.
type ScheduleEventInput struct {
	Date      string
	StartTime string
	Type      string
	Title     string
	Location  *string
	Notes     *string
}

func (s *ScheduleService) List(ctx context.Context) ([]models.ScheduleEvent, error) {
	events, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list schedule events: %w", err)
	}
	return events, nil
}

// Next returns the first event from today onward, or nil when none is planned.
func (s *ScheduleService) Next(ctx context.Context) (*models.ScheduleEvent, error) {
	event, err := s.repo.NextOnOrAfter(ctx, s.today())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load next event: %w", err)
	}
	return event, nil
}

func (s *ScheduleService) Create(ctx context.Context, input ScheduleEventInput) (*models.ScheduleEvent, error) {
	event, err := s.build(input)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, event); err != nil {
		return nil, fmt.Errorf("failed to create schedule event: %w", err)
	}
	return event, nil
}

func (s *ScheduleService) Update(ctx context.Context, id string, input ScheduleEventInput) (*models.ScheduleEvent, error) {
	event, err := s.build(input)
	if err != nil {
		return nil, err
	}
	event.ID = id
	if err := s.repo.Update(ctx, event); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to update schedule event: %w", err)
	}
	return event, nil
}

func (s *ScheduleService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrEventNotFound
		}
		return fmt.Errorf("failed to delete schedule event: %w", err)
	}
	return nil
}

func (s *ScheduleService) build(input ScheduleEventInput) (*models.ScheduleEvent, error) {
	title := s.sanitizer.Clean(input.Title)
	if title == "" {
		return nil, ErrTitleRequired
	}

	eventType := models.EventType(strings.ToLower(strings.TrimSpace(input.Type)))
	if !eventType.Valid() {
		return nil, ErrInvalidEventType
	}

	date, err := utils.ParseDate(input.Date)
	if err != nil {
		return nil, ErrInvalidEventDate
	}

	event := &models.ScheduleEvent{
		Date:     date,
		Type:     eventType,
		Title:    title,
		Location: s.sanitizer.CleanOptional(input.Location),
		Notes:    s.sanitizer.CleanOptional(input.Notes),
	}

	if start := strings.TrimSpace(input.StartTime); start != "" {
		h, m, sec, err := utils.ParseClock(start)
		if err != nil {
			return nil, ErrInvalidEventStart
		}
		t := datatypes.NewTime(h, m, sec, 0)
		event.StartTime = &t
	}

	return event, nil
}

// today is the team-local calendar day, stored as UTC midnight.
func (s *ScheduleService) today() time.Time {
	return utils.DayIn(s.now(), s.loc)
}
