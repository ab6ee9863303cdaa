package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/westosha-tf/team-portal/internal/models"
	"github.com/westosha-tf/team-portal/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrAnnouncementNotFound = errors.New("announcement not found")
	ErrTitleRequired        = errors.New("title is required")
	ErrBodyRequired         = errors.New("body is required")
)

// AnnouncementService handles announcement business logic
type AnnouncementService struct {
	repo      repository.AnnouncementRepository
	sanitizer *TextSanitizer
	now       func() time.Time
}

// NewAnnouncementService creates a new AnnouncementService
func NewAnnouncementService(repo repository.AnnouncementRepository, sanitizer *TextSanitizer) *AnnouncementService {
	return &AnnouncementService{
		repo:      repo,
		sanitizer: sanitizer,
		now:       time.Now,
	}
}

// List returns up to limit announcements, pinned first then newest first.
func (s *AnnouncementService) List(ctx context.Context, limit int) ([]models.Announcement, error) {
	announcements, err := s.repo.List(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list announcements: %w", err)
	}
	return announcements, nil
}

// Latest returns the top announcement, or nil when there are none.
func (s *AnnouncementService) Latest(ctx context.Context) (*models.Announcement, error) {
	announcements, err := s.List(ctx, 1)
	if err != nil {
		return nil, err
	}
	if len(announcements) == 0 {
		return nil, nil
	}
	return &announcements[0], nil
}

// CreateAnnouncementInput represents input for posting an announcement
type CreateAnnouncementInput struct {
	Title     string
	Body      string
	Pinned    bool
	CreatedBy string
}

// Create publishes an announcement immediately.
func (s *AnnouncementService) Create(ctx context.Context, input CreateAnnouncementInput) (*models.Announcement, error) {
	title := s.sanitizer.Clean(input.Title)
	if title == "" {
		return nil, ErrTitleRequired
	}
	body := s.sanitizer.Clean(input.Body)
	if body == "" {
		return nil, ErrBodyRequired
	}

	announcement := &models.Announcement{
		Title:       title,
		Body:        body,
		Pinned:      input.Pinned,
		PublishedAt: s.now().UTC(),
		CreatedBy:   input.CreatedBy,
	}
	if err := s.repo.Create(ctx, announcement); err != nil {
		return nil, fmt.Errorf("failed to create announcement: %w", err)
	}
	return announcement, nil
}

// SetPinned changes only the pinned flag.
func (s *AnnouncementService) SetPinned(ctx context.Context, id string, pinned bool) error {
	if err := s.repo.SetPinned(ctx, id, pinned); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAnnouncementNotFound
		}
		return fmt.Errorf("failed to update announcement: %w", err)
	}
	return nil
}

func (s *AnnouncementService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAnnouncementNotFound
		}
		return fmt.Errorf("failed to delete announcement: %w", err)
	}
	return nil
}
