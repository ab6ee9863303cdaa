package repository

import (
	"context"
	"time"

	"github.com/westosha-tf/team-portal/internal/models"
	"gorm.io/gorm"
)

// GormScheduleRepository is a GORM implementation of ScheduleRepository
type GormScheduleRepository struct {
	db *gorm.DB
}

// NewScheduleRepository creates a new ScheduleRepository
func NewScheduleRepository(db *gorm.DB) ScheduleRepository {
	return &GormScheduleRepository{db: db}
}

func (r *GormScheduleRepository) List(ctx context.Context) ([]models.ScheduleEvent, error) {
	var events []models.ScheduleEvent
	err := r.db.WithContext(ctx).
		Order("date ASC").
		Order("start_time ASC").
		Find(&events).Error
	if err != nil {
		return nil, err
	}
	return events, nil
}

func (r *GormScheduleRepository) NextOnOrAfter(ctx context.Context, day time.Time) (*models.ScheduleEvent, error) {
	var event models.ScheduleEvent
	err := r.db.WithContext(ctx).
		Where("date >= ?", day).
		Order("date ASC").
		Order("start_time ASC").
		First(&event).Error
	if err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *GormScheduleRepository) FindByID(ctx context.Context, id string) (*models.ScheduleEvent, error) {
	var event models.ScheduleEvent
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&event).Error; err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *GormScheduleRepository) Create(ctx context.Context, e *models.ScheduleEvent) error {
	return r.db.WithContext(ctx).Create(e).Error
}

// Update writes every editable column, so cleared optional fields become NULL.
func (r *GormScheduleRepository) Update(ctx context.Context, e *models.ScheduleEvent) error {
	result := r.db.WithContext(ctx).
		Model(&models.ScheduleEvent{}).
		Where("id = ?", e.ID).
		Select("date", "start_time", "type", "title", "location", "notes", "updated_at").
		Updates(e)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return r.exists(ctx, e.ID)
	}
	return nil
}

func (r *GormScheduleRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.ScheduleEvent{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// exists distinguishes a missing row from an update that changed nothing.
func (r *GormScheduleRepository) exists(ctx context.Context, id string) error {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.ScheduleEvent{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
