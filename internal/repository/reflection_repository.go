package repository

import (
	"context"

	"github.com/westosha-tf/team-portal/internal/database"
	"github.com/westosha-tf/team-portal/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormReflectionRepository is a GORM implementation of ReflectionRepository
type GormReflectionRepository struct {
	db *gorm.DB
}

// NewReflectionRepository creates a new ReflectionRepository
func NewReflectionRepository(db *gorm.DB) ReflectionRepository {
	return &GormReflectionRepository{db: db}
}

// CreateIfAbsent relies on the (athlete_id, date) unique index, so two
// concurrent submissions for the same day cannot both succeed.
func (r *GormReflectionRepository) CreateIfAbsent(ctx context.Context, refl *models.Reflection) (bool, error) {
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(refl)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *GormReflectionRepository) List(ctx context.Context, filter ReflectionFilter) ([]models.Reflection, error) {
	query := r.db.WithContext(ctx).Preload("Athlete")
	if filter.AthleteID != nil {
		query = query.Where("athlete_id = ?", *filter.AthleteID)
	}

	var reflections []models.Reflection
	err := query.
		Scopes(database.OnDate("date", filter.Date), database.Limit(filter.Limit)).
		Order("date DESC").
		Order("created_at DESC").
		Find(&reflections).Error
	if err != nil {
		return nil, err
	}
	return reflections, nil
}

func (r *GormReflectionRepository) FindByID(ctx context.Context, id string) (*models.Reflection, error) {
	var refl models.Reflection
	if err := r.db.WithContext(ctx).Preload("Athlete").Where("id = ?", id).First(&refl).Error; err != nil {
		return nil, err
	}
	return &refl, nil
}
