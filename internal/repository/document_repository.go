package repository

import (
	"context"

	"github.com/westosha-tf/team-portal/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormDocumentRepository is a GORM implementation of DocumentRepository
type GormDocumentRepository struct {
	db *gorm.DB
}

// NewDocumentRepository creates a new DocumentRepository
func NewDocumentRepository(db *gorm.DB) DocumentRepository {
	return &GormDocumentRepository{db: db}
}

func (r *GormDocumentRepository) Create(ctx context.Context, doc *models.Document) error {
	return r.db.WithContext(ctx).Create(doc).Error
}

func (r *GormDocumentRepository) List(ctx context.Context, category *string) ([]models.Document, error) {
	query := r.db.WithContext(ctx)
	if category != nil {
		query = query.Where("category = ?", *category)
	}

	var docs []models.Document
	err := query.
		Order("is_required DESC").
		Order("created_at DESC").
		Find(&docs).Error
	if err != nil {
		return nil, err
	}
	return docs, nil
}

func (r *GormDocumentRepository) FindByID(ctx context.Context, id string) (*models.Document, error) {
	var doc models.Document
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&doc).Error; err != nil {
		return nil, err
	}
	return &doc, nil
}

func (r *GormDocumentRepository) FindByFilePath(ctx context.Context, key string) (*models.Document, error) {
	var doc models.Document
	if err := r.db.WithContext(ctx).Where("file_path = ?", key).First(&doc).Error; err != nil {
		return nil, err
	}
	return &doc, nil
}

func (r *GormDocumentRepository) SoftDelete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Document{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *GormDocumentRepository) HardDelete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Unscoped().Where("id = ?", id).Delete(&models.Document{}).Error
}

func (r *GormDocumentRepository) ListSoftDeleted(ctx context.Context) ([]models.Document, error) {
	var docs []models.Document
	err := r.db.WithContext(ctx).
		Unscoped().
		Where("deleted_at IS NOT NULL").
		Find(&docs).Error
	if err != nil {
		return nil, err
	}
	return docs, nil
}

func (r *GormDocumentRepository) RecordOrphan(ctx context.Context, key, reason string) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models.OrphanObject{Key: key, Reason: reason}).Error
}

func (r *GormDocumentRepository) ListOrphans(ctx context.Context) ([]models.OrphanObject, error) {
	var orphans []models.OrphanObject
	if err := r.db.WithContext(ctx).Order("created_at ASC").Find(&orphans).Error; err != nil {
		return nil, err
	}
	return orphans, nil
}

func (r *GormDocumentRepository) DeleteOrphan(ctx context.Context, key string) error {
	return r.db.WithContext(ctx).Where("object_key = ?", key).Delete(&models.OrphanObject{}).Error
}
