package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var DocumentCategories = []string{"Athletic Forms", "Handbooks", "Meet Day", "Other"}

// Document is the metadata row for a stored file. FilePath is the object
// store key; the row owns the object's lifecycle.
type Document struct {
	ID          string         `gorm:"type:varchar(36);primarykey" json:"id"`
	Title       string         `gorm:"type:varchar(255);not null" json:"title"`
	Category    string         `gorm:"type:varchar(50);not null" json:"category"`
	Description *string        `gorm:"type:text" json:"description"`
	IsRequired  bool           `gorm:"not null" json:"is_required"`
	FilePath    string         `gorm:"type:varchar(512);not null" json:"file_path"`
	FileName    string         `gorm:"type:varchar(255);not null" json:"file_name"`
	MimeType    *string        `gorm:"type:varchar(255)" json:"mime_type"`
	FileSize    int64          `gorm:"not null" json:"file_size"`
	CreatedBy   string         `gorm:"type:varchar(36)" json:"created_by"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (d *Document) BeforeCreate(tx *gorm.DB) error {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	return nil
}

// IsDocumentCategory reports whether c is one of the fixed categories.
func IsDocumentCategory(c string) bool {
	for _, known := range DocumentCategories {
		if c == known {
			return true
		}
	}
	return false
}

// OrphanObject records a stored object with no metadata row, left behind
// when a compensating delete failed.
type OrphanObject struct {
	Key       string    `gorm:"column:object_key;type:varchar(512);primarykey" json:"key"`
	Reason    string    `gorm:"type:varchar(255)" json:"reason"`
	CreatedAt time.Time `json:"created_at"`
}
