package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type EventType string

const (
	EventTypePractice EventType = "practice"
	EventTypeMeet     EventType = "meet"
)

func (t EventType) Valid() bool {
	return t == EventTypePractice || t == EventTypeMeet
}

type ScheduleEvent struct {
	ID        string          `gorm:"type:varchar(36);primarykey" json:"id"`
	Date      time.Time       `gorm:"type:date;not null;index" json:"date"`
	StartTime *datatypes.Time `gorm:"type:time" json:"start_time"`
	Type      EventType       `gorm:"type:varchar(20);not null" json:"type"`
	Title     string          `gorm:"type:varchar(255);not null" json:"title"`
	Location  *string         `gorm:"type:varchar(255)" json:"location"`
	Notes     *string         `gorm:"type:text" json:"notes"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

func (e *ScheduleEvent) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	return nil
}
