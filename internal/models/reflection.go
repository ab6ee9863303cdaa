package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Reflection is an athlete's daily training log entry.
type Reflection struct {
	ID             string    `gorm:"type:varchar(36);primarykey" json:"id"`
	AthleteID      string    `gorm:"type:varchar(36);not null;uniqueIndex:idx_reflections_athlete_date" json:"athlete_id"`
	Date           time.Time `gorm:"type:date;not null;uniqueIndex:idx_reflections_athlete_date" json:"date"`
	WorkoutSummary string    `gorm:"type:text;not null" json:"workout_summary"`
	Effort         int       `gorm:"not null" json:"effort"`
	Energy         int       `gorm:"not null" json:"energy"`
	CreatedAt      time.Time `json:"created_at"`

	// Relations
	Athlete *Profile `gorm:"foreignKey:AthleteID;references:UserID" json:"profile,omitempty"`
}

func (r *Reflection) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}
