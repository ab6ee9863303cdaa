package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "present"
	AttendanceLate    AttendanceStatus = "late"
	AttendanceAbsent  AttendanceStatus = "absent"
	AttendanceInjured AttendanceStatus = "injured"
)

func (s AttendanceStatus) Valid() bool {
	switch s {
	case AttendancePresent, AttendanceLate, AttendanceAbsent, AttendanceInjured:
		return true
	}
	return false
}

// AttendanceRecord is one athlete's check-in for one day.
// (athlete_id, date) is unique; writes go through an upsert.
type AttendanceRecord struct {
	ID        string           `gorm:"type:varchar(36);primarykey" json:"id"`
	AthleteID string           `gorm:"type:varchar(36);not null;uniqueIndex:idx_attendance_athlete_date" json:"athlete_id"`
	Date      time.Time        `gorm:"type:date;not null;uniqueIndex:idx_attendance_athlete_date" json:"date"`
	Status    AttendanceStatus `gorm:"type:varchar(20);not null" json:"status"`
	Note      *string          `gorm:"type:text" json:"note"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`

	// Relations
	Athlete *Profile `gorm:"foreignKey:AthleteID;references:UserID" json:"profile,omitempty"`
}

func (AttendanceRecord) TableName() string {
	return "attendance"
}

func (a *AttendanceRecord) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}
