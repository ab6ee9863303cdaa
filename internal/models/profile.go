package models

import (
	"strings"
	"time"
)

type Role string

const (
	RoleCoach   Role = "coach"
	RoleAthlete Role = "athlete"
)

// Valid reports whether r is one of the known portal roles.
func (r Role) Valid() bool {
	return r == RoleCoach || r == RoleAthlete
}

// Profile holds per-user attributes, keyed by user id.
type Profile struct {
	UserID     string    `gorm:"type:varchar(36);primarykey" json:"user_id"`
	Role       Role      `gorm:"type:varchar(20)" json:"role"`
	FirstName  *string   `gorm:"type:varchar(100)" json:"first_name"`
	LastName   *string   `gorm:"type:varchar(100)" json:"last_name"`
	EventGroup *string   `gorm:"type:varchar(100)" json:"event_group"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// AthleteName renders the display name for an athlete, falling back to a
// shortened id when the profile has no name.
func AthleteName(p *Profile, athleteID string) string {
	if p != nil {
		var parts []string
		for _, part := range []*string{p.FirstName, p.LastName} {
			if part != nil && strings.TrimSpace(*part) != "" {
				parts = append(parts, strings.TrimSpace(*part))
			}
		}
		if len(parts) > 0 {
			return strings.Join(parts, " ")
		}
	}
	short := athleteID
	if len(short) > 6 {
		short = short[:6]
	}
	return "Athlete (" + short + "…)"
}
