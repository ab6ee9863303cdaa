package dto

import (
	"fmt"
	"strings"
	"time"

	"github.com/westosha-tf/team-portal/internal/models"
	"github.com/westosha-tf/team-portal/internal/utils"
)

// UserDTO represents the signed-in user in API responses
type UserDTO struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// AnnouncementDTO represents an announcement in API responses
type AnnouncementDTO struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Body        string    `json:"body"`
	Pinned      bool      `json:"pinned"`
	PublishedAt time.Time `json:"published_at"`
}

// ScheduleEventDTO represents a schedule event in API responses
type ScheduleEventDTO struct {
	ID        string  `json:"id"`
	Date      string  `json:"date"`
	StartTime *string `json:"start_time"`
	Type      string  `json:"type"`
	Label     string  `json:"label"`
	Title     string  `json:"title"`
	Location  *string `json:"location"`
	Notes     *string `json:"notes"`
}

// AttendanceDTO represents an attendance record in API responses
type AttendanceDTO struct {
	ID          string  `json:"id"`
	AthleteID   string  `json:"athlete_id"`
	AthleteName string  `json:"athlete_name"`
	EventGroup  *string `json:"event_group"`
	Date        string  `json:"date"`
	Status      string  `json:"status"`
	StatusLabel string  `json:"status_label"`
	Note        *string `json:"note"`
}

// ReflectionDTO represents a reflection in API responses
type ReflectionDTO struct {
	ID             string    `json:"id"`
	AthleteID      string    `json:"athlete_id"`
	AthleteName    string    `json:"athlete_name"`
	Date           string    `json:"date"`
	WorkoutSummary string    `json:"workout_summary"`
	Effort         int       `json:"effort"`
	Energy         int       `json:"energy"`
	CreatedAt      time.Time `json:"created_at"`
}

// DocumentDTO represents a document row in API responses
type DocumentDTO struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Category    string    `json:"category"`
	Description *string   `json:"description"`
	IsRequired  bool      `json:"is_required"`
	FileName    string    `json:"file_name"`
	MimeType    *string   `json:"mime_type"`
	FileSize    int64     `json:"file_size"`
	SizeLabel   string    `json:"size_label"`
	DownloadURL string    `json:"download_url"`
	CreatedAt   time.Time `json:"created_at"`
}

// ToUserDTO converts a user model to its response shape
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:    user.ID,
		Email: user.Email,
	}
}

func ToAnnouncementDTO(a models.Announcement) AnnouncementDTO {
	return AnnouncementDTO{
		ID:          a.ID,
		Title:       a.Title,
		Body:        a.Body,
		Pinned:      a.Pinned,
		PublishedAt: a.PublishedAt,
	}
}

func ToAnnouncementDTOs(list []models.Announcement) []AnnouncementDTO {
	out := make([]AnnouncementDTO, 0, len(list))
	for _, a := range list {
		out = append(out, ToAnnouncementDTO(a))
	}
	return out
}

func ToScheduleEventDTO(e models.ScheduleEvent) ScheduleEventDTO {
	dto := ScheduleEventDTO{
		ID:       e.ID,
		Date:     utils.FormatDate(e.Date),
		Type:     string(e.Type),
		Label:    strings.ToUpper(string(e.Type)),
		Title:    e.Title,
		Location: e.Location,
		Notes:    e.Notes,
	}
	if e.StartTime != nil {
		start := e.StartTime.String()
		if len(start) > 5 {
			start = start[:5]
		}
		dto.StartTime = &start
	}
	return dto
}

func ToScheduleEventDTOs(list []models.ScheduleEvent) []ScheduleEventDTO {
	out := make([]ScheduleEventDTO, 0, len(list))
	for _, e := range list {
		out = append(out, ToScheduleEventDTO(e))
	}
	return out
}

// StatusLabel renders an attendance status, or "Not checked in" for none.
func StatusLabel(rec *models.AttendanceRecord) string {
	if rec == nil {
		return "Not checked in"
	}
	switch rec.Status {
	case models.AttendancePresent:
		return "Present"
	case models.AttendanceLate:
		return "Late"
	case models.AttendanceAbsent:
		return "Absent"
	case models.AttendanceInjured:
		return "Injured"
	default:
		return "Not checked in"
	}
}

func ToAttendanceDTO(rec models.AttendanceRecord) AttendanceDTO {
	dto := AttendanceDTO{
		ID:          rec.ID,
		AthleteID:   rec.AthleteID,
		AthleteName: models.AthleteName(rec.Athlete, rec.AthleteID),
		Date:        utils.FormatDate(rec.Date),
		Status:      string(rec.Status),
		StatusLabel: StatusLabel(&rec),
		Note:        rec.Note,
	}
	if rec.Athlete != nil {
		dto.EventGroup = rec.Athlete.EventGroup
	}
	return dto
}

func ToAttendanceDTOs(list []models.AttendanceRecord) []AttendanceDTO {
	out := make([]AttendanceDTO, 0, len(list))
	for _, rec := range list {
		out = append(out, ToAttendanceDTO(rec))
	}
	return out
}

func ToReflectionDTO(r models.Reflection) ReflectionDTO {
	return ReflectionDTO{
		ID:             r.ID,
		AthleteID:      r.AthleteID,
		AthleteName:    models.AthleteName(r.Athlete, r.AthleteID),
		Date:           utils.FormatDate(r.Date),
		WorkoutSummary: r.WorkoutSummary,
		Effort:         r.Effort,
		Energy:         r.Energy,
		CreatedAt:      r.CreatedAt,
	}
}

func ToReflectionDTOs(list []models.Reflection) []ReflectionDTO {
	out := make([]ReflectionDTO, 0, len(list))
	for _, r := range list {
		out = append(out, ToReflectionDTO(r))
	}
	return out
}

// ToDocumentDTO converts a document; downloadPrefix is "/docs" or "/coach/docs".
func ToDocumentDTO(d models.Document, downloadPrefix string) DocumentDTO {
	return DocumentDTO{
		ID:          d.ID,
		Title:       d.Title,
		Category:    d.Category,
		Description: d.Description,
		IsRequired:  d.IsRequired,
		FileName:    d.FileName,
		MimeType:    d.MimeType,
		FileSize:    d.FileSize,
		SizeLabel:   utils.FormatBytes(d.FileSize),
		DownloadURL: fmt.Sprintf("%s/%s/download", downloadPrefix, d.ID),
		CreatedAt:   d.CreatedAt,
	}
}
