package dto

// Page view models. Each protected or public page route returns one of these.

// HomePage is the public landing page
type HomePage struct {
	NextEvent          *ScheduleEventDTO `json:"next_event"`
	LatestAnnouncement *AnnouncementDTO  `json:"latest_announcement"`
}

type AnnouncementsPage struct {
	Announcements []AnnouncementDTO `json:"announcements"`
}

type SchedulePage struct {
	Events []ScheduleEventDTO `json:"events"`
}

// DocumentsPage groups documents into required and other sections
type DocumentsPage struct {
	Categories []string      `json:"categories"`
	Selected   string        `json:"selected"`
	Required   []DocumentDTO `json:"required"`
	Other      []DocumentDTO `json:"other"`
}

// RedirectFailure is shown when the post-login role lookup fails. It is
// terminal; the page does not retry.
type RedirectFailure struct {
	Message string `json:"message"`
}

// CoachHome is the coach landing page
type CoachHome struct {
	User     UserDTO  `json:"user"`
	Sections []string `json:"sections"`
}

type CoachAttendancePage struct {
	Date    *string         `json:"date"`
	Records []AttendanceDTO `json:"records"`
}

type CoachReflectionsPage struct {
	AthleteID   *string         `json:"athlete_id"`
	Date        *string         `json:"date"`
	Reflections []ReflectionDTO `json:"reflections"`
}

// AthletePortal is the athlete landing page with today's check-in state
type AthletePortal struct {
	User        UserDTO        `json:"user"`
	Date        string         `json:"date"`
	Attendance  *AttendanceDTO `json:"attendance"`
	StatusLabel string         `json:"status_label"`
}

type ReflectionHistoryPage struct {
	Reflections []ReflectionDTO `json:"reflections"`
}

// ReflectionForm carries the defaults for a new reflection
type ReflectionForm struct {
	Date   string `json:"date"`
	Effort int    `json:"effort"`
	Energy int    `json:"energy"`
}
