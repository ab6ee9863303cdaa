package constants

import "time"

// Session and context keys
const (
	SessionCookieName = "portal_session"
	ContextKeyUserID  = "user_id"
	ContextKeyUser    = "user"
	ContextKeyRole    = "role"
	ContextKeyReqID   = "request_id"

	HeaderRequestID = "X-Request-ID"
)

// Landing pages
const (
	PathLogin       = "/login"
	PathRedirect    = "/redirect"
	PathCoachHome   = "/coach"
	PathAthleteHome = "/portal"
	PathSignedFiles = "/files"
)

// List limits
const (
	PublicAnnouncementLimit = 50
	CoachAnnouncementLimit  = 100
	CoachReflectionLimit    = 200
)

// Reflection scale
const (
	MinRating     = 1
	MaxRating     = 10
	DefaultRating = 7
)

const (
	MinPasswordLength = 8

	// SignedURLTTL is how long a document download link stays valid.
	SignedURLTTL = 60 * time.Second

	// MaxUploadSize caps multipart document uploads.
	MaxUploadSize = 25 << 20

	DocumentUploadPrefix = "coach_uploads"
	DefaultCategory      = "Other"

	DateLayout = "2006-01-02"
)
