package server

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/westosha-tf/team-portal/internal/constants"
	"github.com/westosha-tf/team-portal/internal/handlers"
	"github.com/westosha-tf/team-portal/internal/middleware"
	"github.com/westosha-tf/team-portal/internal/models"
	"github.com/westosha-tf/team-portal/internal/repository"
	"github.com/westosha-tf/team-portal/internal/services"
	"github.com/westosha-tf/team-portal/internal/storage"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Options carries the clients the portal is built from. They are created
// once by the caller and shared by every request.
type Options struct {
	DB           *gorm.DB
	ObjectStore  storage.ObjectStore
	Signer       *storage.URLSigner
	SessionStore sessions.Store
	Redis        *redis.Client
	Log          *zap.Logger

	// Location is the team's time zone for calendar feeds and "today".
	Location *time.Location

	AllowedOrigins  []string
	LoginRateLimit  int
	LoginRateWindow time.Duration
}

// Server is the assembled HTTP application.
type Server struct {
	Router    *gin.Engine
	Documents *services.DocumentService
	Sessions  *services.SessionService
}

// New wires repositories, services and handlers and registers every route.
func New(opts Options) *Server {
	log := opts.Log
	if log == nil {
		log = zap.NewNop()
	}

	// Repositories
	userRepo := repository.NewUserRepository(opts.DB)
	profileRepo := repository.NewProfileRepository(opts.DB)
	announcementRepo := repository.NewAnnouncementRepository(opts.DB)
	scheduleRepo := repository.NewScheduleRepository(opts.DB)
	attendanceRepo := repository.NewAttendanceRepository(opts.DB)
	reflectionRepo := repository.NewReflectionRepository(opts.DB)
	documentRepo := repository.NewDocumentRepository(opts.DB)

	// Services
	sanitizer := services.NewTextSanitizer()
	sessionService := services.NewSessionService(userRepo, log)
	roleService := services.NewRoleService(profileRepo, log)
	announcementService := services.NewAnnouncementService(announcementRepo, sanitizer)
	scheduleService := services.NewScheduleService(scheduleRepo, sanitizer, opts.Location)
	attendanceService := services.NewAttendanceService(attendanceRepo, sanitizer, opts.Location)
	reflectionService := services.NewReflectionService(reflectionRepo, sanitizer, opts.Location)
	documentService := services.NewDocumentService(documentRepo, opts.ObjectStore, opts.Signer, sanitizer, log)
	exportService := services.NewExportService(attendanceService, log)
	calendarService := services.NewCalendarService(scheduleService, opts.Location)

	// Handlers
	authHandler := handlers.NewAuthHandler(sessionService, roleService, log)
	healthHandler := handlers.NewHealthHandler(opts.DB)
	homeHandler := handlers.NewHomeHandler(announcementService, scheduleService, attendanceService)
	announcementHandler := handlers.NewAnnouncementHandler(announcementService)
	scheduleHandler := handlers.NewScheduleHandler(scheduleService, calendarService)
	attendanceHandler := handlers.NewAttendanceHandler(attendanceService, exportService)
	reflectionHandler := handlers.NewReflectionHandler(reflectionService)
	documentHandler := handlers.NewDocumentHandler(documentService, log)

	r := gin.New()
	r.MaxMultipartMemory = 8 << 20
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(log))
	if len(opts.AllowedOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     opts.AllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", constants.HeaderRequestID},
			ExposeHeaders:    []string{"Content-Disposition", constants.HeaderRequestID},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}
	r.Use(sessions.Sessions(constants.SessionCookieName, opts.SessionStore))
	r.Use(middleware.LoadSession(sessionService, log))

	r.GET("/health", healthHandler.Health)

	// Public pages
	r.GET("/", homeHandler.Home)
	r.GET("/announcements", announcementHandler.PublicList)
	r.GET("/schedule", scheduleHandler.List)
	r.GET("/schedule.ics", scheduleHandler.Calendar)
	r.GET("/docs", documentHandler.PublicList)
	r.GET("/docs/:id/download", documentHandler.Download)
	r.GET(constants.PathSignedFiles+"/:token", documentHandler.ServeFile)

	// Session
	r.GET(constants.PathLogin, authHandler.LoginPage)
	r.POST(constants.PathLogin,
		middleware.RateLimit(opts.Redis, opts.LoginRateLimit, opts.LoginRateWindow, log),
		authHandler.Login,
	)
	r.POST("/logout", authHandler.Logout)
	r.GET(constants.PathRedirect, authHandler.Redirect)

	// Coach routes
	coach := r.Group(constants.PathCoachHome)
	coach.Use(middleware.RequireRole(roleService, models.RoleCoach))
	{
		coach.GET("", homeHandler.CoachHome)

		coach.GET("/announcements", announcementHandler.CoachList)
		coach.POST("/announcements", announcementHandler.Create)
		coach.PATCH("/announcements/:id", announcementHandler.SetPinned)
		coach.DELETE("/announcements/:id", announcementHandler.Delete)

		coach.GET("/attendance", attendanceHandler.CoachList)
		coach.GET("/attendance/export", attendanceHandler.Export)

		coach.GET("/schedule", scheduleHandler.List)
		coach.POST("/schedule", scheduleHandler.Create)
		coach.PUT("/schedule/:id", scheduleHandler.Update)
		coach.DELETE("/schedule/:id", scheduleHandler.Delete)

		coach.GET("/reflections", reflectionHandler.CoachList)
		coach.GET("/reflections/:id", reflectionHandler.CoachGet)

		coach.GET("/docs", documentHandler.CoachList)
		coach.POST("/docs", documentHandler.Upload)
		coach.DELETE("/docs/:id", documentHandler.Delete)
		coach.GET("/docs/:id/download", documentHandler.Download)
	}

	// Athlete routes
	portal := r.Group(constants.PathAthleteHome)
	portal.Use(middleware.RequireRole(roleService, models.RoleAthlete))
	{
		portal.GET("", homeHandler.AthletePortal)
		portal.PUT("/attendance", attendanceHandler.CheckIn)
		portal.GET("/reflections", reflectionHandler.History)
		portal.GET("/reflections/new", reflectionHandler.NewForm)
		portal.POST("/reflections/new", reflectionHandler.Submit)
	}

	return &Server{
		Router:    r,
		Documents: documentService,
		Sessions:  sessionService,
	}
}
