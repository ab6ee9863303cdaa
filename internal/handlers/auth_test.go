package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/westosha-tf/team-portal/internal/constants"
	"github.com/westosha-tf/team-portal/internal/database"
	"github.com/westosha-tf/team-portal/internal/dto"
	"github.com/westosha-tf/team-portal/internal/middleware"
	"github.com/westosha-tf/team-portal/internal/models"
	"github.com/westosha-tf/team-portal/internal/repository"
	"github.com/westosha-tf/team-portal/internal/services"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type authTestEnv struct {
	db             *gorm.DB
	handler        *AuthHandler
	sessionService *services.SessionService
}

func setupAuthTestEnv(t *testing.T) authTestEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	require.NoError(t, db.AutoMigrate(database.Models()...))

	log := zap.NewNop()
	sessionService := services.NewSessionService(repository.NewUserRepository(db), log)
	roleService := services.NewRoleService(repository.NewProfileRepository(db), log)

	return authTestEnv{
		db:             db,
		handler:        NewAuthHandler(sessionService, roleService, log),
		sessionService: sessionService,
	}
}

func (env authTestEnv) router() *gin.Engine {
	r := gin.New()
	store := cookie.NewStore([]byte("secret"))
	r.Use(sessions.Sessions(constants.SessionCookieName, store))
	r.Use(middleware.LoadSession(env.sessionService, zap.NewNop()))
	r.GET("/login", env.handler.LoginPage)
	r.POST("/login", env.handler.Login)
	r.POST("/logout", env.handler.Logout)
	r.GET("/redirect", env.handler.Redirect)
	return r
}

func (env authTestEnv) register(t *testing.T, email string, role models.Role) *models.User {
	t.Helper()
	user, err := env.sessionService.Register(context.Background(), services.RegisterInput{
		Email:    email,
		Password: "supersecret",
		Role:     role,
	})
	require.NoError(t, err)
	return user
}

func login(t *testing.T, r *gin.Engine, email, password string) *httptest.ResponseRecorder {
	t.Helper()
	form := url.Values{"email": {email}, "password": {password}}
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// withCookies replays the cookies a response set. A session may be saved
// more than once per request, so only the last value of each name counts.
func withCookies(req *http.Request, w *httptest.ResponseRecorder) *http.Request {
	latest := map[string]*http.Cookie{}
	var order []string
	for _, c := range w.Result().Cookies() {
		if _, seen := latest[c.Name]; !seen {
			order = append(order, c.Name)
		}
		latest[c.Name] = c
	}
	for _, name := range order {
		req.AddCookie(latest[name])
	}
	return req
}

func TestAuthHandler_Login(t *testing.T) {
	env := setupAuthTestEnv(t)
	env.register(t, "coach@example.com", models.RoleCoach)
	r := env.router()

	w := login(t, r, "coach@example.com", "supersecret")

	require.Equal(t, http.StatusSeeOther, w.Code)
	require.Equal(t, constants.PathRedirect, w.Header().Get("Location"))
	require.NotEmpty(t, w.Result().Cookies(), "expected session cookie to be set")
}

func TestAuthHandler_LoginInvalidCredentials(t *testing.T) {
	env := setupAuthTestEnv(t)
	env.register(t, "coach@example.com", models.RoleCoach)
	r := env.router()

	w := login(t, r, "coach@example.com", "wrong-password")
	require.Equal(t, http.StatusUnauthorized, w.Code)

	w = login(t, r, "nobody@example.com", "supersecret")
	require.Equal(t, http.StatusUnauthorized, w.Code)

	w = login(t, r, "not-an-email", "supersecret")
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuthHandler_RedirectDispatch(t *testing.T) {
	env := setupAuthTestEnv(t)
	env.register(t, "coach@example.com", models.RoleCoach)
	env.register(t, "athlete@example.com", models.RoleAthlete)
	r := env.router()

	tests := []struct {
		email    string
		location string
	}{
		{"coach@example.com", constants.PathCoachHome},
		{"athlete@example.com", constants.PathAthleteHome},
	}
	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			loginResp := login(t, r, tt.email, "supersecret")
			require.Equal(t, http.StatusSeeOther, loginResp.Code)

			req := withCookies(httptest.NewRequest(http.MethodGet, "/redirect", nil), loginResp)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			require.Equal(t, http.StatusFound, w.Code)
			require.Equal(t, tt.location, w.Header().Get("Location"))
		})
	}
}

func TestAuthHandler_RedirectWithoutSession(t *testing.T) {
	env := setupAuthTestEnv(t)
	r := env.router()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/redirect", nil))

	require.Equal(t, http.StatusFound, w.Code)
	require.Equal(t, constants.PathLogin, w.Header().Get("Location"))
}

func TestAuthHandler_RedirectRoleLookupFailure(t *testing.T) {
	env := setupAuthTestEnv(t)
	user := env.register(t, "lost@example.com", models.RoleAthlete)
	r := env.router()

	loginResp := login(t, r, "lost@example.com", "supersecret")
	require.Equal(t, http.StatusSeeOther, loginResp.Code)

	// the account survives but its profile row does not
	require.NoError(t, env.db.Where("user_id = ?", user.ID).Delete(&models.Profile{}).Error)

	req := withCookies(httptest.NewRequest(http.MethodGet, "/redirect", nil), loginResp)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var response dto.RedirectFailure
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, "Could not load your account role.", response.Message)
}

func TestAuthHandler_Logout(t *testing.T) {
	env := setupAuthTestEnv(t)
	env.register(t, "athlete@example.com", models.RoleAthlete)
	r := env.router()

	loginResp := login(t, r, "athlete@example.com", "supersecret")

	req := withCookies(httptest.NewRequest(http.MethodPost, "/logout", nil), loginResp)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusSeeOther, w.Code)
	require.Equal(t, constants.PathLogin, w.Header().Get("Location"))

	// the cleared cookie no longer identifies anyone
	req = withCookies(httptest.NewRequest(http.MethodGet, "/redirect", nil), w)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusFound, w.Code)
	require.Equal(t, constants.PathLogin, w.Header().Get("Location"))
}

func TestAuthHandler_LoginPage(t *testing.T) {
	env := setupAuthTestEnv(t)
	env.register(t, "coach@example.com", models.RoleCoach)
	r := env.router()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/login", nil))
	require.Equal(t, http.StatusOK, w.Code)

	loginResp := login(t, r, "coach@example.com", "supersecret")
	req := withCookies(httptest.NewRequest(http.MethodGet, "/login", nil), loginResp)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusFound, w.Code)
	require.Equal(t, constants.PathRedirect, w.Header().Get("Location"))
}
