package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/westosha-tf/team-portal/internal/constants"
	"github.com/westosha-tf/team-portal/internal/models"
	"github.com/westosha-tf/team-portal/internal/repository"
	"github.com/westosha-tf/team-portal/internal/utils"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrEmailRequired        = errors.New("email is required")
	ErrEmailTaken           = errors.New("email already registered")
	ErrInvalidCredentials   = errors.New("invalid email or password")
	ErrPasswordTooShort     = errors.New("password too short")
	ErrInvalidRole          = errors.New("role must be coach or athlete")
	ErrFailedToHashPassword = errors.New("failed to hash password")
	ErrFailedToCreateUser   = errors.New("failed to create user")
	ErrFailedToSaveProfile  = errors.New("failed to save profile")
)

// SessionService resolves the signed-in identity and manages accounts.
type SessionService struct {
	userRepo repository.UserRepository
	log      *zap.Logger
}

// NewSessionService creates a new SessionService.
func NewSessionService(userRepo repository.UserRepository, log *zap.Logger) *SessionService {
	return &SessionService{
		userRepo: userRepo,
		log:      log,
	}
}

// CurrentUser re-reads the user behind a session id. It returns nil when
// there is no identity; lookup failures are logged and also yield nil.
func (s *SessionService) CurrentUser(ctx context.Context, userID string) *models.User {
	if userID == "" {
		return nil
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.log.Warn("failed to load session user", zap.String("user_id", userID), zap.Error(err))
		}
		return nil
	}
	return user
}

// SignIn verifies credentials and returns the authenticated user.
func (s *SessionService) SignIn(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// RegisterInput represents the information needed to create an account.
type RegisterInput struct {
	Email      string
	Password   string
	Role       models.Role
	FirstName  string
	LastName   string
	EventGroup string
}

// Register creates a user together with its profile.
func (s *SessionService) Register(ctx context.Context, input RegisterInput) (*models.User, error) {
	email := strings.TrimSpace(input.Email)
	if email == "" {
		return nil, ErrEmailRequired
	}
	if len(input.Password) < constants.MinPasswordLength {
		return nil, ErrPasswordTooShort
	}
	if !input.Role.Valid() {
		return nil, ErrInvalidRole
	}

	if _, err := s.userRepo.FindByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, ErrFailedToHashPassword
	}

	user := &models.User{
		Email:        email,
		PasswordHash: string(hashedPassword),
	}
	profile := &models.Profile{
		Role:       input.Role,
		FirstName:  utils.NilIfBlank(&input.FirstName),
		LastName:   utils.NilIfBlank(&input.LastName),
		EventGroup: utils.NilIfBlank(&input.EventGroup),
	}

	if err := s.userRepo.CreateWithProfile(ctx, user, profile); err != nil {
		switch {
		case errors.Is(err, repository.ErrCreateUser):
			return nil, ErrFailedToCreateUser
		case errors.Is(err, repository.ErrCreateProfile):
			return nil, ErrFailedToSaveProfile
		default:
			return nil, fmt.Errorf("failed to complete registration: %w", err)
		}
	}

	user.Profile = profile
	return user, nil
}
