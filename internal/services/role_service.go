package services

import (
	"context"
	"errors"

	"github.com/westosha-tf/team-portal/internal/constants"
	"github.com/westosha-tf/team-portal/internal/models"
	"github.com/westosha-tf/team-portal/internal/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Outcome is the result of a role check for one request.
type Outcome int

const (
	Authorized Outcome = iota
	Unauthenticated
	WrongRole
)

func (o Outcome) String() string {
	switch o {
	case Authorized:
		return "authorized"
	case Unauthenticated:
		return "unauthenticated"
	case WrongRole:
		return "wrong_role"
	default:
		return "unknown"
	}
}

// Decision carries the outcome and, for Authorized and WrongRole, the
// caller's actual role. Navigation policy is left to the caller.
type Decision struct {
	Outcome Outcome
	Role    models.Role
}

// RoleService resolves profile roles and authorizes role-gated pages.
type RoleService struct {
	profileRepo repository.ProfileRepository
	log         *zap.Logger
}

// NewRoleService creates a new RoleService.
func NewRoleService(profileRepo repository.ProfileRepository, log *zap.Logger) *RoleService {
	return &RoleService{
		profileRepo: profileRepo,
		log:         log,
	}
}

// ResolveRole looks up the role for userID. Lookup errors, a missing
// profile and an unknown role all resolve to ok=false; there is no default.
func (s *RoleService) ResolveRole(ctx context.Context, userID string) (models.Role, bool) {
	profile, err := s.profileRepo.FindByUserID(ctx, userID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.log.Warn("failed to resolve role", zap.String("user_id", userID), zap.Error(err))
		}
		return "", false
	}
	if !profile.Role.Valid() {
		return "", false
	}
	return profile.Role, true
}

// Authorize decides whether user may open a page that requires role.
func (s *RoleService) Authorize(ctx context.Context, user *models.User, required models.Role) Decision {
	if user == nil {
		return Decision{Outcome: Unauthenticated}
	}

	role, ok := s.ResolveRole(ctx, user.ID)
	if !ok {
		return Decision{Outcome: Unauthenticated}
	}
	if role != required {
		return Decision{Outcome: WrongRole, Role: role}
	}
	return Decision{Outcome: Authorized, Role: role}
}

// LandingPath returns the home page for role.
func LandingPath(role models.Role) string {
	switch role {
	case models.RoleCoach:
		return constants.PathCoachHome
	case models.RoleAthlete:
		return constants.PathAthleteHome
	default:
		return constants.PathLogin
	}
}
