package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/itfy/evoting-admin/internal/core/domain"
	"github.com/itfy/evoting-admin/internal/core/ports"
)

// dummyHash is compared against when the email lookup misses so that the
// response takes the same time whether or not the account exists.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("evoting-admin-dummy"), bcrypt.DefaultCost)

// AuthService implements operator login for both credential and key-holder
// sessions.
type AuthService struct {
	users    ports.UserRepository
	roles    ports.RoleRepository
	adminKey string
	log      zerolog.Logger
}

func NewAuthService(users ports.UserRepository, roles ports.RoleRepository, adminKey string, log zerolog.Logger) *AuthService {
	return &AuthService{users: users, roles: roles, adminKey: adminKey, log: log}
}

// LoginWithKey checks key against the configured elevated-access secret.
// An unset secret disables key-holder login entirely.
func (s *AuthService) LoginWithKey(key string) error {
	if s.adminKey == "" {
		return domain.ErrInvalidKey
	}
	if subtle.ConstantTimeCompare([]byte(key), []byte(s.adminKey)) != 1 {
		return domain.ErrInvalidKey
	}
	s.log.Info().Msg("key-holder login")
	return nil
}

// LoginWithCredentials verifies an email/password pair and resolves the
// user's role. Both an unknown email and a wrong password come back as
// domain.ErrInvalidCredentials so the caller cannot distinguish them.
func (s *AuthService) LoginWithCredentials(ctx context.Context, email, password string) (*domain.User, *domain.Role, error) {
	if email == "" || password == "" {
		return nil, nil, domain.ErrInvalidCredentials
	}

	// Emails are stored lowercased; accept any casing at login.
	user, err := s.users.FindByEmail(ctx, strings.ToLower(email))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			// Burn a comparison anyway to keep timing flat.
			_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
			return nil, nil, domain.ErrInvalidCredentials
		}
		return nil, nil, err
	}

	if !user.VerifyPassword(password) {
		return nil, nil, domain.ErrInvalidCredentials
	}

	var role *domain.Role
	if user.RoleID != "" {
		role, err = s.roles.FindByID(ctx, user.RoleID)
		if err != nil {
			if !errors.Is(err, domain.ErrRoleNotFound) {
				return nil, nil, err
			}
			// A dangling role reference must not block login.
			s.log.Warn().Str("user_id", user.ID).Str("role_id", user.RoleID).Msg("role reference does not resolve")
			role = nil
		}
	}

	s.log.Info().Str("user_id", user.ID).Str("email", user.Email).Msg("user login")
	return user, role, nil
}
