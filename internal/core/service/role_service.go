package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/itfy/evoting-admin/internal/core/domain"
	"github.com/itfy/evoting-admin/internal/core/ports"
)

// RoleAdminService implements the privileged role-management operations.
type RoleAdminService struct {
	users ports.UserRepository
	roles ports.RoleRepository
	log   zerolog.Logger
}

func NewRoleAdminService(users ports.UserRepository, roles ports.RoleRepository, log zerolog.Logger) *RoleAdminService {
	return &RoleAdminService{users: users, roles: roles, log: log}
}

// AssignRole points the selected user's role reference at the selected role.
// Both lookups must succeed before anything is written.
func (s *RoleAdminService) AssignRole(ctx context.Context, userSel ports.UserSelector, roleSel ports.RoleSelector) (*domain.User, *domain.Role, error) {
	user, err := s.findUser(ctx, userSel)
	if err != nil {
		return nil, nil, err
	}
	role, err := s.findRole(ctx, roleSel)
	if err != nil {
		return nil, nil, err
	}

	if err := s.users.AssignRole(ctx, user.ID, role.ID); err != nil {
		return nil, nil, err
	}
	user.RoleID = role.ID

	s.log.Info().Str("user_id", user.ID).Str("role_id", role.ID).Str("role", role.Name).Msg("role assigned")
	return user, role, nil
}

// CheckUserRole resolves the role currently assigned to the user with the
// given email. The returned role is nil when none is assigned.
func (s *RoleAdminService) CheckUserRole(ctx context.Context, email string) (*domain.User, *domain.Role, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, nil, err
	}
	if user.RoleID == "" {
		return user, nil, nil
	}
	role, err := s.roles.FindByID(ctx, user.RoleID)
	if err != nil {
		if errors.Is(err, domain.ErrRoleNotFound) {
			return user, nil, nil
		}
		return nil, nil, err
	}
	return user, role, nil
}

// UpdateRolePermissions replaces the selected role's permission list.
func (s *RoleAdminService) UpdateRolePermissions(ctx context.Context, roleSel ports.RoleSelector, permissions []string) (*domain.Role, error) {
	if len(permissions) == 0 {
		return nil, domain.ErrNoPermissions
	}
	role, err := s.findRole(ctx, roleSel)
	if err != nil {
		return nil, err
	}
	if err := s.roles.SetPermissions(ctx, role.ID, permissions); err != nil {
		return nil, err
	}
	role.Permissions = permissions

	s.log.Info().Str("role_id", role.ID).Strs("permissions", permissions).Msg("role permissions updated")
	return role, nil
}

func (s *RoleAdminService) findUser(ctx context.Context, sel ports.UserSelector) (*domain.User, error) {
	if sel.ID != "" {
		return s.users.FindByID(ctx, sel.ID)
	}
	return s.users.FindByEmail(ctx, sel.Email)
}

func (s *RoleAdminService) findRole(ctx context.Context, sel ports.RoleSelector) (*domain.Role, error) {
	if sel.ID != "" {
		return s.roles.FindByID(ctx, sel.ID)
	}
	return s.roles.FindByName(ctx, sel.Name)
}
