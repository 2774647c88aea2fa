package ports

import (
	"context"

	"github.com/itfy/evoting-admin/internal/core/domain"
)

// AuthService authenticates operators.
type AuthService interface {
	// LoginWithKey grants key-holder privileges when key matches the
	// configured elevated-access secret.
	LoginWithKey(key string) error
	// LoginWithCredentials verifies a user's email/password pair and
	// resolves the user's role. The returned error never reveals whether
	// the email existed.
	LoginWithCredentials(ctx context.Context, email, password string) (*domain.User, *domain.Role, error)
}

// EntityService exposes generic CRUD over the registered entity kinds.
type EntityService interface {
	Create(ctx context.Context, kind string, params map[string]string) (any, error)
	List(ctx context.Context, kind string, filter map[string]string) ([]map[string]any, error)
	Find(ctx context.Context, kind string, query map[string]string) (map[string]any, error)
	DeleteOne(ctx context.Context, kind string, query map[string]string) error
	DeleteAll(ctx context.Context, kind string, filter map[string]string) (int64, error)
}

// UserSelector identifies a user by id or by email; exactly one side is set.
type UserSelector struct {
	ID    string
	Email string
}

// String returns the identifier the operator supplied, for diagnostics.
func (s UserSelector) String() string {
	if s.ID != "" {
		return s.ID
	}
	return s.Email
}

// RoleSelector identifies a role by id or by name; exactly one side is set.
type RoleSelector struct {
	ID   string
	Name string
}

func (s RoleSelector) String() string {
	if s.ID != "" {
		return s.ID
	}
	return s.Name
}

// RoleAdminService covers the privileged role-management operations.
type RoleAdminService interface {
	// AssignRole resolves both selectors and only then updates the user's
	// role reference. A failed resolution on either side mutates nothing.
	AssignRole(ctx context.Context, user UserSelector, role RoleSelector) (*domain.User, *domain.Role, error)
	// CheckUserRole reports the role currently assigned to the user with
	// the given email. The returned role is nil when none is assigned.
	CheckUserRole(ctx context.Context, email string) (*domain.User, *domain.Role, error)
	// UpdateRolePermissions replaces the role's permission list. The list
	// must be non-empty.
	UpdateRolePermissions(ctx context.Context, role RoleSelector, permissions []string) (*domain.Role, error)
}
