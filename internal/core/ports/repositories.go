package ports

import (
	"context"

	"github.com/itfy/evoting-admin/internal/core/domain"
)

// UserRepository defines the typed lookups the auth and role-admin flows
// need beyond the generic DocumentStore.
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// AssignRole points the user's role reference at roleID.
	AssignRole(ctx context.Context, userID, roleID string) error
	// EnsureIndexes creates the unique email index.
	EnsureIndexes(ctx context.Context) error
}

// RoleRepository defines typed role lookups and permission updates.
type RoleRepository interface {
	FindByID(ctx context.Context, id string) (*domain.Role, error)
	FindByName(ctx context.Context, name string) (*domain.Role, error)
	SetPermissions(ctx context.Context, roleID string, permissions []string) error
}
