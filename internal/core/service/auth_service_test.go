package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/itfy/evoting-admin/internal/core/domain"
)

// ---------------------------------------------------------------------------
// Stubs
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	byEmail   map[string]*domain.User
	byID      map[string]*domain.User
	assigned  []string // userID:roleID pairs written
	assignErr error
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{byEmail: map[string]*domain.User{}, byID: map[string]*domain.User{}}
}

func (r *stubUserRepo) add(u *domain.User) {
	r.byEmail[u.Email] = u
	r.byID[u.ID] = u
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	if u, ok := r.byEmail[email]; ok {
		return u, nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	if u, ok := r.byID[id]; ok {
		return u, nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) AssignRole(_ context.Context, userID, roleID string) error {
	if r.assignErr != nil {
		return r.assignErr
	}
	r.assigned = append(r.assigned, userID+":"+roleID)
	return nil
}

func (r *stubUserRepo) EnsureIndexes(context.Context) error { return nil }

type stubRoleRepo struct {
	byID    map[string]*domain.Role
	byName  map[string]*domain.Role
	lookups int
	updated []string // roleIDs whose permissions were written
}

func newStubRoleRepo() *stubRoleRepo {
	return &stubRoleRepo{byID: map[string]*domain.Role{}, byName: map[string]*domain.Role{}}
}

func (r *stubRoleRepo) add(role *domain.Role) {
	r.byID[role.ID] = role
	r.byName[role.Name] = role
}

func (r *stubRoleRepo) FindByID(_ context.Context, id string) (*domain.Role, error) {
	r.lookups++
	if role, ok := r.byID[id]; ok {
		return role, nil
	}
	return nil, domain.ErrRoleNotFound
}

func (r *stubRoleRepo) FindByName(_ context.Context, name string) (*domain.Role, error) {
	r.lookups++
	if role, ok := r.byName[name]; ok {
		return role, nil
	}
	return nil, domain.ErrRoleNotFound
}

func (r *stubRoleRepo) SetPermissions(_ context.Context, roleID string, permissions []string) error {
	r.updated = append(r.updated, roleID)
	if role, ok := r.byID[roleID]; ok {
		role.Permissions = permissions
	}
	return nil
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func mustHash(t *testing.T, password string) string {
	t.Helper()
	hash, err := domain.HashPassword(password)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	return hash
}

func seededUser(t *testing.T, id, name, email, password, roleID string) *domain.User {
	t.Helper()
	return &domain.User{
		Base:     domain.Base{ID: id},
		Name:     name,
		Email:    email,
		Password: mustHash(t, password),
		RoleID:   roleID,
	}
}

// ---------------------------------------------------------------------------
// Key login
// ---------------------------------------------------------------------------

func TestAuthService_LoginWithKey(t *testing.T) {
	svc := NewAuthService(newStubUserRepo(), newStubRoleRepo(), "sekrit", zerolog.Nop())

	if err := svc.LoginWithKey("sekrit"); err != nil {
		t.Errorf("correct key rejected: %v", err)
	}
	if err := svc.LoginWithKey("wrong"); !errors.Is(err, domain.ErrInvalidKey) {
		t.Errorf("expected ErrInvalidKey, got: %v", err)
	}
}

func TestAuthService_LoginWithKey_DisabledWhenUnconfigured(t *testing.T) {
	svc := NewAuthService(newStubUserRepo(), newStubRoleRepo(), "", zerolog.Nop())
	if err := svc.LoginWithKey(""); !errors.Is(err, domain.ErrInvalidKey) {
		t.Errorf("empty configured key must disable key login, got: %v", err)
	}
}

// ---------------------------------------------------------------------------
// Credential login
// ---------------------------------------------------------------------------

func TestAuthService_LoginWithCredentials_Success(t *testing.T) {
	users := newStubUserRepo()
	roles := newStubRoleRepo()
	roles.add(&domain.Role{Base: domain.Base{ID: "r1"}, Name: "editor"})
	users.add(seededUser(t, "u1", "Jane", "jane@x.com", "secret", "r1"))

	svc := NewAuthService(users, roles, "sekrit", zerolog.Nop())
	user, role, err := svc.LoginWithCredentials(context.Background(), "jane@x.com", "secret")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.Name != "Jane" {
		t.Errorf("unexpected user: %+v", user)
	}
	if role == nil || role.Name != "editor" {
		t.Errorf("expected resolved role, got: %+v", role)
	}
}

func TestAuthService_LoginWithCredentials_EmailCaseInsensitive(t *testing.T) {
	users := newStubUserRepo()
	users.add(seededUser(t, "u1", "Jane", "jane@x.com", "secret", ""))
	svc := NewAuthService(users, newStubRoleRepo(), "", zerolog.Nop())

	user, _, err := svc.LoginWithCredentials(context.Background(), "Jane@X.COM", "secret")
	if err != nil {
		t.Fatalf("casing must not matter at login: %v", err)
	}
	if user == nil || user.Email != "jane@x.com" {
		t.Errorf("expected the stored account, got: %+v", user)
	}
}

func TestAuthService_LoginWithCredentials_SameErrorForUnknownEmailAndWrongPassword(t *testing.T) {
	users := newStubUserRepo()
	users.add(seededUser(t, "u1", "Jane", "jane@x.com", "secret", ""))
	svc := NewAuthService(users, newStubRoleRepo(), "", zerolog.Nop())

	_, _, unknownErr := svc.LoginWithCredentials(context.Background(), "ghost@x.com", "secret")
	_, _, wrongErr := svc.LoginWithCredentials(context.Background(), "jane@x.com", "oops")

	if !errors.Is(unknownErr, domain.ErrInvalidCredentials) {
		t.Errorf("unknown email: expected ErrInvalidCredentials, got: %v", unknownErr)
	}
	if !errors.Is(wrongErr, domain.ErrInvalidCredentials) {
		t.Errorf("wrong password: expected ErrInvalidCredentials, got: %v", wrongErr)
	}
	if unknownErr.Error() != wrongErr.Error() {
		t.Error("error content must not reveal whether the email existed")
	}
}

func TestAuthService_LoginWithCredentials_MissingFields(t *testing.T) {
	svc := NewAuthService(newStubUserRepo(), newStubRoleRepo(), "", zerolog.Nop())
	if _, _, err := svc.LoginWithCredentials(context.Background(), "", "pw"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got: %v", err)
	}
	if _, _, err := svc.LoginWithCredentials(context.Background(), "a@x.com", ""); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got: %v", err)
	}
}

func TestAuthService_LoginWithCredentials_DanglingRoleDoesNotBlockLogin(t *testing.T) {
	users := newStubUserRepo()
	users.add(seededUser(t, "u1", "Jane", "jane@x.com", "secret", "gone"))
	svc := NewAuthService(users, newStubRoleRepo(), "", zerolog.Nop())

	user, role, err := svc.LoginWithCredentials(context.Background(), "jane@x.com", "secret")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user == nil || role != nil {
		t.Errorf("expected user with nil role, got user=%v role=%v", user, role)
	}
}
