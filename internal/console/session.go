package console

import "github.com/itfy/evoting-admin/internal/core/domain"

const (
	basePrompt    = "(user-mgmt)# "
	superuserName = "superuser"
)

// Session tracks the authenticated identity for one console run. It is
// process-local, mutated only by login and logout, and never persisted.
// KeyHolder is true only for the synthetic superuser identity.
type Session struct {
	User      *domain.User
	Role      *domain.Role
	KeyHolder bool
}

// LoggedIn reports whether any identity is authenticated.
func (s *Session) LoggedIn() bool { return s.User != nil }

// IsKeyHolder reports whether the session holds elevated privileges.
func (s *Session) IsKeyHolder() bool { return s.KeyHolder }

// LoginKeyHolder switches the session to the elevated superuser identity.
func (s *Session) LoginKeyHolder() {
	s.User = &domain.User{Name: superuserName}
	s.Role = nil
	s.KeyHolder = true
}

// LoginUser switches the session to an ordinary authenticated user.
func (s *Session) LoginUser(user *domain.User, role *domain.Role) {
	s.User = user
	s.Role = role
	s.KeyHolder = false
}

// Clear drops identity, privilege and resolved role unconditionally.
func (s *Session) Clear() { *s = Session{} }

// Prompt renders the interactive prompt, reflecting the logged-in identity.
func (s *Session) Prompt() string {
	if s.User == nil {
		return basePrompt
	}
	return s.User.Name + "@" + basePrompt
}
