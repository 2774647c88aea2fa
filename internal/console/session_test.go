package console

import (
	"testing"

	"github.com/itfy/evoting-admin/internal/core/domain"
)

func TestSession_InitialState(t *testing.T) {
	var s Session
	if s.LoggedIn() || s.IsKeyHolder() {
		t.Error("fresh session must be logged out without privileges")
	}
	if s.Prompt() != "(user-mgmt)# " {
		t.Errorf("unexpected prompt: %q", s.Prompt())
	}
}

func TestSession_KeyHolderLogin(t *testing.T) {
	var s Session
	s.LoginKeyHolder()
	if !s.LoggedIn() || !s.IsKeyHolder() {
		t.Error("key-holder login must grant elevated privileges")
	}
	if s.Prompt() != "superuser@(user-mgmt)# " {
		t.Errorf("unexpected prompt: %q", s.Prompt())
	}
}

func TestSession_UserLoginIsNotKeyHolder(t *testing.T) {
	var s Session
	s.LoginUser(&domain.User{Name: "Jane"}, &domain.Role{Name: "editor"})
	if !s.LoggedIn() {
		t.Error("expected logged in")
	}
	if s.IsKeyHolder() {
		t.Error("ordinary login must not grant key-holder privileges")
	}
	if s.Prompt() != "Jane@(user-mgmt)# " {
		t.Errorf("unexpected prompt: %q", s.Prompt())
	}
}

func TestSession_ClearDropsEverything(t *testing.T) {
	var s Session
	s.LoginKeyHolder()
	s.Clear()
	if s.LoggedIn() || s.IsKeyHolder() || s.Role != nil {
		t.Error("clear must drop identity, privilege and role")
	}
}
