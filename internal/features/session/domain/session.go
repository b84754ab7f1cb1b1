package domain

import (
	"errors"
	"strings"
)

// Role is the authorization level of a user.
type Role string

const (
	// RoleCustomer may shop and see their own orders.
	RoleCustomer Role = "CUSTOMER"
	// RoleAdmin manages orders and never sees cart or checkout.
	RoleAdmin Role = "ADMIN"
)

var (
	// ErrNotAuthenticated is returned when an operation needs a logged-in visitor.
	ErrNotAuthenticated = errors.New("not authenticated")
	// ErrInvalidCredentials is returned when the backend rejects a login.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// User is the authenticated account as returned by the backend.
type User struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Surname  string `json:"surname"`
	Email    string `json:"email"`
	Role     Role   `json:"role"`
	Phone    string `json:"phone,omitempty"`
	District string `json:"district,omitempty"`
	Address  string `json:"address,omitempty"`
}

// Session is the authentication state of one visitor.
type Session struct {
	// ID identifies the visitor; it is never serialized into the stored value.
	ID              string `json:"-"`
	IsAuthenticated bool   `json:"isAuthenticated"`
	Token           string `json:"token"`
	User            *User  `json:"user"`
}

// New returns an unauthenticated session.
func New(id string) *Session {
	return &Session{ID: id}
}

// Login marks the session authenticated.
func (s *Session) Login(token string, user User) {
	s.IsAuthenticated = true
	s.Token = token
	s.User = &user
}

// Logout resets every field to its unauthenticated default.
func (s *Session) Logout() {
	s.IsAuthenticated = false
	s.Token = ""
	s.User = nil
}

// IsAdmin reports whether the session belongs to an administrator.
func (s *Session) IsAdmin() bool {
	return s.IsAuthenticated && s.User != nil && s.User.Role == RoleAdmin
}

// UserID returns the authenticated user's id, or 0.
func (s *Session) UserID() int {
	if !s.IsAuthenticated || s.User == nil {
		return 0
	}
	return s.User.ID
}

// DisplayName returns "Name Surname" of the authenticated user.
func (s *Session) DisplayName() string {
	if !s.IsAuthenticated || s.User == nil {
		return ""
	}
	return strings.TrimSpace(s.User.Name + " " + s.User.Surname)
}

// Email returns the authenticated user's email.
func (s *Session) Email() string {
	if !s.IsAuthenticated || s.User == nil {
		return ""
	}
	return s.User.Email
}

// ProfilePatch is a partial profile update. Nil fields are left untouched.
// The role is deliberately absent: it cannot change during a session.
type ProfilePatch struct {
	Name     *string `json:"name,omitempty"`
	Surname  *string `json:"surname,omitempty"`
	Email    *string `json:"email,omitempty"`
	Phone    *string `json:"phone,omitempty"`
	District *string `json:"district,omitempty"`
	Address  *string `json:"address,omitempty"`
}

// UpdateProfile applies patch to the session user.
func (s *Session) UpdateProfile(patch ProfilePatch) error {
	if !s.IsAuthenticated || s.User == nil {
		return ErrNotAuthenticated
	}

	apply := func(dst *string, src *string) {
		if src != nil {
			*dst = strings.TrimSpace(*src)
		}
	}
	apply(&s.User.Name, patch.Name)
	apply(&s.User.Surname, patch.Surname)
	apply(&s.User.Email, patch.Email)
	apply(&s.User.Phone, patch.Phone)
	apply(&s.User.District, patch.District)
	apply(&s.User.Address, patch.Address)
	return nil
}
