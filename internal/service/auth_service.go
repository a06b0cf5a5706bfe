package service

import (
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"chmfc/internal/core"

	"go.uber.org/zap"
)

// minPasswordLength matches the users auth collection default
const minPasswordLength = 8

// Session is the resolved identity behind a request
type Session struct {
	UserID    string            `json:"user_id"`
	Profile   *core.UserProfile `json:"profile"`
	IsAdmin   bool              `json:"is_admin"`
	Superuser bool              `json:"-"`
}

type AuthService struct {
	accounts core.AccountStore
	users    core.UserRepository
	logger   *zap.Logger
}

func NewAuthService(accounts core.AccountStore, users core.UserRepository, logger *zap.Logger) *AuthService {
	return &AuthService{accounts: accounts, users: users, logger: logger}
}

func (s *AuthService) SignUp(req *core.SignUpRequest) (*Session, string, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.Department = strings.TrimSpace(req.Department)

	if _, err := mail.ParseAddress(req.Email); err != nil {
		return nil, "", fmt.Errorf("%w: a valid email is required", core.ErrInvalidInput)
	}
	if len(req.Password) < minPasswordLength {
		return nil, "", fmt.Errorf("%w: password must be at least %d characters", core.ErrInvalidInput, minPasswordLength)
	}

	profile, token, err := s.accounts.Register(req)
	if err != nil {
		return nil, "", err
	}

	s.logger.Info("[AUTH] account created", zap.String("user_id", profile.ID))
	return &Session{UserID: profile.ID, Profile: profile, IsAdmin: profile.IsAdmin()}, token, nil
}

func (s *AuthService) SignIn(email, password string) (*Session, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, "", core.ErrInvalidCredentials
	}

	profile, token, err := s.accounts.Authenticate(email, password)
	if err != nil {
		if !errors.Is(err, core.ErrInvalidCredentials) {
			s.logger.Error("[AUTH] sign in failed", zap.Error(err))
		}
		return nil, "", err
	}
	return &Session{UserID: profile.ID, Profile: profile, IsAdmin: profile.IsAdmin()}, token, nil
}

// Resolve maps a token to a session. Any failure, including a missing or
// expired token, yields nil: the caller is simply not authenticated.
func (s *AuthService) Resolve(token string) *Session {
	token = strings.TrimSpace(strings.TrimPrefix(token, "Bearer "))
	if token == "" {
		return nil
	}

	profile, superuser, err := s.accounts.ResolveToken(token)
	if err != nil || profile == nil {
		return nil
	}
	return &Session{
		UserID:    profile.ID,
		Profile:   profile,
		IsAdmin:   superuser || profile.IsAdmin(),
		Superuser: superuser,
	}
}

// UpdateName changes the display name. It is the only self-editable field.
func (s *AuthService) UpdateName(userID, name string) (*core.UserProfile, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", core.ErrInvalidInput)
	}

	u, err := s.users.GetByID(userID)
	if err != nil {
		return nil, err
	}
	u.Name = name
	if err := s.users.Update(u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *AuthService) Profile(userID string) (*core.UserProfile, error) {
	return s.users.GetByID(userID)
}

// User admin

func (s *AuthService) Users() ([]*core.UserProfile, error) {
	return s.users.List()
}

// UpdateUser lets an admin edit name, email and role
func (s *AuthService) UpdateUser(u *core.UserProfile) error {
	u.Name = strings.TrimSpace(u.Name)
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	if u.Email != "" {
		if _, err := mail.ParseAddress(u.Email); err != nil {
			return fmt.Errorf("%w: invalid email", core.ErrInvalidInput)
		}
	}
	if u.Role != "" && u.Role != core.RoleUser && u.Role != core.RoleAdmin {
		return fmt.Errorf("%w: role must be User or Admin", core.ErrInvalidInput)
	}

	current, err := s.users.GetByID(u.ID)
	if err != nil {
		return err
	}
	current.Name = u.Name
	if u.Email != "" {
		current.Email = u.Email
	}
	if u.Role != "" {
		current.Role = u.Role
	}
	if err := s.users.Update(current); err != nil {
		return err
	}
	*u = *current
	s.logger.Info("[AUTH] user updated", zap.String("user_id", u.ID), zap.String("role", string(u.Role)))
	return nil
}

// DeleteUser removes an account. Admins cannot delete themselves.
func (s *AuthService) DeleteUser(actorID, userID string) error {
	if actorID == userID {
		return fmt.Errorf("%w: you cannot delete your own account", core.ErrForbidden)
	}
	return s.users.Delete(userID)
}

// Promote grants the Admin role to the account with the given email
func (s *AuthService) Promote(email string) (*core.UserProfile, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	users, err := s.users.List()
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		if strings.EqualFold(u.Email, email) {
			u.Role = core.RoleAdmin
			if err := s.users.Update(u); err != nil {
				return nil, err
			}
			return u, nil
		}
	}
	return nil, fmt.Errorf("user %s: %w", email, core.ErrNotFound)
}

// RegisterDevice stores an admin's push token for order notifications
func (s *AuthService) RegisterDevice(sess *Session, token string) error {
	if sess == nil {
		return core.ErrAuthRequired
	}
	if sess.Superuser {
		return fmt.Errorf("%w: superusers have no club account to attach a device to", core.ErrForbidden)
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return fmt.Errorf("%w: token is required", core.ErrInvalidInput)
	}
	return s.users.SetDeviceToken(sess.UserID, token)
}
