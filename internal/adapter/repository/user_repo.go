package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"chmfc/internal/core"

	"github.com/pocketbase/dbx"
	pbCore "github.com/pocketbase/pocketbase/core"
)

type PBUserRepo struct {
	app pbCore.App
}

func NewUserRepo(app pbCore.App) core.UserRepository {
	return &PBUserRepo{app: app}
}

func userToDomain(record *pbCore.Record) *core.UserProfile {
	role := core.Role(record.GetString("role"))
	if role == "" {
		role = core.RoleUser
	}
	return &core.UserProfile{
		ID:         record.Id,
		Name:       record.GetString("name"),
		Email:      record.Email(),
		Role:       role,
		AvatarURL:  record.GetString("avatar_url"),
		Department: record.GetString("department"),
	}
}

func (r *PBUserRepo) List() ([]*core.UserProfile, error) {
	records, err := findAll(r.app, core.CollectionUsers, "1=1", "name", nil)
	if err != nil {
		return nil, err
	}

	users := make([]*core.UserProfile, 0, len(records))
	for _, rec := range records {
		users = append(users, userToDomain(rec))
	}
	return users, nil
}

func (r *PBUserRepo) GetByID(id string) (*core.UserProfile, error) {
	record, err := r.app.FindRecordById(core.CollectionUsers, id)
	if err != nil {
		return nil, wrapNotFound("user", err)
	}
	return userToDomain(record), nil
}

// Update writes name, email, role and department. Password is never touched here.
func (r *PBUserRepo) Update(u *core.UserProfile) error {
	record, err := r.app.FindRecordById(core.CollectionUsers, u.ID)
	if err != nil {
		return wrapNotFound("user", err)
	}

	record.Set("name", u.Name)
	if u.Email != "" && u.Email != record.Email() {
		record.SetEmail(u.Email)
	}
	if u.Role != "" {
		record.Set("role", string(u.Role))
	}
	record.Set("department", u.Department)
	if u.AvatarURL != "" {
		record.Set("avatar_url", u.AvatarURL)
	}

	if err := r.app.Save(record); err != nil {
		if isUniqueEmail(err) {
			return core.ErrEmailTaken
		}
		return err
	}
	return nil
}

func (r *PBUserRepo) Delete(id string) error {
	return deleteByID(r.app, core.CollectionUsers, id)
}

// AdminDeviceTokens returns the push tokens registered by admins
func (r *PBUserRepo) AdminDeviceTokens() ([]string, error) {
	records, err := r.app.FindAllRecords(
		core.CollectionUsers,
		dbx.HashExp{"role": string(core.RoleAdmin)},
		dbx.Not(dbx.HashExp{"fcm_token": ""}),
	)
	if err != nil {
		return nil, fmt.Errorf("admin tokens: %w", err)
	}

	tokens := make([]string, 0, len(records))
	for _, rec := range records {
		if t := rec.GetString("fcm_token"); t != "" {
			tokens = append(tokens, t)
		}
	}
	return tokens, nil
}

func (r *PBUserRepo) SetDeviceToken(userID, token string) error {
	record, err := r.app.FindRecordById(core.CollectionUsers, userID)
	if err != nil {
		return wrapNotFound("user", err)
	}
	record.Set("fcm_token", token)
	return r.app.Save(record)
}

// ClearDeviceToken drops a token FCM reported as unregistered
func (r *PBUserRepo) ClearDeviceToken(token string) error {
	records, err := r.app.FindAllRecords(core.CollectionUsers, dbx.HashExp{"fcm_token": token})
	if err != nil {
		return err
	}
	for _, rec := range records {
		rec.Set("fcm_token", "")
		if err := r.app.Save(rec); err != nil {
			return err
		}
	}
	return nil
}

// PBAccountStore authenticates against the users auth collection
type PBAccountStore struct {
	app pbCore.App
}

func NewAccountStore(app pbCore.App) core.AccountStore {
	return &PBAccountStore{app: app}
}

// AvatarPlaceholder builds the default avatar from the first letter of name (or email)
func AvatarPlaceholder(name, email string) string {
	initial := ""
	for _, s := range []string{strings.TrimSpace(name), strings.TrimSpace(email)} {
		if s != "" {
			initial = string([]rune(s)[0])
			break
		}
	}
	return "https://placehold.co/40x40.png?text=" + url.QueryEscape(initial)
}

func (s *PBAccountStore) Register(req *core.SignUpRequest) (*core.UserProfile, string, error) {
	if existing, _ := s.app.FindAuthRecordByEmail(core.CollectionUsers, req.Email); existing != nil {
		return nil, "", core.ErrEmailTaken
	}

	record, err := newRecord(s.app, core.CollectionUsers)
	if err != nil {
		return nil, "", err
	}

	record.SetEmail(req.Email)
	record.SetPassword(req.Password)
	record.Set("name", req.Name)
	record.Set("department", req.Department)
	record.Set("role", string(core.RoleUser))
	record.Set("avatar_url", AvatarPlaceholder(req.Name, req.Email))

	if err := s.app.Save(record); err != nil {
		if isUniqueEmail(err) {
			return nil, "", core.ErrEmailTaken
		}
		return nil, "", fmt.Errorf("%w: %v", core.ErrInvalidInput, err)
	}

	token, err := record.NewAuthToken()
	if err != nil {
		return nil, "", fmt.Errorf("issue token: %w", err)
	}
	return userToDomain(record), token, nil
}

func (s *PBAccountStore) Authenticate(email, password string) (*core.UserProfile, string, error) {
	record, err := s.app.FindAuthRecordByEmail(core.CollectionUsers, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, "", core.ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("find account: %w", err)
	}

	if !record.ValidatePassword(password) {
		return nil, "", core.ErrInvalidCredentials
	}

	token, err := record.NewAuthToken()
	if err != nil {
		return nil, "", fmt.Errorf("issue token: %w", err)
	}
	return userToDomain(record), token, nil
}

// ResolveToken accepts tokens of the users collection and of PocketBase superusers.
// Superusers carry no club profile, so one is synthesized with the Admin role.
func (s *PBAccountStore) ResolveToken(token string) (*core.UserProfile, bool, error) {
	record, err := s.app.FindAuthRecordByToken(token, pbCore.TokenTypeAuth)
	if err != nil {
		return nil, false, fmt.Errorf("%w: %v", core.ErrAuthRequired, err)
	}

	if record.IsSuperuser() {
		return &core.UserProfile{
			ID:    record.Id,
			Name:  record.Email(),
			Email: record.Email(),
			Role:  core.RoleAdmin,
		}, true, nil
	}

	if record.Collection().Name != core.CollectionUsers {
		return nil, false, core.ErrAuthRequired
	}
	return userToDomain(record), false, nil
}

func isUniqueEmail(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "email") && (strings.Contains(msg, "unique") || strings.Contains(msg, "already"))
}
