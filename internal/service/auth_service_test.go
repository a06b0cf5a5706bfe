package service

import (
	"testing"

	"chmfc/internal/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newAuthFixture(t *testing.T) (*repos, *AuthService) {
	t.Helper()
	r := newRepos(t)
	return r, NewAuthService(r.accounts, r.users, zap.NewNop())
}

func TestAuthService_SignUpSignInResolve(t *testing.T) {
	_, svc := newAuthFixture(t)

	sess, token, err := svc.SignUp(&core.SignUpRequest{
		Name:       "Jamie Fan",
		Email:      " Jamie@CHMFC.test ",
		Password:   "supporter-2026",
		Department: "Engineering",
	})
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.False(t, sess.IsAdmin)
	assert.Equal(t, core.RoleUser, sess.Profile.Role)
	assert.Equal(t, "jamie@chmfc.test", sess.Profile.Email)
	assert.Equal(t, "https://placehold.co/40x40.png?text=J", sess.Profile.AvatarURL)

	_, _, err = svc.SignUp(&core.SignUpRequest{Name: "Copy", Email: "jamie@chmfc.test", Password: "another-pass"})
	assert.ErrorIs(t, err, core.ErrEmailTaken)

	signedIn, token, err := svc.SignIn("jamie@chmfc.test", "supporter-2026")
	require.NoError(t, err)
	assert.Equal(t, sess.UserID, signedIn.UserID)

	resolved := svc.Resolve("Bearer " + token)
	require.NotNil(t, resolved)
	assert.Equal(t, sess.UserID, resolved.UserID)
	assert.Equal(t, "Jamie Fan", resolved.Profile.Name)

	_, _, err = svc.SignIn("jamie@chmfc.test", "wrong-password")
	assert.ErrorIs(t, err, core.ErrInvalidCredentials)
	_, _, err = svc.SignIn("nobody@chmfc.test", "supporter-2026")
	assert.ErrorIs(t, err, core.ErrInvalidCredentials)
}

func TestAuthService_SignUpValidation(t *testing.T) {
	_, svc := newAuthFixture(t)

	tests := []struct {
		name string
		req  core.SignUpRequest
	}{
		{"bad email", core.SignUpRequest{Name: "A", Email: "not-an-email", Password: "long-enough"}},
		{"short password", core.SignUpRequest{Name: "A", Email: "a@chmfc.test", Password: "short"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := svc.SignUp(&tt.req)
			assert.ErrorIs(t, err, core.ErrInvalidInput)
		})
	}
}

func TestAuthService_ResolveFailuresAreAnonymous(t *testing.T) {
	_, svc := newAuthFixture(t)

	for _, token := range []string{"", "Bearer ", "garbage", "eyJhbGciOiJIUzI1NiJ9.e30.invalid"} {
		assert.Nil(t, svc.Resolve(token), token)
	}
}

func TestAuthService_ProfileAndUserAdmin(t *testing.T) {
	r, svc := newAuthFixture(t)
	admin := r.profile(t, "admin@chmfc.test", "Coach", core.RoleAdmin)
	fan := r.profile(t, "fan@chmfc.test", "Fan", core.RoleUser)

	updated, err := svc.UpdateName(fan.ID, "  Super Fan ")
	require.NoError(t, err)
	assert.Equal(t, "Super Fan", updated.Name)
	_, err = svc.UpdateName(fan.ID, "")
	assert.ErrorIs(t, err, core.ErrInvalidInput)

	edit := &core.UserProfile{ID: fan.ID, Name: "Promoted Fan", Role: core.RoleAdmin}
	require.NoError(t, svc.UpdateUser(edit))
	assert.Equal(t, "fan@chmfc.test", edit.Email)

	got, err := svc.Profile(fan.ID)
	require.NoError(t, err)
	assert.True(t, got.IsAdmin())

	assert.ErrorIs(t, svc.UpdateUser(&core.UserProfile{ID: fan.ID, Role: "Owner"}), core.ErrInvalidInput)
	assert.ErrorIs(t, svc.DeleteUser(admin.ID, admin.ID), core.ErrForbidden)
	require.NoError(t, svc.DeleteUser(admin.ID, fan.ID))

	_, err = svc.Profile(fan.ID)
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestAuthService_PromoteAndDevices(t *testing.T) {
	r, svc := newAuthFixture(t)
	fan := r.profile(t, "fan@chmfc.test", "Fan", core.RoleUser)

	promoted, err := svc.Promote("FAN@chmfc.test")
	require.NoError(t, err)
	assert.Equal(t, core.RoleAdmin, promoted.Role)

	_, err = svc.Promote("ghost@chmfc.test")
	assert.ErrorIs(t, err, core.ErrNotFound)

	assert.ErrorIs(t, svc.RegisterDevice(nil, "tok"), core.ErrAuthRequired)
	sess := &Session{UserID: fan.ID, Profile: promoted, IsAdmin: true}
	assert.ErrorIs(t, svc.RegisterDevice(sess, " "), core.ErrInvalidInput)
	require.NoError(t, svc.RegisterDevice(sess, "device-token-1"))

	tokens, err := r.users.AdminDeviceTokens()
	require.NoError(t, err)
	assert.Equal(t, []string{"device-token-1"}, tokens)
}
