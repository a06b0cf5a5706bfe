package migrations_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"chmfc/internal/testutil"

	"github.com/pocketbase/dbx"
	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serve(t *testing.T, app core.App, method, target, token, body string) *httptest.ResponseRecorder {
	t.Helper()

	r, err := apis.NewRouter(app)
	require.NoError(t, err)
	mux, err := r.BuildMux()
	require.NoError(t, err)

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func TestUsersCollection_NoPublicSignup(t *testing.T) {
	app := testutil.NewApp(t)

	rec := serve(t, app, http.MethodPost, "/api/collections/users/records", "",
		`{"email":"evil@chmfc.test","password":"supporter1","passwordConfirm":"supporter1","role":"Admin"}`)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	total, err := app.CountRecords("users", dbx.HashExp{"email": "evil@chmfc.test"})
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestUsersCollection_OwnerMayOnlyEditName(t *testing.T) {
	app := testutil.NewApp(t)
	fan := testutil.CreateUser(t, app, "fan@chmfc.test", "Fan", "User")
	token, err := fan.NewAuthToken()
	require.NoError(t, err)
	target := "/api/collections/users/records/" + fan.Id

	tests := []struct {
		name string
		body string
	}{
		{"role", `{"role":"Admin"}`},
		{"role with name", `{"name":"Sneaky","role":"Admin"}`},
		{"device token", `{"fcm_token":"hijacked"}`},
		{"department", `{"department":"Board"}`},
		{"avatar", `{"avatar_url":"https://example.com/a.png"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(t, app, http.MethodPatch, target, token, tt.body)
			assert.NotEqual(t, http.StatusOK, rec.Code, rec.Body.String())

			stored, err := app.FindRecordById("users", fan.Id)
			require.NoError(t, err)
			assert.Equal(t, "User", stored.GetString("role"))
			assert.Equal(t, "Fan", stored.GetString("name"))
			assert.Empty(t, stored.GetString("fcm_token"))
			assert.Empty(t, stored.GetString("department"))
		})
	}

	t.Run("name", func(t *testing.T) {
		rec := serve(t, app, http.MethodPatch, target, token, `{"name":"Renamed Fan"}`)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		stored, err := app.FindRecordById("users", fan.Id)
		require.NoError(t, err)
		assert.Equal(t, "Renamed Fan", stored.GetString("name"))
		assert.Equal(t, "User", stored.GetString("role"))
	})
}
