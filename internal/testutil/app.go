// Package testutil boots a throwaway PocketBase app with the club schema applied.
package testutil

import (
	"testing"

	"github.com/pocketbase/pocketbase/core"
	"github.com/stretchr/testify/require"

	_ "chmfc/migrations"
)

// NewApp returns a bootstrapped app backed by a temp data dir.
// It is torn down when the test ends.
func NewApp(t testing.TB) core.App {
	t.Helper()

	app := core.NewBaseApp(core.BaseAppConfig{DataDir: t.TempDir()})
	require.NoError(t, app.Bootstrap())
	require.NoError(t, app.RunAllMigrations())

	t.Cleanup(func() {
		_ = app.ResetBootstrapState()
	})
	return app
}

// CreateUser inserts a users record and returns it
func CreateUser(t testing.TB, app core.App, email, name, role string) *core.Record {
	t.Helper()

	users, err := app.FindCollectionByNameOrId("users")
	require.NoError(t, err)

	record := core.NewRecord(users)
	record.SetEmail(email)
	record.SetPassword("secret-pass-123")
	record.Set("name", name)
	record.Set("role", role)
	require.NoError(t, app.Save(record))
	return record
}

// CreateRecord inserts a record with the given fields into collection
func CreateRecord(t testing.TB, app core.App, collection string, fields map[string]any) *core.Record {
	t.Helper()

	c, err := app.FindCollectionByNameOrId(collection)
	require.NoError(t, err)

	record := core.NewRecord(c)
	for k, v := range fields {
		record.Set(k, v)
	}
	require.NoError(t, app.Save(record))
	return record
}
