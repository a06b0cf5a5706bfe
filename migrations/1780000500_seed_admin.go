package migrations

import (
	"os"

	"github.com/pocketbase/pocketbase/core"
	m "github.com/pocketbase/pocketbase/migrations"
)

// Bootstraps the first club admin from INITIAL_ADMIN_EMAIL / INITIAL_ADMIN_PASSWORD.
// An existing account with that email is promoted instead.
func init() {
	m.Register(func(app core.App) error {
		email := os.Getenv("INITIAL_ADMIN_EMAIL")
		pass := os.Getenv("INITIAL_ADMIN_PASSWORD")
		if email == "" || pass == "" {
			return nil
		}

		if existing, _ := app.FindAuthRecordByEmail("users", email); existing != nil {
			existing.Set("role", "Admin")
			return app.Save(existing)
		}

		users, err := app.FindCollectionByNameOrId("users")
		if err != nil {
			return err
		}

		record := core.NewRecord(users)
		record.SetEmail(email)
		record.SetPassword(pass)
		record.SetVerified(true)
		record.Set("name", "Club Admin")
		record.Set("role", "Admin")
		record.Set("avatar_url", "https://placehold.co/40x40.png?text=A")

		return app.Save(record)
	}, nil)
}
