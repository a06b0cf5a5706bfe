package migrations

import (
	"github.com/pocketbase/pocketbase/core"
	m "github.com/pocketbase/pocketbase/migrations"
	"github.com/pocketbase/pocketbase/tools/types"
)

const ownProfileUpdateRule = "id = @request.auth.id" +
	" && @request.body.role:isset = false" +
	" && @request.body.fcm_token:isset = false" +
	" && @request.body.department:isset = false" +
	" && @request.body.avatar_url:isset = false"

// Club profile fields on the built-in users auth collection
func init() {
	m.Register(func(app core.App) error {
		users, err := app.FindCollectionByNameOrId("users")
		if err != nil {
			return err
		}

		if users.Fields.GetByName("name") == nil {
			users.Fields.Add(&core.TextField{Name: "name"})
		}
		if users.Fields.GetByName("role") == nil {
			users.Fields.Add(&core.SelectField{Name: "role", Values: []string{"User", "Admin"}, MaxSelect: 1})
		}
		if users.Fields.GetByName("department") == nil {
			users.Fields.Add(&core.TextField{Name: "department"})
		}
		if users.Fields.GetByName("avatar_url") == nil {
			users.Fields.Add(&core.TextField{Name: "avatar_url"})
		}
		// Admin devices register here for order notifications
		if users.Fields.GetByName("fcm_token") == nil {
			users.Fields.Add(&core.TextField{Name: "fcm_token", Hidden: true})
		}

		// Accounts are created through the signup endpoint, and owners may
		// only change their name.
		users.CreateRule = nil
		users.UpdateRule = types.Pointer(ownProfileUpdateRule)

		return app.Save(users)
	}, func(app core.App) error {
		users, err := app.FindCollectionByNameOrId("users")
		if err != nil {
			return err
		}

		users.CreateRule = types.Pointer("")
		users.UpdateRule = types.Pointer("id = @request.auth.id")

		for _, name := range []string{"role", "department", "avatar_url", "fcm_token"} {
			users.Fields.RemoveByName(name)
		}
		return app.Save(users)
	})
}
