package migrations

import (
	"github.com/pocketbase/pocketbase/core"
	m "github.com/pocketbase/pocketbase/migrations"
	"github.com/pocketbase/pocketbase/tools/types"
)

func init() {
	m.Register(func(app core.App) error {
		players := core.NewBaseCollection("players")
		players.ListRule = types.Pointer("")
		players.ViewRule = types.Pointer("")

		// --- profile ---
		players.Fields.Add(&core.TextField{Name: "name", Required: true})
		players.Fields.Add(&core.NumberField{Name: "number", OnlyInt: true})
		players.Fields.Add(&core.TextField{Name: "position"})
		players.Fields.Add(&core.TextField{Name: "squad"})
		players.Fields.Add(&core.TextField{Name: "nationality"})
		players.Fields.Add(&core.TextField{Name: "birth_date"})
		players.Fields.Add(&core.TextField{Name: "height"})
		players.Fields.Add(&core.TextField{Name: "image_url"})
		players.Fields.Add(&core.TextField{Name: "bio"})
		players.Fields.Add(&core.TextField{Name: "status"})
		players.Fields.Add(&core.TextField{Name: "year"})
		players.Fields.Add(&core.JSONField{Name: "traits"})

		// --- season ---
		players.Fields.Add(&core.NumberField{Name: "apps", OnlyInt: true})
		players.Fields.Add(&core.NumberField{Name: "goals", OnlyInt: true})
		players.Fields.Add(&core.NumberField{Name: "assists", OnlyInt: true})
		players.Fields.Add(&core.NumberField{Name: "yellow_cards", OnlyInt: true})
		players.Fields.Add(&core.NumberField{Name: "red_cards", OnlyInt: true})

		// --- ratings ---
		players.Fields.Add(&core.NumberField{Name: "potential", OnlyInt: true})
		players.Fields.Add(&core.NumberField{Name: "skill_moves", OnlyInt: true})
		players.Fields.Add(&core.NumberField{Name: "weak_foot", OnlyInt: true})
		players.Fields.Add(&core.JSONField{Name: "stats"}) // category -> attribute -> value

		players.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		players.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})

		if err := app.Save(players); err != nil {
			return err
		}

		standings := core.NewBaseCollection("standings")
		standings.ListRule = types.Pointer("")
		standings.ViewRule = types.Pointer("")

		standings.Fields.Add(&core.NumberField{Name: "position", OnlyInt: true})
		standings.Fields.Add(&core.TextField{Name: "name", Required: true})
		for _, n := range []string{"played", "won", "drawn", "lost", "goals_for", "goals_against", "goal_difference", "points"} {
			standings.Fields.Add(&core.NumberField{Name: n, OnlyInt: true})
		}
		standings.Fields.Add(&core.JSONField{Name: "form"})
		standings.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})

		return app.Save(standings)
	}, func(app core.App) error {
		for _, name := range []string{"standings", "players"} {
			c, err := app.FindCollectionByNameOrId(name)
			if err != nil {
				continue
			}
			if err := app.Delete(c); err != nil {
				return err
			}
		}
		return nil
	})
}
