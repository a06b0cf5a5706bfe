package migrations

import (
	"github.com/pocketbase/pocketbase/core"
	m "github.com/pocketbase/pocketbase/migrations"
	"github.com/pocketbase/pocketbase/tools/types"
)

func init() {
	m.Register(func(app core.App) error {
		users, err := app.FindCollectionByNameOrId("users")
		if err != nil {
			return err
		}

		polls := core.NewBaseCollection("polls")
		polls.ListRule = types.Pointer("")
		polls.ViewRule = types.Pointer("")

		polls.Fields.Add(&core.TextField{Name: "question", Required: true})
		polls.Fields.Add(&core.TextField{Name: "match_id"})
		polls.Fields.Add(&core.TextField{Name: "opponent"})
		polls.Fields.Add(&core.DateField{Name: "match_date"})
		polls.Fields.Add(&core.JSONField{Name: "options"}) // [{player_id, name, votes}]
		polls.Fields.Add(&core.BoolField{Name: "is_open"})
		polls.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		polls.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})

		if err := app.Save(polls); err != nil {
			return err
		}

		// One receipt per (poll, user). The unique index is what makes a
		// second vote fail inside the voting transaction.
		votes := core.NewBaseCollection("votes")

		votes.Fields.Add(&core.RelationField{
			Name:          "poll",
			CollectionId:  polls.Id,
			MaxSelect:     1,
			Required:      true,
			CascadeDelete: true,
		})
		votes.Fields.Add(&core.RelationField{
			Name:          "user",
			CollectionId:  users.Id,
			MaxSelect:     1,
			Required:      true,
			CascadeDelete: true,
		})
		votes.Fields.Add(&core.NumberField{Name: "option_index", OnlyInt: true})
		votes.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		votes.AddIndex("idx_votes_poll_user", true, "poll, user", "")

		return app.Save(votes)
	}, func(app core.App) error {
		for _, name := range []string{"votes", "polls"} {
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
