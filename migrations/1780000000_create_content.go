package migrations

import (
	"github.com/pocketbase/pocketbase/core"
	m "github.com/pocketbase/pocketbase/migrations"
	"github.com/pocketbase/pocketbase/tools/types"
)

func init() {
	m.Register(func(app core.App) error {
		// ----------------------------------------------------
		// NEWS
		// ----------------------------------------------------
		news := core.NewBaseCollection("news")
		news.ListRule = types.Pointer("status = 'Published'")
		news.ViewRule = types.Pointer("status = 'Published'")

		news.Fields.Add(&core.TextField{Name: "title", Required: true})
		news.Fields.Add(&core.EditorField{Name: "content"})
		news.Fields.Add(&core.TextField{Name: "author"})
		news.Fields.Add(&core.DateField{Name: "date"})
		news.Fields.Add(&core.SelectField{Name: "status", Values: []string{"Draft", "Published"}, MaxSelect: 1})
		news.Fields.Add(&core.TextField{Name: "image_url"})
		news.Fields.Add(&core.JSONField{Name: "tags"})
		news.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		news.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})

		if err := app.Save(news); err != nil {
			return err
		}

		// ----------------------------------------------------
		// MATCHES
		// ----------------------------------------------------
		matches := core.NewBaseCollection("matches")
		matches.ListRule = types.Pointer("")
		matches.ViewRule = types.Pointer("")

		matches.Fields.Add(&core.TextField{Name: "opponent", Required: true})
		matches.Fields.Add(&core.DateField{Name: "date"})
		matches.Fields.Add(&core.TextField{Name: "time"}) // kick-off, e.g. 15:00
		matches.Fields.Add(&core.TextField{Name: "competition"})
		matches.Fields.Add(&core.SelectField{Name: "venue", Values: []string{"Home", "Away"}, MaxSelect: 1})
		matches.Fields.Add(&core.SelectField{Name: "status", Values: []string{"Upcoming", "Live", "Past"}, MaxSelect: 1})
		matches.Fields.Add(&core.TextField{Name: "score"})
		matches.Fields.Add(&core.TextField{Name: "result"})
		matches.Fields.Add(&core.TextField{Name: "youtube_link"})
		matches.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		matches.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})

		if err := app.Save(matches); err != nil {
			return err
		}

		// ----------------------------------------------------
		// HIGHLIGHTS
		// ----------------------------------------------------
		highlights := core.NewBaseCollection("highlights")
		highlights.ListRule = types.Pointer("")
		highlights.ViewRule = types.Pointer("")

		highlights.Fields.Add(&core.RelationField{
			Name:          "match_id",
			CollectionId:  matches.Id,
			MaxSelect:     1,
			CascadeDelete: true,
		})
		highlights.Fields.Add(&core.TextField{Name: "title", Required: true})
		highlights.Fields.Add(&core.TextField{Name: "youtube_link"})
		highlights.Fields.Add(&core.DateField{Name: "date"})
		highlights.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})

		if err := app.Save(highlights); err != nil {
			return err
		}

		// ----------------------------------------------------
		// EVENTS
		// ----------------------------------------------------
		events := core.NewBaseCollection("events")
		events.ListRule = types.Pointer("")
		events.ViewRule = types.Pointer("")

		events.Fields.Add(&core.TextField{Name: "title", Required: true})
		events.Fields.Add(&core.DateField{Name: "date"})
		events.Fields.Add(&core.TextField{Name: "location"})
		events.Fields.Add(&core.TextField{Name: "description"})
		events.Fields.Add(&core.NumberField{Name: "tickets_sold", OnlyInt: true})
		events.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})

		return app.Save(events)
	}, func(app core.App) error {
		for _, name := range []string{"highlights", "events", "matches", "news"} {
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
