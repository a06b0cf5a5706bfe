package migrations

import (
	"github.com/pocketbase/pocketbase/core"
	m "github.com/pocketbase/pocketbase/migrations"
	"github.com/pocketbase/pocketbase/tools/types"
)

func init() {
	m.Register(func(app core.App) error {
		// ----------------------------------------------------
		// PRODUCTS
		// ----------------------------------------------------
		products := core.NewBaseCollection("products")
		products.ListRule = types.Pointer("")
		products.ViewRule = types.Pointer("")

		products.Fields.Add(&core.TextField{Name: "name", Required: true})
		products.Fields.Add(&core.NumberField{Name: "price"})
		products.Fields.Add(&core.NumberField{Name: "stock", OnlyInt: true})
		products.Fields.Add(&core.TextField{Name: "category"})
		products.Fields.Add(&core.TextField{Name: "description"})
		products.Fields.Add(&core.TextField{Name: "image_url"})
		products.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		products.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})

		if err := app.Save(products); err != nil {
			return err
		}

		// ----------------------------------------------------
		// ORDERS
		// ----------------------------------------------------
		// Orders are written by the server only. Rules stay nil (superusers).
		orders := core.NewBaseCollection("orders")

		orders.Fields.Add(&core.TextField{Name: "user_id", Required: true})
		orders.Fields.Add(&core.TextField{Name: "user_name"})
		orders.Fields.Add(&core.TextField{Name: "product_id", Required: true})
		orders.Fields.Add(&core.TextField{Name: "product_name"})
		orders.Fields.Add(&core.NumberField{Name: "price"})
		orders.Fields.Add(&core.TextField{Name: "shipping_address", Required: true})
		orders.Fields.Add(&core.SelectField{Name: "status", Values: []string{"Pending", "Shipped", "Delivered"}, MaxSelect: 1})
		orders.Fields.Add(&core.DateField{Name: "order_date"})
		orders.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		orders.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
		orders.AddIndex("idx_orders_user", false, "user_id", "")

		if err := app.Save(orders); err != nil {
			return err
		}

		// ----------------------------------------------------
		// SETTINGS (keyed singletons)
		// ----------------------------------------------------
		settings := core.NewBaseCollection("settings")

		settings.Fields.Add(&core.TextField{Name: "key", Required: true})
		// --- payment ---
		settings.Fields.Add(&core.TextField{Name: "bank_name"})
		settings.Fields.Add(&core.TextField{Name: "account_number"})
		settings.Fields.Add(&core.TextField{Name: "account_name"})
		settings.Fields.Add(&core.TextField{Name: "whatsapp_number"})
		settings.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
		settings.AddIndex("idx_settings_key", true, "key", "")

		if err := app.Save(settings); err != nil {
			return err
		}

		record := core.NewRecord(settings)
		record.Set("key", "payment")
		record.Set("bank_name", "")
		record.Set("account_number", "")
		record.Set("account_name", "")
		record.Set("whatsapp_number", "")

		return app.Save(record)
	}, func(app core.App) error {
		for _, name := range []string{"settings", "orders", "products"} {
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
