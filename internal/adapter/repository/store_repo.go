package repository

import (
	"fmt"
	"time"

	"chmfc/internal/core"

	"github.com/pocketbase/dbx"
	pbCore "github.com/pocketbase/pocketbase/core"
)

type PBProductRepo struct {
	app pbCore.App
}

func NewProductRepo(app pbCore.App) core.ProductRepository {
	return &PBProductRepo{app: app}
}

func (r *PBProductRepo) toDomain(record *pbCore.Record) *core.Product {
	return &core.Product{
		ID:          record.Id,
		Name:        record.GetString("name"),
		Price:       record.GetFloat("price"),
		Stock:       record.GetInt("stock"),
		Category:    record.GetString("category"),
		Description: record.GetString("description"),
		ImageURL:    record.GetString("image_url"),
	}
}

func (r *PBProductRepo) fill(record *pbCore.Record, p *core.Product) {
	record.Set("name", p.Name)
	record.Set("price", p.Price)
	record.Set("stock", p.Stock)
	record.Set("category", p.Category)
	record.Set("description", p.Description)
	record.Set("image_url", p.ImageURL)
}

// List returns products in creation order, so the first one is the featured item
func (r *PBProductRepo) List() ([]*core.Product, error) {
	records, err := findAll(r.app, core.CollectionProducts, "1=1", "created", nil)
	if err != nil {
		return nil, err
	}

	products := make([]*core.Product, 0, len(records))
	for _, rec := range records {
		products = append(products, r.toDomain(rec))
	}
	return products, nil
}

func (r *PBProductRepo) GetByID(id string) (*core.Product, error) {
	record, err := r.app.FindRecordById(core.CollectionProducts, id)
	if err != nil {
		return nil, wrapNotFound("product", err)
	}
	return r.toDomain(record), nil
}

func (r *PBProductRepo) Create(p *core.Product) error {
	record, err := newRecord(r.app, core.CollectionProducts)
	if err != nil {
		return err
	}
	r.fill(record, p)
	if err := r.app.Save(record); err != nil {
		return err
	}
	p.ID = record.Id
	return nil
}

func (r *PBProductRepo) Update(p *core.Product) error {
	record, err := r.app.FindRecordById(core.CollectionProducts, p.ID)
	if err != nil {
		return wrapNotFound("product", err)
	}
	r.fill(record, p)
	return r.app.Save(record)
}

func (r *PBProductRepo) Delete(id string) error {
	return deleteByID(r.app, core.CollectionProducts, id)
}

type PBOrderRepo struct {
	app pbCore.App
}

func NewOrderRepo(app pbCore.App) core.OrderRepository {
	return &PBOrderRepo{app: app}
}

func (r *PBOrderRepo) toDomain(record *pbCore.Record) *core.Order {
	return &core.Order{
		ID:              record.Id,
		UserID:          record.GetString("user_id"),
		UserName:        record.GetString("user_name"),
		ProductID:       record.GetString("product_id"),
		ProductName:     record.GetString("product_name"),
		Price:           record.GetFloat("price"),
		ShippingAddress: record.GetString("shipping_address"),
		Status:          core.OrderStatus(record.GetString("status")),
		OrderDate:       record.GetDateTime("order_date").Time(),
	}
}

func (r *PBOrderRepo) List() ([]*core.Order, error) {
	return r.find("1=1", nil)
}

func (r *PBOrderRepo) ListByUser(userID string) ([]*core.Order, error) {
	return r.find("user_id = {:uid}", dbx.Params{"uid": userID})
}

func (r *PBOrderRepo) find(filter string, params dbx.Params) ([]*core.Order, error) {
	records, err := findAll(r.app, core.CollectionOrders, filter, "-order_date", params)
	if err != nil {
		return nil, err
	}

	orders := make([]*core.Order, 0, len(records))
	for _, rec := range records {
		orders = append(orders, r.toDomain(rec))
	}
	return orders, nil
}

func (r *PBOrderRepo) GetByID(id string) (*core.Order, error) {
	record, err := r.app.FindRecordById(core.CollectionOrders, id)
	if err != nil {
		return nil, wrapNotFound("order", err)
	}
	return r.toDomain(record), nil
}

// Create persists a new order. A zero OrderDate is stamped with the current time.
func (r *PBOrderRepo) Create(o *core.Order) error {
	record, err := newRecord(r.app, core.CollectionOrders)
	if err != nil {
		return err
	}

	if o.OrderDate.IsZero() {
		o.OrderDate = time.Now().UTC()
	}
	if o.Status == "" {
		o.Status = core.OrderPending
	}

	record.Set("user_id", o.UserID)
	record.Set("user_name", o.UserName)
	record.Set("product_id", o.ProductID)
	record.Set("product_name", o.ProductName)
	record.Set("price", o.Price)
	record.Set("shipping_address", o.ShippingAddress)
	record.Set("status", string(o.Status))
	record.Set("order_date", o.OrderDate)

	if err := r.app.Save(record); err != nil {
		return fmt.Errorf("save order: %w", err)
	}
	o.ID = record.Id
	return nil
}

func (r *PBOrderRepo) UpdateStatus(id string, status core.OrderStatus) error {
	record, err := r.app.FindRecordById(core.CollectionOrders, id)
	if err != nil {
		return wrapNotFound("order", err)
	}
	record.Set("status", string(status))
	return r.app.Save(record)
}

type PBEventRepo struct {
	app pbCore.App
}

func NewEventRepo(app pbCore.App) core.EventRepository {
	return &PBEventRepo{app: app}
}

func (r *PBEventRepo) toDomain(record *pbCore.Record) *core.Event {
	return &core.Event{
		ID:          record.Id,
		Title:       record.GetString("title"),
		Date:        record.GetDateTime("date").Time(),
		Location:    record.GetString("location"),
		Description: record.GetString("description"),
		TicketsSold: record.GetInt("tickets_sold"),
	}
}

func (r *PBEventRepo) fill(record *pbCore.Record, e *core.Event) {
	record.Set("title", e.Title)
	record.Set("date", e.Date)
	record.Set("location", e.Location)
	record.Set("description", e.Description)
	record.Set("tickets_sold", e.TicketsSold)
}

func (r *PBEventRepo) List() ([]*core.Event, error) {
	records, err := findAll(r.app, core.CollectionEvents, "1=1", "date", nil)
	if err != nil {
		return nil, err
	}

	events := make([]*core.Event, 0, len(records))
	for _, rec := range records {
		events = append(events, r.toDomain(rec))
	}
	return events, nil
}

func (r *PBEventRepo) GetByID(id string) (*core.Event, error) {
	record, err := r.app.FindRecordById(core.CollectionEvents, id)
	if err != nil {
		return nil, wrapNotFound("event", err)
	}
	return r.toDomain(record), nil
}

func (r *PBEventRepo) Create(e *core.Event) error {
	record, err := newRecord(r.app, core.CollectionEvents)
	if err != nil {
		return err
	}
	r.fill(record, e)
	if err := r.app.Save(record); err != nil {
		return err
	}
	e.ID = record.Id
	return nil
}

func (r *PBEventRepo) Update(e *core.Event) error {
	record, err := r.app.FindRecordById(core.CollectionEvents, e.ID)
	if err != nil {
		return wrapNotFound("event", err)
	}
	r.fill(record, e)
	return r.app.Save(record)
}

func (r *PBEventRepo) Delete(id string) error {
	return deleteByID(r.app, core.CollectionEvents, id)
}
