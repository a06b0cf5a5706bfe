package repository

import (
	"chmfc/internal/core"

	pbCore "github.com/pocketbase/pocketbase/core"
)

type PBNewsRepo struct {
	app pbCore.App
}

func NewNewsRepo(app pbCore.App) core.NewsRepository {
	return &PBNewsRepo{app: app}
}

// Mapping helper: Record -> Domain Model
func (r *PBNewsRepo) toDomain(record *pbCore.Record) *core.NewsArticle {
	return &core.NewsArticle{
		ID:       record.Id,
		Title:    record.GetString("title"),
		Content:  record.GetString("content"),
		Author:   record.GetString("author"),
		Date:     record.GetDateTime("date").Time(),
		Status:   core.ArticleStatus(record.GetString("status")),
		ImageURL: record.GetString("image_url"),
		Tags:     jsonStrings(record, "tags"),
	}
}

func (r *PBNewsRepo) fill(record *pbCore.Record, a *core.NewsArticle) {
	record.Set("title", a.Title)
	record.Set("content", a.Content)
	record.Set("author", a.Author)
	record.Set("date", a.Date)
	record.Set("status", string(a.Status))
	record.Set("image_url", a.ImageURL)
	if a.Tags == nil {
		a.Tags = []string{}
	}
	record.Set("tags", a.Tags)
}

func (r *PBNewsRepo) List(status core.ArticleStatus) ([]*core.NewsArticle, error) {
	filter, params := eqFilter(map[string]string{"status": string(status)})
	records, err := findAll(r.app, core.CollectionNews, filter, "-date", params)
	if err != nil {
		return nil, err
	}

	articles := make([]*core.NewsArticle, 0, len(records))
	for _, rec := range records {
		articles = append(articles, r.toDomain(rec))
	}
	return articles, nil
}

func (r *PBNewsRepo) GetByID(id string) (*core.NewsArticle, error) {
	record, err := r.app.FindRecordById(core.CollectionNews, id)
	if err != nil {
		return nil, wrapNotFound("news", err)
	}
	return r.toDomain(record), nil
}

func (r *PBNewsRepo) Create(a *core.NewsArticle) error {
	record, err := newRecord(r.app, core.CollectionNews)
	if err != nil {
		return err
	}
	r.fill(record, a)
	if err := r.app.Save(record); err != nil {
		return err
	}
	a.ID = record.Id
	return nil
}

func (r *PBNewsRepo) Update(a *core.NewsArticle) error {
	record, err := r.app.FindRecordById(core.CollectionNews, a.ID)
	if err != nil {
		return wrapNotFound("news", err)
	}
	r.fill(record, a)
	return r.app.Save(record)
}

func (r *PBNewsRepo) Delete(id string) error {
	return deleteByID(r.app, core.CollectionNews, id)
}
