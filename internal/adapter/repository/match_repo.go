package repository

import (
	"chmfc/internal/core"

	"github.com/pocketbase/dbx"
	pbCore "github.com/pocketbase/pocketbase/core"
)

type PBMatchRepo struct {
	app pbCore.App
}

func NewMatchRepo(app pbCore.App) core.MatchRepository {
	return &PBMatchRepo{app: app}
}

func (r *PBMatchRepo) toDomain(record *pbCore.Record) *core.Match {
	return &core.Match{
		ID:          record.Id,
		Opponent:    record.GetString("opponent"),
		Date:        record.GetDateTime("date").Time(),
		Time:        record.GetString("time"),
		Competition: record.GetString("competition"),
		Venue:       core.Venue(record.GetString("venue")),
		Status:      core.MatchStatus(record.GetString("status")),
		Score:       record.GetString("score"),
		Result:      record.GetString("result"),
		YouTubeLink: record.GetString("youtube_link"),
	}
}

func (r *PBMatchRepo) fill(record *pbCore.Record, m *core.Match) {
	record.Set("opponent", m.Opponent)
	record.Set("date", m.Date)
	record.Set("time", m.Time)
	record.Set("competition", m.Competition)
	record.Set("venue", string(m.Venue))
	record.Set("status", string(m.Status))
	record.Set("score", m.Score)
	record.Set("result", m.Result)
	record.Set("youtube_link", m.YouTubeLink)
}

// List returns matches by date ascending. Callers reorder per tab.
func (r *PBMatchRepo) List(status core.MatchStatus) ([]*core.Match, error) {
	filter, params := eqFilter(map[string]string{"status": string(status)})
	records, err := findAll(r.app, core.CollectionMatches, filter, "date", params)
	if err != nil {
		return nil, err
	}

	matches := make([]*core.Match, 0, len(records))
	for _, rec := range records {
		matches = append(matches, r.toDomain(rec))
	}
	return matches, nil
}

func (r *PBMatchRepo) GetByID(id string) (*core.Match, error) {
	record, err := r.app.FindRecordById(core.CollectionMatches, id)
	if err != nil {
		return nil, wrapNotFound("match", err)
	}
	return r.toDomain(record), nil
}

func (r *PBMatchRepo) Create(m *core.Match) error {
	record, err := newRecord(r.app, core.CollectionMatches)
	if err != nil {
		return err
	}
	r.fill(record, m)
	if err := r.app.Save(record); err != nil {
		return err
	}
	m.ID = record.Id
	return nil
}

func (r *PBMatchRepo) Update(m *core.Match) error {
	record, err := r.app.FindRecordById(core.CollectionMatches, m.ID)
	if err != nil {
		return wrapNotFound("match", err)
	}
	r.fill(record, m)
	return r.app.Save(record)
}

func (r *PBMatchRepo) Delete(id string) error {
	return deleteByID(r.app, core.CollectionMatches, id)
}

type PBHighlightRepo struct {
	app pbCore.App
}

func NewHighlightRepo(app pbCore.App) core.HighlightRepository {
	return &PBHighlightRepo{app: app}
}

func (r *PBHighlightRepo) toDomain(record *pbCore.Record) *core.Highlight {
	return &core.Highlight{
		ID:          record.Id,
		MatchID:     record.GetString("match_id"),
		Title:       record.GetString("title"),
		YouTubeLink: record.GetString("youtube_link"),
		Date:        record.GetDateTime("date").Time(),
	}
}

func (r *PBHighlightRepo) List() ([]*core.Highlight, error) {
	return r.find("1=1", nil)
}

func (r *PBHighlightRepo) ListByMatch(matchID string) ([]*core.Highlight, error) {
	return r.find("match_id = {:match}", dbx.Params{"match": matchID})
}

func (r *PBHighlightRepo) find(filter string, params dbx.Params) ([]*core.Highlight, error) {
	records, err := findAll(r.app, core.CollectionHighlights, filter, "-date", params)
	if err != nil {
		return nil, err
	}

	out := make([]*core.Highlight, 0, len(records))
	for _, rec := range records {
		out = append(out, r.toDomain(rec))
	}
	return out, nil
}

func (r *PBHighlightRepo) Create(h *core.Highlight) error {
	record, err := newRecord(r.app, core.CollectionHighlights)
	if err != nil {
		return err
	}
	record.Set("match_id", h.MatchID)
	record.Set("title", h.Title)
	record.Set("youtube_link", h.YouTubeLink)
	record.Set("date", h.Date)

	if err := r.app.Save(record); err != nil {
		return err
	}
	h.ID = record.Id
	return nil
}

func (r *PBHighlightRepo) Delete(id string) error {
	return deleteByID(r.app, core.CollectionHighlights, id)
}
