package repository

import (
	"chmfc/internal/core"

	pbCore "github.com/pocketbase/pocketbase/core"
)

type PBPlayerRepo struct {
	app pbCore.App
}

func NewPlayerRepo(app pbCore.App) core.PlayerRepository {
	return &PBPlayerRepo{app: app}
}

func (r *PBPlayerRepo) toDomain(record *pbCore.Record) *core.Player {
	stats := core.PlayerStats{}
	if err := record.UnmarshalJSONField("stats", &stats); err != nil || stats == nil {
		stats = core.PlayerStats{}
	}

	return &core.Player{
		ID:          record.Id,
		Name:        record.GetString("name"),
		Number:      record.GetInt("number"),
		Position:    record.GetString("position"),
		Squad:       record.GetString("squad"),
		Nationality: record.GetString("nationality"),
		BirthDate:   record.GetString("birth_date"),
		Height:      record.GetString("height"),
		ImageURL:    record.GetString("image_url"),
		Bio:         record.GetString("bio"),
		Status:      record.GetString("status"),
		Year:        record.GetString("year"),
		Traits:      jsonStrings(record, "traits"),

		Apps:        record.GetInt("apps"),
		Goals:       record.GetInt("goals"),
		Assists:     record.GetInt("assists"),
		YellowCards: record.GetInt("yellow_cards"),
		RedCards:    record.GetInt("red_cards"),

		Potential:  record.GetInt("potential"),
		SkillMoves: record.GetInt("skill_moves"),
		WeakFoot:   record.GetInt("weak_foot"),
		Stats:      stats,
	}
}

func (r *PBPlayerRepo) fill(record *pbCore.Record, p *core.Player) {
	record.Set("name", p.Name)
	record.Set("number", p.Number)
	record.Set("position", p.Position)
	record.Set("squad", p.Squad)
	record.Set("nationality", p.Nationality)
	record.Set("birth_date", p.BirthDate)
	record.Set("height", p.Height)
	record.Set("image_url", p.ImageURL)
	record.Set("bio", p.Bio)
	record.Set("status", p.Status)
	record.Set("year", p.Year)
	if p.Traits == nil {
		p.Traits = []string{}
	}
	record.Set("traits", p.Traits)

	record.Set("apps", p.Apps)
	record.Set("goals", p.Goals)
	record.Set("assists", p.Assists)
	record.Set("yellow_cards", p.YellowCards)
	record.Set("red_cards", p.RedCards)

	record.Set("potential", p.Potential)
	record.Set("skill_moves", p.SkillMoves)
	record.Set("weak_foot", p.WeakFoot)
	if p.Stats == nil {
		p.Stats = core.PlayerStats{}
	}
	record.Set("stats", p.Stats)
}

// List returns players ordered by shirt number
func (r *PBPlayerRepo) List(squad string) ([]*core.Player, error) {
	filter, params := eqFilter(map[string]string{"squad": squad})
	records, err := findAll(r.app, core.CollectionPlayers, filter, "number,name", params)
	if err != nil {
		return nil, err
	}

	players := make([]*core.Player, 0, len(records))
	for _, rec := range records {
		players = append(players, r.toDomain(rec))
	}
	return players, nil
}

func (r *PBPlayerRepo) GetByID(id string) (*core.Player, error) {
	record, err := r.app.FindRecordById(core.CollectionPlayers, id)
	if err != nil {
		return nil, wrapNotFound("player", err)
	}
	return r.toDomain(record), nil
}

func (r *PBPlayerRepo) Create(p *core.Player) error {
	record, err := newRecord(r.app, core.CollectionPlayers)
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

func (r *PBPlayerRepo) Update(p *core.Player) error {
	record, err := r.app.FindRecordById(core.CollectionPlayers, p.ID)
	if err != nil {
		return wrapNotFound("player", err)
	}
	r.fill(record, p)
	return r.app.Save(record)
}

func (r *PBPlayerRepo) Delete(id string) error {
	return deleteByID(r.app, core.CollectionPlayers, id)
}
