package repository

import (
	"chmfc/internal/core"

	pbCore "github.com/pocketbase/pocketbase/core"
)

type PBStandingsRepo struct {
	app pbCore.App
}

func NewStandingsRepo(app pbCore.App) core.StandingsRepository {
	return &PBStandingsRepo{app: app}
}

func (r *PBStandingsRepo) toDomain(record *pbCore.Record) *core.StandingsRow {
	return &core.StandingsRow{
		ID:             record.Id,
		Position:       record.GetInt("position"),
		Name:           record.GetString("name"),
		Played:         record.GetInt("played"),
		Won:            record.GetInt("won"),
		Drawn:          record.GetInt("drawn"),
		Lost:           record.GetInt("lost"),
		GoalsFor:       record.GetInt("goals_for"),
		GoalsAgainst:   record.GetInt("goals_against"),
		GoalDifference: record.GetInt("goal_difference"),
		Points:         record.GetInt("points"),
		Form:           jsonStrings(record, "form"),
	}
}

func (r *PBStandingsRepo) fill(record *pbCore.Record, row *core.StandingsRow) {
	record.Set("position", row.Position)
	record.Set("name", row.Name)
	record.Set("played", row.Played)
	record.Set("won", row.Won)
	record.Set("drawn", row.Drawn)
	record.Set("lost", row.Lost)
	record.Set("goals_for", row.GoalsFor)
	record.Set("goals_against", row.GoalsAgainst)
	record.Set("goal_difference", row.GoalDifference)
	record.Set("points", row.Points)
	if row.Form == nil {
		row.Form = []string{}
	}
	record.Set("form", row.Form)
}

func (r *PBStandingsRepo) List() ([]*core.StandingsRow, error) {
	records, err := findAll(r.app, core.CollectionStandings, "1=1", "position", nil)
	if err != nil {
		return nil, err
	}

	rows := make([]*core.StandingsRow, 0, len(records))
	for _, rec := range records {
		rows = append(rows, r.toDomain(rec))
	}
	return rows, nil
}

func (r *PBStandingsRepo) GetByID(id string) (*core.StandingsRow, error) {
	record, err := r.app.FindRecordById(core.CollectionStandings, id)
	if err != nil {
		return nil, wrapNotFound("standings row", err)
	}
	return r.toDomain(record), nil
}

func (r *PBStandingsRepo) Create(row *core.StandingsRow) error {
	record, err := newRecord(r.app, core.CollectionStandings)
	if err != nil {
		return err
	}
	r.fill(record, row)
	if err := r.app.Save(record); err != nil {
		return err
	}
	row.ID = record.Id
	return nil
}

func (r *PBStandingsRepo) Update(row *core.StandingsRow) error {
	record, err := r.app.FindRecordById(core.CollectionStandings, row.ID)
	if err != nil {
		return wrapNotFound("standings row", err)
	}
	r.fill(record, row)
	return r.app.Save(record)
}

func (r *PBStandingsRepo) Delete(id string) error {
	return deleteByID(r.app, core.CollectionStandings, id)
}
