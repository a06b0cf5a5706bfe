package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"chmfc/internal/core"

	"github.com/pocketbase/dbx"
	pbCore "github.com/pocketbase/pocketbase/core"
)

// wrapNotFound turns the store's "no rows" into core.ErrNotFound
func wrapNotFound(what string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s: %w", what, core.ErrNotFound)
	}
	return fmt.Errorf("%s: %w", what, err)
}

// eqFilter builds a PocketBase filter of ANDed equality predicates.
// Empty values are skipped so callers can pass optional filters straight through.
func eqFilter(fields map[string]string) (string, dbx.Params) {
	parts := make([]string, 0, len(fields))
	params := dbx.Params{}
	for field, value := range fields {
		if value == "" {
			continue
		}
		parts = append(parts, fmt.Sprintf("%s = {:%s}", field, field))
		params[field] = value
	}
	if len(parts) == 0 {
		return "1=1", nil
	}
	return strings.Join(parts, " && "), params
}

func findAll(app pbCore.App, collection, filter, sort string, params dbx.Params) ([]*pbCore.Record, error) {
	records, err := app.FindRecordsByFilter(collection, filter, sort, 0, 0, params)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", collection, err)
	}
	return records, nil
}

func newRecord(app pbCore.App, collection string) (*pbCore.Record, error) {
	c, err := app.FindCollectionByNameOrId(collection)
	if err != nil {
		return nil, fmt.Errorf("collection %s: %w", collection, err)
	}
	return pbCore.NewRecord(c), nil
}

func deleteByID(app pbCore.App, collection, id string) error {
	record, err := app.FindRecordById(collection, id)
	if err != nil {
		return wrapNotFound(collection, err)
	}
	return app.Delete(record)
}

func jsonStrings(record *pbCore.Record, field string) []string {
	var out []string
	if err := record.UnmarshalJSONField(field, &out); err != nil || out == nil {
		return []string{}
	}
	return out
}
