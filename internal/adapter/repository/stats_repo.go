package repository

import (
	"fmt"

	"chmfc/internal/core"

	"github.com/pocketbase/dbx"
	pbCore "github.com/pocketbase/pocketbase/core"
)

type PBStatsRepo struct {
	app pbCore.App
}

func NewStatsRepo(app pbCore.App) core.StatsRepository {
	return &PBStatsRepo{app: app}
}

func (r *PBStatsRepo) Count(collection, filter string, params map[string]any) (int64, error) {
	var exprs []dbx.Expression
	if filter != "" {
		exprs = append(exprs, dbx.NewExp(filter, dbx.Params(params)))
	}

	n, err := r.app.CountRecords(collection, exprs...)
	if err != nil {
		return 0, fmt.Errorf("count %s: %w", collection, err)
	}
	return n, nil
}

func (r *PBStatsRepo) OrderRevenue() (float64, error) {
	var result struct {
		Total float64 `db:"total"`
	}

	err := r.app.DB().
		Select("COALESCE(SUM(price), 0) as total").
		From(core.CollectionOrders).
		One(&result)
	if err != nil {
		return 0, fmt.Errorf("order revenue: %w", err)
	}
	return result.Total, nil
}

// DailyOrders groups orders by the date part of order_date
func (r *PBStatsRepo) DailyOrders(since string) ([]core.DailyCount, error) {
	type queryResult struct {
		Day   string `db:"day"`
		Total int    `db:"total"`
	}

	var results []queryResult

	err := r.app.DB().Select(
		"substr(order_date, 1, 10) as day",
		"COUNT(*) as total",
	).
		From(core.CollectionOrders).
		Where(dbx.NewExp("order_date >= {:since}", dbx.Params{"since": since})).
		GroupBy("day").
		OrderBy("day ASC").
		All(&results)
	if err != nil {
		return nil, fmt.Errorf("daily orders: %w", err)
	}

	out := make([]core.DailyCount, len(results))
	for i, res := range results {
		out[i] = core.DailyCount{Date: res.Day, Count: res.Total}
	}
	return out, nil
}
