package service

import (
	"context"
	"sync"
	"time"

	"chmfc/internal/core"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// dashboardDays is the window of the daily order chart
const dashboardDays = 7

type Dashboard struct {
	Counts        map[string]int64  `json:"counts"`
	PendingOrders int64             `json:"pending_orders"`
	OpenPolls     int64             `json:"open_polls"`
	Revenue       float64           `json:"revenue"`
	DailyOrders   []core.DailyCount `json:"daily_orders"`
	Live          map[string]int    `json:"live"`
}

type liveStats interface {
	Stats() map[string]int
}

type DashboardService struct {
	stats  core.StatsRepository
	live   liveStats
	logger *zap.Logger
	now    func() time.Time
}

func NewDashboardService(stats core.StatsRepository, live liveStats, logger *zap.Logger) *DashboardService {
	return &DashboardService{stats: stats, live: live, logger: logger, now: time.Now}
}

var dashboardCollections = []string{
	core.CollectionNews,
	core.CollectionMatches,
	core.CollectionPlayers,
	core.CollectionProducts,
	core.CollectionOrders,
	core.CollectionEvents,
	core.CollectionPolls,
	core.CollectionUsers,
}

func (s *DashboardService) Dashboard(ctx context.Context) (*Dashboard, error) {
	out := &Dashboard{Counts: make(map[string]int64, len(dashboardCollections))}
	var mu sync.Mutex

	g, _ := errgroup.WithContext(ctx)
	for _, name := range dashboardCollections {
		g.Go(func() error {
			n, err := s.stats.Count(name, "", nil)
			if err != nil {
				return err
			}
			mu.Lock()
			out.Counts[name] = n
			mu.Unlock()
			return nil
		})
	}

	g.Go(func() (err error) {
		out.PendingOrders, err = s.stats.Count(core.CollectionOrders,
			"status = {:status}", map[string]any{"status": string(core.OrderPending)})
		return err
	})
	g.Go(func() (err error) {
		out.OpenPolls, err = s.stats.Count(core.CollectionPolls,
			"is_open = {:open}", map[string]any{"open": true})
		return err
	})
	g.Go(func() (err error) {
		out.Revenue, err = s.stats.OrderRevenue()
		return err
	})
	g.Go(func() (err error) {
		out.DailyOrders, err = s.dailyOrders()
		return err
	})

	if err := g.Wait(); err != nil {
		s.logger.Error("[DASHBOARD] load failed", zap.Error(err))
		return nil, err
	}

	if s.live != nil {
		out.Live = s.live.Stats()
	}
	return out, nil
}

// dailyOrders fills the chart window so days without orders show as zero
func (s *DashboardService) dailyOrders() ([]core.DailyCount, error) {
	end := s.now().UTC()
	start := end.AddDate(0, 0, -(dashboardDays - 1))

	results, err := s.stats.DailyOrders(start.Format("2006-01-02") + " 00:00:00")
	if err != nil {
		return nil, err
	}
	byDay := make(map[string]int, len(results))
	for _, r := range results {
		byDay[r.Date] = r.Count
	}

	out := make([]core.DailyCount, 0, dashboardDays)
	for i := 0; i < dashboardDays; i++ {
		day := start.AddDate(0, 0, i).Format("2006-01-02")
		out = append(out, core.DailyCount{Date: day, Count: byDay[day]})
	}
	return out, nil
}
