package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"chmfc/internal/core"
	"chmfc/internal/service"
	"chmfc/pkg/broker"
	"chmfc/pkg/middleware"

	pbCore "github.com/pocketbase/pocketbase/core"
	"go.uber.org/zap"
)

// PublicCollections can be watched by anyone
var PublicCollections = []string{
	core.CollectionNews,
	core.CollectionMatches,
	core.CollectionHighlights,
	core.CollectionPlayers,
	core.CollectionStandings,
	core.CollectionProducts,
	core.CollectionEvents,
	core.CollectionPolls,
}

// AdminCollections adds the collections only admins may watch
var AdminCollections = append(append([]string{}, PublicCollections...),
	core.CollectionOrders,
	core.CollectionUsers,
	core.CollectionSettings,
)

// liveFilters are the equality predicates a stream may ask for
type liveFilters struct {
	Status string
	Squad  string
}

type LiveHandler struct {
	broker    *broker.LiveBroker
	news      *service.NewsService
	schedule  *service.ScheduleService
	roster    *service.RosterService
	standings *service.StandingsService
	orders    *service.OrderService
	events    *service.EventService
	polls     *service.PollService
	auth      *service.AuthService
	logger    *zap.Logger

	heartbeat time.Duration
}

func NewLiveHandler(b *broker.LiveBroker, s AdminServices, logger *zap.Logger) *LiveHandler {
	return &LiveHandler{
		broker:    b,
		news:      s.News,
		schedule:  s.Schedule,
		roster:    s.Roster,
		standings: s.Standings,
		orders:    s.Orders,
		events:    s.Events,
		polls:     s.Polls,
		auth:      s.Auth,
		logger:    logger,
		heartbeat: 30 * time.Second,
	}
}

// StreamPublic handles GET /api/live/{collection}
func (h *LiveHandler) StreamPublic(e *pbCore.RequestEvent) error {
	return h.stream(e, false)
}

// StreamAdmin handles GET /admin/api/live/{collection}
func (h *LiveHandler) StreamAdmin(e *pbCore.RequestEvent) error {
	return h.stream(e, true)
}

func (h *LiveHandler) stream(e *pbCore.RequestEvent, admin bool) error {
	collection := e.Request.PathValue("collection")
	allowed := PublicCollections
	if admin {
		allowed = AdminCollections
	}
	if !contains(allowed, collection) {
		return e.JSON(http.StatusNotFound, map[string]string{"error": "Unknown collection"})
	}

	q := e.Request.URL.Query()
	filters := liveFilters{Status: q.Get("status"), Squad: q.Get("squad")}

	userID := ""
	if sess := middleware.SessionFrom(e); sess != nil {
		userID = sess.UserID
	}

	snapshot := func() (any, error) {
		return h.snapshot(collection, filters, admin, userID)
	}

	// Subscribe before the first snapshot so no change falls in between
	sub := h.broker.Subscribe(collection)
	defer sub.Close()

	data, err := snapshot()
	if err != nil {
		return respondError(e, h.logger, err)
	}

	e.Response.Header().Set("Content-Type", "text/event-stream")
	e.Response.Header().Set("Cache-Control", "no-cache")
	e.Response.Header().Set("Connection", "keep-alive")
	e.Response.WriteHeader(http.StatusOK)

	h.send(e, "snapshot", data)

	ticker := time.NewTicker(h.heartbeat)
	defer ticker.Stop()

	for {
		select {
		case change, ok := <-sub.Events:
			if !ok {
				return nil
			}
			data, err := snapshot()
			if err != nil {
				h.logger.Warn("[LIVE] snapshot failed", zap.String("collection", collection), zap.Error(err))
				h.send(e, "error", map[string]string{"error": err.Error()})
				continue
			}
			h.send(e, "snapshot", map[string]any{"change": change, "data": data})

		case <-ticker.C:
			h.send(e, "heartbeat", map[string]any{"timestamp": time.Now().Unix()})

		case <-e.Request.Context().Done():
			h.logger.Debug("[LIVE] client disconnected", zap.String("collection", collection), zap.String("subscription", sub.ID))
			return nil
		}
	}
}

// snapshot reads the current, sorted contents of a collection
func (h *LiveHandler) snapshot(collection string, f liveFilters, admin bool, userID string) (any, error) {
	switch collection {
	case core.CollectionNews:
		if !admin {
			return h.news.Published()
		}
		articles, err := h.news.All()
		if err != nil || f.Status == "" {
			return articles, err
		}
		out := make([]*core.NewsArticle, 0, len(articles))
		for _, a := range articles {
			if string(a.Status) == f.Status {
				out = append(out, a)
			}
		}
		return out, nil

	case core.CollectionMatches:
		return h.schedule.Matches(core.MatchStatus(f.Status))

	case core.CollectionHighlights:
		return h.schedule.Highlights()

	case core.CollectionPlayers:
		return h.roster.Players(f.Squad)

	case core.CollectionStandings:
		return h.standings.Table()

	case core.CollectionProducts:
		return h.orders.Products()

	case core.CollectionEvents:
		return h.events.List()

	case core.CollectionPolls:
		if admin {
			return h.polls.ListPolls()
		}
		return h.polls.OpenPolls(userID)

	case core.CollectionOrders:
		orders, err := h.orders.ListOrders()
		if err != nil || f.Status == "" {
			return orders, err
		}
		out := make([]*service.OrderView, 0, len(orders))
		for _, o := range orders {
			if string(o.Status) == f.Status {
				out = append(out, o)
			}
		}
		return out, nil

	case core.CollectionUsers:
		return h.auth.Users()

	case core.CollectionSettings:
		return h.orders.PaymentSettings()
	}
	return nil, fmt.Errorf("collection %s: %w", collection, core.ErrNotFound)
}

// send writes a single SSE message and flushes it
func (h *LiveHandler) send(e *pbCore.RequestEvent, event string, data any) {
	payload, err := json.Marshal(data)
	if err != nil {
		h.logger.Error("[LIVE] marshal event", zap.Error(err))
		return
	}

	if _, err := fmt.Fprintf(e.Response, "event: %s\ndata: %s\n\n", event, payload); err != nil {
		h.logger.Debug("[LIVE] write event", zap.Error(err))
		return
	}

	if flusher, ok := e.Response.(http.Flusher); ok {
		flusher.Flush()
	}
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
