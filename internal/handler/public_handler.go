package handler

import (
	"net/http"

	"chmfc/internal/service"
	"chmfc/pkg/middleware"

	pbCore "github.com/pocketbase/pocketbase/core"
	"go.uber.org/zap"
)

// PublicHandler serves the read-only fan pages
type PublicHandler struct {
	home      *service.HomeService
	news      *service.NewsService
	schedule  *service.ScheduleService
	standings *service.StandingsService
	roster    *service.RosterService
	orders    *service.OrderService
	events    *service.EventService
	polls     *service.PollService
	logger    *zap.Logger
}

func NewPublicHandler(
	home *service.HomeService,
	news *service.NewsService,
	schedule *service.ScheduleService,
	standings *service.StandingsService,
	roster *service.RosterService,
	orders *service.OrderService,
	events *service.EventService,
	polls *service.PollService,
	logger *zap.Logger,
) *PublicHandler {
	return &PublicHandler{
		home:      home,
		news:      news,
		schedule:  schedule,
		standings: standings,
		roster:    roster,
		orders:    orders,
		events:    events,
		polls:     polls,
		logger:    logger,
	}
}

// Home handles GET /api/home
func (h *PublicHandler) Home(e *pbCore.RequestEvent) error {
	home, err := h.home.Home(e.Request.Context())
	if err != nil {
		return respondError(e, h.logger, err)
	}
	return e.JSON(http.StatusOK, home)
}

// News handles GET /api/news
func (h *PublicHandler) News(e *pbCore.RequestEvent) error {
	articles, err := h.news.Published()
	if err != nil {
		return respondError(e, h.logger, err)
	}
	return e.JSON(http.StatusOK, articles)
}

// Article handles GET /api/news/{id}
func (h *PublicHandler) Article(e *pbCore.RequestEvent) error {
	article, err := h.news.Article(e.Request.PathValue("id"))
	if err != nil {
		return respondError(e, h.logger, err)
	}
	return e.JSON(http.StatusOK, article)
}

// Schedule handles GET /api/schedule
func (h *PublicHandler) Schedule(e *pbCore.RequestEvent) error {
	schedule, err := h.schedule.Schedule()
	if err != nil {
		return respondError(e, h.logger, err)
	}
	return e.JSON(http.StatusOK, schedule)
}

// Standings handles GET /api/standings
func (h *PublicHandler) Standings(e *pbCore.RequestEvent) error {
	table, err := h.standings.Table()
	if err != nil {
		return respondError(e, h.logger, err)
	}
	return e.JSON(http.StatusOK, table)
}

// Roster handles GET /api/roster?q=
func (h *PublicHandler) Roster(e *pbCore.RequestEvent) error {
	groups, err := h.roster.Roster(e.Request.URL.Query().Get("q"))
	if err != nil {
		return respondError(e, h.logger, err)
	}
	return e.JSON(http.StatusOK, groups)
}

// Player handles GET /api/roster/{id}
func (h *PublicHandler) Player(e *pbCore.RequestEvent) error {
	profile, err := h.roster.Profile(e.Request.PathValue("id"))
	if err != nil {
		return respondError(e, h.logger, err)
	}
	return e.JSON(http.StatusOK, profile)
}

// Compare handles GET /api/roster/compare?p1=&p2=
func (h *PublicHandler) Compare(e *pbCore.RequestEvent) error {
	q := e.Request.URL.Query()
	cmp, err := h.roster.Compare(q.Get("p1"), q.Get("p2"))
	if err != nil {
		return respondError(e, h.logger, err)
	}
	return e.JSON(http.StatusOK, cmp)
}

// Store handles GET /api/store
func (h *PublicHandler) Store(e *pbCore.RequestEvent) error {
	front, err := h.orders.Storefront()
	if err != nil {
		return respondError(e, h.logger, err)
	}
	return e.JSON(http.StatusOK, front)
}

// Events handles GET /api/events
func (h *PublicHandler) Events(e *pbCore.RequestEvent) error {
	events, err := h.events.List()
	if err != nil {
		return respondError(e, h.logger, err)
	}
	return e.JSON(http.StatusOK, events)
}

// Polls handles GET /api/polls. Signed-in fans see which polls they voted in.
func (h *PublicHandler) Polls(e *pbCore.RequestEvent) error {
	userID := ""
	if sess := middleware.SessionFrom(e); sess != nil {
		userID = sess.UserID
	}

	polls, err := h.polls.OpenPolls(userID)
	if err != nil {
		return respondError(e, h.logger, err)
	}
	return e.JSON(http.StatusOK, polls)
}
