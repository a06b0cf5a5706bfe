package handler

import (
	"net/http"

	"chmfc/internal/core"
	"chmfc/internal/service"
	"chmfc/pkg/middleware"

	pbCore "github.com/pocketbase/pocketbase/core"
	"github.com/spf13/cast"
	"go.uber.org/zap"
)

// AdminHandler serves the /admin/api console
type AdminHandler struct {
	dashboard *service.DashboardService
	news      *service.NewsService
	schedule  *service.ScheduleService
	roster    *service.RosterService
	standings *service.StandingsService
	orders    *service.OrderService
	events    *service.EventService
	polls     *service.PollService
	auth      *service.AuthService
	logger    *zap.Logger
}

type AdminServices struct {
	Dashboard *service.DashboardService
	News      *service.NewsService
	Schedule  *service.ScheduleService
	Roster    *service.RosterService
	Standings *service.StandingsService
	Orders    *service.OrderService
	Events    *service.EventService
	Polls     *service.PollService
	Auth      *service.AuthService
}

func NewAdminHandler(s AdminServices, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{
		dashboard: s.Dashboard,
		news:      s.News,
		schedule:  s.Schedule,
		roster:    s.Roster,
		standings: s.Standings,
		orders:    s.Orders,
		events:    s.Events,
		polls:     s.Polls,
		auth:      s.Auth,
		logger:    logger,
	}
}

// reply writes v, or the mapped error
func (h *AdminHandler) reply(e *pbCore.RequestEvent, status int, v any, err error) error {
	if err != nil {
		return respondError(e, h.logger, err)
	}
	return e.JSON(status, v)
}

// save binds the body into v, takes the id from the path when present and
// runs fn. A new record answers 201, an update 200.
func save[T any](h *AdminHandler, e *pbCore.RequestEvent, v *T, setID func(*T, string), fn func(*T) error) error {
	if err := e.BindBody(v); err != nil {
		return badRequest(e, "Invalid request")
	}

	// only the path decides between create and update
	id := e.Request.PathValue("id")
	setID(v, id)

	status := http.StatusCreated
	if id != "" {
		status = http.StatusOK
	}
	return h.reply(e, status, v, fn(v))
}

func (h *AdminHandler) deleted(e *pbCore.RequestEvent, err error) error {
	if err != nil {
		return respondError(e, h.logger, err)
	}
	return ok(e, "Deleted")
}

// Dashboard handles GET /admin/api/dashboard
func (h *AdminHandler) Dashboard(e *pbCore.RequestEvent) error {
	d, err := h.dashboard.Dashboard(e.Request.Context())
	return h.reply(e, http.StatusOK, d, err)
}

// ---- news ----

func (h *AdminHandler) ListNews(e *pbCore.RequestEvent) error {
	articles, err := h.news.All()
	return h.reply(e, http.StatusOK, articles, err)
}

func (h *AdminHandler) GetNews(e *pbCore.RequestEvent) error {
	article, err := h.news.Get(e.Request.PathValue("id"))
	return h.reply(e, http.StatusOK, article, err)
}

func (h *AdminHandler) SaveNews(e *pbCore.RequestEvent) error {
	return save(h, e, &core.NewsArticle{}, func(a *core.NewsArticle, id string) { a.ID = id }, h.news.Save)
}

func (h *AdminHandler) DeleteNews(e *pbCore.RequestEvent) error {
	return h.deleted(e, h.news.Delete(e.Request.PathValue("id")))
}

// DraftNews handles POST /admin/api/news/draft. The draft is returned, not saved.
func (h *AdminHandler) DraftNews(e *pbCore.RequestEvent) error {
	var req core.DraftRequest
	if err := e.BindBody(&req); err != nil {
		return badRequest(e, "Invalid request")
	}
	draft, err := h.news.Draft(e.Request.Context(), req)
	return h.reply(e, http.StatusOK, draft, err)
}

// ---- matches and highlights ----

func (h *AdminHandler) ListMatches(e *pbCore.RequestEvent) error {
	matches, err := h.schedule.Matches(core.MatchStatus(e.Request.URL.Query().Get("status")))
	return h.reply(e, http.StatusOK, matches, err)
}

func (h *AdminHandler) SaveMatch(e *pbCore.RequestEvent) error {
	return save(h, e, &core.Match{}, func(m *core.Match, id string) { m.ID = id }, h.schedule.SaveMatch)
}

func (h *AdminHandler) DeleteMatch(e *pbCore.RequestEvent) error {
	return h.deleted(e, h.schedule.DeleteMatch(e.Request.PathValue("id")))
}

func (h *AdminHandler) MatchHighlights(e *pbCore.RequestEvent) error {
	highlights, err := h.schedule.MatchHighlights(e.Request.PathValue("id"))
	return h.reply(e, http.StatusOK, highlights, err)
}

func (h *AdminHandler) ListHighlights(e *pbCore.RequestEvent) error {
	highlights, err := h.schedule.Highlights()
	return h.reply(e, http.StatusOK, highlights, err)
}

func (h *AdminHandler) AddHighlight(e *pbCore.RequestEvent) error {
	var hl core.Highlight
	if err := e.BindBody(&hl); err != nil {
		return badRequest(e, "Invalid request")
	}
	hl.ID = ""
	return h.reply(e, http.StatusCreated, &hl, h.schedule.AddHighlight(&hl))
}

func (h *AdminHandler) DeleteHighlight(e *pbCore.RequestEvent) error {
	return h.deleted(e, h.schedule.DeleteHighlight(e.Request.PathValue("id")))
}

// ---- players ----

func (h *AdminHandler) ListPlayers(e *pbCore.RequestEvent) error {
	players, err := h.roster.Players(e.Request.URL.Query().Get("squad"))
	return h.reply(e, http.StatusOK, players, err)
}

func (h *AdminHandler) GetPlayer(e *pbCore.RequestEvent) error {
	profile, err := h.roster.Profile(e.Request.PathValue("id"))
	return h.reply(e, http.StatusOK, profile, err)
}

func (h *AdminHandler) SavePlayer(e *pbCore.RequestEvent) error {
	return save(h, e, &core.Player{}, func(p *core.Player, id string) { p.ID = id }, h.roster.SaveProfile)
}

// UpdatePlayerStats handles PUT /admin/api/players/{id}/stats. The body is a
// flat object of season fields and "category.attribute" ratings.
func (h *AdminHandler) UpdatePlayerStats(e *pbCore.RequestEvent) error {
	var body map[string]any
	if err := e.BindBody(&body); err != nil {
		return badRequest(e, "Invalid request")
	}

	form := make(map[string]string, len(body))
	for k, v := range body {
		form[k] = cast.ToString(v)
	}

	profile, err := h.roster.UpdateStats(e.Request.PathValue("id"), form)
	return h.reply(e, http.StatusOK, profile, err)
}

func (h *AdminHandler) DeletePlayer(e *pbCore.RequestEvent) error {
	return h.deleted(e, h.roster.Delete(e.Request.PathValue("id")))
}

// ---- standings ----

func (h *AdminHandler) ListStandings(e *pbCore.RequestEvent) error {
	table, err := h.standings.Table()
	return h.reply(e, http.StatusOK, table, err)
}

func (h *AdminHandler) SaveStanding(e *pbCore.RequestEvent) error {
	return save(h, e, &core.StandingsRow{}, func(r *core.StandingsRow, id string) { r.ID = id }, h.standings.Save)
}

func (h *AdminHandler) DeleteStanding(e *pbCore.RequestEvent) error {
	return h.deleted(e, h.standings.Delete(e.Request.PathValue("id")))
}

// ---- products and orders ----

func (h *AdminHandler) ListProducts(e *pbCore.RequestEvent) error {
	products, err := h.orders.Products()
	return h.reply(e, http.StatusOK, products, err)
}

func (h *AdminHandler) SaveProduct(e *pbCore.RequestEvent) error {
	return save(h, e, &core.Product{}, func(p *core.Product, id string) { p.ID = id }, h.orders.SaveProduct)
}

func (h *AdminHandler) DeleteProduct(e *pbCore.RequestEvent) error {
	return h.deleted(e, h.orders.DeleteProduct(e.Request.PathValue("id")))
}

func (h *AdminHandler) ListOrders(e *pbCore.RequestEvent) error {
	orders, err := h.orders.ListOrders()
	return h.reply(e, http.StatusOK, orders, err)
}

// UpdateOrderStatus handles POST /admin/api/orders/{id}/status
func (h *AdminHandler) UpdateOrderStatus(e *pbCore.RequestEvent) error {
	var req struct {
		Status string `json:"status" form:"status"`
	}
	if err := e.BindBody(&req); err != nil || req.Status == "" {
		return badRequest(e, "Missing status")
	}

	if err := h.orders.UpdateStatus(e.Request.PathValue("id"), core.OrderStatus(req.Status)); err != nil {
		return respondError(e, h.logger, err)
	}
	return ok(e, "Status updated")
}

// ---- events ----

func (h *AdminHandler) ListEvents(e *pbCore.RequestEvent) error {
	events, err := h.events.List()
	return h.reply(e, http.StatusOK, events, err)
}

func (h *AdminHandler) SaveEvent(e *pbCore.RequestEvent) error {
	return save(h, e, &core.Event{}, func(ev *core.Event, id string) { ev.ID = id }, h.events.Save)
}

func (h *AdminHandler) DeleteEvent(e *pbCore.RequestEvent) error {
	return h.deleted(e, h.events.Delete(e.Request.PathValue("id")))
}

// ---- polls ----

func (h *AdminHandler) ListPolls(e *pbCore.RequestEvent) error {
	polls, err := h.polls.ListPolls()
	return h.reply(e, http.StatusOK, polls, err)
}

// PollMatches feeds the match picker of the poll form
func (h *AdminHandler) PollMatches(e *pbCore.RequestEvent) error {
	matches, err := h.polls.PastMatches()
	return h.reply(e, http.StatusOK, matches, err)
}

func (h *AdminHandler) CreatePoll(e *pbCore.RequestEvent) error {
	var req core.CreatePollRequest
	if err := e.BindBody(&req); err != nil {
		return badRequest(e, "Invalid request")
	}
	poll, err := h.polls.CreatePoll(e.Request.Context(), &req)
	return h.reply(e, http.StatusCreated, poll, err)
}

func (h *AdminHandler) PollResults(e *pbCore.RequestEvent) error {
	view, err := h.polls.Results(e.Request.PathValue("id"))
	return h.reply(e, http.StatusOK, view, err)
}

func (h *AdminHandler) TogglePoll(e *pbCore.RequestEvent) error {
	open, err := h.polls.TogglePoll(e.Request.PathValue("id"))
	return h.reply(e, http.StatusOK, map[string]bool{"is_open": open}, err)
}

func (h *AdminHandler) DeletePoll(e *pbCore.RequestEvent) error {
	return h.deleted(e, h.polls.DeletePoll(e.Request.PathValue("id")))
}

// ---- users ----

func (h *AdminHandler) ListUsers(e *pbCore.RequestEvent) error {
	users, err := h.auth.Users()
	return h.reply(e, http.StatusOK, users, err)
}

func (h *AdminHandler) UpdateUser(e *pbCore.RequestEvent) error {
	var u core.UserProfile
	if err := e.BindBody(&u); err != nil {
		return badRequest(e, "Invalid request")
	}
	u.ID = e.Request.PathValue("id")
	return h.reply(e, http.StatusOK, &u, h.auth.UpdateUser(&u))
}

func (h *AdminHandler) DeleteUser(e *pbCore.RequestEvent) error {
	sess := middleware.SessionFrom(e)
	return h.deleted(e, h.auth.DeleteUser(sess.UserID, e.Request.PathValue("id")))
}

// ---- settings ----

func (h *AdminHandler) PaymentSettings(e *pbCore.RequestEvent) error {
	settings, err := h.orders.PaymentSettings()
	return h.reply(e, http.StatusOK, settings, err)
}

func (h *AdminHandler) SavePaymentSettings(e *pbCore.RequestEvent) error {
	var p core.PaymentSettings
	if err := e.BindBody(&p); err != nil {
		return badRequest(e, "Invalid request")
	}
	return h.reply(e, http.StatusOK, &p, h.orders.SavePaymentSettings(&p))
}

// ---- push notifications ----

// RegisterDeviceToken handles POST /admin/api/fcm/token
func (h *AdminHandler) RegisterDeviceToken(e *pbCore.RequestEvent) error {
	var req struct {
		Token string `json:"token" form:"token"`
	}
	if err := e.BindBody(&req); err != nil {
		return badRequest(e, "Invalid request")
	}

	if err := h.auth.RegisterDevice(middleware.SessionFrom(e), req.Token); err != nil {
		return respondError(e, h.logger, err)
	}
	return e.JSON(http.StatusOK, map[string]any{
		"success": true,
		"message": "FCM token registered successfully",
	})
}
