package handler

import (
	"net/http"

	"chmfc/internal/core"
	"chmfc/internal/service"
	"chmfc/pkg/middleware"

	pbCore "github.com/pocketbase/pocketbase/core"
	"go.uber.org/zap"
)

// FanHandler serves the signed-in actions: ordering and voting
type FanHandler struct {
	orders *service.OrderService
	polls  *service.PollService
	logger *zap.Logger
}

func NewFanHandler(orders *service.OrderService, polls *service.PollService, logger *zap.Logger) *FanHandler {
	return &FanHandler{orders: orders, polls: polls, logger: logger}
}

// PlaceOrder handles POST /api/orders
func (h *FanHandler) PlaceOrder(e *pbCore.RequestEvent) error {
	var req core.PlaceOrderRequest
	if err := e.BindBody(&req); err != nil {
		return badRequest(e, "Invalid request")
	}

	var user *core.UserProfile
	if sess := middleware.SessionFrom(e); sess != nil {
		user = sess.Profile
	}

	order, err := h.orders.PlaceOrder(e.Request.Context(), user, &req)
	if err != nil {
		return respondError(e, h.logger, err)
	}
	return e.JSON(http.StatusCreated, order)
}

// MyOrders handles GET /api/orders
func (h *FanHandler) MyOrders(e *pbCore.RequestEvent) error {
	orders, err := h.orders.MyOrders(middleware.SessionFrom(e).UserID)
	if err != nil {
		return respondError(e, h.logger, err)
	}
	return e.JSON(http.StatusOK, orders)
}

// SubscribePolls handles POST /api/fcm/topics/polls
func (h *FanHandler) SubscribePolls(e *pbCore.RequestEvent) error {
	var req struct {
		Token string `json:"token" form:"token"`
	}
	if err := e.BindBody(&req); err != nil {
		return badRequest(e, "Invalid request")
	}

	if err := h.polls.SubscribeDevice(e.Request.Context(), req.Token); err != nil {
		return respondError(e, h.logger, err)
	}
	return ok(e, "Subscribed to poll notifications")
}

// Vote handles POST /api/polls/{id}/vote
func (h *FanHandler) Vote(e *pbCore.RequestEvent) error {
	var req struct {
		OptionIndex *int `json:"option_index" form:"option_index"`
	}
	if err := e.BindBody(&req); err != nil || req.OptionIndex == nil {
		return badRequest(e, "Please pick a player")
	}

	userID := ""
	if sess := middleware.SessionFrom(e); sess != nil {
		if sess.Superuser {
			return respondError(e, h.logger, core.ErrForbidden)
		}
		userID = sess.UserID
	}

	view, err := h.polls.Vote(e.Request.PathValue("id"), userID, *req.OptionIndex)
	if err != nil {
		return respondError(e, h.logger, err)
	}
	return e.JSON(http.StatusOK, view)
}
