package handler

import (
	"net/http"
	"time"

	"chmfc/internal/core"
	"chmfc/internal/service"
	"chmfc/pkg/middleware"

	pbCore "github.com/pocketbase/pocketbase/core"
	"go.uber.org/zap"
)

const sessionTTL = 7 * 24 * time.Hour

type AuthHandler struct {
	auth   *service.AuthService
	logger *zap.Logger
}

func NewAuthHandler(auth *service.AuthService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{auth: auth, logger: logger}
}

type loginRequest struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

type authResponse struct {
	Token   string           `json:"token"`
	Session *service.Session `json:"session"`
}

func setAuthCookie(e *pbCore.RequestEvent, token string) {
	http.SetCookie(e.Response, &http.Cookie{
		Name:     middleware.AuthCookie,
		Value:    token,
		Path:     "/",
		Secure:   e.Request.TLS != nil,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
		Expires:  time.Now().Add(sessionTTL),
	})
}

// SignUp handles POST /api/auth/signup
func (h *AuthHandler) SignUp(e *pbCore.RequestEvent) error {
	var req core.SignUpRequest
	if err := e.BindBody(&req); err != nil {
		return badRequest(e, "Invalid request")
	}

	sess, token, err := h.auth.SignUp(&req)
	if err != nil {
		return respondError(e, h.logger, err)
	}

	setAuthCookie(e, token)
	return e.JSON(http.StatusCreated, authResponse{Token: token, Session: sess})
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(e *pbCore.RequestEvent) error {
	var req loginRequest
	if err := e.BindBody(&req); err != nil {
		return badRequest(e, "Invalid request")
	}

	sess, token, err := h.auth.SignIn(req.Email, req.Password)
	if err != nil {
		return respondError(e, h.logger, err)
	}

	setAuthCookie(e, token)
	return e.JSON(http.StatusOK, authResponse{Token: token, Session: sess})
}

// Logout handles GET|POST /logout
func (h *AuthHandler) Logout(e *pbCore.RequestEvent) error {
	http.SetCookie(e.Response, &http.Cookie{
		Name:     middleware.AuthCookie,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
	})
	return e.Redirect(http.StatusSeeOther, "/login")
}

// Session handles GET /api/auth/session
func (h *AuthHandler) Session(e *pbCore.RequestEvent) error {
	sess := middleware.SessionFrom(e)
	return e.JSON(http.StatusOK, map[string]any{
		"authenticated": sess != nil,
		"session":       sess,
	})
}

// Profile handles GET /api/profile
func (h *AuthHandler) Profile(e *pbCore.RequestEvent) error {
	sess := middleware.SessionFrom(e)
	if sess.Superuser {
		return e.JSON(http.StatusOK, sess.Profile)
	}

	profile, err := h.auth.Profile(sess.UserID)
	if err != nil {
		return respondError(e, h.logger, err)
	}
	return e.JSON(http.StatusOK, profile)
}

// UpdateProfile handles PATCH /api/profile. Only the name can change.
func (h *AuthHandler) UpdateProfile(e *pbCore.RequestEvent) error {
	var req struct {
		Name string `json:"name" form:"name"`
	}
	if err := e.BindBody(&req); err != nil {
		return badRequest(e, "Invalid request")
	}

	sess := middleware.SessionFrom(e)
	if sess.Superuser {
		return respondError(e, h.logger, core.ErrForbidden)
	}

	profile, err := h.auth.UpdateName(sess.UserID, req.Name)
	if err != nil {
		return respondError(e, h.logger, err)
	}
	return e.JSON(http.StatusOK, profile)
}
