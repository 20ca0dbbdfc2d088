package rest

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/zeebo/xxh3"

	helpline "github.com/mudasir256/helplineapp"
	"github.com/mudasir256/helplineapp/internal/domain"
	"github.com/mudasir256/helplineapp/internal/present/rest/presenter"
	"github.com/mudasir256/helplineapp/internal/service"
	"github.com/mudasir256/helplineapp/internal/usecase"
)

type Handler struct {
	adoption *usecase.AdoptionUsecase
	auth     *usecase.AuthUsecase
	signal   *service.SignalService
}

func NewHandler(
	adoption *usecase.AdoptionUsecase,
	auth *usecase.AuthUsecase,
	signal *service.SignalService,
) *Handler {
	return &Handler{
		adoption: adoption,
		auth:     auth,
		signal:   signal,
	}
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	for _, d := range helpline.Domains {
		base := "/api/adopt-" + string(d)
		e.GET(base, h.handleList(d))
		e.GET(base+"/my-adoptions", h.handleMyAdoptions(d))
		e.GET(base+"/:id", h.handleGet(d))
		e.POST(base+"/:id/adopt", h.handleAdopt(d))
		e.DELETE(base+"/:id/unadopt", h.handleUnadopt(d))
	}

	e.POST("/api/users", h.handleSignup)
	e.POST("/api/auth/login", h.handleLogin)
	e.POST("/api/auth/google", h.handleGoogleLogin)
	e.POST("/api/auth/refresh", h.handleRefresh)
	e.POST("/api/auth/logout", h.handleLogout)
	e.GET("/api/auth/me", h.handleMe)

	e.GET("/realtime", h.handleRealtime)
}

func (h *Handler) handleList(d helpline.Domain) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		cases, err := h.adoption.List(ctx, d)
		if err != nil {
			return presenter.Error(c, err)
		}

		body, err := json.Marshal(echo.Map{
			"success": true,
			"data":    cases,
			"count":   len(cases),
		})
		if err != nil {
			return presenter.InternalError(c, err)
		}

		etag := fmt.Sprintf(`"%016x"`, xxh3.Hash(body))
		c.Response().Header().Set("ETag", etag)
		if c.Request().Header.Get("If-None-Match") == etag {
			return c.NoContent(http.StatusNotModified)
		}
		return c.JSONBlob(http.StatusOK, body)
	}
}

func (h *Handler) handleGet(d helpline.Domain) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		item, err := h.adoption.Get(ctx, d, c.Param("id"))
		if err != nil {
			return presenter.Error(c, err)
		}
		return presenter.Data(c, item)
	}
}

func (h *Handler) handleAdopt(d helpline.Domain) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		var req helpline.AdoptRequest
		if err := c.Bind(&req); err != nil {
			return presenter.BadRequest(c, err)
		}

		sponsorship, err := h.adoption.Adopt(ctx, d, c.Param("id"), req)
		if err != nil {
			return presenter.Error(c, err)
		}
		return presenter.Data(c, sponsorship)
	}
}

func (h *Handler) handleUnadopt(d helpline.Domain) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		err := h.adoption.Unadopt(ctx, d, c.Param("id"), h.identityFrom(c))
		if err != nil {
			return presenter.Error(c, err)
		}
		return presenter.Message(c, "sponsorship released")
	}
}

func (h *Handler) handleMyAdoptions(d helpline.Domain) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		cases, err := h.adoption.MyAdoptions(ctx, d, h.identityFrom(c))
		if err != nil {
			return presenter.Error(c, err)
		}
		return presenter.List(c, cases, len(cases))
	}
}

// identityFrom assembles the caller identity from query parameters, falling
// back to the authenticated requester when the query carries nothing.
func (h *Handler) identityFrom(c echo.Context) helpline.Identity {
	ctx := c.Request().Context()

	identity := helpline.Identity{
		UserID: c.QueryParam("userId"),
		Email:  c.QueryParam("email"),
		Phone:  c.QueryParam("phone"),
	}
	if identity.UserID == "" {
		if requester, ok := ctx.Value(domain.RequesterIdCtxKey).(string); ok {
			identity.UserID = requester
		}
	}
	if identity.Email == "" {
		if email, ok := ctx.Value(domain.RequesterEmailCtxKey).(string); ok {
			identity.Email = email
		}
	}
	return identity
}

type signupBody struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Phone    string `json:"phone"`
}

type loginBody struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type googleBody struct {
	Email        string `json:"email"`
	Name         string `json:"name"`
	ProfileImage string `json:"profile_image"`
	GoogleID     string `json:"googleId"`
}

type refreshBody struct {
	RefreshToken string `json:"refreshToken"`
}

func (h *Handler) handleSignup(c echo.Context) error {
	ctx := c.Request().Context()

	var req signupBody
	if err := c.Bind(&req); err != nil {
		return presenter.BadRequest(c, err)
	}

	session, err := h.auth.Signup(ctx, usecase.SignupInput{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
		Phone:    req.Phone,
	})
	if err != nil {
		return presenter.Error(c, err)
	}
	return sessionResponse(c, session)
}

func (h *Handler) handleLogin(c echo.Context) error {
	ctx := c.Request().Context()

	var req loginBody
	if err := c.Bind(&req); err != nil {
		return presenter.BadRequest(c, err)
	}

	session, err := h.auth.Login(ctx, req.Email, req.Password)
	if err != nil {
		return presenter.Error(c, err)
	}
	return sessionResponse(c, session)
}

func (h *Handler) handleGoogleLogin(c echo.Context) error {
	ctx := c.Request().Context()

	var req googleBody
	if err := c.Bind(&req); err != nil {
		return presenter.BadRequest(c, err)
	}

	session, err := h.auth.GoogleLogin(ctx, usecase.GoogleLoginInput{
		Email:        req.Email,
		Name:         req.Name,
		ProfileImage: req.ProfileImage,
		GoogleID:     req.GoogleID,
	})
	if err != nil {
		return presenter.Error(c, err)
	}
	return sessionResponse(c, session)
}

func (h *Handler) handleRefresh(c echo.Context) error {
	ctx := c.Request().Context()

	var req refreshBody
	if err := c.Bind(&req); err != nil {
		return presenter.BadRequest(c, err)
	}
	if req.RefreshToken == "" {
		return presenter.BadRequestMessage(c, "refreshToken is required")
	}

	session, err := h.auth.Refresh(ctx, req.RefreshToken)
	if err != nil {
		return presenter.Error(c, err)
	}
	return sessionResponse(c, session)
}

func (h *Handler) handleLogout(c echo.Context) error {
	ctx := c.Request().Context()

	var req refreshBody
	if err := c.Bind(&req); err != nil {
		return presenter.BadRequest(c, err)
	}

	if err := h.auth.Logout(ctx, req.RefreshToken); err != nil {
		return presenter.Error(c, err)
	}
	return presenter.Message(c, "logged out")
}

func (h *Handler) handleMe(c echo.Context) error {
	ctx := c.Request().Context()

	requester, _ := ctx.Value(domain.RequesterIdCtxKey).(string)
	user, err := h.auth.Profile(ctx, requester)
	if err != nil {
		return presenter.Error(c, err)
	}
	return presenter.Data(c, helpline.User{
		ID:      user.ID,
		Email:   user.Email,
		Name:    user.Name,
		Picture: user.Picture,
		Phone:   user.Phone,
	})
}

func sessionResponse(c echo.Context, session *usecase.Session) error {
	return presenter.OK(c, echo.Map{
		"user": helpline.User{
			ID:      session.User.ID,
			Email:   session.User.Email,
			Name:    session.User.Name,
			Picture: session.User.Picture,
			Phone:   session.User.Phone,
		},
		"accessToken":  session.Tokens.AccessToken,
		"refreshToken": session.Tokens.RefreshToken,
	})
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

func (h *Handler) handleRealtime(c echo.Context) error {
	ws, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		slog.Error(
			"Failed to upgrade WebSocket",
			slog.String("error", err.Error()),
			slog.String("module", "socket"),
		)
		return err
	}
	defer ws.Close()

	ctx := c.Request().Context()
	events := h.signal.Subscribe(ctx)

	quit := make(chan struct{})

	go func() {
		defer close(quit)
		for {
			// Clients only send heartbeats; any read error ends the session.
			if _, _, err := ws.ReadMessage(); err != nil {
				wsErr, ok := err.(*websocket.CloseError)
				if ok {
					if !(wsErr.Code == websocket.CloseNormalClosure || wsErr.Code == websocket.CloseGoingAway) {
						slog.DebugContext(
							ctx, "WebSocket closed",
							slog.String("error", wsErr.Error()),
							slog.String("module", "socket"),
						)
					}
				} else {
					slog.ErrorContext(
						ctx, "Error reading message",
						slog.String("error", err.Error()),
						slog.String("module", "socket"),
					)
				}
				return
			}
		}
	}()

	for {
		select {
		case <-quit:
			return nil
		case event, ok := <-events:
			if !ok {
				return nil
			}
			if err := ws.WriteJSON(event); err != nil {
				slog.ErrorContext(
					ctx, "Error writing message",
					slog.String("error", err.Error()),
					slog.String("module", "socket"),
				)
				return nil
			}
		}
	}
}
