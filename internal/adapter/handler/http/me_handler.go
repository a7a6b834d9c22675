package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/osvaldoteixeira/spotify-clone/internal/usecase"
)

// MeHandler serves the caller's own profile, subscription and billing portal
type MeHandler struct {
	users         *usecase.UserService
	subscriptions *usecase.SubscriptionService
	logger        *zap.Logger
}

func NewMeHandler(users *usecase.UserService, subscriptions *usecase.SubscriptionService, logger *zap.Logger) *MeHandler {
	return &MeHandler{
		users:         users,
		subscriptions: subscriptions,
		logger:        logger,
	}
}

// GetProfile handles GET /api/v1/me
func (h *MeHandler) GetProfile(c echo.Context) error {
	ctx := c.Request().Context()
	identity, err := h.users.Current(ctx)
	if err != nil {
		return err
	}

	profile, err := h.users.Profile(ctx, identity)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, profile)
}

// GetSubscription handles GET /api/v1/me/subscription
func (h *MeHandler) GetSubscription(c echo.Context) error {
	ctx := c.Request().Context()
	identity, err := h.users.Current(ctx)
	if err != nil {
		return err
	}

	sub, err := h.subscriptions.GetCurrent(ctx, identity.ID)
	if err != nil {
		return err
	}
	if sub == nil {
		return c.NoContent(http.StatusNoContent)
	}
	return c.JSON(http.StatusOK, sub)
}

// CreateBillingPortal handles POST /api/v1/me/billing-portal
func (h *MeHandler) CreateBillingPortal(c echo.Context) error {
	ctx := c.Request().Context()
	identity, err := h.users.Current(ctx)
	if err != nil {
		return err
	}

	url, err := h.subscriptions.CreatePortalSession(ctx, identity.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"url": url})
}
