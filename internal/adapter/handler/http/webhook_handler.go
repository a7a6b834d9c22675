package http

import (
	"io"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/osvaldoteixeira/spotify-clone/internal/usecase"
	apperrors "github.com/osvaldoteixeira/spotify-clone/pkg/errors"
)

type WebhookHandler struct {
	webhooks *usecase.WebhookService
	logger   *zap.Logger
}

func NewWebhookHandler(webhooks *usecase.WebhookService, logger *zap.Logger) *WebhookHandler {
	return &WebhookHandler{
		webhooks: webhooks,
		logger:   logger,
	}
}

// HandleWebhook handles POST /webhook. Non-2xx responses make Stripe redeliver.
func (h *WebhookHandler) HandleWebhook(c echo.Context) error {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return apperrors.NewAppError(apperrors.ErrInvalidArgument, "error reading request body", err)
	}

	sig := c.Request().Header.Get("Stripe-Signature")
	if sig == "" {
		return apperrors.NewAppError(apperrors.ErrInvalidArgument, "missing Stripe-Signature header", nil)
	}

	if err := h.webhooks.Handle(c.Request().Context(), body, sig); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{"received": true})
}
