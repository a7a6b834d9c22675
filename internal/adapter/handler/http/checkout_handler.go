package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/osvaldoteixeira/spotify-clone/internal/domain/entity"
	"github.com/osvaldoteixeira/spotify-clone/internal/usecase"
	apperrors "github.com/osvaldoteixeira/spotify-clone/pkg/errors"
)

type CheckoutHandler struct {
	checkout *usecase.CheckoutUsecase
	logger   *zap.Logger
}

func NewCheckoutHandler(checkout *usecase.CheckoutUsecase, logger *zap.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		checkout: checkout,
		logger:   logger,
	}
}

type checkoutPrice struct {
	ID string `json:"id" validate:"required"`
}

type CreateCheckoutSessionRequest struct {
	Price    checkoutPrice     `json:"price"`
	Quantity *int64            `json:"quantity,omitempty" validate:"omitempty,min=1"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// CreateCheckoutSession handles POST /api/create-checkout-session
func (h *CheckoutHandler) CreateCheckoutSession(c echo.Context) error {
	var req CreateCheckoutSessionRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	checkoutReq := entity.CheckoutRequest{
		PriceID:  req.Price.ID,
		Metadata: req.Metadata,
	}
	if req.Quantity != nil {
		if *req.Quantity < 1 {
			return apperrors.NewAppError(apperrors.ErrInvalidArgument, "quantity must be at least 1", nil)
		}
		checkoutReq.Quantity = *req.Quantity
	}

	session, err := h.checkout.CreateSession(c.Request().Context(), checkoutReq)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, session)
}
