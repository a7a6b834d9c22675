package usecase

import (
	"errors"
	"fmt"

	domainErrors "github.com/osvaldoteixeira/spotify-clone/internal/domain/errors"
	"github.com/osvaldoteixeira/spotify-clone/internal/domain/provider"
	apperrors "github.com/osvaldoteixeira/spotify-clone/pkg/errors"
)

// toAppError tags err with the code the HTTP layer renders.
// Errors that are already tagged pass through unchanged.
func toAppError(err error, fallback string) error {
	if err == nil {
		return nil
	}

	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return err
	}

	switch {
	case errors.Is(err, domainErrors.ErrNoIdentity):
		return apperrors.NewAppError(apperrors.ErrUnauthenticated, "authentication required", err)
	case errors.Is(err, domainErrors.ErrAlreadySubscribed):
		return apperrors.NewAppError(apperrors.ErrConflict, "user already has an active subscription", err)
	case errors.Is(err, domainErrors.ErrNoCustomerMapping):
		return apperrors.NewAppError(apperrors.ErrNotFound, "no billing customer for user", err)
	case errors.Is(err, domainErrors.ErrSongNotFound):
		return apperrors.NewAppError(apperrors.ErrNotFound, "song not found", err)
	}

	var authErr *domainErrors.AuthError
	if errors.As(err, &authErr) {
		return apperrors.NewAppError(apperrors.ErrUpstreamAuth, "auth backend unavailable", err)
	}

	var storageErr *domainErrors.StorageError
	if errors.As(err, &storageErr) {
		return apperrors.NewAppError(apperrors.ErrUpstreamStorage, fmt.Sprintf("storage %s failed", storageErr.Op), err)
	}

	var providerErr *provider.ProviderError
	if errors.As(err, &providerErr) {
		switch providerErr.Kind {
		case provider.ErrorKindRejected:
			msg := providerErr.Message
			if msg == "" {
				msg = "payment provider rejected the request"
			}
			return apperrors.NewAppError(apperrors.ErrPaymentRejected, msg, err)
		case provider.ErrorKindSignature:
			return apperrors.NewAppError(apperrors.ErrInvalidArgument, "invalid webhook signature", err)
		default:
			return apperrors.NewAppError(apperrors.ErrUpstreamPayment, "payment provider unavailable", err)
		}
	}

	return apperrors.NewAppError(apperrors.ErrInternal, fallback, err)
}
