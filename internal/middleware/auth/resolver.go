package auth

import (
	"context"

	"github.com/osvaldoteixeira/spotify-clone/internal/domain/entity"
	domainErrors "github.com/osvaldoteixeira/spotify-clone/internal/domain/errors"
)

// ClaimsResolver resolves the caller from the JWT claims verified by JWTMiddleware.
type ClaimsResolver struct{}

func NewClaimsResolver() *ClaimsResolver {
	return &ClaimsResolver{}
}

func (r *ClaimsResolver) Resolve(ctx context.Context) (*entity.Identity, error) {
	user, ok := UserFromContext(ctx)
	if !ok {
		return nil, domainErrors.ErrNoIdentity
	}
	return &entity.Identity{ID: user.UserID, Email: user.Email}, nil
}
