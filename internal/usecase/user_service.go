package usecase

import (
	"context"

	"go.uber.org/zap"

	"github.com/osvaldoteixeira/spotify-clone/internal/domain/entity"
	"github.com/osvaldoteixeira/spotify-clone/internal/domain/provider"
	"github.com/osvaldoteixeira/spotify-clone/internal/domain/repository"
)

// UserService resolves the caller and assembles its profile
type UserService struct {
	identity      provider.IdentityResolver
	userRepo      repository.UserRepository
	subscriptions *SubscriptionService
	logger        *zap.Logger
}

// NewUserService creates a new user service instance
func NewUserService(
	identity provider.IdentityResolver,
	userRepo repository.UserRepository,
	subscriptions *SubscriptionService,
	logger *zap.Logger,
) *UserService {
	return &UserService{
		identity:      identity,
		userRepo:      userRepo,
		subscriptions: subscriptions,
		logger:        logger,
	}
}

// Current returns the caller of the request
func (s *UserService) Current(ctx context.Context) (*entity.Identity, error) {
	identity, err := s.identity.Resolve(ctx)
	if err != nil {
		return nil, toAppError(err, "failed to resolve identity")
	}
	return identity, nil
}

// Profile returns the identity with its users row and current subscription
func (s *UserService) Profile(ctx context.Context, identity *entity.Identity) (*entity.Profile, error) {
	details, err := s.userRepo.GetByID(ctx, identity.ID)
	if err != nil {
		s.logger.Error("Failed to get user details", zap.String("user_id", identity.ID), zap.Error(err))
		return nil, toAppError(err, "failed to get user details")
	}

	sub, err := s.subscriptions.GetCurrent(ctx, identity.ID)
	if err != nil {
		return nil, err
	}

	return &entity.Profile{
		Identity:     *identity,
		Details:      details,
		Subscription: sub,
	}, nil
}
