package http

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	handlers "github.com/osvaldoteixeira/spotify-clone/internal/adapter/handler/http"
	"github.com/osvaldoteixeira/spotify-clone/internal/adapter/repository"
	"github.com/osvaldoteixeira/spotify-clone/internal/config"
	"github.com/osvaldoteixeira/spotify-clone/internal/domain/provider"
	"github.com/osvaldoteixeira/spotify-clone/internal/infrastructure/database"
	"github.com/osvaldoteixeira/spotify-clone/internal/middleware/auth"
	"github.com/osvaldoteixeira/spotify-clone/internal/usecase"
	"github.com/osvaldoteixeira/spotify-clone/pkg/logger"
)

// Dependencies are the adapters the HTTP server wires into its usecases
type Dependencies struct {
	Repos     *database.Repositories
	Payment   provider.PaymentProvider
	Verifier  provider.WebhookVerifier
	Storage   provider.ObjectStorage
	Publisher usecase.EventPublisher
}

type Server struct {
	config *config.Config
	logger *zap.Logger
	echo   *echo.Echo
	deps   Dependencies
}

func NewServer(cfg *config.Config, log *zap.Logger, deps Dependencies) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handlers.NewRequestValidator()

	// Middleware
	logger.WithEchoLogger(e, log)
	e.Use(middleware.RequestID())
	e.Use(logger.NewEchoRequestLogger(log))
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{strings.TrimSuffix(cfg.Service.SiteURL, "/")},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderAuthorization, echo.HeaderContentType},
	}))
	if cfg.Storage.MaxUploadSize != "" {
		e.Use(middleware.BodyLimit(cfg.Storage.MaxUploadSize))
	}

	s := &Server{
		config: cfg,
		logger: log,
		echo:   e,
		deps:   deps,
	}
	s.setupRoutes()
	return s
}

// Handler exposes the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.echo
}

func (s *Server) Start() error {
	addr := s.config.Server.HTTP.Addr()
	s.logger.Info("Starting HTTP server", zap.String("address", addr))

	if err := s.echo.Start(addr); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

func (s *Server) identityResolver() provider.IdentityResolver {
	if s.config.Supabase.IdentityMode == config.IdentityModeRemote {
		return repository.NewSupabaseUserRepository(s.config.Supabase.URL, s.config.Supabase.AnonKey, s.config.Supabase.Timeout, s.logger)
	}
	return auth.NewClaimsResolver()
}

func (s *Server) setupRoutes() {
	s.echo.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status":  "healthy",
			"service": s.config.Service.Name,
		})
	})

	repos := s.deps.Repos
	identity := s.identityResolver()

	// Usecases
	customerService := usecase.NewCustomerService(repos.BillingCustomer, s.deps.Payment, s.logger)
	catalogService := usecase.NewCatalogService(repos.Catalog, s.deps.Payment, s.logger)
	subscriptionService := usecase.NewSubscriptionService(repos.Subscription, repos.BillingCustomer, s.deps.Payment,
		s.deps.Publisher, s.config.Redis.Channel, s.config.SuccessURL(), s.logger)
	userService := usecase.NewUserService(identity, repos.User, subscriptionService, s.logger)
	songService := usecase.NewSongService(repos.Song, s.deps.Storage, usecase.SongOptions{
		SongsBucket:  s.config.Storage.SongsBucket,
		ImagesBucket: s.config.Storage.ImagesBucket,
		PresignTTL:   s.config.Storage.PresignTTL,
	}, s.logger)
	checkoutUsecase := usecase.NewCheckoutUsecase(identity, customerService, repos.Catalog, repos.Subscription, s.deps.Payment,
		usecase.CheckoutOptions{
			SuccessURL:     s.config.SuccessURL(),
			CancelURL:      s.config.CancelURL(),
			AllowAnonymous: s.config.Checkout.AllowAnonymous,
		}, s.logger)
	webhookService := usecase.NewWebhookService(s.deps.Verifier, repos.Webhook, catalogService, subscriptionService, s.deps.Payment, s.logger)

	// Handlers
	checkoutHandler := handlers.NewCheckoutHandler(checkoutUsecase, s.logger)
	catalogHandler := handlers.NewCatalogHandler(catalogService, s.logger)
	songHandler := handlers.NewSongHandler(songService, userService, s.logger)
	meHandler := handlers.NewMeHandler(userService, subscriptionService, s.logger)
	webhookHandler := handlers.NewWebhookHandler(webhookService, s.logger)

	jwtConfig := auth.JWTConfig{
		Secret:   s.config.Supabase.JWTSecret,
		Logger:   s.logger,
		Audience: "authenticated",
	}
	requireAuth := auth.JWTMiddleware(jwtConfig)
	jwtConfig.Optional = true
	optionalAuth := auth.JWTMiddleware(jwtConfig)

	// The orchestrator decides what a missing identity means.
	s.echo.POST("/api/create-checkout-session", checkoutHandler.CreateCheckoutSession, optionalAuth)

	v1 := s.echo.Group("/api/v1")

	// Public routes
	v1.GET("/products", catalogHandler.ListProducts)
	v1.GET("/songs", songHandler.List)
	v1.GET("/songs/:id", songHandler.Get)

	// Protected routes
	v1.POST("/songs", songHandler.Upload, requireAuth)

	me := v1.Group("/me", requireAuth)
	me.GET("", meHandler.GetProfile)
	me.GET("/subscription", meHandler.GetSubscription)
	me.POST("/billing-portal", meHandler.CreateBillingPortal)
	me.GET("/songs", songHandler.ListMine)

	// Webhook route (outside API versioning)
	s.echo.POST("/webhook", webhookHandler.HandleWebhook)
}
