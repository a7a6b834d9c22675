package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	pkgconfig "github.com/osvaldoteixeira/spotify-clone/pkg/config"
	"github.com/osvaldoteixeira/spotify-clone/pkg/logger"
)

// ServiceName is the config file name and the environment variable prefix.
const ServiceName = "storefront"

type Config struct {
	Service  ServiceConfig  `yaml:"service"`
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Log      LogConfig      `yaml:"log"`
	Supabase SupabaseConfig `yaml:"supabase"`
	Stripe   StripeConfig   `yaml:"stripe"`
	Storage  StorageConfig  `yaml:"storage"`
	Redis    RedisConfig    `yaml:"redis"`
	Checkout CheckoutConfig `yaml:"checkout"`
}

type ServiceConfig struct {
	Name        string `yaml:"name"`
	Environment string `yaml:"environment"`
	Version     string `yaml:"version"`
	// SiteURL is the public storefront URL used for checkout redirects and CORS.
	SiteURL string `yaml:"site_url"`
}

type LogConfig struct {
	Level       string `yaml:"level"`
	Format      string `yaml:"format"`
	Output      string `yaml:"output"`
	FilePath    string `yaml:"file_path"`
	Development bool   `yaml:"development"`
	SQLLevel    string `yaml:"sql_level"`
}

const (
	IdentityModeClaims = "claims"
	IdentityModeRemote = "remote"
)

type SupabaseConfig struct {
	URL       string        `yaml:"url"`
	AnonKey   string        `yaml:"anon_key"`
	JWTSecret string        `yaml:"jwt_secret"`
	Timeout   time.Duration `yaml:"timeout"`
	// IdentityMode selects how the checkout identity is resolved:
	// "claims" trusts the verified JWT, "remote" asks /auth/v1/user.
	IdentityMode string `yaml:"identity_mode"`
}

type StripeConfig struct {
	SecretKey     string `yaml:"secret_key"`
	WebhookSecret string `yaml:"webhook_secret"`
	// APIURL overrides the Stripe API base URL (stripe-mock, tests).
	APIURL string `yaml:"api_url"`
}

type StorageConfig struct {
	Endpoint        string        `yaml:"endpoint"`
	Region          string        `yaml:"region"`
	AccessKeyID     string        `yaml:"access_key_id"`
	SecretAccessKey string        `yaml:"secret_access_key"`
	SongsBucket     string        `yaml:"songs_bucket"`
	ImagesBucket    string        `yaml:"images_bucket"`
	PresignTTL      time.Duration `yaml:"presign_ttl"`
	MaxUploadSize   string        `yaml:"max_upload_size"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	Channel  string `yaml:"channel"`
}

type CheckoutConfig struct {
	// AllowAnonymous keeps the legacy behaviour of creating a checkout for an
	// empty identity instead of failing with UNAUTHENTICATED.
	AllowAnonymous bool `yaml:"allow_anonymous"`
}

func defaults() map[string]interface{} {
	return map[string]interface{}{
		"service.name":                ServiceName,
		"service.environment":         "dev",
		"service.site_url":            "http://localhost:3000/",
		"server.http.port":            8080,
		"server.grpc.port":            9090,
		"server.shutdown_timeout":     "10s",
		"database.host":               "localhost",
		"database.port":               5432,
		"database.sslmode":            "disable",
		"database.max_open_conns":     25,
		"database.max_idle_conns":     5,
		"database.conn_max_lifetime":  "30m",
		"database.conn_max_idle_time": "5m",
		"log.level":                   "info",
		"log.format":                  "json",
		"log.output":                  "stdout",
		"log.sql_level":               "warn",
		"supabase.url":                "",
		"supabase.anon_key":           "",
		"supabase.jwt_secret":         "",
		"supabase.timeout":            "10s",
		"supabase.identity_mode":      IdentityModeClaims,
		"stripe.secret_key":           "",
		"stripe.webhook_secret":       "",
		"stripe.api_url":              "",
		"storage.endpoint":            "",
		"storage.region":              "us-east-1",
		"storage.access_key_id":       "",
		"storage.secret_access_key":   "",
		"storage.songs_bucket":        "songs",
		"storage.images_bucket":       "images",
		"storage.presign_ttl":         "1h",
		"storage.max_upload_size":     "50M",
		"redis.addr":                  "",
		"redis.password":              "",
		"redis.db":                    0,
		"redis.channel":               "storefront.subscription.changed",
		"checkout.allow_anonymous":    false,
	}
}

// Load reads configs/<APP_ENV>/storefront.yaml (or CONFIG_PATH) with
// STOREFRONT_* environment overrides and validates the result.
func Load() (*Config, error) {
	src, err := pkgconfig.Load(ServiceName, defaults())
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := src.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	cfg.Service.SiteURL = withTrailingSlash(cfg.Service.SiteURL)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate reports every missing required setting at once.
func (c *Config) Validate() error {
	var errs []error
	if c.Service.SiteURL == "" {
		errs = append(errs, errors.New("service.site_url is required"))
	}
	if c.Stripe.SecretKey == "" {
		errs = append(errs, errors.New("stripe.secret_key is required"))
	}
	if c.Stripe.WebhookSecret == "" {
		errs = append(errs, errors.New("stripe.webhook_secret is required"))
	}
	if c.Supabase.JWTSecret == "" {
		errs = append(errs, errors.New("supabase.jwt_secret is required"))
	}
	switch c.Supabase.IdentityMode {
	case IdentityModeClaims:
	case IdentityModeRemote:
		if c.Supabase.URL == "" || c.Supabase.AnonKey == "" {
			errs = append(errs, errors.New("supabase.url and supabase.anon_key are required in remote identity mode"))
		}
	default:
		errs = append(errs, fmt.Errorf("supabase.identity_mode %q is not one of claims, remote", c.Supabase.IdentityMode))
	}
	if c.Server.HTTP.Port <= 0 {
		errs = append(errs, errors.New("server.http.port must be positive"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid configuration: %w", errors.Join(errs...))
	}
	return nil
}

// SuccessURL is where Stripe redirects after a completed checkout.
func (c *Config) SuccessURL() string {
	return withTrailingSlash(c.Service.SiteURL) + "account"
}

// LoggerConfig is the log section tagged with the service identity.
func (c *Config) LoggerConfig() logger.Config {
	return logger.Config{
		Level:       c.Log.Level,
		Format:      c.Log.Format,
		Output:      c.Log.Output,
		FilePath:    c.Log.FilePath,
		Development: c.Log.Development,
		Service:     c.Service.Name,
		Environment: c.Service.Environment,
		Version:     c.Service.Version,
	}
}

// CancelURL is where Stripe redirects when the customer abandons checkout.
func (c *Config) CancelURL() string {
	return withTrailingSlash(c.Service.SiteURL)
}

func withTrailingSlash(u string) string {
	u = strings.TrimSpace(u)
	if u == "" || strings.HasSuffix(u, "/") {
		return u
	}
	return u + "/"
}
