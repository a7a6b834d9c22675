package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/osvaldoteixeira/spotify-clone/internal/domain/entity"
	domainErrors "github.com/osvaldoteixeira/spotify-clone/internal/domain/errors"
	"github.com/osvaldoteixeira/spotify-clone/internal/middleware/auth"
)

// supabaseUser is the subset of the GoTrue user object we read
type supabaseUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// SupabaseUserRepository resolves the caller by asking Supabase Auth for the
// user behind the request's access token (GET /auth/v1/user).
type SupabaseUserRepository struct {
	client  *http.Client
	baseURL string
	apiKey  string
	logger  *zap.Logger
}

// NewSupabaseUserRepository creates a new Supabase auth user repository
func NewSupabaseUserRepository(baseURL, apiKey string, timeout time.Duration, logger *zap.Logger) *SupabaseUserRepository {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &SupabaseUserRepository{
		client: &http.Client{
			Timeout: timeout,
		},
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		logger:  logger,
	}
}

// Resolve returns ErrNoIdentity when the request carries no token or Supabase
// rejects it, and an AuthError when Supabase cannot answer.
func (r *SupabaseUserRepository) Resolve(ctx context.Context) (*entity.Identity, error) {
	token := auth.AccessTokenFromContext(ctx)
	if token == "" {
		return nil, domainErrors.ErrNoIdentity
	}

	startTime := time.Now()
	userURL := r.baseURL + "/auth/v1/user"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, userURL, nil)
	if err != nil {
		return nil, domainErrors.NewSupabaseConnectionError(fmt.Errorf("failed to create request: %w", err))
	}
	req.Header.Set("apikey", r.apiKey)
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")

	resp, err := r.client.Do(req)
	requestDuration := time.Since(startTime)
	if err != nil {
		r.logger.Error("SupabaseUserRepository: HTTP request failed",
			zap.String("url", userURL),
			zap.String("step", "execute_http_request"),
			zap.Duration("request_duration", requestDuration),
			zap.Error(err))
		return nil, domainErrors.NewSupabaseConnectionError(fmt.Errorf("http request failed: %w", err))
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		r.logger.Debug("SupabaseUserRepository: Session rejected by Supabase",
			zap.Int("status_code", resp.StatusCode),
			zap.Duration("request_duration", requestDuration))
		return nil, domainErrors.ErrNoIdentity
	case resp.StatusCode != http.StatusOK:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		r.logger.Warn("SupabaseUserRepository: Supabase API returned non-200 status",
			zap.Int("status_code", resp.StatusCode),
			zap.String("status_text", resp.Status),
			zap.ByteString("response_body", body),
			zap.String("step", "check_response_status"))
		return nil, domainErrors.NewSupabaseStatusError(resp.StatusCode, string(body))
	}

	var user supabaseUser
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		r.logger.Error("SupabaseUserRepository: Failed to decode JSON response",
			zap.String("step", "parse_json_response"),
			zap.Error(err))
		return nil, domainErrors.NewSupabaseInvalidResponseError(resp.StatusCode, err)
	}
	if user.ID == "" {
		return nil, domainErrors.ErrNoIdentity
	}

	r.logger.Debug("SupabaseUserRepository: User resolved",
		zap.String("user_id", user.ID),
		zap.Duration("request_duration", requestDuration))

	return &entity.Identity{ID: user.ID, Email: user.Email}, nil
}
