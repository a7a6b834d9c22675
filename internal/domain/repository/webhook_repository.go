package repository

import (
	"context"
	"encoding/json"

	"github.com/osvaldoteixeira/spotify-clone/internal/domain/model"
)

// WebhookEventRepository handles webhook event storage and processing state
type WebhookEventRepository interface {
	// SaveEvent stores the event once; created is false for a redelivery.
	SaveEvent(ctx context.Context, eventID, eventType string, data json.RawMessage) (created bool, err error)
	GetEvent(ctx context.Context, eventID string) (*model.StripeWebhookEvent, error)
	MarkProcessing(ctx context.Context, eventID string) error
	MarkProcessed(ctx context.Context, eventID string) error
	MarkFailed(ctx context.Context, eventID string, err error) error
}
