package trello

import (
	"context"
	"fmt"
)

// Webhook represents a webhook registered against an API token.
type Webhook struct {
	client *Client

	// Token is the API token the webhook is registered under.
	Token string `json:"-"`

	ID          string `json:"id"`
	Description string `json:"description"`
	IDModel     string `json:"idModel"`
	CallbackURL string `json:"callbackURL"`
	Active      bool   `json:"active"`
}

// Delete unregisters the webhook.
func (w *Webhook) Delete(ctx context.Context) error {
	_, err := w.client.transport.Delete(ctx, "/webhooks/"+w.ID)
	if err != nil {
		return fmt.Errorf("deleting webhook: %w", err)
	}

	return nil
}
