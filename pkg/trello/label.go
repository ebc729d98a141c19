package trello

import (
	"context"
	"encoding/json"
	"fmt"
)

// Label represents a board label that can be applied to cards.
type Label struct {
	client *Client

	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

// Fetch retrieves all attributes for this label, overwriting whatever was
// previously cached.
func (l *Label) Fetch(ctx context.Context) error {
	resp, err := l.client.transport.Get(ctx, "/labels/"+l.ID, nil)
	if err != nil {
		return fmt.Errorf("fetching label: %w", err)
	}

	if err := json.Unmarshal(resp.Body, l); err != nil {
		return fmt.Errorf("parsing label response: %w", err)
	}

	return nil
}
