package trello

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
)

// Member represents a Trello member.
type Member struct {
	client *Client

	ID       string `json:"id"`
	Username string `json:"username"`
	FullName string `json:"fullName"`
	Initials string `json:"initials"`
	Bio      string `json:"bio"`
	URL      string `json:"url"`
	Status   string `json:"status"`
}

// Fetch retrieves all attributes for this member, overwriting whatever was
// previously cached.
func (m *Member) Fetch(ctx context.Context) error {
	query := url.Values{"badges": []string{"false"}}

	resp, err := m.client.transport.Get(ctx, "/members/"+m.ID, query)
	if err != nil {
		return fmt.Errorf("fetching member: %w", err)
	}

	if err := json.Unmarshal(resp.Body, m); err != nil {
		return fmt.Errorf("parsing member response: %w", err)
	}

	return nil
}
