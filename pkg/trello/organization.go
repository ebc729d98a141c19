package trello

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
)

// Organization represents a Trello organization. Listing endpoints populate
// the always-present fields; Fetch performs a full round trip and overwrites
// every attribute.
type Organization struct {
	client *Client

	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"desc"`
	Closed      bool   `json:"closed"`
	URL         string `json:"url"`
}

// Fetch retrieves all attributes for this organization, overwriting whatever
// was previously cached.
func (o *Organization) Fetch(ctx context.Context) error {
	resp, err := o.client.transport.Get(ctx, "/organizations/"+o.ID, nil)
	if err != nil {
		return fmt.Errorf("fetching organization: %w", err)
	}

	if err := json.Unmarshal(resp.Body, o); err != nil {
		return fmt.Errorf("parsing organization response: %w", err)
	}

	return nil
}

// AllBoards returns all boards in this organization.
func (o *Organization) AllBoards(ctx context.Context) ([]*Board, error) {
	return o.GetBoards(ctx, "all")
}

// GetBoards returns the organization's boards matching the given filter
// ("all", "open", "closed").
func (o *Organization) GetBoards(ctx context.Context, filter string) ([]*Board, error) {
	query := url.Values{
		"lists":  []string{"none"},
		"filter": []string{filter},
	}

	resp, err := o.client.transport.Get(ctx, "/organizations/"+o.ID+"/boards", query)
	if err != nil {
		return nil, fmt.Errorf("listing organization boards: %w", err)
	}

	return o.client.boardsFromJSON(resp.Body, o)
}

// OpenBoards returns the organization's open boards restricted to the given
// fields.
func (o *Organization) OpenBoards(ctx context.Context, fields string) ([]*Board, error) {
	query := url.Values{
		"filter": []string{"open"},
		"fields": []string{fields},
	}

	resp, err := o.client.transport.Get(ctx, "/organizations/"+o.ID+"/boards", query)
	if err != nil {
		return nil, fmt.Errorf("listing organization boards: %w", err)
	}

	return o.client.boardsFromJSON(resp.Body, o)
}

// GetMembers returns all members of this organization.
func (o *Organization) GetMembers(ctx context.Context) ([]*Member, error) {
	query := url.Values{"filter": []string{"all"}}

	resp, err := o.client.transport.Get(ctx, "/organizations/"+o.ID+"/members", query)
	if err != nil {
		return nil, fmt.Errorf("listing organization members: %w", err)
	}

	var members []*Member
	if err := json.Unmarshal(resp.Body, &members); err != nil {
		return nil, fmt.Errorf("parsing members response: %w", err)
	}

	for _, member := range members {
		member.client = o.client
	}

	return members, nil
}
