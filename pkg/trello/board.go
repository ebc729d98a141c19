package trello

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
)

// Board represents a Trello board. Board attributes are cached on the object;
// access to sub-objects (lists, cards, members) is always an API call.
type Board struct {
	client *Client

	// Organization is the optional parent; nil for boards reached outside an
	// organization context. It is a routing reference, not an owner.
	Organization *Organization `json:"-"`

	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"desc"`
	Closed      bool   `json:"closed"`
	URL         string `json:"url"`

	// Actions holds the result of the last FetchActions call.
	Actions []Action `json:"-"`
}

// Fetch retrieves all attributes for this board, overwriting whatever was
// previously cached.
func (b *Board) Fetch(ctx context.Context) error {
	resp, err := b.client.transport.Get(ctx, "/boards/"+b.ID, nil)
	if err != nil {
		return fmt.Errorf("fetching board: %w", err)
	}

	if err := json.Unmarshal(resp.Body, b); err != nil {
		return fmt.Errorf("parsing board response: %w", err)
	}

	return nil
}

// Close archives the board remotely, then mirrors the closed flag locally.
func (b *Board) Close(ctx context.Context) error {
	if err := b.setClosed(ctx, "true"); err != nil {
		return err
	}

	b.Closed = true

	return nil
}

// Open un-archives the board remotely, then mirrors the closed flag locally.
func (b *Board) Open(ctx context.Context) error {
	if err := b.setClosed(ctx, "false"); err != nil {
		return err
	}

	b.Closed = false

	return nil
}

func (b *Board) setClosed(ctx context.Context, value string) error {
	_, err := b.client.transport.Put(ctx, "/boards/"+b.ID+"/closed", map[string]string{"value": value})
	if err != nil {
		return fmt.Errorf("updating board closed state: %w", err)
	}

	return nil
}

// GetList fetches a single list on this board by id.
func (b *Board) GetList(ctx context.Context, listID string) (*List, error) {
	resp, err := b.client.transport.Get(ctx, "/lists/"+listID, nil)
	if err != nil {
		return nil, fmt.Errorf("getting list: %w", err)
	}

	list := &List{client: b.client, Board: b}
	if err := json.Unmarshal(resp.Body, list); err != nil {
		return nil, fmt.Errorf("parsing list response: %w", err)
	}

	return list, nil
}

// AllLists returns all lists on this board.
func (b *Board) AllLists(ctx context.Context) ([]*List, error) {
	return b.GetLists(ctx, "all")
}

// OpenLists returns all open lists on this board.
func (b *Board) OpenLists(ctx context.Context) ([]*List, error) {
	return b.GetLists(ctx, "open")
}

// ClosedLists returns all closed lists on this board.
func (b *Board) ClosedLists(ctx context.Context) ([]*List, error) {
	return b.GetLists(ctx, "closed")
}

// GetLists returns the board's lists matching the given filter.
func (b *Board) GetLists(ctx context.Context, filter string) ([]*List, error) {
	query := url.Values{
		"cards":  []string{"none"},
		"filter": []string{filter},
	}

	resp, err := b.client.transport.Get(ctx, "/boards/"+b.ID+"/lists", query)
	if err != nil {
		return nil, fmt.Errorf("listing board lists: %w", err)
	}

	var lists []*List
	if err := json.Unmarshal(resp.Body, &lists); err != nil {
		return nil, fmt.Errorf("parsing lists response: %w", err)
	}

	for _, list := range lists {
		list.client = b.client
		list.Board = b
	}

	return lists, nil
}

// AddList creates a new list on this board.
func (b *Board) AddList(ctx context.Context, name string) (*List, error) {
	args := map[string]string{"name": name, "idBoard": b.ID}

	resp, err := b.client.transport.Post(ctx, "/lists", args)
	if err != nil {
		return nil, fmt.Errorf("creating list: %w", err)
	}

	list := &List{client: b.client, Board: b}
	if err := json.Unmarshal(resp.Body, list); err != nil {
		return nil, fmt.Errorf("parsing list response: %w", err)
	}

	return list, nil
}

// AllCards returns all cards on this board.
func (b *Board) AllCards(ctx context.Context) ([]*Card, error) {
	return b.GetCards(ctx, cardFilterQuery("all"))
}

// OpenCards returns all open cards on this board.
func (b *Board) OpenCards(ctx context.Context) ([]*Card, error) {
	return b.GetCards(ctx, cardFilterQuery("open"))
}

// ClosedCards returns all closed cards on this board.
func (b *Board) ClosedCards(ctx context.Context) ([]*Card, error) {
	return b.GetCards(ctx, cardFilterQuery("closed"))
}

// GetCards returns the board's cards matching the given query parameters,
// e.g. {"filter": "open", "fields": "all"}.
func (b *Board) GetCards(ctx context.Context, filters url.Values) ([]*Card, error) {
	resp, err := b.client.transport.Get(ctx, "/boards/"+b.ID+"/cards", filters)
	if err != nil {
		return nil, fmt.Errorf("listing board cards: %w", err)
	}

	var cards []*Card
	if err := json.Unmarshal(resp.Body, &cards); err != nil {
		return nil, fmt.Errorf("parsing cards response: %w", err)
	}

	for _, card := range cards {
		card.bind(b.client, nil)
	}

	return cards, nil
}

// AllMembers returns all members on this board.
func (b *Board) AllMembers(ctx context.Context) ([]*Member, error) {
	return b.GetMembers(ctx, cardFilterQuery("all"))
}

// NormalMembers returns all normal (non-admin) members on this board.
func (b *Board) NormalMembers(ctx context.Context) ([]*Member, error) {
	return b.GetMembers(ctx, cardFilterQuery("normal"))
}

// AdminMembers returns all admin members on this board.
func (b *Board) AdminMembers(ctx context.Context) ([]*Member, error) {
	return b.GetMembers(ctx, cardFilterQuery("admins"))
}

// OwnerMembers returns all owner members on this board.
func (b *Board) OwnerMembers(ctx context.Context) ([]*Member, error) {
	return b.GetMembers(ctx, cardFilterQuery("owners"))
}

// GetMembers returns the board's members matching the given query parameters.
func (b *Board) GetMembers(ctx context.Context, filters url.Values) ([]*Member, error) {
	resp, err := b.client.transport.Get(ctx, "/boards/"+b.ID+"/members", filters)
	if err != nil {
		return nil, fmt.Errorf("listing board members: %w", err)
	}

	var members []*Member
	if err := json.Unmarshal(resp.Body, &members); err != nil {
		return nil, fmt.Errorf("parsing members response: %w", err)
	}

	for _, member := range members {
		member.client = b.client
	}

	return members, nil
}

// FetchActions retrieves this board's action log filtered by action type and
// stores it on Actions.
func (b *Board) FetchActions(ctx context.Context, filter string) ([]Action, error) {
	query := url.Values{"filter": []string{filter}}

	resp, err := b.client.transport.Get(ctx, "/boards/"+b.ID+"/actions", query)
	if err != nil {
		return nil, fmt.Errorf("fetching board actions: %w", err)
	}

	var actions []Action
	if err := json.Unmarshal(resp.Body, &actions); err != nil {
		return nil, fmt.Errorf("parsing actions response: %w", err)
	}

	b.Actions = actions

	return actions, nil
}

// cardFilterQuery builds the common filter/fields query used by the card and
// member convenience listings.
func cardFilterQuery(filter string) url.Values {
	return url.Values{
		"filter": []string{filter},
		"fields": []string{"all"},
	}
}
