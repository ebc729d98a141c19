package trello

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
)

// List represents a list on a Trello board.
type List struct {
	client *Client

	// Board is the parent board this list belongs to.
	Board *Board `json:"-"`

	ID     string `json:"id"`
	Name   string `json:"name"`
	Closed bool   `json:"closed"`

	// Actions holds the result of the last FetchActions call.
	Actions []Action `json:"-"`
}

// Fetch retrieves all attributes for this list, overwriting whatever was
// previously cached.
func (l *List) Fetch(ctx context.Context) error {
	resp, err := l.client.transport.Get(ctx, "/lists/"+l.ID, nil)
	if err != nil {
		return fmt.Errorf("fetching list: %w", err)
	}

	if err := json.Unmarshal(resp.Body, l); err != nil {
		return fmt.Errorf("parsing list response: %w", err)
	}

	return nil
}

// ListCards returns all cards in this list.
func (l *List) ListCards(ctx context.Context) ([]*Card, error) {
	resp, err := l.client.transport.Get(ctx, "/lists/"+l.ID+"/cards", nil)
	if err != nil {
		return nil, fmt.Errorf("listing cards: %w", err)
	}

	var cards []*Card
	if err := json.Unmarshal(resp.Body, &cards); err != nil {
		return nil, fmt.Errorf("parsing cards response: %w", err)
	}

	for _, card := range cards {
		card.bind(l.client, l)
	}

	return cards, nil
}

// AddCard creates a new card at the bottom of this list.
func (l *List) AddCard(ctx context.Context, name, description string) (*Card, error) {
	args := map[string]string{"name": name, "idList": l.ID, "desc": description}

	resp, err := l.client.transport.Post(ctx, "/lists/"+l.ID+"/cards", args)
	if err != nil {
		return nil, fmt.Errorf("creating card: %w", err)
	}

	card := &Card{}
	if err := json.Unmarshal(resp.Body, card); err != nil {
		return nil, fmt.Errorf("parsing card response: %w", err)
	}

	card.bind(l.client, l)

	return card, nil
}

// CardsCount returns the number of cards in this list. It is an API call, not
// a cached value.
func (l *List) CardsCount(ctx context.Context) (int, error) {
	cards, err := l.ListCards(ctx)
	if err != nil {
		return 0, err
	}

	return len(cards), nil
}

// FetchActions retrieves this list's action log filtered by action type and
// stores it on Actions.
func (l *List) FetchActions(ctx context.Context, filter string) ([]Action, error) {
	query := url.Values{"filter": []string{filter}}

	resp, err := l.client.transport.Get(ctx, "/lists/"+l.ID+"/actions", query)
	if err != nil {
		return nil, fmt.Errorf("fetching list actions: %w", err)
	}

	var actions []Action
	if err := json.Unmarshal(resp.Body, &actions); err != nil {
		return nil, fmt.Errorf("parsing actions response: %w", err)
	}

	l.Actions = actions

	return actions, nil
}

// Close archives the list remotely, then mirrors the closed flag locally.
func (l *List) Close(ctx context.Context) error {
	if err := l.setClosed(ctx, "true"); err != nil {
		return err
	}

	l.Closed = true

	return nil
}

// Open un-archives the list remotely, then mirrors the closed flag locally.
func (l *List) Open(ctx context.Context) error {
	if err := l.setClosed(ctx, "false"); err != nil {
		return err
	}

	l.Closed = false

	return nil
}

func (l *List) setClosed(ctx context.Context, value string) error {
	_, err := l.client.transport.Put(ctx, "/lists/"+l.ID+"/closed", map[string]string{"value": value})
	if err != nil {
		return fmt.Errorf("updating list closed state: %w", err)
	}

	return nil
}
