package trello

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"time"

	"github.com/moshloop/py-trello/internal/transport"
)

// Card represents a Trello card. Card attributes are cached on the object;
// comments and checklists are fetched lazily on first access and memoized
// until the next Fetch.
type Card struct {
	client *Client

	// List is the parent list this card belongs to, when known.
	List *List `json:"-"`

	ID               string           `json:"id"`
	Name             string           `json:"name"`
	Description      string           `json:"desc"`
	Closed           bool             `json:"closed"`
	URL              string           `json:"url"`
	Due              string           `json:"due"`
	ShortID          int              `json:"idShort"`
	ListID           string           `json:"idList"`
	BoardID          string           `json:"idBoard"`
	MemberIDs        []string         `json:"idMembers"`
	LabelIDs         []string         `json:"idLabels"`
	Labels           []Label          `json:"labels"`
	Badges           Badges           `json:"badges"`
	CheckItemStates  []CheckItemState `json:"checkItemStates"`
	DateLastActivity time.Time        `json:"dateLastActivity"`

	// Actions holds the result of the last FetchActions call.
	Actions []Action `json:"-"`

	comments          []Action
	commentsFetched   bool
	checklists        []*Checklist
	checklistsFetched bool
}

// AttachOptions describes an attachment source for Attach. Exactly one of
// File and URL must be set.
type AttachOptions struct {
	Name     string
	MIMEType string
	File     io.Reader
	URL      string
}

// Fetch retrieves all attributes for this card, overwriting whatever was
// previously cached and invalidating memoized comments and checklists.
func (c *Card) Fetch(ctx context.Context) error {
	query := url.Values{"badges": []string{"false"}}

	resp, err := c.client.transport.Get(ctx, "/cards/"+c.ID, query)
	if err != nil {
		return fmt.Errorf("fetching card: %w", err)
	}

	if err := json.Unmarshal(resp.Body, c); err != nil {
		return fmt.Errorf("parsing card response: %w", err)
	}

	c.bind(c.client, c.List)

	c.comments = nil
	c.commentsFetched = false
	c.checklists = nil
	c.checklistsFetched = false

	return nil
}

// bind wires the client into a freshly unmarshalled card and its labels, and
// normalizes the due timestamp down to its date part.
func (c *Card) bind(client *Client, list *List) {
	c.client = client
	c.List = list

	for i := range c.Labels {
		c.Labels[i].client = client
	}

	if len(c.Due) > 10 {
		c.Due = c.Due[:10]
	}
}

// Comments returns the card's comment actions, fetching them on first access
// and memoizing until the next Fetch. Cards whose badges report zero comments
// return an empty slice without a network call.
func (c *Card) Comments(ctx context.Context) ([]Action, error) {
	if c.commentsFetched {
		return c.comments, nil
	}

	comments := []Action{}
	if c.Badges.Comments > 0 {
		fetched, err := c.GetComments(ctx)
		if err != nil {
			return nil, err
		}
		comments = fetched
	}

	c.comments = comments
	c.commentsFetched = true

	return c.comments, nil
}

// GetComments fetches the card's comment actions unconditionally, bypassing
// the memoized cache.
func (c *Card) GetComments(ctx context.Context) ([]Action, error) {
	query := url.Values{"filter": []string{"commentCard"}}

	resp, err := c.client.transport.Get(ctx, "/cards/"+c.ID+"/actions", query)
	if err != nil {
		return nil, fmt.Errorf("fetching card comments: %w", err)
	}

	var comments []Action
	if err := json.Unmarshal(resp.Body, &comments); err != nil {
		return nil, fmt.Errorf("parsing comments response: %w", err)
	}

	return comments, nil
}

// Checklists returns the card's checklists, fetching them on first access and
// memoizing until the next Fetch.
func (c *Card) Checklists(ctx context.Context) ([]*Checklist, error) {
	if c.checklistsFetched {
		return c.checklists, nil
	}

	checklists, err := c.FetchChecklists(ctx)
	if err != nil {
		return nil, err
	}

	c.checklists = checklists
	c.checklistsFetched = true

	return c.checklists, nil
}

// FetchChecklists fetches the card's checklists unconditionally, bypassing
// the memoized cache. Item checked state is reconciled from the card's
// checkItemStates.
func (c *Card) FetchChecklists(ctx context.Context) ([]*Checklist, error) {
	resp, err := c.client.transport.Get(ctx, "/cards/"+c.ID+"/checklists", nil)
	if err != nil {
		return nil, fmt.Errorf("fetching card checklists: %w", err)
	}

	var checklists []*Checklist
	if err := json.Unmarshal(resp.Body, &checklists); err != nil {
		return nil, fmt.Errorf("parsing checklists response: %w", err)
	}

	checked := map[string]bool{}
	for _, state := range c.CheckItemStates {
		if state.State == "complete" {
			checked[state.IDCheckItem] = true
		}
	}

	for _, checklist := range checklists {
		checklist.client = c.client
		checklist.CardID = c.ID
		for i := range checklist.Items {
			checklist.Items[i].Checked = checked[checklist.Items[i].ID]
		}
	}

	return checklists, nil
}

// FetchActions retrieves this card's action log filtered by action type and
// stores it on Actions. An empty filter defaults to createCard.
func (c *Card) FetchActions(ctx context.Context, filter string) ([]Action, error) {
	if filter == "" {
		filter = "createCard"
	}

	query := url.Values{"filter": []string{filter}}

	resp, err := c.client.transport.Get(ctx, "/cards/"+c.ID+"/actions", query)
	if err != nil {
		return nil, fmt.Errorf("fetching card actions: %w", err)
	}

	var actions []Action
	if err := json.Unmarshal(resp.Body, &actions); err != nil {
		return nil, fmt.Errorf("parsing actions response: %w", err)
	}

	c.Actions = actions

	return actions, nil
}

// ListMoves returns the card's list-to-list movement history, newest first.
// The result is never cached; each call refetches the action log.
func (c *Card) ListMoves(ctx context.Context) ([]CardMove, error) {
	actions, err := c.FetchActions(ctx, "updateCard:idList")
	if err != nil {
		return nil, err
	}

	moves := make([]CardMove, 0, len(actions))
	for _, action := range actions {
		if action.Data.ListBefore == nil || action.Data.ListAfter == nil {
			continue
		}

		date, err := parseActionDate(action.Date)
		if err != nil {
			return nil, fmt.Errorf("parsing move date: %w", err)
		}

		moves = append(moves, CardMove{
			FromList: action.Data.ListBefore.Name,
			ToList:   action.Data.ListAfter.Name,
			Date:     date,
		})
	}

	return moves, nil
}

// LatestMoveDate returns the date of the card's most recent list move, or the
// zero time if the card has never moved.
func (c *Card) LatestMoveDate(ctx context.Context) (time.Time, error) {
	moves, err := c.ListMoves(ctx)
	if err != nil {
		return time.Time{}, err
	}

	var latest time.Time
	for _, move := range moves {
		if move.Date.After(latest) {
			latest = move.Date
		}
	}

	return latest, nil
}

// CreateDate returns the card's creation date, derived from its createCard
// action. The result is never cached.
func (c *Card) CreateDate(ctx context.Context) (time.Time, error) {
	actions, err := c.FetchActions(ctx, "createCard")
	if err != nil {
		return time.Time{}, err
	}

	if len(actions) == 0 {
		return time.Time{}, fmt.Errorf("card %s has no creation action", c.ID)
	}

	date, err := parseActionDate(actions[0].Date)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing creation date: %w", err)
	}

	return date, nil
}

// setRemote updates a single card attribute remotely. The local attribute is
// mirrored by the caller only after success.
func (c *Card) setRemote(ctx context.Context, attribute string, value interface{}) error {
	_, err := c.client.transport.Put(ctx, "/cards/"+c.ID+"/"+attribute, map[string]interface{}{"value": value})
	if err != nil {
		return fmt.Errorf("updating card %s: %w", attribute, err)
	}

	return nil
}

// SetName renames the card remotely, then mirrors the name locally.
func (c *Card) SetName(ctx context.Context, name string) error {
	if err := c.setRemote(ctx, "name", name); err != nil {
		return err
	}

	c.Name = name

	return nil
}

// SetDescription updates the card description remotely, then mirrors it
// locally.
func (c *Card) SetDescription(ctx context.Context, description string) error {
	if err := c.setRemote(ctx, "desc", description); err != nil {
		return err
	}

	c.Description = description

	return nil
}

// SetDue sets the card's due date remotely, then mirrors it locally. Only the
// date part is sent; time of day is discarded.
func (c *Card) SetDue(ctx context.Context, due time.Time) error {
	value := due.Format("2006-01-02")

	if err := c.setRemote(ctx, "due", value); err != nil {
		return err
	}

	c.Due = value

	return nil
}

// SetClosed archives or un-archives the card remotely, then mirrors the
// closed flag locally.
func (c *Card) SetClosed(ctx context.Context, closed bool) error {
	if err := c.setRemote(ctx, "closed", closed); err != nil {
		return err
	}

	c.Closed = closed

	return nil
}

// Delete permanently deletes the card. The local object is left untouched.
func (c *Card) Delete(ctx context.Context) error {
	_, err := c.client.transport.Delete(ctx, "/cards/"+c.ID)
	if err != nil {
		return fmt.Errorf("deleting card: %w", err)
	}

	return nil
}

// Assign adds a member to the card.
func (c *Card) Assign(ctx context.Context, memberID string) error {
	args := map[string]string{"value": memberID}

	_, err := c.client.transport.Post(ctx, "/cards/"+c.ID+"/members", args)
	if err != nil {
		return fmt.Errorf("assigning member: %w", err)
	}

	return nil
}

// Comment posts a comment to the card.
func (c *Card) Comment(ctx context.Context, text string) error {
	args := map[string]string{"text": text}

	_, err := c.client.transport.Post(ctx, "/cards/"+c.ID+"/actions/comments", args)
	if err != nil {
		return fmt.Errorf("commenting on card: %w", err)
	}

	return nil
}

// Attach adds an attachment to the card from either a file or a URL. Exactly
// one source must be provided; otherwise ErrAttachmentSource is returned
// before any network activity.
func (c *Card) Attach(ctx context.Context, opts AttachOptions) error {
	hasFile := opts.File != nil
	hasURL := opts.URL != ""

	if hasFile == hasURL {
		return ErrAttachmentSource
	}

	path := "/cards/" + c.ID + "/attachments"

	if hasFile {
		file := transport.File{Name: opts.Name, MIMEType: opts.MIMEType, Content: opts.File}

		_, err := c.client.transport.Upload(ctx, path, file)
		if err != nil {
			return fmt.Errorf("attaching file: %w", err)
		}

		return nil
	}

	args := map[string]string{"url": opts.URL}
	if opts.Name != "" {
		args["name"] = opts.Name
	}
	if opts.MIMEType != "" {
		args["mimeType"] = opts.MIMEType
	}

	_, err := c.client.transport.Post(ctx, path, args)
	if err != nil {
		return fmt.Errorf("attaching url: %w", err)
	}

	return nil
}

// ChangeList moves the card to another list remotely, then mirrors the list
// id locally.
func (c *Card) ChangeList(ctx context.Context, listID string) error {
	if err := c.setRemote(ctx, "idList", listID); err != nil {
		return err
	}

	c.ListID = listID

	return nil
}

// ChangeBoard moves the card to another board remotely, optionally into a
// specific list, then mirrors the ids locally. The move is a single request
// so the card never lands on the new list without the new board.
func (c *Card) ChangeBoard(ctx context.Context, boardID, listID string) error {
	args := map[string]string{"value": boardID}
	if listID != "" {
		args["idList"] = listID
	}

	if _, err := c.client.transport.Put(ctx, "/cards/"+c.ID+"/idBoard", args); err != nil {
		return fmt.Errorf("updating card idBoard: %w", err)
	}

	c.BoardID = boardID
	if listID != "" {
		c.ListID = listID
	}

	return nil
}

// AddChecklist creates a checklist on the card with the given items. States
// maps item names to an initial checked state; unnamed items start unchecked.
// The card is refetched afterwards so badges and checkItemStates stay
// consistent.
func (c *Card) AddChecklist(ctx context.Context, title string, items []string, states map[string]bool) (*Checklist, error) {
	args := map[string]string{"name": title}

	resp, err := c.client.transport.Post(ctx, "/cards/"+c.ID+"/checklists", args)
	if err != nil {
		return nil, fmt.Errorf("creating checklist: %w", err)
	}

	checklist := &Checklist{client: c.client, CardID: c.ID}
	if err := json.Unmarshal(resp.Body, checklist); err != nil {
		return nil, fmt.Errorf("parsing checklist response: %w", err)
	}

	for _, item := range items {
		if err := checklist.AddItem(ctx, item, states[item]); err != nil {
			return nil, err
		}
	}

	if err := c.Fetch(ctx); err != nil {
		return nil, err
	}

	return checklist, nil
}
