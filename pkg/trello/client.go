package trello

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/moshloop/py-trello/internal/transport"
)

// Logger interface for optional debug logging. The library performs no
// logging of its own unless Config.Debug is set and a Logger is provided.
type Logger = transport.Logger

// Config represents client configuration.
//
// Key/Secret identify the application; Token/TokenSecret are the per-user
// pair. Supplying no credential at all yields unsigned public requests.
// Supplying a key without a token limits the client to public operations.
type Config struct {
	Key         string
	Secret      string
	Token       string
	TokenSecret string

	// Optional configurations
	// BaseURL overrides the fixed API origin; used by tests.
	BaseURL string
	// HTTPClient replaces the underlying HTTP client.
	HTTPClient *http.Client
	// UserAgent overrides the default User-Agent header.
	UserAgent string
	// Debug enables request/response logging through Logger.
	Debug  bool
	Logger Logger
}

// Client is the entry point for the Trello API. It holds the credentials,
// owns the transport, and exposes the top-level listing and creation
// operations. Entity objects returned from it route their own calls through
// the same transport.
type Client struct {
	transport  *transport.Client
	token      string
	publicOnly bool

	// AllInfo holds the raw response stashed by InfoForAllBoards.
	AllInfo json.RawMessage
}

// New creates a Trello API client from the given configuration.
func New(config *Config) *Client {
	baseURL := config.BaseURL
	if baseURL == "" {
		baseURL = transport.DefaultBaseURL
	}

	creds := transport.Credentials{
		Key:         config.Key,
		Secret:      config.Secret,
		Token:       config.Token,
		TokenSecret: config.TokenSecret,
	}

	var opts []transport.Option

	if config.Logger != nil {
		opts = append(opts, transport.WithLogger(config.Logger))
	}

	if config.Debug {
		opts = append(opts, transport.WithDebug(true))
	}

	if config.UserAgent != "" {
		opts = append(opts, transport.WithUserAgent(config.UserAgent))
	}

	if config.HTTPClient != nil {
		opts = append(opts, transport.WithHTTPClient(config.HTTPClient))
	}

	return &Client{
		transport:  transport.NewClient(baseURL, creds, opts...),
		token:      config.Token,
		publicOnly: config.Token == "",
	}
}

// NewWithKey creates a client with just an API key (public read access).
func NewWithKey(key string) *Client {
	return New(&Config{Key: key})
}

// NewWithToken creates a client with an API key and a user token.
func NewWithToken(key, token string) *Client {
	return New(&Config{Key: key, Token: token})
}

// PublicOnly reports whether the client was configured without a user token,
// which limits which operations are callable.
func (c *Client) PublicOnly() bool {
	return c.publicOnly
}

// ListBoards returns all boards for the authenticated user.
func (c *Client) ListBoards(ctx context.Context) ([]*Board, error) {
	resp, err := c.transport.Get(ctx, "/members/me/boards", nil)
	if err != nil {
		return nil, fmt.Errorf("listing boards: %w", err)
	}

	return c.boardsFromJSON(resp.Body, nil)
}

// ListOrganizations returns all organizations for the authenticated user.
func (c *Client) ListOrganizations(ctx context.Context) ([]*Organization, error) {
	resp, err := c.transport.Get(ctx, "members/me/organizations", nil)
	if err != nil {
		return nil, fmt.Errorf("listing organizations: %w", err)
	}

	var orgs []*Organization
	if err := json.Unmarshal(resp.Body, &orgs); err != nil {
		return nil, fmt.Errorf("parsing organizations response: %w", err)
	}

	for _, org := range orgs {
		org.client = c
	}

	return orgs, nil
}

// GetOrganization fetches a single organization by id.
func (c *Client) GetOrganization(ctx context.Context, organizationID string) (*Organization, error) {
	resp, err := c.transport.Get(ctx, "/organizations/"+organizationID, nil)
	if err != nil {
		return nil, fmt.Errorf("getting organization: %w", err)
	}

	org := &Organization{client: c}
	if err := json.Unmarshal(resp.Body, org); err != nil {
		return nil, fmt.Errorf("parsing organization response: %w", err)
	}

	return org, nil
}

// GetBoard fetches a single board by id.
func (c *Client) GetBoard(ctx context.Context, boardID string) (*Board, error) {
	resp, err := c.transport.Get(ctx, "/boards/"+boardID, nil)
	if err != nil {
		return nil, fmt.Errorf("getting board: %w", err)
	}

	board := &Board{client: c}
	if err := json.Unmarshal(resp.Body, board); err != nil {
		return nil, fmt.Errorf("parsing board response: %w", err)
	}

	return board, nil
}

// AddBoard creates a new board with the given name.
func (c *Client) AddBoard(ctx context.Context, name string) (*Board, error) {
	resp, err := c.transport.Post(ctx, "/boards", map[string]string{"name": name})
	if err != nil {
		return nil, fmt.Errorf("creating board: %w", err)
	}

	board := &Board{client: c}
	if err := json.Unmarshal(resp.Body, board); err != nil {
		return nil, fmt.Errorf("parsing board response: %w", err)
	}

	return board, nil
}

// GetMember fetches a single member by id or username.
func (c *Client) GetMember(ctx context.Context, memberID string) (*Member, error) {
	member := &Member{client: c, ID: memberID}
	if err := member.Fetch(ctx); err != nil {
		return nil, err
	}

	return member, nil
}

// GetCard fetches a single card by id, along with the list and board it
// belongs to. This is a fixed three-call sequence: the card, then its list,
// then its board.
func (c *Client) GetCard(ctx context.Context, cardID string) (*Card, error) {
	resp, err := c.transport.Get(ctx, "/cards/"+cardID, nil)
	if err != nil {
		return nil, fmt.Errorf("getting card: %w", err)
	}

	var refs struct {
		IDList  string `json:"idList"`
		IDBoard string `json:"idBoard"`
	}

	if err := json.Unmarshal(resp.Body, &refs); err != nil {
		return nil, fmt.Errorf("parsing card response: %w", err)
	}

	listResp, err := c.transport.Get(ctx, "/lists/"+refs.IDList, nil)
	if err != nil {
		return nil, fmt.Errorf("getting card list: %w", err)
	}

	board, err := c.GetBoard(ctx, refs.IDBoard)
	if err != nil {
		return nil, err
	}

	list := &List{client: c, Board: board}
	if err := json.Unmarshal(listResp.Body, list); err != nil {
		return nil, fmt.Errorf("parsing list response: %w", err)
	}

	card := &Card{}
	if err := json.Unmarshal(resp.Body, card); err != nil {
		return nil, fmt.Errorf("parsing card response: %w", err)
	}

	card.bind(c, list)

	return card, nil
}

// InfoForAllBoards retrieves info for all of the user's boards in one swoop
// and stashes the raw JSON on the client as AllInfo. In public-only mode it
// is a no-op.
func (c *Client) InfoForAllBoards(ctx context.Context, actions string) error {
	if c.publicOnly {
		return nil
	}

	query := url.Values{"actions": []string{actions}}

	resp, err := c.transport.Get(ctx, "/members/me/boards/all", query)
	if err != nil {
		return fmt.Errorf("getting board info: %w", err)
	}

	c.AllInfo = resp.Body

	return nil
}

// ListHooks returns all webhooks associated with a token. The argument token
// takes precedence over the one configured on the client; when neither
// exists, ErrTokenRequired is returned before any network call.
func (c *Client) ListHooks(ctx context.Context, token string) ([]*Webhook, error) {
	if token == "" {
		token = c.token
	}

	if token == "" {
		return nil, fmt.Errorf("listing hooks: %w", ErrTokenRequired)
	}

	resp, err := c.transport.Get(ctx, "/tokens/"+token+"/webhooks", nil)
	if err != nil {
		return nil, fmt.Errorf("listing hooks: %w", err)
	}

	var hooks []*Webhook
	if err := json.Unmarshal(resp.Body, &hooks); err != nil {
		return nil, fmt.Errorf("parsing hooks response: %w", err)
	}

	for _, hook := range hooks {
		hook.client = c
		hook.Token = token
	}

	return hooks, nil
}

// CreateHook creates a new webhook under a token and returns it. The token
// rules are the same as for ListHooks.
func (c *Client) CreateHook(ctx context.Context, callbackURL, idModel, description, token string) (*Webhook, error) {
	if token == "" {
		token = c.token
	}

	if token == "" {
		return nil, fmt.Errorf("creating hook: %w", ErrTokenRequired)
	}

	args := map[string]string{
		"callbackURL": callbackURL,
		"idModel":     idModel,
		"description": description,
	}

	resp, err := c.transport.Post(ctx, "/tokens/"+token+"/webhooks", args)
	if err != nil {
		return nil, fmt.Errorf("creating hook: %w", err)
	}

	hook := &Webhook{client: c, Token: token}
	if err := json.Unmarshal(resp.Body, hook); err != nil {
		return nil, fmt.Errorf("parsing hook response: %w", err)
	}

	return hook, nil
}

// boardsFromJSON builds boards from a listing response, wiring the client and
// the optional parent organization into each.
func (c *Client) boardsFromJSON(data []byte, org *Organization) ([]*Board, error) {
	var boards []*Board
	if err := json.Unmarshal(data, &boards); err != nil {
		return nil, fmt.Errorf("parsing boards response: %w", err)
	}

	for _, board := range boards {
		board.client = c
		board.Organization = org
	}

	return boards, nil
}
