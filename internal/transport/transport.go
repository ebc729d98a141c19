// Package transport implements the authenticated HTTP layer of the Trello
// client: it builds a signed request for a logical API operation, performs
// exactly one attempt, and converts the response into raw JSON bytes or a
// typed failure.
package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"

	"github.com/hashicorp/go-cleanhttp"
	"github.com/hashicorp/go-retryablehttp"
)

// DefaultBaseURL is the fixed Trello API origin.
const DefaultBaseURL = "https://api.trello.com/1"

const defaultUserAgent = "py-trello-go/1.0"

// Request represents an API request.
type Request struct {
	Method  string
	Path    string
	Query   url.Values
	Body    interface{}
	Files   []File
	Headers map[string]string
}

// File is an upload payload. When any file is attached the request is encoded
// as multipart form data and no JSON body is sent.
type File struct {
	Name     string
	MIMEType string
	Content  io.Reader
}

// Response represents an API response.
type Response struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
}

// Client performs authenticated calls against the Trello API. All calls are
// synchronous and single-attempt; callers wanting resilience must wrap them.
type Client struct {
	baseURL   string
	creds     Credentials
	http      *retryablehttp.Client
	logger    Logger
	debug     bool
	userAgent string
}

// NewClient creates a transport client for the given API origin. A zero
// Credentials value yields unsigned public requests.
func NewClient(baseURL string, creds Credentials, opts ...Option) *Client {
	client := &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		creds:   creds,
		http: &retryablehttp.Client{
			HTTPClient: cleanhttp.DefaultPooledClient(),
			// One request per logical operation: never retry, regardless of
			// status or connection error.
			CheckRetry: func(_ context.Context, _ *http.Response, err error) (bool, error) {
				return false, err
			},
		},
		userAgent: defaultUserAgent,
	}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

// Do performs the request and translates the response. HTTP 401 and any other
// non-200 status are returned as *APIError; 200 yields the raw body for the
// caller to unmarshal.
func (c *Client) Do(ctx context.Context, req *Request) (*Response, error) {
	fullURL := c.baseURL + "/" + strings.TrimPrefix(req.Path, "/")
	if len(req.Query) > 0 {
		fullURL += "?" + req.Query.Encode()
	}

	body, contentType, err := encodeBody(req)
	if err != nil {
		return nil, err
	}

	httpReq, err := retryablehttp.NewRequestWithContext(ctx, req.Method, fullURL, body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("User-Agent", c.userAgent)

	if contentType != "" {
		httpReq.Header.Set("Content-Type", contentType)
	}

	for key, value := range req.Headers {
		httpReq.Header.Set(key, value)
	}

	c.creds.sign(httpReq.Request)

	if c.debug && c.logger != nil {
		c.logger.Debug("HTTP Request", map[string]interface{}{
			"method": req.Method,
			"url":    httpReq.URL.String(),
		})
	}

	httpResp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", req.Method, fullURL, err)
	}

	defer func() { _ = httpResp.Body.Close() }()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	if c.debug && c.logger != nil {
		c.logger.Debug("HTTP Response", map[string]interface{}{
			"status": httpResp.StatusCode,
			"url":    httpReq.URL.String(),
		})
	}

	resp := &Response{
		StatusCode: httpResp.StatusCode,
		Headers:    httpResp.Header,
		Body:       respBody,
	}

	if httpResp.StatusCode != http.StatusOK {
		return resp, &APIError{
			StatusCode: httpResp.StatusCode,
			Body:       string(respBody),
			URL:        fullURL,
		}
	}

	return resp, nil
}

// encodeBody serializes the request payload. Post args become a JSON body
// unless files are supplied, in which case the whole payload is multipart
// form data.
func encodeBody(req *Request) ([]byte, string, error) {
	if len(req.Files) > 0 {
		return encodeMultipart(req.Files)
	}

	switch req.Method {
	case http.MethodPost, http.MethodPut, http.MethodDelete:
	default:
		return nil, "", nil
	}

	args := req.Body
	if args == nil {
		args = map[string]interface{}{}
	}

	data, err := json.Marshal(args)
	if err != nil {
		return nil, "", fmt.Errorf("encoding request body: %w", err)
	}

	return data, "application/json; charset=utf-8", nil
}

func encodeMultipart(files []File) ([]byte, string, error) {
	var buf bytes.Buffer

	writer := multipart.NewWriter(&buf)

	for _, file := range files {
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, file.Name))

		if file.MIMEType != "" {
			header.Set("Content-Type", file.MIMEType)
		}

		part, err := writer.CreatePart(header)
		if err != nil {
			return nil, "", fmt.Errorf("creating form file: %w", err)
		}

		if _, err := io.Copy(part, file.Content); err != nil {
			return nil, "", fmt.Errorf("writing file to form: %w", err)
		}
	}

	if err := writer.Close(); err != nil {
		return nil, "", fmt.Errorf("closing multipart writer: %w", err)
	}

	return buf.Bytes(), writer.FormDataContentType(), nil
}

// Get performs a GET request.
func (c *Client) Get(ctx context.Context, path string, query url.Values) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodGet, Path: path, Query: query})
}

// Post performs a POST request with JSON-encoded post arguments.
func (c *Client) Post(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodPost, Path: path, Body: body})
}

// Put performs a PUT request with JSON-encoded post arguments.
func (c *Client) Put(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodPut, Path: path, Body: body})
}

// Delete performs a DELETE request.
func (c *Client) Delete(ctx context.Context, path string) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodDelete, Path: path})
}

// Upload performs a multipart POST carrying the given file.
func (c *Client) Upload(ctx context.Context, path string, file File) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodPost, Path: path, Files: []File{file}})
}
