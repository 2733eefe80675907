package bluesky

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Client talks XRPC to a PDS and to the Bluesky chat service. Create one
// with NewClient, then call Login before any authenticated operation.
type Client struct {
	pds        string
	chat       string
	httpClient *http.Client

	// populated after Login
	accessJwt string
	did       string
	handle    string
}

// NewClient creates a new client for the given PDS. If pds is empty, it
// defaults to https://bsky.social. All requests share one HTTP client with a
// 30 second timeout, covering blob uploads and card fetches as well.
func NewClient(pds string) *Client {
	if pds == "" {
		pds = DefaultPDS
	}
	return &Client{
		pds:  pds,
		chat: DefaultChatService,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// WithChatService overrides the chat service base URL and returns the
// client. Useful for tests and self-hosted chat services.
func (c *Client) WithChatService(base string) *Client {
	c.chat = base
	return c
}

// Login authenticates with the PDS and stores the session token. Use an App
// Password, not the account password.
func (c *Client) Login(ctx context.Context, identifier, password string) error {
	body := map[string]string{
		"identifier": identifier,
		"password":   password,
	}

	var resp createSessionResponse
	if err := c.postJSON(ctx, c.pds+createSessionPath, body, &resp); err != nil {
		return fmt.Errorf("create session: %w", err)
	}

	c.accessJwt = resp.AccessJwt
	c.did = resp.DID
	c.handle = resp.Handle
	return nil
}

// Authenticated reports whether Login has succeeded.
func (c *Client) Authenticated() bool {
	return c.accessJwt != ""
}

// DID returns the authenticated user's DID. Only valid after Login.
func (c *Client) DID() string {
	return c.did
}

// Handle returns the authenticated user's handle. Only valid after Login.
func (c *Client) Handle() string {
	return c.handle
}

// CreateRecord creates a record in the authenticated user's repo via
// com.atproto.repo.createRecord and returns its reference.
func (c *Client) CreateRecord(ctx context.Context, collection string, record any) (*RecordRef, error) {
	if !c.Authenticated() {
		return nil, ErrNotAuthenticated
	}

	body := createRecordRequest{
		Repo:       c.did,
		Collection: collection,
		Record:     record,
	}

	var ref RecordRef
	if err := c.postJSON(ctx, c.pds+createRecordPath, body, &ref); err != nil {
		return nil, fmt.Errorf("create record: %w", err)
	}
	return &ref, nil
}

// RecordResponse is a fetched record. Value is the raw record body.
type RecordResponse struct {
	URI   string          `json:"uri"`
	CID   string          `json:"cid"`
	Value json.RawMessage `json:"value"`
}

// GetRecord fetches a single record via com.atproto.repo.getRecord.
func (c *Client) GetRecord(ctx context.Context, repo, collection, rkey string) (*RecordResponse, error) {
	q := url.Values{}
	q.Set("repo", repo)
	q.Set("collection", collection)
	q.Set("rkey", rkey)

	status, body, err := c.get(ctx, c.pds+getRecordPath, q)
	if err != nil {
		return nil, fmt.Errorf("get record: %w", err)
	}
	if status < 200 || status >= 300 {
		return nil, fmt.Errorf("get record: API error (status %d): %s", status, body)
	}

	var rec RecordResponse
	if err := json.Unmarshal(body, &rec); err != nil {
		return nil, fmt.Errorf("get record: unmarshal response: %w", err)
	}
	return &rec, nil
}

// UploadBlob uploads raw bytes as a blob and returns a reference. The blob
// is deleted server-side if not referenced by a record within a time window.
func (c *Client) UploadBlob(ctx context.Context, data []byte, mimeType string) (*BlobRef, error) {
	if !c.Authenticated() {
		return nil, ErrNotAuthenticated
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.pds+uploadBlobPath, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", mimeType)
	req.Header.Set("Authorization", "Bearer "+c.accessJwt)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("upload blob: API error (status %d): %s", resp.StatusCode, string(respBody))
	}

	var result uploadBlobResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}

	return &result.Blob, nil
}

// ResolveHandle resolves a handle to its DID via
// com.atproto.identity.resolveHandle. An HTTP 400 response means the service
// could not resolve the handle; that case is reported as ErrInvalidHandle so
// callers can distinguish it from transport or server failures.
func (c *Client) ResolveHandle(ctx context.Context, handle string) (string, error) {
	q := url.Values{}
	q.Set("handle", handle)

	status, body, err := c.get(ctx, c.pds+resolveHandlePath, q)
	if err != nil {
		return "", fmt.Errorf("resolve handle: %w", err)
	}
	if status == http.StatusBadRequest {
		return "", fmt.Errorf("%w: %s", ErrInvalidHandle, handle)
	}
	if status < 200 || status >= 300 {
		return "", fmt.Errorf("resolve handle: API error (status %d): %s", status, body)
	}

	var result struct {
		DID string `json:"did"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("resolve handle: unmarshal response: %w", err)
	}
	return result.DID, nil
}

// FetchURL performs a plain GET of an arbitrary URL and returns the response
// body. It is used for link-card HTML and thumbnail downloads, which are
// regular web requests rather than XRPC calls.
func (c *Client) FetchURL(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("fetch %s: HTTP error (status %d)", rawURL, resp.StatusCode)
	}
	return body, nil
}

// postJSON sends a JSON body and decodes the JSON response into result.
func (c *Client) postJSON(ctx context.Context, endpoint string, body any, result any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.accessJwt != "" {
		req.Header.Set("Authorization", "Bearer "+c.accessJwt)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("API error (status %d): %s", resp.StatusCode, string(respBody))
	}

	if result != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("unmarshal response: %w", err)
		}
	}

	return nil
}

// get sends a GET with the session's auth header and returns the raw status
// and body. Callers interpret the status so that endpoint-specific codes
// (like 400 on resolveHandle) keep their meaning.
func (c *Client) get(ctx context.Context, endpoint string, query url.Values) (int, []byte, error) {
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return 0, nil, fmt.Errorf("create request: %w", err)
	}
	if c.accessJwt != "" {
		req.Header.Set("Authorization", "Bearer "+c.accessJwt)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, fmt.Errorf("read response: %w", err)
	}
	return resp.StatusCode, body, nil
}

// ParseURI splits an AT-URI (at://repo/collection/rkey) into its parts.
func ParseURI(uri string) (repo, collection, rkey string, err error) {
	parts := strings.Split(uri, "/")
	if len(parts) < 5 {
		return "", "", "", fmt.Errorf("malformed AT-URI: %s", uri)
	}
	return parts[2], parts[3], parts[4], nil
}

type createSessionResponse struct {
	AccessJwt string `json:"accessJwt"`
	DID       string `json:"did"`
	Handle    string `json:"handle"`
}

type createRecordRequest struct {
	Repo       string `json:"repo"`
	Collection string `json:"collection"`
	Record     any    `json:"record"`
}

type uploadBlobResponse struct {
	Blob BlobRef `json:"blob"`
}
