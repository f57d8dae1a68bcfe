package contentstore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// ManagementClient mutates entries via the store's management API. The
// store's optimistic-concurrency versioning is the only consistency
// mechanism: every write carries the version it was based on, and a stale
// version surfaces as a ConflictError.
type ManagementClient struct {
	baseURL         string
	spaceID         string
	environment     string
	managementToken string
	httpClient      *http.Client
}

func NewManagementClient(baseURL, spaceID, environment, managementToken string) *ManagementClient {
	return &ManagementClient{
		baseURL:         strings.TrimSuffix(baseURL, "/"),
		spaceID:         spaceID,
		environment:     environment,
		managementToken: managementToken,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Locator builds an EntryLocator addressing an entry in the client's
// configured space and environment.
func (c *ManagementClient) Locator(entryID string) EntryLocator {
	return EntryLocator{
		SpaceID:       c.spaceID,
		EnvironmentID: c.environment,
		EntryID:       entryID,
	}
}

// CreateEntry creates an unpublished entry of the given content type in the
// client's configured space and environment.
func (c *ManagementClient) CreateEntry(ctx context.Context, contentType string, fields Fields) (*Entry, error) {
	body, err := json.Marshal(map[string]interface{}{"fields": fields})
	if err != nil {
		return nil, fmt.Errorf("marshal entry fields: %w", err)
	}

	endpoint := fmt.Sprintf("%s/spaces/%s/environments/%s/entries",
		c.baseURL, c.spaceID, c.environment)

	req, err := c.newRequest(ctx, http.MethodPost, endpoint, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("X-Contentful-Content-Type", contentType)

	return c.doEntry(req, EntryLocator{SpaceID: c.spaceID, EnvironmentID: c.environment})
}

// GetEntry fetches an entry by its locator.
func (c *ManagementClient) GetEntry(ctx context.Context, loc EntryLocator) (*Entry, error) {
	req, err := c.newRequest(ctx, http.MethodGet, c.entryURL(loc), nil)
	if err != nil {
		return nil, err
	}

	return c.doEntry(req, loc)
}

// UpdateEntry replaces an entry's fields, creating a new version. The
// version must match the store's current version or the save is rejected.
func (c *ManagementClient) UpdateEntry(ctx context.Context, loc EntryLocator, version int, fields Fields) (*Entry, error) {
	body, err := json.Marshal(map[string]interface{}{"fields": fields})
	if err != nil {
		return nil, fmt.Errorf("marshal entry fields: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPut, c.entryURL(loc), body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("X-Contentful-Version", strconv.Itoa(version))

	return c.doEntry(req, loc)
}

// PublishEntry makes an entry visible to the delivery API.
func (c *ManagementClient) PublishEntry(ctx context.Context, loc EntryLocator, version int) (*Entry, error) {
	req, err := c.newRequest(ctx, http.MethodPut, c.entryURL(loc)+"/published", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("X-Contentful-Version", strconv.Itoa(version))

	return c.doEntry(req, loc)
}

func (c *ManagementClient) entryURL(loc EntryLocator) string {
	return fmt.Sprintf("%s/spaces/%s/environments/%s/entries/%s",
		c.baseURL, loc.SpaceID, loc.EnvironmentID, loc.EntryID)
}

func (c *ManagementClient) newRequest(ctx context.Context, method, endpoint string, body []byte) (*http.Request, error) {
	if c.managementToken == "" {
		return nil, fmt.Errorf("management client misconfigured: management token is empty")
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.managementToken)
	if body != nil {
		req.Header.Set("Content-Type", "application/vnd.contentful.management.v1+json")
	}

	return req, nil
}

func (c *ManagementClient) doEntry(req *http.Request, loc EntryLocator) (*Entry, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	// Typed errors only make sense when the request addressed an entry;
	// a 404 or 409 on the create path falls through to APIError so the
	// message carries the response body rather than a half-empty locator.
	switch {
	case resp.StatusCode == http.StatusNotFound && loc.EntryID != "":
		io.Copy(io.Discard, resp.Body)
		return nil, &NotFoundError{Locator: loc}
	case resp.StatusCode == http.StatusConflict && loc.EntryID != "":
		io.Copy(io.Discard, resp.Body)
		version, _ := strconv.Atoi(req.Header.Get("X-Contentful-Version"))
		return nil, &ConflictError{Locator: loc, Version: version}
	case resp.StatusCode >= http.StatusBadRequest:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, &APIError{Status: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	var entry Entry
	if err := json.NewDecoder(resp.Body).Decode(&entry); err != nil {
		return nil, fmt.Errorf("decode entry response: %w", err)
	}

	return &entry, nil
}
