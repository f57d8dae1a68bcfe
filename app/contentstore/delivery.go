package contentstore

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// DeliveryClient reads published entries via the store's delivery API.
// It is strictly read-only.
type DeliveryClient struct {
	baseURL     string
	spaceID     string
	environment string
	accessToken string
	httpClient  *http.Client
}

func NewDeliveryClient(baseURL, spaceID, environment, accessToken string) *DeliveryClient {
	return &DeliveryClient{
		baseURL:     strings.TrimSuffix(baseURL, "/"),
		spaceID:     spaceID,
		environment: environment,
		accessToken: accessToken,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Query narrows a GetEntries call. Order uses the store's syntax, e.g.
// "-fields.publishedAt" for newest first.
type Query struct {
	ContentType string
	Order       string
	SlugEquals  string
	Limit       int
}

// GetEntries returns published entries matching the query, in store order.
// The result set is finite and not paginated.
func (c *DeliveryClient) GetEntries(ctx context.Context, q Query) ([]Entry, error) {
	if c.accessToken == "" {
		return nil, fmt.Errorf("delivery client misconfigured: access token is empty")
	}

	params := url.Values{}
	if q.ContentType != "" {
		params.Set("content_type", q.ContentType)
	}
	if q.Order != "" {
		params.Set("order", q.Order)
	}
	if q.SlugEquals != "" {
		params.Set("fields.slug", q.SlugEquals)
	}
	if q.Limit > 0 {
		params.Set("limit", strconv.Itoa(q.Limit))
	}

	endpoint := fmt.Sprintf("%s/spaces/%s/environments/%s/entries?%s",
		c.baseURL, c.spaceID, c.environment, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("query entries: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, &APIError{Status: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	var collection entryCollection
	if err := json.NewDecoder(resp.Body).Decode(&collection); err != nil {
		return nil, fmt.Errorf("decode entries response: %w", err)
	}

	return collection.Items, nil
}
