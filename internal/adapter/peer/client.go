package peer

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	apperrors "demo-user-service/pkg/errors"
)

// listingPath is the peer listing endpoint with the hardcoded pagination
// parameters the greeting has always requested.
const listingPath = "/api/users?page=10&size=1000"

// defaultTimeout bounds the single outbound call; the upstream configuration
// carries no timeout of its own.
const defaultTimeout = 5 * time.Second

// Client performs the one outbound call demo2 makes: fetching the peer's
// user listing. It exists to demonstrate service-to-service reachability;
// there is no retry, backoff, or circuit breaking.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        *zap.Logger
}

// NewClient creates a peer client for the given base URL.
func NewClient(baseURL string, log *zap.Logger) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: defaultTimeout},
		log:        log,
	}
}

// listingEnvelope is the slice of the peer's response envelope the greeting
// needs.
type listingEnvelope struct {
	Success    bool              `json:"success"`
	Data       []json.RawMessage `json:"data"`
	Pagination struct {
		TotalItems int64 `json:"totalItems"`
	} `json:"pagination"`
}

// Hello fetches the peer's user listing and folds the outcome into a
// greeting. It never fails observably: any error (network, non-2xx,
// malformed body) is swallowed into the returned text.
func (c *Client) Hello(ctx context.Context) string {
	url := c.baseURL + listingPath
	c.log.Info("fetching users from peer", zap.String("url", url))

	env, err := c.fetchListing(ctx, url)
	if err != nil {
		c.log.Error("error fetching users from peer", zap.Error(err))
		return fmt.Sprintf("Hello from demo2! Error fetching users from demo1: %v", err)
	}

	c.log.Info("successfully fetched users from peer",
		zap.Int64("total_items", env.Pagination.TotalItems),
		zap.Int("page_count", len(env.Data)),
	)
	return fmt.Sprintf("Hello from demo2! Fetched users from demo1. Total items: %d", env.Pagination.TotalItems)
}

func (c *Client) fetchListing(ctx context.Context, url string) (*listingEnvelope, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, apperrors.NewUpstream("failed to build peer request", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apperrors.NewUpstream("peer unreachable", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, apperrors.NewUpstream(fmt.Sprintf("peer returned status %d", resp.StatusCode), nil)
	}

	var env listingEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, apperrors.NewUpstream("malformed peer response", err)
	}

	return &env, nil
}
