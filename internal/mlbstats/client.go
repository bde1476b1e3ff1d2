// Package mlbstats fetches roster transaction records from the MLB Stats API.
package mlbstats

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"mlb-roster-sync/internal/domain"
)

// Default configuration values.
const (
	DefaultBaseURL = "https://statsapi.mlb.com"
	DefaultTimeout = 30 * time.Second

	transactionsPath = "/api/v1/transactions"
)

// ErrFetchFailed is returned for any transport, status, or decode failure.
// The fetch is never retried here; retry policy belongs to the scheduler
// that invokes the run.
var ErrFetchFailed = errors.New("transaction fetch failed")

// Client fetches transactions over HTTP.
type Client struct {
	baseURL string
	client  *http.Client
}

// ClientOption configures Client.
type ClientOption func(*Client)

// WithBaseURL overrides the API base URL.
func WithBaseURL(u string) ClientOption {
	return func(c *Client) {
		c.baseURL = strings.TrimSuffix(u, "/")
	}
}

// WithTimeout sets HTTP client timeout.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		c.client.Timeout = d
	}
}

// WithHTTPClient sets custom http.Client.
func WithHTTPClient(client *http.Client) ClientOption {
	return func(c *Client) {
		c.client = client
	}
}

// NewClient creates a new MLB Stats API client.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		client:  &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Transactions fetches all roster transactions in the window for the given
// teams with a single request, filtered server-side via the teamId
// parameter. Returns typed records with nullable fields preserved.
func (c *Client) Transactions(ctx context.Context, w domain.Window, teamIDs []int) ([]domain.RosterTransaction, error) {
	endpoint, err := c.transactionsURL(w, teamIDs)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", ErrFetchFailed, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: unexpected status %d", ErrFetchFailed, resp.StatusCode)
	}

	var payload transactionsResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", ErrFetchFailed, err)
	}

	transactions := make([]domain.RosterTransaction, 0, len(payload.Transactions))
	for _, tx := range payload.Transactions {
		transactions = append(transactions, domain.RosterTransaction{
			ID:          tx.ID,
			PlayerID:    tx.Person.id(),
			ToTeamID:    tx.ToTeam.id(),
			Date:        tx.Date,
			Description: tx.Description,
		})
	}
	return transactions, nil
}

// transactionsURL builds the endpoint URL with window and team filter.
func (c *Client) transactionsURL(w domain.Window, teamIDs []int) (string, error) {
	u, err := url.Parse(c.baseURL + transactionsPath)
	if err != nil {
		return "", err
	}

	ids := make([]string, len(teamIDs))
	for i, id := range teamIDs {
		ids[i] = strconv.Itoa(id)
	}

	q := u.Query()
	q.Set("startDate", w.StartDate())
	q.Set("endDate", w.EndDate())
	q.Set("teamId", strings.Join(ids, ","))
	u.RawQuery = q.Encode()

	return u.String(), nil
}
