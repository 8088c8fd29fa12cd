// Package source fetches quotes from an external quote REST API, used to
// seed the local library. The client speaks the common paginated quote-API
// shape ({"results": [...], "totalPages": N}) and is rate-limited so bulk
// seeding stays polite.
package source

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"

	"github.com/malcomkamau/motivation"
)

// DefaultBaseURL is the quote API endpoint used when none is configured.
const DefaultBaseURL = "https://api.quotable.io"

// Client talks to the external quote API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// apiQuote is the wire shape of one quote.
type apiQuote struct {
	ID      string   `json:"_id"`
	Content string   `json:"content"`
	Author  string   `json:"author"`
	Tags    []string `json:"tags"`
}

// apiPage is one page of list results.
type apiPage struct {
	Results    []apiQuote `json:"results"`
	Page       int        `json:"page"`
	TotalPages int        `json:"totalPages"`
}

// NewClient creates a Client for the given base URL. A nil client falls
// back to a default with a 15s timeout. Requests are limited to 2 per
// second with a small burst.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
		limiter:    rate.NewLimiter(rate.Limit(2), 4),
	}
}

// FetchPage fetches one page of quotes, optionally filtered by category
// tag. Pages are 1-based.
func (c *Client) FetchPage(ctx context.Context, category string, page int) ([]motivation.Quote, int, error) {
	if page < 1 {
		page = 1
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, 0, err
	}

	u, err := url.Parse(c.baseURL + "/quotes")
	if err != nil {
		return nil, 0, fmt.Errorf("invalid API URL: %w", err)
	}
	q := u.Query()
	q.Set("page", fmt.Sprint(page))
	if category != "" {
		q.Set("tags", motivation.NormalizeCategory(category))
	}
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch quotes: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, 0, fmt.Errorf("quote API returned status: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read response body: %w", err)
	}

	var pageResp apiPage
	if err := json.Unmarshal(body, &pageResp); err != nil {
		return nil, 0, fmt.Errorf("failed to parse JSON: %w", err)
	}

	quotes := make([]motivation.Quote, 0, len(pageResp.Results))
	for _, item := range pageResp.Results {
		category := ""
		if len(item.Tags) > 0 {
			category = motivation.NormalizeCategory(item.Tags[0])
		}
		quotes = append(quotes, motivation.Quote{
			ID:       item.ID,
			Text:     item.Content,
			Author:   item.Author,
			Category: category,
		})
	}
	return quotes, pageResp.TotalPages, nil
}

// FetchAll walks every page of the quote list, optionally filtered by
// category, up to maxPages (0 means no limit).
func (c *Client) FetchAll(ctx context.Context, category string, maxPages int) ([]motivation.Quote, error) {
	var all []motivation.Quote
	for page := 1; ; page++ {
		quotes, totalPages, err := c.FetchPage(ctx, category, page)
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", page, err)
		}
		all = append(all, quotes...)

		if page >= totalPages || len(quotes) == 0 {
			break
		}
		if maxPages > 0 && page >= maxPages {
			break
		}
	}
	return all, nil
}

// Seed fetches quotes and installs them as the library through the manager,
// replacing whatever was there.
func (c *Client) Seed(ctx context.Context, mgr *motivation.Manager, category string, maxPages int) (int, error) {
	quotes, err := c.FetchAll(ctx, category, maxPages)
	if err != nil {
		return 0, err
	}
	if len(quotes) == 0 {
		return 0, motivation.ErrNoQuotes
	}
	if err := mgr.ReplaceAll(ctx, quotes); err != nil {
		return 0, err
	}
	return len(quotes), nil
}
