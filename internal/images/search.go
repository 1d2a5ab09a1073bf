package images

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Placeholder texts are part of the contract: a failed or empty search
// degrades to these strings instead of failing the surrounding request.
const noImagePlaceholder = "No image found for this company."

type SearchOptions struct {
	BaseURL   string
	APIKey    string
	CX        string
	ReqPerSec float64
	Burst     int
}

// SearchClient asks the Google Custom Search API for images. One limiter
// is enough; everything goes to a single host.
type SearchClient struct {
	client  *http.Client
	logger  *zap.Logger
	limiter *rate.Limiter
	opts    SearchOptions
}

func NewSearchClient(opts SearchOptions, logger *zap.Logger) *SearchClient {
	if opts.BaseURL == "" {
		opts.BaseURL = "https://www.googleapis.com/customsearch/v1"
	}
	if opts.ReqPerSec <= 0 {
		opts.ReqPerSec = 2
	}
	if opts.Burst <= 0 {
		opts.Burst = 2
	}
	return &SearchClient{
		client:  &http.Client{Timeout: 15 * time.Second},
		logger:  logger,
		limiter: rate.NewLimiter(rate.Limit(opts.ReqPerSec), opts.Burst),
		opts:    opts,
	}
}

// Banner returns the first banner-biased image hit for the company, or a
// placeholder string.
func (c *SearchClient) Banner(ctx context.Context, companyName string) string {
	return c.firstImage(ctx, companyName+" banner")
}

// Logo returns the first logo-biased image hit for the company, or a
// placeholder string.
func (c *SearchClient) Logo(ctx context.Context, companyName string) string {
	return c.firstImage(ctx, companyName+" logo")
}

func (c *SearchClient) firstImage(ctx context.Context, query string) string {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Sprintf("Error fetching image: %v", err)
	}

	q := url.Values{}
	q.Set("q", query)
	q.Set("searchType", "image")
	q.Set("key", c.opts.APIKey)
	q.Set("cx", c.opts.CX)
	q.Set("num", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.opts.BaseURL+"?"+q.Encode(), nil)
	if err != nil {
		return fmt.Sprintf("Error fetching image: %v", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Warn("image search request failed",
			zap.String("query", query), zap.Error(err))
		return fmt.Sprintf("Error fetching image: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Warn("image search non-2xx",
			zap.String("query", query), zap.String("status", resp.Status))
		return fmt.Sprintf("Error fetching image: unexpected status %s", resp.Status)
	}

	var result struct {
		Items []struct {
			Link string `json:"link"`
		} `json:"items"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return fmt.Sprintf("Error fetching image: %v", err)
	}

	if len(result.Items) == 0 {
		return noImagePlaceholder
	}
	return result.Items[0].Link
}
