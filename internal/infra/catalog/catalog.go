// Package infra_catalog talks to the TMDB-style discover endpoint that
// feeds candidate pools. The core only ever asks it for pages of ids.
package infra_catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/humanbelnik/matchpoint/core/internal/config"
	"github.com/humanbelnik/matchpoint/core/internal/model"
)

type Client struct {
	http    *http.Client
	baseURL string
	apiKey  string
}

func New(cfg config.Catalog) *Client {
	return &Client{
		http: &http.Client{
			Timeout: cfg.Timeout,
		},
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
	}
}

type discoverResponse struct {
	Results []struct {
		ID int64 `json:"id"`
	} `json:"results"`
}

func (c *Client) DiscoverPage(ctx context.Context, f model.Filters, page int) ([]model.ContentID, error) {
	endpoint := fmt.Sprintf("%s/discover/%s", c.baseURL, string(f.Kind))

	params := url.Values{}
	params.Set("api_key", c.apiKey)
	params.Set("page", strconv.Itoa(page))
	if len(f.GenreIDs) > 0 {
		params.Set("with_genres", joinIDs(f.GenreIDs))
	}
	if len(f.ProviderIDs) > 0 {
		params.Set("with_watch_providers", joinIDs(f.ProviderIDs))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("catalog responded with %d", resp.StatusCode)
	}

	var body discoverResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, err
	}

	ids := make([]model.ContentID, 0, len(body.Results))
	for _, r := range body.Results {
		ids = append(ids, model.ContentID(r.ID))
	}
	return ids, nil
}

func joinIDs(ids []int64) string {
	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		parts = append(parts, strconv.FormatInt(id, 10))
	}
	return strings.Join(parts, ",")
}
