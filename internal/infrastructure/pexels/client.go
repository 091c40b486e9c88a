// Package pexels is a thin client for the Pexels photo search API, used to
// decorate recipe suggestions with a representative photo.
package pexels

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

const defaultBaseURL = "https://api.pexels.com/v1"

type Client struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

func NewClient(apiKey string) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

type searchResponse struct {
	Photos []struct {
		Src struct {
			Medium string `json:"medium"`
		} `json:"src"`
	} `json:"photos"`
}

// SearchPhoto returns the URL of the top photo match for query, or an error
// when nothing matched.
func (c *Client) SearchPhoto(ctx context.Context, query string) (string, error) {
	if c.apiKey == "" {
		return "", errors.New("pexels api key not configured")
	}

	u := fmt.Sprintf("%s/search?query=%s&per_page=1", c.baseURL, url.QueryEscape(query))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("pexels search request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("pexels returned status %d", resp.StatusCode)
	}

	var sr searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return "", fmt.Errorf("decode pexels response: %w", err)
	}
	if len(sr.Photos) == 0 {
		return "", fmt.Errorf("no photo found for %q", query)
	}
	return sr.Photos[0].Src.Medium, nil
}
