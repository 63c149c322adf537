package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const serperSearchURL = "https://google.serper.dev/search"

// SerperProvider queries the Serper.dev Google-search API. It's the default
// Provider cmd/riptided wires when SERPER_API_KEY is set.
type SerperProvider struct {
	apiKey  string
	baseURL string
	http    *http.Client
}

// NewSerperProvider builds a SerperProvider against the given API key.
func NewSerperProvider(apiKey string) *SerperProvider {
	return &SerperProvider{
		apiKey:  apiKey,
		baseURL: serperSearchURL,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

type serperRequest struct {
	Q      string `json:"q"`
	Num    int    `json:"num"`
}

type serperResponse struct {
	Organic []struct {
		Title   string `json:"title"`
		Link    string `json:"link"`
		Snippet string `json:"snippet"`
		Position int   `json:"position"`
	} `json:"organic"`
}

// Search issues one POST to https://google.serper.dev/search and maps the
// organic results into Result, capped at limit.
func (p *SerperProvider) Search(ctx context.Context, query string, limit int) ([]Result, error) {
	body, err := json.Marshal(serperRequest{Q: query, Num: limit})
	if err != nil {
		return nil, fmt.Errorf("search: encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("search: build request: %w", err)
	}
	req.Header.Set("X-API-KEY", p.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search: request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("search: serper returned status %d", resp.StatusCode)
	}

	var parsed serperResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("search: decode response: %w", err)
	}

	results := make([]Result, 0, len(parsed.Organic))
	for i, o := range parsed.Organic {
		if i >= limit {
			break
		}
		results = append(results, Result{
			URL:     o.Link,
			Title:   o.Title,
			Snippet: o.Snippet,
			Rank:    o.Position,
		})
	}
	return results, nil
}
