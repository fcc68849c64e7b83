package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const tavilyEndpoint = "https://api.tavily.com/search"

// Tavily calls the Tavily search API.
type Tavily struct {
	apiKey   string
	depth    string // basic or advanced
	endpoint string
	client   *http.Client
}

// NewTavily constructs a Tavily search provider.
func NewTavily(apiKey, depth string) *Tavily {
	if depth == "" {
		depth = "basic"
	}
	return &Tavily{
		apiKey:   apiKey,
		depth:    depth,
		endpoint: tavilyEndpoint,
		client:   &http.Client{Timeout: 15 * time.Second},
	}
}

// NewTavilyWithClient constructs a Tavily provider with a custom endpoint and
// HTTP client, for tests.
func NewTavilyWithClient(apiKey, depth, endpoint string, client *http.Client) *Tavily {
	t := NewTavily(apiKey, depth)
	t.endpoint = endpoint
	t.client = client
	return t
}

func (t *Tavily) Name() string { return "tavily" }

// Search posts the query to Tavily and returns its ranked results.
func (t *Tavily) Search(ctx context.Context, query string) ([]Result, error) {
	payload, err := json.Marshal(map[string]any{
		"query":   query,
		"api_key": t.apiKey,
		"depth":   t.depth,
	})
	if err != nil {
		return nil, &Error{Provider: t.Name(), Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, &Error{Provider: t.Name(), Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, &Error{Provider: t.Name(), Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &Error{Provider: t.Name(), Err: fmt.Errorf("http %d", resp.StatusCode)}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{Provider: t.Name(), Err: fmt.Errorf("reading response: %w", err)}
	}

	var response struct {
		Results []struct {
			Title   string `json:"title"`
			URL     string `json:"url"`
			Content string `json:"content"`
		} `json:"results"`
	}
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, &UnparsedError{Provider: t.Name(), Raw: string(body), Err: err}
	}

	results := make([]Result, 0, len(response.Results))
	for _, r := range response.Results {
		results = append(results, Result{Title: r.Title, Link: r.URL, Snippet: r.Content})
	}
	return results, nil
}
