package search

import (
	"context"
	"encoding/json"

	"github.com/raezil/linkup-go/linkup"
)

// Linkup queries the Linkup search API through its Go SDK. The SDK returns
// raw JSON; anything that won't decode into the searchResults shape is
// surfaced as an UnparsedError.
type Linkup struct {
	client *linkup.Client
}

func NewLinkup(apiKey string, opts ...linkup.Option) *Linkup {
	// Retries are disabled: search failures are absorbed per query by the
	// caller, not retried.
	opts = append([]linkup.Option{linkup.WithRetry(0, 0, 0)}, opts...)
	return &Linkup{client: linkup.NewClient(apiKey, opts...)}
}

func (l *Linkup) Name() string { return "linkup" }

func (l *Linkup) Search(ctx context.Context, query string) ([]Result, error) {
	resp, err := l.client.Search(ctx, linkup.SearchRequest{
		Q:          query,
		Depth:      linkup.DepthStandard,
		OutputType: linkup.OutputSearchResults,
	})
	if err != nil {
		return nil, &Error{Provider: l.Name(), Err: err}
	}

	var decoded struct {
		Results []struct {
			Name    string `json:"name"`
			URL     string `json:"url"`
			Content string `json:"content"`
		} `json:"results"`
	}
	if err := json.Unmarshal(resp.Raw, &decoded); err != nil {
		return nil, &UnparsedError{Provider: l.Name(), Raw: string(resp.Raw), Err: err}
	}

	results := make([]Result, 0, len(decoded.Results))
	for _, r := range decoded.Results {
		results = append(results, Result{Title: r.Name, Link: r.URL, Snippet: r.Content})
	}
	return results, nil
}
