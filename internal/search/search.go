// Package search queries a web-search provider and returns ranked results.
// Each provider (Tavily, DuckDuckGo, Linkup) implements the Provider
// interface per the Strategy pattern; callers treat provider failures as
// non-fatal and must preserve result order when truncating.
package search

import (
	"context"
	"fmt"

	"neuranote.app/assistant/core/config"
)

// Result is one web search hit. Ordering within a result slice reflects the
// provider's relevance ranking.
type Result struct {
	Title   string `json:"title"`
	Link    string `json:"link"`
	Snippet string `json:"snippet"`
}

// Provider searches the web for a free-text query.
type Provider interface {
	Name() string
	Search(ctx context.Context, query string) ([]Result, error)
}

// Error wraps a provider failure (unreachable, non-2xx, malformed request).
type Error struct {
	Provider string
	Err      error
}

func (e *Error) Error() string {
	return fmt.Sprintf("search %s: %v", e.Provider, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// UnparsedError reports provider output that could not be parsed into
// results. Raw carries the provider's raw text so callers can attempt a
// best-effort recovery (e.g. scanning for a URL-shaped substring).
type UnparsedError struct {
	Provider string
	Raw      string
	Err      error
}

func (e *UnparsedError) Error() string {
	return fmt.Sprintf("search %s: unparseable output: %v", e.Provider, e.Err)
}

func (e *UnparsedError) Unwrap() error {
	return e.Err
}

// NewProvider builds the configured search provider.
func NewProvider(cfg config.SearchConfig) (Provider, error) {
	switch cfg.Provider {
	case "tavily":
		if cfg.TavilyAPIKey == "" {
			return nil, fmt.Errorf("TAVILY_API_KEY is required for the tavily provider")
		}
		return NewTavily(cfg.TavilyAPIKey, cfg.TavilyDepth), nil
	case "duckduckgo":
		return NewDuckDuckGo(), nil
	case "linkup":
		if cfg.LinkupAPIKey == "" {
			return nil, fmt.Errorf("LINKUP_API_KEY is required for the linkup provider")
		}
		return NewLinkup(cfg.LinkupAPIKey), nil
	default:
		return nil, fmt.Errorf("unsupported search provider: %s", cfg.Provider)
	}
}
