package search

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"
)

const ddgEndpoint = "https://lite.duckduckgo.com/lite/"

// DuckDuckGo scrapes DuckDuckGo's lite HTML interface. It needs no API key
// but its output is HTML, so parsing is best-effort: when the page yields no
// recognizable results the raw body is surfaced via UnparsedError.
type DuckDuckGo struct {
	endpoint string
	client   *http.Client
}

func NewDuckDuckGo() *DuckDuckGo {
	return &DuckDuckGo{
		endpoint: ddgEndpoint,
		client:   &http.Client{Timeout: 15 * time.Second},
	}
}

// NewDuckDuckGoWithClient constructs a DuckDuckGo provider with a custom
// endpoint and HTTP client, for tests.
func NewDuckDuckGoWithClient(endpoint string, client *http.Client) *DuckDuckGo {
	return &DuckDuckGo{endpoint: endpoint, client: client}
}

func (d *DuckDuckGo) Name() string { return "duckduckgo" }

// Search posts the query to the lite page and parses result links out of the
// returned HTML.
func (d *DuckDuckGo) Search(ctx context.Context, query string) ([]Result, error) {
	form := url.Values{}
	form.Set("q", query)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, &Error{Provider: d.Name(), Err: err}
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, &Error{Provider: d.Name(), Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &Error{Provider: d.Name(), Err: fmt.Errorf("http %d", resp.StatusCode)}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{Provider: d.Name(), Err: fmt.Errorf("reading response: %w", err)}
	}

	results := parseLiteResults(string(body))
	if len(results) == 0 {
		return nil, &UnparsedError{
			Provider: d.Name(),
			Raw:      string(body),
			Err:      fmt.Errorf("no result links recognized in page"),
		}
	}
	return results, nil
}

var (
	// Result links on the lite page: <a ... class='result-link' href="URL">TITLE</a>,
	// with class and href in either order.
	ddgLinkPattern  = regexp.MustCompile(`<a[^>]*class=['"]result-link['"][^>]*href=['"]([^'"]+)['"][^>]*>([^<]+)</a>`)
	ddgLinkPattern2 = regexp.MustCompile(`<a[^>]*href=['"]([^'"]+)['"][^>]*class=['"]result-link['"][^>]*>([^<]+)</a>`)
	ddgSnippetPattern = regexp.MustCompile(`<td[^>]*class=['"]result-snippet['"][^>]*>([^<]+)</td>`)
)

func parseLiteResults(html string) []Result {
	matches := ddgLinkPattern.FindAllStringSubmatch(html, -1)
	if len(matches) == 0 {
		matches = ddgLinkPattern2.FindAllStringSubmatch(html, -1)
	}
	snippets := ddgSnippetPattern.FindAllStringSubmatch(html, -1)

	var results []Result
	for i, m := range matches {
		link := strings.TrimSpace(m[1])
		title := cleanHTML(strings.TrimSpace(m[2]))
		if link == "" || title == "" {
			continue
		}

		snippet := ""
		if i < len(snippets) {
			snippet = cleanHTML(strings.TrimSpace(snippets[i][1]))
		}

		results = append(results, Result{Title: title, Link: link, Snippet: snippet})
	}
	return results
}

func cleanHTML(s string) string {
	replacer := strings.NewReplacer(
		"&amp;", "&",
		"&lt;", "<",
		"&gt;", ">",
		"&quot;", `"`,
		"&#x27;", "'",
		"&#39;", "'",
		"&nbsp;", " ",
	)
	return replacer.Replace(s)
}
