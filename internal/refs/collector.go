// Package refs collects annotated reference links for a study topic. It runs
// a fixed set of search queries, deduplicates candidate links, asks the
// generation client for a short explanation of each, and degrades gracefully:
// a failed query, a failed explanation, or a malformed link never aborts the
// run, and total exhaustion still yields a single deterministic fallback.
package refs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"regexp"
	"strings"

	"neuranote.app/assistant/common/llm"
	"neuranote.app/assistant/common/logger"
	"neuranote.app/assistant/internal/model"
	"neuranote.app/assistant/internal/search"
)

// QueryTemplates is the fixed, ordered set of search queries run per topic.
// The set size and wording are policy: exact values are load-bearing for
// result compatibility, so change them deliberately.
var QueryTemplates = [4]string{
	"%s resources list",
	"introduction to %s learning guide",
	"best %s tutorials for beginners",
	"best resources to learn %s",
}

// MaxResultsPerQuery caps how many raw results are taken from each query.
// The cap is counted against raw results, before deduplication.
const MaxResultsPerQuery = 3

const explanationPlaceholder = "Explanation for this resource is currently unavailable."

const explanationTemplate = `You are helping a student evaluate study resources for the topic "{{.topic}}".

A web search returned this resource:
Title: {{.title}}
Link: {{.link}}
Snippet: {{.snippet}}

Write a one-to-two sentence explanation of what this resource offers and why it is relevant to learning {{.topic}}.`

type explanationResponse struct {
	Explanation string `json:"explanation" jsonschema_description:"One to two sentence explanation of the resource's relevance"`
}

var explanationSchema = llm.GenerateSchema[explanationResponse]()

// Collector assembles the reference-link list for a topic. It holds no state
// across runs; the dedup set is local to a single Collect call.
type Collector struct {
	search search.Provider
	llm    llm.Client
}

func NewCollector(provider search.Provider, client llm.Client) *Collector {
	return &Collector{search: provider, llm: client}
}

// Collect returns a non-empty, duplicate-free, ordered list of annotated
// links for the topic. Queries run sequentially; each query's results are
// fully processed (including explanation calls) before the next query starts.
func (c *Collector) Collect(ctx context.Context, topic string) []model.ReferenceLink {
	ctx = logger.WithLogFields(ctx, logger.LogFields{
		Topic:     logger.Ptr(topic),
		Component: "assistant.refs",
	})
	sc := logger.StartSpan(ctx, "refs.collect")
	defer sc.End()
	ctx = sc.Context()

	seen := make(map[string]bool)
	var links []model.ReferenceLink

	for _, tmpl := range QueryTemplates {
		query := fmt.Sprintf(tmpl, topic)
		qctx := logger.WithLogFields(ctx, logger.LogFields{Query: logger.Ptr(query)})

		results, err := c.search.Search(qctx, query)
		if err != nil {
			var unparsed *search.UnparsedError
			if errors.As(err, &unparsed) {
				// Best-effort recovery: the raw text sometimes contains a
				// usable URL even when the structured shape is gone.
				if link, ok := recoverLink(unparsed.Raw, seen); ok {
					seen[link] = true
					links = append(links, model.ReferenceLink{
						Link:        link,
						Explanation: fmt.Sprintf("A general reference link found via search for %s.", topic),
					})
					slog.InfoContext(qctx, "recovered link from raw search output", "link", link)
					continue
				}
			}
			slog.WarnContext(qctx, "search query failed, continuing", "error", err)
			continue
		}

		if len(results) > MaxResultsPerQuery {
			results = results[:MaxResultsPerQuery]
		}

		for _, r := range results {
			if !validLink(r.Link) {
				slog.DebugContext(qctx, "discarding candidate with invalid link", "link", r.Link)
				continue
			}
			if seen[r.Link] {
				continue
			}
			// Mark seen regardless of how explanation generation goes, so
			// later queries in this run never reprocess the link.
			seen[r.Link] = true

			links = append(links, model.ReferenceLink{
				Link:        r.Link,
				Explanation: c.explain(qctx, topic, r),
			})
		}
	}

	if len(links) == 0 {
		fallback := fallbackLink(topic)
		slog.InfoContext(ctx, "collection exhausted, using fallback link", "link", fallback.Link)
		links = append(links, fallback)
	}

	return links
}

// explain asks the generation client for a short annotation. A failed or
// empty generation yields the placeholder: having the link matters more than
// the quality of its annotation.
func (c *Collector) explain(ctx context.Context, topic string, r search.Result) string {
	title := r.Title
	if title == "" {
		title = fmt.Sprintf("A resource about %s", topic)
	}

	var resp explanationResponse
	err := c.llm.Generate(ctx, llm.Request{
		Template: explanationTemplate,
		Vars: map[string]any{
			"topic":   topic,
			"title":   title,
			"link":    r.Link,
			"snippet": r.Snippet,
		},
		SchemaName:  "reference_explanation",
		Schema:      explanationSchema,
		MaxTokens:   200,
		Temperature: llm.Temp(0.3),
	}, &resp)
	if err != nil {
		slog.WarnContext(ctx, "explanation generation failed, using placeholder",
			"link", r.Link, "error", err)
		return explanationPlaceholder
	}
	if strings.TrimSpace(resp.Explanation) == "" {
		return explanationPlaceholder
	}
	return resp.Explanation
}

var urlPattern = regexp.MustCompile(`https?://[^\s"'<>]+`)

// recoverLink scans raw provider output for a single URL-shaped substring.
// Provider-specific and best-effort: anything that fails validation or was
// already seen is ignored.
func recoverLink(raw string, seen map[string]bool) (string, bool) {
	link := urlPattern.FindString(raw)
	if link == "" || seen[link] || !validLink(link) {
		return "", false
	}
	return link, true
}

func validLink(link string) bool {
	u, err := url.ParseRequestURI(link)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// fallbackLink builds the deterministic last-resort entry for a topic.
func fallbackLink(topic string) model.ReferenceLink {
	return model.ReferenceLink{
		Link:        "https://en.wikipedia.org/wiki/" + strings.ReplaceAll(topic, " ", "_"),
		Explanation: fmt.Sprintf("A general informational resource about %s.", topic),
	}
}
