package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	// DefaultSearchEndpoint is the DuckDuckGo instant-answer API.
	DefaultSearchEndpoint = "https://api.duckduckgo.com/"

	DefaultSearchUserAgent = "taskpilot/1.0 (+https://github.com/taskpilot)"

	maxSearchSnippets = 4

	noSnippetsMessage = "No search snippets returned."
)

// SearchTool queries a public instant-answer API and flattens the abstract
// plus related-topic texts into a short snippet list.
type SearchTool struct {
	endpoint  string
	userAgent string
	client    *http.Client
}

func NewSearchTool(endpoint, userAgent string, timeout time.Duration) *SearchTool {
	if endpoint == "" {
		endpoint = DefaultSearchEndpoint
	}
	if userAgent == "" {
		userAgent = DefaultSearchUserAgent
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &SearchTool{
		endpoint:  endpoint,
		userAgent: userAgent,
		client:    &http.Client{Timeout: timeout},
	}
}

func (t *SearchTool) Name() string { return "search" }

func (t *SearchTool) Description() string {
	return "Searches the web through a public instant-answer API and returns up to four result snippets."
}

// instantAnswer covers the two shapes a related topic can take: a leaf with
// its own Text, or a named group holding nested leaf topics.
type instantAnswer struct {
	AbstractText  string         `json:"AbstractText"`
	RelatedTopics []relatedTopic `json:"RelatedTopics"`
}

type relatedTopic struct {
	Text   string `json:"Text"`
	Topics []struct {
		Text string `json:"Text"`
	} `json:"Topics"`
}

func (t *SearchTool) Execute(ctx context.Context, input string, tctx ToolContext) ToolExecution {
	query := strings.TrimSpace(input)
	if query == "" {
		query = strings.TrimSpace(tctx.Task)
	}
	if query == "" {
		return failed(t.Name(), input, fmt.Errorf("%w: a search query is required", ErrMissingInput))
	}

	reqURL := fmt.Sprintf("%s?q=%s&format=json&no_html=1&skip_disambig=1", strings.TrimRight(t.endpoint, "?"), url.QueryEscape(query))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return failed(t.Name(), query, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", t.userAgent)

	resp, err := t.client.Do(req)
	if err != nil {
		return failed(t.Name(), query, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return failed(t.Name(), query, fmt.Errorf("search request failed with status %d", resp.StatusCode))
	}

	var answer instantAnswer
	if err := json.NewDecoder(resp.Body).Decode(&answer); err != nil {
		return failed(t.Name(), query, err)
	}

	snippets := collectSnippets(answer)
	if len(snippets) == 0 {
		// An empty result set is an answer, not a failure.
		return succeeded(t.Name(), query, noSnippetsMessage)
	}
	return succeeded(t.Name(), query, strings.Join(snippets, "\n"))
}

func collectSnippets(answer instantAnswer) []string {
	var snippets []string
	add := func(text string) {
		text = strings.TrimSpace(text)
		if text == "" || len(snippets) >= maxSearchSnippets {
			return
		}
		snippets = append(snippets, text)
	}
	add(answer.AbstractText)
	for _, topic := range answer.RelatedTopics {
		add(topic.Text)
		for _, sub := range topic.Topics {
			add(sub.Text)
		}
	}
	return snippets
}
