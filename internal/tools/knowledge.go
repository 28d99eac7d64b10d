package tools

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strings"
)

const noKnowledgeMessage = "No relevant knowledge snippets found."

var keywordSplit = regexp.MustCompile(`[^a-z0-9]+`)

// KnowledgeDoc is one entry of the built-in knowledge base.
type KnowledgeDoc struct {
	Title   string
	Content string
}

// defaultKnowledgeDocs is the fixed document set shipped with the binary.
var defaultKnowledgeDocs = []KnowledgeDoc{
	{
		Title:   "Agentic AI definition",
		Content: "Agentic AI systems decompose a goal into steps, pick a tool for each step, execute the steps, and synthesize the results into one answer.",
	},
	{
		Title:   "Product launch playbook",
		Content: "A product launch needs a positioning statement, a target audience, a pricing decision, an announcement channel plan, and a post-launch feedback loop.",
	},
	{
		Title:   "Research workflow",
		Content: "Effective research starts broad with web search, narrows to primary sources, and records citations so claims can be verified later.",
	},
	{
		Title:   "Estimating with numbers",
		Content: "When a task involves quantities, compute the key figures explicitly: totals, growth rates, percentages, and unit economics anchor the rest of the analysis.",
	},
	{
		Title:   "Writing a concise summary",
		Content: "Lead with the conclusion, keep one idea per sentence, and cut any detail that does not change what the reader should do next.",
	},
}

// KnowledgeBaseTool ranks a small in-memory document set by keyword overlap
// with the query. It has no external dependency and never fails.
type KnowledgeBaseTool struct {
	docs []KnowledgeDoc
}

func NewKnowledgeBaseTool() *KnowledgeBaseTool {
	return &KnowledgeBaseTool{docs: defaultKnowledgeDocs}
}

func (t *KnowledgeBaseTool) Name() string { return "knowledge_base" }

func (t *KnowledgeBaseTool) Description() string {
	return "Looks up built-in playbooks and reference notes by keyword overlap with the query."
}

func (t *KnowledgeBaseTool) Execute(_ context.Context, input string, tctx ToolContext) ToolExecution {
	query := strings.TrimSpace(input)
	if query == "" {
		query = strings.TrimSpace(tctx.Task)
	}

	keywords := tokenize(query)
	type scored struct {
		doc   KnowledgeDoc
		score int
	}
	var ranked []scored
	for _, doc := range t.docs {
		haystack := strings.ToLower(doc.Title + " " + doc.Content)
		score := 0
		for kw := range keywords {
			if strings.Contains(haystack, kw) {
				score++
			}
		}
		if score > 0 {
			ranked = append(ranked, scored{doc: doc, score: score})
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].score > ranked[j].score })
	if len(ranked) > 2 {
		ranked = ranked[:2]
	}

	if len(ranked) == 0 {
		return succeeded(t.Name(), query, noKnowledgeMessage)
	}
	lines := make([]string, 0, len(ranked))
	for _, s := range ranked {
		lines = append(lines, fmt.Sprintf("• %s: %s", s.doc.Title, s.doc.Content))
	}
	return succeeded(t.Name(), query, strings.Join(lines, "\n"))
}

func tokenize(query string) map[string]struct{} {
	out := make(map[string]struct{})
	for _, kw := range keywordSplit.Split(strings.ToLower(query), -1) {
		if kw != "" {
			out[kw] = struct{}{}
		}
	}
	return out
}
