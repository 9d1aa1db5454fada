// Package suggest proposes a category and tags for a prompt template, asking
// the language model first and falling back to keyword matching.
package suggest

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"go.uber.org/zap"

	"github.com/vbitzceo/voidbitzPromptWorkshop/internal/completion"
	"github.com/vbitzceo/voidbitzPromptWorkshop/internal/models"
)

const (
	SourceModel     = "model"
	SourceHeuristic = "heuristic"

	maxSuggestedTags = 3
)

const responseSchema = `{
  "type": "object",
  "additionalProperties": false,
  "required": ["suggestedCategoryId", "suggestedTagIds", "reasoning"],
  "properties": {
    "suggestedCategoryId": {"type": ["string", "null"]},
    "suggestedTagIds": {"type": "array", "items": {"type": "string"}, "maxItems": 10},
    "reasoning": {"type": "string"}
  }
}`

// Input is the template text to classify.
type Input struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Content     string `json:"content"`
}

type Suggestion struct {
	CategoryID *string  `json:"suggestedCategoryId"`
	TagIDs     []string `json:"suggestedTagIds"`
	Reasoning  string   `json:"reasoning"`
	Source     string   `json:"source"`
}

type Suggester struct {
	completer completion.Completer
	schema    *jsonschema.Schema
	log       *zap.Logger
}

// New compiles the response schema. A nil completer makes every suggestion
// heuristic.
func New(completer completion.Completer, log *zap.Logger) (*Suggester, error) {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("suggestion.json", strings.NewReader(responseSchema)); err != nil {
		return nil, fmt.Errorf("load suggestion schema: %w", err)
	}
	schema, err := compiler.Compile("suggestion.json")
	if err != nil {
		return nil, fmt.Errorf("compile suggestion schema: %w", err)
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Suggester{completer: completer, schema: schema, log: log}, nil
}

// Suggest never fails: a missing, failing or malformed model answer yields
// the keyword heuristic.
func (s *Suggester) Suggest(ctx context.Context, in Input, categories []models.Category, tags []models.Tag) Suggestion {
	if s.completer != nil && (len(categories) > 0 || len(tags) > 0) {
		answer, err := s.completer.Complete(ctx, buildPrompt(in, categories, tags))
		if err != nil {
			s.log.Debug("Suggestion model unavailable", zap.Error(err))
			return Heuristic(in, categories, tags)
		}
		suggestion, err := s.parse(answer, categories, tags)
		if err == nil {
			return suggestion
		}
		s.log.Warn("Discarding malformed suggestion", zap.Error(err))
	}
	return Heuristic(in, categories, tags)
}

func (s *Suggester) parse(answer string, categories []models.Category, tags []models.Tag) (Suggestion, error) {
	raw := extractObject(answer)
	if raw == "" {
		return Suggestion{}, fmt.Errorf("no JSON object in answer")
	}

	var doc any
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return Suggestion{}, fmt.Errorf("decode answer: %w", err)
	}
	if err := s.schema.Validate(doc); err != nil {
		return Suggestion{}, fmt.Errorf("answer does not match schema: %w", err)
	}

	var parsed Suggestion
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return Suggestion{}, fmt.Errorf("decode answer: %w", err)
	}

	out := Suggestion{TagIDs: []string{}, Reasoning: parsed.Reasoning, Source: SourceModel}
	if parsed.CategoryID != nil {
		for _, c := range categories {
			if c.ID == *parsed.CategoryID {
				id := c.ID
				out.CategoryID = &id
				break
			}
		}
	}
	known := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		known[t.ID] = struct{}{}
	}
	for _, id := range models.DedupeIDs(parsed.TagIDs) {
		if _, ok := known[id]; ok && len(out.TagIDs) < maxSuggestedTags {
			out.TagIDs = append(out.TagIDs, id)
		}
	}
	return out, nil
}

func buildPrompt(in Input, categories []models.Category, tags []models.Tag) string {
	var b strings.Builder
	b.WriteString("Classify the prompt template below. Pick at most one category and up to three tags from the lists, using their ids.\n")
	b.WriteString("Answer with a single JSON object with the keys suggestedCategoryId (string or null), suggestedTagIds (array of strings) and reasoning (string). No other text.\n\n")
	b.WriteString("Categories:\n")
	for _, c := range categories {
		fmt.Fprintf(&b, "- %s: %s. %s\n", c.ID, c.Name, c.Description)
	}
	b.WriteString("\nTags:\n")
	for _, t := range tags {
		fmt.Fprintf(&b, "- %s: %s. %s\n", t.ID, t.Name, t.Description)
	}
	fmt.Fprintf(&b, "\nTemplate name: %s\nDescription: %s\nContent:\n%s\n", in.Name, in.Description, in.Content)
	return b.String()
}

// extractObject returns the outermost {...} span, which drops code fences and
// chatter around the JSON.
func extractObject(answer string) string {
	start := strings.Index(answer, "{")
	end := strings.LastIndex(answer, "}")
	if start < 0 || end < start {
		return ""
	}
	return answer[start : end+1]
}

type scored struct {
	id    string
	name  string
	score int
}

// Heuristic scores each category and tag against the template text: +10 when
// its name appears, +3 for each description word longer than three letters
// that appears. The best category and the top three tags with a positive
// score win.
func Heuristic(in Input, categories []models.Category, tags []models.Tag) Suggestion {
	text := strings.ToLower(strings.Join([]string{in.Name, in.Description, in.Content}, " "))

	out := Suggestion{TagIDs: []string{}, Source: SourceHeuristic}
	var reasons []string

	var best *scored
	for _, c := range categories {
		sc := scored{id: c.ID, name: c.Name, score: score(text, c.Name, c.Description)}
		if sc.score > 0 && (best == nil || sc.score > best.score) {
			best = &sc
		}
	}
	if best != nil {
		id := best.id
		out.CategoryID = &id
		reasons = append(reasons, fmt.Sprintf("category %q matched keywords", best.name))
	}

	var ranked []scored
	for _, t := range tags {
		if sc := score(text, t.Name, t.Description); sc > 0 {
			ranked = append(ranked, scored{id: t.ID, name: t.Name, score: sc})
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].score > ranked[j].score })
	for i := 0; i < len(ranked) && i < maxSuggestedTags; i++ {
		out.TagIDs = append(out.TagIDs, ranked[i].id)
		reasons = append(reasons, fmt.Sprintf("tag %q matched keywords", ranked[i].name))
	}

	if len(reasons) == 0 {
		out.Reasoning = "No category or tag keywords found in the template."
	} else {
		out.Reasoning = "Keyword match: " + strings.Join(reasons, "; ") + "."
	}
	return out
}

func score(text, name, description string) int {
	total := 0
	if n := strings.ToLower(strings.TrimSpace(name)); n != "" && strings.Contains(text, n) {
		total += 10
	}
	for _, word := range strings.Fields(strings.ToLower(description)) {
		word = strings.Trim(word, ".,;:!?()\"'")
		if len(word) > 3 && strings.Contains(text, word) {
			total += 3
		}
	}
	return total
}
