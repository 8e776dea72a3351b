package vision

import (
	"context"
	"io"
)

// SuggestionPrompt is the shared prompt used by vision adapters.
const SuggestionPrompt = `List every food item you can see in this pantry photo.
For each item provide: title, approximate quantity (a number), and a unit from
this exact list: count, g, kg, oz, lbs, ml, l, cup, tbsp, tsp.
Respond in plain text, one item per line, format: title | quantity | unit`

// Analyzer turns a pantry photo into item suggestions.
type Analyzer interface {
	Analyze(ctx context.Context, r io.Reader, mimeType string) (*Result, error)
}

type Result struct {
	Suggestions []Suggestion
	RawResponse string
}

// Suggestion is a candidate item parsed from a model response. Fields are
// raw model output; the editor's validation rules still apply on submit.
type Suggestion struct {
	Title        string
	Quantity     string
	QuantityUnit string
}
