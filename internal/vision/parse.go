package vision

import "strings"

// ParseResponse parses a model response in format: title | quantity | unit,
// one item per line.
func ParseResponse(raw string) []Suggestion {
	lines := strings.Split(raw, "\n")
	suggestions := make([]Suggestion, 0)

	for _, line := range lines {
		if s := ParseLine(line); s != nil {
			suggestions = append(suggestions, *s)
		}
	}

	return suggestions
}

// ParseLine parses a single "title | quantity | unit" line, returning nil for
// blank lines and conversational filler.
func ParseLine(line string) *Suggestion {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil
	}

	// Skip common headers or non-item lines
	if strings.HasPrefix(line, "Here") || strings.HasPrefix(line, "I see") || strings.HasPrefix(line, "Based on") {
		return nil
	}

	parts := strings.Split(line, "|")
	s := &Suggestion{Title: strings.TrimSpace(parts[0])}
	if s.Title == "" {
		return nil
	}

	if len(parts) >= 2 {
		s.Quantity = strings.TrimSpace(parts[1])
	}
	if len(parts) >= 3 {
		s.QuantityUnit = strings.TrimSpace(parts[2])
	}
	return s
}
