// Package domain holds DTOs and ports for the medical knowledge base
package domain

// Term is one knowledge base entry. Misspelling entries point at their
// canonical form through CorrectSpelling
type Term struct {
	Term            string   `json:"term"`
	CorrectSpelling string   `json:"correct_spelling"`
	Category        string   `json:"category"`
	Definition      string   `json:"definition,omitempty"`
	Source          string   `json:"source"`
	Synonyms        []string `json:"synonyms,omitempty"`
	BodyPart        string   `json:"body_part,omitempty"`
	SemanticTag     string   `json:"semantic_tag,omitempty"`
}

// Retrieved is a Term scored against a query
type Retrieved struct {
	Term
	Confidence float64 `json:"confidence"`
	MatchType  string  `json:"match_type"`
	Context    string  `json:"context,omitempty"`
}

// LookupInput is the input for a knowledge base lookup
type LookupInput struct {
	Term  string `json:"term" validate:"required,min=1,max=128" example:"opacty"`
	Limit int    `json:"limit,omitempty" validate:"omitempty,min=1,max=25" example:"5"`
}

// LookupResult is the response for a knowledge base lookup
type LookupResult struct {
	Term    string      `json:"term"`
	Results []Retrieved `json:"results"`
	Count   int         `json:"count"`
}
