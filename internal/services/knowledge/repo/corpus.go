// Package repo provides the static corpus and postgres access for the
// medical knowledge base
package repo

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"

	"medixscan/internal/services/knowledge/domain"
)

//go:embed corpus.json
var embedded []byte

type rawCorpus struct {
	Version int           `json:"version"`
	Entries []domain.Term `json:"entries"`
}

// Static returns the embedded seed corpus. Terms and synonyms are
// lowercased; entries without a correct spelling default to the term itself
func Static() ([]domain.Term, error) {
	var rc rawCorpus
	if err := json.Unmarshal(embedded, &rc); err != nil {
		return nil, fmt.Errorf("knowledge: parse corpus.json: %w", err)
	}
	if rc.Version != 1 {
		return nil, fmt.Errorf("knowledge: unsupported corpus.json version %d (want 1)", rc.Version)
	}

	out := make([]domain.Term, 0, len(rc.Entries))
	for _, e := range rc.Entries {
		e.Term = strings.ToLower(strings.TrimSpace(e.Term))
		if e.Term == "" {
			continue
		}
		if e.CorrectSpelling == "" {
			e.CorrectSpelling = e.Term
		}
		e.CorrectSpelling = strings.ToLower(strings.TrimSpace(e.CorrectSpelling))
		for i, s := range e.Synonyms {
			e.Synonyms[i] = strings.ToLower(strings.TrimSpace(s))
		}
		out = append(out, e)
	}
	return out, nil
}
