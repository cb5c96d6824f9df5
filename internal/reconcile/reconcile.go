// Package reconcile rewrites a question's note set from a single edited text
// blob while keeping the source attribution of notes whose text is unchanged.
package reconcile

import (
	"regexp"
	"strings"

	"github.com/alexanderramin/quest/internal/domain"
)

// paragraphBreak matches a blank-line boundary: two or more newlines.
var paragraphBreak = regexp.MustCompile(`\n{2,}`)

// SplitParagraphs splits raw on blank-line boundaries, trims each paragraph
// and drops empty ones. CRLF line endings are treated as LF.
func SplitParagraphs(raw string) []string {
	raw = strings.ReplaceAll(raw, "\r\n", "\n")
	parts := paragraphBreak.Split(raw, -1)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Reconcile computes the replacement note set for raw.
//
// Each paragraph keeps the URL of the existing note with the identical
// trimmed text. Paragraphs with no exact match are attributed to currentURLID,
// which may be nil. When two existing notes share the same trimmed text the
// later one wins.
func Reconcile(existing []domain.NoteDraft, raw string, currentURLID *string) []domain.NoteDraft {
	known := make(map[string]*string, len(existing))
	for _, n := range existing {
		known[strings.TrimSpace(n.Text)] = n.URLID
	}

	paragraphs := SplitParagraphs(raw)
	out := make([]domain.NoteDraft, 0, len(paragraphs))
	for _, p := range paragraphs {
		urlID, ok := known[p]
		if !ok {
			urlID = currentURLID
		}
		out = append(out, domain.NoteDraft{Text: p, URLID: copyID(urlID)})
	}
	return out
}

func copyID(id *string) *string {
	if id == nil {
		return nil
	}
	v := *id
	return &v
}
