package domain

import "time"

type QuestionNote struct {
	ID         string
	QuestionID string
	URLID      *string
	Note       string
	CreatedAt  time.Time

	// URL is the joined URL record when URLID is set and the read path joins it.
	URL *URLInfo
}

// NoteDraft is a note's text and attribution before it is persisted. It is the
// unit the reconciler reads and produces.
type NoteDraft struct {
	Text  string
	URLID *string
}

// Drafts projects persisted notes onto drafts, preserving order.
func Drafts(notes []*QuestionNote) []NoteDraft {
	out := make([]NoteDraft, 0, len(notes))
	for _, n := range notes {
		out = append(out, NoteDraft{Text: n.Note, URLID: n.URLID})
	}
	return out
}
