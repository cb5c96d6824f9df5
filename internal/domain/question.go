package domain

import "time"

type Question struct {
	ID        string
	ProjectID string
	Text      string
	Status    QuestionStatus
	Hierarchy int
	ParentID  *string // weak reference; children are derived by lookup
	CreatedAt time.Time

	// Notes is populated only by read paths that join notes.
	Notes []*QuestionNote
}

// ToggleStatus flips the question between to_research and finished.
func (q *Question) ToggleStatus() {
	q.Status = q.Status.Toggled()
}

// ResolveHierarchy returns the nesting level for a question created under
// parent: 0 for roots, parent.Hierarchy+1 otherwise. Callers validate that the
// parent exists and shares the question's project before calling it.
func ResolveHierarchy(parent *Question) int {
	if parent == nil {
		return 0
	}
	return parent.Hierarchy + 1
}
