package domain

type QuestionStatus string

const (
	QuestionToResearch QuestionStatus = "to_research"
	QuestionFinished   QuestionStatus = "finished"
)

// ValidQuestionStatuses is the canonical set of accepted status strings.
var ValidQuestionStatuses = map[string]bool{
	"to_research": true, "finished": true,
}

// Toggled returns the opposite status. There is no third state.
func (s QuestionStatus) Toggled() QuestionStatus {
	if s == QuestionToResearch {
		return QuestionFinished
	}
	return QuestionToResearch
}
