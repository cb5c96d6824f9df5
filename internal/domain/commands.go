package domain

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// commandValidate checks the struct tags on command types. Field names in
// errors come from the json tag so they match what API callers send.
var commandValidate *validator.Validate

func init() {
	commandValidate = validator.New(validator.WithRequiredStructEnabled())
	commandValidate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
}

// ValidateCommand runs tag validation and converts the first failure into a
// ValidationError.
func ValidateCommand(cmd any) error {
	err := commandValidate.Struct(cmd)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		if fe.Tag() == "required" {
			return NewValidationError(fe.Field(), RuleRequired, "is required")
		}
		return NewValidationError(fe.Field(), RuleInvalidValue, "failed %q check", fe.Tag())
	}
	return NewValidationError("", RuleInvalidValue, "invalid command: %v", err)
}

// URLRef names the page a note is attributed to. Title is only stored when
// the URL is registered for the first time in a project.
type URLRef struct {
	URL   string `json:"url" validate:"required"`
	Title string `json:"title"`
}

// newURLRef returns nil for a blank url.
func newURLRef(url, title string) *URLRef {
	if url == "" {
		return nil
	}
	return &URLRef{URL: url, Title: title}
}

type CreateProjectCmd struct {
	Name string `json:"name" validate:"required"`
}

func NewCreateProjectCmd(name string) (CreateProjectCmd, error) {
	cmd := CreateProjectCmd{Name: strings.TrimSpace(name)}
	return cmd, ValidateCommand(cmd)
}

type CreateQuestionCmd struct {
	ProjectID string  `json:"project_id" validate:"required"`
	Text      string  `json:"text" validate:"required"`
	ParentID  *string `json:"parent_id"`
}

// NewCreateQuestionCmd trims text and treats an empty parent id as no parent.
func NewCreateQuestionCmd(projectID, text string, parentID *string) (CreateQuestionCmd, error) {
	cmd := CreateQuestionCmd{
		ProjectID: strings.TrimSpace(projectID),
		Text:      strings.TrimSpace(text),
	}
	if parentID != nil && strings.TrimSpace(*parentID) != "" {
		id := strings.TrimSpace(*parentID)
		cmd.ParentID = &id
	}
	return cmd, ValidateCommand(cmd)
}

type UpdateQuestionTextCmd struct {
	QuestionID string `json:"question_id" validate:"required"`
	Text       string `json:"text" validate:"required"`
}

func NewUpdateQuestionTextCmd(questionID, text string) (UpdateQuestionTextCmd, error) {
	cmd := UpdateQuestionTextCmd{QuestionID: questionID, Text: strings.TrimSpace(text)}
	return cmd, ValidateCommand(cmd)
}

// ReconcileNotesCmd replaces a question's notes from one text blob. RawNotes
// may be empty, which clears the note set.
type ReconcileNotesCmd struct {
	QuestionID string  `json:"question_id" validate:"required"`
	RawNotes   string  `json:"notes"`
	CurrentURL *URLRef `json:"current_url" validate:"omitempty"`
}

func NewReconcileNotesCmd(questionID, rawNotes, currentURL, currentTitle string) (ReconcileNotesCmd, error) {
	cmd := ReconcileNotesCmd{
		QuestionID: questionID,
		RawNotes:   rawNotes,
		CurrentURL: newURLRef(currentURL, currentTitle),
	}
	return cmd, ValidateCommand(cmd)
}

// AddNoteCmd appends one note to a question, optionally attributed to a URL
// that is registered in the question's project on demand.
type AddNoteCmd struct {
	QuestionID string  `json:"question_id" validate:"required"`
	Note       string  `json:"note" validate:"required"`
	URL        *URLRef `json:"url" validate:"omitempty"`
}

func NewAddNoteCmd(questionID, note, url, title string) (AddNoteCmd, error) {
	cmd := AddNoteCmd{
		QuestionID: questionID,
		Note:       strings.TrimSpace(note),
		URL:        newURLRef(url, title),
	}
	return cmd, ValidateCommand(cmd)
}

// SaveURLCmd records a visited page for a project and, when Note is set,
// appends a note attributed to it on QuestionID.
type SaveURLCmd struct {
	ProjectID  string  `json:"project_id" validate:"required"`
	QuestionID string  `json:"question_id" validate:"required"`
	URL        *URLRef `json:"url" validate:"omitempty"`
	Note       string  `json:"note"`
}

func NewSaveURLCmd(projectID, questionID, url, title, note string) (SaveURLCmd, error) {
	cmd := SaveURLCmd{
		ProjectID:  projectID,
		QuestionID: questionID,
		URL:        newURLRef(url, title),
		Note:       strings.TrimSpace(note),
	}
	return cmd, ValidateCommand(cmd)
}

// AddURLNoteCmd appends a note to a question attributed to an existing URL.
type AddURLNoteCmd struct {
	URLID      string `json:"url_id" validate:"required"`
	QuestionID string `json:"question_id" validate:"required"`
	Note       string `json:"note" validate:"required"`
}

func NewAddURLNoteCmd(urlID, questionID, note string) (AddURLNoteCmd, error) {
	cmd := AddURLNoteCmd{URLID: urlID, QuestionID: questionID, Note: strings.TrimSpace(note)}
	return cmd, ValidateCommand(cmd)
}

type UpdateNoteCmd struct {
	NoteID string `json:"note_id" validate:"required"`
	Note   string `json:"note" validate:"required"`
}

func NewUpdateNoteCmd(noteID, note string) (UpdateNoteCmd, error) {
	cmd := UpdateNoteCmd{NoteID: noteID, Note: strings.TrimSpace(note)}
	return cmd, ValidateCommand(cmd)
}
