package httpapi

import (
	"time"

	"github.com/alexanderramin/quest/internal/domain"
)

type projectJSON struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

type urlJSON struct {
	ID        string    `json:"id"`
	URL       string    `json:"url"`
	Title     string    `json:"title"`
	ProjectID string    `json:"project_id"`
	CreatedAt time.Time `json:"created_at"`
}

type noteJSON struct {
	ID         string    `json:"id"`
	QuestionID string    `json:"question_id"`
	URLID      *string   `json:"url_id"`
	Note       string    `json:"note"`
	CreatedAt  time.Time `json:"created_at"`
	URL        *urlJSON  `json:"url,omitempty"`
}

type questionJSON struct {
	ID        string      `json:"id"`
	Text      string      `json:"text"`
	ProjectID string      `json:"project_id"`
	Status    string      `json:"status"`
	Hierarchy int         `json:"hierarchy"`
	ParentID  *string     `json:"parent_id"`
	CreatedAt time.Time   `json:"created_at"`
	Notes     []*noteJSON `json:"notes,omitempty"`
}

func toProjectJSON(p *domain.Project) *projectJSON {
	return &projectJSON{ID: p.ID, Name: p.Name, CreatedAt: p.CreatedAt}
}

func toURLJSON(u *domain.URLInfo) *urlJSON {
	if u == nil {
		return nil
	}
	return &urlJSON{ID: u.ID, URL: u.URL, Title: u.Title, ProjectID: u.ProjectID, CreatedAt: u.CreatedAt}
}

func toNoteJSON(n *domain.QuestionNote) *noteJSON {
	if n == nil {
		return nil
	}
	return &noteJSON{
		ID:         n.ID,
		QuestionID: n.QuestionID,
		URLID:      n.URLID,
		Note:       n.Note,
		CreatedAt:  n.CreatedAt,
		URL:        toURLJSON(n.URL),
	}
}

func toQuestionJSON(q *domain.Question) *questionJSON {
	out := &questionJSON{
		ID:        q.ID,
		Text:      q.Text,
		ProjectID: q.ProjectID,
		Status:    string(q.Status),
		Hierarchy: q.Hierarchy,
		ParentID:  q.ParentID,
		CreatedAt: q.CreatedAt,
	}
	if q.Notes != nil {
		out.Notes = toNotesJSON(q.Notes)
	}
	return out
}

func toProjectsJSON(ps []*domain.Project) []*projectJSON {
	out := make([]*projectJSON, 0, len(ps))
	for _, p := range ps {
		out = append(out, toProjectJSON(p))
	}
	return out
}

func toURLsJSON(us []*domain.URLInfo) []*urlJSON {
	out := make([]*urlJSON, 0, len(us))
	for _, u := range us {
		out = append(out, toURLJSON(u))
	}
	return out
}

func toNotesJSON(ns []*domain.QuestionNote) []*noteJSON {
	out := make([]*noteJSON, 0, len(ns))
	for _, n := range ns {
		out = append(out, toNoteJSON(n))
	}
	return out
}

func toQuestionsJSON(qs []*domain.Question) []*questionJSON {
	out := make([]*questionJSON, 0, len(qs))
	for _, q := range qs {
		out = append(out, toQuestionJSON(q))
	}
	return out
}

// Request bodies. Pointer fields distinguish "absent" from "empty".

type createProjectRequest struct {
	Name string `json:"name" binding:"required"`
}

type createQuestionRequest struct {
	Text      string  `json:"text" binding:"required"`
	ProjectID string  `json:"project_id" binding:"required"`
	ParentID  *string `json:"parent_id"`
}

type updateQuestionRequest struct {
	Text string `json:"text" binding:"required"`
}

type reconcileNotesRequest struct {
	Notes        *string `json:"notes" binding:"required"`
	CurrentURL   string  `json:"current_url"`
	CurrentTitle string  `json:"current_title"`
}

type addNoteRequest struct {
	Note  string `json:"note" binding:"required"`
	URL   string `json:"url"`
	Title string `json:"title"`
}

type saveURLRequest struct {
	ProjectID  string `json:"project_id" binding:"required"`
	QuestionID string `json:"question_id" binding:"required"`
	URL        string `json:"url"`
	Title      string `json:"title"`
	Note       string `json:"note"`
}

type addURLNoteRequest struct {
	Note       string `json:"note" binding:"required"`
	QuestionID string `json:"question_id" binding:"required"`
}

type updateNoteRequest struct {
	Note *string `json:"note" binding:"required"`
}
