package httpapi

import (
	"net/http"

	"github.com/alexanderramin/quest/internal/domain"
	"github.com/gin-gonic/gin"
)

func (h *handler) listQuestionNotes(c *gin.Context) {
	ns, err := h.notes.ListByQuestion(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"notes": toNotesJSON(ns)})
}

// reconcileNotes replaces the question's notes with the paragraphs of the
// submitted blob and returns the question with its resulting notes.
func (h *handler) reconcileNotes(c *gin.Context) {
	var req reconcileNotesRequest
	if !h.bindJSON(c, &req) {
		return
	}
	cmd, err := domain.NewReconcileNotesCmd(c.Param("id"), *req.Notes, req.CurrentURL, req.CurrentTitle)
	if err != nil {
		h.writeError(c, err)
		return
	}
	q, err := h.notes.Reconcile(c.Request.Context(), cmd)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"question": toQuestionJSON(q), "notes": toNotesJSON(q.Notes)})
}

func (h *handler) addNote(c *gin.Context) {
	var req addNoteRequest
	if !h.bindJSON(c, &req) {
		return
	}
	cmd, err := domain.NewAddNoteCmd(c.Param("id"), req.Note, req.URL, req.Title)
	if err != nil {
		h.writeError(c, err)
		return
	}
	n, err := h.notes.Add(c.Request.Context(), cmd)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toNoteJSON(n))
}

func (h *handler) getNote(c *gin.Context) {
	n, err := h.notes.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toNoteJSON(n))
}

func (h *handler) updateNote(c *gin.Context) {
	var req updateNoteRequest
	if !h.bindJSON(c, &req) {
		return
	}
	cmd, err := domain.NewUpdateNoteCmd(c.Param("id"), *req.Note)
	if err != nil {
		h.writeError(c, err)
		return
	}
	n, err := h.notes.Update(c.Request.Context(), cmd)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toNoteJSON(n))
}

func (h *handler) deleteNote(c *gin.Context) {
	if err := h.notes.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
