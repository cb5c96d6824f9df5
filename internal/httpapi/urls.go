package httpapi

import (
	"net/http"

	"github.com/alexanderramin/quest/internal/domain"
	"github.com/gin-gonic/gin"
)

func (h *handler) listURLs(c *gin.Context) {
	us, err := h.urls.ListAll(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"urls": toURLsJSON(us)})
}

func (h *handler) getURL(c *gin.Context) {
	u, err := h.urls.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toURLJSON(u))
}

// saveURL backs the extension's save action: it registers the page and, when
// a note is given, attaches it to the question.
func (h *handler) saveURL(c *gin.Context) {
	var req saveURLRequest
	if !h.bindJSON(c, &req) {
		return
	}
	cmd, err := domain.NewSaveURLCmd(req.ProjectID, req.QuestionID, req.URL, req.Title, req.Note)
	if err != nil {
		h.writeError(c, err)
		return
	}
	res, err := h.notes.SaveURL(c.Request.Context(), cmd)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"note": toNoteJSON(res.Note), "url_info": toURLJSON(res.URLInfo)})
}

func (h *handler) listURLNotes(c *gin.Context) {
	ns, err := h.notes.ListByURL(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"notes": toNotesJSON(ns)})
}

func (h *handler) addURLNote(c *gin.Context) {
	var req addURLNoteRequest
	if !h.bindJSON(c, &req) {
		return
	}
	cmd, err := domain.NewAddURLNoteCmd(c.Param("id"), req.QuestionID, req.Note)
	if err != nil {
		h.writeError(c, err)
		return
	}
	n, err := h.notes.AddToURL(c.Request.Context(), cmd)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toNoteJSON(n))
}
