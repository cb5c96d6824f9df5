package httpapi

import (
	"net/http"

	"github.com/alexanderramin/quest/internal/domain"
	"github.com/gin-gonic/gin"
)

func (h *handler) listQuestions(c *gin.Context) {
	qs, err := h.questions.ListAll(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"questions": toQuestionsJSON(qs)})
}

func (h *handler) createQuestion(c *gin.Context) {
	var req createQuestionRequest
	if !h.bindJSON(c, &req) {
		return
	}
	cmd, err := domain.NewCreateQuestionCmd(req.ProjectID, req.Text, req.ParentID)
	if err != nil {
		h.writeError(c, err)
		return
	}
	q, err := h.questions.Create(c.Request.Context(), cmd)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toQuestionJSON(q))
}

func (h *handler) getQuestion(c *gin.Context) {
	q, err := h.questions.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toQuestionJSON(q))
}

func (h *handler) updateQuestion(c *gin.Context) {
	var req updateQuestionRequest
	if !h.bindJSON(c, &req) {
		return
	}
	cmd, err := domain.NewUpdateQuestionTextCmd(c.Param("id"), req.Text)
	if err != nil {
		h.writeError(c, err)
		return
	}
	q, err := h.questions.UpdateText(c.Request.Context(), cmd)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toQuestionJSON(q))
}

func (h *handler) toggleQuestionStatus(c *gin.Context) {
	q, err := h.questions.ToggleStatus(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toQuestionJSON(q))
}

func (h *handler) deleteQuestion(c *gin.Context) {
	if err := h.questions.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *handler) listQuestionChildren(c *gin.Context) {
	qs, err := h.questions.ListChildren(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"questions": toQuestionsJSON(qs)})
}
