package httpapi

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/alexanderramin/quest/internal/domain"
	"github.com/alexanderramin/quest/internal/export"
	"github.com/gin-gonic/gin"
)

func (h *handler) listProjects(c *gin.Context) {
	ps, err := h.projects.List(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"projects": toProjectsJSON(ps)})
}

func (h *handler) createProject(c *gin.Context) {
	var req createProjectRequest
	if !h.bindJSON(c, &req) {
		return
	}
	cmd, err := domain.NewCreateProjectCmd(req.Name)
	if err != nil {
		h.writeError(c, err)
		return
	}
	p, err := h.projects.Create(c.Request.Context(), cmd)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toProjectJSON(p))
}

func (h *handler) getProject(c *gin.Context) {
	p, err := h.projects.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toProjectJSON(p))
}

func (h *handler) deleteProject(c *gin.Context) {
	if err := h.projects.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *handler) listProjectQuestions(c *gin.Context) {
	status := domain.QuestionStatus(c.Query("status"))
	qs, err := h.questions.List(c.Request.Context(), c.Param("id"), status)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"questions": toQuestionsJSON(qs)})
}

func (h *handler) listProjectURLs(c *gin.Context) {
	us, err := h.urls.ListByProject(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"urls": toURLsJSON(us)})
}

func (h *handler) exportProject(c *gin.Context) {
	report, err := h.reports.ProjectReport(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	now := h.now()
	var buf bytes.Buffer
	if err := export.Markdown(&buf, report.Project, report.Questions, now); err != nil {
		h.writeError(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.FileName(report.Project, now)))
	c.Data(http.StatusOK, "text/markdown; charset=utf-8", buf.Bytes())
}
