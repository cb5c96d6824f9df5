package httpapi

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/alexanderramin/quest/internal/domain"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type errorJSON struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
	Rule  string `json:"rule,omitempty"`
}

// writeError maps the domain error taxonomy onto HTTP statuses. Anything that
// is neither NotFound nor a ValidationError is logged and reported as a
// generic 500.
func (h *handler) writeError(c *gin.Context, err error) {
	if domain.IsNotFound(err) {
		c.AbortWithStatusJSON(http.StatusNotFound, errorJSON{Error: err.Error()})
		return
	}
	if ve, ok := domain.AsValidation(err); ok {
		c.AbortWithStatusJSON(http.StatusBadRequest, errorJSON{Error: ve.Error(), Field: ve.Field, Rule: ve.Rule})
		return
	}
	h.logger.ErrorContext(c.Request.Context(), "request failed",
		slog.String("request_id", requestID(c)),
		slog.String("route", c.FullPath()),
		slog.String("error", err.Error()),
	)
	_ = c.Error(err)
	c.AbortWithStatusJSON(http.StatusInternalServerError, errorJSON{Error: "internal error"})
}

// bindJSON decodes the body into req and writes a 400 on failure.
func (h *handler) bindJSON(c *gin.Context, req any) bool {
	err := c.ShouldBindJSON(req)
	if err == nil {
		return true
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		c.AbortWithStatusJSON(http.StatusBadRequest, errorJSON{
			Error: fe.Field() + " is required",
			Field: fe.Field(),
			Rule:  domain.RuleRequired,
		})
		return false
	}
	c.AbortWithStatusJSON(http.StatusBadRequest, errorJSON{Error: "invalid JSON body"})
	return false
}
