// Package httpapi exposes the research services as a JSON API for the browser
// extension.
package httpapi

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/alexanderramin/quest/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

const shutdownTimeout = 10 * time.Second

// Deps are the collaborators the router serves from.
type Deps struct {
	Projects  service.ProjectService
	Questions service.QuestionService
	Notes     service.NoteService
	URLs      service.URLService
	Reports   service.ReportService

	Logger         *slog.Logger
	AllowedOrigins []string
	// Metrics defaults to a fresh registry when nil.
	Metrics *Metrics
}

type handler struct {
	projects  service.ProjectService
	questions service.QuestionService
	notes     service.NoteService
	urls      service.URLService
	reports   service.ReportService
	logger    *slog.Logger
	now       func() time.Time
}

var bindingNamesOnce sync.Once

// useJSONFieldNames makes gin's binding errors report json names.
func useJSONFieldNames() {
	bindingNamesOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "" || name == "-" {
				return fld.Name
			}
			return name
		})
	})
}

// NewRouter builds the gin engine with middleware and every API route.
func NewRouter(deps Deps) *gin.Engine {
	useJSONFieldNames()

	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	metrics := deps.Metrics
	if metrics == nil {
		metrics = NewMetrics()
	}
	h := &handler{
		projects:  deps.Projects,
		questions: deps.Questions,
		notes:     deps.Notes,
		urls:      deps.URLs,
		reports:   deps.Reports,
		logger:    logger,
		now:       time.Now,
	}

	r := gin.New()
	r.Use(gin.Recovery(), requestIDMiddleware(), loggingMiddleware(logger), metricsMiddleware(metrics), corsMiddleware(deps.AllowedOrigins))

	r.GET("/health", h.health)
	r.GET("/metrics", metrics.handler())

	api := r.Group("/api")

	projects := api.Group("/projects")
	projects.GET("", h.listProjects)
	projects.POST("", h.createProject)
	projects.GET("/:id", h.getProject)
	projects.DELETE("/:id", h.deleteProject)
	projects.GET("/:id/questions", h.listProjectQuestions)
	projects.GET("/:id/urls", h.listProjectURLs)
	projects.GET("/:id/export", h.exportProject)

	questions := api.Group("/questions")
	questions.GET("", h.listQuestions)
	questions.POST("", h.createQuestion)
	questions.GET("/:id", h.getQuestion)
	questions.PUT("/:id", h.updateQuestion)
	questions.DELETE("/:id", h.deleteQuestion)
	questions.PUT("/:id/status", h.toggleQuestionStatus)
	questions.GET("/:id/children", h.listQuestionChildren)
	questions.GET("/:id/notes", h.listQuestionNotes)
	questions.PUT("/:id/notes", h.reconcileNotes)
	questions.POST("/:id/notes", h.addNote)

	urls := api.Group("/urls")
	urls.GET("", h.listURLs)
	urls.POST("", h.saveURL)
	urls.GET("/:id", h.getURL)
	urls.GET("/:id/notes", h.listURLNotes)
	urls.POST("/:id/notes", h.addURLNote)

	notes := api.Group("/notes")
	notes.GET("/:id", h.getNote)
	notes.PUT("/:id", h.updateNote)
	notes.DELETE("/:id", h.deleteNote)

	return r
}

func (h *handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Serve runs the handler on addr until ctx is cancelled, then drains in-flight
// requests.
func Serve(ctx context.Context, addr string, handler http.Handler, logger *slog.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	logger.Info("http server shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
