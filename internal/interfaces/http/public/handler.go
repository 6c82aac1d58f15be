package public

import (
	"log"

	"github.com/go-chi/chi/v5"

	"github.com/cognitive-economics/questionnaire-services/api/internal/intake/application"
)

// Handler wires the public questionnaire endpoints to the intake service.
type Handler struct {
	logger *log.Logger
	intake application.SubmissionService
}

// Config defines dependencies required by Handler.
type Config struct {
	Logger *log.Logger
	Intake application.SubmissionService
}

// NewHandler constructs the public HTTP handler set.
func NewHandler(cfg Config) *Handler {
	return &Handler{
		logger: cfg.Logger,
		intake: cfg.Intake,
	}
}

// Register mounts the questionnaire routes onto the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/api/forms/submit", h.submitHandler())
	r.Get("/api/forms/responses", h.responsesHandler())
}
