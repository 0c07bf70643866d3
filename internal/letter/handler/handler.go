package handler

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"tripcheck/internal/letter"
	"tripcheck/pkg/platform/httputil"
	"tripcheck/pkg/requestcontext"
)

// Service defines the letter operations the handler needs.
type Service interface {
	Templates() []letter.Template
	Generate(ctx context.Context, req letter.Request) (*letter.Letter, error)
	GenerateDocx(ctx context.Context, req letter.Request) (*letter.Document, error)
}

// Handler wires letter endpoints to the letter service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts letter endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/letters/templates", h.HandleTemplates)
	r.Post("/letters", h.HandleGenerate)
	r.Post("/letters/docx", h.HandleGenerateDocx)
}

// HandleTemplates handles GET /letters/templates.
func (h *Handler) HandleTemplates(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, FromTemplates(h.service.Templates()))
}

// HandleGenerate handles POST /letters.
func (h *Handler) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[LetterRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	l, err := h.service.Generate(ctx, req.ToDomain())
	if err != nil {
		h.logger.WarnContext(ctx, "letter generation failed",
			"request_id", requestID,
			"template", req.TemplateID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromLetter(l))
}

// HandleGenerateDocx handles POST /letters/docx.
func (h *Handler) HandleGenerateDocx(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[LetterRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	doc, err := h.service.GenerateDocx(ctx, req.ToDomain())
	if err != nil {
		h.logger.WarnContext(ctx, "letter docx generation failed",
			"request_id", requestID,
			"template", req.TemplateID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	w.Header().Set("Content-Type", doc.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", doc.Filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(doc.Data)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(doc.Data); err != nil {
		h.logger.ErrorContext(ctx, "failed to write docx response",
			"request_id", requestID,
			"error", err,
		)
	}
}
