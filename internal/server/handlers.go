package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/jonathan/cv-builder/internal/db"
	"github.com/jonathan/cv-builder/internal/export"
	"github.com/jonathan/cv-builder/internal/progress"
	"github.com/jonathan/cv-builder/internal/rendering"
	"github.com/jonathan/cv-builder/internal/schemas"
	"github.com/jonathan/cv-builder/internal/session"
	"github.com/jonathan/cv-builder/internal/templates"
	"github.com/jonathan/cv-builder/internal/theme"
	"github.com/jonathan/cv-builder/internal/types"
)

// maxBodyBytes bounds request bodies; CV data with an inline photo fits well below it.
const maxBodyBytes = 4 << 20

// SessionResponse is the JSON view of a session
type SessionResponse struct {
	session.View
	Progress progress.Report `json:"progress"`
}

// PreviewResponse is the JSON form of a preview
type PreviewResponse struct {
	session.Preview
	Visibility rendering.Visibility `json:"visibility"`
}

// errorDetails exposes per-field schema failures to API clients.
func errorDetails(err error) any {
	var schemaErr *schemas.ValidationError
	if errors.As(err, &schemaErr) {
		return schemaErr.Errors
	}
	var invalid *ErrValidation
	if errors.As(err, &invalid) {
		return []schemas.FieldError{{Field: invalid.Field, Message: invalid.Message}}
	}
	return nil
}

// readBody reads a bounded request body. An empty body is allowed.
func readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	raw, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		return nil, &ErrValidation{Field: "body", Message: err.Error()}
	}
	return raw, nil
}

// decodeJSON decodes an optional JSON body into v.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	raw, err := readBody(w, r)
	if err != nil {
		return err
	}
	if len(strings.TrimSpace(string(raw))) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return &ErrValidation{Field: "body", Message: "invalid JSON: " + err.Error()}
	}
	return nil
}

func (s *Server) lookupSession(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	sess, err := s.sessions.Get(r.PathValue("id"))
	if err != nil {
		s.writeError(w, err)
		return nil, false
	}
	return sess, true
}

func (s *Server) sessionResponse(sess *session.Session) SessionResponse {
	return SessionResponse{View: sess.Snapshot(), Progress: sess.Progress()}
}

// handleListTemplates returns the built-in template catalog
func (s *Server) handleListTemplates(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]any{"templates": templates.Catalog()})
}

// handleListThemes returns the known color palettes
func (s *Server) handleListThemes(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]any{"themes": theme.All(), "default": theme.DefaultName})
}

// handleCreateSession starts a session, optionally on a given template and color
func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	req := types.SelectTemplateRequest{TemplateID: string(types.TemplateProfessional)}
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	if err := req.Validate(); err != nil {
		s.writeError(w, fromValidator(err))
		return
	}

	sess := s.sessions.Create(types.TemplateID(req.TemplateID))
	if req.Color != "" {
		sess.SetColor(req.Color)
	}
	s.jsonResponse(w, http.StatusCreated, s.sessionResponse(sess))
}

// handleGetSession returns the session state
func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.lookupSession(w, r)
	if !ok {
		return
	}
	s.jsonResponse(w, http.StatusOK, s.sessionResponse(sess))
}

// handleDeleteSession ends a session
func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.lookupSession(w, r); !ok {
		return
	}
	s.sessions.Delete(r.PathValue("id"))
	w.WriteHeader(http.StatusNoContent)
}

// handleReplaceData replaces the session's CV data with a validated document
func (s *Server) handleReplaceData(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.lookupSession(w, r)
	if !ok {
		return
	}
	raw, err := readBody(w, r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if !json.Valid(raw) {
		s.writeError(w, &ErrValidation{Field: "body", Message: "invalid JSON"})
		return
	}
	data, err := schemas.DecodeCVData(raw)
	if err != nil {
		s.writeError(w, err)
		return
	}

	sess.ReplaceData(data)
	s.jsonResponse(w, http.StatusOK, s.sessionResponse(sess))
}

// handleSetColor changes the theme color without touching data or layout
func (s *Server) handleSetColor(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.lookupSession(w, r)
	if !ok {
		return
	}
	var req types.SetColorRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	if err := req.Validate(); err != nil {
		s.writeError(w, fromValidator(err))
		return
	}

	tpl := sess.SetColor(req.Color)
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"template": tpl,
		"theme":    theme.Resolve(tpl.Color),
	})
}

// handleSelectTemplate switches template. Entered data is discarded.
func (s *Server) handleSelectTemplate(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.lookupSession(w, r)
	if !ok {
		return
	}
	var req types.SelectTemplateRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	if err := req.Validate(); err != nil {
		s.writeError(w, fromValidator(err))
		return
	}

	sess.SelectTemplate(types.TemplateID(req.TemplateID))
	if req.Color != "" {
		sess.SetColor(req.Color)
	}
	s.jsonResponse(w, http.StatusOK, s.sessionResponse(sess))
}

// handlePreview renders the session for a container of the given width.
// format=html (default) returns a standalone document, format=json the tree.
func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.lookupSession(w, r)
	if !ok {
		return
	}

	q := r.URL.Query()
	var opts session.PreviewOptions
	if v := q.Get("width"); v != "" {
		width, err := strconv.ParseFloat(v, 64)
		if err != nil || width < 0 {
			s.writeError(w, &ErrValidation{Field: "width", Message: "must be a non-negative number"})
			return
		}
		opts.Width = width
	}
	if v := q.Get("thumbnail"); v != "" {
		thumb, err := strconv.ParseBool(v)
		if err != nil {
			s.writeError(w, &ErrValidation{Field: "thumbnail", Message: "must be a boolean"})
			return
		}
		opts.Thumbnail = thumb
	}

	preview := sess.Preview(opts)

	switch q.Get("format") {
	case "json":
		s.jsonResponse(w, http.StatusOK, PreviewResponse{
			Preview:    preview,
			Visibility: rendering.SectionVisibility(sess.Data()),
		})
	case "", "html":
		doc, err := rendering.DocumentString(preview.Tree, rendering.DocumentOptions{
			Title:      sess.Title(),
			FontHref:   s.fontHref,
			FrameStyle: preview.Transform,
		})
		if err != nil {
			s.writeError(w, err)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		if _, err := io.WriteString(w, doc); err != nil {
			log.Printf("Error writing preview: %v", err)
		}
	default:
		s.writeError(w, &ErrValidation{Field: "format", Message: "must be html or json"})
	}
}

// handleProgress returns the completeness report
func (s *Server) handleProgress(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.lookupSession(w, r)
	if !ok {
		return
	}
	s.jsonResponse(w, http.StatusOK, sess.Progress())
}

// exportJob builds the job for a session from an optional ExportRequest body.
func (s *Server) exportJob(w http.ResponseWriter, r *http.Request, sess *session.Session) (export.Job, error) {
	var req types.ExportRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return export.Job{}, err
	}
	if err := req.Validate(); err != nil {
		return export.Job{}, fromValidator(err)
	}
	return export.Job{
		Tree:      sess.ExportTree(),
		SessionID: sess.ID,
		Title:     sess.Title(),
		Filename:  req.Filename,
	}, nil
}

// outcomeStatus maps a non-success outcome to an HTTP status
func outcomeStatus(out export.Outcome) int {
	if out.Status == export.StatusRejected {
		return http.StatusConflict
	}
	if errors.Is(out.Err, export.ErrNothingToExport) {
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

// handleExport runs an export and returns the PDF
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.lookupSession(w, r)
	if !ok {
		return
	}
	job, err := s.exportJob(w, r, sess)
	if err != nil {
		s.writeError(w, err)
		return
	}

	out := s.pipeline.Export(r.Context(), job)
	if !out.OK() {
		s.jsonResponse(w, outcomeStatus(out), map[string]any{
			"error":  out.Message,
			"id":     out.ID,
			"status": out.Status,
		})
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", out.Filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(out.PDF)))
	w.Header().Set("X-Export-Id", out.ID)
	w.Header().Set("X-Page-Count", strconv.Itoa(out.Pages))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(out.PDF); err != nil {
		log.Printf("[EXPORT] %s: failed to write response: %v", out.ID, err)
	}
}

// handleExportStream runs an export and streams stage events over SSE.
// The final "outcome" event carries the PDF as base64 on success.
func (s *Server) handleExportStream(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.lookupSession(w, r)
	if !ok {
		return
	}
	job, err := s.exportJob(w, r, sess)
	if err != nil {
		s.writeError(w, err)
		return
	}

	sse, err := NewSSEWriter(w)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	ctx := r.Context()
	events := make(chan export.Event, 16)
	job.Notify = func(ev export.Event) {
		select {
		case events <- ev:
		case <-ctx.Done():
		}
	}
	done := s.pipeline.ExportAsync(ctx, job)

	for {
		select {
		case ev := <-events:
			if err := sse.WriteStage(ev); err != nil {
				log.Printf("[EXPORT] stream write failed: %v", err)
			}
		case out := <-done:
			// Events are sent before the outcome; flush what is buffered.
			for drained := false; !drained; {
				select {
				case ev := <-events:
					sse.WriteStage(ev) //nolint:errcheck
				default:
					drained = true
				}
			}
			sse.WriteOutcome(out)
			return
		}
	}
}

// handleListExports lists recorded exports from the audit log
func (s *Server) handleListExports(w http.ResponseWriter, r *http.Request) {
	if s.db == nil {
		s.errorResponse(w, http.StatusNotImplemented, "export history requires a database")
		return
	}

	q := r.URL.Query()
	filters := db.ExportFilters{SessionID: q.Get("session_id"), Status: q.Get("status")}
	if v := q.Get("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil || limit <= 0 || limit > 500 {
			s.writeError(w, &ErrValidation{Field: "limit", Message: "must be between 1 and 500"})
			return
		}
		filters.Limit = limit
	}
	if v := q.Get("since"); v != "" {
		since, err := time.Parse(time.RFC3339, v)
		if err != nil {
			s.writeError(w, &ErrValidation{Field: "since", Message: "must be RFC3339"})
			return
		}
		filters.Since = since
	}

	records, err := s.db.ListExports(r.Context(), filters)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if records == nil {
		records = []db.ExportRecord{}
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"exports": records})
}
