package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"

	"github.com/matzehuels/folio/pkg/buildinfo"
	"github.com/matzehuels/folio/pkg/errors"
	"github.com/matzehuels/folio/pkg/observability"
	"github.com/matzehuels/folio/pkg/pipeline"
	"github.com/matzehuels/folio/pkg/style"
)

// contentTypes maps output formats to media types.
var contentTypes = map[string]string{
	pipeline.FormatPDF:  "application/pdf",
	pipeline.FormatSVG:  "image/svg+xml",
	pipeline.FormatPNG:  "image/png",
	pipeline.FormatJSON: "application/json",
}

type storedDocument struct {
	ID      string
	Created time.Time
	Result  *pipeline.Result
}

// DocumentResponse describes a rendered document.
type DocumentResponse struct {
	ID           string            `json:"id"`
	Pages        int               `json:"pages"`
	Formats      []string          `json:"formats"`
	DocumentHash string            `json:"document_hash"`
	Cached       bool              `json:"cached"`
	Created      time.Time         `json:"created"`
	Links        map[string]string `json:"links"`
}

// StyleResponse is one resolved style.
type StyleResponse struct {
	Name       string           `json:"name"`
	Definition style.Definition `json:"definition"`
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, struct {
		Status string         `json:"status"`
		Build  buildinfo.Info `json:"build"`
	}{"ok", buildinfo.Get()})
}

func (s *Server) handleStyles(w http.ResponseWriter, r *http.Request) {
	names := s.cascade.AvailableStyles()
	out := make([]StyleResponse, 0, len(names))
	for _, name := range names {
		d, err := s.cascade.Resolve(name)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		out = append(out, StyleResponse{Name: name, Definition: d})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleStyle(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	d, err := s.cascade.Resolve(name)
	if err != nil {
		s.writeErrorStatus(w, r, http.StatusNotFound, err)
		return
	}
	writeJSON(w, http.StatusOK, StyleResponse{Name: name, Definition: d})
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	var opts pipeline.Options
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, s.maxBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&opts); err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request"))
		return
	}
	opts.Template = s.template

	res, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	doc := &storedDocument{ID: uuid.NewString(), Created: time.Now().UTC(), Result: res}
	s.docs.Set(doc.ID, doc, gocache.DefaultExpiration)
	s.logger.Info("rendered document", "id", doc.ID, "pages", res.Pages, "cached", res.CacheInfo.RenderHit)

	w.Header().Set("Location", "/documents/"+doc.ID)
	writeJSON(w, http.StatusCreated, describe(doc, opts.Formats))
}

func (s *Server) handleDocument(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := uuid.Parse(id); err != nil {
		s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "invalid document id %q", id))
		return
	}
	v, ok := s.docs.Get(id)
	if !ok {
		s.writeError(w, r, errors.New(errors.ErrCodeNotFound, "document %s not found or expired", id))
		return
	}
	doc := v.(*storedDocument)

	format := r.URL.Query().Get("format")
	if format == "" {
		writeJSON(w, http.StatusOK, describe(doc, formatsOf(doc.Result)))
		return
	}
	data, ok := doc.Result.Artifacts[format]
	if !ok {
		s.writeError(w, r, errors.New(errors.ErrCodeNotFound, "document %s has no %s output", id, format))
		return
	}
	w.Header().Set("Content-Type", contentTypes[format])
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func describe(doc *storedDocument, formats []string) DocumentResponse {
	links := make(map[string]string, len(formats))
	for _, f := range formats {
		links[f] = "/documents/" + doc.ID + "?format=" + f
	}
	return DocumentResponse{
		ID:           doc.ID,
		Pages:        doc.Result.Pages,
		Formats:      formats,
		DocumentHash: doc.Result.DocumentHash,
		Cached:       doc.Result.CacheInfo.RenderHit,
		Created:      doc.Created,
		Links:        links,
	}
}

func formatsOf(res *pipeline.Result) []string {
	out := make([]string, 0, len(res.Artifacts))
	for _, f := range []string{pipeline.FormatPDF, pipeline.FormatSVG, pipeline.FormatPNG, pipeline.FormatJSON} {
		if _, ok := res.Artifacts[f]; ok {
			out = append(out, f)
		}
	}
	return out
}

// statusFor maps error codes to HTTP status codes.
func statusFor(err error) int {
	switch errors.GetCode(err) {
	case errors.ErrCodeConfiguration, errors.ErrCodeShape, errors.ErrCodeUnknownStyle:
		return http.StatusUnprocessableEntity
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidFormat, errors.ErrCodeInvalidPath:
		return http.StatusBadRequest
	case errors.ErrCodeNotFound:
		return http.StatusNotFound
	case errors.ErrCodeUnsupported:
		return http.StatusNotImplemented
	}
	return http.StatusInternalServerError
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	s.writeErrorStatus(w, r, statusFor(err), err)
}

func (s *Server) writeErrorStatus(w http.ResponseWriter, r *http.Request, status int, err error) {
	observability.HTTP().OnError(r.Context(), r.Method, r.URL.Path, err)
	code := string(errors.GetCode(err))
	if code == "" {
		code = string(errors.ErrCodeInternal)
	}
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "path", r.URL.Path, "err", err)
	}
	writeJSON(w, status, ErrorResponse{Code: code, Message: errors.UserMessage(err)})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
