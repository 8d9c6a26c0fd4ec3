package handlers

import (
	"io"
	"mime/multipart"
	"net"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/oasis/talentboard/internal/domain"
	"github.com/oasis/talentboard/internal/service"
)

const (
	maxSubmissionBytes     = 64 << 20
	multipartMemoryBytes   = 8 << 20
	videoFormField         = "video"
	resumeFormField        = "resume"
	applicationContentType = "multipart/form-data"
)

// ApplicationsHandler accepts multi-modal application submissions.
type ApplicationsHandler struct {
	submissions *service.SubmissionService
	logger      *zap.Logger
}

func NewApplicationsHandler(submissions *service.SubmissionService, logger *zap.Logger) *ApplicationsHandler {
	return &ApplicationsHandler{submissions: submissions, logger: logger}
}

// Create handles POST /v1/applications as multipart form data.
func (h *ApplicationsHandler) Create(w http.ResponseWriter, r *http.Request) {
	if !strings.HasPrefix(r.Header.Get("Content-Type"), applicationContentType) {
		writeError(w, r, http.StatusUnsupportedMediaType, "invalid_request", "expected multipart form data")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxSubmissionBytes)
	if err := r.ParseMultipartForm(multipartMemoryBytes); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid_request", "malformed or oversized form data")
		return
	}
	defer func() {
		_ = r.MultipartForm.RemoveAll()
	}()

	ref := service.JobRef{
		ID:      r.FormValue("job_id"),
		Slug:    r.FormValue("job_slug"),
		Title:   r.FormValue("job_title"),
		Company: r.FormValue("job_company"),
	}

	payload := service.SubmissionPayload{
		Name:         r.FormValue("name"),
		Email:        r.FormValue("email"),
		Age:          r.FormValue("age"),
		WorkAuth:     r.FormValue("work_auth"),
		Consent:      r.FormValue("consent") == "true",
		ConsentIP:    clientAddress(r),
		Mode:         domain.SubmissionMode(r.FormValue("mode")),
		TextResponse: r.FormValue("text_response"),
	}

	video, err := readUpload(r, videoFormField)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid_request", "could not read video upload")
		return
	}
	payload.Video = video

	resume, err := readUpload(r, resumeFormField)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid_request", "could not read resume upload")
		return
	}
	payload.Resume = resume

	result, err := h.submissions.Submit(r.Context(), ref, payload)
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, result)
}

// readUpload materializes one named form file; a missing part is not an
// error, the service layer decides whether the mode requires it.
func readUpload(r *http.Request, field string) (*service.Upload, error) {
	file, header, err := r.FormFile(field)
	if err != nil {
		if err == http.ErrMissingFile {
			return nil, nil
		}
		return nil, err
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, err
	}
	return &service.Upload{
		Filename:    header.Filename,
		ContentType: partContentType(header),
		Data:        data,
	}, nil
}

func partContentType(header *multipart.FileHeader) string {
	contentType := header.Header.Get("Content-Type")
	if index := strings.Index(contentType, ";"); index >= 0 {
		contentType = contentType[:index]
	}
	return strings.TrimSpace(contentType)
}

func clientAddress(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		first, _, _ := strings.Cut(forwarded, ",")
		return strings.TrimSpace(first)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
