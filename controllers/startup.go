package controllers

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"startup-registration/common"
	"startup-registration/services"
)

// multipartMemory is how much of a multipart body is kept in memory
// before spilling file parts to temporary files.
const multipartMemory = 32 << 20

// StartupController handles registration submissions and their read endpoints
type StartupController struct {
	Submissions    *services.SubmissionService
	Registration   *services.RegistrationService
	MaxUploadBytes int64
	Log            *slog.Logger
}

// NewStartupController creates a new StartupController
func NewStartupController(submissions *services.SubmissionService, registration *services.RegistrationService, maxUploadBytes int64, log *slog.Logger) *StartupController {
	return &StartupController{
		Submissions:    submissions,
		Registration:   registration,
		MaxUploadBytes: maxUploadBytes,
		Log:            log,
	}
}

// Home answers the root path so load balancers have something to probe
func (sc *StartupController) Home(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if _, err := io.WriteString(w, "Hello World"); err != nil {
		sc.Log.WarnContext(r.Context(), "error writing response", "error", err)
	}
}

// Submit stores a multipart registration form with optional video and pilotEvidence files
func (sc *StartupController) Submit(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, sc.MaxUploadBytes)
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeJSON(w, http.StatusRequestEntityTooLarge, map[string]string{"message": "Upload too large"})
			return
		}
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Invalid form data"})
		return
	}
	defer r.MultipartForm.RemoveAll()

	fields := make(map[string]string, len(r.MultipartForm.Value))
	for name, values := range r.MultipartForm.Value {
		if len(values) != 1 {
			writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Field " + name + " must be sent once"})
			return
		}
		fields[name] = values[0]
	}

	var files []services.FileUpload
	for field, headers := range r.MultipartForm.File {
		for _, fh := range headers {
			files = append(files, services.FileUpload{
				Field:       field,
				Filename:    fh.Filename,
				ContentType: fh.Header.Get("Content-Type"),
				Size:        fh.Size,
				Open: func() (io.ReadCloser, error) {
					return fh.Open()
				},
			})
		}
	}

	_, err := sc.Submissions.Submit(r.Context(), fields, files)
	switch {
	case err == nil:
		writeJSON(w, http.StatusCreated, map[string]string{"message": "Form data saved successfully"})
	case errors.Is(err, common.ErrValidation):
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": err.Error()})
	default:
		sc.Log.ErrorContext(r.Context(), "error saving form data", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"message": "Error saving form data"})
	}
}

// GetStartups returns every stored registration
func (sc *StartupController) GetStartups(w http.ResponseWriter, r *http.Request) {
	registrations, err := sc.Submissions.ListAll(r.Context())
	if err != nil {
		sc.Log.ErrorContext(r.Context(), "error fetching registrations", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"message": "Error fetching registrations"})
		return
	}
	writeJSON(w, http.StatusOK, registrations)
}

// RegistrationStatus reports whether the registration cap has been reached
func (sc *StartupController) RegistrationStatus(w http.ResponseWriter, r *http.Request) {
	status, err := sc.Registration.CheckCap(r.Context())
	if err != nil {
		sc.Log.ErrorContext(r.Context(), "error fetching registration status", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"message": "Error fetching registration status"})
		return
	}
	writeJSON(w, http.StatusOK, status)
}
