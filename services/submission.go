// Package services implements registration submissions, the registration
// cap and the payment protocol on top of the repository, blob store and
// payment gateway.
package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path"
	"path/filepath"
	"strings"
	"time"

	"startup-registration/common"
	"startup-registration/metrics"
	"startup-registration/models"
	"startup-registration/repository"
	"startup-registration/storage"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// uploadDirs maps each accepted upload field to its blob key prefix.
var uploadDirs = map[string]string{
	models.FieldVideo:         "uploads/videos",
	models.FieldPilotEvidence: "uploads/pilotEvidence",
}

// FileUpload is one file attached to a submission.
type FileUpload struct {
	Field       string
	Filename    string
	ContentType string
	Size        int64
	Open        func() (io.ReadCloser, error)
}

// SubmissionService validates and persists registrations.
type SubmissionService struct {
	repo     repository.SubmissionRepository
	blobs    storage.BlobStore
	validate *validator.Validate
	metrics  *metrics.Metrics
	log      *slog.Logger

	now     func() time.Time
	newName func() string
}

func NewSubmissionService(repo repository.SubmissionRepository, blobs storage.BlobStore, m *metrics.Metrics, log *slog.Logger) *SubmissionService {
	return &SubmissionService{
		repo:     repo,
		blobs:    blobs,
		validate: NewValidator(),
		metrics:  m,
		log:      log,
		now:      time.Now,
		newName:  uuid.NewString,
	}
}

// Submit stores the uploaded files, then inserts the submission with
// paymentStatus=false. Field names are checked before anything is written.
// A failed insert leaves the already written files in place.
func (s *SubmissionService) Submit(ctx context.Context, fields map[string]string, files []FileUpload) (*models.Submission, error) {
	sub, err := s.build(fields, files)
	if err != nil {
		s.metrics.SubmissionsTotal.WithLabelValues(metrics.ResultRejected).Inc()
		return nil, err
	}

	for _, f := range files {
		key, err := s.store(ctx, f)
		if err != nil {
			s.metrics.SubmissionsTotal.WithLabelValues(metrics.ResultError).Inc()
			return nil, err
		}
		switch f.Field {
		case models.FieldVideo:
			sub.Video = key
		case models.FieldPilotEvidence:
			sub.PilotEvidence = key
		}
	}

	if err := s.repo.Insert(ctx, sub); err != nil {
		s.metrics.SubmissionsTotal.WithLabelValues(metrics.ResultError).Inc()
		if sub.Video != "" || sub.PilotEvidence != "" {
			s.log.WarnContext(ctx, "submission insert failed after upload, blobs left orphaned",
				"video", sub.Video, "pilot_evidence", sub.PilotEvidence)
		}
		return nil, err
	}

	s.metrics.SubmissionsTotal.WithLabelValues(metrics.ResultSuccess).Inc()
	s.log.InfoContext(ctx, "submission saved", "id", sub.ID.Hex(), "email", sub.Email)
	return sub, nil
}

func (s *SubmissionService) build(fields map[string]string, files []FileUpload) (*models.Submission, error) {
	seen := make(map[string]bool, len(files))
	for _, f := range files {
		if _, ok := uploadDirs[f.Field]; !ok {
			return nil, fmt.Errorf("%w: invalid file field %q", common.ErrValidation, f.Field)
		}
		if seen[f.Field] {
			return nil, fmt.Errorf("%w: only one file allowed for %q", common.ErrValidation, f.Field)
		}
		seen[f.Field] = true
	}

	sub := &models.Submission{}
	slots := sub.TextFields()
	for name, value := range fields {
		slot, ok := slots[name]
		if !ok {
			return nil, fmt.Errorf("%w: unknown form field %q", common.ErrValidation, name)
		}
		*slot = value
	}
	sub.Email = strings.TrimSpace(sub.Email)

	if err := ValidateStruct(s.validate, sub); err != nil {
		return nil, err
	}

	sub.PaymentStatus = false
	sub.CreatedAt = s.now().UTC()
	return sub, nil
}

func (s *SubmissionService) store(ctx context.Context, f FileUpload) (string, error) {
	key := path.Join(uploadDirs[f.Field], s.newName()+extension(f.Filename))

	rc, err := f.Open()
	if err != nil {
		return "", fmt.Errorf("%w: open upload %q: %w", common.ErrPersistence, f.Field, err)
	}
	defer rc.Close()

	if err := s.blobs.Save(ctx, key, f.ContentType, rc, f.Size); err != nil {
		return "", err
	}

	s.metrics.UploadBytesTotal.WithLabelValues(f.Field).Add(float64(max(f.Size, 0)))
	s.log.DebugContext(ctx, "upload stored", "field", f.Field, "key", key, "size", f.Size)
	return key, nil
}

// ListAll returns every submission in insertion order.
func (s *SubmissionService) ListAll(ctx context.Context) ([]models.Submission, error) {
	return s.repo.FindAll(ctx)
}

// extension keeps a short alphanumeric file extension, lowercased.
func extension(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	if len(ext) < 2 || len(ext) > 10 {
		return ""
	}
	for _, c := range ext[1:] {
		if (c < 'a' || c > 'z') && (c < '0' || c > '9') {
			return ""
		}
	}
	return ext
}
