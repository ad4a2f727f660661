// Package repository persists registration submissions.
package repository

import (
	"context"

	"startup-registration/models"
)

// SubmissionRepository is the persistence contract for submissions.
// Implementations return errors wrapping common.ErrNotFound for a missing
// email and common.ErrPersistence for storage failures.
type SubmissionRepository interface {
	Insert(ctx context.Context, s *models.Submission) error
	FindAll(ctx context.Context) ([]models.Submission, error)
	FindByEmail(ctx context.Context, email string) (*models.Submission, error)
	// MarkPaidByEmail sets paymentStatus=true on the first submission
	// with this email in a single atomic step and returns it as updated.
	// transitioned is false when the submission was already paid.
	MarkPaidByEmail(ctx context.Context, email string) (s *models.Submission, transitioned bool, err error)
	Count(ctx context.Context) (int64, error)
}
