package repository

import (
	"context"
	"fmt"
	"sync"

	"startup-registration/common"
	"startup-registration/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemorySubmissionRepository keeps submissions in process memory, in
// insertion order. It backs STORE_BACKEND=memory and the tests.
type MemorySubmissionRepository struct {
	mu          sync.RWMutex
	submissions []models.Submission
}

func NewMemorySubmissionRepository() *MemorySubmissionRepository {
	return &MemorySubmissionRepository{}
}

func (r *MemorySubmissionRepository) Insert(_ context.Context, s *models.Submission) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if s.ID.IsZero() {
		s.ID = primitive.NewObjectID()
	}
	r.submissions = append(r.submissions, *s)
	return nil
}

func (r *MemorySubmissionRepository) FindAll(_ context.Context) ([]models.Submission, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Submission, len(r.submissions))
	copy(out, r.submissions)
	return out, nil
}

func (r *MemorySubmissionRepository) FindByEmail(_ context.Context, email string) (*models.Submission, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := range r.submissions {
		if r.submissions[i].Email == email {
			s := r.submissions[i]
			return &s, nil
		}
	}
	return nil, fmt.Errorf("%w: submission for %s", common.ErrNotFound, email)
}

func (r *MemorySubmissionRepository) MarkPaidByEmail(_ context.Context, email string) (*models.Submission, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.submissions {
		if r.submissions[i].Email == email {
			transitioned := !r.submissions[i].PaymentStatus
			r.submissions[i].PaymentStatus = true
			s := r.submissions[i]
			return &s, transitioned, nil
		}
	}
	return nil, false, fmt.Errorf("%w: submission for %s", common.ErrNotFound, email)
}

func (r *MemorySubmissionRepository) Count(_ context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return int64(len(r.submissions)), nil
}
