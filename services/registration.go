package services

import (
	"context"

	"startup-registration/models"
	"startup-registration/repository"
)

// MaxRegistrations is the number of submissions after which registration
// is reported as full.
const MaxRegistrations = 45

// RegistrationService answers whether the registration cap is reached.
type RegistrationService struct {
	repo repository.SubmissionRepository
}

func NewRegistrationService(repo repository.SubmissionRepository) *RegistrationService {
	return &RegistrationService{repo: repo}
}

// CheckCap counts the stored submissions. It never writes.
func (s *RegistrationService) CheckCap(ctx context.Context) (models.RegistrationStatus, error) {
	n, err := s.repo.Count(ctx)
	if err != nil {
		return models.RegistrationStatus{}, err
	}
	return models.RegistrationStatus{MaxReached: n >= MaxRegistrations, Count: n}, nil
}
