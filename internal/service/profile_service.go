package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/noah-isme/writerpro-api/internal/dto"
	"github.com/noah-isme/writerpro-api/internal/repository"
)

// ProfileService exposes the learner's skill profile.
type ProfileService interface {
	Get(ctx context.Context, userID uint) (dto.ProfileResponse, error)
}

type profileService struct {
	learners repository.LearnerRepository
	logger   zerolog.Logger
}

// NewProfileService builds the profile service.
func NewProfileService(learners repository.LearnerRepository, logger zerolog.Logger) ProfileService {
	return &profileService{
		learners: learners,
		logger:   logger.With().Str("component", "profile_service").Logger(),
	}
}

func (s *profileService) Get(ctx context.Context, userID uint) (dto.ProfileResponse, error) {
	learner, err := s.learners.GetOrCreate(ctx, userID)
	if err != nil {
		return dto.ProfileResponse{}, err
	}
	return dto.NewProfileResponse(learner), nil
}
