package database

import (
	"github.com/quartzlab/tipboard/internal/database/service"
	"go.uber.org/zap"
)

// Service provides access to all business logic services.
type Service struct {
	reputation *service.ReputationService
	vote       *service.VoteService
	tip        *service.TipService
	auth       *service.AuthService
}

// NewService creates a new service instance with all services.
func NewService(repository *Repository, logger *zap.Logger) *Service {
	userModel := repository.User()
	tipModel := repository.Tip()
	voteModel := repository.Vote()

	reputationService := service.NewReputation(voteModel, userModel, logger)

	return &Service{
		reputation: reputationService,
		vote:       service.NewVote(tipModel, voteModel, reputationService, logger),
		tip:        service.NewTip(tipModel, voteModel, reputationService, logger),
		auth:       service.NewAuth(userModel, logger),
	}
}

// Reputation returns the reputation service.
func (s *Service) Reputation() *service.ReputationService {
	return s.reputation
}

// Vote returns the vote service.
func (s *Service) Vote() *service.VoteService {
	return s.vote
}

// Tip returns the tip service.
func (s *Service) Tip() *service.TipService {
	return s.tip
}

// Auth returns the auth service.
func (s *Service) Auth() *service.AuthService {
	return s.auth
}
