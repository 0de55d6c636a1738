package reporting

import (
	"context"

	"github.com/vfg2006/captive-portal-api/infrastructure/repository"
	"github.com/vfg2006/captive-portal-api/internal/domain"
	"github.com/vfg2006/captive-portal-api/internal/usecases/advertising"
)

type Reporter interface {
	Stats(ctx context.Context) (*domain.Stats, error)
	AdStats(ctx context.Context) ([]domain.AdStats, error)
}

type Service struct {
	userRepo  repository.UserRepository
	clickRepo repository.AdClickRepository
	ledger    advertising.Ledger
}

func NewService(userRepo repository.UserRepository, clickRepo repository.AdClickRepository, ledger advertising.Ledger) Reporter {
	return &Service{
		userRepo:  userRepo,
		clickRepo: clickRepo,
		ledger:    ledger,
	}
}

// Stats reads a snapshot of users, ads and clicks.
func (s *Service) Stats(ctx context.Context) (*domain.Stats, error) {
	users, err := s.userRepo.ListUsers(ctx)
	if err != nil {
		return nil, err
	}

	ads, err := s.ledger.List(ctx)
	if err != nil {
		return nil, err
	}

	clicks, err := s.clickRepo.ListClicks(ctx)
	if err != nil {
		return nil, err
	}

	stats := domain.ComputeStats(users, ads, clicks)
	return &stats, nil
}

func (s *Service) AdStats(ctx context.Context) ([]domain.AdStats, error) {
	ads, err := s.ledger.List(ctx)
	if err != nil {
		return nil, err
	}

	return domain.ComputeAdStats(ads), nil
}
