package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"shortr/internal/repositories"
)

type Stats struct {
	Clicks    int64
	UniqueIPs []string
}

// StatsService aggregates analytics for a short code. Pure read: no
// cache, no rate limiting, no writes.
type StatsService struct {
	urls    *repositories.URLRepo
	ipStats *repositories.IPStatRepo
}

func NewStatsService(urls *repositories.URLRepo, ipStats *repositories.IPStatRepo) *StatsService {
	return &StatsService{urls: urls, ipStats: ipStats}
}

func (s *StatsService) Stats(ctx context.Context, code string) (*Stats, error) {
	id, clicks, err := s.urls.FindClicksAndID(ctx, code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	ips, err := s.ipStats.ListDistinctIPs(ctx, id)
	if err != nil {
		return nil, err
	}
	if ips == nil {
		ips = []string{}
	}

	return &Stats{Clicks: clicks, UniqueIPs: ips}, nil
}
