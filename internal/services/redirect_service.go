package services

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"shortr/internal/entities"
	"shortr/internal/repositories"
)

// RedirectService resolves short codes and records analytics for each
// resolution: one click-counter increment and one (url, ip, date)
// aggregate upsert, committed together or not at all.
type RedirectService struct {
	db      *gorm.DB
	urls    *repositories.URLRepo
	ipStats *repositories.IPStatRepo
}

func NewRedirectService(db *gorm.DB, urls *repositories.URLRepo, ipStats *repositories.IPStatRepo) *RedirectService {
	return &RedirectService{db: db, urls: urls, ipStats: ipStats}
}

// Resolve returns the original URL for code, incrementing its click
// counter and the caller's per-day IP aggregate in one transaction.
// An unknown code returns ErrNotFound and performs no writes.
func (s *RedirectService) Resolve(ctx context.Context, code, clientIP string, today time.Time) (string, error) {
	var target string
	date := entities.DateKey(today)

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		urls := s.urls.WithTx(tx)
		ipStats := s.ipStats.WithTx(tx)

		u, err := urls.GetByCode(ctx, code)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		if err := urls.IncrementClicks(ctx, u.ID); err != nil {
			return err
		}
		if err := ipStats.UpsertClick(ctx, u.ID, clientIP, date); err != nil {
			return err
		}

		target = u.OriginalURL
		return nil
	})
	if err != nil {
		return "", err
	}
	return target, nil
}
