package repositories

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"shortr/internal/entities"
)

type IPStatRepo struct {
	db *gorm.DB
}

func NewIPStatRepo(db *gorm.DB) *IPStatRepo {
	return &IPStatRepo{db: db}
}

func (r *IPStatRepo) WithTx(tx *gorm.DB) *IPStatRepo {
	return &IPStatRepo{db: tx}
}

// UpsertClick inserts the (url, ip, date) aggregate with count 1, or
// increments the existing row's counter. Expressed as one conditional
// statement so concurrent identical-key writes cannot lose updates.
func (r *IPStatRepo) UpsertClick(ctx context.Context, shortURLID uint, ip, date string) error {
	stat := entities.IPStat{
		ShortURLID: shortURLID,
		IPAddress:  ip,
		ClickDate:  date,
		ClickCount: 1,
	}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "short_url_id"},
			{Name: "ip_address"},
			{Name: "click_date"},
		},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"click_count": gorm.Expr("click_count + 1"),
		}),
	}).Create(&stat).Error
	if err != nil {
		return fmt.Errorf("failed to upsert ip click for url %d: %w", shortURLID, err)
	}
	return nil
}

// ListDistinctIPs returns every IP address ever recorded for a short
// URL, across all dates.
func (r *IPStatRepo) ListDistinctIPs(ctx context.Context, shortURLID uint) ([]string, error) {
	var ips []string
	err := r.db.WithContext(ctx).Model(&entities.IPStat{}).
		Where("short_url_id = ?", shortURLID).
		Distinct().
		Pluck("ip_address", &ips).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list ips for url %d: %w", shortURLID, err)
	}
	return ips, nil
}

func (r *IPStatRepo) CountForDate(ctx context.Context, shortURLID uint, ip, date string) (int64, error) {
	var stat entities.IPStat
	err := r.db.WithContext(ctx).
		Where("short_url_id = ? AND ip_address = ? AND click_date = ?", shortURLID, ip, date).
		First(&stat).Error
	if err == gorm.ErrRecordNotFound {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return stat.ClickCount, nil
}
