package repositories

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"shortr/internal/entities"
)

type URLRepo struct {
	db *gorm.DB
}

func NewURLRepo(db *gorm.DB) *URLRepo {
	return &URLRepo{db: db}
}

// WithTx returns a repo bound to the given transaction handle, so
// multi-step writes share one commit/rollback scope.
func (r *URLRepo) WithTx(tx *gorm.DB) *URLRepo {
	return &URLRepo{db: tx}
}

func (r *URLRepo) Create(ctx context.Context, u *entities.ShortURL) error {
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *URLRepo) GetByCode(ctx context.Context, code string) (*entities.ShortURL, error) {
	var u entities.ShortURL
	if err := r.db.WithContext(ctx).Where("code = ?", code).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *URLRepo) ExistsCode(ctx context.Context, code string) (bool, error) {
	var u entities.ShortURL
	err := r.db.WithContext(ctx).Select("id").Where("code = ?", code).First(&u).Error
	if err == nil {
		return true, nil
	}
	if err == gorm.ErrRecordNotFound {
		return false, nil
	}
	return false, err
}

// IncrementClicks bumps the click counter with a store-side expression.
// The increment must never be a read-modify-write in application code,
// or concurrent redirects for the same code would lose counts.
func (r *URLRepo) IncrementClicks(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Model(&entities.ShortURL{}).
		Where("id = ?", id).
		UpdateColumn("clicks", gorm.Expr("clicks + 1"))
	if res.Error != nil {
		return fmt.Errorf("failed to increment clicks for url %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// FindClicksAndID loads just the identifier and counter for a code.
func (r *URLRepo) FindClicksAndID(ctx context.Context, code string) (uint, int64, error) {
	var u entities.ShortURL
	err := r.db.WithContext(ctx).Select("id", "clicks").Where("code = ?", code).First(&u).Error
	if err != nil {
		return 0, 0, err
	}
	return u.ID, u.Clicks, nil
}

type ListRow struct {
	Code           string
	OriginalURL    string
	CreatedAt      time.Time
	Clicks         int64
	UniqueVisitors int64
}

func (r *URLRepo) ListWithStats(ctx context.Context) ([]ListRow, error) {
	var rows []ListRow
	err := r.db.WithContext(ctx).Table("short_urls").
		Select(`
			short_urls.code,
			short_urls.original_url,
			short_urls.created_at,
			short_urls.clicks,
			COUNT(DISTINCT ip_stats.ip_address) AS unique_visitors
		`).
		Joins("LEFT JOIN ip_stats ON ip_stats.short_url_id = short_urls.id").
		Group("short_urls.id").
		Order("short_urls.created_at DESC").
		Scan(&rows).Error

	return rows, err
}
