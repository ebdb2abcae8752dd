package repositories

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"shortr/internal/entities"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	// A named shared-cache database so every pooled connection sees
	// the same in-memory store.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, gdb.AutoMigrate(&entities.ShortURL{}, &entities.IPStat{}))

	return gdb
}

func seedURL(t *testing.T, gdb *gorm.DB, code, original string) *entities.ShortURL {
	t.Helper()

	u := &entities.ShortURL{
		Code:        code,
		OriginalURL: original,
		CreatedAt:   time.Now().UTC(),
	}
	require.NoError(t, gdb.Create(u).Error)
	return u
}

func TestIncrementClicks(t *testing.T) {
	gdb := newTestDB(t)
	repo := NewURLRepo(gdb)
	ctx := context.Background()

	u := seedURL(t, gdb, "abcdef12", "https://example.com")

	require.NoError(t, repo.IncrementClicks(ctx, u.ID))
	require.NoError(t, repo.IncrementClicks(ctx, u.ID))

	var got entities.ShortURL
	require.NoError(t, gdb.First(&got, u.ID).Error)
	assert.Equal(t, int64(2), got.Clicks)
}

func TestIncrementClicksUnknownID(t *testing.T) {
	gdb := newTestDB(t)
	repo := NewURLRepo(gdb)

	err := repo.IncrementClicks(context.Background(), 9999)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestGetByCodeNotFound(t *testing.T) {
	gdb := newTestDB(t)
	repo := NewURLRepo(gdb)

	_, err := repo.GetByCode(context.Background(), "missing1")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	_, _, err = repo.FindClicksAndID(context.Background(), "missing1")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestExistsCode(t *testing.T) {
	gdb := newTestDB(t)
	repo := NewURLRepo(gdb)
	ctx := context.Background()

	seedURL(t, gdb, "abcdef12", "https://example.com")

	exists, err := repo.ExistsCode(ctx, "abcdef12")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsCode(ctx, "other123")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestUpsertClickSameKeyAggregates(t *testing.T) {
	gdb := newTestDB(t)
	repo := NewIPStatRepo(gdb)
	ctx := context.Background()

	u := seedURL(t, gdb, "abcdef12", "https://example.com")

	require.NoError(t, repo.UpsertClick(ctx, u.ID, "127.0.0.1", "2026-08-31"))
	require.NoError(t, repo.UpsertClick(ctx, u.ID, "127.0.0.1", "2026-08-31"))

	var rows int64
	require.NoError(t, gdb.Model(&entities.IPStat{}).Where("short_url_id = ?", u.ID).Count(&rows).Error)
	assert.Equal(t, int64(1), rows)

	count, err := repo.CountForDate(ctx, u.ID, "127.0.0.1", "2026-08-31")
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestUpsertClickDistinctDates(t *testing.T) {
	gdb := newTestDB(t)
	repo := NewIPStatRepo(gdb)
	ctx := context.Background()

	u := seedURL(t, gdb, "abcdef12", "https://example.com")

	require.NoError(t, repo.UpsertClick(ctx, u.ID, "127.0.0.1", "2026-08-30"))
	require.NoError(t, repo.UpsertClick(ctx, u.ID, "127.0.0.1", "2026-08-31"))

	var rows int64
	require.NoError(t, gdb.Model(&entities.IPStat{}).Where("short_url_id = ?", u.ID).Count(&rows).Error)
	assert.Equal(t, int64(2), rows)

	for _, date := range []string{"2026-08-30", "2026-08-31"} {
		count, err := repo.CountForDate(ctx, u.ID, "127.0.0.1", date)
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	}
}

func TestListDistinctIPs(t *testing.T) {
	gdb := newTestDB(t)
	repo := NewIPStatRepo(gdb)
	ctx := context.Background()

	u := seedURL(t, gdb, "abcdef12", "https://example.com")

	require.NoError(t, repo.UpsertClick(ctx, u.ID, "127.0.0.1", "2026-08-30"))
	require.NoError(t, repo.UpsertClick(ctx, u.ID, "127.0.0.1", "2026-08-31"))
	require.NoError(t, repo.UpsertClick(ctx, u.ID, "192.168.1.1", "2026-08-31"))

	ips, err := repo.ListDistinctIPs(ctx, u.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"127.0.0.1", "192.168.1.1"}, ips)
}

func TestListWithStats(t *testing.T) {
	gdb := newTestDB(t)
	urlRepo := NewURLRepo(gdb)
	statRepo := NewIPStatRepo(gdb)
	ctx := context.Background()

	u := seedURL(t, gdb, "abcdef12", "https://example.com")
	require.NoError(t, urlRepo.IncrementClicks(ctx, u.ID))
	require.NoError(t, statRepo.UpsertClick(ctx, u.ID, "127.0.0.1", "2026-08-31"))

	rows, err := urlRepo.ListWithStats(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "abcdef12", rows[0].Code)
	assert.Equal(t, "https://example.com", rows[0].OriginalURL)
	assert.Equal(t, int64(1), rows[0].Clicks)
	assert.Equal(t, int64(1), rows[0].UniqueVisitors)
}
