package contact

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ZekeHyperByte/seltronik-website-sub000/internal/common"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestRepository(t *testing.T) Repository {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&Message{}))
	return NewGORMRepository(db)
}

func seedMessages(t *testing.T, repo Repository, subjects ...string) []*Message {
	t.Helper()
	base := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	out := make([]*Message, 0, len(subjects))
	for i, subject := range subjects {
		m := &Message{
			Name:      "Budi",
			Email:     "budi@example.com",
			Subject:   subject,
			Body:      "Mohon penawaran harga untuk traffic light.",
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
		}
		require.NoError(t, repo.Create(context.Background(), m))
		out = append(out, m)
	}
	return out
}

func TestGORMRepository_ListNewestFirst(t *testing.T) {
	repo := newTestRepository(t)
	seedMessages(t, repo, "first", "second", "third")

	messages, pagination, err := repo.List(context.Background(), 1, 2, false)
	require.NoError(t, err)
	require.Len(t, messages, 2)
	assert.Equal(t, "third", messages[0].Subject)
	assert.Equal(t, "second", messages[1].Subject)
	assert.Equal(t, int64(3), pagination.TotalItems)
	assert.Equal(t, 2, pagination.TotalPages)
}

func TestGORMRepository_ReadState(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()
	seeded := seedMessages(t, repo, "a", "b", "c")

	require.NoError(t, repo.MarkAsRead(ctx, seeded[0].ID))
	require.NoError(t, repo.MarkAsRead(ctx, seeded[0].ID), "marking twice is fine")

	unread, err := repo.CountUnread(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), unread)

	messages, _, err := repo.List(ctx, 1, 10, true)
	require.NoError(t, err)
	assert.Len(t, messages, 2)

	changed, err := repo.MarkAllAsRead(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), changed)

	unread, err = repo.CountUnread(ctx)
	require.NoError(t, err)
	assert.Zero(t, unread)
}

func TestGORMRepository_NotFound(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	err := repo.MarkAsRead(ctx, uuid.New())
	assert.True(t, errors.Is(err, common.ErrNotFound))

	err = repo.Delete(ctx, uuid.New())
	assert.True(t, errors.Is(err, common.ErrNotFound))
}

func TestGORMRepository_Delete(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()
	seeded := seedMessages(t, repo, "only")

	require.NoError(t, repo.Delete(ctx, seeded[0].ID))
	messages, _, err := repo.List(ctx, 1, 10, false)
	require.NoError(t, err)
	assert.Empty(t, messages)
}
