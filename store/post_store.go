package store

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/finchley/plume/models"
)

var (
	ErrPostNotFound   = errors.New("post not found")
	ErrStaleAggregate = errors.New("aggregate modified concurrently, retries exhausted")
)

const (
	opTimeout        = 5 * time.Second
	mutateMaxRetries = 3
)

// PostStore persists post aggregates. Nested comments, replies and reactions
// travel with the row as JSON documents, so every mutation rewrites the whole
// aggregate guarded by the version column.
type PostStore struct {
	db *gorm.DB
}

// NewPostStore creates a PostStore backed by the given DB handle.
func NewPostStore(db *gorm.DB) *PostStore {
	return &PostStore{db: db}
}

// Create inserts a new aggregate row.
func (s *PostStore) Create(ctx context.Context, post *models.Post) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()
	return s.db.WithContext(ctx).Create(post).Error
}

// GetByID loads one aggregate with its author. A malformed id simply misses
// the primary key lookup and is reported as not found.
func (s *PostStore) GetByID(ctx context.Context, id string) (*models.Post, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	var post models.Post
	err := s.db.WithContext(ctx).Preload("User").Where("id = ?", id).First(&post).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrPostNotFound
	}
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// List returns all aggregates newest first, authors preloaded. An empty
// result is not an error.
func (s *PostStore) List(ctx context.Context) ([]models.Post, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	var posts []models.Post
	if err := s.db.WithContext(ctx).Preload("User").Order("created_at DESC").Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

// Delete removes the aggregate row; the nested documents go with it.
func (s *PostStore) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	res := s.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Post{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrPostNotFound
	}
	return nil
}

// Mutate runs one read-modify-write cycle on an aggregate. The write is
// guarded by the version the read observed; when a concurrent writer got there
// first the guarded UPDATE affects no rows and the cycle is replayed on a
// fresh read. fn must be side-effect free so replaying it is safe.
func (s *PostStore) Mutate(ctx context.Context, id string, fn func(*models.Post) error) (*models.Post, error) {
	for attempt := 0; attempt < mutateMaxRetries; attempt++ {
		post, err := s.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}

		if err := fn(post); err != nil {
			return nil, err
		}

		base := post.Version
		post.Version = base + 1

		opCtx, cancel := context.WithTimeout(ctx, opTimeout)
		res := s.db.WithContext(opCtx).Model(&models.Post{}).
			Where("id = ? AND version = ?", post.ID, base).
			Select("Comments", "Reactions", "Version", "UpdatedAt").
			Updates(post)
		cancel()

		if res.Error != nil {
			return nil, res.Error
		}
		if res.RowsAffected == 1 {
			return post, nil
		}
		// Stale base version: another writer committed in between.
	}
	return nil, ErrStaleAggregate
}
