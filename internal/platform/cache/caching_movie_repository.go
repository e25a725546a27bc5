// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"movie_backend/internal/feature/movies/domain/entity"
	"movie_backend/internal/feature/movies/usecase"
)

// CachingMovieRepository decorates a MovieRepository with Redis caching.
// It implements the decorator pattern, transparently adding caching without
// modifying the underlying repository.
type CachingMovieRepository struct {
	inner     usecase.MovieRepository
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

// CachingMovieRepositoryがMovieRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.MovieRepository = (*CachingMovieRepository)(nil)

// NewCachingMovieRepository decorates a MovieRepository with Redis caching.
// If ttl is 0, it defaults to 5 minutes. If namespace is empty, it uses "movies".
func NewCachingMovieRepository(rdb *redis.Client, ttl time.Duration, inner usecase.MovieRepository, namespace string) *CachingMovieRepository {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if namespace == "" {
		namespace = "movies"
	}
	return &CachingMovieRepository{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

// listKey は作品一覧のキャッシュキーです。
func (c *CachingMovieRepository) listKey() string {
	return c.namespace + ":all"
}

// movieKey は作品単体のキャッシュキーです。
func (c *CachingMovieRepository) movieKey(id uint) string {
	return fmt.Sprintf("%s:id:%d", c.namespace, id)
}

// commentsKey は作品のコメント列のキャッシュキーです。
func (c *CachingMovieRepository) commentsKey(movieID uint) string {
	return fmt.Sprintf("%s:comments:%d", c.namespace, movieID)
}

// invalidate は指定されたキーをベストエフォートで削除します。
// キャッシュ削除の失敗で書き込み操作を失敗させないようエラーは握りつぶします。
func (c *CachingMovieRepository) invalidate(ctx context.Context, keys ...string) {
	if c.rdb == nil || len(keys) == 0 {
		return
	}
	_ = c.rdb.Del(ctx, keys...).Err()
}

// Create persists a movie and invalidates the catalog listing cache.
func (c *CachingMovieRepository) Create(ctx context.Context, m *entity.Movie) error {
	if err := c.inner.Create(ctx, m); err != nil {
		return err
	}
	c.invalidate(ctx, c.listKey())
	return nil
}

// FindAll retrieves all movies, checking cache first then falling back to the database.
func (c *CachingMovieRepository) FindAll(ctx context.Context) ([]entity.Movie, error) {
	// Bypass cache if Redis is not configured
	if c.rdb == nil {
		return c.inner.FindAll(ctx)
	}

	key := c.listKey()

	// 1) Check cache
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out []entity.Movie
		if err := json.Unmarshal(b, &out); err == nil {
			return out, nil
		}
		// Delete corrupted cache entry
		_ = c.rdb.Del(ctx, key).Err()
	}

	// 2) Fallback to database
	out, err := c.inner.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	// 3) Store in cache (best effort)
	if b, err := json.Marshal(out); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
	}

	return out, nil
}

// FindByID retrieves a movie, checking cache first then falling back to the database.
// Not-found results are never cached.
func (c *CachingMovieRepository) FindByID(ctx context.Context, id uint) (*entity.Movie, error) {
	if c.rdb == nil {
		return c.inner.FindByID(ctx, id)
	}

	key := c.movieKey(id)

	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out entity.Movie
		if err := json.Unmarshal(b, &out); err == nil {
			return &out, nil
		}
		_ = c.rdb.Del(ctx, key).Err()
	}

	out, err := c.inner.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if b, err := json.Marshal(out); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
	}

	return out, nil
}

// Update applies a partial update and invalidates all cache entries for the movie.
func (c *CachingMovieRepository) Update(ctx context.Context, id uint, fields map[string]any) (*entity.Movie, error) {
	updated, err := c.inner.Update(ctx, id, fields)
	if err != nil {
		return nil, err
	}
	c.invalidate(ctx, c.listKey(), c.movieKey(id), c.commentsKey(id))
	return updated, nil
}

// Delete removes a movie and invalidates all cache entries for it.
func (c *CachingMovieRepository) Delete(ctx context.Context, id uint) error {
	if err := c.inner.Delete(ctx, id); err != nil {
		return err
	}
	c.invalidate(ctx, c.listKey(), c.movieKey(id), c.commentsKey(id))
	return nil
}

// AppendComment appends a comment and invalidates the movie's cache entries.
// 一覧と単体はコメントを埋め込んで返すため、それらのキーも無効化します。
func (c *CachingMovieRepository) AppendComment(ctx context.Context, movieID uint, comment *entity.Comment) error {
	if err := c.inner.AppendComment(ctx, movieID, comment); err != nil {
		return err
	}
	c.invalidate(ctx, c.listKey(), c.movieKey(movieID), c.commentsKey(movieID))
	return nil
}

// FindComments retrieves a movie's comments, checking cache first.
// Not-found results are never cached.
func (c *CachingMovieRepository) FindComments(ctx context.Context, movieID uint) ([]entity.Comment, error) {
	if c.rdb == nil {
		return c.inner.FindComments(ctx, movieID)
	}

	key := c.commentsKey(movieID)

	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out []entity.Comment
		if err := json.Unmarshal(b, &out); err == nil {
			return out, nil
		}
		_ = c.rdb.Del(ctx, key).Err()
	}

	out, err := c.inner.FindComments(ctx, movieID)
	if err != nil {
		return nil, err
	}

	if b, err := json.Marshal(out); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
	}

	return out, nil
}
