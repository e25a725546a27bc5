// Package adapters はmoviesフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"movie_backend/internal/feature/movies/domain/entity"
	"movie_backend/internal/feature/movies/usecase"
)

// moviePostgres はMovieRepositoryインターフェースのGORM実装です。
type moviePostgres struct {
	db *gorm.DB
}

// moviePostgresがMovieRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.MovieRepository = (*moviePostgres)(nil)

// NewMoviePostgres は指定されたgorm.DB接続でmoviePostgresの新しいインスタンスを生成します。
// 依存性注入用のコンストラクタです。
func NewMoviePostgres(db *gorm.DB) *moviePostgres {
	return &moviePostgres{db: db}
}

// commentsAscending はコメントのPreloadに投稿日時昇順を適用します。
func commentsAscending(db *gorm.DB) *gorm.DB {
	return db.Order("comments.created_at ASC")
}

// Create は作品をデータベースに追加します。
func (r *moviePostgres) Create(ctx context.Context, m *entity.Movie) error {
	return r.db.WithContext(ctx).Create(m).Error
}

// FindAll は全作品をコメント付きで取得します。
func (r *moviePostgres) FindAll(ctx context.Context) ([]entity.Movie, error) {
	movies := make([]entity.Movie, 0)
	if err := r.db.WithContext(ctx).Preload("Comments", commentsAscending).Find(&movies).Error; err != nil {
		return nil, err
	}
	for i := range movies {
		// コメントが無い作品でもJSONで[]になるようnilを避ける
		if movies[i].Comments == nil {
			movies[i].Comments = make([]entity.Comment, 0)
		}
	}
	return movies, nil
}

// FindByID は指定されたIDの作品をコメント付きで取得します。
// 作品が存在しない場合、usecase.ErrMovieNotFoundを返します。
func (r *moviePostgres) FindByID(ctx context.Context, id uint) (*entity.Movie, error) {
	var m entity.Movie
	if err := r.db.WithContext(ctx).Preload("Comments", commentsAscending).First(&m, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrMovieNotFound
		}
		return nil, err
	}
	if m.Comments == nil {
		m.Comments = make([]entity.Comment, 0)
	}
	return &m, nil
}

// Update は指定されたフィールドのみを適用し、更新後の作品をコメント付きで返します。
// 作品が存在しない場合、usecase.ErrMovieNotFoundを返します。
func (r *moviePostgres) Update(ctx context.Context, id uint, fields map[string]any) (*entity.Movie, error) {
	// 存在確認を先に行い、not-foundと更新失敗を区別する
	var m entity.Movie
	if err := r.db.WithContext(ctx).Select("id").First(&m, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrMovieNotFound
		}
		return nil, err
	}

	if err := r.db.WithContext(ctx).Model(&entity.Movie{}).Where("id = ?", id).Updates(fields).Error; err != nil {
		return nil, err
	}

	return r.FindByID(ctx, id)
}

// Delete は指定されたIDの作品とそのコメントを削除します。
// 作品が存在しない場合、usecase.ErrMovieNotFoundを返します。
func (r *moviePostgres) Delete(ctx context.Context, id uint) error {
	// コメントはDBの外部キー制約で連鎖削除されるが、
	// sqliteのテスト環境でも確実に消えるよう明示的に削除する
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&entity.Movie{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return usecase.ErrMovieNotFound
		}
		return tx.Where("movie_id = ?", id).Delete(&entity.Comment{}).Error
	})
}

// AppendComment は作品のコメント列にコメントを1件追記します。
// 単一レコードの挿入として原子的に行われます。作品が存在しない場合、usecase.ErrMovieNotFoundを返します。
func (r *moviePostgres) AppendComment(ctx context.Context, movieID uint, comment *entity.Comment) error {
	var m entity.Movie
	if err := r.db.WithContext(ctx).Select("id").First(&m, movieID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return usecase.ErrMovieNotFound
		}
		return err
	}
	return r.db.WithContext(ctx).Create(comment).Error
}

// FindComments は作品のコメント列を投稿日時昇順で取得します。
// 作品が存在しない場合、usecase.ErrMovieNotFoundを返します。
func (r *moviePostgres) FindComments(ctx context.Context, movieID uint) ([]entity.Comment, error) {
	var m entity.Movie
	if err := r.db.WithContext(ctx).Select("id").First(&m, movieID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrMovieNotFound
		}
		return nil, err
	}

	comments := make([]entity.Comment, 0)
	if err := r.db.WithContext(ctx).Where("movie_id = ?", movieID).Order("created_at ASC").Find(&comments).Error; err != nil {
		return nil, err
	}
	return comments, nil
}
