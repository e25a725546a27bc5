// Package usecase はmoviesフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"movie_backend/internal/feature/movies/domain/entity"
)

const (
	maxTitleLength       = 100
	maxDirectorLength    = 50
	maxDescriptionLength = 1000
	maxGenreLength       = 30
	maxCommentLength     = 500

	// minYear は受け付ける最古の公開年です。上限は現在年+5で都度計算します。
	minYear = 1900
)

// MovieRepository は作品エンティティの永続化層を抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（adapters）ではなくコンシューマー（usecase）が定義します。
type MovieRepository interface {
	// Create は新しい作品をストレージに永続化します。
	Create(ctx context.Context, movie *entity.Movie) error

	// FindAll は全作品をコメント付きで取得します。
	FindAll(ctx context.Context) ([]entity.Movie, error)

	// FindByID は指定されたIDの作品をコメント付きで取得します。
	// 作品が存在しない場合、ErrMovieNotFoundを返します。
	FindByID(ctx context.Context, id uint) (*entity.Movie, error)

	// Update は指定されたフィールドのみを適用し、更新後の作品を返します。
	Update(ctx context.Context, id uint, fields map[string]any) (*entity.Movie, error)

	// Delete は指定されたIDの作品を削除します。
	Delete(ctx context.Context, id uint) error

	// AppendComment は作品のコメント列にコメントを1件追記します。
	// 単一レコードの挿入として原子的に行われます。
	AppendComment(ctx context.Context, movieID uint, comment *entity.Comment) error

	// FindComments は作品のコメント列を投稿日時昇順で取得します。
	FindComments(ctx context.Context, movieID uint) ([]entity.Comment, error)
}

// CreateInput は作品登録の入力値です。全フィールド必須です。
type CreateInput struct {
	Title       string
	Director    string
	Year        int
	Description string
	Genre       string
}

// UpdateInput は部分更新の入力値です。nilのフィールドは更新対象外です。
type UpdateInput struct {
	Title       *string
	Director    *string
	Year        *int
	Description *string
	Genre       *string
}

// movieUsecase は作品カタログのビジネスロジックを実装します。
type movieUsecase struct {
	movies MovieRepository
}

// NewMovieUsecase はmovieUsecaseの新しいインスタンスを生成します。
func NewMovieUsecase(movies MovieRepository) *movieUsecase {
	return &movieUsecase{movies: movies}
}

// validationError はErrValidationをフィールド詳細付きでラップします。
func validationError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// maxYear は受け付ける最大の公開年を返します。
func maxYear() int {
	return time.Now().Year() + 5
}

// validateText はバイト数ではなく文字数（rune数）で上限を判定します。
func validateText(field, value string, max int) error {
	if value == "" {
		return validationError("%s is required", field)
	}
	if utf8.RuneCountInString(value) > max {
		return validationError("%s cannot exceed %d characters", field, max)
	}
	return nil
}

func validateYear(year int) error {
	if year < minYear || year > maxYear() {
		return validationError("year must be between %d and %d", minYear, maxYear())
	}
	return nil
}

// Create は新しい作品を登録します。全フィールドのバリデーションを永続化前に行います。
func (u *movieUsecase) Create(ctx context.Context, in CreateInput) (*entity.Movie, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.Director = strings.TrimSpace(in.Director)
	in.Description = strings.TrimSpace(in.Description)
	in.Genre = strings.TrimSpace(in.Genre)

	if err := validateText("title", in.Title, maxTitleLength); err != nil {
		return nil, err
	}
	if err := validateText("director", in.Director, maxDirectorLength); err != nil {
		return nil, err
	}
	if err := validateYear(in.Year); err != nil {
		return nil, err
	}
	if err := validateText("description", in.Description, maxDescriptionLength); err != nil {
		return nil, err
	}
	if err := validateText("genre", in.Genre, maxGenreLength); err != nil {
		return nil, err
	}

	movie := &entity.Movie{
		Title:       in.Title,
		Director:    in.Director,
		Year:        in.Year,
		Description: in.Description,
		Genre:       in.Genre,
	}
	if err := u.movies.Create(ctx, movie); err != nil {
		return nil, err
	}
	return movie, nil
}

// List は全作品をコメント付きで取得します。
func (u *movieUsecase) List(ctx context.Context) ([]entity.Movie, error) {
	return u.movies.FindAll(ctx)
}

// Get は指定されたIDの作品を取得します。
func (u *movieUsecase) Get(ctx context.Context, id uint) (*entity.Movie, error) {
	return u.movies.FindByID(ctx, id)
}

// Update はリクエストに明示されたフィールドのみを適用する部分更新です。
// 更新対象フィールドが1つも無い場合はErrNoFieldsToUpdateを返します。
func (u *movieUsecase) Update(ctx context.Context, id uint, in UpdateInput) (*entity.Movie, error) {
	fields := map[string]any{}

	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		if err := validateText("title", title, maxTitleLength); err != nil {
			return nil, err
		}
		fields["title"] = title
	}
	if in.Director != nil {
		director := strings.TrimSpace(*in.Director)
		if err := validateText("director", director, maxDirectorLength); err != nil {
			return nil, err
		}
		fields["director"] = director
	}
	if in.Year != nil {
		if err := validateYear(*in.Year); err != nil {
			return nil, err
		}
		fields["year"] = *in.Year
	}
	if in.Description != nil {
		description := strings.TrimSpace(*in.Description)
		if err := validateText("description", description, maxDescriptionLength); err != nil {
			return nil, err
		}
		fields["description"] = description
	}
	if in.Genre != nil {
		genre := strings.TrimSpace(*in.Genre)
		if err := validateText("genre", genre, maxGenreLength); err != nil {
			return nil, err
		}
		fields["genre"] = genre
	}

	if len(fields) == 0 {
		return nil, ErrNoFieldsToUpdate
	}

	return u.movies.Update(ctx, id, fields)
}

// Delete は指定されたIDの作品を削除します。コメントも連鎖して削除されます。
func (u *movieUsecase) Delete(ctx context.Context, id uint) error {
	return u.movies.Delete(ctx, id)
}

// AddComment は認証済みユーザーのコメントを作品に追記し、追記されたコメントのみを返します。
// 著者IDは常に認証済みアイデンティティから設定します。
func (u *movieUsecase) AddComment(ctx context.Context, movieID, authorID uint, text string) (*entity.Comment, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, validationError("comment field cannot be empty")
	}
	if utf8.RuneCountInString(text) > maxCommentLength {
		return nil, validationError("comment cannot exceed %d characters", maxCommentLength)
	}

	comment := &entity.Comment{
		ID:      uuid.NewString(),
		MovieID: movieID,
		UserID:  authorID,
		Text:    text,
	}
	if err := u.movies.AppendComment(ctx, movieID, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// ListComments は作品のコメント列を投稿日時昇順で取得します。
// 表示用の降順ソートは呼び出し側の責務です。
func (u *movieUsecase) ListComments(ctx context.Context, movieID uint) ([]entity.Comment, error) {
	return u.movies.FindComments(ctx, movieID)
}
