// Package handler はmoviesフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"movie_backend/internal/api"
	"movie_backend/internal/feature/movies/domain/entity"
	"movie_backend/internal/feature/movies/transport/http/dto"
	"movie_backend/internal/feature/movies/usecase"
	jwtmw "movie_backend/internal/platform/jwt"
)

// MovieUsecase は作品カタログ操作のユースケースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（usecase）ではなくコンシューマー（handler）が定義します。
type MovieUsecase interface {
	// Create は新しい作品を登録します。
	Create(ctx context.Context, in usecase.CreateInput) (*entity.Movie, error)
	// List は全作品をコメント付きで取得します。
	List(ctx context.Context) ([]entity.Movie, error)
	// Get は指定されたIDの作品を取得します。
	Get(ctx context.Context, id uint) (*entity.Movie, error)
	// Update はリクエストに明示されたフィールドのみを適用する部分更新です。
	Update(ctx context.Context, id uint, in usecase.UpdateInput) (*entity.Movie, error)
	// Delete は指定されたIDの作品を削除します。
	Delete(ctx context.Context, id uint) error
	// AddComment は認証済みユーザーのコメントを作品に追記します。
	AddComment(ctx context.Context, movieID, authorID uint, text string) (*entity.Comment, error)
	// ListComments は作品のコメント列を取得します。
	ListComments(ctx context.Context, movieID uint) ([]entity.Comment, error)
}

// MovieHandler は作品カタログ操作のHTTPリクエストを処理します。
type MovieHandler struct {
	movies MovieUsecase
}

// NewMovieHandler はMovieHandlerの新しいインスタンスを生成します。
func NewMovieHandler(movies MovieUsecase) *MovieHandler {
	return &MovieHandler{movies: movies}
}

// movieID はパスパラメータ:idをパースします。数値でない場合はfalseを返します。
func movieID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}

// Create は作品登録APIエンドポイントを処理します（管理者のみ）。
func (h *MovieHandler) Create(c *gin.Context) {
	var req dto.CreateMovieReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("movie create validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request", Details: err.Error()})
		return
	}

	in := usecase.CreateInput{
		Title:       req.Title,
		Director:    req.Director,
		Year:        req.Year,
		Description: req.Description,
		Genre:       req.Genre,
	}
	movie, err := h.movies.Create(c.Request.Context(), in)
	if err != nil {
		if errors.Is(err, usecase.ErrValidation) {
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
			return
		}
		slog.Error("failed to create movie", "error", err, "title", req.Title)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to create movie"})
		return
	}

	slog.Info("movie created", "movie_id", movie.ID, "title", movie.Title)
	c.JSON(http.StatusCreated, gin.H{"message": "Movie added successfully", "movie": movie})
}

// List は全作品の一覧APIエンドポイントを処理します。
func (h *MovieHandler) List(c *gin.Context) {
	movies, err := h.movies.List(c.Request.Context())
	if err != nil {
		slog.Error("failed to list movies", "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to retrieve movies"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Movies retrieved successfully", "movies": movies})
}

// Get は作品の単体取得APIエンドポイントを処理します。
// IDが数値でない場合は400、存在しない場合は404を返します。
func (h *MovieHandler) Get(c *gin.Context) {
	id, ok := movieID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid movie ID format"})
		return
	}

	movie, err := h.movies.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, usecase.ErrMovieNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Movie not found"})
			return
		}
		slog.Error("failed to load movie", "error", err, "movie_id", id)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to retrieve movie"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"movie": movie})
}

// Update は作品の部分更新APIエンドポイントを処理します（管理者のみ）。
// 更新対象フィールドが1つも無いリクエストは400を返します。
func (h *MovieHandler) Update(c *gin.Context) {
	id, ok := movieID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid movie ID format"})
		return
	}

	var req dto.UpdateMovieReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}

	in := usecase.UpdateInput{
		Title:       req.Title,
		Director:    req.Director,
		Year:        req.Year,
		Description: req.Description,
		Genre:       req.Genre,
	}
	updated, err := h.movies.Update(c.Request.Context(), id, in)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrNoFieldsToUpdate):
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "No valid fields provided for update"})
		case errors.Is(err, usecase.ErrValidation):
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		case errors.Is(err, usecase.ErrMovieNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Movie not found"})
		default:
			slog.Error("failed to update movie", "error", err, "movie_id", id)
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to update movie"})
		}
		return
	}

	slog.Info("movie updated", "movie_id", updated.ID)
	c.JSON(http.StatusOK, gin.H{"message": "Movie updated successfully", "updatedMovie": updated})
}

// Delete は作品の削除APIエンドポイントを処理します（管理者のみ）。
// コメントも連鎖して削除されます。
func (h *MovieHandler) Delete(c *gin.Context) {
	id, ok := movieID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid movie ID format"})
		return
	}

	if err := h.movies.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, usecase.ErrMovieNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Movie not found"})
			return
		}
		slog.Error("failed to delete movie", "error", err, "movie_id", id)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to delete movie"})
		return
	}

	slog.Info("movie deleted", "movie_id", id)
	c.JSON(http.StatusOK, api.MessageResponse{Message: "Movie deleted successfully"})
}

// AddComment はコメント投稿APIエンドポイントを処理します。
// 著者は常に認証済みアイデンティティから決定し、リクエストボディでは指定できません。
func (h *MovieHandler) AddComment(c *gin.Context) {
	id, ok := movieID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid movie ID format"})
		return
	}

	userID, ok := jwtmw.UserIDFromContext(c)
	if !ok {
		// AuthRequired通過後にアイデンティティが無いのはサーバー側の異常
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "error processing user identity"})
		return
	}

	var req dto.AddCommentReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Comment field cannot be empty"})
		return
	}

	comment, err := h.movies.AddComment(c.Request.Context(), id, userID, req.Comment)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrValidation):
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		case errors.Is(err, usecase.ErrMovieNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Movie not found"})
		default:
			slog.Error("failed to add comment", "error", err, "movie_id", id, "user_id", userID)
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to add comment"})
		}
		return
	}

	slog.Info("comment added", "movie_id", id, "user_id", userID, "comment_id", comment.ID)
	c.JSON(http.StatusCreated, gin.H{"message": "Comment added successfully", "newComment": comment})
}

// ListComments は作品のコメント一覧APIエンドポイントを処理します。
func (h *MovieHandler) ListComments(c *gin.Context) {
	id, ok := movieID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid movie ID format"})
		return
	}

	comments, err := h.movies.ListComments(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, usecase.ErrMovieNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Movie not found"})
			return
		}
		slog.Error("failed to list comments", "error", err, "movie_id", id)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to retrieve comments"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"comments": comments})
}
