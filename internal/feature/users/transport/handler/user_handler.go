// Package handler はusersフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"movie_backend/internal/api"
	"movie_backend/internal/feature/users/domain/entity"
	"movie_backend/internal/feature/users/transport/http/dto"
	"movie_backend/internal/feature/users/usecase"
	jwtmw "movie_backend/internal/platform/jwt"
)

// UserUsecase はユーザー管理操作のユースケースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（usecase）ではなくコンシューマー（handler）が定義します。
type UserUsecase interface {
	// Register は新規ユーザーを登録します。
	Register(ctx context.Context, in usecase.RegisterInput) (*entity.User, error)
	// Login はユーザーを認証し、成功時にアクセストークンとユーザーレコードを返します。
	Login(ctx context.Context, email, password string) (string, *entity.User, error)
	// Profile は認証済みユーザー自身のレコードを取得します。
	Profile(ctx context.Context, userID uint) (*entity.User, error)
	// PromoteToAdmin は指定されたユーザーを管理者に昇格します。
	PromoteToAdmin(ctx context.Context, id uint) (*entity.User, error)
	// ResetPassword は認証済みユーザー自身のパスワードを再設定します。
	ResetPassword(ctx context.Context, userID uint, newPassword string) error
}

// UserHandler はユーザー管理操作のHTTPリクエストを処理します。
type UserHandler struct {
	users UserUsecase
}

// NewUserHandler はUserHandlerの新しいインスタンスを生成します。
// 依存性注入用のコンストラクタで、外部からUserUsecaseを注入します。
func NewUserHandler(users UserUsecase) *UserHandler {
	return &UserHandler{users: users}
}

// Register はユーザー登録APIエンドポイントを処理します。
// - リクエストJSONをRegisterReqにバインド
// - バリデーションエラー時は400を返却
// - メール重複時は409を返却
// - 成功時は201を返却
func (h *UserHandler) Register(c *gin.Context) {
	var req dto.RegisterReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("register validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request", Details: err.Error()})
		return
	}

	in := usecase.RegisterInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
		MobileNo:  req.MobileNo,
	}
	if _, err := h.users.Register(c.Request.Context(), in); err != nil {
		switch {
		case errors.Is(err, usecase.ErrEmailAlreadyExists):
			slog.Warn("register duplicate email", "email", req.Email, "remote_addr", c.ClientIP())
			c.JSON(http.StatusConflict, api.ErrorResponse{Error: "Email already exists."})
		case errors.Is(err, usecase.ErrValidation):
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		default:
			slog.Error("register failed", "error", err, "remote_addr", c.ClientIP())
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to register user"})
		}
		return
	}

	slog.Info("user registered", "email", req.Email, "remote_addr", c.ClientIP())
	c.JSON(http.StatusCreated, api.MessageResponse{Message: "Registered Successfully"})
}

// Login はユーザーログインAPIエンドポイントを処理します。
// 400 メール形式不正 / 404 未登録メール / 401 パスワード不一致。
func (h *UserHandler) Login(c *gin.Context) {
	var req dto.LoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("login validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}

	token, user, err := h.users.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrValidation):
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid Email"})
		case errors.Is(err, usecase.ErrUserNotFound):
			slog.Warn("login attempt for unknown email", "email", req.Email, "remote_addr", c.ClientIP())
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "No Email Found"})
		case errors.Is(err, usecase.ErrInvalidCredentials):
			slog.Warn("login password mismatch", "email", req.Email, "remote_addr", c.ClientIP())
			c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "Email and password do not match"})
		default:
			slog.Error("login failed", "error", err, "remote_addr", c.ClientIP())
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "login failed"})
		}
		return
	}

	slog.Info("user login successful", "email", user.Email, "remote_addr", c.ClientIP())
	c.JSON(http.StatusOK, gin.H{"access": token, "user": user})
}

// Details は認証済みユーザー自身の詳細を返します。
func (h *UserHandler) Details(c *gin.Context) {
	userID, ok := jwtmw.UserIDFromContext(c)
	if !ok {
		// AuthRequired通過後にアイデンティティが無いのはサーバー側の異常
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "error processing user identity"})
		return
	}

	user, err := h.users.Profile(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, usecase.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "User not found"})
			return
		}
		slog.Error("failed to load user profile", "error", err, "user_id", userID)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to retrieve user details"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

// SetAsAdmin は指定されたユーザーを管理者に昇格します（管理者のみ）。
// 既に管理者の場合は409を返します。
func (h *UserHandler) SetAsAdmin(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid User ID Format"})
		return
	}

	updated, err := h.users.PromoteToAdmin(c.Request.Context(), uint(id))
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrUserNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "User not found."})
		case errors.Is(err, usecase.ErrAlreadyAdmin):
			c.JSON(http.StatusConflict, api.ErrorResponse{Error: "User is already an admin."})
		default:
			slog.Error("failed to promote user", "error", err, "user_id", id)
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to promote user"})
		}
		return
	}

	slog.Info("user promoted to admin", "user_id", updated.ID)
	c.JSON(http.StatusOK, gin.H{"updatedUser": updated})
}

// UpdatePassword は認証済みユーザー自身のパスワードを再設定します。
func (h *UserHandler) UpdatePassword(c *gin.Context) {
	userID, ok := jwtmw.UserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "error processing user identity"})
		return
	}

	var req dto.UpdatePasswordReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Password is required and must be at least 8 characters long."})
		return
	}

	if err := h.users.ResetPassword(c.Request.Context(), userID, req.NewPassword); err != nil {
		switch {
		case errors.Is(err, usecase.ErrValidation):
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Password is required and must be at least 8 characters long."})
		case errors.Is(err, usecase.ErrUserNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "User not found."})
		default:
			slog.Error("failed to reset password", "error", err, "user_id", userID)
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to reset password"})
		}
		return
	}

	slog.Info("password reset", "user_id", userID)
	c.JSON(http.StatusOK, api.MessageResponse{Message: "Password reset successfully."})
}
