// Package router はHTTPルーティングとミドルウェアの組み立てを担当します。
package router

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	movieshandler "movie_backend/internal/feature/movies/transport/handler"
	usershandler "movie_backend/internal/feature/users/transport/handler"
	"movie_backend/internal/platform/http/handler"
	jwtmw "movie_backend/internal/platform/jwt"
)

// NewRouter は全エンドポイントとミドルウェアを組み立てたgin.Engineを返します。
// secretはJWT検証用の署名シークレットです。
func NewRouter(userHandler *usershandler.UserHandler, movieHandler *movieshandler.MovieHandler,
	secret string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), Recovery())

	// ブラウザクライアント向けにCORSを許可
	r.Use(cors.Default())

	// 認証不要
	// 導通確認用
	r.GET("/healthz", handler.Health)
	r.HEAD("/healthz", handler.Health)

	users := r.Group("/users")
	{
		// 新規ユーザー登録
		users.POST("/register", userHandler.Register)
		// ログイン（JWT 発行）
		users.POST("/login", userHandler.Login)

		// 認証必須のルート
		// jwtmw.AuthRequired() ミドルウェアを適用
		// → リクエストヘッダーに JWT が必要になる
		auth := users.Group("/")
		auth.Use(jwtmw.AuthRequired(secret))
		{
			auth.GET("/details", jwtmw.IdentityRequired(), userHandler.Details)
			auth.PATCH("/update-password", jwtmw.IdentityRequired(), userHandler.UpdatePassword)

			// 管理者のみ
			admin := auth.Group("/")
			admin.Use(jwtmw.AdminRequired())
			{
				admin.PATCH("/:id/set-as-admin", userHandler.SetAsAdmin)
			}
		}
	}

	movies := r.Group("/movies")
	movies.Use(jwtmw.AuthRequired(secret))
	{
		// 閲覧とコメントは認証済みユーザー全員が可能
		movies.GET("", movieHandler.List)
		movies.GET("/:id", movieHandler.Get)
		movies.GET("/:id/comments", movieHandler.ListComments)
		movies.POST("/:id/comments", jwtmw.IdentityRequired(), movieHandler.AddComment)

		// 作品カタログの変更は管理者のみ
		admin := movies.Group("")
		admin.Use(jwtmw.AdminRequired())
		{
			admin.POST("", movieHandler.Create)
			admin.PATCH("/:id", movieHandler.Update)
			admin.DELETE("/:id", movieHandler.Delete)
		}
	}

	return r
}
