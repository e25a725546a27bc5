package main

import (
	"log"

	redisv9 "github.com/redis/go-redis/v9"

	"movie_backend/internal/app/config"
	"movie_backend/internal/app/router"
	moviesadapters "movie_backend/internal/feature/movies/adapters"
	movieshandler "movie_backend/internal/feature/movies/transport/handler"
	moviesusecase "movie_backend/internal/feature/movies/usecase"
	usersadapters "movie_backend/internal/feature/users/adapters"
	usershandler "movie_backend/internal/feature/users/transport/handler"
	usersusecase "movie_backend/internal/feature/users/usecase"
	"movie_backend/internal/platform/cache"
	"movie_backend/internal/platform/db"
	jwtmw "movie_backend/internal/platform/jwt"
	platformredis "movie_backend/internal/platform/redis"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	// db
	gormDB, err := db.OpenDB(cfg)
	if err != nil {
		log.Fatal(err)
	}

	// Redis
	var rdb *redisv9.Client
	if cfg.UseRedisCache() {
		if tmp, err := platformredis.NewRedisClient(cfg); err != nil {
			log.Println("[WARN] Redis unavailable. Running without cache.")
		} else {
			rdb = tmp
			defer func() {
				if err := rdb.Close(); err != nil {
					log.Println("[ERROR] Failed to close Redis client:", err)
				}
			}()
		}
	}

	// Repository
	userRepo := usersadapters.NewUserPostgres(gormDB)
	movieRepo := moviesadapters.NewMoviePostgres(gormDB)

	// Redisキャッシュでラップ（rdbがnilの場合は素通し）
	cachedMovieRepo := cache.NewCachingMovieRepository(rdb, cfg.CacheTTL, movieRepo, "movies")

	// Usecase
	tokenGen := jwtmw.NewGenerator(cfg.JWTSecret, cfg.TokenTTL)
	userUC := usersusecase.NewUserUsecase(userRepo, tokenGen)
	movieUC := moviesusecase.NewMovieUsecase(cachedMovieRepo)

	// Handler
	userH := usershandler.NewUserHandler(userUC)
	movieH := movieshandler.NewMovieHandler(movieUC)

	// ルータ生成
	r := router.NewRouter(userH, movieH, cfg.JWTSecret)

	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatal(err)
	}
}
