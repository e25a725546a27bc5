package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"

	moviesentity "movie_backend/internal/feature/movies/domain/entity"
	movieshandler "movie_backend/internal/feature/movies/transport/handler"
	moviesusecase "movie_backend/internal/feature/movies/usecase"
	usersentity "movie_backend/internal/feature/users/domain/entity"
	usershandler "movie_backend/internal/feature/users/transport/handler"
	usersusecase "movie_backend/internal/feature/users/usecase"
)

const testSecret = "router-test-secret"

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

// stubUserUsecase は全操作が成功するUserUsecaseのスタブです。
type stubUserUsecase struct{}

func (stubUserUsecase) Register(ctx context.Context, in usersusecase.RegisterInput) (*usersentity.User, error) {
	return &usersentity.User{ID: 1}, nil
}

func (stubUserUsecase) Login(ctx context.Context, email, password string) (string, *usersentity.User, error) {
	return "token", &usersentity.User{ID: 1, Email: email}, nil
}

func (stubUserUsecase) Profile(ctx context.Context, userID uint) (*usersentity.User, error) {
	return &usersentity.User{ID: userID}, nil
}

func (stubUserUsecase) PromoteToAdmin(ctx context.Context, id uint) (*usersentity.User, error) {
	return &usersentity.User{ID: id, IsAdmin: true}, nil
}

func (stubUserUsecase) ResetPassword(ctx context.Context, userID uint, newPassword string) error {
	return nil
}

// stubMovieUsecase は全操作が成功するMovieUsecaseのスタブです。
type stubMovieUsecase struct{}

func (stubMovieUsecase) Create(ctx context.Context, in moviesusecase.CreateInput) (*moviesentity.Movie, error) {
	return &moviesentity.Movie{ID: 1, Title: in.Title}, nil
}

func (stubMovieUsecase) List(ctx context.Context) ([]moviesentity.Movie, error) {
	return []moviesentity.Movie{}, nil
}

func (stubMovieUsecase) Get(ctx context.Context, id uint) (*moviesentity.Movie, error) {
	return &moviesentity.Movie{ID: id}, nil
}

func (stubMovieUsecase) Update(ctx context.Context, id uint, in moviesusecase.UpdateInput) (*moviesentity.Movie, error) {
	return &moviesentity.Movie{ID: id}, nil
}

func (stubMovieUsecase) Delete(ctx context.Context, id uint) error {
	return nil
}

func (stubMovieUsecase) AddComment(ctx context.Context, movieID, authorID uint, text string) (*moviesentity.Comment, error) {
	return &moviesentity.Comment{ID: "c1", MovieID: movieID, UserID: authorID, Text: text}, nil
}

func (stubMovieUsecase) ListComments(ctx context.Context, movieID uint) ([]moviesentity.Comment, error) {
	return []moviesentity.Comment{}, nil
}

func newTestRouter() *gin.Engine {
	userH := usershandler.NewUserHandler(stubUserUsecase{})
	movieH := movieshandler.NewMovieHandler(stubMovieUsecase{})
	return NewRouter(userH, movieH, testSecret)
}

func signToken(userID uint, isAdmin bool) string {
	claims := jwt.MapClaims{
		"sub":   float64(userID),
		"exp":   time.Now().Add(time.Hour).Unix(),
		"iat":   time.Now().Unix(),
		"email": "test@example.com",
		"admin": isAdmin,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, _ := token.SignedString([]byte(testSecret))
	return signed
}

func perform(router *gin.Engine, method, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRouter_HealthIsPublic(t *testing.T) {
	router := newTestRouter()

	w := perform(router, http.MethodGet, "/healthz", "")

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRouter_AuthGating(t *testing.T) {
	router := newTestRouter()

	tests := []struct {
		name           string
		method         string
		path           string
		token          string
		expectedStatus int
	}{
		{"movies list requires token", http.MethodGet, "/movies", "", http.StatusUnauthorized},
		{"movies list with token", http.MethodGet, "/movies", signToken(1, false), http.StatusOK},
		{"movie detail with token", http.MethodGet, "/movies/1", signToken(1, false), http.StatusOK},
		{"comments with token", http.MethodGet, "/movies/1/comments", signToken(1, false), http.StatusOK},
		{"user details requires token", http.MethodGet, "/users/details", "", http.StatusUnauthorized},
		{"user details with token", http.MethodGet, "/users/details", signToken(1, false), http.StatusOK},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			w := perform(router, tt.method, tt.path, tt.token)

			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}

func TestRouter_AdminGating(t *testing.T) {
	router := newTestRouter()

	tests := []struct {
		name           string
		method         string
		path           string
		token          string
		expectedStatus int
	}{
		{"movie delete forbidden for non-admin", http.MethodDelete, "/movies/1", signToken(1, false), http.StatusForbidden},
		{"movie delete allowed for admin", http.MethodDelete, "/movies/1", signToken(1, true), http.StatusOK},
		{"promote forbidden for non-admin", http.MethodPatch, "/users/2/set-as-admin", signToken(1, false), http.StatusForbidden},
		{"promote allowed for admin", http.MethodPatch, "/users/2/set-as-admin", signToken(1, true), http.StatusOK},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			w := perform(router, tt.method, tt.path, tt.token)

			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}

func TestRecovery_ReturnsErrorEnvelope(t *testing.T) {
	r := gin.New()
	r.Use(Recovery())
	r.GET("/panic", func(c *gin.Context) {
		panic("boom")
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/panic", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), `"errorCode":"INTERNAL_ERROR"`)
	// panicの内容はレスポンスに含めない
	assert.NotContains(t, w.Body.String(), "boom")
}
