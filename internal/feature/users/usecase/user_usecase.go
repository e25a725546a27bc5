// Package usecase はusersフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"movie_backend/internal/feature/users/domain/entity"

	"golang.org/x/crypto/bcrypt"
)

const (
	// minPasswordLength はパスワードの最低文字数を定義します。
	minPasswordLength = 8

	// minNameLength / maxNameLength は氏名フィールドの文字数境界です。
	minNameLength = 2
	maxNameLength = 50
)

var (
	emailPattern  = regexp.MustCompile(`^\w+([.-]?\w+)*@\w+([.-]?\w+)*(\.\w{2,})+$`)
	mobilePattern = regexp.MustCompile(`^[0-9]{10,15}$`)
)

// UserRepository はユーザーエンティティの永続化層を抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（adapters）ではなくコンシューマー（usecase）が定義します。
type UserRepository interface {
	// Create は新しいユーザーをストレージに永続化します。
	// 同じメールアドレスのユーザーが既に存在する場合、ErrEmailAlreadyExistsを返します。
	Create(ctx context.Context, user *entity.User) error

	// FindByEmail は指定されたメールアドレスに一致するユーザーを取得します。
	// パスワードハッシュを含みます。ユーザーが存在しない場合、ErrUserNotFoundを返します。
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// FindByID は指定されたIDに一致するユーザーを取得します。
	FindByID(ctx context.Context, id uint) (*entity.User, error)

	// SetAdmin は指定されたユーザーを管理者に昇格し、更新後のレコードを返します。
	SetAdmin(ctx context.Context, id uint) (*entity.User, error)

	// UpdatePassword は指定されたユーザーのパスワードハッシュを差し替えます。
	UpdatePassword(ctx context.Context, id uint, passwordHash string) error
}

// TokenGenerator はアクセストークン生成のインターフェースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（platform/jwt）ではなくコンシューマー（usecase）が定義します。
type TokenGenerator interface {
	// GenerateToken は指定されたユーザーの署名済みアクセストークンを生成します。
	GenerateToken(userID uint, email string, isAdmin bool) (string, error)
}

// RegisterInput は新規登録の入力値です。MobileNoは省略可能です。
type RegisterInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
	MobileNo  string
}

// userUsecase はユーザー管理のビジネスロジックを実装します。
type userUsecase struct {
	users     UserRepository
	generator TokenGenerator
}

// NewUserUsecase はuserUsecaseの新しいインスタンスを生成します。
func NewUserUsecase(users UserRepository, generator TokenGenerator) *userUsecase {
	return &userUsecase{
		users:     users,
		generator: generator,
	}
}

// validationError はErrValidationをフィールド詳細付きでラップします。
func validationError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// validateName は氏名フィールドが文字数境界内かチェックします。
// バイト数ではなく文字数（rune数）で判定します。
func validateName(field, value string) error {
	if l := utf8.RuneCountInString(value); l < minNameLength || l > maxNameLength {
		return validationError("%s must be between %d and %d characters", field, minNameLength, maxNameLength)
	}
	return nil
}

// validatePassword はパスワードがセキュリティ要件を満たしているかチェックします。
func validatePassword(password string) error {
	if utf8.RuneCountInString(password) < minPasswordLength {
		return validationError("password must be at least %d characters long", minPasswordLength)
	}
	return nil
}

// Register はハッシュ化されたパスワードで新規ユーザーを登録します。
// バリデーションはハッシュ化・永続化の前に行います。メールアドレスは小文字化して保存します。
func (u *userUsecase) Register(ctx context.Context, in RegisterInput) (*entity.User, error) {
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.MobileNo = strings.TrimSpace(in.MobileNo)

	if err := validateName("first name", in.FirstName); err != nil {
		return nil, err
	}
	if err := validateName("last name", in.LastName); err != nil {
		return nil, err
	}
	if !emailPattern.MatchString(in.Email) {
		return nil, validationError("email invalid")
	}
	if err := validatePassword(in.Password); err != nil {
		return nil, err
	}
	if in.MobileNo != "" && !mobilePattern.MatchString(in.MobileNo) {
		return nil, validationError("mobile number invalid")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &entity.User{
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Email:     in.Email,
		Password:  string(hashed),
		MobileNo:  in.MobileNo,
	}
	if err := u.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login はユーザーを認証し、成功時にアクセストークンとユーザーレコードを返します。
// 存在しないメールアドレス（ErrUserNotFound）とパスワード不一致（ErrInvalidCredentials）は
// 区別して返します。タイミング攻撃緩和のため、ユーザー未検出時もbcrypt比較を実行します。
func (u *userUsecase) Login(ctx context.Context, email, password string) (string, *entity.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if !emailPattern.MatchString(email) {
		return "", nil, validationError("email invalid")
	}

	user, err := u.users.FindByEmail(ctx, email)

	// ユーザーが存在しない場合のタイミング攻撃緩和用ダミーハッシュ
	// bcrypt.CompareHashAndPasswordが常に呼ばれることを保証する
	passwordHash := "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy" // ダミーハッシュ
	if err == nil {
		passwordHash = user.Password
	}

	compareErr := bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(password))

	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return "", nil, ErrUserNotFound
		}
		return "", nil, err
	}
	if compareErr != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, tokenErr := u.generator.GenerateToken(user.ID, user.Email, user.IsAdmin)
	if tokenErr != nil {
		return "", nil, fmt.Errorf("failed to generate token: %w", tokenErr)
	}

	return token, user, nil
}

// Profile は認証済みユーザー自身のレコードを取得します。
func (u *userUsecase) Profile(ctx context.Context, userID uint) (*entity.User, error) {
	return u.users.FindByID(ctx, userID)
}

// PromoteToAdmin は指定されたユーザーを管理者に昇格します。
// 既に管理者の場合はErrAlreadyAdminを返します（上位層で409に変換されます）。
func (u *userUsecase) PromoteToAdmin(ctx context.Context, id uint) (*entity.User, error) {
	user, err := u.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user.IsAdmin {
		return nil, ErrAlreadyAdmin
	}
	return u.users.SetAdmin(ctx, id)
}

// ResetPassword は認証済みユーザー自身のパスワードを再設定します。
func (u *userUsecase) ResetPassword(ctx context.Context, userID uint, newPassword string) error {
	if err := validatePassword(newPassword); err != nil {
		return err
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	return u.users.UpdatePassword(ctx, userID, string(hashed))
}
