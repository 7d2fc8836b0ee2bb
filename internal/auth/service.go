// Package auth はパスワード認証とトークン発行のビジネスロジックを提供する。
package auth

import (
	"context"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/hitoshi/daybook/internal/model"
	"github.com/hitoshi/daybook/internal/repository"
)

const (
	// minPasswordLength はパスワードの最小文字数。
	minPasswordLength = 8
	// maxUsernameLength はユーザー名の最大文字数。
	maxUsernameLength = 30
)

// TokenIssuer は認証済みユーザーに対するトークン発行のインターフェース。
type TokenIssuer interface {
	// Issue は指定された時刻を発行時刻としてトークンを生成する。
	Issue(identity model.Identity, now time.Time) (string, error)
}

// Service は認証に関するビジネスロジックを提供する。
type Service struct {
	userRepo repository.UserRepository
	issuer   TokenIssuer
	now      func() time.Time
}

// NewService はServiceを生成する。
func NewService(userRepo repository.UserRepository, issuer TokenIssuer) *Service {
	return &Service{
		userRepo: userRepo,
		issuer:   issuer,
		now:      time.Now,
	}
}

// Register は新規ユーザーを登録する。
// メールアドレスまたはユーザー名が登録済みの場合はUSER_EXISTSエラーを返す。
// パスワードはbcryptでハッシュ化して保存する。
func (s *Service) Register(ctx context.Context, email, username, password string) (*model.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	username = strings.TrimSpace(username)

	if err := validateRegistration(email, username, password); err != nil {
		return nil, err
	}

	// 1. 重複チェック
	exists, err := s.userRepo.ExistsByEmailOrUsername(ctx, email, username)
	if err != nil {
		return nil, fmt.Errorf("failed to check user existence: %w", err)
	}
	if exists {
		return nil, model.NewUserExistsError()
	}

	// 2. パスワードのハッシュ化
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	// 3. ユーザー作成
	now := s.now()
	user := &model.User{
		ID:           uuid.New().String(),
		Email:        email,
		Username:     username,
		PasswordHash: string(hash),
		Role:         model.RoleUser,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	slog.Info("new user registered",
		slog.String("user_id", user.ID),
		slog.String("email", user.Email),
	)

	return user, nil
}

// Login はメールアドレスとパスワードでユーザーを認証し、トークンを発行する。
// 未登録メールアドレスとパスワード不一致は区別せず、
// 同一のINVALID_CREDENTIALSエラーを返す。
func (s *Service) Login(ctx context.Context, email, password string) (*model.User, string, error) {
	email = strings.TrimSpace(strings.ToLower(email))

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, "", fmt.Errorf("failed to find user: %w", err)
	}
	if user == nil {
		return nil, "", model.NewInvalidCredentialsError()
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", model.NewInvalidCredentialsError()
	}

	identity := model.Identity{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
	}

	token, err := s.issuer.Issue(identity, s.now())
	if err != nil {
		return nil, "", fmt.Errorf("failed to issue token: %w", err)
	}

	slog.Info("user logged in", slog.String("user_id", user.ID))

	return user, token, nil
}

// CurrentUser は認証済みユーザーIDから現在のユーザーを取得する。
func (s *Service) CurrentUser(ctx context.Context, userID string) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	if user == nil {
		return nil, model.NewUserNotFoundError()
	}
	return user, nil
}

// validateRegistration は登録リクエストの入力値を検証する。
func validateRegistration(email, username, password string) error {
	if email == "" {
		return model.NewValidationError("メールアドレスは必須です")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return model.NewValidationError("メールアドレスの形式が不正です")
	}
	if username == "" {
		return model.NewValidationError("ユーザー名は必須です")
	}
	if len([]rune(username)) > maxUsernameLength {
		return model.NewValidationError(fmt.Sprintf("ユーザー名は%d文字以内で入力してください", maxUsernameLength))
	}
	if len(password) < minPasswordLength {
		return model.NewValidationError(fmt.Sprintf("パスワードは%d文字以上で入力してください", minPasswordLength))
	}
	return nil
}
