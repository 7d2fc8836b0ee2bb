// Package middleware はHTTPミドルウェアを提供する。
package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/hitoshi/daybook/internal/model"
)

// TokenCookieName はセッショントークンを保持するCookieの名前。
const TokenCookieName = "token"

// contextKey はコンテキストに値を格納するための型安全なキー。
type contextKey string

// identityContextKey はリクエストコンテキストに認証済みユーザー情報を格納するためのキー。
var identityContextKey = contextKey("identity")

// TokenVerifier はトークン検証に必要なインターフェース。
// token.Codecの部分集合として定義する。
type TokenVerifier interface {
	Verify(tokenString string) (model.Identity, error)
}

// Resolution はリクエストの認証解決結果を表す。
type Resolution int

const (
	// ResolutionAuthenticated は有効なトークンが提示されたことを示す。
	ResolutionAuthenticated Resolution = iota
	// ResolutionAnonymous はトークンが提示されなかったことを示す。
	ResolutionAnonymous
	// ResolutionInvalid はトークンが提示されたが検証に失敗したことを示す。
	ResolutionInvalid
)

// ResolveIdentity はリクエストのCookieからトークンを取り出し検証する。
// トークン不在・検証失敗はエラーではなく通常の解決結果として返す。
// 副作用はない。
func ResolveIdentity(r *http.Request, verifier TokenVerifier) (model.Identity, Resolution) {
	cookie, err := r.Cookie(TokenCookieName)
	if err != nil || cookie.Value == "" {
		return model.Identity{}, ResolutionAnonymous
	}

	identity, err := verifier.Verify(cookie.Value)
	if err != nil {
		return model.Identity{}, ResolutionInvalid
	}

	return identity, ResolutionAuthenticated
}

// AuthConfig は認証ミドルウェアの設定。
type AuthConfig struct {
	Verifier     TokenVerifier
	CookieSecure bool
	CookieDomain string
}

// NewAuthMiddleware は認証の境界を1箇所で強制するミドルウェアを返す。
//
// パスごとの判定:
//   - 公開パス（登録・ログイン・ログアウトAPI、/login, /register, /static/*, /healthz, /metrics）は素通しする
//   - 認証済みリクエストはユーザー情報をコンテキストに注入して通す
//   - 未認証のAPIパス（/api/*）は401のJSONを返す
//   - 未認証のページパスは/loginへリダイレクトする。トークンが「無効」
//     （不在ではなく検証失敗）の場合は、古いCookieの削除も指示する
//
// 後段のハンドラーは認証を再検証せず、コンテキストの解決済みユーザーIDを信頼する。
func NewAuthMiddleware(config AuthConfig) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if isPublicPath(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			identity, resolution := ResolveIdentity(r, config.Verifier)
			if resolution == ResolutionAuthenticated {
				recordLogUserID(r.Context(), identity.UserID)
				ctx := ContextWithIdentity(r.Context(), identity)
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}

			if strings.HasPrefix(r.URL.Path, "/api/") {
				WriteErrorResponse(w, http.StatusUnauthorized, model.NewUnauthorizedError())
				return
			}

			// ページパス: ログイン画面へ誘導する。無効なトークンはこの時点で破棄させる
			if resolution == ResolutionInvalid {
				http.SetCookie(w, &http.Cookie{
					Name:     TokenCookieName,
					Value:    "",
					Path:     "/",
					Domain:   config.CookieDomain,
					Expires:  time.Unix(0, 0),
					MaxAge:   -1,
					HttpOnly: true,
					Secure:   config.CookieSecure,
					SameSite: http.SameSiteStrictMode,
				})
			}
			http.Redirect(w, r, "/login", http.StatusTemporaryRedirect)
		})
	}
}

// isPublicPath は認証なしでアクセスできるパスかどうかを判定する。
// /api/auth/meは現在のユーザー情報を返すため公開パスに含めない。
func isPublicPath(path string) bool {
	switch path {
	case "/login", "/register", "/healthz", "/metrics", "/favicon.ico",
		"/api/auth/register", "/api/auth/login", "/api/auth/logout":
		return true
	}
	return strings.HasPrefix(path, "/static/")
}

// IdentityFromContext はリクエストコンテキストから認証済みユーザー情報を取得する。
// 認証ミドルウェアを通過したリクエストでのみ有効。
func IdentityFromContext(ctx context.Context) (model.Identity, error) {
	identity, ok := ctx.Value(identityContextKey).(model.Identity)
	if !ok || identity.UserID == "" {
		return model.Identity{}, fmt.Errorf("identity not found in context")
	}
	return identity, nil
}

// UserIDFromContext はリクエストコンテキストから認証済みユーザーIDを取得する。
func UserIDFromContext(ctx context.Context) (string, error) {
	identity, err := IdentityFromContext(ctx)
	if err != nil {
		return "", err
	}
	return identity.UserID, nil
}

// ContextWithIdentity はコンテキストに認証済みユーザー情報を注入する。
// テストやミドルウェア以外のコンテキスト生成で使用する。
func ContextWithIdentity(ctx context.Context, identity model.Identity) context.Context {
	return context.WithValue(ctx, identityContextKey, identity)
}
