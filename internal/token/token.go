// Package token は署名付きセッショントークンの発行と検証を提供する。
// サーバー側にセッションストアは持たず、同じ秘密鍵を持つ任意のインスタンスが
// 任意のトークンを検証できる。
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/hitoshi/daybook/internal/model"
)

// DefaultTTL はトークンの有効期間。発行時刻から24時間で失効する。
const DefaultTTL = 24 * time.Hour

// ErrInvalidToken は検証に失敗したトークンを表す。
// 署名不一致・形式不正・期限切れはすべてこのエラーに集約される。
// 失敗理由を呼び出し側に区別させない（オラクル化を防ぐ）。
var ErrInvalidToken = errors.New("invalid token")

// Claims はトークンに埋め込むユーザー情報。
type Claims struct {
	jwt.RegisteredClaims
	Email string     `json:"email"`
	Role  model.Role `json:"role"`
}

// Codec はトークンの発行と検証を行う。
// 秘密鍵は起動時に設定から注入され、以後変更されない。
type Codec struct {
	secret []byte
	ttl    time.Duration
}

// NewCodec はCodecを生成する。ttlが0の場合はDefaultTTLを使用する。
func NewCodec(secret []byte, ttl time.Duration) *Codec {
	if ttl == 0 {
		ttl = DefaultTTL
	}
	return &Codec{secret: secret, ttl: ttl}
}

// Issue は認証済みユーザーの署名付きトークンを発行する。
// HMAC-SHA256で署名し、発行時刻と有効期限をクレームに含める。
func (c *Codec) Issue(identity model.Identity, now time.Time) (string, error) {
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   identity.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		},
		Email: identity.Email,
		Role:  identity.Role,
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(c.secret)
	if err != nil {
		return "", err
	}

	return signed, nil
}

// Verify はトークンの署名と有効期限を検証し、埋め込まれたユーザー情報を返す。
// いかなる検証失敗もErrInvalidTokenとして返す。
func (c *Codec) Verify(tokenString string) (model.Identity, error) {
	claims := &Claims{}

	tok, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		// alg none等へのダウングレードを拒否する
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return c.secret, nil
	})
	if err != nil || !tok.Valid {
		return model.Identity{}, ErrInvalidToken
	}

	return model.Identity{
		UserID: claims.Subject,
		Email:  claims.Email,
		Role:   claims.Role,
	}, nil
}
