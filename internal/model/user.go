// Package model はドメインモデルを定義する。
package model

import "time"

// Role はユーザーの権限種別を表す。
type Role string

const (
	// RoleUser は一般ユーザー。
	RoleUser Role = "user"
	// RoleAdmin は管理者ユーザー。
	RoleAdmin Role = "admin"
)

// User はサービス利用ユーザーを表す。
// PasswordHashはbcryptハッシュであり、APIレスポンスには含めない。
type User struct {
	ID           string
	Email        string
	Username     string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Identity はトークンから復元された認証済みユーザー情報を表す。
// サーバー側にセッションストアは持たず、リクエストごとにトークンから導出する。
type Identity struct {
	UserID string
	Email  string
	Role   Role
}
