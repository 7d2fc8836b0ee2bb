// Package repository はデータ永続化のインターフェースを定義する。
// 所有リソースの読み書きは常に所有者のユーザーIDでスコープされ、
// スコープなしの変更クエリは発行しない。
package repository

import (
	"context"
	"time"

	"github.com/hitoshi/daybook/internal/model"
)

// UserRepository はユーザーデータの永続化インターフェース。
type UserRepository interface {
	// FindByID は指定IDのユーザーを取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id string) (*model.User, error)

	// FindByEmail はメールアドレスでユーザーを検索する。見つからない場合はnilを返す。
	// パスワードハッシュを含む全フィールドを返す。
	FindByEmail(ctx context.Context, email string) (*model.User, error)

	// ExistsByEmailOrUsername はメールアドレスまたはユーザー名が登録済みかを返す。
	ExistsByEmailOrUsername(ctx context.Context, email, username string) (bool, error)

	// Create はユーザーを作成する。
	Create(ctx context.Context, user *model.User) error
}

// TaskRepository はタスクデータの永続化インターフェース。
type TaskRepository interface {
	// ListByUserID はユーザーのタスク一覧を作成日時の降順で返す。
	ListByUserID(ctx context.Context, userID string) ([]*model.Task, error)

	// FindByIDAndUser はIDと所有者でタスクを取得する。
	// 見つからない場合（他ユーザー所有を含む）はnilを返す。
	FindByIDAndUser(ctx context.Context, id, userID string) (*model.Task, error)

	// Create はタスクを作成する。
	Create(ctx context.Context, task *model.Task) error

	// Update はタスクを所有者スコープ付きで上書き更新する。
	Update(ctx context.Context, task *model.Task) error

	// Delete はIDと所有者でタスクを削除する。
	Delete(ctx context.Context, id, userID string) error
}

// HabitRepository は習慣データの永続化インターフェース。
type HabitRepository interface {
	// ListByUserID はユーザーの習慣一覧を作成日時の降順で返す。
	ListByUserID(ctx context.Context, userID string) ([]*model.Habit, error)

	// FindByIDAndUser はIDと所有者で習慣を取得する。
	// 見つからない場合（他ユーザー所有を含む）はnilを返す。
	FindByIDAndUser(ctx context.Context, id, userID string) (*model.Habit, error)

	// Create は習慣を作成する。
	Create(ctx context.Context, habit *model.Habit) error

	// UpdateStreak はストリークと最終完了日を条件付きで更新する。
	// prevLastCompletedが読み取り時の値と一致する行のみ更新する
	// （compare-and-swap）。条件を満たす行がなかった場合はfalseを返す。
	// 同一習慣への同時完了リクエストが二重にストリークを進める競合を防ぐ。
	UpdateStreak(ctx context.Context, id, userID string, streak int, lastCompleted time.Time, prevLastCompleted *time.Time) (bool, error)

	// Delete はIDと所有者で習慣を削除する。
	Delete(ctx context.Context, id, userID string) error
}

// EventRepository はカレンダー予定データの永続化インターフェース。
type EventRepository interface {
	// ListByUserID はユーザーの予定一覧を開始時刻の昇順で返す。
	ListByUserID(ctx context.Context, userID string) ([]*model.CalendarEvent, error)

	// FindByIDAndUser はIDと所有者で予定を取得する。
	// 見つからない場合（他ユーザー所有を含む）はnilを返す。
	FindByIDAndUser(ctx context.Context, id, userID string) (*model.CalendarEvent, error)

	// Create は予定を作成する。
	Create(ctx context.Context, event *model.CalendarEvent) error

	// Update は予定を所有者スコープ付きで上書き更新する。
	Update(ctx context.Context, event *model.CalendarEvent) error

	// Delete はIDと所有者で予定を削除する。
	Delete(ctx context.Context, id, userID string) error
}

// MoodRepository は気分記録データの永続化インターフェース。
type MoodRepository interface {
	// ListSince は指定日以降のユーザーの気分記録を日付の昇順で返す。
	ListSince(ctx context.Context, userID string, since time.Time) ([]*model.MoodEntry, error)

	// FindByUserAndDate はユーザーと日付で気分記録を検索する。見つからない場合はnilを返す。
	FindByUserAndDate(ctx context.Context, userID string, date time.Time) (*model.MoodEntry, error)

	// FindByIDAndUser はIDと所有者で気分記録を取得する。見つからない場合はnilを返す。
	FindByIDAndUser(ctx context.Context, id, userID string) (*model.MoodEntry, error)

	// Create は気分記録を作成する。
	Create(ctx context.Context, entry *model.MoodEntry) error

	// Delete はIDと所有者で気分記録を削除する。
	Delete(ctx context.Context, id, userID string) error
}
