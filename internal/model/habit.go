package model

import "time"

// Habit はユーザーが毎日継続する習慣を表す。
// Streakは LastCompleted を最終日とする連続完了日数を反映する。
// StreakとLastCompletedの更新は習慣完了の状態遷移（habitパッケージ）のみが行う。
type Habit struct {
	ID            string
	UserID        string
	Name          string // 最大100文字
	Streak        int    // 0以上
	LastCompleted *time.Time // 日付のみ（時刻は切り捨て済み）
	CreatedAt     time.Time
}
