// Package habit は習慣トラッキングのドメインロジックを提供する。
package habit

import (
	"time"

	"github.com/hitoshi/daybook/internal/dateutil"
)

// Outcome は習慣完了操作の結果種別を表す。
type Outcome string

const (
	// OutcomeAlreadyCompleted は当日すでに完了済みで状態が変化しなかったことを示す。
	OutcomeAlreadyCompleted Outcome = "already_completed"
	// OutcomeIncremented は前日から連続してストリークが伸びたことを示す。
	OutcomeIncremented Outcome = "incremented"
	// OutcomeReset は連続が途切れ、ストリークが1から再開したことを示す。
	OutcomeReset Outcome = "reset"
)

// StreakState は習慣の完了状態を表す。
// LastCompletedがnilの場合は一度も完了していない。
type StreakState struct {
	LastCompleted *time.Time
	Streak        int
}

// CompleteToday は「今日完了した」を状態に適用した結果を返す。
// 入力の時刻は日付のみに正規化される。純粋関数であり、元の状態は変更しない。
//
// 遷移規則:
//   - 最終完了日 == 今日      → 変化なし（同一日内は冪等）
//   - 最終完了日 == 昨日      → Streak+1
//   - それ以外（2日以上の間隔、または初回） → Streak=1
func CompleteToday(state StreakState, today time.Time) (StreakState, Outcome) {
	day := dateutil.Truncate(today)

	if state.LastCompleted != nil {
		last := dateutil.Truncate(*state.LastCompleted)

		if last.Equal(day) {
			return state, OutcomeAlreadyCompleted
		}

		if dateutil.DaysBetween(last, day) == 1 {
			return StreakState{LastCompleted: &day, Streak: state.Streak + 1}, OutcomeIncremented
		}
	}

	return StreakState{LastCompleted: &day, Streak: 1}, OutcomeReset
}
