package model

import "time"

// MoodEntry はユーザーの1日1件の気分記録を表す。
// Dateは日付のみ（時刻は切り捨て済み）で、ユーザーごとに同一日付の記録は1件に制約される。
type MoodEntry struct {
	ID        string
	UserID    string
	Mood      string
	Date      time.Time
	CreatedAt time.Time
}
