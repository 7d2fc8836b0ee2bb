// Package dateutil は日付正規化のユーティリティを提供する。
// 気分記録と習慣トラッキングの両方がこのパッケージで時刻を切り捨てる。
package dateutil

import "time"

// Truncate は時刻を切り捨てて日付のみ（その日の00:00:00 UTC）にする。
// タイムゾーンの異なる2つの時刻でも、同じUTC日付なら同じ値に正規化される。
func Truncate(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// SameDay は2つの時刻が同じUTC日付かどうかを判定する。
func SameDay(a, b time.Time) bool {
	return Truncate(a).Equal(Truncate(b))
}

// DaysBetween は2つの時刻の日付差（b - a、暦日単位）を返す。
func DaysBetween(a, b time.Time) int {
	return int(Truncate(b).Sub(Truncate(a)).Hours() / 24)
}
