package model

import "time"

// CalendarEvent はユーザーのカレンダー予定を表す。
type CalendarEvent struct {
	ID          string
	UserID      string
	Title       string
	Description string
	StartTime   time.Time
	EndTime     time.Time
	AllDay      bool
	CreatedAt   time.Time
}
