package model

import "time"

// TaskStatus はタスクの進行状態を表す。
type TaskStatus string

const (
	// TaskStatusTodo は未着手のタスク。
	TaskStatusTodo TaskStatus = "todo"
	// TaskStatusInProgress は進行中のタスク。
	TaskStatusInProgress TaskStatus = "in-progress"
	// TaskStatusDone は完了したタスク。
	TaskStatusDone TaskStatus = "done"
	// TaskStatusArchived はアーカイブ済みのタスク。
	TaskStatusArchived TaskStatus = "archived"
)

// ValidTaskStatus はタスクステータスが定義済みの値かどうかを判定する。
func ValidTaskStatus(s TaskStatus) bool {
	switch s {
	case TaskStatusTodo, TaskStatusInProgress, TaskStatusDone, TaskStatusArchived:
		return true
	default:
		return false
	}
}

// Task はユーザーが管理するタスクを表す。
// 必ず1人のユーザーに属し、所有者以外から参照・変更されることはない。
type Task struct {
	ID          string
	UserID      string
	Title       string // 最大100文字
	Description string // 最大500文字
	Status      TaskStatus
	DueDate     *time.Time
	CreatedAt   time.Time
}
