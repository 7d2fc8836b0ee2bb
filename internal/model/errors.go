package model

import "fmt"

// APIError は統一エラーフォーマットを表す。
// UIに表示する原因カテゴリと対処方法を含む。
type APIError struct {
	Code     string // エラーコード
	Message  string // エラーメッセージ
	Category string // カテゴリ: auth, validation, resource, system
	Action   string // ユーザー向け対処方法
}

// Error はerrorインターフェースを実装する。
func (e *APIError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// 定義済みエラーコード
const (
	ErrCodeUnauthorized       = "UNAUTHORIZED"
	ErrCodeInvalidCredentials = "INVALID_CREDENTIALS"
	ErrCodeUserExists         = "USER_EXISTS"
	ErrCodeValidation         = "VALIDATION_ERROR"
	ErrCodeTaskNotFound       = "TASK_NOT_FOUND"
	ErrCodeHabitNotFound      = "HABIT_NOT_FOUND"
	ErrCodeEventNotFound      = "EVENT_NOT_FOUND"
	ErrCodeMoodNotFound       = "MOOD_NOT_FOUND"
	ErrCodeMoodAlreadyExists  = "MOOD_ALREADY_RECORDED"
	ErrCodeQuoteUnavailable   = "QUOTE_UNAVAILABLE"
	ErrCodeUserNotFound       = "USER_NOT_FOUND"
)

// NewUnauthorizedError は未認証エラーを生成する。
func NewUnauthorizedError() *APIError {
	return &APIError{
		Code:     ErrCodeUnauthorized,
		Message:  "認証が必要です。",
		Category: "auth",
		Action:   "ログインしてください。",
	}
}

// NewInvalidCredentialsError は認証情報不一致エラーを生成する。
// メールアドレス不明とパスワード不一致を区別しない（存在の漏洩を防ぐ）。
func NewInvalidCredentialsError() *APIError {
	return &APIError{
		Code:     ErrCodeInvalidCredentials,
		Message:  "メールアドレスまたはパスワードが正しくありません。",
		Category: "auth",
		Action:   "入力内容を確認して再度お試しください。",
	}
}

// NewUserExistsError はメールアドレスまたはユーザー名の重複エラーを生成する。
func NewUserExistsError() *APIError {
	return &APIError{
		Code:     ErrCodeUserExists,
		Message:  "このメールアドレスまたはユーザー名は既に登録されています。",
		Category: "validation",
		Action:   "別のメールアドレスまたはユーザー名を使用してください。",
	}
}

// NewValidationError は入力値の検証エラーを生成する。
func NewValidationError(reason string) *APIError {
	return &APIError{
		Code:     ErrCodeValidation,
		Message:  fmt.Sprintf("入力内容に誤りがあります: %s", reason),
		Category: "validation",
		Action:   "入力内容を修正して再度お試しください。",
	}
}

// NewTaskNotFoundError はタスク未検出エラーを生成する。
// 他ユーザー所有のタスクも同じエラーになる（存在の漏洩を防ぐ）。
func NewTaskNotFoundError(taskID string) *APIError {
	return &APIError{
		Code:     ErrCodeTaskNotFound,
		Message:  fmt.Sprintf("指定されたタスクが見つかりません: %s", taskID),
		Category: "resource",
		Action:   "タスクIDを確認してください。",
	}
}

// NewHabitNotFoundError は習慣未検出エラーを生成する。
func NewHabitNotFoundError(habitID string) *APIError {
	return &APIError{
		Code:     ErrCodeHabitNotFound,
		Message:  fmt.Sprintf("指定された習慣が見つかりません: %s", habitID),
		Category: "resource",
		Action:   "習慣IDを確認してください。",
	}
}

// NewEventNotFoundError は予定未検出エラーを生成する。
func NewEventNotFoundError(eventID string) *APIError {
	return &APIError{
		Code:     ErrCodeEventNotFound,
		Message:  fmt.Sprintf("指定された予定が見つかりません: %s", eventID),
		Category: "resource",
		Action:   "予定IDを確認してください。",
	}
}

// NewMoodNotFoundError は気分記録未検出エラーを生成する。
func NewMoodNotFoundError(entryID string) *APIError {
	return &APIError{
		Code:     ErrCodeMoodNotFound,
		Message:  fmt.Sprintf("指定された気分記録が見つかりません: %s", entryID),
		Category: "resource",
		Action:   "記録IDを確認してください。",
	}
}

// NewMoodAlreadyExistsError は同一日の気分記録重複エラーを生成する。
func NewMoodAlreadyExistsError() *APIError {
	return &APIError{
		Code:     ErrCodeMoodAlreadyExists,
		Message:  "この日付の気分は既に記録されています。",
		Category: "validation",
		Action:   "記録済みの気分を確認してください。",
	}
}

// NewQuoteUnavailableError は外部名言APIの取得失敗エラーを生成する。
func NewQuoteUnavailableError() *APIError {
	return &APIError{
		Code:     ErrCodeQuoteUnavailable,
		Message:  "名言の取得に失敗しました。",
		Category: "system",
		Action:   "しばらく待ってから再度お試しください。",
	}
}

// NewUserNotFoundError はユーザーが見つからない場合のエラーを生成する。
func NewUserNotFoundError() *APIError {
	return &APIError{
		Code:     ErrCodeUserNotFound,
		Message:  "ユーザーが見つかりません。",
		Category: "auth",
		Action:   "ログインし直してください。",
	}
}
