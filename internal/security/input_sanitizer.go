// Package security はアプリケーションのセキュリティ機能を提供する。
//
// InputSanitizerService はユーザー入力の自由記述テキスト（タスクのタイトルや
// 説明、習慣名、予定のタイトル等）をサニタイズし、保存データへのHTML混入を防ぐ。
// bluemondayのStrictPolicyを使用し、すべてのタグを除去する。
package security

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// InputSanitizerService はユーザー入力テキストのサニタイズ機能のインターフェースを定義する。
// 各リソースの作成・更新リクエストの保存前に使用される。
type InputSanitizerService interface {
	// Sanitize は入力テキストからすべてのHTMLタグを除去し、
	// 前後の空白をトリムして返す。
	// 空文字列の入力には空文字列を返す。
	// 同一入力に対して常に同一出力を返す（冪等）。
	Sanitize(input string) string
}

// inputSanitizer はInputSanitizerServiceの実装。
// bluemondayのStrictPolicyを保持し、スレッドセーフにサニタイズ処理を行う。
type inputSanitizer struct {
	policy *bluemonday.Policy
}

// NewInputSanitizer はInputSanitizerServiceの新しいインスタンスを生成する。
// StrictPolicyはすべてのタグと属性を除去し、テキストのみを残す。
func NewInputSanitizer() *inputSanitizer {
	return &inputSanitizer{
		policy: bluemonday.StrictPolicy(),
	}
}

// Sanitize は入力テキストからHTMLタグを除去して返す。
func (s *inputSanitizer) Sanitize(input string) string {
	return strings.TrimSpace(s.policy.Sanitize(input))
}
