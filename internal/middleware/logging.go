package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"time"
)

// statusRecorder はhttp.ResponseWriterをラップし、ステータスコードを記録する。
type statusRecorder struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

// WriteHeader はステータスコードを記録してから委譲する。
func (sr *statusRecorder) WriteHeader(code int) {
	if !sr.written {
		sr.statusCode = code
		sr.written = true
	}
	sr.ResponseWriter.WriteHeader(code)
}

// Write はデータを書き込む。WriteHeaderが未呼び出しの場合は200を記録する。
func (sr *statusRecorder) Write(b []byte) (int, error) {
	if !sr.written {
		sr.statusCode = http.StatusOK
		sr.written = true
	}
	return sr.ResponseWriter.Write(b)
}

// requestLogContext は内側のミドルウェアから外側のロギングミドルウェアへ
// 認証結果を伝えるための入れ物。認証はロギングの内側で解決されるため、
// コンテキストの値だけではロギング側から参照できない。
type requestLogContext struct {
	userID string
}

// logContextKey はrequestLogContextをコンテキストに格納するためのキー。
var logContextKey = contextKey("log_context")

// recordLogUserID はロギングミドルウェアの入れ物に認証済みユーザーIDを記録する。
// 入れ物がない場合（ロギングミドルウェア不使用時）は何もしない。
func recordLogUserID(ctx context.Context, userID string) {
	if lc, ok := ctx.Value(logContextKey).(*requestLogContext); ok {
		lc.userID = userID
	}
}

// levelForStatus はHTTPステータスコードに応じたログレベルを返す。
// 5xxはERROR、4xxはWARN、それ以外はINFO。
func levelForStatus(statusCode int) slog.Level {
	switch {
	case statusCode >= 500:
		return slog.LevelError
	case statusCode >= 400:
		return slog.LevelWarn
	default:
		return slog.LevelInfo
	}
}

// NewLoggingMiddleware はリクエストのJSON構造化ログを出力するミドルウェアを返す。
// ログにはmethod、path、status、duration_ms、user_id（認証済みの場合）を含む。
func NewLoggingMiddleware(logger *slog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			rec := &statusRecorder{
				ResponseWriter: w,
				statusCode:     http.StatusOK,
			}

			lc := &requestLogContext{}
			r = r.WithContext(context.WithValue(r.Context(), logContextKey, lc))

			next.ServeHTTP(rec, r)

			durationMs := float64(time.Since(start).Nanoseconds()) / float64(time.Millisecond)

			args := []any{
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", rec.statusCode),
				slog.Float64("duration_ms", durationMs),
			}
			userID := lc.userID
			if userID == "" {
				// 認証ミドルウェアより前に認証済みコンテキストが作られているケース
				if id, err := UserIDFromContext(r.Context()); err == nil {
					userID = id
				}
			}
			if userID != "" {
				args = append(args, slog.String("user_id", userID))
			}

			logger.Log(r.Context(), levelForStatus(rec.statusCode), "http_request", args...)
		})
	}
}
