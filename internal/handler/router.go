package handler

import (
	"log/slog"
	"net/http"
	"path/filepath"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/hitoshi/daybook/internal/metrics"
	"github.com/hitoshi/daybook/internal/middleware"
)

// RouterDeps はNewRouterに必要な依存関係をまとめた構造体。
type RouterDeps struct {
	// ミドルウェア依存
	TokenVerifier     middleware.TokenVerifier
	CookieSecure      bool
	CookieDomain      string
	CORSAllowedOrigin string
	RateLimiter       *middleware.RateLimiter
	Logger            *slog.Logger

	// メトリクス
	Metrics  metrics.MetricsCollector
	Gatherer prometheus.Gatherer

	// 静的ファイル
	StaticDir string

	// サービス
	AuthService  AuthServiceInterface
	AuthConfig   AuthHandlerConfig
	TaskService  TaskServiceInterface
	HabitService HabitServiceInterface
	EventService EventServiceInterface
	MoodService  MoodServiceInterface
	QuoteClient  QuoteClientInterface
}

// NewRouter は全エンドポイントのルーティングとミドルウェアチェーンを構成したchi.Routerを返す。
//
// ミドルウェアスタックの実行順序:
//
//	CORS → SecurityHeaders → Logging → Metrics → Recovery → Auth
//
// 認証はAuthミドルウェアの1箇所でのみ強制し、後段のハンドラーは
// コンテキストの解決済みユーザーIDを信頼する。
// APIレート制限は認証後のグループにのみ適用し、ログイン試行には
// 接続元IP単位の専用制限を適用する。
func NewRouter(deps *RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.NewCORSMiddleware(deps.CORSAllowedOrigin))
	r.Use(middleware.NewSecurityHeadersMiddleware())
	r.Use(middleware.NewLoggingMiddleware(deps.Logger))
	if deps.Metrics != nil {
		r.Use(middleware.NewMetricsMiddleware(deps.Metrics))
	}
	r.Use(middleware.NewRecoveryMiddleware())
	r.Use(middleware.NewAuthMiddleware(middleware.AuthConfig{
		Verifier:     deps.TokenVerifier,
		CookieSecure: deps.CookieSecure,
		CookieDomain: deps.CookieDomain,
	}))

	authHandler := NewAuthHandler(deps.AuthService, deps.Metrics, deps.AuthConfig)
	taskHandler := NewTaskHandler(deps.TaskService)
	habitHandler := NewHabitHandler(deps.HabitService, deps.Metrics)
	eventHandler := NewEventHandler(deps.EventService)
	moodHandler := NewMoodHandler(deps.MoodService)
	quoteHandler := NewQuoteHandler(deps.QuoteClient, deps.Metrics)

	// --- 公開ルート ---

	r.Route("/api/auth", func(r chi.Router) {
		r.Post("/register", authHandler.Register)
		// ログイン試行はIP単位のレート制限でパスワード総当たりを抑止する
		r.With(deps.RateLimiter.LoginMiddleware()).Post("/login", authHandler.Login)
		r.Post("/logout", authHandler.Logout)
		r.Get("/me", authHandler.Me)
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	if deps.Gatherer != nil {
		r.Handle("/metrics", metrics.Handler(deps.Gatherer))
	}

	// 静的ファイルとページ
	r.Get("/login", servePage(deps.StaticDir, "login.html"))
	r.Get("/register", servePage(deps.StaticDir, "register.html"))
	r.Get("/", servePage(deps.StaticDir, "index.html"))
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.Dir(deps.StaticDir))))

	// --- 認証が必要なルート ---
	r.Group(func(r chi.Router) {
		r.Use(deps.RateLimiter.GeneralMiddleware())

		r.Route("/api/tasks", func(r chi.Router) {
			r.Get("/", taskHandler.ListTasks)
			r.Post("/", taskHandler.CreateTask)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", taskHandler.GetTask)
				r.Put("/", taskHandler.UpdateTask)
				r.Delete("/", taskHandler.DeleteTask)
			})
		})

		r.Route("/api/habits", func(r chi.Router) {
			r.Get("/", habitHandler.ListHabits)
			r.Post("/", habitHandler.CreateHabit)

			r.Route("/{id}", func(r chi.Router) {
				// PUTは「今日完了した」の記録
				r.Put("/", habitHandler.CompleteHabit)
				r.Delete("/", habitHandler.DeleteHabit)
			})
		})

		r.Route("/api/events", func(r chi.Router) {
			r.Get("/", eventHandler.ListEvents)
			r.Post("/", eventHandler.CreateEvent)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", eventHandler.GetEvent)
				r.Put("/", eventHandler.UpdateEvent)
				r.Delete("/", eventHandler.DeleteEvent)
			})
		})

		r.Route("/api/mood", func(r chi.Router) {
			r.Get("/", moodHandler.History)
			r.Post("/", moodHandler.Record)
			r.Post("/suggestion", moodHandler.Suggestion)
			r.Delete("/{id}", moodHandler.Delete)
		})

		r.Get("/api/quote", quoteHandler.GetQuote)
	})

	return r
}

// servePage は静的ディレクトリ配下のHTMLページを返すハンドラーを生成する。
func servePage(staticDir, filename string) http.HandlerFunc {
	path := filepath.Join(staticDir, filename)
	return func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, path)
	}
}
