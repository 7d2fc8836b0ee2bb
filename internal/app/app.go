package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/time/rate"

	"github.com/hitoshi/daybook/internal/auth"
	"github.com/hitoshi/daybook/internal/config"
	"github.com/hitoshi/daybook/internal/database"
	"github.com/hitoshi/daybook/internal/event"
	"github.com/hitoshi/daybook/internal/habit"
	"github.com/hitoshi/daybook/internal/handler"
	"github.com/hitoshi/daybook/internal/logger"
	"github.com/hitoshi/daybook/internal/metrics"
	"github.com/hitoshi/daybook/internal/middleware"
	"github.com/hitoshi/daybook/internal/mood"
	"github.com/hitoshi/daybook/internal/quote"
	"github.com/hitoshi/daybook/internal/repository"
	"github.com/hitoshi/daybook/internal/security"
	"github.com/hitoshi/daybook/internal/task"
	"github.com/hitoshi/daybook/internal/token"
)

// Init はアプリケーションの初期化を行う。
// 環境変数からConfigを読み込み、JSON構造化ログをセットアップする。
// writerが指定された場合はログ出力先としてそのwriterを使用する。
func Init(w io.Writer) (*config.Config, error) {
	// 1. ログの初期化（設定読み込み前にログを使えるようにする）
	logger.SetupDefault(w)

	// 2. 環境変数から設定を読み込む
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	return cfg, nil
}

// Run はアプリケーションのメインエントリーポイント。
// コマンドライン引数からサブコマンドを解析し、対応するモードで起動する。
// argsにはos.Args[1:]を渡す。
func Run(w io.Writer, args []string) error {
	cmd := ParseCommand(args)

	// healthcheck は軽量サブコマンドのため、フル初期化をスキップする
	if cmd == CommandHealthcheck {
		port := os.Getenv("SERVER_PORT")
		if port == "" {
			port = "8080"
		}
		return runHealthcheck(port)
	}

	cfg, err := Init(w)
	if err != nil {
		return fmt.Errorf("initialization failed: %w", err)
	}

	slog.Info("starting application",
		slog.String("command", string(cmd)),
		slog.String("port", cfg.ServerPort),
		slog.String("base_url", cfg.BaseURL),
	)

	switch cmd {
	case CommandMigrate:
		return runMigrate(cfg)
	default:
		return runServe(cfg)
	}
}

// runServe はWebサーバーモードで起動する。
// DB接続を開き、全依存関係をワイヤリングし、HTTPサーバーを起動する。
// SIGINTまたはSIGTERMシグナルを受信するとグレースフルシャットダウンを行う。
func runServe(cfg *config.Config) error {
	// 1. DB接続
	db, err := database.Open(cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	slog.Info("database connection established")

	// 2. リポジトリの初期化
	userRepo := repository.NewPostgresUserRepo(db)
	taskRepo := repository.NewPostgresTaskRepo(db)
	habitRepo := repository.NewPostgresHabitRepo(db)
	eventRepo := repository.NewPostgresEventRepo(db)
	moodRepo := repository.NewPostgresMoodRepo(db)

	// 3. セキュリティサービスの初期化
	sanitizer := security.NewInputSanitizer()
	outboundGuard := security.NewOutboundGuard()

	// 4. トークンコーデックの初期化
	codec := token.NewCodec([]byte(cfg.JWTSecret), time.Duration(cfg.TokenMaxAge)*time.Second)

	// 5. ドメインサービスの初期化
	authService := auth.NewService(userRepo, codec)
	taskService := task.NewService(taskRepo, sanitizer)
	habitService := habit.NewService(habitRepo, sanitizer)
	eventService := event.NewService(eventRepo, sanitizer)
	moodService := mood.NewService(moodRepo)

	// 6. 名言クライアントの初期化（外部APIへの接続はSSRFガード付きクライアント経由）
	quoteClient, err := newQuoteClient(outboundGuard, cfg)
	if err != nil {
		return err
	}

	// 7. メトリクスの初期化
	registry := prometheus.NewRegistry()
	collector := metrics.NewCollector(registry)

	// 8. レート制限の初期化（configはreq/min単位なのでreq/secに変換する）
	rateLimiterCfg := middleware.DefaultRateLimiterConfig()
	rateLimiterCfg.GeneralRate = rate.Limit(float64(cfg.RateLimitGeneral) / 60.0)
	rateLimiterCfg.GeneralBurst = cfg.RateLimitGeneral
	rateLimiterCfg.LoginRate = rate.Limit(float64(cfg.RateLimitLogin) / 60.0)
	rateLimiterCfg.LoginBurst = cfg.RateLimitLogin
	rateLimiter := middleware.NewRateLimiter(rateLimiterCfg)
	defer rateLimiter.Stop()

	// 9. ルーターの構築
	router := handler.NewRouter(&handler.RouterDeps{
		TokenVerifier:     codec,
		CookieSecure:      cfg.CookieSecure,
		CookieDomain:      cfg.CookieDomain,
		CORSAllowedOrigin: cfg.CORSAllowedOrigin,
		RateLimiter:       rateLimiter,
		Logger:            slog.Default(),

		Metrics:  collector,
		Gatherer: registry,

		StaticDir: cfg.StaticDir,

		AuthService: authService,
		AuthConfig: handler.AuthHandlerConfig{
			CookieDomain: cfg.CookieDomain,
			CookieSecure: cfg.CookieSecure,
			TokenMaxAge:  cfg.TokenMaxAge,
		},
		TaskService:  taskService,
		HabitService: habitService,
		EventService: eventService,
		MoodService:  moodService,
		QuoteClient:  quoteClient,
	})

	// 10. HTTPサーバーの起動
	server := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// グレースフルシャットダウンのためのシグナルハンドリング
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting",
			slog.String("addr", server.Addr),
		)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server listen error", slog.String("error", err.Error()))
		}
	}()

	<-stop
	slog.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	slog.Info("server stopped gracefully")
	return nil
}

// newQuoteClient は外部名言APIのクライアントを生成する。
// 設定値由来のエンドポイントが内部ネットワークを指していないことを
// 起動時に検証し、不正なURLの場合は起動を失敗させる。
func newQuoteClient(guard security.OutboundGuardService, cfg *config.Config) (*quote.Client, error) {
	if err := guard.ValidateURL(cfg.QuoteAPIURL); err != nil {
		return nil, fmt.Errorf("invalid quote API URL: %w", err)
	}

	return quote.NewClient(
		guard.NewSafeClient(cfg.QuoteTimeout),
		slog.Default(),
		cfg.QuoteAPIURL,
	), nil
}

// runMigrate はデータベースマイグレーションを実行する。
// すべての未適用マイグレーションを順番に適用する。
func runMigrate(cfg *config.Config) error {
	slog.Info("running database migrations",
		slog.String("database_url", maskDatabaseURL(cfg.DatabaseURL)),
	)

	if err := database.RunMigrations(cfg.DatabaseURL); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	slog.Info("database migrations completed successfully")
	return nil
}

// runHealthcheck はヘルスチェックを実行する。
// distroless環境でのDockerヘルスチェック用サブコマンド。
// /healthz エンドポイントにHTTPリクエストを送り、結果を返す。
func runHealthcheck(port string) error {
	url := fmt.Sprintf("http://localhost:%s/healthz", port)
	client := &http.Client{Timeout: 5 * time.Second}

	resp, err := client.Get(url)
	if err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health check returned status %d", resp.StatusCode)
	}

	return nil
}

// maskDatabaseURL はデータベースURLの認証情報をマスクする。
func maskDatabaseURL(url string) string {
	if len(url) > 20 {
		return url[:12] + "***@..."
	}
	return "***"
}
