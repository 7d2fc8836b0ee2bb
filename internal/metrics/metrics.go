// Package metrics はPrometheusメトリクスの収集と公開を提供する。
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsCollector はメトリクス収集のインターフェース。
// ハンドラーやサービス層から利用する。
type MetricsCollector interface {
	RecordHTTPStatus(statusCode int)
	RecordRequestLatency(duration time.Duration)
	RecordLoginAttempt(success bool)
	RecordHabitCompletion(outcome string)
	RecordQuoteFetch(success bool)
}

// Collector はPrometheusメトリクスを収集する実装。
type Collector struct {
	httpStatus      *prometheus.CounterVec
	requestLatency  prometheus.Histogram
	loginAttempts   *prometheus.CounterVec
	habitCompletion *prometheus.CounterVec
	quoteFetch      *prometheus.CounterVec
}

// NewCollector は新しいCollectorを生成し、指定されたレジストリにメトリクスを登録する。
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		httpStatus: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "daybook_http_status_total",
			Help: "HTTPステータスコード別のレスポンス数",
		}, []string{"status_code"}),
		requestLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "daybook_request_latency_seconds",
			Help:    "HTTPリクエスト処理のレイテンシ（秒）",
			Buckets: prometheus.DefBuckets,
		}),
		loginAttempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "daybook_login_attempts_total",
			Help: "ログイン試行の結果別の合計数",
		}, []string{"result"}),
		habitCompletion: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "daybook_habit_completions_total",
			Help: "習慣完了操作の結果別の合計数",
		}, []string{"outcome"}),
		quoteFetch: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "daybook_quote_fetch_total",
			Help: "名言API取得の結果別の合計数",
		}, []string{"result"}),
	}

	reg.MustRegister(
		c.httpStatus,
		c.requestLatency,
		c.loginAttempts,
		c.habitCompletion,
		c.quoteFetch,
	)

	return c
}

// RecordHTTPStatus はHTTPステータスコードを記録する。
func (c *Collector) RecordHTTPStatus(statusCode int) {
	c.httpStatus.WithLabelValues(strconv.Itoa(statusCode)).Inc()
}

// RecordRequestLatency はリクエスト処理のレイテンシを記録する。
func (c *Collector) RecordRequestLatency(duration time.Duration) {
	c.requestLatency.Observe(duration.Seconds())
}

// RecordLoginAttempt はログイン試行の成否を記録する。
func (c *Collector) RecordLoginAttempt(success bool) {
	c.loginAttempts.WithLabelValues(resultLabel(success)).Inc()
}

// RecordHabitCompletion は習慣完了操作の結果を記録する。
// outcomeにはhabitパッケージのOutcome値を渡す。
func (c *Collector) RecordHabitCompletion(outcome string) {
	c.habitCompletion.WithLabelValues(outcome).Inc()
}

// RecordQuoteFetch は名言API取得の成否を記録する。
func (c *Collector) RecordQuoteFetch(success bool) {
	c.quoteFetch.WithLabelValues(resultLabel(success)).Inc()
}

func resultLabel(success bool) string {
	if success {
		return "success"
	}
	return "failure"
}

// Handler はPrometheusスクレイプ用のHTTPハンドラーを返す。
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
