package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/hitoshi/daybook/internal/model"
	"github.com/hitoshi/daybook/internal/quote"
)

// QuoteClientInterface は名言ハンドラーが必要とするクライアントインターフェース。
type QuoteClientInterface interface {
	FetchRandom(ctx context.Context) (*quote.Quote, error)
}

// QuoteMetrics は名言API取得の成否を記録するインターフェース。
type QuoteMetrics interface {
	RecordQuoteFetch(success bool)
}

// QuoteHandler は名言プロキシのHTTPハンドラー。
type QuoteHandler struct {
	client  QuoteClientInterface
	metrics QuoteMetrics
}

// NewQuoteHandler はQuoteHandlerを生成する。
func NewQuoteHandler(client QuoteClientInterface, metrics QuoteMetrics) *QuoteHandler {
	return &QuoteHandler{
		client:  client,
		metrics: metrics,
	}
}

// GetQuote はランダムな名言を取得する。
// 外部APIの失敗はすべてQUOTE_UNAVAILABLE（502）に変換する。
// GET /api/quote
func (h *QuoteHandler) GetQuote(w http.ResponseWriter, r *http.Request) {
	q, err := h.client.FetchRandom(r.Context())
	if err != nil {
		if h.metrics != nil {
			h.metrics.RecordQuoteFetch(false)
		}
		slog.Warn("quote fetch failed", slog.String("error", err.Error()))
		handleServiceError(w, model.NewQuoteUnavailableError())
		return
	}

	if h.metrics != nil {
		h.metrics.RecordQuoteFetch(true)
	}

	writeJSON(w, http.StatusOK, q)
}
