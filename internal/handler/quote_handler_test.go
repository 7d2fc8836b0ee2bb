package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/hitoshi/daybook/internal/model"
	"github.com/hitoshi/daybook/internal/quote"
)

// mockQuoteClient はQuoteClientInterfaceのモック実装。
type mockQuoteClient struct {
	fetchRandomFn func(ctx context.Context) (*quote.Quote, error)
}

func (m *mockQuoteClient) FetchRandom(ctx context.Context) (*quote.Quote, error) {
	if m.fetchRandomFn != nil {
		return m.fetchRandomFn(ctx)
	}
	return nil, nil
}

// mockQuoteMetrics はQuoteMetricsのモック実装。
type mockQuoteMetrics struct {
	successes int
	failures  int
}

func (m *mockQuoteMetrics) RecordQuoteFetch(success bool) {
	if success {
		m.successes++
	} else {
		m.failures++
	}
}

func TestQuoteHandler_GetQuote_Success(t *testing.T) {
	client := &mockQuoteClient{
		fetchRandomFn: func(ctx context.Context) (*quote.Quote, error) {
			return &quote.Quote{Text: "The only way out is through.", Author: "Robert Frost"}, nil
		},
	}
	m := &mockQuoteMetrics{}
	h := NewQuoteHandler(client, m)

	req := withUserID(httptest.NewRequest(http.MethodGet, "/api/quote", nil), "user-123")
	w := httptest.NewRecorder()

	h.GetQuote(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}

	var resp quote.Quote
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Author != "Robert Frost" {
		t.Errorf("author = %q", resp.Author)
	}
	if m.successes != 1 {
		t.Errorf("success metric = %d, want 1", m.successes)
	}
}

func TestQuoteHandler_GetQuote_UpstreamFailure_Returns502(t *testing.T) {
	client := &mockQuoteClient{
		fetchRandomFn: func(ctx context.Context) (*quote.Quote, error) {
			return nil, errors.New("connection timeout")
		},
	}
	m := &mockQuoteMetrics{}
	h := NewQuoteHandler(client, m)

	req := withUserID(httptest.NewRequest(http.MethodGet, "/api/quote", nil), "user-123")
	w := httptest.NewRecorder()

	h.GetQuote(w, req)

	if w.Code != http.StatusBadGateway {
		t.Errorf("status = %d, want %d", w.Code, http.StatusBadGateway)
	}
	if resp := parseAPIErrorResponse(t, w); resp["code"] != model.ErrCodeQuoteUnavailable {
		t.Errorf("code = %q, want %q", resp["code"], model.ErrCodeQuoteUnavailable)
	}
	if m.failures != 1 {
		t.Errorf("failure metric = %d, want 1", m.failures)
	}
}
