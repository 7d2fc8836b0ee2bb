// Package quote は名言APIのプロキシ機能を提供する。
// 外部API（ZenQuotes）の呼び出しと、取得失敗時のフォールバック判定を含む。
package quote

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
)

// maxResponseBytes はレスポンスボディの最大読み取りサイズ。
const maxResponseBytes = 64 * 1024

// Quote は名言1件を表す。
type Quote struct {
	Text   string `json:"text"`
	Author string `json:"author"`
}

// zenQuoteItem はZenQuotes APIのレスポンス要素。
type zenQuoteItem struct {
	Q string `json:"q"`
	A string `json:"a"`
}

// Client は名言APIのクライアント。
// ブラウザから外部APIへ直接アクセスさせず、サーバー側で中継する。
type Client struct {
	httpClient *http.Client
	logger     *slog.Logger
	endpoint   string
}

// NewClient はClientの新しいインスタンスを生成する。
// httpClientにはタイムアウトとSSRF防止が設定済みのクライアントを渡す。
func NewClient(httpClient *http.Client, logger *slog.Logger, endpoint string) *Client {
	return &Client{
		httpClient: httpClient,
		logger:     logger,
		endpoint:   endpoint,
	}
}

// FetchRandom はランダムな名言を1件取得する。
// 外部APIの失敗（接続エラー、タイムアウト、不正なレスポンス）はすべて
// エラーとして返し、呼び出し元がQUOTE_UNAVAILABLEに変換する。
func (c *Client) FetchRandom(ctx context.Context) (*Quote, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("HTTPリクエストの作成に失敗しました: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("名言APIの呼び出しに失敗しました",
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("名言APIの呼び出しに失敗しました: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Error("名言APIがエラーステータスを返しました",
			slog.Int("http_status", resp.StatusCode),
		)
		return nil, fmt.Errorf("名言APIがステータス %d を返しました", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("レスポンスボディの読み取りに失敗しました: %w", err)
	}

	// ZenQuotesは1件でも配列で返す
	var items []zenQuoteItem
	if err := json.Unmarshal(body, &items); err != nil {
		return nil, fmt.Errorf("レスポンスのパースに失敗しました: %w", err)
	}
	if len(items) == 0 || items[0].Q == "" {
		return nil, fmt.Errorf("名言APIが空のレスポンスを返しました")
	}

	return &Quote{Text: items[0].Q, Author: items[0].A}, nil
}
