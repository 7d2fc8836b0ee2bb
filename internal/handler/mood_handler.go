package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/hitoshi/daybook/internal/middleware"
	"github.com/hitoshi/daybook/internal/model"
)

// MoodServiceInterface は気分記録ハンドラーが必要とするサービスインターフェース。
type MoodServiceInterface interface {
	History(ctx context.Context, userID string) ([]*model.MoodEntry, error)
	Record(ctx context.Context, userID, mood string, date time.Time) (*model.MoodEntry, error)
	Delete(ctx context.Context, userID, entryID string) error
	Suggestion(mood string) (string, error)
}

// MoodHandler は気分記録のHTTPハンドラー。
type MoodHandler struct {
	service MoodServiceInterface
}

// NewMoodHandler はMoodHandlerを生成する。
func NewMoodHandler(service MoodServiceInterface) *MoodHandler {
	return &MoodHandler{service: service}
}

// moodResponse は気分記録のAPIレスポンス。
type moodResponse struct {
	ID        string    `json:"id"`
	Mood      string    `json:"mood"`
	Date      time.Time `json:"date"`
	CreatedAt time.Time `json:"created_at"`
}

func toMoodResponse(e *model.MoodEntry) moodResponse {
	return moodResponse{
		ID:        e.ID,
		Mood:      e.Mood,
		Date:      e.Date,
		CreatedAt: e.CreatedAt,
	}
}

// moodRecordRequest は気分記録リクエストのボディ。dateは省略可能（当日扱い）。
type moodRecordRequest struct {
	Mood string     `json:"mood"`
	Date *time.Time `json:"date"`
}

// moodSuggestionRequest はアドバイス取得リクエストのボディ。
type moodSuggestionRequest struct {
	Mood string `json:"mood"`
}

// History は直近30日分の気分記録を取得する。
// GET /api/mood
func (h *MoodHandler) History(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		writeUnauthorized(w)
		return
	}

	entries, err := h.service.History(r.Context(), userID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	responses := make([]moodResponse, len(entries))
	for i, e := range entries {
		responses[i] = toMoodResponse(e)
	}
	writeJSON(w, http.StatusOK, responses)
}

// Record は気分を記録する。同一日の記録が既に存在する場合は409を返す。
// POST /api/mood
func (h *MoodHandler) Record(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		writeUnauthorized(w)
		return
	}

	var req moodRecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidBody(w)
		return
	}

	date := time.Time{}
	if req.Date != nil {
		date = *req.Date
	}

	entry, err := h.service.Record(r.Context(), userID, req.Mood, date)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toMoodResponse(entry))
}

// Delete は気分記録を削除する。
// DELETE /api/mood/{id}
func (h *MoodHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		writeUnauthorized(w)
		return
	}

	if err := h.service.Delete(r.Context(), userID, chi.URLParam(r, "id")); err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "気分記録を削除しました。"})
}

// Suggestion は気分に応じた定型アドバイスを返す。
// POST /api/mood/suggestion
func (h *MoodHandler) Suggestion(w http.ResponseWriter, r *http.Request) {
	var req moodSuggestionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidBody(w)
		return
	}

	suggestion, err := h.service.Suggestion(req.Mood)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"suggestion": suggestion})
}
