package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/hitoshi/daybook/internal/habit"
	"github.com/hitoshi/daybook/internal/middleware"
	"github.com/hitoshi/daybook/internal/model"
)

// HabitServiceInterface は習慣ハンドラーが必要とするサービスインターフェース。
type HabitServiceInterface interface {
	List(ctx context.Context, userID string) ([]*model.Habit, error)
	Create(ctx context.Context, userID, name string) (*model.Habit, error)
	Complete(ctx context.Context, userID, habitID string) (*model.Habit, habit.Outcome, error)
	Delete(ctx context.Context, userID, habitID string) error
}

// HabitMetrics は習慣完了操作の結果を記録するインターフェース。
type HabitMetrics interface {
	RecordHabitCompletion(outcome string)
}

// HabitHandler は習慣トラッキングのHTTPハンドラー。
type HabitHandler struct {
	service HabitServiceInterface
	metrics HabitMetrics
}

// NewHabitHandler はHabitHandlerを生成する。
func NewHabitHandler(service HabitServiceInterface, metrics HabitMetrics) *HabitHandler {
	return &HabitHandler{
		service: service,
		metrics: metrics,
	}
}

// habitResponse は習慣のAPIレスポンス。
type habitResponse struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	Streak        int        `json:"streak"`
	LastCompleted *time.Time `json:"last_completed,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

func toHabitResponse(h *model.Habit) habitResponse {
	return habitResponse{
		ID:            h.ID,
		Name:          h.Name,
		Streak:        h.Streak,
		LastCompleted: h.LastCompleted,
		CreatedAt:     h.CreatedAt,
	}
}

// habitCompleteResponse は完了操作のAPIレスポンス。結果種別を含む。
type habitCompleteResponse struct {
	habitResponse
	Outcome string `json:"outcome"`
}

// habitCreateRequest は習慣作成リクエストのボディ。
type habitCreateRequest struct {
	Name string `json:"name"`
}

// ListHabits はユーザーの習慣一覧を取得する。
// GET /api/habits
func (h *HabitHandler) ListHabits(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		writeUnauthorized(w)
		return
	}

	habits, err := h.service.List(r.Context(), userID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	responses := make([]habitResponse, len(habits))
	for i, hb := range habits {
		responses[i] = toHabitResponse(hb)
	}
	writeJSON(w, http.StatusOK, responses)
}

// CreateHabit は新しい習慣を作成する。
// POST /api/habits
func (h *HabitHandler) CreateHabit(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		writeUnauthorized(w)
		return
	}

	var req habitCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidBody(w)
		return
	}

	hb, err := h.service.Create(r.Context(), userID, req.Name)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toHabitResponse(hb))
}

// CompleteHabit は習慣を「今日完了した」として記録する。
// 同一日内の再実行は状態を変えずに現在の状態を返す。
// PUT /api/habits/{id}
func (h *HabitHandler) CompleteHabit(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		writeUnauthorized(w)
		return
	}

	hb, outcome, err := h.service.Complete(r.Context(), userID, chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, err)
		return
	}

	if h.metrics != nil {
		h.metrics.RecordHabitCompletion(string(outcome))
	}

	writeJSON(w, http.StatusOK, habitCompleteResponse{
		habitResponse: toHabitResponse(hb),
		Outcome:       string(outcome),
	})
}

// DeleteHabit は習慣を削除する。
// DELETE /api/habits/{id}
func (h *HabitHandler) DeleteHabit(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		writeUnauthorized(w)
		return
	}

	if err := h.service.Delete(r.Context(), userID, chi.URLParam(r, "id")); err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "習慣を削除しました。"})
}
