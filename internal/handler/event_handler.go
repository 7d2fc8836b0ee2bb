package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/hitoshi/daybook/internal/event"
	"github.com/hitoshi/daybook/internal/middleware"
	"github.com/hitoshi/daybook/internal/model"
)

// EventServiceInterface は予定ハンドラーが必要とするサービスインターフェース。
type EventServiceInterface interface {
	List(ctx context.Context, userID string) ([]*model.CalendarEvent, error)
	Get(ctx context.Context, userID, eventID string) (*model.CalendarEvent, error)
	Create(ctx context.Context, userID string, input event.Input) (*model.CalendarEvent, error)
	Update(ctx context.Context, userID, eventID string, input event.Input) (*model.CalendarEvent, error)
	Delete(ctx context.Context, userID, eventID string) error
}

// EventHandler はカレンダー予定のHTTPハンドラー。
type EventHandler struct {
	service EventServiceInterface
}

// NewEventHandler はEventHandlerを生成する。
func NewEventHandler(service EventServiceInterface) *EventHandler {
	return &EventHandler{service: service}
}

// eventResponse は予定のAPIレスポンス。
type eventResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	AllDay      bool      `json:"all_day"`
	CreatedAt   time.Time `json:"created_at"`
}

func toEventResponse(e *model.CalendarEvent) eventResponse {
	return eventResponse{
		ID:          e.ID,
		Title:       e.Title,
		Description: e.Description,
		StartTime:   e.StartTime,
		EndTime:     e.EndTime,
		AllDay:      e.AllDay,
		CreatedAt:   e.CreatedAt,
	}
}

// eventRequest は予定の作成・更新リクエストのボディ。
type eventRequest struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	AllDay      bool      `json:"all_day"`
}

func (req eventRequest) toInput() event.Input {
	return event.Input{
		Title:       req.Title,
		Description: req.Description,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		AllDay:      req.AllDay,
	}
}

// ListEvents はユーザーの予定一覧を取得する。
// GET /api/events
func (h *EventHandler) ListEvents(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		writeUnauthorized(w)
		return
	}

	events, err := h.service.List(r.Context(), userID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	responses := make([]eventResponse, len(events))
	for i, e := range events {
		responses[i] = toEventResponse(e)
	}
	writeJSON(w, http.StatusOK, responses)
}

// GetEvent は予定を1件取得する。
// GET /api/events/{id}
func (h *EventHandler) GetEvent(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		writeUnauthorized(w)
		return
	}

	e, err := h.service.Get(r.Context(), userID, chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toEventResponse(e))
}

// CreateEvent は新しい予定を作成する。
// POST /api/events
func (h *EventHandler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		writeUnauthorized(w)
		return
	}

	var req eventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidBody(w)
		return
	}

	e, err := h.service.Create(r.Context(), userID, req.toInput())
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toEventResponse(e))
}

// UpdateEvent は予定を上書き更新する。
// PUT /api/events/{id}
func (h *EventHandler) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		writeUnauthorized(w)
		return
	}

	var req eventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidBody(w)
		return
	}

	e, err := h.service.Update(r.Context(), userID, chi.URLParam(r, "id"), req.toInput())
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toEventResponse(e))
}

// DeleteEvent は予定を削除する。
// DELETE /api/events/{id}
func (h *EventHandler) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		writeUnauthorized(w)
		return
	}

	if err := h.service.Delete(r.Context(), userID, chi.URLParam(r, "id")); err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "予定を削除しました。"})
}
