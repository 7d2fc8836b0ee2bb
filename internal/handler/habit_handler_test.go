package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/hitoshi/daybook/internal/habit"
	"github.com/hitoshi/daybook/internal/model"
)

// mockHabitService はHabitServiceInterfaceのモック実装。
type mockHabitService struct {
	listFn     func(ctx context.Context, userID string) ([]*model.Habit, error)
	createFn   func(ctx context.Context, userID, name string) (*model.Habit, error)
	completeFn func(ctx context.Context, userID, habitID string) (*model.Habit, habit.Outcome, error)
	deleteFn   func(ctx context.Context, userID, habitID string) error
}

func (m *mockHabitService) List(ctx context.Context, userID string) ([]*model.Habit, error) {
	if m.listFn != nil {
		return m.listFn(ctx, userID)
	}
	return nil, nil
}

func (m *mockHabitService) Create(ctx context.Context, userID, name string) (*model.Habit, error) {
	if m.createFn != nil {
		return m.createFn(ctx, userID, name)
	}
	return nil, nil
}

func (m *mockHabitService) Complete(ctx context.Context, userID, habitID string) (*model.Habit, habit.Outcome, error) {
	if m.completeFn != nil {
		return m.completeFn(ctx, userID, habitID)
	}
	return nil, "", nil
}

func (m *mockHabitService) Delete(ctx context.Context, userID, habitID string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, userID, habitID)
	}
	return nil
}

// mockHabitMetrics はHabitMetricsのモック実装。
type mockHabitMetrics struct {
	outcomes []string
}

func (m *mockHabitMetrics) RecordHabitCompletion(outcome string) {
	m.outcomes = append(m.outcomes, outcome)
}

func TestHabitHandler_CreateHabit_Success(t *testing.T) {
	svc := &mockHabitService{
		createFn: func(ctx context.Context, userID, name string) (*model.Habit, error) {
			return &model.Habit{ID: "habit-1", UserID: userID, Name: name, Streak: 0}, nil
		},
	}
	h := NewHabitHandler(svc, nil)

	body := bytes.NewBufferString(`{"name":"朝のランニング"}`)
	req := withUserID(httptest.NewRequest(http.MethodPost, "/api/habits", body), "user-123")
	w := httptest.NewRecorder()

	h.CreateHabit(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusCreated)
	}

	var resp habitResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Name != "朝のランニング" || resp.Streak != 0 {
		t.Errorf("response = %+v", resp)
	}
}

func TestHabitHandler_CompleteHabit_ReturnsOutcome(t *testing.T) {
	today := time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC)
	svc := &mockHabitService{
		completeFn: func(ctx context.Context, userID, habitID string) (*model.Habit, habit.Outcome, error) {
			return &model.Habit{
				ID:            habitID,
				UserID:        userID,
				Name:          "読書",
				Streak:        5,
				LastCompleted: &today,
			}, habit.OutcomeIncremented, nil
		},
	}
	m := &mockHabitMetrics{}
	h := NewHabitHandler(svc, m)

	req := withUserID(httptest.NewRequest(http.MethodPut, "/api/habits/habit-1", nil), "user-123")
	req = withChiURLParam(req, "id", "habit-1")
	w := httptest.NewRecorder()

	h.CompleteHabit(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}

	var resp habitCompleteResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Streak != 5 {
		t.Errorf("streak = %d, want 5", resp.Streak)
	}
	if resp.Outcome != string(habit.OutcomeIncremented) {
		t.Errorf("outcome = %q, want %q", resp.Outcome, habit.OutcomeIncremented)
	}
	if len(m.outcomes) != 1 || m.outcomes[0] != "incremented" {
		t.Errorf("metrics outcomes = %v", m.outcomes)
	}
}

func TestHabitHandler_CompleteHabit_NotFound_Returns404(t *testing.T) {
	svc := &mockHabitService{
		completeFn: func(ctx context.Context, userID, habitID string) (*model.Habit, habit.Outcome, error) {
			return nil, "", model.NewHabitNotFoundError(habitID)
		},
	}
	h := NewHabitHandler(svc, nil)

	req := withUserID(httptest.NewRequest(http.MethodPut, "/api/habits/missing", nil), "user-123")
	req = withChiURLParam(req, "id", "missing")
	w := httptest.NewRecorder()

	h.CompleteHabit(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", w.Code, http.StatusNotFound)
	}
	if resp := parseAPIErrorResponse(t, w); resp["code"] != model.ErrCodeHabitNotFound {
		t.Errorf("code = %q, want %q", resp["code"], model.ErrCodeHabitNotFound)
	}
}

func TestHabitHandler_ListHabits_Anonymous_Returns401(t *testing.T) {
	h := NewHabitHandler(&mockHabitService{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/habits", nil)
	w := httptest.NewRecorder()

	h.ListHabits(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", w.Code, http.StatusUnauthorized)
	}
}
