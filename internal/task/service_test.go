package task

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/hitoshi/daybook/internal/model"
	"github.com/hitoshi/daybook/internal/security"
)

// mockTaskRepository はTaskRepositoryのモック実装。
type mockTaskRepository struct {
	listByUserIDFn    func(ctx context.Context, userID string) ([]*model.Task, error)
	findByIDAndUserFn func(ctx context.Context, id, userID string) (*model.Task, error)
	createFn          func(ctx context.Context, task *model.Task) error
	updateFn          func(ctx context.Context, task *model.Task) error
	deleteFn          func(ctx context.Context, id, userID string) error
}

func (m *mockTaskRepository) ListByUserID(ctx context.Context, userID string) ([]*model.Task, error) {
	if m.listByUserIDFn != nil {
		return m.listByUserIDFn(ctx, userID)
	}
	return nil, nil
}

func (m *mockTaskRepository) FindByIDAndUser(ctx context.Context, id, userID string) (*model.Task, error) {
	if m.findByIDAndUserFn != nil {
		return m.findByIDAndUserFn(ctx, id, userID)
	}
	return nil, nil
}

func (m *mockTaskRepository) Create(ctx context.Context, task *model.Task) error {
	if m.createFn != nil {
		return m.createFn(ctx, task)
	}
	return nil
}

func (m *mockTaskRepository) Update(ctx context.Context, task *model.Task) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, task)
	}
	return nil
}

func (m *mockTaskRepository) Delete(ctx context.Context, id, userID string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id, userID)
	}
	return nil
}

func newTestService(repo *mockTaskRepository) *Service {
	return NewService(repo, security.NewInputSanitizer())
}

func apiErrorCode(t *testing.T, err error) string {
	t.Helper()
	var apiErr *model.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error is not *model.APIError: %v", err)
	}
	return apiErr.Code
}

func TestCreate_Success(t *testing.T) {
	var created *model.Task
	repo := &mockTaskRepository{
		createFn: func(ctx context.Context, task *model.Task) error {
			created = task
			return nil
		},
	}
	s := newTestService(repo)

	task, err := s.Create(context.Background(), "user-1", CreateInput{
		Title:       "週次レビュー",
		Description: "先週の振り返りをまとめる",
	})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	if task.UserID != "user-1" {
		t.Errorf("userID = %q, want user-1", task.UserID)
	}
	if task.Status != model.TaskStatusTodo {
		t.Errorf("status = %q, want default %q", task.Status, model.TaskStatusTodo)
	}
	if task.ID == "" {
		t.Error("task ID not generated")
	}
	if created == nil {
		t.Fatal("Create not called on repository")
	}
}

func TestCreate_SanitizesInput(t *testing.T) {
	repo := &mockTaskRepository{}
	s := newTestService(repo)

	task, err := s.Create(context.Background(), "user-1", CreateInput{
		Title: `<script>alert("x")</script>買い物`,
	})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if task.Title != "買い物" {
		t.Errorf("title = %q, want sanitized %q", task.Title, "買い物")
	}
}

func TestCreate_Validation(t *testing.T) {
	tests := []struct {
		name  string
		input CreateInput
	}{
		{"タイトルなし", CreateInput{Title: ""}},
		{"タイトルが長すぎる", CreateInput{Title: strings.Repeat("あ", 101)}},
		{"説明が長すぎる", CreateInput{Title: "t", Description: strings.Repeat("あ", 501)}},
		{"不正なステータス", CreateInput{Title: "t", Status: model.TaskStatus("unknown")}},
	}

	s := newTestService(&mockTaskRepository{})

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.Create(context.Background(), "user-1", tt.input)
			if err == nil {
				t.Fatal("expected validation error, got nil")
			}
			if code := apiErrorCode(t, err); code != model.ErrCodeValidation {
				t.Errorf("code = %q, want %q", code, model.ErrCodeValidation)
			}
		})
	}
}

func TestGet_OtherUsersTask_ReturnsNotFound(t *testing.T) {
	// リポジトリは所有者不一致でnilを返す
	repo := &mockTaskRepository{
		findByIDAndUserFn: func(ctx context.Context, id, userID string) (*model.Task, error) {
			return nil, nil
		},
	}
	s := newTestService(repo)

	_, err := s.Get(context.Background(), "user-2", "task-1")
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if code := apiErrorCode(t, err); code != model.ErrCodeTaskNotFound {
		t.Errorf("code = %q, want %q", code, model.ErrCodeTaskNotFound)
	}
}

func TestUpdate_PartialFields(t *testing.T) {
	due := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	existing := &model.Task{
		ID:          "task-1",
		UserID:      "user-1",
		Title:       "旧タイトル",
		Description: "旧説明",
		Status:      model.TaskStatusTodo,
		DueDate:     &due,
	}
	var updated *model.Task
	repo := &mockTaskRepository{
		findByIDAndUserFn: func(ctx context.Context, id, userID string) (*model.Task, error) {
			return existing, nil
		},
		updateFn: func(ctx context.Context, task *model.Task) error {
			updated = task
			return nil
		},
	}
	s := newTestService(repo)

	status := model.TaskStatusDone
	got, err := s.Update(context.Background(), "user-1", "task-1", UpdateInput{Status: &status})
	if err != nil {
		t.Fatalf("Update error: %v", err)
	}

	if got.Status != model.TaskStatusDone {
		t.Errorf("status = %q, want %q", got.Status, model.TaskStatusDone)
	}
	// 指定しなかったフィールドは維持される
	if got.Title != "旧タイトル" || got.Description != "旧説明" {
		t.Errorf("unspecified fields changed: %+v", got)
	}
	if got.DueDate == nil || !got.DueDate.Equal(due) {
		t.Errorf("due date changed: %v", got.DueDate)
	}
	if updated == nil {
		t.Fatal("Update not called on repository")
	}
}

func TestUpdate_ClearDueDate(t *testing.T) {
	due := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	existing := &model.Task{ID: "task-1", UserID: "user-1", Title: "t", DueDate: &due, Status: model.TaskStatusTodo}
	repo := &mockTaskRepository{
		findByIDAndUserFn: func(ctx context.Context, id, userID string) (*model.Task, error) {
			return existing, nil
		},
	}
	s := newTestService(repo)

	got, err := s.Update(context.Background(), "user-1", "task-1", UpdateInput{ClearDue: true})
	if err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if got.DueDate != nil {
		t.Errorf("due date = %v, want nil", got.DueDate)
	}
}

func TestDelete_NotFound(t *testing.T) {
	s := newTestService(&mockTaskRepository{})

	err := s.Delete(context.Background(), "user-1", "missing")
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if code := apiErrorCode(t, err); code != model.ErrCodeTaskNotFound {
		t.Errorf("code = %q, want %q", code, model.ErrCodeTaskNotFound)
	}
}
