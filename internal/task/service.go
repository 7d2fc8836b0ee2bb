// Package task はタスク管理のドメインロジックを提供する。
package task

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/hitoshi/daybook/internal/model"
	"github.com/hitoshi/daybook/internal/repository"
	"github.com/hitoshi/daybook/internal/security"
)

const (
	// maxTitleLength はタスクタイトルの最大文字数。
	maxTitleLength = 100
	// maxDescriptionLength はタスク説明の最大文字数。
	maxDescriptionLength = 500
)

// CreateInput はタスク作成リクエストの入力値。
type CreateInput struct {
	Title       string
	Description string
	Status      model.TaskStatus
	DueDate     *time.Time
}

// UpdateInput はタスク更新リクエストの入力値。
// nilのフィールドは変更しない。
type UpdateInput struct {
	Title       *string
	Description *string
	Status      *model.TaskStatus
	DueDate     *time.Time
	ClearDue    bool
}

// Service はタスク管理のサービス層。
// すべての操作は呼び出し元の認証済みユーザーIDでスコープされる。
type Service struct {
	taskRepo  repository.TaskRepository
	sanitizer security.InputSanitizerService
	now       func() time.Time
}

// NewService はServiceの新しいインスタンスを生成する。
func NewService(taskRepo repository.TaskRepository, sanitizer security.InputSanitizerService) *Service {
	return &Service{
		taskRepo:  taskRepo,
		sanitizer: sanitizer,
		now:       time.Now,
	}
}

// List はユーザーのタスク一覧を返す。
func (s *Service) List(ctx context.Context, userID string) ([]*model.Task, error) {
	tasks, err := s.taskRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("タスク一覧の取得に失敗しました: %w", err)
	}
	return tasks, nil
}

// Get はIDでタスクを取得する。
// 他ユーザー所有のタスクは存在しないものとして扱う。
func (s *Service) Get(ctx context.Context, userID, taskID string) (*model.Task, error) {
	task, err := s.taskRepo.FindByIDAndUser(ctx, taskID, userID)
	if err != nil {
		return nil, fmt.Errorf("タスクの取得に失敗しました: %w", err)
	}
	if task == nil {
		return nil, model.NewTaskNotFoundError(taskID)
	}
	return task, nil
}

// Create は新しいタスクを作成する。
// タイトルと説明はサニタイズされ、文字数制限が検証される。
// ステータス未指定の場合はtodoになる。
func (s *Service) Create(ctx context.Context, userID string, input CreateInput) (*model.Task, error) {
	title := s.sanitizer.Sanitize(input.Title)
	description := s.sanitizer.Sanitize(input.Description)

	if err := validateTitle(title); err != nil {
		return nil, err
	}
	if err := validateDescription(description); err != nil {
		return nil, err
	}

	status := input.Status
	if status == "" {
		status = model.TaskStatusTodo
	}
	if !model.ValidTaskStatus(status) {
		return nil, model.NewValidationError(fmt.Sprintf("不正なステータスです: %s", status))
	}

	task := &model.Task{
		ID:          uuid.New().String(),
		UserID:      userID,
		Title:       title,
		Description: description,
		Status:      status,
		DueDate:     input.DueDate,
		CreatedAt:   s.now(),
	}

	if err := s.taskRepo.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("タスクの作成に失敗しました: %w", err)
	}

	return task, nil
}

// Update は既存タスクを部分更新する。
func (s *Service) Update(ctx context.Context, userID, taskID string, input UpdateInput) (*model.Task, error) {
	task, err := s.taskRepo.FindByIDAndUser(ctx, taskID, userID)
	if err != nil {
		return nil, fmt.Errorf("タスクの取得に失敗しました: %w", err)
	}
	if task == nil {
		return nil, model.NewTaskNotFoundError(taskID)
	}

	if input.Title != nil {
		title := s.sanitizer.Sanitize(*input.Title)
		if err := validateTitle(title); err != nil {
			return nil, err
		}
		task.Title = title
	}
	if input.Description != nil {
		description := s.sanitizer.Sanitize(*input.Description)
		if err := validateDescription(description); err != nil {
			return nil, err
		}
		task.Description = description
	}
	if input.Status != nil {
		if !model.ValidTaskStatus(*input.Status) {
			return nil, model.NewValidationError(fmt.Sprintf("不正なステータスです: %s", *input.Status))
		}
		task.Status = *input.Status
	}
	if input.ClearDue {
		task.DueDate = nil
	} else if input.DueDate != nil {
		task.DueDate = input.DueDate
	}

	if err := s.taskRepo.Update(ctx, task); err != nil {
		return nil, fmt.Errorf("タスクの更新に失敗しました: %w", err)
	}

	return task, nil
}

// Delete はIDでタスクを削除する。
func (s *Service) Delete(ctx context.Context, userID, taskID string) error {
	task, err := s.taskRepo.FindByIDAndUser(ctx, taskID, userID)
	if err != nil {
		return fmt.Errorf("タスクの取得に失敗しました: %w", err)
	}
	if task == nil {
		return model.NewTaskNotFoundError(taskID)
	}

	if err := s.taskRepo.Delete(ctx, taskID, userID); err != nil {
		return fmt.Errorf("タスクの削除に失敗しました: %w", err)
	}

	return nil
}

// validateTitle はタスクタイトルを検証する。
func validateTitle(title string) error {
	if title == "" {
		return model.NewValidationError("タイトルは必須です")
	}
	if len([]rune(title)) > maxTitleLength {
		return model.NewValidationError(fmt.Sprintf("タイトルは%d文字以内で入力してください", maxTitleLength))
	}
	return nil
}

// validateDescription はタスク説明を検証する。
func validateDescription(description string) error {
	if len([]rune(description)) > maxDescriptionLength {
		return model.NewValidationError(fmt.Sprintf("説明は%d文字以内で入力してください", maxDescriptionLength))
	}
	return nil
}
