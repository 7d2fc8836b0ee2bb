// Package event はカレンダー予定管理のドメインロジックを提供する。
package event

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/hitoshi/daybook/internal/model"
	"github.com/hitoshi/daybook/internal/repository"
	"github.com/hitoshi/daybook/internal/security"
)

// maxTitleLength は予定タイトルの最大文字数。
const maxTitleLength = 100

// Input は予定の作成・更新リクエストの入力値。
type Input struct {
	Title       string
	Description string
	StartTime   time.Time
	EndTime     time.Time
	AllDay      bool
}

// Service はカレンダー予定管理のサービス層。
// すべての操作は呼び出し元の認証済みユーザーIDでスコープされる。
type Service struct {
	eventRepo repository.EventRepository
	sanitizer security.InputSanitizerService
	now       func() time.Time
}

// NewService はServiceの新しいインスタンスを生成する。
func NewService(eventRepo repository.EventRepository, sanitizer security.InputSanitizerService) *Service {
	return &Service{
		eventRepo: eventRepo,
		sanitizer: sanitizer,
		now:       time.Now,
	}
}

// List はユーザーの予定一覧を開始時刻の昇順で返す。
func (s *Service) List(ctx context.Context, userID string) ([]*model.CalendarEvent, error) {
	events, err := s.eventRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("予定一覧の取得に失敗しました: %w", err)
	}
	return events, nil
}

// Get はIDで予定を取得する。
// 他ユーザー所有の予定は存在しないものとして扱う。
func (s *Service) Get(ctx context.Context, userID, eventID string) (*model.CalendarEvent, error) {
	event, err := s.eventRepo.FindByIDAndUser(ctx, eventID, userID)
	if err != nil {
		return nil, fmt.Errorf("予定の取得に失敗しました: %w", err)
	}
	if event == nil {
		return nil, model.NewEventNotFoundError(eventID)
	}
	return event, nil
}

// Create は新しい予定を作成する。
func (s *Service) Create(ctx context.Context, userID string, input Input) (*model.CalendarEvent, error) {
	sanitized, err := s.sanitizeAndValidate(input)
	if err != nil {
		return nil, err
	}

	event := &model.CalendarEvent{
		ID:          uuid.New().String(),
		UserID:      userID,
		Title:       sanitized.Title,
		Description: sanitized.Description,
		StartTime:   sanitized.StartTime,
		EndTime:     sanitized.EndTime,
		AllDay:      sanitized.AllDay,
		CreatedAt:   s.now(),
	}

	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, fmt.Errorf("予定の作成に失敗しました: %w", err)
	}

	return event, nil
}

// Update は既存の予定を上書き更新する。
func (s *Service) Update(ctx context.Context, userID, eventID string, input Input) (*model.CalendarEvent, error) {
	event, err := s.eventRepo.FindByIDAndUser(ctx, eventID, userID)
	if err != nil {
		return nil, fmt.Errorf("予定の取得に失敗しました: %w", err)
	}
	if event == nil {
		return nil, model.NewEventNotFoundError(eventID)
	}

	sanitized, err := s.sanitizeAndValidate(input)
	if err != nil {
		return nil, err
	}

	event.Title = sanitized.Title
	event.Description = sanitized.Description
	event.StartTime = sanitized.StartTime
	event.EndTime = sanitized.EndTime
	event.AllDay = sanitized.AllDay

	if err := s.eventRepo.Update(ctx, event); err != nil {
		return nil, fmt.Errorf("予定の更新に失敗しました: %w", err)
	}

	return event, nil
}

// Delete はIDで予定を削除する。
func (s *Service) Delete(ctx context.Context, userID, eventID string) error {
	event, err := s.eventRepo.FindByIDAndUser(ctx, eventID, userID)
	if err != nil {
		return fmt.Errorf("予定の取得に失敗しました: %w", err)
	}
	if event == nil {
		return model.NewEventNotFoundError(eventID)
	}

	if err := s.eventRepo.Delete(ctx, eventID, userID); err != nil {
		return fmt.Errorf("予定の削除に失敗しました: %w", err)
	}

	return nil
}

// sanitizeAndValidate は入力値をサニタイズして検証する。
func (s *Service) sanitizeAndValidate(input Input) (Input, error) {
	input.Title = s.sanitizer.Sanitize(input.Title)
	input.Description = s.sanitizer.Sanitize(input.Description)

	if input.Title == "" {
		return input, model.NewValidationError("タイトルは必須です")
	}
	if len([]rune(input.Title)) > maxTitleLength {
		return input, model.NewValidationError(fmt.Sprintf("タイトルは%d文字以内で入力してください", maxTitleLength))
	}
	if input.StartTime.IsZero() || input.EndTime.IsZero() {
		return input, model.NewValidationError("開始時刻と終了時刻は必須です")
	}
	if input.EndTime.Before(input.StartTime) {
		return input, model.NewValidationError("終了時刻は開始時刻より後にしてください")
	}

	return input, nil
}
