package habit

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/hitoshi/daybook/internal/model"
	"github.com/hitoshi/daybook/internal/repository"
	"github.com/hitoshi/daybook/internal/security"
)

const (
	// maxNameLength は習慣名の最大文字数。
	maxNameLength = 100
	// maxCompleteRetries は完了処理の条件付き更新が競合した場合の最大再試行回数。
	maxCompleteRetries = 3
)

// Service は習慣トラッキングのサービス層。
// ストリークの状態遷移はCompleteTodayに委譲し、永続化は条件付き更新で行う。
type Service struct {
	habitRepo repository.HabitRepository
	sanitizer security.InputSanitizerService
	now       func() time.Time
}

// NewService はServiceの新しいインスタンスを生成する。
func NewService(habitRepo repository.HabitRepository, sanitizer security.InputSanitizerService) *Service {
	return &Service{
		habitRepo: habitRepo,
		sanitizer: sanitizer,
		now:       time.Now,
	}
}

// List はユーザーの習慣一覧を返す。
func (s *Service) List(ctx context.Context, userID string) ([]*model.Habit, error) {
	habits, err := s.habitRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("習慣一覧の取得に失敗しました: %w", err)
	}
	return habits, nil
}

// Create は新しい習慣を作成する。ストリークは0から始まる。
func (s *Service) Create(ctx context.Context, userID, name string) (*model.Habit, error) {
	name = s.sanitizer.Sanitize(name)
	if name == "" {
		return nil, model.NewValidationError("習慣名は必須です")
	}
	if len([]rune(name)) > maxNameLength {
		return nil, model.NewValidationError(fmt.Sprintf("習慣名は%d文字以内で入力してください", maxNameLength))
	}

	habit := &model.Habit{
		ID:        uuid.New().String(),
		UserID:    userID,
		Name:      name,
		Streak:    0,
		CreatedAt: s.now(),
	}

	if err := s.habitRepo.Create(ctx, habit); err != nil {
		return nil, fmt.Errorf("習慣の作成に失敗しました: %w", err)
	}

	return habit, nil
}

// Complete は習慣を「今日完了した」として記録する。
// 同一日内の再実行は状態を変えず、既存の状態をそのまま返す（冪等）。
//
// 永続化は読み取り時の最終完了日を条件とする条件付き更新で行い、
// 同一習慣への同時リクエストが二重にストリークを進めることを防ぐ。
// 条件付き更新が競合した場合は再読み取りして再試行する。
func (s *Service) Complete(ctx context.Context, userID, habitID string) (*model.Habit, Outcome, error) {
	for attempt := 0; attempt < maxCompleteRetries; attempt++ {
		habit, err := s.habitRepo.FindByIDAndUser(ctx, habitID, userID)
		if err != nil {
			return nil, "", fmt.Errorf("習慣の取得に失敗しました: %w", err)
		}
		if habit == nil {
			return nil, "", model.NewHabitNotFoundError(habitID)
		}

		state := StreakState{LastCompleted: habit.LastCompleted, Streak: habit.Streak}
		next, outcome := CompleteToday(state, s.now())

		// 当日完了済みの場合は書き込み不要
		if outcome == OutcomeAlreadyCompleted {
			return habit, outcome, nil
		}

		ok, err := s.habitRepo.UpdateStreak(ctx, habitID, userID, next.Streak, *next.LastCompleted, habit.LastCompleted)
		if err != nil {
			return nil, "", fmt.Errorf("習慣完了の記録に失敗しました: %w", err)
		}
		if ok {
			habit.Streak = next.Streak
			habit.LastCompleted = next.LastCompleted
			return habit, outcome, nil
		}

		// 競合した場合は最新状態を読み直して再判定する。
		// 同時リクエストが先に完了を記録した場合、次の判定は冪等に収束する。
		slog.Debug("habit completion conflicted, retrying",
			slog.String("habit_id", habitID),
			slog.Int("attempt", attempt+1),
		)
	}

	return nil, "", fmt.Errorf("習慣完了の記録が競合により失敗しました: habit_id=%s", habitID)
}

// Delete はIDで習慣を削除する。
func (s *Service) Delete(ctx context.Context, userID, habitID string) error {
	habit, err := s.habitRepo.FindByIDAndUser(ctx, habitID, userID)
	if err != nil {
		return fmt.Errorf("習慣の取得に失敗しました: %w", err)
	}
	if habit == nil {
		return model.NewHabitNotFoundError(habitID)
	}

	if err := s.habitRepo.Delete(ctx, habitID, userID); err != nil {
		return fmt.Errorf("習慣の削除に失敗しました: %w", err)
	}

	return nil
}
