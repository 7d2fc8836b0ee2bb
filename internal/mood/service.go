// Package mood は気分記録のドメインロジックを提供する。
package mood

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/hitoshi/daybook/internal/dateutil"
	"github.com/hitoshi/daybook/internal/model"
	"github.com/hitoshi/daybook/internal/repository"
)

// historyDays は履歴取得の対象期間（日数）。
const historyDays = 30

// moodSuggestions は気分ごとの定型アドバイス。
// 未知の気分にはdefaultSuggestionを返す。
var moodSuggestions = map[string]string{
	"😄": "That's great to hear! Channel this positive energy into something creative or a fun activity.",
	"😊": "Feeling content is a wonderful state. It's a perfect time for a relaxing walk or to enjoy a good book.",
	"😐": "A neutral day is a blank canvas. Why not plan something exciting for the weekend or learn something new?",
	"😔": "It's okay to feel sad. Consider listening to some uplifting music, talking to a friend, or watching a comfort movie.",
	"😡": "Feeling angry can be tough. A short, intense workout, deep breathing exercises, or writing down your thoughts can help.",
	"😴": "Your body is asking for rest. Try to get an early night, take a short power nap, or do some gentle stretching.",
	"🤩": "Excitement is a powerful motivator! It's a great time to start that new project you've been thinking about.",
}

// defaultSuggestion は定義外の気分に対する汎用アドバイス。
const defaultSuggestion = "Whatever you're feeling, remember to be kind to yourself. Every day is a new opportunity."

// Service は気分記録のサービス層。
// 1ユーザーにつき1日1件の記録を保証する。
type Service struct {
	moodRepo repository.MoodRepository
	now      func() time.Time
}

// NewService はServiceの新しいインスタンスを生成する。
func NewService(moodRepo repository.MoodRepository) *Service {
	return &Service{
		moodRepo: moodRepo,
		now:      time.Now,
	}
}

// History は直近30日分の気分記録を日付の昇順で返す。
func (s *Service) History(ctx context.Context, userID string) ([]*model.MoodEntry, error) {
	since := dateutil.Truncate(s.now()).AddDate(0, 0, -historyDays)

	entries, err := s.moodRepo.ListSince(ctx, userID, since)
	if err != nil {
		return nil, fmt.Errorf("気分記録の取得に失敗しました: %w", err)
	}
	return entries, nil
}

// Record は指定日の気分を記録する。日付は日付のみに正規化される。
// 同一日付の記録が既に存在する場合はMOOD_ALREADY_RECORDEDエラーを返す。
func (s *Service) Record(ctx context.Context, userID, mood string, date time.Time) (*model.MoodEntry, error) {
	if mood == "" {
		return nil, model.NewValidationError("気分は必須です")
	}
	if date.IsZero() {
		date = s.now()
	}
	day := dateutil.Truncate(date)

	existing, err := s.moodRepo.FindByUserAndDate(ctx, userID, day)
	if err != nil {
		return nil, fmt.Errorf("気分記録の検索に失敗しました: %w", err)
	}
	if existing != nil {
		return nil, model.NewMoodAlreadyExistsError()
	}

	entry := &model.MoodEntry{
		ID:        uuid.New().String(),
		UserID:    userID,
		Mood:      mood,
		Date:      day,
		CreatedAt: s.now(),
	}

	// 事前チェックと挿入の間の競合はDBのunique制約が最終的に防ぐ
	if err := s.moodRepo.Create(ctx, entry); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, model.NewMoodAlreadyExistsError()
		}
		return nil, fmt.Errorf("気分記録の作成に失敗しました: %w", err)
	}

	return entry, nil
}

// Delete はIDで気分記録を削除する。
func (s *Service) Delete(ctx context.Context, userID, entryID string) error {
	entry, err := s.moodRepo.FindByIDAndUser(ctx, entryID, userID)
	if err != nil {
		return fmt.Errorf("気分記録の取得に失敗しました: %w", err)
	}
	if entry == nil {
		return model.NewMoodNotFoundError(entryID)
	}

	if err := s.moodRepo.Delete(ctx, entryID, userID); err != nil {
		return fmt.Errorf("気分記録の削除に失敗しました: %w", err)
	}

	return nil
}

// Suggestion は気分に応じた定型アドバイスを返す。
func (s *Service) Suggestion(mood string) (string, error) {
	if mood == "" {
		return "", model.NewValidationError("気分は必須です")
	}
	if suggestion, ok := moodSuggestions[mood]; ok {
		return suggestion, nil
	}
	return defaultSuggestion, nil
}
