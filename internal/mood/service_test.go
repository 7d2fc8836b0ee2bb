package mood

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/hitoshi/daybook/internal/model"
)

// mockMoodRepository はMoodRepositoryのモック実装。
type mockMoodRepository struct {
	listSinceFn         func(ctx context.Context, userID string, since time.Time) ([]*model.MoodEntry, error)
	findByUserAndDateFn func(ctx context.Context, userID string, date time.Time) (*model.MoodEntry, error)
	findByIDAndUserFn   func(ctx context.Context, id, userID string) (*model.MoodEntry, error)
	createFn            func(ctx context.Context, entry *model.MoodEntry) error
	deleteFn            func(ctx context.Context, id, userID string) error
}

func (m *mockMoodRepository) ListSince(ctx context.Context, userID string, since time.Time) ([]*model.MoodEntry, error) {
	if m.listSinceFn != nil {
		return m.listSinceFn(ctx, userID, since)
	}
	return nil, nil
}

func (m *mockMoodRepository) FindByUserAndDate(ctx context.Context, userID string, date time.Time) (*model.MoodEntry, error) {
	if m.findByUserAndDateFn != nil {
		return m.findByUserAndDateFn(ctx, userID, date)
	}
	return nil, nil
}

func (m *mockMoodRepository) FindByIDAndUser(ctx context.Context, id, userID string) (*model.MoodEntry, error) {
	if m.findByIDAndUserFn != nil {
		return m.findByIDAndUserFn(ctx, id, userID)
	}
	return nil, nil
}

func (m *mockMoodRepository) Create(ctx context.Context, entry *model.MoodEntry) error {
	if m.createFn != nil {
		return m.createFn(ctx, entry)
	}
	return nil
}

func (m *mockMoodRepository) Delete(ctx context.Context, id, userID string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id, userID)
	}
	return nil
}

func newTestService(repo *mockMoodRepository, now time.Time) *Service {
	s := NewService(repo)
	s.now = func() time.Time { return now }
	return s
}

func apiErrorCode(t *testing.T, err error) string {
	t.Helper()
	var apiErr *model.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error is not *model.APIError: %v", err)
	}
	return apiErr.Code
}

func TestRecord_Success(t *testing.T) {
	now := time.Date(2026, 8, 29, 15, 30, 0, 0, time.UTC)
	var created *model.MoodEntry
	repo := &mockMoodRepository{
		createFn: func(ctx context.Context, entry *model.MoodEntry) error {
			created = entry
			return nil
		},
	}
	s := newTestService(repo, now)

	entry, err := s.Record(context.Background(), "user-1", "😊", now)
	if err != nil {
		t.Fatalf("Record error: %v", err)
	}

	wantDate := time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC)
	if !entry.Date.Equal(wantDate) {
		t.Errorf("date = %v, want truncated %v", entry.Date, wantDate)
	}
	if created == nil {
		t.Fatal("Create not called on repository")
	}
}

func TestRecord_DuplicateDate_Returns409Error(t *testing.T) {
	now := time.Date(2026, 8, 29, 15, 30, 0, 0, time.UTC)
	repo := &mockMoodRepository{
		findByUserAndDateFn: func(ctx context.Context, userID string, date time.Time) (*model.MoodEntry, error) {
			return &model.MoodEntry{ID: "entry-1", UserID: userID, Mood: "😄", Date: date}, nil
		},
	}
	s := newTestService(repo, now)

	_, err := s.Record(context.Background(), "user-1", "😊", now)
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if code := apiErrorCode(t, err); code != model.ErrCodeMoodAlreadyExists {
		t.Errorf("code = %q, want %q", code, model.ErrCodeMoodAlreadyExists)
	}
}

func TestRecord_EmptyMood_ReturnsValidationError(t *testing.T) {
	s := newTestService(&mockMoodRepository{}, time.Now())

	_, err := s.Record(context.Background(), "user-1", "", time.Now())
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if code := apiErrorCode(t, err); code != model.ErrCodeValidation {
		t.Errorf("code = %q, want %q", code, model.ErrCodeValidation)
	}
}

func TestRecord_ZeroDate_DefaultsToToday(t *testing.T) {
	now := time.Date(2026, 8, 29, 9, 0, 0, 0, time.UTC)
	repo := &mockMoodRepository{}
	s := newTestService(repo, now)

	entry, err := s.Record(context.Background(), "user-1", "😐", time.Time{})
	if err != nil {
		t.Fatalf("Record error: %v", err)
	}

	wantDate := time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC)
	if !entry.Date.Equal(wantDate) {
		t.Errorf("date = %v, want %v", entry.Date, wantDate)
	}
}

func TestHistory_QueriesLast30Days(t *testing.T) {
	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	var gotSince time.Time
	repo := &mockMoodRepository{
		listSinceFn: func(ctx context.Context, userID string, since time.Time) ([]*model.MoodEntry, error) {
			gotSince = since
			return []*model.MoodEntry{}, nil
		},
	}
	s := newTestService(repo, now)

	if _, err := s.History(context.Background(), "user-1"); err != nil {
		t.Fatalf("History error: %v", err)
	}

	wantSince := time.Date(2026, 7, 30, 0, 0, 0, 0, time.UTC)
	if !gotSince.Equal(wantSince) {
		t.Errorf("since = %v, want %v", gotSince, wantSince)
	}
}

func TestDelete_NotFound(t *testing.T) {
	s := newTestService(&mockMoodRepository{}, time.Now())

	err := s.Delete(context.Background(), "user-1", "missing")
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if code := apiErrorCode(t, err); code != model.ErrCodeMoodNotFound {
		t.Errorf("code = %q, want %q", code, model.ErrCodeMoodNotFound)
	}
}

func TestSuggestion(t *testing.T) {
	s := newTestService(&mockMoodRepository{}, time.Now())

	// 既知の気分には対応するアドバイスを返す
	got, err := s.Suggestion("😊")
	if err != nil {
		t.Fatalf("Suggestion error: %v", err)
	}
	if got != moodSuggestions["😊"] {
		t.Errorf("suggestion = %q, want mapped suggestion", got)
	}

	// 未知の気分には汎用アドバイスを返す
	got, err = s.Suggestion("🫠")
	if err != nil {
		t.Fatalf("Suggestion error: %v", err)
	}
	if got != defaultSuggestion {
		t.Errorf("suggestion = %q, want default", got)
	}

	// 気分未指定はエラー
	if _, err := s.Suggestion(""); err == nil {
		t.Error("expected error for empty mood")
	}
}
