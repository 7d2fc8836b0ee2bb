package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/hitoshi/daybook/internal/model"
)

// PostgresMoodRepo はPostgreSQLを使用した気分記録リポジトリ。
type PostgresMoodRepo struct {
	db *sql.DB
}

// NewPostgresMoodRepo はPostgresMoodRepoを生成する。
func NewPostgresMoodRepo(db *sql.DB) *PostgresMoodRepo {
	return &PostgresMoodRepo{db: db}
}

// ListSince は指定日以降のユーザーの気分記録を日付の昇順で返す。
func (r *PostgresMoodRepo) ListSince(ctx context.Context, userID string, since time.Time) ([]*model.MoodEntry, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, mood, date, created_at
		 FROM mood_entries WHERE user_id = $1 AND date >= $2 ORDER BY date ASC`,
		userID, since,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list mood entries: %w", err)
	}
	defer rows.Close()

	var entries []*model.MoodEntry
	for rows.Next() {
		entry := &model.MoodEntry{}
		if err := rows.Scan(&entry.ID, &entry.UserID, &entry.Mood, &entry.Date, &entry.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan mood entry: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate mood entries: %w", err)
	}

	return entries, nil
}

// FindByUserAndDate はユーザーと日付で気分記録を検索する。見つからない場合はnilを返す。
func (r *PostgresMoodRepo) FindByUserAndDate(ctx context.Context, userID string, date time.Time) (*model.MoodEntry, error) {
	entry := &model.MoodEntry{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, user_id, mood, date, created_at
		 FROM mood_entries WHERE user_id = $1 AND date = $2`,
		userID, date,
	).Scan(&entry.ID, &entry.UserID, &entry.Mood, &entry.Date, &entry.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find mood entry: %w", err)
	}

	return entry, nil
}

// FindByIDAndUser はIDと所有者で気分記録を取得する。見つからない場合はnilを返す。
func (r *PostgresMoodRepo) FindByIDAndUser(ctx context.Context, id, userID string) (*model.MoodEntry, error) {
	entry := &model.MoodEntry{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, user_id, mood, date, created_at
		 FROM mood_entries WHERE id = $1 AND user_id = $2`,
		id, userID,
	).Scan(&entry.ID, &entry.UserID, &entry.Mood, &entry.Date, &entry.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find mood entry: %w", err)
	}

	return entry, nil
}

// Create は気分記録を作成する。
func (r *PostgresMoodRepo) Create(ctx context.Context, entry *model.MoodEntry) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO mood_entries (id, user_id, mood, date, created_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		entry.ID, entry.UserID, entry.Mood, entry.Date, entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert mood entry: %w", err)
	}

	return nil
}

// Delete はIDと所有者で気分記録を削除する。
func (r *PostgresMoodRepo) Delete(ctx context.Context, id, userID string) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM mood_entries WHERE id = $1 AND user_id = $2`,
		id, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete mood entry: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("mood entry not found: %s", id)
	}

	return nil
}

// compile-time interface check
var _ MoodRepository = (*PostgresMoodRepo)(nil)
