package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hitoshi/daybook/internal/model"
)

// PostgresEventRepo はPostgreSQLを使用したカレンダー予定リポジトリ。
type PostgresEventRepo struct {
	db *sql.DB
}

// NewPostgresEventRepo はPostgresEventRepoを生成する。
func NewPostgresEventRepo(db *sql.DB) *PostgresEventRepo {
	return &PostgresEventRepo{db: db}
}

// ListByUserID はユーザーの予定一覧を開始時刻の昇順で返す。
func (r *PostgresEventRepo) ListByUserID(ctx context.Context, userID string) ([]*model.CalendarEvent, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, title, description, start_time, end_time, all_day, created_at
		 FROM events WHERE user_id = $1 ORDER BY start_time ASC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	defer rows.Close()

	var events []*model.CalendarEvent
	for rows.Next() {
		event := &model.CalendarEvent{}
		if err := rows.Scan(&event.ID, &event.UserID, &event.Title, &event.Description, &event.StartTime, &event.EndTime, &event.AllDay, &event.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate events: %w", err)
	}

	return events, nil
}

// FindByIDAndUser はIDと所有者で予定を取得する。見つからない場合はnilを返す。
func (r *PostgresEventRepo) FindByIDAndUser(ctx context.Context, id, userID string) (*model.CalendarEvent, error) {
	event := &model.CalendarEvent{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, user_id, title, description, start_time, end_time, all_day, created_at
		 FROM events WHERE id = $1 AND user_id = $2`,
		id, userID,
	).Scan(&event.ID, &event.UserID, &event.Title, &event.Description, &event.StartTime, &event.EndTime, &event.AllDay, &event.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find event: %w", err)
	}

	return event, nil
}

// Create は予定を作成する。
func (r *PostgresEventRepo) Create(ctx context.Context, event *model.CalendarEvent) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO events (id, user_id, title, description, start_time, end_time, all_day, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		event.ID, event.UserID, event.Title, event.Description, event.StartTime, event.EndTime, event.AllDay, event.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert event: %w", err)
	}

	return nil
}

// Update は予定を所有者スコープ付きで上書き更新する。
func (r *PostgresEventRepo) Update(ctx context.Context, event *model.CalendarEvent) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE events SET title = $1, description = $2, start_time = $3, end_time = $4, all_day = $5
		 WHERE id = $6 AND user_id = $7`,
		event.Title, event.Description, event.StartTime, event.EndTime, event.AllDay, event.ID, event.UserID,
	)
	if err != nil {
		return fmt.Errorf("failed to update event: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("event not found: %s", event.ID)
	}

	return nil
}

// Delete はIDと所有者で予定を削除する。
func (r *PostgresEventRepo) Delete(ctx context.Context, id, userID string) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM events WHERE id = $1 AND user_id = $2`,
		id, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("event not found: %s", id)
	}

	return nil
}

// compile-time interface check
var _ EventRepository = (*PostgresEventRepo)(nil)
