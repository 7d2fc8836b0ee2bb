package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/hitoshi/daybook/internal/model"
)

// PostgresHabitRepo はPostgreSQLを使用した習慣リポジトリ。
type PostgresHabitRepo struct {
	db *sql.DB
}

// NewPostgresHabitRepo はPostgresHabitRepoを生成する。
func NewPostgresHabitRepo(db *sql.DB) *PostgresHabitRepo {
	return &PostgresHabitRepo{db: db}
}

// ListByUserID はユーザーの習慣一覧を作成日時の降順で返す。
func (r *PostgresHabitRepo) ListByUserID(ctx context.Context, userID string) ([]*model.Habit, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, name, streak, last_completed, created_at
		 FROM habits WHERE user_id = $1 ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list habits: %w", err)
	}
	defer rows.Close()

	var habits []*model.Habit
	for rows.Next() {
		habit := &model.Habit{}
		var lastCompleted sql.NullTime
		if err := rows.Scan(&habit.ID, &habit.UserID, &habit.Name, &habit.Streak, &lastCompleted, &habit.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan habit: %w", err)
		}
		if lastCompleted.Valid {
			habit.LastCompleted = &lastCompleted.Time
		}
		habits = append(habits, habit)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate habits: %w", err)
	}

	return habits, nil
}

// FindByIDAndUser はIDと所有者で習慣を取得する。見つからない場合はnilを返す。
func (r *PostgresHabitRepo) FindByIDAndUser(ctx context.Context, id, userID string) (*model.Habit, error) {
	habit := &model.Habit{}
	var lastCompleted sql.NullTime
	err := r.db.QueryRowContext(ctx,
		`SELECT id, user_id, name, streak, last_completed, created_at
		 FROM habits WHERE id = $1 AND user_id = $2`,
		id, userID,
	).Scan(&habit.ID, &habit.UserID, &habit.Name, &habit.Streak, &lastCompleted, &habit.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find habit: %w", err)
	}
	if lastCompleted.Valid {
		habit.LastCompleted = &lastCompleted.Time
	}

	return habit, nil
}

// Create は習慣を作成する。
func (r *PostgresHabitRepo) Create(ctx context.Context, habit *model.Habit) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO habits (id, user_id, name, streak, last_completed, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		habit.ID, habit.UserID, habit.Name, habit.Streak, habit.LastCompleted, habit.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert habit: %w", err)
	}

	return nil
}

// UpdateStreak はストリークと最終完了日を条件付きで更新する。
// 読み取り時のlast_completedと一致する行のみ更新する（compare-and-swap）。
// 条件を満たす行がなかった場合はfalseを返す。同一習慣への同時完了リクエストの
// 二重カウントはこの条件で弾かれる。
func (r *PostgresHabitRepo) UpdateStreak(ctx context.Context, id, userID string, streak int, lastCompleted time.Time, prevLastCompleted *time.Time) (bool, error) {
	var result sql.Result
	var err error

	if prevLastCompleted == nil {
		result, err = r.db.ExecContext(ctx,
			`UPDATE habits SET streak = $1, last_completed = $2
			 WHERE id = $3 AND user_id = $4 AND last_completed IS NULL`,
			streak, lastCompleted, id, userID,
		)
	} else {
		result, err = r.db.ExecContext(ctx,
			`UPDATE habits SET streak = $1, last_completed = $2
			 WHERE id = $3 AND user_id = $4 AND last_completed = $5`,
			streak, lastCompleted, id, userID, *prevLastCompleted,
		)
	}
	if err != nil {
		return false, fmt.Errorf("failed to update habit streak: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return rowsAffected == 1, nil
}

// Delete はIDと所有者で習慣を削除する。
func (r *PostgresHabitRepo) Delete(ctx context.Context, id, userID string) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM habits WHERE id = $1 AND user_id = $2`,
		id, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete habit: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("habit not found: %s", id)
	}

	return nil
}

// compile-time interface check
var _ HabitRepository = (*PostgresHabitRepo)(nil)
