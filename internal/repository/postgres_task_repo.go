package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hitoshi/daybook/internal/model"
)

// PostgresTaskRepo はPostgreSQLを使用したタスクリポジトリ。
type PostgresTaskRepo struct {
	db *sql.DB
}

// NewPostgresTaskRepo はPostgresTaskRepoを生成する。
func NewPostgresTaskRepo(db *sql.DB) *PostgresTaskRepo {
	return &PostgresTaskRepo{db: db}
}

// ListByUserID はユーザーのタスク一覧を作成日時の降順で返す。
func (r *PostgresTaskRepo) ListByUserID(ctx context.Context, userID string) ([]*model.Task, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, title, description, status, due_date, created_at
		 FROM tasks WHERE user_id = $1 ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer rows.Close()

	var tasks []*model.Task
	for rows.Next() {
		task := &model.Task{}
		var dueDate sql.NullTime
		if err := rows.Scan(&task.ID, &task.UserID, &task.Title, &task.Description, &task.Status, &dueDate, &task.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		if dueDate.Valid {
			task.DueDate = &dueDate.Time
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate tasks: %w", err)
	}

	return tasks, nil
}

// FindByIDAndUser はIDと所有者でタスクを取得する。見つからない場合はnilを返す。
func (r *PostgresTaskRepo) FindByIDAndUser(ctx context.Context, id, userID string) (*model.Task, error) {
	task := &model.Task{}
	var dueDate sql.NullTime
	err := r.db.QueryRowContext(ctx,
		`SELECT id, user_id, title, description, status, due_date, created_at
		 FROM tasks WHERE id = $1 AND user_id = $2`,
		id, userID,
	).Scan(&task.ID, &task.UserID, &task.Title, &task.Description, &task.Status, &dueDate, &task.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	if dueDate.Valid {
		task.DueDate = &dueDate.Time
	}

	return task, nil
}

// Create はタスクを作成する。
func (r *PostgresTaskRepo) Create(ctx context.Context, task *model.Task) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO tasks (id, user_id, title, description, status, due_date, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		task.ID, task.UserID, task.Title, task.Description, task.Status, task.DueDate, task.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert task: %w", err)
	}

	return nil
}

// Update はタスクを所有者スコープ付きで上書き更新する。
func (r *PostgresTaskRepo) Update(ctx context.Context, task *model.Task) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE tasks SET title = $1, description = $2, status = $3, due_date = $4
		 WHERE id = $5 AND user_id = $6`,
		task.Title, task.Description, task.Status, task.DueDate, task.ID, task.UserID,
	)
	if err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("task not found: %s", task.ID)
	}

	return nil
}

// Delete はIDと所有者でタスクを削除する。
func (r *PostgresTaskRepo) Delete(ctx context.Context, id, userID string) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM tasks WHERE id = $1 AND user_id = $2`,
		id, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("task not found: %s", id)
	}

	return nil
}

// compile-time interface check
var _ TaskRepository = (*PostgresTaskRepo)(nil)
