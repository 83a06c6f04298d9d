package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/martinsumner/careerpilot/internal/types"
)

// GetTasks returns the user's weekly task list in stored order. A user with
// no tasks gets an empty slice, not nil.
func (db *DB) GetTasks(ctx context.Context, userID uuid.UUID) ([]types.Task, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, title, type, duration, status, difficulty, description
		 FROM tasks WHERE user_id = $1 ORDER BY position`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer rows.Close()

	tasks := []types.Task{}
	for rows.Next() {
		var t types.Task
		if err := rows.Scan(&t.ID, &t.Title, &t.Type, &t.Duration, &t.Status, &t.Difficulty, &t.Description); err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

// ReplaceTasks swaps the user's task list wholesale for the given slice,
// preserving its order.
func (db *DB) ReplaceTasks(ctx context.Context, userID uuid.UUID, tasks []types.Task) error {
	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM tasks WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("failed to clear tasks: %w", err)
	}
	for i, t := range tasks {
		if err := insertTask(ctx, tx, userID, t, i); err != nil {
			return err
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit tasks: %w", err)
	}
	return nil
}

// AppendTask adds a single task at the end of the user's list.
func (db *DB) AppendTask(ctx context.Context, userID uuid.UUID, task types.Task) error {
	_, err := db.pool.Exec(ctx,
		`INSERT INTO tasks (user_id, id, title, type, duration, status, difficulty, description, position)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8,
		         (SELECT COALESCE(MAX(position), -1) + 1 FROM tasks WHERE user_id = $1))`,
		userID, task.ID, task.Title, task.Type, task.Duration, task.Status, task.Difficulty, task.Description,
	)
	if err != nil {
		return fmt.Errorf("failed to append task: %w", err)
	}
	return nil
}

// ToggleTask flips a task between Todo and Done and returns the new status.
// Returns ErrTaskNotFound if the user has no task with that ID.
func (db *DB) ToggleTask(ctx context.Context, userID uuid.UUID, taskID string) (types.TaskStatus, error) {
	var status types.TaskStatus
	err := db.pool.QueryRow(ctx,
		`UPDATE tasks
		 SET status = CASE WHEN status = 'Done' THEN 'Todo' ELSE 'Done' END
		 WHERE user_id = $1 AND id = $2
		 RETURNING status`,
		userID, taskID,
	).Scan(&status)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", ErrTaskNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to toggle task: %w", err)
	}
	return status, nil
}

func insertTask(ctx context.Context, tx pgx.Tx, userID uuid.UUID, t types.Task, position int) error {
	_, err := tx.Exec(ctx,
		`INSERT INTO tasks (user_id, id, title, type, duration, status, difficulty, description, position)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		userID, t.ID, t.Title, t.Type, t.Duration, t.Status, t.Difficulty, t.Description, position,
	)
	if err != nil {
		return fmt.Errorf("failed to insert task %s: %w", t.ID, err)
	}
	return nil
}
