package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/focusflow/internal/constants"
	"github.com/julianstephens/focusflow/internal/models"
	"github.com/julianstephens/focusflow/internal/storage"
)

func (s *Store) AddTask(user string, task models.Task) error {
	_, err := s.db.Exec(`
		INSERT OR REPLACE INTO tasks (id, username, name, status, started_at, duration_min)
		VALUES (?, ?, ?, ?, ?, ?)`,
		task.ID, user, task.Name, string(task.Status),
		task.StartedAt.UTC().Format(time.RFC3339), task.DurationMin,
	)
	return err
}

func (s *Store) GetTask(user, id string) (models.Task, error) {
	row := s.db.QueryRow(`
		SELECT id, name, status, started_at, duration_min
		FROM tasks WHERE id = ? AND username = ?`, id, user)

	return scanTask(row)
}

func (s *Store) ListTasks(user string, limit int) ([]models.Task, error) {
	query := `
		SELECT id, name, status, started_at, duration_min
		FROM tasks WHERE username = ?
		ORDER BY started_at DESC`
	args := []interface{}{user}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []models.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

// CompleteTask flips the task to completed and writes the streak pair in
// one transaction.
func (s *Store) CompleteTask(user, taskID string, streak int, lastCompletedDate string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.Exec(
		"UPDATE tasks SET status = ? WHERE id = ? AND username = ?",
		string(constants.TaskCompleted), taskID, user,
	)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return storage.ErrTaskNotFound
	}

	for key, value := range storage.StreakFields(streak, lastCompletedDate) {
		if _, err := tx.Exec(
			"INSERT OR REPLACE INTO profiles (username, key, value) VALUES (?, ?, ?)",
			user, key, value,
		); err != nil {
			return fmt.Errorf("failed to write profile field %s: %w", key, err)
		}
	}

	return tx.Commit()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanTask(row rowScanner) (models.Task, error) {
	var t models.Task
	var status, startedAt string

	err := row.Scan(&t.ID, &t.Name, &status, &startedAt, &t.DurationMin)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Task{}, storage.ErrTaskNotFound
		}
		return models.Task{}, err
	}

	t.Status = constants.TaskStatus(status)
	t.StartedAt, err = time.Parse(time.RFC3339, startedAt)
	if err != nil {
		return models.Task{}, fmt.Errorf("parsing started_at: %w", err)
	}

	return t, nil
}
