package sqlite

import (
	"context"
	"fmt"

	"github.com/julianstephens/focusflow/internal/models"
	"github.com/julianstephens/focusflow/internal/storage"
)

func (s *Store) GetProfile(user string) (models.UserProfile, error) {
	rows, err := s.db.Query("SELECT key, value FROM profiles WHERE username = ?", user)
	if err != nil {
		return models.UserProfile{}, err
	}
	defer rows.Close()

	fields := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return models.UserProfile{}, err
		}
		fields[key] = value
	}
	if err := rows.Err(); err != nil {
		return models.UserProfile{}, err
	}

	if len(fields) == 0 {
		return models.UserProfile{}, storage.ErrProfileNotFound
	}

	return storage.ProfileFromFields(user, fields)
}

func (s *Store) CreateProfile(profile models.UserProfile) error {
	return s.MergeProfile(profile.User, storage.ProfileFields(profile))
}

func (s *Store) MergeProfile(user string, fields map[string]string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for key, value := range fields {
		if _, err := tx.Exec(
			"INSERT OR REPLACE INTO profiles (username, key, value) VALUES (?, ?, ?)",
			user, key, value,
		); err != nil {
			return fmt.Errorf("failed to write profile field %s: %w", key, err)
		}
	}

	return tx.Commit()
}

// WatchProfile is not supported for the local sqlite backend; there is no
// second writer to watch.
func (s *Store) WatchProfile(ctx context.Context, user string) (<-chan models.UserProfile, error) {
	return nil, storage.ErrWatchUnsupported
}
