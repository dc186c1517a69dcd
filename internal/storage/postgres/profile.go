package postgres

import (
	"fmt"

	"github.com/julianstephens/focusflow/internal/models"
	"github.com/julianstephens/focusflow/internal/storage"
)

// profileChannel is the NOTIFY channel profile writers signal on; the
// payload is the username whose profile changed.
const profileChannel = "focusflow_profiles"

func (s *Store) GetProfile(user string) (models.UserProfile, error) {
	rows, err := s.db.Query("SELECT key, value FROM profiles WHERE username = $1", user)
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
		if _, err := tx.Exec(`
			INSERT INTO profiles (username, key, value) VALUES ($1, $2, $3)
			ON CONFLICT (username, key) DO UPDATE SET value = EXCLUDED.value`,
			user, key, value,
		); err != nil {
			return fmt.Errorf("failed to write profile field %s: %w", key, err)
		}
	}

	// Wake any listening replicas of this profile
	if _, err := tx.Exec("SELECT pg_notify($1, $2)", profileChannel, user); err != nil {
		return fmt.Errorf("failed to notify profile change: %w", err)
	}

	return tx.Commit()
}
