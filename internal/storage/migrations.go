package storage

import "github.com/julianstephens/focusflow/internal/migration"

// Migrations is the shared schema history. Statements are plain DDL that
// both sqlite and postgres accept unchanged.
var Migrations = []migration.Migration{
	{
		Version: 1,
		Name:    "init",
		SQL: `
			CREATE TABLE IF NOT EXISTS profiles (
				username TEXT NOT NULL,
				key TEXT NOT NULL,
				value TEXT NOT NULL,
				PRIMARY KEY (username, key)
			);
			CREATE TABLE IF NOT EXISTS tasks (
				id TEXT PRIMARY KEY,
				username TEXT NOT NULL,
				name TEXT NOT NULL,
				status TEXT NOT NULL,
				started_at TEXT NOT NULL,
				duration_min INTEGER NOT NULL
			);
		`,
	},
	{
		Version: 2,
		Name:    "task_user_index",
		SQL: `
			CREATE INDEX IF NOT EXISTS idx_tasks_username_started
				ON tasks (username, started_at);
		`,
	},
}
