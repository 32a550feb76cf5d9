package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"legends-bot/internal/config"
	"legends-bot/pkg/database"
	"legends-bot/pkg/logger"
)

// Schema is rewritten idempotently: every statement is IF NOT EXISTS so
// the command can run on every deploy.
var statements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id         BIGINT PRIMARY KEY,
		username   TEXT NOT NULL DEFAULT '',
		full_name  TEXT NOT NULL,
		group_name TEXT NOT NULL,
		mode       TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS teams (
		id               TEXT PRIMARY KEY,
		name             TEXT NOT NULL,
		captain_id       BIGINT NOT NULL,
		reserved_slot_id TEXT,
		created_at       TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,

	`CREATE TABLE IF NOT EXISTS team_members (
		team_id  TEXT NOT NULL REFERENCES teams (id) ON DELETE CASCADE,
		user_id  BIGINT NOT NULL REFERENCES users (id),
		position INT NOT NULL,
		PRIMARY KEY (team_id, user_id)
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS team_members_user_idx ON team_members (user_id)`,

	`CREATE TABLE IF NOT EXISTS tasks (
		id           INT PRIMARY KEY,
		index        INT NOT NULL,
		task_type    TEXT NOT NULL,
		question     TEXT NOT NULL,
		explanation  TEXT NOT NULL DEFAULT '',
		media_id     TEXT,
		options      TEXT[] NOT NULL DEFAULT '{}',
		points       INT NOT NULL,
		price        INT NOT NULL DEFAULT 0,
		max_distance INT NOT NULL DEFAULT 0
	)`,

	`CREATE TABLE IF NOT EXISTS task_dependencies (
		task_id    INT NOT NULL REFERENCES tasks (id),
		depends_on INT NOT NULL REFERENCES tasks (id),
		PRIMARY KEY (task_id, depends_on)
	)`,

	`CREATE TABLE IF NOT EXISTS task_correct_answers (
		task_id INT NOT NULL REFERENCES tasks (id),
		answer  TEXT NOT NULL,
		PRIMARY KEY (task_id, answer)
	)`,

	`CREATE TABLE IF NOT EXISTS tracks (
		tag         TEXT PRIMARY KEY,
		description TEXT NOT NULL,
		media_id    TEXT NOT NULL DEFAULT ''
	)`,

	`CREATE TABLE IF NOT EXISTS track_tasks (
		track_tag TEXT NOT NULL REFERENCES tracks (tag),
		task_id   INT NOT NULL REFERENCES tasks (id),
		PRIMARY KEY (track_tag, task_id)
	)`,

	`CREATE TABLE IF NOT EXISTS answers (
		id         TEXT PRIMARY KEY,
		team_id    TEXT NOT NULL REFERENCES teams (id) ON DELETE CASCADE,
		task_id    INT NOT NULL REFERENCES tasks (id),
		text       TEXT NOT NULL,
		points     INT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL,
		UNIQUE (team_id, task_id)
	)`,

	`CREATE TABLE IF NOT EXISTS started_tracks (
		team_id     TEXT NOT NULL REFERENCES teams (id) ON DELETE CASCADE,
		track_tag   TEXT NOT NULL REFERENCES tracks (tag),
		state       TEXT NOT NULL,
		started_at  TIMESTAMPTZ NOT NULL,
		finished_at TIMESTAMPTZ,
		PRIMARY KEY (team_id, track_tag)
	)`,

	`CREATE TABLE IF NOT EXISTS slots (
		id         TEXT PRIMARY KEY,
		start_time TIMESTAMPTZ NOT NULL,
		site       TEXT NOT NULL,
		capacity   INT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS slots_start_idx ON slots (start_time)`,

	`CREATE TABLE IF NOT EXISTS reservations (
		slot_id TEXT NOT NULL REFERENCES slots (id),
		team_id TEXT NOT NULL,
		places  INT NOT NULL,
		PRIMARY KEY (slot_id, team_id)
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS reservations_team_idx ON reservations (team_id)`,

	`CREATE TABLE IF NOT EXISTS media (
		id         TEXT PRIMARY KEY,
		file_id    TEXT NOT NULL,
		media_type TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS characters (
		id       TEXT PRIMARY KEY,
		index    INT NOT NULL,
		name     TEXT NOT NULL UNIQUE,
		quote    TEXT NOT NULL DEFAULT '',
		facts    TEXT[] NOT NULL DEFAULT '{}',
		legacy   TEXT NOT NULL DEFAULT '',
		media_id TEXT NOT NULL DEFAULT ''
	)`,

	`CREATE TABLE IF NOT EXISTS feedback (
		id         BIGSERIAL PRIMARY KEY,
		author_id  BIGINT NOT NULL,
		text       TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS admins (
		user_id BIGINT PRIMARY KEY
	)`,
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	db, err := database.NewPostgresDB(ctx, cfg.DatabaseURL)
	if err != nil {
		log.WithError(err).Fatal("Failed to connect to database")
	}
	defer db.Close()

	for i, stmt := range statements {
		if _, err := db.Pool.Exec(ctx, stmt); err != nil {
			log.WithError(err).WithField("statement", i).Fatal("Migration failed")
		}
	}

	log.WithField("statements", len(statements)).Info("Migration complete")
}
