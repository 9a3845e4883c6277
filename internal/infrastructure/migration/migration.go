package migration

import (
	"context"
	"log/slog"

	"github.com/jackc/pgx/v4/pgxpool"
)

// Migration represents a database migration
type Migration struct {
	Name string
	Up   func(ctx context.Context, pool *pgxpool.Pool) error
}

// RunMigrations executes all necessary database migrations on startup
func RunMigrations(ctx context.Context, pool *pgxpool.Pool) error {
	slog.Info("Starting database migrations")

	migrations := []Migration{
		{Name: "create_users", Up: createUsers},
		{Name: "create_interview_tips", Up: createInterviewTips},
		{Name: "create_resumes", Up: createResumes},
		{Name: "seed_interview_tips", Up: seedInterviewTips},
	}

	for _, m := range migrations {
		if err := m.Up(ctx, pool); err != nil {
			slog.Error("Migration failed", "name", m.Name, "error", err)
			return err
		}
		slog.Info("Migration completed", "name", m.Name)
	}

	slog.Info("All migrations completed successfully")
	return nil
}

func createUsers(ctx context.Context, pool *pgxpool.Pool) error {
	query := `
		CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY,
			email TEXT NOT NULL UNIQUE,
			display_name TEXT NOT NULL DEFAULT '',
			password_hash TEXT NOT NULL,
			email_confirmed BOOLEAN NOT NULL DEFAULT TRUE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);
	`
	_, err := pool.Exec(ctx, query)
	return err
}

func createInterviewTips(ctx context.Context, pool *pgxpool.Pool) error {
	query := `
		CREATE TABLE IF NOT EXISTS interview_tips (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			career_id TEXT NOT NULL,
			category TEXT,
			text TEXT NOT NULL,
			order_index INT NOT NULL DEFAULT 0
		);
		CREATE INDEX IF NOT EXISTS interview_tips_career_idx ON interview_tips (career_id, order_index);
	`
	_, err := pool.Exec(ctx, query)
	return err
}

func createResumes(ctx context.Context, pool *pgxpool.Pool) error {
	query := `
		CREATE TABLE IF NOT EXISTS resumes (
			id UUID PRIMARY KEY,
			user_id UUID NOT NULL,
			career_id TEXT,
			full_name TEXT NOT NULL,
			email TEXT NOT NULL,
			phone TEXT NOT NULL DEFAULT '',
			address TEXT NOT NULL DEFAULT '',
			zip_code TEXT NOT NULL DEFAULT '',
			city TEXT NOT NULL DEFAULT '',
			linkedin_url TEXT NOT NULL DEFAULT '',
			website_url TEXT NOT NULL DEFAULT '',
			summary TEXT NOT NULL DEFAULT '',
			photo_url TEXT NOT NULL DEFAULT '',
			work_experience JSONB NOT NULL DEFAULT '[]'::jsonb,
			education JSONB NOT NULL DEFAULT '[]'::jsonb,
			skills JSONB NOT NULL DEFAULT '[]'::jsonb,
			interests JSONB NOT NULL DEFAULT '[]'::jsonb,
			professional_references JSONB NOT NULL DEFAULT '[]'::jsonb,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);
		CREATE INDEX IF NOT EXISTS resumes_user_idx ON resumes (user_id, created_at DESC);
	`
	_, err := pool.Exec(ctx, query)
	return err
}

// seedInterviewTips inserts a starter tip set so a fresh install has
// something to show. Runs only when the table is empty.
func seedInterviewTips(ctx context.Context, pool *pgxpool.Pool) error {
	var count int
	if err := pool.QueryRow(ctx, `SELECT count(*) FROM interview_tips`).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	seed := []struct {
		careerID string
		category string
		text     string
	}{
		{"web-dev", "Technical", "Be ready to walk through a site you built: stack, trade-offs, and what you would change."},
		{"web-dev", "Technical", "Review HTTP basics, browser rendering, and at least one frontend framework in depth."},
		{"web-dev", "Portfolio", "Bring links to live projects; a deployed site beats a description of one."},
		{"software-eng", "Technical", "Practice explaining your design decisions out loud while solving coding problems."},
		{"software-eng", "Behavioral", "Prepare a story about a bug you owned end to end, from report to fix to prevention."},
		{"accountant", "Preparation", "Refresh the core financial statements and be ready to reconcile a simple ledger."},
		{"elem-teacher", "Demonstration", "Expect a demo lesson; plan one with a clear objective and a closing check for understanding."},
	}

	for i, t := range seed {
		if _, err := pool.Exec(ctx, `INSERT INTO interview_tips (career_id, category, text, order_index)
			VALUES ($1,$2,$3,$4)`, t.careerID, t.category, t.text, i); err != nil {
			return err
		}
	}
	return nil
}
