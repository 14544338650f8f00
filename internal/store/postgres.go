package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/lib/pq"

	"mockify/internal/resume"
	"mockify/internal/stats"
)

// PostgresStore implements Store on a shared database. Whole-document
// load/overwrite semantics are kept so both backends behave alike.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(dsn string) (*PostgresStore, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	s := &PostgresStore{db: db}
	if err := s.migrate(context.Background()); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *PostgresStore) migrate(ctx context.Context) error {
	// Advisory lock so two services starting together don't race the DDL.
	const lockID = 987654321

	var acquired bool
	if err := s.db.QueryRowContext(ctx, `SELECT pg_try_advisory_lock($1)`, lockID).Scan(&acquired); err != nil {
		return fmt.Errorf("failed to acquire migration lock: %w", err)
	}
	if !acquired {
		return nil
	}
	defer func() {
		_, _ = s.db.ExecContext(context.Background(), `SELECT pg_advisory_unlock($1)`, lockID)
	}()

	stmts := []string{
		`CREATE TABLE IF NOT EXISTS interview_stats (
			id INT PRIMARY KEY CHECK (id = 1),
			total_interviews INT NOT NULL DEFAULT 0,
			average_score INT NOT NULL DEFAULT 0
		);`,
		`CREATE TABLE IF NOT EXISTS interview_history (
			id UUID PRIMARY KEY,
			ord INT NOT NULL,
			company TEXT,
			role TEXT,
			round TEXT,
			score INT,
			verdict TEXT,
			date TEXT
		);`,
		`CREATE TABLE IF NOT EXISTS resume_single_history (
			id UUID PRIMARY KEY,
			ord INT NOT NULL,
			filename TEXT,
			ats_score INT,
			skills TEXT[],
			summary TEXT,
			improvements TEXT[],
			ts TEXT
		);`,
		`CREATE TABLE IF NOT EXISTS resume_batch_history (
			id UUID PRIMARY KEY,
			ord INT NOT NULL,
			batch_type TEXT,
			files_processed INT,
			top_n_requested INT,
			results JSONB,
			ts TEXT
		);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

func (s *PostgresStore) LoadStats(ctx context.Context) (stats.CumulativeStats, error) {
	var out stats.CumulativeStats
	row := s.db.QueryRowContext(ctx, `SELECT total_interviews, average_score FROM interview_stats WHERE id = 1`)
	if err := row.Scan(&out.TotalInterviews, &out.AverageScore); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return stats.CumulativeStats{}, nil
		}
		return stats.CumulativeStats{}, fmt.Errorf("load stats: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `SELECT company, role, round, score, verdict, date FROM interview_history ORDER BY ord`)
	if err != nil {
		return stats.CumulativeStats{}, fmt.Errorf("load history: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var e stats.HistoryEntry
		if err := rows.Scan(&e.Company, &e.Role, &e.Round, &e.Score, &e.Verdict, &e.Date); err != nil {
			return stats.CumulativeStats{}, err
		}
		out.History = append(out.History, e)
	}
	return out, rows.Err()
}

func (s *PostgresStore) SaveStats(ctx context.Context, c stats.CumulativeStats) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO interview_stats(id, total_interviews, average_score)
		VALUES(1, $1, $2)
		ON CONFLICT (id) DO UPDATE SET total_interviews=excluded.total_interviews, average_score=excluded.average_score`,
		c.TotalInterviews, c.AverageScore)
	if err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM interview_history`); err != nil {
		return err
	}
	for i, e := range c.History {
		_, err := tx.ExecContext(ctx, `INSERT INTO interview_history(id, ord, company, role, round, score, verdict, date) VALUES($1,$2,$3,$4,$5,$6,$7,$8)`,
			uuid.New(), i, e.Company, e.Role, e.Round, e.Score, e.Verdict, e.Date)
		if err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (s *PostgresStore) LoadHistory(ctx context.Context) (resume.History, error) {
	var h resume.History

	rows, err := s.db.QueryContext(ctx, `SELECT filename, ats_score, skills, summary, improvements, ts FROM resume_single_history ORDER BY ord`)
	if err != nil {
		return resume.History{}, fmt.Errorf("load single history: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var rec resume.SingleRecord
		var skills, improvements []string
		if err := rows.Scan(&rec.Filename, &rec.Analysis.ATSScore, pq.Array(&skills), &rec.Analysis.Summary, pq.Array(&improvements), &rec.Timestamp); err != nil {
			return resume.History{}, err
		}
		rec.Analysis.Skills = skills
		rec.Analysis.Improvements = improvements
		h.Single = append(h.Single, rec)
	}
	if err := rows.Err(); err != nil {
		return resume.History{}, err
	}

	batchRows, err := s.db.QueryContext(ctx, `SELECT batch_type, files_processed, top_n_requested, results, ts FROM resume_batch_history ORDER BY ord`)
	if err != nil {
		return resume.History{}, fmt.Errorf("load batch history: %w", err)
	}
	defer batchRows.Close()
	for batchRows.Next() {
		var rec resume.BatchRecord
		var results []byte
		if err := batchRows.Scan(&rec.Type, &rec.FilesProcessed, &rec.TopNRequested, &results, &rec.Timestamp); err != nil {
			return resume.History{}, err
		}
		if err := json.Unmarshal(results, &rec.Results); err != nil {
			return resume.History{}, fmt.Errorf("decode batch results: %w", err)
		}
		h.Batch = append(h.Batch, rec)
	}
	return h, batchRows.Err()
}

func (s *PostgresStore) SaveHistory(ctx context.Context, h resume.History) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM resume_single_history`); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM resume_batch_history`); err != nil {
		return err
	}
	for i, rec := range h.Single {
		_, err := tx.ExecContext(ctx, `INSERT INTO resume_single_history(id, ord, filename, ats_score, skills, summary, improvements, ts) VALUES($1,$2,$3,$4,$5,$6,$7,$8)`,
			uuid.New(), i, rec.Filename, rec.Analysis.ATSScore, pq.Array(rec.Analysis.Skills), rec.Analysis.Summary, pq.Array(rec.Analysis.Improvements), rec.Timestamp)
		if err != nil {
			return err
		}
	}
	for i, rec := range h.Batch {
		results, err := json.Marshal(rec.Results)
		if err != nil {
			return err
		}
		_, err = tx.ExecContext(ctx, `INSERT INTO resume_batch_history(id, ord, batch_type, files_processed, top_n_requested, results, ts) VALUES($1,$2,$3,$4,$5,$6,$7)`,
			uuid.New(), i, rec.Type, rec.FilesProcessed, rec.TopNRequested, results, rec.Timestamp)
		if err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (s *PostgresStore) ClearHistory(ctx context.Context) error {
	return s.SaveHistory(ctx, resume.History{})
}
