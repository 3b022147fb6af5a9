// Package store keeps the answer journal of the running drill in SQLite.
//
// The journal normally lives in an in-memory database and is dropped when
// the process exits.
package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/verte-zerg/kanadrill/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// MemoryDSN opens a private in-memory database.
const MemoryDSN = ":memory:"

// Store wraps SQLite access for answer records.
type Store struct {
	db *sql.DB
}

// Open opens the database and creates the schema.
func Open(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	// Every connection to :memory: is a separate database.
	db.SetMaxOpenConns(1)
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS answers (
			id INTEGER PRIMARY KEY,
			answered_at TEXT NOT NULL,
			grapheme TEXT NOT NULL,
			input TEXT NOT NULL,
			expected TEXT NOT NULL,
			correct INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_answers_grapheme ON answers(grapheme);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// InsertAnswer appends one answer to the journal.
func (s *Store) InsertAnswer(ctx context.Context, rec model.Record) (int64, error) {
	correct := 0
	if rec.Correct {
		correct = 1
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO answers (answered_at, grapheme, input, expected, correct)
		 VALUES (?, ?, ?, ?, ?)`,
		rec.AnsweredAt.Format(time.RFC3339Nano),
		rec.Grapheme,
		rec.Input,
		rec.Expected,
		correct,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// CharAggregates sums correct and incorrect answers per grapheme.
func (s *Store) CharAggregates(ctx context.Context) ([]model.CharAggregate, error) {
	return s.CharAggregatesSince(ctx, 0)
}

// CharAggregatesSince is CharAggregates restricted to answers journaled after
// the answer with the given id.
func (s *Store) CharAggregatesSince(ctx context.Context, afterID int64) ([]model.CharAggregate, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT grapheme, SUM(correct) AS correct, SUM(1 - correct) AS incorrect
		 FROM answers
		 WHERE id > ?
		 GROUP BY grapheme
		 ORDER BY grapheme`, afterID)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var result []model.CharAggregate
	for rows.Next() {
		var agg model.CharAggregate
		if err := rows.Scan(&agg.Char, &agg.Correct, &agg.Incorrect); err != nil {
			return nil, err
		}
		result = append(result, agg)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Count returns the number of journaled answers.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM answers`).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// Clear drops every journaled answer.
func (s *Store) Clear(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM answers`)
	return err
}
