// Copyright 2024 KNUST Chat Bot Backend Project
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package store persists chat history, FAQ entries and recommendation
// records in SQLite.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Store handles all durable state for the service.
type Store struct {
	db *sql.DB
}

// New opens (or creates) the database at dbPath and ensures the schema.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	s := &Store{db: db}
	if err := s.initSchema(); err != nil {
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Ping verifies the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Store) initSchema() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS chat_history (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			uid TEXT,
			message TEXT NOT NULL,
			response TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS faqs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			question TEXT NOT NULL UNIQUE,
			answer TEXT NOT NULL,
			frequency INTEGER NOT NULL DEFAULT 1,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS recommendations (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			uid TEXT,
			aggregate INTEGER NOT NULL,
			payload TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
	}
	for _, q := range queries {
		if _, err := s.db.Exec(q); err != nil {
			return err
		}
	}
	return nil
}

// ChatRecord is one persisted exchange.
type ChatRecord struct {
	ID        int64     `json:"id"`
	UID       string    `json:"uid"`
	Message   string    `json:"message"`
	Response  string    `json:"response"`
	CreatedAt time.Time `json:"created_at"`
}

// SaveExchange appends one chat exchange. Satisfies the orchestrator's
// Recorder interface.
func (s *Store) SaveExchange(ctx context.Context, uid, message, response string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO chat_history (uid, message, response) VALUES (?, ?, ?)`,
		uid, message, response)
	if err != nil {
		return fmt.Errorf("failed to insert chat exchange: %w", err)
	}
	return nil
}

// ChatHistory returns the most recent exchanges for a user, newest first.
func (s *Store) ChatHistory(ctx context.Context, uid string, limit int) ([]ChatRecord, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, uid, message, response, created_at
		 FROM chat_history WHERE uid = ? ORDER BY id DESC LIMIT ?`,
		uid, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query chat history: %w", err)
	}
	defer rows.Close()

	var records []ChatRecord
	for rows.Next() {
		var r ChatRecord
		if err := rows.Scan(&r.ID, &r.UID, &r.Message, &r.Response, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan chat record: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// FAQ is a question/answer pair with an ask counter.
type FAQ struct {
	ID        int64     `json:"id"`
	Question  string    `json:"question"`
	Answer    string    `json:"answer"`
	Frequency int       `json:"frequency"`
	CreatedAt time.Time `json:"created_at"`
}

// UpsertFAQ records a question and its answer. Repeats of the same question
// bump the frequency counter instead of inserting a duplicate.
func (s *Store) UpsertFAQ(ctx context.Context, question, answer string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO faqs (question, answer) VALUES (?, ?)
		 ON CONFLICT(question) DO UPDATE SET frequency = frequency + 1, answer = excluded.answer`,
		question, answer)
	if err != nil {
		return fmt.Errorf("failed to upsert faq: %w", err)
	}
	return nil
}

// ListFAQs returns FAQs ordered by how often they were asked.
func (s *Store) ListFAQs(ctx context.Context, limit int) ([]FAQ, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, question, answer, frequency, created_at
		 FROM faqs ORDER BY frequency DESC, id ASC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query faqs: %w", err)
	}
	defer rows.Close()

	var faqs []FAQ
	for rows.Next() {
		var f FAQ
		if err := rows.Scan(&f.ID, &f.Question, &f.Answer, &f.Frequency, &f.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan faq: %w", err)
		}
		faqs = append(faqs, f)
	}
	return faqs, rows.Err()
}

// GetFAQ fetches one FAQ by id. Returns sql.ErrNoRows when absent.
func (s *Store) GetFAQ(ctx context.Context, id int64) (FAQ, error) {
	var f FAQ
	err := s.db.QueryRowContext(ctx,
		`SELECT id, question, answer, frequency, created_at FROM faqs WHERE id = ?`, id).
		Scan(&f.ID, &f.Question, &f.Answer, &f.Frequency, &f.CreatedAt)
	if err != nil {
		return FAQ{}, err
	}
	return f, nil
}

// UpdateFAQ rewrites an FAQ's question and answer. Returns sql.ErrNoRows
// when absent.
func (s *Store) UpdateFAQ(ctx context.Context, id int64, question, answer string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE faqs SET question = ?, answer = ? WHERE id = ?`, question, answer, id)
	if err != nil {
		return fmt.Errorf("failed to update faq: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// DeleteFAQ removes an FAQ by id.
func (s *Store) DeleteFAQ(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM faqs WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete faq: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// RecommendationRecord is one persisted recommendation request with its
// full result payload.
type RecommendationRecord struct {
	ID        int64           `json:"id"`
	UID       string          `json:"uid"`
	Aggregate int             `json:"aggregate"`
	Payload   json.RawMessage `json:"payload"`
	CreatedAt time.Time       `json:"created_at"`
}

// SaveRecommendation persists a recommendation result for later analytics.
func (s *Store) SaveRecommendation(ctx context.Context, uid string, aggregate int, payload any) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode recommendation payload: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO recommendations (uid, aggregate, payload) VALUES (?, ?, ?)`,
		uid, aggregate, string(raw))
	if err != nil {
		return fmt.Errorf("failed to insert recommendation: %w", err)
	}
	return nil
}

// Recommendations returns the most recent recommendation records, newest
// first.
func (s *Store) Recommendations(ctx context.Context, uid string, limit int) ([]RecommendationRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, uid, aggregate, payload, created_at
		 FROM recommendations WHERE uid = ? ORDER BY id DESC LIMIT ?`,
		uid, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query recommendations: %w", err)
	}
	defer rows.Close()

	var records []RecommendationRecord
	for rows.Next() {
		var r RecommendationRecord
		var payload string
		if err := rows.Scan(&r.ID, &r.UID, &r.Aggregate, &payload, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan recommendation: %w", err)
		}
		r.Payload = json.RawMessage(payload)
		records = append(records, r)
	}
	return records, rows.Err()
}
