package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/custodia-labs/cprchat/internal/core/domain"
	"github.com/custodia-labs/cprchat/internal/core/ports/driven"
)

// Ensure feedbackStore implements the interface.
var _ driven.FeedbackStore = (*feedbackStore)(nil)

// feedbackStore is the SQLite-backed FeedbackStore.
type feedbackStore struct {
	store *Store
}

// Save stores a feedback record.
func (f *feedbackStore) Save(ctx context.Context, fb domain.Feedback) error {
	citations, err := json.Marshal(fb.Citations)
	if err != nil {
		return fmt.Errorf("marshal citations: %w", err)
	}

	_, err = f.store.db.ExecContext(ctx, `
		INSERT INTO feedback (id, question, answer, citations, rating, comment, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			question = excluded.question,
			answer = excluded.answer,
			citations = excluded.citations,
			rating = excluded.rating,
			comment = excluded.comment
	`, fb.ID, fb.Question, fb.Answer, string(citations), string(fb.Rating), fb.Comment,
		fb.CreatedAt.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("insert feedback: %w", err)
	}
	return nil
}

// Get retrieves a feedback record by ID.
func (f *feedbackStore) Get(ctx context.Context, id string) (*domain.Feedback, error) {
	row := f.store.db.QueryRowContext(ctx, `
		SELECT id, question, answer, citations, rating, comment, created_at
		FROM feedback WHERE id = ?
	`, id)

	fb, err := scanFeedback(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get feedback %s: %w", id, err)
	}
	return fb, nil
}

// List returns feedback records, newest first.
func (f *feedbackStore) List(ctx context.Context, limit int) ([]domain.Feedback, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := f.store.db.QueryContext(ctx, `
		SELECT id, question, answer, citations, rating, comment, created_at
		FROM feedback ORDER BY created_at DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("list feedback: %w", err)
	}
	defer rows.Close()

	var result []domain.Feedback
	for rows.Next() {
		fb, err := scanFeedback(rows)
		if err != nil {
			return nil, fmt.Errorf("scan feedback: %w", err)
		}
		result = append(result, *fb)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list feedback: %w", err)
	}
	return result, nil
}

// Delete removes a feedback record.
func (f *feedbackStore) Delete(ctx context.Context, id string) error {
	_, err := f.store.db.ExecContext(ctx, "DELETE FROM feedback WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete feedback %s: %w", id, err)
	}
	return nil
}

// scanner abstracts sql.Row and sql.Rows for scanFeedback.
type scanner interface {
	Scan(dest ...any) error
}

// scanFeedback reads one feedback row.
func scanFeedback(s scanner) (*domain.Feedback, error) {
	var fb domain.Feedback
	var citations, rating, createdAt string

	if err := s.Scan(&fb.ID, &fb.Question, &fb.Answer, &citations, &rating, &fb.Comment, &createdAt); err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(citations), &fb.Citations); err != nil {
		return nil, fmt.Errorf("unmarshal citations: %w", err)
	}
	fb.Rating = domain.FeedbackRating(rating)

	ts, err := time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return nil, fmt.Errorf("parse created_at: %w", err)
	}
	fb.CreatedAt = ts

	return &fb, nil
}
