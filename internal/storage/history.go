// Package storage persists classification results to an embedded
// SQLite database so past classifications can be retrieved and audited.
package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3" // sqlite driver

	"github.com/casemark/taxonomy-mapper/internal/domain"
)

// ErrNotFound is returned when no history exists for a content item.
var ErrNotFound = errors.New("classification history not found")

const historySchema = `
CREATE TABLE IF NOT EXISTS classification_history (
	id                 INTEGER PRIMARY KEY AUTOINCREMENT,
	content_item_id    TEXT    NOT NULL,
	top_category       TEXT    NOT NULL DEFAULT '',
	confidence         REAL    NOT NULL,
	confidence_level   TEXT    NOT NULL,
	is_reliable        INTEGER NOT NULL,
	result_json        TEXT    NOT NULL,
	classifier_version TEXT    NOT NULL,
	processing_time_ms INTEGER NOT NULL,
	classified_at      TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_history_content_item
	ON classification_history (content_item_id);
CREATE INDEX IF NOT EXISTS idx_history_classified_at
	ON classification_history (classified_at);
`

// Open opens (and creates if needed) the SQLite history database.
func Open(path string) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open history database: %w", err)
	}
	// SQLite handles one writer at a time.
	db.SetMaxOpenConns(1)
	return db, nil
}

// HistoryRepository stores and retrieves classification results.
type HistoryRepository struct {
	db *sqlx.DB
}

// NewHistoryRepository creates a repository over an open database.
func NewHistoryRepository(db *sqlx.DB) *HistoryRepository {
	return &HistoryRepository{db: db}
}

// Migrate creates the history schema when it does not exist yet.
func (r *HistoryRepository) Migrate(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, historySchema); err != nil {
		return fmt.Errorf("migrate classification history: %w", err)
	}
	return nil
}

// HistoryEntry is one stored classification, as listed.
type HistoryEntry struct {
	ID              int64     `db:"id" json:"id"`
	ContentItemID   string    `db:"content_item_id" json:"content_item_id"`
	TopCategory     string    `db:"top_category" json:"top_category"`
	Confidence      float64   `db:"confidence" json:"confidence"`
	ConfidenceLevel string    `db:"confidence_level" json:"confidence_level"`
	IsReliable      bool      `db:"is_reliable" json:"is_reliable"`
	ClassifiedAt    time.Time `db:"classified_at" json:"classified_at"`
}

// Create inserts one classification result.
func (r *HistoryRepository) Create(ctx context.Context, result *domain.ClassificationResult) error {
	payload, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("encode classification result: %w", err)
	}

	query := `
		INSERT INTO classification_history (
			content_item_id, top_category, confidence, confidence_level,
			is_reliable, result_json, classifier_version,
			processing_time_ms, classified_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err = r.db.ExecContext(ctx, query,
		result.ContentItemID,
		result.TopCategoryName(),
		result.Confidence.ConfidenceScore,
		result.Confidence.ConfidenceLevel,
		result.Confidence.IsReliable,
		string(payload),
		result.ClassifierVersion,
		result.ProcessingTimeMs,
		result.ClassifiedAt,
	)
	if err != nil {
		return fmt.Errorf("insert classification history: %w", err)
	}
	return nil
}

// GetByContentID returns the most recent classification for a content
// item, or ErrNotFound.
func (r *HistoryRepository) GetByContentID(ctx context.Context, contentItemID string) (*domain.ClassificationResult, error) {
	var payload string
	query := `
		SELECT result_json
		FROM classification_history
		WHERE content_item_id = ?
		ORDER BY classified_at DESC, id DESC
		LIMIT 1
	`
	err := r.db.QueryRowContext(ctx, query, contentItemID).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query classification history: %w", err)
	}

	var result domain.ClassificationResult
	if err := json.Unmarshal([]byte(payload), &result); err != nil {
		return nil, fmt.Errorf("decode classification result: %w", err)
	}
	return &result, nil
}

// ListRecent returns the newest classifications, capped at limit.
func (r *HistoryRepository) ListRecent(ctx context.Context, limit int) ([]HistoryEntry, error) {
	if limit <= 0 {
		limit = 100
	}

	entries := make([]HistoryEntry, 0, limit)
	query := `
		SELECT id, content_item_id, top_category, confidence,
		       confidence_level, is_reliable, classified_at
		FROM classification_history
		ORDER BY classified_at DESC, id DESC
		LIMIT ?
	`
	if err := r.db.SelectContext(ctx, &entries, query, limit); err != nil {
		return nil, fmt.Errorf("list classification history: %w", err)
	}
	return entries, nil
}

// Stats summarizes the stored classifications.
type Stats struct {
	TotalClassified  int            `json:"total_classified"`
	AvgConfidence    float64        `json:"avg_confidence"`
	ReliableCount    int            `json:"reliable_count"`
	ConfidenceLevels map[string]int `json:"confidence_levels"`
}

// GetStats aggregates counts and average confidence across history.
func (r *HistoryRepository) GetStats(ctx context.Context) (*Stats, error) {
	stats := &Stats{ConfidenceLevels: make(map[string]int)}

	summary := struct {
		Total    int             `db:"total"`
		Avg      sql.NullFloat64 `db:"avg_confidence"`
		Reliable int             `db:"reliable"`
	}{}
	err := r.db.GetContext(ctx, &summary, `
		SELECT COUNT(*) AS total,
		       AVG(confidence) AS avg_confidence,
		       COALESCE(SUM(is_reliable), 0) AS reliable
		FROM classification_history
	`)
	if err != nil {
		return nil, fmt.Errorf("aggregate classification history: %w", err)
	}
	stats.TotalClassified = summary.Total
	stats.AvgConfidence = summary.Avg.Float64
	stats.ReliableCount = summary.Reliable

	rows := []struct {
		Level string `db:"confidence_level"`
		Count int    `db:"count"`
	}{}
	err = r.db.SelectContext(ctx, &rows, `
		SELECT confidence_level, COUNT(*) AS count
		FROM classification_history
		GROUP BY confidence_level
	`)
	if err != nil {
		return nil, fmt.Errorf("aggregate confidence levels: %w", err)
	}
	for _, row := range rows {
		stats.ConfidenceLevels[row.Level] = row.Count
	}

	return stats, nil
}
