package searchlog

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yanqian/home-solutions/internal/domain/classifier"
)

// PostgresRepository implements classifier.HistoryRepository using pgx.
// Schema lives in migrations/0001_classification_log.sql.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs the repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// Append inserts one classification outcome.
func (r *PostgresRepository) Append(ctx context.Context, entry classifier.HistoryEntry) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO classification_log (query, category, status, reasoning, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, entry.Query, string(entry.Category), string(entry.Status), entry.Reasoning, entry.CreatedAt)
	return err
}

// Recent returns the newest entries first.
func (r *PostgresRepository) Recent(ctx context.Context, limit int) ([]classifier.HistoryEntry, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, query, category, status, reasoning, created_at
		FROM classification_log
		ORDER BY created_at DESC, id DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]classifier.HistoryEntry, 0, limit)
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, entry)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(row rowScanner) (classifier.HistoryEntry, error) {
	var (
		entry    classifier.HistoryEntry
		category string
		status   string
	)
	if err := row.Scan(&entry.ID, &entry.Query, &category, &status, &entry.Reasoning, &entry.CreatedAt); err != nil {
		return classifier.HistoryEntry{}, err
	}
	entry.Category = classifier.Label(category)
	entry.Status = classifier.Status(status)
	return entry, nil
}

var _ classifier.HistoryRepository = (*PostgresRepository)(nil)
