package repositories

import (
	"context"
	"errors"

	"github.com/SriramAtmakuri/QueryCraft/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// historyCap bounds how many history rows a user keeps; older entries are
// pruned on insert.
const historyCap = 50

// ErrHistoryNotFound is returned when an update targets a history entry
// the user does not own.
var ErrHistoryNotFound = errors.New("history entry not found")

type QueryHistoryRepository struct {
	pool *pgxpool.Pool
}

func NewQueryHistoryRepository(pool *pgxpool.Pool) *QueryHistoryRepository {
	return &QueryHistoryRepository{pool: pool}
}

func (r *QueryHistoryRepository) Create(entry *models.QueryHistory) error {
	ctx := context.Background()

	entry.Prepare()

	query := `
		INSERT INTO query_history (id, user_id, prompt, sql_text, dialect, bookmarked, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.pool.Exec(ctx, query,
		entry.ID,
		entry.UserID,
		entry.Prompt,
		entry.SQL,
		entry.Dialect,
		entry.Bookmarked,
		entry.CreatedAt,
	)
	if err != nil {
		return err
	}

	// Keep at most historyCap rows per user; bookmarked entries survive.
	prune := `
		DELETE FROM query_history
		WHERE user_id = $1 AND bookmarked = false AND id NOT IN (
			SELECT id FROM query_history
			WHERE user_id = $1
			ORDER BY created_at DESC
			LIMIT $2
		)
	`
	_, err = r.pool.Exec(ctx, prune, entry.UserID, historyCap)
	return err
}

func (r *QueryHistoryRepository) ListByUserID(userID uuid.UUID, limit int) ([]models.QueryHistory, error) {
	ctx := context.Background()

	if limit <= 0 || limit > historyCap {
		limit = historyCap
	}

	query := `
		SELECT id, user_id, prompt, sql_text, dialect, bookmarked, created_at
		FROM query_history WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	rows, err := r.pool.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []models.QueryHistory
	for rows.Next() {
		var h models.QueryHistory
		err := rows.Scan(
			&h.ID,
			&h.UserID,
			&h.Prompt,
			&h.SQL,
			&h.Dialect,
			&h.Bookmarked,
			&h.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		entries = append(entries, h)
	}

	return entries, rows.Err()
}

func (r *QueryHistoryRepository) SetBookmark(id, userID uuid.UUID, bookmarked bool) error {
	ctx := context.Background()

	tag, err := r.pool.Exec(ctx,
		`UPDATE query_history SET bookmarked = $3 WHERE id = $1 AND user_id = $2`,
		id, userID, bookmarked)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrHistoryNotFound
	}
	return nil
}
