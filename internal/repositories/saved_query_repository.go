package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/SriramAtmakuri/QueryCraft/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type SavedQueryRepository struct {
	pool *pgxpool.Pool
}

func NewSavedQueryRepository(pool *pgxpool.Pool) *SavedQueryRepository {
	return &SavedQueryRepository{pool: pool}
}

func (r *SavedQueryRepository) Create(sq *models.SavedQuery) error {
	ctx := context.Background()

	sq.Prepare()

	query := `
		INSERT INTO saved_queries (id, user_id, name, sql_text, dialect, visualization_config, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $7)
	`

	_, err := r.pool.Exec(ctx, query,
		sq.ID,
		sq.UserID,
		sq.Name,
		sq.SQL,
		sq.Dialect,
		sq.VisualizationConfig,
		time.Now(),
	)

	return err
}

func (r *SavedQueryRepository) GetByIDAndUserID(id, userID uuid.UUID) (*models.SavedQuery, error) {
	ctx := context.Background()

	query := `SELECT id, user_id, name, sql_text, dialect, visualization_config, created_at, updated_at
		FROM saved_queries WHERE id = $1 AND user_id = $2`

	var sq models.SavedQuery
	err := r.pool.QueryRow(ctx, query, id, userID).Scan(
		&sq.ID,
		&sq.UserID,
		&sq.Name,
		&sq.SQL,
		&sq.Dialect,
		&sq.VisualizationConfig,
		&sq.CreatedAt,
		&sq.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return &sq, nil
}

func (r *SavedQueryRepository) ListByUserID(userID uuid.UUID) ([]models.SavedQuery, error) {
	ctx := context.Background()

	query := `SELECT id, user_id, name, sql_text, dialect, visualization_config, created_at, updated_at
		FROM saved_queries WHERE user_id = $1
		ORDER BY updated_at DESC`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var queries []models.SavedQuery
	for rows.Next() {
		var sq models.SavedQuery
		err := rows.Scan(
			&sq.ID,
			&sq.UserID,
			&sq.Name,
			&sq.SQL,
			&sq.Dialect,
			&sq.VisualizationConfig,
			&sq.CreatedAt,
			&sq.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		queries = append(queries, sq)
	}

	return queries, rows.Err()
}

func (r *SavedQueryRepository) Update(sq *models.SavedQuery) error {
	ctx := context.Background()

	query := `
		UPDATE saved_queries
		SET name = $3, sql_text = $4, dialect = $5, visualization_config = $6, updated_at = NOW()
		WHERE id = $1 AND user_id = $2
	`

	tag, err := r.pool.Exec(ctx, query,
		sq.ID,
		sq.UserID,
		sq.Name,
		sq.SQL,
		sq.Dialect,
		sq.VisualizationConfig,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *SavedQueryRepository) Delete(id, userID uuid.UUID) error {
	ctx := context.Background()

	tag, err := r.pool.Exec(ctx, `DELETE FROM saved_queries WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
