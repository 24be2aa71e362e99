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

type ConnectionRepository struct {
	pool *pgxpool.Pool
}

func NewConnectionRepository(pool *pgxpool.Pool) *ConnectionRepository {
	return &ConnectionRepository{pool: pool}
}

func (r *ConnectionRepository) Create(conn *models.DatabaseConnection) error {
	ctx := context.Background()

	conn.Prepare()

	query := `
		INSERT INTO database_connections (id, user_id, name, connection_type, connection_string, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.pool.Exec(ctx, query,
		conn.ID,
		conn.UserID,
		conn.Name,
		conn.ConnectionType,
		conn.ConnectionString,
		time.Now(),
	)

	return err
}

func (r *ConnectionRepository) GetByIDAndUserID(id, userID uuid.UUID) (*models.DatabaseConnection, error) {
	ctx := context.Background()

	query := `SELECT id, user_id, name, connection_type, connection_string, created_at
		FROM database_connections WHERE id = $1 AND user_id = $2`

	var conn models.DatabaseConnection
	err := r.pool.QueryRow(ctx, query, id, userID).Scan(
		&conn.ID,
		&conn.UserID,
		&conn.Name,
		&conn.ConnectionType,
		&conn.ConnectionString,
		&conn.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return &conn, nil
}

func (r *ConnectionRepository) ListByUserID(userID uuid.UUID) ([]models.DatabaseConnection, error) {
	ctx := context.Background()

	query := `SELECT id, user_id, name, connection_type, connection_string, created_at
		FROM database_connections WHERE user_id = $1
		ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var conns []models.DatabaseConnection
	for rows.Next() {
		var conn models.DatabaseConnection
		err := rows.Scan(
			&conn.ID,
			&conn.UserID,
			&conn.Name,
			&conn.ConnectionType,
			&conn.ConnectionString,
			&conn.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		conns = append(conns, conn)
	}

	return conns, rows.Err()
}

func (r *ConnectionRepository) Delete(id, userID uuid.UUID) error {
	ctx := context.Background()

	tag, err := r.pool.Exec(ctx, `DELETE FROM database_connections WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
