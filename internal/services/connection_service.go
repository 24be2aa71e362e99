package services

import (
	"errors"

	"github.com/SriramAtmakuri/QueryCraft/internal/models"
	"github.com/SriramAtmakuri/QueryCraft/internal/repositories"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var ErrConnectionNotFound = errors.New("connection not found")

// ConnectionService manages stored connection metadata. Connections are
// labels for the client UI; the server never dials them.
type ConnectionService struct {
	repo *repositories.ConnectionRepository
}

func NewConnectionService(repo *repositories.ConnectionRepository) *ConnectionService {
	return &ConnectionService{repo: repo}
}

func (s *ConnectionService) Create(conn *models.DatabaseConnection) error {
	return s.repo.Create(conn)
}

func (s *ConnectionService) List(userID uuid.UUID) ([]models.DatabaseConnection, error) {
	return s.repo.ListByUserID(userID)
}

func (s *ConnectionService) Delete(id, userID uuid.UUID) error {
	if err := s.repo.Delete(id, userID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrConnectionNotFound
		}
		return err
	}
	return nil
}
