package services

import (
	"errors"

	"github.com/SriramAtmakuri/QueryCraft/internal/models"
	"github.com/SriramAtmakuri/QueryCraft/internal/repositories"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var ErrSavedQueryNotFound = errors.New("saved query not found")

type SavedQueryService struct {
	repo *repositories.SavedQueryRepository
}

func NewSavedQueryService(repo *repositories.SavedQueryRepository) *SavedQueryService {
	return &SavedQueryService{repo: repo}
}

func (s *SavedQueryService) Create(query *models.SavedQuery) error {
	query.Dialect = NormalizeDialect(query.Dialect)
	return s.repo.Create(query)
}

func (s *SavedQueryService) Get(id, userID uuid.UUID) (*models.SavedQuery, error) {
	query, err := s.repo.GetByIDAndUserID(id, userID)
	if err != nil {
		return nil, err
	}
	if query == nil {
		return nil, ErrSavedQueryNotFound
	}
	return query, nil
}

func (s *SavedQueryService) List(userID uuid.UUID) ([]models.SavedQuery, error) {
	return s.repo.ListByUserID(userID)
}

func (s *SavedQueryService) Update(query *models.SavedQuery) error {
	query.Dialect = NormalizeDialect(query.Dialect)
	if err := s.repo.Update(query); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrSavedQueryNotFound
		}
		return err
	}
	return nil
}

func (s *SavedQueryService) Delete(id, userID uuid.UUID) error {
	if err := s.repo.Delete(id, userID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrSavedQueryNotFound
		}
		return err
	}
	return nil
}
