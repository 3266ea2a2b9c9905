package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"estudamais-backend/internal/models"
	"estudamais-backend/internal/repository"
)

// TimeclockService owns the one-open-record-per-user rule; the schema does
// not enforce it.
type TimeclockService struct {
	repo *repository.TimeclockRepo
}

func NewTimeclockService(repo *repository.TimeclockRepo) *TimeclockService {
	return &TimeclockService{repo: repo}
}

func (s *TimeclockService) ClockIn(ctx context.Context, userID uuid.UUID, notes *string) (*models.TimeclockRecord, error) {
	open, err := s.repo.GetOpen(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("check open record: %w", err)
	}
	if open != nil {
		return nil, &ConflictError{Message: "Você já bateu o ponto de entrada. Finalize o ponto atual antes de iniciar outro."}
	}

	rec := &models.TimeclockRecord{UserID: userID, Notes: notes}
	if err := s.repo.Create(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// ClockOut closes the open record. Notes, when sent, replace the ones
// recorded at clock-in.
func (s *TimeclockService) ClockOut(ctx context.Context, userID uuid.UUID, notes *string) (*models.TimeclockRecord, error) {
	open, err := s.repo.GetOpen(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("check open record: %w", err)
	}
	if open == nil {
		return nil, &ConflictError{Message: "Nenhum ponto de entrada em aberto."}
	}

	if err := s.repo.Close(ctx, open.ID, userID, notes); err != nil {
		return nil, err
	}
	return s.repo.GetByIDForUser(ctx, open.ID, userID)
}

func (s *TimeclockService) ListRecent(ctx context.Context, userID uuid.UUID) ([]*models.TimeclockRecord, *models.TimeclockRecord, error) {
	records, err := s.repo.ListRecent(ctx, userID, 20)
	if err != nil {
		return nil, nil, err
	}

	var active *models.TimeclockRecord
	for _, rec := range records {
		if rec.Open() {
			active = rec
			break
		}
	}
	return records, active, nil
}

func (s *TimeclockService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return s.repo.Delete(ctx, id, userID)
}
