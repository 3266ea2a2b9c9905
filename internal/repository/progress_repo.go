package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"estudamais-backend/internal/models"
)

type ProgressRepo struct {
	pool *pgxpool.Pool
}

func NewProgressRepo(pool *pgxpool.Pool) *ProgressRepo {
	return &ProgressRepo{pool: pool}
}

// Upsert writes the progress row for (user, folder). A transition into
// in_progress stamps last_studied_at and counts one more study session.
func (r *ProgressRepo) Upsert(ctx context.Context, p *models.StudyProgress) error {
	startedStudying := p.Status == models.StudyStatusInProgress

	query := `
		INSERT INTO study_progress (id, user_id, folder_id, status, priority, notes, last_studied_at, study_sessions)
		VALUES ($1, $2, $3, $4, $5, $6,
			CASE WHEN $7 THEN NOW() ELSE NULL END,
			CASE WHEN $7 THEN 1 ELSE 0 END)
		ON CONFLICT (user_id, folder_id) DO UPDATE SET
			status = EXCLUDED.status,
			priority = EXCLUDED.priority,
			notes = EXCLUDED.notes,
			last_studied_at = CASE WHEN $7 THEN NOW() ELSE study_progress.last_studied_at END,
			study_sessions = study_progress.study_sessions +
				CASE WHEN $7 AND study_progress.status <> $4 THEN 1 ELSE 0 END,
			updated_at = NOW()
		RETURNING id, last_studied_at, study_sessions, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		uuid.New(), p.UserID, p.FolderID, p.Status, p.Priority, p.Notes, startedStudying,
	).Scan(&p.ID, &p.LastStudiedAt, &p.StudySessions, &p.CreatedAt, &p.UpdatedAt)
}

func (r *ProgressRepo) GetByFolder(ctx context.Context, userID, folderID uuid.UUID) (*models.StudyProgress, error) {
	p := &models.StudyProgress{}
	query := `SELECT id, user_id, folder_id, status, priority, last_studied_at, study_sessions, notes, created_at, updated_at
		FROM study_progress WHERE user_id = $1 AND folder_id = $2`

	err := r.pool.QueryRow(ctx, query, userID, folderID).Scan(
		&p.ID, &p.UserID, &p.FolderID, &p.Status, &p.Priority,
		&p.LastStudiedAt, &p.StudySessions, &p.Notes, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *ProgressRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.StudyProgress, error) {
	query := `SELECT id, user_id, folder_id, status, priority, last_studied_at, study_sessions, notes, created_at, updated_at
		FROM study_progress WHERE user_id = $1`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var progress []*models.StudyProgress
	for rows.Next() {
		p := &models.StudyProgress{}
		err := rows.Scan(&p.ID, &p.UserID, &p.FolderID, &p.Status, &p.Priority,
			&p.LastStudiedAt, &p.StudySessions, &p.Notes, &p.CreatedAt, &p.UpdatedAt)
		if err != nil {
			return nil, err
		}
		progress = append(progress, p)
	}
	return progress, rows.Err()
}
