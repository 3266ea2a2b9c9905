package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"estudamais-backend/internal/models"
)

type TimeclockRepo struct {
	pool *pgxpool.Pool
}

func NewTimeclockRepo(pool *pgxpool.Pool) *TimeclockRepo {
	return &TimeclockRepo{pool: pool}
}

func (r *TimeclockRepo) Create(ctx context.Context, rec *models.TimeclockRecord) error {
	rec.ID = uuid.New()
	query := `INSERT INTO timeclock (id, user_id, notes)
		VALUES ($1, $2, $3) RETURNING clock_in, created_at`

	return r.pool.QueryRow(ctx, query, rec.ID, rec.UserID, rec.Notes).
		Scan(&rec.ClockIn, &rec.CreatedAt)
}

// GetOpen returns the user's open record, or nil when none is open.
func (r *TimeclockRepo) GetOpen(ctx context.Context, userID uuid.UUID) (*models.TimeclockRecord, error) {
	rec := &models.TimeclockRecord{}
	query := `SELECT id, user_id, clock_in, clock_out, notes, created_at
		FROM timeclock WHERE user_id = $1 AND clock_out IS NULL
		ORDER BY clock_in DESC LIMIT 1`

	err := r.pool.QueryRow(ctx, query, userID).Scan(
		&rec.ID, &rec.UserID, &rec.ClockIn, &rec.ClockOut, &rec.Notes, &rec.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return rec, nil
}

func (r *TimeclockRepo) GetByIDForUser(ctx context.Context, id, userID uuid.UUID) (*models.TimeclockRecord, error) {
	rec := &models.TimeclockRecord{}
	query := `SELECT id, user_id, clock_in, clock_out, notes, created_at
		FROM timeclock WHERE id = $1 AND user_id = $2`

	err := r.pool.QueryRow(ctx, query, id, userID).Scan(
		&rec.ID, &rec.UserID, &rec.ClockIn, &rec.ClockOut, &rec.Notes, &rec.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return rec, nil
}

func (r *TimeclockRepo) Close(ctx context.Context, id, userID uuid.UUID, notes *string) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE timeclock
		SET clock_out = NOW(),
			notes = COALESCE($3, notes)
		WHERE id = $1 AND user_id = $2 AND clock_out IS NULL
	`, id, userID, notes)
	return err
}

func (r *TimeclockRepo) ListRecent(ctx context.Context, userID uuid.UUID, limit int) ([]*models.TimeclockRecord, error) {
	query := `SELECT id, user_id, clock_in, clock_out, notes, created_at
		FROM timeclock WHERE user_id = $1
		ORDER BY created_at DESC LIMIT $2`

	rows, err := r.pool.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanTimeclockRows(rows)
}

// ListAll returns every record of the user, newest first, for statistics.
func (r *TimeclockRepo) ListAll(ctx context.Context, userID uuid.UUID) ([]*models.TimeclockRecord, error) {
	query := `SELECT id, user_id, clock_in, clock_out, notes, created_at
		FROM timeclock WHERE user_id = $1
		ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanTimeclockRows(rows)
}

func (r *TimeclockRepo) Delete(ctx context.Context, id, userID uuid.UUID) error {
	_, err := r.pool.Exec(ctx, "DELETE FROM timeclock WHERE id = $1 AND user_id = $2", id, userID)
	return err
}

func scanTimeclockRows(rows pgx.Rows) ([]*models.TimeclockRecord, error) {
	var records []*models.TimeclockRecord
	for rows.Next() {
		rec := &models.TimeclockRecord{}
		err := rows.Scan(&rec.ID, &rec.UserID, &rec.ClockIn, &rec.ClockOut, &rec.Notes, &rec.CreatedAt)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
