package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"estudamais-backend/internal/models"
)

type FolderRepo struct {
	pool *pgxpool.Pool
}

func NewFolderRepo(pool *pgxpool.Pool) *FolderRepo {
	return &FolderRepo{pool: pool}
}

func (r *FolderRepo) Create(ctx context.Context, f *models.Folder) error {
	f.ID = uuid.New()
	query := `INSERT INTO folders (id, user_id, parent_id, name, description)
		VALUES ($1, $2, $3, $4, $5) RETURNING created_at`

	return r.pool.QueryRow(ctx, query,
		f.ID, f.UserID, f.ParentID, f.Name, f.Description,
	).Scan(&f.CreatedAt)
}

func (r *FolderRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Folder, error) {
	f := &models.Folder{}
	query := `SELECT id, user_id, parent_id, name, description, created_at
		FROM folders WHERE id = $1`

	err := r.pool.QueryRow(ctx, query, id).Scan(
		&f.ID, &f.UserID, &f.ParentID, &f.Name, &f.Description, &f.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return f, nil
}

// ListTopLevel returns the user's subject folders with subfolder and question
// counts, optionally filtered by a case-insensitive name/description search.
func (r *FolderRepo) ListTopLevel(ctx context.Context, userID uuid.UUID, search string) ([]*models.FolderSummary, error) {
	query := `
		SELECT f.id, f.user_id, f.parent_id, f.name, f.description, f.created_at,
			(SELECT COUNT(*) FROM folders c WHERE c.parent_id = f.id) AS subfolder_count,
			(SELECT COUNT(*) FROM questions q WHERE q.folder_id = f.id) AS question_count
		FROM folders f
		WHERE f.user_id = $1
		  AND f.parent_id IS NULL
		  AND ($2 = '' OR f.name ILIKE '%' || $2 || '%' OR f.description ILIKE '%' || $2 || '%')
		ORDER BY f.created_at DESC`

	rows, err := r.pool.Query(ctx, query, userID, search)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var folders []*models.FolderSummary
	for rows.Next() {
		f := &models.FolderSummary{}
		err := rows.Scan(&f.ID, &f.UserID, &f.ParentID, &f.Name, &f.Description, &f.CreatedAt,
			&f.SubfolderCount, &f.QuestionCount)
		if err != nil {
			return nil, err
		}
		folders = append(folders, f)
	}
	return folders, rows.Err()
}

// ListChildren returns the topic folders under a subject, with question counts.
func (r *FolderRepo) ListChildren(ctx context.Context, userID, parentID uuid.UUID) ([]*models.FolderSummary, error) {
	query := `
		SELECT f.id, f.user_id, f.parent_id, f.name, f.description, f.created_at,
			0 AS subfolder_count,
			(SELECT COUNT(*) FROM questions q WHERE q.folder_id = f.id) AS question_count
		FROM folders f
		WHERE f.user_id = $1 AND f.parent_id = $2
		ORDER BY f.created_at DESC`

	rows, err := r.pool.Query(ctx, query, userID, parentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var folders []*models.FolderSummary
	for rows.Next() {
		f := &models.FolderSummary{}
		err := rows.Scan(&f.ID, &f.UserID, &f.ParentID, &f.Name, &f.Description, &f.CreatedAt,
			&f.SubfolderCount, &f.QuestionCount)
		if err != nil {
			return nil, err
		}
		folders = append(folders, f)
	}
	return folders, rows.Err()
}

// ListWithQuestionCounts returns every folder of the user that holds at least
// one question, for the simulado config screen.
func (r *FolderRepo) ListWithQuestionCounts(ctx context.Context, userID uuid.UUID) ([]*models.FolderSummary, error) {
	query := `
		SELECT f.id, f.user_id, f.parent_id, f.name, f.description, f.created_at,
			0 AS subfolder_count,
			COUNT(q.id) AS question_count
		FROM folders f
		JOIN questions q ON q.folder_id = f.id
		WHERE f.user_id = $1
		GROUP BY f.id
		ORDER BY f.name`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var folders []*models.FolderSummary
	for rows.Next() {
		f := &models.FolderSummary{}
		err := rows.Scan(&f.ID, &f.UserID, &f.ParentID, &f.Name, &f.Description, &f.CreatedAt,
			&f.SubfolderCount, &f.QuestionCount)
		if err != nil {
			return nil, err
		}
		folders = append(folders, f)
	}
	return folders, rows.Err()
}

func (r *FolderRepo) Update(ctx context.Context, id uuid.UUID, name string, description *string) error {
	_, err := r.pool.Exec(ctx,
		"UPDATE folders SET name = $1, description = $2 WHERE id = $3",
		name, description, id,
	)
	return err
}

// Delete removes the folder; subfolders and questions go with it via
// ON DELETE CASCADE.
func (r *FolderRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, "DELETE FROM folders WHERE id = $1", id)
	return err
}
