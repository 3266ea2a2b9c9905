package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"estudamais-backend/internal/models"
)

type QuestionRepo struct {
	pool *pgxpool.Pool
}

func NewQuestionRepo(pool *pgxpool.Pool) *QuestionRepo {
	return &QuestionRepo{pool: pool}
}

func (r *QuestionRepo) Create(ctx context.Context, q *models.Question) error {
	q.ID = uuid.New()
	query := `INSERT INTO questions (id, folder_id, user_id, title, type, options, correct_answer, correct_boolean, explanation)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING created_at`

	return r.pool.QueryRow(ctx, query,
		q.ID, q.FolderID, q.UserID, q.Title, q.Type, q.Options, q.CorrectAnswer, q.CorrectBoolean, q.Explanation,
	).Scan(&q.CreatedAt)
}

func (r *QuestionRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Question, error) {
	q := &models.Question{}
	query := `SELECT id, folder_id, user_id, title, type, options, correct_answer, correct_boolean, explanation, created_at
		FROM questions WHERE id = $1`

	err := r.pool.QueryRow(ctx, query, id).Scan(
		&q.ID, &q.FolderID, &q.UserID, &q.Title, &q.Type, &q.Options,
		&q.CorrectAnswer, &q.CorrectBoolean, &q.Explanation, &q.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return q, nil
}

// ListByFolder returns the folder's questions newest first, optionally
// filtered by a case-insensitive title search.
func (r *QuestionRepo) ListByFolder(ctx context.Context, folderID uuid.UUID, search string) ([]*models.Question, error) {
	query := `SELECT id, folder_id, user_id, title, type, options, correct_answer, correct_boolean, explanation, created_at
		FROM questions
		WHERE folder_id = $1
		  AND ($2 = '' OR title ILIKE '%' || $2 || '%')
		ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, folderID, search)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var questions []*models.Question
	for rows.Next() {
		q := &models.Question{}
		err := rows.Scan(&q.ID, &q.FolderID, &q.UserID, &q.Title, &q.Type, &q.Options,
			&q.CorrectAnswer, &q.CorrectBoolean, &q.Explanation, &q.CreatedAt)
		if err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}
	return questions, rows.Err()
}

// ListAllWithFolder returns every question of the user joined with its
// folder name, for random study.
func (r *QuestionRepo) ListAllWithFolder(ctx context.Context, userID uuid.UUID) ([]*models.QuestionWithFolder, error) {
	query := `SELECT q.id, q.folder_id, q.user_id, q.title, q.type, q.options, q.correct_answer, q.correct_boolean, q.explanation, q.created_at, f.name
		FROM questions q
		JOIN folders f ON f.id = q.folder_id
		WHERE q.user_id = $1`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var questions []*models.QuestionWithFolder
	for rows.Next() {
		q := &models.QuestionWithFolder{}
		err := rows.Scan(&q.ID, &q.FolderID, &q.UserID, &q.Title, &q.Type, &q.Options,
			&q.CorrectAnswer, &q.CorrectBoolean, &q.Explanation, &q.CreatedAt, &q.FolderName)
		if err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}
	return questions, rows.Err()
}

func (r *QuestionRepo) CountByFolder(ctx context.Context, folderID uuid.UUID) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM questions WHERE folder_id = $1", folderID).Scan(&count)
	return count, err
}

func (r *QuestionRepo) Update(ctx context.Context, q *models.Question) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE questions SET title = $1, type = $2, options = $3, correct_answer = $4, correct_boolean = $5, explanation = $6
		 WHERE id = $7`,
		q.Title, q.Type, q.Options, q.CorrectAnswer, q.CorrectBoolean, q.Explanation, q.ID,
	)
	return err
}

func (r *QuestionRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, "DELETE FROM questions WHERE id = $1", id)
	return err
}
