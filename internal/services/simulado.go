package services

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	mrand "math/rand"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"estudamais-backend/internal/models"
	"estudamais-backend/internal/repository"
)

// simuladoTTL bounds how long an abandoned run survives in Redis. Runs are
// transient by design and never reach Postgres.
const simuladoTTL = 6 * time.Hour

// Shuffler permutes n elements via swap. The default is the non-seeded
// math/rand/v2 shuffle; tests inject a deterministic one.
type Shuffler func(n int, swap func(i, j int))

type SimuladoService struct {
	folderRepo   *repository.FolderRepo
	questionRepo *repository.QuestionRepo
	redis        *redis.Client
	shuffle      Shuffler
}

func NewSimuladoService(folderRepo *repository.FolderRepo, questionRepo *repository.QuestionRepo, redisClient *redis.Client, shuffle Shuffler) *SimuladoService {
	if shuffle == nil {
		shuffle = mrand.Shuffle
	}
	return &SimuladoService{
		folderRepo:   folderRepo,
		questionRepo: questionRepo,
		redis:        redisClient,
		shuffle:      shuffle,
	}
}

// ListConfig returns the folders eligible for a simulado: every folder of
// the user holding at least one question, with its available count.
func (s *SimuladoService) ListConfig(ctx context.Context, userID uuid.UUID) ([]*models.FolderSummary, error) {
	return s.folderRepo.ListWithQuestionCounts(ctx, userID)
}

// CreateRun assembles a new run from the selected (folder, count) pairs.
// Counts are clamped to [1, available]; a zero total is rejected before any
// state is created.
func (s *SimuladoService) CreateRun(ctx context.Context, userID uuid.UUID, subjects []models.SimuladoSubject) (*models.SimuladoRun, error) {
	if len(subjects) == 0 {
		return nil, &ValidationError{Fields: map[string]string{
			"subjects": "Selecione pelo menos uma matéria com questões",
		}}
	}

	seen := make(map[uuid.UUID]bool, len(subjects))
	var pools [][]models.SimuladoQuestion
	var requested []int

	for _, subject := range subjects {
		if seen[subject.FolderID] {
			return nil, &ValidationError{Fields: map[string]string{
				"subjects": "Matéria selecionada mais de uma vez",
			}}
		}
		seen[subject.FolderID] = true

		folder, err := s.folderRepo.GetByID(ctx, subject.FolderID)
		if err != nil {
			return nil, &NotFoundError{Message: "Matéria não encontrada"}
		}
		if folder.UserID != userID {
			return nil, &ForbiddenError{Message: "Matéria não encontrada"}
		}

		questions, err := s.questionRepo.ListByFolder(ctx, folder.ID, "")
		if err != nil {
			return nil, fmt.Errorf("fetch questions for folder %s: %w", folder.ID, err)
		}

		pool := make([]models.SimuladoQuestion, 0, len(questions))
		for _, q := range questions {
			pool = append(pool, models.SimuladoQuestion{
				ID:             q.ID,
				Title:          q.Title,
				Type:           q.Type,
				Options:        q.Options,
				CorrectAnswer:  q.CorrectAnswer,
				CorrectBoolean: q.CorrectBoolean,
				Explanation:    q.Explanation,
				FolderName:     folder.Name,
			})
		}
		pools = append(pools, pool)
		requested = append(requested, subject.Count)
	}

	selected, counts, err := planRun(pools, requested)
	if err != nil {
		return nil, err
	}

	run := &models.SimuladoRun{
		ID:        uuid.New(),
		UserID:    userID,
		Questions: assemble(selected, counts, s.shuffle),
		Answers:   make(map[string]models.SimuladoAnswer),
		StartedAt: time.Now(),
	}

	if err := s.saveRun(ctx, run); err != nil {
		return nil, err
	}
	return run, nil
}

// planRun clamps each subject's requested count to what its pool can supply
// and drops folders without questions. A selection that yields no questions
// at all is rejected before any run state exists.
func planRun(pools [][]models.SimuladoQuestion, requested []int) ([][]models.SimuladoQuestion, []int, error) {
	var selected [][]models.SimuladoQuestion
	var counts []int
	total := 0

	for i, pool := range pools {
		if len(pool) == 0 {
			continue
		}
		count := clampCount(requested[i], len(pool))
		selected = append(selected, pool)
		counts = append(counts, count)
		total += count
	}

	if total == 0 {
		return nil, nil, &ValidationError{Fields: map[string]string{
			"subjects": "Selecione pelo menos uma matéria com questões",
		}}
	}
	return selected, counts, nil
}

// clampCount bounds a per-subject request to [1, available].
func clampCount(requested, available int) int {
	if requested < 1 {
		return 1
	}
	if requested > available {
		return available
	}
	return requested
}

// assemble shuffles each folder pool, takes the requested count from each,
// then shuffles the combined list once more. Interleaving across folders is
// not guaranteed to be uniform; every selected question gets a slot.
func assemble(pools [][]models.SimuladoQuestion, counts []int, shuffle Shuffler) []models.SimuladoQuestion {
	var combined []models.SimuladoQuestion
	for i, pool := range pools {
		shuffle(len(pool), func(a, b int) { pool[a], pool[b] = pool[b], pool[a] })
		combined = append(combined, pool[:counts[i]]...)
	}
	shuffle(len(combined), func(a, b int) { combined[a], combined[b] = combined[b], combined[a] })
	return combined
}

func (s *SimuladoService) GetRun(ctx context.Context, userID, runID uuid.UUID) (*models.SimuladoRun, error) {
	data, err := s.redis.Get(ctx, runKey(userID, runID)).Result()
	if err != nil {
		return nil, &NotFoundError{Message: "Simulado não encontrado ou expirado"}
	}

	run := &models.SimuladoRun{}
	if err := json.Unmarshal([]byte(data), run); err != nil {
		return nil, fmt.Errorf("decode simulado run: %w", err)
	}
	return run, nil
}

// SaveAnswer records the user's answer for one question of an open run.
func (s *SimuladoService) SaveAnswer(ctx context.Context, userID, runID uuid.UUID, req models.SimuladoAnswerRequest) (*models.SimuladoRun, error) {
	run, err := s.GetRun(ctx, userID, runID)
	if err != nil {
		return nil, err
	}
	if run.Finished() {
		return nil, &ConflictError{Message: "Simulado já finalizado"}
	}

	question, found := findQuestion(run, req.QuestionID)
	if !found {
		return nil, &NotFoundError{Message: "Questão não pertence a este simulado"}
	}

	if err := validateRunAnswer(question, req.Answer); err != nil {
		return nil, err
	}

	run.Answers[req.QuestionID.String()] = req.Answer
	if err := s.saveRun(ctx, run); err != nil {
		return nil, err
	}
	return run, nil
}

// validateRunAnswer checks the answer shape against the question type. A
// multiple-choice answer must name one of the question's own options.
func validateRunAnswer(q models.SimuladoQuestion, a models.SimuladoAnswer) error {
	switch q.Type {
	case models.QuestionTypeMultipleChoice:
		if a.Choice == nil || !slices.Contains(q.Options, *a.Choice) {
			return &ValidationError{Fields: map[string]string{"answer": "Resposta inválida para questão de múltipla escolha"}}
		}
	case models.QuestionTypeTrueFalse:
		if a.Boolean == nil {
			return &ValidationError{Fields: map[string]string{"answer": "Resposta inválida para questão verdadeiro/falso"}}
		}
	}
	return nil
}

// SetPosition records the index picker position so a reloaded client can
// resume where it left off.
func (s *SimuladoService) SetPosition(ctx context.Context, userID, runID uuid.UUID, index int) error {
	run, err := s.GetRun(ctx, userID, runID)
	if err != nil {
		return err
	}
	if run.Finished() {
		return &ConflictError{Message: "Simulado já finalizado"}
	}
	if index < 0 || index >= len(run.Questions) {
		return &ValidationError{Fields: map[string]string{"index": "Posição fora do intervalo"}}
	}

	run.CurrentIndex = index
	return s.saveRun(ctx, run)
}

// Finish seals the run. If questions remain unanswered the caller must set
// confirm; otherwise the run stays open and the unanswered count is reported.
func (s *SimuladoService) Finish(ctx context.Context, userID, runID uuid.UUID, confirm bool) (*models.SimuladoRun, int, error) {
	run, err := s.GetRun(ctx, userID, runID)
	if err != nil {
		return nil, 0, err
	}
	if run.Finished() {
		return run, 0, nil
	}

	unanswered := len(run.Questions) - len(run.Answers)
	if unanswered > 0 && !confirm {
		return nil, unanswered, &ConflictError{
			Message: fmt.Sprintf("Você deixou %d questões sem resposta", unanswered),
		}
	}

	now := time.Now()
	run.FinishedAt = &now
	if err := s.saveRun(ctx, run); err != nil {
		return nil, 0, err
	}
	return run, unanswered, nil
}

// Result recomputes the statistics from the sealed snapshot. Nothing is
// cached; reading twice always yields the same numbers.
func (s *SimuladoService) Result(ctx context.Context, userID, runID uuid.UUID) (*models.SimuladoResult, error) {
	run, err := s.GetRun(ctx, userID, runID)
	if err != nil {
		return nil, err
	}
	if !run.Finished() {
		return nil, &ConflictError{Message: "Simulado ainda não foi finalizado"}
	}
	return ScoreRun(run), nil
}

// ScoreRun is the pure scoring function over a finished run snapshot. A
// question with no recorded answer is counted as unanswered, never correct.
func ScoreRun(run *models.SimuladoRun) *models.SimuladoResult {
	result := &models.SimuladoResult{
		RunID:     run.ID,
		Total:     len(run.Questions),
		BySubject: make(map[string]models.SubjectScore),
		Review:    make([]models.QuestionReview, 0, len(run.Questions)),
	}

	for _, q := range run.Questions {
		score := result.BySubject[q.FolderName]
		score.Total++

		review := models.QuestionReview{
			QuestionID:    q.ID,
			Title:         q.Title,
			Type:          q.Type,
			FolderName:    q.FolderName,
			Options:       q.Options,
			CorrectAnswer: displayAnswer(q.Type, q.CorrectAnswer, q.CorrectBoolean),
			Explanation:   q.Explanation,
		}

		answer, answered := run.Answers[q.ID.String()]
		if !answered {
			result.Unanswered++
			result.BySubject[q.FolderName] = score
			result.Review = append(result.Review, review)
			continue
		}

		review.Answered = true
		review.Correct = isCorrect(q, answer)
		userAnswer := displayAnswer(q.Type, answer.Choice, answer.Boolean)
		review.UserAnswer = &userAnswer

		if review.Correct {
			result.Correct++
			score.Correct++
		} else {
			result.Incorrect++
		}
		result.BySubject[q.FolderName] = score
		result.Review = append(result.Review, review)
	}

	if result.Total > 0 {
		result.Percentage = int(math.Round(float64(result.Correct) / float64(result.Total) * 100))
	}
	if run.FinishedAt != nil {
		result.ElapsedSeconds = int(run.FinishedAt.Sub(run.StartedAt).Seconds())
	}
	return result
}

func isCorrect(q models.SimuladoQuestion, answer models.SimuladoAnswer) bool {
	switch q.Type {
	case models.QuestionTypeMultipleChoice:
		return answer.Choice != nil && q.CorrectAnswer != nil && *answer.Choice == *q.CorrectAnswer
	case models.QuestionTypeTrueFalse:
		return answer.Boolean != nil && q.CorrectBoolean != nil && *answer.Boolean == *q.CorrectBoolean
	}
	return false
}

// displayAnswer renders an answer for the result screen: the option text for
// multiple choice, "Verdadeiro"/"Falso" for true/false.
func displayAnswer(questionType string, choice *string, boolean *bool) string {
	if questionType == models.QuestionTypeTrueFalse {
		if boolean == nil {
			return ""
		}
		if *boolean {
			return "Verdadeiro"
		}
		return "Falso"
	}
	if choice == nil {
		return ""
	}
	return *choice
}

func findQuestion(run *models.SimuladoRun, id uuid.UUID) (models.SimuladoQuestion, bool) {
	for _, q := range run.Questions {
		if q.ID == id {
			return q, true
		}
	}
	return models.SimuladoQuestion{}, false
}

func (s *SimuladoService) saveRun(ctx context.Context, run *models.SimuladoRun) error {
	data, err := json.Marshal(run)
	if err != nil {
		return fmt.Errorf("encode simulado run: %w", err)
	}
	return s.redis.Set(ctx, runKey(run.UserID, run.ID), data, simuladoTTL).Err()
}

func runKey(userID, runID uuid.UUID) string {
	return fmt.Sprintf("simulado:%s:%s", userID, runID)
}
