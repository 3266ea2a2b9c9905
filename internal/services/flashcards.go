package services

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"estudamais-backend/internal/models"
)

// FlashcardService stores cards in a per-user Redis hash, the server-side
// counterpart of the original's browser local storage. Cards never enter
// the relational schema.
type FlashcardService struct {
	redis *redis.Client
}

func NewFlashcardService(redisClient *redis.Client) *FlashcardService {
	return &FlashcardService{redis: redisClient}
}

func (s *FlashcardService) Create(ctx context.Context, userID uuid.UUID, req models.CreateFlashcardRequest) (*models.Flashcard, error) {
	fieldErrors := make(map[string]string)
	if strings.TrimSpace(req.Front) == "" {
		fieldErrors["front"] = "Preencha o texto da frente"
	}
	if strings.TrimSpace(req.Back) == "" {
		fieldErrors["back"] = "Preencha o texto do verso"
	}
	if len(fieldErrors) > 0 {
		return nil, &ValidationError{Fields: fieldErrors}
	}

	card := &models.Flashcard{
		ID:        uuid.New(),
		Front:     req.Front,
		Back:      req.Back,
		CreatedAt: time.Now(),
	}

	data, err := json.Marshal(card)
	if err != nil {
		return nil, fmt.Errorf("encode flashcard: %w", err)
	}
	if err := s.redis.HSet(ctx, flashcardsKey(userID), card.ID.String(), data).Err(); err != nil {
		return nil, fmt.Errorf("store flashcard: %w", err)
	}
	return card, nil
}

// List returns the user's cards in creation order.
func (s *FlashcardService) List(ctx context.Context, userID uuid.UUID) ([]*models.Flashcard, error) {
	entries, err := s.redis.HGetAll(ctx, flashcardsKey(userID)).Result()
	if err != nil {
		return nil, fmt.Errorf("fetch flashcards: %w", err)
	}

	cards := make([]*models.Flashcard, 0, len(entries))
	for _, raw := range entries {
		card := &models.Flashcard{}
		if err := json.Unmarshal([]byte(raw), card); err != nil {
			return nil, fmt.Errorf("decode flashcard: %w", err)
		}
		cards = append(cards, card)
	}

	sort.Slice(cards, func(i, j int) bool { return cards[i].CreatedAt.Before(cards[j].CreatedAt) })
	return cards, nil
}

func (s *FlashcardService) Delete(ctx context.Context, userID, cardID uuid.UUID) error {
	removed, err := s.redis.HDel(ctx, flashcardsKey(userID), cardID.String()).Result()
	if err != nil {
		return fmt.Errorf("delete flashcard: %w", err)
	}
	if removed == 0 {
		return &NotFoundError{Message: "Flashcard não encontrado"}
	}
	return nil
}

func flashcardsKey(userID uuid.UUID) string {
	return "flashcards:" + userID.String()
}
