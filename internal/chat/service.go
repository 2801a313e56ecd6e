// Package chat backs the storefront chatbot widget: it persists
// conversations and produces catalog-aware replies through the generative
// API.
package chat

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/festiloc/festiloc-server/internal/ai"
	"github.com/festiloc/festiloc-server/internal/database"
	"github.com/festiloc/festiloc-server/internal/models"
)

const (
	historyWindow = 10
	digestTTL     = 10 * time.Minute
	digestLimit   = 40
)

// textGenerator is the slice of the Gemini client the service needs.
type textGenerator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

// Service answers widget messages. The catalog digest fed to the model is
// rebuilt at most every digestTTL; it is read-only between rebuilds.
type Service struct {
	db *database.DB
	ai textGenerator

	mu          sync.Mutex
	digest      string
	digestBuilt time.Time
}

// NewService creates a chat service.
func NewService(db *database.DB, client textGenerator) *Service {
	return &Service{db: db, ai: client}
}

// Reply stores the visitor message, generates an answer grounded on the
// catalog digest and recent history, stores it and returns it.
func (s *Service) Reply(ctx context.Context, sessionID, message string) (string, error) {
	if strings.TrimSpace(message) == "" {
		return "", fmt.Errorf("empty message")
	}

	session := models.ChatSession{ID: sessionID}
	if err := s.db.WithContext(ctx).FirstOrCreate(&session, "id = ?", sessionID).Error; err != nil {
		return "", fmt.Errorf("failed to open chat session: %w", err)
	}

	userMsg := models.ChatMessage{SessionID: sessionID, Role: "user", Content: message}
	if err := s.db.WithContext(ctx).Create(&userMsg).Error; err != nil {
		return "", fmt.Errorf("failed to store message: %w", err)
	}

	prompt, err := s.buildPrompt(ctx, sessionID, message)
	if err != nil {
		return "", err
	}

	answer, err := s.ai.GenerateContent(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("chat reply failed: %w", err)
	}
	answer = strings.TrimSpace(answer)

	assistantMsg := models.ChatMessage{SessionID: sessionID, Role: "assistant", Content: answer}
	if err := s.db.WithContext(ctx).Create(&assistantMsg).Error; err != nil {
		return "", fmt.Errorf("failed to store reply: %w", err)
	}

	return answer, nil
}

// History returns the messages of a session in chronological order.
func (s *Service) History(ctx context.Context, sessionID string) ([]models.ChatMessage, error) {
	var messages []models.ChatMessage
	err := s.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("created_at ASC").
		Find(&messages).Error
	return messages, err
}

func (s *Service) buildPrompt(ctx context.Context, sessionID, message string) (string, error) {
	digest, err := s.catalogDigest(ctx)
	if err != nil {
		return "", err
	}

	var history []models.ChatMessage
	if err := s.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("created_at DESC").
		Limit(historyWindow).
		Find(&history).Error; err != nil {
		return "", fmt.Errorf("failed to load chat history: %w", err)
	}

	var b strings.Builder
	b.WriteString(ai.ChatSystemPrompt)
	b.WriteString("\n### CATALOG\n")
	b.WriteString(digest)
	b.WriteString("\n### CONVERSATION\n")
	for i := len(history) - 1; i >= 0; i-- {
		fmt.Fprintf(&b, "%s: %s\n", history[i].Role, history[i].Content)
	}
	fmt.Fprintf(&b, "user: %s\nassistant:", message)
	return b.String(), nil
}

// catalogDigest renders a compact product summary for the prompt.
func (s *Service) catalogDigest(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.digest != "" && time.Since(s.digestBuilt) < digestTTL {
		return s.digest, nil
	}

	var products []models.Product
	if err := s.db.WithContext(ctx).
		Where("available = ?", true).
		Order("created_at DESC").
		Limit(digestLimit).
		Find(&products).Error; err != nil {
		return "", fmt.Errorf("failed to load catalog digest: %w", err)
	}

	var b strings.Builder
	for _, p := range products {
		fmt.Fprintf(&b, "- %s (%s", p.Name, p.Category)
		if p.SubCategory != "" {
			fmt.Fprintf(&b, " / %s", p.SubCategory)
		}
		fmt.Fprintf(&b, ") - %.2f EUR TTC, stock %d\n", p.PriceTTC, p.Stock)
	}

	s.digest = b.String()
	s.digestBuilt = time.Now()
	return s.digest, nil
}
