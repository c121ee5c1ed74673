package intelligence

import (
	"context"
	"fmt"
	"strings"

	assistantRepo "nyayamitra/database/repository/assistant"
	"nyayamitra/models"
	"nyayamitra/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// maxContextTurns bounds the rolling context fed back to the model.
const maxContextTurns = 12

const systemPreamble = "You are a legal assistant for under-trial prisoners in India. " +
	"Answer questions about bail eligibility, IPC sections, and court procedure " +
	"in plain language. You do not give binding legal advice; recommend " +
	"consulting the assigned legal aid provider for decisions."

// AssistantService answers legal questions with conversational memory.
type AssistantService interface {
	// Chat sends a prompt within a conversation and returns the reply. An
	// empty conversationID starts a new conversation.
	Chat(ctx context.Context, userEmail, conversationID, prompt string) (*models.AssistantMessage, error)
	// ListConversations returns the user's conversations, newest first.
	ListConversations(userEmail string) ([]models.AssistantConversation, error)
	// GetMessages returns a conversation's messages, oldest first.
	GetMessages(userEmail, conversationID string) ([]models.AssistantMessage, error)
	// DeleteConversation removes a conversation, its messages, and any
	// cached context.
	DeleteConversation(ctx context.Context, userEmail, conversationID string) error
}

// DefaultAssistantService is the production AssistantService implementation.
type DefaultAssistantService struct {
	Repo         assistantRepo.AssistantRepository
	Gemini       *GeminiClient
	ContextStore *RedisContextStore
}

// buildPrompt flattens the rolling context and the new prompt into a single
// model input.
func buildPrompt(assistantCtx *models.AssistantContext, prompt string) string {
	var sb strings.Builder
	sb.WriteString(systemPreamble)
	sb.WriteString("\n\n")
	for _, turn := range assistantCtx.Turns {
		sb.WriteString(turn.Role)
		sb.WriteString(": ")
		sb.WriteString(turn.Content)
		sb.WriteString("\n")
	}
	sb.WriteString("user: ")
	sb.WriteString(prompt)
	return sb.String()
}

// conversationTitle derives a short title from the opening prompt.
func conversationTitle(prompt string) string {
	const maxTitle = 60
	title := strings.TrimSpace(prompt)
	if len(title) > maxTitle {
		title = title[:maxTitle]
	}
	return title
}

// Chat sends a prompt within a conversation and returns the reply.
func (s *DefaultAssistantService) Chat(ctx context.Context, userEmail, conversationID, prompt string) (*models.AssistantMessage, error) {
	logger := utils.GetLogger()

	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return nil, fmt.Errorf("prompt is empty")
	}

	assistantCtx, err := s.ContextStore.Get(ctx, userEmail)
	if err != nil {
		logger.Warn("Failed to load assistant context, starting fresh", zap.Error(err))
		assistantCtx = &models.AssistantContext{}
	}

	if conversationID == "" {
		conv := &models.AssistantConversation{
			ID:        uuid.New().String(),
			UserEmail: userEmail,
			Title:     conversationTitle(prompt),
		}
		if err := s.Repo.CreateConversation(conv); err != nil {
			return nil, fmt.Errorf("failed to start conversation: %w", err)
		}
		conversationID = conv.ID
		assistantCtx = &models.AssistantContext{ConversationID: conversationID}
	} else {
		conv, err := s.Repo.GetConversation(conversationID)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch conversation: %w", err)
		}
		if conv == nil || conv.UserEmail != userEmail {
			return nil, fmt.Errorf("conversation not found")
		}
		// Cached context belongs to a different conversation; drop it.
		if assistantCtx.ConversationID != conversationID {
			assistantCtx = &models.AssistantContext{ConversationID: conversationID}
		}
	}

	if err := s.Repo.AppendMessage(&models.AssistantMessage{
		ID:             uuid.New().String(),
		ConversationID: conversationID,
		Role:           "user",
		Content:        prompt,
	}); err != nil {
		return nil, fmt.Errorf("failed to persist prompt: %w", err)
	}

	reply, err := s.Gemini.GenerateContent(ctx, buildPrompt(assistantCtx, prompt))
	if err != nil {
		return nil, fmt.Errorf("assistant generation failed: %w", err)
	}

	replyMsg := &models.AssistantMessage{
		ID:             uuid.New().String(),
		ConversationID: conversationID,
		Role:           "assistant",
		Content:        reply,
	}
	if err := s.Repo.AppendMessage(replyMsg); err != nil {
		return nil, fmt.Errorf("failed to persist reply: %w", err)
	}
	if err := s.Repo.TouchConversation(conversationID, ""); err != nil {
		logger.Warn("Failed to touch conversation", zap.Error(err))
	}

	assistantCtx.Turns = append(assistantCtx.Turns,
		models.AssistantTurn{Role: "user", Content: prompt},
		models.AssistantTurn{Role: "assistant", Content: reply},
	)
	if len(assistantCtx.Turns) > maxContextTurns {
		assistantCtx.Turns = assistantCtx.Turns[len(assistantCtx.Turns)-maxContextTurns:]
	}
	if err := s.ContextStore.Set(ctx, userEmail, assistantCtx); err != nil {
		logger.Warn("Failed to store assistant context", zap.Error(err))
	}

	return replyMsg, nil
}

// ListConversations returns the user's conversations, newest first.
func (s *DefaultAssistantService) ListConversations(userEmail string) ([]models.AssistantConversation, error) {
	return s.Repo.GetConversationsByUser(userEmail)
}

// GetMessages returns a conversation's messages, oldest first.
func (s *DefaultAssistantService) GetMessages(userEmail, conversationID string) ([]models.AssistantMessage, error) {
	conv, err := s.Repo.GetConversation(conversationID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch conversation: %w", err)
	}
	if conv == nil || conv.UserEmail != userEmail {
		return nil, fmt.Errorf("conversation not found")
	}
	return s.Repo.GetMessages(conversationID)
}

// DeleteConversation removes a conversation, its messages, and any cached
// context.
func (s *DefaultAssistantService) DeleteConversation(ctx context.Context, userEmail, conversationID string) error {
	conv, err := s.Repo.GetConversation(conversationID)
	if err != nil {
		return fmt.Errorf("failed to fetch conversation: %w", err)
	}
	if conv == nil || conv.UserEmail != userEmail {
		return fmt.Errorf("conversation not found")
	}
	if err := s.Repo.DeleteConversation(conversationID); err != nil {
		return err
	}
	if err := s.ContextStore.Clear(ctx, userEmail); err != nil {
		utils.GetLogger().Warn("Failed to clear assistant context", zap.Error(err))
	}
	return nil
}
