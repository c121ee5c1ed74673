package chat

import (
	"fmt"
	"sort"
	"strings"
	"time"

	messageRepo "nyayamitra/database/repository/message"
	userRepo "nyayamitra/database/repository/user"
	"nyayamitra/models"

	"github.com/google/uuid"
)

// ChatService exchanges direct messages between prisoners and providers.
type ChatService interface {
	// SendMessage delivers a message from one registered user to another.
	SendMessage(fromEmail, toEmail, body string) (*models.Message, error)
	// Conversation returns the full thread between the caller and a peer,
	// oldest first, marking the peer's messages read.
	Conversation(email, peerEmail string) ([]models.Message, error)
	// Inbox summarizes the caller's conversations, most recent first.
	Inbox(email string) ([]models.ConversationSummary, error)
}

// DefaultChatService is the production ChatService implementation.
type DefaultChatService struct {
	MessageRepo messageRepo.MessageRepository
	UserRepo    userRepo.UserRepository
}

// SendMessage delivers a message from one registered user to another.
func (s *DefaultChatService) SendMessage(fromEmail, toEmail, body string) (*models.Message, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, fmt.Errorf("message body is empty")
	}
	if fromEmail == toEmail {
		return nil, fmt.Errorf("cannot message yourself")
	}

	recipient, err := s.UserRepo.GetByEmail(toEmail)
	if err != nil {
		return nil, fmt.Errorf("failed to verify recipient: %w", err)
	}
	if recipient == nil {
		return nil, fmt.Errorf("recipient not found")
	}

	msg := &models.Message{
		ID:        uuid.New().String(),
		FromEmail: fromEmail,
		ToEmail:   toEmail,
		Body:      body,
	}
	if err := s.MessageRepo.Create(msg); err != nil {
		return nil, fmt.Errorf("failed to send message: %w", err)
	}
	return msg, nil
}

// Conversation returns the full thread between the caller and a peer,
// oldest first, marking the peer's messages read.
func (s *DefaultChatService) Conversation(email, peerEmail string) ([]models.Message, error) {
	messages, err := s.MessageRepo.GetConversation(email, peerEmail)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch conversation: %w", err)
	}
	if err := s.MessageRepo.MarkRead(email, peerEmail); err != nil {
		return nil, fmt.Errorf("failed to mark conversation read: %w", err)
	}
	return messages, nil
}

// Inbox summarizes the caller's conversations, most recent first.
func (s *DefaultChatService) Inbox(email string) ([]models.ConversationSummary, error) {
	peers, err := s.MessageRepo.GetCorrespondents(email)
	if err != nil {
		return nil, fmt.Errorf("failed to list correspondents: %w", err)
	}

	summaries := make([]models.ConversationSummary, 0, len(peers))
	lastAt := make(map[string]time.Time, len(peers))
	for _, peer := range peers {
		last, err := s.MessageRepo.GetLastMessage(email, peer)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch last message with %s: %w", peer, err)
		}
		if last == nil {
			continue
		}
		unread, err := s.MessageRepo.CountUnread(email, peer)
		if err != nil {
			return nil, fmt.Errorf("failed to count unread from %s: %w", peer, err)
		}
		summaries = append(summaries, models.ConversationSummary{
			PeerEmail:   peer,
			LastMessage: last.Body,
			UnreadCount: unread,
		})
		lastAt[peer] = last.CreatedAt
	}

	sort.SliceStable(summaries, func(i, j int) bool {
		return lastAt[summaries[i].PeerEmail].After(lastAt[summaries[j].PeerEmail])
	})
	return summaries, nil
}
