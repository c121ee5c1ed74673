package chat

import (
	"testing"
	"time"

	"nyayamitra/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

// fakeMessageRepo is an in-memory MessageRepository.
type fakeMessageRepo struct {
	messages []*models.Message
	clock    time.Time
}

func (r *fakeMessageRepo) Create(m *models.Message) error {
	r.clock = r.clock.Add(time.Second)
	m.CreatedAt = r.clock
	cp := *m
	r.messages = append(r.messages, &cp)
	return nil
}

func pairMatches(m *models.Message, a, b string) bool {
	return (m.FromEmail == a && m.ToEmail == b) || (m.FromEmail == b && m.ToEmail == a)
}

func (r *fakeMessageRepo) GetConversation(a, b string) ([]models.Message, error) {
	var out []models.Message
	for _, m := range r.messages {
		if pairMatches(m, a, b) {
			out = append(out, *m)
		}
	}
	return out, nil
}

func (r *fakeMessageRepo) GetCorrespondents(toEmail string) ([]string, error) {
	seen := make(map[string]bool)
	var out []string
	for _, m := range r.messages {
		if m.ToEmail == toEmail && m.FromEmail != toEmail && !seen[m.FromEmail] {
			seen[m.FromEmail] = true
			out = append(out, m.FromEmail)
		}
	}
	return out, nil
}

func (r *fakeMessageRepo) GetLastMessage(a, b string) (*models.Message, error) {
	for i := len(r.messages) - 1; i >= 0; i-- {
		if pairMatches(r.messages[i], a, b) {
			cp := *r.messages[i]
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeMessageRepo) CountUnread(toEmail, fromEmail string) (int64, error) {
	var count int64
	for _, m := range r.messages {
		if m.ToEmail == toEmail && m.FromEmail == fromEmail && !m.Read {
			count++
		}
	}
	return count, nil
}

func (r *fakeMessageRepo) MarkRead(toEmail, fromEmail string) error {
	for _, m := range r.messages {
		if m.ToEmail == toEmail && m.FromEmail == fromEmail {
			m.Read = true
		}
	}
	return nil
}

// fakeUserRepo resolves every email in its set.
type fakeUserRepo struct {
	known map[string]bool
}

func (r *fakeUserRepo) GetByID(id string) (*models.User, error) { return nil, nil }
func (r *fakeUserRepo) GetByEmail(email string) (*models.User, error) {
	if r.known[email] {
		return &models.User{Email: email}, nil
	}
	return nil, nil
}
func (r *fakeUserRepo) GetByRole(role string) ([]models.User, error)   { return nil, nil }
func (r *fakeUserRepo) Create(u *models.User) error                    { return nil }
func (r *fakeUserRepo) Update(u *models.User) error                    { return nil }
func (r *fakeUserRepo) UpdateFields(email string, fields bson.M) error { return nil }
func (r *fakeUserRepo) Delete(id string) error                         { return nil }
func (r *fakeUserRepo) GetByIDWithProjection(id string, p bson.M) (*models.User, error) {
	return nil, nil
}
func (r *fakeUserRepo) GetByEmailWithProjection(email string, p bson.M) (*models.User, error) {
	return r.GetByEmail(email)
}

func newChatFixture(known ...string) (*DefaultChatService, *fakeMessageRepo) {
	users := &fakeUserRepo{known: make(map[string]bool)}
	for _, email := range known {
		users.known[email] = true
	}
	messages := &fakeMessageRepo{clock: time.Now()}
	return &DefaultChatService{MessageRepo: messages, UserRepo: users}, messages
}

func TestSendMessageValidation(t *testing.T) {
	svc, _ := newChatFixture("a@x.com", "b@x.com")

	_, err := svc.SendMessage("a@x.com", "b@x.com", "   ")
	assert.Error(t, err)

	_, err = svc.SendMessage("a@x.com", "a@x.com", "hello")
	assert.Error(t, err)

	_, err = svc.SendMessage("a@x.com", "stranger@x.com", "hello")
	assert.Error(t, err)

	msg, err := svc.SendMessage("a@x.com", "b@x.com", "hello")
	require.NoError(t, err)
	assert.Equal(t, "hello", msg.Body)
	assert.False(t, msg.Read)
}

func TestConversationMarksRead(t *testing.T) {
	svc, repo := newChatFixture("a@x.com", "b@x.com")

	_, err := svc.SendMessage("b@x.com", "a@x.com", "first")
	require.NoError(t, err)
	_, err = svc.SendMessage("a@x.com", "b@x.com", "second")
	require.NoError(t, err)

	messages, err := svc.Conversation("a@x.com", "b@x.com")
	require.NoError(t, err)
	require.Len(t, messages, 2)
	assert.Equal(t, "first", messages[0].Body)

	unread, err := repo.CountUnread("a@x.com", "b@x.com")
	require.NoError(t, err)
	assert.Zero(t, unread)
}

func TestInboxOrderedByRecency(t *testing.T) {
	svc, _ := newChatFixture("me@x.com", "old@x.com", "recent@x.com")

	_, err := svc.SendMessage("old@x.com", "me@x.com", "old news")
	require.NoError(t, err)
	_, err = svc.SendMessage("recent@x.com", "me@x.com", "fresh")
	require.NoError(t, err)
	_, err = svc.SendMessage("recent@x.com", "me@x.com", "fresher")
	require.NoError(t, err)

	inbox, err := svc.Inbox("me@x.com")
	require.NoError(t, err)
	require.Len(t, inbox, 2)

	assert.Equal(t, "recent@x.com", inbox[0].PeerEmail)
	assert.Equal(t, "fresher", inbox[0].LastMessage)
	assert.Equal(t, int64(2), inbox[0].UnreadCount)

	assert.Equal(t, "old@x.com", inbox[1].PeerEmail)
	assert.Equal(t, int64(1), inbox[1].UnreadCount)
}
