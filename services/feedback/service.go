package feedback

import (
	"fmt"
	"strings"
	"time"

	caseRepo "nyayamitra/database/repository/caserepo"
	feedbackRepo "nyayamitra/database/repository/feedback"
	notificationRepo "nyayamitra/database/repository/notification"
	userRepo "nyayamitra/database/repository/user"
	"nyayamitra/models"
	"nyayamitra/services/mailer"
	"nyayamitra/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// FeedbackService records court feedback after hearings and relays it to the
// prisoner's family contact.
type FeedbackService interface {
	// PostFeedback records a judge's feedback on an assigned case.
	PostFeedback(judgeEmail string, caseNumber int, text string, hearingDate time.Time) (*models.CourtFeedback, error)
	// Timeline returns a case's feedback entries ordered by hearing date.
	Timeline(caseNumber int) ([]models.CourtFeedback, error)
}

// DefaultFeedbackService is the production FeedbackService implementation.
type DefaultFeedbackService struct {
	FeedbackRepo     feedbackRepo.FeedbackRepository
	CaseRepo         caseRepo.CaseRepository
	UserRepo         userRepo.UserRepository
	NotificationRepo notificationRepo.NotificationRepository
	Mailer           mailer.Mailer
}

// PostFeedback records a judge's feedback on an assigned case and notifies
// the prisoner's family. The feedback is persisted before the mail is
// attempted.
func (s *DefaultFeedbackService) PostFeedback(judgeEmail string, caseNumber int, text string, hearingDate time.Time) (*models.CourtFeedback, error) {
	logger := utils.GetLogger()

	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("feedback text is empty")
	}

	cs, err := s.CaseRepo.GetByNumber(caseNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch case %d: %w", caseNumber, err)
	}
	if cs == nil {
		return nil, fmt.Errorf("case %d not found", caseNumber)
	}
	if cs.JudgeAssigned != judgeEmail {
		return nil, fmt.Errorf("case %d is not assigned to this judge", caseNumber)
	}

	fb := &models.CourtFeedback{
		ID:          uuid.New().String(),
		CaseNumber:  caseNumber,
		JudgeEmail:  judgeEmail,
		Feedback:    text,
		HearingDate: hearingDate,
	}
	if err := s.FeedbackRepo.Create(fb); err != nil {
		return nil, fmt.Errorf("failed to record feedback: %w", err)
	}

	prisoner, err := s.UserRepo.GetByEmail(cs.SubmittedBy)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch prisoner: %w", err)
	}
	if prisoner == nil || prisoner.FamilyEmail == "" {
		logger.Warn("Feedback recorded but no family email on record",
			zap.Int("caseNumber", caseNumber))
		return fb, nil
	}

	notification := &models.FamilyNotification{
		ID:          uuid.New().String(),
		FamilyEmail: prisoner.FamilyEmail,
		CaseNumber:  caseNumber,
		Title:       fmt.Sprintf("Court Feedback Recorded: CASE-%d", caseNumber),
		Description: fmt.Sprintf("The court has recorded feedback on your case from %s.", judgeEmail),
	}
	if err := s.NotificationRepo.Create(notification); err != nil {
		return nil, fmt.Errorf("failed to record family notification: %w", err)
	}
	if err := s.Mailer.FeedbackPosted(prisoner.FamilyEmail, caseNumber, judgeEmail); err != nil {
		logger.Error("Feedback recorded but family mail failed",
			zap.Int("caseNumber", caseNumber), zap.Error(err))
	}
	return fb, nil
}

// Timeline returns a case's feedback entries ordered by hearing date.
func (s *DefaultFeedbackService) Timeline(caseNumber int) ([]models.CourtFeedback, error) {
	entries, err := s.FeedbackRepo.GetByCase(caseNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch feedback timeline: %w", err)
	}
	return entries, nil
}
