package matching

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	caseRepo "nyayamitra/database/repository/caserepo"
	notificationRepo "nyayamitra/database/repository/notification"
	requestRepo "nyayamitra/database/repository/request"
	userRepo "nyayamitra/database/repository/user"
	"nyayamitra/models"
	"nyayamitra/services/mailer"
	"nyayamitra/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// MatchingService mediates the lifecycle of a legal-aid assignment: a
// prisoner requests a provider, the provider accepts or declines, and the
// case status and family notification follow.
type MatchingService interface {
	// RequestAid opens an aid request from the case owner to a provider and
	// moves the case under review.
	RequestAid(prisonerEmail string, caseNumber int, providerEmail string) (*models.AidRequest, error)
	// AcceptRequest accepts a pending request, marks the case accepted, and
	// notifies the prisoner's family contact.
	AcceptRequest(providerEmail, requestID string) error
	// DeclineRequest declines a pending request and clears the case's aid
	// status so the prisoner can request another provider.
	DeclineRequest(providerEmail, requestID string) error
	// ListCasesForPrisoner returns the prisoner's cases, most severe first.
	ListCasesForPrisoner(email string) ([]models.Case, error)
	// ListRequestsForProvider returns the provider's requests joined with
	// their cases, pending work first.
	ListRequestsForProvider(email string) ([]models.RequestWithCase, error)
}

// DefaultMatchingService is the production MatchingService implementation.
type DefaultMatchingService struct {
	CaseRepo         caseRepo.CaseRepository
	RequestRepo      requestRepo.RequestRepository
	UserRepo         userRepo.UserRepository
	NotificationRepo notificationRepo.NotificationRepository
	Mailer           mailer.Mailer
}

// RequestAid opens an aid request for a case the caller submitted. The
// request row is inserted before the case is touched so a duplicate detected
// by the ledger's unique constraint leaves the case unchanged.
func (s *DefaultMatchingService) RequestAid(prisonerEmail string, caseNumber int, providerEmail string) (*models.AidRequest, error) {
	logger := utils.GetLogger()

	cs, err := s.CaseRepo.GetByNumber(caseNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch case %d: %w", caseNumber, err)
	}
	if cs == nil {
		return nil, ErrCaseNotFound
	}
	if cs.SubmittedBy != prisonerEmail {
		return nil, ErrNotCaseOwner
	}

	// Fast path; the partial unique index is the real guarantee.
	active, err := s.RequestRepo.GetActiveByCase(caseNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to check active request for case %d: %w", caseNumber, err)
	}
	if active != nil {
		return nil, ErrAlreadyRequested
	}

	req := &models.AidRequest{
		ID:            uuid.New().String(),
		CaseNumber:    caseNumber,
		RequestedBy:   prisonerEmail,
		ProviderEmail: providerEmail,
		Status:        models.RequestPending,
	}
	if err := s.RequestRepo.Create(req); err != nil {
		if errors.Is(err, requestRepo.ErrDuplicateActiveRequest) {
			return nil, ErrAlreadyRequested
		}
		return nil, fmt.Errorf("failed to create aid request: %w", err)
	}

	if err := s.CaseRepo.SetAidStatus(caseNumber, models.AidUnderReview, providerEmail); err != nil {
		return nil, fmt.Errorf("failed to move case %d under review: %w", caseNumber, err)
	}

	logger.Info("Aid requested",
		zap.Int("caseNumber", caseNumber),
		zap.String("prisoner", prisonerEmail),
		zap.String("provider", providerEmail))
	return req, nil
}

// AcceptRequest accepts a pending request addressed to the caller. The case
// and request transition atomically; the family notification that follows
// does not, so a missing family email or a relay failure is reported after
// the acceptance has already committed.
func (s *DefaultMatchingService) AcceptRequest(providerEmail, requestID string) error {
	logger := utils.GetLogger()

	req, err := s.RequestRepo.GetByID(requestID)
	if err != nil {
		return fmt.Errorf("failed to fetch request %s: %w", requestID, err)
	}
	if req == nil {
		return ErrRequestNotFound
	}
	if req.ProviderEmail != providerEmail {
		return ErrNotRequestProvider
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := s.RequestRepo.Accept(ctx, requestID, req.CaseNumber, providerEmail); err != nil {
		if errors.Is(err, requestRepo.ErrNotPending) {
			return ErrRequestNotPending
		}
		return fmt.Errorf("failed to accept request %s: %w", requestID, err)
	}

	prisoner, err := s.UserRepo.GetByEmail(req.RequestedBy)
	if err != nil {
		return fmt.Errorf("failed to fetch prisoner %s: %w", req.RequestedBy, err)
	}
	if prisoner == nil || prisoner.FamilyEmail == "" {
		logger.Warn("Request accepted but no family email on record",
			zap.Int("caseNumber", req.CaseNumber), zap.String("prisoner", req.RequestedBy))
		return ErrNoFamilyEmail
	}

	notification := &models.FamilyNotification{
		ID:          uuid.New().String(),
		FamilyEmail: prisoner.FamilyEmail,
		CaseNumber:  req.CaseNumber,
		Title:       fmt.Sprintf("Case Accepted: CASE-%d", req.CaseNumber),
		Description: fmt.Sprintf("Your case has been accepted for review by %s.", providerEmail),
	}
	if err := s.NotificationRepo.Create(notification); err != nil {
		return fmt.Errorf("failed to record family notification: %w", err)
	}

	if err := s.Mailer.CaseAccepted(prisoner.FamilyEmail, req.CaseNumber, providerEmail); err != nil {
		logger.Error("Request accepted but family mail failed",
			zap.Int("caseNumber", req.CaseNumber),
			zap.String("familyEmail", prisoner.FamilyEmail), zap.Error(err))
		return ErrNotificationFailed
	}

	logger.Info("Aid request accepted",
		zap.Int("caseNumber", req.CaseNumber), zap.String("provider", providerEmail))
	return nil
}

// DeclineRequest declines a pending request addressed to the caller and
// clears the case's aid status. No notification is sent.
func (s *DefaultMatchingService) DeclineRequest(providerEmail, requestID string) error {
	req, err := s.RequestRepo.GetByID(requestID)
	if err != nil {
		return fmt.Errorf("failed to fetch request %s: %w", requestID, err)
	}
	if req == nil {
		return ErrRequestNotFound
	}
	if req.ProviderEmail != providerEmail {
		return ErrNotRequestProvider
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := s.RequestRepo.Decline(ctx, requestID, req.CaseNumber); err != nil {
		if errors.Is(err, requestRepo.ErrNotPending) {
			return ErrRequestNotPending
		}
		return fmt.Errorf("failed to decline request %s: %w", requestID, err)
	}

	utils.GetLogger().Info("Aid request declined",
		zap.Int("caseNumber", req.CaseNumber), zap.String("provider", providerEmail))
	return nil
}

// ListCasesForPrisoner returns the prisoner's cases ordered by descending
// severity rank. The sort is stable so equally severe cases keep their
// stored order.
func (s *DefaultMatchingService) ListCasesForPrisoner(email string) ([]models.Case, error) {
	cases, err := s.CaseRepo.GetBySubmitter(email)
	if err != nil {
		return nil, fmt.Errorf("failed to list cases for %s: %w", email, err)
	}
	sort.SliceStable(cases, func(i, j int) bool {
		return models.SeverityRank(cases[i].Severity) > models.SeverityRank(cases[j].Severity)
	})
	return cases, nil
}

// requestStatusRank orders a provider's worklist: pending requests first,
// then accepted, then declined, anything unrecognized last.
func requestStatusRank(status string) int {
	switch status {
	case models.RequestPending:
		return 1
	case models.RequestAccepted:
		return 2
	case models.RequestDeclined:
		return 3
	default:
		return 4
	}
}

// ListRequestsForProvider returns the provider's requests joined with their
// cases, ordered by status rank; accepted requests are tie-broken by
// descending case severity.
func (s *DefaultMatchingService) ListRequestsForProvider(email string) ([]models.RequestWithCase, error) {
	reqs, err := s.RequestRepo.GetByProvider(email)
	if err != nil {
		return nil, fmt.Errorf("failed to list requests for %s: %w", email, err)
	}
	if len(reqs) == 0 {
		return []models.RequestWithCase{}, nil
	}

	numbers := make([]int, 0, len(reqs))
	for _, r := range reqs {
		numbers = append(numbers, r.CaseNumber)
	}
	cases, err := s.CaseRepo.GetByNumbers(numbers)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch cases for requests: %w", err)
	}
	byNumber := make(map[int]*models.Case, len(cases))
	for i := range cases {
		byNumber[cases[i].CaseNumber] = &cases[i]
	}

	joined := make([]models.RequestWithCase, 0, len(reqs))
	for _, r := range reqs {
		joined = append(joined, models.RequestWithCase{AidRequest: r, Case: byNumber[r.CaseNumber]})
	}

	severityOf := func(rc models.RequestWithCase) int {
		if rc.Case == nil {
			return 0
		}
		return models.SeverityRank(rc.Case.Severity)
	}
	sort.SliceStable(joined, func(i, j int) bool {
		ri, rj := requestStatusRank(joined[i].Status), requestStatusRank(joined[j].Status)
		if ri != rj {
			return ri < rj
		}
		if joined[i].Status == models.RequestAccepted {
			return severityOf(joined[i]) > severityOf(joined[j])
		}
		return false
	})
	return joined, nil
}
