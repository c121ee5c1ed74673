package cases

import (
	"fmt"
	"strings"
	"time"

	caseRepo "nyayamitra/database/repository/caserepo"
	notificationRepo "nyayamitra/database/repository/notification"
	userRepo "nyayamitra/database/repository/user"
	"nyayamitra/models"
	"nyayamitra/services/mailer"
	"nyayamitra/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CaseService manages case submission and the judge-side lifecycle that
// follows an aid assignment.
type CaseService interface {
	// SubmitCase records a new case for the given prisoner.
	SubmitCase(prisonerEmail string, input SubmitCaseInput) (*models.Case, error)
	// GetCase returns a case by number.
	GetCase(caseNumber int) (*models.Case, error)
	// ListForJudge returns the cases assigned to a judge.
	ListForJudge(judgeEmail string) ([]models.Case, error)
	// SetTrialDate schedules a hearing and notifies the prisoner's family.
	SetTrialDate(judgeEmail string, caseNumber int, date time.Time) error
	// Calendar returns the dated cases visible to the caller's role.
	Calendar(email, role string) ([]models.Case, error)
}

// SubmitCaseInput carries the fields of a case submission. Every field is
// required.
type SubmitCaseInput struct {
	CaseDescription         string `json:"caseDescription" binding:"required"`
	Age                     int    `json:"age" binding:"required"`
	Gender                  string `json:"gender" binding:"required"`
	SocioeconomicBackground string `json:"socioeconomicBackground" binding:"required"`
	EmploymentStatus        string `json:"employmentStatus" binding:"required"`
	OffenseNature           string `json:"offenseNature" binding:"required"`
	Severity                string `json:"severity" binding:"required"`
	CriminalHistory         string `json:"criminalHistory" binding:"required"`
	VictimImpact            string `json:"victimImpact" binding:"required"`
	PublicInterest          string `json:"publicInterest" binding:"required"`
	CustodyTime             string `json:"custodyTime" binding:"required"`
	Adjournments            string `json:"adjournments" binding:"required"`
	BailAmount              string `json:"bailAmount" binding:"required"`
	BailConditions          string `json:"bailConditions" binding:"required"`
	JudgeAssigned           string `json:"judgeAssigned" binding:"required"`
}

// DefaultCaseService is the production CaseService implementation.
type DefaultCaseService struct {
	CaseRepo         caseRepo.CaseRepository
	UserRepo         userRepo.UserRepository
	NotificationRepo notificationRepo.NotificationRepository
	Mailer           mailer.Mailer
}

// SubmitCase records a new case for the given prisoner.
func (s *DefaultCaseService) SubmitCase(prisonerEmail string, input SubmitCaseInput) (*models.Case, error) {
	severity := strings.ToLower(strings.TrimSpace(input.Severity))
	if models.SeverityRank(severity) == 0 {
		return nil, fmt.Errorf("severity must be one of petty, minor, moderate, serious")
	}

	judge, err := s.UserRepo.GetByEmail(input.JudgeAssigned)
	if err != nil {
		return nil, fmt.Errorf("failed to verify judge: %w", err)
	}
	if judge == nil || judge.Role != models.RoleJudge {
		return nil, fmt.Errorf("assigned judge not found")
	}

	cs := &models.Case{
		SubmittedBy:             prisonerEmail,
		CaseDescription:         input.CaseDescription,
		Age:                     input.Age,
		Gender:                  input.Gender,
		SocioeconomicBackground: input.SocioeconomicBackground,
		EmploymentStatus:        input.EmploymentStatus,
		OffenseNature:           input.OffenseNature,
		Severity:                severity,
		CriminalHistory:         input.CriminalHistory,
		VictimImpact:            input.VictimImpact,
		PublicInterest:          input.PublicInterest,
		CustodyTime:             input.CustodyTime,
		Adjournments:            input.Adjournments,
		BailAmount:              input.BailAmount,
		BailConditions:          input.BailConditions,
		JudgeAssigned:           input.JudgeAssigned,
	}
	if err := s.CaseRepo.Create(cs); err != nil {
		return nil, fmt.Errorf("failed to submit case: %w", err)
	}

	utils.GetLogger().Info("Case submitted",
		zap.Int("caseNumber", cs.CaseNumber),
		zap.String("prisoner", prisonerEmail),
		zap.String("severity", severity))
	return cs, nil
}

// GetCase returns a case by number.
func (s *DefaultCaseService) GetCase(caseNumber int) (*models.Case, error) {
	cs, err := s.CaseRepo.GetByNumber(caseNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch case %d: %w", caseNumber, err)
	}
	if cs == nil {
		return nil, fmt.Errorf("case %d not found", caseNumber)
	}
	return cs, nil
}

// ListForJudge returns the cases assigned to a judge.
func (s *DefaultCaseService) ListForJudge(judgeEmail string) ([]models.Case, error) {
	cases, err := s.CaseRepo.GetByJudge(judgeEmail)
	if err != nil {
		return nil, fmt.Errorf("failed to list cases for judge %s: %w", judgeEmail, err)
	}
	return cases, nil
}

// SetTrialDate schedules a hearing on a case assigned to the calling judge
// and notifies the prisoner's family contact. The date is persisted before
// the mail is attempted; a notification failure does not unschedule.
func (s *DefaultCaseService) SetTrialDate(judgeEmail string, caseNumber int, date time.Time) error {
	logger := utils.GetLogger()

	cs, err := s.CaseRepo.GetByNumber(caseNumber)
	if err != nil {
		return fmt.Errorf("failed to fetch case %d: %w", caseNumber, err)
	}
	if cs == nil {
		return fmt.Errorf("case %d not found", caseNumber)
	}
	if cs.JudgeAssigned != judgeEmail {
		return fmt.Errorf("case %d is not assigned to this judge", caseNumber)
	}

	if err := s.CaseRepo.SetTrialDate(caseNumber, date); err != nil {
		return fmt.Errorf("failed to set trial date: %w", err)
	}

	prisoner, err := s.UserRepo.GetByEmail(cs.SubmittedBy)
	if err != nil {
		return fmt.Errorf("failed to fetch prisoner: %w", err)
	}
	if prisoner == nil || prisoner.FamilyEmail == "" {
		logger.Warn("Trial date set but no family email on record",
			zap.Int("caseNumber", caseNumber))
		return nil
	}

	notification := &models.FamilyNotification{
		ID:          uuid.New().String(),
		FamilyEmail: prisoner.FamilyEmail,
		CaseNumber:  caseNumber,
		Title:       fmt.Sprintf("Trial Date Scheduled: CASE-%d", caseNumber),
		Description: fmt.Sprintf("A trial date has been scheduled for your case on %s.", date.Format("02 Jan 2006")),
	}
	if err := s.NotificationRepo.Create(notification); err != nil {
		return fmt.Errorf("failed to record family notification: %w", err)
	}
	if err := s.Mailer.TrialDateSet(prisoner.FamilyEmail, caseNumber, date); err != nil {
		logger.Error("Trial date set but family mail failed",
			zap.Int("caseNumber", caseNumber), zap.Error(err))
	}
	return nil
}

// Calendar returns the dated cases visible to the caller's role: prisoners
// see their own submissions, providers the cases they accepted, judges their
// assigned docket.
func (s *DefaultCaseService) Calendar(email, role string) ([]models.Case, error) {
	var (
		cases []models.Case
		err   error
	)
	switch role {
	case models.RolePrisoner:
		cases, err = s.CaseRepo.GetBySubmitter(email)
	case models.RoleProvider:
		cases, err = s.CaseRepo.GetByAidProvider(email)
	case models.RoleJudge:
		cases, err = s.CaseRepo.GetByJudge(email)
	default:
		return nil, fmt.Errorf("unknown role %q", role)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to build calendar for %s: %w", email, err)
	}

	dated := make([]models.Case, 0, len(cases))
	for _, c := range cases {
		if c.TrialDate != nil {
			dated = append(dated, c)
		}
	}
	return dated, nil
}
