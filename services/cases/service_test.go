package cases

import (
	"fmt"
	"testing"
	"time"

	"nyayamitra/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

// fakeCaseRepo is an in-memory CaseRepository.
type fakeCaseRepo struct {
	cases map[int]*models.Case
	next  int
}

func newFakeCaseRepo() *fakeCaseRepo {
	return &fakeCaseRepo{cases: make(map[int]*models.Case), next: 1}
}

func (r *fakeCaseRepo) Create(c *models.Case) error {
	c.CaseNumber = r.next
	r.next++
	if c.AidStatus == "" {
		c.AidStatus = models.AidUnrequested
	}
	cp := *c
	r.cases[c.CaseNumber] = &cp
	return nil
}

func (r *fakeCaseRepo) GetByNumber(n int) (*models.Case, error) {
	c, ok := r.cases[n]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (r *fakeCaseRepo) GetByNumbers(numbers []int) ([]models.Case, error) { return nil, nil }

func (r *fakeCaseRepo) filter(pred func(*models.Case) bool) []models.Case {
	var out []models.Case
	for n := 1; n < r.next; n++ {
		if c, ok := r.cases[n]; ok && pred(c) {
			out = append(out, *c)
		}
	}
	return out
}

func (r *fakeCaseRepo) GetBySubmitter(email string) ([]models.Case, error) {
	return r.filter(func(c *models.Case) bool { return c.SubmittedBy == email }), nil
}

func (r *fakeCaseRepo) GetByJudge(email string) ([]models.Case, error) {
	return r.filter(func(c *models.Case) bool { return c.JudgeAssigned == email }), nil
}

func (r *fakeCaseRepo) GetByAidProvider(email string) ([]models.Case, error) {
	return r.filter(func(c *models.Case) bool { return c.AidProvider == email }), nil
}

func (r *fakeCaseRepo) SetAidStatus(n int, status models.AidStatus, provider string) error {
	return nil
}

func (r *fakeCaseRepo) SetTrialDate(n int, date time.Time) error {
	c, ok := r.cases[n]
	if !ok {
		return fmt.Errorf("case %d not found", n)
	}
	c.TrialDate = &date
	return nil
}

func (r *fakeCaseRepo) GetWithTrialDateBetween(from, to time.Time) ([]models.Case, error) {
	return r.filter(func(c *models.Case) bool {
		return c.TrialDate != nil && !c.TrialDate.Before(from) && c.TrialDate.Before(to)
	}), nil
}

// fakeUserRepo resolves preloaded users by email.
type fakeUserRepo struct {
	users map[string]*models.User
}

func (r *fakeUserRepo) GetByID(id string) (*models.User, error) { return nil, nil }
func (r *fakeUserRepo) GetByEmail(email string) (*models.User, error) {
	u, ok := r.users[email]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
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

// fakeNotificationRepo records inserted notifications.
type fakeNotificationRepo struct {
	created []models.FamilyNotification
}

func (r *fakeNotificationRepo) Create(n *models.FamilyNotification) error {
	r.created = append(r.created, *n)
	return nil
}

func (r *fakeNotificationRepo) GetByFamilyEmail(email string) ([]models.FamilyNotification, error) {
	return nil, nil
}

// fakeMailer records trial-date mails.
type fakeMailer struct {
	trialDateCalls []string
}

func (m *fakeMailer) CaseAccepted(to string, caseNumber int, providerEmail string) error { return nil }
func (m *fakeMailer) TrialDateSet(to string, caseNumber int, trialDate time.Time) error {
	m.trialDateCalls = append(m.trialDateCalls, fmt.Sprintf("%s|%d", to, caseNumber))
	return nil
}
func (m *fakeMailer) TrialReminder(to string, caseNumber int, trialDate time.Time) error { return nil }
func (m *fakeMailer) FeedbackPosted(to string, caseNumber int, judgeEmail string) error  { return nil }

func validInput(judge string) SubmitCaseInput {
	return SubmitCaseInput{
		CaseDescription:         "theft allegation",
		Age:                     27,
		Gender:                  "male",
		SocioeconomicBackground: "low income",
		EmploymentStatus:        "unemployed",
		OffenseNature:           "theft",
		Severity:                "moderate",
		CriminalHistory:         "none",
		VictimImpact:            "minimal",
		PublicInterest:          "low",
		CustodyTime:             "3 months",
		Adjournments:            "2",
		BailAmount:              "10000",
		BailConditions:          "surety",
		JudgeAssigned:           judge,
	}
}

func newCaseFixture(users ...*models.User) (*DefaultCaseService, *fakeCaseRepo, *fakeMailer, *fakeNotificationRepo) {
	userRepo := &fakeUserRepo{users: make(map[string]*models.User)}
	for _, u := range users {
		userRepo.users[u.Email] = u
	}
	caseRepo := newFakeCaseRepo()
	notifs := &fakeNotificationRepo{}
	mail := &fakeMailer{}
	svc := &DefaultCaseService{
		CaseRepo:         caseRepo,
		UserRepo:         userRepo,
		NotificationRepo: notifs,
		Mailer:           mail,
	}
	return svc, caseRepo, mail, notifs
}

func TestSubmitCaseAssignsSequentialNumbers(t *testing.T) {
	judge := &models.User{Email: "j@court.gov", Role: models.RoleJudge}
	svc, _, _, _ := newCaseFixture(judge)

	first, err := svc.SubmitCase("p@x.com", validInput("j@court.gov"))
	require.NoError(t, err)
	second, err := svc.SubmitCase("p@x.com", validInput("j@court.gov"))
	require.NoError(t, err)

	assert.Equal(t, 1, first.CaseNumber)
	assert.Equal(t, 2, second.CaseNumber)
	assert.Equal(t, models.AidUnrequested, first.AidStatus)
}

func TestSubmitCaseNormalizesSeverity(t *testing.T) {
	judge := &models.User{Email: "j@court.gov", Role: models.RoleJudge}
	svc, _, _, _ := newCaseFixture(judge)

	input := validInput("j@court.gov")
	input.Severity = " Serious "
	cs, err := svc.SubmitCase("p@x.com", input)
	require.NoError(t, err)
	assert.Equal(t, "serious", cs.Severity)
}

func TestSubmitCaseRejectsUnknownSeverity(t *testing.T) {
	judge := &models.User{Email: "j@court.gov", Role: models.RoleJudge}
	svc, _, _, _ := newCaseFixture(judge)

	input := validInput("j@court.gov")
	input.Severity = "catastrophic"
	_, err := svc.SubmitCase("p@x.com", input)
	assert.Error(t, err)
}

func TestSubmitCaseRejectsMissingJudge(t *testing.T) {
	svc, _, _, _ := newCaseFixture(&models.User{Email: "not-a-judge@x.com", Role: models.RolePrisoner})

	_, err := svc.SubmitCase("p@x.com", validInput("not-a-judge@x.com"))
	assert.Error(t, err)
	_, err = svc.SubmitCase("p@x.com", validInput("ghost@court.gov"))
	assert.Error(t, err)
}

func TestSetTrialDateNotifiesFamily(t *testing.T) {
	judge := &models.User{Email: "j@court.gov", Role: models.RoleJudge}
	prisoner := &models.User{Email: "p@x.com", Role: models.RolePrisoner, FamilyEmail: "fam@x.com"}
	svc, repo, mail, notifs := newCaseFixture(judge, prisoner)

	cs, err := svc.SubmitCase("p@x.com", validInput("j@court.gov"))
	require.NoError(t, err)

	date := time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC)
	require.NoError(t, svc.SetTrialDate("j@court.gov", cs.CaseNumber, date))

	stored, _ := repo.GetByNumber(cs.CaseNumber)
	require.NotNil(t, stored.TrialDate)
	assert.True(t, stored.TrialDate.Equal(date))

	require.Len(t, mail.trialDateCalls, 1)
	assert.Equal(t, fmt.Sprintf("fam@x.com|%d", cs.CaseNumber), mail.trialDateCalls[0])
	require.Len(t, notifs.created, 1)
}

func TestSetTrialDateRejectsOtherJudge(t *testing.T) {
	judge := &models.User{Email: "j@court.gov", Role: models.RoleJudge}
	svc, _, _, _ := newCaseFixture(judge)

	cs, err := svc.SubmitCase("p@x.com", validInput("j@court.gov"))
	require.NoError(t, err)

	err = svc.SetTrialDate("other@court.gov", cs.CaseNumber, time.Now())
	assert.Error(t, err)
}

func TestSetTrialDateWithoutFamilyEmailStillSchedules(t *testing.T) {
	judge := &models.User{Email: "j@court.gov", Role: models.RoleJudge}
	prisoner := &models.User{Email: "p@x.com", Role: models.RolePrisoner}
	svc, repo, mail, _ := newCaseFixture(judge, prisoner)

	cs, err := svc.SubmitCase("p@x.com", validInput("j@court.gov"))
	require.NoError(t, err)

	require.NoError(t, svc.SetTrialDate("j@court.gov", cs.CaseNumber, time.Now()))
	stored, _ := repo.GetByNumber(cs.CaseNumber)
	assert.NotNil(t, stored.TrialDate)
	assert.Empty(t, mail.trialDateCalls)
}

func TestCalendarFiltersByRoleAndDate(t *testing.T) {
	judge := &models.User{Email: "j@court.gov", Role: models.RoleJudge}
	svc, repo, _, _ := newCaseFixture(judge)

	dated, err := svc.SubmitCase("p@x.com", validInput("j@court.gov"))
	require.NoError(t, err)
	_, err = svc.SubmitCase("p@x.com", validInput("j@court.gov"))
	require.NoError(t, err)

	require.NoError(t, repo.SetTrialDate(dated.CaseNumber, time.Now().AddDate(0, 0, 7)))

	visible, err := svc.Calendar("p@x.com", models.RolePrisoner)
	require.NoError(t, err)
	require.Len(t, visible, 1)
	assert.Equal(t, dated.CaseNumber, visible[0].CaseNumber)

	visible, err = svc.Calendar("j@court.gov", models.RoleJudge)
	require.NoError(t, err)
	assert.Len(t, visible, 1)

	_, err = svc.Calendar("p@x.com", "warden")
	assert.Error(t, err)
}
