package matching

import (
	"context"
	"fmt"
	"testing"
	"time"

	requestRepo "nyayamitra/database/repository/request"
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

func (r *fakeCaseRepo) GetByNumbers(numbers []int) ([]models.Case, error) {
	var out []models.Case
	for _, n := range numbers {
		if c, ok := r.cases[n]; ok {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r *fakeCaseRepo) GetBySubmitter(email string) ([]models.Case, error) {
	var out []models.Case
	for n := 1; n < r.next; n++ {
		if c, ok := r.cases[n]; ok && c.SubmittedBy == email {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r *fakeCaseRepo) GetByJudge(email string) ([]models.Case, error)       { return nil, nil }
func (r *fakeCaseRepo) GetByAidProvider(email string) ([]models.Case, error) { return nil, nil }

func (r *fakeCaseRepo) SetAidStatus(n int, status models.AidStatus, provider string) error {
	c, ok := r.cases[n]
	if !ok {
		return fmt.Errorf("case %d not found", n)
	}
	c.AidStatus = status
	c.AidProvider = provider
	return nil
}

func (r *fakeCaseRepo) SetTrialDate(n int, date time.Time) error { return nil }
func (r *fakeCaseRepo) GetWithTrialDateBetween(from, to time.Time) ([]models.Case, error) {
	return nil, nil
}

// fakeRequestRepo is an in-memory RequestRepository that mirrors the store's
// unique-active-request constraint and transactional transitions.
type fakeRequestRepo struct {
	requests map[string]*models.AidRequest
	cases    *fakeCaseRepo
	order    []string
}

func newFakeRequestRepo(cases *fakeCaseRepo) *fakeRequestRepo {
	return &fakeRequestRepo{requests: make(map[string]*models.AidRequest), cases: cases}
}

func (r *fakeRequestRepo) Create(req *models.AidRequest) error {
	for _, existing := range r.requests {
		if existing.CaseNumber == req.CaseNumber &&
			(existing.Status == models.RequestPending || existing.Status == models.RequestAccepted) {
			return requestRepo.ErrDuplicateActiveRequest
		}
	}
	cp := *req
	r.requests[req.ID] = &cp
	r.order = append(r.order, req.ID)
	return nil
}

func (r *fakeRequestRepo) GetByID(id string) (*models.AidRequest, error) {
	req, ok := r.requests[id]
	if !ok {
		return nil, nil
	}
	cp := *req
	return &cp, nil
}

func (r *fakeRequestRepo) GetActiveByCase(n int) (*models.AidRequest, error) {
	for _, req := range r.requests {
		if req.CaseNumber == n &&
			(req.Status == models.RequestPending || req.Status == models.RequestAccepted) {
			cp := *req
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeRequestRepo) GetByProvider(email string) ([]models.AidRequest, error) {
	var out []models.AidRequest
	for _, id := range r.order {
		if req := r.requests[id]; req.ProviderEmail == email {
			out = append(out, *req)
		}
	}
	return out, nil
}

func (r *fakeRequestRepo) Accept(ctx context.Context, id string, caseNumber int, provider string) error {
	req, ok := r.requests[id]
	if !ok || req.Status != models.RequestPending {
		return requestRepo.ErrNotPending
	}
	req.Status = models.RequestAccepted
	return r.cases.SetAidStatus(caseNumber, models.AidAccepted, provider)
}

func (r *fakeRequestRepo) Decline(ctx context.Context, id string, caseNumber int) error {
	req, ok := r.requests[id]
	if !ok || req.Status != models.RequestPending {
		return requestRepo.ErrNotPending
	}
	req.Status = models.RequestDeclined
	return r.cases.SetAidStatus(caseNumber, models.AidUnrequested, "")
}

// fakeUserRepo is an in-memory UserRepository keyed by email.
type fakeUserRepo struct {
	users map[string]*models.User
}

func newFakeUserRepo(users ...*models.User) *fakeUserRepo {
	r := &fakeUserRepo{users: make(map[string]*models.User)}
	for _, u := range users {
		r.users[u.Email] = u
	}
	return r
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

func (r *fakeUserRepo) GetByRole(role string) ([]models.User, error)          { return nil, nil }
func (r *fakeUserRepo) Create(u *models.User) error                           { r.users[u.Email] = u; return nil }
func (r *fakeUserRepo) Update(u *models.User) error                           { return nil }
func (r *fakeUserRepo) UpdateFields(email string, fields bson.M) error        { return nil }
func (r *fakeUserRepo) Delete(id string) error                                { return nil }
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

// fakeMailer records sent mails and can be told to fail.
type fakeMailer struct {
	acceptedCalls []string
	fail          bool
}

func (m *fakeMailer) CaseAccepted(to string, caseNumber int, providerEmail string) error {
	if m.fail {
		return fmt.Errorf("relay unavailable")
	}
	m.acceptedCalls = append(m.acceptedCalls, fmt.Sprintf("%s|%d|%s", to, caseNumber, providerEmail))
	return nil
}

func (m *fakeMailer) TrialDateSet(to string, caseNumber int, trialDate time.Time) error  { return nil }
func (m *fakeMailer) TrialReminder(to string, caseNumber int, trialDate time.Time) error { return nil }
func (m *fakeMailer) FeedbackPosted(to string, caseNumber int, judgeEmail string) error  { return nil }

type fixture struct {
	svc      *DefaultMatchingService
	cases    *fakeCaseRepo
	requests *fakeRequestRepo
	notifs   *fakeNotificationRepo
	mail     *fakeMailer
}

func newFixture(users ...*models.User) *fixture {
	cases := newFakeCaseRepo()
	requests := newFakeRequestRepo(cases)
	notifs := &fakeNotificationRepo{}
	mail := &fakeMailer{}
	return &fixture{
		svc: &DefaultMatchingService{
			CaseRepo:         cases,
			RequestRepo:      requests,
			UserRepo:         newFakeUserRepo(users...),
			NotificationRepo: notifs,
			Mailer:           mail,
		},
		cases:    cases,
		requests: requests,
		notifs:   notifs,
		mail:     mail,
	}
}

func (f *fixture) submitCase(prisoner, severity string) *models.Case {
	c := &models.Case{SubmittedBy: prisoner, Severity: severity}
	if err := f.cases.Create(c); err != nil {
		panic(err)
	}
	return c
}

func TestRequestAidMovesCaseUnderReview(t *testing.T) {
	f := newFixture()
	cs := f.submitCase("p@x.com", "serious")

	req, err := f.svc.RequestAid("p@x.com", cs.CaseNumber, "a@y.com")
	require.NoError(t, err)
	assert.Equal(t, models.RequestPending, req.Status)
	assert.Equal(t, "a@y.com", req.ProviderEmail)

	stored, _ := f.cases.GetByNumber(cs.CaseNumber)
	assert.Equal(t, models.AidUnderReview, stored.AidStatus)
	assert.Equal(t, "under review: a@y.com", stored.LegalAid())
}

func TestRequestAidRejectsNonOwner(t *testing.T) {
	f := newFixture()
	cs := f.submitCase("p@x.com", "minor")

	_, err := f.svc.RequestAid("other@x.com", cs.CaseNumber, "a@y.com")
	assert.ErrorIs(t, err, ErrNotCaseOwner)
}

func TestRequestAidUnknownCase(t *testing.T) {
	f := newFixture()
	_, err := f.svc.RequestAid("p@x.com", 99, "a@y.com")
	assert.ErrorIs(t, err, ErrCaseNotFound)
}

func TestRequestAidTwiceFails(t *testing.T) {
	f := newFixture()
	cs := f.submitCase("p@x.com", "serious")

	_, err := f.svc.RequestAid("p@x.com", cs.CaseNumber, "a@y.com")
	require.NoError(t, err)

	_, err = f.svc.RequestAid("p@x.com", cs.CaseNumber, "b@y.com")
	assert.ErrorIs(t, err, ErrAlreadyRequested)
	assert.Len(t, f.requests.requests, 1)

	// The case must still point at the first provider.
	stored, _ := f.cases.GetByNumber(cs.CaseNumber)
	assert.Equal(t, "a@y.com", stored.AidProvider)
}

func TestAcceptRequestHappyPath(t *testing.T) {
	prisoner := &models.User{Email: "p@x.com", FamilyEmail: "fam@x.com", Role: models.RolePrisoner}
	f := newFixture(prisoner)
	cs := f.submitCase("p@x.com", "serious")

	req, err := f.svc.RequestAid("p@x.com", cs.CaseNumber, "a@y.com")
	require.NoError(t, err)

	stored, _ := f.cases.GetByNumber(cs.CaseNumber)
	require.Equal(t, "under review: a@y.com", stored.LegalAid())

	require.NoError(t, f.svc.AcceptRequest("a@y.com", req.ID))

	stored, _ = f.cases.GetByNumber(cs.CaseNumber)
	assert.Equal(t, "accepted: a@y.com", stored.LegalAid())

	updated, _ := f.requests.GetByID(req.ID)
	assert.Equal(t, models.RequestAccepted, updated.Status)

	require.Len(t, f.mail.acceptedCalls, 1)
	assert.Equal(t, fmt.Sprintf("fam@x.com|%d|a@y.com", cs.CaseNumber), f.mail.acceptedCalls[0])

	require.Len(t, f.notifs.created, 1)
	assert.Equal(t, "fam@x.com", f.notifs.created[0].FamilyEmail)
	assert.Equal(t, fmt.Sprintf("Case Accepted: CASE-%d", cs.CaseNumber), f.notifs.created[0].Title)
}

func TestAcceptRequestWrongProvider(t *testing.T) {
	f := newFixture(&models.User{Email: "p@x.com", FamilyEmail: "fam@x.com"})
	cs := f.submitCase("p@x.com", "moderate")
	req, _ := f.svc.RequestAid("p@x.com", cs.CaseNumber, "a@y.com")

	err := f.svc.AcceptRequest("intruder@y.com", req.ID)
	assert.ErrorIs(t, err, ErrNotRequestProvider)
}

func TestAcceptRequestNotPending(t *testing.T) {
	f := newFixture(&models.User{Email: "p@x.com", FamilyEmail: "fam@x.com"})
	cs := f.submitCase("p@x.com", "moderate")
	req, _ := f.svc.RequestAid("p@x.com", cs.CaseNumber, "a@y.com")

	require.NoError(t, f.svc.AcceptRequest("a@y.com", req.ID))
	err := f.svc.AcceptRequest("a@y.com", req.ID)
	assert.ErrorIs(t, err, ErrRequestNotPending)
}

func TestAcceptRequestNoFamilyEmailLeavesStateAccepted(t *testing.T) {
	f := newFixture(&models.User{Email: "p@x.com", Role: models.RolePrisoner})
	cs := f.submitCase("p@x.com", "serious")
	req, _ := f.svc.RequestAid("p@x.com", cs.CaseNumber, "a@y.com")

	err := f.svc.AcceptRequest("a@y.com", req.ID)
	assert.ErrorIs(t, err, ErrNoFamilyEmail)

	// The acceptance has already committed.
	stored, _ := f.cases.GetByNumber(cs.CaseNumber)
	assert.Equal(t, "accepted: a@y.com", stored.LegalAid())
	updated, _ := f.requests.GetByID(req.ID)
	assert.Equal(t, models.RequestAccepted, updated.Status)
	assert.Empty(t, f.mail.acceptedCalls)
}

func TestAcceptRequestMailFailure(t *testing.T) {
	f := newFixture(&models.User{Email: "p@x.com", FamilyEmail: "fam@x.com"})
	f.mail.fail = true
	cs := f.submitCase("p@x.com", "serious")
	req, _ := f.svc.RequestAid("p@x.com", cs.CaseNumber, "a@y.com")

	err := f.svc.AcceptRequest("a@y.com", req.ID)
	assert.ErrorIs(t, err, ErrNotificationFailed)

	stored, _ := f.cases.GetByNumber(cs.CaseNumber)
	assert.Equal(t, "accepted: a@y.com", stored.LegalAid())
}

func TestDeclineRequestReenablesRequesting(t *testing.T) {
	f := newFixture(&models.User{Email: "p@x.com", FamilyEmail: "fam@x.com"})
	cs := f.submitCase("p@x.com", "serious")
	req, _ := f.svc.RequestAid("p@x.com", cs.CaseNumber, "a@y.com")

	require.NoError(t, f.svc.DeclineRequest("a@y.com", req.ID))

	stored, _ := f.cases.GetByNumber(cs.CaseNumber)
	assert.Equal(t, "", stored.LegalAid())
	updated, _ := f.requests.GetByID(req.ID)
	assert.Equal(t, models.RequestDeclined, updated.Status)

	// A fresh request to a different provider now succeeds.
	_, err := f.svc.RequestAid("p@x.com", cs.CaseNumber, "b@y.com")
	require.NoError(t, err)
	stored, _ = f.cases.GetByNumber(cs.CaseNumber)
	assert.Equal(t, "under review: b@y.com", stored.LegalAid())
}

func TestListCasesForPrisonerSortsBySeverity(t *testing.T) {
	f := newFixture()
	f.submitCase("p@x.com", "petty")
	f.submitCase("p@x.com", "serious")
	f.submitCase("p@x.com", "minor")
	f.submitCase("p@x.com", "moderate")
	f.submitCase("someone@else.com", "serious")

	cases, err := f.svc.ListCasesForPrisoner("p@x.com")
	require.NoError(t, err)
	require.Len(t, cases, 4)

	var severities []string
	for _, c := range cases {
		severities = append(severities, c.Severity)
	}
	assert.Equal(t, []string{"serious", "moderate", "minor", "petty"}, severities)
}

func TestListCasesForPrisonerStableOnTies(t *testing.T) {
	f := newFixture()
	first := f.submitCase("p@x.com", "serious")
	second := f.submitCase("p@x.com", "serious")

	cases, err := f.svc.ListCasesForPrisoner("p@x.com")
	require.NoError(t, err)
	require.Len(t, cases, 2)
	assert.Equal(t, first.CaseNumber, cases[0].CaseNumber)
	assert.Equal(t, second.CaseNumber, cases[1].CaseNumber)
}

func TestListRequestsForProviderOrdering(t *testing.T) {
	f := newFixture(
		&models.User{Email: "p1@x.com", FamilyEmail: "f1@x.com"},
		&models.User{Email: "p2@x.com", FamilyEmail: "f2@x.com"},
		&models.User{Email: "p3@x.com", FamilyEmail: "f3@x.com"},
		&models.User{Email: "p4@x.com", FamilyEmail: "f4@x.com"},
	)

	declinedCase := f.submitCase("p1@x.com", "serious")
	declined, _ := f.svc.RequestAid("p1@x.com", declinedCase.CaseNumber, "a@y.com")
	require.NoError(t, f.svc.DeclineRequest("a@y.com", declined.ID))

	acceptedMinor := f.submitCase("p2@x.com", "minor")
	accMinor, _ := f.svc.RequestAid("p2@x.com", acceptedMinor.CaseNumber, "a@y.com")
	require.NoError(t, f.svc.AcceptRequest("a@y.com", accMinor.ID))

	acceptedSerious := f.submitCase("p3@x.com", "serious")
	accSerious, _ := f.svc.RequestAid("p3@x.com", acceptedSerious.CaseNumber, "a@y.com")
	require.NoError(t, f.svc.AcceptRequest("a@y.com", accSerious.ID))

	pendingCase := f.submitCase("p4@x.com", "petty")
	pending, _ := f.svc.RequestAid("p4@x.com", pendingCase.CaseNumber, "a@y.com")

	joined, err := f.svc.ListRequestsForProvider("a@y.com")
	require.NoError(t, err)
	require.Len(t, joined, 4)

	// Pending first, then accepted by descending severity, declined last.
	assert.Equal(t, pending.ID, joined[0].ID)
	assert.Equal(t, accSerious.ID, joined[1].ID)
	assert.Equal(t, accMinor.ID, joined[2].ID)
	assert.Equal(t, declined.ID, joined[3].ID)

	// Each entry carries its joined case.
	require.NotNil(t, joined[0].Case)
	assert.Equal(t, pendingCase.CaseNumber, joined[0].Case.CaseNumber)
}

func TestListRequestsForProviderEmpty(t *testing.T) {
	f := newFixture()
	joined, err := f.svc.ListRequestsForProvider("nobody@y.com")
	require.NoError(t, err)
	assert.Empty(t, joined)
}
