package caseRepo

import (
	"time"

	"nyayamitra/models"
)

// CaseRepository defines methods for case data access.
type CaseRepository interface {
	// Create inserts a new case, assigning it the next sequential case number.
	Create(c *models.Case) error
	// GetByNumber retrieves a case by its number, nil when absent.
	GetByNumber(caseNumber int) (*models.Case, error)
	// GetByNumbers retrieves the cases matching the given numbers.
	GetByNumbers(caseNumbers []int) ([]models.Case, error)
	// GetBySubmitter retrieves all cases submitted by the given email.
	GetBySubmitter(email string) ([]models.Case, error)
	// GetByJudge retrieves all cases assigned to the given judge.
	GetByJudge(email string) ([]models.Case, error)
	// GetByAidProvider retrieves all cases whose aid provider is the given email.
	GetByAidProvider(email string) ([]models.Case, error)
	// SetAidStatus updates the aid assignment state of a case.
	SetAidStatus(caseNumber int, status models.AidStatus, provider string) error
	// SetTrialDate sets the trial date of a case.
	SetTrialDate(caseNumber int, date time.Time) error
	// GetWithTrialDateBetween retrieves cases whose trial date falls in [from, to).
	GetWithTrialDateBetween(from, to time.Time) ([]models.Case, error)
}
