package requestRepo

import (
	"context"
	"errors"

	"nyayamitra/models"
)

// ErrDuplicateActiveRequest is returned when inserting a request for a case
// that already has a Pending or Accepted one. Backed by a partial unique
// index, so concurrent inserts cannot both succeed.
var ErrDuplicateActiveRequest = errors.New("case already has an active request")

// ErrNotPending is returned when accepting or declining a request that is no
// longer in the Pending state.
var ErrNotPending = errors.New("request is not pending")

// RequestRepository defines methods for the aid-request ledger.
type RequestRepository interface {
	// Create inserts a new request row. Returns ErrDuplicateActiveRequest if
	// the case already has a Pending or Accepted request.
	Create(req *models.AidRequest) error
	// GetByID retrieves a request by its ID, nil when absent.
	GetByID(id string) (*models.AidRequest, error)
	// GetActiveByCase retrieves the Pending or Accepted request for a case,
	// nil when there is none.
	GetActiveByCase(caseNumber int) (*models.AidRequest, error)
	// GetByProvider retrieves all requests addressed to the given provider.
	GetByProvider(email string) ([]models.AidRequest, error)
	// Accept marks the request Accepted and the case's aid status
	// accepted-by-provider in a single transaction.
	Accept(ctx context.Context, requestID string, caseNumber int, provider string) error
	// Decline marks the request Declined and clears the case's aid status in
	// a single transaction, re-enabling a fresh request.
	Decline(ctx context.Context, requestID string, caseNumber int) error
}
