package domain

import "context"

// Patch is a partial update keyed by column name.
type Patch = map[string]any

type Repository interface {
	ListPaychecks(ctx context.Context, companyID string) ([]Paycheck, error)
	ListPaychecksForEmployee(ctx context.Context, companyID, employeeID string) ([]Paycheck, error)
	GetPaycheckByID(ctx context.Context, companyID, paycheckID string) (*Paycheck, error)
	CreatePaycheck(ctx context.Context, companyID string, paycheck Paycheck) (*Paycheck, error)
	ReplacePaycheck(ctx context.Context, companyID, paycheckID string, paycheck Paycheck) (*Paycheck, error)
	UpdatePaycheck(ctx context.Context, companyID, paycheckID string, patch Patch) (*Paycheck, error)
	DeletePaycheck(ctx context.Context, companyID, paycheckID string) error

	ListSignatureEvents(ctx context.Context, companyID, paycheckID string) ([]PaycheckSignatureEvent, error)
	GetSignatureEventByID(ctx context.Context, companyID, eventID string) (*PaycheckSignatureEvent, error)
	CreateSignatureEvent(ctx context.Context, companyID string, event PaycheckSignatureEvent) (*PaycheckSignatureEvent, error)
	DeleteSignatureEvent(ctx context.Context, companyID, eventID string) error
}
